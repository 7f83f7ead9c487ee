package repository

import (
	"context"
	"strings"
	"sync"

	"products-api/internal/model"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// MemoryProductRepository is an in-memory implementation of ProductRepository.
// Products are kept in insertion order.
type MemoryProductRepository struct {
	mu       sync.RWMutex
	products []model.Product
	index    map[string]int
	logger   zerolog.Logger
}

// NewMemoryProductRepository creates an empty in-memory product repository.
func NewMemoryProductRepository(logger zerolog.Logger) *MemoryProductRepository {
	return &MemoryProductRepository{
		index:  make(map[string]int),
		logger: logger.With().Str("repository", "product").Str("store", "memory").Logger(),
	}
}

// GetAll returns all products.
func (r *MemoryProductRepository) GetAll(ctx context.Context) ([]model.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	products := make([]model.Product, len(r.products))
	copy(products, r.products)
	return products, nil
}

// GetByID returns a product by its ID.
func (r *MemoryProductRepository) GetByID(ctx context.Context, id string) (*model.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	i, ok := r.index[id]
	if !ok {
		r.logger.Debug().Str("product_id", id).Msg("product not found")
		return nil, nil
	}
	p := r.products[i]
	return &p, nil
}

// SearchByTitle returns products whose title contains text, ignoring case.
func (r *MemoryProductRepository) SearchByTitle(ctx context.Context, text string) ([]model.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	needle := strings.ToLower(text)
	products := []model.Product{}
	for _, p := range r.products {
		if strings.Contains(strings.ToLower(p.Title), needle) {
			products = append(products, p)
		}
	}
	return products, nil
}

// Save inserts or replaces a product.
func (r *MemoryProductRepository) Save(ctx context.Context, product model.Product) (*model.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if product.ID == "" {
		product.ID = uuid.NewString()
	}

	if i, ok := r.index[product.ID]; ok {
		r.products[i] = product
	} else {
		r.index[product.ID] = len(r.products)
		r.products = append(r.products, product)
	}

	saved := product
	return &saved, nil
}

// Delete removes a product by its ID.
func (r *MemoryProductRepository) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	i, ok := r.index[id]
	if !ok {
		return nil
	}

	r.products = append(r.products[:i], r.products[i+1:]...)
	delete(r.index, id)
	for j := i; j < len(r.products); j++ {
		r.index[r.products[j].ID] = j
	}
	return nil
}

// DeleteAll removes every product.
func (r *MemoryProductRepository) DeleteAll(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.products = nil
	r.index = make(map[string]int)
	return nil
}
