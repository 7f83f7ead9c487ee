package service

import (
	"context"
	"fmt"

	"products-api/internal/model"
	"products-api/internal/repository"

	"github.com/rs/zerolog"
)

// productService implements ProductService.
type productService struct {
	productRepo repository.ProductRepository
	logger      zerolog.Logger
}

// NewProductService creates a new product service.
func NewProductService(productRepo repository.ProductRepository, logger zerolog.Logger) ProductService {
	return &productService{
		productRepo: productRepo,
		logger:      logger.With().Str("service", "product").Logger(),
	}
}

// GetAll retrieves all products.
func (s *productService) GetAll(ctx context.Context) ([]model.Product, error) {
	products, err := s.productRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get products: %w", err)
	}

	s.logger.Debug().Int("count", len(products)).Msg("retrieved products")

	return products, nil
}

// GetByID retrieves a single product by ID.
func (s *productService) GetByID(ctx context.Context, id string) (*model.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get product: %w", err)
	}

	return product, nil
}

// SearchByTitle retrieves products whose title contains text.
func (s *productService) SearchByTitle(ctx context.Context, text string) ([]model.Product, error) {
	products, err := s.productRepo.SearchByTitle(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("failed to search products: %w", err)
	}

	s.logger.Debug().
		Str("title", text).
		Int("count", len(products)).
		Msg("searched products by title")

	return products, nil
}

// Create stores a new product.
func (s *productService) Create(ctx context.Context, product model.Product) (*model.Product, error) {
	created, err := s.productRepo.Save(ctx, product)
	if err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	s.logger.Info().Str("product_id", created.ID).Msg("product created")

	return created, nil
}

// Update replaces the data of an existing product, keeping its ID.
// Nothing is written when the product does not exist.
func (s *productService) Update(ctx context.Context, id string, data model.Product) (*model.Product, error) {
	existing, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	if existing == nil {
		return nil, nil
	}

	updated, err := s.productRepo.Save(ctx, existing.WithData(data))
	if err != nil {
		return nil, fmt.Errorf("failed to update product: %w", err)
	}

	s.logger.Info().Str("product_id", id).Msg("product updated")

	return updated, nil
}

// DeleteByID removes a product and returns its last stored value.
// Nothing is written when the product does not exist.
func (s *productService) DeleteByID(ctx context.Context, id string) (*model.Product, error) {
	existing, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	if existing == nil {
		return nil, nil
	}

	if err := s.productRepo.Delete(ctx, existing.ID); err != nil {
		return nil, fmt.Errorf("failed to delete product: %w", err)
	}

	s.logger.Info().Str("product_id", id).Msg("product deleted")

	return existing, nil
}
