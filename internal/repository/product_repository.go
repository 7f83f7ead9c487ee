package repository

import (
	"context"
	"errors"
	"fmt"

	"products-api/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// productRepository implements the ProductRepository interface using PostgreSQL.
type productRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewProductRepository creates a new PostgreSQL-backed product repository.
func NewProductRepository(pool *pgxpool.Pool, logger zerolog.Logger) ProductRepository {
	return &productRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "product").Str("store", "postgres").Logger(),
	}
}

// GetAll retrieves all products in insertion order.
func (r *productRepository) GetAll(ctx context.Context) ([]model.Product, error) {
	query := `
		SELECT id, title, description, price
		FROM products
		ORDER BY seq
	`

	products, err := r.queryProducts(ctx, query)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query products")
		return nil, fmt.Errorf("failed to query products: %w", err)
	}

	return products, nil
}

// GetByID retrieves a single product by its ID.
func (r *productRepository) GetByID(ctx context.Context, id string) (*model.Product, error) {
	query := `
		SELECT id, title, description, price
		FROM products
		WHERE id = $1
	`

	var p model.Product
	err := r.pool.QueryRow(ctx, query, id).Scan(&p.ID, &p.Title, &p.Description, &p.Price)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Debug().Str("product_id", id).Msg("product not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("product_id", id).Msg("failed to query product")
		return nil, fmt.Errorf("failed to query product: %w", err)
	}

	return &p, nil
}

// SearchByTitle retrieves products whose title contains text, case-insensitively.
func (r *productRepository) SearchByTitle(ctx context.Context, text string) ([]model.Product, error) {
	query := `
		SELECT id, title, description, price
		FROM products
		WHERE title ILIKE $1
		ORDER BY seq
	`

	products, err := r.queryProducts(ctx, query, containsPattern(text))
	if err != nil {
		r.logger.Error().Err(err).Str("title", text).Msg("failed to search products")
		return nil, fmt.Errorf("failed to search products: %w", err)
	}

	return products, nil
}

// Save inserts or replaces a product.
func (r *productRepository) Save(ctx context.Context, product model.Product) (*model.Product, error) {
	if product.ID == "" {
		product.ID = uuid.NewString()
	}

	query := `
		INSERT INTO products (id, title, description, price)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (id) DO UPDATE
		SET title = EXCLUDED.title,
			description = EXCLUDED.description,
			price = EXCLUDED.price
		RETURNING id, title, description, price
	`

	var saved model.Product
	err := r.pool.QueryRow(ctx, query, product.ID, product.Title, product.Description, product.Price).
		Scan(&saved.ID, &saved.Title, &saved.Description, &saved.Price)
	if err != nil {
		r.logger.Error().Err(err).Str("product_id", product.ID).Msg("failed to save product")
		return nil, fmt.Errorf("failed to save product: %w", err)
	}

	return &saved, nil
}

// Delete removes a product by its ID.
func (r *productRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		r.logger.Error().Err(err).Str("product_id", id).Msg("failed to delete product")
		return fmt.Errorf("failed to delete product: %w", err)
	}

	r.logger.Debug().
		Str("product_id", id).
		Int64("rows_affected", tag.RowsAffected()).
		Msg("product deleted")

	return nil
}

// DeleteAll removes every product.
func (r *productRepository) DeleteAll(ctx context.Context) error {
	if _, err := r.pool.Exec(ctx, `DELETE FROM products`); err != nil {
		r.logger.Error().Err(err).Msg("failed to delete all products")
		return fmt.Errorf("failed to delete all products: %w", err)
	}
	return nil
}

func (r *productRepository) queryProducts(ctx context.Context, query string, args ...any) ([]model.Product, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	products := []model.Product{}
	for rows.Next() {
		var p model.Product
		if err := rows.Scan(&p.ID, &p.Title, &p.Description, &p.Price); err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating products: %w", err)
	}

	return products, nil
}
