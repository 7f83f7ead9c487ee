package service

import (
	"context"

	"products-api/internal/model"
)

// ProductService defines operations for product management.
//
// Single-product operations return (nil, nil) when there is no matching product;
// list operations return an empty slice.
type ProductService interface {
	// GetAll retrieves all products.
	GetAll(ctx context.Context) ([]model.Product, error)

	// GetByID retrieves a single product by ID.
	GetByID(ctx context.Context, id string) (*model.Product, error)

	// SearchByTitle retrieves products whose title contains text, ignoring case.
	SearchByTitle(ctx context.Context, text string) ([]model.Product, error)

	// Create stores a new product and returns it with its assigned ID.
	Create(ctx context.Context, product model.Product) (*model.Product, error)

	// Update replaces title, description and price of an existing product.
	Update(ctx context.Context, id string, data model.Product) (*model.Product, error)

	// DeleteByID removes a product and returns it as it was before deletion.
	DeleteByID(ctx context.Context, id string) (*model.Product, error)
}
