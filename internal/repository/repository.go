package repository

import (
	"context"

	"products-api/internal/model"
)

// ProductRepository defines the interface for product data access operations.
//
// Lookups that find nothing are not errors: GetByID returns (nil, nil) and the
// list operations return an empty slice.
type ProductRepository interface {
	// GetAll retrieves all products in the store's natural order.
	GetAll(ctx context.Context) ([]model.Product, error)

	// GetByID retrieves a single product by its ID.
	GetByID(ctx context.Context, id string) (*model.Product, error)

	// SearchByTitle retrieves the products whose title contains text, ignoring case.
	SearchByTitle(ctx context.Context, text string) ([]model.Product, error)

	// Save inserts the product when its ID is empty, assigning a new ID, and
	// otherwise replaces the stored product with the same ID.
	Save(ctx context.Context, product model.Product) (*model.Product, error)

	// Delete removes the product with the given ID. Deleting a missing ID is a no-op.
	Delete(ctx context.Context, id string) error

	// DeleteAll removes every product.
	DeleteAll(ctx context.Context) error
}
