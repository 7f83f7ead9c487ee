package seed

import (
	"compress/gzip"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"products-api/internal/model"
)

// Loader loads sample products from a named source.
type Loader interface {
	Load(ctx context.Context, source string) ([]model.Product, error)
}

// DefaultProducts returns the built-in demo catalogue.
func DefaultProducts() []model.Product {
	return []model.Product{
		{Title: "Apple iPhone XS Max", Description: "New iPhone XS Max", Price: 1099.99},
		{Title: "Apple MacBook Pro", Description: "New MacBook", Price: 2599.99},
		{Title: "Samsung Galaxy S10+", Description: "New Galaxy!!", Price: 799.99},
	}
}

// decodeProducts reads a JSON array of products from r. Sources whose name
// ends in ".gz" are gunzipped first. Every entry must pass request validation;
// ids in the source are ignored.
func decodeProducts(r io.Reader, source string) ([]model.Product, error) {
	if strings.HasSuffix(source, ".gz") {
		gzipReader, err := gzip.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("failed to create gzip reader for %s: %w", source, err)
		}
		defer gzipReader.Close()
		r = gzipReader
	}

	var requests []model.ProductRequest
	if err := json.NewDecoder(r).Decode(&requests); err != nil {
		return nil, fmt.Errorf("failed to decode seed file %s: %w", source, err)
	}

	products := make([]model.Product, 0, len(requests))
	for i, req := range requests {
		if err := req.Validate(); err != nil {
			return nil, fmt.Errorf("invalid product at index %d in %s: %w", i, source, err)
		}
		products = append(products, req.ToProduct())
	}

	return products, nil
}
