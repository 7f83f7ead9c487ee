package seed

import (
	"context"
	"fmt"

	"products-api/internal/model"
	"products-api/internal/repository"

	"github.com/rs/zerolog"
)

// Seeder replaces the store contents with a sample catalogue.
type Seeder struct {
	repo   repository.ProductRepository
	loader Loader
	source string
	logger zerolog.Logger
}

// NewSeeder creates a seeder. With a nil loader or an empty source the
// built-in catalogue is used.
func NewSeeder(repo repository.ProductRepository, loader Loader, source string, logger zerolog.Logger) *Seeder {
	return &Seeder{
		repo:   repo,
		loader: loader,
		source: source,
		logger: logger.With().Str("component", "seeder").Logger(),
	}
}

// Run deletes every stored product, inserts the catalogue in order and logs
// the resulting store contents.
func (s *Seeder) Run(ctx context.Context) error {
	products, err := s.products(ctx)
	if err != nil {
		return err
	}

	if err := s.repo.DeleteAll(ctx); err != nil {
		return fmt.Errorf("failed to clear products: %w", err)
	}

	for _, product := range products {
		if _, err := s.repo.Save(ctx, product); err != nil {
			return fmt.Errorf("failed to save product %q: %w", product.Title, err)
		}
	}

	stored, err := s.repo.GetAll(ctx)
	if err != nil {
		return fmt.Errorf("failed to list products: %w", err)
	}

	for _, product := range stored {
		s.logger.Info().
			Str("id", product.ID).
			Str("title", product.Title).
			Str("description", product.Description).
			Float64("price", product.Price).
			Msg("product")
	}

	s.logger.Info().Int("count", len(stored)).Msg("sample data loaded")

	return nil
}

func (s *Seeder) products(ctx context.Context) ([]model.Product, error) {
	if s.loader == nil || s.source == "" {
		return DefaultProducts(), nil
	}

	products, err := s.loader.Load(ctx, s.source)
	if err != nil {
		return nil, fmt.Errorf("failed to load seed products: %w", err)
	}
	return products, nil
}
