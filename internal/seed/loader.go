package seed

import (
	"context"
	"fmt"
	"os"

	"products-api/internal/model"

	"github.com/rs/zerolog"
)

// fileLoader implements Loader for reading seed files from the local file system.
type fileLoader struct {
	logger zerolog.Logger
}

// NewFileLoader creates a new file-based seed loader.
func NewFileLoader(logger zerolog.Logger) Loader {
	return &fileLoader{
		logger: logger.With().Str("component", "seed-loader").Logger(),
	}
}

// Load reads a JSON seed file, optionally gzipped, and returns its products.
func (l *fileLoader) Load(ctx context.Context, filePath string) ([]model.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	l.logger.Info().Str("file", filePath).Msg("loading seed file")

	file, err := os.Open(filePath)
	if err != nil {
		l.logger.Error().Err(err).Str("file", filePath).Msg("failed to open seed file")
		return nil, fmt.Errorf("failed to open seed file %s: %w", filePath, err)
	}
	defer file.Close()

	products, err := decodeProducts(file, filePath)
	if err != nil {
		l.logger.Error().Err(err).Str("file", filePath).Msg("failed to read seed file")
		return nil, err
	}

	l.logger.Info().
		Str("file", filePath).
		Int("products_loaded", len(products)).
		Msg("seed file loaded successfully")

	return products, nil
}
