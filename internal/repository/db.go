package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
)

// productsSchema creates the products table. The seq column records insertion
// order, which is the natural order of GetAll and SearchByTitle.
const productsSchema = `
	CREATE TABLE IF NOT EXISTS products (
		seq BIGSERIAL UNIQUE,
		id TEXT PRIMARY KEY,
		title TEXT NOT NULL CHECK (btrim(title) <> ''),
		description TEXT NOT NULL CHECK (btrim(description) <> ''),
		price DOUBLE PRECISION NOT NULL CHECK (price > 0)
	);
	CREATE INDEX IF NOT EXISTS idx_products_title_lower ON products (lower(title));
`

// Migrate creates the PostgreSQL schema used by the product repository.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, productsSchema); err != nil {
		return fmt.Errorf("failed to create products schema: %w", err)
	}
	return nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern builds an ILIKE pattern matching text literally anywhere in a value.
func containsPattern(text string) string {
	return "%" + likeEscaper.Replace(text) + "%"
}
