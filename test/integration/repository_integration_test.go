package integration

import (
	"context"
	"testing"

	"products-api/internal/seed"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeeder_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	ctx := context.Background()

	for _, store := range SetupStores(t) {
		t.Run(store.Name, func(t *testing.T) {
			CleanupStore(t, store.Repo)

			seeder := seed.NewSeeder(store.Repo, nil, "", zerolog.Nop())

			// Running twice must leave exactly one copy of the catalogue.
			require.NoError(t, seeder.Run(ctx))
			require.NoError(t, seeder.Run(ctx))

			products, err := store.Repo.GetAll(ctx)
			require.NoError(t, err)
			require.Len(t, products, 3)

			for i, expected := range seed.DefaultProducts() {
				assert.True(t, expected.Equal(products[i]), "product %d: %+v", i, products[i])
				assert.NotEmpty(t, products[i].ID)
			}

			matches, err := store.Repo.SearchByTitle(ctx, "apple")
			require.NoError(t, err)
			assert.Len(t, matches, 2)
		})
	}
}
