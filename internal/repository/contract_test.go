package repository

import (
	"context"
	"testing"

	"products-api/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// unknownID is a well-formed ObjectID hex that no store ever assigns in these tests.
const unknownID = "5f1d7e9b8c9d440000000000"

func sampleProducts() []model.Product {
	return []model.Product{
		{Title: "Apple iPhone XS Max", Description: "New iPhone XS Max", Price: 1099.99},
		{Title: "Apple MacBook Pro", Description: "New MacBook", Price: 2599.99},
		{Title: "Samsung Galaxy S10+", Description: "New Galaxy!!", Price: 799.99},
	}
}

func seedRepository(t *testing.T, repo ProductRepository) []model.Product {
	t.Helper()

	ctx := context.Background()
	var saved []model.Product
	for _, p := range sampleProducts() {
		s, err := repo.Save(ctx, p)
		require.NoError(t, err)
		saved = append(saved, *s)
	}
	return saved
}

func titles(products []model.Product) []string {
	out := make([]string, 0, len(products))
	for _, p := range products {
		out = append(out, p.Title)
	}
	return out
}

// runProductRepositoryContract exercises the behaviour every ProductRepository must share.
// newRepo must return an empty repository.
func runProductRepositoryContract(t *testing.T, newRepo func(t *testing.T) ProductRepository) {
	ctx := context.Background()

	t.Run("Save assigns an ID and GetByID returns the product", func(t *testing.T) {
		repo := newRepo(t)
		in := sampleProducts()[0]

		saved, err := repo.Save(ctx, in)
		require.NoError(t, err)
		require.NotNil(t, saved)
		assert.NotEmpty(t, saved.ID)
		assert.True(t, in.Equal(*saved))

		found, err := repo.GetByID(ctx, saved.ID)
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, *saved, *found)
	})

	t.Run("GetByID of unknown ID is empty", func(t *testing.T) {
		repo := newRepo(t)
		seedRepository(t, repo)

		found, err := repo.GetByID(ctx, unknownID)
		require.NoError(t, err)
		assert.Nil(t, found)
	})

	t.Run("GetAll returns products in insertion order", func(t *testing.T) {
		repo := newRepo(t)

		empty, err := repo.GetAll(ctx)
		require.NoError(t, err)
		assert.NotNil(t, empty)
		assert.Empty(t, empty)

		seedRepository(t, repo)

		products, err := repo.GetAll(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"Apple iPhone XS Max", "Apple MacBook Pro", "Samsung Galaxy S10+"}, titles(products))
	})

	t.Run("SearchByTitle matches case-insensitive substrings", func(t *testing.T) {
		repo := newRepo(t)
		seedRepository(t, repo)

		tests := []struct {
			text     string
			expected []string
		}{
			{text: "apple", expected: []string{"Apple iPhone XS Max", "Apple MacBook Pro"}},
			{text: "MACBOOK", expected: []string{"Apple MacBook Pro"}},
			{text: "S10+", expected: []string{"Samsung Galaxy S10+"}},
			{text: "nokia", expected: []string{}},
			{text: "%", expected: []string{}},
			{text: ".*", expected: []string{}},
		}

		for _, tt := range tests {
			products, err := repo.SearchByTitle(ctx, tt.text)
			require.NoError(t, err, tt.text)
			assert.NotNil(t, products, tt.text)
			assert.Equal(t, tt.expected, titles(products), tt.text)
		}
	})

	t.Run("Save with existing ID replaces the product", func(t *testing.T) {
		repo := newRepo(t)
		saved := seedRepository(t, repo)

		replacement := model.Product{
			ID:          saved[1].ID,
			Title:       "Apple MacBook Air",
			Description: "Thin",
			Price:       999.5,
		}

		updated, err := repo.Save(ctx, replacement)
		require.NoError(t, err)
		assert.Equal(t, replacement, *updated)

		found, err := repo.GetByID(ctx, saved[1].ID)
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, replacement, *found)

		all, err := repo.GetAll(ctx)
		require.NoError(t, err)
		assert.Len(t, all, 3)
		assert.Equal(t, "Apple MacBook Air", all[1].Title)
	})

	t.Run("Delete removes only the given product", func(t *testing.T) {
		repo := newRepo(t)
		saved := seedRepository(t, repo)

		require.NoError(t, repo.Delete(ctx, saved[0].ID))

		found, err := repo.GetByID(ctx, saved[0].ID)
		require.NoError(t, err)
		assert.Nil(t, found)

		all, err := repo.GetAll(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"Apple MacBook Pro", "Samsung Galaxy S10+"}, titles(all))

		require.NoError(t, repo.Delete(ctx, unknownID))
		all, err = repo.GetAll(ctx)
		require.NoError(t, err)
		assert.Len(t, all, 2)
	})

	t.Run("DeleteAll empties the store", func(t *testing.T) {
		repo := newRepo(t)
		seedRepository(t, repo)

		require.NoError(t, repo.DeleteAll(ctx))

		all, err := repo.GetAll(ctx)
		require.NoError(t, err)
		assert.Empty(t, all)
	})
}
