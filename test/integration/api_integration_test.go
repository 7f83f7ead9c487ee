package integration

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"products-api/internal/handler"
	"products-api/internal/model"
	"products-api/internal/repository"
	"products-api/internal/router"
	"products-api/internal/service"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestServer(t *testing.T, repo repository.ProductRepository) http.Handler {
	t.Helper()

	logger := zerolog.Nop()

	productService := service.NewProductService(repo, logger)
	productHandler := handler.NewProductHandler(productService, logger)

	return router.New(productHandler, logger, router.Options{})
}

func sendJSON(t *testing.T, server http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()

	server.ServeHTTP(w, req)
	return w
}

func createProduct(t *testing.T, server http.Handler, title, description string, price float64) model.Product {
	t.Helper()

	w := sendJSON(t, server, http.MethodPost, "/products", map[string]any{
		"title":       title,
		"description": description,
		"price":       price,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var product model.Product
	require.NoError(t, json.NewDecoder(w.Body).Decode(&product))
	return product
}

func TestProductAPI_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	for _, store := range SetupStores(t) {
		server := setupTestServer(t, store.Repo)

		t.Run(store.Name, func(t *testing.T) {
			t.Run("POST then GET returns the same product", func(t *testing.T) {
				CleanupStore(t, store.Repo)

				created := createProduct(t, server, "Apple iPhone XS Max", "New iPhone XS Max", 1099.99)
				assert.NotEmpty(t, created.ID)

				w := sendJSON(t, server, http.MethodGet, "/products/"+created.ID, nil)
				require.Equal(t, http.StatusOK, w.Code)

				var fetched model.Product
				require.NoError(t, json.NewDecoder(w.Body).Decode(&fetched))
				assert.Equal(t, created, fetched)
			})

			t.Run("POST sets Location header", func(t *testing.T) {
				CleanupStore(t, store.Repo)

				w := sendJSON(t, server, http.MethodPost, "/products", map[string]any{
					"id":          "client-id",
					"title":       "Apple MacBook Pro",
					"description": "New MacBook",
					"price":       2599.99,
				})
				require.Equal(t, http.StatusCreated, w.Code)

				var product model.Product
				require.NoError(t, json.NewDecoder(w.Body).Decode(&product))
				assert.NotEqual(t, "client-id", product.ID)
				assert.Equal(t, "/products/"+product.ID, w.Header().Get("Location"))
			})

			t.Run("GET /products preserves insertion order", func(t *testing.T) {
				CleanupStore(t, store.Repo)

				first := createProduct(t, server, "Apple iPhone XS Max", "New iPhone XS Max", 1099.99)
				second := createProduct(t, server, "Apple MacBook Pro", "New MacBook", 2599.99)
				third := createProduct(t, server, "Samsung Galaxy S10+", "New Galaxy!!", 799.99)

				w := sendJSON(t, server, http.MethodGet, "/products", nil)
				require.Equal(t, http.StatusOK, w.Code)

				var products []model.Product
				require.NoError(t, json.NewDecoder(w.Body).Decode(&products))
				assert.Equal(t, []model.Product{first, second, third}, products)
			})

			t.Run("GET /products on empty store returns empty array", func(t *testing.T) {
				CleanupStore(t, store.Repo)

				w := sendJSON(t, server, http.MethodGet, "/products", nil)
				require.Equal(t, http.StatusOK, w.Code)
				assert.JSONEq(t, `[]`, w.Body.String())
			})

			t.Run("GET /products/search/{title} matches case-insensitively", func(t *testing.T) {
				CleanupStore(t, store.Repo)

				createProduct(t, server, "Apple iPhone XS Max", "New iPhone XS Max", 1099.99)
				createProduct(t, server, "Apple MacBook Pro", "New MacBook", 2599.99)
				createProduct(t, server, "Samsung Galaxy S10+", "New Galaxy!!", 799.99)

				tests := []struct {
					path     string
					expected []string
				}{
					{path: "/products/search/apple", expected: []string{"Apple iPhone XS Max", "Apple MacBook Pro"}},
					{path: "/products/search/GALAXY", expected: []string{"Samsung Galaxy S10+"}},
					{path: "/products/search/S10+", expected: []string{"Samsung Galaxy S10+"}},
					{path: "/products/search/nokia", expected: []string{}},
				}

				for _, tt := range tests {
					w := sendJSON(t, server, http.MethodGet, tt.path, nil)
					require.Equal(t, http.StatusOK, w.Code)

					var products []model.Product
					require.NoError(t, json.NewDecoder(w.Body).Decode(&products))

					titles := make([]string, 0, len(products))
					for _, p := range products {
						titles = append(titles, p.Title)
					}
					assert.Equal(t, tt.expected, titles, tt.path)
				}
			})

			t.Run("PUT overwrites fields and keeps id", func(t *testing.T) {
				CleanupStore(t, store.Repo)

				created := createProduct(t, server, "Apple MacBook Pro", "New MacBook", 2599.99)

				w := sendJSON(t, server, http.MethodPut, "/products/"+created.ID, map[string]any{
					"title":       "Apple MacBook Air",
					"description": "Light",
					"price":       1299.0,
				})
				require.Equal(t, http.StatusOK, w.Code)

				var updated model.Product
				require.NoError(t, json.NewDecoder(w.Body).Decode(&updated))
				assert.Equal(t, model.Product{ID: created.ID, Title: "Apple MacBook Air", Description: "Light", Price: 1299}, updated)

				w = sendJSON(t, server, http.MethodGet, "/products", nil)
				var products []model.Product
				require.NoError(t, json.NewDecoder(w.Body).Decode(&products))
				assert.Equal(t, []model.Product{updated}, products)
			})

			t.Run("PUT unknown id returns 404 and stores nothing", func(t *testing.T) {
				CleanupStore(t, store.Repo)

				w := sendJSON(t, server, http.MethodPut, "/products/5f1d7e9b8c9d440000000000", map[string]any{
					"title":       "Ghost",
					"description": "Nothing",
					"price":       1.0,
				})
				assert.Equal(t, http.StatusNotFound, w.Code)

				w = sendJSON(t, server, http.MethodGet, "/products", nil)
				assert.JSONEq(t, `[]`, w.Body.String())
			})

			t.Run("DELETE removes the product", func(t *testing.T) {
				CleanupStore(t, store.Repo)

				created := createProduct(t, server, "Apple MacBook Pro", "New MacBook", 2599.99)

				w := sendJSON(t, server, http.MethodDelete, "/products/"+created.ID, nil)
				assert.Equal(t, http.StatusOK, w.Code)
				assert.Empty(t, w.Body.String())

				w = sendJSON(t, server, http.MethodGet, "/products/"+created.ID, nil)
				assert.Equal(t, http.StatusNotFound, w.Code)

				w = sendJSON(t, server, http.MethodDelete, "/products/"+created.ID, nil)
				assert.Equal(t, http.StatusNotFound, w.Code)
			})

			t.Run("POST with invalid payload returns 400", func(t *testing.T) {
				CleanupStore(t, store.Repo)

				w := sendJSON(t, server, http.MethodPost, "/products", map[string]any{
					"title":       "",
					"description": "d",
					"price":       0,
				})
				assert.Equal(t, http.StatusBadRequest, w.Code)

				w = sendJSON(t, server, http.MethodGet, "/products", nil)
				assert.JSONEq(t, `[]`, w.Body.String())
			})
		})
	}
}

func TestCORS_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	server := setupTestServer(t, SetupPostgres(t))

	t.Run("OPTIONS request returns CORS headers", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodOptions, "/products", nil)
		w := httptest.NewRecorder()

		server.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
		assert.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), "GET")
	})
}
