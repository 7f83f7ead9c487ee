package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"

	"products-api/internal/model"
	"products-api/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// ProductHandler handles product-related HTTP requests.
type ProductHandler struct {
	service service.ProductService
	logger  zerolog.Logger
}

// NewProductHandler creates a new product handler.
func NewProductHandler(service service.ProductService, logger zerolog.Logger) *ProductHandler {
	return &ProductHandler{
		service: service,
		logger:  logger.With().Str("handler", "product").Logger(),
	}
}

// RegisterRoutes mounts the product endpoints on r.
func (h *ProductHandler) RegisterRoutes(r chi.Router) {
	r.Route("/products", func(r chi.Router) {
		r.Get("/", h.GetAll)
		r.Post("/", h.Create)
		r.Get("/search/{title}", h.SearchByTitle)
		r.Get("/{id}", h.GetByID)
		r.Put("/{id}", h.Update)
		r.Delete("/{id}", h.Delete)
	})
}

// GetAll handles GET /products.
func (h *ProductHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	products, err := h.service.GetAll(r.Context())
	if err != nil {
		writeInternalError(w, r, err, "failed to retrieve products", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, nonNil(products), h.logger)
}

// GetByID handles GET /products/{id}.
func (h *ProductHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id := pathParam(r, "id")

	product, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		writeInternalError(w, r, err, "failed to retrieve product", h.logger)
		return
	}

	if product == nil {
		w.WriteHeader(http.StatusNotFound)
		return
	}

	writeJSON(w, http.StatusOK, product, h.logger)
}

// SearchByTitle handles GET /products/search/{title}.
func (h *ProductHandler) SearchByTitle(w http.ResponseWriter, r *http.Request) {
	title := pathParam(r, "title")

	products, err := h.service.SearchByTitle(r.Context(), title)
	if err != nil {
		writeInternalError(w, r, err, "failed to search products", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, nonNil(products), h.logger)
}

// Create handles POST /products. Any id in the payload is ignored.
func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decodeProduct(w, r)
	if !ok {
		return
	}

	product, err := h.service.Create(r.Context(), req.ToProduct())
	if err != nil {
		writeInternalError(w, r, err, "failed to create product", h.logger)
		return
	}

	w.Header().Set("Location", "/products/"+url.PathEscape(product.ID))
	writeJSON(w, http.StatusCreated, product, h.logger)
}

// Update handles PUT /products/{id}.
func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := pathParam(r, "id")

	req, ok := h.decodeProduct(w, r)
	if !ok {
		return
	}

	product, err := h.service.Update(r.Context(), id, req.ToProduct())
	if err != nil {
		writeInternalError(w, r, err, "failed to update product", h.logger)
		return
	}

	if product == nil {
		w.WriteHeader(http.StatusNotFound)
		return
	}

	writeJSON(w, http.StatusOK, product, h.logger)
}

// Delete handles DELETE /products/{id}.
func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := pathParam(r, "id")

	product, err := h.service.DeleteByID(r.Context(), id)
	if err != nil {
		writeInternalError(w, r, err, "failed to delete product", h.logger)
		return
	}

	if product == nil {
		w.WriteHeader(http.StatusNotFound)
		return
	}

	w.WriteHeader(http.StatusOK)
}

// decodeProduct reads and validates a product payload. On failure it writes a
// 400 response and reports false.
func (h *ProductHandler) decodeProduct(w http.ResponseWriter, r *http.Request) (model.ProductRequest, bool) {
	var req model.ProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, model.ErrorResponse{
			Error:   model.ErrCodeInvalidJSON,
			Message: "invalid request body",
		}, h.logger)
		return req, false
	}

	if err := req.Validate(); err != nil {
		var verr *model.ValidationError
		if !errors.As(err, &verr) {
			writeInternalError(w, r, err, "failed to validate product", h.logger)
			return req, false
		}
		writeError(w, r, http.StatusBadRequest, model.ErrorResponse{
			Error:   model.ErrCodeValidationFailed,
			Message: verr.Error(),
			Fields:  verr.Fields,
		}, h.logger)
		return req, false
	}

	return req, true
}

// pathParam returns the decoded value of a route parameter.
func pathParam(r *http.Request, name string) string {
	value := chi.URLParam(r, name)
	if r.URL.RawPath == "" {
		return value
	}
	if unescaped, err := url.PathUnescape(value); err == nil {
		return unescaped
	}
	return value
}

func nonNil(products []model.Product) []model.Product {
	if products == nil {
		return []model.Product{}
	}
	return products
}
