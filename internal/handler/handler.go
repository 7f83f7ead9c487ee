package handler

import (
	"encoding/json"
	"net/http"

	"products-api/internal/model"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
)

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data interface{}, logger zerolog.Logger) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Error().Err(err).Int("status", status).Msg("failed to encode response")
	}
}

// writeError writes an error response with the given status code.
func writeError(w http.ResponseWriter, r *http.Request, status int, resp model.ErrorResponse, logger zerolog.Logger) {
	resp.CorrelationID = middleware.GetReqID(r.Context())

	event := logger.Warn()
	if status >= http.StatusInternalServerError {
		event = logger.Error()
	}
	event.Str("error", resp.Error).
		Str("message", resp.Message).
		Int("status", status).
		Str("correlation_id", resp.CorrelationID).
		Msg("handler error")

	writeJSON(w, status, resp, logger)
}

// writeInternalError logs err and answers with a generic 500.
func writeInternalError(w http.ResponseWriter, r *http.Request, err error, message string, logger zerolog.Logger) {
	logger.Error().Err(err).Str("path", r.URL.Path).Msg(message)
	writeError(w, r, http.StatusInternalServerError, model.ErrorResponse{
		Error:   model.ErrCodeInternalError,
		Message: message,
	}, logger)
}
