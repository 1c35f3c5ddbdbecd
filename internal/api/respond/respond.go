// Package respond writes JSON bodies and maps domain errors to HTTP status
// codes.
package respond

import (
	"encoding/json"
	"net/http"

	"github.com/go-faster/errors"
	"go.uber.org/zap"

	"github.com/Cheertaboi/storefront-service/internal/models"
)

type ErrorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

func JSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// Error writes err with the status its sentinel maps to. Unmapped errors
// become a 500 and are logged; their text never reaches the client.
func Error(w http.ResponseWriter, log *zap.Logger, err error) {
	status, body := classify(err)
	if status == http.StatusInternalServerError {
		log.Error("request failed", zap.Error(err))
	}
	JSON(w, status, body)
}

func classify(err error) (int, ErrorBody) {
	var verr *models.ValidationError
	switch {
	case errors.As(err, &verr):
		return http.StatusBadRequest, ErrorBody{Error: "validation_error", Message: verr.Message, Field: verr.Field}
	case errors.Is(err, models.ErrValidation):
		return http.StatusBadRequest, ErrorBody{Error: "validation_error", Message: err.Error()}
	case errors.Is(err, models.ErrUnauthenticated):
		return http.StatusUnauthorized, ErrorBody{Error: "unauthenticated", Message: "authentication required"}
	case errors.Is(err, models.ErrForbidden):
		return http.StatusForbidden, ErrorBody{Error: "forbidden", Message: "admin role required"}
	case errors.Is(err, models.ErrNotFound):
		return http.StatusNotFound, ErrorBody{Error: "not_found", Message: err.Error()}
	case errors.Is(err, models.ErrConflict):
		return http.StatusConflict, ErrorBody{Error: "conflict", Message: err.Error()}
	case errors.Is(err, models.ErrEmptyCart):
		return http.StatusUnprocessableEntity, ErrorBody{Error: "empty_cart", Message: "cart is empty"}
	case errors.Is(err, models.ErrUnavailable):
		return http.StatusServiceUnavailable, ErrorBody{Error: "unavailable", Message: err.Error()}
	}
	return http.StatusInternalServerError, ErrorBody{Error: "internal_error", Message: "internal error"}
}
