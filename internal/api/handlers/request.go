package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/Cheertaboi/storefront-service/internal/api/middleware"
	"github.com/Cheertaboi/storefront-service/internal/models"
)

const (
	maxBodyBytes    = 1 << 20
	defaultPageSize = 10
)

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return models.NewValidationError("body", "invalid JSON body: %v", err)
	}
	return nil
}

// pageRequest reads page, page_size and search from the query string.
// Missing values fall back to the first page of defaultPageSize items.
func pageRequest(r *http.Request) (models.PageRequest, error) {
	q := r.URL.Query()
	req := models.PageRequest{Page: 1, PageSize: defaultPageSize, Search: q.Get("search")}

	if v := q.Get("page"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return req, models.NewValidationError("page", "must be an integer")
		}
		req.Page = n
	}
	if v := q.Get("page_size"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return req, models.NewValidationError("page_size", "must be an integer")
		}
		req.PageSize = n
	}
	return req, nil
}

func actor(r *http.Request) string {
	return middleware.UserID(r.Context())
}

func idParam(r *http.Request) string {
	return chi.URLParam(r, "id")
}
