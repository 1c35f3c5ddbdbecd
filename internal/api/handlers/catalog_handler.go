package handlers

import (
	"context"
	"io"
	"net/http"

	"go.uber.org/zap"

	"github.com/Cheertaboi/storefront-service/internal/api/respond"
	"github.com/Cheertaboi/storefront-service/internal/models"
	"github.com/Cheertaboi/storefront-service/internal/storage"
)

type CatalogService interface {
	ListProducts(ctx context.Context, req models.PageRequest) (models.Page[models.Product], error)
	ProductView(ctx context.Context, id string) (*models.ProductView, error)
	Quote(ctx context.Context, req models.QuoteRequest) ([]models.ProductQuote, error)
	CreateProduct(ctx context.Context, actorID string, in models.ProductInput) (*models.Product, error)
	UpdateProduct(ctx context.Context, actorID, id string, in models.ProductInput) (*models.Product, error)
	DeleteProduct(ctx context.Context, actorID, id string) error
	ListCategories(ctx context.Context) ([]models.Category, error)
	CreateCategory(ctx context.Context, actorID string, in models.CategoryInput) (*models.Category, error)
	RenameCategory(ctx context.Context, actorID, id string, in models.CategoryInput) (*models.Category, error)
	DeleteCategory(ctx context.Context, actorID, id string) error
	UploadProductImage(ctx context.Context, actorID string, r io.Reader, size int64, contentType string) (string, error)
}

type CatalogHandler struct {
	svc CatalogService
	log *zap.Logger
}

func NewCatalogHandler(svc CatalogService, log *zap.Logger) *CatalogHandler {
	return &CatalogHandler{svc: svc, log: log}
}

// ListProducts handles GET /api/products
func (h *CatalogHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	req, err := pageRequest(r)
	if err != nil {
		respond.Error(w, h.log, err)
		return
	}
	page, err := h.svc.ListProducts(r.Context(), req)
	if err != nil {
		respond.Error(w, h.log, err)
		return
	}
	respond.JSON(w, http.StatusOK, page)
}

// GetProduct handles GET /api/products/{id}
// The product comes back priced against the active campaigns.
func (h *CatalogHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	view, err := h.svc.ProductView(r.Context(), idParam(r))
	if err != nil {
		respond.Error(w, h.log, err)
		return
	}
	respond.JSON(w, http.StatusOK, view)
}

// Quote handles POST /api/campaigns/quote
func (h *CatalogHandler) Quote(w http.ResponseWriter, r *http.Request) {
	var req models.QuoteRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respond.Error(w, h.log, err)
		return
	}
	quotes, err := h.svc.Quote(r.Context(), req)
	if err != nil {
		respond.Error(w, h.log, err)
		return
	}
	respond.JSON(w, http.StatusOK, map[string]any{"quotes": quotes})
}

func (h *CatalogHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var in models.ProductInput
	if err := decodeJSON(w, r, &in); err != nil {
		respond.Error(w, h.log, err)
		return
	}
	p, err := h.svc.CreateProduct(r.Context(), actor(r), in)
	if err != nil {
		respond.Error(w, h.log, err)
		return
	}
	respond.JSON(w, http.StatusCreated, p)
}

func (h *CatalogHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	var in models.ProductInput
	if err := decodeJSON(w, r, &in); err != nil {
		respond.Error(w, h.log, err)
		return
	}
	p, err := h.svc.UpdateProduct(r.Context(), actor(r), idParam(r), in)
	if err != nil {
		respond.Error(w, h.log, err)
		return
	}
	respond.JSON(w, http.StatusOK, p)
}

func (h *CatalogHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DeleteProduct(r.Context(), actor(r), idParam(r)); err != nil {
		respond.Error(w, h.log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// UploadImage handles POST /api/admin/products/images with a multipart
// "file" field.
func (h *CatalogHandler) UploadImage(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, storage.MaxImageSize+maxBodyBytes)
	file, header, err := r.FormFile("file")
	if err != nil {
		respond.Error(w, h.log, models.NewValidationError("file", "multipart field \"file\" is required"))
		return
	}
	defer file.Close()

	url, err := h.svc.UploadProductImage(r.Context(), actor(r), file, header.Size, header.Header.Get("Content-Type"))
	if err != nil {
		respond.Error(w, h.log, err)
		return
	}
	respond.JSON(w, http.StatusCreated, map[string]string{"url": url})
}

// ListCategories handles GET /api/categories
func (h *CatalogHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.svc.ListCategories(r.Context())
	if err != nil {
		respond.Error(w, h.log, err)
		return
	}
	respond.JSON(w, http.StatusOK, categories)
}

func (h *CatalogHandler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var in models.CategoryInput
	if err := decodeJSON(w, r, &in); err != nil {
		respond.Error(w, h.log, err)
		return
	}
	c, err := h.svc.CreateCategory(r.Context(), actor(r), in)
	if err != nil {
		respond.Error(w, h.log, err)
		return
	}
	respond.JSON(w, http.StatusCreated, c)
}

func (h *CatalogHandler) RenameCategory(w http.ResponseWriter, r *http.Request) {
	var in models.CategoryInput
	if err := decodeJSON(w, r, &in); err != nil {
		respond.Error(w, h.log, err)
		return
	}
	c, err := h.svc.RenameCategory(r.Context(), actor(r), idParam(r), in)
	if err != nil {
		respond.Error(w, h.log, err)
		return
	}
	respond.JSON(w, http.StatusOK, c)
}

func (h *CatalogHandler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DeleteCategory(r.Context(), actor(r), idParam(r)); err != nil {
		respond.Error(w, h.log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
