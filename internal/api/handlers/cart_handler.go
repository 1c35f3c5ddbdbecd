package handlers

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"github.com/Cheertaboi/storefront-service/internal/api/respond"
	"github.com/Cheertaboi/storefront-service/internal/models"
)

type CartService interface {
	GetCart(ctx context.Context, userID string) (*models.CartView, error)
	AddToCart(ctx context.Context, userID string, in models.AddToCartInput) (*models.CartView, error)
	UpdateQuantity(ctx context.Context, userID, itemID string, in models.UpdateQuantityInput) (*models.CartView, error)
	RemoveFromCart(ctx context.Context, userID, itemID string) (*models.CartView, error)
	ItemCount(ctx context.Context, userID string) (int, error)
}

type CartHandler struct {
	svc CartService
	log *zap.Logger
}

func NewCartHandler(svc CartService, log *zap.Logger) *CartHandler {
	return &CartHandler{svc: svc, log: log}
}

// Get handles GET /api/cart
func (h *CartHandler) Get(w http.ResponseWriter, r *http.Request) {
	cart, err := h.svc.GetCart(r.Context(), actor(r))
	if err != nil {
		respond.Error(w, h.log, err)
		return
	}
	respond.JSON(w, http.StatusOK, cart)
}

// Count handles GET /api/cart/count
func (h *CartHandler) Count(w http.ResponseWriter, r *http.Request) {
	n, err := h.svc.ItemCount(r.Context(), actor(r))
	if err != nil {
		respond.Error(w, h.log, err)
		return
	}
	respond.JSON(w, http.StatusOK, map[string]int{"count": n})
}

// AddItem handles POST /api/cart/items
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var in models.AddToCartInput
	if err := decodeJSON(w, r, &in); err != nil {
		respond.Error(w, h.log, err)
		return
	}
	cart, err := h.svc.AddToCart(r.Context(), actor(r), in)
	if err != nil {
		respond.Error(w, h.log, err)
		return
	}
	respond.JSON(w, http.StatusOK, cart)
}

// UpdateItem handles PATCH /api/cart/items/{id}
func (h *CartHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	var in models.UpdateQuantityInput
	if err := decodeJSON(w, r, &in); err != nil {
		respond.Error(w, h.log, err)
		return
	}
	cart, err := h.svc.UpdateQuantity(r.Context(), actor(r), idParam(r), in)
	if err != nil {
		respond.Error(w, h.log, err)
		return
	}
	respond.JSON(w, http.StatusOK, cart)
}

// RemoveItem handles DELETE /api/cart/items/{id}
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	cart, err := h.svc.RemoveFromCart(r.Context(), actor(r), idParam(r))
	if err != nil {
		respond.Error(w, h.log, err)
		return
	}
	respond.JSON(w, http.StatusOK, cart)
}
