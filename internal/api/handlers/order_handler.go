package handlers

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"github.com/Cheertaboi/storefront-service/internal/api/respond"
	"github.com/Cheertaboi/storefront-service/internal/models"
)

type OrderService interface {
	Checkout(ctx context.Context, userID string, in models.CheckoutInput) (*models.Order, error)
	Get(ctx context.Context, actorID, id string) (*models.Order, error)
	ListMine(ctx context.Context, userID string) ([]models.Order, error)
	List(ctx context.Context, actorID string, req models.PageRequest) (models.Page[models.Order], error)
	UpdateStatus(ctx context.Context, actorID, id string, status models.OrderStatus) (*models.Order, error)
}

type OrderHandler struct {
	svc OrderService
	log *zap.Logger
}

func NewOrderHandler(svc OrderService, log *zap.Logger) *OrderHandler {
	return &OrderHandler{svc: svc, log: log}
}

// Checkout handles POST /api/orders
func (h *OrderHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	var in models.CheckoutInput
	if err := decodeJSON(w, r, &in); err != nil {
		respond.Error(w, h.log, err)
		return
	}
	order, err := h.svc.Checkout(r.Context(), actor(r), in)
	if err != nil {
		respond.Error(w, h.log, err)
		return
	}
	respond.JSON(w, http.StatusCreated, order)
}

func (h *OrderHandler) Mine(w http.ResponseWriter, r *http.Request) {
	orders, err := h.svc.ListMine(r.Context(), actor(r))
	if err != nil {
		respond.Error(w, h.log, err)
		return
	}
	respond.JSON(w, http.StatusOK, orders)
}

func (h *OrderHandler) Get(w http.ResponseWriter, r *http.Request) {
	order, err := h.svc.Get(r.Context(), actor(r), idParam(r))
	if err != nil {
		respond.Error(w, h.log, err)
		return
	}
	respond.JSON(w, http.StatusOK, order)
}

func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	req, err := pageRequest(r)
	if err != nil {
		respond.Error(w, h.log, err)
		return
	}
	page, err := h.svc.List(r.Context(), actor(r), req)
	if err != nil {
		respond.Error(w, h.log, err)
		return
	}
	respond.JSON(w, http.StatusOK, page)
}

// UpdateStatus handles PATCH /api/admin/orders/{id}/status
func (h *OrderHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req statusRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respond.Error(w, h.log, err)
		return
	}
	order, err := h.svc.UpdateStatus(r.Context(), actor(r), idParam(r), models.OrderStatus(req.Status))
	if err != nil {
		respond.Error(w, h.log, err)
		return
	}
	respond.JSON(w, http.StatusOK, order)
}
