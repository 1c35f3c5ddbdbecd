package handlers

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"github.com/Cheertaboi/storefront-service/internal/api/respond"
	"github.com/Cheertaboi/storefront-service/internal/models"
)

type UserService interface {
	List(ctx context.Context, actorID string, req models.PageRequest) (models.Page[models.User], error)
	Get(ctx context.Context, actorID, id string) (*models.UserDetail, error)
	UpdateRole(ctx context.Context, actorID, id string, in models.UpdateRoleInput) (*models.User, error)
}

type UserHandler struct {
	svc UserService
	log *zap.Logger
}

func NewUserHandler(svc UserService, log *zap.Logger) *UserHandler {
	return &UserHandler{svc: svc, log: log}
}

func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
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

func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	u, err := h.svc.Get(r.Context(), actor(r), idParam(r))
	if err != nil {
		respond.Error(w, h.log, err)
		return
	}
	respond.JSON(w, http.StatusOK, u)
}

// UpdateRole handles PATCH /api/admin/users/{id}/role
func (h *UserHandler) UpdateRole(w http.ResponseWriter, r *http.Request) {
	var in models.UpdateRoleInput
	if err := decodeJSON(w, r, &in); err != nil {
		respond.Error(w, h.log, err)
		return
	}
	u, err := h.svc.UpdateRole(r.Context(), actor(r), idParam(r), in)
	if err != nil {
		respond.Error(w, h.log, err)
		return
	}
	respond.JSON(w, http.StatusOK, u)
}
