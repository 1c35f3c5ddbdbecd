package handlers

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"github.com/Cheertaboi/storefront-service/internal/api/respond"
	"github.com/Cheertaboi/storefront-service/internal/models"
)

type AuthService interface {
	Register(ctx context.Context, in models.RegisterInput) (*models.User, error)
	Login(ctx context.Context, in models.LoginInput) (*models.Session, error)
}

type AuthHandler struct {
	svc AuthService
	log *zap.Logger
}

func NewAuthHandler(svc AuthService, log *zap.Logger) *AuthHandler {
	return &AuthHandler{svc: svc, log: log}
}

// Register handles POST /api/auth/register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var in models.RegisterInput
	if err := decodeJSON(w, r, &in); err != nil {
		respond.Error(w, h.log, err)
		return
	}
	u, err := h.svc.Register(r.Context(), in)
	if err != nil {
		respond.Error(w, h.log, err)
		return
	}
	respond.JSON(w, http.StatusCreated, map[string]string{"id": u.ID, "email": u.Email})
}

// Login handles POST /api/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var in models.LoginInput
	if err := decodeJSON(w, r, &in); err != nil {
		respond.Error(w, h.log, err)
		return
	}
	session, err := h.svc.Login(r.Context(), in)
	if err != nil {
		respond.Error(w, h.log, err)
		return
	}
	respond.JSON(w, http.StatusOK, session)
}
