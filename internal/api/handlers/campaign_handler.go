package handlers

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"github.com/Cheertaboi/storefront-service/internal/api/respond"
	"github.com/Cheertaboi/storefront-service/internal/models"
)

type CampaignService interface {
	ListActive(ctx context.Context) ([]models.Campaign, error)
	List(ctx context.Context, actorID string, req models.PageRequest) (models.Page[models.Campaign], error)
	Get(ctx context.Context, actorID, id string) (*models.Campaign, error)
	Create(ctx context.Context, actorID string, c models.Campaign) (*models.Campaign, error)
	Update(ctx context.Context, actorID, id string, patch models.CampaignPatch) (*models.Campaign, error)
	UpdateStatus(ctx context.Context, actorID, id string, status models.CampaignStatus) (*models.Campaign, error)
	Delete(ctx context.Context, actorID, id string) error
}

type CampaignHandler struct {
	svc CampaignService
	log *zap.Logger
}

func NewCampaignHandler(svc CampaignService, log *zap.Logger) *CampaignHandler {
	return &CampaignHandler{svc: svc, log: log}
}

type statusRequest struct {
	Status string `json:"status"`
}

// ListActive handles GET /api/campaigns/active
func (h *CampaignHandler) ListActive(w http.ResponseWriter, r *http.Request) {
	campaigns, err := h.svc.ListActive(r.Context())
	if err != nil {
		respond.Error(w, h.log, err)
		return
	}
	respond.JSON(w, http.StatusOK, campaigns)
}

func (h *CampaignHandler) List(w http.ResponseWriter, r *http.Request) {
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

func (h *CampaignHandler) Get(w http.ResponseWriter, r *http.Request) {
	c, err := h.svc.Get(r.Context(), actor(r), idParam(r))
	if err != nil {
		respond.Error(w, h.log, err)
		return
	}
	respond.JSON(w, http.StatusOK, c)
}

func (h *CampaignHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in models.Campaign
	if err := decodeJSON(w, r, &in); err != nil {
		respond.Error(w, h.log, err)
		return
	}
	c, err := h.svc.Create(r.Context(), actor(r), in)
	if err != nil {
		respond.Error(w, h.log, err)
		return
	}
	respond.JSON(w, http.StatusCreated, c)
}

func (h *CampaignHandler) Update(w http.ResponseWriter, r *http.Request) {
	var patch models.CampaignPatch
	if err := decodeJSON(w, r, &patch); err != nil {
		respond.Error(w, h.log, err)
		return
	}
	c, err := h.svc.Update(r.Context(), actor(r), idParam(r), patch)
	if err != nil {
		respond.Error(w, h.log, err)
		return
	}
	respond.JSON(w, http.StatusOK, c)
}

// UpdateStatus handles PATCH /api/admin/campaigns/{id}/status
func (h *CampaignHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req statusRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respond.Error(w, h.log, err)
		return
	}
	c, err := h.svc.UpdateStatus(r.Context(), actor(r), idParam(r), models.CampaignStatus(req.Status))
	if err != nil {
		respond.Error(w, h.log, err)
		return
	}
	respond.JSON(w, http.StatusOK, c)
}

func (h *CampaignHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Delete(r.Context(), actor(r), idParam(r)); err != nil {
		respond.Error(w, h.log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
