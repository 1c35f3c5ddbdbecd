package handlers

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/Cheertaboi/storefront-service/internal/api/respond"
	"github.com/Cheertaboi/storefront-service/internal/models"
)

const dayLayout = "2006-01-02"

type ReportService interface {
	DailyMetrics(ctx context.Context, actorID string, firstDay, lastDay time.Time) (*models.DailyReport, error)
}

type ReportHandler struct {
	svc ReportService
	log *zap.Logger
}

func NewReportHandler(svc ReportService, log *zap.Logger) *ReportHandler {
	return &ReportHandler{svc: svc, log: log}
}

// Daily handles GET /api/admin/reports/daily?start=YYYY-MM-DD&end=YYYY-MM-DD
func (h *ReportHandler) Daily(w http.ResponseWriter, r *http.Request) {
	start, err := parseDay(r, "start")
	if err != nil {
		respond.Error(w, h.log, err)
		return
	}
	end, err := parseDay(r, "end")
	if err != nil {
		respond.Error(w, h.log, err)
		return
	}
	report, err := h.svc.DailyMetrics(r.Context(), actor(r), start, end)
	if err != nil {
		respond.Error(w, h.log, err)
		return
	}
	respond.JSON(w, http.StatusOK, report)
}

func parseDay(r *http.Request, key string) (time.Time, error) {
	v := r.URL.Query().Get(key)
	if v == "" {
		return time.Time{}, models.NewValidationError(key, "is required")
	}
	t, err := time.Parse(dayLayout, v)
	if err != nil {
		return time.Time{}, models.NewValidationError(key, "must be a date in YYYY-MM-DD form")
	}
	return t, nil
}
