package service

import (
	"context"
	"time"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"

	"github.com/Cheertaboi/storefront-service/internal/concurrency"
	"github.com/Cheertaboi/storefront-service/internal/models"
)

const topProductsLimit = 5

type ReportStore interface {
	DailyMetrics(ctx context.Context, start, end time.Time) ([]models.DailyMetric, error)
	TopProducts(ctx context.Context, start, end time.Time, limit int) ([]models.TopProduct, error)
	StatusDistribution(ctx context.Context, start, end time.Time) ([]models.StatusCount, error)
}

type ReportService struct {
	reports ReportStore
	authz   *Authorizer
}

func NewReportService(reports ReportStore, authz *Authorizer) *ReportService {
	return &ReportService{reports: reports, authz: authz}
}

// DailyMetrics reports on orders placed between the first and last day,
// both inclusive.
func (s *ReportService) DailyMetrics(ctx context.Context, actorID string, firstDay, lastDay time.Time) (*models.DailyReport, error) {
	if err := s.authz.RequireAdmin(ctx, actorID); err != nil {
		return nil, err
	}
	start := truncateDay(firstDay)
	end := truncateDay(lastDay).AddDate(0, 0, 1)
	if !start.Before(end) {
		return nil, models.NewValidationError("end", "must not be before start")
	}

	report := &models.DailyReport{}
	err := concurrency.Run(ctx, 3,
		func(ctx context.Context) error {
			metrics, err := s.reports.DailyMetrics(ctx, start, end)
			if err != nil {
				return errors.Wrap(err, "daily metrics")
			}
			report.DailyMetrics = metrics
			return nil
		},
		func(ctx context.Context) error {
			top, err := s.reports.TopProducts(ctx, start, end, topProductsLimit)
			if err != nil {
				return errors.Wrap(err, "top products")
			}
			report.TopProducts = top
			return nil
		},
		func(ctx context.Context) error {
			dist, err := s.reports.StatusDistribution(ctx, start, end)
			if err != nil {
				return errors.Wrap(err, "status distribution")
			}
			report.OrderStatusDistribution = dist
			return nil
		},
	)
	if err != nil {
		return nil, err
	}

	revenue := decimal.Zero
	for _, m := range report.DailyMetrics {
		report.Summary.TotalOrders += m.OrderCount
		revenue = revenue.Add(m.TotalRevenue)
	}
	report.Summary.TotalRevenue = revenue
	return report, nil
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
