package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/Cheertaboi/storefront-service/internal/models"
)

type ReportRepo struct {
	db *sql.DB
}

func NewReportRepo(db *sql.DB) *ReportRepo {
	return &ReportRepo{db: db}
}

// DailyMetrics groups orders created in [start, end) by calendar day.
func (r *ReportRepo) DailyMetrics(ctx context.Context, start, end time.Time) ([]models.DailyMetric, error) {
	query := `
		SELECT to_char(date_trunc('day', created_at), 'YYYY-MM-DD') AS day,
		       COUNT(*), COALESCE(SUM(total), 0)
		FROM orders
		WHERE created_at >= $1 AND created_at < $2
		GROUP BY day
		ORDER BY day
	`
	rows, err := r.db.QueryContext(ctx, query, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	metrics := []models.DailyMetric{}
	for rows.Next() {
		var m models.DailyMetric
		if err := rows.Scan(&m.Date, &m.OrderCount, &m.TotalRevenue); err != nil {
			return nil, err
		}
		metrics = append(metrics, m)
	}
	return metrics, rows.Err()
}

// TopProducts ranks products by units sold in [start, end).
func (r *ReportRepo) TopProducts(ctx context.Context, start, end time.Time, limit int) ([]models.TopProduct, error) {
	query := `
		SELECT p.id, p.name, p.price, p.image, SUM(oi.quantity) AS total_quantity
		FROM order_items oi
		JOIN orders o ON o.id = oi.order_id
		JOIN products p ON p.id = oi.product_id
		WHERE o.created_at >= $1 AND o.created_at < $2
		GROUP BY p.id, p.name, p.price, p.image
		ORDER BY total_quantity DESC, p.name
		LIMIT $3
	`
	rows, err := r.db.QueryContext(ctx, query, start, end, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	products := []models.TopProduct{}
	for rows.Next() {
		var p models.TopProduct
		if err := rows.Scan(&p.ID, &p.Name, &p.Price, &p.Image, &p.TotalQuantity); err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

func (r *ReportRepo) StatusDistribution(ctx context.Context, start, end time.Time) ([]models.StatusCount, error) {
	query := `
		SELECT status, COUNT(*)
		FROM orders
		WHERE created_at >= $1 AND created_at < $2
		GROUP BY status
		ORDER BY status
	`
	rows, err := r.db.QueryContext(ctx, query, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := []models.StatusCount{}
	for rows.Next() {
		var c models.StatusCount
		if err := rows.Scan(&c.Status, &c.Count); err != nil {
			return nil, err
		}
		counts = append(counts, c)
	}
	return counts, rows.Err()
}
