package models

import "github.com/shopspring/decimal"

type DailyMetric struct {
	Date         string          `json:"date"`
	OrderCount   int             `json:"order_count"`
	TotalRevenue decimal.Decimal `json:"total_revenue"`
}

type TopProduct struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	Price         decimal.Decimal `json:"price"`
	Image         string          `json:"image"`
	TotalQuantity int             `json:"total_quantity"`
}

type StatusCount struct {
	Status OrderStatus `json:"status"`
	Count  int         `json:"count"`
}

type ReportSummary struct {
	TotalOrders  int             `json:"total_orders"`
	TotalRevenue decimal.Decimal `json:"total_revenue"`
}

type DailyReport struct {
	DailyMetrics            []DailyMetric `json:"daily_metrics"`
	TopProducts             []TopProduct  `json:"top_products"`
	OrderStatusDistribution []StatusCount `json:"order_status_distribution"`
	Summary                 ReportSummary `json:"summary"`
}
