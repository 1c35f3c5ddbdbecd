package repository

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReportRepoDailyMetrics(t *testing.T) {
	db, mock := newMock(t)
	repo := NewReportRepo(db)
	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 2)

	mock.ExpectQuery(`FROM orders\s+WHERE created_at >= \$1 AND created_at < \$2`).
		WithArgs(start, end).
		WillReturnRows(sqlmock.NewRows([]string{"day", "count", "sum"}).
			AddRow("2024-03-01", 2, "55.50").
			AddRow("2024-03-02", 1, "10.00"))

	metrics, err := repo.DailyMetrics(context.Background(), start, end)
	require.NoError(t, err)
	require.Len(t, metrics, 2)
	assert.Equal(t, "2024-03-01", metrics[0].Date)
	assert.Equal(t, 2, metrics[0].OrderCount)
	assert.True(t, metrics[0].TotalRevenue.Equal(decimal.RequireFromString("55.5")))
}

func TestReportRepoDailyMetricsEmpty(t *testing.T) {
	db, mock := newMock(t)
	repo := NewReportRepo(db)

	mock.ExpectQuery(`FROM orders`).
		WillReturnRows(sqlmock.NewRows([]string{"day", "count", "sum"}))

	metrics, err := repo.DailyMetrics(context.Background(), time.Now(), time.Now())
	require.NoError(t, err)
	assert.NotNil(t, metrics)
	assert.Empty(t, metrics)
}
