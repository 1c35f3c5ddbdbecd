package repository

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Cheertaboi/storefront-service/internal/models"
)

func TestOrderRepoCreateOrderWritesItems(t *testing.T) {
	db, mock := newMock(t)
	repo := NewOrderRepo(db)
	created := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO orders`).
		WithArgs("o1", "u1", "a1", "PENDING", sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"created_at", "updated_at"}).AddRow(created, created))
	mock.ExpectExec(`INSERT INTO order_items`).
		WithArgs("i1", "o1", "p1", 2, sqlmock.AnyArg(), "c1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO order_items`).
		WithArgs("i2", "o1", "p2", 1, sqlmock.AnyArg(), "").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	tx, err := db.Begin()
	require.NoError(t, err)

	order := &models.Order{
		ID: "o1", UserID: "u1", AddressID: "a1", Status: models.OrderPending,
		Total: decimal.RequireFromString("35.00"),
		Items: []models.OrderItem{
			{ID: "i1", ProductID: "p1", Quantity: 2, Price: decimal.RequireFromString("10.00"), CampaignID: "c1"},
			{ID: "i2", ProductID: "p2", Quantity: 1, Price: decimal.RequireFromString("15.00")},
		},
	}
	require.NoError(t, repo.CreateOrder(context.Background(), tx, order))
	require.NoError(t, tx.Commit())
	assert.Equal(t, created, order.CreatedAt)
}

func TestOrderRepoUpdateStatusMissing(t *testing.T) {
	db, mock := newMock(t)
	repo := NewOrderRepo(db)

	mock.ExpectExec(`UPDATE orders SET status`).
		WithArgs("o1", "SHIPPED").
		WillReturnResult(sqlmock.NewResult(0, 0))

	ok, err := repo.UpdateStatus(context.Background(), "o1", models.OrderShipped)
	require.NoError(t, err)
	assert.False(t, ok)
}
