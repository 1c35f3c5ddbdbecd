package repository

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCartRepoUpdateItemQuantityScopedToUser(t *testing.T) {
	db, mock := newMock(t)
	repo := NewCartRepo(db)

	mock.ExpectExec(`UPDATE cart_items ci SET quantity = \$3 FROM carts c`).
		WithArgs("other-user", "item1", 2).
		WillReturnResult(sqlmock.NewResult(0, 0))

	ok, err := repo.UpdateItemQuantity(context.Background(), "other-user", "item1", 2)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCartRepoItemCount(t *testing.T) {
	db, mock := newMock(t)
	repo := NewCartRepo(db)

	mock.ExpectQuery(`SELECT COALESCE\(SUM\(ci.quantity\), 0\)`).
		WithArgs("u1").
		WillReturnRows(sqlmock.NewRows([]string{"sum"}).AddRow(int64(5)))

	n, err := repo.ItemCount(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, 5, n)
}

func TestCartRepoLockByUserWithoutCart(t *testing.T) {
	db, mock := newMock(t)
	repo := NewCartRepo(db)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT id FROM carts WHERE user_id = \$1 FOR UPDATE`).
		WithArgs("u1").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectRollback()

	tx, err := db.Begin()
	require.NoError(t, err)
	id, err := repo.LockByUser(context.Background(), tx, "u1")
	require.NoError(t, err)
	assert.Empty(t, id)
	require.NoError(t, tx.Rollback())
}
