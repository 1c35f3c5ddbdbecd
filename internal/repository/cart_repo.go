package repository

import (
	"context"
	"database/sql"

	"github.com/go-faster/errors"
	"github.com/google/uuid"

	"github.com/Cheertaboi/storefront-service/internal/models"
)

type CartRepo struct {
	db *sql.DB
}

func NewCartRepo(db *sql.DB) *CartRepo {
	return &CartRepo{db: db}
}

type querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

// EnsureCart returns the user's cart, creating it on first use.
func (r *CartRepo) EnsureCart(ctx context.Context, userID string) (*models.Cart, error) {
	query := `
		INSERT INTO carts (id, user_id) VALUES ($1, $2)
		ON CONFLICT (user_id) DO UPDATE SET user_id = EXCLUDED.user_id
		RETURNING id, user_id
	`
	var c models.Cart
	if err := r.db.QueryRowContext(ctx, query, uuid.NewString(), userID).Scan(&c.ID, &c.UserID); err != nil {
		return nil, errors.Wrap(err, "ensure cart")
	}
	return &c, nil
}

const cartItemSelect = `
	SELECT ci.id, ci.cart_id, ci.product_id, ci.quantity,
	       p.id, p.name, p.description, p.price, p.quantity, p.brand, p.image,
	       p.category_id, c.name, p.created_at, p.updated_at
	FROM cart_items ci
	JOIN products p ON p.id = ci.product_id
	JOIN categories c ON c.id = p.category_id
	WHERE ci.cart_id = $1
	ORDER BY p.name, ci.id`

func queryCartItems(ctx context.Context, q querier, cartID string) ([]models.CartItem, error) {
	rows, err := q.QueryContext(ctx, cartItemSelect, cartID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []models.CartItem
	for rows.Next() {
		var it models.CartItem
		p := &it.Product
		err := rows.Scan(
			&it.ID, &it.CartID, &it.ProductID, &it.Quantity,
			&p.ID, &p.Name, &p.Description, &p.Price, &p.Quantity, &p.Brand, &p.Image,
			&p.CategoryID, &p.CategoryName, &p.CreatedAt, &p.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

// Items returns the cart's lines joined with their products.
func (r *CartRepo) Items(ctx context.Context, cartID string) ([]models.CartItem, error) {
	return queryCartItems(ctx, r.db, cartID)
}

// AddItem inserts a line or adds quantity to the existing line for the
// same product.
func (r *CartRepo) AddItem(ctx context.Context, cartID, productID string, quantity int) error {
	query := `
		INSERT INTO cart_items (id, cart_id, product_id, quantity)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (cart_id, product_id)
		DO UPDATE SET quantity = cart_items.quantity + EXCLUDED.quantity
	`
	_, err := r.db.ExecContext(ctx, query, uuid.NewString(), cartID, productID, quantity)
	return err
}

// UpdateItemQuantity only touches items in the given user's cart.
func (r *CartRepo) UpdateItemQuantity(ctx context.Context, userID, itemID string, quantity int) (bool, error) {
	query := `
		UPDATE cart_items ci SET quantity = $3
		FROM carts c
		WHERE ci.id = $2 AND ci.cart_id = c.id AND c.user_id = $1
	`
	res, err := r.db.ExecContext(ctx, query, userID, itemID, quantity)
	if err != nil {
		return false, err
	}
	return affected(res)
}

func (r *CartRepo) RemoveItem(ctx context.Context, userID, itemID string) (bool, error) {
	query := `
		DELETE FROM cart_items ci
		USING carts c
		WHERE ci.id = $2 AND ci.cart_id = c.id AND c.user_id = $1
	`
	res, err := r.db.ExecContext(ctx, query, userID, itemID)
	if err != nil {
		return false, err
	}
	return affected(res)
}

// ItemCount sums quantities across the user's cart; 0 without a cart.
func (r *CartRepo) ItemCount(ctx context.Context, userID string) (int, error) {
	query := `
		SELECT COALESCE(SUM(ci.quantity), 0)
		FROM cart_items ci
		JOIN carts c ON c.id = ci.cart_id
		WHERE c.user_id = $1
	`
	var n int
	err := r.db.QueryRowContext(ctx, query, userID).Scan(&n)
	return n, err
}

// LockByUser locks the user's cart row for the rest of tx. It returns an
// empty id when the user has no cart.
func (r *CartRepo) LockByUser(ctx context.Context, tx *sql.Tx, userID string) (string, error) {
	var id string
	err := tx.QueryRowContext(ctx, `SELECT id FROM carts WHERE user_id = $1 FOR UPDATE`, userID).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	return id, err
}

func (r *CartRepo) ItemsTx(ctx context.Context, tx *sql.Tx, cartID string) ([]models.CartItem, error) {
	return queryCartItems(ctx, tx, cartID)
}

func (r *CartRepo) ClearTx(ctx context.Context, tx *sql.Tx, cartID string) error {
	_, err := tx.ExecContext(ctx, `DELETE FROM cart_items WHERE cart_id = $1`, cartID)
	return err
}
