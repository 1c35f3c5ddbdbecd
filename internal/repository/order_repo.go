package repository

import (
	"context"
	"database/sql"

	"github.com/go-faster/errors"
	"github.com/lib/pq"

	"github.com/Cheertaboi/storefront-service/internal/models"
)

type OrderRepo struct {
	db *sql.DB
}

func NewOrderRepo(db *sql.DB) *OrderRepo {
	return &OrderRepo{db: db}
}

func (r *OrderRepo) CreateAddress(ctx context.Context, tx *sql.Tx, a *models.Address) error {
	query := `
		INSERT INTO addresses (id, user_id, line1, line2, city, state, postal_code, country)
		VALUES ($1, $2, $3, NULLIF($4, ''), $5, $6, $7, $8)
	`
	_, err := tx.ExecContext(ctx, query,
		a.ID, a.UserID, a.Line1, a.Line2, a.City, a.State, a.PostalCode, a.Country)
	if err != nil {
		return errors.Wrap(err, "insert address")
	}
	return nil
}

// CreateOrder inserts the order header and every item inside tx.
func (r *OrderRepo) CreateOrder(ctx context.Context, tx *sql.Tx, o *models.Order) error {
	query := `
		INSERT INTO orders (id, user_id, address_id, status, total, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
		RETURNING created_at, updated_at
	`
	err := tx.QueryRowContext(ctx, query, o.ID, o.UserID, o.AddressID, o.Status, o.Total).
		Scan(&o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return errors.Wrap(err, "insert order")
	}

	itemQuery := `
		INSERT INTO order_items (id, order_id, product_id, quantity, price, campaign_id)
		VALUES ($1, $2, $3, $4, $5, NULLIF($6, '')::uuid)
	`
	for _, it := range o.Items {
		_, err := tx.ExecContext(ctx, itemQuery,
			it.ID, o.ID, it.ProductID, it.Quantity, it.Price, it.CampaignID)
		if err != nil {
			return errors.Wrapf(err, "insert order item %s", it.ProductID)
		}
	}
	return nil
}

func (r *OrderRepo) CreatePayment(ctx context.Context, tx *sql.Tx, p *models.Payment) error {
	_, err := tx.ExecContext(ctx,
		`INSERT INTO payments (id, order_id, amount, status, method) VALUES ($1, $2, $3, $4, $5)`,
		p.ID, p.OrderID, p.Amount, p.Status, p.Method)
	if err != nil {
		return errors.Wrap(err, "insert payment")
	}
	return nil
}

const orderSelect = `
	SELECT o.id, o.user_id, u.email, o.address_id, o.status, o.total, o.created_at, o.updated_at
	FROM orders o
	JOIN users u ON u.id = o.user_id`

func (r *OrderRepo) queryOrders(ctx context.Context, query string, args ...any) ([]models.Order, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []models.Order
	for rows.Next() {
		var o models.Order
		err := rows.Scan(&o.ID, &o.UserID, &o.UserEmail, &o.AddressID, &o.Status, &o.Total, &o.CreatedAt, &o.UpdatedAt)
		if err != nil {
			return nil, err
		}
		o.Items = []models.OrderItem{}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := r.loadItems(ctx, orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *OrderRepo) loadItems(ctx context.Context, orders []models.Order) error {
	if len(orders) == 0 {
		return nil
	}
	ids := make([]string, len(orders))
	pos := make(map[string]int, len(orders))
	for i, o := range orders {
		ids[i] = o.ID
		pos[o.ID] = i
	}

	query := `
		SELECT oi.id, oi.order_id, oi.product_id, p.name, oi.quantity, oi.price,
		       COALESCE(oi.campaign_id::text, '')
		FROM order_items oi
		JOIN products p ON p.id = oi.product_id
		WHERE oi.order_id = ANY($1)
		ORDER BY p.name, oi.id
	`
	rows, err := r.db.QueryContext(ctx, query, pq.Array(ids))
	if err != nil {
		return errors.Wrap(err, "load order items")
	}
	defer rows.Close()

	for rows.Next() {
		var it models.OrderItem
		if err := rows.Scan(&it.ID, &it.OrderID, &it.ProductID, &it.ProductName, &it.Quantity, &it.Price, &it.CampaignID); err != nil {
			return err
		}
		i := pos[it.OrderID]
		orders[i].Items = append(orders[i].Items, it)
	}
	return rows.Err()
}

// GetByID returns the order with its items, address and payment.
func (r *OrderRepo) GetByID(ctx context.Context, id string) (*models.Order, error) {
	orders, err := r.queryOrders(ctx, orderSelect+` WHERE o.id = $1`, id)
	if err != nil {
		return nil, err
	}
	if len(orders) == 0 {
		return nil, nil
	}
	o := &orders[0]

	var a models.Address
	err = r.db.QueryRowContext(ctx, `
		SELECT id, user_id, line1, COALESCE(line2, ''), city, state, postal_code, country
		FROM addresses WHERE id = $1`, o.AddressID).
		Scan(&a.ID, &a.UserID, &a.Line1, &a.Line2, &a.City, &a.State, &a.PostalCode, &a.Country)
	switch {
	case err == nil:
		o.Address = &a
	case !errors.Is(err, sql.ErrNoRows):
		return nil, errors.Wrap(err, "load address")
	}

	var p models.Payment
	err = r.db.QueryRowContext(ctx,
		`SELECT id, order_id, amount, status, method FROM payments WHERE order_id = $1`, o.ID).
		Scan(&p.ID, &p.OrderID, &p.Amount, &p.Status, &p.Method)
	switch {
	case err == nil:
		o.Payment = &p
	case !errors.Is(err, sql.ErrNoRows):
		return nil, errors.Wrap(err, "load payment")
	}

	return o, nil
}

func (r *OrderRepo) ListByUser(ctx context.Context, userID string) ([]models.Order, error) {
	return r.queryOrders(ctx, orderSelect+` WHERE o.user_id = $1 ORDER BY o.created_at DESC`, userID)
}

func (r *OrderRepo) List(ctx context.Context, offset, limit int) ([]models.Order, error) {
	return r.queryOrders(ctx, orderSelect+` ORDER BY o.created_at DESC LIMIT $1 OFFSET $2`, limit, offset)
}

func (r *OrderRepo) Count(ctx context.Context) (int, error) {
	var total int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM orders`).Scan(&total)
	return total, err
}

func (r *OrderRepo) UpdateStatus(ctx context.Context, id string, status models.OrderStatus) (bool, error) {
	res, err := r.db.ExecContext(ctx,
		`UPDATE orders SET status = $2, updated_at = NOW() WHERE id = $1`, id, status)
	if err != nil {
		return false, err
	}
	return affected(res)
}

func (r *OrderRepo) AddressesByUser(ctx context.Context, userID string) ([]models.Address, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, user_id, line1, COALESCE(line2, ''), city, state, postal_code, country
		FROM addresses WHERE user_id = $1 ORDER BY id`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var addresses []models.Address
	for rows.Next() {
		var a models.Address
		if err := rows.Scan(&a.ID, &a.UserID, &a.Line1, &a.Line2, &a.City, &a.State, &a.PostalCode, &a.Country); err != nil {
			return nil, err
		}
		addresses = append(addresses, a)
	}
	return addresses, rows.Err()
}
