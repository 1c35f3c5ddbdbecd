package repository

import (
	"context"
	"database/sql"

	"github.com/go-faster/errors"
	"github.com/lib/pq"

	"github.com/Cheertaboi/storefront-service/internal/models"
)

type ProductRepo struct {
	db *sql.DB
}

func NewProductRepo(db *sql.DB) *ProductRepo {
	return &ProductRepo{db: db}
}

const productSelect = `
	SELECT p.id, p.name, p.description, p.price, p.quantity, p.brand, p.image,
	       p.category_id, c.name, p.created_at, p.updated_at
	FROM products p
	JOIN categories c ON c.id = p.category_id`

const productSearch = `($1 = '' OR p.name ILIKE '%' || $1 || '%' OR p.description ILIKE '%' || $1 || '%')`

func scanProduct(row rowScanner) (models.Product, error) {
	var p models.Product
	err := row.Scan(
		&p.ID,
		&p.Name,
		&p.Description,
		&p.Price,
		&p.Quantity,
		&p.Brand,
		&p.Image,
		&p.CategoryID,
		&p.CategoryName,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	return p, err
}

// List returns products newest first, matching search against name and
// description.
func (r *ProductRepo) List(ctx context.Context, search string, offset, limit int) ([]models.Product, error) {
	query := productSelect + `
		WHERE ` + productSearch + `
		ORDER BY p.created_at DESC
		LIMIT $2 OFFSET $3`

	rows, err := r.db.QueryContext(ctx, query, search, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []models.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

func (r *ProductRepo) Count(ctx context.Context, search string) (int, error) {
	var total int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM products p WHERE `+productSearch, search).Scan(&total)
	return total, err
}

func (r *ProductRepo) GetByID(ctx context.Context, id string) (*models.Product, error) {
	p, err := scanProduct(r.db.QueryRowContext(ctx, productSelect+` WHERE p.id = $1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

// ListByIDs returns the products among ids that exist, in no particular
// order.
func (r *ProductRepo) ListByIDs(ctx context.Context, ids []string) ([]models.Product, error) {
	rows, err := r.db.QueryContext(ctx, productSelect+` WHERE p.id = ANY($1)`, pq.Array(ids))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []models.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

func (r *ProductRepo) Create(ctx context.Context, p *models.Product) error {
	query := `
		INSERT INTO products
		(id, name, description, price, quantity, brand, image, category_id, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,NOW(),NOW())
		RETURNING created_at, updated_at
	`
	return r.db.QueryRowContext(ctx, query,
		p.ID, p.Name, p.Description, p.Price, p.Quantity, p.Brand, p.Image, p.CategoryID,
	).Scan(&p.CreatedAt, &p.UpdatedAt)
}

// Update reports false when no product has p.ID.
func (r *ProductRepo) Update(ctx context.Context, p *models.Product) (bool, error) {
	query := `
		UPDATE products SET
			name = $2, description = $3, price = $4, quantity = $5,
			brand = $6, image = $7, category_id = $8, updated_at = NOW()
		WHERE id = $1
		RETURNING created_at, updated_at
	`
	err := r.db.QueryRowContext(ctx, query,
		p.ID, p.Name, p.Description, p.Price, p.Quantity, p.Brand, p.Image, p.CategoryID,
	).Scan(&p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (r *ProductRepo) Delete(ctx context.Context, id string) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	return affected(res)
}
