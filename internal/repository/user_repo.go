package repository

import (
	"context"
	"database/sql"

	"github.com/go-faster/errors"

	"github.com/Cheertaboi/storefront-service/internal/models"
)

type UserRepo struct {
	db *sql.DB
}

func NewUserRepo(db *sql.DB) *UserRepo {
	return &UserRepo{db: db}
}

const userSelect = `
	SELECT u.id, u.email, COALESCE(u.name, ''), u.hashed_password, u.role, u.created_at,
	       (SELECT COUNT(*) FROM orders o WHERE o.user_id = u.id)
	FROM users u`

func scanUser(row rowScanner) (*models.User, error) {
	var u models.User
	err := row.Scan(&u.ID, &u.Email, &u.Name, &u.HashedPassword, &u.Role, &u.CreatedAt, &u.OrderCount)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

func (r *UserRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	return scanUser(r.db.QueryRowContext(ctx, userSelect+` WHERE u.id = $1`, id))
}

func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return scanUser(r.db.QueryRowContext(ctx, userSelect+` WHERE u.email = $1`, email))
}

// Role returns the stored role, or "" when the user does not exist.
func (r *UserRepo) Role(ctx context.Context, id string) (string, error) {
	var role string
	err := r.db.QueryRowContext(ctx, `SELECT role FROM users WHERE id = $1`, id).Scan(&role)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	return role, err
}

func (r *UserRepo) Create(ctx context.Context, u *models.User) error {
	query := `
		INSERT INTO users (id, email, name, hashed_password, role, created_at)
		VALUES ($1, $2, NULLIF($3, ''), $4, $5, NOW())
		RETURNING created_at
	`
	return r.db.QueryRowContext(ctx, query, u.ID, u.Email, u.Name, u.HashedPassword, u.Role).
		Scan(&u.CreatedAt)
}

func (r *UserRepo) List(ctx context.Context, offset, limit int) ([]models.User, error) {
	rows, err := r.db.QueryContext(ctx, userSelect+` ORDER BY u.created_at DESC LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, *u)
	}
	return users, rows.Err()
}

func (r *UserRepo) Count(ctx context.Context) (int, error) {
	var total int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&total)
	return total, err
}

func (r *UserRepo) UpdateRole(ctx context.Context, id, role string) (bool, error) {
	res, err := r.db.ExecContext(ctx, `UPDATE users SET role = $2 WHERE id = $1`, id, role)
	if err != nil {
		return false, err
	}
	return affected(res)
}
