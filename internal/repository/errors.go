package repository

import (
	"database/sql"

	"github.com/go-faster/errors"
	"github.com/lib/pq"
)

const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
)

func pqCode(err error) pq.ErrorCode {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code
	}
	return ""
}

// IsUniqueViolation reports whether err is a Postgres unique constraint failure.
func IsUniqueViolation(err error) bool {
	return pqCode(err) == codeUniqueViolation
}

// IsForeignKeyViolation reports whether err references a missing row.
func IsForeignKeyViolation(err error) bool {
	return pqCode(err) == codeForeignKeyViolation
}

// Scope names the campaign scope list a foreign key violation came from.
type Scope int

const (
	ScopeNone Scope = iota
	ScopeProducts
	ScopeCategories
)

// Postgres default names for the scope table foreign keys.
const (
	campaignProductFK  = "campaign_products_product_id_fkey"
	campaignCategoryFK = "campaign_categories_category_id_fkey"
)

// ScopeViolation reports which scope list referenced a missing product or
// category, or ScopeNone for any other error.
func ScopeViolation(err error) Scope {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) || pqErr.Code != codeForeignKeyViolation {
		return ScopeNone
	}
	switch pqErr.Constraint {
	case campaignProductFK:
		return ScopeProducts
	case campaignCategoryFK:
		return ScopeCategories
	}
	return ScopeNone
}

func affected(res sql.Result) (bool, error) {
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
