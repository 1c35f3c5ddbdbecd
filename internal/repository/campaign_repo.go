package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/go-faster/errors"
	"github.com/lib/pq"

	"github.com/Cheertaboi/storefront-service/internal/models"
)

type CampaignRepo struct {
	db *sql.DB
}

func NewCampaignRepo(db *sql.DB) *CampaignRepo {
	return &CampaignRepo{db: db}
}

const campaignColumns = `
	id, name, description, type, status, start_date, end_date,
	apply_to_all_products, discount_value, maximum_discount_amount,
	buy_quantity, get_quantity, flat_price, minimum_order_amount,
	max_usage, usage_count, created_by_id, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCampaign(row rowScanner) (models.Campaign, error) {
	var (
		c                        models.Campaign
		buyQty, getQty, maxUsage sql.NullInt64
		createdBy                sql.NullString
	)
	err := row.Scan(
		&c.ID,
		&c.Name,
		&c.Description,
		&c.Type,
		&c.Status,
		&c.StartDate,
		&c.EndDate,
		&c.ApplyToAllProducts,
		&c.DiscountValue,
		&c.MaximumDiscountAmount,
		&buyQty,
		&getQty,
		&c.FlatPrice,
		&c.MinimumOrderAmount,
		&maxUsage,
		&c.UsageCount,
		&createdBy,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if err != nil {
		return models.Campaign{}, err
	}
	c.BuyQuantity = nullableInt(buyQty)
	c.GetQuantity = nullableInt(getQty)
	c.MaxUsage = nullableInt(maxUsage)
	c.CreatedByID = createdBy.String
	return c, nil
}

func nullableInt(v sql.NullInt64) *int {
	if !v.Valid {
		return nil
	}
	i := int(v.Int64)
	return &i
}

func intArg(v *int) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*v), Valid: true}
}

func (r *CampaignRepo) queryCampaigns(ctx context.Context, query string, args ...any) ([]models.Campaign, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var campaigns []models.Campaign
	for rows.Next() {
		c, err := scanCampaign(rows)
		if err != nil {
			return nil, err
		}
		campaigns = append(campaigns, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := r.loadScopes(ctx, campaigns); err != nil {
		return nil, err
	}
	return campaigns, nil
}

const campaignSearch = `($1 = '' OR name ILIKE '%' || $1 || '%' OR description ILIKE '%' || $1 || '%')`

// List returns one page of campaigns, newest first, optionally filtered
// by a case-insensitive match on name or description.
func (r *CampaignRepo) List(ctx context.Context, search string, offset, limit int) ([]models.Campaign, error) {
	query := `SELECT ` + campaignColumns + `
		FROM campaigns
		WHERE ` + campaignSearch + `
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`
	return r.queryCampaigns(ctx, query, search, limit, offset)
}

func (r *CampaignRepo) Count(ctx context.Context, search string) (int, error) {
	var total int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM campaigns WHERE `+campaignSearch, search).Scan(&total)
	return total, err
}

// ListLive returns ACTIVE campaigns that have not ended by now, in
// creation order. Callers still check the start of the window.
func (r *CampaignRepo) ListLive(ctx context.Context, now time.Time) ([]models.Campaign, error) {
	query := `SELECT ` + campaignColumns + `
		FROM campaigns
		WHERE status = $1 AND end_date >= $2
		ORDER BY created_at ASC, id ASC`
	return r.queryCampaigns(ctx, query, models.CampaignActive, now)
}

func (r *CampaignRepo) GetByID(ctx context.Context, id string) (*models.Campaign, error) {
	query := `SELECT ` + campaignColumns + ` FROM campaigns WHERE id = $1`

	c, err := scanCampaign(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	campaigns := []models.Campaign{c}
	if err := r.loadScopes(ctx, campaigns); err != nil {
		return nil, err
	}
	return &campaigns[0], nil
}

// loadScopes fills ProductIDs and CategoryIDs for every campaign with one
// query per association table.
func (r *CampaignRepo) loadScopes(ctx context.Context, campaigns []models.Campaign) error {
	if len(campaigns) == 0 {
		return nil
	}
	ids := make([]string, len(campaigns))
	pos := make(map[string]int, len(campaigns))
	for i, c := range campaigns {
		ids[i] = c.ID
		pos[c.ID] = i
		campaigns[i].ProductIDs = []string{}
		campaigns[i].CategoryIDs = []string{}
	}

	products, err := r.scope(ctx, `SELECT campaign_id, product_id FROM campaign_products WHERE campaign_id = ANY($1) ORDER BY product_id`, ids)
	if err != nil {
		return errors.Wrap(err, "load campaign products")
	}
	for _, link := range products {
		i := pos[link[0]]
		campaigns[i].ProductIDs = append(campaigns[i].ProductIDs, link[1])
	}

	categories, err := r.scope(ctx, `SELECT campaign_id, category_id FROM campaign_categories WHERE campaign_id = ANY($1) ORDER BY category_id`, ids)
	if err != nil {
		return errors.Wrap(err, "load campaign categories")
	}
	for _, link := range categories {
		i := pos[link[0]]
		campaigns[i].CategoryIDs = append(campaigns[i].CategoryIDs, link[1])
	}
	return nil
}

func (r *CampaignRepo) scope(ctx context.Context, query string, ids []string) ([][2]string, error) {
	rows, err := r.db.QueryContext(ctx, query, pq.Array(ids))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var links [][2]string
	for rows.Next() {
		var link [2]string
		if err := rows.Scan(&link[0], &link[1]); err != nil {
			return nil, err
		}
		links = append(links, link)
	}
	return links, rows.Err()
}

// Create inserts the campaign and its scope inside tx.
func (r *CampaignRepo) Create(ctx context.Context, tx *sql.Tx, c *models.Campaign) error {
	query := `
		INSERT INTO campaigns
		(id, name, description, type, status, start_date, end_date,
		 apply_to_all_products, discount_value, maximum_discount_amount,
		 buy_quantity, get_quantity, flat_price, minimum_order_amount,
		 max_usage, usage_count, created_by_id, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,0,NULLIF($16, '')::uuid,NOW(),NOW())
		RETURNING created_at, updated_at
	`
	err := tx.QueryRowContext(ctx, query,
		c.ID,
		c.Name,
		c.Description,
		c.Type,
		c.Status,
		c.StartDate,
		c.EndDate,
		c.ApplyToAllProducts,
		c.DiscountValue,
		c.MaximumDiscountAmount,
		intArg(c.BuyQuantity),
		intArg(c.GetQuantity),
		c.FlatPrice,
		c.MinimumOrderAmount,
		intArg(c.MaxUsage),
		c.CreatedByID,
	).Scan(&c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return errors.Wrap(err, "insert campaign")
	}

	return r.replaceScope(ctx, tx, c)
}

// Update overwrites every mutable column and the scope. It reports false
// when the campaign does not exist.
func (r *CampaignRepo) Update(ctx context.Context, tx *sql.Tx, c *models.Campaign) (bool, error) {
	query := `
		UPDATE campaigns SET
			name = $2, description = $3, type = $4, status = $5,
			start_date = $6, end_date = $7, apply_to_all_products = $8,
			discount_value = $9, maximum_discount_amount = $10,
			buy_quantity = $11, get_quantity = $12, flat_price = $13,
			minimum_order_amount = $14, max_usage = $15, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at
	`
	err := tx.QueryRowContext(ctx, query,
		c.ID,
		c.Name,
		c.Description,
		c.Type,
		c.Status,
		c.StartDate,
		c.EndDate,
		c.ApplyToAllProducts,
		c.DiscountValue,
		c.MaximumDiscountAmount,
		intArg(c.BuyQuantity),
		intArg(c.GetQuantity),
		c.FlatPrice,
		c.MinimumOrderAmount,
		intArg(c.MaxUsage),
	).Scan(&c.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, errors.Wrap(err, "update campaign")
	}

	return true, r.replaceScope(ctx, tx, c)
}

func (r *CampaignRepo) replaceScope(ctx context.Context, tx *sql.Tx, c *models.Campaign) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM campaign_products WHERE campaign_id = $1`, c.ID); err != nil {
		return errors.Wrap(err, "clear campaign products")
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM campaign_categories WHERE campaign_id = $1`, c.ID); err != nil {
		return errors.Wrap(err, "clear campaign categories")
	}

	if len(c.ProductIDs) > 0 {
		stmt := `INSERT INTO campaign_products (campaign_id, product_id)
			SELECT $1, unnest($2::uuid[]) ON CONFLICT DO NOTHING`
		if _, err := tx.ExecContext(ctx, stmt, c.ID, pq.Array(c.ProductIDs)); err != nil {
			return errors.Wrap(err, "insert campaign products")
		}
	}
	if len(c.CategoryIDs) > 0 {
		stmt := `INSERT INTO campaign_categories (campaign_id, category_id)
			SELECT $1, unnest($2::uuid[]) ON CONFLICT DO NOTHING`
		if _, err := tx.ExecContext(ctx, stmt, c.ID, pq.Array(c.CategoryIDs)); err != nil {
			return errors.Wrap(err, "insert campaign categories")
		}
	}
	return nil
}

func (r *CampaignRepo) UpdateStatus(ctx context.Context, id string, status models.CampaignStatus) (bool, error) {
	res, err := r.db.ExecContext(ctx,
		`UPDATE campaigns SET status = $2, updated_at = NOW() WHERE id = $1`, id, status)
	if err != nil {
		return false, err
	}
	return affected(res)
}

func (r *CampaignRepo) Delete(ctx context.Context, id string) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM campaigns WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	return affected(res)
}

// IncrementUsage counts one more order priced by the campaign.
func (r *CampaignRepo) IncrementUsage(ctx context.Context, tx *sql.Tx, id string) error {
	_, err := tx.ExecContext(ctx,
		`UPDATE campaigns SET usage_count = usage_count + 1 WHERE id = $1`, id)
	return err
}
