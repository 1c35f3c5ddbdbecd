package service

import (
	"context"
	"database/sql"
	"time"

	"github.com/go-faster/errors"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Cheertaboi/storefront-service/internal/campaign"
	"github.com/Cheertaboi/storefront-service/internal/concurrency"
	"github.com/Cheertaboi/storefront-service/internal/models"
	"github.com/Cheertaboi/storefront-service/internal/repository"
	"github.com/Cheertaboi/storefront-service/pkg/db"
)

type CampaignStore interface {
	List(ctx context.Context, search string, offset, limit int) ([]models.Campaign, error)
	Count(ctx context.Context, search string) (int, error)
	GetByID(ctx context.Context, id string) (*models.Campaign, error)
	ListLive(ctx context.Context, now time.Time) ([]models.Campaign, error)
	Create(ctx context.Context, tx *sql.Tx, c *models.Campaign) error
	Update(ctx context.Context, tx *sql.Tx, c *models.Campaign) (bool, error)
	UpdateStatus(ctx context.Context, id string, status models.CampaignStatus) (bool, error)
	Delete(ctx context.Context, id string) (bool, error)
}

// CampaignCache holds the live campaign list between reads. Get reports
// the cache generation; Set drops a list loaded under an older generation
// so a read racing with Invalidate cannot restore stale campaigns.
type CampaignCache interface {
	Get(ctx context.Context) ([]models.Campaign, uint64, bool)
	Set(ctx context.Context, gen uint64, campaigns []models.Campaign)
	Invalidate(ctx context.Context)
}

type CampaignService struct {
	db        *sql.DB // used for transactions
	campaigns CampaignStore
	cache     CampaignCache
	authz     *Authorizer
	log       *zap.Logger
	now       func() time.Time
}

func NewCampaignService(conn *sql.DB, campaigns CampaignStore, cache CampaignCache, authz *Authorizer, log *zap.Logger) *CampaignService {
	return &CampaignService{
		db:        conn,
		campaigns: campaigns,
		cache:     cache,
		authz:     authz,
		log:       log,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// ListActive returns the campaigns in effect now, in creation order.
func (s *CampaignService) ListActive(ctx context.Context) ([]models.Campaign, error) {
	now := s.now()
	live, gen, ok := s.cache.Get(ctx)
	if !ok {
		var err error
		live, err = s.campaigns.ListLive(ctx, now)
		if err != nil {
			return nil, errors.Wrap(err, "list live campaigns")
		}
		s.cache.Set(ctx, gen, live)
	}
	active := campaign.FilterActive(live, now)
	if active == nil {
		active = []models.Campaign{}
	}
	return active, nil
}

func (s *CampaignService) List(ctx context.Context, actorID string, req models.PageRequest) (models.Page[models.Campaign], error) {
	if err := s.authz.RequireAdmin(ctx, actorID); err != nil {
		return models.Page[models.Campaign]{}, err
	}
	if err := validateStruct(req); err != nil {
		return models.Page[models.Campaign]{}, err
	}

	var (
		items []models.Campaign
		total int
	)
	err := concurrency.Run(ctx, 2,
		func(ctx context.Context) error {
			var err error
			if items, err = s.campaigns.List(ctx, req.Search, req.Offset(), req.PageSize); err != nil {
				return errors.Wrap(err, "list campaigns")
			}
			return nil
		},
		func(ctx context.Context) error {
			var err error
			if total, err = s.campaigns.Count(ctx, req.Search); err != nil {
				return errors.Wrap(err, "count campaigns")
			}
			return nil
		},
	)
	if err != nil {
		return models.Page[models.Campaign]{}, err
	}
	return models.NewPage(items, total, req.Page, req.PageSize), nil
}

func (s *CampaignService) Get(ctx context.Context, actorID, id string) (*models.Campaign, error) {
	if err := s.authz.RequireAdmin(ctx, actorID); err != nil {
		return nil, err
	}
	return s.get(ctx, id)
}

func (s *CampaignService) get(ctx context.Context, id string) (*models.Campaign, error) {
	c, err := s.campaigns.GetByID(ctx, id)
	if err != nil {
		return nil, errors.Wrap(err, "get campaign")
	}
	if c == nil {
		return nil, errors.Wrapf(models.ErrNotFound, "campaign %s", id)
	}
	return c, nil
}

// Create validates and stores a new campaign. Status defaults to DRAFT.
func (s *CampaignService) Create(ctx context.Context, actorID string, c models.Campaign) (*models.Campaign, error) {
	if err := s.authz.RequireAdmin(ctx, actorID); err != nil {
		return nil, err
	}
	if c.Status == "" {
		c.Status = models.CampaignDraft
	}
	if c.StartDate.IsZero() {
		return nil, models.NewValidationError("start_date", "is required")
	}
	if c.EndDate.IsZero() {
		return nil, models.NewValidationError("end_date", "is required")
	}
	if err := campaign.Validate(c); err != nil {
		return nil, err
	}

	c.ID = uuid.NewString()
	c.CreatedByID = actorID
	c.UsageCount = 0
	if err := normalizeScope(&c); err != nil {
		return nil, err
	}

	err := db.WithTx(ctx, s.db, nil, func(tx *sql.Tx) error {
		return s.campaigns.Create(ctx, tx, &c)
	})
	if err != nil {
		return nil, scopeError(err, "create campaign")
	}

	s.cache.Invalidate(ctx)
	s.log.Info("campaign created",
		zap.String("campaign_id", c.ID),
		zap.String("type", string(c.Type)),
		zap.String("actor_id", actorID),
	)
	return &c, nil
}

// Update merges patch onto the stored campaign and validates the result
// as a whole. A status change must be a legal lifecycle move.
func (s *CampaignService) Update(ctx context.Context, actorID, id string, patch models.CampaignPatch) (*models.Campaign, error) {
	if err := s.authz.RequireAdmin(ctx, actorID); err != nil {
		return nil, err
	}
	current, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}

	next := *current
	patch.Apply(&next)
	if next.Status != current.Status {
		if err := campaign.Transition(current.Status, next.Status); err != nil {
			return nil, err
		}
	}
	if err := campaign.Validate(next); err != nil {
		return nil, err
	}
	if err := normalizeScope(&next); err != nil {
		return nil, err
	}

	var found bool
	err = db.WithTx(ctx, s.db, nil, func(tx *sql.Tx) error {
		var err error
		found, err = s.campaigns.Update(ctx, tx, &next)
		return err
	})
	if err != nil {
		return nil, scopeError(err, "update campaign")
	}
	if !found {
		return nil, errors.Wrapf(models.ErrNotFound, "campaign %s", id)
	}

	s.cache.Invalidate(ctx)
	s.log.Info("campaign updated", zap.String("campaign_id", id), zap.String("actor_id", actorID))
	return &next, nil
}

// UpdateStatus moves the campaign through its lifecycle.
func (s *CampaignService) UpdateStatus(ctx context.Context, actorID, id string, status models.CampaignStatus) (*models.Campaign, error) {
	if err := s.authz.RequireAdmin(ctx, actorID); err != nil {
		return nil, err
	}
	c, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := campaign.Transition(c.Status, status); err != nil {
		return nil, err
	}

	ok, err := s.campaigns.UpdateStatus(ctx, id, status)
	if err != nil {
		return nil, errors.Wrap(err, "update campaign status")
	}
	if !ok {
		return nil, errors.Wrapf(models.ErrNotFound, "campaign %s", id)
	}

	s.cache.Invalidate(ctx)
	s.log.Info("campaign status changed",
		zap.String("campaign_id", id),
		zap.String("from", string(c.Status)),
		zap.String("to", string(status)),
		zap.String("actor_id", actorID),
	)
	c.Status = status
	return c, nil
}

func (s *CampaignService) Delete(ctx context.Context, actorID, id string) error {
	if err := s.authz.RequireAdmin(ctx, actorID); err != nil {
		return err
	}
	ok, err := s.campaigns.Delete(ctx, id)
	if err != nil {
		return errors.Wrap(err, "delete campaign")
	}
	if !ok {
		return errors.Wrapf(models.ErrNotFound, "campaign %s", id)
	}

	s.cache.Invalidate(ctx)
	s.log.Info("campaign deleted", zap.String("campaign_id", id), zap.String("actor_id", actorID))
	return nil
}

// normalizeScope drops duplicate ids and rejects malformed ones.
func normalizeScope(c *models.Campaign) error {
	var err error
	if c.ProductIDs, err = uniqueIDs("product_ids", c.ProductIDs); err != nil {
		return err
	}
	c.CategoryIDs, err = uniqueIDs("category_ids", c.CategoryIDs)
	return err
}

func uniqueIDs(field string, ids []string) ([]string, error) {
	out := make([]string, 0, len(ids))
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if _, err := uuid.Parse(id); err != nil {
			return nil, models.NewValidationError(field, "%q is not a UUID", id)
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out, nil
}

func scopeError(err error, op string) error {
	switch repository.ScopeViolation(err) {
	case repository.ScopeProducts:
		return models.NewValidationError("product_ids", "references an unknown product")
	case repository.ScopeCategories:
		return models.NewValidationError("category_ids", "references an unknown category")
	}
	return errors.Wrap(err, op)
}
