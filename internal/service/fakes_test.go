package service

import (
	"context"
	"database/sql"
	"sort"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Cheertaboi/storefront-service/internal/models"
)

const (
	adminID    = "00000000-0000-0000-0000-00000000000a"
	customerID = "00000000-0000-0000-0000-00000000000b"
	otherID    = "00000000-0000-0000-0000-00000000000c"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func nullDec(s string) decimal.NullDecimal {
	return decimal.NullDecimal{Decimal: dec(s), Valid: true}
}

func newSQLMock(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		conn.Close()
	})
	return conn, mock
}

type fakeRoles map[string]string

func (f fakeRoles) Role(_ context.Context, id string) (string, error) {
	return f[id], nil
}

func testAuthorizer() *Authorizer {
	return NewAuthorizer(fakeRoles{
		adminID:    models.RoleAdmin,
		customerID: models.RoleUser,
		otherID:    models.RoleUser,
	})
}

type fakeProducts struct {
	byID    map[string]models.Product
	created []models.Product
	deleted []string
}

func newFakeProducts(ps ...models.Product) *fakeProducts {
	f := &fakeProducts{byID: map[string]models.Product{}}
	for _, p := range ps {
		f.byID[p.ID] = p
	}
	return f
}

func (f *fakeProducts) List(_ context.Context, _ string, offset, limit int) ([]models.Product, error) {
	var all []models.Product
	for _, p := range f.byID {
		all = append(all, p)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	if offset >= len(all) {
		return nil, nil
	}
	return all[offset:min(offset+limit, len(all))], nil
}

func (f *fakeProducts) Count(context.Context, string) (int, error) { return len(f.byID), nil }

func (f *fakeProducts) GetByID(_ context.Context, id string) (*models.Product, error) {
	p, ok := f.byID[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (f *fakeProducts) ListByIDs(_ context.Context, ids []string) ([]models.Product, error) {
	var out []models.Product
	for _, id := range ids {
		if p, ok := f.byID[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeProducts) Create(_ context.Context, p *models.Product) error {
	f.byID[p.ID] = *p
	f.created = append(f.created, *p)
	return nil
}

func (f *fakeProducts) Update(_ context.Context, p *models.Product) (bool, error) {
	if _, ok := f.byID[p.ID]; !ok {
		return false, nil
	}
	f.byID[p.ID] = *p
	return true, nil
}

func (f *fakeProducts) Delete(_ context.Context, id string) (bool, error) {
	if _, ok := f.byID[id]; !ok {
		return false, nil
	}
	delete(f.byID, id)
	f.deleted = append(f.deleted, id)
	return true, nil
}

type fakeCategories struct {
	byID map[string]models.Category
}

func (f *fakeCategories) List(context.Context) ([]models.Category, error) {
	var out []models.Category
	for _, c := range f.byID {
		out = append(out, c)
	}
	return out, nil
}

func (f *fakeCategories) GetByID(_ context.Context, id string) (*models.Category, error) {
	c, ok := f.byID[id]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func (f *fakeCategories) Create(_ context.Context, c *models.Category) error {
	f.byID[c.ID] = *c
	return nil
}

func (f *fakeCategories) Rename(_ context.Context, id, name string) (bool, error) {
	c, ok := f.byID[id]
	if !ok {
		return false, nil
	}
	c.Name = name
	f.byID[id] = c
	return true, nil
}

func (f *fakeCategories) Delete(_ context.Context, id string) (bool, error) {
	if _, ok := f.byID[id]; !ok {
		return false, nil
	}
	delete(f.byID, id)
	return true, nil
}

type staticCampaigns []models.Campaign

func (s staticCampaigns) ListActive(context.Context) ([]models.Campaign, error) {
	return s, nil
}

// window returns an ACTIVE campaign live around now.
func window(c models.Campaign) models.Campaign {
	now := time.Now().UTC()
	c.Status = models.CampaignActive
	c.StartDate = now.Add(-time.Hour)
	c.EndDate = now.Add(time.Hour)
	return c
}

type sqlmockExpect struct {
	sqlmock.Sqlmock
}

// tx expects one transaction that commits or rolls back.
func (m sqlmockExpect) tx(commit bool) {
	m.ExpectBegin()
	if commit {
		m.ExpectCommit()
	} else {
		m.ExpectRollback()
	}
}
