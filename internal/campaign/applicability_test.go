package campaign

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Cheertaboi/storefront-service/internal/models"
)

func TestIsActive(t *testing.T) {
	c := activeCampaign("c1", models.FreeShipping)

	assert.True(t, IsActive(c, midWindow))
	assert.True(t, IsActive(c, windowStart), "start is inclusive")
	assert.True(t, IsActive(c, windowEnd), "end is inclusive")
	assert.False(t, IsActive(c, windowStart.Add(-1)))
	assert.False(t, IsActive(c, windowEnd.Add(1)))

	for _, status := range []models.CampaignStatus{models.CampaignDraft, models.CampaignPaused, models.CampaignEnded} {
		c.Status = status
		assert.False(t, IsActive(c, midWindow), status)
	}
}

func TestFilterActiveDropsPausedAndExpired(t *testing.T) {
	live := activeCampaign("live", models.FreeShipping)
	paused := activeCampaign("paused", models.FreeShipping)
	paused.Status = models.CampaignPaused
	expired := activeCampaign("expired", models.FreeShipping)
	expired.EndDate = midWindow.Add(-1)

	got := FilterActive([]models.Campaign{paused, live, expired}, midWindow)

	assert.Equal(t, []string{"live"}, ids(got))
}

func TestAppliesTo(t *testing.T) {
	p := Product{ID: "p1", CategoryID: "cat1"}

	tests := []struct {
		name     string
		campaign models.Campaign
		want     bool
	}{
		{"store wide", models.Campaign{ApplyToAllProducts: true}, true},
		{"by product", models.Campaign{ProductIDs: []string{"p0", "p1"}}, true},
		{"by category", models.Campaign{CategoryIDs: []string{"cat1"}}, true},
		{"other product and category", models.Campaign{ProductIDs: []string{"p2"}, CategoryIDs: []string{"cat2"}}, false},
		{"empty scope", models.Campaign{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, AppliesTo(tt.campaign, p))
		})
	}
}

func TestAppliesToIgnoresEmptyCategory(t *testing.T) {
	c := models.Campaign{CategoryIDs: []string{""}}
	assert.False(t, AppliesTo(c, Product{ID: "p1"}))
}

func TestApplicablePreservesOrder(t *testing.T) {
	p := Product{ID: "p1", CategoryID: "cat1", Price: dec("10")}
	campaigns := []models.Campaign{
		{ID: "a", CategoryIDs: []string{"cat1"}},
		{ID: "b", ProductIDs: []string{"p2"}},
		{ID: "c", ApplyToAllProducts: true},
		{ID: "d", ProductIDs: []string{"p1"}, CategoryIDs: []string{"cat1"}},
	}

	assert.Equal(t, []string{"a", "c", "d"}, ids(Applicable(p, campaigns)))
}

func TestApplicableOutOfScopeLeavesPriceUnchanged(t *testing.T) {
	p := Product{ID: "p1", CategoryID: "cat1", Price: dec("42.50")}
	c := activeCampaign("c", models.FixedAmountDiscount)
	c.DiscountValue = nullDec("5")
	c.ProductIDs = []string{"p9"}
	c.CategoryIDs = []string{"cat9"}

	assert.Empty(t, Applicable(p, []models.Campaign{c}))
	assert.True(t, EffectivePrice(p, []models.Campaign{c}).Equal(p.Price))
}

func TestIndexMatchesLinearScan(t *testing.T) {
	campaigns := []models.Campaign{
		{ID: "0", CategoryIDs: []string{"cat1", "cat2"}},
		{ID: "1", ApplyToAllProducts: true},
		{ID: "2", ProductIDs: []string{"p1", "p1"}, CategoryIDs: []string{"cat1"}},
		{ID: "3", ProductIDs: []string{"p2"}},
		{ID: "4", ApplyToAllProducts: true, ProductIDs: []string{"p1"}},
		{ID: "5", CategoryIDs: []string{"cat3"}},
	}
	ix := NewIndex(campaigns)

	products := []Product{
		{ID: "p1", CategoryID: "cat1"},
		{ID: "p2", CategoryID: "cat2"},
		{ID: "p3", CategoryID: "cat3"},
		{ID: "p4"},
	}
	for _, p := range products {
		assert.Equal(t, ids(Applicable(p, campaigns)), ids(ix.Applicable(p)), p.ID)
	}
}

func ids(campaigns []models.Campaign) []string {
	var out []string
	for _, c := range campaigns {
		out = append(out, c.ID)
	}
	return out
}
