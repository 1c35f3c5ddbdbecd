package campaign

import (
	"testing"

	"github.com/go-faster/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Cheertaboi/storefront-service/internal/models"
)

func TestValidate(t *testing.T) {
	valid := func(typ models.CampaignType, mut func(*models.Campaign)) models.Campaign {
		c := activeCampaign("c", typ)
		c.Status = models.CampaignDraft
		if mut != nil {
			mut(&c)
		}
		return c
	}

	tests := []struct {
		name      string
		campaign  models.Campaign
		wantField string
	}{
		{"percentage 50 accepted", valid(models.PercentageDiscount, func(c *models.Campaign) { c.DiscountValue = nullDec("50") }), ""},
		{"percentage 100 accepted", valid(models.PercentageDiscount, func(c *models.Campaign) { c.DiscountValue = nullDec("100") }), ""},
		{"percentage 150 rejected", valid(models.PercentageDiscount, func(c *models.Campaign) { c.DiscountValue = nullDec("150") }), "discount_value"},
		{"percentage 0 rejected", valid(models.PercentageDiscount, func(c *models.Campaign) { c.DiscountValue = nullDec("0") }), "discount_value"},
		{"percentage missing", valid(models.PercentageDiscount, nil), "discount_value"},
		{"fixed positive", valid(models.FixedAmountDiscount, func(c *models.Campaign) { c.DiscountValue = nullDec("0.01") }), ""},
		{"fixed negative", valid(models.FixedAmountDiscount, func(c *models.Campaign) { c.DiscountValue = nullDec("-1") }), "discount_value"},
		{"bogo ok", valid(models.BuyOneGetOne, func(c *models.Campaign) { c.BuyQuantity, c.GetQuantity = intp(2), intp(1) }), ""},
		{"bogo missing get", valid(models.BuyOneGetOne, func(c *models.Campaign) { c.BuyQuantity = intp(2) }), "buy_quantity"},
		{"bogo zero buy", valid(models.BuyOneGetOne, func(c *models.Campaign) { c.BuyQuantity, c.GetQuantity = intp(0), intp(1) }), "buy_quantity"},
		{"flat ok", valid(models.FlatPrice, func(c *models.Campaign) { c.FlatPrice = nullDec("9.99") }), ""},
		{"flat missing", valid(models.FlatPrice, nil), "flat_price"},
		{"free shipping needs nothing", valid(models.FreeShipping, nil), ""},
		{"name required", valid(models.FreeShipping, func(c *models.Campaign) { c.Name = "  " }), "name"},
		{"unknown type", valid("LOYALTY", nil), "type"},
		{"unknown status", valid(models.FreeShipping, func(c *models.Campaign) { c.Status = "LIVE" }), "status"},
		{"start equals end", valid(models.FreeShipping, func(c *models.Campaign) { c.EndDate = c.StartDate }), "end_date"},
		{"start after end", valid(models.FreeShipping, func(c *models.Campaign) { c.StartDate, c.EndDate = c.EndDate, c.StartDate }), "end_date"},
		{"negative cap", valid(models.FreeShipping, func(c *models.Campaign) { c.MaximumDiscountAmount = nullDec("-5") }), "maximum_discount_amount"},
		{"negative max usage", valid(models.FreeShipping, func(c *models.Campaign) { c.MaxUsage = intp(-1) }), "max_usage"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.campaign)
			if tt.wantField == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, errors.Is(err, models.ErrValidation))

			var verr *models.ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Equal(t, tt.wantField, verr.Field)
		})
	}
}
