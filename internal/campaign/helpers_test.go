package campaign

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/Cheertaboi/storefront-service/internal/models"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func nullDec(s string) decimal.NullDecimal {
	return decimal.NewNullDecimal(dec(s))
}

func intp(v int) *int { return &v }

var (
	windowStart = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	windowEnd   = time.Date(2026, 12, 31, 23, 59, 59, 0, time.UTC)
	midWindow   = time.Date(2026, 6, 15, 12, 0, 0, 0, time.UTC)
)

func activeCampaign(id string, typ models.CampaignType) models.Campaign {
	return models.Campaign{
		ID:        id,
		Name:      "campaign " + id,
		Type:      typ,
		Status:    models.CampaignActive,
		StartDate: windowStart,
		EndDate:   windowEnd,
	}
}

func percent(id, value string) models.Campaign {
	c := activeCampaign(id, models.PercentageDiscount)
	c.DiscountValue = nullDec(value)
	c.ApplyToAllProducts = true
	return c
}
