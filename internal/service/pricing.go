package service

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/Cheertaboi/storefront-service/internal/campaign"
	"github.com/Cheertaboi/storefront-service/internal/models"
)

// ActiveCampaigns supplies the campaigns currently in effect.
type ActiveCampaigns interface {
	ListActive(ctx context.Context) ([]models.Campaign, error)
}

func quoteFor(p models.Product, active []models.Campaign) models.ProductQuote {
	applicable := campaign.Applicable(campaign.FromModel(p), active)
	return toProductQuote(p.ID, campaign.Price(campaign.FromModel(p), applicable))
}

func toProductQuote(productID string, q campaign.Quote) models.ProductQuote {
	out := models.ProductQuote{
		ProductID:      productID,
		BasePrice:      q.BasePrice,
		EffectivePrice: q.EffectivePrice,
		Discount:       q.Discount(),
		Campaigns:      q.Applicable,
		Badges:         campaign.Badges(q.Applicable),
	}
	if out.Campaigns == nil {
		out.Campaigns = []models.Campaign{}
	}
	if out.Badges == nil {
		out.Badges = []string{}
	}
	if q.Applied != nil {
		out.CampaignID = q.Applied.ID
	}
	return out
}

// priceCart prices each item with the active campaigns and returns the
// lines and their subtotal.
func priceCart(items []models.CartItem, active []models.Campaign) ([]models.CartLine, decimal.Decimal) {
	idx := campaign.NewIndex(active)
	lines := make([]models.CartLine, 0, len(items))
	subtotal := decimal.Zero
	for _, it := range items {
		p := campaign.FromModel(it.Product)
		q := campaign.Price(p, idx.Applicable(p))
		line := models.CartLine{
			CartItem:  it,
			UnitPrice: q.EffectivePrice,
			LineTotal: q.EffectivePrice.Mul(decimal.NewFromInt(int64(it.Quantity))),
			Badges:    campaign.Badges(q.Applicable),
		}
		if q.Applied != nil {
			line.CampaignID = q.Applied.ID
		}
		subtotal = subtotal.Add(line.LineTotal)
		lines = append(lines, line)
	}
	return lines, subtotal
}
