package campaign

import (
	"github.com/shopspring/decimal"

	"github.com/Cheertaboi/storefront-service/internal/models"
)

var hundred = decimal.NewFromInt(100)

// Quote is the outcome of pricing one product.
type Quote struct {
	BasePrice      decimal.Decimal
	EffectivePrice decimal.Decimal
	// Applied is the campaign that set EffectivePrice, nil when the price
	// is the base price.
	Applied    *models.Campaign
	Applicable []models.Campaign
}

func (q Quote) Discount() decimal.Decimal {
	return q.BasePrice.Sub(q.EffectivePrice)
}

// Price prices p against its applicable campaigns. Only the first
// applicable campaign is considered; campaigns never stack. The result is
// rounded to cents and never below zero.
func Price(p Product, applicable []models.Campaign) Quote {
	q := Quote{
		BasePrice:      p.Price,
		EffectivePrice: p.Price,
		Applicable:     applicable,
	}
	if len(applicable) == 0 {
		return q
	}

	first := applicable[0]
	adjusted, ok := adjust(p.Price, first)
	if !ok {
		return q
	}
	if adjusted.IsNegative() {
		adjusted = decimal.Zero
	}
	q.EffectivePrice = adjusted.Round(2)
	q.Applied = &first
	return q
}

// EffectivePrice is the price of p after the first campaign in campaigns
// that applies to it.
func EffectivePrice(p Product, campaigns []models.Campaign) decimal.Decimal {
	return Price(p, Applicable(p, campaigns)).EffectivePrice
}

// adjust applies one campaign to a unit price. ok is false when the
// campaign type does not change unit prices or the value it needs is
// missing.
func adjust(price decimal.Decimal, c models.Campaign) (decimal.Decimal, bool) {
	switch c.Type {
	case models.PercentageDiscount:
		if !c.DiscountValue.Valid {
			return price, false
		}
		discount := price.Mul(c.DiscountValue.Decimal).Div(hundred)
		if c.MaximumDiscountAmount.Valid && discount.GreaterThan(c.MaximumDiscountAmount.Decimal) {
			discount = c.MaximumDiscountAmount.Decimal
		}
		return price.Sub(discount), true
	case models.FixedAmountDiscount:
		if !c.DiscountValue.Valid {
			return price, false
		}
		return price.Sub(c.DiscountValue.Decimal), true
	case models.FlatPrice:
		if !c.FlatPrice.Valid {
			return price, false
		}
		return c.FlatPrice.Decimal, true
	default:
		// BUY_ONE_GET_ONE and FREE_SHIPPING are display-only here.
		return price, false
	}
}
