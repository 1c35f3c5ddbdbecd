package campaign

import (
	"fmt"

	"github.com/Cheertaboi/storefront-service/internal/models"
)

// BadgeLabel renders the promotion text shown next to a product.
func BadgeLabel(c models.Campaign) string {
	switch c.Type {
	case models.PercentageDiscount:
		if c.DiscountValue.Valid {
			return c.DiscountValue.Decimal.String() + "% OFF"
		}
	case models.FixedAmountDiscount:
		if c.DiscountValue.Valid {
			return "$" + c.DiscountValue.Decimal.String() + " OFF"
		}
	case models.BuyOneGetOne:
		if c.BuyQuantity != nil && c.GetQuantity != nil {
			return fmt.Sprintf("BOGO: Buy %d Get %d", *c.BuyQuantity, *c.GetQuantity)
		}
	case models.FreeShipping:
		return "FREE SHIPPING"
	case models.FlatPrice:
		if c.FlatPrice.Valid {
			return "FLAT PRICE: $" + c.FlatPrice.Decimal.String()
		}
	}
	if c.Name != "" {
		return c.Name
	}
	return "SPECIAL OFFER"
}

func Badges(campaigns []models.Campaign) []string {
	out := make([]string, 0, len(campaigns))
	for _, c := range campaigns {
		out = append(out, BadgeLabel(c))
	}
	return out
}
