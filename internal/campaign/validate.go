package campaign

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/Cheertaboi/storefront-service/internal/models"
)

// Validate enforces the per-type field rules before a campaign is stored.
// The first violation is returned as a *models.ValidationError.
func Validate(c models.Campaign) error {
	if strings.TrimSpace(c.Name) == "" {
		return models.NewValidationError("name", "name is required")
	}
	if !c.Type.Valid() {
		return models.NewValidationError("type", "unknown campaign type %q", c.Type)
	}
	if !c.Status.Valid() {
		return models.NewValidationError("status", "unknown campaign status %q", c.Status)
	}

	switch c.Type {
	case models.PercentageDiscount:
		if !c.DiscountValue.Valid || !c.DiscountValue.Decimal.IsPositive() || c.DiscountValue.Decimal.GreaterThan(hundred) {
			return models.NewValidationError("discount_value", "percentage discount must be between 0 and 100")
		}
	case models.FixedAmountDiscount:
		if !c.DiscountValue.Valid || !c.DiscountValue.Decimal.IsPositive() {
			return models.NewValidationError("discount_value", "fixed amount discount must be greater than 0")
		}
	case models.BuyOneGetOne:
		if c.BuyQuantity == nil || *c.BuyQuantity <= 0 || c.GetQuantity == nil || *c.GetQuantity <= 0 {
			return models.NewValidationError("buy_quantity", "buy and get quantities must be greater than 0")
		}
	case models.FlatPrice:
		if !c.FlatPrice.Valid || !c.FlatPrice.Decimal.IsPositive() {
			return models.NewValidationError("flat_price", "flat price must be greater than 0")
		}
	}

	if negative(c.MaximumDiscountAmount) {
		return models.NewValidationError("maximum_discount_amount", "must not be negative")
	}
	if negative(c.MinimumOrderAmount) {
		return models.NewValidationError("minimum_order_amount", "must not be negative")
	}
	if c.MaxUsage != nil && *c.MaxUsage < 0 {
		return models.NewValidationError("max_usage", "must not be negative")
	}

	if !c.StartDate.IsZero() && !c.EndDate.IsZero() && !c.StartDate.Before(c.EndDate) {
		return models.NewValidationError("end_date", "end date must be after start date")
	}
	return nil
}

func negative(d decimal.NullDecimal) bool {
	return d.Valid && d.Decimal.IsNegative()
}
