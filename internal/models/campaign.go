package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type CampaignType string

const (
	PercentageDiscount  CampaignType = "PERCENTAGE_DISCOUNT"
	FixedAmountDiscount CampaignType = "FIXED_AMOUNT_DISCOUNT"
	BuyOneGetOne        CampaignType = "BUY_ONE_GET_ONE"
	FreeShipping        CampaignType = "FREE_SHIPPING"
	FlatPrice           CampaignType = "FLAT_PRICE"
)

func (t CampaignType) Valid() bool {
	switch t {
	case PercentageDiscount, FixedAmountDiscount, BuyOneGetOne, FreeShipping, FlatPrice:
		return true
	}
	return false
}

type CampaignStatus string

const (
	CampaignDraft  CampaignStatus = "DRAFT"
	CampaignActive CampaignStatus = "ACTIVE"
	CampaignPaused CampaignStatus = "PAUSED"
	CampaignEnded  CampaignStatus = "ENDED"
)

func (s CampaignStatus) Valid() bool {
	switch s {
	case CampaignDraft, CampaignActive, CampaignPaused, CampaignEnded:
		return true
	}
	return false
}

// Campaign is a time-boxed promotional rule. Numeric rule fields are
// nullable; which ones matter depends on Type.
type Campaign struct {
	ID                    string              `json:"id"`
	Name                  string              `json:"name"`
	Description           string              `json:"description"`
	Type                  CampaignType        `json:"type"`
	Status                CampaignStatus      `json:"status"`
	StartDate             time.Time           `json:"start_date"`
	EndDate               time.Time           `json:"end_date"`
	ApplyToAllProducts    bool                `json:"apply_to_all_products"`
	DiscountValue         decimal.NullDecimal `json:"discount_value"`
	MaximumDiscountAmount decimal.NullDecimal `json:"maximum_discount_amount"`
	BuyQuantity           *int                `json:"buy_quantity"`
	GetQuantity           *int                `json:"get_quantity"`
	FlatPrice             decimal.NullDecimal `json:"flat_price"`
	MinimumOrderAmount    decimal.NullDecimal `json:"minimum_order_amount"`
	MaxUsage              *int                `json:"max_usage"`
	UsageCount            int                 `json:"usage_count"`
	ProductIDs            []string            `json:"product_ids"`
	CategoryIDs           []string            `json:"category_ids"`
	CreatedByID           string              `json:"created_by_id,omitempty"`
	CreatedAt             time.Time           `json:"created_at"`
	UpdatedAt             time.Time           `json:"updated_at"`
}

// CampaignPatch carries a partial update; nil fields are left untouched.
// Nullable rule fields are Optional so an explicit null clears them.
// ProductIDs and CategoryIDs replace the stored scope when non-nil.
type CampaignPatch struct {
	Name                  *string                       `json:"name"`
	Description           *string                       `json:"description"`
	Type                  *CampaignType                 `json:"type"`
	Status                *CampaignStatus               `json:"status"`
	StartDate             *time.Time                    `json:"start_date"`
	EndDate               *time.Time                    `json:"end_date"`
	ApplyToAllProducts    *bool                         `json:"apply_to_all_products"`
	DiscountValue         Optional[decimal.NullDecimal] `json:"discount_value"`
	MaximumDiscountAmount Optional[decimal.NullDecimal] `json:"maximum_discount_amount"`
	BuyQuantity           Optional[*int]                `json:"buy_quantity"`
	GetQuantity           Optional[*int]                `json:"get_quantity"`
	FlatPrice             Optional[decimal.NullDecimal] `json:"flat_price"`
	MinimumOrderAmount    Optional[decimal.NullDecimal] `json:"minimum_order_amount"`
	MaxUsage              Optional[*int]                `json:"max_usage"`
	ProductIDs            []string                      `json:"product_ids"`
	CategoryIDs           []string                      `json:"category_ids"`
}

// Apply merges the patch onto c.
func (p CampaignPatch) Apply(c *Campaign) {
	if p.Name != nil {
		c.Name = *p.Name
	}
	if p.Description != nil {
		c.Description = *p.Description
	}
	if p.Type != nil {
		c.Type = *p.Type
	}
	if p.Status != nil {
		c.Status = *p.Status
	}
	if p.StartDate != nil {
		c.StartDate = *p.StartDate
	}
	if p.EndDate != nil {
		c.EndDate = *p.EndDate
	}
	if p.ApplyToAllProducts != nil {
		c.ApplyToAllProducts = *p.ApplyToAllProducts
	}
	if p.DiscountValue.Set {
		c.DiscountValue = p.DiscountValue.Value
	}
	if p.MaximumDiscountAmount.Set {
		c.MaximumDiscountAmount = p.MaximumDiscountAmount.Value
	}
	if p.BuyQuantity.Set {
		c.BuyQuantity = p.BuyQuantity.Value
	}
	if p.GetQuantity.Set {
		c.GetQuantity = p.GetQuantity.Value
	}
	if p.FlatPrice.Set {
		c.FlatPrice = p.FlatPrice.Value
	}
	if p.MinimumOrderAmount.Set {
		c.MinimumOrderAmount = p.MinimumOrderAmount.Value
	}
	if p.MaxUsage.Set {
		c.MaxUsage = p.MaxUsage.Value
	}
	if p.ProductIDs != nil {
		c.ProductIDs = p.ProductIDs
	}
	if p.CategoryIDs != nil {
		c.CategoryIDs = p.CategoryIDs
	}
}
