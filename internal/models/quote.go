package models

import "github.com/shopspring/decimal"

// QuoteRequest asks for campaign pricing of a set of products.
type QuoteRequest struct {
	ProductIDs []string `json:"product_ids" validate:"required,min=1,max=100,dive,uuid"`
}

type ProductQuote struct {
	ProductID      string          `json:"product_id"`
	BasePrice      decimal.Decimal `json:"base_price"`
	EffectivePrice decimal.Decimal `json:"effective_price"`
	Discount       decimal.Decimal `json:"discount"`
	CampaignID     string          `json:"campaign_id,omitempty"`
	Campaigns      []Campaign      `json:"campaigns"`
	Badges         []string        `json:"badges"`
}

// ProductView is a product as rendered on its detail page.
type ProductView struct {
	Product
	Quote ProductQuote `json:"pricing"`
}
