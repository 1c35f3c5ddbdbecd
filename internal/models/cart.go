package models

import "github.com/shopspring/decimal"

type Cart struct {
	ID     string     `json:"id"`
	UserID string     `json:"user_id"`
	Items  []CartItem `json:"items"`
}

type CartItem struct {
	ID        string  `json:"id"`
	CartID    string  `json:"cart_id"`
	ProductID string  `json:"product_id"`
	Quantity  int     `json:"quantity"`
	Product   Product `json:"product"`
}

// CartLine is a cart item priced against the active campaigns.
type CartLine struct {
	CartItem
	UnitPrice  decimal.Decimal `json:"unit_price"`
	LineTotal  decimal.Decimal `json:"line_total"`
	CampaignID string          `json:"campaign_id,omitempty"`
	Badges     []string        `json:"badges,omitempty"`
}

type CartView struct {
	ID       string          `json:"id"`
	UserID   string          `json:"user_id"`
	Lines    []CartLine      `json:"lines"`
	Subtotal decimal.Decimal `json:"subtotal"`
}

type AddToCartInput struct {
	ProductID string `json:"product_id" validate:"required,uuid"`
	Quantity  int    `json:"quantity" validate:"min=1"`
}

type UpdateQuantityInput struct {
	Quantity int `json:"quantity" validate:"min=1"`
}
