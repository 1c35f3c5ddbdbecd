package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type Product struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Description  string          `json:"description"`
	Price        decimal.Decimal `json:"price"`
	Quantity     int             `json:"quantity"`
	Brand        string          `json:"brand"`
	Image        string          `json:"image"`
	CategoryID   string          `json:"category_id"`
	CategoryName string          `json:"category_name,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// ProductInput is the admin-supplied body for create and update.
type ProductInput struct {
	Name        string          `json:"name" validate:"required,min=2"`
	Description string          `json:"description" validate:"required,min=10"`
	Price       decimal.Decimal `json:"price"`
	Quantity    int             `json:"quantity" validate:"min=0"`
	Brand       string          `json:"brand" validate:"required,min=2"`
	Image       string          `json:"image" validate:"required,url"`
	CategoryID  string          `json:"category_id" validate:"required,uuid"`
}

type CategoryInput struct {
	Name string `json:"name" validate:"required,min=2,max=64"`
}
