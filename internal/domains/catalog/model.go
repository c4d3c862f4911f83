package catalog

import (
	"github.com/shopspring/decimal"
)

// Product is the backoffice view of one catalog entry, decoded straight
// from the backend. Prices stay decimal end to end; they are money, not
// floats.
type Product struct {
	ID          string           `json:"id"`
	SKU         string           `json:"sku"`
	Name        string           `json:"name"`
	Description string           `json:"description,omitempty"`
	Price       decimal.Decimal  `json:"price"`
	SalePrice   *decimal.Decimal `json:"sale_price,omitempty"`
	Stock       int              `json:"stock"`
	Active      bool             `json:"active"`
	ImageCount  int              `json:"image_count"`
}

// ListParams carries the backoffice listing filters through to the
// backend query string.
type ListParams struct {
	Page   int    `form:"page"`
	Limit  int    `form:"limit"`
	Search string `form:"search"`
}
