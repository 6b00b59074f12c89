package models

import "github.com/shopspring/decimal"

// Brand is a tile manufacturer.
type Brand struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
}

// Category groups products by tile size.
type Category struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Size        string  `json:"size"`
	Description *string `json:"description,omitempty"`
}

// LocationType distinguishes storage godowns from retail shops.
type LocationType string

const (
	LocationGodown LocationType = "GODOWN"
	LocationShop   LocationType = "SHOP"
)

// Location is a place where stock is held.
type Location struct {
	ID            int64        `json:"id"`
	Name          string       `json:"name"`
	LocationType  LocationType `json:"location_type,omitempty"`
	Address       string       `json:"address,omitempty"`
	ContactNumber *string      `json:"contact_number,omitempty"`
}

// Product is a sellable tile SKU.
type Product struct {
	ID          int64           `json:"id"`
	Name        string          `json:"name"`
	ProductCode string          `json:"product_code"`
	Brand       int64           `json:"brand"`
	Category    int64           `json:"category"`
	Price       decimal.Decimal `json:"price"`
	Description *string         `json:"description,omitempty"`
}

// ProductInput is the writable shape of a product. A nil Price means the
// field was left empty.
type ProductInput struct {
	Name        string           `json:"name"`
	ProductCode string           `json:"product_code"`
	Brand       int64            `json:"brand"`
	Category    int64            `json:"category"`
	Price       *decimal.Decimal `json:"price"`
	Description string           `json:"description,omitempty"`
}
