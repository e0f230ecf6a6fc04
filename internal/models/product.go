package models

import (
	"time"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

// Product represents a catalog product belonging to one division.
// Monetary fields stay decimal internally; conversion to float happens only
// in response DTOs at the handler boundary.
type Product struct {
	ID              int              `db:"id" json:"id"`
	Title           string           `db:"title" json:"title"`
	Slug            string           `db:"slug" json:"slug"`
	Price           decimal.Decimal  `db:"price" json:"price"`
	Stock           int              `db:"stock" json:"stock"`
	IsAvailable     bool             `db:"is_available" json:"isAvailable"`
	Division        Division         `db:"division" json:"division"`
	CategoryID      int              `db:"category_id" json:"categoryId"`
	Images          pq.StringArray   `db:"images" json:"images"`
	WholesalePrice  *decimal.Decimal `db:"wholesale_price" json:"wholesalePrice,omitempty"`
	WholesaleMinQty *int             `db:"wholesale_min_qty" json:"wholesaleMinQty,omitempty"`
	DiscountPercent *decimal.Decimal `db:"discount_percent" json:"discountPercent,omitempty"`
	Barcode         *string          `db:"barcode" json:"barcode,omitempty"`
	CreatedAt       time.Time        `db:"created_at" json:"-"`
	UpdatedAt       time.Time        `db:"updated_at" json:"updatedAt"`

	// Joined from categories for display.
	CategoryName string `db:"category_name" json:"categoryName,omitempty"`
}
