package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus enumerates the order lifecycle states.
type OrderStatus string

const (
	StatusPending   OrderStatus = "PENDING"
	StatusPaid      OrderStatus = "PAID"
	StatusDelivered OrderStatus = "DELIVERED"
	StatusCancelled OrderStatus = "CANCELLED"
)

// Valid reports whether s is a known order status.
func (s OrderStatus) Valid() bool {
	switch s {
	case StatusPending, StatusPaid, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

// transitions is the order status transition table. DELIVERED and CANCELLED
// are terminal.
var transitions = map[OrderStatus][]OrderStatus{
	StatusPending:   {StatusPaid, StatusCancelled},
	StatusPaid:      {StatusDelivered, StatusCancelled},
	StatusDelivered: {},
	StatusCancelled: {},
}

// CanTransition reports whether moving from one status to another is legal.
// Writing the same status again is allowed and treated as a no-op by callers.
func CanTransition(from, to OrderStatus) bool {
	if from == to {
		return true
	}
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Order is a customer order. Total is a snapshot taken at creation time and
// is never recomputed from the live catalog. StockDecremented guards the
// exactly-once stock decrement performed on the first transition into PAID.
type Order struct {
	ID               string          `db:"id" json:"id"`
	ClientName       string          `db:"client_name" json:"clientName"`
	ClientPhone      string          `db:"client_phone" json:"clientPhone"`
	Status           OrderStatus     `db:"status" json:"status"`
	Paid             bool            `db:"paid" json:"paid"`
	StockDecremented bool            `db:"stock_decremented" json:"-"`
	Total            decimal.Decimal `db:"total" json:"total"`
	CreatedAt        time.Time       `db:"created_at" json:"createdAt"`
	UpdatedAt        time.Time       `db:"updated_at" json:"updatedAt"`

	Items []OrderItem `json:"items,omitempty"`
}

// OrderItem is a line on an order. UnitPrice is the snapshot price at order
// creation. Items are owned by their order and deleted with it.
type OrderItem struct {
	ID        int             `db:"id" json:"-"`
	OrderID   string          `db:"order_id" json:"-"`
	ProductID int             `db:"product_id" json:"productId"`
	Quantity  int             `db:"quantity" json:"quantity"`
	UnitPrice decimal.Decimal `db:"unit_price" json:"unitPrice"`

	// Joined from products for display.
	ProductTitle string `db:"product_title" json:"productTitle,omitempty"`
}
