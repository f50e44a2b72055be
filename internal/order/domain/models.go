// Package domain contains persistence models for the order service.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
)

type OrderStatus string

const (
	StatusPending   OrderStatus = "PENDING"
	StatusPaid      OrderStatus = "PAID"
	StatusShipped   OrderStatus = "SHIPPED"
	StatusDelivered OrderStatus = "DELIVERED"
	StatusCancelled OrderStatus = "CANCELLED"
)

// OrderItem is a denormalized line snapshot; product data is copied in at
// order time so later catalog edits never rewrite history.
type OrderItem struct {
	ProductName string `json:"product_name"`
	Quantity    int64  `json:"quantity"`
	UnitAmount  int64  `json:"unit_amount"`
}

// Order amounts are integer minor units of Currency.
type Order struct {
	ID          snowflake.ID  `gorm:"primaryKey" json:"id"`
	WorkspaceID snowflake.ID  `gorm:"column:workspace_id;not null;index" json:"workspace_id"`
	StoreID     snowflake.ID  `gorm:"column:store_id;not null;uniqueIndex:ux_orders_store_number" json:"store_id"`
	CustomerID  *snowflake.ID `gorm:"column:customer_id" json:"customer_id,omitempty"`

	OrderNumber string      `gorm:"column:order_number;type:text;not null;uniqueIndex:ux_orders_store_number" json:"order_number"`
	Status      OrderStatus `gorm:"type:text;not null;default:'PENDING'" json:"status"`
	Currency    string      `gorm:"type:text;not null" json:"currency"`

	Items       datatypes.JSONSlice[OrderItem] `gorm:"column:items" json:"items"`
	Subtotal    int64                          `gorm:"not null;default:0" json:"subtotal"`
	ShippingFee int64                          `gorm:"column:shipping_fee;not null;default:0" json:"shipping_fee"`
	Total       int64                          `gorm:"not null;default:0" json:"total"`

	Notes string `gorm:"type:text;not null;default:''" json:"notes"`

	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// Store scoping shares the unique index so numbers only need to be unique
// per store.
func (Order) TableName() string { return "orders" }

// ValidStatus reports whether raw is a known order status.
func ValidStatus(raw OrderStatus) bool {
	switch raw {
	case StatusPending, StatusPaid, StatusShipped, StatusDelivered, StatusCancelled:
		return true
	default:
		return false
	}
}

// CanTransition reports whether an order may move from one status to
// another. Cancellation is allowed from any non-terminal state.
func CanTransition(from, to OrderStatus) bool {
	if from == to {
		return false
	}
	switch from {
	case StatusPending:
		return to == StatusPaid || to == StatusCancelled
	case StatusPaid:
		return to == StatusShipped || to == StatusCancelled
	case StatusShipped:
		return to == StatusDelivered || to == StatusCancelled
	default:
		return false
	}
}
