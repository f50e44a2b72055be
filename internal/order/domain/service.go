package domain

import (
	"context"
	"errors"
)

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Order, error)
	List(ctx context.Context, req ListRequest) (*ListResponse, error)
	Get(ctx context.Context, storeID, id string) (*Order, error)
	UpdateStatus(ctx context.Context, storeID, id string, status OrderStatus) (*Order, error)
}

type CreateItem struct {
	ProductName string `json:"product_name"`
	Quantity    int64  `json:"quantity"`
	UnitAmount  int64  `json:"unit_amount"`
}

type CreateRequest struct {
	StoreID     string       `json:"-"`
	CustomerID  string       `json:"customer_id"`
	Items       []CreateItem `json:"items"`
	ShippingFee int64        `json:"shipping_fee"`
	Notes       string       `json:"notes"`
}

type ListRequest struct {
	StoreID   string
	Status    OrderStatus
	SortBy    string
	SortOrder string
	PageToken string
	PageSize  int
}

type ListResponse struct {
	Orders        []Order `json:"orders"`
	NextPageToken string  `json:"next_page_token,omitempty"`
}

var (
	ErrInvalidWorkspace  = errors.New("invalid_workspace")
	ErrInvalidStore      = errors.New("invalid_store")
	ErrInvalidID         = errors.New("invalid_id")
	ErrInvalidItems      = errors.New("invalid_items")
	ErrInvalidStatus     = errors.New("invalid_status")
	ErrNotFound          = errors.New("not_found")
	ErrInvalidTransition = errors.New("invalid_status_transition")

	// ErrNumberTaken means every retried order number was already claimed
	// by concurrent creates.
	ErrNumberTaken = errors.New("order_number_taken")
)
