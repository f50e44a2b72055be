package domain

import (
	"context"
	"errors"

	"gorm.io/datatypes"
)

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Customer, error)
	List(ctx context.Context, req ListRequest) (*ListResponse, error)
	Get(ctx context.Context, storeID, id string) (*Customer, error)
	Update(ctx context.Context, req UpdateRequest) (*Customer, error)
	Delete(ctx context.Context, storeID, id string) error
}

type CreateRequest struct {
	StoreID  string            `json:"-"`
	Name     string            `json:"name"`
	Email    string            `json:"email"`
	Phone    string            `json:"phone"`
	Address  string            `json:"address"`
	City     string            `json:"city"`
	Country  string            `json:"country"`
	Metadata datatypes.JSONMap `json:"metadata"`
}

type UpdateRequest struct {
	StoreID  string            `json:"-"`
	ID       string            `json:"-"`
	Name     *string           `json:"name"`
	Phone    *string           `json:"phone"`
	Address  *string           `json:"address"`
	City     *string           `json:"city"`
	Country  *string           `json:"country"`
	Metadata datatypes.JSONMap `json:"metadata"`
}

type ListRequest struct {
	StoreID   string
	Search    string
	PageToken string
	PageSize  int
}

type ListResponse struct {
	Customers     []Customer `json:"customers"`
	NextPageToken string     `json:"next_page_token,omitempty"`
}

var (
	ErrInvalidWorkspace = errors.New("invalid_workspace")
	ErrInvalidStore     = errors.New("invalid_store")
	ErrInvalidID        = errors.New("invalid_id")
	ErrInvalidName      = errors.New("invalid_name")
	ErrInvalidEmail     = errors.New("invalid_email")
	ErrNotFound         = errors.New("not_found")

	// ErrDuplicateEmail means the store already has a customer with the
	// lowercased email.
	ErrDuplicateEmail = errors.New("duplicate_email")
)
