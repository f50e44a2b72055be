package domain

import (
	"context"
	"errors"
)

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Pixel, error)
	List(ctx context.Context, storeID string) ([]Pixel, error)
	Update(ctx context.Context, req UpdateRequest) (*Pixel, error)
	Delete(ctx context.Context, storeID, id string) error

	// Check probes the provider endpoint for the stored pixel id and
	// records the outcome on the row.
	Check(ctx context.Context, storeID, id string) (*Pixel, error)
}

type CreateRequest struct {
	StoreID     string   `json:"-"`
	Provider    Provider `json:"provider"`
	PixelID     string   `json:"pixel_id"`
	AccessToken string   `json:"access_token"`
	IsActive    *bool    `json:"is_active"`
}

type UpdateRequest struct {
	StoreID     string  `json:"-"`
	ID          string  `json:"-"`
	PixelID     *string `json:"pixel_id"`
	AccessToken *string `json:"access_token"`
	IsActive    *bool   `json:"is_active"`
}

var (
	ErrInvalidWorkspace = errors.New("invalid_workspace")
	ErrInvalidStore     = errors.New("invalid_store")
	ErrInvalidID        = errors.New("invalid_id")
	ErrInvalidProvider  = errors.New("invalid_provider")
	ErrInvalidPixelID   = errors.New("invalid_pixel_id")
	ErrNotFound         = errors.New("not_found")

	// ErrDuplicateProvider means the store already carries a pixel for
	// the provider.
	ErrDuplicateProvider = errors.New("duplicate_provider")

	// ErrCheckFailed wraps the transport failure from a connectivity
	// probe.
	ErrCheckFailed = errors.New("pixel_check_failed")
)
