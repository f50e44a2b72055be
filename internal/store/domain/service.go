package domain

import (
	"context"
	"errors"
	"time"
)

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Response, error)
	List(ctx context.Context) ([]Response, error)
	Get(ctx context.Context, id string) (*Response, error)
	Update(ctx context.Context, req UpdateRequest) (*Response, error)
	Delete(ctx context.Context, id string) error
}

type CreateRequest struct {
	Name string `json:"name"`
}

type UpdateRequest struct {
	ID     string       `json:"-"`
	Name   *string      `json:"name"`
	Status *StoreStatus `json:"status"`
}

type Response struct {
	ID          string      `json:"id"`
	WorkspaceID string      `json:"workspace_id"`
	Name        string      `json:"name"`
	Slug        string      `json:"slug"`
	Subdomain   string      `json:"subdomain"`
	Status      StoreStatus `json:"status"`
	PublishedAt *time.Time  `json:"published_at,omitempty"`

	Currency string `json:"currency"`

	PrimaryColor   string `json:"primary_color"`
	SecondaryColor string `json:"secondary_color"`
	FontFamily     string `json:"font_family"`
	Layout         string `json:"layout"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

var (
	ErrInvalidWorkspace = errors.New("invalid_workspace")
	ErrInvalidName      = errors.New("invalid_name")
	ErrInvalidStatus    = errors.New("invalid_status")
	ErrInvalidID        = errors.New("invalid_id")
	ErrNotFound         = errors.New("not_found")

	// ErrQuotaExceeded is wrapped with the plan limit so handlers can
	// surface the exact number to users.
	ErrQuotaExceeded = errors.New("store_quota_exceeded")

	// ErrSlugTaken surfaces a write-time uniqueness conflict that survived
	// the pre-check and one recompute retry.
	ErrSlugTaken = errors.New("slug_taken")

	// ErrSlugExhausted means the suffix probe hit its cap without finding
	// a free candidate.
	ErrSlugExhausted = errors.New("slug_exhausted")

	// ErrPlanMissing means a workspace row points at no resolvable plan.
	// Quota enforcement fails closed rather than granting unlimited stores.
	ErrPlanMissing = errors.New("plan_missing")
)
