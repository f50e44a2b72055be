package domain

import (
	"context"
	"errors"
	"io"
)

type Service interface {
	Store(ctx context.Context, req StoreRequest) (*Upload, error)
	List(ctx context.Context, storeID string) ([]Upload, error)
	Open(ctx context.Context, storeID, id string) (*Upload, io.ReadCloser, error)
	Delete(ctx context.Context, storeID, id string) error
}

type StoreRequest struct {
	StoreID     string
	Filename    string
	ContentType string
	Size        int64
	Body        io.Reader
}

var (
	ErrInvalidWorkspace = errors.New("invalid_workspace")
	ErrInvalidStore     = errors.New("invalid_store")
	ErrInvalidID        = errors.New("invalid_id")
	ErrInvalidFile      = errors.New("invalid_file")
	ErrNotFound         = errors.New("not_found")

	// ErrTooLarge is wrapped with the byte limit.
	ErrTooLarge = errors.New("file_too_large")

	// ErrUnsupportedType is wrapped with the offending content type.
	ErrUnsupportedType = errors.New("unsupported_content_type")
)
