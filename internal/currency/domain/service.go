package domain

import (
	"context"
	"errors"
	"time"
)

type Service interface {
	CreateCurrency(ctx context.Context, req CreateCurrencyRequest) (*Currency, error)
	ListCurrencies(ctx context.Context) ([]Currency, error)
	UpdateCurrency(ctx context.Context, req UpdateCurrencyRequest) (*Currency, error)
	DeleteCurrency(ctx context.Context, id string) error

	GetStoreSettings(ctx context.Context, storeID string) (*StoreSettings, error)
	UpdateStoreSettings(ctx context.Context, storeID string, patch SettingsPatch) (*StoreSettings, error)
}

type CreateCurrencyRequest struct {
	Code     string `json:"code"`
	Name     string `json:"name"`
	NameAr   string `json:"name_ar"`
	Symbol   string `json:"symbol"`
	IsActive *bool  `json:"is_active"`
}

type UpdateCurrencyRequest struct {
	ID       string  `json:"-"`
	Name     *string `json:"name"`
	NameAr   *string `json:"name_ar"`
	Symbol   *string `json:"symbol"`
	IsActive *bool   `json:"is_active"`
}

// SettingsPatch carries only the fields the caller wants to change; nil
// means "leave as stored".
type SettingsPatch struct {
	DefaultCurrency   *string             `json:"default_currency"`
	EnabledCurrencies *[]string           `json:"enabled_currencies"`
	AutoConvert       *bool               `json:"auto_convert"`
	ExchangeRates     *map[string]float64 `json:"exchange_rates"`
}

type StoreSettings struct {
	StoreID           string             `json:"store_id"`
	DefaultCurrency   string             `json:"default_currency"`
	EnabledCurrencies []string           `json:"enabled_currencies"`
	AutoConvert       bool               `json:"auto_convert"`
	ExchangeRates     map[string]float64 `json:"exchange_rates"`
	RatesUpdatedAt    *time.Time         `json:"rates_updated_at,omitempty"`
	Catalog           []Currency         `json:"catalog"`
}

var (
	ErrInvalidWorkspace = errors.New("invalid_workspace")
	ErrInvalidID        = errors.New("invalid_id")
	ErrInvalidCode      = errors.New("invalid_code")
	ErrInvalidName      = errors.New("invalid_name")
	ErrNotFound         = errors.New("not_found")

	// ErrDuplicateCurrency means the workspace catalog already holds the
	// code after uppercase normalization.
	ErrDuplicateCurrency = errors.New("duplicate_currency")

	// ErrInvalidCurrencyCode is wrapped with the offending code so
	// handlers can name it in the response.
	ErrInvalidCurrencyCode = errors.New("invalid_currency_code")
)
