// Package domain contains persistence models for the store service.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
)

type StoreStatus string

const (
	StatusDraft     StoreStatus = "DRAFT"
	StatusPublished StoreStatus = "PUBLISHED"
	StatusArchived  StoreStatus = "ARCHIVED"
)

// Store is a storefront owned by a workspace. The slug is unique across
// all workspaces, not just within the owning one.
type Store struct {
	ID          snowflake.ID `gorm:"primaryKey" json:"id"`
	WorkspaceID snowflake.ID `gorm:"column:workspace_id;not null;index" json:"workspace_id"`
	Name        string       `gorm:"type:text;not null" json:"name"`
	Slug        string       `gorm:"type:text;not null;uniqueIndex:ux_stores_slug" json:"slug"`
	Subdomain   string       `gorm:"type:text;not null" json:"subdomain"`
	Status      StoreStatus  `gorm:"type:text;not null;default:'DRAFT'" json:"status"`
	PublishedAt *time.Time   `gorm:"column:published_at" json:"published_at,omitempty"`

	// Currency holds the default currency code; EnabledCurrencies always
	// contains it. Both reference the workspace currency catalog by code.
	Currency          string                      `gorm:"type:text;not null;default:''" json:"currency"`
	EnabledCurrencies datatypes.JSONSlice[string] `gorm:"column:enabled_currencies" json:"enabled_currencies"`
	AutoConvert       bool                        `gorm:"not null;default:false" json:"auto_convert"`
	ExchangeRates     datatypes.JSONMap           `gorm:"column:exchange_rates" json:"exchange_rates,omitempty"`
	RatesUpdatedAt    *time.Time                  `gorm:"column:rates_updated_at" json:"rates_updated_at,omitempty"`

	PrimaryColor   string `gorm:"type:text;not null;default:''" json:"primary_color"`
	SecondaryColor string `gorm:"type:text;not null;default:''" json:"secondary_color"`
	FontFamily     string `gorm:"type:text;not null;default:''" json:"font_family"`
	Layout         string `gorm:"type:text;not null;default:''" json:"layout"`

	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (Store) TableName() string { return "stores" }

// ValidStatus reports whether raw is a known store status.
func ValidStatus(raw StoreStatus) bool {
	switch raw {
	case StatusDraft, StatusPublished, StatusArchived:
		return true
	default:
		return false
	}
}
