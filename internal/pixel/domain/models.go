// Package domain contains persistence models for the marketing pixel
// service.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

type Provider string

const (
	ProviderFacebook Provider = "facebook"
	ProviderTiktok   Provider = "tiktok"
	ProviderGoogle   Provider = "google"
	ProviderSnapchat Provider = "snapchat"
)

// Pixel is a third-party tracking tag installed on a storefront.
type Pixel struct {
	ID          snowflake.ID `gorm:"primaryKey" json:"id"`
	WorkspaceID snowflake.ID `gorm:"column:workspace_id;not null;index" json:"workspace_id"`
	StoreID     snowflake.ID `gorm:"column:store_id;not null;uniqueIndex:ux_pixels_store_provider" json:"store_id"`
	Provider    Provider     `gorm:"type:text;not null;uniqueIndex:ux_pixels_store_provider" json:"provider"`
	PixelID     string       `gorm:"column:pixel_id;type:text;not null" json:"pixel_id"`
	IsActive    bool         `gorm:"not null;default:true" json:"is_active"`

	// AccessToken authorizes server-side event calls to the provider.
	// Never serialized into responses.
	AccessToken string `gorm:"column:access_token;type:text;not null;default:''" json:"-"`

	LastCheckedAt *time.Time `gorm:"column:last_checked_at" json:"last_checked_at,omitempty"`
	LastCheckOK   bool       `gorm:"column:last_check_ok;not null;default:false" json:"last_check_ok"`

	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (Pixel) TableName() string { return "pixels" }

// ValidProvider reports whether raw is a supported pixel provider.
func ValidProvider(raw Provider) bool {
	switch raw {
	case ProviderFacebook, ProviderTiktok, ProviderGoogle, ProviderSnapchat:
		return true
	default:
		return false
	}
}
