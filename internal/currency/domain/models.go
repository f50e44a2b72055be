// Package domain contains persistence models for the currency service.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// Currency is one row of a workspace's currency catalog. Stores reference
// catalog entries by code, not by id, so code is the stable identifier
// within a workspace.
type Currency struct {
	ID          snowflake.ID `gorm:"primaryKey" json:"id"`
	WorkspaceID snowflake.ID `gorm:"column:workspace_id;not null;uniqueIndex:ux_currencies_workspace_code" json:"workspace_id"`
	Code        string       `gorm:"type:text;not null;uniqueIndex:ux_currencies_workspace_code" json:"code"`
	Name        string       `gorm:"type:text;not null" json:"name"`
	NameAr      string       `gorm:"column:name_ar;type:text;not null;default:''" json:"name_ar"`
	Symbol      string       `gorm:"type:text;not null;default:''" json:"symbol"`
	IsActive    bool         `gorm:"not null;default:true" json:"is_active"`

	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (Currency) TableName() string { return "currencies" }
