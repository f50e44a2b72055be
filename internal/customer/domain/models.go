// Package domain contains persistence models for the customer service.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
)

type Customer struct {
	ID          snowflake.ID `gorm:"primaryKey" json:"id"`
	WorkspaceID snowflake.ID `gorm:"column:workspace_id;not null;index" json:"workspace_id"`
	StoreID     snowflake.ID `gorm:"column:store_id;not null;uniqueIndex:ux_customers_store_email" json:"store_id"`
	Name        string       `gorm:"type:text;not null" json:"name"`
	Email       string       `gorm:"type:text;not null;uniqueIndex:ux_customers_store_email" json:"email"`
	Phone       string       `gorm:"type:text;not null;default:''" json:"phone"`
	Address     string       `gorm:"type:text;not null;default:''" json:"address"`
	City        string       `gorm:"type:text;not null;default:''" json:"city"`
	Country     string       `gorm:"type:text;not null;default:''" json:"country"`

	Metadata datatypes.JSONMap `gorm:"column:metadata" json:"metadata,omitempty"`

	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (Customer) TableName() string { return "customers" }
