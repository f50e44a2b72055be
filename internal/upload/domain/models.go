// Package domain contains persistence models for the upload service.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// Upload records one stored object. Key is the on-disk name, a ULID plus
// the original extension, so listings sort by upload time.
type Upload struct {
	ID          snowflake.ID `gorm:"primaryKey" json:"id"`
	WorkspaceID snowflake.ID `gorm:"column:workspace_id;not null;index" json:"workspace_id"`
	StoreID     snowflake.ID `gorm:"column:store_id;not null;index" json:"store_id"`

	Key          string `gorm:"type:text;not null;uniqueIndex:ux_uploads_key" json:"key"`
	OriginalName string `gorm:"column:original_name;type:text;not null" json:"original_name"`
	ContentType  string `gorm:"column:content_type;type:text;not null" json:"content_type"`
	SizeBytes    int64  `gorm:"column:size_bytes;not null" json:"size_bytes"`

	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

// TableName sets the database table name.
func (Upload) TableName() string { return "uploads" }
