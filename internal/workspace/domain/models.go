// Package domain contains persistence models for the workspace service.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
)

// Workspace represents a tenant.
type Workspace struct {
	ID        snowflake.ID      `gorm:"primaryKey" json:"id"`
	Name      string            `gorm:"type:text;not null" json:"name"`
	Slug      string            `gorm:"type:text;not null;uniqueIndex:ux_workspaces_slug" json:"slug"`
	PlanID    snowflake.ID      `gorm:"column:plan_id;not null;index" json:"plan_id"`
	Plan      *Plan             `gorm:"foreignKey:PlanID" json:"plan,omitempty"`
	Metadata  datatypes.JSONMap `gorm:"type:jsonb" json:"metadata,omitempty"`
	CreatedAt time.Time         `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time         `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (Workspace) TableName() string { return "workspaces" }

// Plan is an immutable quota and feature descriptor attached to workspaces.
type Plan struct {
	ID                  snowflake.ID      `gorm:"primaryKey" json:"id"`
	Code                string            `gorm:"type:text;not null;uniqueIndex:ux_plans_code" json:"code"`
	Name                string            `gorm:"type:text;not null" json:"name"`
	MaxStores           int               `gorm:"not null" json:"max_stores"`
	MaxProductsPerStore int               `gorm:"not null" json:"max_products_per_store"`
	Features            datatypes.JSONMap `gorm:"type:jsonb" json:"features,omitempty"`
	CreatedAt           time.Time         `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

// TableName sets the database table name.
func (Plan) TableName() string { return "plans" }

// WorkspaceMember represents membership of a user in a workspace.
type WorkspaceMember struct {
	ID          snowflake.ID `gorm:"primaryKey" json:"id"`
	WorkspaceID snowflake.ID `gorm:"not null;index;uniqueIndex:ux_workspace_user,priority:1" json:"workspace_id"`
	UserID      snowflake.ID `gorm:"not null;index;uniqueIndex:ux_workspace_user,priority:2" json:"user_id"`
	Role        string       `gorm:"type:text;not null" json:"role"`
	CreatedAt   time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

// TableName sets the database table name.
func (WorkspaceMember) TableName() string { return "workspace_members" }
