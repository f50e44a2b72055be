package domain

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type WorkspaceListItem struct {
	ID        snowflake.ID
	Name      string
	Slug      string
	Role      string
	CreatedAt time.Time
}

type Repository interface {
	WithTx(tx *gorm.DB) Repository
	CreateWorkspace(ctx context.Context, ws Workspace) error
	AddMember(ctx context.Context, member WorkspaceMember) error
	FindByID(ctx context.Context, id snowflake.ID) (*Workspace, error)
	FindPlanByCode(ctx context.Context, code string) (*Plan, error)
	ListWorkspacesByUser(ctx context.Context, userID snowflake.ID) ([]WorkspaceListItem, error)
	MemberRole(ctx context.Context, workspaceID, userID snowflake.ID) (string, error)
}
