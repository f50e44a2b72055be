package domain

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
)

const (
	RoleOwner  = "OWNER"
	RoleAdmin  = "ADMIN"
	RoleMember = "MEMBER" // Read-only / Limited
)

// DefaultPlanCode is the plan assigned to workspaces created without an
// explicit plan choice.
const DefaultPlanCode = "free"

type Service interface {
	Create(ctx context.Context, userID snowflake.ID, req CreateWorkspaceRequest) (*WorkspaceResponse, error)
	GetByID(ctx context.Context, id string) (*WorkspaceResponse, error)
	ListWorkspacesByUser(ctx context.Context, userID snowflake.ID) ([]WorkspaceListResponseItem, error)
	MemberRole(ctx context.Context, workspaceID, userID snowflake.ID) (string, error)
}

type CreateWorkspaceRequest struct {
	Name     string
	PlanCode string
}

type WorkspaceResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Slug      string `json:"slug"`
	PlanCode  string `json:"plan_code"`
	MaxStores int    `json:"max_stores"`
}

type WorkspaceListResponseItem struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

var (
	ErrInvalidName      = errors.New("invalid_name")
	ErrInvalidUser      = errors.New("invalid_user")
	ErrInvalidWorkspace = errors.New("invalid_workspace")
	ErrInvalidPlan      = errors.New("invalid_plan")
	ErrNotFound         = errors.New("not_found")
	ErrForbidden        = errors.New("forbidden")
)
