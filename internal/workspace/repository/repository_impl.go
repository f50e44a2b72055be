package repository

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"github.com/smartsellhq/smartsell/internal/workspace/domain"
	"gorm.io/gorm"
)

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) domain.Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) domain.Repository {
	return &repository{db: tx}
}

func (r *repository) CreateWorkspace(ctx context.Context, ws domain.Workspace) error {
	return r.db.WithContext(ctx).Create(&ws).Error
}

func (r *repository) AddMember(ctx context.Context, member domain.WorkspaceMember) error {
	return r.db.WithContext(ctx).Create(&member).Error
}

func (r *repository) FindByID(ctx context.Context, id snowflake.ID) (*domain.Workspace, error) {
	var ws domain.Workspace
	err := r.db.WithContext(ctx).
		Preload("Plan").
		First(&ws, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &ws, nil
}

func (r *repository) FindPlanByCode(ctx context.Context, code string) (*domain.Plan, error) {
	var plan domain.Plan
	err := r.db.WithContext(ctx).First(&plan, "code = ?", code).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &plan, nil
}

func (r *repository) ListWorkspacesByUser(ctx context.Context, userID snowflake.ID) ([]domain.WorkspaceListItem, error) {
	var items []domain.WorkspaceListItem
	err := r.db.WithContext(ctx).Raw(
		`SELECT w.id, w.name, w.slug, m.role, w.created_at
		 FROM workspaces w
		 JOIN workspace_members m ON m.workspace_id = w.id
		 WHERE m.user_id = ?
		 ORDER BY w.created_at ASC`,
		userID,
	).Scan(&items).Error
	if err != nil {
		return nil, err
	}

	return items, nil
}

func (r *repository) MemberRole(ctx context.Context, workspaceID, userID snowflake.ID) (string, error) {
	var member domain.WorkspaceMember
	err := r.db.WithContext(ctx).
		First(&member, "workspace_id = ? AND user_id = ?", workspaceID, userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil
		}
		return "", err
	}
	return member.Role, nil
}
