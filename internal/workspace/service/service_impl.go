package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gosimple/slug"
	"github.com/smartsellhq/smartsell/internal/workspace/domain"
	dbpkg "github.com/smartsellhq/smartsell/pkg/db"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type service struct {
	db    *gorm.DB
	log   *zap.Logger
	repo  domain.Repository
	genID *snowflake.Node
}

func NewService(db *gorm.DB, log *zap.Logger, repo domain.Repository, genID *snowflake.Node) domain.Service {
	return &service{
		db:    db,
		log:   log.Named("workspace.service"),
		repo:  repo,
		genID: genID,
	}
}

func (s *service) Create(ctx context.Context, userID snowflake.ID, req domain.CreateWorkspaceRequest) (*domain.WorkspaceResponse, error) {
	if userID == 0 {
		return nil, domain.ErrInvalidUser
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, domain.ErrInvalidName
	}

	planCode := strings.TrimSpace(req.PlanCode)
	if planCode == "" {
		planCode = domain.DefaultPlanCode
	}
	plan, err := s.repo.FindPlanByCode(ctx, planCode)
	if err != nil {
		return nil, err
	}
	if plan == nil {
		return nil, domain.ErrInvalidPlan
	}

	now := time.Now().UTC()
	workspaceID := s.genID.Generate()
	ws := domain.Workspace{
		ID:        workspaceID,
		Name:      name,
		Slug:      slug.Make(name),
		PlanID:    plan.ID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		if err := repo.CreateWorkspace(ctx, ws); err != nil {
			return err
		}

		member := domain.WorkspaceMember{
			ID:          s.genID.Generate(),
			WorkspaceID: workspaceID,
			UserID:      userID,
			Role:        domain.RoleOwner,
			CreatedAt:   now,
		}

		return repo.AddMember(ctx, member)
	})
	if err != nil {
		if dbpkg.IsDuplicateKeyErr(err) {
			s.log.Warn("workspace slug collision", zap.String("slug", ws.Slug))
			return nil, domain.ErrInvalidName
		}
		return nil, err
	}

	return &domain.WorkspaceResponse{
		ID:        workspaceID.String(),
		Name:      name,
		Slug:      ws.Slug,
		PlanCode:  plan.Code,
		MaxStores: plan.MaxStores,
	}, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*domain.WorkspaceResponse, error) {
	raw := strings.TrimSpace(id)
	if raw == "" {
		return nil, domain.ErrInvalidWorkspace
	}
	workspaceID, err := snowflake.ParseString(raw)
	if err != nil {
		return nil, domain.ErrInvalidWorkspace
	}

	ws, err := s.repo.FindByID(ctx, workspaceID)
	if err != nil {
		return nil, err
	}
	if ws == nil {
		return nil, domain.ErrNotFound
	}

	resp := &domain.WorkspaceResponse{
		ID:   ws.ID.String(),
		Name: ws.Name,
		Slug: ws.Slug,
	}
	if ws.Plan != nil {
		resp.PlanCode = ws.Plan.Code
		resp.MaxStores = ws.Plan.MaxStores
	}
	return resp, nil
}

func (s *service) ListWorkspacesByUser(ctx context.Context, userID snowflake.ID) ([]domain.WorkspaceListResponseItem, error) {
	if userID == 0 {
		return nil, domain.ErrInvalidUser
	}

	items, err := s.repo.ListWorkspacesByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	resp := make([]domain.WorkspaceListResponseItem, 0, len(items))
	for _, item := range items {
		resp = append(resp, domain.WorkspaceListResponseItem{
			ID:        item.ID.String(),
			Name:      item.Name,
			Slug:      item.Slug,
			Role:      item.Role,
			CreatedAt: item.CreatedAt,
		})
	}

	return resp, nil
}

func (s *service) MemberRole(ctx context.Context, workspaceID, userID snowflake.ID) (string, error) {
	if workspaceID == 0 || userID == 0 {
		return "", domain.ErrInvalidWorkspace
	}
	return s.repo.MemberRole(ctx, workspaceID, userID)
}
