package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/smartsellhq/smartsell/internal/config"
	"github.com/smartsellhq/smartsell/internal/store/domain"
	"github.com/smartsellhq/smartsell/internal/workspacectx"
	workspacedomain "github.com/smartsellhq/smartsell/internal/workspace/domain"
	dbpkg "github.com/smartsellhq/smartsell/pkg/db"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// maxSlugProbes caps the collision probe so concurrent creation with
// identical names cannot spin forever.
const maxSlugProbes = 50

type Params struct {
	fx.In

	DB       *gorm.DB
	Log      *zap.Logger
	GenID    *snowflake.Node
	Repo     domain.Repository
	WsRepo   workspacedomain.Repository
	Defaults *config.StoreDefaultsHolder
}

type Service struct {
	db       *gorm.DB
	log      *zap.Logger
	repo     domain.Repository
	wsRepo   workspacedomain.Repository
	genID    *snowflake.Node
	defaults *config.StoreDefaultsHolder
}

func New(p Params) domain.Service {
	return &Service{
		db:       p.DB,
		log:      p.Log.Named("store.service"),
		repo:     p.Repo,
		wsRepo:   p.WsRepo,
		genID:    p.GenID,
		defaults: p.Defaults,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateRequest) (*domain.Response, error) {
	workspaceID, ok := workspacectx.WorkspaceIDFromContext(ctx)
	if !ok || workspaceID == 0 {
		return nil, domain.ErrInvalidWorkspace
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, domain.ErrInvalidName
	}

	ws, err := s.wsRepo.FindByID(ctx, workspaceID)
	if err != nil {
		return nil, err
	}
	if ws == nil {
		return nil, domain.ErrNotFound
	}
	if ws.Plan == nil {
		// Without a plan there is no limit to enforce; refusing beats
		// handing out unlimited stores.
		s.log.Error("workspace has no plan", zap.String("workspace_id", workspaceID.String()))
		return nil, domain.ErrPlanMissing
	}
	count, err := s.repo.CountByWorkspace(ctx, s.db, workspaceID)
	if err != nil {
		return nil, err
	}
	if count >= int64(ws.Plan.MaxStores) {
		return nil, fmt.Errorf("%w: plan allows at most %d stores", domain.ErrQuotaExceeded, ws.Plan.MaxStores)
	}

	allocated, err := s.allocateSlug(ctx, name, 0)
	if err != nil {
		return nil, err
	}

	theme := s.defaults.Get()
	now := time.Now().UTC()
	store := &domain.Store{
		ID:          s.genID.Generate(),
		WorkspaceID: workspaceID,
		Name:        name,
		Slug:        allocated,
		Subdomain:   allocated,
		Status:      domain.StatusDraft,

		EnabledCurrencies: datatypes.JSONSlice[string]{},

		PrimaryColor:   theme.PrimaryColor,
		SecondaryColor: theme.SecondaryColor,
		FontFamily:     theme.FontFamily,
		Layout:         theme.Layout,

		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Create(ctx, s.db, store); err != nil {
		if !dbpkg.IsDuplicateKeyErr(err) {
			return nil, err
		}
		// A concurrent creator won the slug between our probe and the
		// insert. Recompute the suffix once before giving up.
		s.log.Warn("slug collision on insert, retrying",
			zap.String("slug", store.Slug))
		allocated, err = s.allocateSlug(ctx, name, 0)
		if err != nil {
			return nil, err
		}
		store.Slug = allocated
		store.Subdomain = allocated
		if err := s.repo.Create(ctx, s.db, store); err != nil {
			if dbpkg.IsDuplicateKeyErr(err) {
				return nil, domain.ErrSlugTaken
			}
			return nil, err
		}
	}

	resp := toResponse(store)
	return &resp, nil
}

func (s *Service) List(ctx context.Context) ([]domain.Response, error) {
	workspaceID, ok := workspacectx.WorkspaceIDFromContext(ctx)
	if !ok || workspaceID == 0 {
		return nil, domain.ErrInvalidWorkspace
	}

	items, err := s.repo.FindAll(ctx, s.db, workspaceID)
	if err != nil {
		return nil, err
	}

	resp := make([]domain.Response, 0, len(items))
	for i := range items {
		resp = append(resp, toResponse(&items[i]))
	}
	return resp, nil
}

func (s *Service) Get(ctx context.Context, id string) (*domain.Response, error) {
	workspaceID, ok := workspacectx.WorkspaceIDFromContext(ctx)
	if !ok || workspaceID == 0 {
		return nil, domain.ErrInvalidWorkspace
	}

	storeID, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil {
		return nil, domain.ErrInvalidID
	}

	store, err := s.repo.FindByID(ctx, s.db, workspaceID, storeID)
	if err != nil {
		return nil, err
	}
	if store == nil {
		return nil, domain.ErrNotFound
	}

	resp := toResponse(store)
	return &resp, nil
}

func (s *Service) Update(ctx context.Context, req domain.UpdateRequest) (*domain.Response, error) {
	workspaceID, ok := workspacectx.WorkspaceIDFromContext(ctx)
	if !ok || workspaceID == 0 {
		return nil, domain.ErrInvalidWorkspace
	}

	storeID, err := snowflake.ParseString(strings.TrimSpace(req.ID))
	if err != nil {
		return nil, domain.ErrInvalidID
	}

	store, err := s.repo.FindByID(ctx, s.db, workspaceID, storeID)
	if err != nil {
		return nil, err
	}
	if store == nil {
		return nil, domain.ErrNotFound
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, domain.ErrInvalidName
		}
		if name != store.Name {
			// Renaming regenerates the slug but never the subdomain; the
			// subdomain keeps pointing at the address handed out on
			// creation.
			allocated, err := s.allocateSlug(ctx, name, store.ID)
			if err != nil {
				return nil, err
			}
			store.Name = name
			store.Slug = allocated
		}
	}

	if req.Status != nil {
		status := *req.Status
		if !domain.ValidStatus(status) {
			return nil, domain.ErrInvalidStatus
		}
		if status == domain.StatusPublished && store.Status != domain.StatusPublished {
			now := time.Now().UTC()
			store.PublishedAt = &now
		}
		store.Status = status
	}

	store.UpdatedAt = time.Now().UTC()
	if err := s.repo.Update(ctx, s.db, store); err != nil {
		if !dbpkg.IsDuplicateKeyErr(err) {
			return nil, err
		}
		// Same race as on create: a concurrent writer claimed the slug
		// after our probe. Recompute the suffix once before giving up.
		s.log.Warn("slug collision on rename, retrying",
			zap.String("slug", store.Slug))
		allocated, err := s.allocateSlug(ctx, store.Name, store.ID)
		if err != nil {
			return nil, err
		}
		store.Slug = allocated
		if err := s.repo.Update(ctx, s.db, store); err != nil {
			if dbpkg.IsDuplicateKeyErr(err) {
				return nil, domain.ErrSlugTaken
			}
			return nil, err
		}
	}

	resp := toResponse(store)
	return &resp, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	workspaceID, ok := workspacectx.WorkspaceIDFromContext(ctx)
	if !ok || workspaceID == 0 {
		return domain.ErrInvalidWorkspace
	}

	storeID, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil {
		return domain.ErrInvalidID
	}

	store, err := s.repo.FindByID(ctx, s.db, workspaceID, storeID)
	if err != nil {
		return err
	}
	if store == nil {
		return domain.ErrNotFound
	}

	return s.repo.Delete(ctx, s.db, workspaceID, storeID)
}

// allocateSlug derives the base slug from name and probes the store table
// for the first free candidate, appending -1, -2, ... on collisions.
// excludeID skips the store being renamed so it never collides with its
// own current slug.
func (s *Service) allocateSlug(ctx context.Context, name string, excludeID snowflake.ID) (string, error) {
	root := domain.DeriveSlug(name)
	if root == "" {
		return "", domain.ErrInvalidName
	}

	candidate := root
	for n := 0; n <= maxSlugProbes; n++ {
		if n > 0 {
			candidate = fmt.Sprintf("%s-%d", root, n)
		}
		taken, err := s.repo.SlugExists(ctx, s.db, candidate, excludeID)
		if err != nil {
			return "", err
		}
		if !taken {
			return candidate, nil
		}
	}

	return "", domain.ErrSlugExhausted
}

func toResponse(store *domain.Store) domain.Response {
	return domain.Response{
		ID:          store.ID.String(),
		WorkspaceID: store.WorkspaceID.String(),
		Name:        store.Name,
		Slug:        store.Slug,
		Subdomain:   store.Subdomain,
		Status:      store.Status,
		PublishedAt: store.PublishedAt,
		Currency:    store.Currency,

		PrimaryColor:   store.PrimaryColor,
		SecondaryColor: store.SecondaryColor,
		FontFamily:     store.FontFamily,
		Layout:         store.Layout,

		CreatedAt: store.CreatedAt,
		UpdatedAt: store.UpdatedAt,
	}
}
