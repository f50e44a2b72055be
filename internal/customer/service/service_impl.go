package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/smartsellhq/smartsell/internal/customer/domain"
	storedomain "github.com/smartsellhq/smartsell/internal/store/domain"
	"github.com/smartsellhq/smartsell/internal/workspacectx"
	dbpkg "github.com/smartsellhq/smartsell/pkg/db"
	"github.com/smartsellhq/smartsell/pkg/db/pagination"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB        *gorm.DB
	Log       *zap.Logger
	GenID     *snowflake.Node
	Repo      domain.Repository
	StoreRepo storedomain.Repository
}

type Service struct {
	db        *gorm.DB
	log       *zap.Logger
	genID     *snowflake.Node
	repo      domain.Repository
	storeRepo storedomain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:        p.DB,
		log:       p.Log.Named("customer.service"),
		genID:     p.GenID,
		repo:      p.Repo,
		storeRepo: p.StoreRepo,
	}
}

// resolveStore parses raw and confirms the store belongs to the caller's
// workspace before any customer row is touched.
func (s *Service) resolveStore(ctx context.Context, raw string) (snowflake.ID, snowflake.ID, error) {
	workspaceID, ok := workspacectx.WorkspaceIDFromContext(ctx)
	if !ok || workspaceID == 0 {
		return 0, 0, domain.ErrInvalidWorkspace
	}

	storeID, err := snowflake.ParseString(strings.TrimSpace(raw))
	if err != nil {
		return 0, 0, domain.ErrInvalidStore
	}

	store, err := s.storeRepo.FindByID(ctx, s.db, workspaceID, storeID)
	if err != nil {
		return 0, 0, err
	}
	if store == nil {
		return 0, 0, domain.ErrNotFound
	}

	return workspaceID, storeID, nil
}

func (s *Service) Create(ctx context.Context, req domain.CreateRequest) (*domain.Customer, error) {
	workspaceID, storeID, err := s.resolveStore(ctx, req.StoreID)
	if err != nil {
		return nil, err
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, domain.ErrInvalidName
	}
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, domain.ErrInvalidEmail
	}

	existing, err := s.repo.FindByEmail(ctx, s.db, storeID, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrDuplicateEmail, email)
	}

	now := time.Now().UTC()
	customer := &domain.Customer{
		ID:          s.genID.Generate(),
		WorkspaceID: workspaceID,
		StoreID:     storeID,
		Name:        name,
		Email:       email,
		Phone:       strings.TrimSpace(req.Phone),
		Address:     strings.TrimSpace(req.Address),
		City:        strings.TrimSpace(req.City),
		Country:     strings.TrimSpace(req.Country),
		Metadata:    req.Metadata,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Create(ctx, s.db, customer); err != nil {
		if dbpkg.IsDuplicateKeyErr(err) {
			return nil, fmt.Errorf("%w: %s", domain.ErrDuplicateEmail, email)
		}
		return nil, err
	}

	return customer, nil
}

func (s *Service) List(ctx context.Context, req domain.ListRequest) (*domain.ListResponse, error) {
	workspaceID, storeID, err := s.resolveStore(ctx, req.StoreID)
	if err != nil {
		return nil, err
	}

	limit := req.PageSize
	if limit <= 0 || limit > 250 {
		limit = 25
	}

	var cursor *pagination.Cursor
	if req.PageToken != "" {
		cursor, err = pagination.DecodeCursor(req.PageToken)
		if err != nil {
			return nil, domain.ErrInvalidID
		}
	}

	customers, err := s.repo.Find(ctx, s.db, workspaceID, storeID, strings.TrimSpace(req.Search), cursor, limit)
	if err != nil {
		return nil, err
	}

	customers, pageInfo, err := pagination.BuildCursorPageInfo(customers, limit, func(c domain.Customer) pagination.Cursor {
		return pagination.Cursor{
			ID:        c.ID.String(),
			CreatedAt: c.CreatedAt.UTC().Format(time.RFC3339Nano),
		}
	})
	if err != nil {
		return nil, err
	}

	resp := &domain.ListResponse{Customers: customers}
	if pageInfo.HasMore {
		resp.NextPageToken = pageInfo.NextPageToken
	}
	return resp, nil
}

func (s *Service) Get(ctx context.Context, storeID, id string) (*domain.Customer, error) {
	workspaceID, sid, err := s.resolveStore(ctx, storeID)
	if err != nil {
		return nil, err
	}

	customerID, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil {
		return nil, domain.ErrInvalidID
	}

	customer, err := s.repo.FindByID(ctx, s.db, workspaceID, sid, customerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, domain.ErrNotFound
	}
	return customer, nil
}

func (s *Service) Update(ctx context.Context, req domain.UpdateRequest) (*domain.Customer, error) {
	workspaceID, storeID, err := s.resolveStore(ctx, req.StoreID)
	if err != nil {
		return nil, err
	}

	customerID, err := snowflake.ParseString(strings.TrimSpace(req.ID))
	if err != nil {
		return nil, domain.ErrInvalidID
	}

	customer, err := s.repo.FindByID(ctx, s.db, workspaceID, storeID, customerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, domain.ErrNotFound
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, domain.ErrInvalidName
		}
		customer.Name = name
	}
	if req.Phone != nil {
		customer.Phone = strings.TrimSpace(*req.Phone)
	}
	if req.Address != nil {
		customer.Address = strings.TrimSpace(*req.Address)
	}
	if req.City != nil {
		customer.City = strings.TrimSpace(*req.City)
	}
	if req.Country != nil {
		customer.Country = strings.TrimSpace(*req.Country)
	}
	if req.Metadata != nil {
		customer.Metadata = req.Metadata
	}

	customer.UpdatedAt = time.Now().UTC()
	if err := s.repo.Update(ctx, s.db, customer); err != nil {
		return nil, err
	}
	return customer, nil
}

func (s *Service) Delete(ctx context.Context, storeID, id string) error {
	workspaceID, sid, err := s.resolveStore(ctx, storeID)
	if err != nil {
		return err
	}

	customerID, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil {
		return domain.ErrInvalidID
	}

	customer, err := s.repo.FindByID(ctx, s.db, workspaceID, sid, customerID)
	if err != nil {
		return err
	}
	if customer == nil {
		return domain.ErrNotFound
	}

	return s.repo.Delete(ctx, s.db, workspaceID, sid, customerID)
}
