package service

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/smartsellhq/smartsell/internal/pixel/domain"
	storedomain "github.com/smartsellhq/smartsell/internal/store/domain"
	"github.com/smartsellhq/smartsell/internal/workspacectx"
	dbpkg "github.com/smartsellhq/smartsell/pkg/db"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Per-provider pixel id shapes, checked before any outbound probe.
var pixelIDFormats = map[domain.Provider]*regexp.Regexp{
	domain.ProviderFacebook: regexp.MustCompile(`^\d{10,16}$`),
	domain.ProviderTiktok:   regexp.MustCompile(`^[A-Z0-9]{10,30}$`),
	domain.ProviderGoogle:   regexp.MustCompile(`^(G|AW|UA)-[A-Z0-9-]{4,20}$`),
	domain.ProviderSnapchat: regexp.MustCompile(`^[a-f0-9-]{16,40}$`),
}

type Params struct {
	fx.In

	DB        *gorm.DB
	Log       *zap.Logger
	GenID     *snowflake.Node
	Repo      domain.Repository
	StoreRepo storedomain.Repository
	Checker   Checker
}

type Service struct {
	db        *gorm.DB
	log       *zap.Logger
	genID     *snowflake.Node
	repo      domain.Repository
	storeRepo storedomain.Repository
	checker   Checker
}

func New(p Params) domain.Service {
	return &Service{
		db:        p.DB,
		log:       p.Log.Named("pixel.service"),
		genID:     p.GenID,
		repo:      p.Repo,
		storeRepo: p.StoreRepo,
		checker:   p.Checker,
	}
}

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

func validatePixelID(provider domain.Provider, raw string) (string, error) {
	pixelID := strings.TrimSpace(raw)
	format, ok := pixelIDFormats[provider]
	if !ok {
		return "", domain.ErrInvalidProvider
	}
	if !format.MatchString(pixelID) {
		return "", fmt.Errorf("%w: %s", domain.ErrInvalidPixelID, pixelID)
	}
	return pixelID, nil
}

func (s *Service) Create(ctx context.Context, req domain.CreateRequest) (*domain.Pixel, error) {
	workspaceID, storeID, err := s.resolveStore(ctx, req.StoreID)
	if err != nil {
		return nil, err
	}

	if !domain.ValidProvider(req.Provider) {
		return nil, domain.ErrInvalidProvider
	}
	pixelID, err := validatePixelID(req.Provider, req.PixelID)
	if err != nil {
		return nil, err
	}

	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}

	now := time.Now().UTC()
	pixel := &domain.Pixel{
		ID:          s.genID.Generate(),
		WorkspaceID: workspaceID,
		StoreID:     storeID,
		Provider:    req.Provider,
		PixelID:     pixelID,
		AccessToken: strings.TrimSpace(req.AccessToken),
		IsActive:    active,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Create(ctx, s.db, pixel); err != nil {
		if dbpkg.IsDuplicateKeyErr(err) {
			return nil, fmt.Errorf("%w: %s", domain.ErrDuplicateProvider, req.Provider)
		}
		return nil, err
	}

	return pixel, nil
}

func (s *Service) List(ctx context.Context, storeID string) ([]domain.Pixel, error) {
	workspaceID, sid, err := s.resolveStore(ctx, storeID)
	if err != nil {
		return nil, err
	}
	return s.repo.FindAll(ctx, s.db, workspaceID, sid)
}

func (s *Service) Update(ctx context.Context, req domain.UpdateRequest) (*domain.Pixel, error) {
	workspaceID, storeID, err := s.resolveStore(ctx, req.StoreID)
	if err != nil {
		return nil, err
	}

	id, err := snowflake.ParseString(strings.TrimSpace(req.ID))
	if err != nil {
		return nil, domain.ErrInvalidID
	}

	pixel, err := s.repo.FindByID(ctx, s.db, workspaceID, storeID, id)
	if err != nil {
		return nil, err
	}
	if pixel == nil {
		return nil, domain.ErrNotFound
	}

	if req.PixelID != nil {
		pixelID, err := validatePixelID(pixel.Provider, *req.PixelID)
		if err != nil {
			return nil, err
		}
		if pixelID != pixel.PixelID {
			pixel.PixelID = pixelID
			// A new id has never been probed.
			pixel.LastCheckedAt = nil
			pixel.LastCheckOK = false
		}
	}
	if req.AccessToken != nil {
		pixel.AccessToken = strings.TrimSpace(*req.AccessToken)
	}
	if req.IsActive != nil {
		pixel.IsActive = *req.IsActive
	}

	pixel.UpdatedAt = time.Now().UTC()
	if err := s.repo.Update(ctx, s.db, pixel); err != nil {
		return nil, err
	}
	return pixel, nil
}

func (s *Service) Delete(ctx context.Context, storeID, id string) error {
	workspaceID, sid, err := s.resolveStore(ctx, storeID)
	if err != nil {
		return err
	}

	pixelID, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil {
		return domain.ErrInvalidID
	}

	pixel, err := s.repo.FindByID(ctx, s.db, workspaceID, sid, pixelID)
	if err != nil {
		return err
	}
	if pixel == nil {
		return domain.ErrNotFound
	}

	return s.repo.Delete(ctx, s.db, workspaceID, sid, pixelID)
}

func (s *Service) Check(ctx context.Context, storeID, id string) (*domain.Pixel, error) {
	workspaceID, sid, err := s.resolveStore(ctx, storeID)
	if err != nil {
		return nil, err
	}

	pixelID, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil {
		return nil, domain.ErrInvalidID
	}

	pixel, err := s.repo.FindByID(ctx, s.db, workspaceID, sid, pixelID)
	if err != nil {
		return nil, err
	}
	if pixel == nil {
		return nil, domain.ErrNotFound
	}

	probeErr := s.checker.Probe(ctx, pixel.Provider, pixel.PixelID)

	now := time.Now().UTC()
	pixel.LastCheckedAt = &now
	pixel.LastCheckOK = probeErr == nil
	pixel.UpdatedAt = now
	if err := s.repo.Update(ctx, s.db, pixel); err != nil {
		return nil, err
	}

	if probeErr != nil {
		s.log.Warn("pixel probe failed",
			zap.String("provider", string(pixel.Provider)),
			zap.String("pixel_id", pixel.PixelID),
			zap.Error(probeErr))
		return pixel, fmt.Errorf("%w: %v", domain.ErrCheckFailed, probeErr)
	}
	return pixel, nil
}
