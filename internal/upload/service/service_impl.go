package service

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/oklog/ulid/v2"
	"github.com/smartsellhq/smartsell/internal/config"
	storedomain "github.com/smartsellhq/smartsell/internal/store/domain"
	"github.com/smartsellhq/smartsell/internal/upload/domain"
	"github.com/smartsellhq/smartsell/internal/workspacectx"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var allowedContentTypes = map[string]bool{
	"image/jpeg":      true,
	"image/png":       true,
	"image/gif":       true,
	"image/webp":      true,
	"image/svg+xml":   true,
	"application/pdf": true,
}

type Params struct {
	fx.In

	DB        *gorm.DB
	Log       *zap.Logger
	Config    config.Config
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

	dir      string
	maxBytes int64
}

func New(p Params) (domain.Service, error) {
	if err := os.MkdirAll(p.Config.UploadDir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &Service{
		db:        p.DB,
		log:       p.Log.Named("upload.service"),
		genID:     p.GenID,
		repo:      p.Repo,
		storeRepo: p.StoreRepo,
		dir:       p.Config.UploadDir,
		maxBytes:  p.Config.UploadMaxBytes,
	}, nil
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

func (s *Service) Store(ctx context.Context, req domain.StoreRequest) (*domain.Upload, error) {
	workspaceID, storeID, err := s.resolveStore(ctx, req.StoreID)
	if err != nil {
		return nil, err
	}

	name := filepath.Base(strings.TrimSpace(req.Filename))
	if name == "" || name == "." || req.Body == nil {
		return nil, domain.ErrInvalidFile
	}
	contentType := strings.ToLower(strings.TrimSpace(req.ContentType))
	if !allowedContentTypes[contentType] {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnsupportedType, contentType)
	}
	if req.Size > s.maxBytes {
		return nil, fmt.Errorf("%w: limit is %d bytes", domain.ErrTooLarge, s.maxBytes)
	}

	key := ulid.Make().String() + strings.ToLower(filepath.Ext(name))
	path := filepath.Join(s.dir, key)

	out, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return nil, err
	}

	// The declared size is client input; the copy itself is capped too.
	written, err := io.Copy(out, io.LimitReader(req.Body, s.maxBytes+1))
	if cerr := out.Close(); err == nil {
		err = cerr
	}
	if err == nil && written > s.maxBytes {
		err = fmt.Errorf("%w: limit is %d bytes", domain.ErrTooLarge, s.maxBytes)
	}
	if err != nil {
		os.Remove(path)
		return nil, err
	}

	upload := &domain.Upload{
		ID:           s.genID.Generate(),
		WorkspaceID:  workspaceID,
		StoreID:      storeID,
		Key:          key,
		OriginalName: name,
		ContentType:  contentType,
		SizeBytes:    written,
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.repo.Create(ctx, s.db, upload); err != nil {
		os.Remove(path)
		return nil, err
	}

	s.log.Info("file stored",
		zap.String("key", key),
		zap.Int64("size_bytes", written))

	return upload, nil
}

func (s *Service) List(ctx context.Context, storeID string) ([]domain.Upload, error) {
	workspaceID, sid, err := s.resolveStore(ctx, storeID)
	if err != nil {
		return nil, err
	}
	return s.repo.FindAll(ctx, s.db, workspaceID, sid)
}

func (s *Service) Open(ctx context.Context, storeID, id string) (*domain.Upload, io.ReadCloser, error) {
	workspaceID, sid, err := s.resolveStore(ctx, storeID)
	if err != nil {
		return nil, nil, err
	}

	uploadID, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil {
		return nil, nil, domain.ErrInvalidID
	}

	upload, err := s.repo.FindByID(ctx, s.db, workspaceID, sid, uploadID)
	if err != nil {
		return nil, nil, err
	}
	if upload == nil {
		return nil, nil, domain.ErrNotFound
	}

	f, err := os.Open(filepath.Join(s.dir, upload.Key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil, domain.ErrNotFound
		}
		return nil, nil, err
	}
	return upload, f, nil
}

func (s *Service) Delete(ctx context.Context, storeID, id string) error {
	workspaceID, sid, err := s.resolveStore(ctx, storeID)
	if err != nil {
		return err
	}

	uploadID, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil {
		return domain.ErrInvalidID
	}

	upload, err := s.repo.FindByID(ctx, s.db, workspaceID, sid, uploadID)
	if err != nil {
		return err
	}
	if upload == nil {
		return domain.ErrNotFound
	}

	if err := s.repo.Delete(ctx, s.db, workspaceID, sid, uploadID); err != nil {
		return err
	}
	if err := os.Remove(filepath.Join(s.dir, upload.Key)); err != nil && !os.IsNotExist(err) {
		s.log.Warn("orphaned upload file left on disk",
			zap.String("key", upload.Key),
			zap.Error(err))
	}
	return nil
}
