package repository

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"github.com/smartsellhq/smartsell/internal/store/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Create(ctx context.Context, db *gorm.DB, store *domain.Store) error {
	return db.WithContext(ctx).Create(store).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, workspaceID, id snowflake.ID) (*domain.Store, error) {
	var store domain.Store
	err := db.WithContext(ctx).
		First(&store, "workspace_id = ? AND id = ?", workspaceID, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &store, nil
}

func (r *repo) FindAll(ctx context.Context, db *gorm.DB, workspaceID snowflake.ID) ([]domain.Store, error) {
	var items []domain.Store
	err := db.WithContext(ctx).
		Where("workspace_id = ?", workspaceID).
		Order("created_at ASC").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, store *domain.Store) error {
	if store == nil {
		return gorm.ErrInvalidData
	}
	return db.WithContext(ctx).
		Where("workspace_id = ? AND id = ?", store.WorkspaceID, store.ID).
		Save(store).Error
}

func (r *repo) Delete(ctx context.Context, db *gorm.DB, workspaceID, id snowflake.ID) error {
	return db.WithContext(ctx).
		Where("workspace_id = ? AND id = ?", workspaceID, id).
		Delete(&domain.Store{}).Error
}

func (r *repo) SlugExists(ctx context.Context, db *gorm.DB, slug string, excludeID snowflake.ID) (bool, error) {
	stmt := db.WithContext(ctx).
		Model(&domain.Store{}).
		Where("slug = ?", slug)
	if excludeID != 0 {
		stmt = stmt.Where("id <> ?", excludeID)
	}

	var count int64
	if err := stmt.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *repo) CountByWorkspace(ctx context.Context, db *gorm.DB, workspaceID snowflake.ID) (int64, error) {
	var count int64
	err := db.WithContext(ctx).
		Model(&domain.Store{}).
		Where("workspace_id = ?", workspaceID).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}
