package repository

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"github.com/smartsellhq/smartsell/internal/upload/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Create(ctx context.Context, db *gorm.DB, upload *domain.Upload) error {
	return db.WithContext(ctx).Create(upload).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, workspaceID, storeID, id snowflake.ID) (*domain.Upload, error) {
	var upload domain.Upload
	err := db.WithContext(ctx).
		Where("workspace_id = ? AND store_id = ? AND id = ?", workspaceID, storeID, id).
		First(&upload).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &upload, nil
}

func (r *repo) FindAll(ctx context.Context, db *gorm.DB, workspaceID, storeID snowflake.ID) ([]domain.Upload, error) {
	var uploads []domain.Upload
	err := db.WithContext(ctx).
		Where("workspace_id = ? AND store_id = ?", workspaceID, storeID).
		Order("key DESC").
		Find(&uploads).Error
	if err != nil {
		return nil, err
	}
	return uploads, nil
}

func (r *repo) Delete(ctx context.Context, db *gorm.DB, workspaceID, storeID, id snowflake.ID) error {
	return db.WithContext(ctx).
		Where("workspace_id = ? AND store_id = ? AND id = ?", workspaceID, storeID, id).
		Delete(&domain.Upload{}).Error
}
