package repository

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"github.com/smartsellhq/smartsell/internal/pixel/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Create(ctx context.Context, db *gorm.DB, pixel *domain.Pixel) error {
	return db.WithContext(ctx).Create(pixel).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, workspaceID, storeID, id snowflake.ID) (*domain.Pixel, error) {
	var pixel domain.Pixel
	err := db.WithContext(ctx).
		Where("workspace_id = ? AND store_id = ? AND id = ?", workspaceID, storeID, id).
		First(&pixel).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &pixel, nil
}

func (r *repo) FindAll(ctx context.Context, db *gorm.DB, workspaceID, storeID snowflake.ID) ([]domain.Pixel, error) {
	var pixels []domain.Pixel
	err := db.WithContext(ctx).
		Where("workspace_id = ? AND store_id = ?", workspaceID, storeID).
		Order("provider ASC").
		Find(&pixels).Error
	if err != nil {
		return nil, err
	}
	return pixels, nil
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, pixel *domain.Pixel) error {
	return db.WithContext(ctx).
		Where("workspace_id = ? AND store_id = ? AND id = ?", pixel.WorkspaceID, pixel.StoreID, pixel.ID).
		Save(pixel).Error
}

func (r *repo) Delete(ctx context.Context, db *gorm.DB, workspaceID, storeID, id snowflake.ID) error {
	return db.WithContext(ctx).
		Where("workspace_id = ? AND store_id = ? AND id = ?", workspaceID, storeID, id).
		Delete(&domain.Pixel{}).Error
}
