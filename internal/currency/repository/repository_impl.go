package repository

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"github.com/smartsellhq/smartsell/internal/currency/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Create(ctx context.Context, db *gorm.DB, currency *domain.Currency) error {
	return db.WithContext(ctx).Create(currency).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, workspaceID, id snowflake.ID) (*domain.Currency, error) {
	var currency domain.Currency
	err := db.WithContext(ctx).
		Where("workspace_id = ? AND id = ?", workspaceID, id).
		First(&currency).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &currency, nil
}

func (r *repo) FindByCode(ctx context.Context, db *gorm.DB, workspaceID snowflake.ID, code string) (*domain.Currency, error) {
	var currency domain.Currency
	err := db.WithContext(ctx).
		Where("workspace_id = ? AND code = ?", workspaceID, code).
		First(&currency).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &currency, nil
}

func (r *repo) FindAll(ctx context.Context, db *gorm.DB, workspaceID snowflake.ID) ([]domain.Currency, error) {
	var currencies []domain.Currency
	err := db.WithContext(ctx).
		Where("workspace_id = ?", workspaceID).
		Order("code ASC").
		Find(&currencies).Error
	if err != nil {
		return nil, err
	}
	return currencies, nil
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, currency *domain.Currency) error {
	return db.WithContext(ctx).
		Where("workspace_id = ? AND id = ?", currency.WorkspaceID, currency.ID).
		Save(currency).Error
}

func (r *repo) Delete(ctx context.Context, db *gorm.DB, workspaceID, id snowflake.ID) error {
	return db.WithContext(ctx).
		Where("workspace_id = ? AND id = ?", workspaceID, id).
		Delete(&domain.Currency{}).Error
}
