package repository

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"github.com/smartsellhq/smartsell/internal/order/domain"
	"github.com/smartsellhq/smartsell/pkg/db/option"
	"github.com/smartsellhq/smartsell/pkg/db/pagination"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Create(ctx context.Context, db *gorm.DB, order *domain.Order) error {
	return db.WithContext(ctx).Create(order).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, workspaceID, storeID, id snowflake.ID) (*domain.Order, error) {
	var order domain.Order
	err := db.WithContext(ctx).
		Where("workspace_id = ? AND store_id = ? AND id = ?", workspaceID, storeID, id).
		First(&order).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &order, nil
}

func (r *repo) Find(ctx context.Context, db *gorm.DB, workspaceID, storeID snowflake.ID, status domain.OrderStatus, cursor *pagination.Cursor, limit int, opts ...option.Option) ([]domain.Order, error) {
	query := db.WithContext(ctx).
		Where("workspace_id = ? AND store_id = ?", workspaceID, storeID)

	if status != "" {
		query = query.Where("status = ?", status)
	}

	if cursor != nil && cursor.CreatedAt != "" {
		createdAt, id, err := cursor.Keys()
		if err != nil {
			return nil, err
		}
		// Cursor pages are always newest-first regardless of opts.
		query = query.
			Where("(created_at, id) < (?, ?)", createdAt, id).
			Order("created_at DESC, id DESC")
	} else if len(opts) > 0 {
		for _, opt := range opts {
			query = opt.Apply(query)
		}
	} else {
		query = query.Order("created_at DESC, id DESC")
	}

	var orders []domain.Order
	if err := query.Limit(limit + 1).Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, order *domain.Order) error {
	return db.WithContext(ctx).
		Where("workspace_id = ? AND store_id = ? AND id = ?", order.WorkspaceID, order.StoreID, order.ID).
		Save(order).Error
}

func (r *repo) CountByStore(ctx context.Context, db *gorm.DB, storeID snowflake.ID) (int64, error) {
	var count int64
	err := db.WithContext(ctx).
		Model(&domain.Order{}).
		Where("store_id = ?", storeID).
		Count(&count).Error
	return count, err
}
