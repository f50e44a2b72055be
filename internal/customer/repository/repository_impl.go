package repository

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"github.com/smartsellhq/smartsell/internal/customer/domain"
	"github.com/smartsellhq/smartsell/pkg/db/pagination"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Create(ctx context.Context, db *gorm.DB, customer *domain.Customer) error {
	return db.WithContext(ctx).Create(customer).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, workspaceID, storeID, id snowflake.ID) (*domain.Customer, error) {
	var customer domain.Customer
	err := db.WithContext(ctx).
		Where("workspace_id = ? AND store_id = ? AND id = ?", workspaceID, storeID, id).
		First(&customer).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &customer, nil
}

func (r *repo) FindByEmail(ctx context.Context, db *gorm.DB, storeID snowflake.ID, email string) (*domain.Customer, error) {
	var customer domain.Customer
	err := db.WithContext(ctx).
		Where("store_id = ? AND email = ?", storeID, email).
		First(&customer).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &customer, nil
}

func (r *repo) Find(ctx context.Context, db *gorm.DB, workspaceID, storeID snowflake.ID, search string, cursor *pagination.Cursor, limit int) ([]domain.Customer, error) {
	query := db.WithContext(ctx).
		Where("workspace_id = ? AND store_id = ?", workspaceID, storeID)

	if search != "" {
		like := "%" + search + "%"
		query = query.Where("name LIKE ? OR email LIKE ? OR phone LIKE ?", like, like, like)
	}
	if cursor != nil && cursor.CreatedAt != "" {
		createdAt, id, err := cursor.Keys()
		if err != nil {
			return nil, err
		}
		query = query.Where("(created_at, id) > (?, ?)", createdAt, id)
	}

	var customers []domain.Customer
	err := query.
		Order("created_at ASC, id ASC").
		Limit(limit + 1).
		Find(&customers).Error
	if err != nil {
		return nil, err
	}
	return customers, nil
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, customer *domain.Customer) error {
	return db.WithContext(ctx).
		Where("workspace_id = ? AND store_id = ? AND id = ?", customer.WorkspaceID, customer.StoreID, customer.ID).
		Save(customer).Error
}

func (r *repo) Delete(ctx context.Context, db *gorm.DB, workspaceID, storeID, id snowflake.ID) error {
	return db.WithContext(ctx).
		Where("workspace_id = ? AND store_id = ? AND id = ?", workspaceID, storeID, id).
		Delete(&domain.Customer{}).Error
}
