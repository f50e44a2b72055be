package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/smartsellhq/smartsell/pkg/db/option"
	"github.com/smartsellhq/smartsell/pkg/db/pagination"
	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, db *gorm.DB, order *Order) error
	FindByID(ctx context.Context, db *gorm.DB, workspaceID, storeID, id snowflake.ID) (*Order, error)
	Find(ctx context.Context, db *gorm.DB, workspaceID, storeID snowflake.ID, status OrderStatus, cursor *pagination.Cursor, limit int, opts ...option.Option) ([]Order, error)
	Update(ctx context.Context, db *gorm.DB, order *Order) error
	CountByStore(ctx context.Context, db *gorm.DB, storeID snowflake.ID) (int64, error)
}
