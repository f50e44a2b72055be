package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/smartsellhq/smartsell/pkg/db/pagination"
	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, db *gorm.DB, customer *Customer) error
	FindByID(ctx context.Context, db *gorm.DB, workspaceID, storeID, id snowflake.ID) (*Customer, error)
	FindByEmail(ctx context.Context, db *gorm.DB, storeID snowflake.ID, email string) (*Customer, error)
	Find(ctx context.Context, db *gorm.DB, workspaceID, storeID snowflake.ID, search string, cursor *pagination.Cursor, limit int) ([]Customer, error)
	Update(ctx context.Context, db *gorm.DB, customer *Customer) error
	Delete(ctx context.Context, db *gorm.DB, workspaceID, storeID, id snowflake.ID) error
}
