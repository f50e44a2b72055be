package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, db *gorm.DB, currency *Currency) error
	FindByID(ctx context.Context, db *gorm.DB, workspaceID, id snowflake.ID) (*Currency, error)
	FindByCode(ctx context.Context, db *gorm.DB, workspaceID snowflake.ID, code string) (*Currency, error)
	FindAll(ctx context.Context, db *gorm.DB, workspaceID snowflake.ID) ([]Currency, error)
	Update(ctx context.Context, db *gorm.DB, currency *Currency) error
	Delete(ctx context.Context, db *gorm.DB, workspaceID, id snowflake.ID) error
}
