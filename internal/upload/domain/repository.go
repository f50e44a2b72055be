package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, db *gorm.DB, upload *Upload) error
	FindByID(ctx context.Context, db *gorm.DB, workspaceID, storeID, id snowflake.ID) (*Upload, error)
	FindAll(ctx context.Context, db *gorm.DB, workspaceID, storeID snowflake.ID) ([]Upload, error)
	Delete(ctx context.Context, db *gorm.DB, workspaceID, storeID, id snowflake.ID) error
}
