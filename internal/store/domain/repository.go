package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, db *gorm.DB, store *Store) error
	FindByID(ctx context.Context, db *gorm.DB, workspaceID, id snowflake.ID) (*Store, error)
	FindAll(ctx context.Context, db *gorm.DB, workspaceID snowflake.ID) ([]Store, error)
	Update(ctx context.Context, db *gorm.DB, store *Store) error
	Delete(ctx context.Context, db *gorm.DB, workspaceID, id snowflake.ID) error

	// SlugExists checks the whole store table; slug uniqueness is global.
	SlugExists(ctx context.Context, db *gorm.DB, slug string, excludeID snowflake.ID) (bool, error)
	CountByWorkspace(ctx context.Context, db *gorm.DB, workspaceID snowflake.ID) (int64, error)
}
