package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, db *gorm.DB, pixel *Pixel) error
	FindByID(ctx context.Context, db *gorm.DB, workspaceID, storeID, id snowflake.ID) (*Pixel, error)
	FindAll(ctx context.Context, db *gorm.DB, workspaceID, storeID snowflake.ID) ([]Pixel, error)
	Update(ctx context.Context, db *gorm.DB, pixel *Pixel) error
	Delete(ctx context.Context, db *gorm.DB, workspaceID, storeID, id snowflake.ID) error
}
