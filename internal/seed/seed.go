// Package seed bootstraps reference rows a fresh install needs.
package seed

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	workspacedomain "github.com/smartsellhq/smartsell/internal/workspace/domain"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var defaultPlans = []workspacedomain.Plan{
	{
		Code:                "free",
		Name:                "Free",
		MaxStores:           1,
		MaxProductsPerStore: 50,
		Features:            datatypes.JSONMap{"custom_domain": false, "pixels": false},
	},
	{
		Code:                "pro",
		Name:                "Pro",
		MaxStores:           3,
		MaxProductsPerStore: 500,
		Features:            datatypes.JSONMap{"custom_domain": true, "pixels": true},
	},
	{
		Code:                "business",
		Name:                "Business",
		MaxStores:           10,
		MaxProductsPerStore: 5000,
		Features:            datatypes.JSONMap{"custom_domain": true, "pixels": true},
	},
}

// EnsurePlans inserts the built-in subscription plans if they are absent.
// Existing rows are left untouched so operators can tune limits in place.
func EnsurePlans(db *gorm.DB) error {
	if db == nil {
		return errors.New("seed database handle is required")
	}

	node, err := snowflake.NewNode(1)
	if err != nil {
		return err
	}

	ctx := context.Background()
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, plan := range defaultPlans {
			var existing workspacedomain.Plan
			err := tx.Where("code = ?", plan.Code).First(&existing).Error
			if err == nil {
				continue
			}
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}

			plan.ID = node.Generate()
			if err := tx.Create(&plan).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
