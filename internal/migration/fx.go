package migration

import (
	authdomain "github.com/smartsellhq/smartsell/internal/auth/domain"
	"github.com/smartsellhq/smartsell/internal/config"
	currencydomain "github.com/smartsellhq/smartsell/internal/currency/domain"
	customerdomain "github.com/smartsellhq/smartsell/internal/customer/domain"
	orderdomain "github.com/smartsellhq/smartsell/internal/order/domain"
	pixeldomain "github.com/smartsellhq/smartsell/internal/pixel/domain"
	"github.com/smartsellhq/smartsell/internal/seed"
	storedomain "github.com/smartsellhq/smartsell/internal/store/domain"
	uploaddomain "github.com/smartsellhq/smartsell/internal/upload/domain"
	workspacedomain "github.com/smartsellhq/smartsell/internal/workspace/domain"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

var Module = fx.Module("migrations",
	fx.Invoke(func(conn *gorm.DB, cfg config.Config) error {
		if cfg.DBType == "postgres" {
			sqlDB, err := conn.DB()
			if err != nil {
				return err
			}
			if err := RunMigrations(sqlDB); err != nil {
				return err
			}
		} else {
			// Non-postgres targets are dev/test only; the ORM schema is
			// authoritative there.
			if err := AutoMigrate(conn); err != nil {
				return err
			}
		}

		return seed.EnsurePlans(conn)
	}),
)

func AutoMigrate(conn *gorm.DB) error {
	return conn.AutoMigrate(
		&workspacedomain.Plan{},
		&workspacedomain.Workspace{},
		&workspacedomain.WorkspaceMember{},
		&authdomain.User{},
		&authdomain.Session{},
		&storedomain.Store{},
		&currencydomain.Currency{},
		&customerdomain.Customer{},
		&orderdomain.Order{},
		&pixeldomain.Pixel{},
		&uploaddomain.Upload{},
	)
}
