package migration

import (
	accountdomain "github.com/smallbiznis/backoffice/internal/account/domain"
	authdomain "github.com/smallbiznis/backoffice/internal/auth/domain"
	companydomain "github.com/smallbiznis/backoffice/internal/company/domain"
	"github.com/smallbiznis/backoffice/internal/config"
	inventorydomain "github.com/smallbiznis/backoffice/internal/inventory/domain"
	ledgerdomain "github.com/smallbiznis/backoffice/internal/ledger/domain"
	manufacturedomain "github.com/smallbiznis/backoffice/internal/manufacture/domain"
	orderdomain "github.com/smallbiznis/backoffice/internal/order/domain"
	productdomain "github.com/smallbiznis/backoffice/internal/product/domain"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

var Module = fx.Module("migrations",
	fx.Invoke(func(conn *gorm.DB, cfg config.Config) error {
		if cfg.DBType != "postgres" {
			// Dev dialects (sqlite, mysql) mirror the test setup.
			return conn.AutoMigrate(
				&authdomain.User{},
				&authdomain.Session{},
				&accountdomain.Account{},
				&productdomain.Product{},
				&orderdomain.Order{},
				&orderdomain.OrderItem{},
				&ledgerdomain.Transaction{},
				&inventorydomain.StockMovement{},
				&manufacturedomain.Batch{},
				&manufacturedomain.RawLine{},
				&manufacturedomain.FinishedLine{},
				&companydomain.Company{},
			)
		}

		sqlDB, err := conn.DB()
		if err != nil {
			return err
		}
		return RunMigrations(sqlDB)
	}),
)
