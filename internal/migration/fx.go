package migration

import (
	"strings"

	clientdomain "github.com/MathisL971/invoicegen/internal/client/domain"
	"github.com/MathisL971/invoicegen/internal/config"
	invoicedomain "github.com/MathisL971/invoicegen/internal/invoice/domain"
	profiledomain "github.com/MathisL971/invoicegen/internal/profile/domain"
	referencedomain "github.com/MathisL971/invoicegen/internal/reference/domain"
	"github.com/MathisL971/invoicegen/internal/seed"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

var Module = fx.Module("migrations",
	fx.Invoke(func(conn *gorm.DB, cfg config.Config) error {
		if strings.EqualFold(cfg.DBType, "postgres") {
			sqlDB, err := conn.DB()
			if err != nil {
				return err
			}
			if err := RunMigrations(sqlDB); err != nil {
				return err
			}
		} else {
			// mysql and sqlite deployments build the schema from the
			// models instead of the versioned postgres migrations.
			err := conn.AutoMigrate(
				&profiledomain.Profile{},
				&clientdomain.Client{},
				&invoicedomain.Invoice{},
				&invoicedomain.InvoiceItem{},
				&referencedomain.Counter{},
			)
			if err != nil {
				return err
			}
		}

		if cfg.DefaultAccountID != 0 {
			return seed.EnsureDefaultAccount(conn, cfg.DefaultAccountID)
		}
		return nil
	}),
)
