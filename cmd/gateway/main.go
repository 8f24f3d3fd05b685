package main

import (
	"github.com/StoicRounin/paystack-gateway/internal/clock"
	"github.com/StoicRounin/paystack-gateway/internal/config"
	"github.com/StoicRounin/paystack-gateway/internal/migration"
	"github.com/StoicRounin/paystack-gateway/internal/observability"
	"github.com/StoicRounin/paystack-gateway/internal/order"
	"github.com/StoicRounin/paystack-gateway/internal/payment"
	"github.com/StoicRounin/paystack-gateway/internal/seed"
	"github.com/StoicRounin/paystack-gateway/internal/server"
	"github.com/StoicRounin/paystack-gateway/internal/settings"
	"github.com/StoicRounin/paystack-gateway/pkg/db"
	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

var version = "dev"

func main() {
	app := fx.New(
		config.Module,
		observability.Module,
		fx.Provide(func() *snowflake.Node {
			node, err := snowflake.NewNode(1)
			if err != nil {
				panic(err)
			}
			return node
		}),
		clock.Module,
		db.Module,
		fx.Invoke(func(conn *gorm.DB, cfg config.Config) error {
			sqlDB, err := conn.DB()
			if err != nil {
				return err
			}
			if err := migration.RunMigrations(sqlDB, db.DriverName(cfg.DatabaseDSN)); err != nil {
				return err
			}
			return seed.EnsureDefaultSettings(conn)
		}),
		settings.Module,
		order.Module,
		payment.Module,
		server.Module,
	)
	app.Run()
}
