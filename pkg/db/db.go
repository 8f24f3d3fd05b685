package db

import (
	"context"
	"strings"

	"github.com/StoicRounin/paystack-gateway/internal/config"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var Module = fx.Module("db",
	fx.Provide(Open),
)

// Open connects to the configured database and ties the connection to the
// application lifecycle. Postgres is the deployment target; a file/sqlite DSN
// is accepted for local runs.
func Open(lc fx.Lifecycle, cfg config.Config, log *zap.Logger) (*gorm.DB, error) {
	dialector := dialectorFor(cfg.DatabaseDSN)

	conn, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		return nil, err
	}

	sqlDB, err := conn.DB()
	if err != nil {
		return nil, err
	}

	if lc != nil {
		lc.Append(fx.Hook{
			OnStart: func(ctx context.Context) error {
				return sqlDB.PingContext(ctx)
			},
			OnStop: func(ctx context.Context) error {
				log.Info("closing database connection")
				return sqlDB.Close()
			},
		})
	}

	return conn, nil
}

func dialectorFor(dsn string) gorm.Dialector {
	if DriverName(dsn) == "sqlite3" {
		return sqlite.Open(strings.TrimSpace(dsn))
	}
	return postgres.Open(strings.TrimSpace(dsn))
}

// DriverName reports the database/sql driver a DSN maps to. The migration
// runner needs it to pick the matching dialect.
func DriverName(dsn string) string {
	trimmed := strings.TrimSpace(dsn)
	if strings.HasPrefix(trimmed, "file:") || strings.HasSuffix(trimmed, ".db") {
		return "sqlite3"
	}
	return "postgres"
}
