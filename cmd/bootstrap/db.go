package bootstrap

import (
	"context"
	"log/slog"

	"github.com/hoangson03112/DoKhongTruotPhatNao-BE/internal/infra/db"
	"github.com/hoangson03112/DoKhongTruotPhatNao-BE/internal/pkg/config"
	"github.com/hoangson03112/DoKhongTruotPhatNao-BE/internal/pkg/errs"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

var DBModule = fx.Module("db",
	fx.Provide(NewDB),
)

// NewDB migrates the schema (unless disabled) before handing out a pool, so
// nothing downstream ever sees an old schema.
func NewDB(lc fx.Lifecycle, cfg config.Config, logger *slog.Logger) (*pgxpool.Pool, error) {
	if cfg.DB.RunMigrations {
		if err := db.RunMigrations(cfg.DB.BuildDSN()); err != nil {
			return nil, errs.Wrap(err, "migrate schema")
		}
		logger.Info("schema up to date", slog.String("db", cfg.DB.DBName))
	}

	pool, closePool, err := db.Connect(context.Background(), cfg.DB)
	if err != nil {
		return nil, errs.Wrapf(err, "connect to %s:%s", cfg.DB.Host, cfg.DB.Port)
	}
	logger.Info("database pool ready",
		slog.String("host", cfg.DB.Host),
		slog.Int("max_conns", int(pool.Config().MaxConns)))

	lc.Append(fx.StopHook(func() {
		stat := pool.Stat()
		logger.Info("closing database pool",
			slog.Int("acquired", int(stat.AcquiredConns())),
			slog.Int("idle", int(stat.IdleConns())))
		closePool()
	}))
	return pool, nil
}
