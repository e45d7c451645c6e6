//go:build e2e

package e2e

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/hoangson03112/DoKhongTruotPhatNao-BE/cmd/bootstrap"
	"github.com/hoangson03112/DoKhongTruotPhatNao-BE/cmd/bootstrap/components"
	"github.com/hoangson03112/DoKhongTruotPhatNao-BE/internal/infra/db"
	"github.com/hoangson03112/DoKhongTruotPhatNao-BE/internal/pkg/config"
	"github.com/hoangson03112/DoKhongTruotPhatNao-BE/tests/common/dbtest"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"go.uber.org/fx"
)

const (
	pgImage    = "postgres:17-alpine"
	pgUser     = "booking"
	pgPassword = "booking"
)

// server is the Postgres container shared by every suite in the test binary.
var server struct {
	once sync.Once
	ctr  *postgres.PostgresContainer
	dsn  string
	err  error
}

func startPostgres(t *testing.T) string {
	t.Helper()
	server.once.Do(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Minute)
		defer cancel()

		server.ctr, server.err = postgres.Run(ctx, pgImage,
			postgres.WithDatabase("postgres"),
			postgres.WithUsername(pgUser),
			postgres.WithPassword(pgPassword),
			postgres.BasicWaitStrategies(),
		)
		testcontainers.CleanupContainer(t, server.ctr)
		if server.err != nil {
			return
		}
		server.dsn, server.err = server.ctr.ConnectionString(ctx, "sslmode=disable")
	})
	require.NoError(t, server.err, "start postgres container")
	return server.dsn
}

// createDatabase makes a fresh, migrated database for one suite and drops it
// when the suite ends.
func createDatabase(t *testing.T, adminDSN string) config.DBConfig {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	name := "e2e_" + strings.ReplaceAll(uuid.NewString(), "-", "")
	admin, err := pgx.Connect(ctx, adminDSN)
	require.NoError(t, err)
	defer admin.Close(ctx)
	_, err = admin.Exec(ctx, "CREATE DATABASE "+name)
	require.NoError(t, err, "create %s", name)

	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if conn, err := pgx.Connect(ctx, adminDSN); err == nil {
			_, _ = conn.Exec(ctx, "DROP DATABASE IF EXISTS "+name+" WITH (FORCE)")
			_ = conn.Close(ctx)
		}
	})

	host, port := hostPort(t, adminDSN)
	cfg := config.DBConfig{
		Host:     host,
		Port:     port,
		User:     pgUser,
		Password: pgPassword,
		DBName:   name,
		SSLMode:  "disable",
		TimeZone: "Asia/Ho_Chi_Minh",
		MaxConns: 20,
	}
	require.NoError(t, db.RunMigrations(cfg.BuildDSN()), "migrate %s", name)
	return cfg
}

func hostPort(t *testing.T, dsn string) (string, string) {
	t.Helper()
	pc, err := pgx.ParseConfig(dsn)
	require.NoError(t, err)
	return pc.Host, fmt.Sprint(pc.Port)
}

// startApp wires the production modules around a test pool and config and
// starts them, so background workers (reconciler, cache) run as in prod.
func startApp(t *testing.T, pool *pgxpool.Pool, cfg config.Config) *gin.Engine {
	t.Helper()

	var router *gin.Engine
	app := fx.New(
		fx.Supply(pool, cfg),
		fx.Provide(gin.New),
		bootstrap.LoggerModule,
		bootstrap.JWTModule,
		bootstrap.CacheModule,
		components.PersistenceModule,
		components.UseCaseModule,
		components.HandlerModule,
		bootstrap.EventsModule,
		fx.Populate(&router),
		fx.NopLogger,
	)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	require.NoError(t, app.Start(ctx), "start application")

	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := app.Stop(ctx); err != nil {
			t.Logf("stop application: %v", err)
		}
	})
	return router
}

// SharedSuite gives each e2e suite its own database, an in-process Redis and
// a fully wired router. Tables are truncated before every subtest.
type SharedSuite struct {
	suite.Suite
	Router *gin.Engine
	DB     *pgxpool.Pool
	Config config.Config
}

func (s *SharedSuite) SetupSuite() {
	t := s.T()
	gin.SetMode(gin.TestMode)

	dbCfg := createDatabase(t, startPostgres(t))
	pool, closePool, err := db.Connect(context.Background(), dbCfg)
	require.NoError(t, err)
	t.Cleanup(closePool)

	redis := miniredis.RunT(t)

	s.Config = config.NewTestConfig()
	s.Config.DB = dbCfg
	s.Config.Redis.Enabled = true
	s.Config.Redis.Addr = redis.Addr()

	s.DB = pool
	s.Router = startApp(t, pool, s.Config)
}

func (s *SharedSuite) SetupSubTest() {
	require.NoError(s.T(), dbtest.ResetDB(s.DB), "reset database")
}
