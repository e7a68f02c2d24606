//go:build e2e

package e2e

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"testing"
	"time"

	"reminder-engine/cmd/bootstrap"
	"reminder-engine/cmd/bootstrap/components"
	"reminder-engine/internal/infra/db"
	"reminder-engine/internal/pkg/config"
	"reminder-engine/tests/common/dbtest"

	"github.com/docker/go-connections/nat"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/fx"
)

const (
	pgUser     = "test"
	pgPassword = "testpass"
	pgPort     = nat.Port("5432/tcp")
)

// One postgres container serves every suite of the test process; each suite
// gets its own database inside it.
var (
	pgOnce      sync.Once
	pgContainer testcontainers.Container
	pgErr       error
)

type ContainerInfo struct {
	Host string
	Port nat.Port
}

func (c ContainerInfo) dsn(dbName string) string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", pgUser, pgPassword, c.Host, c.Port.Port(), dbName)
}

// SharedSuite boots the full reminder engine (postgres stores, console
// providers, no audit brokers) and truncates the schema before every subtest.
type SharedSuite struct {
	suite.Suite
	Router *gin.Engine
	DB     *pgxpool.Pool
	Config config.Config
}

func (s *SharedSuite) SetupSuite() {
	t := s.T()
	gin.SetMode(gin.TestMode)

	info := startPostgres(t)
	dbConfig := createDatabase(t, info)
	s.DB = connect(t, dbConfig)
	require.NoError(t, applyMigrations(context.Background(), s.DB), "apply migrations")
	require.NoError(t, dbtest.SeedReferenceData(s.DB), "seed reference data")

	s.Config = testConfig(dbConfig)
	s.Router = startApp(t, s.Config)
}

func (s *SharedSuite) SetupSubTest() {
	require.NoError(s.T(), dbtest.ResetDB(s.DB), "reset database")
}

func startPostgres(t *testing.T) ContainerInfo {
	t.Helper()
	pgOnce.Do(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Minute)
		defer cancel()

		pgContainer, pgErr = testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
			ContainerRequest: testcontainers.ContainerRequest{
				Image:        "postgres:17",
				ExposedPorts: []string{string(pgPort)},
				Env: map[string]string{
					"POSTGRES_USER":     pgUser,
					"POSTGRES_PASSWORD": pgPassword,
					"POSTGRES_DB":       "postgres",
				},
				Tmpfs: map[string]string{"/var/lib/postgresql/data": "rw,size=512m"},
				// durability is irrelevant for throwaway data
				Cmd: []string{
					"postgres",
					"-c", "fsync=off",
					"-c", "full_page_writes=off",
					"-c", "synchronous_commit=off",
					"-c", "max_connections=200",
				},
				WaitingFor: wait.ForSQL(pgPort, "pgx", func(host string, port nat.Port) string {
					return ContainerInfo{Host: host, Port: port}.dsn("postgres")
				}).WithStartupTimeout(time.Minute),
				Labels: map[string]string{"purpose": "reminder-engine-e2e"},
			},
			Started: true,
		})
	})
	require.NoError(t, pgErr, "start postgres container")

	ctx := context.Background()
	host, err := pgContainer.Host(ctx)
	require.NoError(t, err)
	port, err := pgContainer.MappedPort(ctx, pgPort)
	require.NoError(t, err)
	return ContainerInfo{Host: host, Port: port}
}

// createDatabase makes a fresh database for one suite and drops it when the
// suite ends. CREATE DATABASE can collide with a concurrent one on the
// template lock, hence the retries.
func createDatabase(t *testing.T, info ContainerInfo) config.DBConfig {
	t.Helper()
	dbName := "reminders_" + strings.ReplaceAll(uuid.NewString(), "-", "")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	admin, err := pgxpool.New(ctx, info.dsn("postgres"))
	require.NoError(t, err, "connect as admin")
	defer admin.Close()

	for attempt := 1; ; attempt++ {
		_, err = admin.Exec(ctx, "CREATE DATABASE "+dbName)
		if err == nil || attempt == 5 {
			break
		}
		slog.Warn("create database failed, retrying", "database", dbName, "attempt", attempt, "error", err)
		time.Sleep(time.Duration(attempt) * 500 * time.Millisecond)
	}
	require.NoError(t, err, "create database %s", dbName)

	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		admin, err := pgxpool.New(ctx, info.dsn("postgres"))
		if err != nil {
			return
		}
		defer admin.Close()
		// WITH (FORCE) also drops the connections the app pool still holds
		if _, err := admin.Exec(ctx, "DROP DATABASE IF EXISTS "+dbName+" WITH (FORCE)"); err != nil {
			slog.Warn("drop test database failed", "database", dbName, "error", err)
		}
	})

	return config.DBConfig{
		Host:     info.Host,
		Port:     info.Port.Port(),
		User:     pgUser,
		Password: pgPassword,
		DBName:   dbName,
		SSLMode:  "disable",
		TimeZone: "UTC",
		MaxConns: 10,
	}
}

func connect(t *testing.T, dbConfig config.DBConfig) *pgxpool.Pool {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	pool, _, err := db.Connect(ctx, dbConfig)
	require.NoError(t, err, "connect to %s", dbConfig.DBName)
	t.Cleanup(pool.Close)
	return pool
}

// applyMigrations runs every migrations/*.sql file in name order.
func applyMigrations(ctx context.Context, pool *pgxpool.Pool) error {
	dir, err := migrationsDir()
	if err != nil {
		return err
	}
	files, err := filepath.Glob(filepath.Join(dir, "*.sql"))
	if err != nil {
		return err
	}
	slices.Sort(files)
	for _, f := range files {
		sql, err := os.ReadFile(f)
		if err != nil {
			return fmt.Errorf("read %s: %w", f, err)
		}
		if _, err := pool.Exec(ctx, string(sql)); err != nil {
			return fmt.Errorf("apply %s: %w", filepath.Base(f), err)
		}
	}
	return nil
}

// migrationsDir walks up from the package under test to the module root.
func migrationsDir() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return filepath.Join(dir, "migrations"), nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("go.mod not found above the test package")
		}
		dir = parent
	}
}

func testConfig(dbConfig config.DBConfig) config.Config {
	cfg := config.NewTestConfig()
	cfg.Store.Driver = config.StoreDriverPostgres
	cfg.DB = dbConfig
	return cfg
}

// startApp runs the production fx graph with the config provided directly,
// since ConfigModule would read the environment. NewStores opens its own pool.
func startApp(t *testing.T, cfg config.Config) *gin.Engine {
	t.Helper()
	var router *gin.Engine

	app := fx.New(
		fx.Module("testconfig", fx.Provide(
			func() config.Config { return cfg },
			func(c config.Config) config.DispatchConfig { return c.Dispatch },
			func(c config.Config) config.PlannerConfig { return c.Planner },
			func(c config.Config) config.ProviderConfig { return c.Provider },
			func(c config.Config) config.AuditConfig { return c.Audit },
		)),
		fx.Provide(func() *gin.Engine { return gin.New() }),
		bootstrap.LoggerModule,
		bootstrap.JWTModule,
		fx.Module("persistence", fx.Provide(bootstrap.NewStores)),
		components.MetricsModule,
		components.ProviderModule,
		components.AuditModule,
		components.UseCaseModule,
		components.HandlerModule,
		fx.Populate(&router),
		fx.NopLogger,
	)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	require.NoError(t, app.Start(ctx), "start app")
	require.NotNil(t, router, "router not built")

	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := app.Stop(ctx); err != nil {
			slog.Warn("stop app failed", "error", err)
		}
	})
	return router
}
