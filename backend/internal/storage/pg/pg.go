package pg

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"

	"github.com/playto-dev/playto/shared/config"
	"github.com/playto-dev/playto/shared/logger"
	sharedpg "github.com/playto-dev/playto/shared/storage/pg"
)

//go:embed migrations/init.sql
var schema string

type Querier = sharedpg.Querier

type Storage struct {
	db *sql.DB
}

func New(ctx context.Context, cfg *config.Config) (*Storage, error) {
	return NewWithPool(ctx, cfg, sharedpg.DefaultConnectionConfig())
}

func NewWithPool(ctx context.Context, cfg *config.Config, pool sharedpg.ConnectionConfig) (*Storage, error) {
	log := logger.Component("storage")
	log.Info("connecting to db", "host", cfg.Private.Pg.Host, "dbname", cfg.Private.Pg.Dbname)
	db, err := sharedpg.Connect(ctx, cfg.Private.Pg, pool)
	if err != nil {
		return nil, err
	}
	s := &Storage{db: db}
	if err := s.Migrate(ctx); err != nil {
		db.Close()
		return nil, err
	}
	log.Info("connected to db")
	return s, nil
}

// NewFromDB wraps an existing pool, used with sqlmock in tests.
func NewFromDB(db *sql.DB) *Storage {
	return &Storage{db: db}
}

// Migrate applies the idempotent schema.
func (s *Storage) Migrate(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}
	return nil
}

func (s *Storage) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *Storage) Cleanup() error {
	return s.db.Close()
}

func (s *Storage) withTx(ctx context.Context, fn func(*sql.Tx) error) error {
	return sharedpg.WithTx(ctx, s.db, fn)
}
