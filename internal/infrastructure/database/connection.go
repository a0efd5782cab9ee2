package database

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/jackc/pgx/v5/tracelog"
	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
	"github.com/sirupsen/logrus"

	"github.com/eslsoft/studytrack/internal/entity"
	"github.com/eslsoft/studytrack/internal/infrastructure/config"
)

// NewConnection opens the database backing the usage ledger.
func NewConnection(cfg *config.Config, logger logrus.FieldLogger) (*sqlx.DB, func(), error) {
	driver, err := cfg.DatabaseDriver()
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", entity.ErrUnsupportedDriver, err)
	}

	switch driver {
	case "pgx":
		return newPostgresConnection(cfg, logger)
	case "sqlite3":
		return newSQLiteConnection(cfg)
	default:
		return nil, nil, fmt.Errorf("%w: %q", entity.ErrUnsupportedDriver, driver)
	}
}

func newPostgresConnection(cfg *config.Config, logger logrus.FieldLogger) (*sqlx.DB, func(), error) {
	connCfg, err := pgx.ParseConfig(cfg.Storage.DSN)
	if err != nil {
		return nil, nil, fmt.Errorf("parse postgres dsn: %w", err)
	}
	if cfg.Storage.LogSQL {
		connCfg.Tracer = &tracelog.TraceLog{
			Logger: tracelog.LoggerFunc(func(_ context.Context, lvl tracelog.LogLevel, msg string, data map[string]any) {
				logger.WithField("pgx_level", lvl.String()).WithFields(logrus.Fields(data)).Debug(msg)
			}),
			LogLevel: tracelog.LogLevelTrace,
		}
	}

	db := sqlx.NewDb(stdlib.OpenDB(*connCfg), "pgx")
	db.SetMaxOpenConns(10)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("ping postgres: %w", err)
	}

	return db, func() { _ = db.Close() }, nil
}

func newSQLiteConnection(cfg *config.Config) (*sqlx.DB, func(), error) {
	db, err := sqlx.Open("sqlite3", cfg.Storage.DSN)
	if err != nil {
		return nil, nil, fmt.Errorf("open sqlite db: %w", err)
	}
	// SQLite allows a single writer.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("ping sqlite db: %w", err)
	}

	return db, func() { _ = db.Close() }, nil
}
