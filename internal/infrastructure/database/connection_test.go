package database

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus/hooks/test"

	"github.com/eslsoft/studytrack/internal/entity"
	"github.com/eslsoft/studytrack/internal/infrastructure/config"
)

func TestNewConnectionSQLite(t *testing.T) {
	logger, _ := test.NewNullLogger()
	cfg := &config.Config{Storage: config.StorageConfig{
		Driver: "sqlite",
		DSN:    "file:" + filepath.Join(t.TempDir(), "ledger.db"),
	}}

	db, cleanup, err := NewConnection(cfg, logger)
	if err != nil {
		t.Skipf("sqlite unavailable: %v", err)
	}
	defer cleanup()

	if db.DriverName() != "sqlite3" {
		t.Fatalf("expected sqlite3 driver, got %q", db.DriverName())
	}
}

func TestNewConnectionUnsupportedDriver(t *testing.T) {
	logger, _ := test.NewNullLogger()
	cfg := &config.Config{Storage: config.StorageConfig{Driver: "oracle"}}

	_, _, err := NewConnection(cfg, logger)
	if !errors.Is(err, entity.ErrUnsupportedDriver) {
		t.Fatalf("expected ErrUnsupportedDriver, got %v", err)
	}
}
