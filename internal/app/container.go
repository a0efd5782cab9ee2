package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/eslsoft/studytrack/internal/adapter/repository"
	"github.com/eslsoft/studytrack/internal/entity"
	"github.com/eslsoft/studytrack/internal/infrastructure/config"
	"github.com/eslsoft/studytrack/internal/usecase"
	"github.com/eslsoft/studytrack/internal/usecase/backup"
)

// Container aggregates the application dependencies produced by Wire.
type Container struct {
	Config     *config.Config
	Logger     *logrus.Logger
	Stores     *repository.Stores
	Ledger     *repository.UsageLedger
	Progress   usecase.ProgressUsecase
	Home       usecase.HomeUsecase
	Catalog    usecase.CatalogUsecase
	Activities usecase.ActivityUsecase
	Backup     *backup.Service

	// snapshotUnreadable keeps SaveSnapshot from replacing a snapshot that
	// failed to load during this run.
	snapshotUnreadable bool `wire:"-"`
}

// LoadSnapshot fills the stores from the configured snapshot file. An
// unreadable snapshot is logged, the stores are emptied and the file is left
// untouched by SaveSnapshot.
func (c *Container) LoadSnapshot(ctx context.Context) error {
	path := c.Config.Storage.SnapshotPath
	if path == "" {
		return nil
	}
	err := c.Backup.LoadFile(ctx, path)
	if err == nil {
		return nil
	}
	if entity.IsStorageError(err) {
		c.Stores.Reset()
		c.snapshotUnreadable = true
		c.Logger.WithError(err).WithField("path", path).Warn("snapshot unreadable, starting with empty catalog")
		return nil
	}
	return err
}

// SaveSnapshot writes the stores back to the configured snapshot file.
func (c *Container) SaveSnapshot(ctx context.Context) error {
	path := c.Config.Storage.SnapshotPath
	if path == "" {
		return nil
	}
	if c.snapshotUnreadable {
		c.Logger.WithField("path", path).Warn("snapshot was unreadable at startup, not overwriting it")
		return nil
	}
	if err := c.Backup.SaveFile(ctx, path, strings.HasSuffix(strings.ToLower(path), ".gz")); err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	return nil
}
