package database

import (
	"fmt"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/verifydream/Sistem-Inventaris-Aset-JKT/internal/database/migration"
)

// RunMigrations applies all pending migrations from migrationsDir at startup.
func RunMigrations(dbURL string, migrationsDir string, logger *zap.Logger) error {
	if dbURL == "" {
		return fmt.Errorf("database URL is not set")
	}

	absPath, err := filepath.Abs(migrationsDir)
	if err != nil {
		return fmt.Errorf("failed to get absolute path: %w", err)
	}

	return migration.Migrate(dbURL, "file://"+absPath, true, logger)
}
