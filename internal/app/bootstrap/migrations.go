package bootstrap

import (
	"context"
	"fmt"

	"pharma-prep-core/internal/app/config"
	"pharma-prep-core/internal/infrastructure/database/migrations"
)

// Migrator migrations du schéma relationnel
type Migrator interface {
	Up() error
	Version() (migrations.Status, error)
}

// MigrationManager applique les migrations embarquées quand MIGRATIONS_AUTO est actif
type MigrationManager struct {
	migrator Migrator
	enabled  bool
}

func NewMigrationManager(runner *migrations.Runner, cfg *config.Config) *MigrationManager {
	return newMigrationManager(runner, cfg.GetMigrations().Auto)
}

func newMigrationManager(migrator Migrator, enabled bool) *MigrationManager {
	return &MigrationManager{migrator: migrator, enabled: enabled}
}

// EnsureMigrationsApplied refuse un schéma dirty, sinon applique les migrations en attente
func (mm *MigrationManager) EnsureMigrationsApplied(ctx context.Context) (string, error) {
	if !mm.enabled {
		return "migrations automatiques désactivées", nil
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	before, err := mm.migrator.Version()
	if err != nil {
		return "", err
	}
	if before.Dirty {
		return "", fmt.Errorf("schéma dirty en version %d, intervention manuelle requise (migrate version)", before.Version)
	}

	if err := mm.migrator.Up(); err != nil {
		return "", err
	}

	after, err := mm.migrator.Version()
	if err != nil {
		return "", err
	}

	if after.Version == before.Version {
		return fmt.Sprintf("schéma à jour (version %d)", after.Version), nil
	}
	return fmt.Sprintf("migrations appliquées de la version %d à %d", before.Version, after.Version), nil
}
