package migrations

import (
	"embed"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed sql/*.sql
var sqlFiles embed.FS

// Status état courant du schéma
type Status struct {
	Version uint `json:"version"`
	Dirty   bool `json:"dirty"`
}

// Runner applique les migrations SQL embarquées dans le binaire
type Runner struct {
	databaseURL string
	logger      *slog.Logger
}

func NewRunner(databaseURL string, logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{databaseURL: databaseURL, logger: logger}
}

// Up applique toutes les migrations en attente
func (r *Runner) Up() error {
	m, err := r.open()
	if err != nil {
		return err
	}
	defer r.close(m)

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("application des migrations échouée: %w", err)
	}

	return nil
}

// Down annule une migration
func (r *Runner) Down() error {
	m, err := r.open()
	if err != nil {
		return err
	}
	defer r.close(m)

	if err := m.Steps(-1); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("annulation de la migration échouée: %w", err)
	}

	return nil
}

// Version retourne la version appliquée, 0 si aucune
func (r *Runner) Version() (Status, error) {
	m, err := r.open()
	if err != nil {
		return Status{}, err
	}
	defer r.close(m)

	version, dirty, err := m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return Status{}, nil
	}
	if err != nil {
		return Status{}, fmt.Errorf("lecture version échouée: %w", err)
	}

	return Status{Version: version, Dirty: dirty}, nil
}

func (r *Runner) open() (*migrate.Migrate, error) {
	source, err := iofs.New(sqlFiles, "sql")
	if err != nil {
		return nil, fmt.Errorf("lecture migrations embarquées: %w", err)
	}

	m, err := migrate.NewWithSourceInstance("iofs", source, toPgxURL(r.databaseURL))
	if err != nil {
		return nil, fmt.Errorf("initialisation migrate: %w", err)
	}
	m.Log = &migrateLogger{logger: r.logger}

	return m, nil
}

func (r *Runner) close(m *migrate.Migrate) {
	srcErr, dbErr := m.Close()
	if srcErr != nil || dbErr != nil {
		r.logger.Warn("fermeture migrate", "source_error", srcErr, "database_error", dbErr)
	}
}

// toPgxURL adapte le schéma postgres:// attendu par le driver pgx/v5 de golang-migrate
func toPgxURL(databaseURL string) string {
	for _, prefix := range []string{"postgres://", "postgresql://"} {
		if strings.HasPrefix(databaseURL, prefix) {
			return "pgx5://" + strings.TrimPrefix(databaseURL, prefix)
		}
	}
	return databaseURL
}

type migrateLogger struct {
	logger *slog.Logger
}

func (l *migrateLogger) Printf(format string, v ...interface{}) {
	l.logger.Info(strings.TrimSpace(fmt.Sprintf(format, v...)), "component", "migrate")
}

func (l *migrateLogger) Verbose() bool {
	return false
}
