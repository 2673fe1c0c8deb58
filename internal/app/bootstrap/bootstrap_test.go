package bootstrap

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"pharma-prep-core/internal/app/config"
	"pharma-prep-core/internal/infrastructure/database/migrations"
)

type fakeMigrator struct {
	version uint
	dirty   bool
	pending uint
	upErr   error
	upCalls int
}

func (f *fakeMigrator) Up() error {
	f.upCalls++
	if f.upErr != nil {
		return f.upErr
	}
	f.version += f.pending
	f.pending = 0
	return nil
}

func (f *fakeMigrator) Version() (migrations.Status, error) {
	return migrations.Status{Version: f.version, Dirty: f.dirty}, nil
}

type fakeSeeder struct {
	created bool
	err     error
	calls   int
}

func (f *fakeSeeder) EnsureInitialAdmin(context.Context, config.AdminConfig) (bool, error) {
	f.calls++
	return f.created, f.err
}

func newSystem(m *fakeMigrator, enabled bool, s *fakeSeeder) *BootstrapSystem {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewBootstrapSystem(
		newMigrationManager(m, enabled),
		newSeedingManager(s, config.AdminConfig{Email: "admin@hopital.fr"}),
		logger,
	)
}

func TestExecuteRunsPhasesInOrder(t *testing.T) {
	m := &fakeMigrator{pending: 1}
	s := &fakeSeeder{created: true}

	result, err := newSystem(m, true, s).Execute(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.Success || len(result.PhasesExecuted) != 2 {
		t.Fatalf("unexpected result %+v", result)
	}
	if m.version != 1 || s.calls != 1 {
		t.Fatalf("expected migration then seeding, got version=%d seeds=%d", m.version, s.calls)
	}
	if !strings.Contains(result.PhasesExecuted[1].Description, "admin@hopital.fr") {
		t.Fatalf("unexpected seeding outcome %q", result.PhasesExecuted[1].Description)
	}
}

func TestExecuteStopsOnMigrationFailure(t *testing.T) {
	m := &fakeMigrator{upErr: errors.New("syntax error")}
	s := &fakeSeeder{}

	result, err := newSystem(m, true, s).Execute(context.Background())
	if err == nil || result.Success {
		t.Fatal("expected bootstrap failure")
	}
	if s.calls != 0 {
		t.Fatal("seeding must not run after a failed migration")
	}
}

func TestDirtySchemaIsRejected(t *testing.T) {
	m := &fakeMigrator{version: 1, dirty: true}

	_, err := newSystem(m, true, &fakeSeeder{}).Execute(context.Background())
	if err == nil || m.upCalls != 0 {
		t.Fatalf("expected dirty schema to stop the bootstrap, err=%v up=%d", err, m.upCalls)
	}
}

func TestDisabledMigrationsSkipRunner(t *testing.T) {
	m := &fakeMigrator{pending: 1}

	if _, err := newSystem(m, false, &fakeSeeder{}).Execute(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.upCalls != 0 {
		t.Fatal("runner must not be called when migrations are disabled")
	}
}
