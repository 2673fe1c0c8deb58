package bootstrap

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.uber.org/fx"
)

// BootstrapSystem orchestre le démarrage : migrations puis administrateur initial
type BootstrapSystem struct {
	migrationManager *MigrationManager
	seedingManager   *SeedingManager
	logger           *slog.Logger
	timeout          time.Duration
}

// BootstrapResult contient le résultat d'exécution du bootstrap
type BootstrapResult struct {
	Success        bool          `json:"success"`
	TotalDuration  time.Duration `json:"total_duration"`
	PhasesExecuted []PhaseResult `json:"phases_executed"`
	ErrorMessage   string        `json:"error_message,omitempty"`
}

// PhaseResult contient le résultat d'une phase du bootstrap
type PhaseResult struct {
	Phase       string        `json:"phase"`
	Success     bool          `json:"success"`
	Duration    time.Duration `json:"duration"`
	Description string        `json:"description"`
	Error       string        `json:"error,omitempty"`
}

type phase struct {
	name        string
	description string
	run         func(ctx context.Context) (string, error)
}

func NewBootstrapSystem(migrationManager *MigrationManager, seedingManager *SeedingManager, logger *slog.Logger) *BootstrapSystem {
	return &BootstrapSystem{
		migrationManager: migrationManager,
		seedingManager:   seedingManager,
		logger:           logger.With("component", "bootstrap"),
		timeout:          5 * time.Minute,
	}
}

// Execute lance les phases dans l'ordre, la première en échec interrompt le démarrage
func (bs *BootstrapSystem) Execute(ctx context.Context) (*BootstrapResult, error) {
	startTime := time.Now()

	ctx, cancel := context.WithTimeout(ctx, bs.timeout)
	defer cancel()

	bs.logger.Info("démarrage bootstrap", "timeout", bs.timeout)

	result := &BootstrapResult{
		Success:        true,
		PhasesExecuted: []PhaseResult{},
	}

	phases := []phase{
		{name: "Phase 1: Migrations", description: "Application des migrations SQL embarquées", run: bs.migrationManager.EnsureMigrationsApplied},
		{name: "Phase 2: Seeding", description: "Création de l'administrateur initial", run: bs.seedingManager.ApplySeeding},
	}

	for i, p := range phases {
		phaseResult := bs.executePhase(ctx, p)
		result.PhasesExecuted = append(result.PhasesExecuted, phaseResult)
		if !phaseResult.Success {
			result.Success = false
			result.ErrorMessage = fmt.Sprintf("Phase %d échouée: %s", i+1, phaseResult.Error)
			result.TotalDuration = time.Since(startTime)
			return result, fmt.Errorf("bootstrap failed at phase %d: %s", i+1, phaseResult.Error)
		}
	}

	result.TotalDuration = time.Since(startTime)
	bs.logger.Info("bootstrap terminé", "duration", result.TotalDuration)
	return result, nil
}

func (bs *BootstrapSystem) executePhase(ctx context.Context, p phase) PhaseResult {
	startTime := time.Now()
	bs.logger.Info("démarrage phase", "phase", p.name)

	outcome, err := p.run(ctx)
	duration := time.Since(startTime)

	if err != nil {
		bs.logger.Error("phase échouée", "phase", p.name, "duration", duration, "error", err)
		return PhaseResult{
			Phase:       p.name,
			Success:     false,
			Duration:    duration,
			Description: p.description,
			Error:       err.Error(),
		}
	}

	bs.logger.Info("phase terminée", "phase", p.name, "duration", duration, "outcome", outcome)
	return PhaseResult{
		Phase:       p.name,
		Success:     true,
		Duration:    duration,
		Description: outcome,
	}
}

// Module providers et hook du bootstrap
var Module = fx.Options(
	fx.Provide(NewMigrationManager),
	fx.Provide(NewSeedingManager),
	fx.Provide(NewBootstrapSystem),
	fx.Invoke(RegisterBootstrapLifecycle),
)

// RegisterBootstrapLifecycle exécute le bootstrap avant le démarrage du serveur HTTP
func RegisterBootstrapLifecycle(lc fx.Lifecycle, bootstrap *BootstrapSystem) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			// Le contexte OnStart fx est borné par StartTimeout, le bootstrap a son propre délai
			if _, err := bootstrap.Execute(context.WithoutCancel(ctx)); err != nil {
				return fmt.Errorf("bootstrap system failed: %w", err)
			}
			return nil
		},
	})
}
