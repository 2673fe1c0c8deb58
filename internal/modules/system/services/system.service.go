package services

import (
	"context"
	"sync"
	"time"

	"pharma-prep-core/internal/app/config"
	"pharma-prep-core/internal/infrastructure/database/mongodb"
	"pharma-prep-core/internal/infrastructure/database/postgres"
	"pharma-prep-core/internal/infrastructure/database/redis"
	"pharma-prep-core/internal/modules/system/dto"
)

const checkTimeout = 2 * time.Second

// Dependency dépendance vérifiée par /ready, Required bloque la disponibilité
type Dependency struct {
	Name     string
	Required bool
	Check    func(ctx context.Context) error
}

type SystemService struct {
	environment  string
	version      string
	startedAt    time.Time
	dependencies []Dependency
}

func NewSystemService(cfg *config.Config, pg *postgres.Client, rd *redis.Client, mongo *mongodb.Client) *SystemService {
	return newSystemService(cfg.Environment, cfg.Version, []Dependency{
		{Name: "postgres", Required: true, Check: pg.HealthCheck},
		{Name: "redis", Required: true, Check: rd.HealthCheck},
		// Le journal est optionnel, MongoDB ne bloque jamais la disponibilité
		{Name: "mongodb", Required: false, Check: mongo.HealthCheck},
	})
}

func newSystemService(environment, version string, deps []Dependency) *SystemService {
	return &SystemService{
		environment:  environment,
		version:      version,
		startedAt:    time.Now(),
		dependencies: deps,
	}
}

// Readiness vérifie les dépendances en parallèle, ready=false si une dépendance requise est en échec
func (s *SystemService) Readiness(ctx context.Context) (dto.ReadinessReport, bool) {
	statuses := s.checkAll(ctx)

	ready := true
	for _, st := range statuses {
		if st.Required && st.Status != dto.StatusUp {
			ready = false
		}
	}

	report := dto.ReadinessReport{Status: "ready", Dependencies: statuses}
	if !ready {
		report.Status = "not_ready"
	}
	return report, ready
}

func (s *SystemService) Info(ctx context.Context) dto.SystemInfo {
	return dto.SystemInfo{
		Environment:  s.environment,
		Version:      s.version,
		StartedAt:    s.startedAt.UTC(),
		Uptime:       time.Since(s.startedAt).Truncate(time.Second).String(),
		Dependencies: s.checkAll(ctx),
	}
}

func (s *SystemService) checkAll(ctx context.Context) []dto.DependencyStatus {
	statuses := make([]dto.DependencyStatus, len(s.dependencies))

	var wg sync.WaitGroup
	for i, dep := range s.dependencies {
		wg.Add(1)
		go func(i int, dep Dependency) {
			defer wg.Done()
			statuses[i] = check(ctx, dep)
		}(i, dep)
	}
	wg.Wait()

	return statuses
}

func check(ctx context.Context, dep Dependency) dto.DependencyStatus {
	checkCtx, cancel := context.WithTimeout(ctx, checkTimeout)
	defer cancel()

	start := time.Now()
	err := dep.Check(checkCtx)

	status := dto.DependencyStatus{
		Name:      dep.Name,
		Status:    dto.StatusUp,
		Required:  dep.Required,
		LatencyMs: time.Since(start).Milliseconds(),
	}
	if err != nil {
		status.Status = dto.StatusDown
		status.Error = err.Error()
	}
	return status
}
