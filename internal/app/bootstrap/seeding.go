package bootstrap

import (
	"context"

	"pharma-prep-core/internal/app/config"
	"pharma-prep-core/internal/modules/users/services"
)

// AdminSeeder création idempotente de l'administrateur initial
type AdminSeeder interface {
	EnsureInitialAdmin(ctx context.Context, admin config.AdminConfig) (bool, error)
}

// SeedingManager seeding des données initiales
type SeedingManager struct {
	seeder AdminSeeder
	admin  config.AdminConfig
}

func NewSeedingManager(users *services.UsersService, cfg *config.Config) *SeedingManager {
	return newSeedingManager(users, cfg.GetAdmin())
}

func newSeedingManager(seeder AdminSeeder, admin config.AdminConfig) *SeedingManager {
	return &SeedingManager{seeder: seeder, admin: admin}
}

// ApplySeeding ne crée l'administrateur que si la table des comptes est vide
func (sm *SeedingManager) ApplySeeding(ctx context.Context) (string, error) {
	created, err := sm.seeder.EnsureInitialAdmin(ctx, sm.admin)
	if err != nil {
		return "", err
	}
	if created {
		return "administrateur initial créé: " + sm.admin.Email, nil
	}
	return "comptes existants ou identifiants absents, aucun seeding", nil
}
