package app

import (
	"log/slog"

	"pharma-prep-core/internal/app/bootstrap"
	"pharma-prep-core/internal/app/config"
	"pharma-prep-core/internal/infrastructure/database"
	"pharma-prep-core/internal/infrastructure/database/migrations"
	"pharma-prep-core/internal/infrastructure/database/redis"
	"pharma-prep-core/internal/infrastructure/logger"
	"pharma-prep-core/internal/modules/auth"
	"pharma-prep-core/internal/modules/patients"
	"pharma-prep-core/internal/modules/preparations"
	"pharma-prep-core/internal/modules/system"
	"pharma-prep-core/internal/modules/users"
	"pharma-prep-core/internal/shared/middleware"

	"go.uber.org/fx"
)

// NewLogger construit le logger slog depuis la configuration
func NewLogger(cfg *config.Config) *slog.Logger {
	logging := cfg.GetLogging()
	return logger.New(logger.Options{
		Environment: cfg.Environment,
		Version:     cfg.Version,
		Level:       logging.Level,
		Format:      logging.Format,
		File:        logging.File,
		MaxSizeMB:   logging.MaxSizeMB,
		MaxBackups:  logging.MaxBackups,
		MaxAgeDays:  logging.MaxAgeDays,
	})
}

// NewRedisKeyGenerator crée le générateur de clés Redis avec les TTL configurés
func NewRedisKeyGenerator(cfg *config.Config) (*redis.RedisKeyGenerator, error) {
	generator := redis.NewRedisKeyGenerator(cfg.Environment)

	if err := generator.SetTTL(redis.PatternLoginAttempts, cfg.GetAuth().LoginLockout); err != nil {
		return nil, err
	}
	if err := generator.SetTTL(redis.PatternPreparationCounts, cfg.GetCache().CountsTTL); err != nil {
		return nil, err
	}
	return generator, nil
}

// NewMigrationRunner migrations SQL embarquées sur la base principale
func NewMigrationRunner(cfg *config.Config, logger *slog.Logger) *migrations.Runner {
	return migrations.NewRunner(cfg.GetDatabase().URL, logger)
}

// InfrastructureModule configuration, logger et convertisseurs de configuration
var InfrastructureModule = fx.Options(
	fx.Provide(config.NewConfig),
	fx.Provide(NewLogger),
	fx.Provide(config.NewPostgresConfig),
	fx.Provide(config.NewRedisConfig),
	fx.Provide(config.NewMongoConfig),
	fx.Provide(NewRedisKeyGenerator),
	fx.Provide(NewMigrationRunner),
)

var AppModule = fx.Options(
	InfrastructureModule,

	// Infrastructure
	database.Module,
	logger.Module,

	// Middlewares partagés (avant le router)
	middleware.Module,
	fx.Provide(NewRouter),

	// Modules métier
	auth.Module,
	users.Module,
	preparations.Module,
	patients.Module,
	system.Module,

	// Migrations et administrateur initial avant le serveur HTTP
	bootstrap.Module,

	fx.Provide(NewApplication),
	fx.Invoke((*Application).Start),
)
