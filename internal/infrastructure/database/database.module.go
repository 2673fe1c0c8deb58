package database

import (
	"go.uber.org/fx"

	"pharma-prep-core/internal/infrastructure/database/mongodb"
	"pharma-prep-core/internal/infrastructure/database/postgres"
	"pharma-prep-core/internal/infrastructure/database/redis"
)

var Module = fx.Options(
	postgres.Module,
	redis.Module,
	mongodb.Module,
)
