package middleware

import (
	"pharma-prep-core/internal/shared/middleware/auth"
	"pharma-prep-core/internal/shared/middleware/core"
	"pharma-prep-core/internal/shared/middleware/metrics"
	"pharma-prep-core/internal/shared/middleware/security"

	"go.uber.org/fx"
)

// Module regroupe tous les providers des middlewares
var Module = fx.Options(
	fx.Provide(
		core.RequestIDMiddleware,
		core.RecoveryMiddleware,
		security.CORSMiddleware,
		metrics.NewRegistry,
	),
	auth.AuthMiddlewareModule,
)
