package app

import (
	"pharma-prep-core/internal/app/config"
	"pharma-prep-core/internal/infrastructure/logger"
	apperrors "pharma-prep-core/internal/shared/errors"
	"pharma-prep-core/internal/shared/middleware/core"
	"pharma-prep-core/internal/shared/middleware/metrics"
	"pharma-prep-core/internal/shared/middleware/security"
	"pharma-prep-core/internal/shared/response"

	"github.com/gin-gonic/gin"
)

// RouterParams middlewares globaux injectés par fx
type RouterParams struct {
	Config    *config.Config
	RequestID core.RequestIDHandler
	Recovery  core.RecoveryHandler
	CORS      security.CORSHandler
	Logging   *logger.LoggerMiddleware
	Metrics   *metrics.Registry
}

// NewRouter crée le moteur gin. Les routes métier sont enregistrées ensuite par les modules.
func NewRouter(cfg *config.Config, requestID core.RequestIDHandler, recovery core.RecoveryHandler, cors security.CORSHandler, logging *logger.LoggerMiddleware, registry *metrics.Registry) *gin.Engine {
	return buildRouter(RouterParams{
		Config:    cfg,
		RequestID: requestID,
		Recovery:  recovery,
		CORS:      cors,
		Logging:   logging,
		Metrics:   registry,
	})
}

func buildRouter(p RouterParams) *gin.Engine {
	configureGinMode(p.Config.Environment)

	r := gin.New()

	// Ordre: id de requête, journal d'accès, recovery, CORS, métriques
	r.Use(gin.HandlerFunc(p.RequestID))
	r.Use(p.Logging.GinLogger())
	r.Use(gin.HandlerFunc(p.Recovery))
	r.Use(gin.HandlerFunc(p.CORS))

	metricsCfg := p.Config.GetMetrics()
	if metricsCfg.Enabled {
		r.Use(p.Metrics.Middleware())
		r.GET(metricsCfg.Path, gin.WrapH(p.Metrics.Handler()))
	}

	r.NoRoute(func(c *gin.Context) {
		response.Error(c, apperrors.NotFound("ROUTE_NOT_FOUND", "Route non trouvée").
			WithDetail("path", c.Request.URL.Path))
	})

	return r
}

// configureGinMode configure le mode Gin selon l'environnement
func configureGinMode(environment string) {
	switch environment {
	case "docker":
		gin.SetMode(gin.ReleaseMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.DebugMode)
	}
}
