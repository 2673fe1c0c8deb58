package system

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/fx"

	"pharma-prep-core/internal/modules/system/controllers"
	"pharma-prep-core/internal/modules/system/services"
	authMiddleware "pharma-prep-core/internal/shared/middleware/auth"
)

// Module regroupe tous les providers du domaine System
var Module = fx.Options(
	fx.Provide(services.NewSystemService),
	fx.Provide(controllers.NewSystemController),
	fx.Invoke(RegisterSystemRoutes),
)

// RegisterSystemRoutes sondes hors /api/v1, informations système pour les utilisateurs authentifiés
func RegisterSystemRoutes(
	r *gin.Engine,
	ctrl *controllers.SystemController,
	authStack *authMiddleware.AuthMiddlewareStack,
) {
	r.GET("/health", ctrl.Health)
	r.GET("/ready", ctrl.Ready)

	api := r.Group("/api/v1/system")
	api.Use(authMiddleware.Protected(authStack)...)
	{
		api.GET("/info", ctrl.GetSystemInfo)
	}
}
