package auth

import (
	"pharma-prep-core/internal/modules/auth/controllers"
	"pharma-prep-core/internal/modules/auth/repository"
	"pharma-prep-core/internal/modules/auth/services"
	authMiddleware "pharma-prep-core/internal/shared/middleware/auth"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"
)

// Module regroupe tous les providers du domaine Auth
var Module = fx.Options(
	// Repository
	fx.Provide(
		fx.Annotate(
			repository.NewUserRepository,
			fx.As(new(services.UserStore)),
		),
	),

	// Services
	fx.Provide(services.NewTokenService),
	fx.Provide(services.NewLoginLimiter),
	fx.Provide(services.NewAuthService),

	// Le service d'authentification alimente le middleware Protect
	fx.Provide(func(s *services.AuthService) authMiddleware.Authenticator { return s }),

	// Controllers
	fx.Provide(controllers.NewAuthController),

	// Configuration des routes
	fx.Invoke(RegisterAuthRoutes),
)

// RegisterAuthRoutes configure les routes Gin pour l'authentification
func RegisterAuthRoutes(
	r *gin.Engine,
	authController *controllers.AuthController,
	authStack *authMiddleware.AuthMiddlewareStack,
) {
	authAPI := r.Group("/api/v1/auth")
	{
		authAPI.POST("/login", authController.Login)
	}

	// Alias historique du client
	r.POST("/api/v1/users/login", authController.Login)

	protectedAuthAPI := r.Group("/api/v1/auth")
	protectedAuthAPI.Use(authMiddleware.Protected(authStack)...)
	{
		protectedAuthAPI.GET("/me", authController.Me)
		protectedAuthAPI.PUT("/password", authController.ChangePassword)
	}
}
