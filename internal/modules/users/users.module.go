package users

import (
	"pharma-prep-core/internal/modules/users/controllers"
	"pharma-prep-core/internal/modules/users/repository"
	"pharma-prep-core/internal/modules/users/services"
	authMiddleware "pharma-prep-core/internal/shared/middleware/auth"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"
)

var Module = fx.Options(
	fx.Provide(
		fx.Annotate(
			repository.NewUsersRepository,
			fx.As(new(services.UsersRepository)),
		),
	),
	fx.Provide(services.NewUsersService),
	fx.Provide(controllers.NewUsersController),
	fx.Invoke(RegisterUsersRoutes),
)

// RegisterUsersRoutes toutes les routes comptes sont réservées aux administrateurs
func RegisterUsersRoutes(
	r *gin.Engine,
	ctrl *controllers.UsersController,
	authStack *authMiddleware.AuthMiddlewareStack,
) {
	api := r.Group("/api/v1/users")
	api.Use(authMiddleware.RequireAdmin(authStack)...)
	{
		api.GET("", ctrl.ListUsers)
		api.POST("", ctrl.CreateUser)
		api.GET("/:id", ctrl.GetUser)
		api.PUT("/:id", ctrl.UpdateUser)
		api.DELETE("/:id", ctrl.DeleteUser)
	}
}
