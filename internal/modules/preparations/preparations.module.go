package preparations

import (
	"pharma-prep-core/internal/modules/preparations/controllers"
	"pharma-prep-core/internal/modules/preparations/journal"
	"pharma-prep-core/internal/modules/preparations/repository"
	"pharma-prep-core/internal/modules/preparations/services"
	authMiddleware "pharma-prep-core/internal/shared/middleware/auth"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"
)

var Module = fx.Options(
	// Persistance : PostgreSQL, cache Redis, journal MongoDB
	fx.Provide(
		repository.NewPreparationsRepository,
		func(r *repository.PreparationsRepository) services.PreparationsRepository { return r },
		fx.Annotate(services.NewRedisCountsCache, fx.As(new(services.CountsCache))),
		fx.Annotate(journal.NewMongoJournal, fx.As(new(services.Journal))),
	),

	fx.Provide(services.NewPreparationsService),
	fx.Provide(controllers.NewPreparationsController),
	fx.Invoke(RegisterPreparationsRoutes),
)

// RegisterPreparationsRoutes lecture pour tout utilisateur authentifié,
// changement de statut pour les trois rôles, écriture pour admin et pharmacien
func RegisterPreparationsRoutes(
	r *gin.Engine,
	ctrl *controllers.PreparationsController,
	authStack *authMiddleware.AuthMiddlewareStack,
) {
	api := r.Group("/api/v1/medicine-preparations")
	api.Use(authMiddleware.Protected(authStack)...)
	{
		api.GET("", ctrl.ListPreparations)
		api.GET("/Count", ctrl.Count)
		api.GET("/:id", ctrl.GetPreparation)
		api.GET("/:id/journal", ctrl.GetJournal)
	}

	staffAPI := r.Group("/api/v1/medicine-preparations")
	staffAPI.Use(authMiddleware.RequireStaff(authStack)...)
	{
		staffAPI.PATCH("/:id/statut", ctrl.UpdateStatut)
	}

	writeAPI := r.Group("/api/v1/medicine-preparations")
	writeAPI.Use(authMiddleware.RequirePharmacy(authStack)...)
	{
		writeAPI.POST("/:patientId", ctrl.AddPreparations)
		writeAPI.PUT("/:patientId/:preparationId", ctrl.UpdatePreparation)
		writeAPI.DELETE("/:id", ctrl.DeletePreparation)
	}
}
