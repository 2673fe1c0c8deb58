package patients

import (
	"pharma-prep-core/internal/modules/patients/controllers"
	"pharma-prep-core/internal/modules/patients/repository"
	"pharma-prep-core/internal/modules/patients/services"
	prepServices "pharma-prep-core/internal/modules/preparations/services"
	authMiddleware "pharma-prep-core/internal/shared/middleware/auth"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"
)

var Module = fx.Options(
	fx.Provide(
		fx.Annotate(
			repository.NewPatientsRepository,
			fx.As(new(services.PatientsRepository)),
		),
		func(s *prepServices.PreparationsService) services.PreparationNotifier { return s },
	),
	fx.Provide(services.NewPatientsService),
	fx.Provide(controllers.NewPatientsController),
	fx.Invoke(RegisterPatientsRoutes),
)

// RegisterPatientsRoutes lecture pour tout utilisateur authentifié, écriture pour admin et pharmacien
func RegisterPatientsRoutes(
	r *gin.Engine,
	ctrl *controllers.PatientsController,
	authStack *authMiddleware.AuthMiddlewareStack,
) {
	api := r.Group("/api/v1/patients")
	api.Use(authMiddleware.Protected(authStack)...)
	{
		api.GET("", ctrl.ListPatients)
		api.GET("/:id", ctrl.GetPatient)
	}

	writeAPI := r.Group("/api/v1/patients")
	writeAPI.Use(authMiddleware.RequirePharmacy(authStack)...)
	{
		writeAPI.POST("", ctrl.CreatePatient)
		writeAPI.PUT("/:id", ctrl.UpdatePatient)
		writeAPI.DELETE("/:id", ctrl.DeletePatient)
	}
}
