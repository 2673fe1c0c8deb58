package controllers

import (
	"net/http"

	"pharma-prep-core/internal/modules/system/services"
	apperrors "pharma-prep-core/internal/shared/errors"
	"pharma-prep-core/internal/shared/response"

	"github.com/gin-gonic/gin"
)

type SystemController struct {
	service *services.SystemService
}

func NewSystemController(service *services.SystemService) *SystemController {
	return &SystemController{
		service: service,
	}
}

// Health - GET /health
func (c *SystemController) Health(ctx *gin.Context) {
	response.OK(ctx, gin.H{"status": "healthy"})
}

// Ready - GET /ready
// PostgreSQL et Redis sont requis, MongoDB est seulement rapporté
func (c *SystemController) Ready(ctx *gin.Context) {
	report, ready := c.service.Readiness(ctx.Request.Context())
	if !ready {
		response.Error(ctx, apperrors.Unavailable("SERVICE_NOT_READY", "Service indisponible", nil).
			WithDetail("dependencies", report.Dependencies))
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    report,
	})
}

// GetSystemInfo - GET /api/v1/system/info
func (c *SystemController) GetSystemInfo(ctx *gin.Context) {
	response.OK(ctx, c.service.Info(ctx.Request.Context()))
}
