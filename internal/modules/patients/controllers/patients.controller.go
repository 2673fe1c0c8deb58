package controllers

import (
	"pharma-prep-core/internal/modules/patients/dto"
	"pharma-prep-core/internal/modules/patients/services"
	"pharma-prep-core/internal/shared/response"
	"pharma-prep-core/internal/shared/utils"
	"pharma-prep-core/internal/shared/validation"

	"github.com/gin-gonic/gin"
)

type PatientsController struct {
	service *services.PatientsService
}

func NewPatientsController(service *services.PatientsService) *PatientsController {
	return &PatientsController{service: service}
}

// CreatePatient - POST /api/v1/patients
func (c *PatientsController) CreatePatient(ctx *gin.Context) {
	var req dto.CreatePatientRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.InvalidBody(ctx, err)
		return
	}

	if err := validation.Struct(req); err != nil {
		response.Error(ctx, err)
		return
	}

	result, err := c.service.CreatePatient(ctx.Request.Context(), req)
	if err != nil {
		response.Error(ctx, err)
		return
	}

	response.Created(ctx, result)
}

// ListPatients - GET /api/v1/patients
func (c *PatientsController) ListPatients(ctx *gin.Context) {
	result, err := c.service.ListPatients(ctx.Request.Context())
	if err != nil {
		response.Error(ctx, err)
		return
	}

	response.OK(ctx, result)
}

// GetPatient - GET /api/v1/patients/:id
func (c *PatientsController) GetPatient(ctx *gin.Context) {
	id, err := utils.ParseIDParam(ctx, "id")
	if err != nil {
		response.Error(ctx, err)
		return
	}

	result, err := c.service.GetPatient(ctx.Request.Context(), id)
	if err != nil {
		response.Error(ctx, err)
		return
	}

	response.OK(ctx, result)
}

// UpdatePatient - PUT /api/v1/patients/:id
func (c *PatientsController) UpdatePatient(ctx *gin.Context) {
	id, err := utils.ParseIDParam(ctx, "id")
	if err != nil {
		response.Error(ctx, err)
		return
	}

	var req dto.UpdatePatientRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.InvalidBody(ctx, err)
		return
	}

	if err := validation.Struct(req); err != nil {
		response.Error(ctx, err)
		return
	}

	result, err := c.service.UpdatePatient(ctx.Request.Context(), id, req)
	if err != nil {
		response.Error(ctx, err)
		return
	}

	response.OK(ctx, result)
}

// DeletePatient - DELETE /api/v1/patients/:id
func (c *PatientsController) DeletePatient(ctx *gin.Context) {
	id, err := utils.ParseIDParam(ctx, "id")
	if err != nil {
		response.Error(ctx, err)
		return
	}

	if err := c.service.DeletePatient(ctx.Request.Context(), id); err != nil {
		response.Error(ctx, err)
		return
	}

	response.OK(ctx, gin.H{"message": "Patient supprimé avec succès"})
}
