package controllers

import (
	"bytes"
	"encoding/json"
	"errors"

	"pharma-prep-core/internal/modules/preparations/dto"
	"pharma-prep-core/internal/modules/preparations/services"
	apperrors "pharma-prep-core/internal/shared/errors"
	"pharma-prep-core/internal/shared/response"
	"pharma-prep-core/internal/shared/utils"
	"pharma-prep-core/internal/shared/validation"

	"github.com/gin-gonic/gin"
)

type PreparationsController struct {
	service *services.PreparationsService
}

func NewPreparationsController(service *services.PreparationsService) *PreparationsController {
	return &PreparationsController{service: service}
}

// AddPreparations - POST /api/v1/medicine-preparations/:patientId
func (c *PreparationsController) AddPreparations(ctx *gin.Context) {
	patientID, err := utils.ParseIDParam(ctx, "patientId")
	if err != nil {
		response.Error(ctx, err)
		return
	}

	raw, err := ctx.GetRawData()
	if err != nil {
		response.InvalidBody(ctx, err)
		return
	}

	batch, err := decodeBatch(raw)
	if err != nil {
		response.InvalidBody(ctx, err)
		return
	}

	if err := validation.Struct(batch); err != nil {
		response.Error(ctx, err)
		return
	}

	result, err := c.service.AddPreparations(ctx.Request.Context(), patientID, batch.Preparations)
	if err != nil {
		response.Error(ctx, err)
		return
	}

	response.Created(ctx, result)
}

// decodeBatch accepte un tableau JSON ou un objet {"preparations": [...]}
func decodeBatch(raw []byte) (dto.PreparationBatch, error) {
	var batch dto.PreparationBatch
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return batch, errors.New("corps de requête vide")
	}

	switch trimmed[0] {
	case '[':
		err := json.Unmarshal(trimmed, &batch.Preparations)
		return batch, err
	case '{':
		err := json.Unmarshal(trimmed, &batch)
		return batch, err
	default:
		return batch, errors.New("un tableau de préparations est attendu")
	}
}

// ListPreparations - GET /api/v1/medicine-preparations?statut=&patientId=
func (c *PreparationsController) ListPreparations(ctx *gin.Context) {
	var filter dto.ListFilter

	if raw := ctx.Query("statut"); raw != "" {
		statut, err := services.ParseStatut(raw)
		if err != nil {
			response.Error(ctx, err)
			return
		}
		filter.Statut = &statut
	}

	patientID, err := utils.ParseIDQuery(ctx, "patientId")
	if err != nil {
		response.Error(ctx, err)
		return
	}
	filter.PatientID = patientID

	result, err := c.service.ListPreparations(ctx.Request.Context(), filter)
	if err != nil {
		response.Error(ctx, err)
		return
	}

	response.OK(ctx, result)
}

// Count - GET /api/v1/medicine-preparations/Count
func (c *PreparationsController) Count(ctx *gin.Context) {
	result, err := c.service.GetCounts(ctx.Request.Context())
	if err != nil {
		response.Error(ctx, err)
		return
	}

	response.OK(ctx, result)
}

// GetPreparation - GET /api/v1/medicine-preparations/:id
func (c *PreparationsController) GetPreparation(ctx *gin.Context) {
	id, err := utils.ParseIDParam(ctx, "id")
	if err != nil {
		response.Error(ctx, err)
		return
	}

	result, err := c.service.GetPreparation(ctx.Request.Context(), id)
	if err != nil {
		response.Error(ctx, err)
		return
	}

	response.OK(ctx, result)
}

// GetJournal - GET /api/v1/medicine-preparations/:id/journal
func (c *PreparationsController) GetJournal(ctx *gin.Context) {
	id, err := utils.ParseIDParam(ctx, "id")
	if err != nil {
		response.Error(ctx, err)
		return
	}

	if _, err := c.service.GetPreparation(ctx.Request.Context(), id); err != nil {
		response.Error(ctx, err)
		return
	}

	result, err := c.service.GetJournal(ctx.Request.Context(), id)
	if err != nil {
		response.Error(ctx, err)
		return
	}

	response.OK(ctx, result)
}

// UpdateStatut - PATCH /api/v1/medicine-preparations/:id/statut
func (c *PreparationsController) UpdateStatut(ctx *gin.Context) {
	id, err := utils.ParseIDParam(ctx, "id")
	if err != nil {
		response.Error(ctx, err)
		return
	}

	var req dto.StatutUpdateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.InvalidBody(ctx, err)
		return
	}

	if req.Statut == "" {
		response.Error(ctx, apperrors.Validation("STATUT_INVALIDE", "Statut invalide", map[string]interface{}{
			"champs": map[string]string{"statut": "Ce champ est requis"},
		}))
		return
	}

	if err := validation.Struct(req); err != nil {
		response.Error(ctx, err)
		return
	}

	result, err := c.service.UpdateStatut(ctx.Request.Context(), id, req)
	if err != nil {
		response.Error(ctx, err)
		return
	}

	response.OK(ctx, result)
}

// UpdatePreparation - PUT /api/v1/medicine-preparations/:patientId/:preparationId
func (c *PreparationsController) UpdatePreparation(ctx *gin.Context) {
	patientID, err := utils.ParseIDParam(ctx, "patientId")
	if err != nil {
		response.Error(ctx, err)
		return
	}

	preparationID, err := utils.ParseIDParam(ctx, "preparationId")
	if err != nil {
		response.Error(ctx, err)
		return
	}

	var req dto.PreparationInput
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.InvalidBody(ctx, err)
		return
	}

	if err := validation.Struct(req); err != nil {
		response.Error(ctx, err)
		return
	}

	result, err := c.service.UpdatePreparation(ctx.Request.Context(), patientID, preparationID, req)
	if err != nil {
		response.Error(ctx, err)
		return
	}

	response.OK(ctx, result)
}

// DeletePreparation - DELETE /api/v1/medicine-preparations/:id
func (c *PreparationsController) DeletePreparation(ctx *gin.Context) {
	id, err := utils.ParseIDParam(ctx, "id")
	if err != nil {
		response.Error(ctx, err)
		return
	}

	if err := c.service.DeletePreparation(ctx.Request.Context(), id); err != nil {
		response.Error(ctx, err)
		return
	}

	response.OK(ctx, gin.H{"message": "Préparation supprimée avec succès"})
}
