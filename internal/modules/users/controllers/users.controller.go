package controllers

import (
	"pharma-prep-core/internal/modules/users/dto"
	"pharma-prep-core/internal/modules/users/services"
	"pharma-prep-core/internal/shared/identity"
	"pharma-prep-core/internal/shared/response"
	"pharma-prep-core/internal/shared/utils"
	"pharma-prep-core/internal/shared/validation"

	"github.com/gin-gonic/gin"
)

type UsersController struct {
	service *services.UsersService
}

func NewUsersController(service *services.UsersService) *UsersController {
	return &UsersController{service: service}
}

// CreateUser - POST /api/v1/users
func (c *UsersController) CreateUser(ctx *gin.Context) {
	var req dto.CreateUserRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.InvalidBody(ctx, err)
		return
	}

	if err := validation.Struct(req); err != nil {
		response.Error(ctx, err)
		return
	}

	result, err := c.service.CreateUser(ctx.Request.Context(), req)
	if err != nil {
		response.Error(ctx, err)
		return
	}

	response.Created(ctx, result)
}

// ListUsers - GET /api/v1/users
func (c *UsersController) ListUsers(ctx *gin.Context) {
	result, err := c.service.ListUsers(ctx.Request.Context())
	if err != nil {
		response.Error(ctx, err)
		return
	}

	response.OK(ctx, result)
}

// GetUser - GET /api/v1/users/:id
func (c *UsersController) GetUser(ctx *gin.Context) {
	id, err := utils.ParseIDParam(ctx, "id")
	if err != nil {
		response.Error(ctx, err)
		return
	}

	result, err := c.service.GetUser(ctx.Request.Context(), id)
	if err != nil {
		response.Error(ctx, err)
		return
	}

	response.OK(ctx, result)
}

// UpdateUser - PUT /api/v1/users/:id
func (c *UsersController) UpdateUser(ctx *gin.Context) {
	id, err := utils.ParseIDParam(ctx, "id")
	if err != nil {
		response.Error(ctx, err)
		return
	}

	var req dto.UpdateUserRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.InvalidBody(ctx, err)
		return
	}

	if err := validation.Struct(req); err != nil {
		response.Error(ctx, err)
		return
	}

	result, err := c.service.UpdateUser(ctx.Request.Context(), id, req)
	if err != nil {
		response.Error(ctx, err)
		return
	}

	response.OK(ctx, result)
}

// DeleteUser - DELETE /api/v1/users/:id
func (c *UsersController) DeleteUser(ctx *gin.Context) {
	id, err := utils.ParseIDParam(ctx, "id")
	if err != nil {
		response.Error(ctx, err)
		return
	}

	actor, _ := identity.FromGin(ctx)
	if err := c.service.DeleteUser(ctx.Request.Context(), id, actor); err != nil {
		response.Error(ctx, err)
		return
	}

	response.OK(ctx, gin.H{"message": "Utilisateur supprimé avec succès"})
}
