package controllers

import (
	"pharma-prep-core/internal/modules/auth/dto"
	"pharma-prep-core/internal/modules/auth/services"
	apperrors "pharma-prep-core/internal/shared/errors"
	"pharma-prep-core/internal/shared/identity"
	"pharma-prep-core/internal/shared/response"
	"pharma-prep-core/internal/shared/validation"

	"github.com/gin-gonic/gin"
)

type AuthController struct {
	authService *services.AuthService
}

// NewAuthController crée une nouvelle instance du contrôleur d'authentification
func NewAuthController(authService *services.AuthService) *AuthController {
	return &AuthController{
		authService: authService,
	}
}

// Login - POST /api/v1/auth/login
func (c *AuthController) Login(ctx *gin.Context) {
	var req dto.LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.InvalidBody(ctx, err)
		return
	}

	if err := validation.Struct(req); err != nil {
		response.Error(ctx, err)
		return
	}

	result, err := c.authService.Login(ctx.Request.Context(), req)
	if err != nil {
		response.Error(ctx, err)
		return
	}

	response.OK(ctx, result)
}

// Me - GET /api/v1/auth/me
func (c *AuthController) Me(ctx *gin.Context) {
	user, ok := identity.FromGin(ctx)
	if !ok {
		response.Error(ctx, apperrors.Unauthorized("TOKEN_REQUIRED", "Token d'authentification requis"))
		return
	}

	result, err := c.authService.Me(ctx.Request.Context(), user.ID)
	if err != nil {
		response.Error(ctx, err)
		return
	}

	response.OK(ctx, result)
}

// ChangePassword - PUT /api/v1/auth/password
func (c *AuthController) ChangePassword(ctx *gin.Context) {
	user, ok := identity.FromGin(ctx)
	if !ok {
		response.Error(ctx, apperrors.Unauthorized("TOKEN_REQUIRED", "Token d'authentification requis"))
		return
	}

	var req dto.ChangePasswordRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.InvalidBody(ctx, err)
		return
	}

	if err := validation.Struct(req); err != nil {
		response.Error(ctx, err)
		return
	}

	if err := c.authService.ChangePassword(ctx.Request.Context(), user.ID, req); err != nil {
		response.Error(ctx, err)
		return
	}

	response.OK(ctx, gin.H{"message": "Mot de passe modifié avec succès"})
}
