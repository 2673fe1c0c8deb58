package auth

import (
	"context"
	"strings"

	apperrors "pharma-prep-core/internal/shared/errors"
	"pharma-prep-core/internal/shared/identity"
	"pharma-prep-core/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"
)

// Authenticator valide un token d'accès et retourne l'utilisateur associé
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*identity.User, error)
}

// AuthMiddlewareStack représente une pile de middlewares d'authentification
type AuthMiddlewareStack struct {
	authenticator Authenticator
}

// NewAuthMiddlewareStack crée une nouvelle pile de middlewares
func NewAuthMiddlewareStack(authenticator Authenticator) *AuthMiddlewareStack {
	return &AuthMiddlewareStack{authenticator: authenticator}
}

// Handler valide le token Bearer et injecte l'utilisateur dans le contexte
func (stack *AuthMiddlewareStack) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractBearerToken(c.GetHeader("Authorization"))
		if token == "" {
			respondError(c, apperrors.Unauthorized("TOKEN_REQUIRED", "Token d'authentification requis").
				WithDetail("header_format", "Authorization: Bearer {token}"))
			return
		}

		user, err := stack.authenticator.Authenticate(c.Request.Context(), token)
		if err != nil {
			respondError(c, err)
			return
		}

		identity.Attach(c, user)
		c.Next()
	}
}

// RequireRole restreint l'accès aux rôles donnés, à placer après Handler
func (stack *AuthMiddlewareStack) RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := identity.FromGin(c)
		if !ok {
			respondError(c, apperrors.Unauthorized("TOKEN_REQUIRED", "Token d'authentification requis"))
			return
		}

		if !user.HasRole(roles...) {
			respondError(c, apperrors.Forbidden("INSUFFICIENT_ROLE", "Droits insuffisants pour cette action").
				WithDetail("roles_requis", roles))
			return
		}

		c.Next()
	}
}

// ApplyBasicAuth applique l'authentification seule
func (stack *AuthMiddlewareStack) ApplyBasicAuth() []gin.HandlerFunc {
	return []gin.HandlerFunc{stack.Handler()}
}

// ApplyRoleAuth applique l'authentification puis le contrôle de rôle
func (stack *AuthMiddlewareStack) ApplyRoleAuth(roles ...string) []gin.HandlerFunc {
	return append(stack.ApplyBasicAuth(), stack.RequireRole(roles...))
}

// Module Fx pour l'injection de dépendances
var AuthMiddlewareModule = fx.Options(
	fx.Provide(NewAuthMiddlewareStack),
)

// Helpers pour les routes courantes

// Protected tout utilisateur authentifié
func Protected(stack *AuthMiddlewareStack) []gin.HandlerFunc {
	return stack.ApplyBasicAuth()
}

// RequireAdmin administrateurs uniquement
func RequireAdmin(stack *AuthMiddlewareStack) []gin.HandlerFunc {
	return stack.ApplyRoleAuth(identity.RoleAdmin)
}

// RequirePharmacy administrateurs et pharmaciens
func RequirePharmacy(stack *AuthMiddlewareStack) []gin.HandlerFunc {
	return stack.ApplyRoleAuth(identity.RoleAdmin, identity.RolePharmacist)
}

// RequireStaff tous les rôles applicatifs
func RequireStaff(stack *AuthMiddlewareStack) []gin.HandlerFunc {
	return stack.ApplyRoleAuth(identity.Roles...)
}

func extractBearerToken(authHeader string) string {
	if authHeader == "" {
		return ""
	}

	parts := strings.SplitN(strings.TrimSpace(authHeader), " ", 2)
	if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
		return ""
	}

	return strings.TrimSpace(parts[1])
}

func respondError(c *gin.Context, err error) {
	response.Error(c, err)
	c.Abort()
}

// Handlers concatène des piles de middlewares et un handler final
func Handlers(chains []gin.HandlerFunc, handler gin.HandlerFunc) []gin.HandlerFunc {
	out := make([]gin.HandlerFunc, 0, len(chains)+1)
	out = append(out, chains...)
	return append(out, handler)
}
