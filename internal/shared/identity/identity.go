package identity

import (
	"context"

	"github.com/gin-gonic/gin"
)

// Rôles applicatifs
const (
	RoleAdmin       = "admin"
	RolePharmacist  = "pharmacist"
	RolePreparateur = "preparateur"
)

// Roles liste ordonnée des rôles valides
var Roles = []string{RoleAdmin, RolePharmacist, RolePreparateur}

// IsValidRole vérifie qu'un rôle existe
func IsValidRole(role string) bool {
	for _, r := range Roles {
		if r == role {
			return true
		}
	}
	return false
}

// User utilisateur authentifié attaché à la requête
type User struct {
	ID       int64  `json:"id"`
	Email    string `json:"email"`
	Role     string `json:"role"`
	Name     string `json:"name"`
	IsActive bool   `json:"isActive"`
}

// HasRole vérifie l'appartenance à l'un des rôles
func (u *User) HasRole(roles ...string) bool {
	for _, r := range roles {
		if u.Role == r {
			return true
		}
	}
	return false
}

type contextKey struct{}

const ginKey = "current_user"

// WithUser attache l'utilisateur au context.Context
func WithUser(ctx context.Context, user *User) context.Context {
	return context.WithValue(ctx, contextKey{}, user)
}

// FromContext récupère l'utilisateur depuis un context.Context
func FromContext(ctx context.Context) (*User, bool) {
	user, ok := ctx.Value(contextKey{}).(*User)
	return user, ok && user != nil
}

// Attach enrichit le contexte Gin et le contexte de la requête
func Attach(c *gin.Context, user *User) {
	c.Set(ginKey, user)
	c.Set("user_id", user.ID)
	c.Request = c.Request.WithContext(WithUser(c.Request.Context(), user))
}

// FromGin récupère l'utilisateur injecté par le middleware d'authentification
func FromGin(c *gin.Context) (*User, bool) {
	value, exists := c.Get(ginKey)
	if !exists {
		return nil, false
	}
	user, ok := value.(*User)
	return user, ok && user != nil
}
