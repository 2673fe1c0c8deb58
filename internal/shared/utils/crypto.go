package utils

import (
	"errors"
	"fmt"

	apperrors "pharma-prep-core/internal/shared/errors"

	"golang.org/x/crypto/bcrypt"
)

// dummyHash sert à égaliser le temps de réponse quand l'utilisateur n'existe pas
var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("pharma-prep-dummy-password"), bcrypt.MinCost)

// HashPassword hash un mot de passe avec bcrypt.
// Au-delà de 72 octets, bcrypt refuse : erreur de validation PASSWORD_TOO_LONG.
func HashPassword(password string, cost int) (string, error) {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return "", apperrors.Validation("PASSWORD_TOO_LONG", "Le mot de passe dépasse 72 octets", map[string]interface{}{
			"max_bytes": 72,
		})
	}
	if err != nil {
		return "", fmt.Errorf("impossible de hasher le mot de passe: %w", err)
	}
	return string(hashed), nil
}

// VerifyPassword compare un mot de passe à son hash bcrypt
func VerifyPassword(hashedPassword, password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
	return err == nil
}

// BurnPasswordCheck effectue une comparaison factice
func BurnPasswordCheck(password string) {
	_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
}
