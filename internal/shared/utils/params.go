package utils

import (
	"strconv"

	apperrors "pharma-prep-core/internal/shared/errors"

	"github.com/gin-gonic/gin"
)

// ParseIDParam lit un identifiant numérique strictement positif dans l'URL
func ParseIDParam(c *gin.Context, name string) (int64, error) {
	raw := c.Param(name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, apperrors.Validation("INVALID_ID", "Identifiant invalide", map[string]interface{}{
			"parametre": name,
			"valeur":    raw,
		})
	}
	return id, nil
}

// ParseIDQuery lit un identifiant optionnel en query string, nil si absent
func ParseIDQuery(c *gin.Context, name string) (*int64, error) {
	raw := c.Query(name)
	if raw == "" {
		return nil, nil
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return nil, apperrors.Validation("INVALID_ID", "Identifiant invalide", map[string]interface{}{
			"parametre": name,
			"valeur":    raw,
		})
	}
	return &id, nil
}
