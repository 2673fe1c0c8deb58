package response

import (
	"log/slog"
	"net/http"

	apperrors "pharma-prep-core/internal/shared/errors"

	"github.com/gin-gonic/gin"
)

// OK réponse standard {success, data}
func OK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    data,
	})
}

// Created réponse 201 {success, data}
func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    data,
	})
}

// Error écrit l'enveloppe d'erreur {error, details{code}} et interrompt la chaîne.
// Les erreurs non typées sont traitées comme internes.
func Error(c *gin.Context, err error) {
	svcErr, ok := apperrors.As(err)
	if !ok {
		svcErr = apperrors.Internal(err, "Une erreur interne s'est produite")
	}

	status := apperrors.HTTPStatus(svcErr)
	if status >= http.StatusInternalServerError {
		slog.ErrorContext(c.Request.Context(), "erreur serveur",
			"code", svcErr.Code,
			"error", svcErr.Error(),
			"path", c.Request.URL.Path,
			"method", c.Request.Method,
			"request_id", c.GetString("request_id"),
		)
		_ = c.Error(svcErr)
	}

	details := gin.H{"code": svcErr.Code}
	for k, v := range svcErr.Details {
		details[k] = v
	}
	if status >= http.StatusInternalServerError {
		if requestID := c.GetString("request_id"); requestID != "" {
			details["request_id"] = requestID
		}
	}

	c.AbortWithStatusJSON(status, gin.H{
		"error":   svcErr.Message,
		"details": details,
	})
}

// InvalidBody réponse pour un corps JSON illisible
func InvalidBody(c *gin.Context, err error) {
	Error(c, apperrors.Validation("INVALID_REQUEST_FORMAT", "Données invalides", map[string]interface{}{
		"message": err.Error(),
	}))
}
