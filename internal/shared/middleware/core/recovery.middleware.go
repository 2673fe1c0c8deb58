package core

import (
	"log/slog"
	"net/http"
	"runtime"

	"github.com/gin-gonic/gin"
)

// RecoveryHandler type spécifique pour Fx
type RecoveryHandler gin.HandlerFunc

// RecoveryMiddleware capture les panics et retourne une réponse d'erreur propre
func RecoveryMiddleware(logger *slog.Logger) RecoveryHandler {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				stack := make([]byte, 4096)
				n := runtime.Stack(stack, false)

				logger.ErrorContext(c.Request.Context(), "panic recovered",
					"error", err,
					"stack", string(stack[:n]),
					"path", c.Request.URL.Path,
					"method", c.Request.Method,
					"client_ip", c.ClientIP(),
					"request_id", c.GetString("request_id"),
				)

				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
					"error": "Une erreur interne s'est produite",
					"details": map[string]interface{}{
						"code":       "INTERNAL_ERROR",
						"request_id": c.GetString("request_id"),
					},
				})
			}
		}()
		c.Next()
	}
}
