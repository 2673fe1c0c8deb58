package security

import (
	"regexp"
	"time"

	"pharma-prep-core/internal/app/config"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// CORSHandler type spécifique pour Fx
type CORSHandler gin.HandlerFunc

var localOriginPattern = regexp.MustCompile(`^https?://(localhost|127\.0\.0\.1)(:\d+)?$`)

// CORSMiddleware configure les règles CORS
func CORSMiddleware(appConfig *config.Config) CORSHandler {
	corsConfig := appConfig.GetCORS()
	allowLocal := appConfig.IsDevelopment()

	return CORSHandler(cors.New(cors.Config{
		AllowOriginFunc: func(origin string) bool {
			if allowLocal && localOriginPattern.MatchString(origin) {
				return true
			}

			for _, allowedOrigin := range corsConfig.AllowedOrigins {
				if allowedOrigin == "*" || origin == allowedOrigin {
					return true
				}
			}

			return false
		},

		AllowMethods: corsConfig.AllowedMethods,

		AllowHeaders: append(corsConfig.AllowedHeaders, "X-Request-Id"),

		ExposeHeaders: []string{
			"Content-Length",
			"X-Request-Id",
		},

		AllowCredentials: corsConfig.AllowCredentials,

		// Cache de la réponse preflight
		MaxAge: time.Duration(corsConfig.MaxAge) * time.Second,
	}))
}
