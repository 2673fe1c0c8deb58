package logger

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
)

type LoggerMiddleware struct {
	logger    *slog.Logger
	skipPaths map[string]struct{}
}

func NewMiddleware(logger *slog.Logger) *LoggerMiddleware {
	return &LoggerMiddleware{
		logger: logger,
		skipPaths: map[string]struct{}{
			"/health":  {},
			"/ready":   {},
			"/metrics": {},
		},
	}
}

// GinLogger journal d'accès HTTP au format slog
func (lm *LoggerMiddleware) GinLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		rawQuery := c.Request.URL.RawQuery

		c.Next()

		if _, skip := lm.skipPaths[path]; skip {
			return
		}

		if rawQuery != "" {
			path = path + "?" + rawQuery
		}

		status := c.Writer.Status()
		attrs := []any{
			"method", c.Request.Method,
			"path", path,
			"status", status,
			"latency", time.Since(start),
			"client_ip", c.ClientIP(),
			"request_id", c.GetString("request_id"),
		}
		if userID, ok := c.Get("user_id"); ok {
			attrs = append(attrs, "user_id", userID)
		}
		if errs := c.Errors.ByType(gin.ErrorTypePrivate).String(); errs != "" {
			attrs = append(attrs, "errors", errs)
		}

		switch {
		case status >= 500:
			lm.logger.Error("requête HTTP", attrs...)
		case status >= 400:
			lm.logger.Warn("requête HTTP", attrs...)
		default:
			lm.logger.Info("requête HTTP", attrs...)
		}
	}
}
