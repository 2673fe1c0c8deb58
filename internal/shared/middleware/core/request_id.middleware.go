package core

import (
	"regexp"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const RequestIDHeader = "X-Request-Id"

var requestIDPattern = regexp.MustCompile(`^[a-zA-Z0-9\-_.]{8,64}$`)

// RequestIDHandler type spécifique pour Fx
type RequestIDHandler gin.HandlerFunc

// RequestIDMiddleware réutilise l'identifiant fourni par le client s'il est valide, sinon en génère un
func RequestIDMiddleware() RequestIDHandler {
	return func(c *gin.Context) {
		requestID := c.GetHeader(RequestIDHeader)
		if !requestIDPattern.MatchString(requestID) {
			requestID = uuid.NewString()
		}

		c.Set("request_id", requestID)
		c.Header(RequestIDHeader, requestID)
		c.Next()
	}
}
