package httpapi

import (
	"net/http"
	"runtime/debug"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gofrs/uuid/v5"
	"go.uber.org/zap"

	"github.com/todobook/todobook/internal/token"
)

// TokenHeader is the bespoke request header carrying the bearer token.
// The public API predates this server and does not use Authorization.
const TokenHeader = "token"

// AuthGuard verifies the bearer token from the token header and attaches
// its claims to the request, or terminates it with 401. The raw token
// value is never logged.
func AuthGuard(tokens *token.Service, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := c.GetHeader(TokenHeader)
		if raw == "" {
			log.Debug("auth guard: no token", zap.String("path", c.Request.URL.Path))
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "forbidden access"})
			return
		}
		claims, err := tokens.Verify(raw)
		if err != nil {
			log.Debug("auth guard: verification failed", zap.String("path", c.Request.URL.Path))
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "forbidden access"})
			return
		}
		WithClaims(c, claims)
		c.Next()
	}
}

// RequestLogger logs one line of metadata per request, tagged with a
// generated request id. No payloads are logged.
func RequestLogger(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		reqID, _ := uuid.NewV4()
		c.Next()

		log.Info("http",
			zap.String("request_id", reqID.String()),
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("dur", time.Since(start)),
			zap.String("peer", c.ClientIP()),
		)
	}
}

// Recover turns handler panics into a terminating 500 response.
func Recover(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				log.Error("panic",
					zap.Any("reason", r),
					zap.ByteString("stack", debug.Stack()),
					zap.String("path", c.Request.URL.Path),
				)
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"message": "internal server error"})
			}
		}()
		c.Next()
	}
}

// CORS applies the permissive cross-origin policy of the public API.
func CORS() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, "+TokenHeader)

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}
