package httpapi

import (
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/todobook/todobook/internal/token"
)

const claimsKey = "todobook.claims"

// WithClaims stores the verified claim set on the request.
func WithClaims(c *gin.Context, claims jwt.MapClaims) {
	c.Set(claimsKey, claims)
}

// ClaimsFrom fetches the claim set placed by the auth guard.
func ClaimsFrom(c *gin.Context) (jwt.MapClaims, bool) {
	v, ok := c.Get(claimsKey)
	if !ok {
		return nil, false
	}
	claims, ok := v.(jwt.MapClaims)
	return claims, ok
}

// ClaimEmail returns the authenticated caller's email, or "" outside
// guarded routes.
func ClaimEmail(c *gin.Context) string {
	claims, ok := ClaimsFrom(c)
	if !ok {
		return ""
	}
	return token.Email(claims)
}
