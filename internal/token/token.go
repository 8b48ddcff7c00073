// Package token issues and verifies signed session tokens.
package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultTTL is the fixed validity window of a session token.
const DefaultTTL = 24 * time.Hour

// Service signs and verifies HS256 session tokens with a shared secret.
type Service struct {
	key []byte
	ttl time.Duration
	now func() time.Time
}

// New constructs a token service. A non-positive ttl falls back to DefaultTTL.
func New(key []byte, ttl time.Duration) *Service {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Service{key: key, ttl: ttl, now: time.Now}
}

// Issue signs the caller-supplied claims as-is, stamping issue and expiry
// times. The claims are not validated against any authenticated identity;
// the endpoint serving this is open by design.
func (s *Service) Issue(claims map[string]any) (string, error) {
	now := s.now()
	mc := jwt.MapClaims{}
	for k, v := range claims {
		mc[k] = v
	}
	mc["iat"] = jwt.NewNumericDate(now)
	mc["exp"] = jwt.NewNumericDate(now.Add(s.ttl))

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, mc).SignedString(s.key)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify checks signature and expiry and returns the decoded claim set.
func (s *Service) Verify(raw string) (jwt.MapClaims, error) {
	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return s.key, nil
	}, jwt.WithLeeway(30*time.Second))
	if err != nil || !parsed.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}

// Email returns the email claim of a decoded claim set, or "" when absent.
func Email(claims jwt.MapClaims) string {
	e, _ := claims["email"].(string)
	return e
}
