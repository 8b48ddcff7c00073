// Package limiter defines interfaces and implementations for token issuance rate limiting.
package limiter

import (
	"context"
	"crypto/sha256"
	"time"
)

// Limiter throttles token issuance per caller identity.
type Limiter interface {
	// Allow records an issuance attempt and reports whether it may proceed,
	// with an optional retry-after duration when blocked.
	Allow(ctx context.Context, email string, ipHash []byte) (bool, time.Duration, error)
}

// HashIP returns a stable hash for an IP string to avoid storing raw addresses.
func HashIP(ip string) []byte {
	h := sha256.Sum256([]byte(ip))
	return h[:]
}
