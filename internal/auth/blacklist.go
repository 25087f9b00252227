package auth

import (
	"context"
	"time"
)

// TokenBlacklist stores revoked token IDs until their original expiry.
type TokenBlacklist interface {
	// Add blacklists the given JTI until the token's original expiry time.
	Add(ctx context.Context, jti string, originalTokenExpTime time.Time) error
	// IsBlacklisted reports whether the JTI has been revoked.
	IsBlacklisted(ctx context.Context, jti string) (bool, error)
}
