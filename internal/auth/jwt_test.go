package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"socialnet/internal/config"
)

// memoryBlacklist is an in-memory TokenBlacklist for tests.
type memoryBlacklist struct {
	revoked map[string]bool
}

func (m *memoryBlacklist) Add(ctx context.Context, jti string, exp time.Time) error {
	if m.revoked == nil {
		m.revoked = make(map[string]bool)
	}
	m.revoked[jti] = true
	return nil
}

func (m *memoryBlacklist) IsBlacklisted(ctx context.Context, jti string) (bool, error) {
	return m.revoked[jti], nil
}

func testAuthConfig(expiry time.Duration) config.AuthConfig {
	return config.AuthConfig{
		JWTSecretKey: "test-secret",
		JWTExpiry:    expiry,
	}
}

func TestGenerateAndValidateToken(t *testing.T) {
	cfg := testAuthConfig(time.Hour)

	token, err := GenerateToken(42, "alice", cfg)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ValidateToken(context.Background(), token, cfg.JWTSecretKey, nil)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, "alice", claims.Username)
	assert.NotEmpty(t, claims.ID, "token must carry a JTI")
}

func TestValidateTokenRejectsWrongKey(t *testing.T) {
	cfg := testAuthConfig(time.Hour)

	token, err := GenerateToken(1, "alice", cfg)
	require.NoError(t, err)

	_, err = ValidateToken(context.Background(), token, "a-different-secret", nil)
	assert.Error(t, err)
}

func TestValidateTokenRejectsExpired(t *testing.T) {
	cfg := testAuthConfig(-time.Minute)

	token, err := GenerateToken(1, "alice", cfg)
	require.NoError(t, err)

	_, err = ValidateToken(context.Background(), token, cfg.JWTSecretKey, nil)
	assert.Error(t, err)
}

func TestValidateTokenRejectsRevoked(t *testing.T) {
	cfg := testAuthConfig(time.Hour)
	blacklist := &memoryBlacklist{}

	token, err := GenerateToken(1, "alice", cfg)
	require.NoError(t, err)

	claims, err := ValidateToken(context.Background(), token, cfg.JWTSecretKey, blacklist)
	require.NoError(t, err)

	require.NoError(t, blacklist.Add(context.Background(), claims.ID, claims.ExpiresAt.Time))

	_, err = ValidateToken(context.Background(), token, cfg.JWTSecretKey, blacklist)
	assert.Error(t, err, "revoked token must not validate")
}
