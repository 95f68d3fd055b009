package service_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"probimport/internal/config"
	"probimport/internal/service"
)

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{Secret: "test-secret", TokenExpiry: time.Hour, Issuer: "probimport-test"}
}

func TestAuthService_IssueAndValidate(t *testing.T) {
	svc := service.NewAuthService(testJWTConfig())

	tok, err := svc.IssueToken("alice", true)
	require.NoError(t, err)
	assert.NotEmpty(t, tok.AccessToken)
	assert.WithinDuration(t, time.Now().Add(time.Hour), tok.ExpiresAt, time.Minute)

	claims, err := svc.ValidateToken(tok.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "alice", claims.Username)
	assert.True(t, claims.Staff)
	assert.Equal(t, "probimport-test", claims.Issuer)
}

func TestAuthService_ValidateToken_WrongSecret(t *testing.T) {
	tok, err := service.NewAuthService(testJWTConfig()).IssueToken("alice", true)
	require.NoError(t, err)

	other := testJWTConfig()
	other.Secret = "another-secret"
	_, err = service.NewAuthService(other).ValidateToken(tok.AccessToken)

	assert.Error(t, err)
}

func TestAuthService_ValidateToken_Expired(t *testing.T) {
	cfg := testJWTConfig()
	cfg.TokenExpiry = -time.Minute
	tok, err := service.NewAuthService(cfg).IssueToken("alice", true)
	require.NoError(t, err)

	_, err = service.NewAuthService(cfg).ValidateToken(tok.AccessToken)

	assert.Error(t, err)
}

func TestAuthService_ValidateToken_Garbage(t *testing.T) {
	_, err := service.NewAuthService(testJWTConfig()).ValidateToken("not-a-token")
	assert.Error(t, err)
}
