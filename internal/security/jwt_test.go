package security_test

import (
	"testing"
	"time"

	"collecto-backend/config"
	"collecto-backend/internal/security"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testJWTConfig() *config.JWTConfig {
	return &config.JWTConfig{
		AccessSecret:    "access-secret-for-tests",
		RefreshSecret:   "refresh-secret-for-tests",
		AccessTokenTTL:  "15m",
		RefreshTokenTTL: "168h",
		Issuer:          "collecto",
	}
}

func TestJWTService_GenerateAndValidate(t *testing.T) {
	jwtService := security.NewJWTService(testJWTConfig())

	accessToken, err := jwtService.GenerateAccessToken(42, "user@example.com", "user")
	require.NoError(t, err)

	claims, err := jwtService.ValidateAccessToken(accessToken)
	require.NoError(t, err)

	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, "user@example.com", claims.Email)
	assert.Equal(t, "user", claims.Role)
	assert.Equal(t, security.TokenTypeAccess, claims.TokenType)
}

// access токен не принимается там, где ждут refresh, и наоборот:
// типы подписаны разными секретами и несут разный token_type
func TestJWTService_TokenTypeIsolation(t *testing.T) {
	jwtService := security.NewJWTService(testJWTConfig())

	pair, err := jwtService.GenerateTokensPair(7, "user@example.com", "user")
	require.NoError(t, err)

	_, err = jwtService.ValidateAccessToken(pair.RefreshToken)
	assert.ErrorIs(t, err, security.ErrTokenInvalid)

	_, err = jwtService.ValidateRefreshToken(pair.AccessToken)
	assert.ErrorIs(t, err, security.ErrTokenInvalid)
}

func TestJWTService_ExpiredToken(t *testing.T) {
	cfg := testJWTConfig()
	cfg.AccessTokenTTL = "-1m"
	jwtService := security.NewJWTService(cfg)

	expired, err := jwtService.GenerateAccessToken(1, "user@example.com", "user")
	require.NoError(t, err)

	_, err = jwtService.ValidateAccessToken(expired)
	assert.ErrorIs(t, err, security.ErrTokenExpired)
}

func TestJWTService_TamperedToken(t *testing.T) {
	jwtService := security.NewJWTService(testJWTConfig())

	accessToken, err := jwtService.GenerateAccessToken(1, "user@example.com", "user")
	require.NoError(t, err)

	_, err = jwtService.ValidateAccessToken(accessToken + "x")
	assert.ErrorIs(t, err, security.ErrTokenInvalid)
}

// токен, подписанный чужим секретом, отклоняется даже с верной структурой
func TestJWTService_ForeignSecret(t *testing.T) {
	jwtService := security.NewJWTService(testJWTConfig())

	foreignCfg := testJWTConfig()
	foreignCfg.AccessSecret = "another-secret"
	foreignService := security.NewJWTService(foreignCfg)

	foreignToken, err := foreignService.GenerateAccessToken(1, "user@example.com", "user")
	require.NoError(t, err)

	_, err = jwtService.ValidateAccessToken(foreignToken)
	assert.ErrorIs(t, err, security.ErrTokenInvalid)
}

func TestJWTService_EmptySecret(t *testing.T) {
	cfg := testJWTConfig()
	cfg.AccessSecret = ""
	jwtService := security.NewJWTService(cfg)

	_, err := jwtService.GenerateAccessToken(1, "user@example.com", "user")
	assert.Error(t, err)
}

func TestJWTService_ExpiryClaims(t *testing.T) {
	jwtService := security.NewJWTService(testJWTConfig())

	accessToken, err := jwtService.GenerateAccessToken(1, "user@example.com", "user")
	require.NoError(t, err)

	claims, err := jwtService.ValidateAccessToken(accessToken)
	require.NoError(t, err)

	require.NotNil(t, claims.ExpiresAt)
	assert.WithinDuration(t, time.Now().Add(15*time.Minute), claims.ExpiresAt.Time, time.Minute)
}
