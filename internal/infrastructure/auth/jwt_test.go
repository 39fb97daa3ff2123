package auth

import (
	"context"
	"testing"
	"time"

	"github.com/bulky/backend/internal/infrastructure/config"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testJWTService() *JWTService {
	return NewJWTService(config.JWTConfig{
		Secret:                 "test-secret-at-least-32-characters!!",
		AccessTokenExpiration:  15 * time.Minute,
		RefreshTokenExpiration: 24 * time.Hour,
		Issuer:                 "bulky-test",
		MaxRefreshCount:        3,
	})
}

func TestGenerateAndValidateTokenPair(t *testing.T) {
	service := testJWTService()
	accountID := uuid.New()

	pair, err := service.GenerateTokenPair(GenerateTokenInput{
		AccountID: accountID,
		Email:     "buyer@example.com",
		Role:      "CUSTOMER",
	})
	require.NoError(t, err)
	require.NotEmpty(t, pair.AccessToken)
	require.NotEmpty(t, pair.RefreshToken)
	assert.Equal(t, "Bearer", pair.TokenType)

	claims, err := service.ValidateAccessToken(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, accountID.String(), claims.AccountID)
	assert.Equal(t, "buyer@example.com", claims.Email)
	assert.Equal(t, "CUSTOMER", claims.Role)
	assert.Equal(t, TokenTypeAccess, claims.TokenType)
}

func TestTokenTypeEnforcement(t *testing.T) {
	service := testJWTService()

	pair, err := service.GenerateTokenPair(GenerateTokenInput{AccountID: uuid.New()})
	require.NoError(t, err)

	// A refresh token must not pass access validation, and vice versa
	_, err = service.ValidateAccessToken(pair.RefreshToken)
	assert.ErrorIs(t, err, ErrInvalidTokenType)
	_, err = service.ValidateRefreshToken(pair.AccessToken)
	assert.ErrorIs(t, err, ErrInvalidTokenType)
}

func TestValidateRejectsGarbage(t *testing.T) {
	service := testJWTService()

	_, err := service.ValidateAccessToken("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)

	other := NewJWTService(config.JWTConfig{
		Secret:                 "another-secret-also-32-characters!!!",
		AccessTokenExpiration:  time.Minute,
		RefreshTokenExpiration: time.Hour,
		Issuer:                 "other",
		MaxRefreshCount:        3,
	})
	pair, err := other.GenerateTokenPair(GenerateTokenInput{AccountID: uuid.New()})
	require.NoError(t, err)

	_, err = service.ValidateAccessToken(pair.AccessToken)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestRefreshTokenPair(t *testing.T) {
	service := testJWTService()
	accountID := uuid.New()

	pair, err := service.GenerateTokenPair(GenerateTokenInput{
		AccountID: accountID,
		Email:     "buyer@example.com",
		Role:      "CUSTOMER",
	})
	require.NoError(t, err)

	refreshed, err := service.RefreshTokenPair(pair.RefreshToken, "buyer@example.com", "COMPANY")
	require.NoError(t, err)

	claims, err := service.ValidateAccessToken(refreshed.AccessToken)
	require.NoError(t, err)
	// Role changes are picked up on refresh
	assert.Equal(t, "COMPANY", claims.Role)

	refreshClaims, err := service.ValidateRefreshToken(refreshed.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, 1, refreshClaims.RefreshCount)
}

func TestRefreshCountLimit(t *testing.T) {
	service := testJWTService()

	pair, err := service.GenerateTokenPair(GenerateTokenInput{AccountID: uuid.New()})
	require.NoError(t, err)

	token := pair.RefreshToken
	for i := 0; i < 3; i++ {
		refreshed, err := service.RefreshTokenPair(token, "", "")
		require.NoError(t, err)
		token = refreshed.RefreshToken
	}

	_, err = service.RefreshTokenPair(token, "", "")
	assert.ErrorIs(t, err, ErrMaxRefreshExceeded)
}

func TestInMemoryTokenBlacklist(t *testing.T) {
	ctx := context.Background()
	blacklist := NewInMemoryTokenBlacklist()

	t.Run("revoked jti is reported until expiry", func(t *testing.T) {
		require.NoError(t, blacklist.Revoke(ctx, "jti-1", time.Minute))

		revoked, err := blacklist.IsRevoked(ctx, "jti-1")
		require.NoError(t, err)
		assert.True(t, revoked)

		revoked, err = blacklist.IsRevoked(ctx, "jti-other")
		require.NoError(t, err)
		assert.False(t, revoked)
	})

	t.Run("account revocation rejects earlier tokens", func(t *testing.T) {
		issuedBefore := time.Now()
		require.NoError(t, blacklist.RevokeAccount(ctx, "acct-1", time.Hour))

		revoked, err := blacklist.IsAccountRevoked(ctx, "acct-1", issuedBefore)
		require.NoError(t, err)
		assert.True(t, revoked)

		revoked, err = blacklist.IsAccountRevoked(ctx, "acct-1", time.Now().Add(time.Second))
		require.NoError(t, err)
		assert.False(t, revoked)
	})
}
