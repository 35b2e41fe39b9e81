package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccessTokenRoundTrip(t *testing.T) {
	issuer := NewIssuer("access-secret", "refresh-secret", 15, 7)

	token, err := issuer.AccessToken(42, "jdoe", "finance_officer")
	require.NoError(t, err)

	claims, err := issuer.ParseAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, "jdoe", claims.Username)
	assert.Equal(t, "finance_officer", claims.Role)
}

func TestAccessTokenRejectsWrongSecret(t *testing.T) {
	token, err := NewIssuer("a", "b", 15, 7).AccessToken(1, "x", "admin")
	require.NoError(t, err)

	_, err = NewIssuer("other", "b", 15, 7).ParseAccessToken(token)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestAccessTokenExpired(t *testing.T) {
	issuer := &Issuer{secret: []byte("s"), refreshSecret: []byte("r"), accessTTL: -time.Minute}

	token, err := issuer.AccessToken(1, "x", "admin")
	require.NoError(t, err)

	_, err = issuer.ParseAccessToken(token)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestRefreshTokenIsNotAnAccessToken(t *testing.T) {
	issuer := NewIssuer("access-secret", "refresh-secret", 15, 7)

	refresh, expiresAt, err := issuer.RefreshToken(9)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(7*24*time.Hour), expiresAt, time.Minute)

	claims, err := issuer.ParseRefreshToken(refresh)
	require.NoError(t, err)
	assert.Equal(t, uint(9), claims.UserID)
	assert.NotEmpty(t, claims.TokenID)

	_, err = issuer.ParseAccessToken(refresh)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestRefreshTokensAreUnique(t *testing.T) {
	issuer := NewIssuer("a", "b", 15, 7)
	first, _, err := issuer.RefreshToken(1)
	require.NoError(t, err)
	second, _, err := issuer.RefreshToken(1)
	require.NoError(t, err)
	assert.NotEqual(t, first, second)
}
