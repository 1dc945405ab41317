package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueTokenChecksCaller(t *testing.T) {
	svc := NewChatTokenService(&fakeChatProvider{configured: true}, time.Hour)
	ctx := context.Background()

	_, err := svc.IssueToken(ctx, "", "u1")
	assert.ErrorIs(t, err, ErrUnauthenticated)

	_, err = svc.IssueToken(ctx, "u1", "")
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "The function must be called with a 'userId' argument.", verr.Message)

	_, err = svc.IssueToken(ctx, "u1", "u2")
	assert.ErrorIs(t, err, ErrForbidden)

	token, err := svc.IssueToken(ctx, "u1", "u1")
	require.NoError(t, err)
	assert.Equal(t, "chat-token-u1", token)
}

func TestTokenForCaches(t *testing.T) {
	provider := &fakeChatProvider{configured: true}
	svc := NewChatTokenService(provider, time.Hour)

	for i := 0; i < 3; i++ {
		_, err := svc.TokenFor("u1")
		require.NoError(t, err)
	}
	assert.Equal(t, 1, provider.tokens)

	svc.Forget("u1")
	_, err := svc.TokenFor("u1")
	require.NoError(t, err)
	assert.Equal(t, 2, provider.tokens)
}

func TestTokenForUnconfigured(t *testing.T) {
	provider, err := NewChatProvider("", "", time.Hour)
	require.NoError(t, err)
	assert.False(t, provider.Configured())

	svc := NewChatTokenService(provider, time.Hour)
	_, err = svc.IssueToken(context.Background(), "u1", "u1")
	assert.ErrorIs(t, err, ErrChatNotConfigured)
}

func TestStreamTokenCarriesUserID(t *testing.T) {
	provider, err := NewChatProvider("key", "secret", time.Hour)
	require.NoError(t, err)
	require.True(t, provider.Configured())

	token, err := provider.Token("u1")
	require.NoError(t, err)

	claims := jwt.MapClaims{}
	_, err = jwt.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) { return []byte("secret"), nil })
	require.NoError(t, err)
	assert.Equal(t, "u1", claims["user_id"])
	assert.Contains(t, claims, "exp")
}
