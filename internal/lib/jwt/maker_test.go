package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMaker_GenerateAndParseToken(t *testing.T) {
	maker := NewMaker("test-secret", time.Hour)

	token, err := maker.GenerateToken("uid-123", "testuser", "test@example.com")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := maker.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, "uid-123", claims.Subject)
	assert.Equal(t, "testuser", claims.Username)
	assert.Equal(t, "test@example.com", claims.Email)
}

func TestMaker_ParseToken_Invalid(t *testing.T) {
	maker := NewMaker("test-secret", time.Hour)

	tests := []struct {
		name  string
		token func(t *testing.T) string
	}{
		{
			name: "мусор вместо токена",
			token: func(_ *testing.T) string {
				return "not-a-token"
			},
		},
		{
			name: "токен с другим секретом",
			token: func(t *testing.T) string {
				other := NewMaker("other-secret", time.Hour)
				tok, err := other.GenerateToken("uid-123", "testuser", "test@example.com")
				require.NoError(t, err)
				return tok
			},
		},
		{
			name: "истекший токен",
			token: func(t *testing.T) string {
				expired := NewMaker("test-secret", -time.Minute)
				tok, err := expired.GenerateToken("uid-123", "testuser", "test@example.com")
				require.NoError(t, err)
				return tok
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := maker.ParseToken(tt.token(t))
			assert.Nil(t, claims)
			// Любой дефект токена схлопывается в одну и ту же ошибку.
			assert.ErrorIs(t, err, ErrInvalidToken)
		})
	}
}
