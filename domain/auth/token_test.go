package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenManager_RoundTrip(t *testing.T) {
	m := NewTokenManager("test-secret", "pastelaria", time.Hour)

	token, err := m.Generate("42", "ana@example.com")
	require.NoError(t, err)

	claims, err := m.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, "42", claims.UserID)
	assert.Equal(t, "ana@example.com", claims.Email)
	assert.Equal(t, "pastelaria", claims.Issuer)
}

func TestTokenManager_Rejects(t *testing.T) {
	m := NewTokenManager("test-secret", "pastelaria", time.Hour)

	other, err := NewTokenManager("other-secret", "pastelaria", time.Hour).Generate("1", "a@example.com")
	require.NoError(t, err)
	expired, err := NewTokenManager("test-secret", "pastelaria", -time.Minute).Generate("1", "a@example.com")
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
		want  error
	}{
		{name: "garbage", token: "not-a-token", want: ErrInvalidToken},
		{name: "wrong secret", token: other, want: ErrInvalidToken},
		{name: "expired", token: expired, want: ErrExpiredToken},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := m.Validate(tt.token)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestTokenManager_Disabled(t *testing.T) {
	m := NewTokenManager("", "pastelaria", time.Hour)
	assert.False(t, m.Enabled())

	_, err := m.Generate("1", "a@example.com")
	assert.ErrorIs(t, err, ErrDisabled)
	_, err = m.Validate("anything")
	assert.ErrorIs(t, err, ErrDisabled)
}
