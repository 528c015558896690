package api

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/example/pastelaria-api/domain/auth"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockTokens implements TokenValidator for testing.
type mockTokens struct {
	validateFunc func(token string) (*auth.Claims, error)
}

func (m *mockTokens) Validate(token string) (*auth.Claims, error) {
	if m.validateFunc != nil {
		return m.validateFunc(token)
	}
	return nil, errors.New("not implemented")
}

func TestAuthMiddleware(t *testing.T) {
	tests := []struct {
		name           string
		authHeader     string
		tokens         *mockTokens
		expectedStatus int
		expectedBody   string
	}{
		{
			name:           "missing authorization header",
			tokens:         &mockTokens{},
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   `"Authorization header is required."`,
		},
		{
			name:           "invalid authorization format",
			authHeader:     "Basic token123",
			tokens:         &mockTokens{},
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   `Invalid authorization header format`,
		},
		{
			name:       "invalid token",
			authHeader: "Bearer invalid-token",
			tokens: &mockTokens{validateFunc: func(string) (*auth.Claims, error) {
				return nil, auth.ErrInvalidToken
			}},
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   `"Unauthenticated."`,
		},
		{
			name:       "disabled verification",
			authHeader: "Bearer anything",
			tokens: &mockTokens{validateFunc: func(string) (*auth.Claims, error) {
				return nil, auth.ErrDisabled
			}},
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   `"Unauthenticated."`,
		},
		{
			name:       "valid token",
			authHeader: "Bearer valid-token",
			tokens: &mockTokens{validateFunc: func(string) (*auth.Claims, error) {
				return &auth.Claims{UserID: "user-123", Email: "test@example.com"}, nil
			}},
			expectedStatus: http.StatusOK,
			expectedBody:   `"user_id":"user-123"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := fiber.New()
			app.Get("/user", AuthMiddleware(tt.tokens), User)

			req := httptest.NewRequest(http.MethodGet, "/user", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}

			resp, err := app.Test(req, -1)
			require.NoError(t, err)
			defer resp.Body.Close()

			assert.Equal(t, tt.expectedStatus, resp.StatusCode)

			body, err := io.ReadAll(resp.Body)
			require.NoError(t, err)
			assert.Contains(t, string(body), tt.expectedBody)
		})
	}
}
