package api

import "github.com/example/pastelaria-api/domain/validation"

// ErrorResponse is the body of every error response.
type ErrorResponse struct {
	Message string            `json:"message"`
	Errors  validation.Errors `json:"errors,omitempty"`
}

// MessageResponse is the body of restore responses.
type MessageResponse struct {
	Message string `json:"message"`
}

// UserResponse is the body of GET /api/user.
type UserResponse struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status  string                  `json:"status"`
	Modules map[string]ModuleHealth `json:"modules"`
}

// ModuleHealth is one module's entry in HealthResponse.
type ModuleHealth struct {
	Healthy bool           `json:"healthy"`
	Message string         `json:"message,omitempty"`
	Details map[string]any `json:"details,omitempty"`
}
