package model

import (
	"database/sql"
	"time"
)

// User represents a user row in the database.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	SessionToken sql.NullString
	CreatedAt    time.Time
}

// CreateUserRequest represents a user registration request.
type CreateUserRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// LoginRequest represents a user login request.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LogoutRequest carries the email of the session to invalidate.
type LogoutRequest struct {
	Email string `json:"email"`
}

// UserResponse represents user data safe for API responses (no sensitive fields).
type UserResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}

// TokenResponse carries a freshly issued access token.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
}

// ProfileResponse represents the identity decoded from a bearer token.
type ProfileResponse struct {
	UserID string `json:"userId"`
	Email  string `json:"email"`
}

// MessageResponse wraps a human-readable confirmation message.
type MessageResponse struct {
	Message string `json:"message"`
}
