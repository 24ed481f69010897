package model

import "github.com/cryptlocker/cryptlocker-ui-api/internal/domain/auth"

// LoginResponse is the backend's answer to a successful login.
type LoginResponse struct {
	AccessToken string       `json:"access_token"`
	TokenType   string       `json:"token_type"`
	User        auth.RawUser `json:"user"`
}

// RegisterRequest creates a backend account.
type RegisterRequest struct {
	Username string `json:"username"            validate:"required,max=64"`
	Email    string `json:"email"               validate:"required,email"`
	Password string `json:"password"            validate:"required"`
	FullName string `json:"full_name,omitempty" validate:"omitempty,max=255"`
	Role     string `json:"role,omitempty"      validate:"omitempty,max=32"`
}

// RegisterResponse is the created backend user.
type RegisterResponse = auth.RawUser
