package data

import (
	"errors"

	"github.com/cryptlocker/cryptlocker-ui-api/internal/ports"
)

// Shared sentinel errors for data-layer repositories.
var (
	ErrUserNotFound     = ports.ErrUserNotFound
	ErrUsernameRequired = errors.New("username is required")
	ErrTokenRequired    = errors.New("token is required")
	ErrFileNameRequired = errors.New("file name is required")
	ErrInvalidUserID    = errors.New("user id must be positive")
	ErrInvalidBatchSize = errors.New("batch size must be greater than zero")
)
