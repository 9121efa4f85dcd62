package user

import (
	"fmt"

	"github.com/thenoetrevino/kanban/internal/models"
)

// Domain errors for user service
var (
	// Validation errors
	ErrMissingFields    = fmt.Errorf("%w: name, email and password are required", models.ErrValidation)
	ErrMissingLogin     = fmt.Errorf("%w: email and password are required", models.ErrValidation)
	ErrInvalidEmail     = fmt.Errorf("%w: invalid email address", models.ErrValidation)
	ErrPasswordTooShort = fmt.Errorf("%w: password must be at least %d characters", models.ErrValidation, MinPasswordLength)
	ErrPasswordTooLong  = fmt.Errorf("%w: password cannot exceed %d bytes", models.ErrValidation, maxPasswordBytes)

	// Authentication errors
	ErrInvalidCredentials = fmt.Errorf("%w: invalid credentials", models.ErrUnauthenticated)
)
