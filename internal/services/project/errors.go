package project

import (
	"fmt"

	"github.com/thenoetrevino/kanban/internal/models"
)

// Domain errors for project service
var (
	// Validation errors
	ErrEmptyName        = fmt.Errorf("%w: project name cannot be empty", models.ErrValidation)
	ErrNameTooLong      = fmt.Errorf("%w: project name cannot exceed %d characters", models.ErrValidation, models.MaxProjectNameLength)
	ErrInvalidProjectID = fmt.Errorf("%w: project id is required", models.ErrValidation)
)
