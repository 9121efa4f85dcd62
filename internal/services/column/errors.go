package column

import (
	"fmt"

	"github.com/thenoetrevino/kanban/internal/models"
)

// Domain errors for column service
var (
	// Validation errors
	ErrEmptyName        = fmt.Errorf("%w: column name cannot be empty", models.ErrValidation)
	ErrNameTooLong      = fmt.Errorf("%w: column name cannot exceed %d characters", models.ErrValidation, models.MaxColumnNameLength)
	ErrInvalidColumnID  = fmt.Errorf("%w: column id is required", models.ErrValidation)
	ErrInvalidProjectID = fmt.Errorf("%w: project id is required", models.ErrValidation)
)
