package task

import (
	"fmt"

	"github.com/thenoetrevino/kanban/internal/models"
)

// Domain errors for task service
var (
	// Validation errors
	ErrEmptyTitle          = fmt.Errorf("%w: task title cannot be empty", models.ErrValidation)
	ErrTitleTooLong        = fmt.Errorf("%w: task title cannot exceed %d characters", models.ErrValidation, models.MaxTaskTitleLength)
	ErrDescriptionTooLong  = fmt.Errorf("%w: task description cannot exceed %d characters", models.ErrValidation, models.MaxTaskDescriptionLength)
	ErrInvalidTaskID       = fmt.Errorf("%w: task id is required", models.ErrValidation)
	ErrInvalidColumnID     = fmt.Errorf("%w: column id is required", models.ErrValidation)
	ErrInvalidProjectID    = fmt.Errorf("%w: project id is required", models.ErrValidation)
	ErrConflictingDueDates = fmt.Errorf("%w: cannot set and clear the due date at once", models.ErrValidation)
)
