package cli

import (
	"errors"

	"github.com/thenoetrevino/kanban/internal/models"
)

// Exit codes for CLI commands.
// These codes follow Unix conventions and provide consistent error reporting
// across all CLI commands.
const (
	// ExitSuccess indicates the command completed successfully.
	ExitSuccess = 0

	// ExitError indicates a general error occurred.
	// Use for: Database errors, network errors, unexpected failures.
	ExitError = 1

	// ExitUsage indicates incorrect command usage.
	// Use for: Missing required flags or arguments.
	ExitUsage = 2

	// ExitNotFound indicates a requested resource was not found.
	ExitNotFound = 3

	// ExitForbidden indicates the resource belongs to another user.
	ExitForbidden = 4

	// ExitValidation indicates a validation error.
	ExitValidation = 5
)

// ExitCodeFor classifies err with the shared error taxonomy
func ExitCodeFor(err error) int {
	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, models.ErrValidation):
		return ExitValidation
	case errors.Is(err, models.ErrNotFound):
		return ExitNotFound
	case errors.Is(err, models.ErrForbidden):
		return ExitForbidden
	case errors.Is(err, models.ErrUnauthenticated):
		return ExitUsage
	default:
		return ExitError
	}
}

// ErrorCode returns the machine-readable code used in JSON error output
func ErrorCode(err error) string {
	switch ExitCodeFor(err) {
	case ExitValidation:
		return "VALIDATION_ERROR"
	case ExitNotFound:
		return "NOT_FOUND"
	case ExitForbidden:
		return "FORBIDDEN"
	case ExitUsage:
		return "UNAUTHENTICATED"
	default:
		return "INTERNAL_ERROR"
	}
}
