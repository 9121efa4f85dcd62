package models

import (
	"errors"
	"fmt"
)

// Error taxonomy shared by every layer. Services wrap these with context
// (fmt.Errorf("%w: ...")) and the HTTP layer classifies with errors.Is.
var (
	// ErrValidation indicates a missing or malformed field in a request
	ErrValidation = errors.New("validation failed")

	// ErrUnauthenticated indicates a missing or invalid caller identity
	ErrUnauthenticated = errors.New("unauthenticated")

	// ErrForbidden indicates the entity exists but belongs to another user
	ErrForbidden = errors.New("forbidden")

	// ErrNotFound indicates the entity (or one of its ancestors) does not exist
	ErrNotFound = errors.New("not found")
)

// ErrParentMismatch indicates a child was pointed at a parent outside its project.
var ErrParentMismatch = fmt.Errorf("%w: parent mismatch", ErrValidation)
