package models

import "math"

// ============================================================================
// DEFAULT COLUMNS
// ============================================================================

// DefaultColumnNames are seeded, in order, into every new project.
var DefaultColumnNames = []string{"To do", "In progress", "Done"}

// ============================================================================
// FIELD LIMITS
// ============================================================================

const (
	MaxProjectNameLength     = 100
	MaxColumnNameLength      = 50
	MaxTaskTitleLength       = 200
	MaxTaskDescriptionLength = 1000
)

// FirstOrder is the order assigned to the first sibling under an empty parent.
const FirstOrder = 0

// MaxOrder is the largest order a column or task may hold.
const MaxOrder = math.MaxInt32
