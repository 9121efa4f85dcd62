package models

import "time"

// Column represents a kanban board column (e.g., "To do", "In progress", "Done").
// Columns are ranked among their siblings by Order; gaps are allowed.
type Column struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	ProjectID string    `json:"projectId"`
	Order     int       `json:"order"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
