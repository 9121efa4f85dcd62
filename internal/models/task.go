package models

import (
	"time"

	"github.com/bytedance/sonic"
)

// Task represents a single card in the kanban board.
// ProjectID is denormalized from the column so ownership checks need one lookup.
type Task struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	DueDate     *time.Time `json:"dueDate"`
	ColumnID    string     `json:"columnId"`
	ProjectID   string     `json:"projectId"`
	Order       int        `json:"order"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// IsOverdue reports whether the task has a due date earlier than now.
func (t *Task) IsOverdue(now time.Time) bool {
	if t == nil || t.DueDate == nil {
		return false
	}
	return now.After(*t.DueDate)
}

// MarshalJSON adds the derived isOverdue flag to the wire form.
func (t Task) MarshalJSON() ([]byte, error) {
	type plain Task
	return sonic.ConfigStd.Marshal(struct {
		plain
		IsOverdue bool `json:"isOverdue"`
	}{
		plain:     plain(t),
		IsOverdue: t.IsOverdue(time.Now()),
	})
}
