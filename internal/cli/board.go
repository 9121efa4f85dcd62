package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/thenoetrevino/kanban/internal/models"
)

const columnWidth = 36

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7D56F4"))

	subtitleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888"))

	columnStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#7D56F4")).
			Padding(0, 1).
			Width(columnWidth)

	columnHeaderStyle = lipgloss.NewStyle().Bold(true).Underline(true)

	overdueStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF5F87")).Bold(true)
)

// RenderBoard draws the board as side-by-side columns.
// now decides which tasks are flagged as overdue.
func RenderBoard(board *models.Board, now time.Time) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(board.Project.Name))
	if board.Project.Description != "" {
		b.WriteString("\n")
		b.WriteString(subtitleStyle.Render(board.Project.Description))
	}
	b.WriteString("\n\n")

	if len(board.Columns) == 0 {
		b.WriteString(subtitleStyle.Render("(no columns)"))
		return b.String()
	}

	rendered := make([]string, 0, len(board.Columns))
	for _, col := range board.Columns {
		rendered = append(rendered, columnStyle.Render(renderColumn(col, now)))
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, rendered...))
	return b.String()
}

func renderColumn(col *models.BoardColumn, now time.Time) string {
	lines := []string{columnHeaderStyle.Render(fmt.Sprintf("%s (%d)", col.Name, len(col.Tasks)))}
	if len(col.Tasks) == 0 {
		lines = append(lines, subtitleStyle.Render("empty"))
	}
	for _, task := range col.Tasks {
		line := "• " + task.Title
		if task.DueDate != nil {
			due := task.DueDate.Format("2006-01-02")
			if task.IsOverdue(now) {
				line += " " + overdueStyle.Render("overdue "+due)
			} else {
				line += " " + subtitleStyle.Render("due "+due)
			}
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}
