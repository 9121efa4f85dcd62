package models

// Board is the nested read model for a single project:
// columns sorted by order, each carrying its tasks sorted by order.
type Board struct {
	Project *Project       `json:"project"`
	Columns []*BoardColumn `json:"columns"`
}

// BoardColumn is a column together with the tasks it holds.
type BoardColumn struct {
	*Column
	Tasks []*Task `json:"tasks"`
}

// OrderUpdate assigns a new order to one sibling in a batch reorder.
type OrderUpdate struct {
	ID    string `json:"id"`
	Order int    `json:"order"`
}

// NewBoard groups tasks under their columns. Both inputs are expected to be
// sorted already; tasks whose column is not in the list are dropped.
func NewBoard(project *Project, columns []*Column, tasks []*Task) *Board {
	board := &Board{
		Project: project,
		Columns: make([]*BoardColumn, 0, len(columns)),
	}

	byColumn := make(map[string]*BoardColumn, len(columns))
	for _, col := range columns {
		bc := &BoardColumn{Column: col, Tasks: []*Task{}}
		byColumn[col.ID] = bc
		board.Columns = append(board.Columns, bc)
	}

	for _, task := range tasks {
		if bc, ok := byColumn[task.ColumnID]; ok {
			bc.Tasks = append(bc.Tasks, task)
		}
	}

	return board
}
