package model

import (
	"time"
)

type Column struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Идентификаторы колонок по умолчанию
const (
	ColumnTodo       = "todo"
	ColumnInProgress = "inprogress"
	ColumnDone       = "done"
)

// Board is the full snapshot of the task board: the ordered set of columns,
// all tasks keyed by id, and the per-column display order of task ids.
type Board struct {
	Columns   []Column            `json:"columns"`
	Tasks     map[string]*Task    `json:"tasks"`
	Order     map[string][]string `json:"order"`
	UpdatedAt time.Time           `json:"ts"`
}

// DefaultColumns returns the standard three-stage workflow.
func DefaultColumns() []Column {
	return []Column{
		{ID: ColumnTodo, Name: "To do"},
		{ID: ColumnInProgress, Name: "In progress"},
		{ID: ColumnDone, Name: "Done"},
	}
}

// NewBoard creates an empty board. With no arguments the default
// todo/inprogress/done columns are used.
func NewBoard(columns ...Column) *Board {
	if len(columns) == 0 {
		columns = DefaultColumns()
	}
	b := &Board{
		Columns: columns,
		Tasks:   make(map[string]*Task),
		Order:   make(map[string][]string, len(columns)),
	}
	for _, col := range b.Columns {
		b.Order[col.ID] = []string{}
	}
	return b
}

// Clone returns a deep copy of the board. Mutation operations work on a clone
// so that previously returned snapshots are never changed underneath a caller.
func (b *Board) Clone() *Board {
	c := &Board{
		Columns:   make([]Column, len(b.Columns)),
		Tasks:     make(map[string]*Task, len(b.Tasks)),
		Order:     make(map[string][]string, len(b.Order)),
		UpdatedAt: b.UpdatedAt,
	}
	copy(c.Columns, b.Columns)
	for id, t := range b.Tasks {
		c.Tasks[id] = t.Clone()
	}
	for col, ids := range b.Order {
		c.Order[col] = append([]string{}, ids...)
	}
	return c
}

// HasColumn reports whether the board contains a column with the given id.
func (b *Board) HasColumn(id string) bool {
	for _, col := range b.Columns {
		if col.ID == id {
			return true
		}
	}
	return false
}

// ColumnOf returns the id of the column whose order list contains taskID.
func (b *Board) ColumnOf(taskID string) (string, bool) {
	for _, col := range b.Columns {
		for _, id := range b.Order[col.ID] {
			if id == taskID {
				return col.ID, true
			}
		}
	}
	return "", false
}

// Check verifies the structural invariants of the snapshot: every task id
// appears exactly once across the order lists, in the list of its own column,
// order keys are exactly the column ids, and no order list references an
// unknown task.
func (b *Board) Check() bool {
	if len(b.Order) != len(b.Columns) {
		return false
	}
	seen := make(map[string]string, len(b.Tasks))
	for _, col := range b.Columns {
		ids, ok := b.Order[col.ID]
		if !ok {
			return false
		}
		for _, id := range ids {
			if _, dup := seen[id]; dup {
				return false
			}
			task, ok := b.Tasks[id]
			if !ok || task.ColumnID != col.ID {
				return false
			}
			seen[id] = col.ID
		}
	}
	return len(seen) == len(b.Tasks)
}

// Repair rebuilds the order lists from each task's recorded column,
// preserving the relative order of ids that were already listed correctly.
// Tasks missing from every list are appended to their own column; tasks
// pointing at an unknown column are reassigned to the first column. Used to
// recover a drifted snapshot instead of abandoning the session.
func (b *Board) Repair() {
	if len(b.Columns) == 0 {
		b.Order = map[string][]string{}
		return
	}
	order := make(map[string][]string, len(b.Columns))
	for _, col := range b.Columns {
		order[col.ID] = []string{}
	}
	placed := make(map[string]bool, len(b.Tasks))
	for _, col := range b.Columns {
		for _, id := range b.Order[col.ID] {
			task, ok := b.Tasks[id]
			if !ok || placed[id] || task.ColumnID != col.ID {
				continue
			}
			order[col.ID] = append(order[col.ID], id)
			placed[id] = true
		}
	}
	for id, task := range b.Tasks {
		if placed[id] {
			continue
		}
		if !b.HasColumn(task.ColumnID) {
			task.ColumnID = b.Columns[0].ID
		}
		order[task.ColumnID] = append(order[task.ColumnID], id)
		placed[id] = true
	}
	b.Order = order
}
