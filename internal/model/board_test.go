package model_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"taskboard/internal/model"
)

func seedTask(id, columnID string) *model.Task {
	created := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)
	return &model.Task{
		ID:        id,
		Title:     "Task " + id,
		Priority:  model.PriorityMedium,
		ColumnID:  columnID,
		CreatedAt: created,
		UpdatedAt: created,
	}
}

func TestNewBoard_DefaultColumns(t *testing.T) {
	b := model.NewBoard()

	assert.Len(t, b.Columns, 3)
	assert.Equal(t, model.ColumnTodo, b.Columns[0].ID)
	assert.True(t, b.Check())
	// У каждой колонки есть свой (пустой) список порядка
	for _, col := range b.Columns {
		assert.Contains(t, b.Order, col.ID)
	}
}

func TestClone_IsDeep(t *testing.T) {
	// Arrange
	b := model.NewBoard()
	b.Tasks["A"] = seedTask("A", model.ColumnTodo)
	b.Order[model.ColumnTodo] = []string{"A"}

	// Act
	c := b.Clone()
	c.Tasks["A"].Title = "changed"
	c.Order[model.ColumnTodo][0] = "B"

	// Assert
	assert.Equal(t, "Task A", b.Tasks["A"].Title)
	assert.Equal(t, []string{"A"}, b.Order[model.ColumnTodo])
}

func TestCheck_DetectsDrift(t *testing.T) {
	cases := []struct {
		name  string
		mould func(b *model.Board)
		ok    bool
	}{
		{
			name: "consistent board",
			mould: func(b *model.Board) {
				b.Tasks["A"] = seedTask("A", model.ColumnTodo)
				b.Order[model.ColumnTodo] = []string{"A"}
			},
			ok: true,
		},
		{
			name: "task missing from order",
			mould: func(b *model.Board) {
				b.Tasks["A"] = seedTask("A", model.ColumnTodo)
			},
			ok: false,
		},
		{
			name: "order references unknown task",
			mould: func(b *model.Board) {
				b.Order[model.ColumnTodo] = []string{"ghost"}
			},
			ok: false,
		},
		{
			name: "task listed in wrong column",
			mould: func(b *model.Board) {
				b.Tasks["A"] = seedTask("A", model.ColumnTodo)
				b.Order[model.ColumnDone] = []string{"A"}
			},
			ok: false,
		},
		{
			name: "task listed twice",
			mould: func(b *model.Board) {
				b.Tasks["A"] = seedTask("A", model.ColumnTodo)
				b.Order[model.ColumnTodo] = []string{"A", "A"}
			},
			ok: false,
		},
		{
			name: "missing order bucket",
			mould: func(b *model.Board) {
				delete(b.Order, model.ColumnDone)
			},
			ok: false,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			b := model.NewBoard()
			tc.mould(b)
			assert.Equal(t, tc.ok, b.Check())
		})
	}
}

func TestRepair_RebuildsOrderFromTasks(t *testing.T) {
	// Arrange: задача A выпала из order, B числится не в своей колонке,
	// ghost остался в order без задачи
	b := model.NewBoard()
	b.Tasks["A"] = seedTask("A", model.ColumnTodo)
	b.Tasks["B"] = seedTask("B", model.ColumnDone)
	b.Order[model.ColumnTodo] = []string{"ghost"}
	b.Order[model.ColumnInProgress] = []string{"B"}

	// Act
	b.Repair()

	// Assert
	assert.True(t, b.Check())
	assert.Equal(t, []string{"A"}, b.Order[model.ColumnTodo])
	assert.Empty(t, b.Order[model.ColumnInProgress])
	assert.Equal(t, []string{"B"}, b.Order[model.ColumnDone])
}

func TestRepair_ReassignsUnknownColumn(t *testing.T) {
	// Arrange
	b := model.NewBoard()
	b.Tasks["A"] = seedTask("A", "archive")

	// Act
	b.Repair()

	// Assert: задача с несуществующей колонкой уходит в первую
	assert.True(t, b.Check())
	assert.Equal(t, []string{"A"}, b.Order[model.ColumnTodo])
	assert.Equal(t, model.ColumnTodo, b.Tasks["A"].ColumnID)
}

func TestRepair_PreservesRelativeOrder(t *testing.T) {
	// Arrange: корректно перечисленные задачи сохраняют порядок
	b := model.NewBoard()
	for _, id := range []string{"A", "B", "C"} {
		b.Tasks[id] = seedTask(id, model.ColumnTodo)
	}
	b.Order[model.ColumnTodo] = []string{"A", "ghost", "B", "C"}

	// Act
	b.Repair()

	// Assert
	assert.Equal(t, []string{"A", "B", "C"}, b.Order[model.ColumnTodo])
	assert.True(t, b.Check())
}
