package board_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"taskboard/internal/board"
	"taskboard/internal/model"
)

func TestResolveTarget(t *testing.T) {
	b := boardWith(map[string][]string{model.ColumnTodo: {"A"}})

	// Отмененное перетаскивание
	assert.Equal(t, board.DropTarget{Kind: board.DropNone}, board.ResolveTarget(b, nil))

	// Идентификатор колонки
	col := model.ColumnDone
	assert.Equal(t, board.DropTarget{Kind: board.DropColumn, ID: col}, board.ResolveTarget(b, &col))

	// Идентификатор карточки
	card := "A"
	assert.Equal(t, board.DropTarget{Kind: board.DropCard, ID: card}, board.ResolveTarget(b, &card))

	// Неизвестный идентификатор считается устаревшей карточкой
	ghost := "ghost"
	assert.Equal(t, board.DropTarget{Kind: board.DropCard, ID: ghost}, board.ResolveTarget(b, &ghost))
}

func TestMoveTask_CancelledDropIsNoOp(t *testing.T) {
	// Arrange
	svc := newTestService()
	b := boardWith(map[string][]string{model.ColumnTodo: {"A", "B"}})

	// Act
	nb, err := svc.MoveTask(b, "A", board.DropTarget{Kind: board.DropNone})

	// Assert
	assert.NoError(t, err)
	assert.Same(t, b, nb)
}

func TestMoveTask_SelfDropIsNoOp(t *testing.T) {
	// Arrange
	svc := newTestService()
	b := boardWith(map[string][]string{model.ColumnTodo: {"A", "B"}})
	before := b.Clone()

	// Act
	nb, err := svc.MoveTask(b, "A", board.DropTarget{Kind: board.DropCard, ID: "A"})

	// Assert: снимок не изменился, updatedAt не трогаем
	assert.NoError(t, err)
	assert.Same(t, b, nb)
	assert.Equal(t, before, nb)
}

func TestMoveTask_CrossColumnToEmptyColumn(t *testing.T) {
	// Arrange
	svc := newTestService()
	b := boardWith(map[string][]string{
		model.ColumnTodo: {"A", "B"},
		model.ColumnDone: {},
	})

	// Act
	nb, err := svc.MoveTask(b, "A", board.DropTarget{Kind: board.DropColumn, ID: model.ColumnDone})

	// Assert
	assert.NoError(t, err)
	assert.Equal(t, []string{"B"}, nb.Order[model.ColumnTodo])
	assert.Equal(t, []string{"A"}, nb.Order[model.ColumnDone])
	assert.Equal(t, model.ColumnDone, nb.Tasks["A"].ColumnID)
	assert.True(t, nb.Tasks["A"].UpdatedAt.After(b.Tasks["A"].UpdatedAt))
	assert.True(t, nb.Check())
	// Исходный снимок не изменился
	assert.Equal(t, []string{"A", "B"}, b.Order[model.ColumnTodo])
}

func TestMoveTask_InsertBeforeTargetCard(t *testing.T) {
	// Arrange
	svc := newTestService()
	b := boardWith(map[string][]string{model.ColumnTodo: {"A", "B", "C"}})

	// Act: тащим C и бросаем на B
	nb, err := svc.MoveTask(b, "C", board.DropTarget{Kind: board.DropCard, ID: "B"})

	// Assert
	assert.NoError(t, err)
	assert.Equal(t, []string{"A", "C", "B"}, nb.Order[model.ColumnTodo])
	assert.True(t, nb.Check())
}

func TestMoveTask_OntoCardInAnotherColumn(t *testing.T) {
	// Arrange
	svc := newTestService()
	b := boardWith(map[string][]string{
		model.ColumnTodo:       {"A"},
		model.ColumnInProgress: {"B", "C"},
	})

	// Act: бросаем A на C
	nb, err := svc.MoveTask(b, "A", board.DropTarget{Kind: board.DropCard, ID: "C"})

	// Assert: A встает перед C в его колонке
	assert.NoError(t, err)
	assert.Empty(t, nb.Order[model.ColumnTodo])
	assert.Equal(t, []string{"B", "A", "C"}, nb.Order[model.ColumnInProgress])
	assert.Equal(t, model.ColumnInProgress, nb.Tasks["A"].ColumnID)
	assert.True(t, nb.Check())
}

func TestMoveTask_StaleTargetAppendsToSourceColumn(t *testing.T) {
	// Arrange
	svc := newTestService()
	b := boardWith(map[string][]string{model.ColumnTodo: {"A", "B", "C"}})

	// Act: карточка, на которую бросили, уже удалена
	nb, err := svc.MoveTask(b, "A", board.DropTarget{Kind: board.DropCard, ID: "ghost"})

	// Assert: задача уходит в конец своей колонки
	assert.NoError(t, err)
	assert.Equal(t, []string{"B", "C", "A"}, nb.Order[model.ColumnTodo])
	assert.Equal(t, model.ColumnTodo, nb.Tasks["A"].ColumnID)
	assert.True(t, nb.Check())
}

func TestMoveTask_ColumnTargetAppendsAtEnd(t *testing.T) {
	// Arrange
	svc := newTestService()
	b := boardWith(map[string][]string{
		model.ColumnTodo: {"A"},
		model.ColumnDone: {"B", "C"},
	})

	// Act
	nb, err := svc.MoveTask(b, "A", board.DropTarget{Kind: board.DropColumn, ID: model.ColumnDone})

	// Assert
	assert.NoError(t, err)
	assert.Equal(t, []string{"B", "C", "A"}, nb.Order[model.ColumnDone])
	assert.True(t, nb.Check())
}

func TestMoveTask_SameColumnReorderBumpsUpdatedAt(t *testing.T) {
	// Arrange
	svc := newTestService()
	b := boardWith(map[string][]string{model.ColumnTodo: {"A", "B"}})

	// Act
	nb, err := svc.MoveTask(b, "B", board.DropTarget{Kind: board.DropCard, ID: "A"})

	// Assert: колонка не сменилась, но updatedAt обновлен
	assert.NoError(t, err)
	assert.Equal(t, []string{"B", "A"}, nb.Order[model.ColumnTodo])
	assert.Equal(t, model.ColumnTodo, nb.Tasks["B"].ColumnID)
	assert.True(t, nb.Tasks["B"].UpdatedAt.After(b.Tasks["B"].UpdatedAt))
}

func TestMoveTask_UnknownActiveTask(t *testing.T) {
	// Arrange
	svc := newTestService()
	b := boardWith(map[string][]string{model.ColumnTodo: {"A"}})

	// Act
	_, err := svc.MoveTask(b, "ghost", board.DropTarget{Kind: board.DropColumn, ID: model.ColumnDone})

	// Assert
	assert.ErrorIs(t, err, board.ErrTaskNotFound)
}

func TestMoveTask_TaskMissingFromOrder(t *testing.T) {
	// Arrange: задача есть в tasks, но выпала из всех order-списков
	svc := newTestService()
	b := boardWith(map[string][]string{model.ColumnTodo: {"A"}})
	b.Order[model.ColumnTodo] = []string{}

	// Act
	_, err := svc.MoveTask(b, "A", board.DropTarget{Kind: board.DropColumn, ID: model.ColumnDone})

	// Assert
	assert.ErrorIs(t, err, board.ErrBoardInconsistent)
}
