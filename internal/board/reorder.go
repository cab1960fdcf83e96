package board

import (
	"taskboard/internal/model"
)

// DropKind tags the shape of a drop target.
type DropKind int

const (
	// DropNone means the drag was cancelled: nothing to do.
	DropNone DropKind = iota
	// DropColumn means the card was released on a column's empty area.
	DropColumn
	// DropCard means the card was released on or near another card.
	DropCard
)

// DropTarget is what the dragged card was released onto, resolved once at the
// boundary before the engine runs.
type DropTarget struct {
	Kind DropKind
	ID   string
}

// ResolveTarget classifies a raw over-target id against the current snapshot.
// A nil id is a cancelled drop. Column ids win over task ids; an id matching
// neither is treated as a stale card reference, which the engine tolerates.
func ResolveTarget(b *model.Board, overID *string) DropTarget {
	if overID == nil {
		return DropTarget{Kind: DropNone}
	}
	if b.HasColumn(*overID) {
		return DropTarget{Kind: DropColumn, ID: *overID}
	}
	return DropTarget{Kind: DropCard, ID: *overID}
}

// MoveTask applies a drag-end event to the snapshot: it removes the active
// task from its current column's order, picks the destination column from the
// drop target, inserts the id before the target card (or appends), and
// updates the task's column and updatedAt. The returned snapshot replaces
// both affected order lists and the moved task together, so no caller can
// observe a half-applied move.
func (s *Service) MoveTask(b *model.Board, activeID string, target DropTarget) (*model.Board, error) {
	if target.Kind == DropNone {
		return b, nil
	}
	// Перетаскивание карточки на саму себя ничего не меняет
	if target.Kind == DropCard && target.ID == activeID {
		return b, nil
	}

	if _, ok := b.Tasks[activeID]; !ok {
		return nil, ErrTaskNotFound
	}
	source, ok := b.ColumnOf(activeID)
	if !ok {
		// The task exists but no order list contains it: the snapshot drifted.
		return nil, ErrBoardInconsistent
	}

	dest := source
	switch target.Kind {
	case DropColumn:
		if b.HasColumn(target.ID) {
			dest = target.ID
		}
	case DropCard:
		if over, ok := b.Tasks[target.ID]; ok && b.HasColumn(over.ColumnID) {
			dest = over.ColumnID
		}
	}

	nb := b.Clone()
	nb.Order[source] = remove(nb.Order[source], activeID)

	idx := len(nb.Order[dest])
	if target.Kind == DropCard {
		for i, id := range nb.Order[dest] {
			if id == target.ID {
				idx = i
				break
			}
		}
	}
	nb.Order[dest] = insert(nb.Order[dest], idx, activeID)

	now := s.Now()
	task := nb.Tasks[activeID]
	task.ColumnID = dest
	task.UpdatedAt = now
	nb.UpdatedAt = now
	return nb, nil
}

func insert(ids []string, idx int, id string) []string {
	if idx < 0 || idx > len(ids) {
		idx = len(ids)
	}
	out := make([]string, 0, len(ids)+1)
	out = append(out, ids[:idx]...)
	out = append(out, id)
	out = append(out, ids[idx:]...)
	return out
}
