package board

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"taskboard/internal/model"
)

// Service implements the board mutations. Every operation takes a snapshot
// and returns a new one; the input board is never modified, so callers can
// keep old snapshots for diffing or roll back by simply not adopting the
// result.
type Service struct {
	// NewID and Now are swappable for tests.
	NewID func() string
	Now   func() time.Time
}

func NewService() *Service {
	return &Service{
		NewID: uuid.NewString,
		Now:   func() time.Time { return time.Now().UTC() },
	}
}

// CreateInput содержит поля для создания новой задачи
type CreateInput struct {
	Title       string
	Description string
	Priority    model.Priority
	Due         *time.Time
	Tag         string
	ColumnID    string
}

// UpdateInput содержит частичное обновление задачи: nil-поля не трогаются.
// Колонку задачи этим путем менять нельзя — перемещение между колонками
// выполняет только MoveTask.
type UpdateInput struct {
	Title       *string
	Description *string
	Priority    *model.Priority
	Due         *time.Time
	ClearDue    bool
	Tag         *string
}

// CreateTask validates the input, assigns a fresh id and timestamps and
// prepends the new task to the order of its column (the board's first column
// when none is given).
func (s *Service) CreateTask(b *model.Board, in CreateInput) (*model.Board, *model.Task, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, nil, ErrTitleRequired
	}

	priority := in.Priority
	if priority == "" {
		priority = model.PriorityMedium
	}
	if !priority.Valid() {
		return nil, nil, ErrInvalidPriority
	}

	columnID := in.ColumnID
	if columnID == "" {
		if len(b.Columns) == 0 {
			return nil, nil, ErrColumnNotFound
		}
		columnID = b.Columns[0].ID
	} else if !b.HasColumn(columnID) {
		return nil, nil, ErrColumnNotFound
	}

	now := s.Now()
	task := &model.Task{
		ID:          s.NewID(),
		Title:       title,
		Description: in.Description,
		Priority:    priority,
		Due:         in.Due,
		Tag:         in.Tag,
		ColumnID:    columnID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	nb := b.Clone()
	nb.Tasks[task.ID] = task
	nb.Order[columnID] = append([]string{task.ID}, nb.Order[columnID]...)
	nb.UpdatedAt = now
	return nb, task.Clone(), nil
}

// UpdateTask merges the partial input over the existing task, preserving id
// and createdAt and bumping updatedAt.
func (s *Service) UpdateTask(b *model.Board, id string, in UpdateInput) (*model.Board, *model.Task, error) {
	if _, ok := b.Tasks[id]; !ok {
		return nil, nil, ErrTaskNotFound
	}

	if in.Title != nil && strings.TrimSpace(*in.Title) == "" {
		return nil, nil, ErrTitleRequired
	}
	if in.Priority != nil && !in.Priority.Valid() {
		return nil, nil, ErrInvalidPriority
	}

	nb := b.Clone()
	task := nb.Tasks[id]
	if in.Title != nil {
		task.Title = strings.TrimSpace(*in.Title)
	}
	if in.Description != nil {
		task.Description = *in.Description
	}
	if in.Priority != nil {
		task.Priority = *in.Priority
	}
	if in.ClearDue {
		task.Due = nil
	} else if in.Due != nil {
		due := *in.Due
		task.Due = &due
	}
	if in.Tag != nil {
		task.Tag = *in.Tag
	}

	now := s.Now()
	task.UpdatedAt = now
	nb.UpdatedAt = now
	return nb, task.Clone(), nil
}

// DeleteTask removes the task from the board. A missing id is a silent no-op
// and the input snapshot is returned as-is. The id is removed from every
// column's order list, not only the recorded one, so the snapshot stays
// consistent even if the bookkeeping had drifted.
func (s *Service) DeleteTask(b *model.Board, id string) *model.Board {
	if _, ok := b.Tasks[id]; !ok {
		return b
	}

	nb := b.Clone()
	delete(nb.Tasks, id)
	for col, ids := range nb.Order {
		nb.Order[col] = remove(ids, id)
	}
	nb.UpdatedAt = s.Now()
	return nb
}

func remove(ids []string, id string) []string {
	out := ids[:0]
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}
