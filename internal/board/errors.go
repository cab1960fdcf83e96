package board

import "errors"

var (
	// ErrTitleRequired is returned when a task is created or renamed with an empty title
	ErrTitleRequired = errors.New("task title is required")

	// ErrTaskNotFound is returned when an operation references an unknown task id
	ErrTaskNotFound = errors.New("task not found")

	// ErrColumnNotFound is returned when a task targets a column the board does not have
	ErrColumnNotFound = errors.New("column not found")

	// ErrInvalidPriority is returned for a priority outside low/medium/high
	ErrInvalidPriority = errors.New("invalid task priority")

	// ErrBoardInconsistent indicates the snapshot's order lists and task map
	// disagree; the session repairs the board when it sees this.
	ErrBoardInconsistent = errors.New("board order is inconsistent")
)
