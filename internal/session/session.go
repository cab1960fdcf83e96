package session

import (
	"context"
	"errors"
	"sync"

	"github.com/sirupsen/logrus"

	"taskboard/internal/board"
	"taskboard/internal/model"
	"taskboard/internal/storage"
)

// Session owns the live board snapshot. Mutations are applied one at a time
// under the lock, the new snapshot is persisted after each successful
// mutation, and the in-memory board keeps serving when persistence
// misbehaves.
type Session struct {
	mu    sync.Mutex
	svc   *board.Service
	store storage.Store
	log   *logrus.Logger
	board *model.Board
}

// Open loads the board from the store. A missing or unreadable payload falls
// back to a freshly initialized board rather than failing startup; a snapshot
// that violates its own ordering invariants is repaired in place.
func Open(ctx context.Context, svc *board.Service, store storage.Store, log *logrus.Logger) *Session {
	s := &Session{svc: svc, store: store, log: log}

	b, err := store.Load(ctx)
	switch {
	case err == nil:
		if !b.Check() {
			log.Warn("⚠️  Stored board is inconsistent, rebuilding column order")
			b = b.Clone()
			b.Repair()
		}
	case errors.Is(err, storage.ErrNotFound):
		b = model.NewBoard()
	default:
		log.WithError(err).Warn("⚠️  Failed to load board, starting with an empty one")
		b = model.NewBoard()
	}

	s.board = b
	return s
}

// Board returns the current snapshot. Snapshots are copy-on-write: callers
// must treat the returned board as read-only.
func (s *Session) Board() *model.Board {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.board
}

func (s *Session) CreateTask(ctx context.Context, in board.CreateInput) (*model.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	nb, task, err := s.svc.CreateTask(s.board, in)
	if err != nil {
		return nil, err
	}
	s.adopt(ctx, nb)
	return task, nil
}

func (s *Session) UpdateTask(ctx context.Context, id string, in board.UpdateInput) (*model.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	nb, task, err := s.svc.UpdateTask(s.board, id, in)
	if err != nil {
		return nil, err
	}
	s.adopt(ctx, nb)
	return task, nil
}

// DeleteTask never fails: deleting an unknown id is a no-op and the snapshot
// is left untouched.
func (s *Session) DeleteTask(ctx context.Context, id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	nb := s.svc.DeleteTask(s.board, id)
	if nb == s.board {
		return
	}
	s.adopt(ctx, nb)
}

// MoveTask resolves the raw drop target against the current snapshot and
// applies the reorder. If the engine reports a drifted snapshot, the board is
// repaired and persisted so the next event lands on a consistent one, and the
// error is still surfaced to the caller.
func (s *Session) MoveTask(ctx context.Context, activeID string, overID *string) (*model.Board, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	target := board.ResolveTarget(s.board, overID)
	nb, err := s.svc.MoveTask(s.board, activeID, target)
	if err != nil {
		if errors.Is(err, board.ErrBoardInconsistent) {
			s.log.WithField("task_id", activeID).Warn("⚠️  Board order drifted, rebuilding")
			repaired := s.board.Clone()
			repaired.Repair()
			s.adopt(ctx, repaired)
		}
		return nil, err
	}
	if nb != s.board {
		s.adopt(ctx, nb)
	}
	return s.board, nil
}

// adopt swaps in the new snapshot and persists it. A failed save is logged
// and the mutation stands: losing the latest write on crash is accepted,
// failing the user's action over it is not.
func (s *Session) adopt(ctx context.Context, nb *model.Board) {
	s.board = nb
	if err := s.store.Save(ctx, nb); err != nil {
		s.log.WithError(err).Error("❌ Failed to persist board")
	}
}
