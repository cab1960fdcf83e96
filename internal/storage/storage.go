package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/bytedance/sonic"

	"taskboard/internal/model"
)

var (
	// ErrNotFound is returned by Load when no board has been saved yet
	ErrNotFound = errors.New("board not found")
)

// SchemaVersion tags the persisted payload. Unknown versions fail to decode
// and the session falls back to a fresh board.
const SchemaVersion = 1

// Store persists the board snapshot. The board is saved wholesale after every
// mutation; the serialization format is a private concern of this package.
type Store interface {
	Load(ctx context.Context) (*model.Board, error)
	Save(ctx context.Context, b *model.Board) error
}

type payload struct {
	Version int          `json:"version"`
	Board   *model.Board `json:"board"`
}

// Encode serializes a snapshot into the versioned storage payload.
func Encode(b *model.Board) ([]byte, error) {
	data, err := sonic.MarshalIndent(payload{Version: SchemaVersion, Board: b}, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode board: %w", err)
	}
	return data, nil
}

// Decode parses a storage payload back into a snapshot.
func Decode(data []byte) (*model.Board, error) {
	var p payload
	if err := sonic.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("decode board: %w", err)
	}
	if p.Version != SchemaVersion {
		return nil, fmt.Errorf("decode board: unsupported schema version %d", p.Version)
	}
	if p.Board == nil {
		return nil, fmt.Errorf("decode board: empty payload")
	}
	if p.Board.Tasks == nil {
		p.Board.Tasks = map[string]*model.Task{}
	}
	if p.Board.Order == nil {
		p.Board.Order = map[string][]string{}
	}
	return p.Board, nil
}
