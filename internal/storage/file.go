package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"taskboard/internal/model"
)

// FileStore keeps the board in a single JSON file. Saves go through a
// temporary file in the same directory followed by a rename, so a crash
// mid-write never leaves a truncated board behind.
type FileStore struct {
	path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (s *FileStore) Load(_ context.Context) (*model.Board, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to read board file: %w", err)
	}
	board, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse board file: %w", err)
	}
	return board, nil
}

func (s *FileStore) Save(_ context.Context, b *model.Board) error {
	data, err := Encode(b)
	if err != nil {
		return err
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create board directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to write board file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to close board file: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to replace board file: %w", err)
	}
	return nil
}
