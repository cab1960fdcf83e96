package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"taskboard/internal/model"
)

// boardRecord is the single snapshot row kept per board key.
type boardRecord struct {
	Key       string `gorm:"primaryKey"`
	Payload   []byte `gorm:"type:jsonb;not null"`
	UpdatedAt time.Time
}

func (boardRecord) TableName() string {
	return "board_snapshots"
}

// PostgresStore keeps the board as one jsonb row, upserted on every save.
type PostgresStore struct {
	db  *gorm.DB
	key string
}

func NewPostgresStore(db *gorm.DB, key string) *PostgresStore {
	return &PostgresStore{db: db, key: key}
}

// Migrate creates the snapshot table if it does not exist yet.
func (s *PostgresStore) Migrate() error {
	return s.db.AutoMigrate(&boardRecord{})
}

func (s *PostgresStore) Load(ctx context.Context) (*model.Board, error) {
	var rec boardRecord
	result := s.db.WithContext(ctx).First(&rec, "key = ?", s.key)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to read board snapshot: %w", result.Error)
	}
	board, err := Decode(rec.Payload)
	if err != nil {
		return nil, fmt.Errorf("failed to parse board snapshot: %w", err)
	}
	return board, nil
}

func (s *PostgresStore) Save(ctx context.Context, b *model.Board) error {
	data, err := Encode(b)
	if err != nil {
		return err
	}
	rec := boardRecord{Key: s.key, Payload: data, UpdatedAt: time.Now().UTC()}
	result := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"payload", "updated_at"}),
	}).Create(&rec)
	if result.Error != nil {
		return fmt.Errorf("failed to write board snapshot: %w", result.Error)
	}
	return nil
}
