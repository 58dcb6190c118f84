package storage

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"trade-journal-go/internal/models"
)

// SQLStore keeps each blob as one row of the blobs table.
type SQLStore struct {
	db *gorm.DB
}

var _ Store = (*SQLStore)(nil)

// NewSQLStore wraps an already migrated database.
func NewSQLStore(db *gorm.DB) *SQLStore {
	return &SQLStore{db: db}
}

func (s *SQLStore) Load(ctx context.Context, key string) ([]byte, bool, error) {
	var blob models.Blob
	err := s.db.WithContext(ctx).Where("name = ?", key).First(&blob).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, &Error{Op: "load", Key: key, Err: err}
	}
	return blob.Data, true, nil
}

// Save upserts the blob in a single statement.
func (s *SQLStore) Save(ctx context.Context, key string, data []byte) error {
	blob := models.Blob{Name: key, Data: data, UpdatedAt: time.Now().UTC()}
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoUpdates: clause.AssignmentColumns([]string{"data", "updated_at"}),
	}).Create(&blob).Error
	if err != nil {
		return &Error{Op: "save", Key: key, Err: err}
	}
	return nil
}
