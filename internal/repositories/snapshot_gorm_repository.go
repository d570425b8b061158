package repositories

import (
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// KVEntry is one persisted snapshot row.
type KVEntry struct {
	Key   string `gorm:"primaryKey;type:varchar(255)"`
	Value []byte
}

// GORMSnapshotRepository is a GORM implementation of SnapshotRepository.
type GORMSnapshotRepository struct {
	db *gorm.DB
}

// NewGORMSnapshotRepository creates a new instance of GORMSnapshotRepository.
func NewGORMSnapshotRepository(db *gorm.DB) *GORMSnapshotRepository {
	return &GORMSnapshotRepository{
		db: db,
	}
}

// Load reads the value stored under key, or (nil, nil) if the key is absent.
func (r *GORMSnapshotRepository) Load(key string) ([]byte, error) {
	var entry KVEntry
	if err := r.db.First(&entry, "key = ?", key).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load snapshot %s: %w", key, err)
	}
	return entry.Value, nil
}

// Save writes value under key, replacing any previous value.
func (r *GORMSnapshotRepository) Save(key string, value []byte) error {
	entry := KVEntry{Key: key, Value: value}
	err := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value"}),
	}).Create(&entry).Error
	if err != nil {
		return fmt.Errorf("failed to save snapshot %s: %w", key, err)
	}
	return nil
}

// Delete removes the value stored under key; absent keys are a no-op.
func (r *GORMSnapshotRepository) Delete(key string) error {
	if err := r.db.Delete(&KVEntry{}, "key = ?", key).Error; err != nil {
		return fmt.Errorf("failed to delete snapshot %s: %w", key, err)
	}
	return nil
}
