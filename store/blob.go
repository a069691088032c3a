package store

import (
	"errors"
	"sync"

	"admindash/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Blob is the minimal key-value surface the store needs. Keep it minimal for
// testability. PutAll applies every entry or none of them.
type Blob interface {
	Get(key string) ([]byte, bool, error)
	Put(key string, value []byte) error
	PutAll(entries map[string][]byte) error
}

type gormBlob struct {
	db *gorm.DB
}

// NewGormBlob wraps a gorm connection as a Blob backed by the kv_entries table.
func NewGormBlob(db *gorm.DB) Blob {
	return &gormBlob{db: db}
}

func (b *gormBlob) Get(key string) ([]byte, bool, error) {
	var entry models.KVEntry
	err := b.db.First(&entry, "key = ?", key).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return entry.Value, true, nil
}

func upsertEntry(db *gorm.DB, key string, value []byte) error {
	entry := models.KVEntry{Key: key, Value: value}
	return db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&entry).Error
}

func (b *gormBlob) Put(key string, value []byte) error {
	return upsertEntry(b.db, key, value)
}

// PutAll upserts every entry inside one transaction; a failure rolls back
// the keys already written.
func (b *gormBlob) PutAll(entries map[string][]byte) error {
	return b.db.Transaction(func(tx *gorm.DB) error {
		for key, value := range entries {
			if err := upsertEntry(tx, key, value); err != nil {
				return err
			}
		}
		return nil
	})
}

type memoryBlob struct {
	mu   sync.Mutex
	data map[string][]byte
}

// NewMemoryBlob returns an in-memory Blob. Used by tests.
func NewMemoryBlob() Blob {
	return &memoryBlob{data: make(map[string][]byte)}
}

func (b *memoryBlob) Get(key string) ([]byte, bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	v, ok := b.data[key]
	if !ok {
		return nil, false, nil
	}
	out := make([]byte, len(v))
	copy(out, v)
	return out, true, nil
}

func (b *memoryBlob) Put(key string, value []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.set(key, value)
	return nil
}

func (b *memoryBlob) PutAll(entries map[string][]byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	for key, value := range entries {
		b.set(key, value)
	}
	return nil
}

func (b *memoryBlob) set(key string, value []byte) {
	v := make([]byte, len(value))
	copy(v, value)
	b.data[key] = v
}
