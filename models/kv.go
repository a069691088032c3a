package models

import "time"

// KVEntry is one persisted key-value blob. The local store keeps its whole
// state in a handful of these (favorites, local posts, theme).
type KVEntry struct {
	Key       string `gorm:"primaryKey;size:64"`
	Value     []byte `gorm:"not null"`
	UpdatedAt time.Time
}

// TableName overrides the default gorm pluralization.
func (KVEntry) TableName() string {
	return "kv_entries"
}
