package store

import (
	"encoding/json"
	"fmt"
	"time"

	"admindash/models"
)

// snapshotImport uses pointer fields so a missing or null collection is
// distinguishable from an empty one; both collections are required.
type snapshotImport struct {
	FavoriteUsers *[]int         `json:"favoriteUsers"`
	LocalPosts    *[]models.Post `json:"localPosts"`
}

// ExportSnapshot serializes the current favorites and local posts. Pure
// read, no side effect.
func (s *Store) ExportSnapshot() (models.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	favs, err := s.favorites()
	if err != nil {
		return models.Snapshot{}, err
	}
	posts, err := s.localPosts()
	if err != nil {
		return models.Snapshot{}, err
	}
	return models.Snapshot{
		FavoriteUsers: favs,
		LocalPosts:    posts,
		ExportDate:    s.now().UTC().Format(time.RFC3339),
		Version:       models.SnapshotVersion,
	}, nil
}

// ImportSnapshot replaces both collections with the payload's contents. A
// payload missing either collection, or one that does not decode, fails with
// INVALID_FORMAT and leaves the store untouched. Both collections land in a
// single batch write, so a storage failure applies neither.
func (s *Store) ImportSnapshot(raw []byte) error {
	var snap snapshotImport
	if err := json.Unmarshal(raw, &snap); err != nil {
		return models.NewInvalidFormatError("import payload is not valid JSON")
	}
	if snap.FavoriteUsers == nil || snap.LocalPosts == nil {
		return models.NewInvalidFormatError("import payload must contain favoriteUsers and localPosts")
	}

	favRaw, err := json.Marshal(*snap.FavoriteUsers)
	if err != nil {
		return fmt.Errorf("encode %s: %w", keyFavorites, err)
	}
	postsRaw, err := json.Marshal(*snap.LocalPosts)
	if err != nil {
		return fmt.Errorf("encode %s: %w", keyLocalPosts, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.blob.PutAll(map[string][]byte{
		keyFavorites:  favRaw,
		keyLocalPosts: postsRaw,
	}); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	return nil
}
