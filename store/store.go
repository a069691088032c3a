// Package store is the local overlay state: favorite users, locally authored
// posts and the persisted theme. Every mutation writes through to the
// backing blob before returning; nothing is buffered.
package store

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"admindash/models"
)

// Persisted keys. Values are flat JSON blobs.
const (
	keyFavorites  = "favoriteUsers"
	keyLocalPosts = "localPosts"
	keyTheme      = "theme"
)

// Themes accepted by SetTheme.
const (
	ThemeLight = "light"
	ThemeDark  = "dark"
)

// Store owns the locally persisted collections. The mutex keeps each
// read-modify-write cycle run-to-completion; concurrent processes writing
// the same backing storage are not coordinated.
type Store struct {
	mu     sync.Mutex
	blob   Blob
	now    func() time.Time
	lastID int64
}

// New creates a Store on top of the given blob storage.
func New(blob Blob) *Store {
	return &Store{blob: blob, now: time.Now}
}

func (s *Store) readJSON(key string, dest any) (bool, error) {
	raw, ok, err := s.blob.Get(key)
	if err != nil {
		return false, fmt.Errorf("read %s: %w", key, err)
	}
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return false, fmt.Errorf("decode %s: %w", key, err)
	}
	return true, nil
}

func (s *Store) writeJSON(key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := s.blob.Put(key, raw); err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	return nil
}

func (s *Store) favorites() ([]int, error) {
	favs := []int{}
	if _, err := s.readJSON(keyFavorites, &favs); err != nil {
		return nil, err
	}
	return favs, nil
}

// Favorites returns the current favorite set, empty if none persisted.
func (s *Store) Favorites() ([]int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.favorites()
}

// AddFavorite inserts id into the favorite set. It reports false without
// touching storage when the id is already present.
func (s *Store) AddFavorite(id int) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	favs, err := s.favorites()
	if err != nil {
		return false, err
	}
	for _, f := range favs {
		if f == id {
			return false, nil
		}
	}
	favs = append(favs, id)
	if err := s.writeJSON(keyFavorites, favs); err != nil {
		return false, err
	}
	return true, nil
}

// RemoveFavorite removes id from the favorite set. It reports false and
// leaves the set unchanged when the id is absent.
func (s *Store) RemoveFavorite(id int) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	favs, err := s.favorites()
	if err != nil {
		return false, err
	}
	for i, f := range favs {
		if f == id {
			favs = append(favs[:i], favs[i+1:]...)
			if err := s.writeJSON(keyFavorites, favs); err != nil {
				return false, err
			}
			return true, nil
		}
	}
	return false, nil
}

// IsFavorite reports membership in the favorite set.
func (s *Store) IsFavorite(id int) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	favs, err := s.favorites()
	if err != nil {
		return false, err
	}
	for _, f := range favs {
		if f == id {
			return true, nil
		}
	}
	return false, nil
}

// Theme returns the persisted theme, defaulting to light.
func (s *Store) Theme() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	theme := ""
	ok, err := s.readJSON(keyTheme, &theme)
	if err != nil {
		return "", err
	}
	if !ok || theme == "" {
		return ThemeLight, nil
	}
	return theme, nil
}

// SetTheme persists the theme. Only light and dark are accepted.
func (s *Store) SetTheme(theme string) error {
	if theme != ThemeLight && theme != ThemeDark {
		return models.NewValidationError(fmt.Sprintf("unknown theme %q", theme))
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.writeJSON(keyTheme, theme)
}
