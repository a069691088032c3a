package store

import (
	"time"

	"admindash/models"
)

// PostDraft carries the fields a caller supplies when authoring a post.
type PostDraft struct {
	UserID int    `json:"userId"`
	Title  string `json:"title"`
	Body   string `json:"body"`
}

// PostPatch lists every mutable post field explicitly. Nil fields are
// retained on the existing record.
type PostPatch struct {
	UserID *int    `json:"userId"`
	Title  *string `json:"title"`
	Body   *string `json:"body"`
}

func (s *Store) localPosts() ([]models.Post, error) {
	posts := []models.Post{}
	if _, err := s.readJSON(keyLocalPosts, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

// ListLocalPosts returns locally authored posts, newest first.
func (s *Store) ListLocalPosts() ([]models.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.localPosts()
}

// nextID derives a fresh post id from the wall clock. Two creates landing in
// the same millisecond get consecutive ids, keeping ids unique and monotonic
// within this process.
func (s *Store) nextID() int64 {
	id := s.now().UnixMilli()
	if id <= s.lastID {
		id = s.lastID + 1
	}
	s.lastID = id
	return id
}

// CreateLocalPost assigns a fresh id, stamps the record and prepends it to
// the stored list.
func (s *Store) CreateLocalPost(draft PostDraft) (models.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	posts, err := s.localPosts()
	if err != nil {
		return models.Post{}, err
	}

	post := models.Post{
		ID:        s.nextID(),
		UserID:    draft.UserID,
		Title:     draft.Title,
		Body:      draft.Body,
		IsLocal:   true,
		CreatedAt: s.now().UTC().Format(time.RFC3339),
	}
	posts = append([]models.Post{post}, posts...)
	if err := s.writeJSON(keyLocalPosts, posts); err != nil {
		return models.Post{}, err
	}
	return post, nil
}

// UpdateLocalPost merges patch into the stored record. Unset patch fields
// are retained. Returns NOT_FOUND when the id is absent.
func (s *Store) UpdateLocalPost(id int64, patch PostPatch) (models.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	posts, err := s.localPosts()
	if err != nil {
		return models.Post{}, err
	}
	for i := range posts {
		if posts[i].ID != id {
			continue
		}
		if patch.UserID != nil {
			posts[i].UserID = *patch.UserID
		}
		if patch.Title != nil {
			posts[i].Title = *patch.Title
		}
		if patch.Body != nil {
			posts[i].Body = *patch.Body
		}
		if err := s.writeJSON(keyLocalPosts, posts); err != nil {
			return models.Post{}, err
		}
		return posts[i], nil
	}
	return models.Post{}, models.NewNotFoundError("local post", id)
}

// DeleteLocalPost removes the post if present. Deleting an absent id is a
// successful no-op.
func (s *Store) DeleteLocalPost(id int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	posts, err := s.localPosts()
	if err != nil {
		return false, err
	}
	kept := posts[:0]
	for _, p := range posts {
		if p.ID != id {
			kept = append(kept, p)
		}
	}
	if err := s.writeJSON(keyLocalPosts, kept); err != nil {
		return false, err
	}
	return true, nil
}
