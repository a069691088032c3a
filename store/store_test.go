package store

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"admindash/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	return New(NewMemoryBlob())
}

func TestAddFavorite_SecondAddIsNoOp(t *testing.T) {
	s := newTestStore(t)

	added, err := s.AddFavorite(3)
	require.NoError(t, err)
	assert.True(t, added)

	added, err = s.AddFavorite(3)
	require.NoError(t, err)
	assert.False(t, added)

	favs, err := s.Favorites()
	require.NoError(t, err)
	assert.Equal(t, []int{3}, favs)
}

func TestRemoveFavorite_AbsentLeavesSetUnchanged(t *testing.T) {
	s := newTestStore(t)

	_, err := s.AddFavorite(1)
	require.NoError(t, err)

	removed, err := s.RemoveFavorite(99)
	require.NoError(t, err)
	assert.False(t, removed)

	favs, err := s.Favorites()
	require.NoError(t, err)
	assert.Equal(t, []int{1}, favs)
}

func TestRemoveFavorite_Present(t *testing.T) {
	s := newTestStore(t)

	_, err := s.AddFavorite(1)
	require.NoError(t, err)
	_, err = s.AddFavorite(2)
	require.NoError(t, err)

	removed, err := s.RemoveFavorite(1)
	require.NoError(t, err)
	assert.True(t, removed)

	fav, err := s.IsFavorite(1)
	require.NoError(t, err)
	assert.False(t, fav)

	fav, err = s.IsFavorite(2)
	require.NoError(t, err)
	assert.True(t, fav)
}

func TestCreateLocalPost_NewestFirstWithUniqueIDs(t *testing.T) {
	s := newTestStore(t)

	first, err := s.CreateLocalPost(PostDraft{UserID: 1, Title: "first", Body: "a"})
	require.NoError(t, err)
	second, err := s.CreateLocalPost(PostDraft{UserID: 1, Title: "second", Body: "b"})
	require.NoError(t, err)

	assert.NotEqual(t, first.ID, second.ID)
	assert.True(t, second.IsLocal)
	assert.NotEmpty(t, second.CreatedAt)

	posts, err := s.ListLocalPosts()
	require.NoError(t, err)
	require.Len(t, posts, 2)
	assert.Equal(t, second.ID, posts[0].ID)
	assert.Equal(t, first.ID, posts[1].ID)
}

func TestCreateLocalPost_SameMillisecondStaysMonotonic(t *testing.T) {
	s := newTestStore(t)
	frozen := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return frozen }

	first, err := s.CreateLocalPost(PostDraft{UserID: 1, Title: "a", Body: "a"})
	require.NoError(t, err)
	second, err := s.CreateLocalPost(PostDraft{UserID: 1, Title: "b", Body: "b"})
	require.NoError(t, err)

	assert.Equal(t, frozen.UnixMilli(), first.ID)
	assert.Equal(t, first.ID+1, second.ID)
}

func TestUpdateLocalPost_PatchRetainsUnsetFields(t *testing.T) {
	s := newTestStore(t)

	created, err := s.CreateLocalPost(PostDraft{UserID: 4, Title: "title", Body: "body"})
	require.NoError(t, err)

	newTitle := "changed"
	updated, err := s.UpdateLocalPost(created.ID, PostPatch{Title: &newTitle})
	require.NoError(t, err)

	assert.Equal(t, "changed", updated.Title)
	assert.Equal(t, "body", updated.Body)
	assert.Equal(t, 4, updated.UserID)
	assert.True(t, updated.IsLocal)
	assert.Equal(t, created.CreatedAt, updated.CreatedAt)
}

func TestUpdateLocalPost_NotFound(t *testing.T) {
	s := newTestStore(t)

	title := "x"
	_, err := s.UpdateLocalPost(12345, PostPatch{Title: &title})
	require.Error(t, err)
	assert.True(t, models.HasCode(err, models.CodeNotFound))
}

func TestDeleteLocalPost_IdempotentOnAbsentID(t *testing.T) {
	s := newTestStore(t)

	created, err := s.CreateLocalPost(PostDraft{UserID: 1, Title: "t", Body: "b"})
	require.NoError(t, err)

	ok, err := s.DeleteLocalPost(created.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	// Deleting again still reports success
	ok, err = s.DeleteLocalPost(created.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	posts, err := s.ListLocalPosts()
	require.NoError(t, err)
	assert.Empty(t, posts)
}

func TestImportSnapshot_MissingLocalPostsRejectedWithoutEffect(t *testing.T) {
	s := newTestStore(t)

	_, err := s.AddFavorite(7)
	require.NoError(t, err)
	created, err := s.CreateLocalPost(PostDraft{UserID: 7, Title: "keep", Body: "me"})
	require.NoError(t, err)

	err = s.ImportSnapshot([]byte(`{"favoriteUsers":[1,2]}`))
	require.Error(t, err)
	assert.True(t, models.HasCode(err, models.CodeInvalidFormat))

	// Existing contents untouched
	favs, err := s.Favorites()
	require.NoError(t, err)
	assert.Equal(t, []int{7}, favs)
	posts, err := s.ListLocalPosts()
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, created.ID, posts[0].ID)
}

// brokenBlob simulates a storage failure on the batch write path.
type brokenBlob struct {
	Blob
	failPutAll bool
}

func (b *brokenBlob) PutAll(entries map[string][]byte) error {
	if b.failPutAll {
		return errors.New("disk full")
	}
	return b.Blob.PutAll(entries)
}

func TestImportSnapshot_StorageFailureAppliesNeitherCollection(t *testing.T) {
	blob := &brokenBlob{Blob: NewMemoryBlob()}
	s := New(blob)

	_, err := s.AddFavorite(7)
	require.NoError(t, err)
	created, err := s.CreateLocalPost(PostDraft{UserID: 7, Title: "keep", Body: "me"})
	require.NoError(t, err)

	blob.failPutAll = true
	err = s.ImportSnapshot([]byte(`{"favoriteUsers":[1,2],"localPosts":[]}`))
	require.Error(t, err)

	blob.failPutAll = false
	favs, err := s.Favorites()
	require.NoError(t, err)
	assert.Equal(t, []int{7}, favs)
	posts, err := s.ListLocalPosts()
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, created.ID, posts[0].ID)
}

func TestImportSnapshot_MalformedJSONRejected(t *testing.T) {
	s := newTestStore(t)

	err := s.ImportSnapshot([]byte(`{"favoriteUsers":"nope","localPosts":[]}`))
	require.Error(t, err)
	assert.True(t, models.HasCode(err, models.CodeInvalidFormat))
}

func TestSnapshot_ExportImportRoundTrip(t *testing.T) {
	s := newTestStore(t)

	_, err := s.AddFavorite(2)
	require.NoError(t, err)
	_, err = s.AddFavorite(5)
	require.NoError(t, err)
	_, err = s.CreateLocalPost(PostDraft{UserID: 2, Title: "hello", Body: "world"})
	require.NoError(t, err)

	snap, err := s.ExportSnapshot()
	require.NoError(t, err)
	assert.Equal(t, models.SnapshotVersion, snap.Version)

	raw, err := json.Marshal(snap)
	require.NoError(t, err)

	// Import into a fresh store and compare
	fresh := newTestStore(t)
	require.NoError(t, fresh.ImportSnapshot(raw))

	favs, err := fresh.Favorites()
	require.NoError(t, err)
	assert.Equal(t, []int{2, 5}, favs)

	posts, err := fresh.ListLocalPosts()
	require.NoError(t, err)
	assert.Equal(t, snap.LocalPosts, posts)
}

func TestImportSnapshot_ReplacesExistingCollections(t *testing.T) {
	s := newTestStore(t)

	_, err := s.AddFavorite(1)
	require.NoError(t, err)
	_, err = s.CreateLocalPost(PostDraft{UserID: 1, Title: "old", Body: "old"})
	require.NoError(t, err)

	err = s.ImportSnapshot([]byte(`{"favoriteUsers":[9],"localPosts":[]}`))
	require.NoError(t, err)

	favs, err := s.Favorites()
	require.NoError(t, err)
	assert.Equal(t, []int{9}, favs)

	posts, err := s.ListLocalPosts()
	require.NoError(t, err)
	assert.Empty(t, posts)
}

func TestTheme_DefaultAndValidation(t *testing.T) {
	s := newTestStore(t)

	theme, err := s.Theme()
	require.NoError(t, err)
	assert.Equal(t, ThemeLight, theme)

	require.NoError(t, s.SetTheme(ThemeDark))
	theme, err = s.Theme()
	require.NoError(t, err)
	assert.Equal(t, ThemeDark, theme)

	err = s.SetTheme("sepia")
	require.Error(t, err)
	assert.True(t, models.HasCode(err, models.CodeValidation))
}
