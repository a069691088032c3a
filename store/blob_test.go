package store

import (
	"testing"

	"admindash/models"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupTestBlob creates a gorm blob over an in-memory SQLite database.
func setupTestBlob(t *testing.T) Blob {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.KVEntry{}))
	return NewGormBlob(db)
}

func TestGormBlob_GetMissingKey(t *testing.T) {
	b := setupTestBlob(t)

	_, ok, err := b.Get("favoriteUsers")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestGormBlob_PutOverwrites(t *testing.T) {
	b := setupTestBlob(t)

	require.NoError(t, b.Put("theme", []byte(`"light"`)))
	require.NoError(t, b.Put("theme", []byte(`"dark"`)))

	v, ok, err := b.Get("theme")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, `"dark"`, string(v))
}

func TestGormBlob_PutAllWritesEveryKey(t *testing.T) {
	b := setupTestBlob(t)

	require.NoError(t, b.Put("favoriteUsers", []byte(`[9]`)))
	require.NoError(t, b.PutAll(map[string][]byte{
		"favoriteUsers": []byte(`[1,2]`),
		"localPosts":    []byte(`[]`),
	}))

	v, ok, err := b.Get("favoriteUsers")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, `[1,2]`, string(v))

	v, ok, err = b.Get("localPosts")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, `[]`, string(v))
}

func TestStore_OnGormBlob(t *testing.T) {
	s := New(setupTestBlob(t))

	added, err := s.AddFavorite(4)
	require.NoError(t, err)
	require.True(t, added)

	post, err := s.CreateLocalPost(PostDraft{UserID: 4, Title: "persisted", Body: "through gorm"})
	require.NoError(t, err)

	// A second store over the same blob sees the persisted state
	s2 := New(s.blob)
	favs, err := s2.Favorites()
	require.NoError(t, err)
	require.Equal(t, []int{4}, favs)

	posts, err := s2.ListLocalPosts()
	require.NoError(t, err)
	require.Len(t, posts, 1)
	require.Equal(t, post.ID, posts[0].ID)
}
