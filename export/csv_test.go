package export

import (
	"strings"
	"testing"

	"admindash/models"
	"admindash/overlay"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostsCSV_ColumnOrderAndQuoting(t *testing.T) {
	posts := []models.Post{
		{ID: 1, UserID: 1, Title: `He said "hi"`, Body: "a, b", IsLocal: true, CreatedAt: "2024-06-01T12:00:00Z"},
		{ID: 2, UserID: 2, Title: "plain", Body: "text"},
	}
	names := map[int]string{1: "Alice"}

	out, err := PostsCSV(posts, names)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(out)), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "ID,Title,Content,User,Type,Created Date", lines[0])

	// Embedded quotes doubled, embedded comma quoted
	assert.Contains(t, lines[1], `"He said ""hi"""`)
	assert.Contains(t, lines[1], `"a, b"`)
	assert.Contains(t, lines[1], "Local")
	assert.Contains(t, lines[1], "Alice")

	// Remote post with no author resolution and no creation date
	assert.Contains(t, lines[2], "API")
	assert.Contains(t, lines[2], "Unknown User")
	assert.Contains(t, lines[2], "Unknown")
}

func TestUsersCSV_ColumnOrderAndFavoriteFlag(t *testing.T) {
	users := []overlay.WorkingUser{
		{
			User: models.User{
				ID: 1, Name: "Leanne Graham", Username: "Bret", Email: "l@g.test",
				Phone: "1-770-736-8031", Website: "hildegard.org",
				Company: models.Company{Name: "Romaguera-Crona"},
				Address: models.Address{Street: "Kulas Light", City: "Gwenborough", Zipcode: "92998-3874"},
			},
			IsFavorite: true,
		},
		{User: models.User{ID: 2, Name: "Ervin Howell"}},
	}

	out, err := UsersCSV(users)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(out)), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "ID,Name,Username,Email,Phone,Website,Company,Street,City,Zipcode,Is Favorite", lines[0])
	assert.True(t, strings.HasSuffix(lines[1], ",Yes"))
	assert.True(t, strings.HasSuffix(lines[2], ",No"))
}

func TestPostsCSV_EmptySetStillHasHeader(t *testing.T) {
	out, err := PostsCSV(nil, nil)
	require.NoError(t, err)
	assert.Equal(t, "ID,Title,Content,User,Type,Created Date", strings.TrimSpace(string(out)))
}
