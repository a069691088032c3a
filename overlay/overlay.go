// Package overlay combines upstream records with locally stored ones into
// the working sets the page controllers render.
package overlay

import (
	"strings"

	"admindash/models"
)

// WorkingUser is an upstream user annotated with favorite membership. The
// flag is derived at render time, never stored on the entity.
type WorkingUser struct {
	models.User
	IsFavorite bool `json:"isFavorite"`
}

// MergePosts builds the working post set: local posts in store order
// followed by remote posts in fetch order. No deduplication pass - an id
// colliding across the two domains appears twice.
func MergePosts(local, remote []models.Post) []models.Post {
	merged := make([]models.Post, 0, len(local)+len(remote))
	merged = append(merged, local...)
	merged = append(merged, remote...)
	return merged
}

// AnnotateUsers builds the working user set in fetch order.
func AnnotateUsers(users []models.User, favorites []int) []WorkingUser {
	favSet := make(map[int]struct{}, len(favorites))
	for _, id := range favorites {
		favSet[id] = struct{}{}
	}
	annotated := make([]WorkingUser, 0, len(users))
	for _, u := range users {
		_, fav := favSet[u.ID]
		annotated = append(annotated, WorkingUser{User: u, IsFavorite: fav})
	}
	return annotated
}

// UserNames indexes user display names by id.
func UserNames(users []models.User) map[int]string {
	names := make(map[int]string, len(users))
	for _, u := range users {
		names[u.ID] = u.Name
	}
	return names
}

// AuthorName resolves a post author, falling back for unknown ids.
func AuthorName(names map[int]string, userID int) string {
	if name, ok := names[userID]; ok {
		return name
	}
	return "Unknown User"
}

// FilterPosts applies the search predicate: case-insensitive substring match
// over title, body and author name. An empty query passes every record.
func FilterPosts(posts []models.Post, names map[int]string, query string) []models.Post {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return posts
	}
	filtered := make([]models.Post, 0, len(posts))
	for _, p := range posts {
		if strings.Contains(strings.ToLower(p.Title), query) ||
			strings.Contains(strings.ToLower(p.Body), query) ||
			strings.Contains(strings.ToLower(AuthorName(names, p.UserID)), query) {
			filtered = append(filtered, p)
		}
	}
	return filtered
}

// BuildStats recomputes the dashboard statistics from scratch.
func BuildStats(users []models.User, remotePosts, localPosts []models.Post, comments []models.Comment, favorites []int) models.Stats {
	return models.Stats{
		TotalUsers:    len(users),
		TotalPosts:    len(remotePosts) + len(localPosts),
		TotalComments: len(comments),
		FavoriteUsers: len(favorites),
	}
}

// CountComments tallies comments per post id.
func CountComments(comments []models.Comment) map[int64]int {
	counts := make(map[int64]int)
	for _, c := range comments {
		counts[c.PostID]++
	}
	return counts
}

// ReplacePost returns a copy of posts with the matching id replaced.
// Working-set mutators copy rather than edit in place so concurrent readers
// never observe a half-applied edit.
func ReplacePost(posts []models.Post, updated models.Post) []models.Post {
	out := make([]models.Post, len(posts))
	copy(out, posts)
	for i := range out {
		if out[i].ID == updated.ID {
			out[i] = updated
		}
	}
	return out
}

// RemovePost returns a copy of posts without the matching id.
func RemovePost(posts []models.Post, id int64) []models.Post {
	out := make([]models.Post, 0, len(posts))
	for _, p := range posts {
		if p.ID != id {
			out = append(out, p)
		}
	}
	return out
}

// FindPost looks up a post in the working set.
func FindPost(posts []models.Post, id int64) (models.Post, bool) {
	for _, p := range posts {
		if p.ID == id {
			return p, true
		}
	}
	return models.Post{}, false
}

// ReplaceUser returns a copy of users with the matching id replaced.
func ReplaceUser(users []models.User, updated models.User) []models.User {
	out := make([]models.User, len(users))
	copy(out, users)
	for i := range out {
		if out[i].ID == updated.ID {
			out[i] = updated
		}
	}
	return out
}

// RemoveUser returns a copy of users without the matching id.
func RemoveUser(users []models.User, id int) []models.User {
	out := make([]models.User, 0, len(users))
	for _, u := range users {
		if u.ID != id {
			out = append(out, u)
		}
	}
	return out
}

// FindUser looks up a user in the working set.
func FindUser(users []models.User, id int) (models.User, bool) {
	for _, u := range users {
		if u.ID == id {
			return u, true
		}
	}
	return models.User{}, false
}
