package models

// Comment mirrors the upstream wire format.
type Comment struct {
	ID     int    `json:"id"`
	PostID int64  `json:"postId"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Body   string `json:"body"`
}
