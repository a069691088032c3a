package models

// Post covers both upstream posts and locally authored ones. Local posts set
// IsLocal and CreatedAt and carry a wall-clock-millis ID, so the ID field is
// wide enough for both domains. The two ID domains are disjoint in practice
// but not structurally guaranteed to be; a collision is not deduplicated.
type Post struct {
	ID        int64  `json:"id"`
	UserID    int    `json:"userId"`
	Title     string `json:"title"`
	Body      string `json:"body"`
	IsLocal   bool   `json:"isLocal,omitempty"`
	CreatedAt string `json:"createdAt,omitempty"`
}
