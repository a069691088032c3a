package models

// SnapshotVersion is written into every export and accepted on import.
const SnapshotVersion = "1.0"

// Snapshot is the dashboard export payload: the full locally owned state
// (favorites and local posts) plus export metadata.
type Snapshot struct {
	FavoriteUsers []int  `json:"favoriteUsers"`
	LocalPosts    []Post `json:"localPosts"`
	ExportDate    string `json:"exportDate"`
	Version       string `json:"version"`
}

// Stats is the dashboard statistics block, recomputed from scratch on every
// load. Total posts counts upstream and local posts together.
type Stats struct {
	TotalUsers    int `json:"totalUsers"`
	TotalPosts    int `json:"totalPosts"`
	TotalComments int `json:"totalComments"`
	FavoriteUsers int `json:"favoriteUsers"`
}
