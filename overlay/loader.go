package overlay

import (
	"context"

	"admindash/models"
	"admindash/remote"
	"admindash/store"

	"golang.org/x/sync/errgroup"
)

// PostsData is the posts page working set: the merged post list plus the
// users needed to resolve author names.
type PostsData struct {
	Posts []models.Post `json:"posts"`
	Users []models.User `json:"users"`
}

// UsersData is the users page working set.
type UsersData struct {
	Users []models.User `json:"users"`
}

// Loader produces the per-page working sets. Combined fetches are issued in
// parallel and joined; if any one fails the whole load fails and no partial
// result is surfaced.
type Loader struct {
	Remote *remote.Client
	Store  *store.Store
}

// LoadDashboard fetches users, posts and comments together and folds in the
// local collections to produce the statistics block.
func (l *Loader) LoadDashboard(ctx context.Context) (models.Stats, error) {
	var (
		users    []models.User
		posts    []models.Post
		comments []models.Comment
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		users, err = l.Remote.Users(gctx)
		return err
	})
	g.Go(func() (err error) {
		posts, err = l.Remote.Posts(gctx)
		return err
	})
	g.Go(func() (err error) {
		comments, err = l.Remote.Comments(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return models.Stats{}, err
	}

	local, err := l.Store.ListLocalPosts()
	if err != nil {
		return models.Stats{}, err
	}
	favs, err := l.Store.Favorites()
	if err != nil {
		return models.Stats{}, err
	}
	return BuildStats(users, posts, local, comments, favs), nil
}

// LoadPosts fetches posts and users together and merges in the local posts.
func (l *Loader) LoadPosts(ctx context.Context) (PostsData, error) {
	var (
		posts []models.Post
		users []models.User
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		posts, err = l.Remote.Posts(gctx)
		return err
	})
	g.Go(func() (err error) {
		users, err = l.Remote.Users(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return PostsData{}, err
	}

	local, err := l.Store.ListLocalPosts()
	if err != nil {
		return PostsData{}, err
	}
	return PostsData{Posts: MergePosts(local, posts), Users: users}, nil
}

// LoadUsers fetches the user working set.
func (l *Loader) LoadUsers(ctx context.Context) (UsersData, error) {
	users, err := l.Remote.Users(ctx)
	if err != nil {
		return UsersData{}, err
	}
	return UsersData{Users: users}, nil
}
