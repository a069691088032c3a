// Package remote wraps the upstream read-mostly REST API. Every call is a
// single attempt; transport failures and non-2xx responses come back as
// TRANSPORT_ERROR. The upstream write endpoints are a mock - they answer
// success but do not durably apply the mutation, so durable writes belong in
// the local store, not here.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"admindash/cache"
	"admindash/models"
)

// Client is a stateless request wrapper around the upstream endpoints.
type Client struct {
	baseURL  string
	http     *http.Client
	cacheTTL time.Duration
}

// NewClient builds a client for the given base URL. cacheTTL > 0 enables
// best-effort read caching through the shared Redis client.
func NewClient(baseURL string, timeout, cacheTTL time.Duration) *Client {
	return &Client{
		baseURL:  baseURL,
		http:     &http.Client{Timeout: timeout},
		cacheTTL: cacheTTL,
	}
}

func (c *Client) do(ctx context.Context, method, path string, body, dest any) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return models.NewTransportError(err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return models.NewTransportError(err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return models.NewTransportError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return models.NewTransportError(fmt.Errorf("%s %s: unexpected status %d", method, path, resp.StatusCode))
	}
	if dest == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return models.NewTransportError(err)
	}
	return nil
}

// get fetches path into dest, going through the cache when enabled.
func (c *Client) get(ctx context.Context, path string, dest any) error {
	if c.cacheTTL <= 0 {
		return c.do(ctx, http.MethodGet, path, nil, dest)
	}
	return cache.CacheAside(ctx, "remote:"+path, dest, c.cacheTTL, func() error {
		return c.do(ctx, http.MethodGet, path, nil, dest)
	})
}

// Users fetches all upstream users.
func (c *Client) Users(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if err := c.get(ctx, "/users", &users); err != nil {
		return nil, err
	}
	return users, nil
}

// User fetches a single user by id.
func (c *Client) User(ctx context.Context, id int) (models.User, error) {
	var user models.User
	if err := c.get(ctx, fmt.Sprintf("/users/%d", id), &user); err != nil {
		return models.User{}, err
	}
	return user, nil
}

// Posts fetches all upstream posts in server order.
func (c *Client) Posts(ctx context.Context) ([]models.Post, error) {
	var posts []models.Post
	if err := c.get(ctx, "/posts", &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

// Post fetches a single post by id.
func (c *Client) Post(ctx context.Context, id int64) (models.Post, error) {
	var post models.Post
	if err := c.get(ctx, fmt.Sprintf("/posts/%d", id), &post); err != nil {
		return models.Post{}, err
	}
	return post, nil
}

// Comments fetches all upstream comments.
func (c *Client) Comments(ctx context.Context) ([]models.Comment, error) {
	var comments []models.Comment
	if err := c.get(ctx, "/comments", &comments); err != nil {
		return nil, err
	}
	return comments, nil
}

// CommentsForPost fetches the comments attached to one post.
func (c *Client) CommentsForPost(ctx context.Context, postID int64) ([]models.Comment, error) {
	var comments []models.Comment
	if err := c.get(ctx, fmt.Sprintf("/comments?postId=%d", postID), &comments); err != nil {
		return nil, err
	}
	return comments, nil
}

// CreatePost issues the mock create. The response reports success but the
// upstream does not retain the post.
func (c *Client) CreatePost(ctx context.Context, post models.Post) (models.Post, error) {
	var created models.Post
	if err := c.do(ctx, http.MethodPost, "/posts", post, &created); err != nil {
		return models.Post{}, err
	}
	return created, nil
}

// UpdatePost issues the mock update; non-durable, same as CreatePost.
func (c *Client) UpdatePost(ctx context.Context, post models.Post) (models.Post, error) {
	var updated models.Post
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/posts/%d", post.ID), post, &updated); err != nil {
		return models.Post{}, err
	}
	return updated, nil
}

// DeletePost issues the mock delete; non-durable.
func (c *Client) DeletePost(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/posts/%d", id), nil, nil)
}
