package handlers

import (
	"fmt"
	"log"
	"strconv"
	"time"

	"admindash/export"
	"admindash/models"
	"admindash/overlay"
	"admindash/store"

	"github.com/gofiber/fiber/v2"
)

type postsResponse struct {
	State string        `json:"state"`
	Posts []models.Post `json:"posts"`
	Total int           `json:"total"`
	Error string        `json:"error,omitempty"`
}

func parsePostID(c *fiber.Ctx) (int64, error) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return 0, models.NewValidationError("post id must be an integer")
	}
	return id, nil
}

// ListPosts returns the working post set: local posts first, then upstream
// posts, optionally narrowed by the q search parameter.
func (h *Handlers) ListPosts(c *fiber.Ctx) error {
	view := ensure(c, h.Posts)
	names := overlay.UserNames(view.Data.Users)
	filtered := overlay.FilterPosts(view.Data.Posts, names, c.Query("q"))
	return c.JSON(postsResponse{
		State: string(view.Status),
		Posts: filtered,
		Total: len(filtered),
		Error: view.Err,
	})
}

// CreatePost authors a new local post. Local posts are the durable write
// path; the upstream mock write would be lost on the next fetch.
func (h *Handlers) CreatePost(c *fiber.Ctx) error {
	draft := new(store.PostDraft)
	if err := c.BodyParser(draft); err != nil {
		return models.RespondWithError(c, models.NewValidationError("invalid request body"))
	}
	if draft.Title == "" {
		return models.RespondWithError(c, models.NewValidationError("Title is required"))
	}
	if draft.Body == "" {
		return models.RespondWithError(c, models.NewValidationError("Content is required"))
	}
	if draft.UserID == 0 {
		return models.RespondWithError(c, models.NewValidationError("Please select a user"))
	}

	post, err := h.Store.CreateLocalPost(*draft)
	if err != nil {
		return models.RespondWithError(c, err)
	}

	h.Posts.Mutate(func(d *overlay.PostsData) {
		d.Posts = append([]models.Post{post}, d.Posts...)
	})
	return c.Status(fiber.StatusCreated).JSON(post)
}

// UpdatePost patches a post. Local posts are updated in the store; upstream
// posts get a session-scoped edit plus the non-durable mock write, and the
// edit is lost on the next load.
func (h *Handlers) UpdatePost(c *fiber.Ctx) error {
	id, err := parsePostID(c)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	patch := new(store.PostPatch)
	if err := c.BodyParser(patch); err != nil {
		return models.RespondWithError(c, models.NewValidationError("invalid request body"))
	}

	updated, err := h.Store.UpdateLocalPost(id, *patch)
	if err == nil {
		h.Posts.Mutate(func(d *overlay.PostsData) {
			d.Posts = overlay.ReplacePost(d.Posts, updated)
		})
		return c.JSON(updated)
	}
	if !models.HasCode(err, models.CodeNotFound) {
		return models.RespondWithError(c, err)
	}

	// Not a local post; edit the upstream record in the working set only.
	view := h.Posts.View()
	post, ok := overlay.FindPost(view.Data.Posts, id)
	if !ok {
		return models.RespondWithError(c, models.NewNotFoundError("post", id))
	}
	if patch.UserID != nil {
		post.UserID = *patch.UserID
	}
	if patch.Title != nil {
		post.Title = *patch.Title
	}
	if patch.Body != nil {
		post.Body = *patch.Body
	}

	// Mock write; the upstream acknowledges but does not retain it.
	if _, err := h.Remote.UpdatePost(c.Context(), post); err != nil {
		log.Printf("mock update for post %d not acknowledged: %v", id, err)
	}

	h.Posts.Mutate(func(d *overlay.PostsData) {
		d.Posts = overlay.ReplacePost(d.Posts, post)
	})
	return c.JSON(post)
}

// DeletePost removes a post: local posts from the store, upstream posts from
// the working set for the rest of the session.
func (h *Handlers) DeletePost(c *fiber.Ctx) error {
	id, err := parsePostID(c)
	if err != nil {
		return models.RespondWithError(c, err)
	}

	local, err := h.Store.ListLocalPosts()
	if err != nil {
		return models.RespondWithError(c, err)
	}
	if _, isLocal := overlay.FindPost(local, id); isLocal {
		if _, err := h.Store.DeleteLocalPost(id); err != nil {
			return models.RespondWithError(c, err)
		}
	} else {
		view := h.Posts.View()
		if _, ok := overlay.FindPost(view.Data.Posts, id); !ok {
			return models.RespondWithError(c, models.NewNotFoundError("post", id))
		}
		// Mock delete; acknowledged, not applied upstream.
		if err := h.Remote.DeletePost(c.Context(), id); err != nil {
			log.Printf("mock delete for post %d not acknowledged: %v", id, err)
		}
	}

	h.Posts.Mutate(func(d *overlay.PostsData) {
		d.Posts = overlay.RemovePost(d.Posts, id)
	})
	return c.JSON(fiber.Map{"message": "Post deleted successfully"})
}

// CommentCounts returns per-post comment totals from a single bulk fetch, for
// annotating the post list without one request per post.
func (h *Handlers) CommentCounts(c *fiber.Ctx) error {
	comments, err := h.Remote.Comments(c.Context())
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.JSON(fiber.Map{"counts": overlay.CountComments(comments)})
}

// PostComments fetches the upstream comments for one post.
func (h *Handlers) PostComments(c *fiber.Ctx) error {
	id, err := parsePostID(c)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	comments, err := h.Remote.CommentsForPost(c.Context(), id)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.JSON(fiber.Map{
		"comments": comments,
		"count":    len(comments),
	})
}

// ExportPostsCSV downloads the current (filtered) working post set.
func (h *Handlers) ExportPostsCSV(c *fiber.Ctx) error {
	view := ensure(c, h.Posts)
	names := overlay.UserNames(view.Data.Users)
	filtered := overlay.FilterPosts(view.Data.Posts, names, c.Query("q"))

	csvData, err := export.PostsCSV(filtered, names)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	filename := fmt.Sprintf("posts-%s.csv", time.Now().UTC().Format("2006-01-02"))
	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	return c.Send(csvData)
}

// RefreshPosts reloads the working post set on demand.
func (h *Handlers) RefreshPosts(c *fiber.Ctx) error {
	if err := h.Posts.Load(c.Context()); err != nil {
		return models.RespondWithError(c, err)
	}
	return h.ListPosts(c)
}
