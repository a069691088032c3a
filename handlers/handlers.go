// Package handlers holds the page controllers. Each page (dashboard, users,
// posts) owns one explicit state instance; there is no package-level mutable
// working set.
package handlers

import (
	"errors"
	"log"

	"admindash/models"
	"admindash/overlay"
	"admindash/pages"
	"admindash/remote"
	"admindash/store"

	"github.com/gofiber/fiber/v2"
)

type Handlers struct {
	Store  *store.Store
	Remote *remote.Client

	Dashboard *pages.Page[models.Stats]
	Users     *pages.Page[overlay.UsersData]
	Posts     *pages.Page[overlay.PostsData]
}

// New wires the three pages onto the shared store and remote client.
func New(st *store.Store, rc *remote.Client) *Handlers {
	loader := &overlay.Loader{Remote: rc, Store: st}
	return &Handlers{
		Store:     st,
		Remote:    rc,
		Dashboard: pages.New("dashboard", loader.LoadDashboard),
		Users:     pages.New("users", loader.LoadUsers),
		Posts:     pages.New("posts", loader.LoadPosts),
	}
}

// ensure gives a page still idle on first request its initial load. A load
// failure is recorded on the page state, not surfaced here; the caller
// renders the Failed view (zero-valued data) instead.
func ensure[T any](c *fiber.Ctx, p *pages.Page[T]) pages.View[T] {
	if p.View().Status == pages.StatusIdle {
		_ = p.Load(c.Context())
	}
	return p.View()
}

// ErrorHandler is the process-wide catch-all: uncaught handler errors and
// recovered panics become a generic notification instead of taking the
// service down.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return c.Status(fiberErr.Code).JSON(models.ErrorResponse{Error: fiberErr.Message})
	}
	log.Printf("unhandled error on %s %s: %v", c.Method(), c.Path(), err)
	return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse{
		Error: "An unexpected error occurred",
	})
}
