package routes

import (
	"admindash/handlers"

	"github.com/gofiber/fiber/v2"
)

func Setup(app *fiber.App, h *handlers.Handlers) {
	api := app.Group("/api")

	// Health check
	api.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "Admin dashboard ready",
			"version": "1.0.0",
		})
	})

	// Dashboard routes
	dashboard := api.Group("/dashboard")
	dashboard.Get("/stats", h.DashboardStats)
	dashboard.Post("/refresh", h.RefreshDashboard)
	dashboard.Get("/export", h.ExportDashboard)
	dashboard.Post("/import", h.ImportDashboard)

	// Post routes; /export registered before /:id so it is not captured
	posts := api.Group("/posts")
	posts.Get("/", h.ListPosts)
	posts.Get("/export", h.ExportPostsCSV)
	posts.Post("/refresh", h.RefreshPosts)
	posts.Get("/comment-counts", h.CommentCounts)
	posts.Get("/:id/comments", h.PostComments)
	posts.Post("/", h.CreatePost)
	posts.Put("/:id", h.UpdatePost)
	posts.Delete("/:id", h.DeletePost)

	// User routes
	users := api.Group("/users")
	users.Get("/", h.ListUsers)
	users.Get("/export", h.ExportUsersCSV)
	users.Post("/refresh", h.RefreshUsers)
	users.Post("/:id/favorite", h.ToggleFavorite)
	users.Put("/:id", h.UpdateUser)
	users.Delete("/:id", h.DeleteUser)

	// Theme preference
	api.Get("/theme", h.GetTheme)
	api.Put("/theme", h.SetTheme)
}
