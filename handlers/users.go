package handlers

import (
	"fmt"
	"regexp"
	"strconv"
	"time"

	"admindash/export"
	"admindash/models"
	"admindash/overlay"

	"github.com/gofiber/fiber/v2"
)

// emailPattern matches the loose shape the edit form accepts: something,
// an @, something, a dot, something.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

type usersResponse struct {
	State string                `json:"state"`
	Users []overlay.WorkingUser `json:"users"`
	Total int                   `json:"total"`
	Error string                `json:"error,omitempty"`
}

type UpdateUserRequest struct {
	Name     string         `json:"name"`
	Username string         `json:"username"`
	Email    string         `json:"email"`
	Phone    string         `json:"phone"`
	Website  string         `json:"website"`
	Company  models.Company `json:"company"`
	Address  models.Address `json:"address"`
}

func parseUserID(c *fiber.Ctx) (int, error) {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return 0, models.NewValidationError("user id must be an integer")
	}
	return id, nil
}

func (h *Handlers) annotatedUsers(c *fiber.Ctx) (usersResponse, error) {
	view := ensure(c, h.Users)
	favs, err := h.Store.Favorites()
	if err != nil {
		return usersResponse{}, err
	}
	annotated := overlay.AnnotateUsers(view.Data.Users, favs)
	if c.QueryBool("favorites") {
		kept := annotated[:0]
		for _, u := range annotated {
			if u.IsFavorite {
				kept = append(kept, u)
			}
		}
		annotated = kept
	}
	return usersResponse{
		State: string(view.Status),
		Users: annotated,
		Total: len(annotated),
		Error: view.Err,
	}, nil
}

// ListUsers returns the working user set annotated with favorite membership.
// favorites=true narrows the list to favorites only.
func (h *Handlers) ListUsers(c *fiber.Ctx) error {
	resp, err := h.annotatedUsers(c)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.JSON(resp)
}

// UpdateUser applies a session-scoped edit to an upstream user. The edit
// lives in the working set only and is lost on the next load.
func (h *Handlers) UpdateUser(c *fiber.Ctx) error {
	id, err := parseUserID(c)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	req := new(UpdateUserRequest)
	if err := c.BodyParser(req); err != nil {
		return models.RespondWithError(c, models.NewValidationError("invalid request body"))
	}
	if req.Name == "" {
		return models.RespondWithError(c, models.NewValidationError("Name is required"))
	}
	if req.Username == "" {
		return models.RespondWithError(c, models.NewValidationError("Username is required"))
	}
	if req.Email == "" {
		return models.RespondWithError(c, models.NewValidationError("Email is required"))
	}
	if !emailPattern.MatchString(req.Email) {
		return models.RespondWithError(c, models.NewValidationError("Please enter a valid email address"))
	}

	view := h.Users.View()
	user, ok := overlay.FindUser(view.Data.Users, id)
	if !ok {
		return models.RespondWithError(c, models.NewNotFoundError("user", id))
	}

	user.Name = req.Name
	user.Username = req.Username
	user.Email = req.Email
	user.Phone = req.Phone
	user.Website = req.Website
	user.Company = req.Company
	user.Address = req.Address

	h.Users.Mutate(func(d *overlay.UsersData) {
		d.Users = overlay.ReplaceUser(d.Users, user)
	})
	return c.JSON(user)
}

// DeleteUser removes an upstream user from the working set for the rest of
// the session and drops it from the favorite set.
func (h *Handlers) DeleteUser(c *fiber.Ctx) error {
	id, err := parseUserID(c)
	if err != nil {
		return models.RespondWithError(c, err)
	}

	view := h.Users.View()
	if _, ok := overlay.FindUser(view.Data.Users, id); !ok {
		return models.RespondWithError(c, models.NewNotFoundError("user", id))
	}

	h.Users.Mutate(func(d *overlay.UsersData) {
		d.Users = overlay.RemoveUser(d.Users, id)
	})
	if _, err := h.Store.RemoveFavorite(id); err != nil {
		return models.RespondWithError(c, err)
	}
	return c.JSON(fiber.Map{"message": "User deleted successfully"})
}

// ToggleFavorite flips favorite membership for a user and reports the new
// state.
func (h *Handlers) ToggleFavorite(c *fiber.Ctx) error {
	id, err := parseUserID(c)
	if err != nil {
		return models.RespondWithError(c, err)
	}

	fav, err := h.Store.IsFavorite(id)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	if fav {
		_, err = h.Store.RemoveFavorite(id)
	} else {
		_, err = h.Store.AddFavorite(id)
	}
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.JSON(fiber.Map{
		"userId":   id,
		"favorite": !fav,
	})
}

// ExportUsersCSV downloads the annotated user set, optionally favorites only.
func (h *Handlers) ExportUsersCSV(c *fiber.Ctx) error {
	resp, err := h.annotatedUsers(c)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	csvData, err := export.UsersCSV(resp.Users)
	if err != nil {
		return models.RespondWithError(c, err)
	}

	scope := "all"
	if c.QueryBool("favorites") {
		scope = "favorites"
	}
	filename := fmt.Sprintf("users-%s-%s.csv", scope, time.Now().UTC().Format("2006-01-02"))
	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	return c.Send(csvData)
}

// RefreshUsers reloads the working user set on demand.
func (h *Handlers) RefreshUsers(c *fiber.Ctx) error {
	if err := h.Users.Load(c.Context()); err != nil {
		return models.RespondWithError(c, err)
	}
	return h.ListUsers(c)
}

// GetTheme returns the persisted theme.
func (h *Handlers) GetTheme(c *fiber.Ctx) error {
	theme, err := h.Store.Theme()
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.JSON(fiber.Map{"theme": theme})
}

// SetTheme persists the theme choice.
func (h *Handlers) SetTheme(c *fiber.Ctx) error {
	var req struct {
		Theme string `json:"theme"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, models.NewValidationError("invalid request body"))
	}
	if err := h.Store.SetTheme(req.Theme); err != nil {
		return models.RespondWithError(c, err)
	}
	return c.JSON(fiber.Map{"theme": req.Theme})
}
