package handlers

import (
	"fmt"
	"log"
	"path/filepath"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/example/loginportal/internal/config"
	"github.com/example/loginportal/internal/models"
	"github.com/example/loginportal/internal/session"
	"github.com/example/loginportal/internal/store"
)

// PageHandler renders the authenticated pages and handles image uploads.
type PageHandler struct {
	users    store.Users
	sessions *session.Manager
	cfg      *config.Config
}

// NewPageHandler constructs a PageHandler.
func NewPageHandler(users store.Users, sessions *session.Manager, cfg *config.Config) *PageHandler {
	return &PageHandler{users: users, sessions: sessions, cfg: cfg}
}

// Home renders the landing page for a logged-in user.
func (h *PageHandler) Home(c *fiber.Ctx) error {
	snap, _ := h.sessions.Get(c)
	return c.Render("home", fiber.Map{"Name": snap.Name})
}

// Profile renders the session snapshot. The snapshot is a point-in-time copy:
// admin edits do not show here until the user logs in again. Only the image
// path is fetched live, since it is not part of the snapshot.
func (h *PageHandler) Profile(c *fiber.Ctx) error {
	snap, _ := h.sessions.Get(c)

	imagePath := models.DefaultProfileImagePath
	if user, err := h.users.FindByEmailOrPhone(snap.Email, snap.Phone); err == nil && user != nil {
		imagePath = user.ProfileImagePath
	}

	return c.Render("profile", fiber.Map{
		"User":      snap,
		"ImagePath": imagePath,
	})
}

// UploadProfileImage stores a multipart image under the uploads directory
// with a timestamp-based filename and records its path on the user record.
func (h *PageHandler) UploadProfileImage(c *fiber.Ctx) error {
	snap, _ := h.sessions.Get(c)

	file, err := c.FormFile("image")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "missing image file")
	}

	filename := fmt.Sprintf("%d%s", time.Now().UnixNano(), filepath.Ext(file.Filename))
	if err := c.SaveFile(file, filepath.Join(h.cfg.UploadDir, filename)); err != nil {
		log.Printf("upload: save failed: %v", err)
		return fiber.NewError(fiber.StatusInternalServerError, "failed to save image")
	}

	user, err := h.users.FindByEmailOrPhone(snap.Email, snap.Phone)
	if err != nil || user == nil {
		log.Printf("upload: user lookup failed: %v", err)
		return fiber.NewError(fiber.StatusInternalServerError, "failed to save image")
	}

	if err := h.users.SetProfileImage(user.ID, "/uploads/"+filename); err != nil {
		log.Printf("upload: %v", err)
		return fiber.NewError(fiber.StatusInternalServerError, "failed to save image")
	}

	return c.Redirect("/profile")
}
