package handlers

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/example/loginportal/internal/models"
	"github.com/example/loginportal/internal/store"
)

// AdminHandler manages the admin panel and its user mutation endpoints.
type AdminHandler struct {
	users store.Users
}

// NewAdminHandler constructs AdminHandler.
func NewAdminHandler(users store.Users) *AdminHandler {
	return &AdminHandler{users: users}
}

// Panel lists every user. Records are projected through PublicUser so the
// password hash never reaches the template.
func (h *AdminHandler) Panel(c *fiber.Ctx) error {
	users, err := h.users.ListAll()
	if err != nil {
		log.Printf("admin: list users: %v", err)
		return c.Status(fiber.StatusInternalServerError).SendString("Server Error")
	}

	public := make([]models.PublicUser, len(users))
	for i, u := range users {
		public[i] = u.Public()
	}

	return c.Render("admin", fiber.Map{"Users": public})
}

type updateUserRequest struct {
	Name    string `json:"name" form:"name"`
	Email   string `json:"email" form:"email"`
	Phone   string `json:"phone" form:"phone"`
	Address string `json:"address" form:"address"`
}

// UpdateUser overwrites a user's name, email, phone and address.
func (h *AdminHandler) UpdateUser(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to update user",
		})
	}

	var req updateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to update user",
		})
	}

	update := store.UserUpdate{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Address: req.Address,
	}

	if err := h.users.UpdateByID(id, update); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "email or phone already registered",
			})
		}
		log.Printf("admin: update user %s: %v", id, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to update user",
		})
	}

	return c.JSON(fiber.Map{"message": "User updated successfully!"})
}

// DeleteUser removes a user record.
func (h *AdminHandler) DeleteUser(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to delete user",
		})
	}

	if err := h.users.DeleteByID(id); err != nil {
		log.Printf("admin: delete user %s: %v", id, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to delete user",
		})
	}

	return c.JSON(fiber.Map{"message": "User deleted successfully!"})
}
