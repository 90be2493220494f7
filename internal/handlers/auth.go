package handlers

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"

	"github.com/example/loginportal/internal/config"
	"github.com/example/loginportal/internal/models"
	"github.com/example/loginportal/internal/session"
	"github.com/example/loginportal/internal/store"
	"github.com/example/loginportal/internal/utils"
)

// AuthHandler bundles dependencies for signup, login and logout.
type AuthHandler struct {
	users    store.Users
	sessions *session.Manager
	cfg      *config.Config
}

// NewAuthHandler constructs an AuthHandler.
func NewAuthHandler(users store.Users, sessions *session.Manager, cfg *config.Config) *AuthHandler {
	return &AuthHandler{users: users, sessions: sessions, cfg: cfg}
}

// ShowLogin renders the login form.
func (h *AuthHandler) ShowLogin(c *fiber.Ctx) error {
	return c.Render("login", fiber.Map{})
}

// ShowSignup renders the signup form.
func (h *AuthHandler) ShowSignup(c *fiber.Ctx) error {
	return c.Render("signup", fiber.Map{})
}

type signupRequest struct {
	Name     string `json:"name" form:"name"`
	Email    string `json:"email" form:"email"`
	Phone    string `json:"phone" form:"phone"`
	Address  string `json:"address" form:"address"`
	Password string `json:"password" form:"password"`
}

// Signup registers a new account and logs it in.
func (h *AuthHandler) Signup(c *fiber.Ctx) error {
	var req signupRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if req.Password == "" {
		return c.SendString("Password is required.")
	}

	passwordHash, err := utils.HashPassword(req.Password, h.cfg.BcryptCost)
	if err != nil {
		log.Printf("signup: hashing failed: %v", err)
		return c.SendString("Error during signup.")
	}

	user := models.User{
		Name:         req.Name,
		PasswordHash: passwordHash,
		Email:        req.Email,
		Phone:        req.Phone,
		Address:      req.Address,
	}

	if err := h.users.Create(&user); err != nil {
		var vErr *models.ValidationError
		switch {
		case errors.Is(err, store.ErrDuplicate):
			return c.SendString("Email or phone already registered. Please use another.")
		case errors.As(err, &vErr):
			return c.SendString("Invalid " + vErr.Field + ": " + vErr.Reason + ".")
		default:
			log.Printf("signup: %v", err)
			return c.SendString("Error during signup.")
		}
	}

	snap := session.Snapshot{
		Name:    user.Name,
		Email:   user.Email,
		Phone:   user.Phone,
		Address: user.Address,
	}
	if err := h.sessions.Create(c, snap); err != nil {
		log.Printf("signup: session create failed: %v", err)
		return c.SendString("Error during signup.")
	}

	return c.Status(fiber.StatusCreated).Render("home", fiber.Map{"Name": user.Name})
}

type loginRequest struct {
	Name     string `json:"name" form:"name"`
	Password string `json:"password" form:"password"`
}

// Login authenticates an existing user by name and password.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	user, err := h.users.FindByName(req.Name)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return c.SendString("User not found. Please sign up.")
		}
		log.Printf("login: %v", err)
		return c.SendString("Login failed due to an error.")
	}

	match, err := utils.CheckPassword(user.PasswordHash, req.Password)
	if err != nil {
		log.Printf("login: corrupt hash for user %s: %v", user.ID, err)
		return c.SendString("Login failed due to an error.")
	}
	if !match {
		return c.SendString("Incorrect password.")
	}

	snap := session.Snapshot{
		Name:    user.Name,
		Email:   user.Email,
		Phone:   user.Phone,
		Address: user.Address,
	}
	if err := h.sessions.Create(c, snap); err != nil {
		log.Printf("login: session create failed: %v", err)
		return c.SendString("Login failed due to an error.")
	}

	return c.Status(fiber.StatusCreated).Render("home", fiber.Map{"Name": user.Name})
}

// Logout destroys the session and returns to the login page.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	if err := h.sessions.Destroy(c); err != nil {
		log.Printf("logout: %v", err)
		return c.SendString("Error logging out.")
	}
	return c.Redirect("/")
}
