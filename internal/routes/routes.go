package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/example/loginportal/internal/config"
	"github.com/example/loginportal/internal/handlers"
	"github.com/example/loginportal/internal/middleware"
	"github.com/example/loginportal/internal/session"
	"github.com/example/loginportal/internal/store"
)

// Register wires up all HTTP routes.
func Register(app *fiber.App, users store.Users, sessions *session.Manager, cfg *config.Config) {
	authHandler := handlers.NewAuthHandler(users, sessions, cfg)
	pageHandler := handlers.NewPageHandler(users, sessions, cfg)
	adminHandler := handlers.NewAdminHandler(users)

	app.Static("/uploads", cfg.UploadDir)

	app.Get("/", authHandler.ShowLogin)
	app.Get("/signup", authHandler.ShowSignup)
	app.Post("/signup", authHandler.Signup)
	app.Post("/login", authHandler.Login)
	app.Get("/logout", authHandler.Logout)

	// Pages behind a session; unauthenticated requests bounce to the login form.
	pages := app.Group("", middleware.RequireUser(sessions))
	pages.Get("/home", pageHandler.Home)
	pages.Get("/profile", pageHandler.Profile)
	pages.Post("/profile/image", pageHandler.UploadProfileImage)
	pages.Get("/admin", adminHandler.Panel)

	// Admin mutations answer JSON, so the guard does too.
	admin := app.Group("", middleware.RequireUserJSON(sessions))
	admin.Put("/update-user/:id", adminHandler.UpdateUser)
	admin.Delete("/delete-user/:id", adminHandler.DeleteUser)
}
