package main

import (
	"log"
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/encryptcookie"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/example/loginportal/internal/config"
	"github.com/example/loginportal/internal/database"
	"github.com/example/loginportal/internal/routes"
	"github.com/example/loginportal/internal/session"
	"github.com/example/loginportal/internal/store"
	"github.com/example/loginportal/web"
)

func main() {
	cfg := config.Load()
	db := database.Connect(cfg.DatabaseURL)

	if err := os.MkdirAll(cfg.UploadDir, 0o755); err != nil {
		log.Fatalf("failed to create upload directory: %v", err)
	}

	app := fiber.New(fiber.Config{
		AppName: "Login Portal",
		Views:   web.Engine(),
	})

	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(encryptcookie.New(encryptcookie.Config{
		Key: cfg.CookieSecret,
	}))

	users := store.NewUserStore(db)
	sessions := session.NewManager(cfg.SessionTTL, cfg.CookieSecure, nil)

	routes.Register(app, users, sessions, cfg)

	log.Printf("Starting server on :%s", cfg.AppPort)
	if err := app.Listen(":" + cfg.AppPort); err != nil {
		log.Fatalf("fiber.Listen error: %v", err)
	}
}
