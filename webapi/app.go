// Package webapi assembles the fiber application.
package webapi

import (
	"log/slog"

	accountsvc "github.com/aitlahcen/comptes/pkg/service/account"
	"github.com/aitlahcen/comptes/webapi/account"
	"github.com/gofiber/fiber/v2"
)

// New builds the fiber app with all routes registered.
func New(svc *accountsvc.Service, logger *slog.Logger) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName: "comptes",
	})

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	account.Routes(app, svc, logger)
	return app
}
