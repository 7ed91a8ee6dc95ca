package api

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/filesystem"
	"github.com/proappliance/quoteadmin/internal/storage"
)

func RegisterRoutes(app *fiber.App, handler *Handler) {
	app.Use("/static", filesystem.New(filesystem.Config{
		Root:   http.FS(StaticFS()),
		MaxAge: 3600,
	}))

	app.Get("/healthz", handler.Health)
	app.Get("/favicon.ico", sendNoContent)
	app.Get("/lang/:lang", handler.SetLanguage)
	app.Get(storage.ObjectEndpoint, handler.ServeObject)

	app.Get("/", handler.ShowLoginPage)
	app.Post("/auth/login", handler.Login)
	app.Post("/auth/invite", handler.AcceptInvite)
	app.Post("/auth/logout", handler.Logout)

	app.Get("/dashboard", handler.AuthRequired, handler.ShowDashboard)
	app.Post("/quotes/archive-entered", handler.AuthRequired, handler.ArchiveEntered)
	app.Post("/quotes/seed", handler.AuthRequired, handler.SeedQuotes)

	app.Get("/quote/:id", handler.AuthRequired, handler.ShowQuote)
	app.Post("/quote/:id/entered", handler.AuthRequired, handler.ToggleEntered)
	app.Get("/quote/:id/files/:fileID/preview", handler.AuthRequired, handler.FilePreview)
}

func sendNoContent(c *fiber.Ctx) error {
	return c.SendStatus(fiber.StatusNoContent)
}
