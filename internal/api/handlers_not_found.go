package api

import (
	"github.com/gofiber/fiber/v2"
)

func (handler *Handler) NotFound(c *fiber.Ctx) error {
	messages := currentMessages(c)
	if isHTMX(c) {
		return htmxError(c, fiber.StatusNotFound, translateMessage(messages, "not_found.title"))
	}

	primaryPath := "/"
	primaryLabelKey := "not_found.action_login"
	if session, ok := handler.authenticateRequest(c); ok {
		c.Locals(contextSessionKey, &session)
		primaryPath = "/dashboard"
		primaryLabelKey = "not_found.action_dashboard"
	}

	c.Status(fiber.StatusNotFound)
	return handler.render(c, "not_found", fiber.Map{
		"Title":           localizedPageTitle(messages, "meta.title.not_found", "Page not found"),
		"PrimaryPath":     primaryPath,
		"PrimaryLabelKey": primaryLabelKey,
	})
}
