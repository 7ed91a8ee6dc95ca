package api

import (
	"github.com/gofiber/fiber/v2"
)

// AuthRequired lets a request through only with a live regular session.
// Pages and partials alike redirect to the login page otherwise.
func (handler *Handler) AuthRequired(c *fiber.Ctx) error {
	session, ok := handler.authenticateRequest(c)
	if !ok {
		handler.clearAuthCookie(c)
		if isHTMX(c) {
			c.Set("HX-Redirect", "/")
			return c.SendStatus(fiber.StatusUnauthorized)
		}
		return c.Redirect("/", fiber.StatusSeeOther)
	}

	c.Locals(contextSessionKey, &session)
	return c.Next()
}
