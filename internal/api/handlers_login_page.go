package api

import (
	"errors"
	"log"
	"net/url"

	"github.com/gofiber/fiber/v2"
	"github.com/proappliance/quoteadmin/internal/services"
)

// ShowLoginPage renders the entry page and acts on invite or magic-link
// parameters in the query string.
func (handler *Handler) ShowLoginPage(c *fiber.Ctx) error {
	messages := currentMessages(c)
	entry := services.ResolveLoginEntry(services.LoginParams{
		ErrorCode:        c.Query("error_code"),
		ErrorDescription: c.Query("error_description"),
		AccessToken:      c.Query("access_token"),
		Type:             c.Query("type"),
		PendingToken:     handler.readPendingInviteToken(c),
	})

	switch entry.State {
	case services.LoginInviteExpired:
		handler.clearPendingInviteCookie(c)
		message := entry.Message
		if message == "" {
			message = translateMessage(messages, "login.expired.default")
		}
		return handler.renderLogin(c, entry, fiber.Map{"ErrorMessage": message})

	case services.LoginInviteSetup:
		return handler.showInviteSetup(c, entry)

	case services.LoginAutoLogin:
		session, err := handler.auth.GetSession(c.UserContext(), entry.AccessToken)
		if err != nil || session.IsInvite() {
			return handler.renderLogin(c, services.LoginEntry{State: services.LoginCredentials}, fiber.Map{
				"ErrorMessage": translateMessage(messages, "auth.error.link_invalid"),
			})
		}
		if err := handler.setAuthCookie(c, session); err != nil {
			return c.Status(fiber.StatusInternalServerError).SendString("failed to create session")
		}
		handler.gate.Login(session)
		return c.Redirect("/dashboard", fiber.StatusSeeOther)
	}

	if entry.Message == "" && c.Query("error_code") == "" {
		if _, ok := handler.authenticateRequest(c); ok {
			return c.Redirect("/dashboard", fiber.StatusSeeOther)
		}
	}

	flash := handler.popFlashCookie(c)
	errorMessage := entry.Message
	if flash.AuthError != "" {
		errorMessage = translateMessage(messages, flash.AuthError)
	}
	return handler.renderLogin(c, entry, fiber.Map{
		"ErrorMessage": errorMessage,
		"LoginEmail":   flash.LoginEmail,
	})
}

func (handler *Handler) showInviteSetup(c *fiber.Ctx, entry services.LoginEntry) error {
	messages := currentMessages(c)
	pending, err := handler.auth.GetSession(c.UserContext(), entry.AccessToken)
	switch {
	case errors.Is(err, services.ErrTokenExpired):
		handler.clearPendingInviteCookie(c)
		description := translateMessage(messages, "login.expired.default")
		return c.Redirect("/?error_code="+services.ErrorCodeOTPExpired+"&error_description="+url.QueryEscape(description), fiber.StatusSeeOther)
	case err != nil:
		if !errors.Is(err, services.ErrInvalidToken) {
			log.Printf("resolve invite session: %v", err)
		}
		handler.clearPendingInviteCookie(c)
		return handler.renderLogin(c, services.LoginEntry{State: services.LoginCredentials}, fiber.Map{
			"ErrorMessage": translateMessage(messages, "auth.error.invite_invalid"),
		})
	}

	if pending.PasswordSet {
		session, err := handler.auth.ExchangeInvite(c.UserContext(), entry.AccessToken)
		if err != nil {
			handler.clearPendingInviteCookie(c)
			return handler.renderLogin(c, services.LoginEntry{State: services.LoginCredentials}, fiber.Map{
				"ErrorMessage": translateMessage(messages, authErrorKey(err)),
			})
		}
		if err := handler.setAuthCookie(c, session); err != nil {
			return c.Status(fiber.StatusInternalServerError).SendString("failed to create session")
		}
		handler.gate.Login(session)
		handler.clearPendingInviteCookie(c)
		return c.Redirect("/dashboard", fiber.StatusSeeOther)
	}

	if err := handler.setPendingInviteCookie(c, entry.AccessToken); err != nil {
		return c.Status(fiber.StatusInternalServerError).SendString("failed to store invite")
	}
	flash := handler.popFlashCookie(c)
	errorMessage := ""
	if flash.AuthError != "" {
		errorMessage = translateMessage(messages, flash.AuthError)
	}
	return handler.renderLogin(c, entry, fiber.Map{
		"ErrorMessage": errorMessage,
		"InviteEmail":  pending.Email,
	})
}

func (handler *Handler) renderLogin(c *fiber.Ctx, entry services.LoginEntry, data fiber.Map) error {
	payload := fiber.Map{
		"Title":             localizedPageTitle(currentMessages(c), "meta.title.login", "Staff sign in"),
		"Entry":             entry,
		"MinPasswordLength": services.MinPasswordLength,
	}
	for key, value := range data {
		payload[key] = value
	}
	return handler.render(c, "login", payload)
}
