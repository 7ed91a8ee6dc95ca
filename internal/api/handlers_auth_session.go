package api

import (
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/proappliance/quoteadmin/internal/services"
)

type credentialsInput struct {
	Email    string `form:"email"`
	Password string `form:"password"`
}

type inviteInput struct {
	Password        string `form:"password"`
	ConfirmPassword string `form:"confirm_password"`
}

func (handler *Handler) Login(c *fiber.Ctx) error {
	input := credentialsInput{}
	if err := c.BodyParser(&input); err != nil {
		handler.setFlashCookie(c, FlashPayload{AuthError: authErrorKey(services.ErrInvalidCredentials)})
		return redirectTo(c, "/")
	}

	session, err := handler.auth.SignInWithPassword(c.UserContext(), input.Email, input.Password)
	if err != nil {
		handler.setFlashCookie(c, FlashPayload{AuthError: authErrorKey(err), LoginEmail: input.Email})
		return redirectTo(c, "/")
	}

	if err := handler.setAuthCookie(c, session); err != nil {
		return c.Status(fiber.StatusInternalServerError).SendString("failed to create session")
	}
	handler.gate.Login(session)
	handler.clearPendingInviteCookie(c)
	return redirectTo(c, "/dashboard")
}

// AcceptInvite sets the password for the pending invite and signs the new
// staff member in with the rotated session.
func (handler *Handler) AcceptInvite(c *fiber.Ctx) error {
	const retryPath = "/?type=" + services.TokenTypeInvite

	token := handler.readPendingInviteToken(c)
	if token == "" {
		handler.setFlashCookie(c, FlashPayload{AuthError: "auth.error.invite_missing"})
		return redirectTo(c, "/")
	}

	input := inviteInput{}
	if err := c.BodyParser(&input); err != nil {
		handler.setFlashCookie(c, FlashPayload{AuthError: "auth.error.generic"})
		return redirectTo(c, retryPath)
	}
	if c.Request().PostArgs().Has("confirm_password") && input.ConfirmPassword != input.Password {
		handler.setFlashCookie(c, FlashPayload{AuthError: "auth.error.password_mismatch"})
		return redirectTo(c, retryPath)
	}

	rotated, err := handler.auth.UpdateUser(c.UserContext(), token, services.UserUpdate{
		Password:    input.Password,
		PasswordSet: true,
	})
	if err != nil {
		handler.setFlashCookie(c, FlashPayload{AuthError: authErrorKey(err)})
		return redirectTo(c, retryPath)
	}

	session, err := handler.gate.Resolve(c.UserContext(), rotated.AccessToken)
	if err != nil {
		log.Printf("resolve session after invite setup: %v", err)
		handler.clearPendingInviteCookie(c)
		handler.setFlashCookie(c, FlashPayload{AuthError: "auth.error.generic"})
		return redirectTo(c, "/")
	}
	if err := handler.setAuthCookie(c, session); err != nil {
		return c.Status(fiber.StatusInternalServerError).SendString("failed to create session")
	}
	handler.gate.Login(session)
	handler.clearPendingInviteCookie(c)
	return redirectTo(c, "/dashboard")
}

func (handler *Handler) Logout(c *fiber.Ctx) error {
	token := handler.readSealedCookie(c, authCookieName, authCookiePurpose)
	if strings.TrimSpace(token) != "" {
		if err := handler.gate.Logout(c.UserContext(), token); err != nil {
			log.Printf("sign out: %v", err)
		}
	}
	handler.clearAuthCookie(c)
	handler.clearPendingInviteCookie(c)
	return redirectTo(c, "/")
}
