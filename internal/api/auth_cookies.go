package api

import (
	"log"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/proappliance/quoteadmin/internal/models"
)

const (
	authCookiePurpose          = "auth"
	pendingInviteCookiePurpose = "pending_invite"
	pendingInviteCookieTTL     = time.Hour
)

func (handler *Handler) authenticateRequest(c *fiber.Ctx) (models.Session, bool) {
	token := handler.readSealedCookie(c, authCookieName, authCookiePurpose)
	if token == "" {
		return models.Session{}, false
	}
	session, err := handler.gate.Resolve(c.UserContext(), token)
	if err != nil || session.IsInvite() {
		return models.Session{}, false
	}
	return session, true
}

func (handler *Handler) setAuthCookie(c *fiber.Ctx, session models.Session) error {
	return handler.setSealedCookie(c, authCookieName, authCookiePurpose, session.AccessToken, session.ExpiresAt)
}

func (handler *Handler) clearAuthCookie(c *fiber.Ctx) {
	handler.expireCookie(c, authCookieName)
}

func (handler *Handler) readPendingInviteToken(c *fiber.Ctx) string {
	return handler.readSealedCookie(c, pendingInviteCookieName, pendingInviteCookiePurpose)
}

func (handler *Handler) setPendingInviteCookie(c *fiber.Ctx, token string) error {
	return handler.setSealedCookie(c, pendingInviteCookieName, pendingInviteCookiePurpose, token, handler.now().Add(pendingInviteCookieTTL))
}

func (handler *Handler) clearPendingInviteCookie(c *fiber.Ctx) {
	handler.expireCookie(c, pendingInviteCookieName)
}

func (handler *Handler) readSealedCookie(c *fiber.Ctx, name string, purpose string) string {
	raw := strings.TrimSpace(c.Cookies(name))
	if raw == "" {
		return ""
	}
	plaintext, err := handler.cookies.open(purpose, raw)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(plaintext))
}

func (handler *Handler) setSealedCookie(c *fiber.Ctx, name string, purpose string, value string, expires time.Time) error {
	sealed, err := handler.cookies.seal(purpose, []byte(value))
	if err != nil {
		log.Printf("seal %s cookie: %v", name, err)
		return err
	}
	c.Cookie(&fiber.Cookie{
		Name:     name,
		Value:    sealed,
		Path:     "/",
		HTTPOnly: true,
		Secure:   handler.cookieSecure,
		SameSite: "Lax",
		Expires:  expires,
	})
	return nil
}

func (handler *Handler) expireCookie(c *fiber.Ctx, name string) {
	c.Cookie(&fiber.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		HTTPOnly: true,
		Secure:   handler.cookieSecure,
		SameSite: "Lax",
		Expires:  time.Now().Add(-1 * time.Hour),
	})
}
