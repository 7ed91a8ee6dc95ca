package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/proappliance/quoteadmin/internal/models"
)

const (
	authCookieName          = "quoteadmin_auth"
	pendingInviteCookieName = "quoteadmin_invite"
	languageCookieName      = "quoteadmin_lang"
	flashCookieName         = "quoteadmin_flash"
	contextSessionKey       = "current_session"
	contextLanguageKey      = "current_language"
	contextMessagesKey      = "current_messages"
)

func currentSession(c *fiber.Ctx) (*models.Session, bool) {
	session, ok := c.Locals(contextSessionKey).(*models.Session)
	return session, ok
}

func currentLanguage(c *fiber.Ctx) string {
	language, _ := c.Locals(contextLanguageKey).(string)
	return language
}

func currentMessages(c *fiber.Ctx) map[string]string {
	messages, _ := c.Locals(contextMessagesKey).(map[string]string)
	if messages == nil {
		return map[string]string{}
	}
	return messages
}
