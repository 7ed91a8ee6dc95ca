package api

import (
	"errors"
	"log"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/proappliance/quoteadmin/internal/db"
	"github.com/proappliance/quoteadmin/internal/services"
)

func (handler *Handler) ShowQuote(c *fiber.Ctx) error {
	messages := currentMessages(c)
	quoteID := strings.TrimSpace(c.Params("id"))
	data := fiber.Map{
		"Title":     localizedPageTitle(messages, "meta.title.dashboard", "Quote"),
		"Flash":     handler.popFlashCookie(c),
		"RetryPath": "/quote/" + quoteID,
	}

	detail, err := handler.quotes.LoadDetail(c.UserContext(), quoteID)
	switch {
	case errors.Is(err, db.ErrQuoteNotFound):
		data["NotFound"] = true
		c.Status(fiber.StatusNotFound)
		return handler.render(c, "quote", data)
	case err != nil:
		log.Printf("load quote %s: %v", quoteID, err)
		data["LoadError"] = true
		c.Status(fiber.StatusInternalServerError)
		return handler.render(c, "quote", data)
	}

	fields := make(map[string]services.CopyField)
	for _, field := range services.QuoteCopyFields(detail.Quote) {
		fields[field.Key] = field
	}
	data["Title"] = translateMessagef(messages, "meta.title.quote", detail.Quote.ShortID())
	data["Detail"] = detail
	data["Fields"] = fields
	data["FullAddress"] = services.FullAddress(detail.Quote)
	return handler.render(c, "quote", data)
}

// ToggleEntered flips the entered flag from the value the page showed. On
// failure the shown value is kept and an error is reported.
func (handler *Handler) ToggleEntered(c *fiber.Ctx) error {
	messages := currentMessages(c)
	quoteID := strings.TrimSpace(c.Params("id"))
	current, err := strconv.ParseBool(strings.TrimSpace(c.FormValue("current")))
	if err != nil {
		if isHTMX(c) {
			return htmxError(c, fiber.StatusBadRequest, translateMessage(messages, "quote.entered.error"))
		}
		handler.setFlashCookie(c, FlashPayload{Error: translateMessage(messages, "quote.entered.error")})
		return redirectTo(c, "/quote/"+quoteID)
	}

	value, err := handler.quotes.ToggleEntered(c.UserContext(), quoteID, current)
	if err != nil {
		log.Printf("toggle entered for quote %s: %v", quoteID, err)
	}

	if isHTMX(c) {
		return handler.renderPartial(c, "entered_toggle_partial", fiber.Map{
			"QuoteID": quoteID,
			"Entered": value,
			"Failed":  err != nil,
		})
	}
	if err != nil {
		handler.setFlashCookie(c, FlashPayload{Error: translateMessage(messages, "quote.entered.error")})
	} else {
		handler.setFlashCookie(c, FlashPayload{Notice: translateMessage(messages, "quote.entered.notice")})
	}
	return c.Redirect("/quote/"+quoteID, fiber.StatusSeeOther)
}
