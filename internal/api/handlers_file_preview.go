package api

import (
	"errors"
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/proappliance/quoteadmin/internal/db"
)

// FilePreview renders one file card. It is loaded lazily by the detail page.
func (handler *Handler) FilePreview(c *fiber.Ctx) error {
	quoteID := strings.TrimSpace(c.Params("id"))
	fileID, err := c.ParamsInt("fileID")
	if err != nil || fileID <= 0 {
		return htmxError(c, fiber.StatusNotFound, translateMessage(currentMessages(c), "not_found.title"))
	}

	file, err := handler.quotes.FindFile(c.UserContext(), quoteID, uint(fileID))
	if errors.Is(err, db.ErrFileNotFound) {
		return htmxError(c, fiber.StatusNotFound, translateMessage(currentMessages(c), "not_found.title"))
	}
	if err != nil {
		log.Printf("load file %d of quote %s: %v", fileID, quoteID, err)
		return htmxError(c, fiber.StatusInternalServerError, translateMessage(currentMessages(c), "quote.error.body"))
	}

	return handler.renderPartial(c, "file_preview_partial", fiber.Map{
		"Preview": handler.previews.Resolve(c.UserContext(), file),
	})
}
