package api

import (
	"errors"
	"log"
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/proappliance/quoteadmin/internal/storage"
)

// ServeObject streams a locally stored file for a signed URL. The token is
// the only credential, as with a presigned object URL.
func (handler *Handler) ServeObject(c *fiber.Ctx) error {
	if handler.objects == nil {
		return c.SendStatus(fiber.StatusNotFound)
	}

	grant, err := handler.objects.Verify(c.Query("token"))
	if errors.Is(err, storage.ErrSignedURLExpired) {
		return c.Status(fiber.StatusForbidden).SendString("signed url expired")
	}
	if err != nil {
		return c.Status(fiber.StatusForbidden).SendString("invalid signature")
	}

	fullPath, err := handler.objects.Resolve(grant)
	if errors.Is(err, storage.ErrInvalidSignature) {
		return c.Status(fiber.StatusForbidden).SendString("invalid signature")
	}
	if errors.Is(err, os.ErrNotExist) {
		return c.SendStatus(fiber.StatusNotFound)
	}
	if err != nil {
		log.Printf("resolve object %s: %v", grant.Path, err)
		return c.SendStatus(fiber.StatusInternalServerError)
	}

	if grant.DownloadName != "" {
		c.Attachment(grant.DownloadName)
	}
	return c.SendFile(fullPath)
}
