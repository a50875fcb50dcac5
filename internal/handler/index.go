package handler

import (
	_ "embed"

	"github.com/gofiber/fiber/v3"
)

//go:embed web/index.html
var indexHTML []byte

// Index handles GET / and serves the dashboard page.
func Index(c fiber.Ctx) error {
	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.Send(indexHTML)
}
