package handlers

import (
	"runtime/debug"

	"github.com/gofiber/fiber/v2"
)

// HandleHealth is the liveness probe polled by the web backend.
// GET /
func HandleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "ok",
		"message": "Cafeteria analytics service is running (with DB + AI)",
	})
}

// HandleVersion dumps the embedded build information.
// GET /version
func HandleVersion(c *fiber.Ctx) error {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return c.Status(fiber.StatusInternalServerError).SendString("no build information available")
	}
	c.Set(fiber.HeaderContentType, fiber.MIMETextHTML)
	return c.SendString("<pre>\n" + info.String() + "</pre>\n")
}
