package handlers

import "github.com/gofiber/fiber/v2"

// jsonError is the single error surface: every failure leaves the boundary as
// {"error": "..."} with a 4xx/5xx status. Internal detail stays in the logs.
func jsonError(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(fiber.Map{"error": msg})
}

func jsonMessage(c *fiber.Ctx, msg string) error {
	return c.JSON(fiber.Map{"message": msg})
}
