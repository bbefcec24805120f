package response

import (
	"github.com/gofiber/fiber/v2"
)

// Body is the standardized JSON shape for all endpoints.
type Body struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
	Details interface{} `json:"details,omitempty"`
}

// Success sends 200 OK with the standard shape.
func Success(c *fiber.Ctx, message string, data interface{}) error {
	return c.Status(fiber.StatusOK).JSON(Body{Success: true, Message: message, Data: data})
}

// Created sends 201 Created with the standard shape.
func Created(c *fiber.Ctx, message string, data interface{}) error {
	return c.Status(fiber.StatusCreated).JSON(Body{Success: true, Message: message, Data: data})
}

// Error sends an error response with the standard shape.
func Error(c *fiber.Ctx, message string, statusCode int) error {
	return c.Status(statusCode).JSON(Body{Success: false, Message: message})
}

// ErrorWithDetails sends an error response carrying extra detail (dev mode only
// for internal errors; callers decide).
func ErrorWithDetails(c *fiber.Ctx, message string, statusCode int, details interface{}) error {
	return c.Status(statusCode).JSON(Body{Success: false, Message: message, Details: details})
}

// Unauthorized sends 401 with the standard shape.
func Unauthorized(c *fiber.Ctx, message string) error {
	return Error(c, message, fiber.StatusUnauthorized)
}
