package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
)

// Success renders the shared response envelope: message, success flag, data.
func Success(c *fiber.Ctx, status int, message string, data any) error {
	return c.Status(status).JSON(fiber.Map{
		"message": message,
		"success": true,
		"data":    data,
	})
}

// OK renders a 200 success envelope.
func OK(c *fiber.Ctx, message string, data any) error {
	return Success(c, http.StatusOK, message, data)
}

// Created renders a 201 success envelope.
func Created(c *fiber.Ctx, message string, data any) error {
	return Success(c, http.StatusCreated, message, data)
}
