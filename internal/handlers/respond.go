package handlers

import "github.com/labstack/echo/v4"

// jsonError writes the uniform failure body.
func jsonError(c echo.Context, status int, message string) error {
	return c.JSON(status, map[string]any{
		"success": false,
		"error":   message,
	})
}
