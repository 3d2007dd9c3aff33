package api

import (
	"errors"
	"log"
	"net/http"

	"github.com/labstack/echo/v4"

	"task-manager/internal/service"
)

// statusFor maps a service error to its HTTP status.
func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrUserNotFound), errors.Is(err, service.ErrTaskNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrNoTasksFound):
		return http.StatusNoContent
	case errors.Is(err, service.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, service.ErrInvalidInput), errors.Is(err, service.ErrRegistration):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes an empty body with the mapped status.
func respondError(c echo.Context, op string, err error) error {
	status := statusFor(err)
	switch {
	case status >= http.StatusInternalServerError:
		log.Printf("[error] %s: %v", op, err)
	case status != http.StatusNoContent:
		log.Printf("[warn] %s: %v", op, err)
	}
	return c.NoContent(status)
}

// errorHandler replaces echo's default so internal messages never reach clients.
func errorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	status := http.StatusInternalServerError
	var he *echo.HTTPError
	if errors.As(err, &he) {
		status = he.Code
	}
	if status >= http.StatusInternalServerError {
		log.Printf("[error] %s %s: %v", c.Request().Method, c.Request().URL.Path, err)
	}
	if err := c.NoContent(status); err != nil {
		log.Printf("[error] write response: %v", err)
	}
}
