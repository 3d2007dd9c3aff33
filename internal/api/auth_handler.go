package api

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"task-manager/internal/service"
)

// AuthHandler serves registration and login.
type AuthHandler struct {
	credentials *service.CredentialService
}

func NewAuthHandler(credentials *service.CredentialService) *AuthHandler {
	return &AuthHandler{credentials: credentials}
}

func (h *AuthHandler) Register(c echo.Context) error {
	var body registerBody
	if err := c.Bind(&body); err != nil {
		return c.NoContent(http.StatusBadRequest)
	}
	_, err := h.credentials.Register(c.Request().Context(), service.Registration{
		Username: body.Username,
		Email:    body.Email,
		Password: body.Password,
		Roles:    body.Roles,
	})
	if err != nil {
		return respondError(c, "register", err)
	}
	return c.NoContent(http.StatusOK)
}

// Login answers with the bearer token as a plain-text body. Unknown users
// and wrong passwords are indistinguishable to the client.
func (h *AuthHandler) Login(c echo.Context) error {
	var body loginBody
	if err := c.Bind(&body); err != nil {
		return c.NoContent(http.StatusBadRequest)
	}
	token, err := h.credentials.Login(c.Request().Context(), body.Username, body.Password)
	switch {
	case errors.Is(err, service.ErrUserNotFound), errors.Is(err, service.ErrInvalidCredentials):
		return c.NoContent(http.StatusUnauthorized)
	case err != nil:
		return respondError(c, "login", err)
	}
	return c.String(http.StatusOK, token)
}
