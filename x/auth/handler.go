package auth

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/voidarchive/archive/core"
)

// Handler is the interface for handling account HTTP requests
type Handler interface {
	Confirm(c echo.Context) error
	Whoami(c echo.Context) error
}

type handler struct {
	service Service
}

// NewHandler creates a new handler
func NewHandler(service Service) Handler {
	return &handler{service: service}
}

// Confirm marks the given account's email as confirmed
func (h handler) Confirm(c echo.Context) error {
	ctx, span := tracer.Start(c.Request().Context(), "Auth.Handler.Confirm")
	defer span.End()

	var request confirmRequest
	err := c.Bind(&request)
	if err != nil || request.Email == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"status": "error", "message": "email is required"})
	}

	err = h.service.Confirm(ctx, request.Email)
	if err != nil {
		if errors.Is(err, core.NewErrorNotFound()) {
			return c.JSON(http.StatusNotFound, echo.Map{"status": "error", "message": "account not found"})
		}
		span.RecordError(err)
		return err
	}

	return c.JSON(http.StatusOK, echo.Map{"status": "ok"})
}

// Whoami returns the session identity
func (h handler) Whoami(c echo.Context) error {
	user, ok := c.Get(UserCtxKey).(*core.AuthUser)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"status": "error", "message": "sign in required"})
	}

	return c.JSON(http.StatusOK, echo.Map{"status": "ok", "content": user})
}
