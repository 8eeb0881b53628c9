package auth

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Restrict rejects requests while no session is active and exposes the user to handlers
func Restrict(service Service) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx, span := tracer.Start(c.Request().Context(), "Auth.Restrict")
			defer span.End()

			user, err := service.CurrentUser(ctx)
			if err != nil {
				span.RecordError(err)
				return c.JSON(http.StatusInternalServerError, echo.Map{"status": "error", "message": err.Error()})
			}
			if user == nil {
				return c.JSON(http.StatusUnauthorized, echo.Map{"status": "error", "message": "sign in required"})
			}

			c.Set(UserCtxKey, user)
			return next(c)
		}
	}
}
