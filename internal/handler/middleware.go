package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// XUserNameHeader carries the requester identity, set by the fronting
// gateway once the caller is authenticated.
const XUserNameHeader = "X-User-Name"

func middlewareUserName(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if c.Request().Header.Get(XUserNameHeader) == "" {
			return echo.NewHTTPError(http.StatusUnauthorized, "username is empty")
		}
		return next(c)
	}
}

func getUserName(c echo.Context) string {
	return c.Request().Header.Get(XUserNameHeader)
}
