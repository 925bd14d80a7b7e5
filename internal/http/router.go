// Package http wires the handlers into an echo server.
package http

import (
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"opmlkit/internal/handler"
)

// NewRouter builds the echo instance with all API routes registered under /api.
func NewRouter(opmlHandler *handler.OPMLHandler, subscriptionHandler *handler.SubscriptionHandler) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recover())
	e.Use(RequestLogger())

	api := e.Group("/api")
	opmlHandler.RegisterRoutes(api)
	subscriptionHandler.RegisterRoutes(api)

	return e
}
