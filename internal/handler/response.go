package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"opmlkit/internal/service"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeError(c echo.Context, status int, message string) error {
	return c.JSON(status, errorResponse{Error: message})
}

// writeServiceError maps service errors to HTTP status codes.
func writeServiceError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, service.ErrInvalid):
		return writeError(c, http.StatusBadRequest, "invalid request")
	case errors.Is(err, service.ErrNotFound):
		return writeError(c, http.StatusNotFound, "resource not found")
	case errors.Is(err, service.ErrConflict):
		return writeError(c, http.StatusConflict, "conflict")
	case errors.Is(err, service.ErrFetchFailed):
		return writeError(c, http.StatusBadGateway, "feed fetch failed")
	default:
		return writeError(c, http.StatusInternalServerError, "internal error")
	}
}
