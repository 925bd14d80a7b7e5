package http_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	gh "opmlkit/internal/http"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
)

func TestRequestLogger_PassesThrough(t *testing.T) {
	e := echo.New()
	middleware := gh.RequestLogger()

	req := httptest.NewRequest(http.MethodGet, "/api/subscriptions", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	}

	err := middleware(handler)(c)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "ok", rec.Body.String())
}

func TestRequestLogger_HandlerError(t *testing.T) {
	e := echo.New()
	middleware := gh.RequestLogger()

	req := httptest.NewRequest(http.MethodGet, "/api/subscriptions", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := func(c echo.Context) error {
		return errors.New("boom")
	}

	err := middleware(handler)(c)
	require.Error(t, err)
	require.Equal(t, http.StatusInternalServerError, rec.Code)
}
