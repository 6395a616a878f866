package service

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-kit/log"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/RjRDRG/sd2021-tp1/api"
)

func newValidatedEcho(t *testing.T) *echo.Echo {
	t.Helper()
	mw, err := NewOpenAPIValidator(api.OpenAPI)
	require.NoError(t, err)

	e := echo.New()
	RegisterErrorHandler(e, log.NewNopLogger())
	e.Use(mw)
	ok := func(c echo.Context) error { return c.NoContent(http.StatusOK) }
	e.POST("/rest/users", ok)
	e.GET("/other", ok)
	return e
}

func TestOpenAPIValidatorAcceptsValidRequest(t *testing.T) {
	e := newValidatedEcho(t)

	req := httptest.NewRequest(http.MethodPost, "/rest/users",
		strings.NewReader(`{"userId":"alice","fullName":"Alice","email":"a@x","password":"pw"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
}

func TestOpenAPIValidatorRejectsMissingFields(t *testing.T) {
	e := newValidatedEcho(t)

	req := httptest.NewRequest(http.MethodPost, "/rest/users",
		strings.NewReader(`{"userId":"alice"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestOpenAPIValidatorIgnoresUndescribedPaths(t *testing.T) {
	e := newValidatedEcho(t)

	req := httptest.NewRequest(http.MethodGet, "/other", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
}
