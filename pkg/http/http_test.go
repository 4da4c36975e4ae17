package http

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"FinScreen/pkg/logger"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type pingHandler struct{}

func (pingHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/api/ping", func(c echo.Context) error { return SuccessResponse(c, "pong") })
	e.GET("/api/boom", func(c echo.Context) error { panic("boom") })
	e.GET("/api/missing", func(c echo.Context) error {
		return AppErrorResponse(c, NotFoundError(`preset "x"`))
	})
	e.GET("/api/opaque", func(c echo.Context) error {
		return AppErrorResponse(c, errors.New("db down"))
	})
}

func serve(e *echo.Echo, path string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestServerRoutesAndStatuses(t *testing.T) {
	e := NewServer(pingHandler{}, logger.NewNop(), WithMetrics(false, "")).Echo()

	rec := serve(e, "/healthz")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":200,"message":"OK","data":{"status":"ok"}}`, rec.Body.String())

	assert.Equal(t, http.StatusOK, serve(e, "/api/ping").Code)
	assert.Equal(t, http.StatusInternalServerError, serve(e, "/api/boom").Code)

	rec = serve(e, "/api/missing")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "ERR_NOT_FOUND")

	rec = serve(e, "/api/opaque")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "db down")
}

type sample struct {
	Kind  string `default:"stock" validate:"oneof=stock forex crypto"`
	Limit int    `default:"10" validate:"gt=0,lte=100"`
}

func TestValidateStruct(t *testing.T) {
	s := &sample{}
	require.NoError(t, ValidateStruct(context.Background(), s))
	assert.Equal(t, "stock", s.Kind)
	assert.Equal(t, 10, s.Limit)

	err := ValidateStruct(context.Background(), &sample{Kind: "bonds", Limit: 500})
	var reqErr *RequestError
	require.ErrorAs(t, err, &reqErr)
	require.Len(t, reqErr.Errors, 2)
	assert.Equal(t, "ERR_ONEOF", reqErr.Errors[0].Code)
	assert.Equal(t, "ERR_LTE", reqErr.Errors[1].Code)
	assert.Contains(t, err.Error(), "Kind must be one of: stock, forex, crypto")
}

func TestAppErrorResponseForRequestError(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

	require.NoError(t, AppErrorResponse(c, &RequestError{Errors: []ValidationError{{Code: "ERR_REQUIRED", Field: "name"}}}))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "ERR_REQUIRED")
}

func TestSlugValidation(t *testing.T) {
	type named struct {
		Name string `validate:"required,slug"`
	}
	assert.NoError(t, ValidateStruct(context.Background(), &named{Name: "us-large_caps.v2"}))

	for _, bad := range []string{"-lead", "with space", "glob*", "a:b"} {
		err := ValidateStruct(context.Background(), &named{Name: bad})
		var reqErr *RequestError
		require.ErrorAs(t, err, &reqErr, bad)
		assert.Equal(t, "ERR_SLUG", reqErr.Errors[0].Code)
	}
}
