package middleware

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/physiorec/physiorec/internal/platform/auth"
)

func TestLogger_AuthenticatedRequest(t *testing.T) {
	var buf bytes.Buffer
	mw := Logger(zerolog.New(&buf))

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/patients/", nil)
	res := httptest.NewRecorder()
	c := e.NewContext(req, res)
	c.Set("request_id", "rid-7")

	h := mw(func(c echo.Context) error {
		c.SetRequest(c.Request().WithContext(auth.WithUser(c.Request().Context(), 42, "user@example.com")))
		return c.NoContent(http.StatusOK)
	})
	if err := h(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var line map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &line); err != nil {
		t.Fatalf("decode log line: %v", err)
	}
	if line["request_id"] != "rid-7" {
		t.Errorf("expected request id rid-7, got %v", line["request_id"])
	}
	if line["user_id"] != float64(42) {
		t.Errorf("expected user_id 42, got %v", line["user_id"])
	}
	if line["method"] != "GET" || line["path"] != "/patients/" {
		t.Errorf("unexpected request fields: %v", line)
	}
	if line["status"] != float64(http.StatusOK) {
		t.Errorf("expected status 200, got %v", line["status"])
	}
}

func TestLogger_AnonymousRequestOmitsUserID(t *testing.T) {
	var buf bytes.Buffer
	mw := Logger(zerolog.New(&buf))

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/auth/token", nil)
	res := httptest.NewRecorder()
	c := e.NewContext(req, res)

	h := mw(func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	if err := h(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var line map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &line); err != nil {
		t.Fatalf("decode log line: %v", err)
	}
	if _, ok := line["user_id"]; ok {
		t.Errorf("anonymous request must not log a user id: %v", line)
	}
}

func TestLogger_HandlerErrorLoggedAndReturned(t *testing.T) {
	var buf bytes.Buffer
	mw := Logger(zerolog.New(&buf))

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/patients/9", nil)
	res := httptest.NewRecorder()
	c := e.NewContext(req, res)

	want := echo.NewHTTPError(http.StatusNotFound, "Patient not found")
	h := mw(func(c echo.Context) error { return want })
	if got := h(c); got != want {
		t.Fatalf("expected handler error to pass through, got %v", got)
	}

	var line map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &line); err != nil {
		t.Fatalf("decode log line: %v", err)
	}
	if line["level"] != "error" {
		t.Errorf("expected error level, got %v", line["level"])
	}
}
