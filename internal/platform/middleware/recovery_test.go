package middleware

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

func TestRecovery_ConvertsPanicToError(t *testing.T) {
	var buf bytes.Buffer
	mw := Recovery(zerolog.New(&buf))

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/patients/1", nil)
	res := httptest.NewRecorder()
	c := e.NewContext(req, res)
	c.Set("request_id", "rid-3")

	h := mw(func(c echo.Context) error { panic("boom") })
	err := h(c)

	httpErr, ok := err.(*echo.HTTPError)
	if !ok {
		t.Fatalf("expected *echo.HTTPError, got %T", err)
	}
	if httpErr.Code != http.StatusInternalServerError {
		t.Errorf("expected 500, got %d", httpErr.Code)
	}
	if httpErr.Message != "internal server error" {
		t.Errorf("unexpected message: %v", httpErr.Message)
	}

	var line map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &line); err != nil {
		t.Fatalf("decode log line: %v", err)
	}
	if line["request_id"] != "rid-3" {
		t.Errorf("expected request id rid-3, got %v", line["request_id"])
	}
	if line["panic"] != "boom" {
		t.Errorf("expected panic value in log, got %v", line["panic"])
	}
	if stack, _ := line["stack"].(string); !strings.Contains(stack, "goroutine") {
		t.Errorf("expected a stack trace in the log, got %q", stack)
	}
}

func TestRecovery_NoPanicPassesThrough(t *testing.T) {
	var buf bytes.Buffer
	mw := Recovery(zerolog.New(&buf))

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	res := httptest.NewRecorder()
	c := e.NewContext(req, res)

	h := mw(func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	if err := h(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if buf.Len() != 0 {
		t.Errorf("expected no log output, got %s", buf.String())
	}
}
