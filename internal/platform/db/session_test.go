package db

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/physiorec/physiorec/internal/platform/middleware"
)

func TestCommitFailed(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/patients/", nil)
	res := httptest.NewRecorder()
	c := e.NewContext(req, res)
	c.Response().Header().Set(middleware.RequestIDHeader, "rid-9")

	err := commitFailed(logger, c, errors.New("connection reset"))

	httpErr, ok := err.(*echo.HTTPError)
	if !ok {
		t.Fatalf("expected *echo.HTTPError, got %T", err)
	}
	if httpErr.Code != http.StatusInternalServerError {
		t.Errorf("expected 500, got %d", httpErr.Code)
	}

	var line map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &line); err != nil {
		t.Fatalf("decode log line: %v", err)
	}
	if line["request_id"] != "rid-9" {
		t.Errorf("expected request id rid-9, got %v", line["request_id"])
	}
	if line["method"] != "POST" || line["path"] != "/patients/" {
		t.Errorf("unexpected request fields: %v", line)
	}
	if line["error"] != "connection reset" {
		t.Errorf("expected commit error in log, got %v", line["error"])
	}
}

func TestTxFromContext_Empty(t *testing.T) {
	if tx := TxFromContext(context.Background()); tx != nil {
		t.Errorf("expected no transaction on a bare context, got %v", tx)
	}
}
