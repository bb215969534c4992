package httpx

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/physiorec/physiorec/internal/platform/middleware"
)

// Detail is the error envelope every endpoint returns on failure.
type Detail struct {
	Detail string `json:"detail"`
}

// Message is the confirmation envelope returned by delete endpoints.
type Message struct {
	Message string `json:"message"`
}

// ErrorHandler renders every error as a {"detail": ...} body, keeping the
// wire format stable for clients of the previous generation of this API.
// Non-HTTP errors are logged and reported as a generic 500.
func ErrorHandler(logger zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code := http.StatusInternalServerError
		detail := "internal server error"

		var he *echo.HTTPError
		if errors.As(err, &he) {
			code = he.Code
			if msg, ok := he.Message.(string); ok {
				detail = msg
			} else {
				detail = fmt.Sprintf("%v", he.Message)
			}
		} else {
			logger.Error().Err(err).
				Str("request_id", middleware.RequestIDFrom(c)).
				Msg("unhandled error")
		}

		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(code)
			return
		}
		_ = c.JSON(code, Detail{Detail: detail})
	}
}
