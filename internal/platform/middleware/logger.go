package middleware

import (
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/physiorec/physiorec/internal/platform/auth"
)

// Logger emits one structured line per request. Authenticated requests carry
// the user id, which ties the line to the clinical audit trail emitted under
// the same request id.
func Logger(logger zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			req := c.Request()

			err := next(c)

			evt := logger.Info()
			if err != nil {
				evt = logger.Error().Err(err)
			}
			// The bearer check runs after this middleware, so read the user
			// from the request context as it stands on the way out.
			if userID := auth.UserIDFromContext(c.Request().Context()); userID != 0 {
				evt = evt.Int64("user_id", userID)
			}

			evt.
				Str("request_id", RequestIDFrom(c)).
				Str("method", req.Method).
				Str("path", req.URL.Path).
				Int("status", c.Response().Status).
				Int64("bytes_out", c.Response().Size).
				Dur("latency", time.Since(start)).
				Str("remote_ip", c.RealIP()).
				Msg("request")

			return err
		}
	}
}
