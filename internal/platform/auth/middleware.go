package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

// credentialsDetail matches the error body the API has always returned for
// bad or missing bearer credentials.
const credentialsDetail = "Could not validate credentials"

// UserResolver maps a token subject (email) to a stored user id. The identity
// service implements it; keeping it an interface here avoids an import cycle
// and lets tests stub authentication.
type UserResolver interface {
	ResolveUser(ctx context.Context, email string) (int64, error)
}

// Middleware authenticates requests with a bearer access token and stores the
// resolved user identity on the request context. Any failure short-circuits
// with 401 before route logic runs.
func Middleware(tokens *TokenManager, users UserResolver) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get("Authorization")
			if header == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, credentialsDetail)
			}

			parts := strings.SplitN(header, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return echo.NewHTTPError(http.StatusUnauthorized, credentialsDetail)
			}

			claims, err := tokens.Parse(parts[1])
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, credentialsDetail)
			}

			ctx := c.Request().Context()
			userID, err := users.ResolveUser(ctx, claims.Subject)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, credentialsDetail)
			}

			c.SetRequest(c.Request().WithContext(WithUser(ctx, userID, claims.Subject)))
			return next(c)
		}
	}
}
