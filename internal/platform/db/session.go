package db

import (
	"context"
	"net/http"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/physiorec/physiorec/internal/platform/middleware"
)

type contextKey string

const txKey contextKey = "db_tx"

// Querier is the subset of pgx operations repositories need. Both *pgxpool.Pool
// and pgx.Tx satisfy it, so the same repository code runs inside a request
// transaction or directly against the pool.
type Querier interface {
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
}

// SessionMiddleware wraps every request in a single database transaction.
// The transaction commits after the handler returns without error and rolls
// back on handler error or panic, so a half-applied write is never visible.
func SessionMiddleware(pool *pgxpool.Pool, logger zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx := c.Request().Context()

			tx, err := pool.Begin(ctx)
			if err != nil {
				return echo.NewHTTPError(http.StatusServiceUnavailable, "database unavailable")
			}

			committed := false
			defer func() {
				if !committed {
					_ = tx.Rollback(ctx)
				}
			}()

			c.SetRequest(c.Request().WithContext(context.WithValue(ctx, txKey, tx)))

			if err := next(c); err != nil {
				return err
			}

			if err := tx.Commit(ctx); err != nil {
				return commitFailed(logger, c, err)
			}
			committed = true
			return nil
		}
	}
}

// commitFailed handles a commit error after the handler has returned. The
// handler has usually written the 2xx body already, so the 500 cannot reach
// the client; the log line with the request id is the only record that the
// write was rolled back.
func commitFailed(logger zerolog.Logger, c echo.Context, err error) error {
	logger.Error().Err(err).
		Str("request_id", c.Response().Header().Get(middleware.RequestIDHeader)).
		Str("method", c.Request().Method).
		Str("path", c.Request().URL.Path).
		Msg("transaction commit failed after response was written")
	return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
}

// TxFromContext retrieves the request-scoped transaction, if any.
func TxFromContext(ctx context.Context) pgx.Tx {
	tx, _ := ctx.Value(txKey).(pgx.Tx)
	return tx
}

// Conn returns the request transaction when present, otherwise the pool.
func Conn(ctx context.Context, pool *pgxpool.Pool) Querier {
	if tx := TxFromContext(ctx); tx != nil {
		return tx
	}
	return pool
}
