package web

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/99tech/users-api/user"
	"github.com/99tech/users-api/web/internal/server"
)

const shutdownTimeout = 10 * time.Second

type Config struct {
	Addr    string
	Debug   bool
	Logger  *zap.Logger
	Service *user.Service
}

// Start runs the HTTP server until ctx is canceled or the listener fails.
func Start(ctx context.Context, cfg Config) error {
	e := newRouter(cfg)

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		err := e.Start(cfg.Addr)
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}

		return err
	})

	g.Go(func() error {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		return e.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

func newRouter(cfg Config) *echo.Echo {
	e := echo.New()
	e.Debug = cfg.Debug
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(middleware.BodyLimit("10M"))

	e.HTTPErrorHandler = errorHandler(cfg.Logger)

	srv := server.NewServer(cfg.Service, cfg.Logger)
	server.RegisterHandlers(e, srv)

	return e
}

// errorHandler renders router-level failures in the API envelope.
// Unmatched paths and unmatched methods share one 404 body, matching
// the catch-all behavior the routes had originally.
func errorHandler(logger *zap.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		var httpErr *echo.HTTPError
		if errors.As(err, &httpErr) {
			switch httpErr.Code {
			case http.StatusNotFound, http.StatusMethodNotAllowed:
				_ = c.JSON(http.StatusNotFound, server.Response{
					Success: false,
					Message: "Endpoint not found",
				})
			default:
				msg := http.StatusText(httpErr.Code)
				if m, ok := httpErr.Message.(string); ok {
					msg = m
				}

				_ = c.JSON(httpErr.Code, server.Response{
					Success: false,
					Message: msg,
				})
			}

			return
		}

		logger.Error("unhandled error",
			zap.String("method", c.Request().Method),
			zap.String("path", c.Request().URL.Path),
			zap.Error(err),
		)

		_ = c.JSON(http.StatusInternalServerError, server.Response{
			Success: false,
			Message: "Internal server error",
		})
	}
}
