package webserver

import (
	"context"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	"github.com/pkg/errors"
	"github.com/wheelmaster/tireshop/config"
	"go.uber.org/zap"
)

// Server wraps the echo instance serving the storefront.
type Server struct {
	root *echo.Echo
	addr string
}

func New(cfg config.WebConfig) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Logger.SetLevel(log.OFF)
	e.Validator = NewValidator()
	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(RequestLogger())
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})
	return &Server{
		root: e,
		addr: fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
	}
}

func (s *Server) Echo() *echo.Echo {
	return s.root
}

func (s *Server) Addr() string {
	return s.addr
}

// Start blocks until the listener fails or Shutdown is called. A graceful
// shutdown is not reported as an error.
func (s *Server) Start() error {
	zap.S().Infof("Prepare to start storefront at %s", s.addr)
	err := s.root.Start(s.addr)
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return errors.Wrap(err, "storefront server")
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	zap.S().Info("Shutting down storefront")
	return s.root.Shutdown(ctx)
}
