package api

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"task-manager/internal/model"
	"task-manager/internal/service"
)

// Server exposes the task and credential services over HTTP.
type Server struct {
	echo *echo.Echo
	addr string
}

func NewServer(addr, basePath string, tasks *service.TaskService, credentials *service.CredentialService, verifier TokenVerifier) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = errorHandler

	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{Generator: uuid.NewString}))
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	root := e.Group(basePath)

	authHandler := NewAuthHandler(credentials)
	root.POST("/auth/register", authHandler.Register)
	root.POST("/auth/login", authHandler.Login)

	taskHandler := NewTaskHandler(tasks, basePath)
	owner := root.Group("/tasks", requireBearer(verifier), requireRole(model.RoleTaskOwner))
	owner.GET("", taskHandler.List)
	owner.POST("", taskHandler.Create)
	owner.GET("/:id", taskHandler.Get)
	owner.PUT("/:id", taskHandler.Update)
	owner.DELETE("/:id", taskHandler.Delete)

	return &Server{echo: e, addr: addr}
}

func (s *Server) Handler() http.Handler {
	return s.echo
}

// Start serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		log.Printf("[info] listening on %s", s.addr)
		if err := s.echo.Start(s.addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := s.echo.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return ctx.Err()
}
