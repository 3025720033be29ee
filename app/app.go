// Package app wires the todo service together: in-memory database, store,
// controllers, routes and middleware.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"gorm.io/gorm"

	"todo-api/app/config"
	"todo-api/app/controllers"
	"todo-api/app/middleware"
	"todo-api/app/routes"
	"todo-api/app/services"
)

const shutdownTimeout = 10 * time.Second

// Application is a ready to serve todo service.
type Application struct {
	logger  *slog.Logger
	config  config.Config
	db      *gorm.DB
	Todos   *services.TodoService
	handler http.Handler
}

// New opens the in-memory database and builds the HTTP handler.
func New(logger *slog.Logger, cfg config.Config) (*Application, error) {
	db, err := config.InitDatabase(logger, cfg.DBName)
	if err != nil {
		return nil, err
	}

	todoService := services.NewTodoService(db)
	todoController := controllers.NewTodoController(todoService)

	router := mux.NewRouter()
	routes.RegisterRoutes(router, todoController)
	if cfg.IsDevelopment() {
		routes.RegisterDocs(router)
	}

	chain, err := middleware.Chain(logger, cfg)
	if err != nil {
		_ = config.CloseDatabase(db)
		return nil, err
	}

	return &Application{
		logger:  logger,
		config:  cfg,
		db:      db,
		Todos:   todoService,
		handler: chain.Then(router),
	}, nil
}

// Handler returns the root HTTP handler.
func (app *Application) Handler() http.Handler {
	return app.handler
}

// Close drops the in-memory database.
func (app *Application) Close() error {
	return config.CloseDatabase(app.db)
}

// Serve listens on the configured port until ctx is cancelled, then shuts
// the server down gracefully.
func (app *Application) Serve(ctx context.Context) error {
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", app.config.Port),
		Handler:      app.handler,
		IdleTimeout:  time.Minute,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		app.logger.Info("server is running", "addr", srv.Addr, "env", app.config.Env)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	app.logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
