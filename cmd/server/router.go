package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/phrazzld/taskr-api/internal/api"
	apiMiddleware "github.com/phrazzld/taskr-api/internal/api/middleware"
)

// setupRouter creates the router with standard middleware, the API routes
// and the health check.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.TraceMiddleware(app.logger))

	api.RegisterRoutes(r,
		api.NewAuthHandler(app.userService),
		api.NewTaskHandler(app.taskService),
		apiMiddleware.NewAuthMiddleware(app.tokens).Authenticate,
	)

	r.Get("/health", app.healthHandler)

	return r
}
