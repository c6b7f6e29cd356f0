package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// RegisterRoutes mounts the public auth endpoints and the task endpoints
// under /api. authenticate guards every task route.
func RegisterRoutes(
	r chi.Router,
	authHandler *AuthHandler,
	taskHandler *TaskHandler,
	authenticate func(http.Handler) http.Handler,
) {
	r.Route("/api", func(r chi.Router) {
		r.Post("/user/create", authHandler.Register)
		r.Post("/login", authHandler.Login)

		r.Group(func(r chi.Router) {
			r.Use(authenticate)

			r.Get("/task", taskHandler.ListTasks)
			r.Post("/task", taskHandler.CreateTask)
			r.Get("/task/search", taskHandler.SearchTasks)
			r.Get("/task/{id}", taskHandler.GetTask)
			r.Patch("/task/{id}", taskHandler.UpdateTask)
			r.Delete("/task/{id}", taskHandler.DeleteTask)
		})
	})
}
