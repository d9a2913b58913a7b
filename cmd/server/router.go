package main

import (
	"net/http"
	"slices"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/phrazzld/threat-ingest/internal/api"
	apiMiddleware "github.com/phrazzld/threat-ingest/internal/api/middleware"
)

// setupRouter creates the router with middleware and all routes.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(apiMiddleware.Trace(app.logger))
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(corsOptions(app.config.Server.AllowedOrigins)))

	taskHandler := api.NewTaskHandler(app.taskService)

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/create_task/{name}", taskHandler.CreateTask)
		r.Get("/get_task_names", taskHandler.GetTaskNames)
		r.Get("/get_task/{task_name}", taskHandler.GetTask)
		r.Get("/get_task_status/{task_name}", taskHandler.GetTaskStatus)
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("Failed to write health check response", "error", err)
		}
	})

	return r
}

// corsOptions allows credentials only for explicit origins. Browsers reject
// a wildcard origin on credentialed requests.
func corsOptions(origins []string) cors.Options {
	wildcard := len(origins) == 0 || slices.Contains(origins, "*")

	return cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"*"},
		ExposedHeaders:   []string{apiMiddleware.TraceHeader},
		AllowCredentials: !wildcard,
		MaxAge:           300,
	}
}
