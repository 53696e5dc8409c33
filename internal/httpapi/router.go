package httpapi

import (
	"net/http"

	"github.com/PabloPavan/userdir_api/internal/telemetry"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger/v2"
)

type App struct {
	Health *HealthHandler
	Users  *UsersHandler
}

func NewRouter(app *App) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(telemetry.ChiTraceMiddleware("userdir-api"))
	r.Use(telemetry.ChiMetricsMiddleware)
	r.Use(telemetry.ChiLogMiddleware("userdir-api"))

	r.Get("/health", app.Health.Get)

	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	r.Route("/api/users", func(r chi.Router) {
		r.Get("/", app.Users.List)
		r.Post("/", app.Users.Create)
		r.Get("/{id}", app.Users.GetByID)
		r.Put("/{id}", app.Users.Update)
		r.Delete("/{id}", app.Users.Delete)
	})

	return r
}
