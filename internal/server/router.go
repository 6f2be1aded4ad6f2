// Package server собирает HTTP маршрутизацию и middleware-цепочки приложения.
package server

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/iudanet/userhub/internal/metrics"
	"github.com/iudanet/userhub/internal/server/handlers"
	"github.com/iudanet/userhub/internal/server/middleware"
	"github.com/iudanet/userhub/internal/server/storage"
	"github.com/iudanet/userhub/internal/token"
)

// RouterDeps - зависимости, необходимые NewRouter
type RouterDeps struct {
	Logger   *slog.Logger
	Codec    *token.Codec
	Users    storage.UserStorage
	Auth     handlers.AuthService
	Profiles storage.ProfileStorage
	Metrics  *metrics.Collector
	PageSize int
}

// NewRouter возвращает chi.Router со всеми маршрутами приложения.
//
// Порядок middleware: Recovery -> Metrics -> Logging для всех маршрутов;
// каталог профилей дополнительно за AuthMiddleware.
func NewRouter(deps *RouterDeps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RecoveryMiddleware(deps.Logger))
	r.Use(middleware.MetricsMiddleware(deps.Metrics))
	r.Use(middleware.LoggingMiddleware(deps.Logger))

	authHandler := handlers.NewAuthHandler(deps.Logger, deps.Auth)
	profileHandler := handlers.NewProfileHandler(deps.Logger, deps.Profiles, storage.ProfileSearchFields, deps.PageSize)
	healthHandler := handlers.NewHealthHandler(deps.Logger)

	// --- маршруты без аутентификации ---

	r.Route("/user", func(r chi.Router) {
		r.Post("/login", authHandler.Login)
		r.Post("/register", authHandler.Register)
		r.Post("/refresh", authHandler.Refresh)

		// --- каталог профилей, только с access token ---
		r.Group(func(r chi.Router) {
			r.Use(middleware.AuthMiddleware(deps.Logger, deps.Codec, deps.Users))

			r.Get("/profile", profileHandler.List)
			r.Post("/profile", profileHandler.Create)
			r.Get("/profile/{id}", profileHandler.Get)
			r.Patch("/profile/{id}", profileHandler.Update)
		})
	})

	r.Get("/healthz", healthHandler.Health)
	r.Method(http.MethodGet, "/metrics", deps.Metrics.Handler())

	return r
}
