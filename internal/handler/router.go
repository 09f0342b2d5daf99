package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/localpass/passgen/internal/middleware"
	"github.com/localpass/passgen/internal/service"
)

// RouterConfig carries what NewRouter needs to wire the API.
type RouterConfig struct {
	Generator      *service.GeneratorService
	Settings       *service.SettingsService
	JWTSecret      string
	RateLimitRPS   float64
	RateLimitBurst int
}

// NewRouter builds the HTTP API.
func NewRouter(cfg RouterConfig) http.Handler {
	genHandler := NewGeneratorHandler(cfg.Generator)
	settingsHandler := NewSettingsHandler(cfg.Settings)

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(middleware.Logger)
	r.Use(chimw.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	r.Group(func(r chi.Router) {
		r.Use(middleware.RateLimit(cfg.RateLimitRPS, cfg.RateLimitBurst))
		r.Post("/api/v1/generate", genHandler.HandleGenerate)
		r.Post("/api/v1/score", genHandler.HandleScore)
	})

	r.Group(func(r chi.Router) {
		r.Use(middleware.JWTAuth(cfg.JWTSecret))
		r.Get("/api/v1/settings", settingsHandler.HandleGet)
		r.Put("/api/v1/settings", settingsHandler.HandleUpdate)
		r.Post("/api/v1/settings/regenerate", settingsHandler.HandleRegenerate)
	})

	return r
}
