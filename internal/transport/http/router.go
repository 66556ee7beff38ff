package http

import (
	"context"
	"net/http"

	"github.com/contact-api/internal/config"
	"github.com/contact-api/internal/transport/http/handler"
	appmiddleware "github.com/contact-api/internal/transport/http/middleware"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"golang.org/x/time/rate"
)

// NewRouter builds and returns the application router. ctx bounds the
// lifetime of the background limiter cleanup.
func NewRouter(ctx context.Context, cfg *config.Config, deps *Deps) (http.Handler, error) {
	trust, err := appmiddleware.NewProxyTrust(cfg.TrustedProxies)
	if err != nil {
		return nil, err
	}

	r := chi.NewRouter()
	r.Use(chimiddleware.Logger)
	r.Use(appmiddleware.Recover)
	r.Use(chimiddleware.RequestID)
	r.Use(trust.Handler)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// 1 request/second, burst of 5 per IP in front of the durable window.
	sensitiveRL := appmiddleware.NewRateLimiter(ctx, rate.Limit(1), 5)

	healthH := handler.NewHealthHandler()
	contactH := handler.NewContactHandler(deps.Contact)

	r.Route("/v1", func(r chi.Router) {
		r.Get("/health-check/{action}", healthH.Ping)
		r.With(sensitiveRL.Limit).Post("/contact", contactH.Submit)
	})

	return r, nil
}
