package server

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/profilehub/profilehub-go/internal/handler"
	"github.com/profilehub/profilehub-go/internal/middleware"
	"github.com/profilehub/profilehub-go/internal/service"
	"github.com/profilehub/profilehub-go/internal/session"
)

// Deps are the collaborators the router wires into handlers.
type Deps struct {
	Accounts  *service.AccountService
	Profiles  *service.ProfileService
	Sessions  *session.Manager
	StaticDir string
	RateRPS   float64
	RateBurst int
}

// NewRouter builds the HTTP routes. ctx bounds background work such as the
// rate limiter's idle-visitor eviction.
func NewRouter(ctx context.Context, d Deps) http.Handler {
	accountHandler := handler.NewAccountHandler(d.Accounts, d.Sessions)
	profileHandler := handler.NewProfileHandler(d.Profiles)

	r := chi.NewRouter()
	r.Use(
		chimw.RequestID,
		chimw.RealIP,
		middleware.Logger,
		chimw.Recoverer,
	)

	r.Get("/health", handler.Health)

	r.Route("/api", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			if d.RateRPS > 0 {
				r.Use(middleware.RateLimit(ctx, d.RateRPS, d.RateBurst))
			}
			r.Post("/signup", accountHandler.HandleSignup)
			r.Post("/login", accountHandler.HandleLogin)
		})

		r.Post("/logout", accountHandler.HandleLogout)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireSession(d.Sessions))
			r.Get("/me", profileHandler.HandleGetMe)
			r.Put("/me", profileHandler.HandleUpdateMe)
		})

		r.NotFound(handler.NotFound(d.StaticDir))
	})

	r.Get("/*", handler.Static(d.StaticDir))

	return r
}
