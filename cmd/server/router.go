package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/pduartel/accounts-api/internal/api"
	apiMiddleware "github.com/pduartel/accounts-api/internal/api/middleware"
)

// setupRouter creates and configures the application router with all routes
// and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.TraceMiddleware)

	accountHandler := api.NewAccountHandler(app.accountService, app.logger)
	authMiddleware := apiMiddleware.NewAuthMiddleware(app.tokenService)

	r.Route("/api", func(r chi.Router) {
		// Authentication endpoints (public)
		r.Post("/signup", accountHandler.Signup)
		r.Post("/login", accountHandler.Login)

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)
			r.Get("/accounts", accountHandler.List)
			r.Get("/account", accountHandler.Get)
			r.Put("/accounts/{id}", accountHandler.Update)
		})
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("Failed to write health check response", "error", err)
		}
	})

	return r
}
