package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/projectsetu/setu-api/internal/api/handlers"
	"github.com/projectsetu/setu-api/internal/api/httpx"
	"github.com/projectsetu/setu-api/internal/config"
	"github.com/projectsetu/setu-api/internal/metrics"
	"github.com/projectsetu/setu-api/internal/middleware"
	"github.com/projectsetu/setu-api/internal/models"
)

type RouterDeps struct {
	Cfg          config.Config
	RS           *httpx.Responder
	Auth         *middleware.Authenticator
	AuthH        *handlers.AuthHandler
	UserH        *handlers.UserHandler
	BlogH        *handlers.BlogHandler
	ProjectH     *handlers.ProjectHandler
	TestimonialH *handlers.TestimonialHandler
}

func NewRouter(d RouterDeps) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.Recover, middleware.RateLimit(d.Cfg.RateRPS), middleware.HTTPMetrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{d.Cfg.CORSOrigin},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) { _, _ = w.Write([]byte("ok")) })
	r.Handle("/metrics", metrics.Handler())

	adminOnly := middleware.RequireRole(d.RS, models.RoleAdmin)

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", d.AuthH.Register)
			r.Post("/login", d.AuthH.Login)
			r.Get("/logout", d.AuthH.Logout)

			r.Group(func(r chi.Router) {
				r.Use(d.Auth.Require)
				r.Get("/me", d.AuthH.Me)
				r.Put("/updatedetails", d.AuthH.UpdateDetails)
				r.Put("/updatepassword", d.AuthH.UpdatePassword)
			})
		})

		r.Route("/users", func(r chi.Router) {
			r.Use(d.Auth.Require, adminOnly)
			r.Get("/", d.UserH.List)
			r.Post("/", d.UserH.Create)
			r.Get("/{id}", d.UserH.Get)
			r.Put("/{id}", d.UserH.Update)
			r.Delete("/{id}", d.UserH.Delete)
		})

		r.Route("/blogs", func(r chi.Router) {
			// Public reads run with optional auth so admins see drafts.
			r.Group(func(r chi.Router) {
				r.Use(d.Auth.Optional)
				r.Get("/", d.BlogH.List)
				r.Get("/featured", d.BlogH.Featured)
				r.Get("/category/{category}", d.BlogH.ByCategory)
				r.Get("/{id}", d.BlogH.Get)
			})
			r.Group(func(r chi.Router) {
				r.Use(d.Auth.Require)
				r.Post("/", d.BlogH.Create)
				r.Put("/{id}", d.BlogH.Update)
				r.Delete("/{id}", d.BlogH.Delete)
			})
		})

		r.Route("/projects", func(r chi.Router) {
			r.Get("/", d.ProjectH.List)
			r.Get("/featured", d.ProjectH.Featured)
			r.Get("/status/{status}", d.ProjectH.ByStatus)
			r.Get("/category/{category}", d.ProjectH.ByCategory)
			r.Get("/{id}", d.ProjectH.Get)

			r.Group(func(r chi.Router) {
				r.Use(d.Auth.Require, adminOnly)
				r.Post("/", d.ProjectH.Create)
				r.Put("/{id}", d.ProjectH.Update)
				r.Delete("/{id}", d.ProjectH.Delete)
			})
		})

		r.Route("/testimonials", func(r chi.Router) {
			r.Get("/featured", d.TestimonialH.Featured)
			r.Get("/project/{projectId}", d.TestimonialH.ByProject)

			r.Group(func(r chi.Router) {
				r.Use(d.Auth.Optional)
				r.Get("/", d.TestimonialH.List)
				r.Get("/{id}", d.TestimonialH.Get)
			})
			r.Group(func(r chi.Router) {
				r.Use(d.Auth.Require)
				r.Post("/", d.TestimonialH.Create)
			})
			r.Group(func(r chi.Router) {
				r.Use(d.Auth.Require, adminOnly)
				r.Put("/{id}", d.TestimonialH.Update)
				r.Delete("/{id}", d.TestimonialH.Delete)
				r.Put("/{id}/verify", d.TestimonialH.Verify)
			})
		})
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		httpx.WriteJSON(w, http.StatusNotFound, httpx.Envelope{Error: "Resource not found"})
	})

	return r
}
