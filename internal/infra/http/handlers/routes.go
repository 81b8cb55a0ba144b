package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/jwtauth/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/xavierca1/financekeem/internal/infra/http/middleware"
)

type RouterConfig struct {
	Leads     *LeadHandler
	Forms     *FormHandler
	Quizzes   *QuizHandler
	Bookings  *BookingHandler
	Dashboard *DashboardHandler
	Health    *HealthHandler

	TokenAuth   *jwtauth.JWTAuth
	CORSOrigins []string
	RateLimiter *RateLimiter
}

func NewRouter(c RouterConfig) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   c.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	r.Use(middleware.Metrics)

	r.Get("/health", c.Health.Handle)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/public", func(r chi.Router) {
		limited := r.With(c.RateLimiter.Middleware)

		limited.Post("/leads", c.Leads.CaptureLead)
		limited.Post("/bookings", c.Bookings.Create)

		r.Get("/form/{slug}", c.Forms.PublicGet)
		limited.Post("/form/{slug}/submit", c.Forms.PublicSubmit)

		r.Get("/quiz/{slug}", c.Quizzes.PublicGet)
		limited.Post("/quiz/{slug}/submit", c.Quizzes.PublicSubmit)

		r.Get("/book/{slug}", c.Bookings.PublicGet)
		r.Get("/book/{slug}/slots", c.Bookings.PublicSlots)
		limited.Post("/book/{slug}", c.Bookings.PublicBook)
	})

	r.Route("/api/admin", func(r chi.Router) {
		r.Use(middleware.Admin(c.TokenAuth))

		r.Route("/leads", func(r chi.Router) {
			r.Get("/", c.Leads.List)
			r.Post("/", c.Leads.Create)
			r.Get("/{id}", c.Leads.Get)
			r.Put("/{id}", c.Leads.Update)
			r.Delete("/{id}", c.Leads.Delete)
		})

		r.Route("/forms", func(r chi.Router) {
			r.Get("/", c.Forms.List)
			r.Post("/", c.Forms.Create)
			r.Get("/{id}", c.Forms.Get)
			r.Put("/{id}", c.Forms.Update)
			r.Delete("/{id}", c.Forms.Delete)
			r.Get("/{id}/submissions", c.Forms.Submissions)
		})

		r.Route("/quizzes", func(r chi.Router) {
			r.Get("/", c.Quizzes.List)
			r.Post("/", c.Quizzes.Create)
			r.Get("/responses", c.Quizzes.Responses)
			r.Get("/{id}", c.Quizzes.Get)
			r.Put("/{id}", c.Quizzes.Update)
			r.Delete("/{id}", c.Quizzes.Delete)
			r.Get("/{id}/responses", c.Quizzes.Responses)
		})

		r.Route("/booking-pages", func(r chi.Router) {
			r.Get("/", c.Bookings.ListPages)
			r.Post("/", c.Bookings.CreatePage)
			r.Get("/{id}", c.Bookings.GetPage)
			r.Put("/{id}", c.Bookings.UpdatePage)
			r.Delete("/{id}", c.Bookings.DeletePage)
		})

		r.Route("/bookings", func(r chi.Router) {
			r.Get("/", c.Bookings.List)
			r.Post("/", c.Bookings.Create)
			r.Get("/{id}", c.Bookings.Get)
			r.Put("/{id}", c.Bookings.Update)
			r.Delete("/{id}", c.Bookings.Delete)
		})

		r.Get("/dashboard/stats", c.Dashboard.Stats)
		r.Delete("/data", c.Dashboard.Clear)
	})

	return r
}
