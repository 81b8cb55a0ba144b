package main

import (
	"net/http"

	"github.com/xavierca1/financekeem/internal/config"
	"github.com/xavierca1/financekeem/internal/infra/http/handlers"
	"github.com/xavierca1/financekeem/internal/infra/http/middleware"
	"github.com/xavierca1/financekeem/internal/infra/store"
	"github.com/xavierca1/financekeem/internal/usecase"
)

func buildRouter(
	cfg config.Config,
	backend store.Backend,
	slugs usecase.SlugCache,
	events usecase.EventPublisher,
	checks map[string]handlers.Check,
	limiter *handlers.RateLimiter,
) http.Handler {
	repos := store.NewRepositories(backend)
	metrics := middleware.PrometheusRecorder{}

	// Use cases
	reconcile := usecase.NewReconcileLeadUseCase(repos.Leads, events, metrics)
	manageLeads := usecase.NewManageLeadsUseCase(repos.Leads, reconcile)
	forms := usecase.NewManageFormsUseCase(repos.Forms, repos.FormSubmissions, slugs)
	quizzes := usecase.NewManageQuizzesUseCase(repos.Quizzes, repos.QuizResponses, slugs)
	pages := usecase.NewManageBookingPagesUseCase(repos.BookingPages, repos.Bookings, slugs)
	bookings := usecase.NewManageBookingsUseCase(repos.Bookings)
	book := usecase.NewCreateBookingUseCase(repos.Bookings, repos.BookingPages, reconcile, events, metrics)
	submitForm := usecase.NewSubmitFormUseCase(forms, repos.FormSubmissions, reconcile)
	submitQuiz := usecase.NewSubmitQuizUseCase(quizzes, repos.QuizResponses, reconcile, metrics)
	dashboard := usecase.NewDashboardUseCase(repos.Leads, repos.QuizResponses, repos.Bookings)
	clearData := usecase.NewClearDataUseCase(backend, slugs)

	return handlers.NewRouter(handlers.RouterConfig{
		Leads:     handlers.NewLeadHandler(reconcile, manageLeads),
		Forms:     handlers.NewFormHandler(forms, submitForm),
		Quizzes:   handlers.NewQuizHandler(quizzes, submitQuiz),
		Bookings:  handlers.NewBookingHandler(pages, bookings, book),
		Dashboard: handlers.NewDashboardHandler(dashboard, clearData),
		Health:    handlers.NewHealthHandler(checks),

		TokenAuth:   middleware.NewTokenAuth(cfg.AdminJWTSecret),
		CORSOrigins: cfg.CORSOrigins,
		RateLimiter: limiter,
	})
}
