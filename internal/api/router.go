package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/baharkarakas/tours-backend/internal/api/handlers"
	"github.com/baharkarakas/tours-backend/internal/auth"
	"github.com/baharkarakas/tours-backend/internal/config"
	"github.com/baharkarakas/tours-backend/internal/metrics"
	"github.com/baharkarakas/tours-backend/internal/middleware"
	"github.com/baharkarakas/tours-backend/internal/models"
	"github.com/baharkarakas/tours-backend/internal/services"
)

type Deps struct {
	Cfg        config.Config
	TM         *auth.TokenManager
	UserSvc    *services.UserService
	TourSvc    *services.TourService
	ReviewSvc  *services.ReviewService
	BookingSvc *services.BookingService
}

func NewRouter(d Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.Recover, middleware.RateLimit(d.Cfg.RateRPS))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"*"},
	}))
	r.Use(middleware.HTTPMetrics)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) { _, _ = w.Write([]byte("ok")) })
	r.Handle("/metrics", metrics.Handler())

	am := middleware.NewAuthMiddleware(d.TM, d.UserSvc)
	authH := handlers.NewAuthHandler(d.UserSvc, d.Cfg.Env)
	userH := handlers.NewUserHandler(d.UserSvc)
	tourH := handlers.NewTourHandler(d.TourSvc, d.ReviewSvc)
	reviewH := handlers.NewReviewHandler(d.ReviewSvc)
	bookingH := handlers.NewBookingHandler(d.BookingSvc)

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/signup", authH.Signup)
			r.Post("/login", authH.Login)
			r.Post("/forgot-password", authH.ForgotPassword)
			r.Patch("/reset-password/{token}", authH.ResetPassword)
			r.With(am.Auth).Patch("/change-password", authH.ChangePassword)
		})

		r.Route("/tours", func(r chi.Router) {
			r.With(am.OptionalAuth).Get("/", tourH.List)
			r.With(am.OptionalAuth).Get("/{id}", tourH.Get)
			r.With(am.OptionalAuth).Get("/{id}/reviews", tourH.ListReviews)

			r.Group(func(r chi.Router) {
				r.Use(am.Auth)
				r.With(middleware.RequireRole(models.RoleAdmin, models.RoleLeadGuide)).Post("/", tourH.Create)
				r.With(middleware.RequireRole(models.RoleAdmin, models.RoleLeadGuide)).Patch("/{id}", tourH.Update)
				r.With(middleware.RequireRole(models.RoleAdmin, models.RoleLeadGuide)).Delete("/{id}", tourH.Delete)
				r.With(middleware.RequireRole(models.RoleUser)).Post("/{id}/reviews", tourH.CreateReview)
			})
		})

		r.Route("/users", func(r chi.Router) {
			r.Use(am.Auth)
			r.Get("/me", userH.Me)
			r.Patch("/me", userH.UpdateMe)
			r.Delete("/me", userH.DeleteMe)
			r.With(middleware.RequireRole(models.RoleAdmin)).Get("/", userH.List)
		})

		r.Route("/reviews", func(r chi.Router) {
			r.Use(am.Auth)
			r.With(middleware.RequireRole(models.RoleAdmin)).Get("/", reviewH.List)
			r.Get("/{id}", reviewH.Get)
			r.Patch("/{id}", reviewH.Update)
			r.Delete("/{id}", reviewH.Delete)
		})

		r.Route("/bookings", func(r chi.Router) {
			r.Use(am.Auth)
			r.Post("/", bookingH.Create)
			r.Get("/", bookingH.List)
			r.Get("/{id}", bookingH.Get)
			r.Delete("/{id}", bookingH.Delete)
		})
	})

	return r
}
