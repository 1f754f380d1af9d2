package routes

import (
	"net/http"

	"wastepoint/internal/config"
	"wastepoint/internal/handlers"
	"wastepoint/internal/logger"
	mdlwr "wastepoint/internal/middleware"
	"wastepoint/internal/session"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

func NewRouter(cfg *config.Config, logr *logger.Logger, sessions *session.Manager) http.Handler {
	r := chi.NewRouter()

	// Basic middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	if cfg.LogRequests {
		r.Use(mdlwr.RequestLogger(logr.Named("http")))
	}
	r.Use(middleware.Recoverer)

	// CORS middleware with config
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	authMW := mdlwr.NewAuthMiddleware(sessions, logr.Named("auth"))

	sessionHandler := handlers.NewSessionHandler(sessions, logr.Named("session"))
	collectorHandler := handlers.NewCollectorHandler(logr.Named("collector"))
	customerHandler := handlers.NewCustomerHandler(logr.Named("portal"))
	opsHandler := handlers.NewOperationsHandler(logr.Named("operations"))

	r.Get("/healthz", handlers.Healthz)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/healthz", handlers.Healthz)

		// Everything below needs a session
		r.Group(func(r chi.Router) {
			r.Use(authMW.Session)

			r.Route("/session", func(r chi.Router) {
				r.Get("/", sessionHandler.Current)
				r.Post("/logout", sessionHandler.Logout)
			})

			r.Route("/collector", func(r chi.Router) {
				r.Use(authMW.RequireCollector)
				r.Get("/dashboard", collectorHandler.Dashboard)
				r.Get("/profile", collectorHandler.Profile)

				r.Route("/schedules", func(r chi.Router) {
					r.Get("/", collectorHandler.Schedules)
					r.Get("/{id}", collectorHandler.ScheduleDetail)
					r.Post("/{id}/start", collectorHandler.StartSchedule)
					r.Post("/{id}/complete", collectorHandler.CompleteSchedule)
				})

				r.Get("/routes", collectorHandler.Routes)

				r.Route("/map", func(r chi.Router) {
					r.Get("/", collectorHandler.Map)
					r.Post("/select", collectorHandler.SelectRoute)
					r.Post("/location", collectorHandler.Locate)
				})
			})

			r.Route("/portal", func(r chi.Router) {
				r.Use(authMW.RequireCustomer)
				r.Get("/dashboard", customerHandler.Dashboard)
				r.Get("/invoices", customerHandler.Invoices)
				r.Get("/payments", customerHandler.Payments)
				r.Get("/schedules", customerHandler.Schedules)

				r.Get("/profile", customerHandler.Profile)
				r.Patch("/profile", customerHandler.UpdateProfile)

				r.Get("/payment-methods", customerHandler.PaymentMethods)
				r.Post("/payment-methods", customerHandler.AddPaymentMethod)

				r.Get("/top-up", customerHandler.TopUp)
				r.Post("/top-up", customerHandler.SubmitTopUp)
			})

			r.Route("/operations", func(r chi.Router) {
				r.Use(authMW.RequireStaff)

				r.Route("/service-areas", func(r chi.Router) {
					r.Get("/", opsHandler.ServiceAreas)
					r.Post("/", opsHandler.CreateServiceArea)
					r.Get("/{id}", opsHandler.ServiceArea)
					r.Patch("/{id}", opsHandler.UpdateServiceArea)
					r.Delete("/{id}", opsHandler.DeleteServiceArea)
					r.Post("/{id}/activate", opsHandler.ActivateServiceArea)
					r.Post("/{id}/deactivate", opsHandler.DeactivateServiceArea)
				})

				r.Route("/routes", func(r chi.Router) {
					r.Get("/", opsHandler.Routes)
					r.Post("/", opsHandler.CreateRoute)
					r.Get("/{id}", opsHandler.Route)
					r.Patch("/{id}", opsHandler.UpdateRoute)
					r.Delete("/{id}", opsHandler.DeleteRoute)
					r.Post("/{id}/assign", opsHandler.AssignCollector)
					r.Post("/{id}/generate-schedules", opsHandler.GenerateSchedules)
				})

				r.Route("/collectors", func(r chi.Router) {
					r.Get("/", opsHandler.Collectors)
					r.Post("/", opsHandler.CreateCollector)
					r.Get("/{id}", opsHandler.Collector)
					r.Patch("/{id}", opsHandler.UpdateCollector)
					r.Delete("/{id}", opsHandler.DeleteCollector)
					r.Post("/{id}/status", opsHandler.SetCollectorStatus)
				})

				r.Route("/schedules", func(r chi.Router) {
					r.Get("/", opsHandler.Schedules)
					r.Post("/", opsHandler.CreateSchedule)
					r.Get("/new", opsHandler.ScheduleForm)
					r.Get("/{id}", opsHandler.Schedule)
					r.Patch("/{id}", opsHandler.UpdateSchedule)
					r.Delete("/{id}", opsHandler.DeleteSchedule)
					r.Post("/{id}/start", opsHandler.StartSchedule)
					r.Post("/{id}/complete", opsHandler.CompleteSchedule)
					r.Post("/{id}/cancel", opsHandler.CancelSchedule)
					r.Post("/{id}/missed", opsHandler.MarkScheduleMissed)
				})

				r.Route("/customers", func(r chi.Router) {
					r.Get("/", opsHandler.Customers)
					r.Post("/", opsHandler.CreateCustomer)
					r.Get("/{id}", opsHandler.Customer)
					r.Patch("/{id}", opsHandler.UpdateCustomer)
					r.Delete("/{id}", opsHandler.DeleteCustomer)
					r.Post("/{id}/restore", opsHandler.RestoreCustomer)
					r.Post("/{id}/suspend", opsHandler.SuspendCustomer)
					r.Post("/{id}/activate", opsHandler.ActivateCustomer)
					r.Post("/{id}/notes", opsHandler.AddCustomerNote)
					r.Delete("/{id}/notes/{noteID}", opsHandler.DeleteCustomerNote)
					r.Post("/{id}/notes/{noteID}/pin", opsHandler.PinCustomerNote)
					r.Post("/{id}/notes/{noteID}/unpin", opsHandler.UnpinCustomerNote)
					r.Post("/{id}/payment-methods/{methodID}/default", opsHandler.SetDefaultPaymentMethod)
					r.Delete("/{id}/payment-methods/{methodID}", opsHandler.DeleteCustomerPaymentMethod)
				})
			})
		})
	})

	return r
}
