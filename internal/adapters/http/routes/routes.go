package routes

import (
	"time"

	"turfbook/internal/adapters/http/handlers"
	"turfbook/internal/adapters/http/middleware"
	"turfbook/internal/config"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/swagger"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Dependencies are the services the HTTP layer is built from
type Dependencies struct {
	Resolver   middleware.Resolver
	Auth       handlers.Authenticator
	Bookings   handlers.BookingManager
	Reconciler handlers.Reconciler
	DBCheck    handlers.HealthChecker
	Gatherer   prometheus.Gatherer
}

// Setup configures all routes for the application
func Setup(app *fiber.App, cfg *config.Config, deps *Dependencies) {
	healthHandler := handlers.NewHealthHandler(cfg.AppMode, deps.DBCheck)
	authHandler := handlers.NewAuthHandler(deps.Auth, cfg)
	profileHandler := handlers.NewProfileHandler()
	bookingHandler := handlers.NewBookingHandler(deps.Bookings)
	jobHandler := handlers.NewJobHandler(deps.Reconciler)

	// Health check & root routes
	app.Get("/", healthHandler.Root)
	app.Get("/health", healthHandler.HealthCheck)

	if deps.Gatherer != nil {
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(deps.Gatherer, promhttp.HandlerOpts{})))
	}

	// Swagger documentation
	app.Get("/swagger/*", swagger.HandlerDefault)

	apiV1 := app.Group("/api/v1")
	apiV1.Get("/", healthHandler.APIInfo)

	requireUser := middleware.RequireUser(deps.Resolver)
	requireAdmin := middleware.RequireAdmin(deps.Resolver)
	requireAny := middleware.RequireAny(deps.Resolver)

	// Auth routes
	authRoutes := apiV1.Group("/auth", middleware.NoCacheHeaders())
	authRoutes.Post("/login", middleware.AuthRateLimiter(), authHandler.Login)
	authRoutes.Post("/admin/login", middleware.AuthRateLimiter(), authHandler.AdminLogin)
	authRoutes.Post("/refresh", middleware.AuthRateLimiter(), authHandler.RefreshToken)
	authRoutes.Post("/logout", requireAny, authHandler.Logout)

	// Profile routes
	apiV1.Get("/me", requireAny, profileHandler.Me)
	apiV1.Get("/users/me", requireUser, profileHandler.UserMe)

	// Booking routes
	bookingRoutes := apiV1.Group("/bookings")
	bookingRoutes.Get("/mine", requireUser, middleware.PrivateCacheHeaders(30*time.Second), bookingHandler.Mine)
	bookingRoutes.Patch("/:id/cancel", requireAny, bookingHandler.Cancel)

	// Admin routes
	adminRoutes := apiV1.Group("/admin", requireAdmin)
	adminRoutes.Get("/me", profileHandler.AdminMe)
	adminRoutes.Get("/bookings", bookingHandler.List)
	adminRoutes.Post("/jobs/reconcile", middleware.NoCacheHeaders(), jobHandler.Reconcile)
}
