package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4" // import the Echo web framework to handle routing
	"github.com/redis/go-redis/v9"

	"github.com/kingola1/brinkett-booking/internal/config"
	"github.com/kingola1/brinkett-booking/internal/handler"
	"github.com/kingola1/brinkett-booking/internal/middleware"
)

// Deps bundles everything route registration needs: the handlers plus
// the Redis client and configs backing the rate limiter and the
// catalog cache.  Redis may be nil, in which case both middlewares
// degrade to pass-through.
type Deps struct {
	Cfg       config.Config
	Auth      *handler.AuthHandler
	Public    *handler.PublicHandler
	Bookings  *handler.BookingHandler
	Admin     *handler.AdminHandler
	AptAdmin  *handler.ApartmentAdminHandler
	Redis     *redis.Client
	Cache     config.CacheConfig
	RateLimit config.RateLimitConfig
}

// Register wires every route of the service onto the Echo instance.
//
// Public surface: health check, apartment catalog, availability,
// booking creation and lookup, settings read.  The catalog GETs sit
// behind the Redis response cache; availability deliberately does not,
// and booking creation sits behind the rate limiter instead.
//
// Admin surface: everything under /v1/admin plus apartment mutation,
// gated by JWT auth and the ADMIN role.
func Register(e *echo.Echo, d Deps) {
	e.GET("/healthz", handler.Health)

	cache := middleware.NewRedisCache(d.Cache, d.Redis)
	limit := middleware.NewTokenBucket(d.RateLimit, d.Redis)

	// Public catalog and settings (cacheable).
	e.GET("/v1/apartments", d.Public.ListApartments, cache)
	e.GET("/v1/apartments/:id", d.Public.GetApartment, cache)
	e.GET("/v1/settings", d.Public.GetSettings, cache)

	// Availability is read fresh on every request: caching here would
	// widen the window between the advisory read and admission.
	e.GET("/v1/apartments/:id/availability", d.Bookings.Availability)

	// Guest booking creation and lookup.
	e.POST("/v1/bookings", d.Bookings.Create, limit)
	e.GET("/v1/bookings/:id", d.Bookings.GetByID)

	// Admin login is open; everything else admin-side requires the
	// ADMIN role carried in the JWT.
	e.POST("/v1/auth/login", d.Auth.Login)

	admin := e.Group("/v1/admin")
	admin.Use(middleware.JWTAuth(d.Cfg.JWTSecret))
	admin.Use(middleware.RequireRole("ADMIN"))

	admin.GET("/me", d.Auth.Me)
	admin.GET("/dashboard", d.Admin.Dashboard)

	admin.GET("/bookings", d.Admin.ListBookings)
	admin.PUT("/bookings/:id", d.Admin.UpdateBookingStatus)
	admin.DELETE("/bookings/:id", d.Admin.DeleteBooking)

	admin.POST("/blocked-dates", d.Admin.AddBlockedDate)
	admin.DELETE("/blocked-dates/:id", d.Admin.RemoveBlockedDate)
	admin.GET("/apartments/:id/blocked-dates", d.Admin.ListBlockedDates)

	admin.POST("/apartments", d.AptAdmin.Create)
	admin.PUT("/apartments/:id", d.AptAdmin.Update)
	admin.DELETE("/apartments/:id", d.AptAdmin.Delete)
	admin.POST("/apartments/:id/photos", d.AptAdmin.AddPhoto)
	admin.DELETE("/apartments/:apartmentId/photos/:photoId", d.AptAdmin.DeletePhoto)
	admin.POST("/uploads", d.AptAdmin.Upload)

	admin.PUT("/settings", d.Admin.UpdateSetting)

	// Uploaded photos are served statically.
	e.Static("/uploads", d.Cfg.UploadDir)
}
