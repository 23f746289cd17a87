package router // package router defines how HTTP routes are registered for the API

import (
    "github.com/labstack/echo/v4" // import the Echo web framework to handle routing
    "github.com/redis/go-redis/v9"

    "github.com/worapol/banquet-booking/internal/config"
    "github.com/worapol/banquet-booking/internal/handler"    // import the handlers that implement business logic
    "github.com/worapol/banquet-booking/internal/middleware" // import middleware for JWT authentication and role enforcement
)

// RegisterRoutes registers routes that do not require authentication on the
// provided Echo instance.  Currently it exposes only a health check.
func RegisterRoutes(e *echo.Echo) {
    // Map the GET request at path "/healthz" to the Health handler.  This
    // endpoint can be used by load balancers or monitoring systems to verify
    // that the service is up and running.
    e.GET("/healthz", handler.Health)
}

// RegisterPublic registers the guest-facing booking routes.  Nobody logs in
// to book a seat, so both endpoints are unauthenticated; the availability
// endpoint sits behind the Redis response cache and the rate limiter when a
// Redis client is available, because it is hit by every page load.
func RegisterPublic(e *echo.Echo, av *handler.AvailabilityHandler, b *handler.BookingHandler, rdb *redis.Client) {
    if rdb == nil {
        // Degraded mode: no Redis, so no caching or throttling.
        e.GET("/v1/availability", av.Get)
        e.POST("/v1/bookings", b.Create)
        return
    }

    rl := config.LoadRateLimitConfig()
    cc := config.LoadCacheConfig()
    limited := e.Group("")
    limited.Use(middleware.NewTokenBucket(rl, rdb))
    limited.GET("/v1/availability", av.Get, middleware.NewRedisCache(cc, rdb))
    limited.POST("/v1/bookings", b.Create)
}

// RegisterAuth registers the staff login route and the token-protected
// routes.  Unauthenticated operations live under /v1/auth, while protected
// endpoints live under /v1 and /v1/admin.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, admin *handler.AdminHandler, av *handler.AvailabilityHandler, jwtSecret string) {
    // Route group under /v1/auth for operations that do not require an
    // existing session.  There is no self-service registration: staff
    // accounts come from configuration.
    g := e.Group("/v1/auth")
    g.POST("/login", a.Login)

    // All handlers registered on this group execute the JWTAuth middleware
    // before being invoked, then the role check.  Only the ADMIN role exists.
    auth := e.Group("/v1")
    auth.Use(middleware.JWTAuth(jwtSecret))
    auth.Use(middleware.RequireRole("ADMIN"))

    // Returns the authenticated staff member's information.
    auth.GET("/me", a.Me)

    // Admin booking desk.  The availability route here is the same handler
    // as the public one, but the admin identity unlocks occupant labels and
    // the ?exclude= parameter used while editing.
    auth.GET("/admin/availability", av.Get)
    auth.GET("/admin/bookings", admin.List)
    auth.GET("/admin/stats", admin.Stats)
    auth.PUT("/admin/bookings/:id", admin.Update)
    auth.POST("/admin/bookings/:id/cancel", admin.Cancel)
    auth.POST("/admin/bookings/:id/confirm-payment", admin.ConfirmPayment)
}
