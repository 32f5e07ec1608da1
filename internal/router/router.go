package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4" // import the Echo web framework to handle routing

	"github.com/iliyamo/hotel-reservation/internal/handler"    // import the handlers that implement business logic
	"github.com/iliyamo/hotel-reservation/internal/middleware" // import middleware for session authentication and role enforcement
)

// RegisterRoutes registers routes that do not require authentication on the
// provided Echo instance.  Currently it exposes only a health check, which
// load balancers and monitoring systems use to verify the service is up.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterPublic registers the guest-facing endpoints: catalog browsing,
// room detail, price quotes, guest upsert, booking creation and the
// reservation code lookup.  None of these require authentication.  The
// optional middleware (typically the Redis response cache) is applied to
// the read-only catalog routes only; mutations are never cached.
func RegisterPublic(e *echo.Echo, rooms *handler.RoomHandler, guests *handler.GuestHandler, bookings *handler.BookingHandler, lookup *handler.LookupHandler, cache ...echo.MiddlewareFunc) {
	// Read-only catalog routes, safe to cache.
	g := e.Group("/v1", cache...)
	g.GET("/rooms", rooms.ListRooms)
	g.GET("/rooms/types", rooms.ListRoomTypes)
	g.GET("/rooms/:id", rooms.GetRoom)
	g.GET("/rooms/:id/quote", rooms.GetQuote)
	g.GET("/hotels", rooms.ListHotels)

	// The lookup reflects payment status changes immediately, so it is
	// registered outside the cached group.
	e.GET("/v1/reservations/check", lookup.CheckReservation)

	// Mutations.
	e.POST("/v1/guests", guests.UpsertGuest)
	e.POST("/v1/bookings", bookings.CreateBooking)
}

// RegisterAdmin registers the operator console routes.  Login lives under
// /v1/admin/login without authentication; every other admin endpoint is
// wrapped by the AdminAuth middleware using the provided secret, plus a
// role guard that only accepts the ADMIN role claim.
func RegisterAdmin(e *echo.Echo, a *handler.AdminHandler, jwtSecret string) {
	e.POST("/v1/admin/login", a.Login)

	g := e.Group("/v1/admin")
	g.Use(middleware.AdminAuth(jwtSecret))
	g.Use(middleware.RequireRole("ADMIN"))
	g.GET("/payments", a.ListPayments)
	g.PUT("/payments", a.UpdatePaymentStatus)
}
