package router

import (
	"github.com/labstack/echo/v4"

	"github.com/majidonaisy/seating-algo/internal/handler"
	"github.com/majidonaisy/seating-algo/internal/middleware"
)

// RegisterAllocations registers the allocation endpoints under /v1. Running
// an allocation is ADMIN-only; both ADMIN and STAFF read stored results.
// Results are immutable once stored so there are no update or delete routes.
func RegisterAllocations(e *echo.Echo, h *handler.AllocationHandler, jwtSecret string, extra ...echo.MiddlewareFunc) {
	g := e.Group(
		"/v1/allocations",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole("ADMIN", "STAFF"),
	)
	// The caller may append e.g. a read cache; it runs after auth so cache
	// keys never bypass the role check.
	g.Use(extra...)

	g.POST("", h.Run, middleware.RequireRole("ADMIN"))
	g.GET("", h.List)
	g.GET("/:id", h.Get)
	g.GET("/:id/assignments", h.Assignments)
	g.GET("/:id/students/:code", h.StudentSeat)
	g.GET("/:id/rooms/:roomID/assignments", h.RoomAssignments)
	g.GET("/:id/rooms/:roomID/seatmap", h.RoomSeatMap)
}
