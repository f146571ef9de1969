package router

import (
	"github.com/labstack/echo/v4"

	"github.com/majidonaisy/seating-algo/internal/handler"
	"github.com/majidonaisy/seating-algo/internal/middleware"
)

// RegisterAdmin registers ADMIN-scoped endpoints under /v1: room and student
// management plus exam room restrictions. All routes require a valid JWT
// with the ADMIN role; STAFF users manage nothing, they only read
// allocation results.
func RegisterAdmin(e *echo.Echo, h *handler.AdminHandler, jwtSecret string) {
	g := e.Group(
		"/v1",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole("ADMIN"),
	)

	// ---- Rooms ----
	g.POST("/rooms", h.CreateRoom)
	g.GET("/rooms", h.ListRooms)
	g.GET("/rooms/:id", h.GetRoom)
	g.GET("/rooms/:id/grid", h.GetRoomGrid)
	g.PUT("/rooms/:id", h.UpdateRoom)
	g.PATCH("/rooms/:id", h.UpdateRoom)
	g.DELETE("/rooms/:id", h.DeleteRoom)

	// ---- Students ----
	g.POST("/students", h.CreateStudent)
	g.POST("/students/import", h.ImportStudents)
	g.GET("/students", h.ListStudents)
	g.PUT("/students/:id", h.UpdateStudent)
	g.PATCH("/students/:id", h.UpdateStudent)
	g.DELETE("/students/:id", h.DeleteStudent)

	// ---- Exam restrictions ----
	g.GET("/restrictions", h.ListRestrictions)
	g.PUT("/exams/:code/restrictions", h.PutExamRestrictions)
	g.GET("/exams/:code/restrictions", h.GetExamRestrictions)
	g.DELETE("/exams/:code/restrictions", h.DeleteExamRestrictions)
}
