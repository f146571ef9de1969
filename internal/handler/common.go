package handler // handler defines http handlers

import (
    "errors"  // errors provides sentinel values used in getUserID
    "strconv" // strconv converts strings to numeric types

    "github.com/majidonaisy/seating-algo/internal/repository" // repository holds the data access layer
    "github.com/labstack/echo/v4"                             // echo defines request context types
)

// AdminHandler bundles the repositories admins use to manage rooms,
// students and exam restrictions.
type AdminHandler struct {
    RoomRepo        *repository.RoomRepo
    StudentRepo     *repository.StudentRepo
    RestrictionRepo *repository.RestrictionRepo
}

// NewAdminHandler constructs an AdminHandler and panics if any dependency is nil.
func NewAdminHandler(roomRepo *repository.RoomRepo, studentRepo *repository.StudentRepo, restrictionRepo *repository.RestrictionRepo) *AdminHandler {
    if roomRepo == nil || studentRepo == nil || restrictionRepo == nil {
        panic("nil repository passed to NewAdminHandler")
    }
    return &AdminHandler{
        RoomRepo:        roomRepo,
        StudentRepo:     studentRepo,
        RestrictionRepo: restrictionRepo,
    }
}

// getUserID extracts the user_id from echo.Context and converts it to uint64.
// JWT numeric claims arrive as float64; older tokens may carry strings.
func getUserID(c echo.Context) (uint64, error) {
    v := c.Get("user_id")
    switch t := v.(type) {
    case uint64:
        return t, nil
    case int:
        return uint64(t), nil
    case int64:
        return uint64(t), nil
    case float64:
        return uint64(t), nil
    case string:
        if n, err := strconv.ParseUint(t, 10, 64); err == nil {
            return n, nil
        }
    }
    return 0, errors.New("invalid user_id in context")
}
