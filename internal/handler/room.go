package handler // handler package contains admin room management endpoints

import (
    "database/sql"
    "errors"
    "net/http"
    "strconv"
    "strings"
    "time"

    "github.com/majidonaisy/seating-algo/internal/engine"
    "github.com/majidonaisy/seating-algo/internal/repository"
    "github.com/labstack/echo/v4"
)

// roomBody is the JSON payload for creating or updating a room.
type roomBody struct {
    Code        string `json:"code"`
    SeatRows    int    `json:"seat_rows"`
    SeatCols    int    `json:"seat_cols"`
    SkipAltRows bool   `json:"skip_alt_rows"`
    SkipAltCols bool   `json:"skip_alt_cols"`
    RowStride   int    `json:"row_stride"`
    ColStride   int    `json:"col_stride"`
    IsActive    *bool  `json:"is_active"`
}

// specFromBody builds the engine grid spec used to validate a room payload
// before it touches the database. The engine owns the legality rules
// (positive dimensions, mutually exclusive skip forms), so both the API and
// the allocation run agree on what a valid room is.
func specFromBody(b roomBody) engine.RoomSpec {
    return engine.RoomSpec{
        ID:                strings.TrimSpace(b.Code),
        Rows:              b.SeatRows,
        Cols:              b.SeatCols,
        SkipAlternateRows: b.SkipAltRows,
        SkipAlternateCols: b.SkipAltCols,
        RowStride:         b.RowStride,
        ColStride:         b.ColStride,
    }
}

type roomResp struct {
    ID        uint64 `json:"id"`
    Code      string `json:"code"`
    SeatRows  int    `json:"seat_rows"`
    SeatCols  int    `json:"seat_cols"`
    SkipAltRows bool `json:"skip_alt_rows"`
    SkipAltCols bool `json:"skip_alt_cols"`
    RowStride int    `json:"row_stride"`
    ColStride int    `json:"col_stride"`
    Capacity  int    `json:"capacity"`
    IsActive  bool   `json:"is_active"`
    CreatedAt string `json:"created_at"`
    UpdatedAt string `json:"updated_at"`
}

func toRoomResp(rm *repository.Room) roomResp {
    spec := engine.RoomSpec{
        ID: rm.Code, Rows: rm.SeatRows, Cols: rm.SeatCols,
        SkipAlternateRows: rm.SkipAltRows, SkipAlternateCols: rm.SkipAltCols,
        RowStride: rm.RowStride, ColStride: rm.ColStride,
    }
    return roomResp{
        ID: rm.ID, Code: rm.Code, SeatRows: rm.SeatRows, SeatCols: rm.SeatCols,
        SkipAltRows: rm.SkipAltRows, SkipAltCols: rm.SkipAltCols,
        RowStride: rm.RowStride, ColStride: rm.ColStride,
        Capacity: spec.Capacity(), IsActive: rm.IsActive,
        CreatedAt: rm.CreatedAt.Format(time.RFC3339),
        UpdatedAt: rm.UpdatedAt.Format(time.RFC3339),
    }
}

// CreateRoom handles POST /v1/rooms.
func (h *AdminHandler) CreateRoom(c echo.Context) error {
    var body roomBody
    if err := c.Bind(&body); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
    }
    if err := specFromBody(body).Validate(); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
    }
    rm := &repository.Room{
        Code:        strings.TrimSpace(body.Code),
        SeatRows:    body.SeatRows,
        SeatCols:    body.SeatCols,
        SkipAltRows: body.SkipAltRows,
        SkipAltCols: body.SkipAltCols,
        RowStride:   body.RowStride,
        ColStride:   body.ColStride,
    }
    if err := h.RoomRepo.Create(c.Request().Context(), rm); err != nil {
        if errors.Is(err, repository.ErrRoomCodeExists) {
            return c.JSON(http.StatusConflict, echo.Map{"error": "room code already exists"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create room"})
    }
    return c.JSON(http.StatusCreated, toRoomResp(rm))
}

// ListRooms handles GET /v1/rooms. Use ?active=true to hide inactive rooms.
func (h *AdminHandler) ListRooms(c echo.Context) error {
    activeOnly := c.QueryParam("active") == "true"
    rooms, err := h.RoomRepo.List(c.Request().Context(), activeOnly)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
    }
    out := make([]roomResp, 0, len(rooms))
    for i := range rooms {
        out = append(out, toRoomResp(&rooms[i]))
    }
    return c.JSON(http.StatusOK, out)
}

// GetRoom handles GET /v1/rooms/:id.
func (h *AdminHandler) GetRoom(c echo.Context) error {
    id, err := strconv.ParseUint(c.Param("id"), 10, 64)
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
    }
    rm, err := h.RoomRepo.GetByID(c.Request().Context(), id)
    if err != nil {
        if errors.Is(err, repository.ErrRoomNotFound) {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "room not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
    }
    return c.JSON(http.StatusOK, toRoomResp(rm))
}

// UpdateRoom handles PUT/PATCH /v1/rooms/:id. Absent fields keep their
// current values; the merged spec is re-validated before writing.
func (h *AdminHandler) UpdateRoom(c echo.Context) error {
    id, err := strconv.ParseUint(c.Param("id"), 10, 64)
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
    }
    cur, err := h.RoomRepo.GetByID(c.Request().Context(), id)
    if err != nil {
        if errors.Is(err, repository.ErrRoomNotFound) {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "room not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
    }

    body := roomBody{
        Code:        cur.Code,
        SeatRows:    cur.SeatRows,
        SeatCols:    cur.SeatCols,
        SkipAltRows: cur.SkipAltRows,
        SkipAltCols: cur.SkipAltCols,
        RowStride:   cur.RowStride,
        ColStride:   cur.ColStride,
    }
    if err := c.Bind(&body); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
    }
    if err := specFromBody(body).Validate(); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
    }

    cur.Code = strings.TrimSpace(body.Code)
    cur.SeatRows = body.SeatRows
    cur.SeatCols = body.SeatCols
    cur.SkipAltRows = body.SkipAltRows
    cur.SkipAltCols = body.SkipAltCols
    cur.RowStride = body.RowStride
    cur.ColStride = body.ColStride
    if body.IsActive != nil {
        cur.IsActive = *body.IsActive
    }
    if err := h.RoomRepo.Update(c.Request().Context(), cur); err != nil {
        switch {
        case errors.Is(err, sql.ErrNoRows):
            return c.JSON(http.StatusNotFound, echo.Map{"error": "room not found"})
        case errors.Is(err, repository.ErrRoomCodeExists):
            return c.JSON(http.StatusConflict, echo.Map{"error": "room code already exists"})
        default:
            return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not update room"})
        }
    }
    return c.JSON(http.StatusOK, toRoomResp(cur))
}

// DeleteRoom handles DELETE /v1/rooms/:id.
func (h *AdminHandler) DeleteRoom(c echo.Context) error {
    id, err := strconv.ParseUint(c.Param("id"), 10, 64)
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
    }
    if err := h.RoomRepo.Delete(c.Request().Context(), id); err != nil {
        switch {
        case errors.Is(err, sql.ErrNoRows):
            return c.JSON(http.StatusNotFound, echo.Map{"error": "room not found"})
        case errors.Is(err, repository.ErrConflict):
            return c.JSON(http.StatusConflict, echo.Map{"error": "room is referenced by stored allocations"})
        default:
            return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not delete room"})
        }
    }
    return c.NoContent(http.StatusNoContent)
}

// GetRoomGrid handles GET /v1/rooms/:id/grid and returns the room's legal
// seat coordinates, so clients can preview a layout before any allocation.
func (h *AdminHandler) GetRoomGrid(c echo.Context) error {
    id, err := strconv.ParseUint(c.Param("id"), 10, 64)
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
    }
    rm, err := h.RoomRepo.GetByID(c.Request().Context(), id)
    if err != nil {
        if errors.Is(err, repository.ErrRoomNotFound) {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "room not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
    }
    spec := engine.RoomSpec{
        ID: rm.Code, Rows: rm.SeatRows, Cols: rm.SeatCols,
        SkipAlternateRows: rm.SkipAltRows, SkipAlternateCols: rm.SkipAltCols,
        RowStride: rm.RowStride, ColStride: rm.ColStride,
    }
    type seatResp struct {
        Row int `json:"row"`
        Col int `json:"col"`
    }
    seats := spec.Grid()
    out := make([]seatResp, len(seats))
    for i, s := range seats {
        out[i] = seatResp{Row: s.Row, Col: s.Col}
    }
    return c.JSON(http.StatusOK, echo.Map{
        "room":     rm.Code,
        "capacity": len(seats),
        "seats":    out,
    })
}
