package handler

import (
    "database/sql"
    "errors"
    "net/http"
    "strconv"
    "time"

    "github.com/majidonaisy/seating-algo/internal/engine"
    "github.com/majidonaisy/seating-algo/internal/repository"
    "github.com/majidonaisy/seating-algo/internal/service"
    "github.com/labstack/echo/v4"
)

// AllocationHandler runs seat allocations and serves stored results.
type AllocationHandler struct {
    Svc           *service.AllocationService
    Repo          *repository.AllocationRepo
    Rooms         *repository.RoomRepo
    DefaultPolicy engine.Policy // from SOLVER_* env config
}

func NewAllocationHandler(svc *service.AllocationService, repo *repository.AllocationRepo, rooms *repository.RoomRepo, def engine.Policy) *AllocationHandler {
    if svc == nil || repo == nil || rooms == nil {
        panic("allocation handler requires service and repositories")
    }
    return &AllocationHandler{Svc: svc, Repo: repo, Rooms: rooms, DefaultPolicy: def}
}

type runAllocationReq struct {
    Policy string `json:"policy"` // "fail_fast" | "continue_partial"; empty keeps the server default
}

type allocationResp struct {
    ID              uint64 `json:"id"`
    Status          string `json:"status"`
    Policy          string `json:"policy"`
    StudentCount    int    `json:"student_count"`
    UnassignedCount int    `json:"unassigned_count"`
    RoomsUsed       int    `json:"rooms_used"`
    CreatedBy       uint64 `json:"created_by"`
    CreatedAt       string `json:"created_at"`
}

func toAllocationResp(a *repository.Allocation) allocationResp {
    return allocationResp{
        ID: a.ID, Status: a.Status, Policy: a.Policy,
        StudentCount: a.StudentCount, UnassignedCount: a.UnassignedCount,
        RoomsUsed: a.RoomsUsed, CreatedBy: a.CreatedBy,
        CreatedAt: a.CreatedAt.Format(time.RFC3339),
    }
}

type assignmentResp struct {
    StudentCode string `json:"student_code"`
    ExamCode    string `json:"exam_code"`
    RoomCode    string `json:"room_code"`
    SeatRow     int    `json:"seat_row"`
    SeatCol     int    `json:"seat_col"`
}

func toAssignmentResp(rows []repository.AssignmentRow) []assignmentResp {
    out := make([]assignmentResp, len(rows))
    for i, r := range rows {
        out[i] = assignmentResp{
            StudentCode: r.StudentCode, ExamCode: r.ExamCode,
            RoomCode: r.RoomCode, SeatRow: r.SeatRow, SeatCol: r.SeatCol,
        }
    }
    return out
}

// Run handles POST /v1/allocations: seats the whole current roster in one
// pass and stores the result. Engine failures are the caller's problem to
// fix (add rooms, loosen restrictions), so they map to 422 with a kind tag
// rather than 500.
func (h *AllocationHandler) Run(c echo.Context) error {
    userID, err := getUserID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }

    var req runAllocationReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
    }

    policy := h.DefaultPolicy
    switch req.Policy {
    case "":
    case "fail_fast":
        policy.OnUnassigned = engine.FailFast
    case "continue_partial":
        policy.OnUnassigned = engine.ContinuePartial
    default:
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "policy must be fail_fast or continue_partial"})
    }

    outcome, err := h.Svc.Run(c.Request().Context(), userID, policy)
    if err != nil {
        var capErr *engine.CapacityError
        var eligErr *engine.EligibilityError
        var placeErr *engine.PlacementError
        switch {
        case errors.As(err, &capErr):
            return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": "capacity", "detail": capErr.Error()})
        case errors.As(err, &eligErr):
            return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": "eligibility", "detail": eligErr.Error()})
        case errors.As(err, &placeErr):
            return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": "placement", "detail": placeErr.Error()})
        default:
            return c.JSON(http.StatusInternalServerError, echo.Map{"error": "allocation failed"})
        }
    }

    return c.JSON(http.StatusCreated, echo.Map{
        "allocation": toAllocationResp(&outcome.Allocation),
        "unassigned": outcome.Result.Unassigned,
    })
}

// List handles GET /v1/allocations?limit=N, newest first.
func (h *AllocationHandler) List(c echo.Context) error {
    limit, _ := strconv.Atoi(c.QueryParam("limit"))
    allocs, err := h.Repo.ListRecent(c.Request().Context(), limit)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
    }
    out := make([]allocationResp, 0, len(allocs))
    for i := range allocs {
        out = append(out, toAllocationResp(&allocs[i]))
    }
    return c.JSON(http.StatusOK, out)
}

// Get handles GET /v1/allocations/:id.
func (h *AllocationHandler) Get(c echo.Context) error {
    id, err := strconv.ParseUint(c.Param("id"), 10, 64)
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
    }
    alloc, err := h.Repo.GetByID(c.Request().Context(), id)
    if err != nil {
        if errors.Is(err, repository.ErrAllocationNotFound) {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "allocation not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
    }
    return c.JSON(http.StatusOK, toAllocationResp(alloc))
}

// Assignments handles GET /v1/allocations/:id/assignments, ordered by room
// then seat.
func (h *AllocationHandler) Assignments(c echo.Context) error {
    id, err := strconv.ParseUint(c.Param("id"), 10, 64)
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
    }
    if _, err := h.Repo.GetByID(c.Request().Context(), id); err != nil {
        if errors.Is(err, repository.ErrAllocationNotFound) {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "allocation not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
    }
    rows, err := h.Repo.Assignments(c.Request().Context(), id)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
    }
    return c.JSON(http.StatusOK, toAssignmentResp(rows))
}

// StudentSeat handles GET /v1/allocations/:id/students/:code. A student that
// exists but sat out the run (partial allocation) returns 404 with a
// distinct message from an unknown allocation.
func (h *AllocationHandler) StudentSeat(c echo.Context) error {
    id, err := strconv.ParseUint(c.Param("id"), 10, 64)
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
    }
    if _, err := h.Repo.GetByID(c.Request().Context(), id); err != nil {
        if errors.Is(err, repository.ErrAllocationNotFound) {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "allocation not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
    }
    row, err := h.Repo.AssignmentForStudent(c.Request().Context(), id, c.Param("code"))
    if err != nil {
        if errors.Is(err, sql.ErrNoRows) {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "student has no seat in this allocation"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
    }
    resp := toAssignmentResp([]repository.AssignmentRow{*row})
    return c.JSON(http.StatusOK, resp[0])
}

// RoomAssignments handles GET /v1/allocations/:id/rooms/:roomID/assignments.
func (h *AllocationHandler) RoomAssignments(c echo.Context) error {
    id, err := strconv.ParseUint(c.Param("id"), 10, 64)
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
    }
    roomID, err := strconv.ParseUint(c.Param("roomID"), 10, 64)
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid room id"})
    }
    rows, err := h.Repo.AssignmentsByRoom(c.Request().Context(), id, roomID)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
    }
    return c.JSON(http.StatusOK, toAssignmentResp(rows))
}

// RoomSeatMap handles GET /v1/allocations/:id/rooms/:roomID/seatmap and
// renders the proctor printout: a text grid of the room with each occupied
// seat labeled student(exam).
func (h *AllocationHandler) RoomSeatMap(c echo.Context) error {
    id, err := strconv.ParseUint(c.Param("id"), 10, 64)
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
    }
    roomID, err := strconv.ParseUint(c.Param("roomID"), 10, 64)
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid room id"})
    }

    ctx := c.Request().Context()
    rm, err := h.Rooms.GetByID(ctx, roomID)
    if err != nil {
        if errors.Is(err, repository.ErrRoomNotFound) {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "room not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
    }
    rows, err := h.Repo.AssignmentsByRoom(ctx, id, roomID)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
    }

    spec := service.RoomSpecsFromRows([]repository.Room{*rm})[0]
    assignment := make(engine.Assignment, len(rows))
    roster := make([]engine.Student, 0, len(rows))
    for _, r := range rows {
        assignment[r.StudentCode] = engine.Seat{Room: r.RoomCode, Row: r.SeatRow, Col: r.SeatCol}
        roster = append(roster, engine.Student{ID: r.StudentCode, Exam: r.ExamCode})
    }
    return c.String(http.StatusOK, engine.RenderSeatMap(spec, assignment, roster))
}
