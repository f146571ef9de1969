package handler

import (
    "errors"
    "net/http"
    "sort"
    "strings"

    "github.com/majidonaisy/seating-algo/internal/repository"
    "github.com/labstack/echo/v4"
)

type restrictionBody struct {
    RoomCodes []string `json:"room_codes"`
}

type restrictionResp struct {
    ExamCode  string   `json:"exam_code"`
    RoomCodes []string `json:"room_codes"`
}

// PutExamRestrictions handles PUT /v1/exams/:code/restrictions. The request
// body replaces the exam's allowlist wholesale. An empty room_codes array
// clears the restriction, same as DELETE: the table only stores allowed
// pairs, so "no rows" always reads as "all rooms allowed".
func (h *AdminHandler) PutExamRestrictions(c echo.Context) error {
    examCode := strings.TrimSpace(c.Param("code"))
    if examCode == "" {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "exam code is required"})
    }
    var body restrictionBody
    if err := c.Bind(&body); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
    }
    if body.RoomCodes == nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "room_codes is required (use [] to clear)"})
    }

    ctx := c.Request().Context()
    roomIDs := make([]uint64, 0, len(body.RoomCodes))
    for _, code := range body.RoomCodes {
        rm, err := h.RoomRepo.GetByCode(ctx, strings.TrimSpace(code))
        if err != nil {
            if errors.Is(err, repository.ErrRoomNotFound) {
                return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": "unknown room code: " + code})
            }
            return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
        }
        roomIDs = append(roomIDs, rm.ID)
    }

    if err := h.RestrictionRepo.Replace(ctx, examCode, roomIDs); err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not save restrictions"})
    }

    rows, err := h.RestrictionRepo.ListByExam(ctx, examCode)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
    }
    codes := make([]string, 0, len(rows))
    for _, r := range rows {
        codes = append(codes, r.RoomCode)
    }
    return c.JSON(http.StatusOK, restrictionResp{ExamCode: examCode, RoomCodes: codes})
}

// GetExamRestrictions handles GET /v1/exams/:code/restrictions. A 404 means
// the exam is unrestricted, not that it is unknown.
func (h *AdminHandler) GetExamRestrictions(c echo.Context) error {
    examCode := strings.TrimSpace(c.Param("code"))
    if examCode == "" {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "exam code is required"})
    }
    rows, err := h.RestrictionRepo.ListByExam(c.Request().Context(), examCode)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
    }
    if len(rows) == 0 {
        return c.JSON(http.StatusNotFound, echo.Map{"error": "exam has no restrictions"})
    }
    codes := make([]string, 0, len(rows))
    for _, r := range rows {
        codes = append(codes, r.RoomCode)
    }
    return c.JSON(http.StatusOK, restrictionResp{ExamCode: examCode, RoomCodes: codes})
}

// ListRestrictions handles GET /v1/restrictions, grouped by exam code.
func (h *AdminHandler) ListRestrictions(c echo.Context) error {
    byExam, err := h.RestrictionRepo.AllowedRoomCodes(c.Request().Context())
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
    }
    out := make([]restrictionResp, 0, len(byExam))
    for exam, codes := range byExam {
        out = append(out, restrictionResp{ExamCode: exam, RoomCodes: codes})
    }
    // map iteration order is random; keep the response stable
    sort.Slice(out, func(i, j int) bool { return out[i].ExamCode < out[j].ExamCode })
    return c.JSON(http.StatusOK, out)
}

// DeleteExamRestrictions handles DELETE /v1/exams/:code/restrictions and
// returns the exam to the unrestricted state.
func (h *AdminHandler) DeleteExamRestrictions(c echo.Context) error {
    examCode := strings.TrimSpace(c.Param("code"))
    if examCode == "" {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "exam code is required"})
    }
    if err := h.RestrictionRepo.Clear(c.Request().Context(), examCode); err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not clear restrictions"})
    }
    return c.NoContent(http.StatusNoContent)
}
