package handler

import (
    "database/sql"
    "errors"
    "net/http"
    "strconv"
    "strings"
    "time"

    "github.com/majidonaisy/seating-algo/internal/repository"
    "github.com/labstack/echo/v4"
)

type studentBody struct {
    Code     string `json:"code"`
    FullName string `json:"full_name"`
    ExamCode string `json:"exam_code"`
}

func (b studentBody) validate() error {
    if strings.TrimSpace(b.Code) == "" {
        return errors.New("code is required")
    }
    if strings.TrimSpace(b.ExamCode) == "" {
        return errors.New("exam_code is required")
    }
    return nil
}

type studentResp struct {
    ID       uint64 `json:"id"`
    Code     string `json:"code"`
    FullName string `json:"full_name"`
    ExamCode string `json:"exam_code"`
    CreatedAt string `json:"created_at"`
}

func toStudentResp(s *repository.Student) studentResp {
    return studentResp{
        ID: s.ID, Code: s.Code, FullName: s.FullName, ExamCode: s.ExamCode,
        CreatedAt: s.CreatedAt.Format(time.RFC3339),
    }
}

// CreateStudent handles POST /v1/students.
func (h *AdminHandler) CreateStudent(c echo.Context) error {
    var body studentBody
    if err := c.Bind(&body); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
    }
    if err := body.validate(); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
    }
    st := &repository.Student{
        Code:     strings.TrimSpace(body.Code),
        FullName: strings.TrimSpace(body.FullName),
        ExamCode: strings.TrimSpace(body.ExamCode),
    }
    if err := h.StudentRepo.Create(c.Request().Context(), st); err != nil {
        if errors.Is(err, repository.ErrStudentCodeExists) {
            return c.JSON(http.StatusConflict, echo.Map{"error": "student code already exists"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create student"})
    }
    return c.JSON(http.StatusCreated, toStudentResp(st))
}

// ImportStudents handles POST /v1/students/import with a JSON array of
// student records. The whole batch is inserted in one statement; a single
// duplicate code fails the entire import.
func (h *AdminHandler) ImportStudents(c echo.Context) error {
    var bodies []studentBody
    if err := c.Bind(&bodies); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
    }
    if len(bodies) == 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "empty student list"})
    }
    students := make([]repository.Student, 0, len(bodies))
    for i, b := range bodies {
        if err := b.validate(); err != nil {
            return c.JSON(http.StatusBadRequest, echo.Map{"error": "record " + strconv.Itoa(i) + ": " + err.Error()})
        }
        students = append(students, repository.Student{
            Code:     strings.TrimSpace(b.Code),
            FullName: strings.TrimSpace(b.FullName),
            ExamCode: strings.TrimSpace(b.ExamCode),
        })
    }
    if err := h.StudentRepo.CreateBulk(c.Request().Context(), students); err != nil {
        if errors.Is(err, repository.ErrStudentCodeExists) {
            return c.JSON(http.StatusConflict, echo.Map{"error": "duplicate student code in import"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not import students"})
    }
    return c.JSON(http.StatusCreated, echo.Map{"imported": len(students)})
}

// ListStudents handles GET /v1/students. Use ?exam=CODE to filter one exam.
func (h *AdminHandler) ListStudents(c echo.Context) error {
    students, err := h.StudentRepo.List(c.Request().Context(), c.QueryParam("exam"))
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
    }
    out := make([]studentResp, 0, len(students))
    for i := range students {
        out = append(out, toStudentResp(&students[i]))
    }
    return c.JSON(http.StatusOK, out)
}

// UpdateStudent handles PUT /v1/students/:id.
func (h *AdminHandler) UpdateStudent(c echo.Context) error {
    id, err := strconv.ParseUint(c.Param("id"), 10, 64)
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
    }
    cur, err := h.StudentRepo.GetByID(c.Request().Context(), id)
    if err != nil {
        if errors.Is(err, repository.ErrStudentNotFound) {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "student not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
    }
    body := studentBody{Code: cur.Code, FullName: cur.FullName, ExamCode: cur.ExamCode}
    if err := c.Bind(&body); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
    }
    if err := body.validate(); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
    }
    cur.Code = strings.TrimSpace(body.Code)
    cur.FullName = strings.TrimSpace(body.FullName)
    cur.ExamCode = strings.TrimSpace(body.ExamCode)
    if err := h.StudentRepo.Update(c.Request().Context(), cur); err != nil {
        switch {
        case errors.Is(err, sql.ErrNoRows):
            return c.JSON(http.StatusNotFound, echo.Map{"error": "student not found"})
        case errors.Is(err, repository.ErrStudentCodeExists):
            return c.JSON(http.StatusConflict, echo.Map{"error": "student code already exists"})
        default:
            return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not update student"})
        }
    }
    return c.JSON(http.StatusOK, toStudentResp(cur))
}

// DeleteStudent handles DELETE /v1/students/:id.
func (h *AdminHandler) DeleteStudent(c echo.Context) error {
    id, err := strconv.ParseUint(c.Param("id"), 10, 64)
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
    }
    if err := h.StudentRepo.Delete(c.Request().Context(), id); err != nil {
        switch {
        case errors.Is(err, sql.ErrNoRows):
            return c.JSON(http.StatusNotFound, echo.Map{"error": "student not found"})
        case errors.Is(err, repository.ErrConflict):
            return c.JSON(http.StatusConflict, echo.Map{"error": "student is referenced by stored allocations"})
        default:
            return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not delete student"})
        }
    }
    return c.NoContent(http.StatusNoContent)
}
