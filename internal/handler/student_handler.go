package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/alfurqan/prayertrack-backend/internal/model"
	"github.com/alfurqan/prayertrack-backend/internal/response"
	"github.com/alfurqan/prayertrack-backend/internal/service"
	"github.com/alfurqan/prayertrack-backend/internal/validator"
)

// StudentHandler handles student management (list, upsert, delete).
type StudentHandler struct {
	studentService *service.StudentService
}

// NewStudentHandler creates a new StudentHandler.
func NewStudentHandler(studentService *service.StudentService) *StudentHandler {
	return &StudentHandler{studentService: studentService}
}

// ListStudents godoc
// GET /api/v1/students?className=
// Lists all students, or only those of one class when className is set.
func (h *StudentHandler) ListStudents(c *gin.Context) {
	students, err := h.studentService.List(c.Request.Context(), c.Query("className"))
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"students": students})
}

// UpsertStudent godoc
// POST /api/v1/students
func (h *StudentHandler) UpsertStudent(c *gin.Context) {
	var req model.UpsertStudentRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	student, created, err := h.studentService.Upsert(c.Request.Context(), req)
	if err != nil {
		failFromError(c, err)
		return
	}

	response.Success(c, upsertStatus(created), gin.H{"student": student})
}

// DeleteStudent godoc
// DELETE /api/v1/students/:id
// Deletes a student and, by student ID, their attendance records.
func (h *StudentHandler) DeleteStudent(c *gin.Context) {
	removed, err := h.studentService.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		failFromError(c, err)
		return
	}
	if removed == nil {
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"student": removed})
}
