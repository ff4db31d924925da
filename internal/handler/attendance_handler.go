package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/alfurqan/prayertrack-backend/internal/model"
	"github.com/alfurqan/prayertrack-backend/internal/response"
	"github.com/alfurqan/prayertrack-backend/internal/service"
	"github.com/alfurqan/prayertrack-backend/internal/validator"
)

// AttendanceHandler handles attendance records (list, summary, upsert,
// delete).
type AttendanceHandler struct {
	attendanceService *service.AttendanceService
}

// NewAttendanceHandler creates a new AttendanceHandler.
func NewAttendanceHandler(attendanceService *service.AttendanceService) *AttendanceHandler {
	return &AttendanceHandler{attendanceService: attendanceService}
}

// ListAttendance godoc
// GET /api/v1/attendance?date=&className=&prayer=&studentId=
// Filters combine with AND; absent filters are ignored.
func (h *AttendanceHandler) ListAttendance(c *gin.Context) {
	var filter model.AttendanceFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidPayload)
		return
	}

	records, err := h.attendanceService.List(c.Request.Context(), filter)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"attendance": records})
}

// SummarizeAttendance godoc
// GET /api/v1/attendance/summary?date=&className=&prayer=&studentId=
// Groups the filtered records by date, then by prayer.
func (h *AttendanceHandler) SummarizeAttendance(c *gin.Context) {
	var filter model.AttendanceFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidPayload)
		return
	}

	summary, err := h.attendanceService.Summarize(c.Request.Context(), filter)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"summary": summary})
}

// UpsertAttendance godoc
// POST /api/v1/attendance
func (h *AttendanceHandler) UpsertAttendance(c *gin.Context) {
	var req model.UpsertAttendanceRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	rec, created, err := h.attendanceService.Upsert(c.Request.Context(), req)
	if err != nil {
		failFromError(c, err)
		return
	}

	response.Success(c, upsertStatus(created), gin.H{"attendance": rec})
}

// DeleteAttendance godoc
// DELETE /api/v1/attendance/:id
func (h *AttendanceHandler) DeleteAttendance(c *gin.Context) {
	removed, err := h.attendanceService.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		failFromError(c, err)
		return
	}
	if removed == nil {
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"attendance": removed})
}
