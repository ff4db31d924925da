package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/alfurqan/prayertrack-backend/internal/model"
	"github.com/alfurqan/prayertrack-backend/internal/response"
	"github.com/alfurqan/prayertrack-backend/internal/service"
	"github.com/alfurqan/prayertrack-backend/internal/validator"
)

// ClassHandler handles class management (list, upsert, delete).
type ClassHandler struct {
	classService *service.ClassService
}

// NewClassHandler creates a new ClassHandler.
func NewClassHandler(classService *service.ClassService) *ClassHandler {
	return &ClassHandler{classService: classService}
}

// ListClasses godoc
// GET /api/v1/classes
func (h *ClassHandler) ListClasses(c *gin.Context) {
	classes, err := h.classService.List(c.Request.Context())
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"classes": classes})
}

// UpsertClass godoc
// POST /api/v1/classes
// Creates the class when the ID is new, replaces it otherwise.
func (h *ClassHandler) UpsertClass(c *gin.Context) {
	var req model.UpsertClassRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	class, created, err := h.classService.Upsert(c.Request.Context(), req)
	if err != nil {
		failFromError(c, err)
		return
	}

	response.Success(c, upsertStatus(created), gin.H{"class": class})
}

// DeleteClass godoc
// DELETE /api/v1/classes/:id
// Deletes a class and, by name match, its students.
func (h *ClassHandler) DeleteClass(c *gin.Context) {
	removed, err := h.classService.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		failFromError(c, err)
		return
	}
	if removed == nil {
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"class": removed})
}
