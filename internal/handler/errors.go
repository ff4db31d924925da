package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/alfurqan/prayertrack-backend/internal/repository"
	"github.com/alfurqan/prayertrack-backend/internal/response"
)

// failFromError maps repository errors onto the response envelope:
// validation problems become 400 with per-field details, anything else
// is a persistence failure and becomes 500.
func failFromError(c *gin.Context, err error) {
	var ve *repository.ValidationError
	if errors.As(err, &ve) {
		fields := make(map[string]string, len(ve.Fields))
		for _, f := range ve.Fields {
			fields[f] = "This field is required."
		}
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}
	response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
}

// upsertStatus picks 201 for a create and 200 for an in-place replace.
func upsertStatus(created bool) int {
	if created {
		return http.StatusCreated
	}
	return http.StatusOK
}
