package controllers

import (
	"errors"
	"net/http"
	"regexp"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/restaurant-floorplan/middlewares"
	"github.com/yeremiapane/restaurant-floorplan/services"
	"github.com/yeremiapane/restaurant-floorplan/utils"
)

type CustomError struct {
	Message string
}

func (e *CustomError) Error() string {
	return e.Message
}

var (
	ErrInvalidDate     = &CustomError{"date must use the YYYY-MM-DD format"}
	ErrInvalidTime     = &CustomError{"time must use the HH:MM format"}
	ErrInvalidGuests   = &CustomError{"guests must be a positive number"}
	ErrInvalidStatus   = &CustomError{"unknown reservation status"}
	ErrTableIDRequired = &CustomError{"table_id is required"}
	ErrRepeatedTableID = &CustomError{"table_ids must not list a table twice"}
)

var timeKeyPattern = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)

// validateDateTime -> tanggal & jam boleh kosong, tapi kalau diisi harus valid
func validateDateTime(date, t string) error {
	if date != "" {
		if _, err := time.Parse("2006-01-02", date); err != nil {
			return ErrInvalidDate
		}
	}
	if t != "" && !timeKeyPattern.MatchString(t) {
		return ErrInvalidTime
	}
	return nil
}

// respondServiceError maps service errors onto HTTP status codes.
func respondServiceError(c *gin.Context, err error) {
	var verr *services.ValidationError
	var cerr *CustomError
	switch {
	case errors.As(err, &verr):
		utils.RespondErrorData(c, http.StatusUnprocessableEntity, verr, gin.H{"field": verr.Field})
	case errors.As(err, &cerr):
		utils.RespondError(c, http.StatusBadRequest, cerr)
	case errors.Is(err, services.ErrTableNotFound),
		errors.Is(err, services.ErrCanvasNotFound),
		errors.Is(err, services.ErrReservationNotFound):
		utils.RespondError(c, http.StatusNotFound, err)
	case errors.Is(err, services.ErrTableLocked),
		errors.Is(err, services.ErrDuplicateTableNumber),
		errors.Is(err, services.ErrDuplicateTableID),
		errors.Is(err, services.ErrStaleLoad):
		utils.RespondError(c, http.StatusConflict, err)
	case errors.Is(err, services.ErrWrongMode),
		errors.Is(err, services.ErrCanvasNotMounted),
		errors.Is(err, services.ErrInvalidTable):
		utils.RespondError(c, http.StatusBadRequest, err)
	default:
		utils.ErrorLogger.Errorf("%s %s failed: %v", c.Request.Method, c.FullPath(), err)
		utils.RespondError(c, http.StatusInternalServerError, err)
	}
}

// managerID -> id manajer dari middleware, dipakai sebagai created_by
func managerID(c *gin.Context) string {
	return c.GetString(middlewares.ManagerIDKey)
}
