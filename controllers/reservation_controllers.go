package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/restaurant-floorplan/hub"
	"github.com/yeremiapane/restaurant-floorplan/models"
	"github.com/yeremiapane/restaurant-floorplan/services"
	"github.com/yeremiapane/restaurant-floorplan/utils"
)

type ReservationController struct {
	Layouts      *services.LayoutStore
	Reservations *services.ReservationStore
	Resolver     *services.StatusResolver
	Finalizer    *services.Finalizer
	Hub          *hub.FloorHub
}

func NewReservationController(layouts *services.LayoutStore, reservations *services.ReservationStore, resolver *services.StatusResolver, finalizer *services.Finalizer, h *hub.FloorHub) *ReservationController {
	return &ReservationController{
		Layouts:      layouts,
		Reservations: reservations,
		Resolver:     resolver,
		Finalizer:    finalizer,
		Hub:          h,
	}
}

// GetReservations -> semua reservasi restoran, bisa difilter per tanggal
func (rc *ReservationController) GetReservations(c *gin.Context) {
	restaurantID := c.Param("restaurant_id")
	date := c.Query("date")
	if err := validateDateTime(date, ""); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	list := rc.Reservations.List(c.Request.Context(), restaurantID)
	if date != "" {
		list = services.SortNewestFirst(services.ForDate(list, date))
	}
	utils.RespondJSON(c, http.StatusOK, "List of reservations", list)
}

type createReservationRequest struct {
	FloorID  string   `json:"floor_id" binding:"required"`
	Date     string   `json:"date"`
	Time     string   `json:"time"`
	Guests   int      `json:"guests"`
	Name     string   `json:"name"`
	Phone    string   `json:"phone"`
	Email    string   `json:"email"`
	Notes    string   `json:"notes"`
	TableIDs []string `json:"table_ids"`
}

// CreateReservation -> finalisasi reservasi dengan daftar meja eksplisit
func (rc *ReservationController) CreateReservation(c *gin.Context) {
	restaurantID := c.Param("restaurant_id")
	var req createReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	if err := validateDateTime(req.Date, req.Time); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	ctx := c.Request.Context()
	reservations := rc.Reservations.List(ctx, restaurantID)
	base := rc.Layouts.GetSlot(ctx, restaurantID, req.FloorID, req.Date, req.Time)
	layout := rc.Resolver.ApplyStatuses(base, req.Date, req.Time, reservations)

	selected := make([]models.Table, 0, len(req.TableIDs))
	seen := make(map[string]bool, len(req.TableIDs))
	for _, id := range req.TableIDs {
		if seen[id] {
			utils.RespondErrorData(c, http.StatusBadRequest, ErrRepeatedTableID, gin.H{"table_id": id})
			return
		}
		seen[id] = true
		table, ok := findTable(layout, id)
		if !ok {
			utils.RespondErrorData(c, http.StatusNotFound, services.ErrTableNotFound, gin.H{"table_id": id})
			return
		}
		if !table.IsAvailable() {
			utils.RespondErrorData(c, http.StatusConflict, services.ErrTableLocked, gin.H{"table_id": id, "status": table.Status})
			return
		}
		selected = append(selected, table)
	}

	draft := models.ReservationDraft{
		Date:      req.Date,
		Time:      req.Time,
		Guests:    req.Guests,
		Name:      req.Name,
		Phone:     req.Phone,
		Email:     req.Email,
		Notes:     req.Notes,
		CreatedBy: managerID(c),
	}
	reservation, err := rc.Finalizer.Finalize(ctx, restaurantID, req.FloorID, draft, selected, layout)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	rc.Hub.BroadcastReservationCreated(*reservation)
	utils.RespondJSON(c, http.StatusCreated, "Reservation created successfully", reservation)
}

// CancelReservation -> status cancelled, meja kembali available
func (rc *ReservationController) CancelReservation(c *gin.Context) {
	rc.updateStatus(c, models.ReservationCancelled)
}

// CompleteReservation -> status completed
func (rc *ReservationController) CompleteReservation(c *gin.Context) {
	rc.updateStatus(c, models.ReservationCompleted)
}

func (rc *ReservationController) updateStatus(c *gin.Context, status models.ReservationStatus) {
	restaurantID := c.Param("restaurant_id")
	reservationID := c.Param("reservation_id")
	if !status.Valid() {
		utils.RespondError(c, http.StatusBadRequest, ErrInvalidStatus)
		return
	}

	updated, err := rc.Reservations.SetStatus(c.Request.Context(), restaurantID, reservationID, status)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	rc.Hub.BroadcastReservationUpdated(*updated)
	utils.InfoLogger.Printf("Reservation %s changed to %s", updated.ID, updated.Status)
	utils.RespondJSON(c, http.StatusOK, "Reservation status updated", updated)
}

func findTable(tables []models.Table, id string) (models.Table, bool) {
	for _, t := range tables {
		if t.ID == id {
			return t, true
		}
	}
	return models.Table{}, false
}
