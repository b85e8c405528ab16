package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/restaurant-floorplan/hub"
	"github.com/yeremiapane/restaurant-floorplan/models"
	"github.com/yeremiapane/restaurant-floorplan/services"
	"github.com/yeremiapane/restaurant-floorplan/utils"
)

type FloorController struct {
	Layouts      *services.LayoutStore
	Reservations *services.ReservationStore
	Resolver     *services.StatusResolver
	Hub          *hub.FloorHub
}

func NewFloorController(layouts *services.LayoutStore, reservations *services.ReservationStore, resolver *services.StatusResolver, h *hub.FloorHub) *FloorController {
	return &FloorController{Layouts: layouts, Reservations: reservations, Resolver: resolver, Hub: h}
}

// GetFloors -> daftar lantai restoran dengan layout default masing-masing
func (fc *FloorController) GetFloors(c *gin.Context) {
	restaurantID := c.Param("restaurant_id")
	floors := models.DemoFloors(restaurantID)
	for i := range floors {
		floors[i].Tables = fc.Layouts.GetDefault(c.Request.Context(), restaurantID, floors[i].ID)
	}
	utils.RespondJSON(c, http.StatusOK, "List of floors", floors)
}

// GetFloorTables -> layout lantai; dengan date & time statusnya dihitung dari reservasi
func (fc *FloorController) GetFloorTables(c *gin.Context) {
	restaurantID := c.Param("restaurant_id")
	floorID := c.Param("floor_id")
	date, t := c.Query("date"), c.Query("time")
	if err := validateDateTime(date, t); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	ctx := c.Request.Context()
	layout := models.Layout{Kind: models.LayoutDefault, FloorID: floorID}
	if date == "" || t == "" {
		layout.Tables = fc.Layouts.GetDefault(ctx, restaurantID, floorID)
	} else {
		reservations := fc.Reservations.List(ctx, restaurantID)
		base := fc.Layouts.GetSlot(ctx, restaurantID, floorID, date, t)
		layout.Kind = models.LayoutSlot
		layout.Date, layout.Time = date, t
		layout.Tables = fc.Resolver.ApplyStatuses(base, date, t, reservations)
	}
	utils.RespondJSON(c, http.StatusOK, "Floor layout", layout)
}

// SaveDefaultLayout -> simpan layout default lantai
func (fc *FloorController) SaveDefaultLayout(c *gin.Context) {
	restaurantID := c.Param("restaurant_id")
	floorID := c.Param("floor_id")
	var req struct {
		Tables []models.Table `json:"tables" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	for _, table := range req.Tables {
		if table.ID == "" || table.Number < 1 || table.Capacity < 1 || !table.Shape.Valid() {
			utils.RespondErrorData(c, http.StatusBadRequest, services.ErrInvalidTable, gin.H{"table_id": table.ID})
			return
		}
	}
	if id, err := services.CheckUniqueTables(req.Tables); err != nil {
		utils.RespondErrorData(c, http.StatusConflict, err, gin.H{"table_id": id})
		return
	}

	if err := fc.Layouts.SetDefault(c.Request.Context(), restaurantID, floorID, req.Tables); err != nil {
		respondServiceError(c, err)
		return
	}
	saved := fc.Layouts.GetDefault(c.Request.Context(), restaurantID, floorID)
	fc.Hub.BroadcastDefaultLayoutSaved(restaurantID, floorID, saved)

	utils.InfoLogger.Printf("Default layout saved: restaurant=%s floor=%s tables=%d", restaurantID, floorID, len(saved))
	utils.RespondJSON(c, http.StatusOK, "Default layout saved", models.Layout{
		Kind:    models.LayoutDefault,
		FloorID: floorID,
		Tables:  saved,
	})
}

// GetRecommendations -> saran meja untuk jumlah tamu pada date/time
func (fc *FloorController) GetRecommendations(c *gin.Context) {
	restaurantID := c.Param("restaurant_id")
	floorID := c.Param("floor_id")
	date, t := c.Query("date"), c.Query("time")
	if date == "" || t == "" {
		utils.RespondError(c, http.StatusBadRequest, &CustomError{"date and time are required"})
		return
	}
	if err := validateDateTime(date, t); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	guests, err := strconv.Atoi(c.Query("guests"))
	if err != nil || guests < 1 {
		utils.RespondError(c, http.StatusBadRequest, ErrInvalidGuests)
		return
	}

	ctx := c.Request.Context()
	reservations := fc.Reservations.List(ctx, restaurantID)
	tables := fc.Layouts.GetSlot(ctx, restaurantID, floorID, date, t)
	picked := services.RecommendTables(fc.Resolver, tables, guests, date, t, reservations)
	if picked == nil {
		picked = []models.Table{}
	}
	utils.RespondJSON(c, http.StatusOK, "Recommended tables", gin.H{
		"guests":   guests,
		"capacity": models.TotalCapacity(picked),
		"tables":   picked,
	})
}
