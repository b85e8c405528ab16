package Controllers_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yeremiapane/restaurant-floorplan/controllers"
	"github.com/yeremiapane/restaurant-floorplan/middlewares"
	"github.com/yeremiapane/restaurant-floorplan/router"
	"github.com/yeremiapane/restaurant-floorplan/storage"
)

func setupReservationRouter(deps *router.Dependencies) *gin.Engine {
	r := gin.New()
	r.Use(middlewares.ManagerContext())
	ctrl := controllers.NewReservationController(deps.Layouts, deps.Reservations, deps.Resolver, deps.Finalizer, deps.Hub)
	r.GET("/restaurants/:restaurant_id/reservations", ctrl.GetReservations)
	r.POST("/restaurants/:restaurant_id/reservations", ctrl.CreateReservation)
	r.PATCH("/restaurants/:restaurant_id/reservations/:reservation_id/cancel", ctrl.CancelReservation)
	r.PATCH("/restaurants/:restaurant_id/reservations/:reservation_id/complete", ctrl.CompleteReservation)
	return r
}

func reservationPayload(guests int, tableIDs ...string) gin.H {
	return gin.H{
		"floor_id":  "floor-1",
		"date":      "2025-01-10",
		"time":      "19:00",
		"guests":    guests,
		"name":      "John Smith",
		"phone":     "+100",
		"table_ids": tableIDs,
	}
}

func TestCreateReservation(t *testing.T) {
	deps, kv := setupDeps("2025-01-10T12:00")
	r := setupReservationRouter(deps)

	w, response := doJSON(t, r, http.MethodPost, "/restaurants/R1/reservations", reservationPayload(4, "table-4"))
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "Reservation created successfully", response["message"])
	data := response["data"].(map[string]interface{})
	assert.Equal(t, "confirmed", data["status"])
	assert.Equal(t, "manager-1", data["created_by"])
	assert.Equal(t, []interface{}{"table-4"}, data["table_ids"])

	// 4 slot keys + daftar reservasi
	assert.Equal(t, 5, kv.Len())

	// meja yang sama tidak bisa dipesan lagi di jam yang overlap
	w, response = doJSON(t, r, http.MethodPost, "/restaurants/R1/reservations", reservationPayload(2, "table-4"))
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "table-4", response["data"].(map[string]interface{})["table_id"])
}

func TestCreateReservationValidation(t *testing.T) {
	deps, kv := setupDeps("2025-01-10T12:00")
	r := setupReservationRouter(deps)

	w, response := doJSON(t, r, http.MethodPost, "/restaurants/R1/reservations", reservationPayload(5, "table-4"))
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, "Selected tables do not have enough capacity for these guests", response["message"])
	assert.Equal(t, "capacity", response["data"].(map[string]interface{})["field"])
	assert.Equal(t, 0, kv.Len())

	w, response = doJSON(t, r, http.MethodPost, "/restaurants/R1/reservations", reservationPayload(2))
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, "Select at least one available table on the canvas", response["message"])

	w, _ = doJSON(t, r, http.MethodPost, "/restaurants/R1/reservations", reservationPayload(2, "table-99"))
	assert.Equal(t, http.StatusNotFound, w.Code)

	payload := reservationPayload(2, "table-1")
	delete(payload, "floor_id")
	w, _ = doJSON(t, r, http.MethodPost, "/restaurants/R1/reservations", payload)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, 0, kv.Len())
}

func TestCreateReservationRepeatedTable(t *testing.T) {
	deps, kv := setupDeps("2025-01-10T12:00")
	r := setupReservationRouter(deps)

	// table-4 cuma 4 kursi, tidak boleh dihitung dua kali
	w, response := doJSON(t, r, http.MethodPost, "/restaurants/R1/reservations", reservationPayload(8, "table-4", "table-4"))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "table_ids must not list a table twice", response["message"])
	assert.Equal(t, "table-4", response["data"].(map[string]interface{})["table_id"])
	assert.Equal(t, 0, kv.Len())
	assert.Empty(t, deps.Reservations.List(context.Background(), "R1"))
}

func TestListAndUpdateReservations(t *testing.T) {
	deps, _ := setupDeps("2025-01-10T12:00")
	r := setupReservationRouter(deps)

	w, response := doJSON(t, r, http.MethodPost, "/restaurants/R1/reservations", reservationPayload(2, "table-1"))
	require.Equal(t, http.StatusCreated, w.Code)
	id := response["data"].(map[string]interface{})["id"].(string)

	w, response = doJSON(t, r, http.MethodGet, "/restaurants/R1/reservations?date=2025-01-10", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, response["data"], 1)

	w, response = doJSON(t, r, http.MethodGet, "/restaurants/R1/reservations?date=2025-01-11", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, response["data"], 0)

	w, response = doJSON(t, r, http.MethodPatch, "/restaurants/R1/reservations/"+id+"/cancel", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "cancelled", response["data"].(map[string]interface{})["status"])

	// setelah dibatalkan, meja available lagi
	list := deps.Reservations.List(context.Background(), "R1")
	assert.Equal(t, "available", string(deps.Resolver.Resolve("table-1", "2025-01-10", "19:30", list)))

	w, _ = doJSON(t, r, http.MethodPatch, "/restaurants/R1/reservations/"+id+"/complete", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w, _ = doJSON(t, r, http.MethodPatch, "/restaurants/R1/reservations/missing/cancel", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

// downKV simulates a storage backend that is unreachable.
type downKV struct{}

func (downKV) Get(context.Context, string) ([]byte, bool, error) {
	return nil, false, errors.New("connection refused")
}

func (downKV) Set(context.Context, string, []byte) error {
	return errors.New("connection refused")
}

func TestUpdateReservationBackendDown(t *testing.T) {
	deps := router.NewDependencies(downKV{}, storage.NewKeys(""), time.Now, time.UTC, time.Hour)
	r := setupReservationRouter(deps)

	w, response := doJSON(t, r, http.MethodPatch, "/restaurants/R1/reservations/reservation-1/cancel", nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, false, response["status"])
}
