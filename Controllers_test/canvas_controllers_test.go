package Controllers_test

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yeremiapane/restaurant-floorplan/router"
)

func openTestCanvas(t *testing.T, r http.Handler, date, tm string) string {
	t.Helper()
	w, response := doJSON(t, r, http.MethodPost, "/canvases", gin.H{
		"restaurant_id": "R1",
		"floor_id":      "floor-1",
		"date":          date,
		"time":          tm,
		"width":         800,
		"height":        600,
	})
	require.Equal(t, http.StatusCreated, w.Code)
	return response["data"].(map[string]interface{})["id"].(string)
}

func TestCanvasEditFlow(t *testing.T) {
	deps, kv := setupDeps("2025-01-10T12:00")
	r := router.SetupRouter(deps)
	id := openTestCanvas(t, r, "", "")
	base := "/canvases/" + id

	w, _ := doJSON(t, r, http.MethodPost, base+"/drag", gin.H{"table_id": "table-1", "x": 10, "y": 10})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, response := doJSON(t, r, http.MethodPost, base+"/mode", gin.H{"mode": "edit"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "edit", response["data"].(map[string]interface{})["mode"])

	w, response = doJSON(t, r, http.MethodPost, base+"/drag", gin.H{"table_id": "table-1", "x": 5000, "y": -20})
	require.Equal(t, http.StatusOK, w.Code)
	pos := response["data"].(map[string]interface{})["position"].(map[string]interface{})
	assert.Equal(t, float64(724), pos["x"])
	assert.Equal(t, float64(4), pos["y"])

	w, response = doJSON(t, r, http.MethodPost, base+"/tables", gin.H{"shape": "circle", "size": "large"})
	require.Equal(t, http.StatusCreated, w.Code)
	added := response["data"].(map[string]interface{})
	assert.Equal(t, float64(9), added["number"])
	assert.Equal(t, float64(6), added["capacity"])

	w, _ = doJSON(t, r, http.MethodPost, base+"/tables", gin.H{"number": 2, "shape": "square", "capacity": 4})
	assert.Equal(t, http.StatusConflict, w.Code)

	w, response = doJSON(t, r, http.MethodPatch, base+"/tables/table-2", gin.H{"size": "medium"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(4), response["data"].(map[string]interface{})["capacity"])

	w, _ = doJSON(t, r, http.MethodDelete, base+"/tables/table-3", nil)
	require.Equal(t, http.StatusOK, w.Code)

	w, response = doJSON(t, r, http.MethodPost, base+"/default", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, response["data"].(map[string]interface{})["tables"], 8)
	assert.Equal(t, 1, kv.Len())

	w, _ = doJSON(t, r, http.MethodPost, base+"/reset", nil)
	require.Equal(t, http.StatusOK, w.Code)

	w, _ = doJSON(t, r, http.MethodDelete, base, nil)
	require.Equal(t, http.StatusOK, w.Code)
	w, _ = doJSON(t, r, http.MethodGet, base, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCanvasLockedTableRejected(t *testing.T) {
	deps, _ := setupDeps("2025-01-10T12:00")
	r := router.SetupRouter(deps)

	first := openTestCanvas(t, r, "2025-01-10", "19:00")
	w, _ := doJSON(t, r, http.MethodPost, "/canvases/"+first+"/select", gin.H{"table_id": "table-4"})
	require.Equal(t, http.StatusOK, w.Code)
	w, _ = doJSON(t, r, http.MethodPost, "/canvases/"+first+"/finalize", gin.H{"guests": 4, "name": "John Smith", "phone": "+100"})
	require.Equal(t, http.StatusCreated, w.Code)

	second := openTestCanvas(t, r, "2025-01-10", "19:30")
	w, response := doJSON(t, r, http.MethodGet, "/canvases/"+second, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "reserved", tableStatuses(response["data"].(map[string]interface{})["tables"])["table-4"])

	w, _ = doJSON(t, r, http.MethodPost, "/canvases/"+second+"/select", gin.H{"table_id": "table-4"})
	assert.Equal(t, http.StatusConflict, w.Code)

	doJSON(t, r, http.MethodPost, "/canvases/"+second+"/mode", gin.H{"mode": "edit"})
	w, response = doJSON(t, r, http.MethodPost, "/canvases/"+second+"/drag", gin.H{"table_id": "table-4", "x": 300, "y": 300})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "this table cannot be modified while reserved/occupied", response["message"])
	w, _ = doJSON(t, r, http.MethodDelete, "/canvases/"+second+"/tables/table-4", nil)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestCanvasFinalizeValidation(t *testing.T) {
	deps, kv := setupDeps("2025-01-10T12:00")
	r := router.SetupRouter(deps)
	id := openTestCanvas(t, r, "2025-01-10", "19:00")

	w, response := doJSON(t, r, http.MethodPost, "/canvases/"+id+"/finalize", gin.H{"guests": 2, "name": "Jane", "phone": "+1"})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, "tables", response["data"].(map[string]interface{})["field"])
	assert.Equal(t, 0, kv.Len())

	w, _ = doJSON(t, r, http.MethodPost, "/canvases/"+id+"/select", gin.H{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	w, _ = doJSON(t, r, http.MethodPost, "/canvases/unknown/select", gin.H{"table_id": "table-1"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}
