package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/yeremiapane/restaurant-floorplan/hub"
	"github.com/yeremiapane/restaurant-floorplan/utils"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type HubController struct {
	Hub *hub.FloorHub
}

func NewHubController(h *hub.FloorHub) *HubController {
	return &HubController{Hub: h}
}

// Subscribe -> endpoint WebSocket per restoran
func (hc *HubController) Subscribe(c *gin.Context) {
	restaurantID := c.Param("restaurant_id")
	ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		utils.ErrorLogger.Errorf("websocket upgrade failed: %v", err)
		return
	}

	hc.Hub.RegisterClient(restaurantID, ws, c.Query("canvas_id"))

	// Baca pesan sampai client putus
	for {
		if _, _, err := ws.ReadMessage(); err != nil {
			break
		}
	}

	hc.Hub.UnregisterClient(restaurantID, ws)
}
