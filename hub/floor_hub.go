package hub

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
	"github.com/yeremiapane/restaurant-floorplan/models"
	"github.com/yeremiapane/restaurant-floorplan/utils"
)

// Event types
const (
	EventLayoutChange       = "layout_change"
	EventSelectionChange    = "selection_change"
	EventReservationCreated = "reservation_created"
	EventReservationUpdated = "reservation_updated"
	EventDefaultLayoutSaved = "default_layout_saved"
)

type Message struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

// writeWait bounds how long one slow client can hold up a broadcast.
const writeWait = 5 * time.Second

// Conn is the part of *websocket.Conn the hub writes to.
type Conn interface {
	SetWriteDeadline(t time.Time) error
	WriteMessage(messageType int, data []byte) error
	Close() error
}

// FloorHub menampung client per restoran dan menyiarkan perubahan layout
type FloorHub struct {
	clients map[string]map[Conn]string // restaurant -> conn -> canvas id
	mutex   sync.Mutex
}

func NewFloorHub() *FloorHub {
	return &FloorHub{clients: make(map[string]map[Conn]string)}
}

// RegisterClient -> menambahkan connection ke room restoran
func (h *FloorHub) RegisterClient(restaurantID string, conn Conn, canvasID string) {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	room, ok := h.clients[restaurantID]
	if !ok {
		room = make(map[Conn]string)
		h.clients[restaurantID] = room
	}
	room[conn] = canvasID
}

// UnregisterClient -> melepaskan connection
func (h *FloorHub) UnregisterClient(restaurantID string, conn Conn) {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	if room, ok := h.clients[restaurantID]; ok {
		delete(room, conn)
		if len(room) == 0 {
			delete(h.clients, restaurantID)
		}
	}
	conn.Close()
}

// ClientCount returns how many connections listen to restaurantID.
func (h *FloorHub) ClientCount(restaurantID string) int {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	return len(h.clients[restaurantID])
}

type layoutPayload struct {
	CanvasID string         `json:"canvas_id,omitempty"`
	FloorID  string         `json:"floor_id"`
	Tables   []models.Table `json:"tables"`
}

type selectionPayload struct {
	CanvasID string         `json:"canvas_id"`
	FloorID  string         `json:"floor_id"`
	Tables   []models.Table `json:"tables"`
	Capacity int            `json:"capacity"`
}

// BroadcastLayoutChange -> layout kanvas berubah (drag, tambah, hapus, reload)
func (h *FloorHub) BroadcastLayoutChange(restaurantID, canvasID, floorID string, tables []models.Table) {
	h.Broadcast(restaurantID, Message{
		Event: EventLayoutChange,
		Data:  layoutPayload{CanvasID: canvasID, FloorID: floorID, Tables: tables},
	})
}

// BroadcastSelectionChange -> meja yang dipilih untuk reservasi berubah
func (h *FloorHub) BroadcastSelectionChange(restaurantID, canvasID, floorID string, selected []models.Table) {
	h.Broadcast(restaurantID, Message{
		Event: EventSelectionChange,
		Data: selectionPayload{
			CanvasID: canvasID,
			FloorID:  floorID,
			Tables:   selected,
			Capacity: models.TotalCapacity(selected),
		},
	})
}

// BroadcastReservationCreated -> reservasi baru tersimpan
func (h *FloorHub) BroadcastReservationCreated(reservation models.Reservation) {
	h.Broadcast(reservation.RestaurantID, Message{Event: EventReservationCreated, Data: reservation})
}

// BroadcastReservationUpdated -> reservasi dibatalkan atau selesai
func (h *FloorHub) BroadcastReservationUpdated(reservation models.Reservation) {
	h.Broadcast(reservation.RestaurantID, Message{Event: EventReservationUpdated, Data: reservation})
}

// BroadcastDefaultLayoutSaved -> layout default lantai disimpan
func (h *FloorHub) BroadcastDefaultLayoutSaved(restaurantID, floorID string, tables []models.Table) {
	h.Broadcast(restaurantID, Message{
		Event: EventDefaultLayoutSaved,
		Data:  layoutPayload{FloorID: floorID, Tables: tables},
	})
}

// Broadcast -> kirim pesan ke semua client restoran; client yang gagal dilepas
func (h *FloorHub) Broadcast(restaurantID string, msg Message) {
	data, err := json.Marshal(msg)
	if err != nil {
		utils.ErrorLogger.Errorf("Error marshaling hub message: %v", err)
		return
	}

	h.mutex.Lock()
	defer h.mutex.Unlock()

	room := h.clients[restaurantID]
	utils.InfoLogger.WithFields(logrus.Fields{
		"restaurant": restaurantID,
		"event":      msg.Event,
	}).Debugf("Broadcasting to %d clients", len(room))

	for conn := range room {
		conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			utils.ErrorLogger.WithFields(logrus.Fields{"restaurant": restaurantID}).Errorf("Error sending message to client: %v", err)
			delete(room, conn)
			conn.Close()
		}
	}
	if len(room) == 0 {
		delete(h.clients, restaurantID)
	}
}
