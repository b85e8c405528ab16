package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/restaurant-floorplan/hub"
	"github.com/yeremiapane/restaurant-floorplan/models"
	"github.com/yeremiapane/restaurant-floorplan/services"
	"github.com/yeremiapane/restaurant-floorplan/utils"
)

// CanvasController exposes the interactive layout editor as canvas sessions.
type CanvasController struct {
	Registry *services.CanvasRegistry
	Hub      *hub.FloorHub
}

func NewCanvasController(registry *services.CanvasRegistry, h *hub.FloorHub) *CanvasController {
	return &CanvasController{Registry: registry, Hub: h}
}

type canvasResponse struct {
	ID string `json:"id"`
	services.CanvasState
}

func (cc *CanvasController) canvas(c *gin.Context) (*services.Canvas, bool) {
	canvas, err := cc.Registry.Get(c.Param("canvas_id"))
	if err != nil {
		respondServiceError(c, err)
		return nil, false
	}
	return canvas, true
}

func (cc *CanvasController) respondState(c *gin.Context, code int, message string, canvas *services.Canvas) {
	utils.RespondJSON(c, code, message, canvasResponse{ID: c.Param("canvas_id"), CanvasState: canvas.State()})
}

// OpenCanvas -> buat sesi kanvas baru
func (cc *CanvasController) OpenCanvas(c *gin.Context) {
	var req struct {
		RestaurantID string  `json:"restaurant_id" binding:"required"`
		FloorID      string  `json:"floor_id" binding:"required"`
		Date         string  `json:"date"`
		Time         string  `json:"time"`
		Width        float64 `json:"width"`
		Height       float64 `json:"height"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	if err := validateDateTime(req.Date, req.Time); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	id, canvas, err := cc.Registry.Open(c.Request.Context(), req.RestaurantID, req.FloorID, req.Date, req.Time, req.Width, req.Height)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusCreated, "Canvas opened", canvasResponse{ID: id, CanvasState: canvas.State()})
}

// GetCanvas -> state kanvas saat ini
func (cc *CanvasController) GetCanvas(c *gin.Context) {
	canvas, ok := cc.canvas(c)
	if !ok {
		return
	}
	cc.respondState(c, http.StatusOK, "Canvas state", canvas)
}

// CloseCanvas -> tutup sesi; perubahan yang belum disimpan hilang
func (cc *CanvasController) CloseCanvas(c *gin.Context) {
	id := c.Param("canvas_id")
	if err := cc.Registry.Close(id); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Canvas closed", gin.H{"id": id})
}

// LoadCanvas -> pindah lantai / tanggal / jam
func (cc *CanvasController) LoadCanvas(c *gin.Context) {
	canvas, ok := cc.canvas(c)
	if !ok {
		return
	}
	var req struct {
		FloorID string `json:"floor_id" binding:"required"`
		Date    string `json:"date"`
		Time    string `json:"time"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	if err := validateDateTime(req.Date, req.Time); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	if err := canvas.Load(c.Request.Context(), req.FloorID, req.Date, req.Time); err != nil {
		respondServiceError(c, err)
		return
	}
	cc.respondState(c, http.StatusOK, "Canvas loaded", canvas)
}

// SetMode -> select atau edit
func (cc *CanvasController) SetMode(c *gin.Context) {
	canvas, ok := cc.canvas(c)
	if !ok {
		return
	}
	var req struct {
		Mode   services.CanvasMode `json:"mode" binding:"required"`
		Width  float64             `json:"width"`
		Height float64             `json:"height"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	if err := canvas.SetMode(req.Mode); err != nil {
		respondServiceError(c, err)
		return
	}
	if req.Width > 0 && req.Height > 0 {
		canvas.Mount(req.Width, req.Height)
	}
	cc.respondState(c, http.StatusOK, "Canvas mode updated", canvas)
}

type tableRef struct {
	TableID string `json:"table_id"`
}

// ToggleSelection -> pilih / batal pilih meja untuk reservasi
func (cc *CanvasController) ToggleSelection(c *gin.Context) {
	canvas, ok := cc.canvas(c)
	if !ok {
		return
	}
	var req tableRef
	if err := c.ShouldBindJSON(&req); err != nil || req.TableID == "" {
		utils.RespondError(c, http.StatusBadRequest, ErrTableIDRequired)
		return
	}
	if err := canvas.ToggleSelection(req.TableID); err != nil {
		respondServiceError(c, err)
		return
	}
	cc.respondState(c, http.StatusOK, "Selection updated", canvas)
}

// FocusTable -> meja yang sedang diedit; table_id kosong menghapus fokus
func (cc *CanvasController) FocusTable(c *gin.Context) {
	canvas, ok := cc.canvas(c)
	if !ok {
		return
	}
	var req tableRef
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	if err := canvas.Focus(req.TableID); err != nil {
		respondServiceError(c, err)
		return
	}
	cc.respondState(c, http.StatusOK, "Focus updated", canvas)
}

// DragTable -> pindahkan meja, posisi dijepit ke dalam kanvas
func (cc *CanvasController) DragTable(c *gin.Context) {
	canvas, ok := cc.canvas(c)
	if !ok {
		return
	}
	var req struct {
		TableID string  `json:"table_id" binding:"required"`
		X       float64 `json:"x"`
		Y       float64 `json:"y"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	table, err := canvas.Drag(req.TableID, req.X, req.Y)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Table moved", table)
}

// AddTable -> tambah meja baru di tengah kanvas
func (cc *CanvasController) AddTable(c *gin.Context) {
	canvas, ok := cc.canvas(c)
	if !ok {
		return
	}
	var req struct {
		services.NewTable
		Size models.TableSize `json:"size"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	if req.Capacity == 0 && req.Size != "" {
		req.Capacity = models.CapacityForSize(req.Size)
	}
	table, err := canvas.AddTable(req.NewTable)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusCreated, "Table added", table)
}

// UpdateTable -> ubah nomor, bentuk atau kapasitas meja
func (cc *CanvasController) UpdateTable(c *gin.Context) {
	canvas, ok := cc.canvas(c)
	if !ok {
		return
	}
	var req struct {
		services.TablePatch
		Size *models.TableSize `json:"size"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	if req.Capacity == nil && req.Size != nil {
		capacity := models.CapacityForSize(*req.Size)
		req.Capacity = &capacity
	}
	table, err := canvas.UpdateTable(c.Param("table_id"), req.TablePatch)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Table updated", table)
}

// DeleteTable -> hapus meja dari kanvas (belum disimpan)
func (cc *CanvasController) DeleteTable(c *gin.Context) {
	canvas, ok := cc.canvas(c)
	if !ok {
		return
	}
	tableID := c.Param("table_id")
	if err := canvas.DeleteTable(tableID); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Table deleted", gin.H{"id": tableID})
}

// ResetCanvas -> kembalikan layout default tanpa menyimpan
func (cc *CanvasController) ResetCanvas(c *gin.Context) {
	canvas, ok := cc.canvas(c)
	if !ok {
		return
	}
	if err := canvas.Reset(c.Request.Context()); err != nil {
		respondServiceError(c, err)
		return
	}
	cc.respondState(c, http.StatusOK, "Canvas reset", canvas)
}

// SaveDefault -> simpan layout kanvas sebagai default lantai
func (cc *CanvasController) SaveDefault(c *gin.Context) {
	canvas, ok := cc.canvas(c)
	if !ok {
		return
	}
	if err := canvas.SaveDefault(c.Request.Context()); err != nil {
		respondServiceError(c, err)
		return
	}
	state := canvas.State()
	cc.Hub.BroadcastDefaultLayoutSaved(state.RestaurantID, state.FloorID, state.Tables)
	cc.respondState(c, http.StatusOK, "Default layout saved", canvas)
}

// FinalizeReservation -> buat reservasi dari meja yang dipilih di kanvas
func (cc *CanvasController) FinalizeReservation(c *gin.Context) {
	canvas, ok := cc.canvas(c)
	if !ok {
		return
	}
	var req struct {
		Guests int    `json:"guests"`
		Name   string `json:"name"`
		Phone  string `json:"phone"`
		Email  string `json:"email"`
		Notes  string `json:"notes"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	reservation, err := canvas.Finalize(c.Request.Context(), models.ReservationDraft{
		Guests:    req.Guests,
		Name:      req.Name,
		Phone:     req.Phone,
		Email:     req.Email,
		Notes:     req.Notes,
		CreatedBy: managerID(c),
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	cc.Hub.BroadcastReservationCreated(*reservation)
	utils.RespondJSON(c, http.StatusCreated, "Reservation created successfully", reservation)
}
