package services

import (
	"context"
	"errors"
	"math"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/yeremiapane/restaurant-floorplan/models"
)

var (
	ErrTableNotFound        = errors.New("table not found")
	ErrTableLocked          = errors.New("this table cannot be modified while reserved/occupied")
	ErrDuplicateTableNumber = errors.New("table number already exists on this floor")
	ErrDuplicateTableID     = errors.New("table id already exists on this floor")
	ErrInvalidTable         = errors.New("invalid table properties")
	ErrWrongMode            = errors.New("action not allowed in the current canvas mode")
	ErrCanvasNotMounted     = errors.New("canvas has no size yet")
	ErrStaleLoad            = errors.New("layout load superseded by a newer request")
)

type CanvasMode string

const (
	ModeSelect CanvasMode = "select"
	ModeEdit   CanvasMode = "edit"
)

const (
	canvasMargin     = 4.0
	minCenterOffset  = 12.0
	centerShift      = 50.0
	unmountedOffsetX = 60.0
	unmountedOffsetY = 60.0
)

// CanvasDeps are the collaborators a canvas reads from and writes through.
type CanvasDeps struct {
	Layouts      *LayoutStore
	Reservations *ReservationStore
	Resolver     *StatusResolver
	Finalizer    *Finalizer
}

// NewTable describes a table added from the editor. Number 0 picks the next free number.
type NewTable struct {
	Number   int               `json:"number"`
	Shape    models.TableShape `json:"shape"`
	Capacity int               `json:"capacity"`
}

// TablePatch carries the editable properties; nil fields are left alone.
type TablePatch struct {
	Number   *int               `json:"number"`
	Shape    *models.TableShape `json:"shape"`
	Capacity *int               `json:"capacity"`
}

// CanvasState is a point-in-time copy of a canvas for rendering.
type CanvasState struct {
	RestaurantID     string         `json:"restaurant_id"`
	FloorID          string         `json:"floor_id"`
	Date             string         `json:"date"`
	Time             string         `json:"time"`
	Mode             CanvasMode     `json:"mode"`
	Width            float64        `json:"width"`
	Height           float64        `json:"height"`
	Tables           []models.Table `json:"tables"`
	FocusedTableID   string         `json:"focused_table_id,omitempty"`
	SelectedTables   []models.Table `json:"selected_tables"`
	SelectedCapacity int            `json:"selected_capacity"`
}

// Canvas is the in-memory layout of one floor as a manager edits it. Nothing
// is persisted until SaveDefault or a reservation is finalized.
type Canvas struct {
	mu sync.Mutex

	deps         CanvasDeps
	restaurantID string
	floorID      string
	date         string
	time         string
	mode         CanvasMode
	width        float64
	height       float64

	tables       []models.Table
	focusedID    string
	selectedIDs  []string
	reservations []models.Reservation
	generation   uint64
	lastUsed     time.Time

	OnSelectionChange func(floorID string, selected []models.Table)
	OnLayoutChange    func(floorID string, tables []models.Table)
}

func NewCanvas(restaurantID, floorID string, deps CanvasDeps) *Canvas {
	return &Canvas{
		deps:         deps,
		restaurantID: restaurantID,
		floorID:      floorID,
		mode:         ModeSelect,
		lastUsed:     time.Now(),
	}
}

func (c *Canvas) RestaurantID() string {
	return c.restaurantID
}

// Mount records the canvas size in pixels; drags are clamped to it.
func (c *Canvas) Mount(width, height float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.width, c.height = width, height
	c.touch()
}

func (c *Canvas) mounted() bool {
	return c.width > 0 && c.height > 0
}

// Load switches the canvas to floor/date/time. Without a date and time the
// default layout is shown as-is; otherwise the slot layout (or default) is
// stamped with live statuses. Selections are cleared.
func (c *Canvas) Load(ctx context.Context, floorID, date, t string) error {
	c.mu.Lock()
	c.generation++
	gen := c.generation
	c.mu.Unlock()

	reservations := c.deps.Reservations.List(ctx, c.restaurantID)
	var tables []models.Table
	if date == "" || t == "" {
		tables = c.deps.Layouts.GetDefault(ctx, c.restaurantID, floorID)
	} else {
		base := c.deps.Layouts.GetSlot(ctx, c.restaurantID, floorID, date, t)
		tables = c.deps.Resolver.ApplyStatuses(base, date, t, reservations)
	}

	c.mu.Lock()
	if gen != c.generation {
		c.mu.Unlock()
		return ErrStaleLoad
	}
	c.floorID, c.date, c.time = floorID, date, t
	c.tables = tables
	c.reservations = reservations
	c.focusedID = ""
	c.selectedIDs = nil
	c.touch()
	floor, layout, selected := c.floorID, models.CloneTables(c.tables), c.selectedLocked()
	c.mu.Unlock()

	c.emitLayout(floor, layout)
	c.emitSelection(floor, selected)
	return nil
}

// Reset brings back the floor's default layout without saving it.
func (c *Canvas) Reset(ctx context.Context) error {
	c.mu.Lock()
	c.generation++
	gen := c.generation
	floorID, date, t := c.floorID, c.date, c.time
	reservations := c.reservations
	c.mu.Unlock()

	tables := c.deps.Layouts.GetDefault(ctx, c.restaurantID, floorID)
	if date != "" && t != "" {
		tables = c.deps.Resolver.ApplyStatuses(tables, date, t, reservations)
	}

	c.mu.Lock()
	if gen != c.generation {
		c.mu.Unlock()
		return ErrStaleLoad
	}
	c.tables = tables
	c.focusedID = ""
	c.selectedIDs = nil
	c.touch()
	layout, selected := models.CloneTables(c.tables), c.selectedLocked()
	c.mu.Unlock()

	c.emitLayout(floorID, layout)
	c.emitSelection(floorID, selected)
	return nil
}

// SaveDefault persists the in-memory layout as the floor default.
func (c *Canvas) SaveDefault(ctx context.Context) error {
	c.mu.Lock()
	floorID, tables := c.floorID, models.CloneTables(c.tables)
	c.touch()
	c.mu.Unlock()
	return c.deps.Layouts.SetDefault(ctx, c.restaurantID, floorID, tables)
}

// RefreshReservations re-reads reservations and restamps statuses in place,
// keeping unsaved edits. Tables that stopped being available drop out of the
// reservation selection. Reports whether any status changed.
func (c *Canvas) RefreshReservations(ctx context.Context) (bool, error) {
	c.mu.Lock()
	gen := c.generation
	c.mu.Unlock()

	reservations := c.deps.Reservations.List(ctx, c.restaurantID)

	c.mu.Lock()
	if gen != c.generation {
		c.mu.Unlock()
		return false, ErrStaleLoad
	}
	c.reservations = reservations
	if c.date == "" || c.time == "" {
		c.mu.Unlock()
		return false, nil
	}
	changed := false
	for i := range c.tables {
		status := c.deps.Resolver.Resolve(c.tables[i].ID, c.date, c.time, reservations)
		if status != c.tables[i].Status {
			c.tables[i].Status = status
			changed = true
		}
	}
	if !changed {
		c.mu.Unlock()
		return false, nil
	}
	kept := c.selectedIDs[:0]
	for _, id := range c.selectedIDs {
		if idx := c.indexOf(id); idx >= 0 && c.tables[idx].IsAvailable() {
			kept = append(kept, id)
		}
	}
	c.selectedIDs = kept
	floor, layout, selected := c.floorID, models.CloneTables(c.tables), c.selectedLocked()
	c.mu.Unlock()

	c.emitLayout(floor, layout)
	c.emitSelection(floor, selected)
	return true, nil
}

func (c *Canvas) SetMode(mode CanvasMode) error {
	if mode != ModeSelect && mode != ModeEdit {
		return ErrWrongMode
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.mode = mode
	c.touch()
	return nil
}

// ToggleSelection adds or removes a table from the reservation selection.
func (c *Canvas) ToggleSelection(tableID string) error {
	c.mu.Lock()
	if c.mode != ModeSelect {
		c.mu.Unlock()
		return ErrWrongMode
	}
	idx := c.indexOf(tableID)
	if idx < 0 {
		c.mu.Unlock()
		return ErrTableNotFound
	}
	if !c.tables[idx].IsAvailable() {
		c.mu.Unlock()
		return ErrTableLocked
	}
	removed := false
	for i, id := range c.selectedIDs {
		if id == tableID {
			c.selectedIDs = append(c.selectedIDs[:i], c.selectedIDs[i+1:]...)
			removed = true
			break
		}
	}
	if !removed {
		c.selectedIDs = append(c.selectedIDs, tableID)
	}
	c.touch()
	floor, selected := c.floorID, c.selectedLocked()
	c.mu.Unlock()

	c.emitSelection(floor, selected)
	return nil
}

// Focus picks the table shown in the properties panel; "" clears it.
// Locked tables can be focused, just not changed.
func (c *Canvas) Focus(tableID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.mode != ModeEdit {
		return ErrWrongMode
	}
	if tableID != "" && c.indexOf(tableID) < 0 {
		return ErrTableNotFound
	}
	c.focusedID = tableID
	c.touch()
	return nil
}

// Drag moves a table so its whole footprint stays inside the canvas with a 4px margin.
func (c *Canvas) Drag(tableID string, x, y float64) (models.Table, error) {
	c.mu.Lock()
	if c.mode != ModeEdit {
		c.mu.Unlock()
		return models.Table{}, ErrWrongMode
	}
	idx := c.indexOf(tableID)
	if idx < 0 {
		c.mu.Unlock()
		return models.Table{}, ErrTableNotFound
	}
	if !c.tables[idx].IsAvailable() {
		c.mu.Unlock()
		return models.Table{}, ErrTableLocked
	}
	if !c.mounted() {
		c.mu.Unlock()
		return models.Table{}, ErrCanvasNotMounted
	}

	w, h := c.tables[idx].Footprint()
	maxX := c.width - w - canvasMargin
	maxY := c.height - h - canvasMargin
	c.tables[idx].Position = &models.Position{
		X: math.Max(canvasMargin, math.Min(x, maxX)),
		Y: math.Max(canvasMargin, math.Min(y, maxY)),
	}
	c.touch()
	moved := c.tables[idx].Clone()
	floor, layout := c.floorID, models.CloneTables(c.tables)
	c.mu.Unlock()

	c.emitLayout(floor, layout)
	return moved, nil
}

// NextTableNumber returns the lowest number not used on the floor.
func (c *Canvas) NextTableNumber() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.nextNumberLocked()
}

func (c *Canvas) nextNumberLocked() int {
	used := make(map[int]bool, len(c.tables))
	for _, t := range c.tables {
		used[t.Number] = true
	}
	n := 1
	for used[n] {
		n++
	}
	return n
}

// AddTable places a new available table at the canvas center.
func (c *Canvas) AddTable(nt NewTable) (models.Table, error) {
	c.mu.Lock()
	if c.mode != ModeEdit {
		c.mu.Unlock()
		return models.Table{}, ErrWrongMode
	}
	if nt.Number == 0 {
		nt.Number = c.nextNumberLocked()
	}
	if nt.Shape == "" {
		nt.Shape = models.ShapeRectangle
	}
	if nt.Capacity == 0 {
		nt.Capacity = models.CapacityForSize(models.SizeSmall)
	}
	if nt.Number < 1 || nt.Capacity < 1 || !nt.Shape.Valid() {
		c.mu.Unlock()
		return models.Table{}, ErrInvalidTable
	}
	if c.numberTaken(nt.Number, "") {
		c.mu.Unlock()
		return models.Table{}, ErrDuplicateTableNumber
	}

	pos := models.Position{X: unmountedOffsetX, Y: unmountedOffsetY}
	if c.mounted() {
		pos = models.Position{
			X: math.Max(minCenterOffset, c.width/2-centerShift),
			Y: math.Max(minCenterOffset, c.height/2-centerShift),
		}
	}
	table := models.Table{
		ID:          "table-" + uuid.NewString(),
		Number:      nt.Number,
		Shape:       nt.Shape,
		Capacity:    nt.Capacity,
		IsMergeable: nt.Capacity <= 4,
		Status:      models.StatusAvailable,
		FloorID:     c.floorID,
		Position:    &pos,
	}
	c.tables = append(c.tables, table)
	c.touch()
	floor, layout := c.floorID, models.CloneTables(c.tables)
	c.mu.Unlock()

	c.emitLayout(floor, layout)
	return table.Clone(), nil
}

// UpdateTable edits number, shape or capacity of an available table.
func (c *Canvas) UpdateTable(tableID string, patch TablePatch) (models.Table, error) {
	c.mu.Lock()
	if c.mode != ModeEdit {
		c.mu.Unlock()
		return models.Table{}, ErrWrongMode
	}
	idx := c.indexOf(tableID)
	if idx < 0 {
		c.mu.Unlock()
		return models.Table{}, ErrTableNotFound
	}
	if !c.tables[idx].IsAvailable() {
		c.mu.Unlock()
		return models.Table{}, ErrTableLocked
	}
	next := c.tables[idx].Clone()
	if patch.Number != nil {
		if *patch.Number < 1 {
			c.mu.Unlock()
			return models.Table{}, ErrInvalidTable
		}
		if c.numberTaken(*patch.Number, tableID) {
			c.mu.Unlock()
			return models.Table{}, ErrDuplicateTableNumber
		}
		next.Number = *patch.Number
	}
	if patch.Shape != nil {
		if !patch.Shape.Valid() {
			c.mu.Unlock()
			return models.Table{}, ErrInvalidTable
		}
		next.Shape = *patch.Shape
	}
	if patch.Capacity != nil {
		if *patch.Capacity < 1 {
			c.mu.Unlock()
			return models.Table{}, ErrInvalidTable
		}
		next.Capacity = *patch.Capacity
	}
	c.tables[idx] = next
	c.touch()
	floor, layout := c.floorID, models.CloneTables(c.tables)
	c.mu.Unlock()

	c.emitLayout(floor, layout)
	return next.Clone(), nil
}

// DeleteTable removes an available table from the in-memory layout.
func (c *Canvas) DeleteTable(tableID string) error {
	c.mu.Lock()
	if c.mode != ModeEdit {
		c.mu.Unlock()
		return ErrWrongMode
	}
	idx := c.indexOf(tableID)
	if idx < 0 {
		c.mu.Unlock()
		return ErrTableNotFound
	}
	if !c.tables[idx].IsAvailable() {
		c.mu.Unlock()
		return ErrTableLocked
	}
	c.tables = append(c.tables[:idx], c.tables[idx+1:]...)
	if c.focusedID == tableID {
		c.focusedID = ""
	}
	c.touch()
	floor, layout := c.floorID, models.CloneTables(c.tables)
	c.mu.Unlock()

	c.emitLayout(floor, layout)
	return nil
}

// Finalize books the selected tables at the canvas's date and time, then
// reloads so the new reservation shows up in the statuses.
func (c *Canvas) Finalize(ctx context.Context, draft models.ReservationDraft) (*models.Reservation, error) {
	c.mu.Lock()
	floorID := c.floorID
	draft.Date, draft.Time = c.date, c.time
	selected := c.selectedLocked()
	layout := models.CloneTables(c.tables)
	c.touch()
	c.mu.Unlock()

	// selection may be stale if the table was booked elsewhere since loading
	if draft.Date != "" && draft.Time != "" {
		reservations := c.deps.Reservations.List(ctx, c.restaurantID)
		for _, t := range selected {
			if c.deps.Resolver.Resolve(t.ID, draft.Date, draft.Time, reservations) != models.StatusAvailable {
				c.RefreshReservations(ctx)
				return nil, ErrTableLocked
			}
		}
	}

	reservation, err := c.deps.Finalizer.Finalize(ctx, c.restaurantID, floorID, draft, selected, layout)
	if err != nil {
		return nil, err
	}
	if err := c.Load(ctx, floorID, draft.Date, draft.Time); err != nil && !errors.Is(err, ErrStaleLoad) {
		return reservation, err
	}
	return reservation, nil
}

func (c *Canvas) Tables() []models.Table {
	c.mu.Lock()
	defer c.mu.Unlock()
	return models.CloneTables(c.tables)
}

func (c *Canvas) SelectedTables() []models.Table {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.selectedLocked()
}

func (c *Canvas) State() CanvasState {
	c.mu.Lock()
	defer c.mu.Unlock()
	selected := c.selectedLocked()
	return CanvasState{
		RestaurantID:     c.restaurantID,
		FloorID:          c.floorID,
		Date:             c.date,
		Time:             c.time,
		Mode:             c.mode,
		Width:            c.width,
		Height:           c.height,
		Tables:           models.CloneTables(c.tables),
		FocusedTableID:   c.focusedID,
		SelectedTables:   selected,
		SelectedCapacity: models.TotalCapacity(selected),
	}
}

// LastUsed is read by the registry to evict idle canvases.
func (c *Canvas) LastUsed() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastUsed
}

func (c *Canvas) touch() {
	c.lastUsed = time.Now()
}

func (c *Canvas) indexOf(tableID string) int {
	for i := range c.tables {
		if c.tables[i].ID == tableID {
			return i
		}
	}
	return -1
}

func (c *Canvas) numberTaken(number int, exceptID string) bool {
	for _, t := range c.tables {
		if t.Number == number && t.ID != exceptID {
			return true
		}
	}
	return false
}

// selectedLocked returns the selected tables in layout order.
func (c *Canvas) selectedLocked() []models.Table {
	out := make([]models.Table, 0, len(c.selectedIDs))
	if len(c.selectedIDs) == 0 {
		return out
	}
	set := make(map[string]bool, len(c.selectedIDs))
	for _, id := range c.selectedIDs {
		set[id] = true
	}
	for _, t := range c.tables {
		if set[t.ID] {
			out = append(out, t.Clone())
		}
	}
	return out
}

func (c *Canvas) emitLayout(floorID string, tables []models.Table) {
	if c.OnLayoutChange != nil {
		c.OnLayoutChange(floorID, tables)
	}
}

func (c *Canvas) emitSelection(floorID string, selected []models.Table) {
	if c.OnSelectionChange != nil {
		c.OnSelectionChange(floorID, selected)
	}
}
