package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/yeremiapane/restaurant-floorplan/models"
	"github.com/yeremiapane/restaurant-floorplan/utils"
)

var ErrCanvasNotFound = errors.New("canvas not found")

// Broadcaster receives canvas changes, usually the websocket hub.
type Broadcaster interface {
	BroadcastLayoutChange(restaurantID, canvasID, floorID string, tables []models.Table)
	BroadcastSelectionChange(restaurantID, canvasID, floorID string, selected []models.Table)
}

// CanvasRegistry holds the open canvases by id so HTTP calls can address them.
type CanvasRegistry struct {
	mu       sync.Mutex
	canvases map[string]*Canvas
	deps     CanvasDeps
	notify   Broadcaster
	IdleTTL  time.Duration
	Now      func() time.Time
}

func NewCanvasRegistry(deps CanvasDeps, notify Broadcaster, idleTTL time.Duration) *CanvasRegistry {
	return &CanvasRegistry{
		canvases: make(map[string]*Canvas),
		deps:     deps,
		notify:   notify,
		IdleTTL:  idleTTL,
		Now:      time.Now,
	}
}

// Open creates a canvas, mounts it and loads the requested context.
func (r *CanvasRegistry) Open(ctx context.Context, restaurantID, floorID, date, t string, width, height float64) (string, *Canvas, error) {
	id := "canvas-" + uuid.NewString()
	canvas := NewCanvas(restaurantID, floorID, r.deps)
	if r.notify != nil {
		canvas.OnLayoutChange = func(floor string, tables []models.Table) {
			r.notify.BroadcastLayoutChange(restaurantID, id, floor, tables)
		}
		canvas.OnSelectionChange = func(floor string, selected []models.Table) {
			r.notify.BroadcastSelectionChange(restaurantID, id, floor, selected)
		}
	}
	canvas.Mount(width, height)
	if err := canvas.Load(ctx, floorID, date, t); err != nil {
		return "", nil, err
	}

	r.mu.Lock()
	r.canvases[id] = canvas
	r.mu.Unlock()

	utils.InfoLogger.WithFields(logrus.Fields{
		"canvas":     id,
		"restaurant": restaurantID,
		"floor":      floorID,
	}).Info("Canvas opened")
	return id, canvas, nil
}

func (r *CanvasRegistry) Get(id string) (*Canvas, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	canvas, ok := r.canvases[id]
	if !ok {
		return nil, ErrCanvasNotFound
	}
	return canvas, nil
}

func (r *CanvasRegistry) Close(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.canvases[id]; !ok {
		return ErrCanvasNotFound
	}
	delete(r.canvases, id)
	return nil
}

// Snapshot returns the open canvases keyed by id.
func (r *CanvasRegistry) Snapshot() map[string]*Canvas {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make(map[string]*Canvas, len(r.canvases))
	for id, c := range r.canvases {
		out[id] = c
	}
	return out
}

func (r *CanvasRegistry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.canvases)
}

// Sweep closes canvases untouched for longer than IdleTTL. A zero TTL keeps everything.
func (r *CanvasRegistry) Sweep() int {
	if r.IdleTTL <= 0 {
		return 0
	}
	now := r.Now()
	r.mu.Lock()
	defer r.mu.Unlock()
	removed := 0
	for id, c := range r.canvases {
		if now.Sub(c.LastUsed()) > r.IdleTTL {
			delete(r.canvases, id)
			removed++
		}
	}
	return removed
}
