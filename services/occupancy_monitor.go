package services

import (
	"context"
	"errors"
	"time"

	"github.com/yeremiapane/restaurant-floorplan/utils"
)

// OccupancyMonitor periodically restamps open canvases so reserved tables
// turn occupied once their start passes, and evicts idle canvases.
type OccupancyMonitor struct {
	Registry *CanvasRegistry
	StopChan chan struct{}
	Interval time.Duration
}

func NewOccupancyMonitor(registry *CanvasRegistry, interval time.Duration) *OccupancyMonitor {
	if interval <= 0 {
		interval = 30 * time.Second
	}
	return &OccupancyMonitor{
		Registry: registry,
		StopChan: make(chan struct{}),
		Interval: interval,
	}
}

func (om *OccupancyMonitor) Start() {
	go func() {
		ticker := time.NewTicker(om.Interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				om.Tick(context.Background())
			case <-om.StopChan:
				return
			}
		}
	}()
}

func (om *OccupancyMonitor) Stop() {
	close(om.StopChan)
}

// Tick -> refresh status semua kanvas lalu buang kanvas yang idle
func (om *OccupancyMonitor) Tick(ctx context.Context) (refreshed, evicted int) {
	for id, canvas := range om.Registry.Snapshot() {
		changed, err := canvas.RefreshReservations(ctx)
		if err != nil && !errors.Is(err, ErrStaleLoad) {
			utils.ErrorLogger.Errorf("Error refreshing canvas %s: %v", id, err)
			continue
		}
		if changed {
			refreshed++
		}
	}

	evicted = om.Registry.Sweep()
	if refreshed > 0 || evicted > 0 {
		utils.InfoLogger.Infof("Occupancy check: %d canvases refreshed, %d evicted", refreshed, evicted)
	}
	return refreshed, evicted
}
