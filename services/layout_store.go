package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/yeremiapane/restaurant-floorplan/models"
	"github.com/yeremiapane/restaurant-floorplan/storage"
	"github.com/yeremiapane/restaurant-floorplan/utils"
)

var defaultTablePosition = models.Position{X: 40, Y: 40}

// LayoutStore persists default and slot layouts. Reads never fail: a missing,
// unreadable or corrupt value falls back to the default (and the default to
// the demo seed).
type LayoutStore struct {
	KV   storage.KV
	Keys storage.Keys
}

func NewLayoutStore(kv storage.KV, keys storage.Keys) *LayoutStore {
	return &LayoutStore{KV: kv, Keys: keys}
}

// GetDefault -> layout dasar satu lantai, selalu available
func (ls *LayoutStore) GetDefault(ctx context.Context, restaurantID, floorID string) []models.Table {
	base := ls.load(ctx, ls.Keys.DefaultLayout(restaurantID, floorID))
	if len(base) == 0 {
		base = models.DemoTablesForFloor(floorID)
	}
	tables := normalizeTables(base, floorID)
	for i := range tables {
		tables[i].Status = models.StatusAvailable
	}
	return tables
}

// SetDefault stores tables as the floor's baseline; live status is never persisted here.
func (ls *LayoutStore) SetDefault(ctx context.Context, restaurantID, floorID string, tables []models.Table) error {
	if _, err := CheckUniqueTables(tables); err != nil {
		return err
	}
	return ls.save(ctx, ls.Keys.DefaultLayout(restaurantID, floorID), asAvailable(tables))
}

// GetSlot looks up the exact time key only; there is no interpolation between keys.
func (ls *LayoutStore) GetSlot(ctx context.Context, restaurantID, floorID, date, t string) []models.Table {
	stored := ls.load(ctx, ls.Keys.SlotLayout(restaurantID, floorID, date, t))
	if len(stored) > 0 {
		return normalizeTables(stored, floorID)
	}
	return ls.GetDefault(ctx, restaurantID, floorID)
}

// HasSlot reports whether a slot snapshot exists for the exact key.
func (ls *LayoutStore) HasSlot(ctx context.Context, restaurantID, floorID, date, t string) bool {
	return len(ls.load(ctx, ls.Keys.SlotLayout(restaurantID, floorID, date, t))) > 0
}

// SetSlotWindow writes the same snapshot under every time key of the window.
func (ls *LayoutStore) SetSlotWindow(ctx context.Context, restaurantID, floorID, date, t string, tables []models.Table, windowMinutes, stepMinutes int) ([]string, error) {
	keys := utils.ExpandWindow(t, windowMinutes, stepMinutes)
	for _, key := range keys {
		if err := ls.save(ctx, ls.Keys.SlotLayout(restaurantID, floorID, date, key), tables); err != nil {
			return nil, err
		}
	}
	return keys, nil
}

// SetSlotHour is SetSlotWindow with the standard one hour in 15-minute keys.
func (ls *LayoutStore) SetSlotHour(ctx context.Context, restaurantID, floorID, date, t string, tables []models.Table) ([]string, error) {
	return ls.SetSlotWindow(ctx, restaurantID, floorID, date, t, tables, utils.LayoutPersistMinutes, utils.LayoutTimeStepMinutes)
}

func (ls *LayoutStore) load(ctx context.Context, key string) []models.Table {
	raw, found, err := ls.KV.Get(ctx, key)
	if err != nil {
		utils.ErrorLogger.WithFields(logrus.Fields{"key": key}).Errorf("layout read failed, using fallback: %v", err)
		return nil
	}
	if !found || len(raw) == 0 {
		return nil
	}
	var tables []models.Table
	if err := json.Unmarshal(raw, &tables); err != nil {
		utils.InfoLogger.WithFields(logrus.Fields{"key": key}).Warnf("corrupt layout ignored: %v", err)
		return nil
	}
	return tables
}

func (ls *LayoutStore) save(ctx context.Context, key string, tables []models.Table) error {
	if tables == nil {
		tables = []models.Table{}
	}
	raw, err := json.Marshal(tables)
	if err != nil {
		return fmt.Errorf("encode layout: %w", err)
	}
	return ls.KV.Set(ctx, key, raw)
}

// CheckUniqueTables -> id dan nomor meja harus unik dalam satu lantai.
// Returns the id of the first offending table.
func CheckUniqueTables(tables []models.Table) (string, error) {
	ids := make(map[string]bool, len(tables))
	numbers := make(map[int]bool, len(tables))
	for _, t := range tables {
		if ids[t.ID] {
			return t.ID, ErrDuplicateTableID
		}
		if numbers[t.Number] {
			return t.ID, ErrDuplicateTableNumber
		}
		ids[t.ID] = true
		numbers[t.Number] = true
	}
	return "", nil
}

func normalizeTables(tables []models.Table, floorID string) []models.Table {
	out := models.CloneTables(tables)
	for i := range out {
		out[i].FloorID = floorID
		if out[i].Status == "" {
			out[i].Status = models.StatusAvailable
		}
		if out[i].Position == nil {
			p := defaultTablePosition
			out[i].Position = &p
		}
	}
	return out
}

func asAvailable(tables []models.Table) []models.Table {
	out := models.CloneTables(tables)
	for i := range out {
		out[i].Status = models.StatusAvailable
	}
	return out
}
