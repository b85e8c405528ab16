package services

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yeremiapane/restaurant-floorplan/models"
)

func TestGetDefaultFallsBackToDemo(t *testing.T) {
	ctx := context.Background()
	f := newFixture(at("2025-01-10T12:00"))

	tables := f.layouts.GetDefault(ctx, testRestaurant, testFloor)
	require.Len(t, tables, 8)
	for _, table := range tables {
		assert.Equal(t, models.StatusAvailable, table.Status)
		assert.Equal(t, testFloor, table.FloorID)
	}
	assert.Len(t, f.layouts.GetDefault(ctx, testRestaurant, models.FirstFloorID), 5)
	assert.Empty(t, f.layouts.GetDefault(ctx, testRestaurant, "floor-9"))
}

func TestGetDefaultIgnoresCorruptValue(t *testing.T) {
	ctx := context.Background()
	f := newFixture(at("2025-01-10T12:00"))
	require.NoError(t, f.kv.Set(ctx, f.keys.DefaultLayout(testRestaurant, testFloor), []byte("{not json")))

	assert.Len(t, f.layouts.GetDefault(ctx, testRestaurant, testFloor), 8)
}

func TestGetDefaultOnReadErrorUsesDemo(t *testing.T) {
	ls := NewLayoutStore(failingKV{}, newFixture(at("2025-01-10T12:00")).keys)
	assert.Len(t, ls.GetDefault(context.Background(), testRestaurant, testFloor), 8)
}

func TestSetDefaultStoresTablesAsAvailable(t *testing.T) {
	ctx := context.Background()
	f := newFixture(at("2025-01-10T12:00"))
	tables := models.DemoTablesForFloor(testFloor)[:2]
	tables[0].Status = models.StatusOccupied
	tables[1].Position = nil

	require.NoError(t, f.layouts.SetDefault(ctx, testRestaurant, testFloor, tables))

	raw, found, err := f.kv.Get(ctx, f.keys.DefaultLayout(testRestaurant, testFloor))
	require.NoError(t, err)
	require.True(t, found)
	var stored []models.Table
	require.NoError(t, json.Unmarshal(raw, &stored))
	assert.Equal(t, models.StatusAvailable, stored[0].Status)

	got := f.layouts.GetDefault(ctx, testRestaurant, testFloor)
	require.Len(t, got, 2)
	assert.Equal(t, models.StatusAvailable, got[0].Status)
	assert.Equal(t, &models.Position{X: 40, Y: 40}, got[1].Position)
	assert.Equal(t, models.StatusOccupied, tables[0].Status)
}

func TestSetDefaultRejectsDuplicates(t *testing.T) {
	ctx := context.Background()
	f := newFixture(at("2025-01-10T12:00"))
	tables := models.DemoTablesForFloor(testFloor)[:3]
	tables[2].Number = tables[0].Number

	id, err := CheckUniqueTables(tables)
	assert.ErrorIs(t, err, ErrDuplicateTableNumber)
	assert.Equal(t, tables[2].ID, id)
	assert.ErrorIs(t, f.layouts.SetDefault(ctx, testRestaurant, testFloor, tables), ErrDuplicateTableNumber)

	tables = models.DemoTablesForFloor(testFloor)[:3]
	tables[1].ID = tables[0].ID
	assert.ErrorIs(t, f.layouts.SetDefault(ctx, testRestaurant, testFloor, tables), ErrDuplicateTableID)
	assert.Equal(t, 0, f.kv.Len())
}

func TestGetSlotFallsBackToDefault(t *testing.T) {
	ctx := context.Background()
	f := newFixture(at("2025-01-10T12:00"))
	custom := models.DemoTablesForFloor(testFloor)[:3]
	require.NoError(t, f.layouts.SetDefault(ctx, testRestaurant, testFloor, custom))

	assert.False(t, f.layouts.HasSlot(ctx, testRestaurant, testFloor, testDate, "19:00"))
	assert.Len(t, f.layouts.GetSlot(ctx, testRestaurant, testFloor, testDate, "19:00"), 3)
}

func TestSetSlotHourWritesFourKeys(t *testing.T) {
	ctx := context.Background()
	f := newFixture(at("2025-01-10T12:00"))
	snapshot := models.DemoTablesForFloor(testFloor)[:4]
	snapshot[3].Position = &models.Position{X: 300, Y: 120}

	keys, err := f.layouts.SetSlotHour(ctx, testRestaurant, testFloor, testDate, "19:00", snapshot)
	require.NoError(t, err)
	assert.Equal(t, []string{"19:00", "19:15", "19:30", "19:45"}, keys)
	assert.Equal(t, 4, f.kv.Len())

	for _, key := range keys {
		assert.True(t, f.layouts.HasSlot(ctx, testRestaurant, testFloor, testDate, key))
		got := f.layouts.GetSlot(ctx, testRestaurant, testFloor, testDate, key)
		require.Len(t, got, 4)
		assert.Equal(t, 300.0, got[3].Position.X)
	}
	// exact key only
	assert.False(t, f.layouts.HasSlot(ctx, testRestaurant, testFloor, testDate, "19:10"))
	assert.False(t, f.layouts.HasSlot(ctx, testRestaurant, testFloor, testDate, "20:00"))
}

func TestSetSlotWindowIsIdempotent(t *testing.T) {
	ctx := context.Background()
	f := newFixture(at("2025-01-10T12:00"))
	snapshot := models.DemoTablesForFloor(testFloor)

	_, err := f.layouts.SetSlotHour(ctx, testRestaurant, testFloor, testDate, "19:00", snapshot)
	require.NoError(t, err)
	first, _, _ := f.kv.Get(ctx, f.keys.SlotLayout(testRestaurant, testFloor, testDate, "19:30"))

	_, err = f.layouts.SetSlotHour(ctx, testRestaurant, testFloor, testDate, "19:00", snapshot)
	require.NoError(t, err)
	second, _, _ := f.kv.Get(ctx, f.keys.SlotLayout(testRestaurant, testFloor, testDate, "19:30"))

	assert.Equal(t, first, second)
	assert.Equal(t, 4, f.kv.Len())
}

func TestSetSlotWindowDegenerateStep(t *testing.T) {
	f := newFixture(at("2025-01-10T12:00"))
	keys, err := f.layouts.SetSlotWindow(context.Background(), testRestaurant, testFloor, testDate, "19:00", nil, 60, 0)
	require.NoError(t, err)
	assert.Empty(t, keys)
	assert.Equal(t, 0, f.kv.Len())
}

func TestSetSlotWindowSurfacesWriteErrors(t *testing.T) {
	ls := NewLayoutStore(failingKV{}, newFixture(at("2025-01-10T12:00")).keys)
	_, err := ls.SetSlotHour(context.Background(), testRestaurant, testFloor, testDate, "19:00", models.DemoTablesForFloor(testFloor))
	assert.ErrorIs(t, err, errBackendDown)
}
