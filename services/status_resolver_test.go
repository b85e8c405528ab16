package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/yeremiapane/restaurant-floorplan/models"
)

func TestResolveReservationWindowBoundaries(t *testing.T) {
	f := newFixture(at("2025-01-10T12:00"))
	list := []models.Reservation{confirmed("r1", testDate, "19:00", "table-4")}

	assert.Equal(t, models.StatusAvailable, f.resolver.Resolve("table-4", testDate, "18:45", list))
	assert.Equal(t, models.StatusReserved, f.resolver.Resolve("table-4", testDate, "19:00", list))
	assert.Equal(t, models.StatusReserved, f.resolver.Resolve("table-4", testDate, "20:59", list))
	assert.Equal(t, models.StatusAvailable, f.resolver.Resolve("table-4", testDate, "21:00", list))
}

func TestResolveIgnoresOtherTablesDatesAndCancelled(t *testing.T) {
	f := newFixture(at("2025-01-10T12:00"))
	cancelled := confirmed("r2", testDate, "19:00", "table-5")
	cancelled.Status = models.ReservationCancelled
	list := []models.Reservation{confirmed("r1", "2025-01-11", "19:00", "table-4"), cancelled}

	assert.Equal(t, models.StatusAvailable, f.resolver.Resolve("table-4", testDate, "19:30", list))
	assert.Equal(t, models.StatusAvailable, f.resolver.Resolve("table-5", testDate, "19:30", list))
	assert.Equal(t, models.StatusAvailable, f.resolver.Resolve("table-1", testDate, "19:30", list))
	assert.Equal(t, models.StatusAvailable, f.resolver.Resolve("table-4", testDate, "19:30", nil))
}

func TestResolveOccupiedOnceStarted(t *testing.T) {
	f := newFixture(at("2025-01-10T19:00"))
	list := []models.Reservation{confirmed("r1", testDate, "19:00", "table-4")}

	assert.Equal(t, models.StatusOccupied, f.resolver.Resolve("table-4", testDate, "19:30", list))

	f.now = at("2025-01-10T18:59")
	assert.Equal(t, models.StatusReserved, f.resolver.Resolve("table-4", testDate, "19:30", list))

	// tidak pernah kembali available walaupun jam sudah lewat
	f.now = at("2025-01-11T09:00")
	assert.Equal(t, models.StatusOccupied, f.resolver.Resolve("table-4", testDate, "20:45", list))
}

func TestResolveUnparseableStartIsReserved(t *testing.T) {
	f := newFixture(at("2030-01-01T00:00"))
	list := []models.Reservation{confirmed("r1", "10/01/2025", "19:00", "table-4")}

	assert.Equal(t, models.StatusReserved, f.resolver.Resolve("table-4", "10/01/2025", "19:15", list))
}

func TestResolveFirstMatchWins(t *testing.T) {
	f := newFixture(at("2025-01-10T18:30"))
	list := []models.Reservation{
		confirmed("later", testDate, "19:00", "table-4"),
		confirmed("earlier", testDate, "18:00", "table-4"),
	}
	// the first overlapping entry has not started yet
	assert.Equal(t, models.StatusReserved, f.resolver.Resolve("table-4", testDate, "19:15", list))

	list[0], list[1] = list[1], list[0]
	assert.Equal(t, models.StatusOccupied, f.resolver.Resolve("table-4", testDate, "19:15", list))
}

func TestApplyStatusesCopiesTables(t *testing.T) {
	f := newFixture(at("2025-01-10T12:00"))
	tables := models.DemoTablesForFloor(testFloor)
	list := []models.Reservation{confirmed("r1", testDate, "19:00", "table-4")}

	out := f.resolver.ApplyStatuses(tables, testDate, "19:30", list)

	assert.Equal(t, models.StatusReserved, out[3].Status)
	assert.Equal(t, models.StatusAvailable, tables[3].Status)
	out[0].Position.X = 999
	assert.Equal(t, 50.0, tables[0].Position.X)
}
