package services

import (
	"time"

	"github.com/yeremiapane/restaurant-floorplan/models"
	"github.com/yeremiapane/restaurant-floorplan/utils"
)

// DefaultReservationDuration is how long a reservation holds its tables.
const DefaultReservationDuration = 2 * time.Hour

// StatusResolver derives a table's status for a date/time from reservations.
// Once a reservation has started its tables stay occupied; nothing flips them
// back to available when the window ends.
type StatusResolver struct {
	Now      func() time.Time
	Location *time.Location
	Duration time.Duration
}

func NewStatusResolver(now func() time.Time, loc *time.Location) *StatusResolver {
	if now == nil {
		now = time.Now
	}
	if loc == nil {
		loc = time.Local
	}
	return &StatusResolver{Now: now, Location: loc, Duration: DefaultReservationDuration}
}

// Resolve -> status meja pada tanggal/jam tertentu
func (sr *StatusResolver) Resolve(tableID, date, t string, reservations []models.Reservation) models.TableStatus {
	match := sr.findOverlapping(tableID, date, t, reservations)
	if match == nil {
		return models.StatusAvailable
	}

	start, err := time.ParseInLocation("2006-01-02T15:04", match.Date+"T"+match.Time, sr.Location)
	if err != nil {
		// An unreadable start instant can never be "now or past".
		return models.StatusReserved
	}
	if !sr.Now().Before(start) {
		return models.StatusOccupied
	}
	return models.StatusReserved
}

func (sr *StatusResolver) findOverlapping(tableID, date, t string, reservations []models.Reservation) *models.Reservation {
	window := int(sr.Duration / time.Minute)
	check := utils.MinutesOf(t)
	for i := range reservations {
		res := &reservations[i]
		if res.Status == models.ReservationCancelled || res.Date != date || !res.HasTable(tableID) {
			continue
		}
		start := utils.MinutesOf(res.Time)
		if check >= start && check < start+window {
			return res
		}
	}
	return nil
}

// ApplyStatuses returns a copy of tables stamped with their status for date/time.
func (sr *StatusResolver) ApplyStatuses(tables []models.Table, date, t string, reservations []models.Reservation) []models.Table {
	out := models.CloneTables(tables)
	for i := range out {
		out[i].Status = sr.Resolve(out[i].ID, date, t, reservations)
	}
	return out
}
