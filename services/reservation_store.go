package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/yeremiapane/restaurant-floorplan/models"
	"github.com/yeremiapane/restaurant-floorplan/storage"
	"github.com/yeremiapane/restaurant-floorplan/utils"
)

var ErrReservationNotFound = errors.New("reservation not found")

// ReservationStore keeps each restaurant's reservations as one list,
// newest first. Writes replace the whole list.
type ReservationStore struct {
	KV   storage.KV
	Keys storage.Keys
	Now  func() time.Time
}

func NewReservationStore(kv storage.KV, keys storage.Keys) *ReservationStore {
	return &ReservationStore{KV: kv, Keys: keys, Now: time.Now}
}

// List -> semua reservasi restoran; gagal baca atau data rusak dianggap kosong
func (rs *ReservationStore) List(ctx context.Context, restaurantID string) []models.Reservation {
	list, err := rs.load(ctx, restaurantID)
	if err != nil {
		utils.ErrorLogger.WithFields(logrus.Fields{"restaurant": restaurantID}).Errorf("reservations read failed: %v", err)
		return []models.Reservation{}
	}
	return list
}

// load returns backend errors; only a missing or corrupt value reads as empty.
// Writers must use load, never List.
func (rs *ReservationStore) load(ctx context.Context, restaurantID string) ([]models.Reservation, error) {
	key := rs.Keys.Reservations(restaurantID)
	raw, found, err := rs.KV.Get(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("read reservations: %w", err)
	}
	if !found || len(raw) == 0 {
		return []models.Reservation{}, nil
	}
	var list []models.Reservation
	if err := json.Unmarshal(raw, &list); err != nil {
		utils.InfoLogger.WithFields(logrus.Fields{"key": key}).Warnf("corrupt reservations ignored: %v", err)
		return []models.Reservation{}, nil
	}
	if list == nil {
		list = []models.Reservation{}
	}
	return list, nil
}

// ListByDate returns the non-cancelled reservations on date.
func (rs *ReservationStore) ListByDate(ctx context.Context, restaurantID, date string) []models.Reservation {
	return ForDate(rs.List(ctx, restaurantID), date)
}

// ListForTable returns the non-cancelled reservations that occupy tableID.
func (rs *ReservationStore) ListForTable(ctx context.Context, restaurantID, tableID string) []models.Reservation {
	return ForTable(rs.List(ctx, restaurantID), tableID)
}

func (rs *ReservationStore) ReplaceAll(ctx context.Context, restaurantID string, list []models.Reservation) error {
	if list == nil {
		list = []models.Reservation{}
	}
	raw, err := json.Marshal(list)
	if err != nil {
		return fmt.Errorf("encode reservations: %w", err)
	}
	return rs.KV.Set(ctx, rs.Keys.Reservations(restaurantID), raw)
}

// Prepend puts r in front of the stored list.
func (rs *ReservationStore) Prepend(ctx context.Context, restaurantID string, r models.Reservation) error {
	existing, err := rs.load(ctx, restaurantID)
	if err != nil {
		return err
	}
	list := make([]models.Reservation, 0, len(existing)+1)
	list = append(list, r)
	list = append(list, existing...)
	return rs.ReplaceAll(ctx, restaurantID, list)
}

// SetStatus moves a reservation to status. Reservations are never removed.
func (rs *ReservationStore) SetStatus(ctx context.Context, restaurantID, reservationID string, status models.ReservationStatus) (*models.Reservation, error) {
	list, err := rs.load(ctx, restaurantID)
	if err != nil {
		return nil, err
	}
	for i := range list {
		if list[i].ID != reservationID {
			continue
		}
		list[i].Status = status
		list[i].UpdatedAt = rs.Now()
		if err := rs.ReplaceAll(ctx, restaurantID, list); err != nil {
			return nil, err
		}
		updated := list[i]
		return &updated, nil
	}
	return nil, ErrReservationNotFound
}

func (rs *ReservationStore) Cancel(ctx context.Context, restaurantID, reservationID string) (*models.Reservation, error) {
	return rs.SetStatus(ctx, restaurantID, reservationID, models.ReservationCancelled)
}

func (rs *ReservationStore) Complete(ctx context.Context, restaurantID, reservationID string) (*models.Reservation, error) {
	return rs.SetStatus(ctx, restaurantID, reservationID, models.ReservationCompleted)
}

func ForDate(list []models.Reservation, date string) []models.Reservation {
	out := make([]models.Reservation, 0)
	for _, r := range list {
		if r.Date == date && r.Status != models.ReservationCancelled {
			out = append(out, r)
		}
	}
	return out
}

func ForTable(list []models.Reservation, tableID string) []models.Reservation {
	out := make([]models.Reservation, 0)
	for _, r := range list {
		if r.HasTable(tableID) && r.Status != models.ReservationCancelled {
			out = append(out, r)
		}
	}
	return out
}

// SortNewestFirst orders by date then time, descending, without touching list.
func SortNewestFirst(list []models.Reservation) []models.Reservation {
	out := make([]models.Reservation, len(list))
	copy(out, list)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date+" "+out[i].Time > out[j].Date+" "+out[j].Time
	})
	return out
}
