package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/yeremiapane/restaurant-floorplan/models"
	"github.com/yeremiapane/restaurant-floorplan/utils"
)

const defaultCreatedBy = "local-manager"

// ValidationError is a user-correctable problem with a draft reservation.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *ValidationError) Error() string {
	return e.Message
}

func invalid(field, msg string) *ValidationError {
	return &ValidationError{Field: field, Message: msg}
}

// Finalizer turns a validated draft into a confirmed reservation and pins the
// floor layout for the following hour.
type Finalizer struct {
	Layouts      *LayoutStore
	Reservations *ReservationStore
	Now          func() time.Time
}

func NewFinalizer(layouts *LayoutStore, reservations *ReservationStore) *Finalizer {
	return &Finalizer{Layouts: layouts, Reservations: reservations, Now: time.Now}
}

// Validate checks the draft in a fixed order and reports the first failure.
func Validate(draft models.ReservationDraft, selected, layout []models.Table) *ValidationError {
	selected = models.UniqueTables(selected)
	switch {
	case draft.Date == "":
		return invalid("date", "Please select a date")
	case draft.Time == "":
		return invalid("time", "Please select a time")
	case strings.TrimSpace(draft.Name) == "":
		return invalid("name", "Reservation name is required")
	case strings.TrimSpace(draft.Phone) == "":
		return invalid("phone", "Phone number is required")
	case len(selected) == 0:
		return invalid("tables", "Select at least one available table on the canvas")
	case draft.Guests < 1:
		return invalid("guests", "Number of guests must be at least 1")
	case models.TotalCapacity(selected) < draft.Guests:
		return invalid("capacity", "Selected tables do not have enough capacity for these guests")
	case len(layout) == 0:
		return invalid("layout", "Could not read current layout for this floor")
	}
	return nil
}

// Finalize -> validasi draft, simpan snapshot layout 1 jam lalu simpan reservasi
func (f *Finalizer) Finalize(ctx context.Context, restaurantID, floorID string, draft models.ReservationDraft, selected, layout []models.Table) (*models.Reservation, error) {
	if verr := Validate(draft, selected, layout); verr != nil {
		return nil, verr
	}

	keys, err := f.Layouts.SetSlotHour(ctx, restaurantID, floorID, draft.Date, draft.Time, asAvailable(layout))
	if err != nil {
		return nil, fmt.Errorf("snapshot slot layout: %w", err)
	}

	selected = models.UniqueTables(selected)
	tableIDs := make([]string, 0, len(selected))
	for _, t := range selected {
		tableIDs = append(tableIDs, t.ID)
	}
	createdBy := strings.TrimSpace(draft.CreatedBy)
	if createdBy == "" {
		createdBy = defaultCreatedBy
	}
	now := f.Now()
	reservation := models.Reservation{
		ID:              "reservation-" + uuid.NewString(),
		RestaurantID:    restaurantID,
		CustomerName:    strings.TrimSpace(draft.Name),
		CustomerPhone:   strings.TrimSpace(draft.Phone),
		CustomerEmail:   strings.TrimSpace(draft.Email),
		Date:            draft.Date,
		Time:            draft.Time,
		NumberOfGuests:  draft.Guests,
		TableIDs:        tableIDs,
		FloorID:         floorID,
		Status:          models.ReservationConfirmed,
		SpecialRequests: strings.TrimSpace(draft.Notes),
		CreatedAt:       now,
		UpdatedAt:       now,
		CreatedBy:       createdBy,
	}

	if err := f.Reservations.Prepend(ctx, restaurantID, reservation); err != nil {
		return nil, fmt.Errorf("save reservation: %w", err)
	}

	utils.InfoLogger.WithFields(logrus.Fields{
		"restaurant": restaurantID,
		"floor":      floorID,
		"date":       draft.Date,
		"slots":      keys,
	}).Infof("Reservation %s created for %d guests", reservation.ID, reservation.NumberOfGuests)
	return &reservation, nil
}
