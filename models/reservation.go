package models

import "time"

type ReservationStatus string

const (
	ReservationConfirmed ReservationStatus = "confirmed"
	ReservationCancelled ReservationStatus = "cancelled"
	ReservationCompleted ReservationStatus = "completed"
)

func (s ReservationStatus) Valid() bool {
	switch s {
	case ReservationConfirmed, ReservationCancelled, ReservationCompleted:
		return true
	}
	return false
}

type Reservation struct {
	ID              string            `json:"id"`
	RestaurantID    string            `json:"restaurant_id"`
	CustomerName    string            `json:"customer_name"`
	CustomerPhone   string            `json:"customer_phone"`
	CustomerEmail   string            `json:"customer_email,omitempty"`
	Date            string            `json:"date"`
	Time            string            `json:"time"`
	NumberOfGuests  int               `json:"number_of_guests"`
	TableIDs        []string          `json:"table_ids"`
	FloorID         string            `json:"floor_id"`
	Status          ReservationStatus `json:"status"`
	SpecialRequests string            `json:"special_requests,omitempty"`
	CreatedAt       time.Time         `json:"created_at"`
	UpdatedAt       time.Time         `json:"updated_at"`
	CreatedBy       string            `json:"created_by"`
}

// HasTable reports whether the reservation occupies tableID.
func (r Reservation) HasTable(tableID string) bool {
	for _, id := range r.TableIDs {
		if id == tableID {
			return true
		}
	}
	return false
}

// ReservationDraft is what the booking form submits before validation.
type ReservationDraft struct {
	Date      string `json:"date"`
	Time      string `json:"time"`
	Guests    int    `json:"guests"`
	Name      string `json:"name"`
	Phone     string `json:"phone"`
	Email     string `json:"email"`
	Notes     string `json:"notes"`
	CreatedBy string `json:"created_by"`
}
