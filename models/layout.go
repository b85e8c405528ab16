package models

type LayoutKind string

const (
	LayoutDefault LayoutKind = "default"
	LayoutSlot    LayoutKind = "slot"
)

// Layout is the table arrangement of one floor. Slot layouts are pinned to a
// date and a 15-minute time key; default layouts have neither.
type Layout struct {
	Kind    LayoutKind `json:"kind"`
	FloorID string     `json:"floor_id"`
	Date    string     `json:"date,omitempty"`
	Time    string     `json:"time,omitempty"`
	Tables  []Table    `json:"tables"`
}
