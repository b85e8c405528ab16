package models

import "math"

type TableShape string

const (
	ShapeRectangle TableShape = "rectangle"
	ShapeSquare    TableShape = "square"
	ShapeCircle    TableShape = "circle"
)

// Valid reports whether s is one of the supported shapes.
func (s TableShape) Valid() bool {
	switch s {
	case ShapeRectangle, ShapeSquare, ShapeCircle:
		return true
	}
	return false
}

// TableStatus is derived for a date/time context, never stored as truth.
type TableStatus string

const (
	StatusAvailable TableStatus = "available"
	StatusReserved  TableStatus = "reserved"
	StatusOccupied  TableStatus = "occupied"
)

type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type Table struct {
	ID          string      `json:"id"`
	Number      int         `json:"number"`
	Shape       TableShape  `json:"shape"`
	Capacity    int         `json:"capacity"`
	IsMergeable bool        `json:"is_mergeable"`
	Status      TableStatus `json:"status"`
	FloorID     string      `json:"floor_id"`
	Position    *Position   `json:"position,omitempty"`
	MergedWith  []string    `json:"merged_with,omitempty"`
}

// IsAvailable -> hanya meja available yang boleh dipindah/diubah/dihapus
func (t Table) IsAvailable() bool {
	return t.Status == StatusAvailable
}

// Clone returns a deep copy so canvas edits never alias stored snapshots.
func (t Table) Clone() Table {
	out := t
	if t.Position != nil {
		p := *t.Position
		out.Position = &p
	}
	if t.MergedWith != nil {
		out.MergedWith = append([]string(nil), t.MergedWith...)
	}
	return out
}

func CloneTables(tables []Table) []Table {
	if tables == nil {
		return nil
	}
	out := make([]Table, len(tables))
	for i, t := range tables {
		out[i] = t.Clone()
	}
	return out
}

// TotalCapacity sums the seats of the given tables.
func TotalCapacity(tables []Table) int {
	total := 0
	for _, t := range tables {
		total += t.Capacity
	}
	return total
}

// UniqueTables keeps the first table for each id, in order.
func UniqueTables(tables []Table) []Table {
	seen := make(map[string]bool, len(tables))
	out := make([]Table, 0, len(tables))
	for _, t := range tables {
		if seen[t.ID] {
			continue
		}
		seen[t.ID] = true
		out = append(out, t)
	}
	return out
}

// TableSize is the visual size tier derived from capacity.
type TableSize string

const (
	SizeSmall  TableSize = "small"
	SizeMedium TableSize = "medium"
	SizeLarge  TableSize = "large"
	SizeXLarge TableSize = "xlarge"
)

// SizeForCapacity is a fixed step function: <=2 small, <=4 medium, <=6 large, else xlarge.
func SizeForCapacity(capacity int) TableSize {
	switch {
	case capacity <= 2:
		return SizeSmall
	case capacity <= 4:
		return SizeMedium
	case capacity <= 6:
		return SizeLarge
	default:
		return SizeXLarge
	}
}

// CapacityForSize maps a size option picked in the editor back to seats.
func CapacityForSize(size TableSize) int {
	switch size {
	case SizeSmall:
		return 2
	case SizeMedium:
		return 4
	case SizeLarge:
		return 6
	default:
		return 8
	}
}

// BaseDimensions returns the unshaped width/height in pixels for a capacity.
func BaseDimensions(capacity int) (w, h float64) {
	switch SizeForCapacity(capacity) {
	case SizeSmall:
		return 72, 48
	case SizeMedium:
		return 84, 84
	case SizeLarge:
		return 96, 96
	default:
		return 120, 84
	}
}

// Footprint returns the rendered width/height of the table on the canvas.
func (t Table) Footprint() (width, height float64) {
	w, h := BaseDimensions(t.Capacity)
	switch t.Shape {
	case ShapeCircle, ShapeSquare:
		s := math.Max(w, h)
		return s, s
	default:
		return math.Max(w, h), math.Min(w, h)
	}
}

type Floor struct {
	ID           string  `json:"id"`
	RestaurantID string  `json:"restaurant_id"`
	Name         string  `json:"name"`
	FloorNumber  int     `json:"floor_number"`
	Tables       []Table `json:"tables"`
}
