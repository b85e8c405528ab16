package models

const (
	DemoRestaurantID = "demo-restaurant"
	GroundFloorID    = "floor-1"
	FirstFloorID     = "floor-2"
)

// DemoFloors -> daftar lantai bawaan; tables diisi dari DemoTablesForFloor
func DemoFloors(restaurantID string) []Floor {
	return []Floor{
		{ID: GroundFloorID, RestaurantID: restaurantID, Name: "Ground Floor", FloorNumber: 1, Tables: DemoTablesForFloor(GroundFloorID)},
		{ID: FirstFloorID, RestaurantID: restaurantID, Name: "First Floor", FloorNumber: 2, Tables: DemoTablesForFloor(FirstFloorID)},
	}
}

// DemoTablesForFloor returns a fresh copy of the seeded layout for a floor,
// or nil for floors without one.
func DemoTablesForFloor(floorID string) []Table {
	switch floorID {
	case GroundFloorID:
		return []Table{
			demoTable("table-1", 1, ShapeRectangle, 2, true, floorID, 50, 50),
			demoTable("table-2", 2, ShapeRectangle, 2, true, floorID, 200, 50),
			demoTable("table-3", 3, ShapeRectangle, 2, true, floorID, 350, 50),
			demoTable("table-4", 4, ShapeSquare, 4, true, floorID, 50, 200),
			demoTable("table-5", 5, ShapeSquare, 4, true, floorID, 250, 200),
			demoTable("table-6", 6, ShapeSquare, 4, false, floorID, 450, 200),
			demoTable("table-7", 7, ShapeCircle, 6, false, floorID, 50, 400),
			demoTable("table-8", 8, ShapeCircle, 6, false, floorID, 300, 400),
		}
	case FirstFloorID:
		return []Table{
			demoTable("table-9", 9, ShapeRectangle, 2, true, floorID, 100, 100),
			demoTable("table-10", 10, ShapeRectangle, 2, true, floorID, 250, 100),
			demoTable("table-11", 11, ShapeSquare, 4, true, floorID, 100, 250),
			demoTable("table-12", 12, ShapeSquare, 4, true, floorID, 300, 250),
			demoTable("table-13", 13, ShapeRectangle, 8, false, floorID, 150, 450),
		}
	}
	return nil
}

func demoTable(id string, number int, shape TableShape, capacity int, mergeable bool, floorID string, x, y float64) Table {
	return Table{
		ID:          id,
		Number:      number,
		Shape:       shape,
		Capacity:    capacity,
		IsMergeable: mergeable,
		Status:      StatusAvailable,
		FloorID:     floorID,
		Position:    &Position{X: x, Y: y},
	}
}
