package services

import (
	"sort"

	"github.com/yeremiapane/restaurant-floorplan/models"
)

// RecommendTables suggests tables for a party: the closest-fitting single
// table when one is big enough, otherwise a run of mergeable tables whose
// seats add up. Nil means nothing on the floor can seat the party.
func RecommendTables(resolver *StatusResolver, tables []models.Table, guests int, date, t string, reservations []models.Reservation) []models.Table {
	available := make([]models.Table, 0, len(tables))
	for _, table := range tables {
		if resolver.Resolve(table.ID, date, t, reservations) == models.StatusAvailable {
			available = append(available, table.Clone())
		}
	}

	sort.SliceStable(available, func(i, j int) bool {
		return absInt(available[i].Capacity-guests) < absInt(available[j].Capacity-guests)
	})

	for _, table := range available {
		if table.Capacity >= guests {
			return []models.Table{table}
		}
	}

	var picked []models.Table
	capacity := 0
	for _, table := range available {
		if !table.IsMergeable {
			continue
		}
		if capacity >= guests {
			break
		}
		picked = append(picked, table)
		capacity += table.Capacity
	}
	if capacity >= guests {
		return picked
	}
	return nil
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
