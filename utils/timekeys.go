package utils

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

const (
	// LayoutPersistMinutes is how long a finalized reservation pins the floor layout.
	LayoutPersistMinutes = 60
	// LayoutTimeStepMinutes is the width of one time key.
	LayoutTimeStepMinutes = 15

	minutesPerDay = 24 * 60
)

// MinutesOf parses "HH:mm" into minutes since midnight. Anything it cannot
// read degrades to 0; range is not validated.
func MinutesOf(t string) int {
	parts := strings.Split(t, ":")
	if len(parts) < 2 {
		return 0
	}
	hh, ok := parseClockPart(parts[0])
	if !ok {
		return 0
	}
	mm, ok := parseClockPart(parts[1])
	if !ok {
		return 0
	}
	return int(hh*60 + mm)
}

func parseClockPart(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, true
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// TimeOf formats minutes as "HH:mm", wrapping negatives and overflow into one day.
func TimeOf(minutes int) string {
	m := ((minutes % minutesPerDay) + minutesPerDay) % minutesPerDay
	return fmt.Sprintf("%02d:%02d", m/60, m%60)
}

func AddMinutes(t string, delta int) string {
	return TimeOf(MinutesOf(t) + delta)
}

// ExpandWindow lists the time keys covering totalMinutes from t, end-exclusive:
// 60 minutes at 15-minute steps from 09:00 gives 09:00, 09:15, 09:30, 09:45.
func ExpandWindow(t string, totalMinutes, stepMinutes int) []string {
	if stepMinutes <= 0 || totalMinutes <= 0 {
		return []string{}
	}
	steps := totalMinutes / stepMinutes
	start := MinutesOf(t)
	keys := make([]string, 0, steps)
	for i := 0; i < steps; i++ {
		keys = append(keys, TimeOf(start+i*stepMinutes))
	}
	return keys
}
