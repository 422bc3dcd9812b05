package activity

import "time"

// Type identifies the kind of workout being tracked.
type Type string

const (
	Running Type = "running"
	Cycling Type = "cycling"
	Walking Type = "walking"
)

// MET returns the metabolic equivalent constant for the activity type,
// used for calorie estimation. Unknown types return 0.
func (t Type) MET() float64 {
	switch t {
	case Running:
		return 9.8 // running 6 mph (10 min/mile)
	case Cycling:
		return 8.0 // cycling 12-14 mph, moderate effort
	case Walking:
		return 3.5 // walking 4 mph, brisk pace
	}
	return 0
}

// Valid reports whether t is one of the known activity types.
func (t Type) Valid() bool {
	switch t {
	case Running, Cycling, Walking:
		return true
	}
	return false
}

// Fix is a single GPS sample captured during a session. Fixes are owned by
// the session tracker and never mutated once captured.
type Fix struct {
	Latitude  float64  `json:"latitude"`
	Longitude float64  `json:"longitude"`
	Altitude  *float64 `json:"altitude,omitempty"` // meters
	Accuracy  *float64 `json:"accuracy,omitempty"` // meters
	Speed     *float64 `json:"speed,omitempty"`    // m/s
	Timestamp int64    `json:"timestamp"`          // epoch milliseconds
}

// Route is an ordered sequence of fixes, insertion order = chronological
// order.
type Route []Fix

// Activity is the persisted result of one completed session. Duration,
// distance, pace and calories are derived from the route and timestamps at
// creation time and the record is immutable thereafter.
type Activity struct {
	ID        string    `json:"id"`
	Type      Type      `json:"type"`
	StartTime time.Time `json:"startTime"`
	EndTime   time.Time `json:"endTime"`
	Duration  float64   `json:"duration"` // seconds
	Distance  float64   `json:"distance"` // meters
	AvgPace   float64   `json:"avgPace"`  // seconds per km, 0 when undefined
	Calories  float64   `json:"calories"` // estimated kcal
	Route     Route     `json:"route"`
}

// Gender values for user settings.
const (
	GenderMale   = "male"
	GenderFemale = "female"
	GenderOther  = "other"
)

// Unit systems for user settings.
const (
	UnitsMetric   = "metric"
	UnitsImperial = "imperial"
)

// UserSettings is the singleton profile record. It is replaced wholesale on
// save; the store never merges partial updates.
type UserSettings struct {
	Name   string  `json:"name"`
	Weight float64 `json:"weight"` // kg
	Height float64 `json:"height"` // cm
	Gender string  `json:"gender"`
	Units  string  `json:"units"`
}

// Imperial reports whether the settings select the imperial unit system.
func (s UserSettings) Imperial() bool {
	return s.Units == UnitsImperial
}

// DefaultSettings returns the settings used before the user has saved a
// profile.
func DefaultSettings() UserSettings {
	return UserSettings{
		Weight: DefaultWeightKg,
		Height: 170,
		Gender: GenderOther,
		Units:  UnitsMetric,
	}
}
