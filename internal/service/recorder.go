// Package service turns completed tracking sessions into persisted
// activity records and answers the read-side queries the host screens need.
package service

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"fittrack/internal/activity"
	"fittrack/internal/geo"
	"fittrack/internal/store"
)

// ErrInvalidInterval is returned when a session's end time precedes its
// start time.
var ErrInvalidInterval = errors.New("session end time before start time")

// ErrInvalidType is returned for unknown activity types.
var ErrInvalidType = errors.New("unknown activity type")

// Recorder derives statistics for finished sessions and appends the
// resulting records to the store.
type Recorder struct {
	store *store.RecordStore
}

// NewRecorder creates a Recorder backed by the given store.
func NewRecorder(st *store.RecordStore) *Recorder {
	return &Recorder{store: st}
}

// Record closes a session: it computes duration, distance, average pace
// and estimated calories from the captured route, assigns a fresh ID and
// appends exactly one record to the activity log. Routes with fewer than
// two fixes still produce a valid zero-distance record; whether to invoke
// Record for such sessions is the caller's policy.
func (r *Recorder) Record(t activity.Type, start, end time.Time, route activity.Route, weightKg float64) (*activity.Activity, error) {
	if !t.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidType, t)
	}
	if end.Before(start) {
		return nil, ErrInvalidInterval
	}

	duration := end.Sub(start).Seconds()
	distance := geo.RouteDistance(route)

	rec := activity.Activity{
		ID:        uuid.NewString(),
		Type:      t,
		StartTime: start,
		EndTime:   end,
		Duration:  duration,
		Distance:  distance,
		AvgPace:   activity.AveragePace(duration, distance),
		Calories:  activity.EstimatedCalories(t, duration, distance, weightKg),
		Route:     route,
	}

	if err := r.store.AddActivity(rec); err != nil {
		return nil, fmt.Errorf("persisting activity: %w", err)
	}
	return &rec, nil
}

// History returns all recorded activities, newest first.
func (r *Recorder) History() ([]activity.Activity, error) {
	list, err := r.store.GetActivities()
	if err != nil {
		return nil, err
	}
	sort.SliceStable(list, func(i, j int) bool {
		return list[i].StartTime.After(list[j].StartTime)
	})
	return list, nil
}

// Summary aggregates the recent activity totals shown on the home screen.
type Summary struct {
	Count           int
	DistanceMeters  float64
	DurationSeconds float64
	Calories        float64
}

// RecentSummary totals the activities of the last days days.
func (r *Recorder) RecentSummary(days int) (Summary, error) {
	recent, err := r.store.GetRecentActivities(days)
	if err != nil {
		return Summary{}, err
	}

	var sum Summary
	for _, rec := range recent {
		sum.Count++
		sum.DistanceMeters += rec.Distance
		sum.DurationSeconds += rec.Duration
		sum.Calories += rec.Calories
	}
	return sum, nil
}
