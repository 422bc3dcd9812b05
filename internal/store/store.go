// Package store persists the activity log and user settings in a durable
// key/value backend.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"fittrack/internal/activity"
)

// Storage keys. Both collections live under fixed keys; the activity log
// is a JSON array, the settings a single JSON object.
const (
	activitiesKey = "fitness_tracker_activities"
	settingsKey   = "fitness_tracker_user_settings"
)

// ErrNoSettings is returned when no user settings have been saved yet.
var ErrNoSettings = errors.New("no user settings stored")

// defaultRecentDays is the query window used when the caller passes a
// non-positive day count.
const defaultRecentDays = 7

// RecordStore is the application's data access layer. All operations are
// safe for concurrent use: the read-modify-write in AddActivity runs under
// the store mutex, so concurrent appends serialize instead of clobbering
// each other's snapshot.
type RecordStore struct {
	mu      sync.Mutex
	backend Backend

	now func() time.Time // overridable in tests
}

// New creates a RecordStore on top of the given backend.
func New(backend Backend) *RecordStore {
	return &RecordStore{
		backend: backend,
		now:     time.Now,
	}
}

// GetActivities returns the persisted activity log in insertion order, or
// an empty list when nothing has been written yet.
func (s *RecordStore) GetActivities() ([]activity.Activity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.getActivities()
}

// getActivities must be called with the store mutex held.
func (s *RecordStore) getActivities() ([]activity.Activity, error) {
	data, ok, err := s.backend.Get(activitiesKey)
	if err != nil {
		return nil, fmt.Errorf("reading activities: %w", err)
	}
	if !ok {
		return []activity.Activity{}, nil
	}

	var list []activity.Activity
	if err := json.Unmarshal(data, &list); err != nil {
		return nil, fmt.Errorf("parsing activities: %w", err)
	}
	if list == nil {
		list = []activity.Activity{}
	}
	return list, nil
}

// SaveActivities overwrites the entire persisted activity log.
func (s *RecordStore) SaveActivities(list []activity.Activity) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saveActivities(list)
}

// saveActivities must be called with the store mutex held.
func (s *RecordStore) saveActivities(list []activity.Activity) error {
	if list == nil {
		list = []activity.Activity{}
	}
	data, err := json.Marshal(list)
	if err != nil {
		return fmt.Errorf("encoding activities: %w", err)
	}
	if err := s.backend.Set(activitiesKey, data); err != nil {
		return fmt.Errorf("writing activities: %w", err)
	}
	return nil
}

// AddActivity appends a record to the persisted activity log.
func (s *RecordStore) AddActivity(rec activity.Activity) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	list, err := s.getActivities()
	if err != nil {
		return err
	}
	return s.saveActivities(append(list, rec))
}

// ClearActivities deletes every persisted activity.
func (s *RecordStore) ClearActivities() error {
	return s.SaveActivities([]activity.Activity{})
}

// GetRecentActivities returns activities whose start time falls within the
// last days days, inclusive at the cutoff, judged against the wall clock at
// call time. Non-positive day counts default to 7.
func (s *RecordStore) GetRecentActivities(days int) ([]activity.Activity, error) {
	if days <= 0 {
		days = defaultRecentDays
	}

	list, err := s.GetActivities()
	if err != nil {
		return nil, err
	}

	now := s.now()
	cutoff := now.AddDate(0, 0, -days)

	recent := make([]activity.Activity, 0, len(list))
	for _, rec := range list {
		if rec.StartTime.Before(cutoff) || rec.StartTime.After(now) {
			continue
		}
		recent = append(recent, rec)
	}
	return recent, nil
}

// GetUserSettings returns the persisted user settings, or ErrNoSettings
// when the user has never saved a profile.
func (s *RecordStore) GetUserSettings() (*activity.UserSettings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, ok, err := s.backend.Get(settingsKey)
	if err != nil {
		return nil, fmt.Errorf("reading user settings: %w", err)
	}
	if !ok {
		return nil, ErrNoSettings
	}

	var settings activity.UserSettings
	if err := json.Unmarshal(data, &settings); err != nil {
		return nil, fmt.Errorf("parsing user settings: %w", err)
	}
	return &settings, nil
}

// SaveUserSettings replaces the persisted user settings wholesale. Callers
// wanting a partial update must read-modify-write the whole object.
func (s *RecordStore) SaveUserSettings(settings *activity.UserSettings) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.Marshal(settings)
	if err != nil {
		return fmt.Errorf("encoding user settings: %w", err)
	}
	if err := s.backend.Set(settingsKey, data); err != nil {
		return fmt.Errorf("writing user settings: %w", err)
	}
	return nil
}
