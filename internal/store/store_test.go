package store

import (
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"fittrack/internal/activity"
)

// withEachBackend runs fn against every backend implementation so the
// record store contract is checked on all of them.
func withEachBackend(t *testing.T, fn func(t *testing.T, s *RecordStore, b Backend)) {
	t.Helper()

	backends := map[string]func(t *testing.T) Backend{
		"memory": func(t *testing.T) Backend {
			return NewMemoryBackend()
		},
		"sqlite": func(t *testing.T) Backend {
			b, err := Open(":memory:")
			if err != nil {
				t.Fatalf("opening sqlite backend: %v", err)
			}
			t.Cleanup(func() { b.Close() })
			return b
		},
		"bolt": func(t *testing.T) Backend {
			b, err := OpenBolt(filepath.Join(t.TempDir(), "test.db"))
			if err != nil {
				t.Fatalf("opening bolt backend: %v", err)
			}
			t.Cleanup(func() { b.Close() })
			return b
		},
	}

	for name, open := range backends {
		t.Run(name, func(t *testing.T) {
			b := open(t)
			fn(t, New(b), b)
		})
	}
}

func testActivity(id string, start time.Time) activity.Activity {
	alt := 12.5
	end := start.Add(10 * time.Minute)
	return activity.Activity{
		ID:        id,
		Type:      activity.Running,
		StartTime: start,
		EndTime:   end,
		Duration:  600,
		Distance:  2000,
		AvgPace:   300,
		Calories:  114.3,
		Route: activity.Route{
			{Latitude: 40.0, Longitude: -74.0, Altitude: &alt, Timestamp: start.UnixMilli()},
			{Latitude: 40.018, Longitude: -74.0, Timestamp: end.UnixMilli()},
		},
	}
}

func TestGetActivitiesEmpty(t *testing.T) {
	withEachBackend(t, func(t *testing.T, s *RecordStore, _ Backend) {
		list, err := s.GetActivities()
		if err != nil {
			t.Fatalf("GetActivities: %v", err)
		}
		if list == nil {
			t.Fatal("GetActivities returned nil, want empty list")
		}
		if len(list) != 0 {
			t.Errorf("len = %d, want 0", len(list))
		}
	})
}

func TestSaveActivitiesRoundTrip(t *testing.T) {
	withEachBackend(t, func(t *testing.T, s *RecordStore, _ Backend) {
		start := time.Date(2024, 3, 10, 8, 0, 0, 0, time.UTC)
		in := []activity.Activity{
			testActivity("a", start),
			testActivity("b", start.Add(24*time.Hour)),
			testActivity("c", start.Add(48*time.Hour)),
		}

		if err := s.SaveActivities(in); err != nil {
			t.Fatalf("SaveActivities: %v", err)
		}

		out, err := s.GetActivities()
		if err != nil {
			t.Fatalf("GetActivities: %v", err)
		}
		if len(out) != len(in) {
			t.Fatalf("len = %d, want %d", len(out), len(in))
		}
		for i := range in {
			if out[i].ID != in[i].ID {
				t.Errorf("out[%d].ID = %q, want %q (order must be preserved)", i, out[i].ID, in[i].ID)
			}
			if !out[i].StartTime.Equal(in[i].StartTime) {
				t.Errorf("out[%d].StartTime = %v, want %v", i, out[i].StartTime, in[i].StartTime)
			}
			if out[i].Distance != in[i].Distance {
				t.Errorf("out[%d].Distance = %v, want %v", i, out[i].Distance, in[i].Distance)
			}
			if len(out[i].Route) != len(in[i].Route) {
				t.Errorf("out[%d] route len = %d, want %d", i, len(out[i].Route), len(in[i].Route))
			}
		}

		// first route carries an optional altitude
		if alt := out[0].Route[0].Altitude; alt == nil || *alt != 12.5 {
			t.Errorf("out[0].Route[0].Altitude = %v, want 12.5", alt)
		}
		if out[1].Route[0].Altitude == nil {
			t.Errorf("out[1].Route[0].Altitude lost in round trip")
		}
	})
}

func TestAddActivityAppends(t *testing.T) {
	withEachBackend(t, func(t *testing.T, s *RecordStore, _ Backend) {
		start := time.Date(2024, 3, 10, 8, 0, 0, 0, time.UTC)
		a := testActivity("a", start)
		b := testActivity("b", start.Add(time.Hour))

		if err := s.AddActivity(a); err != nil {
			t.Fatalf("AddActivity(a): %v", err)
		}
		if err := s.AddActivity(b); err != nil {
			t.Fatalf("AddActivity(b): %v", err)
		}

		list, err := s.GetActivities()
		if err != nil {
			t.Fatalf("GetActivities: %v", err)
		}
		if len(list) != 2 || list[0].ID != "a" || list[1].ID != "b" {
			t.Errorf("got %d records, want [a, b] in order", len(list))
		}
	})
}

func TestClearActivities(t *testing.T) {
	withEachBackend(t, func(t *testing.T, s *RecordStore, _ Backend) {
		start := time.Date(2024, 3, 10, 8, 0, 0, 0, time.UTC)
		if err := s.AddActivity(testActivity("a", start)); err != nil {
			t.Fatalf("AddActivity: %v", err)
		}

		if err := s.ClearActivities(); err != nil {
			t.Fatalf("ClearActivities: %v", err)
		}

		list, err := s.GetActivities()
		if err != nil {
			t.Fatalf("GetActivities: %v", err)
		}
		if len(list) != 0 {
			t.Errorf("len after clear = %d, want 0", len(list))
		}
	})
}

func TestGetRecentActivities(t *testing.T) {
	withEachBackend(t, func(t *testing.T, s *RecordStore, _ Backend) {
		now := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)
		s.now = func() time.Time { return now }

		oneDayAgo := testActivity("fresh", now.Add(-24*time.Hour))
		eightDaysAgo := testActivity("stale", now.Add(-8*24*time.Hour))
		exactlyCutoff := testActivity("edge", now.AddDate(0, 0, -7))

		for _, rec := range []activity.Activity{eightDaysAgo, exactlyCutoff, oneDayAgo} {
			if err := s.AddActivity(rec); err != nil {
				t.Fatalf("AddActivity(%s): %v", rec.ID, err)
			}
		}

		recent, err := s.GetRecentActivities(7)
		if err != nil {
			t.Fatalf("GetRecentActivities: %v", err)
		}

		ids := make(map[string]bool, len(recent))
		for _, rec := range recent {
			ids[rec.ID] = true
		}
		if ids["stale"] {
			t.Error("activity 8 days old should be excluded")
		}
		if !ids["fresh"] {
			t.Error("activity 1 day old should be included")
		}
		if !ids["edge"] {
			t.Error("activity exactly at the cutoff should be included (inclusive lower bound)")
		}
	})
}

func TestGetRecentActivitiesDefaultWindow(t *testing.T) {
	s := New(NewMemoryBackend())
	now := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }

	if err := s.AddActivity(testActivity("a", now.Add(-3*24*time.Hour))); err != nil {
		t.Fatalf("AddActivity: %v", err)
	}
	if err := s.AddActivity(testActivity("b", now.Add(-10*24*time.Hour))); err != nil {
		t.Fatalf("AddActivity: %v", err)
	}

	recent, err := s.GetRecentActivities(0)
	if err != nil {
		t.Fatalf("GetRecentActivities: %v", err)
	}
	if len(recent) != 1 || recent[0].ID != "a" {
		t.Errorf("days<=0 should default to a 7 day window, got %d records", len(recent))
	}
}

func TestUserSettingsLifecycle(t *testing.T) {
	withEachBackend(t, func(t *testing.T, s *RecordStore, _ Backend) {
		if _, err := s.GetUserSettings(); !errors.Is(err, ErrNoSettings) {
			t.Fatalf("GetUserSettings before save: err = %v, want ErrNoSettings", err)
		}

		in := &activity.UserSettings{
			Name:   "Alex",
			Weight: 68,
			Height: 175,
			Gender: activity.GenderFemale,
			Units:  activity.UnitsImperial,
		}
		if err := s.SaveUserSettings(in); err != nil {
			t.Fatalf("SaveUserSettings: %v", err)
		}

		out, err := s.GetUserSettings()
		if err != nil {
			t.Fatalf("GetUserSettings: %v", err)
		}
		if *out != *in {
			t.Errorf("GetUserSettings = %+v, want %+v", out, in)
		}

		// save replaces wholesale, no merge
		replacement := &activity.UserSettings{Name: "Sam", Units: activity.UnitsMetric}
		if err := s.SaveUserSettings(replacement); err != nil {
			t.Fatalf("SaveUserSettings: %v", err)
		}
		out, err = s.GetUserSettings()
		if err != nil {
			t.Fatalf("GetUserSettings: %v", err)
		}
		if out.Weight != 0 || out.Name != "Sam" {
			t.Errorf("settings were merged, want wholesale replace: %+v", out)
		}
	})
}

func TestCorruptPayloadsSurfaceErrors(t *testing.T) {
	withEachBackend(t, func(t *testing.T, s *RecordStore, b Backend) {
		if err := b.Set(activitiesKey, []byte("{not json")); err != nil {
			t.Fatalf("seeding corrupt activities: %v", err)
		}
		if _, err := s.GetActivities(); err == nil {
			t.Error("GetActivities should report corrupt payloads")
		}

		if err := b.Set(settingsKey, []byte("[]")); err != nil {
			t.Fatalf("seeding corrupt settings: %v", err)
		}
		if _, err := s.GetUserSettings(); err == nil {
			t.Error("GetUserSettings should report corrupt payloads")
		}
	})
}

func TestAddActivityConcurrent(t *testing.T) {
	s := New(NewMemoryBackend())
	start := time.Date(2024, 3, 10, 8, 0, 0, 0, time.UTC)

	const n = 25
	var wg sync.WaitGroup
	errs := make(chan error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			rec := testActivity("", start.Add(time.Duration(i)*time.Minute))
			errs <- s.AddActivity(rec)
		}(i)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		if err != nil {
			t.Fatalf("AddActivity: %v", err)
		}
	}

	list, err := s.GetActivities()
	if err != nil {
		t.Fatalf("GetActivities: %v", err)
	}
	if len(list) != n {
		t.Errorf("len = %d, want %d (lost appends under concurrency)", len(list), n)
	}
}
