// Package alertstore is the session state container: active disaster
// alerts plus the cached weather, risk and resource data for the
// current location. Reads never expose internal slices; every mutation
// is serialized behind one mutex so the store is safe to share across
// request handlers and the feed poller.
package alertstore

import (
	"context"
	"sort"
	"sync"

	"github.com/havenapp/haven/internal/geo"
	"github.com/havenapp/haven/internal/models"
	"github.com/havenapp/haven/internal/repository"
)

type Store struct {
	mu sync.RWMutex

	alerts     []models.DisasterAlert
	selectedID string

	weather    *models.WeatherData
	assessment *models.RiskAssessment
	resources  []models.EmergencyResource

	userLocation *models.Location
	preferences  *models.UserPreferences

	prefs    repository.PreferenceRepository // nil disables persistence
	notifier *Notifier
}

// New returns an empty store. prefs may be nil; when set, the saved
// location and preferences are loaded eagerly and every change to them
// is written through.
func New(ctx context.Context, prefs repository.PreferenceRepository) (*Store, error) {
	s := &Store{
		prefs:    prefs,
		notifier: NewNotifier(),
	}
	if prefs != nil {
		loc, err := prefs.LoadLocation(ctx)
		if err != nil {
			return nil, err
		}
		settings, err := prefs.LoadPreferences(ctx)
		if err != nil {
			return nil, err
		}
		s.userLocation = loc
		s.preferences = settings
	}
	return s, nil
}

// Upsert inserts the alert or, when the ID is already present, replaces
// the stored alert in place so its position is preserved. Last write
// wins; there is no timestamp-based conflict resolution.
func (s *Store) Upsert(alert models.DisasterAlert) {
	s.mu.Lock()
	replaced := false
	for i := range s.alerts {
		if s.alerts[i].ID == alert.ID {
			s.alerts[i] = alert
			replaced = true
			break
		}
	}
	if !replaced {
		s.alerts = append(s.alerts, alert)
	}
	s.mu.Unlock()

	if !replaced && alert.Critical() {
		s.notifier.Publish(alert)
	}
}

// Remove deletes the alert with the given ID. If that alert was
// selected, the selection is cleared so it never dangles.
func (s *Store) Remove(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.alerts {
		if s.alerts[i].ID == id {
			s.alerts = append(s.alerts[:i], s.alerts[i+1:]...)
			break
		}
	}
	if s.selectedID == id {
		s.selectedID = ""
	}
}

// Select marks an alert as the current UI selection. Selecting an
// unknown ID clears the selection.
func (s *Store) Select(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.selectedID = ""
	for i := range s.alerts {
		if s.alerts[i].ID == id {
			s.selectedID = id
			return
		}
	}
}

// Selected returns the currently selected alert, or nil.
func (s *Store) Selected() *models.DisasterAlert {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.selectedID == "" {
		return nil
	}
	for i := range s.alerts {
		if s.alerts[i].ID == s.selectedID {
			a := s.alerts[i]
			return &a
		}
	}
	return nil
}

// Alerts returns a copy of all stored alerts in insertion order.
func (s *Store) Alerts() []models.DisasterAlert {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.DisasterAlert(nil), s.alerts...)
}

// Len reports the number of stored alerts.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.alerts)
}

// FilteredSorted derives a view of the alerts without mutating the
// underlying collection. Either argument may be nil.
func (s *Store) FilteredSorted(pred func(models.DisasterAlert) bool, less func(a, b models.DisasterAlert) bool) []models.DisasterAlert {
	s.mu.RLock()
	view := make([]models.DisasterAlert, 0, len(s.alerts))
	for _, a := range s.alerts {
		if pred == nil || pred(a) {
			view = append(view, a)
		}
	}
	s.mu.RUnlock()

	if less != nil {
		sort.SliceStable(view, func(i, j int) bool { return less(view[i], view[j]) })
	}
	return view
}

// CriticalAlerts returns the high and extreme severity alerts,
// recomputed from current state on every call.
func (s *Store) CriticalAlerts() []models.DisasterAlert {
	return s.FilteredSorted(models.DisasterAlert.Critical, nil)
}

// ActiveAlerts returns alerts still flagged active.
func (s *Store) ActiveAlerts() []models.DisasterAlert {
	return s.FilteredSorted(func(a models.DisasterAlert) bool { return a.IsActive }, nil)
}

// Nearby returns alerts within radiusKm of the origin by great-circle
// distance, nearest first.
func (s *Store) Nearby(origin models.Location, radiusKm float64) []models.DisasterAlert {
	return s.FilteredSorted(
		func(a models.DisasterAlert) bool {
			return geo.GreatCircleDistance(origin, a.Location) <= radiusKm
		},
		func(a, b models.DisasterAlert) bool {
			return geo.GreatCircleDistance(origin, a.Location) < geo.GreatCircleDistance(origin, b.Location)
		},
	)
}

func (s *Store) SetWeather(w *models.WeatherData) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.weather = w
}

func (s *Store) Weather() *models.WeatherData {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.weather
}

func (s *Store) SetRiskAssessment(a *models.RiskAssessment) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.assessment = a
}

func (s *Store) RiskAssessment() *models.RiskAssessment {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.assessment
}

func (s *Store) SetResources(resources []models.EmergencyResource) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.resources = append([]models.EmergencyResource(nil), resources...)
}

func (s *Store) Resources() []models.EmergencyResource {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.EmergencyResource(nil), s.resources...)
}

// SetUserLocation updates the durable user location, writing through
// to the repository when one is configured.
func (s *Store) SetUserLocation(ctx context.Context, loc models.Location) error {
	if s.prefs != nil {
		if err := s.prefs.SaveLocation(ctx, loc); err != nil {
			return err
		}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.userLocation = &loc
	return nil
}

func (s *Store) UserLocation() *models.Location {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.userLocation
}

// SetPreferences updates the durable preference settings, writing
// through to the repository when one is configured.
func (s *Store) SetPreferences(ctx context.Context, prefs models.UserPreferences) error {
	if s.prefs != nil {
		if err := s.prefs.SavePreferences(ctx, prefs); err != nil {
			return err
		}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.preferences = &prefs
	return nil
}

func (s *Store) Preferences() *models.UserPreferences {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.preferences
}

// Reset clears every transient field: alerts, selection, weather, risk
// assessment and resources. The user location and preferences are
// durable and untouched.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.alerts = nil
	s.selectedID = ""
	s.weather = nil
	s.assessment = nil
	s.resources = nil
}

// Notifier exposes the critical-alert subscription feed.
func (s *Store) Notifier() *Notifier {
	return s.notifier
}

// Close shuts down the subscription feed.
func (s *Store) Close() {
	s.notifier.Close()
}
