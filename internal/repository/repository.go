// Package repository persists the small set of user data that must
// survive a session reset: the chosen location and the preference
// settings. Everything else the app holds is session-scoped.
package repository

import (
	"context"

	"github.com/havenapp/haven/internal/models"
)

// PreferenceRepository stores the durable user state. Load methods
// return (nil, nil) when nothing has been saved yet.
type PreferenceRepository interface {
	SaveLocation(ctx context.Context, loc models.Location) error
	LoadLocation(ctx context.Context) (*models.Location, error)
	SavePreferences(ctx context.Context, prefs models.UserPreferences) error
	LoadPreferences(ctx context.Context) (*models.UserPreferences, error)
	Close() error
}
