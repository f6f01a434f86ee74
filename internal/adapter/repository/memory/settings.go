// Package memory provides repositories backed by the host toolkit's
// key-value preference store.
package memory

import (
	"sync"

	"fyne.io/fyne/v2"
	"github.com/tejashwikalptaru/wavefield/internal/domain"
	"github.com/tejashwikalptaru/wavefield/internal/ports"
)

const (
	keyVariant    = "settings.variant"
	keyUnitCount  = "settings.unit_count"
	keyCenterline = "settings.centerline"
)

// SettingsRepository implements ports.SettingsRepository using Fyne preferences.
//
// Thread-safe: all operations are protected by sync.RWMutex.
type SettingsRepository struct {
	prefs fyne.Preferences
	mu    sync.RWMutex
}

// NewSettingsRepository creates a settings repository.
// The preferences usually come from fyne.CurrentApp().Preferences().
func NewSettingsRepository(prefs fyne.Preferences) *SettingsRepository {
	return &SettingsRepository{prefs: prefs}
}

// SaveVariant persists the wave variant.
func (r *SettingsRepository) SaveVariant(variant domain.Variant) error {
	if _, err := domain.ParseVariant(string(variant)); err != nil {
		return domain.NewRepositoryError("save", "settings", "refusing to store unknown variant", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.prefs.SetString(keyVariant, string(variant))
	return nil
}

// LoadVariant retrieves the saved variant, VariantPeaked if never saved.
// A stored value that no longer names a variant is reported as an error.
func (r *SettingsRepository) LoadVariant() (domain.Variant, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	raw := r.prefs.StringWithFallback(keyVariant, string(domain.VariantPeaked))
	variant, err := domain.ParseVariant(raw)
	if err != nil {
		return domain.VariantPeaked, domain.NewRepositoryError("load", "settings", "stored variant is invalid", err)
	}
	return variant, nil
}

// SaveUnitCount persists the number of wave units.
func (r *SettingsRepository) SaveUnitCount(count int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.prefs.SetInt(keyUnitCount, count)
	return nil
}

// LoadUnitCount retrieves the saved unit count, 0 if never saved.
func (r *SettingsRepository) LoadUnitCount() (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.prefs.IntWithFallback(keyUnitCount, 0), nil
}

// SaveShowCenterline persists the centerline flag.
func (r *SettingsRepository) SaveShowCenterline(show bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.prefs.SetBool(keyCenterline, show)
	return nil
}

// LoadShowCenterline retrieves the centerline flag, true if never saved.
func (r *SettingsRepository) LoadShowCenterline() (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.prefs.BoolWithFallback(keyCenterline, true), nil
}

// Clear removes all saved settings.
func (r *SettingsRepository) Clear() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.prefs.RemoveValue(keyVariant)
	r.prefs.RemoveValue(keyUnitCount)
	r.prefs.RemoveValue(keyCenterline)
	return nil
}

// Verify interface implementation at compile time.
var _ ports.SettingsRepository = (*SettingsRepository)(nil)
