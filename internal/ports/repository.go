// Package ports define repository interfaces for data persistence abstraction.
// These interfaces enable the repository pattern and allow swapping persistence mechanisms.
package ports

import (
	"github.com/tejashwikalptaru/wavefield/internal/domain"
)

// SettingsRepository handles the persistence of user-chosen renderer settings.
// Settings are simple key-value pairs.
//
// Thread-safety: Implementations must be thread-safe.
type SettingsRepository interface {
	// SaveVariant persists the wave variant.
	SaveVariant(variant domain.Variant) error

	// LoadVariant retrieves the saved variant.
	// Returns domain.VariantPeaked if never saved.
	LoadVariant() (domain.Variant, error)

	// SaveUnitCount persists the number of wave units.
	SaveUnitCount(count int) error

	// LoadUnitCount retrieves the saved unit count.
	// Returns 0 if never saved, meaning "use the configured default".
	LoadUnitCount() (int, error)

	// SaveShowCenterline persists whether the reference centerline is drawn.
	SaveShowCenterline(show bool) error

	// LoadShowCenterline retrieves the saved centerline flag.
	// Returns true if never saved.
	LoadShowCenterline() (bool, error)

	// Clear removes all saved settings.
	Clear() error
}
