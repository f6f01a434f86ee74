package service

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/tejashwikalptaru/wavefield/internal/domain"
	"github.com/tejashwikalptaru/wavefield/internal/ports"
	"github.com/tejashwikalptaru/wavefield/internal/wave"
)

// Settings keys carried by SettingsChangedEvent.
const (
	SettingVariant    = "variant"
	SettingUnitCount  = "unit_count"
	SettingCenterline = "centerline"
)

// SettingsService caches the user's renderer settings and persists changes.
// Every successful change publishes a SettingsChangedEvent.
type SettingsService struct {
	logger     *slog.Logger
	repository ports.SettingsRepository
	bus        ports.EventBus

	mu         sync.RWMutex
	variant    domain.Variant
	unitCount  int // 0 keeps the configured default
	centerline bool
}

// NewSettingsService creates a settings service and loads the saved values.
// Unreadable values are logged and replaced by defaults.
func NewSettingsService(
	logger *slog.Logger,
	repository ports.SettingsRepository,
	bus ports.EventBus,
) *SettingsService {
	s := &SettingsService{
		logger:     logger.With(slog.String("service", "settings")),
		repository: repository,
		bus:        bus,
		variant:    domain.VariantPeaked,
		centerline: true,
	}
	s.load()
	return s
}

func (s *SettingsService) load() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if v, err := s.repository.LoadVariant(); err == nil {
		s.variant = v
	} else {
		s.logger.Warn("failed to load variant", slog.Any("error", err))
	}

	if n, err := s.repository.LoadUnitCount(); err == nil && n >= 0 && n <= wave.MaxUnits {
		s.unitCount = n
	} else if err != nil {
		s.logger.Warn("failed to load unit count", slog.Any("error", err))
	}

	if show, err := s.repository.LoadShowCenterline(); err == nil {
		s.centerline = show
	} else {
		s.logger.Warn("failed to load centerline flag", slog.Any("error", err))
	}
}

// Variant returns the selected variant.
func (s *SettingsService) Variant() domain.Variant {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.variant
}

// UnitCount returns the saved unit count, 0 when the default applies.
func (s *SettingsService) UnitCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.unitCount
}

// ShowCenterline returns whether the centerline is drawn.
func (s *SettingsService) ShowCenterline() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.centerline
}

// Apply overlays the saved settings on base.
func (s *SettingsService) Apply(base RendererConfig) RendererConfig {
	s.mu.RLock()
	defer s.mu.RUnlock()

	base.Wave.Variant = s.variant
	if s.unitCount > 0 {
		base.Wave.Count = s.unitCount
	}
	base.ShowCenterline = s.centerline
	return base
}

// SetVariant selects and persists a variant.
func (s *SettingsService) SetVariant(variant domain.Variant) error {
	if _, err := domain.ParseVariant(string(variant)); err != nil {
		return err
	}

	s.mu.Lock()
	if s.variant == variant {
		s.mu.Unlock()
		return nil
	}
	if err := s.repository.SaveVariant(variant); err != nil {
		s.mu.Unlock()
		return domain.NewServiceError("SettingsService", "SetVariant", "failed to save variant", err)
	}
	s.variant = variant
	s.mu.Unlock()

	s.changed(SettingVariant, variant)
	return nil
}

// SetUnitCount selects and persists the number of units; 0 restores the default.
func (s *SettingsService) SetUnitCount(count int) error {
	if count < 0 || count > wave.MaxUnits {
		return domain.NewValidationError("count", count, fmt.Sprintf("must be between 0 and %d", wave.MaxUnits))
	}

	s.mu.Lock()
	if s.unitCount == count {
		s.mu.Unlock()
		return nil
	}
	if err := s.repository.SaveUnitCount(count); err != nil {
		s.mu.Unlock()
		return domain.NewServiceError("SettingsService", "SetUnitCount", "failed to save unit count", err)
	}
	s.unitCount = count
	s.mu.Unlock()

	s.changed(SettingUnitCount, count)
	return nil
}

// SetShowCenterline toggles and persists the centerline.
func (s *SettingsService) SetShowCenterline(show bool) error {
	s.mu.Lock()
	if s.centerline == show {
		s.mu.Unlock()
		return nil
	}
	if err := s.repository.SaveShowCenterline(show); err != nil {
		s.mu.Unlock()
		return domain.NewServiceError("SettingsService", "SetShowCenterline", "failed to save centerline flag", err)
	}
	s.centerline = show
	s.mu.Unlock()

	s.changed(SettingCenterline, show)
	return nil
}

// Reset clears the persisted settings and restores defaults.
func (s *SettingsService) Reset() error {
	if err := s.repository.Clear(); err != nil {
		return domain.NewServiceError("SettingsService", "Reset", "failed to clear settings", err)
	}

	s.mu.Lock()
	s.variant = domain.VariantPeaked
	s.unitCount = 0
	s.centerline = true
	s.mu.Unlock()

	s.changed(SettingVariant, domain.VariantPeaked)
	return nil
}

func (s *SettingsService) changed(key string, value any) {
	s.logger.Info("setting changed", slog.String("key", key), slog.Any("value", value))
	if s.bus != nil {
		s.bus.Publish(domain.NewSettingsChangedEvent(key, value))
	}
}
