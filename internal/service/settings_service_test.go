package service

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tejashwikalptaru/wavefield/internal/adapter/eventbus"
	"github.com/tejashwikalptaru/wavefield/internal/domain"
	"github.com/tejashwikalptaru/wavefield/internal/wave"
)

// Mock settings repository for testing
type mockSettingsRepository struct {
	mu         sync.RWMutex
	variant    domain.Variant
	unitCount  int
	centerline bool
	loadErr    error
	saveErr    error
}

func newMockSettingsRepository() *mockSettingsRepository {
	return &mockSettingsRepository{variant: domain.VariantPeaked, centerline: true}
}

func (m *mockSettingsRepository) SaveVariant(v domain.Variant) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saveErr != nil {
		return m.saveErr
	}
	m.variant = v
	return nil
}

func (m *mockSettingsRepository) LoadVariant() (domain.Variant, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.loadErr != nil {
		return domain.VariantPeaked, m.loadErr
	}
	return m.variant, nil
}

func (m *mockSettingsRepository) SaveUnitCount(n int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saveErr != nil {
		return m.saveErr
	}
	m.unitCount = n
	return nil
}

func (m *mockSettingsRepository) LoadUnitCount() (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.unitCount, m.loadErr
}

func (m *mockSettingsRepository) SaveShowCenterline(show bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saveErr != nil {
		return m.saveErr
	}
	m.centerline = show
	return nil
}

func (m *mockSettingsRepository) LoadShowCenterline() (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.loadErr != nil {
		return true, m.loadErr
	}
	return m.centerline, nil
}

func (m *mockSettingsRepository) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.variant = domain.VariantPeaked
	m.unitCount = 0
	m.centerline = true
	return nil
}

func newTestSettingsService(repo *mockSettingsRepository) (*SettingsService, *[]domain.SettingsChangedEvent) {
	bus := eventbus.NewSyncEventBus()
	var changes []domain.SettingsChangedEvent
	bus.Subscribe(domain.EventSettingsChanged, func(e domain.Event) {
		changes = append(changes, e.(domain.SettingsChangedEvent))
	})
	return NewSettingsService(testLogger(), repo, bus), &changes
}

func TestSettingsService_Defaults(t *testing.T) {
	s, _ := newTestSettingsService(newMockSettingsRepository())

	assert.Equal(t, domain.VariantPeaked, s.Variant())
	assert.Zero(t, s.UnitCount())
	assert.True(t, s.ShowCenterline())
	assert.Equal(t, DefaultRendererConfig(), s.Apply(DefaultRendererConfig()))
}

func TestSettingsService_LoadsSaved(t *testing.T) {
	repo := newMockSettingsRepository()
	repo.variant = domain.VariantExponential
	repo.unitCount = 8
	repo.centerline = false

	s, _ := newTestSettingsService(repo)
	cfg := s.Apply(DefaultRendererConfig())

	assert.Equal(t, domain.VariantExponential, cfg.Wave.Variant)
	assert.Equal(t, 8, cfg.Wave.Count)
	assert.False(t, cfg.ShowCenterline)
	assert.Equal(t, DefaultRendererConfig().TimeStep, cfg.TimeStep)
}

func TestSettingsService_LoadErrorsKeepDefaults(t *testing.T) {
	repo := newMockSettingsRepository()
	repo.variant = domain.VariantExponential
	repo.loadErr = errors.New("disk on fire")

	s, _ := newTestSettingsService(repo)

	assert.Equal(t, domain.VariantPeaked, s.Variant())
	assert.True(t, s.ShowCenterline())
}

func TestSettingsService_SetVariant(t *testing.T) {
	repo := newMockSettingsRepository()
	s, changes := newTestSettingsService(repo)

	require.NoError(t, s.SetVariant(domain.VariantExponential))
	require.NoError(t, s.SetVariant(domain.VariantExponential))

	assert.Equal(t, domain.VariantExponential, s.Variant())
	assert.Equal(t, domain.VariantExponential, repo.variant)
	require.Len(t, *changes, 1, "unchanged value publishes nothing")
	assert.Equal(t, SettingVariant, (*changes)[0].Key)
	assert.Equal(t, domain.VariantExponential, (*changes)[0].Value)

	assert.ErrorIs(t, s.SetVariant("triangle"), domain.ErrInvalidVariant)
	assert.Equal(t, domain.VariantExponential, s.Variant())
}

func TestSettingsService_SetUnitCount(t *testing.T) {
	repo := newMockSettingsRepository()
	s, changes := newTestSettingsService(repo)

	require.NoError(t, s.SetUnitCount(12))
	assert.Equal(t, 12, s.UnitCount())
	assert.Equal(t, 12, repo.unitCount)
	assert.Len(t, *changes, 1)

	var vErr *domain.ValidationError
	require.True(t, errors.As(s.SetUnitCount(wave.MaxUnits+1), &vErr))
	assert.Equal(t, "count", vErr.Field)
	require.True(t, errors.As(s.SetUnitCount(-1), &vErr))

	require.NoError(t, s.SetUnitCount(0))
	assert.Equal(t, wave.DefaultUnits, s.Apply(DefaultRendererConfig()).Wave.Count)
}

func TestSettingsService_SetShowCenterline(t *testing.T) {
	repo := newMockSettingsRepository()
	s, changes := newTestSettingsService(repo)

	require.NoError(t, s.SetShowCenterline(false))

	assert.False(t, s.ShowCenterline())
	assert.False(t, repo.centerline)
	require.Len(t, *changes, 1)
	assert.Equal(t, false, (*changes)[0].Value)
}

func TestSettingsService_SaveError(t *testing.T) {
	repo := newMockSettingsRepository()
	repo.saveErr = errors.New("read-only")
	s, changes := newTestSettingsService(repo)

	err := s.SetVariant(domain.VariantExponential)

	var svcErr *domain.ServiceError
	require.True(t, errors.As(err, &svcErr))
	assert.Equal(t, "SetVariant", svcErr.Op)
	assert.Equal(t, domain.VariantPeaked, s.Variant(), "cache unchanged on failure")
	assert.Empty(t, *changes)
}

func TestSettingsService_Reset(t *testing.T) {
	repo := newMockSettingsRepository()
	s, changes := newTestSettingsService(repo)
	require.NoError(t, s.SetVariant(domain.VariantExponential))
	require.NoError(t, s.SetUnitCount(4))

	require.NoError(t, s.Reset())

	assert.Equal(t, domain.VariantPeaked, s.Variant())
	assert.Zero(t, s.UnitCount())
	assert.Equal(t, domain.VariantPeaked, repo.variant)
	assert.Len(t, *changes, 3)
}
