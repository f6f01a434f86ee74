// Package service provides the renderer and settings logic of the wave field.
package service

import (
	"image/color"
	"log/slog"
	"math"
	"reflect"
	"sync"

	"github.com/tejashwikalptaru/wavefield/internal/domain"
	"github.com/tejashwikalptaru/wavefield/internal/ports"
	"github.com/tejashwikalptaru/wavefield/internal/wave"
)

// Particle drawing geometry in pixels.
const (
	glowRadius      = 12.0
	coreRadius      = 3.5
	highlightRadius = 1.2
	highlightOffset = -1.2
	trailRadius     = 2.5
)

var (
	centerlineColor = color.NRGBA{R: 0x00, G: 0x4e, B: 0x7a, A: 25}
	highlightColor  = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 204}
)

// RendererConfig holds the tunables of a renderer.
type RendererConfig struct {
	Wave           wave.Config
	TimeStep       float64 // clock increment per rendered frame
	SampleStep     float64 // horizontal curve sampling step in pixels
	ShowCenterline bool
	TrailOpacity   float64 // opacity of the newest trail entry
}

// DefaultRendererConfig returns the configuration of the landing page hero.
func DefaultRendererConfig() RendererConfig {
	return RendererConfig{
		Wave:           wave.DefaultConfig(),
		TimeStep:       0.016,
		SampleStep:     2,
		ShowCenterline: true,
		TrailOpacity:   0.5,
	}
}

// Validate checks the configuration.
func (c RendererConfig) Validate() error {
	if err := c.Wave.Validate(); err != nil {
		return err
	}
	if !(c.TimeStep > 0 && c.TimeStep <= 1) {
		return domain.NewValidationError("time_step", c.TimeStep, "must be in (0, 1]")
	}
	if c.SampleStep != 1 && c.SampleStep != 2 {
		return domain.NewValidationError("sample_step", c.SampleStep, "must be 1 or 2")
	}
	if !(c.TrailOpacity >= 0 && c.TrailOpacity <= 1) {
		return domain.NewValidationError("trail_opacity", c.TrailOpacity, "must be in [0, 1]")
	}
	return nil
}

// RendererService animates a field of wave units on a surface.
//
// Lifecycle: Uninitialized -> Running (Activate) -> Stopped (Stop).
// A stopped renderer may be activated again and starts from a fresh clock.
//
// Thread-safety: ticks, resizes and Stop serialize on mu, so at most one
// frame is in flight and no frame starts after Stop returns. Events are
// published after mu is released so handlers may call back into the service.
type RendererService struct {
	logger    *slog.Logger
	scheduler ports.FrameScheduler
	bus       ports.EventBus

	mu        sync.Mutex
	cfg       RendererConfig
	state     domain.RendererState
	surface   ports.Surface
	dims      domain.Dimensions
	clock     float64
	units     []*wave.Unit
	frames    uint64
	skipped   uint64
	tickSub   ports.Subscription
	resizeSub domain.SubscriptionID
}

// NewRendererService creates a renderer. The bus may be nil, in which case
// no events are published and resizes must be reported through OnResize.
func NewRendererService(
	logger *slog.Logger,
	cfg RendererConfig,
	scheduler ports.FrameScheduler,
	bus ports.EventBus,
) (*RendererService, error) {
	if scheduler == nil {
		return nil, domain.NewServiceError("RendererService", "new", "frame scheduler is required", nil)
	}
	if err := cfg.Validate(); err != nil {
		return nil, domain.NewServiceError("RendererService", "new", "invalid configuration", err)
	}

	s := &RendererService{
		logger:    logger.With(slog.String("service", "renderer")),
		scheduler: scheduler,
		bus:       bus,
		cfg:       cfg,
	}

	s.logger.Debug("renderer service initialized",
		slog.String("variant", string(cfg.Wave.Variant)),
		slog.Int("units", cfg.Wave.Count))

	return s, nil
}

// Activate measures the surface, builds the units and starts drawing on
// every scheduler tick. Activation before the surface has been laid out is
// allowed; frames are skipped until it reports a valid size.
func (s *RendererService) Activate(surface ports.Surface) error {
	if missingSurface(surface) {
		s.logger.Debug("activation without surface")
		return domain.ErrMissingSurface
	}

	s.mu.Lock()
	if s.state == domain.StateRunning {
		s.mu.Unlock()
		return domain.ErrAlreadyActive
	}

	units, err := wave.NewUnits(s.cfg.Wave)
	if err != nil {
		s.mu.Unlock()
		return domain.NewServiceError("RendererService", "activate", "failed to build wave units", err)
	}

	s.surface = surface
	s.dims = measure(surface)
	s.units = units
	s.clock = 0
	s.frames = 0
	s.skipped = 0
	s.state = domain.StateRunning
	s.tickSub = s.scheduler.Subscribe(s.tick)
	if s.bus != nil {
		s.resizeSub = s.bus.Subscribe(domain.EventSurfaceResized, s.handleSurfaceResized)
	}

	variant, count, dims := s.cfg.Wave.Variant, len(units), s.dims
	s.mu.Unlock()

	s.logger.Info("renderer activated",
		slog.String("variant", string(variant)),
		slog.Int("units", count),
		slog.String("dimensions", dims.String()))

	s.publish(domain.NewRendererActivatedEvent(variant, count, dims))
	return nil
}

// OnResize re-measures the surface. Units and the clock are untouched.
func (s *RendererService) OnResize() error {
	s.mu.Lock()
	if s.state != domain.StateRunning {
		s.mu.Unlock()
		return domain.ErrNotRunning
	}

	prev := s.dims
	s.dims = measure(s.surface)
	cur := s.dims
	s.mu.Unlock()

	if prev == cur {
		return nil
	}

	s.logger.Debug("surface resized",
		slog.String("from", prev.String()),
		slog.String("to", cur.String()))

	s.publish(domain.NewRendererResizedEvent(prev, cur))
	return nil
}

func (s *RendererService) handleSurfaceResized(domain.Event) {
	if err := s.OnResize(); err != nil {
		s.logger.Debug("resize ignored", slog.Any("error", err))
	}
}

// Stop cancels the tick and resize subscriptions. Calling Stop on a renderer
// that is not running does nothing.
func (s *RendererService) Stop() {
	s.mu.Lock()
	if s.state != domain.StateRunning {
		s.mu.Unlock()
		return
	}

	s.state = domain.StateStopped
	tickSub, resizeSub := s.tickSub, s.resizeSub
	s.tickSub, s.resizeSub = nil, ""
	frames := s.frames
	s.mu.Unlock()

	if tickSub != nil {
		tickSub.Cancel()
	}
	if s.bus != nil && resizeSub != "" {
		s.bus.Unsubscribe(resizeSub)
	}

	s.logger.Info("renderer stopped", slog.Uint64("frames", frames))
	s.publish(domain.NewRendererStoppedEvent(frames))
}

// Reconfigure replaces the configuration. Only allowed while not running;
// the new configuration takes effect on the next Activate.
func (s *RendererService) Reconfigure(cfg RendererConfig) error {
	if err := cfg.Validate(); err != nil {
		return domain.NewServiceError("RendererService", "reconfigure", "invalid configuration", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == domain.StateRunning {
		return domain.NewServiceError("RendererService", "reconfigure", "renderer is running", domain.ErrAlreadyActive)
	}
	s.cfg = cfg
	return nil
}

// tick is the scheduler callback: advance the clock and draw one frame.
func (s *RendererService) tick() {
	s.mu.Lock()
	if s.state != domain.StateRunning {
		s.mu.Unlock()
		return
	}

	// Hosts may activate before layout; retry the measurement every tick.
	if !s.dims.Valid() {
		s.dims = measure(s.surface)
		if !s.dims.Valid() {
			s.skipped++
			skipped, dims := s.skipped, s.dims
			s.mu.Unlock()

			if skipped == 1 || skipped%300 == 0 {
				s.logger.Debug("frame skipped",
					slog.Any("error", domain.ErrInvalidDimensions),
					slog.String("dimensions", dims.String()),
					slog.Uint64("skipped", skipped))
			}
			return
		}
	}

	s.clock += s.cfg.TimeStep
	s.renderFrameLocked(s.clock)
	frame, t := s.frames, s.clock
	s.mu.Unlock()

	if s.bus != nil {
		s.bus.Publish(domain.NewFrameRenderedEvent(frame, t))
	}
}

// RenderFrame draws one frame at time t without advancing the clock.
// Particles still advance. Reports whether anything was drawn.
func (s *RendererService) RenderFrame(t float64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != domain.StateRunning || !s.dims.Valid() {
		return false
	}
	s.renderFrameLocked(t)
	return true
}

// renderFrameLocked draws the background, then every unit in index order.
// Must be called with s.mu locked.
func (s *RendererService) renderFrameLocked(t float64) {
	surf, dims := s.surface, s.dims

	surf.SetGlobalAlpha(1)
	surf.ClearRect(0, 0, dims.Width, dims.Height)

	if s.cfg.ShowCenterline {
		cy := dims.CenterY()
		surf.SetStrokeColor(centerlineColor)
		surf.SetLineWidth(1)
		surf.BeginPath()
		surf.MoveTo(0, cy)
		surf.LineTo(dims.Width, cy)
		surf.Stroke()
	}

	for _, u := range s.units {
		s.drawUnit(u, t)
	}
	s.frames++
}

// drawUnit strokes the curve, advances the particle and draws its trail and glow.
// Must be called with s.mu locked.
func (s *RendererService) drawUnit(u *wave.Unit, t float64) {
	surf, dims := s.surface, s.dims
	cy := dims.CenterY()
	colors := u.Colors()

	surf.SetStrokeColor(colors.Main)
	surf.SetLineWidth(lineWidth(u.Params().Index))
	surf.BeginPath()
	first := true
	u.Sample(t, dims.Width, s.cfg.SampleStep, func(x, y float64) {
		if first {
			surf.MoveTo(x, y+cy)
			first = false
			return
		}
		surf.LineTo(x, y+cy)
	})
	surf.Stroke()

	u.Advance(t, dims)

	if trail := u.Trail(); trail != nil && trail.Len() > 0 {
		n := trail.Len()
		surf.SetFillColor(colors.Particle)
		trail.Each(func(i int, p domain.Point) {
			surf.SetGlobalAlpha(wave.Opacity(i, n, s.cfg.TrailOpacity))
			surf.FillCircle(p.X, p.Y, trailRadius*float64(i+1)/float64(n))
		})
		surf.SetGlobalAlpha(1)
	}

	p, visible := u.Particle()
	if !visible {
		return
	}

	glow := ports.NewRadialGradient(p.X, p.Y, 0, glowRadius).
		AddColorStop(0, colors.Particle).
		AddColorStop(0.4, colors.Glow).
		AddColorStop(1, wave.Transparent(colors.Glow))
	surf.SetFillGradient(glow)
	surf.FillCircle(p.X, p.Y, glowRadius)

	surf.SetFillColor(colors.Particle)
	surf.FillCircle(p.X, p.Y, coreRadius)

	surf.SetFillColor(highlightColor)
	surf.FillCircle(p.X+highlightOffset, p.Y+highlightOffset, highlightRadius)
}

// lineWidth thins the strokes of higher harmonics.
func lineWidth(index int) float64 {
	return math.Max(1, 2.5-0.3*float64(index))
}

// missingSurface reports a nil surface, including a typed nil pointer
// wrapped in the interface.
func missingSurface(surface ports.Surface) bool {
	if surface == nil {
		return true
	}
	v := reflect.ValueOf(surface)
	switch v.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.Interface:
		return v.IsNil()
	}
	return false
}

func measure(surface ports.Surface) domain.Dimensions {
	w, h := surface.Size()
	if math.IsNaN(w) || math.IsInf(w, 0) {
		w = 0
	}
	if math.IsNaN(h) || math.IsInf(h, 0) {
		h = 0
	}
	return domain.Dimensions{Width: w, Height: h}
}

func (s *RendererService) publish(event domain.Event) {
	if s.bus != nil {
		s.bus.Publish(event)
	}
}

// State returns the lifecycle state.
func (s *RendererService) State() domain.RendererState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Config returns the current configuration.
func (s *RendererService) Config() RendererConfig {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cfg
}

// Time returns the animation clock.
func (s *RendererService) Time() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.clock
}

// Dimensions returns the last measured surface size.
func (s *RendererService) Dimensions() domain.Dimensions {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dims
}

// FrameCount returns the number of frames drawn since activation.
func (s *RendererService) FrameCount() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.frames
}

// SkippedFrames returns the number of ticks skipped for invalid dimensions.
func (s *RendererService) SkippedFrames() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.skipped
}

// Units returns the shape parameters of every unit in index order.
func (s *RendererService) Units() []wave.Params {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]wave.Params, len(s.units))
	for i, u := range s.units {
		out[i] = u.Params()
	}
	return out
}

// Particle returns the position and visibility of unit i's particle.
func (s *RendererService) Particle(i int) (domain.Point, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if i < 0 || i >= len(s.units) {
		return domain.Point{}, false
	}
	return s.units[i].Particle()
}
