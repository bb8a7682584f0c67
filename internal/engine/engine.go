// Package engine is a self-contained first-person raycasting renderer
// and real-time simulation: grid world, DDA ray caster, textured
// software renderer with a per-column depth buffer, enemy AI, hitscan
// projectiles and player movement. It draws into a plain RGBA
// framebuffer and is driven by a host-provided per-frame tick; it has no
// dependency on any windowing or scheduling API.
package engine

import (
	"fmt"
	"image"

	"go.uber.org/zap"
)

// -- game loop driver

const (
	defaultFovDegrees  = 66.0
	defaultTextureSize = 64
	defaultMaxDelta    = 0.1 // clamp large deltas after a host stall
)

type Config struct {
	Width, Height int
	TextureSize   int
	FovDegrees    float64

	// MaxFrameDelta caps the per-frame step in seconds
	MaxFrameDelta float64
}

func (c Config) withDefaults() Config {
	if c.Width <= 0 {
		c.Width = 640
	}
	if c.Height <= 0 {
		c.Height = 400
	}
	if c.TextureSize <= 0 {
		c.TextureSize = defaultTextureSize
	}
	if c.FovDegrees <= 0 {
		c.FovDegrees = defaultFovDegrees
	}
	if c.MaxFrameDelta <= 0 {
		c.MaxFrameDelta = defaultMaxDelta
	}
	return c
}

// Engine owns the simulation state and the renderer and advances both
// once per host tick.
type Engine struct {
	cfg Config

	sim      *SimulationState
	weapon   *Weapon
	renderer *Renderer

	log *zap.SugaredLogger

	lastMs  float64
	started bool
	paused  bool
}

func New(cfg Config, def WorldDef, log *zap.SugaredLogger) (*Engine, error) {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	cfg = cfg.withDefaults()

	world, err := NewWorld(def)
	if err != nil {
		return nil, fmt.Errorf("engine: %w", err)
	}

	tex, err := NewTextureSet(cfg.TextureSize)
	if err != nil {
		return nil, fmt.Errorf("engine: %w", err)
	}

	e := &Engine{
		cfg:      cfg,
		sim:      NewSimulationState(world, cfg.FovDegrees),
		weapon:   NewWeapon(),
		renderer: NewRenderer(cfg.Width, cfg.Height, tex),
		log:      log,
	}

	log.Infow("engine ready",
		"map", fmt.Sprintf("%dx%d", world.Width(), world.Height()),
		"enemies", len(e.sim.Enemies),
		"view", fmt.Sprintf("%dx%d", cfg.Width, cfg.Height),
	)
	return e, nil
}

// Tick advances the simulation by the delta between consecutive host
// timestamps (clamped) and renders the frame. The first tick only
// establishes the time base.
func (e *Engine) Tick(timestampMs float64, in InputFrame) {
	if !e.started {
		e.started = true
		e.lastMs = timestampMs
		e.renderer.Render(e.sim)
		return
	}

	dt := (timestampMs - e.lastMs) / 1000
	e.lastMs = timestampMs
	if dt < 0 {
		dt = 0
	}
	if dt > e.cfg.MaxFrameDelta {
		dt = e.cfg.MaxFrameDelta
	}

	if !e.paused {
		e.Step(dt, in)
	}
	e.renderer.Render(e.sim)
}

// Step runs one fixed update: input, then AI, then projectiles. Exposed
// so the simulation can be driven without a renderer-backed tick.
func (e *Engine) Step(dt float64, in InputFrame) {
	s := e.sim
	s.Now += dt

	s.updatePlayer(in, dt)
	if in.Fire {
		s.Fire(e.weapon)
	}
	s.updateEnemies(dt)
	s.updateProjectiles()
}

func (e *Engine) Frame() *image.RGBA { return e.renderer.Frame() }

// Resize adjusts the internal render resolution.
func (e *Engine) Resize(width, height int) {
	e.renderer.Resize(width, height)
}

// Sim exposes read-only simulation state for HUD and minimap overlays.
func (e *Engine) Sim() *SimulationState { return e.sim }

func (e *Engine) Paused() bool { return e.paused }

func (e *Engine) SetPaused(paused bool) {
	if e.paused == paused {
		return
	}
	e.paused = paused
	// drop the time base so unpausing does not replay the gap
	e.started = false
	e.log.Infow("pause toggled", "paused", paused)
}

// Stop releases nothing but logs shutdown; the host owns every external
// resource (window, listeners, scheduler).
func (e *Engine) Stop() {
	e.log.Infow("engine stopped", "simTime", e.sim.Now)
}
