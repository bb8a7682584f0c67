package engine

import (
	"math"

	"github.com/harbdog/raycaster-go/geom"
)

// -- simulation state

const (
	playerMaxHealth    = 100
	playerMoveSpeed    = 3.0 // cells per second
	playerStrafeSpeed  = 2.4
	playerRotateSpeed  = 2.6 // radians per second at full input
	playerRadius       = 0.2
	playerRespawnDelay = 3.0

	enemyMaxHealth = 3
	enemyRadius    = 0.3

	maxProjectiles = 16
)

// Player is the camera-carrying entity. Pose per lodev: unit direction
// vector plus a camera plane perpendicular to it, scaled for the FOV.
type Player struct {
	Pos   geom.Vector2
	Dir   geom.Vector2
	Plane geom.Vector2

	Health     int
	DeadUntil  float64 // 0 = alive
	LastDamage float64
	LastFired  float64

	Radius float64
}

func (p *Player) Alive() bool { return p.DeadUntil == 0 }

// SetFacing points the direction vector at angle and re-derives the
// camera plane from the field of view.
func (p *Player) SetFacing(angle, fovDeg float64) {
	p.Dir = geom.Vector2{X: math.Cos(angle), Y: math.Sin(angle)}
	planeLen := math.Tan(geom.Radians(fovDeg) / 2)
	p.Plane = geom.Vector2{X: -p.Dir.Y * planeLen, Y: p.Dir.X * planeLen}
}

// Rotate turns direction and plane together by the given angle.
func (p *Player) Rotate(angle float64) {
	sin, cos := math.Sin(angle), math.Cos(angle)
	oldDirX := p.Dir.X
	p.Dir.X = p.Dir.X*cos - p.Dir.Y*sin
	p.Dir.Y = oldDirX*sin + p.Dir.Y*cos
	oldPlaneX := p.Plane.X
	p.Plane.X = p.Plane.X*cos - p.Plane.Y*sin
	p.Plane.Y = oldPlaneX*sin + p.Plane.Y*cos
}

// EnemyState is the AI state derived from the enemy's timers.
type EnemyState int

const (
	EnemyPatrol EnemyState = iota
	EnemyChase
	EnemyStunned
	EnemyDead
)

// Enemy cycles alive -> dead -> respawned in place, never destroyed.
type Enemy struct {
	Index int
	Def   EnemyDef

	Pos geom.Vector2

	// patrol parameter along Base..Base+Patrol, ping-ponging
	T    float64
	TDir float64

	ChaseUntil  float64 // 0 = not chasing
	StunUntil   float64
	DeadUntil   float64 // 0 = alive
	LastDamage  float64 // last time this enemy took a hit
	LastContact float64 // last time this enemy dealt contact damage

	Health    int
	AnimClock float64
	Radius    float64
}

func (e *Enemy) Alive() bool { return e.DeadUntil == 0 }

func (e *Enemy) State(now float64) EnemyState {
	switch {
	case e.DeadUntil != 0:
		return EnemyDead
	case now < e.StunUntil:
		return EnemyStunned
	case e.ChaseUntil != 0 && now < e.ChaseUntil:
		return EnemyChase
	default:
		return EnemyPatrol
	}
}

// Projectile is a hitscan shot with delayed visual travel. Impact logic
// runs exactly once when ImpactTime is reached.
type Projectile struct {
	Start, End geom.Vector2

	StartTime  float64
	Duration   float64
	ImpactTime float64

	// tuning inherited from the weapon's template on spawn
	Speed     float64 // visual travel, cells per second
	FlashDur  float64
	Knockback float64

	EnemyIndex int // -1 when resolved against a wall
	Resolved   bool
	FlashUntil float64
}

// SimulationState owns all mutable per-frame entity state. It is passed
// explicitly to each subsystem; nothing in the engine is global.
type SimulationState struct {
	World   *World
	Player  Player
	Enemies []Enemy

	// fixed-capacity ring of live projectiles, oldest dropped first
	Projectiles []Projectile

	// simulation clock in seconds, advanced by clamped frame deltas
	Now float64

	FovDeg float64
}

// NewSimulationState seeds player and enemies from the world definition.
func NewSimulationState(w *World, fovDeg float64) *SimulationState {
	s := &SimulationState{
		World:       w,
		Projectiles: make([]Projectile, 0, maxProjectiles),
		FovDeg:      fovDeg,
	}

	spawn := w.Spawn()
	s.Player = Player{
		Pos:    geom.Vector2{X: spawn.X, Y: spawn.Y},
		Health: playerMaxHealth,
		Radius: playerRadius,
	}
	s.Player.SetFacing(spawn.Angle, fovDeg)

	defs := w.EnemyDefs()
	s.Enemies = make([]Enemy, len(defs))
	for i, def := range defs {
		s.Enemies[i] = newEnemy(i, def)
	}

	return s
}

func newEnemy(index int, def EnemyDef) Enemy {
	e := Enemy{
		Index:  index,
		Def:    def,
		Health: enemyMaxHealth,
		Radius: enemyRadius,
		TDir:   1,
	}
	e.resetToSpawn()
	return e
}

// resetToBase parks the enemy on its spawn base with the patrol restarted
// from the beginning. Used on death; a corpse always sits on its base.
func (e *Enemy) resetToBase() {
	e.T = 0
	e.TDir = 1
	e.Pos = e.Def.Base
}

// resetToSpawn puts the enemy back on its patrol segment, phase-shifted so
// enemies sharing a segment shape do not move in lockstep.
func (e *Enemy) resetToSpawn() {
	t := math.Mod(e.Def.Phase, 2)
	dir := 1.0
	if t > 1 {
		t = 2 - t
		dir = -1
	}
	e.T = t
	e.TDir = dir
	e.Pos = geom.Vector2{
		X: e.Def.Base.X + e.Def.Patrol.X*t,
		Y: e.Def.Base.Y + e.Def.Patrol.Y*t,
	}
}
