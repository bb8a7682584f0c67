package engine

import (
	"github.com/harbdog/raycaster-go/geom"
	"github.com/jinzhu/copier"
)

// -- hitscan & projectiles

const (
	// aim cone: perpendicular offset from the facing line an enemy may
	// have and still qualify, with a small angular slack on top
	aimPerpLimit    = 0.35
	aimAngularSlack = 0.08

	projectileSpeed  = 20.0 // visual travel, cells per second
	projectileFlash  = 0.25 // impact ring duration
	projectileGrace  = 0.1  // kept past the flash before removal
	enemyKnockback   = 0.35
	weaponRateOfFire = 3.0 // shots per second
	muzzleFlashTime  = 0.08
)

// HitResult is what a shot resolved against. Exactly one of the three
// concrete types is returned; callers switch over all of them.
type HitResult interface {
	isHitResult()
}

// WallHit is a shot that ends on a wall face.
type WallHit struct {
	Point geom.Vector2
	Dist  float64
}

// EnemyHit is a shot that ends on a live enemy.
type EnemyHit struct {
	Index int
	Point geom.Vector2
	Dist  float64
}

// NoHit only occurs for degenerate casts (e.g. shooter inside a wall).
type NoHit struct{}

func (WallHit) isHitResult()  {}
func (EnemyHit) isHitResult() {}
func (NoHit) isHitResult()    {}

// Weapon is the player's single hitscan weapon: a cooldown and the
// projectile template cloned on every shot.
type Weapon struct {
	cooldownUntil float64
	template      Projectile
}

func NewWeapon() *Weapon {
	return &Weapon{
		template: Projectile{
			EnemyIndex: -1,
			Speed:      projectileSpeed,
			FlashDur:   projectileFlash,
			Knockback:  enemyKnockback,
		},
	}
}

func (w *Weapon) OnCooldown(now float64) bool { return now < w.cooldownUntil }

// ResolveShot casts the player's facing ray against walls and live
// enemies and returns the nearest qualifying hit.
func (s *SimulationState) ResolveShot() HitResult {
	origin := s.Player.Pos
	dir := s.Player.Dir

	wall := s.World.CastToWall(origin, dir)
	wallDist := wall.Dist(origin)

	bestIndex := -1
	bestDist := wallDist
	for i := range s.Enemies {
		e := &s.Enemies[i]
		if !e.Alive() {
			continue
		}

		dx := e.Pos.X - origin.X
		dy := e.Pos.Y - origin.Y

		// forward projection onto the unit facing vector, and the
		// perpendicular offset from the facing line
		forward := dx*dir.X + dy*dir.Y
		if forward <= 0 {
			continue
		}
		perp := dx*dir.Y - dy*dir.X
		if perp < 0 {
			perp = -perp
		}
		if perp > aimPerpLimit+forward*aimAngularSlack {
			continue
		}
		if s.World.IsOccluded(origin, e.Pos) {
			continue
		}
		if forward < bestDist {
			bestDist = forward
			bestIndex = i
		}
	}

	if bestIndex >= 0 {
		e := &s.Enemies[bestIndex]
		return EnemyHit{Index: bestIndex, Point: e.Pos, Dist: bestDist}
	}
	if wall.Variant == 0 {
		return NoHit{}
	}
	return WallHit{Point: geom.Vector2{X: wall.HitX, Y: wall.HitY}, Dist: wallDist}
}

// Fire resolves a shot immediately but schedules its effect: the
// projectile record travels visually and the damage lands at ImpactTime.
func (s *SimulationState) Fire(w *Weapon) bool {
	if !s.Player.Alive() || w.OnCooldown(s.Now) {
		return false
	}
	w.cooldownUntil = s.Now + 1/weaponRateOfFire
	s.Player.LastFired = s.Now

	var end geom.Vector2
	enemyIndex := -1
	switch hit := s.ResolveShot().(type) {
	case EnemyHit:
		end = hit.Point
		enemyIndex = hit.Index
	case WallHit:
		end = hit.Point
	case NoHit:
		return false
	}

	// the clone carries the weapon's tuning (speed, flash, knockback)
	// into the spawned record
	p := Projectile{}
	if err := copier.Copy(&p, &w.template); err != nil {
		// template is a plain struct; a copy failure would be a
		// programming error, not a runtime condition
		p = w.template
	}
	if p.Speed <= 0 {
		p.Speed = projectileSpeed
	}

	dist := geom.Distance(s.Player.Pos.X, s.Player.Pos.Y, end.X, end.Y)
	p.Start = s.Player.Pos
	p.End = end
	p.StartTime = s.Now
	p.Duration = dist / p.Speed
	p.ImpactTime = s.Now + p.Duration
	p.EnemyIndex = enemyIndex
	p.FlashUntil = p.ImpactTime + p.FlashDur

	s.addProjectile(p)
	return true
}

// addProjectile appends to the fixed-capacity ring, dropping the oldest
// record when full.
func (s *SimulationState) addProjectile(p Projectile) {
	if len(s.Projectiles) >= maxProjectiles {
		copy(s.Projectiles, s.Projectiles[1:])
		s.Projectiles = s.Projectiles[:len(s.Projectiles)-1]
	}
	s.Projectiles = append(s.Projectiles, p)
}

// updateProjectiles applies scheduled impacts exactly once and retires
// records whose visual lifetime has fully elapsed.
func (s *SimulationState) updateProjectiles() {
	now := s.Now
	live := s.Projectiles[:0]

	for i := range s.Projectiles {
		p := s.Projectiles[i]

		if !p.Resolved && now >= p.ImpactTime {
			p.Resolved = true
			if p.EnemyIndex >= 0 && p.EnemyIndex < len(s.Enemies) {
				hitDir := geom.Vector2{X: p.End.X - p.Start.X, Y: p.End.Y - p.Start.Y}
				s.hurtEnemy(&s.Enemies[p.EnemyIndex], hitDir, p.Knockback)
			}
		}

		if now < p.FlashUntil+projectileGrace {
			live = append(live, p)
		}
	}

	s.Projectiles = live
}
