package engine

import (
	"github.com/harbdog/raycaster-go/geom"
)

// -- enemy AI

const (
	enemyDetectRange   = 6.0
	enemyForgetWindow  = 3.0 // seconds of chase after last confirmed sight
	enemyChaseSpeed    = 1.6 // cells per second
	enemyStunDuration  = 0.4
	enemyRespawnDelay  = 5.0
	enemyContactRange  = 0.8
	enemyContactDamage = 10
	enemyDamageCooldown = 1.0
)

// updateEnemies advances every enemy's state machine by dt.
func (s *SimulationState) updateEnemies(dt float64) {
	for i := range s.Enemies {
		s.updateEnemy(&s.Enemies[i], dt)
	}
}

func (s *SimulationState) updateEnemy(e *Enemy, dt float64) {
	now := s.Now

	if !e.Alive() {
		if now >= e.DeadUntil {
			// dead -> patrol; health and pose were already reset on death
			e.DeadUntil = 0
		}
		return
	}

	e.AnimClock += dt

	// movement is suspended while stunned, but sight still re-arms chase
	stunned := now < e.StunUntil

	if s.Player.Alive() && s.canSeePlayer(e) {
		e.ChaseUntil = now + enemyForgetWindow
	}
	if e.ChaseUntil != 0 && now >= e.ChaseUntil {
		// chase -> patrol once the forget window lapses
		e.ChaseUntil = 0
	}

	if !stunned {
		if e.State(now) == EnemyChase {
			s.chaseStep(e, dt)
		} else {
			s.patrolStep(e, dt)
		}
	}

	s.tryContactDamage(e)
}

func (s *SimulationState) canSeePlayer(e *Enemy) bool {
	if geom.Distance2(e.Pos.X, e.Pos.Y, s.Player.Pos.X, s.Player.Pos.Y) > enemyDetectRange*enemyDetectRange {
		return false
	}
	return !s.World.IsOccluded(e.Pos, s.Player.Pos)
}

// patrolStep oscillates the enemy along its fixed patrol segment,
// reversing direction at the endpoints.
func (s *SimulationState) patrolStep(e *Enemy, dt float64) {
	segLen := geom.Distance(0, 0, e.Def.Patrol.X, e.Def.Patrol.Y)
	if segLen < 1e-9 {
		return
	}

	e.T += e.TDir * e.Def.Speed * dt / segLen
	if e.T >= 1 {
		e.T = 1
		e.TDir = -1
	} else if e.T <= 0 {
		e.T = 0
		e.TDir = 1
	}

	target := geom.Vector2{
		X: e.Def.Base.X + e.Def.Patrol.X*e.T,
		Y: e.Def.Base.Y + e.Def.Patrol.Y*e.T,
	}
	e.Pos = slideMove(s.World, e.Pos, target.X-e.Pos.X, target.Y-e.Pos.Y, e.Radius)
}

// chaseStep moves directly toward the player's current position.
func (s *SimulationState) chaseStep(e *Enemy, dt float64) {
	dx := s.Player.Pos.X - e.Pos.X
	dy := s.Player.Pos.Y - e.Pos.Y
	dist := geom.Distance(0, 0, dx, dy)
	if dist < 1e-9 {
		return
	}

	step := enemyChaseSpeed * dt
	if step > dist {
		step = dist
	}
	e.Pos = slideMove(s.World, e.Pos, dx/dist*step, dy/dist*step, e.Radius)
}

func (s *SimulationState) tryContactDamage(e *Enemy) {
	now := s.Now
	if now < e.StunUntil || !s.Player.Alive() {
		return
	}
	if e.LastContact != 0 && now-e.LastContact < enemyDamageCooldown {
		return
	}
	if geom.Distance2(e.Pos.X, e.Pos.Y, s.Player.Pos.X, s.Player.Pos.Y) > enemyContactRange*enemyContactRange {
		return
	}
	if s.World.IsOccluded(e.Pos, s.Player.Pos) {
		return
	}

	s.damagePlayer(enemyContactDamage)
	e.LastContact = now
}

// hurtEnemy applies one hit: stun, knockback away from the shot, chase
// re-arm (being shot always reveals the shooter), and the death
// transition once health reaches zero.
func (s *SimulationState) hurtEnemy(e *Enemy, hitDir geom.Vector2, knockback float64) {
	if !e.Alive() {
		return
	}

	e.Health--
	e.LastDamage = s.Now
	e.StunUntil = s.Now + enemyStunDuration
	e.ChaseUntil = s.Now + enemyForgetWindow

	if e.Health <= 0 {
		// alive -> dead: health, patrol phase and position reset now so
		// the respawn later only has to clear the timer
		e.DeadUntil = s.Now + enemyRespawnDelay
		e.ChaseUntil = 0
		e.StunUntil = 0
		e.Health = enemyMaxHealth
		e.resetToBase()
		return
	}

	e.Pos = tryKnockback(s.World, e.Pos, hitDir, knockback, e.Radius)
}
