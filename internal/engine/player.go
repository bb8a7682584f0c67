package engine

// -- player movement & input application

// InputFrame is the per-frame input snapshot collected by the host.
type InputFrame struct {
	Forward, Backward       bool
	StrafeLeft, StrafeRight bool

	// TurnDelta is the pointer's relative horizontal motion this frame,
	// already scaled by the host's sensitivity setting.
	TurnDelta float64

	Fire bool
}

// updatePlayer applies one frame of input to the player: rotation from
// the pointer delta, axis-separated sliding movement against the grid,
// and push-out against live enemies.
func (s *SimulationState) updatePlayer(in InputFrame, dt float64) {
	p := &s.Player

	if !p.Alive() {
		if s.Now >= p.DeadUntil {
			s.respawnPlayer()
		}
		return
	}

	if in.TurnDelta != 0 {
		p.Rotate(in.TurnDelta * playerRotateSpeed)
	}

	var forward, strafe float64
	if in.Forward {
		forward += playerMoveSpeed
	}
	if in.Backward {
		forward -= playerMoveSpeed
	}
	if in.StrafeRight {
		strafe += playerStrafeSpeed
	}
	if in.StrafeLeft {
		strafe -= playerStrafeSpeed
	}

	if forward != 0 || strafe != 0 {
		// strafe axis is the direction rotated a quarter turn
		dx := (p.Dir.X*forward - p.Dir.Y*strafe) * dt
		dy := (p.Dir.Y*forward + p.Dir.X*strafe) * dt
		p.Pos = slideMove(s.World, p.Pos, dx, dy, p.Radius)
	}

	for i := range s.Enemies {
		e := &s.Enemies[i]
		if !e.Alive() {
			continue
		}
		p.Pos = pushOut(s.World, p.Pos, p.Radius, e.Pos, e.Radius)
	}
}

func (s *SimulationState) damagePlayer(amount int) {
	p := &s.Player
	if !p.Alive() {
		return
	}
	p.Health -= amount
	p.LastDamage = s.Now
	if p.Health <= 0 {
		p.Health = 0
		p.DeadUntil = s.Now + playerRespawnDelay
	}
}

// respawnPlayer resets the pose and health; the player entity itself is
// never destroyed.
func (s *SimulationState) respawnPlayer() {
	spawn := s.World.Spawn()
	p := &s.Player
	p.Pos.X, p.Pos.Y = spawn.X, spawn.Y
	p.SetFacing(spawn.Angle, s.FovDeg)
	p.Health = playerMaxHealth
	p.DeadUntil = 0
}
