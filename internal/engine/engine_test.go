package engine

import (
	"math"
	"testing"
)

func testEngine(t *testing.T) *Engine {
	t.Helper()
	e, err := New(Config{Width: 64, Height: 48, TextureSize: 16}, WorldDef{
		Rows:  roomRows(),
		Spawn: SpawnPose{X: 1.5, Y: 1.5},
	}, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return e
}

func TestNewRejectsBadWorld(t *testing.T) {
	_, err := New(Config{}, WorldDef{
		Rows:  []string{"11", "11"},
		Spawn: SpawnPose{X: 0.5, Y: 0.5},
	}, nil)
	if err == nil {
		t.Fatal("expected error for malformed world")
	}
}

func TestTickEstablishesTimeBase(t *testing.T) {
	e := testEngine(t)

	// the first tick must not produce a huge delta
	e.Tick(5000, InputFrame{Forward: true})
	if e.Sim().Now != 0 {
		t.Fatalf("sim time %v after first tick, want 0", e.Sim().Now)
	}

	e.Tick(5100, InputFrame{})
	if math.Abs(e.Sim().Now-0.1) > 1e-9 {
		t.Fatalf("sim time %v, want 0.1", e.Sim().Now)
	}
}

func TestTickClampsStalls(t *testing.T) {
	e := testEngine(t)
	e.Tick(0, InputFrame{})

	// a multi-second host stall advances at most MaxFrameDelta
	e.Tick(8000, InputFrame{})
	if e.Sim().Now > defaultMaxDelta+1e-9 {
		t.Fatalf("sim time %v after stall, want <= %v", e.Sim().Now, defaultMaxDelta)
	}

	// a backwards timestamp advances nothing
	before := e.Sim().Now
	e.Tick(4000, InputFrame{})
	if e.Sim().Now != before {
		t.Fatalf("sim time moved on backwards timestamp: %v -> %v", before, e.Sim().Now)
	}
}

func TestTickMovesPlayer(t *testing.T) {
	e := testEngine(t)
	e.Tick(0, InputFrame{})

	startX := e.Sim().Player.Pos.X
	e.Tick(50, InputFrame{Forward: true})
	if e.Sim().Player.Pos.X <= startX {
		t.Fatalf("player did not move forward: %v -> %v", startX, e.Sim().Player.Pos.X)
	}
}

func TestPauseFreezesSimulation(t *testing.T) {
	e := testEngine(t)
	e.Tick(0, InputFrame{})
	e.Tick(100, InputFrame{})
	frozen := e.Sim().Now

	e.SetPaused(true)
	e.Tick(200, InputFrame{Forward: true})
	e.Tick(300, InputFrame{Forward: true})
	if e.Sim().Now != frozen {
		t.Fatalf("sim advanced while paused: %v -> %v", frozen, e.Sim().Now)
	}

	// unpausing re-bases time instead of replaying the paused gap
	e.SetPaused(false)
	e.Tick(5000, InputFrame{})
	if e.Sim().Now != frozen {
		t.Fatalf("unpause replayed the gap: %v -> %v", frozen, e.Sim().Now)
	}
	e.Tick(5050, InputFrame{})
	if math.Abs(e.Sim().Now-(frozen+0.05)) > 1e-9 {
		t.Fatalf("sim time %v, want %v", e.Sim().Now, frozen+0.05)
	}
}

func TestStepFullLoop(t *testing.T) {
	e, err := New(Config{Width: 64, Height: 48, TextureSize: 16}, WorldDef{
		Rows: []string{
			"11111111",
			"10000001",
			"11111111",
		},
		Spawn:   SpawnPose{X: 1.5, Y: 1.5},
		Enemies: []EnemyDef{stationaryEnemy(5.5, 1.5)},
	}, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	// fire once and run the loop until the shot lands
	e.Step(1.0/60, InputFrame{Fire: true})
	if len(e.Sim().Projectiles) != 1 {
		t.Fatal("shot did not spawn a projectile")
	}
	for i := 0; i < 60; i++ {
		e.Step(1.0/60, InputFrame{})
	}
	if e.Sim().Enemies[0].Health != enemyMaxHealth-1 {
		t.Fatalf("enemy health %d after landed shot, want %d",
			e.Sim().Enemies[0].Health, enemyMaxHealth-1)
	}
}

func TestEngineResize(t *testing.T) {
	e := testEngine(t)
	e.Resize(32, 24)
	if b := e.Frame().Bounds(); b.Dx() != 32 || b.Dy() != 24 {
		t.Fatalf("frame %dx%d after resize, want 32x24", b.Dx(), b.Dy())
	}
	e.Tick(0, InputFrame{})
	e.Tick(16, InputFrame{})
}
