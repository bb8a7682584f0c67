package engine

import (
	"testing"

	"github.com/harbdog/raycaster-go/geom"
)

func mustWorld(t *testing.T, def WorldDef) *World {
	t.Helper()
	w, err := NewWorld(def)
	if err != nil {
		t.Fatalf("NewWorld: %v", err)
	}
	return w
}

func roomRows() []string {
	return []string{
		"11111111",
		"10000001",
		"10000001",
		"10000001",
		"10000001",
		"10000001",
		"10000001",
		"11111111",
	}
}

func roomWorld(t *testing.T, enemies ...EnemyDef) *World {
	t.Helper()
	return mustWorld(t, WorldDef{
		Rows:    roomRows(),
		Spawn:   SpawnPose{X: 1.5, Y: 1.5},
		Enemies: enemies,
	})
}

func TestNewWorldValid(t *testing.T) {
	w := roomWorld(t)
	if w.Width() != 8 || w.Height() != 8 {
		t.Fatalf("got %dx%d, want 8x8", w.Width(), w.Height())
	}
	if !w.IsWall(0, 0) {
		t.Fatal("border cell should be a wall")
	}
	if w.IsWall(3, 3) {
		t.Fatal("interior cell should be open")
	}
}

func TestNewWorldRejectsMalformed(t *testing.T) {
	cases := []struct {
		name string
		def  WorldDef
	}{
		{"too few rows", WorldDef{
			Rows:  []string{"111", "111"},
			Spawn: SpawnPose{X: 1.5, Y: 1.5},
		}},
		{"ragged row", WorldDef{
			Rows:  []string{"1111", "101", "1111"},
			Spawn: SpawnPose{X: 1.5, Y: 1.5},
		}},
		{"non-digit cell", WorldDef{
			Rows:  []string{"1111", "1x01", "1111"},
			Spawn: SpawnPose{X: 2.5, Y: 1.5},
		}},
		{"open border", WorldDef{
			Rows:  []string{"1111", "0001", "1111"},
			Spawn: SpawnPose{X: 1.5, Y: 1.5},
		}},
		{"spawn in wall", WorldDef{
			Rows:  []string{"1111", "1001", "1111"},
			Spawn: SpawnPose{X: 0.5, Y: 0.5},
		}},
		{"enemy base in wall", WorldDef{
			Rows:  []string{"1111", "1001", "1111"},
			Spawn: SpawnPose{X: 1.5, Y: 1.5},
			Enemies: []EnemyDef{
				{Base: geom.Vector2{X: 0.5, Y: 0.5}},
			},
		}},
		{"patrol endpoint out of bounds", WorldDef{
			Rows:  []string{"1111", "1001", "1111"},
			Spawn: SpawnPose{X: 1.5, Y: 1.5},
			Enemies: []EnemyDef{
				{Base: geom.Vector2{X: 1.5, Y: 1.5}, Patrol: geom.Vector2{X: 50, Y: 0}},
			},
		}},
	}

	for _, tc := range cases {
		if _, err := NewWorld(tc.def); err == nil {
			t.Fatalf("%s: expected error, got nil", tc.name)
		}
	}
}

func TestCellAtOutOfBounds(t *testing.T) {
	w := roomWorld(t)
	for _, pt := range [][2]int{{-1, 3}, {3, -1}, {8, 3}, {3, 8}, {-5, -5}} {
		if !w.IsWall(pt[0], pt[1]) {
			t.Fatalf("out-of-bounds cell (%d, %d) should read as wall", pt[0], pt[1])
		}
	}
}
