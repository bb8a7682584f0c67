package engine

import (
	"math"
	"testing"

	"github.com/harbdog/raycaster-go/geom"
)

func TestCastToWallAllDirections(t *testing.T) {
	w := roomWorld(t)
	origin := geom.Vector2{X: 4.2, Y: 3.7}

	for i := 0; i < 64; i++ {
		angle := 2 * math.Pi * float64(i) / 64
		dir := geom.Vector2{X: math.Cos(angle), Y: math.Sin(angle)}

		hit := w.CastToWall(origin, dir)
		if hit.PerpDist <= 0 || math.IsInf(hit.PerpDist, 0) || math.IsNaN(hit.PerpDist) {
			t.Fatalf("angle %d: bad PerpDist %v", i, hit.PerpDist)
		}
		if !w.IsWall(hit.MapX, hit.MapY) {
			t.Fatalf("angle %d: hit cell (%d, %d) is not a wall", i, hit.MapX, hit.MapY)
		}
		if hit.Variant == 0 {
			t.Fatalf("angle %d: wall hit with empty variant", i)
		}
		if hit.Side != 0 && hit.Side != 1 {
			t.Fatalf("angle %d: side %d", i, hit.Side)
		}

		// the perpendicular distance never exceeds the euclidean one
		if euclid := hit.Dist(origin); hit.PerpDist > euclid+1e-9 {
			t.Fatalf("angle %d: PerpDist %v > euclidean %v", i, hit.PerpDist, euclid)
		}
	}
}

func TestCastToWallDegenerateDirection(t *testing.T) {
	w := roomWorld(t)
	hit := w.CastToWall(geom.Vector2{X: 4.5, Y: 4.5}, geom.Vector2{X: 0, Y: 0})
	if hit.PerpDist <= 0 || math.IsNaN(hit.PerpDist) || math.IsInf(hit.PerpDist, 0) {
		t.Fatalf("degenerate ray produced PerpDist %v", hit.PerpDist)
	}
}

func TestCastToWallAxisAligned(t *testing.T) {
	w := roomWorld(t)
	origin := geom.Vector2{X: 4.5, Y: 4.5}

	hit := w.CastToWall(origin, geom.Vector2{X: 1, Y: 0})
	if hit.MapX != 7 || hit.MapY != 4 {
		t.Fatalf("east ray hit (%d, %d), want (7, 4)", hit.MapX, hit.MapY)
	}
	if hit.Side != 0 {
		t.Fatalf("east ray side %d, want 0", hit.Side)
	}
	if math.Abs(hit.PerpDist-2.5) > 1e-9 {
		t.Fatalf("east ray dist %v, want 2.5", hit.PerpDist)
	}

	hit = w.CastToWall(origin, geom.Vector2{X: 0, Y: -1})
	if hit.MapX != 4 || hit.MapY != 0 {
		t.Fatalf("north ray hit (%d, %d), want (4, 0)", hit.MapX, hit.MapY)
	}
	if hit.Side != 1 {
		t.Fatalf("north ray side %d, want 1", hit.Side)
	}
}

func TestIsOccluded(t *testing.T) {
	w := mustWorld(t, WorldDef{
		Rows: []string{
			"11111",
			"10101",
			"10101",
			"10101",
			"11111",
		},
		Spawn: SpawnPose{X: 1.5, Y: 2.5},
	})

	left := geom.Vector2{X: 1.5, Y: 2.5}
	right := geom.Vector2{X: 3.5, Y: 2.5}
	if !w.IsOccluded(left, right) {
		t.Fatal("divider wall should occlude left -> right")
	}
	if !w.IsOccluded(right, left) {
		t.Fatal("divider wall should occlude right -> left")
	}

	top := geom.Vector2{X: 1.5, Y: 1.5}
	bottom := geom.Vector2{X: 1.5, Y: 3.5}
	if w.IsOccluded(top, bottom) {
		t.Fatal("open column should not occlude top -> bottom")
	}
	if w.IsOccluded(bottom, top) {
		t.Fatal("open column should not occlude bottom -> top")
	}
}
