package engine

import (
	"math"

	"github.com/harbdog/raycaster-go/geom"
)

// -- collision & movement

// canOccupy reports whether a circle of the given radius fits at (x, y)
// without any corner landing in a wall cell.
func canOccupy(w *World, x, y, radius float64) bool {
	return !w.IsWall(int(x-radius), int(y-radius)) &&
		!w.IsWall(int(x+radius), int(y-radius)) &&
		!w.IsWall(int(x-radius), int(y+radius)) &&
		!w.IsWall(int(x+radius), int(y+radius))
}

// slideMove applies a displacement one axis at a time. Each axis moves
// only if the circle's leading edge stays out of walls, which lets the
// mover slide along a wall instead of stopping dead.
func slideMove(w *World, pos geom.Vector2, dx, dy, radius float64) geom.Vector2 {
	next := pos

	if dx != 0 && canOccupy(w, next.X+dx, next.Y, radius) {
		next.X += dx
	}
	if dy != 0 && canOccupy(w, next.X, next.Y+dy, radius) {
		next.Y += dy
	}

	return next
}

// pushOut separates two overlapping circles by moving pos out along the
// separating normal, each axis constrained by the same wall check so the
// push cannot shove the mover through a wall.
func pushOut(w *World, pos geom.Vector2, radius float64, other geom.Vector2, otherRadius float64) geom.Vector2 {
	dist := geom.Distance(pos.X, pos.Y, other.X, other.Y)
	minDist := radius + otherRadius
	if dist >= minDist {
		return pos
	}

	var nx, ny float64
	if dist < 1e-9 {
		// coincident centers: pick a fixed direction
		nx, ny = 1, 0
	} else {
		nx = (pos.X - other.X) / dist
		ny = (pos.Y - other.Y) / dist
	}

	depth := minDist - dist
	return slideMove(w, pos, nx*depth, ny*depth, radius)
}

// tryKnockback pushes pos along dir, halving the distance until the
// target lands in passable space. Near walls and corners the push
// degrades to nothing rather than clipping through.
func tryKnockback(w *World, pos geom.Vector2, dir geom.Vector2, dist, radius float64) geom.Vector2 {
	length := math.Hypot(dir.X, dir.Y)
	if length < 1e-9 {
		return pos
	}
	nx, ny := dir.X/length, dir.Y/length

	for d := dist; d > dist/8; d /= 2 {
		x, y := pos.X+nx*d, pos.Y+ny*d
		if canOccupy(w, x, y, radius) {
			return geom.Vector2{X: x, Y: y}
		}
	}
	return pos
}
