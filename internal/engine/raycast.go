package engine

import (
	"math"

	"github.com/harbdog/raycaster-go/geom"
)

// -- ray caster

const (
	// minimum direction component magnitude before a ray is considered
	// degenerate and nudged, so a single bad frame cannot divide by zero
	minRayComponent = 1e-9

	// tolerance when stopping an occlusion traversal at the target cell
	// boundary, avoiding false positives exactly on the boundary
	occlusionEpsilon = 1e-6
)

// RayHit describes the wall a ray ended on.
type RayHit struct {
	// HitX, HitY is the world-space intersection point on the wall face
	HitX, HitY float64

	// PerpDist is the perpendicular distance from the camera plane to the
	// hit, not the Euclidean distance, so per-column re-projection does
	// not fish-eye
	PerpDist float64

	// Side is 0 when the hit face was crossed stepping in x, 1 in y
	Side int

	Variant    int
	MapX, MapY int
}

// Dist returns the Euclidean distance from origin to the hit point.
func (h RayHit) Dist(origin geom.Vector2) float64 {
	return geom.Distance(origin.X, origin.Y, h.HitX, h.HitY)
}

// CastToWall walks the grid with a DDA from origin along dir until a wall
// cell is found. dir does not need to be normalized; near-zero components
// are nudged rather than rejected.
func (w *World) CastToWall(origin, dir geom.Vector2) RayHit {
	rayDirX, rayDirY := dir.X, dir.Y
	if math.Abs(rayDirX) < minRayComponent {
		rayDirX = math.Copysign(minRayComponent, rayDirX)
	}
	if math.Abs(rayDirY) < minRayComponent {
		rayDirY = math.Copysign(minRayComponent, rayDirY)
	}

	mapX, mapY := int(origin.X), int(origin.Y)

	deltaDistX := math.Abs(1 / rayDirX)
	deltaDistY := math.Abs(1 / rayDirY)

	var sideDistX, sideDistY float64
	var stepX, stepY int

	if rayDirX < 0 {
		stepX = -1
		sideDistX = (origin.X - float64(mapX)) * deltaDistX
	} else {
		stepX = 1
		sideDistX = (float64(mapX) + 1.0 - origin.X) * deltaDistX
	}
	if rayDirY < 0 {
		stepY = -1
		sideDistY = (origin.Y - float64(mapY)) * deltaDistY
	} else {
		stepY = 1
		sideDistY = (float64(mapY) + 1.0 - origin.Y) * deltaDistY
	}

	side := 0
	for {
		if sideDistX < sideDistY {
			sideDistX += deltaDistX
			mapX += stepX
			side = 0
		} else {
			sideDistY += deltaDistY
			mapY += stepY
			side = 1
		}
		if w.IsWall(mapX, mapY) {
			break
		}
	}

	var perpDist float64
	if side == 0 {
		perpDist = (float64(mapX) - origin.X + (1-float64(stepX))/2) / rayDirX
	} else {
		perpDist = (float64(mapY) - origin.Y + (1-float64(stepY))/2) / rayDirY
	}
	if perpDist < minRayComponent {
		perpDist = minRayComponent
	}

	return RayHit{
		HitX:     origin.X + perpDist*rayDirX,
		HitY:     origin.Y + perpDist*rayDirY,
		PerpDist: perpDist,
		Side:     side,
		Variant:  w.CellAt(mapX, mapY),
		MapX:     mapX,
		MapY:     mapY,
	}
}

// IsOccluded reports whether a wall is crossed strictly before reaching
// the target point. Callers must not pass identical points.
func (w *World) IsOccluded(from, to geom.Vector2) bool {
	targetDist := geom.Distance(from.X, from.Y, to.X, to.Y)
	if targetDist < occlusionEpsilon {
		return false
	}

	dir := geom.Vector2{
		X: (to.X - from.X) / targetDist,
		Y: (to.Y - from.Y) / targetDist,
	}
	hit := w.CastToWall(from, dir)
	wallDist := hit.Dist(from)

	return wallDist+occlusionEpsilon < targetDist
}
