package engine

import (
	"image"
	"math"

	"github.com/harbdog/raycaster-go/geom"
)

// -- renderer
//
// The render target is a plain RGBA framebuffer; the host blits it. All
// passes run on the calling goroutine: one update/render thread owns
// every mutable buffer, so there is nothing to lock.

const (
	// floor pass renders into a reduced-resolution buffer, then scales up
	floorScale = 2

	// lighting
	lightFalloffDist = 12.0
	minWallLight     = 0.25
	sideDarken       = 0.7

	// sprite columns are clamped to this ratio of the view height; the
	// exact ratio is a tunable, not load-bearing behavior
	maxSpriteScreenRatio = 2.0

	projectileMarkSize = 0.06 // fraction of view height at distance 1
)

type Renderer struct {
	w, h int

	fb       *image.RGBA
	floorBuf *image.RGBA
	zbuf     []float64

	tex *TextureSet
}

func NewRenderer(width, height int, tex *TextureSet) *Renderer {
	r := &Renderer{tex: tex}
	r.Resize(width, height)
	return r
}

// Resize reallocates the buffers for a new view size.
func (r *Renderer) Resize(width, height int) {
	if width < floorScale {
		width = floorScale
	}
	if height < floorScale {
		height = floorScale
	}
	r.w, r.h = width, height
	r.fb = image.NewRGBA(image.Rect(0, 0, width, height))
	r.floorBuf = image.NewRGBA(image.Rect(0, 0, width/floorScale, height/floorScale))
	r.zbuf = make([]float64, width)
}

func (r *Renderer) Frame() *image.RGBA { return r.fb }

func (r *Renderer) ViewSize() (int, int) { return r.w, r.h }

// ZBuffer exposes the per-column depth values written by the wall pass.
func (r *Renderer) ZBuffer() []float64 { return r.zbuf }

// Render draws one full frame of s. It only reads simulation state.
func (r *Renderer) Render(s *SimulationState) {
	r.drawSky(s)
	r.drawFloor(s)
	r.drawWalls(s)
	r.drawEnemies(s)
	r.drawProjectiles(s)
	r.drawOverlays(s)
}

// drawSky samples the panoramic texture by yaw, wrapping horizontally.
func (r *Renderer) drawSky(s *SimulationState) {
	sky := r.tex.Sky
	skyW := sky.Bounds().Dx()
	skyH := sky.Bounds().Dy()
	horizon := r.h / 2

	yaw := math.Atan2(s.Player.Dir.Y, s.Player.Dir.X)
	fov := geom.Radians(s.FovDeg)

	for x := 0; x < r.w; x++ {
		// column angle across the field of view
		angle := yaw + fov*(float64(x)/float64(r.w)-0.5)
		u := angle / (2 * math.Pi)
		u -= math.Floor(u)
		texX := int(u * float64(skyW))
		if texX >= skyW {
			texX = skyW - 1
		}

		for y := 0; y < horizon; y++ {
			texY := y * skyH / horizon
			i := sky.PixOffset(texX, texY)
			o := r.fb.PixOffset(x, y)
			copy(r.fb.Pix[o:o+4], sky.Pix[i:i+4])
		}
	}
}

// drawFloor renders the area below the horizon into the low-resolution
// buffer via screen-space inverse projection, then scales it up.
func (r *Renderer) drawFloor(s *SimulationState) {
	fw := r.floorBuf.Bounds().Dx()
	fh := r.floorBuf.Bounds().Dy()
	horizon := fh / 2
	tex := r.tex.Floor
	texSize := tex.Bounds().Dx()

	p := &s.Player
	// leftmost and rightmost view ray directions
	rayLX, rayLY := p.Dir.X-p.Plane.X, p.Dir.Y-p.Plane.Y
	rayRX, rayRY := p.Dir.X+p.Plane.X, p.Dir.Y+p.Plane.Y

	for y := horizon; y < fh; y++ {
		// distance of the world-space row this screen row represents
		den := float64(2*y - fh)
		if den < 1 {
			den = 1
		}
		rowDist := float64(fh) / den

		shade := 1.0 - rowDist/lightFalloffDist
		// depth gradient keeps the near floor from washing out
		shade *= 0.55 + 0.45*float64(y-horizon)/float64(fh-horizon)
		if shade < minWallLight {
			shade = minWallLight
		}

		stepX := rowDist * (rayRX - rayLX) / float64(fw)
		stepY := rowDist * (rayRY - rayLY) / float64(fw)
		floorX := p.Pos.X + rowDist*rayLX
		floorY := p.Pos.Y + rowDist*rayLY

		for x := 0; x < fw; x++ {
			cellX := floorX - math.Floor(floorX)
			cellY := floorY - math.Floor(floorY)
			texX := int(cellX * float64(texSize))
			texY := int(cellY * float64(texSize))
			if texX >= texSize {
				texX = texSize - 1
			}
			if texY >= texSize {
				texY = texSize - 1
			}

			i := tex.PixOffset(texX, texY)
			o := r.floorBuf.PixOffset(x, y)
			r.floorBuf.Pix[o] = uint8(float64(tex.Pix[i]) * shade)
			r.floorBuf.Pix[o+1] = uint8(float64(tex.Pix[i+1]) * shade)
			r.floorBuf.Pix[o+2] = uint8(float64(tex.Pix[i+2]) * shade)
			r.floorBuf.Pix[o+3] = 255

			floorX += stepX
			floorY += stepY
		}
	}

	// nearest-neighbor upscale of the floor rows into the framebuffer
	for y := r.h / 2; y < r.h; y++ {
		sy := y / floorScale
		if sy >= fh {
			sy = fh - 1
		}
		for x := 0; x < r.w; x++ {
			sx := x / floorScale
			if sx >= fw {
				sx = fw - 1
			}
			i := r.floorBuf.PixOffset(sx, sy)
			o := r.fb.PixOffset(x, y)
			copy(r.fb.Pix[o:o+4], r.floorBuf.Pix[i:i+4])
		}
	}
}

// drawWalls casts one ray per column, draws the textured slice and
// records the perpendicular distance in the z-buffer.
func (r *Renderer) drawWalls(s *SimulationState) {
	p := &s.Player
	texSize := r.tex.Size

	for x := 0; x < r.w; x++ {
		cameraX := 2*float64(x)/float64(r.w) - 1
		rayDir := geom.Vector2{
			X: p.Dir.X + p.Plane.X*cameraX,
			Y: p.Dir.Y + p.Plane.Y*cameraX,
		}

		hit := s.World.CastToWall(p.Pos, rayDir)
		r.zbuf[x] = hit.PerpDist

		lineHeight := int(float64(r.h) / hit.PerpDist)
		drawStart := -lineHeight/2 + r.h/2
		drawEnd := lineHeight/2 + r.h/2
		if drawStart < 0 {
			drawStart = 0
		}
		if drawEnd > r.h {
			drawEnd = r.h
		}

		// fractional position along the wall face gives the texture U
		var wallX float64
		if hit.Side == 0 {
			wallX = p.Pos.Y + hit.PerpDist*rayDir.Y
		} else {
			wallX = p.Pos.X + hit.PerpDist*rayDir.X
		}
		wallX -= math.Floor(wallX)

		texX := int(wallX * float64(texSize))
		// flip to keep texture orientation consistent on facing walls
		if hit.Side == 0 && rayDir.X > 0 {
			texX = texSize - texX - 1
		}
		if hit.Side == 1 && rayDir.Y < 0 {
			texX = texSize - texX - 1
		}
		if texX < 0 {
			texX = 0
		} else if texX >= texSize {
			texX = texSize - 1
		}

		shade := 1.0 - hit.PerpDist/lightFalloffDist
		if shade < minWallLight {
			shade = minWallLight
		}
		if hit.Side == 1 {
			shade *= sideDarken
		}

		tex := r.tex.WallTexture(hit.Variant)
		for y := drawStart; y < drawEnd; y++ {
			d := y*256 - r.h*128 + lineHeight*128
			texY := ((d * texSize) / lineHeight) / 256
			if texY < 0 {
				texY = 0
			} else if texY >= texSize {
				texY = texSize - 1
			}

			i := tex.PixOffset(texX, texY)
			o := r.fb.PixOffset(x, y)
			r.fb.Pix[o] = uint8(float64(tex.Pix[i]) * shade)
			r.fb.Pix[o+1] = uint8(float64(tex.Pix[i+1]) * shade)
			r.fb.Pix[o+2] = uint8(float64(tex.Pix[i+2]) * shade)
			r.fb.Pix[o+3] = 255
		}
	}
}

// cameraTransform maps a world point into camera space using the inverse
// of the [dir, plane] basis. The Y component is the depth.
func cameraTransform(p *Player, pos geom.Vector2) (float64, float64) {
	relX := pos.X - p.Pos.X
	relY := pos.Y - p.Pos.Y

	det := p.Plane.X*p.Dir.Y - p.Dir.X*p.Plane.Y
	if math.Abs(det) < 1e-12 {
		return 0, -1
	}
	invDet := 1.0 / det

	transformX := invDet * (p.Dir.Y*relX - p.Dir.X*relY)
	transformY := invDet * (-p.Plane.Y*relX + p.Plane.X*relY)
	return transformX, transformY
}

// drawEnemies composites live enemies back-to-front as billboards,
// occluded per column by the z-buffer.
func (r *Renderer) drawEnemies(s *SimulationState) {
	p := &s.Player

	order := make([]int, 0, len(s.Enemies))
	for i := range s.Enemies {
		if s.Enemies[i].Alive() {
			order = append(order, i)
		}
	}
	// furthest first
	for i := 1; i < len(order); i++ {
		for j := i; j > 0; j-- {
			a, b := &s.Enemies[order[j-1]], &s.Enemies[order[j]]
			da := geom.Distance2(p.Pos.X, p.Pos.Y, a.Pos.X, a.Pos.Y)
			db := geom.Distance2(p.Pos.X, p.Pos.Y, b.Pos.X, b.Pos.Y)
			if da < db {
				order[j-1], order[j] = order[j], order[j-1]
			} else {
				break
			}
		}
	}

	for _, idx := range order {
		e := &s.Enemies[idx]
		tex := r.tex.EnemyTexture(e.Def.Variant, e.AnimClock)
		r.drawBillboard(p, e.Pos, tex, 1.0)
	}
}

// drawBillboard draws a camera-facing textured quad at pos, scaled
// inversely with depth and clamped to a maximum on-screen size.
func (r *Renderer) drawBillboard(p *Player, pos geom.Vector2, tex *image.RGBA, scale float64) {
	transformX, transformY := cameraTransform(p, pos)
	if transformY <= 0 {
		return
	}

	screenX := int(float64(r.w) / 2 * (1 + transformX/transformY))

	maxSize := int(float64(r.h) * maxSpriteScreenRatio)
	size := int(math.Abs(float64(r.h)/transformY) * scale)
	if size > maxSize {
		size = maxSize
	}
	if size < 1 {
		return
	}

	texW := tex.Bounds().Dx()
	texH := tex.Bounds().Dy()

	drawStartY := -size/2 + r.h/2
	drawEndY := size/2 + r.h/2
	drawStartX := -size/2 + screenX
	drawEndX := size/2 + screenX

	for stripe := drawStartX; stripe < drawEndX; stripe++ {
		if stripe < 0 || stripe >= r.w || transformY >= r.zbuf[stripe] {
			continue
		}
		texX := (stripe - drawStartX) * texW / size
		if texX < 0 || texX >= texW {
			continue
		}

		for y := maxInt(drawStartY, 0); y < minInt(drawEndY, r.h); y++ {
			texY := (y - drawStartY) * texH / size
			if texY < 0 || texY >= texH {
				continue
			}
			i := tex.PixOffset(texX, texY)
			if tex.Pix[i+3] == 0 {
				continue
			}
			o := r.fb.PixOffset(stripe, y)
			copy(r.fb.Pix[o:o+4], tex.Pix[i:i+4])
		}
	}
}

// drawProjectiles interpolates each live shot along its travel segment
// and draws a depth-tested marker, then a ring flash after impact.
func (r *Renderer) drawProjectiles(s *SimulationState) {
	p := &s.Player
	now := s.Now

	for i := range s.Projectiles {
		pr := &s.Projectiles[i]

		if now < pr.ImpactTime {
			t := 0.0
			if pr.Duration > 0 {
				t = (now - pr.StartTime) / pr.Duration
			}
			pos := geom.Vector2{
				X: pr.Start.X + (pr.End.X-pr.Start.X)*t,
				Y: pr.Start.Y + (pr.End.Y-pr.Start.Y)*t,
			}
			r.drawMarker(p, pos, 255, 220, 120)
			continue
		}

		if now < pr.FlashUntil {
			dur := pr.FlashUntil - pr.ImpactTime
			if dur <= 0 {
				continue
			}
			t := (now - pr.ImpactTime) / dur
			r.drawRing(p, pr.End, t)
		}
	}
}

func (r *Renderer) drawMarker(p *Player, pos geom.Vector2, cr, cg, cb uint8) {
	transformX, transformY := cameraTransform(p, pos)
	if transformY <= 0.05 {
		return
	}

	screenX := int(float64(r.w) / 2 * (1 + transformX/transformY))
	size := int(projectileMarkSize * float64(r.h) / transformY)
	if size < 2 {
		size = 2
	}

	for x := screenX - size/2; x < screenX+size/2; x++ {
		if x < 0 || x >= r.w || transformY >= r.zbuf[x] {
			continue
		}
		for y := r.h/2 - size/2; y < r.h/2+size/2; y++ {
			if y < 0 || y >= r.h {
				continue
			}
			o := r.fb.PixOffset(x, y)
			r.fb.Pix[o] = cr
			r.fb.Pix[o+1] = cg
			r.fb.Pix[o+2] = cb
			r.fb.Pix[o+3] = 255
		}
	}
}

// drawRing draws the expanding impact flash, t in [0, 1).
func (r *Renderer) drawRing(p *Player, pos geom.Vector2, t float64) {
	transformX, transformY := cameraTransform(p, pos)
	if transformY <= 0.05 {
		return
	}

	screenX := int(float64(r.w) / 2 * (1 + transformX/transformY))
	radius := (0.04 + 0.22*t) * float64(r.h) / transformY
	if radius < 1 {
		return
	}

	fade := 1 - t
	steps := maxInt(int(radius*6), 12)
	for i := 0; i < steps; i++ {
		a := 2 * math.Pi * float64(i) / float64(steps)
		x := screenX + int(radius*math.Cos(a))
		y := r.h/2 + int(radius*math.Sin(a))
		if x < 0 || x >= r.w || y < 0 || y >= r.h {
			continue
		}
		if transformY >= r.zbuf[x] {
			continue
		}
		o := r.fb.PixOffset(x, y)
		r.fb.Pix[o] = uint8(255 * fade)
		r.fb.Pix[o+1] = uint8(200 * fade)
		r.fb.Pix[o+2] = uint8(80 * fade)
		r.fb.Pix[o+3] = 255
	}
}
