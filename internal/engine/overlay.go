package engine

import (
	"image"
	"image/color"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

// -- screen overlays

const (
	damageTintWindow = 0.5
	damageTintMax    = 0.45
	deathDarken      = 0.6
)

func (r *Renderer) drawOverlays(s *SimulationState) {
	now := s.Now
	p := &s.Player

	// red tint proportional to how recent the last damage was
	if p.LastDamage != 0 && now-p.LastDamage < damageTintWindow {
		a := damageTintMax * (1 - (now-p.LastDamage)/damageTintWindow)
		r.tint(color.RGBA{180, 0, 0, 255}, a)
	}

	if !p.Alive() {
		r.tint(color.RGBA{0, 0, 0, 255}, deathDarken)
		r.centerText("YOU DIED")
		return
	}

	if p.LastFired != 0 && now-p.LastFired < muzzleFlashTime {
		r.muzzleFlash()
	}
}

// tint alpha-blends a flat color over the whole framebuffer.
func (r *Renderer) tint(c color.RGBA, alpha float64) {
	if alpha <= 0 {
		return
	}
	if alpha > 1 {
		alpha = 1
	}
	pix := r.fb.Pix
	cr, cg, cb := float64(c.R)*alpha, float64(c.G)*alpha, float64(c.B)*alpha
	keep := 1 - alpha
	for i := 0; i < len(pix); i += 4 {
		pix[i] = uint8(float64(pix[i])*keep + cr)
		pix[i+1] = uint8(float64(pix[i+1])*keep + cg)
		pix[i+2] = uint8(float64(pix[i+2])*keep + cb)
	}
}

func (r *Renderer) centerText(msg string) {
	d := font.Drawer{
		Dst:  r.fb,
		Src:  image.NewUniform(color.RGBA{230, 225, 210, 255}),
		Face: r.tex.Face,
	}
	width := d.MeasureString(msg)
	d.Dot = fixed.Point26_6{
		X: fixed.I(r.w/2) - width/2,
		Y: fixed.I(r.h / 2),
	}
	d.DrawString(msg)
}

// muzzleFlash draws a momentary cross at screen center.
func (r *Renderer) muzzleFlash() {
	cx, cy := r.w/2, r.h/2
	arm := r.h / 40
	for d := -arm; d <= arm; d++ {
		r.putPixel(cx+d, cy, 255, 240, 160)
		r.putPixel(cx, cy+d, 255, 240, 160)
	}
}

func (r *Renderer) putPixel(x, y int, cr, cg, cb uint8) {
	if x < 0 || x >= r.w || y < 0 || y >= r.h {
		return
	}
	o := r.fb.PixOffset(x, y)
	r.fb.Pix[o] = cr
	r.fb.Pix[o+1] = cg
	r.fb.Pix[o+2] = cb
	r.fb.Pix[o+3] = 255
}
