package engine

import (
	"image"
	"image/color"
)

// -- minimap

// BuildMinimap renders the static top-down grid once at startup; the
// host draws moving markers over it each frame.
func BuildMinimap(w *World, cellPx int) *image.RGBA {
	if cellPx < 1 {
		cellPx = 1
	}
	img := image.NewRGBA(image.Rect(0, 0, w.Width()*cellPx, w.Height()*cellPx))

	wall := color.RGBA{50, 50, 50, 230}
	open := color.RGBA{140, 140, 140, 230}

	for y := 0; y < w.Height(); y++ {
		for x := 0; x < w.Width(); x++ {
			c := open
			if w.IsWall(x, y) {
				c = wall
			}
			fillRect(img, x*cellPx, y*cellPx, (x+1)*cellPx, (y+1)*cellPx, c)
		}
	}
	return img
}
