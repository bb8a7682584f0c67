package engine

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"math"
	"math/rand"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/math/fixed"
)

// -- texture synthesizer
//
// Every bitmap is generated once at startup from fixed seeds; nothing is
// loaded from disk. Textures are immutable and shared by reference.

const (
	texSeed     = 1337
	skyColumns  = 8 // sky panorama is this many tiles wide
	enemyFrames = 2
)

type TextureSet struct {
	Size int

	// Walls is keyed by wall-variant cell code
	Walls map[int]*image.RGBA

	Floor *image.RGBA
	Sky   *image.RGBA

	// Enemy is keyed by enemy variant, then animation frame
	Enemy [][enemyFrames]*image.RGBA

	Face font.Face
}

// NewTextureSet synthesizes the full set at the given square size.
func NewTextureSet(size int) (*TextureSet, error) {
	if size < 16 {
		return nil, fmt.Errorf("texture: size %d too small", size)
	}

	ttf, err := truetype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("texture: parse font: %w", err)
	}
	face := truetype.NewFace(ttf, &truetype.Options{
		Size:    float64(size) / 2,
		DPI:     72,
		Hinting: font.HintingFull,
	})

	t := &TextureSet{
		Size:  size,
		Walls: make(map[int]*image.RGBA),
		Face:  face,
	}

	t.Walls[1] = brickTexture(size, rand.New(rand.NewSource(texSeed)))
	t.Walls[2] = signTexture(size, face, "A", color.RGBA{58, 71, 110, 255})
	t.Walls[3] = signTexture(size, face, "B", color.RGBA{110, 58, 58, 255})
	t.Floor = floorTexture(size, rand.New(rand.NewSource(texSeed+1)))
	t.Sky = skyTexture(size*skyColumns, size*2, rand.New(rand.NewSource(texSeed+2)))

	t.Enemy = [][enemyFrames]*image.RGBA{
		enemyTexture(size, color.RGBA{190, 40, 40, 255}),
		enemyTexture(size, color.RGBA{170, 30, 170, 255}),
	}

	return t, nil
}

// WallTexture returns the bitmap for a wall-variant cell code, falling
// back to brick for codes without a dedicated texture.
func (t *TextureSet) WallTexture(variant int) *image.RGBA {
	if tex, ok := t.Walls[variant]; ok {
		return tex
	}
	return t.Walls[1]
}

// EnemyTexture returns the frame for an enemy variant and animation clock.
func (t *TextureSet) EnemyTexture(variant int, animClock float64) *image.RGBA {
	if variant < 0 || variant >= len(t.Enemy) {
		variant = 0
	}
	frame := int(animClock*2) % enemyFrames
	return t.Enemy[variant][frame]
}

func fillRect(img *image.RGBA, x0, y0, x1, y1 int, c color.RGBA) {
	draw.Draw(img, image.Rect(x0, y0, x1, y1), &image.Uniform{c}, image.Point{}, draw.Src)
}

func brickTexture(size int, rng *rand.Rand) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	mortar := color.RGBA{70, 62, 58, 255}
	fillRect(img, 0, 0, size, size, mortar)

	rows := 4
	cols := 2
	bh := size / rows
	bw := size / cols
	for row := 0; row < rows; row++ {
		offset := 0
		if row%2 == 1 {
			offset = bw / 2
		}
		for col := -1; col <= cols; col++ {
			x0 := col*bw + offset + 1
			y0 := row*bh + 1
			shade := uint8(rng.Intn(30))
			brick := color.RGBA{150 + shade, 60 + shade/2, 48, 255}
			fillRect(img, maxInt(x0, 0), y0, minInt(x0+bw-2, size), y0+bh-2, brick)
		}
	}
	return img
}

func signTexture(size int, face font.Face, label string, bg color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	fillRect(img, 0, 0, size, size, bg)

	border := color.RGBA{bg.R / 2, bg.G / 2, bg.B / 2, 255}
	b := size / 16
	fillRect(img, 0, 0, size, b, border)
	fillRect(img, 0, size-b, size, size, border)
	fillRect(img, 0, 0, b, size, border)
	fillRect(img, size-b, 0, size, size, border)

	d := font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(color.RGBA{235, 230, 210, 255}),
		Face: face,
	}
	width := d.MeasureString(label)
	d.Dot = fixed.Point26_6{
		X: fixed.I(size/2) - width/2,
		Y: fixed.I(size * 2 / 3),
	}
	d.DrawString(label)
	return img
}

func floorTexture(size int, rng *rand.Rand) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			base := uint8(72 + rng.Intn(10))
			c := color.RGBA{base, base + 4, base + 10, 255}
			// tile seams
			if x%(size/2) == 0 || y%(size/2) == 0 {
				c = color.RGBA{50, 52, 58, 255}
			}
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

func skyTexture(width, height int, rng *rand.Rand) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))

	top := color.RGBA{10, 12, 34, 255}
	bottom := color.RGBA{46, 38, 72, 255}
	for y := 0; y < height; y++ {
		t := float64(y) / float64(height-1)
		c := color.RGBA{
			R: uint8(float64(top.R) + t*float64(int(bottom.R)-int(top.R))),
			G: uint8(float64(top.G) + t*float64(int(bottom.G)-int(top.G))),
			B: uint8(float64(top.B) + t*float64(int(bottom.B)-int(top.B))),
			A: 255,
		}
		for x := 0; x < width; x++ {
			img.SetRGBA(x, y, c)
		}
	}

	stars := width * height / 300
	for i := 0; i < stars; i++ {
		x := rng.Intn(width)
		y := rng.Intn(height * 3 / 4)
		v := uint8(150 + rng.Intn(106))
		img.SetRGBA(x, y, color.RGBA{v, v, v, 255})
	}
	return img
}

// enemyTexture draws the two walk frames for one enemy variant: a body
// blob with legs swapped between frames. Transparent background so the
// billboard composites over walls.
func enemyTexture(size int, body color.RGBA) [enemyFrames]*image.RGBA {
	var frames [enemyFrames]*image.RGBA
	dark := color.RGBA{body.R / 2, body.G / 2, body.B / 2, 255}
	eye := color.RGBA{245, 240, 200, 255}

	for f := 0; f < enemyFrames; f++ {
		img := image.NewRGBA(image.Rect(0, 0, size, size))
		cx, cy := size/2, size*2/5
		r := size / 4

		// head/body blob
		for y := 0; y < size; y++ {
			for x := 0; x < size; x++ {
				dx, dy := float64(x-cx), float64(y-cy)
				if math.Hypot(dx, dy*0.8) <= float64(r) {
					img.SetRGBA(x, y, body)
				}
			}
		}

		// torso
		fillRect(img, cx-r/2, cy, cx+r/2, size*3/4, dark)

		// legs alternate per frame
		legW := size / 10
		if f == 0 {
			fillRect(img, cx-r/2, size*3/4, cx-r/2+legW, size-2, dark)
			fillRect(img, cx+r/2-legW, size*3/4-2, cx+r/2, size-6, dark)
		} else {
			fillRect(img, cx-r/2, size*3/4-2, cx-r/2+legW, size-6, dark)
			fillRect(img, cx+r/2-legW, size*3/4, cx+r/2, size-2, dark)
		}

		// eyes
		fillRect(img, cx-r/2, cy-r/4, cx-r/2+legW, cy-r/4+legW, eye)
		fillRect(img, cx+r/2-legW, cy-r/4, cx+r/2, cy-r/4+legW, eye)

		frames[f] = img
	}
	return frames
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
