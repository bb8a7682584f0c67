package engine

import (
	"bytes"
	"testing"
)

func TestNewTextureSetRejectsTinySize(t *testing.T) {
	if _, err := NewTextureSet(8); err == nil {
		t.Fatal("expected error for size below minimum")
	}
}

func TestTextureSetDimensions(t *testing.T) {
	tex, err := NewTextureSet(32)
	if err != nil {
		t.Fatalf("NewTextureSet: %v", err)
	}

	for variant, img := range tex.Walls {
		b := img.Bounds()
		if b.Dx() != 32 || b.Dy() != 32 {
			t.Fatalf("wall %d is %dx%d, want 32x32", variant, b.Dx(), b.Dy())
		}
	}
	if b := tex.Floor.Bounds(); b.Dx() != 32 || b.Dy() != 32 {
		t.Fatalf("floor is %dx%d", b.Dx(), b.Dy())
	}
	if b := tex.Sky.Bounds(); b.Dx() != 32*skyColumns || b.Dy() != 64 {
		t.Fatalf("sky is %dx%d", b.Dx(), b.Dy())
	}
	for v, frames := range tex.Enemy {
		for f, img := range frames {
			if b := img.Bounds(); b.Dx() != 32 || b.Dy() != 32 {
				t.Fatalf("enemy %d frame %d is %dx%d", v, f, b.Dx(), b.Dy())
			}
		}
	}
}

func TestTextureSetDeterministic(t *testing.T) {
	a, err := NewTextureSet(32)
	if err != nil {
		t.Fatalf("NewTextureSet: %v", err)
	}
	b, err := NewTextureSet(32)
	if err != nil {
		t.Fatalf("NewTextureSet: %v", err)
	}

	if !bytes.Equal(a.Walls[1].Pix, b.Walls[1].Pix) {
		t.Fatal("brick texture differs between runs")
	}
	if !bytes.Equal(a.Floor.Pix, b.Floor.Pix) {
		t.Fatal("floor texture differs between runs")
	}
	if !bytes.Equal(a.Sky.Pix, b.Sky.Pix) {
		t.Fatal("sky texture differs between runs")
	}
}

func TestWallTextureFallback(t *testing.T) {
	tex, err := NewTextureSet(32)
	if err != nil {
		t.Fatalf("NewTextureSet: %v", err)
	}
	if tex.WallTexture(7) != tex.Walls[1] {
		t.Fatal("unknown variant should fall back to brick")
	}
	if tex.WallTexture(2) != tex.Walls[2] {
		t.Fatal("known variant should return its own texture")
	}
}

func TestEnemyTextureFrames(t *testing.T) {
	tex, err := NewTextureSet(32)
	if err != nil {
		t.Fatalf("NewTextureSet: %v", err)
	}
	if tex.EnemyTexture(0, 0.0) != tex.Enemy[0][0] {
		t.Fatal("clock 0 should select frame 0")
	}
	if tex.EnemyTexture(0, 0.6) != tex.Enemy[0][1] {
		t.Fatal("clock 0.6 should select frame 1")
	}
	// out-of-range variants fall back rather than panic
	if tex.EnemyTexture(99, 0.0) != tex.Enemy[0][0] {
		t.Fatal("unknown variant should fall back to variant 0")
	}
}
