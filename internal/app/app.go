// Package app hosts the engine inside an ebitengine window: it collects
// input events, drives the engine tick from display-frame timestamps and
// blits the engine's framebuffer to the screen.
package app

import (
	"fmt"
	"image/color"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"go.uber.org/zap"

	"gridfire/internal/engine"
)

const minimapCellPx = 4

var (
	colorPlayer = color.RGBA{210, 60, 60, 255}
	colorEnemy  = color.RGBA{70, 170, 70, 255}
)

type Options struct {
	Title         string
	Width, Height int
	RenderScale   float64
	Sensitivity   float64
	Fullscreen    bool
	Vsync         bool
	ShowHUD       bool
}

type App struct {
	eng *engine.Engine
	log *zap.SugaredLogger
	opt Options

	scene          *ebiten.Image
	sceneW, sceneH int

	minimap *ebiten.Image

	captured     bool
	prevX, prevY int
	havePrev     bool

	start time.Time
}

func New(eng *engine.Engine, opt Options, log *zap.SugaredLogger) *App {
	if opt.RenderScale <= 0 || opt.RenderScale > 1 {
		opt.RenderScale = 1
	}
	if opt.Sensitivity <= 0 {
		opt.Sensitivity = 0.002
	}

	a := &App{
		eng:   eng,
		log:   log,
		opt:   opt,
		start: time.Now(),
	}
	a.resize(opt.Width, opt.Height)

	mm := engine.BuildMinimap(eng.Sim().World, minimapCellPx)
	a.minimap = ebiten.NewImageFromImage(mm)

	return a
}

// Run configures the window and hands control to the ebiten run loop.
// It returns when the player quits or the host cannot provide a surface.
func (a *App) Run() error {
	ebiten.SetWindowTitle(a.opt.Title)
	ebiten.SetWindowSize(a.opt.Width, a.opt.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetFullscreen(a.opt.Fullscreen)
	ebiten.SetVsyncEnabled(a.opt.Vsync)

	a.log.Infow("window open",
		"size", fmt.Sprintf("%dx%d", a.opt.Width, a.opt.Height),
		"renderScale", a.opt.RenderScale,
	)

	if err := ebiten.RunGame(a); err != nil {
		// a missing graphics context is terminal: report once, stay inert
		return fmt.Errorf("app: run: %w", err)
	}
	return nil
}

func (a *App) resize(w, h int) {
	sw := int(float64(w) * a.opt.RenderScale)
	sh := int(float64(h) * a.opt.RenderScale)
	if sw < 2 {
		sw = 2
	}
	if sh < 2 {
		sh = 2
	}
	if sw == a.sceneW && sh == a.sceneH {
		return
	}
	a.sceneW, a.sceneH = sw, sh
	a.scene = ebiten.NewImage(sw, sh)
	a.eng.Resize(sw, sh)
}

func (a *App) setCaptured(captured bool) {
	if a.captured == captured {
		return
	}
	a.captured = captured
	a.havePrev = false
	if captured {
		ebiten.SetCursorMode(ebiten.CursorModeCaptured)
	} else {
		ebiten.SetCursorMode(ebiten.CursorModeVisible)
	}
}

// Update collects this frame's input and advances the engine.
func (a *App) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) && ebiten.IsKeyPressed(ebiten.KeyControl) {
		a.eng.Stop()
		return ebiten.Termination
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		a.setCaptured(false)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyP) {
		paused := !a.eng.Paused()
		a.eng.SetPaused(paused)
		if paused {
			a.setCaptured(false)
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF1) {
		a.opt.ShowHUD = !a.opt.ShowHUD
	}

	var in engine.InputFrame
	in.Forward = ebiten.IsKeyPressed(ebiten.KeyW) || ebiten.IsKeyPressed(ebiten.KeyArrowUp)
	in.Backward = ebiten.IsKeyPressed(ebiten.KeyS) || ebiten.IsKeyPressed(ebiten.KeyArrowDown)
	in.StrafeLeft = ebiten.IsKeyPressed(ebiten.KeyA)
	in.StrafeRight = ebiten.IsKeyPressed(ebiten.KeyD)

	// first click acquires pointer capture; clicks while captured fire
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		if !a.captured {
			a.setCaptured(true)
		} else {
			in.Fire = true
		}
	}

	if a.captured {
		cx, cy := ebiten.CursorPosition()
		if a.havePrev {
			in.TurnDelta = -float64(cx-a.prevX) * a.opt.Sensitivity
		}
		a.prevX, a.prevY = cx, cy
		a.havePrev = true
	}

	nowMs := float64(time.Since(a.start)) / float64(time.Millisecond)
	a.eng.Tick(nowMs, in)
	return nil
}

// Draw blits the engine framebuffer, scaled up to the window, then the
// minimap and HUD overlays.
func (a *App) Draw(screen *ebiten.Image) {
	frame := a.eng.Frame()
	a.scene.WritePixels(frame.Pix)

	op := &ebiten.DrawImageOptions{}
	op.Filter = ebiten.FilterNearest
	sw, sh := screen.Bounds().Dx(), screen.Bounds().Dy()
	op.GeoM.Scale(float64(sw)/float64(a.sceneW), float64(sh)/float64(a.sceneH))
	screen.DrawImage(a.scene, op)

	a.drawMinimap(screen)

	if a.opt.ShowHUD {
		a.drawHUD(screen)
	}
}

func (a *App) drawMinimap(screen *ebiten.Image) {
	sim := a.eng.Sim()
	mmW := sim.World.Width() * minimapCellPx
	offX := screen.Bounds().Dx() - mmW - 10
	offY := 10

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(offX), float64(offY))
	screen.DrawImage(a.minimap, op)

	px := float32(offX) + float32(sim.Player.Pos.X*minimapCellPx)
	py := float32(offY) + float32(sim.Player.Pos.Y*minimapCellPx)
	vector.DrawFilledCircle(screen, px, py, 2, colorPlayer, false)

	for i := range sim.Enemies {
		e := &sim.Enemies[i]
		if !e.Alive() {
			continue
		}
		ex := float32(offX) + float32(e.Pos.X*minimapCellPx)
		ey := float32(offY) + float32(e.Pos.Y*minimapCellPx)
		vector.DrawFilledCircle(screen, ex, ey, 2, colorEnemy, false)
	}
}

func (a *App) drawHUD(screen *ebiten.Image) {
	sim := a.eng.Sim()
	status := fmt.Sprintf("FPS: %0.1f  TPS: %0.1f", ebiten.ActualFPS(), ebiten.ActualTPS())
	ebitenutil.DebugPrintAt(screen, status, 10, 10)
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("HP: %d", sim.Player.Health), 10, 26)
	if a.eng.Paused() {
		ebitenutil.DebugPrintAt(screen, "PAUSED (P to resume)", 10, 42)
	}
	if !a.captured {
		ebitenutil.DebugPrintAt(screen, "click to capture mouse", 10, 58)
	}
}

// Layout reports the logical screen size; window resizes reach the
// engine through resize so the framebuffer tracks the viewport.
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth > 0 && outsideHeight > 0 {
		a.resize(outsideWidth, outsideHeight)
		return outsideWidth, outsideHeight
	}
	return a.opt.Width, a.opt.Height
}
