package main

import (
	"errors"
	"os"

	"github.com/harbdog/raycaster-go/geom"
	"github.com/spf13/viper"

	"gridfire/internal/app"
	"gridfire/internal/engine"
	"gridfire/internal/logging"
)

func vec(x, y float64) geom.Vector2 { return geom.Vector2{X: x, Y: y} }

func defaultWorld() engine.WorldDef {
	return engine.WorldDef{
		Rows: []string{
			"1111111111111111",
			"1000000000000001",
			"1000110000011001",
			"1000110000011001",
			"1000000000000001",
			"1002000000000201",
			"1000000330000001",
			"1000000330000001",
			"1000000000000001",
			"1001100000001101",
			"1001100000001101",
			"1000000000000001",
			"1000000000000001",
			"1111111111111111",
		},
		Spawn: engine.SpawnPose{X: 2.5, Y: 2.5, Angle: 0},
		Enemies: []engine.EnemyDef{
			// Patrol is the offset from Base to the far end of the route.
			{
				Base:   vec(14.5, 2.5),
				Patrol: vec(0, 9),
				Speed:  1.0,
			},
			{
				Base:    vec(3.5, 11.5),
				Patrol:  vec(9, 0),
				Speed:   0.8,
				Phase:   0.5,
				Variant: 1,
			},
			{
				Base:    vec(10.5, 4.5),
				Patrol:  vec(0, 4),
				Speed:   1.3,
				Phase:   1.5,
				Variant: 2,
			},
		},
	}
}

func loadConfig() *viper.Viper {
	v := viper.New()
	v.SetDefault("window.width", 1280)
	v.SetDefault("window.height", 800)
	v.SetDefault("window.fullscreen", false)
	v.SetDefault("window.vsync", true)
	v.SetDefault("render.scale", 0.5)
	v.SetDefault("render.textureSize", 64)
	v.SetDefault("render.fovDegrees", 66.0)
	v.SetDefault("input.sensitivity", 0.002)
	v.SetDefault("hud.show", true)
	v.SetDefault("log.file", "gridfire.log")
	v.SetDefault("log.debug", false)

	v.SetConfigName("gridfire")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("$HOME/.gridfire")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			// a malformed config file should be loud, not silently defaulted
			panic(err)
		}
	}
	return v
}

func main() {
	cfg := loadConfig()

	log := logging.New(cfg.GetString("log.file"), cfg.GetBool("log.debug"))
	defer log.Sync()

	width := cfg.GetInt("window.width")
	height := cfg.GetInt("window.height")
	scale := cfg.GetFloat64("render.scale")

	eng, err := engine.New(engine.Config{
		Width:       int(float64(width) * scale),
		Height:      int(float64(height) * scale),
		TextureSize: cfg.GetInt("render.textureSize"),
		FovDegrees:  cfg.GetFloat64("render.fovDegrees"),
	}, defaultWorld(), log)
	if err != nil {
		log.Errorw("engine init failed", "err", err)
		os.Exit(1)
	}

	a := app.New(eng, app.Options{
		Title:       "gridfire",
		Width:       width,
		Height:      height,
		RenderScale: scale,
		Sensitivity: cfg.GetFloat64("input.sensitivity"),
		Fullscreen:  cfg.GetBool("window.fullscreen"),
		Vsync:       cfg.GetBool("window.vsync"),
		ShowHUD:     cfg.GetBool("hud.show"),
	}, log)

	if err := a.Run(); err != nil {
		log.Errorw("run failed", "err", err)
		os.Exit(1)
	}
}
