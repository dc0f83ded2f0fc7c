// Package config handles viewer configuration loading and management.
package config

import "github.com/go-gl/mathgl/mgl32"

// Config holds all viewer settings.
type Config struct {
	Graphics GraphicsConfig `yaml:"graphics"`
	Renderer RendererConfig `yaml:"renderer"`
	Assets   AssetsConfig   `yaml:"assets"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// GraphicsConfig holds display settings.
type GraphicsConfig struct {
	Width      int    `yaml:"width"`
	Height     int    `yaml:"height"`
	Fullscreen bool   `yaml:"fullscreen"`
	VSync      bool   `yaml:"vsync"`
	Backend    string `yaml:"backend"` // "sdl" or "glfw"
	Samples    int    `yaml:"samples"` // MSAA samples, 0 disables
}

// RendererConfig holds renderer toggles.
type RendererConfig struct {
	ClearColor [4]float32 `yaml:"clear_color"`
	AutoClear  bool       `yaml:"auto_clear"`
	RenderAxes bool       `yaml:"render_axes"`
	RenderGrid bool       `yaml:"render_grid"`
}

// Color returns the clear color as a vector.
func (r RendererConfig) Color() mgl32.Vec4 {
	return mgl32.Vec4(r.ClearColor)
}

// AssetsConfig holds asset locations.
type AssetsConfig struct {
	Root  string `yaml:"root"`  // Directory layered over the built-in assets
	Watch bool   `yaml:"watch"` // Reload changed files automatically
	Model string `yaml:"model"` // glTF file to open; empty shows the demo scene
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Graphics: GraphicsConfig{
			Width:      1280,
			Height:     720,
			Fullscreen: false,
			VSync:      true,
			Backend:    "glfw",
			Samples:    0,
		},
		Renderer: RendererConfig{
			ClearColor: [4]float32{0.231, 0.231, 0.231, 1},
			AutoClear:  true,
			RenderAxes: true,
			RenderGrid: true,
		},
		Assets: AssetsConfig{
			Root:  "assets",
			Watch: false,
			Model: "",
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
