// Package app implements the viewer's main loop.
package app

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/ron/internal/assets"
	"github.com/Faultbox/ron/internal/config"
	"github.com/Faultbox/ron/internal/engine/gpu/opengl"
	"github.com/Faultbox/ron/internal/engine/input"
	"github.com/Faultbox/ron/internal/engine/window"
	"github.com/Faultbox/ron/internal/logger"
)

// App owns the window and drives the viewer.
type App struct {
	config  *config.Config
	window  window.Window
	input   *input.Input
	viewer  *Viewer
	watcher *assets.Watcher
}

// New opens the window and creates the viewer.
func New(cfg *config.Config) (*App, error) {
	logger.Info("initializing viewer",
		zap.String("backend", cfg.Graphics.Backend),
		zap.Int("width", cfg.Graphics.Width),
		zap.Int("height", cfg.Graphics.Height),
		zap.String("model", cfg.Assets.Model),
	)

	a := &App{config: cfg, input: input.New()}

	var err error
	a.window, err = window.New(cfg.Graphics.Backend, window.Config{
		Title:      "ron",
		Width:      cfg.Graphics.Width,
		Height:     cfg.Graphics.Height,
		Fullscreen: cfg.Graphics.Fullscreen,
		VSync:      cfg.Graphics.VSync,
		Samples:    cfg.Graphics.Samples,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	// The device needs the context created by the window.
	dev, err := opengl.New()
	if err != nil {
		a.window.Close()
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	lib := assets.New(cfg.Assets.Root)
	a.viewer, err = NewViewer(dev, lib, cfg)
	if err != nil {
		a.window.Close()
		return nil, err
	}
	a.viewer.Resize(a.window.DrawableSize())

	if cfg.Assets.Watch {
		w, err := assets.NewWatcher(lib)
		if err != nil {
			logger.Warn("asset watcher disabled", zap.Error(err))
		} else {
			a.watcher = w
			a.viewer.Watch(w)
		}
	}

	logger.Info("viewer initialized")
	return a, nil
}

// Run loops until the window closes or Escape is pressed.
func (a *App) Run() error {
	frames := 0
	fpsTimer := time.Now()

	logger.Info("starting render loop")

	for {
		a.input.Begin()
		a.window.PollEvents(a.input)
		a.viewer.Update(a.input)
		if a.viewer.Quit() {
			return nil
		}

		a.viewer.Frame()
		a.window.SwapBuffers()

		frames++
		if time.Since(fpsTimer) >= time.Second {
			a.window.SetTitle(a.viewer.Title(frames))
			logger.Debug("fps", zap.Int("count", frames))
			frames = 0
			fpsTimer = time.Now()
		}
	}
}

// Close releases GPU objects, stops the watcher and closes the window.
func (a *App) Close() {
	logger.Info("closing viewer")

	if a.watcher != nil {
		if err := a.watcher.Close(); err != nil {
			logger.Warn("failed to stop asset watcher", zap.Error(err))
		}
	}
	if a.viewer != nil {
		a.viewer.Release()
	}
	if a.window != nil {
		a.window.Close()
	}
}
