package app

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/Faultbox/ron/internal/assets"
	"github.com/Faultbox/ron/internal/config"
	"github.com/Faultbox/ron/internal/engine/camera"
	"github.com/Faultbox/ron/internal/engine/debug"
	"github.com/Faultbox/ron/internal/engine/gpu"
	"github.com/Faultbox/ron/internal/engine/input"
	"github.com/Faultbox/ron/internal/engine/lighting"
	"github.com/Faultbox/ron/internal/engine/renderer"
	"github.com/Faultbox/ron/internal/engine/scene"
	"github.com/Faultbox/ron/internal/gltf"
	"github.com/Faultbox/ron/internal/logger"
)

// Viewer shows one scene through an orbiting camera. It does not own a
// window, so it can run against any gpu.Device.
type Viewer struct {
	Library  *assets.Library
	Renderer *renderer.Renderer
	Scene    *scene.Scene
	Camera   *camera.Perspective
	Controls *camera.OrbitControls

	dev         gpu.Device
	screenshots *debug.ScreenshotCapture
	watcher     *assets.Watcher
	quit        bool
}

// NewViewer creates the renderer, loads the configured model (or the demo
// scene) and uploads it.
func NewViewer(dev gpu.Device, lib *assets.Library, cfg *config.Config) (*Viewer, error) {
	r, err := renderer.New(dev, lib)
	if err != nil {
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}
	r.AutoClear = cfg.Renderer.AutoClear
	r.RenderAxes = cfg.Renderer.RenderAxes
	r.RenderGrid = cfg.Renderer.RenderGrid
	r.SetClearColor(cfg.Renderer.Color())

	v := &Viewer{
		Library:     lib,
		Renderer:    r,
		Camera:      camera.DefaultPerspective(),
		Controls:    camera.NewOrbitControls(mgl32.Vec2{-0.5, 0.6}),
		dev:         dev,
		screenshots: debug.NewScreenshotCapture("screenshots", "ron"),
	}

	if cfg.Assets.Model != "" {
		s, unsupported, err := gltf.Import(cfg.Assets.Model, lib)
		if err != nil {
			r.Release()
			return nil, fmt.Errorf("failed to load model: %w", err)
		}
		for _, u := range unsupported {
			logger.Warn("unsupported glTF feature", zap.String("detail", u))
		}
		v.Scene = s
	} else {
		v.Scene = DemoScene(lib)
	}

	v.ResetCamera()
	v.Resize(cfg.Graphics.Width, cfg.Graphics.Height)
	r.Preload(v.Scene)
	return v, nil
}

// Watch hot-reloads files reported by w every frame.
func (v *Viewer) Watch(w *assets.Watcher) { v.watcher = w }

// Quit reports whether the user asked to leave.
func (v *Viewer) Quit() bool { return v.quit }

// ResetCamera frames the whole scene and fits the shadow volume around it.
func (v *Viewer) ResetCamera() {
	min, max, ok := v.Scene.Bounds()
	if !ok {
		min, max = mgl32.Vec3{-1, -1, -1}, mgl32.Vec3{1, 1, 1}
	}
	v.Controls.FitBounds(min, max)
	v.Camera.SetFar(mgl32.Clamp(v.Controls.Distance*20, 100, 100000))
	v.Camera.SetModelMatrix(v.Controls.Transform())

	if l := v.Scene.DirectionalLight(); l != nil {
		light := *l
		fitLight(&light, min, max)
		v.Scene.SetDirectionalLight(&light)
	}
}

// fitLight places the light outside the box, looking at its center, with a
// shadow frustum that covers it.
func fitLight(l *lighting.DirectionalLight, min, max mgl32.Vec3) {
	center := min.Add(max).Mul(0.5)
	radius := max.Sub(min).Len() / 2
	if radius <= 0 {
		radius = 1
	}
	l.Position = center.Add(l.Direction.Normalize().Mul(radius * 2))
	l.Shadow.FrustumSize = radius
	l.Shadow.Near = radius * 0.01
	l.Shadow.Far = radius * 4
}

// Resize updates the viewport and the camera aspect ratio.
func (v *Viewer) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	v.Renderer.Resize(width, height)
	v.Camera.SetAspectRatio(float32(width) / float32(height))
}

// Update applies one frame of input.
func (v *Viewer) Update(in *input.Input) {
	if in.QuitRequested() || in.IsKeyPressed(input.KeyEscape) {
		v.quit = true
	}
	if w, h, ok := in.Resized(); ok {
		v.Resize(w, h)
	}

	switch {
	case in.IsKeyPressed(input.KeyF5):
		v.Reload()
	case in.IsKeyPressed(input.KeyF12):
		v.Screenshot()
	case in.IsKeyPressed(input.KeyG):
		v.Renderer.RenderGrid = !v.Renderer.RenderGrid
	case in.IsKeyPressed(input.KeyA):
		v.Renderer.RenderAxes = !v.Renderer.RenderAxes
	case in.IsKeyPressed(input.KeyR):
		v.ResetCamera()
	}

	v.Controls.Scroll(in.ScrollSteps())
	x, y := in.MousePosition()
	v.Controls.Update(v.Camera, float32(x), float32(y), in.IsButtonDown(input.ButtonMiddle), in.ShiftDown())
}

// Reload re-reads changed shader sources and texture files.
func (v *Viewer) Reload() {
	programs := v.Library.ReloadShaderPrograms()
	textures := v.Library.ReloadTextures()
	logger.Info("assets reloaded",
		zap.Int("shader_programs", programs),
		zap.Int("textures", textures),
	)
}

// Screenshot saves the current framebuffer as PNG and returns its path.
func (v *Viewer) Screenshot() string {
	w, h := v.Renderer.Resolution()
	name, err := v.screenshots.Capture(v.dev, w, h)
	if err != nil {
		logger.Error("failed to save screenshot", zap.Error(err))
		return ""
	}
	logger.Info("screenshot saved", zap.String("path", name))
	return name
}

// Frame applies pending file changes and draws the scene.
func (v *Viewer) Frame() {
	if v.watcher != nil {
		v.watcher.Poll()
	}
	v.Renderer.Render(v.Scene, v.Camera)
}

// Title summarizes the renderer state for the window title bar.
func (v *Viewer) Title(fps int) string {
	s := v.Renderer.Stats()
	a := v.Library.Stats()
	return fmt.Sprintf("ron | %d fps | %d draws (%d shadow) | %d programs, %d textures, %d geometries | cache %d/%d",
		fps, s.DrawCalls, s.ShadowDrawCalls, s.Programs, s.Textures, s.Geometries, a.Hits, a.Hits+a.Misses)
}

// Release frees every GPU object.
func (v *Viewer) Release() {
	v.Renderer.Release()
}
