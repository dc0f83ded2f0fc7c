// Package renderer draws scenes through a gpu.Device.
//
// The renderer owns one table per resource kind mapping resource IDs to GPU
// bundles. Bundles are created lazily on first use, or ahead of time with
// Preload, and recreated when the resource's update count moves past the
// version that was uploaded. A Renderer must only be used from the thread
// that owns the graphics context.
package renderer

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/Faultbox/ron/internal/engine/gpu"
	"github.com/Faultbox/ron/internal/engine/resource"
	"github.com/Faultbox/ron/internal/logger"
)

// Shaders supplies the built-in programs the renderer always keeps loaded.
type Shaders interface {
	ErrorShader() *resource.ShaderProgram
	DepthShader() *resource.ShaderProgram
	AxesShader() *resource.ShaderProgram
	GridShader() *resource.ShaderProgram
}

// Stats describes the last frame and the current table sizes.
type Stats struct {
	DrawCalls       int
	ShadowDrawCalls int
	Programs        int
	Textures        int
	Geometries      int

	// Totals since the renderer was created.
	ProgramCompiles int
	TextureUploads  int
	GeometryUploads int
}

// Renderer draws scenes with a shadow pass, a main pass and debug overlays.
type Renderer struct {
	dev gpu.Device

	// AutoClear clears color and depth at the start of the main pass.
	AutoClear  bool
	RenderAxes bool
	RenderGrid bool

	clearColor mgl32.Vec4
	width      int32
	height     int32

	errorShader *resource.ShaderProgram
	depthShader *resource.ShaderProgram
	axesShader  *resource.ShaderProgram
	gridShader  *resource.ShaderProgram
	axes        *overlay
	grid        *overlay

	programs   map[resource.ID]ProgramBundle
	textures   map[resource.ID]TextureBundle
	geometries map[resource.ID]GeometryBundle
	lights     map[resource.ID]LightBundle

	sceneID    resource.ID
	generation uint64

	stats Stats
}

// New creates a renderer and compiles the built-in programs. It fails only
// when one of them does not compile, since the error shader must always be
// available as a fallback.
// IMPORTANT: dev must be backed by a current context.
func New(dev gpu.Device, shaders Shaders) (*Renderer, error) {
	r := &Renderer{
		dev:         dev,
		AutoClear:   true,
		clearColor:  mgl32.Vec4{0, 0, 0, 1},
		width:       1280,
		height:      720,
		errorShader: shaders.ErrorShader(),
		depthShader: shaders.DepthShader(),
		axesShader:  shaders.AxesShader(),
		gridShader:  shaders.GridShader(),
		programs:    make(map[resource.ID]ProgramBundle),
		textures:    make(map[resource.ID]TextureBundle),
		geometries:  make(map[resource.ID]GeometryBundle),
		lights:      make(map[resource.ID]LightBundle),
	}

	for _, p := range []*resource.ShaderProgram{r.errorShader, r.depthShader, r.axesShader, r.gridShader} {
		if p == nil {
			r.Release()
			return nil, fmt.Errorf("missing built-in shader program")
		}
		r.PreloadProgram(p)
		if r.programs[p.ID()].Program == 0 {
			r.Release()
			return nil, fmt.Errorf("built-in shader program %q failed to compile", p.Name())
		}
	}

	pos, col := axesVertices()
	r.axes = newOverlay(dev, pos, col, 2)
	pos, col = gridVertices()
	r.grid = newOverlay(dev, pos, col, 1)

	// Shaders output linear color; writes to sRGB targets get encoded.
	dev.Enable(gpu.FramebufferSRGB)

	logger.Info("renderer created")
	return r, nil
}

// Evict deletes the GPU data of one program, texture or geometry, typically
// after its asset was released from the library. It reports whether
// anything was cached under id.
func (r *Renderer) Evict(id resource.ID) bool {
	if b, ok := r.programs[id]; ok {
		releaseProgram(r.dev, b)
		delete(r.programs, id)
		return true
	}
	if b, ok := r.textures[id]; ok {
		releaseTexture(r.dev, b)
		delete(r.textures, id)
		return true
	}
	if b, ok := r.geometries[id]; ok {
		releaseGeometry(r.dev, b)
		delete(r.geometries, id)
		return true
	}
	return false
}

// Release deletes every GPU object the renderer created. The renderer must
// not be used afterwards.
func (r *Renderer) Release() {
	logger.Info("releasing renderer",
		zap.Int("programs", len(r.programs)),
		zap.Int("textures", len(r.textures)),
		zap.Int("geometries", len(r.geometries)),
	)
	for id, b := range r.programs {
		releaseProgram(r.dev, b)
		delete(r.programs, id)
	}
	for id, b := range r.textures {
		releaseTexture(r.dev, b)
		delete(r.textures, id)
	}
	for id, b := range r.geometries {
		releaseGeometry(r.dev, b)
		delete(r.geometries, id)
	}
	for id, b := range r.lights {
		releaseLight(r.dev, b)
		delete(r.lights, id)
	}
	if r.axes != nil {
		r.axes.release(r.dev)
		r.axes = nil
	}
	if r.grid != nil {
		r.grid.release(r.dev)
		r.grid = nil
	}
}

// Resize sets the output resolution used by the main pass.
func (r *Renderer) Resize(width, height int) {
	r.width = int32(width)
	r.height = int32(height)
	logger.Debug("renderer resized",
		zap.Int("width", width),
		zap.Int("height", height),
	)
}

// Resolution returns the output size in pixels.
func (r *Renderer) Resolution() (width, height int) {
	return int(r.width), int(r.height)
}

// SetClearColor sets the sRGB encoded color used by Clear and ClearColor.
func (r *Renderer) SetClearColor(c mgl32.Vec4) { r.clearColor = c }

// ClearColorValue returns the clear color.
func (r *Renderer) ClearColorValue() mgl32.Vec4 { return r.clearColor }

// Clear clears color and depth. The clear color is already sRGB, so the
// framebuffer conversion is off while clearing.
func (r *Renderer) Clear() {
	r.clear(r.clearColor, gpu.ClearColorBuffer|gpu.ClearDepthBuffer)
}

// ClearColor clears only the color buffer with the renderer's clear color.
func (r *Renderer) ClearColor() {
	r.clear(r.clearColor, gpu.ClearColorBuffer)
}

// ClearColorWith clears only the color buffer with c.
func (r *Renderer) ClearColorWith(c mgl32.Vec4) {
	r.clear(c, gpu.ClearColorBuffer)
}

// ClearDepth clears only the depth buffer.
func (r *Renderer) ClearDepth() {
	r.dev.Clear(gpu.ClearDepthBuffer)
}

func (r *Renderer) clear(c mgl32.Vec4, mask gpu.ClearMask) {
	r.dev.Disable(gpu.FramebufferSRGB)
	r.dev.ClearColor(c[0], c[1], c[2], c[3])
	r.dev.Clear(mask)
	r.dev.Enable(gpu.FramebufferSRGB)
}

// Stats returns the draw counts of the last frame and the table sizes.
func (r *Renderer) Stats() Stats {
	s := r.stats
	s.Programs = len(r.programs)
	s.Textures = len(r.textures)
	s.Geometries = len(r.geometries)
	return s
}
