// Package camera provides cameras and viewport controls.
package camera

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Camera is what the renderer needs from a camera. The model matrix is the
// camera's transform in the world; the view matrix is its inverse.
type Camera interface {
	ModelMatrix() mgl32.Mat4
	SetModelMatrix(m mgl32.Mat4)
	ProjectionMatrix() mgl32.Mat4
}

// Perspective is a symmetric perspective camera.
type Perspective struct {
	model      mgl32.Mat4
	projection mgl32.Mat4

	fov    float32 // degrees, vertical
	aspect float32
	near   float32
	far    float32
}

// NewPerspective creates a camera at the origin looking down -Z.
func NewPerspective(fovDeg, aspect, near, far float32) *Perspective {
	c := &Perspective{
		model:  mgl32.Ident4(),
		fov:    fovDeg,
		aspect: aspect,
		near:   near,
		far:    far,
	}
	c.updateProjection()
	return c
}

// DefaultPerspective has a 45 degree field of view and a 0.1..1000 depth range.
func DefaultPerspective() *Perspective {
	return NewPerspective(45, 1, 0.1, 1000)
}

func (c *Perspective) ModelMatrix() mgl32.Mat4      { return c.model }
func (c *Perspective) SetModelMatrix(m mgl32.Mat4)  { c.model = m }
func (c *Perspective) ProjectionMatrix() mgl32.Mat4 { return c.projection }

func (c *Perspective) SetFOV(deg float32)       { c.fov = deg; c.updateProjection() }
func (c *Perspective) SetAspectRatio(a float32) { c.aspect = a; c.updateProjection() }
func (c *Perspective) SetNear(near float32)     { c.near = near; c.updateProjection() }
func (c *Perspective) SetFar(far float32)       { c.far = far; c.updateProjection() }
func (c *Perspective) AspectRatio() float32     { return c.aspect }

func (c *Perspective) updateProjection() {
	aspect := c.aspect
	if aspect <= 0 {
		aspect = 1
	}
	c.projection = mgl32.Perspective(mgl32.DegToRad(c.fov), aspect, c.near, c.far)
}

// Orthographic is a box shaped camera, mostly useful for tests and 2D views.
type Orthographic struct {
	model      mgl32.Mat4
	projection mgl32.Mat4
}

// NewOrthographic creates an orthographic camera at the origin.
func NewOrthographic(left, right, bottom, top, near, far float32) *Orthographic {
	return &Orthographic{
		model:      mgl32.Ident4(),
		projection: mgl32.Ortho(left, right, bottom, top, near, far),
	}
}

func (c *Orthographic) ModelMatrix() mgl32.Mat4      { return c.model }
func (c *Orthographic) SetModelMatrix(m mgl32.Mat4)  { c.model = m }
func (c *Orthographic) ProjectionMatrix() mgl32.Mat4 { return c.projection }

// ViewMatrix returns the inverse of a camera's model matrix.
func ViewMatrix(c Camera) mgl32.Mat4 {
	return c.ModelMatrix().Inv()
}

// WorldPosition returns the translation of a camera's model matrix.
func WorldPosition(c Camera) mgl32.Vec3 {
	return c.ModelMatrix().Col(3).Vec3()
}
