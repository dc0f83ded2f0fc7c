package camera

import (
	"github.com/go-gl/mathgl/mgl32"
)

// ControlMode is the current drag interaction.
type ControlMode int

const (
	Idle ControlMode = iota
	Orbit
	Pan
)

// OrbitControls drives a camera around a target point with the middle mouse
// button: drag orbits, shift+drag pans, scrolling zooms.
type OrbitControls struct {
	Target   mgl32.Vec3
	Distance float32
	// Rotation is pitch (x) and yaw (y) in radians.
	Rotation mgl32.Vec2

	OrbitSensitivity float32
	PanSensitivity   float32
	MinDistance      float32
	MaxDistance      float32

	mode    ControlMode
	prevX   float32
	prevY   float32
	started bool
	dirty   bool
}

// NewOrbitControls starts at the given pitch/yaw, 10 units from the origin.
func NewOrbitControls(rotation mgl32.Vec2) *OrbitControls {
	return &OrbitControls{
		Distance:         10,
		Rotation:         rotation,
		OrbitSensitivity: 1,
		PanSensitivity:   1,
		MinDistance:      0.01,
		MaxDistance:      100000,
		dirty:            true,
	}
}

// Mode returns the interaction of the last Update.
func (c *OrbitControls) Mode() ControlMode { return c.mode }

// SetTarget moves the orbit center.
func (c *OrbitControls) SetTarget(target mgl32.Vec3) {
	c.Target = target
	c.dirty = true
}

// Scroll zooms in for positive steps and out for negative ones.
func (c *OrbitControls) Scroll(steps float32) {
	switch {
	case steps > 0:
		c.Distance *= 0.8
	case steps < 0:
		c.Distance *= 1.2
	default:
		return
	}
	c.Distance = mgl32.Clamp(c.Distance, c.MinDistance, c.MaxDistance)
	c.dirty = true
}

// FitBounds centers the target on a bounding box and backs off to see it.
func (c *OrbitControls) FitBounds(min, max mgl32.Vec3) {
	c.Target = min.Add(max).Mul(0.5)
	radius := max.Sub(min).Len() / 2
	if radius <= 0 {
		radius = 1
	}
	c.Distance = mgl32.Clamp(radius*2.5, c.MinDistance, c.MaxDistance)
	c.dirty = true
}

// Update applies one frame of mouse state and writes the camera transform
// when anything changed. Once a drag has started it keeps its mode until the
// button is released.
func (c *OrbitControls) Update(cam Camera, mouseX, mouseY float32, middleDown, shiftDown bool) {
	dx, dy := float32(0), float32(0)
	if c.started {
		dx, dy = mouseX-c.prevX, mouseY-c.prevY
	}
	c.prevX, c.prevY, c.started = mouseX, mouseY, true

	mode := Idle
	switch {
	case !middleDown:
	case c.mode == Orbit || c.mode == Pan:
		mode = c.mode
	case shiftDown:
		mode = Pan
	default:
		mode = Orbit
	}

	switch mode {
	case Orbit:
		c.Rotation = c.Rotation.Sub(mgl32.Vec2{dy, dx}.Mul(c.OrbitSensitivity * 0.01))
		c.dirty = true
	case Pan:
		scale := c.Distance * c.PanSensitivity * 0.00078
		local := mgl32.Vec3{-dx * scale, dy * scale, 0}
		c.Target = c.Target.Add(cam.ModelMatrix().Mat3().Mul3x1(local))
		c.dirty = true
	}
	c.mode = mode

	if !c.dirty {
		return
	}
	cam.SetModelMatrix(c.Transform())
	c.dirty = false
}

// Transform returns the camera model matrix for the current state.
func (c *OrbitControls) Transform() mgl32.Mat4 {
	return mgl32.Translate3D(c.Target.X(), c.Target.Y(), c.Target.Z()).
		Mul4(mgl32.HomogRotate3DY(c.Rotation.Y())).
		Mul4(mgl32.HomogRotate3DX(c.Rotation.X())).
		Mul4(mgl32.Translate3D(0, 0, c.Distance))
}
