// Package lighting describes the scene's directional light and its shadow.
package lighting

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Shadow configures the directional light's shadow map.
type Shadow struct {
	Enabled bool
	// MapSize is the width and height of the depth texture in texels.
	MapSize int32
	// FrustumSize is half the side of the square orthographic light volume.
	FrustumSize float32
	Near        float32
	Far         float32
	Bias        float32
}

// DefaultShadow returns a disabled 1024x1024 shadow covering 200x200 units.
func DefaultShadow() Shadow {
	return Shadow{
		Enabled:     false,
		MapSize:     1024,
		FrustumSize: 100,
		Near:        0.5,
		Far:         500,
		Bias:        0.05,
	}
}

// DirectionalLight is a light infinitely far away.
type DirectionalLight struct {
	// Direction points from the scene towards the light.
	Direction mgl32.Vec3
	// Position is the eye of the shadow projection.
	Position  mgl32.Vec3
	Intensity float32
	Shadow    Shadow
}

// NewDirectionalLight returns the default light: high, slightly to the side.
func NewDirectionalLight() *DirectionalLight {
	return &DirectionalLight{
		Direction: mgl32.Vec3{4.1, 5.9, -1.0}.Normalize(),
		Position:  mgl32.Vec3{0, 10, 0},
		Intensity: 1,
		Shadow:    DefaultShadow(),
	}
}

// ViewMatrix looks from Position along -Direction with +Y up.
func (l *DirectionalLight) ViewMatrix() mgl32.Mat4 {
	up := mgl32.Vec3{0, 1, 0}
	// +Y is parallel to a vertical light; any horizontal up works then.
	if dir := l.Direction.Normalize(); mgl32.Abs(dir.Y()) > 0.999 {
		up = mgl32.Vec3{0, 0, 1}
	}
	return mgl32.LookAtV(l.Position, l.Position.Sub(l.Direction), up)
}

// ProjectionMatrix is the orthographic shadow volume.
func (l *DirectionalLight) ProjectionMatrix() mgl32.Mat4 {
	fs := l.Shadow.FrustumSize
	return mgl32.Ortho(-fs, fs, -fs, fs, l.Shadow.Near, l.Shadow.Far)
}

// LightSpaceMatrix maps world positions into shadow clip space.
func (l *DirectionalLight) LightSpaceMatrix() mgl32.Mat4 {
	return l.ProjectionMatrix().Mul4(l.ViewMatrix())
}
