// Package mesh describes renderable geometry and its placement in a scene.
package mesh

import (
	"fmt"
	"slices"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/ron/internal/engine/resource"
)

// Attribute locations shared by every shader.
const (
	PositionLocation = 0
	NormalLocation   = 1
	UVLocation       = 2
	TangentLocation  = 3
)

// GeometryData is the raw vertex data of a geometry. Normals, UVs and
// tangents are optional but must match the position count when present.
type GeometryData struct {
	Positions []mgl32.Vec3
	Normals   []mgl32.Vec3
	UVs       []mgl32.Vec2
	Tangents  []mgl32.Vec4
	Indices   []uint32
}

// Validate checks attribute counts and index bounds.
func (d GeometryData) Validate() error {
	n := len(d.Positions)
	if n == 0 {
		return fmt.Errorf("geometry has no positions")
	}
	if len(d.Normals) != 0 && len(d.Normals) != n {
		return fmt.Errorf("normal count %d does not match position count %d", len(d.Normals), n)
	}
	if len(d.UVs) != 0 && len(d.UVs) != n {
		return fmt.Errorf("uv count %d does not match position count %d", len(d.UVs), n)
	}
	if len(d.Tangents) != 0 && len(d.Tangents) != n {
		return fmt.Errorf("tangent count %d does not match position count %d", len(d.Tangents), n)
	}
	if len(d.Indices)%3 != 0 {
		return fmt.Errorf("index count %d is not a multiple of 3", len(d.Indices))
	}
	for i, idx := range d.Indices {
		if int(idx) >= n {
			return fmt.Errorf("index %d at %d out of range (%d vertices)", idx, i, n)
		}
	}
	return nil
}

// Geometry is immutable after construction. It has no update count, so the
// renderer uploads it once and keeps it until it leaves the scene.
type Geometry struct {
	id   resource.ID
	data GeometryData
}

// NewGeometry validates d and copies its slices, so later changes to d do
// not reach the geometry.
func NewGeometry(d GeometryData) (*Geometry, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}
	return &Geometry{id: resource.NewID(), data: d.clone()}, nil
}

func (d GeometryData) clone() GeometryData {
	return GeometryData{
		Positions: slices.Clone(d.Positions),
		Normals:   slices.Clone(d.Normals),
		UVs:       slices.Clone(d.UVs),
		Tangents:  slices.Clone(d.Tangents),
		Indices:   slices.Clone(d.Indices),
	}
}

// MustGeometry is NewGeometry for static data known to be valid.
func MustGeometry(d GeometryData) *Geometry {
	g, err := NewGeometry(d)
	if err != nil {
		panic(err)
	}
	return g
}

func (g *Geometry) ID() resource.ID         { return g.id }
func (g *Geometry) Positions() []mgl32.Vec3 { return g.data.Positions }
func (g *Geometry) Normals() []mgl32.Vec3   { return g.data.Normals }
func (g *Geometry) UVs() []mgl32.Vec2       { return g.data.UVs }
func (g *Geometry) Tangents() []mgl32.Vec4  { return g.data.Tangents }
func (g *Geometry) Indices() []uint32       { return g.data.Indices }
func (g *Geometry) VertexCount() int        { return len(g.data.Positions) }
func (g *Geometry) IndexCount() int         { return len(g.data.Indices) }
func (g *Geometry) Data() GeometryData      { return g.data.clone() }
