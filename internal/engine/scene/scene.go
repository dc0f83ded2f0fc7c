// Package scene holds the flat list of mesh nodes rendered each frame along
// with the default material, global uniforms and the directional light.
package scene

import (
	"slices"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/ron/internal/engine/lighting"
	"github.com/Faultbox/ron/internal/engine/material"
	"github.com/Faultbox/ron/internal/engine/mesh"
	"github.com/Faultbox/ron/internal/engine/resource"
	"github.com/Faultbox/ron/internal/engine/uniform"
)

// Scene is not safe for concurrent use; mutate it between frames only.
type Scene struct {
	id    resource.ID
	nodes []*mesh.Node

	// DefaultMaterial is used for sections without a material.
	DefaultMaterial *material.Material
	// Globals are bound after render-cycle uniforms and before material uniforms.
	Globals   uniform.Set
	DepthTest bool

	light        *lighting.DirectionalLight
	lightUpdates uint64
	generation   uint64
}

// New creates an empty scene with depth testing and the default light.
func New(defaultMaterial *material.Material) *Scene {
	return &Scene{
		id:              resource.NewID(),
		DefaultMaterial: defaultMaterial,
		Globals:         uniform.Set{},
		DepthTest:       true,
		light:           lighting.NewDirectionalLight(),
	}
}

func (s *Scene) ID() resource.ID { return s.id }

// Nodes returns the nodes in insertion order, which is also draw order.
// The slice must not be modified.
func (s *Scene) Nodes() []*mesh.Node { return s.nodes }

// Generation increases whenever nodes are added or removed.
func (s *Scene) Generation() uint64 { return s.generation }

// Add appends nodes.
func (s *Scene) Add(nodes ...*mesh.Node) {
	if len(nodes) == 0 {
		return
	}
	s.nodes = append(s.nodes, nodes...)
	s.generation++
}

// AddScene appends every node of other. other's light and materials are ignored.
func (s *Scene) AddScene(other *Scene) {
	s.Add(other.nodes...)
}

// Remove deletes the first occurrence of node and reports whether it was found.
func (s *Scene) Remove(node *mesh.Node) bool {
	i := slices.Index(s.nodes, node)
	if i < 0 {
		return false
	}
	s.nodes = slices.Delete(s.nodes, i, i+1)
	s.generation++
	return true
}

// Clear removes all nodes.
func (s *Scene) Clear() {
	if len(s.nodes) == 0 {
		return
	}
	s.nodes = nil
	s.generation++
}

// DirectionalLight returns the scene light. Changes made through the pointer
// are not noticed by the renderer; use SetDirectionalLight.
func (s *Scene) DirectionalLight() *lighting.DirectionalLight { return s.light }

// SetDirectionalLight replaces the light and bumps LightUpdateCount.
func (s *Scene) SetDirectionalLight(l *lighting.DirectionalLight) {
	s.light = l
	s.lightUpdates++
}

// LightUpdateCount is the version of the scene light.
func (s *Scene) LightUpdateCount() uint64 { return s.lightUpdates }

// Geometries returns every distinct geometry in draw order.
func (s *Scene) Geometries() []*mesh.Geometry {
	seen := make(map[resource.ID]bool)
	var out []*mesh.Geometry
	for _, n := range s.nodes {
		if n.Mesh() == nil {
			continue
		}
		for _, sec := range n.Mesh().Sections {
			if sec.Geometry == nil || seen[sec.Geometry.ID()] {
				continue
			}
			seen[sec.Geometry.ID()] = true
			out = append(out, sec.Geometry)
		}
	}
	return out
}

// Materials returns the default material followed by every distinct section
// material in draw order.
func (s *Scene) Materials() []*material.Material {
	var out []*material.Material
	add := func(m *material.Material) {
		if m != nil && !slices.Contains(out, m) {
			out = append(out, m)
		}
	}
	add(s.DefaultMaterial)
	for _, n := range s.nodes {
		if n.Mesh() == nil {
			continue
		}
		for _, sec := range n.Mesh().Sections {
			add(sec.Material)
		}
	}
	return out
}

// Textures returns every distinct texture referenced by materials and globals.
func (s *Scene) Textures() []*resource.Texture {
	var out []*resource.Texture
	add := func(ts []*resource.Texture) {
		for _, t := range ts {
			if !slices.Contains(out, t) {
				out = append(out, t)
			}
		}
	}
	add(s.Globals.Textures())
	for _, m := range s.Materials() {
		add(m.Textures())
	}
	return out
}

// Bounds returns the world-space axis aligned box around every vertex in the
// scene. ok is false for a scene without geometry.
func (s *Scene) Bounds() (min, max mgl32.Vec3, ok bool) {
	for _, n := range s.nodes {
		if n.Mesh() == nil {
			continue
		}
		model := n.ModelMatrix()
		for _, sec := range n.Mesh().Sections {
			if sec.Geometry == nil {
				continue
			}
			for _, p := range sec.Geometry.Positions() {
				w := model.Mul4x1(p.Vec4(1)).Vec3()
				if !ok {
					min, max, ok = w, w, true
					continue
				}
				for i := 0; i < 3; i++ {
					if w[i] < min[i] {
						min[i] = w[i]
					}
					if w[i] > max[i] {
						max[i] = w[i]
					}
				}
			}
		}
	}
	return min, max, ok
}
