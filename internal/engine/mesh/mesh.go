package mesh

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/ron/internal/engine/material"
	"github.com/Faultbox/ron/internal/engine/resource"
	"github.com/Faultbox/ron/internal/engine/uniform"
)

// Section draws one geometry with one material. A nil Material means the
// scene's default material.
type Section struct {
	Geometry *Geometry
	Material *material.Material
}

// Mesh is an ordered list of sections; order is draw order.
type Mesh struct {
	Name     string
	Sections []Section
}

// Node places a shared mesh in the world.
type Node struct {
	id     resource.ID
	mesh   *Mesh
	model  mgl32.Mat4
	normal mgl32.Mat3

	// Uniforms are per-node values with the highest binding precedence.
	Uniforms uniform.Set
}

// NewNode creates a node at the given model transform.
func NewNode(m *Mesh, model mgl32.Mat4) *Node {
	n := &Node{id: resource.NewID(), mesh: m, Uniforms: uniform.Set{}}
	n.SetModelMatrix(model)
	return n
}

func (n *Node) ID() resource.ID { return n.id }
func (n *Node) Mesh() *Mesh     { return n.mesh }

// ModelMatrix returns the local to world transform.
func (n *Node) ModelMatrix() mgl32.Mat4 { return n.model }

// NormalMatrix returns the matrix transforming normals to world space.
func (n *Node) NormalMatrix() mgl32.Mat3 { return n.normal }

// SetModelMatrix sets the transform and recomputes the normal matrix.
func (n *Node) SetModelMatrix(m mgl32.Mat4) {
	n.model = m
	n.normal = NormalMatrix(m)
}

// NormalMatrix is transpose(inverse(upper 3x3 of m)). A singular matrix
// yields the zero matrix.
func NormalMatrix(m mgl32.Mat4) mgl32.Mat3 {
	return m.Mat3().Inv().Transpose()
}
