// Package material pairs a shader program with its uniform values.
package material

import (
	"github.com/Faultbox/ron/internal/engine/resource"
	"github.com/Faultbox/ron/internal/engine/uniform"
)

// CullingMode selects which faces are discarded.
type CullingMode int

const (
	CullNone CullingMode = iota
	CullFront
	CullBack
)

func (c CullingMode) String() string {
	switch c {
	case CullNone:
		return "none"
	case CullFront:
		return "front"
	case CullBack:
		return "back"
	}
	return "unknown"
}

// Material is shared by reference between mesh sections.
type Material struct {
	Name     string
	Shader   *resource.ShaderProgram // nil renders with the error shader
	Uniforms uniform.Set
	Culling  CullingMode
}

// New returns a material with back-face culling and no uniforms.
func New(name string, shader *resource.ShaderProgram) *Material {
	return &Material{
		Name:     name,
		Shader:   shader,
		Uniforms: uniform.Set{},
		Culling:  CullBack,
	}
}

// Textures lists the CPU textures referenced by the material's uniforms.
func (m *Material) Textures() []*resource.Texture {
	return m.Uniforms.Textures()
}
