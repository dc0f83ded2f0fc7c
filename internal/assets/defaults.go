package assets

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/ron/internal/engine/material"
	"github.com/Faultbox/ron/internal/engine/resource"
	"github.com/Faultbox/ron/internal/engine/uniform"
)

// Built-in textures.
const (
	WhiteTexture  = "default/textures/white.png"
	NormalTexture = "default/textures/normal.png"
)

// Material uniform names used by the default shading model.
const (
	UniformAlbedoTexture            = "albedo_tex"
	UniformNormalTexture            = "normal_tex"
	UniformMetallicRoughnessTexture = "metallic_roughness_tex"
	UniformAlbedoColor              = "albedo_color"
	UniformMetallicFactor           = "metallic_factor"
	UniformRoughnessFactor          = "roughness_factor"
)

// NewBlinnPhongMaterial returns a Blinn-Phong material with neutral
// textures: white albedo, a flat normal map and full metallic-roughness.
func (l *Library) NewBlinnPhongMaterial(name string) *material.Material {
	m := material.New(name, l.LoadShaderProgram(BlinnPhongVertexShader, BlinnPhongFragmentShader))
	m.Uniforms[UniformAlbedoTexture] = uniform.TextureValue(l.LoadColorTexture(WhiteTexture))
	m.Uniforms[UniformNormalTexture] = uniform.TextureValue(l.LoadDataTexture(NormalTexture, resource.ChannelsAutomatic))
	m.Uniforms[UniformMetallicRoughnessTexture] = uniform.TextureValue(l.LoadDataTexture(WhiteTexture, resource.ChannelsAutomatic))
	m.Uniforms[UniformAlbedoColor] = uniform.Vec4(mgl32.Vec4{1, 1, 1, 1})
	m.Uniforms[UniformMetallicFactor] = uniform.Float(0)
	m.Uniforms[UniformRoughnessFactor] = uniform.Float(0.5)
	return m
}

// DefaultMaterial returns the shared material for sections that have none.
func (l *Library) DefaultMaterial() *material.Material {
	if l.defaultMaterial == nil {
		l.defaultMaterial = l.NewBlinnPhongMaterial("default")
	}
	return l.defaultMaterial
}
