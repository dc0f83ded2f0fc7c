package renderer

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/ron/internal/engine/camera"
	"github.com/Faultbox/ron/internal/engine/gpu"
	"github.com/Faultbox/ron/internal/engine/lighting"
	"github.com/Faultbox/ron/internal/engine/material"
	"github.com/Faultbox/ron/internal/engine/mesh"
	"github.com/Faultbox/ron/internal/engine/resource"
	"github.com/Faultbox/ron/internal/engine/scene"
	"github.com/Faultbox/ron/internal/engine/uniform"
)

// Uniforms set by the renderer.
const (
	UniformViewMatrix           = "view_matrix"
	UniformProjectionMatrix     = "projection_matrix"
	UniformViewProjectionMatrix = "view_projection_matrix"
	UniformCameraWorldPosition  = "camera_world_position"
	UniformLightSpaceMatrix     = "light_space_matrix"
	UniformShadowMap            = "shadow_map"
	UniformModelMatrix          = "model_matrix"
	UniformNormalMatrix         = "normal_local_to_world_matrix"
	UniformLightDirection       = "light_direction"
	UniformLightIntensity       = "light_intensity"
	UniformShadowsEnabled       = "shadows_enabled"
	UniformShadowBias           = "shadow_bias"
)

// fallbackMaterial draws sections when neither the section nor the scene
// has a material.
var fallbackMaterial = material.New("fallback", nil)

// Render draws one frame: the shadow map when the scene's light casts
// shadows, then every mesh section in insertion order, then the enabled
// overlays. Resource failures are logged and drawn with fallbacks.
func (r *Renderer) Render(s *scene.Scene, cam camera.Camera) {
	r.syncScene(s)
	r.stats.DrawCalls = 0
	r.stats.ShadowDrawCalls = 0

	light := s.DirectionalLight()
	lightData := r.DirectionalLightGPUData(s)
	shadows := light.Shadow.Enabled && lightData.Framebuffer != 0

	cycle := uniform.Set{}
	lightSpace := mgl32.Ident4()
	if shadows {
		lightSpace = light.LightSpaceMatrix()
		r.shadowPass(s, light, lightData, lightSpace)
	}

	r.dev.Viewport(0, 0, r.width, r.height)
	if s.DepthTest {
		r.dev.Enable(gpu.DepthTest)
	} else {
		r.dev.Disable(gpu.DepthTest)
	}
	if r.AutoClear {
		r.Clear()
	}

	view := camera.ViewMatrix(cam)
	projection := cam.ProjectionMatrix()
	cycle[UniformViewMatrix] = uniform.Mat4Value(view)
	cycle[UniformProjectionMatrix] = uniform.Mat4Value(projection)
	cycle[UniformViewProjectionMatrix] = uniform.Mat4Value(projection.Mul4(view))
	cycle[UniformCameraWorldPosition] = uniform.Vec3(camera.WorldPosition(cam))
	cycle[UniformLightDirection] = uniform.Vec3(light.Direction.Normalize())
	cycle[UniformLightIntensity] = uniform.Float(light.Intensity)
	cycle[UniformShadowsEnabled] = uniform.Int(0)
	if shadows {
		cycle[UniformLightSpaceMatrix] = uniform.Mat4Value(lightSpace)
		cycle[UniformShadowMap] = uniform.GPUTextureValue(lightData.ShadowMap)
		cycle[UniformShadowsEnabled] = uniform.Int(1)
		cycle[UniformShadowBias] = uniform.Float(light.Shadow.Bias)
	}

	for _, n := range s.Nodes() {
		if n.Mesh() == nil {
			continue
		}
		nodeUniforms := uniform.Merge(n.Uniforms, uniform.Set{
			UniformModelMatrix:  uniform.Mat4Value(n.ModelMatrix()),
			UniformNormalMatrix: uniform.Mat3Value(n.NormalMatrix()),
		})

		for _, sec := range n.Mesh().Sections {
			if sec.Geometry == nil {
				continue
			}
			mat := effectiveMaterial(s, sec)
			r.applyCulling(mat.Culling)

			prog := r.ShaderProgramGPUData(mat.Shader)
			r.dev.UseProgram(prog.Program)
			r.bindUniforms(prog.Program, uniform.Merge(cycle, s.Globals, mat.Uniforms, nodeUniforms))

			r.drawGeometry(sec.Geometry)
			r.stats.DrawCalls++

			r.dev.ActiveTexture(0)
			r.dev.BindTexture(0)
			r.dev.UseProgram(0)
		}
	}

	if r.RenderAxes && r.axes != nil {
		r.drawOverlay(r.axesShader, r.axes, cycle)
	}
	if r.RenderGrid && r.grid != nil {
		r.drawOverlay(r.gridShader, r.grid, cycle)
	}
}

// shadowPass renders depth from the light into its shadow map.
func (r *Renderer) shadowPass(s *scene.Scene, light *lighting.DirectionalLight, data LightBundle, lightSpace mgl32.Mat4) {
	size := light.Shadow.MapSize
	r.dev.Viewport(0, 0, size, size)
	r.dev.BindFramebuffer(data.Framebuffer)
	r.dev.Clear(gpu.ClearDepthBuffer)
	r.dev.Enable(gpu.DepthTest)

	prog := r.ShaderProgramGPUData(r.depthShader)
	r.dev.UseProgram(prog.Program)
	r.bindUniforms(prog.Program, uniform.Set{
		UniformViewProjectionMatrix: uniform.Mat4Value(lightSpace),
	})

	for _, n := range s.Nodes() {
		if n.Mesh() == nil {
			continue
		}
		model := uniform.Set{UniformModelMatrix: uniform.Mat4Value(n.ModelMatrix())}
		for _, sec := range n.Mesh().Sections {
			if sec.Geometry == nil {
				continue
			}
			r.applyCulling(effectiveMaterial(s, sec).Culling)
			r.bindUniforms(prog.Program, model)
			r.drawGeometry(sec.Geometry)
			r.stats.ShadowDrawCalls++
		}
	}

	r.dev.UseProgram(0)
	r.dev.BindFramebuffer(0)
}

func effectiveMaterial(s *scene.Scene, sec mesh.Section) *material.Material {
	switch {
	case sec.Material != nil:
		return sec.Material
	case s.DefaultMaterial != nil:
		return s.DefaultMaterial
	}
	return fallbackMaterial
}

func (r *Renderer) applyCulling(mode material.CullingMode) {
	switch mode {
	case material.CullFront:
		r.dev.Enable(gpu.CullFace)
		r.dev.CullFace(gpu.FaceFront)
	case material.CullBack:
		r.dev.Enable(gpu.CullFace)
		r.dev.CullFace(gpu.FaceBack)
	default:
		r.dev.Disable(gpu.CullFace)
	}
}

// drawGeometry issues one indexed triangle draw with blending off.
func (r *Renderer) drawGeometry(g *mesh.Geometry) {
	data := r.GeometryGPUData(g)
	r.dev.Disable(gpu.Blend)
	r.dev.BindVertexArray(data.VertexArray)
	r.dev.DrawElements(gpu.Triangles, data.IndexCount)
	r.dev.BindVertexArray(0)
}

// drawOverlay draws a static line overlay with alpha blending. Only the
// render-cycle uniforms are bound.
func (r *Renderer) drawOverlay(p *resource.ShaderProgram, o *overlay, cycle uniform.Set) {
	prog := r.ShaderProgramGPUData(p)
	r.dev.Enable(gpu.Blend)
	r.dev.BlendFunc(gpu.BlendSrcAlpha, gpu.BlendOneMinusSrcAlpha)
	r.dev.UseProgram(prog.Program)
	r.bindUniforms(prog.Program, cycle)
	o.draw(r.dev)
	r.dev.UseProgram(0)
}
