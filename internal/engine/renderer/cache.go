package renderer

import (
	"go.uber.org/zap"

	"github.com/Faultbox/ron/internal/engine/material"
	"github.com/Faultbox/ron/internal/engine/mesh"
	"github.com/Faultbox/ron/internal/engine/resource"
	"github.com/Faultbox/ron/internal/engine/scene"
	"github.com/Faultbox/ron/internal/logger"
)

const preloadHint = "GPU data not found, consider preloading before rendering"

type versioned interface {
	lastUpdate() uint64
}

// getOrRefresh returns the bundle for id, compiling it on a miss and
// recompiling it when the resource advanced past the uploaded version.
// Failed compilations are stored too so they are not retried every frame.
func getOrRefresh[B versioned](
	tab map[resource.ID]B, id resource.ID, updateCount uint64,
	kind, name string, compile func() B, release func(B),
) B {
	b, ok := tab[id]
	if !ok {
		logger.Warn(preloadHint, zap.String("kind", kind), zap.String("name", name))
		b = compile()
		tab[id] = b
		return b
	}
	if updateCount != b.lastUpdate() {
		release(b)
		delete(tab, id)
		b = compile()
		tab[id] = b
	}
	return b
}

func (r *Renderer) programData(p *resource.ShaderProgram) ProgramBundle {
	return getOrRefresh(r.programs, p.ID(), p.UpdateCount(), "shader program", p.Name(),
		func() ProgramBundle { return r.compileProgram(p) },
		func(b ProgramBundle) { releaseProgram(r.dev, b) },
	)
}

func (r *Renderer) compileProgram(p *resource.ShaderProgram) ProgramBundle {
	r.stats.ProgramCompiles++
	return compileProgram(r.dev, p)
}

func (r *Renderer) uploadTexture(t *resource.Texture) TextureBundle {
	r.stats.TextureUploads++
	return uploadTexture(r.dev, t)
}

func (r *Renderer) setupGeometry(g *mesh.Geometry) GeometryBundle {
	r.stats.GeometryUploads++
	return setupGeometry(r.dev, g)
}

// ShaderProgramGPUData returns the program to draw p with. A nil program or
// one that failed to compile resolves to the error shader.
func (r *Renderer) ShaderProgramGPUData(p *resource.ShaderProgram) ProgramBundle {
	if p != nil {
		if b := r.programData(p); b.Program != 0 {
			return b
		}
	}
	return r.programData(r.errorShader)
}

// TextureGPUData returns the uploaded texture, re-uploading it after updates.
func (r *Renderer) TextureGPUData(t *resource.Texture) TextureBundle {
	return getOrRefresh(r.textures, t.ID(), t.UpdateCount(), "texture", t.Name(),
		func() TextureBundle { return r.uploadTexture(t) },
		func(b TextureBundle) { releaseTexture(r.dev, b) },
	)
}

// GeometryGPUData returns the vertex array of a geometry. Geometries are
// immutable, so an existing bundle is never refreshed.
func (r *Renderer) GeometryGPUData(g *mesh.Geometry) GeometryBundle {
	b, ok := r.geometries[g.ID()]
	if !ok {
		logger.Warn(preloadHint, zap.String("kind", "geometry"), zap.Uint64("id", uint64(g.ID())))
		b = r.setupGeometry(g)
		r.geometries[g.ID()] = b
	}
	return b
}

// DirectionalLightGPUData returns the shadow map of the scene's light. The
// bundle follows the scene's light update count.
func (r *Renderer) DirectionalLightGPUData(s *scene.Scene) LightBundle {
	light := s.DirectionalLight()
	count := s.LightUpdateCount()
	return getOrRefresh(r.lights, s.ID(), count, "directional light", "",
		func() LightBundle { return setupLight(r.dev, light, count) },
		func(b LightBundle) { releaseLight(r.dev, b) },
	)
}

// PreloadProgram compiles p if it has no GPU data yet.
func (r *Renderer) PreloadProgram(p *resource.ShaderProgram) {
	if p == nil {
		return
	}
	if _, ok := r.programs[p.ID()]; !ok {
		r.programs[p.ID()] = r.compileProgram(p)
	}
}

// PreloadTexture uploads t if it has no GPU data yet.
func (r *Renderer) PreloadTexture(t *resource.Texture) {
	if t == nil {
		return
	}
	if _, ok := r.textures[t.ID()]; !ok {
		r.textures[t.ID()] = r.uploadTexture(t)
	}
}

// PreloadGeometry uploads g if it has no GPU data yet.
func (r *Renderer) PreloadGeometry(g *mesh.Geometry) {
	if g == nil {
		return
	}
	if _, ok := r.geometries[g.ID()]; !ok {
		r.geometries[g.ID()] = r.setupGeometry(g)
	}
}

// PreloadMaterial compiles the material's program and uploads its textures.
func (r *Renderer) PreloadMaterial(m *material.Material) {
	if m == nil {
		return
	}
	r.PreloadProgram(m.Shader)
	for _, t := range m.Textures() {
		r.PreloadTexture(t)
	}
}

// PreloadNode uploads everything the node's mesh sections reference.
func (r *Renderer) PreloadNode(n *mesh.Node) {
	if n == nil || n.Mesh() == nil {
		return
	}
	for _, sec := range n.Mesh().Sections {
		r.PreloadGeometry(sec.Geometry)
		r.PreloadMaterial(sec.Material)
	}
	for _, t := range n.Uniforms.Textures() {
		r.PreloadTexture(t)
	}
}

// Preload creates GPU data for everything a scene will draw so the first
// frame does not compile on demand.
func (r *Renderer) Preload(s *scene.Scene) {
	r.syncScene(s)

	r.PreloadMaterial(s.DefaultMaterial)
	for _, t := range s.Globals.Textures() {
		r.PreloadTexture(t)
	}
	if _, ok := r.lights[s.ID()]; !ok {
		r.lights[s.ID()] = setupLight(r.dev, s.DirectionalLight(), s.LightUpdateCount())
	}
	for _, n := range s.Nodes() {
		r.PreloadNode(n)
	}
}

// syncScene tracks which scene the geometry table belongs to. Geometry
// bundles of nodes that left the scene are released when its generation
// advances. Switching scenes releases the light bundles of every other scene.
func (r *Renderer) syncScene(s *scene.Scene) {
	switch {
	case r.sceneID == 0:
	case r.sceneID != s.ID():
		logger.Error("rendering a scene whose GPU data belongs to another scene",
			zap.Uint64("bound", uint64(r.sceneID)),
			zap.Uint64("scene", uint64(s.ID())),
		)
		r.pruneLights(s)
	case r.generation != s.Generation():
		r.pruneGeometries(s)
	}
	r.sceneID = s.ID()
	r.generation = s.Generation()
}

func (r *Renderer) pruneGeometries(s *scene.Scene) {
	live := make(map[resource.ID]bool)
	for _, g := range s.Geometries() {
		live[g.ID()] = true
	}
	for id, b := range r.geometries {
		if live[id] {
			continue
		}
		releaseGeometry(r.dev, b)
		delete(r.geometries, id)
	}
}

func (r *Renderer) pruneLights(s *scene.Scene) {
	for id, b := range r.lights {
		if id == s.ID() {
			continue
		}
		releaseLight(r.dev, b)
		delete(r.lights, id)
	}
}
