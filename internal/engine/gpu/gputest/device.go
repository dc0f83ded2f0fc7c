// Package gputest provides a recording gpu.Device for tests that run without
// a graphics context.
package gputest

import (
	"errors"
	"fmt"
	"maps"
	"strings"

	"github.com/Faultbox/ron/internal/engine/gpu"
)

// Uniform is the last value uploaded to a uniform location.
type Uniform struct {
	Floats     []float32
	Ints       []int32
	Uints      []uint32
	Cols, Rows int
}

// Draw is a snapshot of the pipeline state at a draw call.
type Draw struct {
	Mode        gpu.Primitive
	Indexed     bool
	First       int32
	Count       int32
	Program     gpu.Program
	VertexArray gpu.VertexArray
	Framebuffer gpu.Framebuffer
	Uniforms    map[string]Uniform
	Textures    map[int]gpu.Texture
	DepthTest   bool
	Blend       bool
	Culling     bool
	CullFace    gpu.Face
	LineWidth   float32
}

// Clear records a Clear call.
type Clear struct {
	Mask        gpu.ClearMask
	Color       [4]float32
	SRGB        bool
	Framebuffer gpu.Framebuffer
}

type program struct {
	stages    []string
	locations map[string]int32
	names     map[int32]string
	values    map[string]Uniform
}

// Device records every call. The zero value is not usable; call New.
type Device struct {
	// CompileError returns a non-empty compiler log to make a stage fail.
	// When nil, sources without a main function fail.
	CompileError func(stage gpu.ShaderStage, source string) string
	// LinkError returns a non-empty linker log to make linking fail.
	LinkError func(sources []string) string
	// IncompleteFramebuffers makes CreateDepthFramebuffer fail.
	IncompleteFramebuffers bool

	Calls     []string
	Draws     []Draw
	Clears    []Clear
	Viewports [][4]int32
	Textures  map[gpu.Texture]gpu.TextureDesc

	next     uint32
	live     map[string]map[uint32]bool
	shaders  map[gpu.Shader]string
	programs map[gpu.Program]*program

	current    gpu.Program
	vao        gpu.VertexArray
	fbo        gpu.Framebuffer
	unit       int
	units      map[int]gpu.Texture
	enabled    map[gpu.Capability]bool
	face       gpu.Face
	clearColor [4]float32
	lineWidth  float32
}

var _ gpu.Device = (*Device)(nil)

// New returns an empty recording device.
func New() *Device {
	return &Device{
		Textures:  make(map[gpu.Texture]gpu.TextureDesc),
		live:      make(map[string]map[uint32]bool),
		shaders:   make(map[gpu.Shader]string),
		programs:  make(map[gpu.Program]*program),
		units:     make(map[int]gpu.Texture),
		enabled:   make(map[gpu.Capability]bool),
		lineWidth: 1,
	}
}

func (d *Device) record(format string, args ...any) {
	d.Calls = append(d.Calls, fmt.Sprintf(format, args...))
}

func (d *Device) alloc(kind string) uint32 {
	d.next++
	if d.live[kind] == nil {
		d.live[kind] = make(map[uint32]bool)
	}
	d.live[kind][d.next] = true
	return d.next
}

func (d *Device) free(kind string, h uint32) {
	if h == 0 {
		return
	}
	if !d.live[kind][h] {
		panic(fmt.Sprintf("gputest: %s %d freed twice or never allocated", kind, h))
	}
	delete(d.live[kind], h)
}

// Count returns how many recorded calls start with op.
func (d *Device) Count(op string) int {
	n := 0
	for _, c := range d.Calls {
		if c == op || strings.HasPrefix(c, op+" ") {
			n++
		}
	}
	return n
}

// Live returns the number of allocated, not yet deleted objects of a kind:
// "shader", "program", "texture", "buffer", "vertex array" or "framebuffer".
func (d *Device) Live(kind string) int {
	return len(d.live[kind])
}

// Enabled reports the current state of a capability.
func (d *Device) Enabled(c gpu.Capability) bool { return d.enabled[c] }

// Reset forgets recorded calls, draws, clears and viewports but keeps objects alive.
func (d *Device) Reset() {
	d.Calls = nil
	d.Draws = nil
	d.Clears = nil
	d.Viewports = nil
}

// ProgramSources returns the stage sources a program was linked from.
func (d *Device) ProgramSources(p gpu.Program) []string {
	if prog, ok := d.programs[p]; ok {
		return prog.stages
	}
	return nil
}

func (d *Device) CompileShader(stage gpu.ShaderStage, source string) (gpu.Shader, error) {
	d.record("CompileShader %s", stage)
	h := gpu.Shader(d.alloc("shader"))
	var log string
	if d.CompileError != nil {
		log = d.CompileError(stage, source)
	} else if !strings.Contains(source, "void main") {
		log = "0:1: error: missing main function"
	}
	if log != "" {
		d.free("shader", uint32(h))
		return 0, errors.New(log)
	}
	d.shaders[h] = source
	return h, nil
}

func (d *Device) DeleteShader(s gpu.Shader) {
	d.record("DeleteShader %d", s)
	d.free("shader", uint32(s))
	delete(d.shaders, s)
}

func (d *Device) LinkProgram(stages ...gpu.Shader) (gpu.Program, error) {
	d.record("LinkProgram")
	h := gpu.Program(d.alloc("program"))
	sources := make([]string, 0, len(stages))
	for _, s := range stages {
		sources = append(sources, d.shaders[s])
	}
	d.programs[h] = &program{
		stages:    sources,
		locations: make(map[string]int32),
		names:     make(map[int32]string),
		values:    make(map[string]Uniform),
	}
	if d.LinkError != nil {
		if log := d.LinkError(sources); log != "" {
			return h, errors.New(log)
		}
	}
	return h, nil
}

func (d *Device) DeleteProgram(p gpu.Program) {
	d.record("DeleteProgram %d", p)
	d.free("program", uint32(p))
	delete(d.programs, p)
}

func (d *Device) UseProgram(p gpu.Program) {
	d.record("UseProgram %d", p)
	d.current = p
}

func (d *Device) UniformLocation(p gpu.Program, name string) int32 {
	prog, ok := d.programs[p]
	if !ok {
		return -1
	}
	if loc, ok := prog.locations[name]; ok {
		return loc
	}
	loc := int32(len(prog.locations))
	prog.locations[name] = loc
	prog.names[loc] = name
	return loc
}

func (d *Device) setUniform(loc int32, u Uniform) {
	prog, ok := d.programs[d.current]
	if !ok || loc < 0 {
		return
	}
	name, ok := prog.names[loc]
	if !ok {
		return
	}
	prog.values[name] = u
}

func (d *Device) UniformFloat(loc int32, v ...float32) {
	d.record("UniformFloat %d", loc)
	d.setUniform(loc, Uniform{Floats: append([]float32(nil), v...)})
}

func (d *Device) UniformInt(loc int32, v ...int32) {
	d.record("UniformInt %d", loc)
	d.setUniform(loc, Uniform{Ints: append([]int32(nil), v...)})
}

func (d *Device) UniformUint(loc int32, v ...uint32) {
	d.record("UniformUint %d", loc)
	d.setUniform(loc, Uniform{Uints: append([]uint32(nil), v...)})
}

func (d *Device) UniformMatrix(loc int32, cols, rows int, v []float32) {
	d.record("UniformMatrix %d", loc)
	d.setUniform(loc, Uniform{Floats: append([]float32(nil), v...), Cols: cols, Rows: rows})
}

func (d *Device) CreateTexture(desc gpu.TextureDesc, pixels []byte) gpu.Texture {
	d.record("CreateTexture")
	h := gpu.Texture(d.alloc("texture"))
	d.Textures[h] = desc
	return h
}

func (d *Device) CreateDepthTexture(size int32) gpu.Texture {
	d.record("CreateDepthTexture %d", size)
	h := gpu.Texture(d.alloc("texture"))
	d.Textures[h] = gpu.TextureDesc{
		Width: size, Height: size,
		WrapS: gpu.WrapClampToBorder, WrapT: gpu.WrapClampToBorder,
		MinFilter: gpu.FilterNearest, MagFilter: gpu.FilterNearest,
	}
	return h
}

func (d *Device) DeleteTexture(t gpu.Texture) {
	d.record("DeleteTexture %d", t)
	d.free("texture", uint32(t))
	delete(d.Textures, t)
}

func (d *Device) ActiveTexture(unit int) {
	d.record("ActiveTexture %d", unit)
	d.unit = unit
}

func (d *Device) BindTexture(t gpu.Texture) {
	d.record("BindTexture %d", t)
	if t == 0 {
		delete(d.units, d.unit)
		return
	}
	d.units[d.unit] = t
}

func (d *Device) CreateVertexArray() gpu.VertexArray {
	d.record("CreateVertexArray")
	return gpu.VertexArray(d.alloc("vertex array"))
}

func (d *Device) BindVertexArray(v gpu.VertexArray) {
	d.record("BindVertexArray %d", v)
	d.vao = v
}

func (d *Device) DeleteVertexArray(v gpu.VertexArray) {
	d.record("DeleteVertexArray %d", v)
	d.free("vertex array", uint32(v))
}

func (d *Device) CreateVertexBuffer(data []float32) gpu.Buffer {
	d.record("CreateVertexBuffer %d", len(data))
	return gpu.Buffer(d.alloc("buffer"))
}

func (d *Device) CreateIndexBuffer(data []uint32) gpu.Buffer {
	d.record("CreateIndexBuffer %d", len(data))
	return gpu.Buffer(d.alloc("buffer"))
}

func (d *Device) DeleteBuffer(b gpu.Buffer) {
	d.record("DeleteBuffer %d", b)
	d.free("buffer", uint32(b))
}

func (d *Device) VertexAttrib(location uint32, components int32) {
	d.record("VertexAttrib %d %d", location, components)
}

func (d *Device) CreateDepthFramebuffer(depth gpu.Texture) (gpu.Framebuffer, error) {
	d.record("CreateDepthFramebuffer %d", depth)
	if d.IncompleteFramebuffers {
		return 0, errors.New("framebuffer incomplete: 0x8cd6")
	}
	return gpu.Framebuffer(d.alloc("framebuffer")), nil
}

func (d *Device) BindFramebuffer(f gpu.Framebuffer) {
	d.record("BindFramebuffer %d", f)
	d.fbo = f
}

func (d *Device) DeleteFramebuffer(f gpu.Framebuffer) {
	d.record("DeleteFramebuffer %d", f)
	d.free("framebuffer", uint32(f))
}

func (d *Device) Enable(c gpu.Capability) {
	d.record("Enable %d", c)
	d.enabled[c] = true
}

func (d *Device) Disable(c gpu.Capability) {
	d.record("Disable %d", c)
	d.enabled[c] = false
}

func (d *Device) CullFace(f gpu.Face) {
	d.record("CullFace %d", f)
	d.face = f
}

func (d *Device) BlendFunc(src, dst gpu.BlendFactor) {
	d.record("BlendFunc %d %d", src, dst)
}

func (d *Device) LineWidth(w float32) {
	d.record("LineWidth %g", w)
	d.lineWidth = w
}

func (d *Device) Viewport(x, y, width, height int32) {
	d.record("Viewport %d %d %d %d", x, y, width, height)
	d.Viewports = append(d.Viewports, [4]int32{x, y, width, height})
}

func (d *Device) ClearColor(r, g, b, a float32) {
	d.record("ClearColor")
	d.clearColor = [4]float32{r, g, b, a}
}

func (d *Device) Clear(mask gpu.ClearMask) {
	d.record("Clear %d", mask)
	d.Clears = append(d.Clears, Clear{
		Mask:        mask,
		Color:       d.clearColor,
		SRGB:        d.enabled[gpu.FramebufferSRGB],
		Framebuffer: d.fbo,
	})
}

func (d *Device) snapshot(mode gpu.Primitive, indexed bool, first, count int32) Draw {
	dr := Draw{
		Mode:        mode,
		Indexed:     indexed,
		First:       first,
		Count:       count,
		Program:     d.current,
		VertexArray: d.vao,
		Framebuffer: d.fbo,
		Textures:    maps.Clone(d.units),
		DepthTest:   d.enabled[gpu.DepthTest],
		Blend:       d.enabled[gpu.Blend],
		Culling:     d.enabled[gpu.CullFace],
		CullFace:    d.face,
		LineWidth:   d.lineWidth,
	}
	if prog, ok := d.programs[d.current]; ok {
		dr.Uniforms = maps.Clone(prog.values)
	}
	return dr
}

func (d *Device) DrawElements(mode gpu.Primitive, count int32) {
	d.record("DrawElements %d", count)
	d.Draws = append(d.Draws, d.snapshot(mode, true, 0, count))
}

func (d *Device) DrawArrays(mode gpu.Primitive, first, count int32) {
	d.record("DrawArrays %d", count)
	d.Draws = append(d.Draws, d.snapshot(mode, false, first, count))
}

func (d *Device) ReadPixels(x, y, width, height int32) []byte {
	d.record("ReadPixels")
	return make([]byte, width*height*4)
}
