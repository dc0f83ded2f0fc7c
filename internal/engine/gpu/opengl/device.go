// Package opengl implements gpu.Device on top of an OpenGL 4.1 core context.
package opengl

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/ron/internal/engine/gpu"
	"github.com/Faultbox/ron/internal/logger"
)

// GL_MIRROR_CLAMP_TO_EDGE is core only since 4.4 but widely exposed via
// ARB_texture_mirror_clamp_to_edge.
const mirrorClampToEdge = 0x8743

// Device issues OpenGL calls for the renderer.
type Device struct {
	Version  string
	Renderer string
}

var _ gpu.Device = (*Device)(nil)

// New loads the OpenGL function pointers.
// Must be called AFTER the context is made current on this thread.
func New() (*Device, error) {
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("initializing OpenGL: %w", err)
	}

	d := &Device{
		Version:  gl.GoStr(gl.GetString(gl.VERSION)),
		Renderer: gl.GoStr(gl.GetString(gl.RENDERER)),
	}
	logger.Info("OpenGL initialized",
		zap.String("version", d.Version),
		zap.String("renderer", d.Renderer),
	)

	gl.DepthFunc(gl.LESS)
	return d, nil
}

func capability(c gpu.Capability) uint32 {
	switch c {
	case gpu.DepthTest:
		return gl.DEPTH_TEST
	case gpu.Blend:
		return gl.BLEND
	case gpu.CullFace:
		return gl.CULL_FACE
	case gpu.FramebufferSRGB:
		return gl.FRAMEBUFFER_SRGB
	}
	panic(fmt.Sprintf("opengl: unknown capability %d", c))
}

func (d *Device) Enable(c gpu.Capability)  { gl.Enable(capability(c)) }
func (d *Device) Disable(c gpu.Capability) { gl.Disable(capability(c)) }

func (d *Device) CullFace(f gpu.Face) {
	if f == gpu.FaceFront {
		gl.CullFace(gl.FRONT)
		return
	}
	gl.CullFace(gl.BACK)
}

func blendFactor(f gpu.BlendFactor) uint32 {
	switch f {
	case gpu.BlendZero:
		return gl.ZERO
	case gpu.BlendSrcAlpha:
		return gl.SRC_ALPHA
	case gpu.BlendOneMinusSrcAlpha:
		return gl.ONE_MINUS_SRC_ALPHA
	default:
		return gl.ONE
	}
}

func (d *Device) BlendFunc(src, dst gpu.BlendFactor) {
	gl.BlendFunc(blendFactor(src), blendFactor(dst))
}

func (d *Device) LineWidth(w float32) { gl.LineWidth(w) }

func (d *Device) Viewport(x, y, width, height int32) { gl.Viewport(x, y, width, height) }

func (d *Device) ClearColor(r, g, b, a float32) { gl.ClearColor(r, g, b, a) }

func (d *Device) Clear(mask gpu.ClearMask) {
	var bits uint32
	if mask&gpu.ClearColorBuffer != 0 {
		bits |= gl.COLOR_BUFFER_BIT
	}
	if mask&gpu.ClearDepthBuffer != 0 {
		bits |= gl.DEPTH_BUFFER_BIT
	}
	gl.Clear(bits)
}

func primitive(p gpu.Primitive) uint32 {
	if p == gpu.Lines {
		return gl.LINES
	}
	return gl.TRIANGLES
}

func (d *Device) DrawElements(mode gpu.Primitive, count int32) {
	gl.DrawElements(primitive(mode), count, gl.UNSIGNED_INT, nil)
}

func (d *Device) DrawArrays(mode gpu.Primitive, first, count int32) {
	gl.DrawArrays(primitive(mode), first, count)
}

// ReadPixels reads from the currently bound framebuffer.
func (d *Device) ReadPixels(x, y, width, height int32) []byte {
	pixels := make([]byte, width*height*4)
	if len(pixels) == 0 {
		return pixels
	}
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(x, y, width, height, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pixels))
	return pixels
}
