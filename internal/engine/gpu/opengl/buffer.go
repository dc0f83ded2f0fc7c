package opengl

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/ron/internal/engine/gpu"
)

func (d *Device) CreateVertexArray() gpu.VertexArray {
	var vao uint32
	gl.GenVertexArrays(1, &vao)
	return gpu.VertexArray(vao)
}

func (d *Device) BindVertexArray(v gpu.VertexArray) { gl.BindVertexArray(uint32(v)) }

func (d *Device) DeleteVertexArray(v gpu.VertexArray) {
	if v == 0 {
		return
	}
	vao := uint32(v)
	gl.DeleteVertexArrays(1, &vao)
}

func (d *Device) CreateVertexBuffer(data []float32) gpu.Buffer {
	var vbo uint32
	gl.GenBuffers(1, &vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, vbo)
	if len(data) > 0 {
		gl.BufferData(gl.ARRAY_BUFFER, len(data)*4, gl.Ptr(data), gl.STATIC_DRAW)
	}
	return gpu.Buffer(vbo)
}

func (d *Device) CreateIndexBuffer(data []uint32) gpu.Buffer {
	var ebo uint32
	gl.GenBuffers(1, &ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, ebo)
	if len(data) > 0 {
		gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(data)*4, gl.Ptr(data), gl.STATIC_DRAW)
	}
	return gpu.Buffer(ebo)
}

func (d *Device) DeleteBuffer(b gpu.Buffer) {
	if b == 0 {
		return
	}
	buf := uint32(b)
	gl.DeleteBuffers(1, &buf)
}

func (d *Device) VertexAttrib(location uint32, components int32) {
	gl.VertexAttribPointer(location, components, gl.FLOAT, false, components*4, nil)
	gl.EnableVertexAttribArray(location)
}

func (d *Device) CreateDepthFramebuffer(depth gpu.Texture) (gpu.Framebuffer, error) {
	var fbo uint32
	gl.GenFramebuffers(1, &fbo)
	gl.BindFramebuffer(gl.FRAMEBUFFER, fbo)

	gl.FramebufferTexture2D(gl.FRAMEBUFFER, gl.DEPTH_ATTACHMENT, gl.TEXTURE_2D, uint32(depth), 0)

	// No color buffer for the depth pass
	gl.DrawBuffer(gl.NONE)
	gl.ReadBuffer(gl.NONE)

	status := gl.CheckFramebufferStatus(gl.FRAMEBUFFER)
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	if status != gl.FRAMEBUFFER_COMPLETE {
		gl.DeleteFramebuffers(1, &fbo)
		return 0, fmt.Errorf("framebuffer incomplete: 0x%x", status)
	}

	return gpu.Framebuffer(fbo), nil
}

func (d *Device) BindFramebuffer(f gpu.Framebuffer) { gl.BindFramebuffer(gl.FRAMEBUFFER, uint32(f)) }

func (d *Device) DeleteFramebuffer(f gpu.Framebuffer) {
	if f == 0 {
		return
	}
	fbo := uint32(f)
	gl.DeleteFramebuffers(1, &fbo)
}
