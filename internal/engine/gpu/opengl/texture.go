package opengl

import (
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/ron/internal/engine/gpu"
)

func internalFormat(f gpu.InternalFormat) int32 {
	switch f {
	case gpu.FormatR8:
		return gl.R8
	case gpu.FormatRG8:
		return gl.RG8
	case gpu.FormatRGB8:
		return gl.RGB8
	case gpu.FormatSRGB8:
		return gl.SRGB8
	case gpu.FormatSRGB8Alpha8:
		return gl.SRGB8_ALPHA8
	default:
		return gl.RGBA8
	}
}

func pixelLayout(l gpu.PixelLayout) uint32 {
	switch l {
	case gpu.LayoutRed:
		return gl.RED
	case gpu.LayoutRG:
		return gl.RG
	case gpu.LayoutRGB:
		return gl.RGB
	case gpu.LayoutBGR:
		return gl.BGR
	case gpu.LayoutBGRA:
		return gl.BGRA
	default:
		return gl.RGBA
	}
}

func wrapMode(w gpu.Wrap) int32 {
	switch w {
	case gpu.WrapClampToEdge:
		return gl.CLAMP_TO_EDGE
	case gpu.WrapClampToBorder:
		return gl.CLAMP_TO_BORDER
	case gpu.WrapMirroredRepeat:
		return gl.MIRRORED_REPEAT
	case gpu.WrapMirrorClampToEdge:
		return mirrorClampToEdge
	default:
		return gl.REPEAT
	}
}

func filter(f gpu.Filter) int32 {
	switch f {
	case gpu.FilterNearest:
		return gl.NEAREST
	case gpu.FilterNearestMipmapNearest:
		return gl.NEAREST_MIPMAP_NEAREST
	case gpu.FilterLinearMipmapNearest:
		return gl.LINEAR_MIPMAP_NEAREST
	case gpu.FilterNearestMipmapLinear:
		return gl.NEAREST_MIPMAP_LINEAR
	case gpu.FilterLinearMipmapLinear:
		return gl.LINEAR_MIPMAP_LINEAR
	default:
		return gl.LINEAR
	}
}

func (d *Device) CreateTexture(desc gpu.TextureDesc, pixels []byte) gpu.Texture {
	var tex uint32
	gl.GenTextures(1, &tex)
	gl.BindTexture(gl.TEXTURE_2D, tex)

	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, wrapMode(desc.WrapS))
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, wrapMode(desc.WrapT))
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, filter(desc.MinFilter))
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, filter(desc.MagFilter))

	// Rows of 1 and 3 channel images are not 4-byte aligned.
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)

	var ptr unsafe.Pointer
	if len(pixels) > 0 {
		ptr = gl.Ptr(pixels)
	}
	gl.TexImage2D(gl.TEXTURE_2D, 0, internalFormat(desc.InternalFormat),
		desc.Width, desc.Height, 0, pixelLayout(desc.Layout), gl.UNSIGNED_BYTE, ptr)

	if desc.Mipmaps {
		gl.GenerateMipmap(gl.TEXTURE_2D)
	}

	gl.BindTexture(gl.TEXTURE_2D, 0)
	return gpu.Texture(tex)
}

func (d *Device) CreateDepthTexture(size int32) gpu.Texture {
	var tex uint32
	gl.GenTextures(1, &tex)
	gl.BindTexture(gl.TEXTURE_2D, tex)

	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.DEPTH_COMPONENT, size, size, 0,
		gl.DEPTH_COMPONENT, gl.FLOAT, nil)

	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)

	// Outside the light frustum reads as depth 1.0, i.e. lit.
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_BORDER)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_BORDER)
	borderColor := []float32{1.0, 1.0, 1.0, 1.0}
	gl.TexParameterfv(gl.TEXTURE_2D, gl.TEXTURE_BORDER_COLOR, &borderColor[0])

	gl.BindTexture(gl.TEXTURE_2D, 0)
	return gpu.Texture(tex)
}

func (d *Device) DeleteTexture(t gpu.Texture) {
	if t == 0 {
		return
	}
	tex := uint32(t)
	gl.DeleteTextures(1, &tex)
}

func (d *Device) ActiveTexture(unit int) { gl.ActiveTexture(gl.TEXTURE0 + uint32(unit)) }

func (d *Device) BindTexture(t gpu.Texture) { gl.BindTexture(gl.TEXTURE_2D, uint32(t)) }
