package renderer

import (
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/Faultbox/ron/internal/engine/gpu"
	"github.com/Faultbox/ron/internal/engine/lighting"
	"github.com/Faultbox/ron/internal/engine/mesh"
	"github.com/Faultbox/ron/internal/engine/resource"
	"github.com/Faultbox/ron/internal/logger"
)

// ProgramBundle is the GPU side of a shader program. Program is 0 when
// compiling or linking failed.
type ProgramBundle struct {
	Program         gpu.Program
	LastUpdateCount uint64
}

// TextureBundle is the GPU side of a texture. Texture is 0 when the image
// could not be uploaded.
type TextureBundle struct {
	Texture         gpu.Texture
	LastUpdateCount uint64
}

// GeometryBundle holds the vertex array and one buffer per present attribute.
type GeometryBundle struct {
	VertexArray gpu.VertexArray
	Positions   gpu.Buffer
	Normals     gpu.Buffer
	UVs         gpu.Buffer
	Tangents    gpu.Buffer
	Indices     gpu.Buffer
	IndexCount  int32
}

// LightBundle is the shadow map of a directional light. Both handles are 0
// when shadows are disabled.
type LightBundle struct {
	Framebuffer     gpu.Framebuffer
	ShadowMap       gpu.Texture
	LastUpdateCount uint64
}

func (b ProgramBundle) lastUpdate() uint64 { return b.LastUpdateCount }
func (b TextureBundle) lastUpdate() uint64 { return b.LastUpdateCount }
func (b LightBundle) lastUpdate() uint64   { return b.LastUpdateCount }

// compileProgram compiles both stages and links them. Failures are logged
// with the compiler output and yield a zero program; the error shader
// substitution happens in the caller. Failed bundles still record the
// version they were built from so they are not retried until it changes.
func compileProgram(dev gpu.Device, p *resource.ShaderProgram) ProgramBundle {
	count := p.UpdateCount()
	failed := false
	compile := func(stage gpu.ShaderStage, src string) gpu.Shader {
		s, err := dev.CompileShader(stage, src)
		if err != nil {
			logger.Error("shader compilation failed",
				zap.String("program", p.Name()),
				zap.String("stage", stage.String()),
				zap.String("log", err.Error()),
			)
			failed = true
			return 0
		}
		return s
	}
	vs := compile(gpu.StageVertex, p.VertexSource())
	fs := compile(gpu.StageFragment, p.FragmentSource())
	if failed {
		if vs != 0 {
			dev.DeleteShader(vs)
		}
		if fs != 0 {
			dev.DeleteShader(fs)
		}
		return ProgramBundle{LastUpdateCount: count}
	}

	prog, err := dev.LinkProgram(vs, fs)
	dev.DeleteShader(vs)
	dev.DeleteShader(fs)
	if err != nil {
		logger.Error("shader program linking failed",
			zap.String("program", p.Name()),
			zap.String("log", err.Error()),
		)
		if prog != 0 {
			dev.DeleteProgram(prog)
		}
		return ProgramBundle{LastUpdateCount: count}
	}

	logger.Debug("shader program compiled", zap.String("program", p.Name()))
	return ProgramBundle{Program: prog, LastUpdateCount: count}
}

func releaseProgram(dev gpu.Device, b ProgramBundle) {
	if b.Program != 0 {
		dev.DeleteProgram(b.Program)
	}
}

// pixelFormat resolves the logical channel layout of a texture to a GPU
// format. ok is false when the image cannot be uploaded with that layout.
func pixelFormat(t *resource.Texture) (gpu.InternalFormat, gpu.PixelLayout, bool) {
	img := t.Image()
	meta := t.Meta()

	channels := meta.Channels
	if channels == resource.ChannelsAutomatic {
		switch img.Channels {
		case 1:
			channels = resource.ChannelsR
		case 2:
			channels = resource.ChannelsRG
		case 3:
			channels = resource.ChannelsRGB
		case 4:
			channels = resource.ChannelsRGBA
		default:
			return 0, 0, false
		}
	}

	srgb := meta.ColorSpace == resource.ColorSpaceSRGB
	switch channels {
	case resource.ChannelsR:
		return gpu.FormatR8, gpu.LayoutRed, img.Channels == 1
	case resource.ChannelsRG:
		return gpu.FormatRG8, gpu.LayoutRG, img.Channels == 2
	case resource.ChannelsRGB:
		if srgb {
			return gpu.FormatSRGB8, gpu.LayoutRGB, img.Channels == 3
		}
		return gpu.FormatRGB8, gpu.LayoutRGB, img.Channels == 3
	case resource.ChannelsRGBA:
		if srgb {
			return gpu.FormatSRGB8Alpha8, gpu.LayoutRGBA, img.Channels == 4
		}
		return gpu.FormatRGBA8, gpu.LayoutRGBA, img.Channels == 4
	case resource.ChannelsBGR:
		return gpu.FormatRGB8, gpu.LayoutBGR, img.Channels == 3
	case resource.ChannelsBGRA:
		return gpu.FormatRGBA8, gpu.LayoutBGRA, img.Channels == 4
	}
	return 0, 0, false
}

func wrapMode(w resource.WrapMode) gpu.Wrap {
	switch w {
	case resource.WrapClampToEdge:
		return gpu.WrapClampToEdge
	case resource.WrapClampToBorder:
		return gpu.WrapClampToBorder
	case resource.WrapMirroredRepeat:
		return gpu.WrapMirroredRepeat
	case resource.WrapMirrorClampToEdge:
		return gpu.WrapMirrorClampToEdge
	}
	return gpu.WrapRepeat
}

func minFilter(f resource.MinFilter) gpu.Filter {
	switch f {
	case resource.MinNearest:
		return gpu.FilterNearest
	case resource.MinLinear:
		return gpu.FilterLinear
	case resource.MinNearestMipmapNearest:
		return gpu.FilterNearestMipmapNearest
	case resource.MinLinearMipmapNearest:
		return gpu.FilterLinearMipmapNearest
	case resource.MinNearestMipmapLinear:
		return gpu.FilterNearestMipmapLinear
	}
	return gpu.FilterLinearMipmapLinear
}

func magFilter(f resource.MagFilter) gpu.Filter {
	if f == resource.MagNearest {
		return gpu.FilterNearest
	}
	return gpu.FilterLinear
}

// uploadTexture uploads the image with mipmaps. A texture without usable
// pixels gives a zero handle.
func uploadTexture(dev gpu.Device, t *resource.Texture) TextureBundle {
	if !t.Good() {
		logger.Warn("texture has no image data", zap.String("texture", t.Name()))
		return TextureBundle{LastUpdateCount: t.UpdateCount()}
	}
	internal, layout, ok := pixelFormat(t)
	if !ok {
		logger.Warn("texture channels do not match image",
			zap.String("texture", t.Name()),
			zap.Int("channels", t.Image().Channels),
		)
		return TextureBundle{LastUpdateCount: t.UpdateCount()}
	}

	img := t.Image()
	sample := t.Sample()
	handle := dev.CreateTexture(gpu.TextureDesc{
		Width:          int32(img.Width),
		Height:         int32(img.Height),
		InternalFormat: internal,
		Layout:         layout,
		WrapS:          wrapMode(sample.WrapS),
		WrapT:          wrapMode(sample.WrapT),
		MinFilter:      minFilter(sample.Min),
		MagFilter:      magFilter(sample.Mag),
		Mipmaps:        true,
	}, img.Pixels)

	return TextureBundle{Texture: handle, LastUpdateCount: t.UpdateCount()}
}

func releaseTexture(dev gpu.Device, b TextureBundle) {
	if b.Texture != 0 {
		dev.DeleteTexture(b.Texture)
	}
}

func flatten3(v []mgl32.Vec3) []float32 {
	out := make([]float32, 0, len(v)*3)
	for _, e := range v {
		out = append(out, e[0], e[1], e[2])
	}
	return out
}

// setupGeometry creates a vertex array with one buffer per present stream
// at the fixed attribute locations.
func setupGeometry(dev gpu.Device, g *mesh.Geometry) GeometryBundle {
	var b GeometryBundle
	b.VertexArray = dev.CreateVertexArray()
	dev.BindVertexArray(b.VertexArray)

	b.Indices = dev.CreateIndexBuffer(g.Indices())
	b.IndexCount = int32(g.IndexCount())

	b.Positions = dev.CreateVertexBuffer(flatten3(g.Positions()))
	dev.VertexAttrib(mesh.PositionLocation, 3)

	if len(g.Normals()) > 0 {
		b.Normals = dev.CreateVertexBuffer(flatten3(g.Normals()))
		dev.VertexAttrib(mesh.NormalLocation, 3)
	}
	if uvs := g.UVs(); len(uvs) > 0 {
		data := make([]float32, 0, len(uvs)*2)
		for _, uv := range uvs {
			data = append(data, uv[0], uv[1])
		}
		b.UVs = dev.CreateVertexBuffer(data)
		dev.VertexAttrib(mesh.UVLocation, 2)
	}
	if tangents := g.Tangents(); len(tangents) > 0 {
		data := make([]float32, 0, len(tangents)*4)
		for _, t := range tangents {
			data = append(data, t[0], t[1], t[2], t[3])
		}
		b.Tangents = dev.CreateVertexBuffer(data)
		dev.VertexAttrib(mesh.TangentLocation, 4)
	}

	dev.BindVertexArray(0)
	return b
}

func releaseGeometry(dev gpu.Device, b GeometryBundle) {
	for _, buf := range []gpu.Buffer{b.Indices, b.Positions, b.Normals, b.UVs, b.Tangents} {
		if buf != 0 {
			dev.DeleteBuffer(buf)
		}
	}
	if b.VertexArray != 0 {
		dev.DeleteVertexArray(b.VertexArray)
	}
}

// setupLight allocates the shadow map of a light. Lights without shadows
// get an empty bundle.
func setupLight(dev gpu.Device, l *lighting.DirectionalLight, updateCount uint64) LightBundle {
	b := LightBundle{LastUpdateCount: updateCount}
	if !l.Shadow.Enabled {
		return b
	}
	if l.Shadow.MapSize <= 0 {
		logger.Warn("shadow map size must be positive", zap.Int32("size", l.Shadow.MapSize))
		return b
	}

	depth := dev.CreateDepthTexture(l.Shadow.MapSize)
	fb, err := dev.CreateDepthFramebuffer(depth)
	if err != nil {
		logger.Error("failed to create shadow framebuffer", zap.Error(err))
		if fb != 0 {
			dev.DeleteFramebuffer(fb)
		}
		dev.DeleteTexture(depth)
		return b
	}
	b.Framebuffer = fb
	b.ShadowMap = depth
	return b
}

func releaseLight(dev gpu.Device, b LightBundle) {
	if b.Framebuffer != 0 {
		dev.DeleteFramebuffer(b.Framebuffer)
	}
	if b.ShadowMap != 0 {
		dev.DeleteTexture(b.ShadowMap)
	}
}
