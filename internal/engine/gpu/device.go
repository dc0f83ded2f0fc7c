// Package gpu defines the graphics backend the renderer drives.
//
// Handles are plain integers; zero is never a valid handle and is used as the
// failure sentinel throughout the renderer.
package gpu

// Handle types. Zero means "no object".
type (
	Shader      uint32
	Program     uint32
	Texture     uint32
	Buffer      uint32
	VertexArray uint32
	Framebuffer uint32
)

// ShaderStage identifies a programmable pipeline stage.
type ShaderStage int

const (
	StageVertex ShaderStage = iota
	StageFragment
)

func (s ShaderStage) String() string {
	switch s {
	case StageVertex:
		return "vertex"
	case StageFragment:
		return "fragment"
	default:
		return "unknown"
	}
}

// Capability is a toggleable piece of fixed-function state.
type Capability int

const (
	DepthTest Capability = iota
	Blend
	CullFace
	FramebufferSRGB
)

// Face selects which polygon faces are culled.
type Face int

const (
	FaceBack Face = iota
	FaceFront
)

// BlendFactor is a blend equation factor.
type BlendFactor int

const (
	BlendOne BlendFactor = iota
	BlendZero
	BlendSrcAlpha
	BlendOneMinusSrcAlpha
)

// Primitive is the topology used by draw calls.
type Primitive int

const (
	Triangles Primitive = iota
	Lines
)

// ClearMask selects buffers to clear.
type ClearMask uint32

const (
	ClearColorBuffer ClearMask = 1 << iota
	ClearDepthBuffer
)

// InternalFormat is the storage format of a texture on the GPU.
type InternalFormat int

const (
	FormatR8 InternalFormat = iota
	FormatRG8
	FormatRGB8
	FormatRGBA8
	FormatSRGB8
	FormatSRGB8Alpha8
)

// PixelLayout describes the channel order of uploaded pixel data.
type PixelLayout int

const (
	LayoutRed PixelLayout = iota
	LayoutRG
	LayoutRGB
	LayoutRGBA
	LayoutBGR
	LayoutBGRA
)

// Wrap is a texture coordinate wrapping mode.
type Wrap int

const (
	WrapRepeat Wrap = iota
	WrapClampToEdge
	WrapClampToBorder
	WrapMirroredRepeat
	WrapMirrorClampToEdge
)

// Filter is a texture sampling filter.
type Filter int

const (
	FilterNearest Filter = iota
	FilterLinear
	FilterNearestMipmapNearest
	FilterLinearMipmapNearest
	FilterNearestMipmapLinear
	FilterLinearMipmapLinear
)

// TextureDesc describes a 2D color texture upload.
type TextureDesc struct {
	Width, Height  int32
	InternalFormat InternalFormat
	Layout         PixelLayout
	WrapS, WrapT   Wrap
	MinFilter      Filter
	MagFilter      Filter
	Mipmaps        bool
}

// Device is the set of driver operations the renderer needs. One Device is
// bound to one graphics context and must only be used from the thread that
// owns it.
type Device interface {
	// CompileShader compiles one stage. On failure it returns the compiler
	// log as the error and deletes the shader object itself.
	CompileShader(stage ShaderStage, source string) (Shader, error)
	DeleteShader(s Shader)
	// LinkProgram links the given stages. On failure the program handle is
	// still returned so the caller can release it.
	LinkProgram(stages ...Shader) (Program, error)
	DeleteProgram(p Program)
	UseProgram(p Program)
	UniformLocation(p Program, name string) int32

	UniformFloat(loc int32, v ...float32)
	UniformInt(loc int32, v ...int32)
	UniformUint(loc int32, v ...uint32)
	// UniformMatrix uploads a column-major cols x rows matrix.
	UniformMatrix(loc int32, cols, rows int, v []float32)

	CreateTexture(desc TextureDesc, pixels []byte) Texture
	// CreateDepthTexture allocates a square depth texture with
	// clamp-to-border wrapping, a white border and nearest filtering.
	CreateDepthTexture(size int32) Texture
	DeleteTexture(t Texture)
	ActiveTexture(unit int)
	BindTexture(t Texture)

	CreateVertexArray() VertexArray
	BindVertexArray(v VertexArray)
	DeleteVertexArray(v VertexArray)
	// CreateVertexBuffer uploads data and binds it as the current array buffer.
	CreateVertexBuffer(data []float32) Buffer
	// CreateIndexBuffer uploads data into the element buffer of the bound vertex array.
	CreateIndexBuffer(data []uint32) Buffer
	DeleteBuffer(b Buffer)
	// VertexAttrib points location at the current array buffer as tightly
	// packed floats and enables it.
	VertexAttrib(location uint32, components int32)

	// CreateDepthFramebuffer creates a framebuffer with depth attached and
	// no color buffers.
	CreateDepthFramebuffer(depth Texture) (Framebuffer, error)
	BindFramebuffer(f Framebuffer)
	DeleteFramebuffer(f Framebuffer)

	Enable(c Capability)
	Disable(c Capability)
	CullFace(f Face)
	BlendFunc(src, dst BlendFactor)
	LineWidth(w float32)
	Viewport(x, y, width, height int32)
	ClearColor(r, g, b, a float32)
	Clear(mask ClearMask)

	DrawElements(mode Primitive, count int32)
	DrawArrays(mode Primitive, first, count int32)

	// ReadPixels returns RGBA8 pixels of the bound framebuffer, bottom row first.
	ReadPixels(x, y, width, height int32) []byte
}
