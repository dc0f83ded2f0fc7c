package resource

// Channels is the logical channel layout of a texture.
type Channels int

const (
	// ChannelsAutomatic derives the layout from the decoded channel count.
	ChannelsAutomatic Channels = iota
	ChannelsR
	ChannelsRG
	ChannelsRGB
	ChannelsRGBA
	ChannelsBGR
	ChannelsBGRA
)

// ColorSpace tells whether pixel values are sRGB encoded colors or raw data.
type ColorSpace int

const (
	ColorSpaceSRGB ColorSpace = iota
	ColorSpaceNonColor
)

// WrapMode is the texture coordinate wrapping behaviour.
type WrapMode int

const (
	WrapClampToEdge WrapMode = iota
	WrapClampToBorder
	WrapMirroredRepeat
	WrapRepeat
	WrapMirrorClampToEdge
)

// MinFilter is the minifying filter.
type MinFilter int

const (
	MinNearest MinFilter = iota
	MinLinear
	MinNearestMipmapNearest
	MinLinearMipmapNearest
	MinNearestMipmapLinear
	MinLinearMipmapLinear
)

// MagFilter is the magnification filter.
type MagFilter int

const (
	MagNearest MagFilter = iota
	MagLinear
)

// Image is decoded pixel data, rows top to bottom, tightly packed.
type Image struct {
	Width    int
	Height   int
	Channels int
	Pixels   []byte
}

// Good reports whether the image holds usable pixels.
func (img Image) Good() bool {
	return img.Width > 0 && img.Height > 0 && img.Channels > 0 &&
		len(img.Pixels) >= img.Width*img.Height*img.Channels
}

// Meta describes how pixel data should be interpreted.
type Meta struct {
	Channels   Channels
	ColorSpace ColorSpace
}

// Sample holds sampler settings.
type Sample struct {
	WrapS WrapMode
	WrapT WrapMode
	Min   MinFilter
	Mag   MagFilter
}

// DefaultMeta returns automatic channels in sRGB.
func DefaultMeta() Meta {
	return Meta{Channels: ChannelsAutomatic, ColorSpace: ColorSpaceSRGB}
}

// DefaultSample returns repeat wrapping with trilinear minification.
func DefaultSample() Sample {
	return Sample{
		WrapS: WrapRepeat,
		WrapT: WrapRepeat,
		Min:   MinLinearMipmapLinear,
		Mag:   MagLinear,
	}
}

// Texture is an image plus the settings needed to upload it.
type Texture struct {
	id      ID
	name    string
	path    string
	image   Image
	meta    Meta
	sample  Sample
	updates uint64
}

// NewTexture creates an in-memory texture.
func NewTexture(name string, img Image, meta Meta, sample Sample) *Texture {
	return &Texture{
		id:     NewID(),
		name:   name,
		image:  img,
		meta:   meta,
		sample: sample,
	}
}

// NewFileTexture creates a texture backed by an asset file, which enables
// reloading from disk.
func NewFileTexture(path string, img Image, meta Meta, sample Sample) *Texture {
	t := NewTexture(path, img, meta, sample)
	t.path = path
	return t
}

func (t *Texture) ID() ID              { return t.id }
func (t *Texture) Name() string        { return t.name }
func (t *Texture) Image() Image        { return t.image }
func (t *Texture) Meta() Meta          { return t.meta }
func (t *Texture) Sample() Sample      { return t.sample }
func (t *Texture) UpdateCount() uint64 { return t.updates }

// Good is false when decoding failed and there is nothing to upload.
func (t *Texture) Good() bool { return t.image.Good() }

// HasFile reports whether the texture can be reloaded from disk.
func (t *Texture) HasFile() bool { return t.path != "" }

// Path returns the asset path of a file backed texture.
func (t *Texture) Path() string { return t.path }

// Update replaces the pixel data.
func (t *Texture) Update(img Image) {
	t.image = img
	t.updates++
}

// MarkAsUpdated must be called after modifying pixels in place.
func (t *Texture) MarkAsUpdated() { t.updates++ }
