package gltf

import (
	"encoding/base64"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
	qgltf "github.com/qmuntal/gltf"

	"github.com/Faultbox/ron/internal/assets"
	"github.com/Faultbox/ron/internal/engine/material"
	"github.com/Faultbox/ron/internal/engine/resource"
	"github.com/Faultbox/ron/internal/engine/texture"
	"github.com/Faultbox/ron/internal/engine/uniform"
)

type textureKey struct {
	texture int
	meta    resource.Meta
}

var (
	colorMeta = resource.DefaultMeta()
	dataMeta  = resource.Meta{Channels: resource.ChannelsAutomatic, ColorSpace: resource.ColorSpaceNonColor}
)

// material converts a glTF material once; primitives using it share the
// result. Slots without a texture keep the neutral defaults of a
// Blinn-Phong material.
func (im *importer) material(i int) *material.Material {
	if m, ok := im.materials[i]; ok {
		return m
	}
	if i < 0 || i >= len(im.doc.Materials) {
		im.report("material index %d out of range", i)
		im.materials[i] = nil
		return nil
	}

	gm := im.doc.Materials[i]
	name := gm.Name
	if name == "" {
		name = fmt.Sprintf("%s#material%d", filepath.Base(im.path), i)
	}
	m := im.lib.NewBlinnPhongMaterial(name)
	if gm.DoubleSided {
		m.Culling = material.CullNone
	}

	// glTF defaults: white base color, fully metallic and rough.
	albedo := [4]float64{1, 1, 1, 1}
	metallic, roughness := 1.0, 1.0
	if pbr := gm.PBRMetallicRoughness; pbr != nil {
		if pbr.BaseColorFactor != nil {
			albedo = *pbr.BaseColorFactor
		}
		if pbr.MetallicFactor != nil {
			metallic = *pbr.MetallicFactor
		}
		if pbr.RoughnessFactor != nil {
			roughness = *pbr.RoughnessFactor
		}
		if pbr.BaseColorTexture != nil {
			im.setTexture(m, assets.UniformAlbedoTexture, pbr.BaseColorTexture.Index, colorMeta)
		}
		if pbr.MetallicRoughnessTexture != nil {
			im.setTexture(m, assets.UniformMetallicRoughnessTexture, pbr.MetallicRoughnessTexture.Index, dataMeta)
		}
	}
	if nt := gm.NormalTexture; nt != nil && nt.Index != nil {
		im.setTexture(m, assets.UniformNormalTexture, *nt.Index, dataMeta)
	}

	m.Uniforms[assets.UniformAlbedoColor] = uniform.Vec4(mgl32.Vec4{
		float32(albedo[0]), float32(albedo[1]), float32(albedo[2]), float32(albedo[3]),
	})
	m.Uniforms[assets.UniformMetallicFactor] = uniform.Float(float32(metallic))
	m.Uniforms[assets.UniformRoughnessFactor] = uniform.Float(float32(roughness))

	im.materials[i] = m
	return m
}

func (im *importer) setTexture(m *material.Material, name string, index int, meta resource.Meta) {
	if t := im.texture(index, meta); t != nil {
		m.Uniforms[name] = uniform.TextureValue(t)
	}
}

// texture resolves a glTF texture to a CPU texture. Images inside the
// document become in-memory textures; external files under the asset root
// go through the library so they reload like any other asset.
func (im *importer) texture(i int, meta resource.Meta) *resource.Texture {
	key := textureKey{texture: i, meta: meta}
	if t, ok := im.textures[key]; ok {
		return t
	}

	t := im.loadTexture(i, meta)
	im.textures[key] = t
	return t
}

func (im *importer) loadTexture(i int, meta resource.Meta) *resource.Texture {
	if i < 0 || i >= len(im.doc.Textures) {
		im.report("texture index %d out of range", i)
		return nil
	}
	gt := im.doc.Textures[i]
	if gt.Source == nil || *gt.Source < 0 || *gt.Source >= len(im.doc.Images) {
		im.report("texture %d has no supported image source", i)
		return nil
	}

	sample := resource.DefaultSample()
	if gt.Sampler != nil && *gt.Sampler >= 0 && *gt.Sampler < len(im.doc.Samplers) {
		sample = samplerSettings(im.doc.Samplers[*gt.Sampler])
	}

	img := im.doc.Images[*gt.Source]
	name := fmt.Sprintf("%s#image%d", filepath.Base(im.path), *gt.Source)

	var data []byte
	switch {
	case img.BufferView != nil:
		b, err := im.bufferView(*img.BufferView)
		if err != nil {
			im.report("image %d: %v", *gt.Source, err)
			return nil
		}
		data = b
	case strings.HasPrefix(img.URI, "data:"):
		b, err := decodeDataURI(img.URI)
		if err != nil {
			im.report("image %d: %v", *gt.Source, err)
			return nil
		}
		data = b
	default:
		uri, err := url.PathUnescape(img.URI)
		if err != nil {
			uri = img.URI
		}
		file := filepath.Join(im.dir, filepath.FromSlash(uri))
		if rel, ok := im.underRoot(file); ok {
			return im.lib.LoadTexture(rel, meta, sample)
		}
		b, err := os.ReadFile(file)
		if err != nil {
			im.report("image %d: %v", *gt.Source, err)
			return nil
		}
		data, name = b, file
	}

	decoded, err := texture.Decode(data, name, 0)
	if err != nil {
		im.report("image %d: %v", *gt.Source, err)
		return nil
	}
	return resource.NewTexture(name, decoded, meta, sample)
}

// underRoot returns file relative to the library root when it lies inside it.
func (im *importer) underRoot(file string) (string, bool) {
	root := im.lib.Root()
	if root == "" {
		return "", false
	}
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return "", false
	}
	absFile, err := filepath.Abs(file)
	if err != nil {
		return "", false
	}
	rel, err := filepath.Rel(absRoot, absFile)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", false
	}
	return filepath.ToSlash(rel), true
}

func (im *importer) bufferView(i int) ([]byte, error) {
	if i < 0 || i >= len(im.doc.BufferViews) {
		return nil, fmt.Errorf("buffer view %d out of range", i)
	}
	bv := im.doc.BufferViews[i]
	if bv.Buffer < 0 || bv.Buffer >= len(im.doc.Buffers) {
		return nil, fmt.Errorf("buffer %d out of range", bv.Buffer)
	}
	buf := im.doc.Buffers[bv.Buffer].Data
	end := bv.ByteOffset + bv.ByteLength
	if bv.ByteOffset < 0 || end > len(buf) {
		return nil, fmt.Errorf("buffer view %d exceeds its buffer", i)
	}
	return buf[bv.ByteOffset:end], nil
}

func decodeDataURI(uri string) ([]byte, error) {
	comma := strings.IndexByte(uri, ',')
	if comma < 0 || !strings.HasSuffix(uri[:comma], ";base64") {
		return nil, fmt.Errorf("unsupported data URI")
	}
	b, err := base64.StdEncoding.DecodeString(uri[comma+1:])
	if err != nil {
		return nil, fmt.Errorf("decoding data URI: %w", err)
	}
	return b, nil
}

func samplerSettings(s *qgltf.Sampler) resource.Sample {
	out := resource.DefaultSample()
	out.WrapS = wrapMode(s.WrapS)
	out.WrapT = wrapMode(s.WrapT)

	switch s.MagFilter {
	case qgltf.MagNearest:
		out.Mag = resource.MagNearest
	case qgltf.MagLinear:
		out.Mag = resource.MagLinear
	}

	switch s.MinFilter {
	case qgltf.MinNearest:
		out.Min = resource.MinNearest
	case qgltf.MinLinear:
		out.Min = resource.MinLinear
	case qgltf.MinNearestMipMapNearest:
		out.Min = resource.MinNearestMipmapNearest
	case qgltf.MinLinearMipMapNearest:
		out.Min = resource.MinLinearMipmapNearest
	case qgltf.MinNearestMipMapLinear:
		out.Min = resource.MinNearestMipmapLinear
	case qgltf.MinLinearMipMapLinear:
		out.Min = resource.MinLinearMipmapLinear
	}
	return out
}

func wrapMode(w qgltf.WrappingMode) resource.WrapMode {
	switch w {
	case qgltf.WrapClampToEdge:
		return resource.WrapClampToEdge
	case qgltf.WrapMirroredRepeat:
		return resource.WrapMirroredRepeat
	}
	return resource.WrapRepeat
}
