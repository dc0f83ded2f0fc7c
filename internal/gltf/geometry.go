package gltf

import (
	"github.com/go-gl/mathgl/mgl32"
	qgltf "github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"

	"github.com/Faultbox/ron/internal/engine/mesh"
)

var componentCounts = map[qgltf.AccessorType]int{
	qgltf.AccessorScalar: 1,
	qgltf.AccessorVec2:   2,
	qgltf.AccessorVec3:   3,
	qgltf.AccessorVec4:   4,
}

func modeName(m qgltf.PrimitiveMode) string {
	switch m {
	case qgltf.PrimitivePoints:
		return "points"
	case qgltf.PrimitiveLines:
		return "lines"
	case qgltf.PrimitiveLineLoop:
		return "line loop"
	case qgltf.PrimitiveLineStrip:
		return "line strip"
	case qgltf.PrimitiveTriangles:
		return "triangles"
	case qgltf.PrimitiveTriangleStrip:
		return "triangle strip"
	case qgltf.PrimitiveTriangleFan:
		return "triangle fan"
	}
	return "unknown"
}

// accessor returns the accessor bound to attribute name, or nil.
func (im *importer) accessor(p *qgltf.Primitive, name string) *qgltf.Accessor {
	i, ok := p.Attributes[name]
	if !ok || i < 0 || i >= len(im.doc.Accessors) {
		return nil
	}
	return im.doc.Accessors[i]
}

// checkAttribute reports a present attribute that is not a float vector of
// the expected size or count. A nil accessor passes.
func (im *importer) checkAttribute(a *qgltf.Accessor, name string, components, count int, where string) bool {
	if a == nil {
		return true
	}
	ok := true
	if a.ComponentType != qgltf.ComponentFloat {
		im.report("%s attribute is not 32 bit float (%s)", name, where)
		ok = false
	}
	if c := componentCounts[a.Type]; c != components {
		im.report("%s attribute has %d components, want %d (%s)", name, c, components, where)
		ok = false
	}
	if count >= 0 && a.Count != count {
		im.report("%s attribute has %d elements for %d positions (%s)", name, a.Count, count, where)
		ok = false
	}
	return ok
}

// geometry validates and reads one primitive. It returns nil after
// reporting why the primitive cannot be imported.
func (im *importer) geometry(p *qgltf.Primitive, where string) *mesh.Geometry {
	valid := true
	if p.Mode != qgltf.PrimitiveTriangles {
		im.report("primitive mode %s is not supported, only triangles (%s)", modeName(p.Mode), where)
		valid = false
	}

	var indices *qgltf.Accessor
	if p.Indices == nil || *p.Indices < 0 || *p.Indices >= len(im.doc.Accessors) {
		im.report("non-indexed primitive (%s)", where)
		valid = false
	} else {
		indices = im.doc.Accessors[*p.Indices]
		if indices.ComponentType != qgltf.ComponentUshort && indices.ComponentType != qgltf.ComponentUint {
			im.report("index format other than unsigned short or unsigned int (%s)", where)
			valid = false
		}
	}

	pos := im.accessor(p, qgltf.POSITION)
	if pos == nil {
		im.report("missing POSITION attribute (%s)", where)
		return nil
	}
	if !im.checkAttribute(pos, qgltf.POSITION, 3, -1, where) {
		valid = false
	}
	normal := im.accessor(p, qgltf.NORMAL)
	uv := im.accessor(p, qgltf.TEXCOORD_0)
	tangent := im.accessor(p, qgltf.TANGENT)
	valid = im.checkAttribute(normal, qgltf.NORMAL, 3, pos.Count, where) && valid
	valid = im.checkAttribute(uv, qgltf.TEXCOORD_0, 2, pos.Count, where) && valid
	valid = im.checkAttribute(tangent, qgltf.TANGENT, 4, pos.Count, where) && valid
	if !valid {
		return nil
	}

	var d mesh.GeometryData
	if !im.read(where, func() error {
		idx, err := modeler.ReadIndices(im.doc, indices, nil)
		d.Indices = idx
		return err
	}) {
		return nil
	}
	if !im.read(where, func() error {
		v, err := modeler.ReadPosition(im.doc, pos, nil)
		d.Positions = vec3s(v)
		return err
	}) {
		return nil
	}
	if normal != nil && !im.read(where, func() error {
		v, err := modeler.ReadNormal(im.doc, normal, nil)
		d.Normals = vec3s(v)
		return err
	}) {
		return nil
	}
	if uv != nil && !im.read(where, func() error {
		v, err := modeler.ReadTextureCoord(im.doc, uv, nil)
		d.UVs = vec2s(v)
		return err
	}) {
		return nil
	}
	if tangent != nil && !im.read(where, func() error {
		v, err := modeler.ReadTangent(im.doc, tangent, nil)
		d.Tangents = vec4s(v)
		return err
	}) {
		return nil
	}

	if d.Tangents == nil && d.Normals != nil && d.UVs != nil {
		t, err := mesh.GenerateTangents(d)
		if err != nil {
			im.report("generating tangents: %v (%s)", err, where)
		} else {
			d.Tangents = t
		}
	}

	g, err := mesh.NewGeometry(d)
	if err != nil {
		im.report("invalid geometry: %v (%s)", err, where)
		return nil
	}
	return g
}

func (im *importer) read(where string, fn func() error) bool {
	if err := fn(); err != nil {
		im.report("reading accessor: %v (%s)", err, where)
		return false
	}
	return true
}

func vec2s(v [][2]float32) []mgl32.Vec2 {
	out := make([]mgl32.Vec2, len(v))
	for i := range v {
		out[i] = v[i]
	}
	return out
}

func vec3s(v [][3]float32) []mgl32.Vec3 {
	out := make([]mgl32.Vec3, len(v))
	for i := range v {
		out[i] = v[i]
	}
	return out
}

func vec4s(v [][4]float32) []mgl32.Vec4 {
	out := make([]mgl32.Vec4, len(v))
	for i := range v {
		out[i] = v[i]
	}
	return out
}
