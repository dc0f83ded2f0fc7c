// Package gltf imports glTF 2.0 files (.gltf and .glb) into scenes.
//
// Only indexed triangle lists with float attributes are imported. Anything
// else is skipped and reported, so a partially supported file still yields
// every primitive that could be read.
package gltf

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/go-gl/mathgl/mgl32"
	qgltf "github.com/qmuntal/gltf"
	"go.uber.org/zap"

	"github.com/Faultbox/ron/internal/assets"
	"github.com/Faultbox/ron/internal/engine/material"
	"github.com/Faultbox/ron/internal/engine/mesh"
	"github.com/Faultbox/ron/internal/engine/resource"
	"github.com/Faultbox/ron/internal/engine/scene"
	"github.com/Faultbox/ron/internal/logger"
)

// ErrNoScene is returned for documents without any scene to import.
var ErrNoScene = errors.New("glTF document has no scene")

type importer struct {
	doc  *qgltf.Document
	lib  *assets.Library
	path string
	dir  string

	meshes    map[int]*mesh.Mesh
	materials map[int]*material.Material
	textures  map[textureKey]*resource.Texture

	unsupported []string
}

// Import reads the file at path and returns its default scene. An error is
// returned only when the file cannot be read or parsed at all; unsupported
// content is skipped and listed in the returned diagnostics instead.
// Textures and the default material come from lib.
func Import(path string, lib *assets.Library) (*scene.Scene, []string, error) {
	doc, err := qgltf.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("opening glTF %s: %w", path, err)
	}
	if len(doc.Scenes) == 0 {
		return nil, nil, fmt.Errorf("importing %s: %w", path, ErrNoScene)
	}

	im := &importer{
		doc:       doc,
		lib:       lib,
		path:      path,
		dir:       filepath.Dir(path),
		meshes:    make(map[int]*mesh.Mesh),
		materials: make(map[int]*material.Material),
		textures:  make(map[textureKey]*resource.Texture),
	}

	root := 0
	if doc.Scene != nil && *doc.Scene < len(doc.Scenes) {
		root = *doc.Scene
	}

	s := scene.New(lib.DefaultMaterial())
	visiting := make(map[int]bool)
	for _, n := range doc.Scenes[root].Nodes {
		im.addNode(s, n, mgl32.Ident4(), visiting)
	}

	if len(im.unsupported) > 0 {
		logger.Warn("incomplete glTF import",
			zap.String("path", path),
			zap.Strings("unsupported", im.unsupported),
		)
	} else {
		logger.Info("glTF imported",
			zap.String("path", path),
			zap.Int("nodes", len(s.Nodes())),
		)
	}
	return s, im.unsupported, nil
}

func (im *importer) report(format string, args ...any) {
	im.unsupported = append(im.unsupported, fmt.Sprintf(format, args...))
}

// addNode adds the node at index i and its descendants with parent as the
// accumulated world transform.
func (im *importer) addNode(s *scene.Scene, i int, parent mgl32.Mat4, visiting map[int]bool) {
	if i < 0 || i >= len(im.doc.Nodes) {
		im.report("node index %d out of range", i)
		return
	}
	if visiting[i] {
		im.report("node %d is its own ancestor", i)
		return
	}
	visiting[i] = true
	defer delete(visiting, i)

	n := im.doc.Nodes[i]
	world := parent.Mul4(LocalMatrix(n))

	if n.Mesh != nil {
		if m := im.mesh(*n.Mesh, n.Name); m != nil {
			s.Add(mesh.NewNode(m, world))
		}
	}
	for _, c := range n.Children {
		im.addNode(s, c, world, visiting)
	}
}

// LocalMatrix returns the node's transform relative to its parent, from
// its matrix when one is set and from translation, rotation and scale
// otherwise.
func LocalMatrix(n *qgltf.Node) mgl32.Mat4 {
	var m mgl32.Mat4
	for i, v := range n.Matrix {
		m[i] = float32(v)
	}
	if m != (mgl32.Mat4{}) && m != mgl32.Ident4() {
		return m
	}

	t := n.Translation
	r := n.Rotation
	sc := n.Scale
	if sc == [3]float64{} {
		sc = [3]float64{1, 1, 1}
	}
	rot := mgl32.QuatIdent()
	if r != [4]float64{} {
		rot = mgl32.Quat{W: float32(r[3]), V: mgl32.Vec3{float32(r[0]), float32(r[1]), float32(r[2])}}.Normalize()
	}
	return mgl32.Translate3D(float32(t[0]), float32(t[1]), float32(t[2])).
		Mul4(rot.Mat4()).
		Mul4(mgl32.Scale3D(float32(sc[0]), float32(sc[1]), float32(sc[2])))
}

// mesh converts a glTF mesh once; nodes instancing it share the result.
func (im *importer) mesh(i int, nodeName string) *mesh.Mesh {
	if m, ok := im.meshes[i]; ok {
		return m
	}
	if i < 0 || i >= len(im.doc.Meshes) {
		im.report("mesh index %d out of range (%s)", i, nodeName)
		return nil
	}

	gm := im.doc.Meshes[i]
	m := &mesh.Mesh{Name: gm.Name}
	where := nodeName + "." + gm.Name
	for _, p := range gm.Primitives {
		g := im.geometry(p, where)
		if g == nil {
			continue
		}
		sec := mesh.Section{Geometry: g}
		if p.Material != nil {
			sec.Material = im.material(*p.Material)
		}
		m.Sections = append(m.Sections, sec)
	}
	im.meshes[i] = m
	return m
}
