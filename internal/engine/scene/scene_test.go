package scene

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/ron/internal/engine/lighting"
	"github.com/Faultbox/ron/internal/engine/material"
	"github.com/Faultbox/ron/internal/engine/mesh"
	"github.com/Faultbox/ron/internal/engine/resource"
	"github.com/Faultbox/ron/internal/engine/uniform"
)

func triangle() *mesh.Geometry {
	return mesh.MustGeometry(mesh.GeometryData{
		Positions: []mgl32.Vec3{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}},
		Indices:   []uint32{0, 1, 2},
	})
}

func TestAddRemoveGeneration(t *testing.T) {
	s := New(material.New("default", nil))
	m := &mesh.Mesh{Sections: []mesh.Section{{Geometry: triangle()}}}
	a := mesh.NewNode(m, mgl32.Ident4())
	b := mesh.NewNode(m, mgl32.Ident4())

	g0 := s.Generation()
	s.Add(a, b)
	if s.Generation() == g0 {
		t.Error("generation not bumped by Add")
	}
	if len(s.Nodes()) != 2 || s.Nodes()[0] != a || s.Nodes()[1] != b {
		t.Fatalf("nodes not kept in insertion order")
	}

	g1 := s.Generation()
	if !s.Remove(a) {
		t.Fatal("Remove returned false for present node")
	}
	if s.Generation() == g1 {
		t.Error("generation not bumped by Remove")
	}
	if s.Remove(a) {
		t.Error("Remove returned true for absent node")
	}

	g2 := s.Generation()
	s.Add()
	if s.Generation() != g2 {
		t.Error("empty Add bumped generation")
	}
}

func TestAddScene(t *testing.T) {
	dst := New(nil)
	src := New(nil)
	m := &mesh.Mesh{Sections: []mesh.Section{{Geometry: triangle()}}}
	src.Add(mesh.NewNode(m, mgl32.Ident4()), mesh.NewNode(m, mgl32.Ident4()))

	dst.AddScene(src)
	if len(dst.Nodes()) != 2 {
		t.Errorf("got %d nodes, want 2", len(dst.Nodes()))
	}
}

func TestSetDirectionalLight(t *testing.T) {
	s := New(nil)
	if s.LightUpdateCount() != 0 {
		t.Fatalf("initial light update count %d", s.LightUpdateCount())
	}
	l := lighting.NewDirectionalLight()
	l.Shadow.Enabled = true
	s.SetDirectionalLight(l)
	if s.LightUpdateCount() != 1 || s.DirectionalLight() != l {
		t.Error("light not replaced")
	}
}

func TestCollections(t *testing.T) {
	white := resource.NewTexture("white", resource.Image{}, resource.DefaultMeta(), resource.DefaultSample())
	albedo := resource.NewTexture("albedo", resource.Image{}, resource.DefaultMeta(), resource.DefaultSample())

	def := material.New("default", nil)
	def.Uniforms["albedo_tex"] = uniform.TextureValue(white)
	custom := material.New("custom", nil)
	custom.Uniforms["albedo_tex"] = uniform.TextureValue(albedo)
	custom.Uniforms["detail_tex"] = uniform.TextureValue(white)

	g1, g2 := triangle(), triangle()
	m := &mesh.Mesh{Sections: []mesh.Section{
		{Geometry: g1, Material: custom},
		{Geometry: g2},
		{Geometry: g1, Material: custom},
	}}

	s := New(def)
	s.Add(mesh.NewNode(m, mgl32.Ident4()), mesh.NewNode(m, mgl32.Ident4()))

	if geoms := s.Geometries(); len(geoms) != 2 || geoms[0] != g1 || geoms[1] != g2 {
		t.Errorf("geometries = %v", geoms)
	}
	if mats := s.Materials(); len(mats) != 2 || mats[0] != def || mats[1] != custom {
		t.Errorf("materials = %v", mats)
	}
	if texs := s.Textures(); len(texs) != 2 {
		t.Errorf("got %d textures, want 2", len(texs))
	}
}

func TestBounds(t *testing.T) {
	s := New(nil)
	if _, _, ok := s.Bounds(); ok {
		t.Error("empty scene has bounds")
	}

	m := &mesh.Mesh{Sections: []mesh.Section{{Geometry: triangle()}}}
	s.Add(mesh.NewNode(m, mgl32.Ident4()))
	s.Add(mesh.NewNode(m, mgl32.Translate3D(5, -2, 0)))
	s.Add(mesh.NewNode(nil, mgl32.Ident4()))

	min, max, ok := s.Bounds()
	if !ok {
		t.Fatal("no bounds")
	}
	if min != (mgl32.Vec3{0, -2, 0}) || max != (mgl32.Vec3{6, 1, 0}) {
		t.Errorf("bounds = %v..%v", min, max)
	}
}
