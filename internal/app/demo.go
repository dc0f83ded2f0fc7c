package app

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/ron/internal/assets"
	"github.com/Faultbox/ron/internal/engine/lighting"
	"github.com/Faultbox/ron/internal/engine/mesh"
	"github.com/Faultbox/ron/internal/engine/scene"
	"github.com/Faultbox/ron/internal/engine/uniform"
)

// DemoScene is shown when no model is configured: a ground plane with a few
// boxes under a shadow casting sun.
func DemoScene(lib *assets.Library) *scene.Scene {
	s := scene.New(lib.DefaultMaterial())

	ground := &mesh.Mesh{Name: "ground", Sections: []mesh.Section{
		{Geometry: mesh.MustGeometry(mesh.Plane(20))},
	}}
	s.Add(mesh.NewNode(ground, mgl32.Ident4()))

	box := mesh.MustGeometry(mesh.Box(mgl32.Vec3{1, 1, 1}))
	colors := []mgl32.Vec4{
		{0.8, 0.2, 0.2, 1},
		{0.2, 0.7, 0.3, 1},
		{0.2, 0.4, 0.8, 1},
	}
	for i, c := range colors {
		m := lib.NewBlinnPhongMaterial("demo.box")
		m.Uniforms[assets.UniformAlbedoColor] = uniform.Vec4(c)
		m.Uniforms[assets.UniformRoughnessFactor] = uniform.Float(0.3 + 0.2*float32(i))

		x := float32(i-1) * 3
		size := 1 + float32(i)*0.5
		model := mgl32.Translate3D(x, size/2, 0).
			Mul4(mgl32.HomogRotate3DY(mgl32.DegToRad(float32(i) * 20))).
			Mul4(mgl32.Scale3D(size, size, size))

		boxes := &mesh.Mesh{Name: "box", Sections: []mesh.Section{{Geometry: box, Material: m}}}
		s.Add(mesh.NewNode(boxes, model))
	}

	sun := lighting.NewDirectionalLight()
	sun.Direction = lighting.SunDirection(35, 50)
	sun.Shadow.Enabled = true
	s.SetDirectionalLight(sun)
	return s
}
