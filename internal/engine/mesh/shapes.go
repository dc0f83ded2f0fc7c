package mesh

import (
	"github.com/go-gl/mathgl/mgl32"
)

// boxFaces lists the outward normal and the U axis of each box face.
var boxFaces = [6][2]mgl32.Vec3{
	{{1, 0, 0}, {0, 0, -1}},
	{{-1, 0, 0}, {0, 0, 1}},
	{{0, 1, 0}, {1, 0, 0}},
	{{0, -1, 0}, {1, 0, 0}},
	{{0, 0, 1}, {1, 0, 0}},
	{{0, 0, -1}, {-1, 0, 0}},
}

// Box returns a box centered on the origin with 4 vertices per face so every
// face has its own normals and UVs.
func Box(size mgl32.Vec3) GeometryData {
	half := size.Mul(0.5)
	var d GeometryData
	for _, f := range boxFaces {
		n, u := f[0], f[1]
		v := n.Cross(u)
		base := uint32(len(d.Positions))
		for _, c := range [4]mgl32.Vec2{{-1, -1}, {1, -1}, {1, 1}, {-1, 1}} {
			p := n.Add(u.Mul(c.X())).Add(v.Mul(c.Y()))
			d.Positions = append(d.Positions, mgl32.Vec3{p.X() * half.X(), p.Y() * half.Y(), p.Z() * half.Z()})
			d.Normals = append(d.Normals, n)
			d.UVs = append(d.UVs, mgl32.Vec2{(c.X() + 1) / 2, (1 - c.Y()) / 2})
		}
		d.Indices = append(d.Indices, base, base+1, base+2, base, base+2, base+3)
	}
	return withTangents(d)
}

// Plane returns a square in the XZ plane facing +Y.
func Plane(size float32) GeometryData {
	h := size / 2
	return withTangents(GeometryData{
		Positions: []mgl32.Vec3{{-h, 0, h}, {h, 0, h}, {h, 0, -h}, {-h, 0, -h}},
		Normals:   []mgl32.Vec3{{0, 1, 0}, {0, 1, 0}, {0, 1, 0}, {0, 1, 0}},
		UVs:       []mgl32.Vec2{{0, 1}, {1, 1}, {1, 0}, {0, 0}},
		Indices:   []uint32{0, 1, 2, 0, 2, 3},
	})
}

func withTangents(d GeometryData) GeometryData {
	t, err := GenerateTangents(d)
	if err != nil {
		panic(err)
	}
	d.Tangents = t
	return d
}
