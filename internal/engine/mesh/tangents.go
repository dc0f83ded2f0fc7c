package mesh

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// GenerateTangents computes one tangent per vertex from triangle UV
// derivatives. xyz is orthogonal to the vertex normal and w holds the
// handedness so that bitangent = w * cross(normal, tangent.xyz), the glTF
// convention. Triangles with degenerate UVs contribute nothing; vertices left
// without a direction get an arbitrary unit vector perpendicular to the normal.
func GenerateTangents(d GeometryData) ([]mgl32.Vec4, error) {
	n := len(d.Positions)
	switch {
	case n == 0:
		return nil, fmt.Errorf("generating tangents: no positions")
	case len(d.Normals) != n:
		return nil, fmt.Errorf("generating tangents: %d normals for %d positions", len(d.Normals), n)
	case len(d.UVs) != n:
		return nil, fmt.Errorf("generating tangents: %d uvs for %d positions", len(d.UVs), n)
	case len(d.Indices)%3 != 0:
		return nil, fmt.Errorf("generating tangents: index count %d is not a multiple of 3", len(d.Indices))
	}

	tan := make([]mgl32.Vec3, n)
	bitan := make([]mgl32.Vec3, n)

	for f := 0; f+2 < len(d.Indices); f += 3 {
		i0, i1, i2 := d.Indices[f], d.Indices[f+1], d.Indices[f+2]
		if int(i0) >= n || int(i1) >= n || int(i2) >= n {
			return nil, fmt.Errorf("generating tangents: face %d index out of range", f/3)
		}

		e1 := d.Positions[i1].Sub(d.Positions[i0])
		e2 := d.Positions[i2].Sub(d.Positions[i0])
		du1 := d.UVs[i1].Sub(d.UVs[i0])
		du2 := d.UVs[i2].Sub(d.UVs[i0])

		det := du1.X()*du2.Y() - du2.X()*du1.Y()
		if mgl32.Abs(det) < 1e-12 {
			continue
		}
		r := 1 / det

		t := e1.Mul(du2.Y()).Sub(e2.Mul(du1.Y())).Mul(r)
		b := e2.Mul(du1.X()).Sub(e1.Mul(du2.X())).Mul(r)

		for _, i := range [3]uint32{i0, i1, i2} {
			tan[i] = tan[i].Add(t)
			bitan[i] = bitan[i].Add(b)
		}
	}

	out := make([]mgl32.Vec4, n)
	for i := range out {
		normal := d.Normals[i]
		if normal.Len() > 0 {
			normal = normal.Normalize()
		}

		// Gram-Schmidt against the normal
		t := tan[i].Sub(normal.Mul(normal.Dot(tan[i])))
		if t.Len() < 1e-8 {
			t = perpendicular(normal)
		} else {
			t = t.Normalize()
		}

		w := float32(1)
		if normal.Cross(t).Dot(bitan[i]) < 0 {
			w = -1
		}
		out[i] = t.Vec4(w)
	}

	return out, nil
}

// perpendicular returns a unit vector orthogonal to n.
func perpendicular(n mgl32.Vec3) mgl32.Vec3 {
	axis := mgl32.Vec3{1, 0, 0}
	if mgl32.Abs(n.X()) > 0.9 {
		axis = mgl32.Vec3{0, 1, 0}
	}
	p := axis.Sub(n.Mul(n.Dot(axis)))
	if p.Len() == 0 {
		return axis
	}
	return p.Normalize()
}
