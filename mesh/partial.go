package mesh

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/astei/schem2mesh/shape"
)

// partialBlocks emits per-box quads for every voxel whose shape is neither
// empty nor a full cube. No merging happens here; correctness of the odd
// shapes beats polygon count for the minority of voxels involved.
func (m *mesher) partialBlocks(y0, y1 int) {
	for y := y0; y < y1; y++ {
		for z := 0; z < m.grid.Length; z++ {
			for x := 0; x < m.grid.Width; x++ {
				b, _ := m.grid.At(x, y, z)
				if b.IsAir() {
					continue
				}
				s := m.opts.Resolver.Resolve(b)
				if s.IsFull() || s.IsEmpty() {
					continue
				}
				m.quadsFor(x, y, z, s, m.opts.Material(b))
			}
		}
	}
}

// quadsFor emits the visible faces of every box in the shape. A face is
// visible when the box stops short of the cube boundary (always), or when it
// reaches the boundary and the neighbor there does not cover it.
func (m *mesher) quadsFor(x, y, z int, s shape.Shape, material string) {
	for _, box := range s.AllBoxes() {
		for _, f := range shape.Faces {
			if box.ReachesBoundary(f) {
				dx, dy, dz := f.Normal()
				if m.occludes(x+dx, y+dy, z+dz, f) {
					continue
				}
			}
			m.quads = append(m.quads, boxQuad(x, y, z, box, f, material))
		}
	}
}

// boxQuad builds one face of a box, in world space. UVs use the box's local
// extents so the face samples the matching sub-rectangle of a unit texture.
func boxQuad(x, y, z int, box shape.AABB, f shape.Face, material string) Quad {
	origin := [3]float32{float32(x), float32(y), float32(z)}

	a := f.Axis()
	d1 := (a + 1) % 3
	d2 := (a + 2) % 3

	plane := box.Min(a)
	if f.Positive() {
		plane = box.Max(a)
	}

	basis := faceBases[f]
	q := Quad{Material: material}
	for i, corner := range basis.corners {
		p1 := box.Min(d1)
		if corner[0] == 1 {
			p1 = box.Max(d1)
		}
		p2 := box.Min(d2)
		if corner[1] == 1 {
			p2 = box.Max(d2)
		}

		var v mgl32.Vec3
		v[a] = origin[a] + plane
		v[d1] = origin[d1] + p1
		v[d2] = origin[d2] + p2
		q.Vertices[i] = v

		q.UVs[i] = localUV(basis, p1, p2)
	}
	return q
}

// localUV maps in-block coordinates to texture space with the face's mirror
// flags applied.
func localUV(basis faceBasis, p1, p2 float32) mgl32.Vec2 {
	var u, v float32
	if basis.uAxis == 1 {
		u, v = p2, p1
		if basis.uFlip {
			u = 1 - p2
		}
		if basis.vFlip {
			v = 1 - p1
		}
	} else {
		u, v = p1, p2
		if basis.uFlip {
			u = 1 - p1
		}
		if basis.vFlip {
			v = 1 - p2
		}
	}
	return mgl32.Vec2{u, v}
}
