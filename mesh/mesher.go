package mesh

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/willf/bitset"

	"github.com/astei/schem2mesh/schematic"
	"github.com/astei/schem2mesh/shape"
)

// Options configures a mesh build. The zero value is usable: builtin shape
// rules, DefaultMaterial, whole grid in one pass.
type Options struct {
	// Resolver supplies block shapes; nil uses the builtin rules.
	Resolver *shape.Resolver

	// Material names quad materials; nil uses DefaultMaterial.
	Material MaterialFunc

	// SliceHeight > 0 meshes the grid in horizontal bands of that many
	// layers, bounding the working set for very tall grids. Faces at band
	// seams still occlude correctly; rectangles just stop merging across
	// the seam.
	SliceHeight int

	// Progress, when set, is called after each band with the number of
	// layers finished and the grid height.
	Progress func(done, total int)
}

func (o *Options) fill() {
	if o.Resolver == nil {
		o.Resolver = shape.NewResolver()
	}
	if o.Material == nil {
		o.Material = DefaultMaterial
	}
}

// Mesh compiles the grid into quads. Output is deterministic: face
// directions in fixed order, slices ascending, rectangles claimed in
// row-major order growing width before height. Running it twice on the same
// grid produces identical quad lists.
func Mesh(grid *schematic.Grid, opts Options) []Quad {
	opts.fill()

	m := &mesher{grid: grid, opts: opts}
	band := opts.SliceHeight
	if band <= 0 || band >= grid.Height {
		band = grid.Height
	}
	for y0 := 0; y0 < grid.Height; y0 += band {
		y1 := y0 + band
		if y1 > grid.Height {
			y1 = grid.Height
		}
		m.meshBand(y0, y1)
		if opts.Progress != nil {
			opts.Progress(y1, grid.Height)
		}
	}
	return m.quads
}

type mesher struct {
	grid  *schematic.Grid
	opts  Options
	quads []Quad
}

func (m *mesher) meshBand(y0, y1 int) {
	for _, f := range shape.Faces {
		m.greedyDirection(f, y0, y1)
	}
	m.partialBlocks(y0, y1)
}

// faceBasis fixes a face direction's vertex winding and texture orientation.
// Corners list the four vertices as (d1, d2) max-edge flags in CCW order
// viewed from outside; uAxis picks which in-plane axis carries U, and the
// flips mirror a coordinate so textures read consistently from outside the
// grid.
type faceBasis struct {
	corners [4][2]int
	uAxis   int // 0: U along d1, 1: U along d2
	uFlip   bool
	vFlip   bool
}

var faceBases = [6]faceBasis{
	shape.XNeg: {corners: [4][2]int{{0, 0}, {0, 1}, {1, 1}, {1, 0}}, uAxis: 1},
	shape.XPos: {corners: [4][2]int{{0, 1}, {0, 0}, {1, 0}, {1, 1}}, uAxis: 1, uFlip: true},
	shape.YNeg: {corners: [4][2]int{{0, 0}, {0, 1}, {1, 1}, {1, 0}}, uAxis: 1},
	shape.YPos: {corners: [4][2]int{{1, 0}, {1, 1}, {0, 1}, {0, 0}}, uAxis: 1, vFlip: true},
	shape.ZNeg: {corners: [4][2]int{{1, 0}, {0, 0}, {0, 1}, {1, 1}}, uAxis: 0, uFlip: true},
	shape.ZPos: {corners: [4][2]int{{0, 0}, {1, 0}, {1, 1}, {0, 1}}, uAxis: 0},
}

// greedyDirection meshes every slice perpendicular to the face's axis. Each
// slice builds a d1 x d2 material mask of exposed full-cube faces, then
// merges the mask into maximal rectangles.
func (m *mesher) greedyDirection(f shape.Face, y0, y1 int) {
	lo := [3]int{0, y0, 0}
	hi := [3]int{m.grid.Width, y1, m.grid.Length}

	a := f.Axis()
	d1 := (a + 1) % 3
	d2 := (a + 2) % 3
	n1 := hi[d1] - lo[d1]
	n2 := hi[d2] - lo[d2]
	if n1 <= 0 || n2 <= 0 {
		return
	}

	mask := make([]string, n1*n2)
	claimed := bitset.New(uint(n1 * n2))
	dx, dy, dz := f.Normal()

	for s := lo[a]; s < hi[a]; s++ {
		for i := range mask {
			mask[i] = ""
		}
		claimed.ClearAll()

		for i1 := 0; i1 < n1; i1++ {
			for i2 := 0; i2 < n2; i2++ {
				var c [3]int
				c[a] = s
				c[d1] = lo[d1] + i1
				c[d2] = lo[d2] + i2

				b, _ := m.grid.At(c[0], c[1], c[2])
				if b.IsAir() || !m.opts.Resolver.Resolve(b).IsFull() {
					continue
				}
				if m.occludes(c[0]+dx, c[1]+dy, c[2]+dz, f) {
					continue
				}
				mask[i1*n2+i2] = m.opts.Material(b)
			}
		}

		m.mergeMask(f, s, lo, d1, d2, n1, n2, mask, claimed)
	}
}

// occludes reports whether the voxel at (x, y, z) fully covers the boundary
// it shares with the neighbor looking at it across face f.
func (m *mesher) occludes(x, y, z int, f shape.Face) bool {
	b, ok := m.grid.At(x, y, z)
	if !ok || b.IsAir() {
		return false
	}
	return m.opts.Resolver.Resolve(b).CoversFace(f.Opposite())
}

func (m *mesher) mergeMask(f shape.Face, s int, lo [3]int, d1, d2, n1, n2 int, mask []string, claimed *bitset.BitSet) {
	for i1 := 0; i1 < n1; i1++ {
		for i2 := 0; i2 < n2; i2++ {
			idx := i1*n2 + i2
			material := mask[idx]
			if material == "" || claimed.Test(uint(idx)) {
				continue
			}

			// Grow width along d2, then height along d1; a row extends the
			// rectangle only if every cell across the current width matches.
			width := 1
			for i2+width < n2 {
				next := idx + width
				if mask[next] != material || claimed.Test(uint(next)) {
					break
				}
				width++
			}
			height := 1
		grow:
			for i1+height < n1 {
				row := (i1+height)*n2 + i2
				for k := 0; k < width; k++ {
					if mask[row+k] != material || claimed.Test(uint(row+k)) {
						break grow
					}
				}
				height++
			}

			for r := 0; r < height; r++ {
				for k := 0; k < width; k++ {
					claimed.Set(uint((i1+r)*n2 + i2 + k))
				}
			}

			m.quads = append(m.quads, rectQuad(f, s, d1, d2,
				float32(lo[d1]+i1), float32(lo[d2]+i2),
				float32(height), float32(width), material))
		}
	}
}

// rectQuad builds the quad for a merged rectangle: p1/p2 are the rectangle's
// low corner on the d1/d2 axes, e1/e2 its extents. UVs span the extents so
// unit textures tile across merged faces.
func rectQuad(f shape.Face, s, d1, d2 int, p1, p2, e1, e2 float32, material string) Quad {
	a := f.Axis()
	plane := float32(s)
	if f.Positive() {
		plane++
	}

	basis := faceBases[f]
	q := Quad{Material: material}
	for i, corner := range basis.corners {
		var v mgl32.Vec3
		v[a] = plane
		v[d1] = p1 + float32(corner[0])*e1
		v[d2] = p2 + float32(corner[1])*e2
		q.Vertices[i] = v

		q.UVs[i] = cornerUV(basis, float32(corner[0]), float32(corner[1]), e1, e2)
	}
	return q
}

// cornerUV maps a corner's (d1, d2) max-edge fractions to texture space,
// honoring the face's U axis choice and mirror flags.
func cornerUV(basis faceBasis, f1, f2, e1, e2 float32) mgl32.Vec2 {
	var u, v float32
	if basis.uAxis == 1 {
		u, v = f2*e2, f1*e1
		if basis.uFlip {
			u = (1 - f2) * e2
		}
		if basis.vFlip {
			v = (1 - f1) * e1
		}
	} else {
		u, v = f1*e1, f2*e2
		if basis.uFlip {
			u = (1 - f1) * e1
		}
		if basis.vFlip {
			v = (1 - f2) * e2
		}
	}
	return mgl32.Vec2{u, v}
}
