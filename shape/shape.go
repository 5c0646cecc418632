// Package shape resolves a block's static geometry: is it a full cube, one
// box, several boxes, or nothing at all, and which of its six faces fully
// cover the unit-cube boundary. The mesher consumes only those two answers.
package shape

// Face is one of the six axis-aligned face directions of a voxel.
type Face int

const (
	XNeg Face = iota // -X, west
	XPos             // +X, east
	YNeg             // -Y, bottom
	YPos             // +Y, top
	ZNeg             // -Z, north
	ZPos             // +Z, south
)

// Faces lists all six directions in a fixed order.
var Faces = [6]Face{XNeg, XPos, YNeg, YPos, ZNeg, ZPos}

// Opposite returns the face a neighbor presents back across this boundary.
func (f Face) Opposite() Face {
	return f ^ 1
}

// Axis returns the axis index (0=x, 1=y, 2=z) the face is normal to.
func (f Face) Axis() int {
	return int(f) >> 1
}

// Positive reports whether the face normal points in the positive direction.
func (f Face) Positive() bool {
	return f&1 == 1
}

// Normal is the unit offset from a voxel to the neighbor across this face.
func (f Face) Normal() (dx, dy, dz int) {
	switch f {
	case XNeg:
		return -1, 0, 0
	case XPos:
		return 1, 0, 0
	case YNeg:
		return 0, -1, 0
	case YPos:
		return 0, 1, 0
	case ZNeg:
		return 0, 0, -1
	default:
		return 0, 0, 1
	}
}

func (f Face) String() string {
	switch f {
	case XNeg:
		return "x-"
	case XPos:
		return "x+"
	case YNeg:
		return "y-"
	case YPos:
		return "y+"
	case ZNeg:
		return "z-"
	default:
		return "z+"
	}
}

// coverEpsilon absorbs float rounding when testing whether a box extent
// reaches the unit-cube boundary.
const coverEpsilon = 0.001

// AABB is an axis-aligned box in the voxel's local [0,1]^3 space.
type AABB struct {
	MinX, MinY, MinZ float32
	MaxX, MaxY, MaxZ float32
}

// Box is shorthand for constructing an AABB.
func Box(minX, minY, minZ, maxX, maxY, maxZ float32) AABB {
	return AABB{minX, minY, minZ, maxX, maxY, maxZ}
}

// FullCube spans the whole voxel.
func FullCube() AABB {
	return AABB{0, 0, 0, 1, 1, 1}
}

// Min returns the lower corner coordinate on the given axis.
func (a AABB) Min(axis int) float32 {
	switch axis {
	case 0:
		return a.MinX
	case 1:
		return a.MinY
	default:
		return a.MinZ
	}
}

// Max returns the upper corner coordinate on the given axis.
func (a AABB) Max(axis int) float32 {
	switch axis {
	case 0:
		return a.MaxX
	case 1:
		return a.MaxY
	default:
		return a.MaxZ
	}
}

// ReachesBoundary reports whether the box touches the unit-cube plane the
// face lies in, regardless of how much of that plane it spans.
func (a AABB) ReachesBoundary(f Face) bool {
	if f.Positive() {
		return a.Max(f.Axis()) >= 1-coverEpsilon
	}
	return a.Min(f.Axis()) <= coverEpsilon
}

// CoversFace reports whether the box fully covers the unit-cube face: it
// reaches the face's plane and spans [0,1] on both orthogonal axes.
func (a AABB) CoversFace(f Face) bool {
	if !a.ReachesBoundary(f) {
		return false
	}
	for axis := 0; axis < 3; axis++ {
		if axis == f.Axis() {
			continue
		}
		if a.Min(axis) > coverEpsilon || a.Max(axis) < 1-coverEpsilon {
			return false
		}
	}
	return true
}

// Kind tags the Shape union.
type Kind int

const (
	// KindEmpty has no solid geometry at all (air, flowers, signs).
	KindEmpty Kind = iota
	// KindFull is the full unit cube; the only kind the greedy mesher merges.
	KindFull
	// KindBoxes is one or more boxes (slabs, stairs, fences).
	KindBoxes
)

// Shape is a block's static geometry. The zero value is Empty.
type Shape struct {
	Kind  Kind
	Boxes []AABB
}

// Empty returns the no-geometry shape.
func Empty() Shape {
	return Shape{Kind: KindEmpty}
}

// Full returns the full-cube shape.
func Full() Shape {
	return Shape{Kind: KindFull}
}

// OneBox wraps a single box.
func OneBox(b AABB) Shape {
	return Shape{Kind: KindBoxes, Boxes: []AABB{b}}
}

// ManyBoxes wraps several boxes.
func ManyBoxes(boxes ...AABB) Shape {
	return Shape{Kind: KindBoxes, Boxes: boxes}
}

// IsFull reports whether the shape is the full unit cube.
func (s Shape) IsFull() bool {
	return s.Kind == KindFull
}

// IsEmpty reports whether the shape has no geometry.
func (s Shape) IsEmpty() bool {
	return s.Kind == KindEmpty
}

// AllBoxes returns the geometry as a box list; a full cube yields one box.
func (s Shape) AllBoxes() []AABB {
	switch s.Kind {
	case KindFull:
		return []AABB{FullCube()}
	case KindBoxes:
		return s.Boxes
	default:
		return nil
	}
}

// CoversFace reports whether the shape occludes the given face entirely.
// For multi-box shapes this is true when ANY box covers the face, which is
// deliberately conservative: a concave arrangement whose boxes only jointly
// cover a face reports false, and one whose single box covers it while others
// notch the interior reports true. Reference-parity behavior.
func (s Shape) CoversFace(f Face) bool {
	switch s.Kind {
	case KindFull:
		return true
	case KindBoxes:
		for _, b := range s.Boxes {
			if b.CoversFace(f) {
				return true
			}
		}
	}
	return false
}
