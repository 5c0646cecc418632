package shape

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFaceOpposite(t *testing.T) {
	assert.Equal(t, XPos, XNeg.Opposite())
	assert.Equal(t, XNeg, XPos.Opposite())
	assert.Equal(t, YPos, YNeg.Opposite())
	assert.Equal(t, ZNeg, ZPos.Opposite())
}

func TestFaceAxisAndSign(t *testing.T) {
	assert.Equal(t, 0, XNeg.Axis())
	assert.Equal(t, 1, YPos.Axis())
	assert.Equal(t, 2, ZNeg.Axis())
	assert.False(t, XNeg.Positive())
	assert.True(t, YPos.Positive())
}

func TestFaceNormal(t *testing.T) {
	dx, dy, dz := YPos.Normal()
	assert.Equal(t, [3]int{0, 1, 0}, [3]int{dx, dy, dz})
	dx, dy, dz = ZNeg.Normal()
	assert.Equal(t, [3]int{0, 0, -1}, [3]int{dx, dy, dz})
}

func TestFullCubeCoversAllFaces(t *testing.T) {
	cube := FullCube()
	for _, f := range Faces {
		assert.True(t, cube.CoversFace(f), "face %s", f)
	}
}

func TestBottomSlabCoverage(t *testing.T) {
	slab := Box(0, 0, 0, 1, 0.5, 1)
	assert.True(t, slab.CoversFace(YNeg))
	assert.False(t, slab.CoversFace(YPos))
	// Side faces are only half covered.
	assert.False(t, slab.CoversFace(XNeg))
	assert.False(t, slab.CoversFace(ZPos))
}

func TestCoverageEpsilon(t *testing.T) {
	almost := Box(0.0005, 0, 0.0005, 0.9995, 1, 0.9995)
	assert.True(t, almost.CoversFace(YNeg))
	assert.True(t, almost.CoversFace(YPos))

	short := Box(0.01, 0, 0.01, 0.99, 1, 0.99)
	assert.False(t, short.CoversFace(YNeg))
}

func TestReachesBoundary(t *testing.T) {
	post := Box(0.375, 0, 0.375, 0.625, 1, 0.625)
	assert.True(t, post.ReachesBoundary(YNeg))
	assert.True(t, post.ReachesBoundary(YPos))
	assert.False(t, post.ReachesBoundary(XNeg))
	assert.False(t, post.ReachesBoundary(ZPos))
}

func TestShapeKinds(t *testing.T) {
	assert.True(t, Empty().IsEmpty())
	assert.True(t, Full().IsFull())
	assert.False(t, OneBox(FullCube()).IsFull())

	assert.Nil(t, Empty().AllBoxes())
	assert.Equal(t, []AABB{FullCube()}, Full().AllBoxes())
	assert.Len(t, ManyBoxes(FullCube(), FullCube()).AllBoxes(), 2)
}

func TestMultiBoxCoverage(t *testing.T) {
	// Bottom-slab base plus a half-width step: the base alone covers the
	// bottom face, so the shape does too.
	stair := ManyBoxes(
		Box(0, 0, 0, 1, 0.5, 1),
		Box(0, 0.5, 0, 1, 1, 0.5),
	)
	assert.True(t, stair.CoversFace(YNeg))
	assert.False(t, stair.CoversFace(YPos))

	// Two half-slabs jointly cover the bottom, but no single box does.
	// The any-box rule reports false here.
	split := ManyBoxes(
		Box(0, 0, 0, 0.5, 0.5, 1),
		Box(0.5, 0, 0, 1, 0.5, 1),
	)
	assert.False(t, split.CoversFace(YNeg))
}
