package format

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/astei/schem2mesh/schematic"
)

type litematicPaletteFixture struct {
	Name       string            `nbt:"Name"`
	Properties map[string]string `nbt:"Properties"`
}

type litematicRegionFixture struct {
	Position    vec3i                     `nbt:"Position"`
	Size        vec3i                     `nbt:"Size"`
	Palette     []litematicPaletteFixture `nbt:"BlockStatePalette"`
	BlockStates []int64                   `nbt:"BlockStates"`
}

type litematicFixture struct {
	Version  int32                             `nbt:"Version"`
	Metadata litematicMetadataFixture          `nbt:"Metadata"`
	Regions  map[string]litematicRegionFixture `nbt:"Regions"`
}

type litematicMetadataFixture struct {
	Name          string `nbt:"Name"`
	Author        string `nbt:"Author"`
	TimeCreated   int64  `nbt:"TimeCreated"`
	EnclosingSize vec3i  `nbt:"EnclosingSize"`
}

// packIndices is the inverse of unpackIndices, for building fixtures.
func packIndices(indices []int, bitsPer int) []int64 {
	words := make([]int64, (len(indices)*bitsPer+63)/64)
	bitOffset := 0
	for _, v := range indices {
		wordIdx := bitOffset / 64
		bitInWord := bitOffset % 64
		words[wordIdx] |= int64(uint64(v) << bitInWord)
		if bitInWord+bitsPer > 64 {
			words[wordIdx+1] |= int64(uint64(v) >> (64 - bitInWord))
		}
		bitOffset += bitsPer
	}
	return words
}

func TestDecodeLitematic(t *testing.T) {
	// 2x1x2 region: stone, air, air, dirt in YZX order.
	data := mustMarshal(t, litematicFixture{
		Version: 5,
		Metadata: litematicMetadataFixture{
			Name:          "test build",
			Author:        "someone",
			TimeCreated:   1700000000000,
			EnclosingSize: vec3i{X: 2, Y: 1, Z: 2},
		},
		Regions: map[string]litematicRegionFixture{
			"main": {
				Size: vec3i{X: 2, Y: 1, Z: 2},
				Palette: []litematicPaletteFixture{
					{Name: "minecraft:air"},
					{Name: "minecraft:stone"},
					{Name: "minecraft:dirt"},
				},
				BlockStates: packIndices([]int{1, 0, 0, 2}, 2),
			},
		},
	})

	grid, err := Decode(bytes.NewReader(data))
	require.NoError(t, err)

	assert.Equal(t, schematic.FormatLitematic, grid.Format)
	assert.Equal(t, 2, grid.Width)
	assert.Equal(t, 1, grid.Height)
	assert.Equal(t, 2, grid.Length)
	assert.Equal(t, "test build", grid.Metadata.Name)
	assert.Equal(t, "someone", grid.Metadata.Author)

	b, _ := grid.At(0, 0, 0)
	assert.Equal(t, "minecraft:stone", b.Name)
	b, _ = grid.At(1, 0, 0)
	assert.True(t, b.IsAir())
	b, _ = grid.At(1, 0, 1)
	assert.Equal(t, "minecraft:dirt", b.Name)
}

func TestDecodeLitematicEightMaterialCube(t *testing.T) {
	palette := make([]litematicPaletteFixture, len(eightMaterials))
	indices := make([]int, len(eightMaterials))
	for i, name := range eightMaterials {
		palette[i] = litematicPaletteFixture{Name: name}
		indices[i] = i
	}

	data := mustMarshal(t, litematicFixture{
		Version: 5,
		Metadata: litematicMetadataFixture{
			EnclosingSize: vec3i{X: 2, Y: 2, Z: 2},
		},
		Regions: map[string]litematicRegionFixture{
			"main": {
				Size:        vec3i{X: 2, Y: 2, Z: 2},
				Palette:     palette,
				BlockStates: packIndices(indices, 3),
			},
		},
	})

	grid, err := Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assertEightMaterialCube(t, grid)
}

func TestDecodeLitematicProperties(t *testing.T) {
	data := mustMarshal(t, litematicFixture{
		Version: 6,
		Metadata: litematicMetadataFixture{
			EnclosingSize: vec3i{X: 1, Y: 1, Z: 1},
		},
		Regions: map[string]litematicRegionFixture{
			"main": {
				Size: vec3i{X: 1, Y: 1, Z: 1},
				Palette: []litematicPaletteFixture{
					{Name: "minecraft:oak_stairs", Properties: map[string]string{
						"facing": "east",
						"half":   "bottom",
					}},
				},
				BlockStates: packIndices([]int{0}, 1),
			},
		},
	})

	grid, err := Decode(bytes.NewReader(data))
	require.NoError(t, err)

	b, _ := grid.At(0, 0, 0)
	assert.Equal(t, "minecraft:oak_stairs", b.Name)
	assert.Equal(t, "east", b.Property("facing"))
}

func TestDecodeLitematicNegativeSize(t *testing.T) {
	// Region anchored at x=1 extending two cells in the negative direction:
	// its origin corner is pos+size+1 = 0.
	data := mustMarshal(t, litematicFixture{
		Version: 5,
		Metadata: litematicMetadataFixture{
			EnclosingSize: vec3i{X: 2, Y: 1, Z: 1},
		},
		Regions: map[string]litematicRegionFixture{
			"main": {
				Position: vec3i{X: 1},
				Size:     vec3i{X: -2, Y: 1, Z: 1},
				Palette: []litematicPaletteFixture{
					{Name: "minecraft:air"},
					{Name: "minecraft:stone"},
				},
				BlockStates: packIndices([]int{1, 1}, 1),
			},
		},
	})

	grid, err := Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, 2, grid.SolidCount())

	for x := 0; x < 2; x++ {
		b, ok := grid.At(x, 0, 0)
		require.True(t, ok)
		assert.Equal(t, "minecraft:stone", b.Name, "x=%d", x)
	}
}

func TestDecodeLitematicExtentFromRegions(t *testing.T) {
	// No EnclosingSize: the grid is sized by the union of region extents.
	data := mustMarshal(t, litematicFixture{
		Version: 5,
		Regions: map[string]litematicRegionFixture{
			"a": {
				Size: vec3i{X: 2, Y: 1, Z: 1},
				Palette: []litematicPaletteFixture{
					{Name: "minecraft:stone"},
				},
				BlockStates: packIndices([]int{0, 0}, 1),
			},
			"b": {
				Position: vec3i{X: 2, Z: 1},
				Size:     vec3i{X: 1, Y: 2, Z: 1},
				Palette: []litematicPaletteFixture{
					{Name: "minecraft:dirt"},
				},
				BlockStates: packIndices([]int{0, 0}, 1),
			},
		},
	})

	grid, err := Decode(bytes.NewReader(data))
	require.NoError(t, err)

	assert.Equal(t, 3, grid.Width)
	assert.Equal(t, 2, grid.Height)
	assert.Equal(t, 2, grid.Length)
	assert.Equal(t, 4, grid.SolidCount())

	b, _ := grid.At(2, 1, 1)
	assert.Equal(t, "minecraft:dirt", b.Name)
}

func TestDecodeLitematicExtentNegativeSizeOvershoot(t *testing.T) {
	// Without EnclosingSize, a negative-size region sizes the grid to
	// abs(pos)+abs(size), one column past its far edge; the spare column
	// stays air.
	data := mustMarshal(t, litematicFixture{
		Version: 5,
		Regions: map[string]litematicRegionFixture{
			"main": {
				Position: vec3i{X: 1, Y: 0, Z: 0},
				Size:     vec3i{X: -2, Y: 1, Z: 1},
				Palette: []litematicPaletteFixture{
					{Name: "minecraft:stone"},
				},
				BlockStates: packIndices([]int{0, 0}, 1),
			},
		},
	})

	grid, err := Decode(bytes.NewReader(data))
	require.NoError(t, err)

	assert.Equal(t, 3, grid.Width)
	assert.Equal(t, 2, grid.SolidCount())
	b, _ := grid.At(0, 0, 0)
	assert.Equal(t, "minecraft:stone", b.Name)
	b, _ = grid.At(1, 0, 0)
	assert.Equal(t, "minecraft:stone", b.Name)
	b, _ = grid.At(2, 0, 0)
	assert.True(t, b.IsAir())
}

func TestBitsPerIndex(t *testing.T) {
	assert.Equal(t, 1, bitsPerIndex(0))
	assert.Equal(t, 1, bitsPerIndex(1))
	assert.Equal(t, 1, bitsPerIndex(2))
	assert.Equal(t, 2, bitsPerIndex(3))
	assert.Equal(t, 2, bitsPerIndex(4))
	assert.Equal(t, 3, bitsPerIndex(5))
	assert.Equal(t, 4, bitsPerIndex(16))
	assert.Equal(t, 5, bitsPerIndex(17))
}

func TestUnpackIndicesWordStraddle(t *testing.T) {
	// 13 five-bit values cross the first 64-bit word boundary at value 12.
	want := []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 27}
	words := packIndices(want, 5)
	require.Len(t, words, 2)

	got := unpackIndices(words, 5, len(want))
	assert.Equal(t, want, got)
}

func TestUnpackIndicesShortArray(t *testing.T) {
	// Reads past the packed data yield index zero.
	got := unpackIndices([]int64{0b10}, 1, 70)
	assert.Equal(t, 0, got[0])
	assert.Equal(t, 1, got[1])
	for _, v := range got[64:] {
		assert.Equal(t, 0, v)
	}
}
