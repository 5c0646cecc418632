package format

import (
	"math/bits"

	"github.com/Tnze/go-mc/nbt"

	"github.com/astei/schem2mesh/schematic"
)

// litematicFile is the Litematica .litematic schema: named regions, each
// with its own palette and a bit-packed long array of palette indices.
type litematicFile struct {
	Version              int32                      `nbt:"Version"`
	MinecraftDataVersion int32                      `nbt:"MinecraftDataVersion"`
	Metadata             litematicMetadata          `nbt:"Metadata"`
	Regions              map[string]litematicRegion `nbt:"Regions"`
}

type litematicMetadata struct {
	Name          string `nbt:"Name"`
	Author        string `nbt:"Author"`
	Description   string `nbt:"Description"`
	TimeCreated   int64  `nbt:"TimeCreated"`
	TimeModified  int64  `nbt:"TimeModified"`
	EnclosingSize vec3i  `nbt:"EnclosingSize"`
}

type vec3i struct {
	X int32 `nbt:"x"`
	Y int32 `nbt:"y"`
	Z int32 `nbt:"z"`
}

type litematicRegion struct {
	Position          vec3i                   `nbt:"Position"`
	Size              vec3i                   `nbt:"Size"`
	BlockStatePalette []litematicPaletteEntry `nbt:"BlockStatePalette"`
	BlockStates       []int64                 `nbt:"BlockStates"`
	TileEntities      []nbt.RawMessage        `nbt:"TileEntities"`
	Entities          []nbt.RawMessage        `nbt:"Entities"`
}

type litematicPaletteEntry struct {
	Name       string            `nbt:"Name"`
	Properties map[string]string `nbt:"Properties"`
}

func decodeLitematic(raw []byte) (*schematic.Grid, error) {
	var lit litematicFile
	if err := nbt.Unmarshal(raw, &lit); err != nil {
		return nil, errSchemaMismatch
	}
	if lit.Version == 0 || len(lit.Regions) == 0 {
		return nil, errSchemaMismatch
	}

	width, height, length := litematicExtent(&lit)
	grid, err := schematic.NewGrid(width, height, length)
	if err != nil {
		return nil, err
	}
	grid.Format = schematic.FormatLitematic
	grid.Metadata = schematic.Metadata{
		Name:      lit.Metadata.Name,
		Author:    lit.Metadata.Author,
		CreatedAt: lit.Metadata.TimeCreated,
	}

	// Overlapping regions write over each other; the format does not define
	// an ordering between them.
	for _, region := range lit.Regions {
		placeRegion(grid, &region)
	}
	return grid, nil
}

// litematicExtent sizes the grid from Metadata.EnclosingSize when present,
// falling back to the union of region extents. A negative-size region
// occupies abs(size) cells starting at pos+size+1, so abs(pos)+abs(size)
// overshoots its far edge by one; Litematica computes the fallback the same
// way and the spare cells stay air, so keep the arithmetic matched.
func litematicExtent(lit *litematicFile) (width, height, length int) {
	enc := lit.Metadata.EnclosingSize
	if enc.X != 0 || enc.Y != 0 || enc.Z != 0 {
		return absInt(enc.X), absInt(enc.Y), absInt(enc.Z)
	}
	for _, region := range lit.Regions {
		width = maxInt(width, absInt(region.Position.X)+absInt(region.Size.X))
		height = maxInt(height, absInt(region.Position.Y)+absInt(region.Size.Y))
		length = maxInt(length, absInt(region.Position.Z)+absInt(region.Size.Z))
	}
	return width, height, length
}

func placeRegion(grid *schematic.Grid, region *litematicRegion) {
	palette := make([]schematic.Block, len(region.BlockStatePalette))
	for i, entry := range region.BlockStatePalette {
		palette[i] = schematic.Block{
			Name:  entry.Name,
			State: schematic.BlockState(entry.Properties),
		}
	}
	if len(palette) == 0 {
		return
	}

	rw := absInt(region.Size.X)
	rh := absInt(region.Size.Y)
	rl := absInt(region.Size.Z)
	volume := rw * rh * rl
	if volume == 0 || region.BlockStates == nil {
		return
	}

	unpacked := unpackIndices(region.BlockStates, bitsPerIndex(len(palette)), volume)
	for i, paletteIdx := range unpacked {
		if paletteIdx >= len(palette) {
			continue
		}

		// Region cells are stored in YZX order.
		ry := i / (rl * rw)
		rz := (i / rw) % rl
		rx := i % rw

		gx := regionCoord(region.Position.X, region.Size.X, rx)
		gy := regionCoord(region.Position.Y, region.Size.Y, ry)
		gz := regionCoord(region.Position.Z, region.Size.Z, rz)
		if gx < 0 || gy < 0 || gz < 0 || gx >= grid.Width || gy >= grid.Height || gz >= grid.Length {
			continue
		}
		grid.Blocks[grid.Index(gx, gy, gz)] = palette[paletteIdx]
	}

	for _, be := range decodeLegacyTileEntities(region.TileEntities) {
		be.Pos[0] += region.Position.X
		be.Pos[1] += region.Position.Y
		be.Pos[2] += region.Position.Z
		grid.BlockEntities = append(grid.BlockEntities, be)
	}
	for _, e := range decodeEntityList(region.Entities) {
		e.Pos[0] += float64(region.Position.X)
		e.Pos[1] += float64(region.Position.Y)
		e.Pos[2] += float64(region.Position.Z)
		grid.Entities = append(grid.Entities, e)
	}
}

// regionCoord maps a local region coordinate to the grid. A negative size
// means the region extends in the negative direction from its anchor, so the
// origin corner sits at pos+size+1.
func regionCoord(pos, size int32, local int) int {
	if size < 0 {
		return int(pos+size+1) + local
	}
	return int(pos) + local
}

// bitsPerIndex is the palette index width: ceil(log2(size)), minimum 1.
func bitsPerIndex(paletteSize int) int {
	if paletteSize <= 1 {
		return 1
	}
	return bits.Len(uint(paletteSize - 1))
}

// unpackIndices reads count values of width bitsPer from the long array.
// Values start at the low bit of word zero and straddle word boundaries;
// reads past the end of the array yield zero.
func unpackIndices(words []int64, bitsPer, count int) []int {
	out := make([]int, count)
	mask := uint64(1)<<bitsPer - 1

	bitOffset := 0
	for i := 0; i < count; i++ {
		wordIdx := bitOffset / 64
		bitInWord := bitOffset % 64
		bitOffset += bitsPer

		if wordIdx >= len(words) {
			continue
		}
		value := uint64(words[wordIdx]) >> bitInWord
		if bitInWord+bitsPer > 64 && wordIdx+1 < len(words) {
			value |= uint64(words[wordIdx+1]) << (64 - bitInWord)
		}
		out[i] = int(value & mask)
	}
	return out
}

func absInt(v int32) int {
	if v < 0 {
		return int(-v)
	}
	return int(v)
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
