package schematic

import (
	"fmt"

	"github.com/Tnze/go-mc/nbt"
)

// Format identifies which container a grid was decoded from.
type Format int

const (
	FormatUnknown Format = iota
	// FormatLegacy is the old MCEdit .schematic container.
	FormatLegacy
	// FormatSpongeV2 is the Sponge .schem container, schema generation 2.
	FormatSpongeV2
	// FormatSpongeV3 is the Sponge .schem container, schema generation 3.
	FormatSpongeV3
	// FormatLitematic is the Litematica .litematic container.
	FormatLitematic
)

func (f Format) String() string {
	switch f {
	case FormatLegacy:
		return "legacy"
	case FormatSpongeV2:
		return "sponge-v2"
	case FormatSpongeV3:
		return "sponge-v3"
	case FormatLitematic:
		return "litematic"
	default:
		return "unknown"
	}
}

// BlockEntity is a block-attached data record (chest contents, sign text).
// The payload stays as raw NBT; only the id and position are interpreted.
type BlockEntity struct {
	ID   string
	Pos  [3]int32
	Data nbt.RawMessage
}

// Entity is a free-standing entity with a float position.
type Entity struct {
	ID   string
	Pos  [3]float64
	Data nbt.RawMessage
}

// Metadata carries the optional descriptive header some containers store.
type Metadata struct {
	Name         string
	Author       string
	CreatedAt    int64 // unix millis, 0 when absent
	RequiredMods []string
}

// Grid is the unified dense voxel grid every decoder produces and every
// downstream pass consumes. Cells are stored row-major as
// (y*Length+z)*Width+x; len(Blocks) == Width*Height*Length always holds.
// A Grid is built once per decode and never mutated afterwards.
type Grid struct {
	Format Format

	Width  int
	Height int
	Length int

	Blocks []Block

	BlockEntities []BlockEntity
	Entities      []Entity
	Metadata      Metadata
}

// NewGrid allocates a grid of the given dimensions filled with air.
func NewGrid(width, height, length int) (*Grid, error) {
	if width < 0 || height < 0 || length < 0 {
		return nil, fmt.Errorf("schematic: negative dimensions %dx%dx%d", width, height, length)
	}
	g := &Grid{
		Width:  width,
		Height: height,
		Length: length,
		Blocks: make([]Block, width*height*length),
	}
	air := Air()
	for i := range g.Blocks {
		g.Blocks[i] = air
	}
	return g, nil
}

// Index converts coordinates to the flat cell index. Callers must have
// bounds-checked already; At is the safe accessor.
func (g *Grid) Index(x, y, z int) int {
	return (y*g.Length+z)*g.Width + x
}

// At returns the block at (x, y, z). Reads outside the grid are defined as
// absent: the zero Block and false, never a panic.
func (g *Grid) At(x, y, z int) (Block, bool) {
	if x < 0 || y < 0 || z < 0 || x >= g.Width || y >= g.Height || z >= g.Length {
		return Block{}, false
	}
	return g.Blocks[g.Index(x, y, z)], true
}

// Volume is the total cell count.
func (g *Grid) Volume() int {
	return g.Width * g.Height * g.Length
}

// SolidCount is the number of non-air cells.
func (g *Grid) SolidCount() int {
	n := 0
	for _, b := range g.Blocks {
		if !b.IsAir() {
			n++
		}
	}
	return n
}

func (g *Grid) String() string {
	return fmt.Sprintf("%dx%dx%d %s schematic (%d blocks)", g.Width, g.Height, g.Length, g.Format, g.SolidCount())
}
