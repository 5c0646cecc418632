package format

import (
	"github.com/Tnze/go-mc/nbt"

	"github.com/astei/schem2mesh/schematic"
)

// spongeSchem covers the Sponge .schem schema, generations 2 and 3. V2 keeps
// Palette and BlockData at the root; v3 nests them in a Blocks compound and
// wraps everything in a root "Schematic" tag.
type spongeSchem struct {
	Version     int32 `nbt:"Version"`
	DataVersion int32 `nbt:"DataVersion"`

	Width  int16   `nbt:"Width"`
	Height int16   `nbt:"Height"`
	Length int16   `nbt:"Length"`
	Offset []int32 `nbt:"Offset"`

	Palette    map[string]int32 `nbt:"Palette"`
	PaletteMax int32            `nbt:"PaletteMax"`
	BlockData  []byte           `nbt:"BlockData"`

	BlockEntities []nbt.RawMessage `nbt:"BlockEntities"`
	TileEntities  []nbt.RawMessage `nbt:"TileEntities"`
	Entities      []nbt.RawMessage `nbt:"Entities"`

	Metadata spongeMetadata `nbt:"Metadata"`

	Blocks *spongeBlocks `nbt:"Blocks"`
}

type spongeBlocks struct {
	Palette       map[string]int32 `nbt:"Palette"`
	Data          []byte           `nbt:"Data"`
	BlockEntities []nbt.RawMessage `nbt:"BlockEntities"`
}

type spongeMetadata struct {
	Name         string   `nbt:"Name"`
	Author       string   `nbt:"Author"`
	Date         int64    `nbt:"Date"`
	RequiredMods []string `nbt:"RequiredMods"`
}

type spongeWrapper struct {
	Schematic spongeSchem `nbt:"Schematic"`
}

func decodeSpongeWrapped(raw []byte) (*schematic.Grid, error) {
	var w spongeWrapper
	if err := nbt.Unmarshal(raw, &w); err != nil {
		return nil, errSchemaMismatch
	}
	return buildSponge(&w.Schematic)
}

func decodeSponge(raw []byte) (*schematic.Grid, error) {
	var s spongeSchem
	if err := nbt.Unmarshal(raw, &s); err != nil {
		return nil, errSchemaMismatch
	}
	return buildSponge(&s)
}

func buildSponge(s *spongeSchem) (*schematic.Grid, error) {
	if s.Version == 0 || s.Width <= 0 || s.Height <= 0 || s.Length <= 0 {
		return nil, errSchemaMismatch
	}

	palette := s.Palette
	data := s.BlockData
	blockEntities := s.BlockEntities
	if s.Version >= 3 && s.Blocks != nil {
		palette = s.Blocks.Palette
		data = s.Blocks.Data
		blockEntities = s.Blocks.BlockEntities
	} else if len(blockEntities) == 0 {
		// Some v2 writers kept the older TileEntities name.
		blockEntities = s.TileEntities
	}
	if palette == nil {
		return nil, errSchemaMismatch
	}

	grid, err := schematic.NewGrid(int(s.Width), int(s.Height), int(s.Length))
	if err != nil {
		return nil, err
	}
	if s.Version >= 3 {
		grid.Format = schematic.FormatSpongeV3
	} else {
		grid.Format = schematic.FormatSpongeV2
	}

	// Invert the palette: the file maps state string to index, cells need
	// index to block. Indices outside the palette decode as air.
	size := len(palette)
	if size == 0 {
		size = 1
	}
	byIndex := make([]schematic.Block, size)
	for i := range byIndex {
		byIndex[i] = schematic.Air()
	}
	for state, id := range palette {
		if id >= 0 && int(id) < len(byIndex) {
			byIndex[id] = schematic.ParseBlock(state)
		}
	}

	// BlockData is varint-packed palette indices in YZX order, which is
	// exactly the grid's cell order. Undecodable cells become air; decode
	// never fails on bad data.
	offset := 0
	for i := range grid.Blocks {
		idx, ok := readVarint(data, &offset)
		if !ok || idx < 0 || int(idx) >= len(byIndex) {
			continue
		}
		grid.Blocks[i] = byIndex[idx]
	}

	grid.BlockEntities = decodeSpongeBlockEntities(blockEntities)
	grid.Entities = decodeEntityList(s.Entities)
	grid.Metadata = schematic.Metadata{
		Name:         s.Metadata.Name,
		Author:       s.Metadata.Author,
		CreatedAt:    s.Metadata.Date,
		RequiredMods: s.Metadata.RequiredMods,
	}
	return grid, nil
}

// readVarint decodes one unsigned LEB128-style value: seven payload bits per
// byte, low group first, high bit flags continuation. Returns ok=false on a
// truncated or overlong (more than 32 bits) encoding.
func readVarint(data []byte, offset *int) (int32, bool) {
	var result int32
	shift := uint(0)
	for {
		if *offset >= len(data) {
			return 0, false
		}
		b := data[*offset]
		*offset++

		result |= int32(b&0x7f) << shift
		if b&0x80 == 0 {
			return result, true
		}
		shift += 7
		if shift >= 32 {
			return 0, false
		}
	}
}

type spongeBlockEntityHeader struct {
	ID    string  `nbt:"Id"`
	IDAlt string  `nbt:"id"`
	Pos   []int32 `nbt:"Pos"`
	X     int32   `nbt:"x"`
	Y     int32   `nbt:"y"`
	Z     int32   `nbt:"z"`
}

func decodeSpongeBlockEntities(raws []nbt.RawMessage) []schematic.BlockEntity {
	var out []schematic.BlockEntity
	for _, raw := range raws {
		var h spongeBlockEntityHeader
		if err := raw.Unmarshal(&h); err != nil {
			continue
		}
		id := h.ID
		if id == "" {
			id = h.IDAlt
		}
		if id == "" {
			id = "unknown"
		}
		pos := [3]int32{h.X, h.Y, h.Z}
		if len(h.Pos) >= 3 {
			pos = [3]int32{h.Pos[0], h.Pos[1], h.Pos[2]}
		}
		out = append(out, schematic.BlockEntity{ID: id, Pos: pos, Data: raw})
	}
	return out
}
