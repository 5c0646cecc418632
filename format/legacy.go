package format

import (
	"github.com/Tnze/go-mc/nbt"

	"github.com/astei/schem2mesh/schematic"
)

// legacySchematic is the MCEdit .schematic schema: parallel byte arrays of
// numeric block IDs and damage values, with an optional AddBlocks nibble
// array extending IDs past 255.
type legacySchematic struct {
	Width  int16 `nbt:"Width"`
	Height int16 `nbt:"Height"`
	Length int16 `nbt:"Length"`

	Materials string `nbt:"Materials"`
	Blocks    []byte `nbt:"Blocks"`
	Data      []byte `nbt:"Data"`
	AddBlocks []byte `nbt:"AddBlocks"`

	Entities     []nbt.RawMessage `nbt:"Entities"`
	TileEntities []nbt.RawMessage `nbt:"TileEntities"`

	// Schematica writes its own name-to-ID table; when present it overrides
	// the builtin numeric mapping.
	SchematicaMapping map[string]int16 `nbt:"SchematicaMapping"`
}

func decodeLegacy(raw []byte) (*schematic.Grid, error) {
	var s legacySchematic
	if err := nbt.Unmarshal(raw, &s); err != nil {
		return nil, errSchemaMismatch
	}
	if s.Width <= 0 || s.Height <= 0 || s.Length <= 0 || s.Blocks == nil {
		return nil, errSchemaMismatch
	}

	grid, err := schematic.NewGrid(int(s.Width), int(s.Height), int(s.Length))
	if err != nil {
		return nil, err
	}
	grid.Format = schematic.FormatLegacy

	var idToName map[int16]string
	if len(s.SchematicaMapping) > 0 {
		idToName = make(map[int16]string, len(s.SchematicaMapping))
		for name, id := range s.SchematicaMapping {
			idToName[id] = name
		}
	}

	for i := range grid.Blocks {
		id := s.blockID(i)
		var damage uint8
		if i < len(s.Data) {
			damage = s.Data[i]
		}

		if name, ok := idToName[int16(id)]; ok {
			grid.Blocks[i] = schematic.NewBlock(name)
			continue
		}
		grid.Blocks[i] = schematic.Block{
			Name:  schematic.LegacyBlock(id, damage),
			State: schematic.LegacyState(id, damage),
		}
	}

	grid.BlockEntities = decodeLegacyTileEntities(s.TileEntities)
	grid.Entities = decodeEntityList(s.Entities)
	return grid, nil
}

// blockID returns the ID for a cell, folding in the AddBlocks nibble. Even
// cells use the low nibble of their shared byte, odd cells the high one.
func (s *legacySchematic) blockID(i int) uint16 {
	if i >= len(s.Blocks) {
		return 0
	}
	id := uint16(s.Blocks[i])
	if half := i / 2; half < len(s.AddBlocks) {
		nibble := s.AddBlocks[half]
		if i%2 == 0 {
			nibble &= 0x0f
		} else {
			nibble = (nibble >> 4) & 0x0f
		}
		id |= uint16(nibble) << 8
	}
	return id
}

type legacyTileEntityHeader struct {
	ID    string `nbt:"id"`
	IDAlt string `nbt:"Id"`
	X     int32  `nbt:"x"`
	Y     int32  `nbt:"y"`
	Z     int32  `nbt:"z"`
}

func decodeLegacyTileEntities(raws []nbt.RawMessage) []schematic.BlockEntity {
	var out []schematic.BlockEntity
	for _, raw := range raws {
		var h legacyTileEntityHeader
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
		out = append(out, schematic.BlockEntity{
			ID:   id,
			Pos:  [3]int32{h.X, h.Y, h.Z},
			Data: raw,
		})
	}
	return out
}

type entityHeader struct {
	ID    string    `nbt:"id"`
	IDAlt string    `nbt:"Id"`
	Pos   []float64 `nbt:"Pos"`
}

// decodeEntityList extracts id and position from entity compounds, keeping
// the full payload raw. Entities without both are dropped.
func decodeEntityList(raws []nbt.RawMessage) []schematic.Entity {
	var out []schematic.Entity
	for _, raw := range raws {
		var h entityHeader
		if err := raw.Unmarshal(&h); err != nil {
			continue
		}
		id := h.ID
		if id == "" {
			id = h.IDAlt
		}
		if id == "" || len(h.Pos) < 3 {
			continue
		}
		out = append(out, schematic.Entity{
			ID:   id,
			Pos:  [3]float64{h.Pos[0], h.Pos[1], h.Pos[2]},
			Data: raw,
		})
	}
	return out
}
