package schematic

import (
	"sort"
	"strings"
)

// Block identifies a block by its modern name plus state properties, e.g.
// "minecraft:oak_slab" with type=bottom. Blocks are immutable by convention:
// decoders build them once and everything downstream only reads them.
type Block struct {
	Name  string
	State BlockState
}

// BlockState holds a block's state properties (facing, half, powered, ...).
// Keys are unique; formatting is key-sorted so equal states render equally.
type BlockState map[string]string

// NewBlock returns a stateless block.
func NewBlock(name string) Block {
	return Block{Name: name}
}

// Air is the canonical empty block.
func Air() Block {
	return Block{Name: "minecraft:air"}
}

// IsAir reports whether the block is one of the air variants.
func (b Block) IsAir() bool {
	switch b.Name {
	case "minecraft:air", "minecraft:cave_air", "minecraft:void_air", "air", "":
		return true
	}
	return false
}

// Property returns a state property value, or "" when unset.
func (b Block) Property(key string) string {
	return b.State[key]
}

// DisplayName is the block name without the "minecraft:" namespace.
func (b Block) DisplayName() string {
	return strings.TrimPrefix(b.Name, "minecraft:")
}

// FullName renders the block as "name[prop=val,...]" with key-sorted
// properties, the same notation the tag-array palette uses on the wire.
func (b Block) FullName() string {
	if len(b.State) == 0 {
		return b.Name
	}
	keys := make([]string, 0, len(b.State))
	for k := range b.State {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var sb strings.Builder
	sb.WriteString(b.Name)
	sb.WriteByte('[')
	for i, k := range keys {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(k)
		sb.WriteByte('=')
		sb.WriteString(b.State[k])
	}
	sb.WriteByte(']')
	return sb.String()
}

func (b Block) String() string {
	return b.FullName()
}

// Equal compares two blocks structurally: same name, same property set.
func (b Block) Equal(other Block) bool {
	if b.Name != other.Name || len(b.State) != len(other.State) {
		return false
	}
	for k, v := range b.State {
		if ov, ok := other.State[k]; !ok || ov != v {
			return false
		}
	}
	return true
}

// ParseBlock parses palette notation like
// "minecraft:chest[facing=north,waterlogged=false]" back into a Block.
// Malformed property fragments are skipped rather than rejected; palettes in
// real-world files are not always well formed.
func ParseBlock(s string) Block {
	bracket := strings.IndexByte(s, '[')
	if bracket < 0 || !strings.HasSuffix(s, "]") {
		return Block{Name: s}
	}

	b := Block{Name: s[:bracket], State: make(BlockState)}
	props := s[bracket+1 : len(s)-1]
	for _, prop := range strings.Split(props, ",") {
		eq := strings.IndexByte(prop, '=')
		if eq < 0 {
			continue
		}
		b.State[prop[:eq]] = prop[eq+1:]
	}
	if len(b.State) == 0 {
		b.State = nil
	}
	return b
}
