package schematic

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLegacyBlockVariants(t *testing.T) {
	assert.Equal(t, "minecraft:air", LegacyBlock(0, 0))
	assert.Equal(t, "minecraft:stone", LegacyBlock(1, 0))
	assert.Equal(t, "minecraft:granite", LegacyBlock(1, 1))
	assert.Equal(t, "minecraft:spruce_planks", LegacyBlock(5, 1))
	assert.Equal(t, "minecraft:birch_log", LegacyBlock(17, 2))
	assert.Equal(t, "minecraft:white_wool", LegacyBlock(35, 0))
	assert.Equal(t, "minecraft:red_wool", LegacyBlock(35, 14))
}

func TestLegacyBlockDamageOutOfRange(t *testing.T) {
	// Variant tables fall back to the first entry.
	assert.Equal(t, "minecraft:stone", LegacyBlock(1, 15))
	assert.Equal(t, "minecraft:dirt", LegacyBlock(3, 9))
}

func TestLegacySlabState(t *testing.T) {
	assert.Equal(t, "bottom", LegacyState(44, 0)["type"])
	assert.Equal(t, "top", LegacyState(44, 8)["type"])
	assert.Equal(t, "double", LegacyState(43, 0)["type"])

	// The slab name ignores the top bit.
	assert.Equal(t, LegacyBlock(44, 0), LegacyBlock(44, 8))
}

func TestLegacyStairsState(t *testing.T) {
	s := LegacyState(53, 0)
	assert.Equal(t, "east", s["facing"])
	assert.Equal(t, "bottom", s["half"])

	s = LegacyState(53, 3|4)
	assert.Equal(t, "north", s["facing"])
	assert.Equal(t, "top", s["half"])
}

func TestLegacyLogAxis(t *testing.T) {
	assert.Equal(t, "y", LegacyState(17, 0)["axis"])
	assert.Equal(t, "x", LegacyState(17, 4)["axis"])
	assert.Equal(t, "z", LegacyState(17, 8)["axis"])
}

func TestLegacyUnknown(t *testing.T) {
	assert.Equal(t, "minecraft:unknown_block_9999", LegacyBlock(9999, 0))
	assert.Nil(t, LegacyState(9999, 0))
	assert.Nil(t, LegacyState(1, 0))
}
