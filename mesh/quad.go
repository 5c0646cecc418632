// Package mesh compiles a voxel grid into polygon geometry. Full-cube voxels
// go through an occlusion-aware greedy merge that collapses coplanar
// same-material faces into maximal rectangles; partial blocks emit their
// boxes' faces directly.
package mesh

import (
	"strings"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/astei/schem2mesh/schematic"
)

// Quad is one rectangle of output geometry: four vertices in counter-
// clockwise order viewed from outside, matching texture coordinates, and a
// material name. Quads carry no reference back to the voxels that produced
// them.
type Quad struct {
	Vertices [4]mgl32.Vec3
	UVs      [4]mgl32.Vec2
	Material string
}

// MaterialFunc names the material for a block. The mesher only merges faces
// whose names compare equal, so the function also controls merge granularity.
type MaterialFunc func(schematic.Block) string

var materialSanitizer = strings.NewReplacer(
	":", "_", "[", "_", "]", "", "=", "_", ",", "_", " ", "_",
)

// DefaultMaterial names materials by block identity without state, so a
// pillar of logs merges regardless of axis. The name is safe for OBJ and
// glTF material identifiers.
func DefaultMaterial(b schematic.Block) string {
	return materialSanitizer.Replace(b.DisplayName())
}

// StatefulMaterial names materials by the full block state. Orientation
// variants stop merging with each other; use it when the consumer maps
// states to distinct textures.
func StatefulMaterial(b schematic.Block) string {
	return materialSanitizer.Replace(b.FullName())
}
