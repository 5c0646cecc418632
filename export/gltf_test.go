package export

import (
	"bytes"
	"encoding/binary"
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/astei/schem2mesh/mesh"
)

// splitGLB checks the container framing and returns the two chunk payloads.
func splitGLB(t *testing.T, data []byte) (jsonChunk, binChunk []byte) {
	t.Helper()
	require.GreaterOrEqual(t, len(data), 12)
	require.Equal(t, "glTF", string(data[:4]))
	require.Equal(t, uint32(2), binary.LittleEndian.Uint32(data[4:8]))
	require.Equal(t, uint32(len(data)), binary.LittleEndian.Uint32(data[8:12]))

	jsonLen := binary.LittleEndian.Uint32(data[12:16])
	require.Equal(t, uint32(glbJSONChunk), binary.LittleEndian.Uint32(data[16:20]))
	require.Zero(t, jsonLen%4)
	jsonChunk = data[20 : 20+jsonLen]

	binStart := 20 + int(jsonLen)
	binLen := binary.LittleEndian.Uint32(data[binStart : binStart+4])
	require.Equal(t, uint32(glbBINChunk), binary.LittleEndian.Uint32(data[binStart+4:binStart+8]))
	require.Zero(t, binLen%4)
	binChunk = data[binStart+8 : binStart+8+int(binLen)]
	require.Equal(t, len(data), binStart+8+int(binLen))
	return jsonChunk, binChunk
}

func TestGLBFraming(t *testing.T) {
	var buf bytes.Buffer
	err := GLB(&buf, []mesh.Quad{unitQuad("stone", 0)}, nil)
	require.NoError(t, err)

	jsonChunk, binChunk := splitGLB(t, buf.Bytes())

	var root gltfRoot
	require.NoError(t, json.Unmarshal(jsonChunk, &root))
	assert.Equal(t, "2.0", root.Asset.Version)
	// Every binary write is a multiple of four bytes, so no padding.
	assert.Equal(t, len(binChunk), root.Buffers[0].ByteLength)
}

func TestGLBGeometry(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, GLB(&buf, []mesh.Quad{unitQuad("stone", 0)}, nil))

	jsonChunk, binChunk := splitGLB(t, buf.Bytes())
	var root gltfRoot
	require.NoError(t, json.Unmarshal(jsonChunk, &root))

	require.Len(t, root.Meshes, 1)
	require.Len(t, root.Meshes[0].Primitives, 1)
	prim := root.Meshes[0].Primitives[0]

	pos := root.Accessors[prim.Attributes.Position]
	assert.Equal(t, gltfFloat, pos.ComponentType)
	assert.Equal(t, "VEC3", pos.Type)
	assert.Equal(t, 4, pos.Count)
	assert.Equal(t, []float32{0, 0, 0}, pos.Min)
	assert.Equal(t, []float32{1, 0, 1}, pos.Max)

	idx := root.Accessors[prim.Indices]
	assert.Equal(t, gltfUnsignedInt, idx.ComponentType)
	assert.Equal(t, 6, idx.Count)

	// Two triangles over one quad's four vertices.
	view := root.BufferViews[idx.BufferView]
	indices := make([]uint32, idx.Count)
	for i := range indices {
		off := view.ByteOffset + i*4
		indices[i] = binary.LittleEndian.Uint32(binChunk[off : off+4])
	}
	assert.Equal(t, []uint32{0, 1, 2, 0, 2, 3}, indices)
}

func TestGLBPrimitivePerMaterial(t *testing.T) {
	quads := []mesh.Quad{
		unitQuad("stone", 0),
		unitQuad("dirt", 1),
		unitQuad("stone", 2),
	}

	var buf bytes.Buffer
	require.NoError(t, GLB(&buf, quads, nil))
	jsonChunk, _ := splitGLB(t, buf.Bytes())

	var root gltfRoot
	require.NoError(t, json.Unmarshal(jsonChunk, &root))

	require.Len(t, root.Meshes[0].Primitives, 2)
	require.Len(t, root.Materials, 2)
	assert.Equal(t, "stone", root.Materials[0].Name)
	assert.Equal(t, "dirt", root.Materials[1].Name)

	// The stone primitive carries both stone quads.
	stonePos := root.Accessors[root.Meshes[0].Primitives[0].Attributes.Position]
	assert.Equal(t, 8, stonePos.Count)
}

func TestGLBMaterialProperties(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, GLB(&buf, []mesh.Quad{unitQuad("glass", 0), unitQuad("stone", 1)}, nil))
	jsonChunk, _ := splitGLB(t, buf.Bytes())

	var root gltfRoot
	require.NoError(t, json.Unmarshal(jsonChunk, &root))

	glass := root.Materials[0]
	assert.Equal(t, "BLEND", glass.AlphaMode)
	assert.Equal(t, float32(0.6), glass.PBR.BaseColorFactor[3])
	assert.True(t, glass.DoubleSided)
	assert.Equal(t, float32(0.8), glass.PBR.RoughnessFactor)

	stone := root.Materials[1]
	assert.Empty(t, stone.AlphaMode)
	assert.Equal(t, float32(1), stone.PBR.BaseColorFactor[3])
}

func TestGLBNormalsAndUVs(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, GLB(&buf, []mesh.Quad{unitQuad("stone", 0)}, nil))
	jsonChunk, binChunk := splitGLB(t, buf.Bytes())

	var root gltfRoot
	require.NoError(t, json.Unmarshal(jsonChunk, &root))
	prim := root.Meshes[0].Primitives[0]

	readF32 := func(view gltfBufferView, i int) float32 {
		off := view.ByteOffset + i*4
		return math.Float32frombits(binary.LittleEndian.Uint32(binChunk[off : off+4]))
	}

	// unitQuad winds CCW seen from +Y.
	normView := root.BufferViews[root.Accessors[prim.Attributes.Normal].BufferView]
	assert.Equal(t, float32(0), readF32(normView, 0))
	assert.Equal(t, float32(1), readF32(normView, 1))
	assert.Equal(t, float32(0), readF32(normView, 2))

	// V is flipped into glTF texture space: (0, 0) becomes (0, 1).
	uvView := root.BufferViews[root.Accessors[prim.Attributes.TexCoord].BufferView]
	assert.Equal(t, float32(0), readF32(uvView, 0))
	assert.Equal(t, float32(1), readF32(uvView, 1))
}

func TestGLBEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, GLB(&buf, nil, nil))

	jsonChunk, _ := splitGLB(t, buf.Bytes())
	var root gltfRoot
	require.NoError(t, json.Unmarshal(jsonChunk, &root))
	assert.Empty(t, root.Meshes[0].Primitives)
}
