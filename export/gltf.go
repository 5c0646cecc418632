package export

import (
	"bufio"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/astei/schem2mesh/mesh"
)

// glTF component and buffer constants.
const (
	gltfFloat       = 5126
	gltfUnsignedInt = 5125

	gltfArrayBuffer        = 34962
	gltfElementArrayBuffer = 34963

	glbJSONChunk = 0x4e4f534a
	glbBINChunk  = 0x004e4942
)

type gltfRoot struct {
	Asset       gltfAsset        `json:"asset"`
	Scene       int              `json:"scene"`
	Scenes      []gltfScene      `json:"scenes"`
	Nodes       []gltfNode       `json:"nodes"`
	Meshes      []gltfMesh       `json:"meshes"`
	Accessors   []gltfAccessor   `json:"accessors"`
	BufferViews []gltfBufferView `json:"bufferViews"`
	Buffers     []gltfBuffer     `json:"buffers"`
	Materials   []gltfMaterial   `json:"materials"`
}

type gltfAsset struct {
	Version   string `json:"version"`
	Generator string `json:"generator"`
}

type gltfScene struct {
	Nodes []int `json:"nodes"`
}

type gltfNode struct {
	Mesh int    `json:"mesh"`
	Name string `json:"name,omitempty"`
}

type gltfMesh struct {
	Primitives []gltfPrimitive `json:"primitives"`
}

type gltfPrimitive struct {
	Attributes gltfAttributes `json:"attributes"`
	Indices    int            `json:"indices"`
	Material   int            `json:"material"`
}

type gltfAttributes struct {
	Position int `json:"POSITION"`
	Normal   int `json:"NORMAL"`
	TexCoord int `json:"TEXCOORD_0"`
}

type gltfAccessor struct {
	BufferView    int       `json:"bufferView"`
	ByteOffset    int       `json:"byteOffset"`
	ComponentType int       `json:"componentType"`
	Count         int       `json:"count"`
	Type          string    `json:"type"`
	Min           []float32 `json:"min,omitempty"`
	Max           []float32 `json:"max,omitempty"`
}

type gltfBufferView struct {
	Buffer     int  `json:"buffer"`
	ByteOffset int  `json:"byteOffset"`
	ByteLength int  `json:"byteLength"`
	ByteStride *int `json:"byteStride,omitempty"`
	Target     int  `json:"target,omitempty"`
}

type gltfBuffer struct {
	ByteLength int `json:"byteLength"`
}

type gltfMaterial struct {
	Name        string  `json:"name"`
	PBR         gltfPBR `json:"pbrMetallicRoughness"`
	AlphaMode   string  `json:"alphaMode,omitempty"`
	DoubleSided bool    `json:"doubleSided"`
}

type gltfPBR struct {
	BaseColorFactor [4]float32 `json:"baseColorFactor"`
	MetallicFactor  float32    `json:"metallicFactor"`
	RoughnessFactor float32    `json:"roughnessFactor"`
}

// GLB writes the quad list as binary glTF 2.0: one mesh with a primitive per
// material, POSITION/NORMAL/TEXCOORD_0 vertex attributes and uint32 triangle
// indices, in a JSON chunk plus a binary chunk.
func GLB(w io.Writer, quads []mesh.Quad, palette *Palette) error {
	if palette == nil {
		palette = NewPalette()
	}

	byMaterial := make(map[string][]mesh.Quad)
	for _, q := range quads {
		byMaterial[q.Material] = append(byMaterial[q.Material], q)
	}

	var bin binWriter
	root := gltfRoot{
		Asset:   gltfAsset{Version: "2.0", Generator: "schem2mesh"},
		Scene:   0,
		Scenes:  []gltfScene{{Nodes: []int{0}}},
		Nodes:   []gltfNode{{Mesh: 0}},
		Buffers: []gltfBuffer{{}},
	}

	var primitives []gltfPrimitive
	for materialIdx, material := range materialOrder(quads) {
		group := byMaterial[material]

		c := palette.Color(material)
		mat := gltfMaterial{
			Name: material,
			PBR: gltfPBR{
				BaseColorFactor: [4]float32{c.R, c.G, c.B, c.A},
				MetallicFactor:  0,
				RoughnessFactor: 0.8,
			},
			DoubleSided: true,
		}
		if c.A < 1 {
			mat.AlphaMode = "BLEND"
		}
		root.Materials = append(root.Materials, mat)

		prim := buildPrimitive(group, materialIdx, &bin, &root)
		primitives = append(primitives, prim)
	}
	root.Meshes = []gltfMesh{{Primitives: primitives}}
	root.Buffers[0].ByteLength = len(bin.data)

	return writeGLB(w, &root, bin.data)
}

// buildPrimitive packs one material group's geometry into the binary buffer
// and registers its buffer views and accessors.
func buildPrimitive(group []mesh.Quad, material int, bin *binWriter, root *gltfRoot) gltfPrimitive {
	vertexCount := len(group) * 4

	minPos := [3]float32{math.MaxFloat32, math.MaxFloat32, math.MaxFloat32}
	maxPos := [3]float32{-math.MaxFloat32, -math.MaxFloat32, -math.MaxFloat32}

	posStart := bin.len()
	for _, q := range group {
		for _, v := range q.Vertices {
			for axis := 0; axis < 3; axis++ {
				if v[axis] < minPos[axis] {
					minPos[axis] = v[axis]
				}
				if v[axis] > maxPos[axis] {
					maxPos[axis] = v[axis]
				}
			}
			bin.vec3(v)
		}
	}
	posView := root.addView(posStart, bin.len()-posStart, 12, gltfArrayBuffer)
	posAccessor := root.addAccessor(posView, gltfFloat, vertexCount, "VEC3", minPos[:], maxPos[:])

	normStart := bin.len()
	for _, q := range group {
		n := quadNormal(q)
		for i := 0; i < 4; i++ {
			bin.vec3(n)
		}
	}
	normView := root.addView(normStart, bin.len()-normStart, 12, gltfArrayBuffer)
	normAccessor := root.addAccessor(normView, gltfFloat, vertexCount, "VEC3", nil, nil)

	uvStart := bin.len()
	for _, q := range group {
		for _, uv := range q.UVs {
			// glTF texture space has V growing downward.
			bin.f32(uv.X())
			bin.f32(1 - uv.Y())
		}
	}
	uvView := root.addView(uvStart, bin.len()-uvStart, 8, gltfArrayBuffer)
	uvAccessor := root.addAccessor(uvView, gltfFloat, vertexCount, "VEC2", nil, nil)

	idxStart := bin.len()
	for i := range group {
		base := uint32(i * 4)
		for _, idx := range [6]uint32{0, 1, 2, 0, 2, 3} {
			bin.u32(base + idx)
		}
	}
	idxView := root.addView(idxStart, bin.len()-idxStart, 0, gltfElementArrayBuffer)
	idxAccessor := root.addAccessor(idxView, gltfUnsignedInt, len(group)*6, "SCALAR", nil, nil)

	return gltfPrimitive{
		Attributes: gltfAttributes{
			Position: posAccessor,
			Normal:   normAccessor,
			TexCoord: uvAccessor,
		},
		Indices:  idxAccessor,
		Material: material,
	}
}

func (r *gltfRoot) addView(offset, length, stride, target int) int {
	view := gltfBufferView{
		Buffer:     0,
		ByteOffset: offset,
		ByteLength: length,
		Target:     target,
	}
	if stride > 0 {
		view.ByteStride = &stride
	}
	r.BufferViews = append(r.BufferViews, view)
	return len(r.BufferViews) - 1
}

func (r *gltfRoot) addAccessor(view, componentType, count int, accessorType string, min, max []float32) int {
	r.Accessors = append(r.Accessors, gltfAccessor{
		BufferView:    view,
		ComponentType: componentType,
		Count:         count,
		Type:          accessorType,
		Min:           min,
		Max:           max,
	})
	return len(r.Accessors) - 1
}

func quadNormal(q mesh.Quad) mgl32.Vec3 {
	e1 := q.Vertices[1].Sub(q.Vertices[0])
	e2 := q.Vertices[2].Sub(q.Vertices[0])
	n := e1.Cross(e2)
	if n.Len() == 0 {
		return mgl32.Vec3{0, 1, 0}
	}
	return n.Normalize()
}

// binWriter accumulates the little-endian binary chunk.
type binWriter struct {
	data []byte
}

func (b *binWriter) len() int { return len(b.data) }

func (b *binWriter) f32(v float32) {
	b.data = binary.LittleEndian.AppendUint32(b.data, math.Float32bits(v))
}

func (b *binWriter) u32(v uint32) {
	b.data = binary.LittleEndian.AppendUint32(b.data, v)
}

func (b *binWriter) vec3(v mgl32.Vec3) {
	b.f32(v.X())
	b.f32(v.Y())
	b.f32(v.Z())
}

// writeGLB frames the JSON and binary chunks: 12-byte header, then each
// chunk with its length/type header and 4-byte padding (spaces for JSON,
// zeros for binary).
func writeGLB(w io.Writer, root *gltfRoot, binData []byte) error {
	jsonBytes, err := json.Marshal(root)
	if err != nil {
		return fmt.Errorf("export: encode glTF: %w", err)
	}

	jsonPad := (4 - len(jsonBytes)%4) % 4
	binPad := (4 - len(binData)%4) % 4
	total := 12 + 8 + len(jsonBytes) + jsonPad + 8 + len(binData) + binPad

	bw := bufio.NewWriter(w)
	bw.WriteString("glTF")
	writeU32(bw, 2)
	writeU32(bw, uint32(total))

	writeU32(bw, uint32(len(jsonBytes)+jsonPad))
	writeU32(bw, glbJSONChunk)
	bw.Write(jsonBytes)
	for i := 0; i < jsonPad; i++ {
		bw.WriteByte(' ')
	}

	writeU32(bw, uint32(len(binData)+binPad))
	writeU32(bw, glbBINChunk)
	bw.Write(binData)
	for i := 0; i < binPad; i++ {
		bw.WriteByte(0)
	}
	return bw.Flush()
}

func writeU32(w io.Writer, v uint32) {
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], v)
	w.Write(buf[:])
}
