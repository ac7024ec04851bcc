package geometry

// Vertex is one corner of a cube face as laid out in the vertex buffer.
type Vertex struct {
	Position [4]float32
	Normal   [4]float32
	TexCoord [2]float32
}

// Vertex buffer layout, in floats and bytes.
const (
	VertexFloats = 10
	VertexStride = VertexFloats * 4

	PositionOffset = 0
	NormalOffset   = 4 * 4
	TexCoordOffset = 8 * 4
)

// Cube is an axis-aligned cube centered at the origin with half-extent 1.
// Each face is a quad of 4 vertices sharing the face normal.
var Cube = [24]Vertex{
	// Front
	{[4]float32{-1, -1, -1, 1}, [4]float32{0, 0, -1, 0}, [2]float32{0, 0}},
	{[4]float32{1, -1, -1, 1}, [4]float32{0, 0, -1, 0}, [2]float32{1, 0}},
	{[4]float32{-1, 1, -1, 1}, [4]float32{0, 0, -1, 0}, [2]float32{0, 1}},
	{[4]float32{1, 1, -1, 1}, [4]float32{0, 0, -1, 0}, [2]float32{1, 1}},

	// Back
	{[4]float32{1, -1, 1, 1}, [4]float32{0, 0, 1, 0}, [2]float32{0, 0}},
	{[4]float32{-1, -1, 1, 1}, [4]float32{0, 0, 1, 0}, [2]float32{1, 0}},
	{[4]float32{1, 1, 1, 1}, [4]float32{0, 0, 1, 0}, [2]float32{0, 1}},
	{[4]float32{-1, 1, 1, 1}, [4]float32{0, 0, 1, 0}, [2]float32{1, 1}},

	// Left
	{[4]float32{-1, -1, 1, 1}, [4]float32{-1, 0, 0, 0}, [2]float32{0, 0}},
	{[4]float32{-1, -1, -1, 1}, [4]float32{-1, 0, 0, 0}, [2]float32{1, 0}},
	{[4]float32{-1, 1, 1, 1}, [4]float32{-1, 0, 0, 0}, [2]float32{0, 1}},
	{[4]float32{-1, 1, -1, 1}, [4]float32{-1, 0, 0, 0}, [2]float32{1, 1}},

	// Right
	{[4]float32{1, -1, -1, 1}, [4]float32{1, 0, 0, 0}, [2]float32{0, 0}},
	{[4]float32{1, -1, 1, 1}, [4]float32{1, 0, 0, 0}, [2]float32{1, 0}},
	{[4]float32{1, 1, -1, 1}, [4]float32{1, 0, 0, 0}, [2]float32{0, 1}},
	{[4]float32{1, 1, 1, 1}, [4]float32{1, 0, 0, 0}, [2]float32{1, 1}},

	// Top
	{[4]float32{-1, 1, -1, 1}, [4]float32{0, 1, 0, 0}, [2]float32{0, 0}},
	{[4]float32{1, 1, -1, 1}, [4]float32{0, 1, 0, 0}, [2]float32{1, 0}},
	{[4]float32{-1, 1, 1, 1}, [4]float32{0, 1, 0, 0}, [2]float32{0, 1}},
	{[4]float32{1, 1, 1, 1}, [4]float32{0, 1, 0, 0}, [2]float32{1, 1}},

	// Bottom
	{[4]float32{-1, -1, 1, 1}, [4]float32{0, -1, 0, 0}, [2]float32{0, 0}},
	{[4]float32{1, -1, 1, 1}, [4]float32{0, -1, 0, 0}, [2]float32{1, 0}},
	{[4]float32{-1, -1, -1, 1}, [4]float32{0, -1, 0, 0}, [2]float32{0, 1}},
	{[4]float32{1, -1, -1, 1}, [4]float32{0, -1, 0, 0}, [2]float32{1, 1}},
}

// CubeIndices groups Cube into 12 triangles, two per face.
var CubeIndices = [36]uint8{
	0, 1, 2, // Front
	3, 2, 1,

	4, 5, 6, // Back
	7, 6, 5,

	8, 9, 10, // Left
	11, 10, 9,

	12, 13, 14, // Right
	15, 14, 13,

	16, 17, 18, // Top
	19, 18, 17,

	20, 21, 22, // Bottom
	23, 22, 21,
}

// Floats flattens vertices into the interleaved buffer layout.
func Floats(vs []Vertex) []float32 {
	out := make([]float32, 0, len(vs)*VertexFloats)
	for _, v := range vs {
		out = append(out, v.Position[:]...)
		out = append(out, v.Normal[:]...)
		out = append(out, v.TexCoord[:]...)
	}
	return out
}

// Expand returns the cube as 36 de-indexed vertices in index order.
func Expand() []Vertex {
	out := make([]Vertex, len(CubeIndices))
	for i, idx := range CubeIndices {
		out[i] = Cube[idx]
	}
	return out
}
