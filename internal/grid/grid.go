package grid

import (
	"errors"
	"fmt"

	"instancing-viewer/internal/geometry"

	"github.com/go-gl/mathgl/mgl32"
)

const (
	Spacing    = 4.0
	BaseDepth  = -100.0
	OffsetSize = 4 // floats per instance offset

	// MaxBufferBytes caps a single upload. Larger grids are refused rather
	// than attempted.
	MaxBufferBytes = 1 << 30
)

var (
	ErrNegativeSize = errors.New("grid size must not be negative")
	ErrTooLarge     = errors.New("grid buffer exceeds size limit")
)

// Strategy selects how the grid reaches the GPU.
type Strategy int

const (
	// Instanced keeps one cube in the vertex buffer and draws it N³ times
	// with a per-instance offset stream.
	Instanced Strategy = iota
	// Expanded bakes every cube into one flat vertex buffer.
	Expanded
)

func (s Strategy) String() string {
	switch s {
	case Instanced:
		return "instanced"
	case Expanded:
		return "expanded"
	}
	return fmt.Sprintf("Strategy(%d)", int(s))
}

// ParseStrategy is the inverse of Strategy.String.
func ParseStrategy(s string) (Strategy, error) {
	switch s {
	case "instanced":
		return Instanced, nil
	case "expanded":
		return Expanded, nil
	}
	return 0, fmt.Errorf("unknown render strategy %q", s)
}

// Placement is one cell of an N×N×N grid.
type Placement struct {
	X, Y, Z int
}

// Offset returns the world-space translation of cell (x, y, z).
// n/2 truncates, so even grids sit half a cell off center.
func Offset(x, y, z, n int) mgl32.Vec3 {
	half := n / 2
	return mgl32.Vec3{
		Spacing * float32(x-half),
		Spacing * float32(y-half),
		BaseDepth + Spacing*float32(z-half),
	}
}

// Offset returns the cell's translation in a grid of edge n.
func (p Placement) Offset(n int) mgl32.Vec3 { return Offset(p.X, p.Y, p.Z, n) }

// Index is the cell's slot in the output buffers.
func (p Placement) Index(n int) int { return p.Z*n*n + p.Y*n + p.X }

// Placements lists every cell, x outermost and z innermost.
func Placements(n int) []Placement {
	if n <= 0 {
		return nil
	}
	out := make([]Placement, 0, n*n*n)
	for x := 0; x < n; x++ {
		for y := 0; y < n; y++ {
			for z := 0; z < n; z++ {
				out = append(out, Placement{X: x, Y: y, Z: z})
			}
		}
	}
	return out
}

// Mesh is the CPU side of a grid build, ready for upload.
type Mesh struct {
	Strategy Strategy
	Size     int

	// Offsets holds OffsetSize floats per cell (Instanced only).
	Offsets []float32
	// Vertices holds 36 interleaved vertices per cell (Expanded only).
	Vertices []float32
}

// Cubes is N³.
func (m *Mesh) Cubes() int { return m.Size * m.Size * m.Size }

// Triangles is the number of primitives one draw of the mesh emits.
func (m *Mesh) Triangles() int { return m.Cubes() * len(geometry.CubeIndices) / 3 }

// VertexCount is the count passed to a non-indexed draw (Expanded).
func (m *Mesh) VertexCount() int { return m.Cubes() * len(geometry.CubeIndices) }

// Validate checks that the buffers match the grid size exactly.
func (m *Mesh) Validate() error {
	switch m.Strategy {
	case Instanced:
		if want := m.Cubes() * OffsetSize; len(m.Offsets) != want {
			return fmt.Errorf("offset buffer has %d floats, want %d", len(m.Offsets), want)
		}
	case Expanded:
		if want := m.VertexCount() * geometry.VertexFloats; len(m.Vertices) != want {
			return fmt.Errorf("vertex buffer has %d floats, want %d", len(m.Vertices), want)
		}
	default:
		return fmt.Errorf("unknown strategy %v", m.Strategy)
	}
	return nil
}

// BufferBytes is the size of the upload Build would produce for n.
func BufferBytes(s Strategy, n int) int64 {
	cubes := int64(n) * int64(n) * int64(n)
	if s == Expanded {
		return cubes * int64(len(geometry.CubeIndices)) * geometry.VertexStride
	}
	return cubes * OffsetSize * 4
}

// Build computes the grid of edge n for the given strategy. The result
// fully replaces any previous build.
func Build(s Strategy, n int) (*Mesh, error) {
	if n < 0 {
		return nil, ErrNegativeSize
	}
	if size := BufferBytes(s, n); size > MaxBufferBytes {
		return nil, fmt.Errorf("%v grid of %d: %d bytes: %w", s, n, size, ErrTooLarge)
	}

	m := &Mesh{Strategy: s, Size: n}
	switch s {
	case Instanced:
		m.Offsets = make([]float32, m.Cubes()*OffsetSize)
		for _, p := range Placements(n) {
			off := p.Offset(n)
			copy(m.Offsets[p.Index(n)*OffsetSize:], off[:])
		}
	case Expanded:
		cube := geometry.Floats(geometry.Expand())
		m.Vertices = make([]float32, m.VertexCount()*geometry.VertexFloats)
		for _, p := range Placements(n) {
			off := p.Offset(n)
			dst := m.Vertices[p.Index(n)*len(cube):]
			copy(dst, cube)
			for v := 0; v < len(geometry.CubeIndices); v++ {
				base := v * geometry.VertexFloats
				dst[base] += off[0]
				dst[base+1] += off[1]
				dst[base+2] += off[2]
			}
		}
	default:
		return nil, fmt.Errorf("unknown strategy %v", s)
	}
	return m, nil
}
