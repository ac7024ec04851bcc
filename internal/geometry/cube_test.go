package geometry

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestCubeTable(t *testing.T) {
	if len(Cube) != 24 {
		t.Fatalf("got %d vertices, want 24", len(Cube))
	}
	if len(CubeIndices) != 36 {
		t.Fatalf("got %d indices, want 36", len(CubeIndices))
	}
	for i, idx := range CubeIndices {
		if int(idx) >= len(Cube) {
			t.Fatalf("index %d out of range: %d", i, idx)
		}
	}
	for i, v := range Cube {
		if v.Position[3] != 1 {
			t.Errorf("vertex %d: position w = %v, want 1", i, v.Position[3])
		}
		n := mgl32.Vec3{v.Normal[0], v.Normal[1], v.Normal[2]}
		if n.Len() != 1 || v.Normal[3] != 0 {
			t.Errorf("vertex %d: normal %v is not a unit direction", i, v.Normal)
		}
	}
}

func TestFacesShareNormal(t *testing.T) {
	for face := 0; face < 6; face++ {
		first := Cube[face*4].Normal
		for k := 1; k < 4; k++ {
			if Cube[face*4+k].Normal != first {
				t.Errorf("face %d vertex %d: normal %v, want %v", face, k, Cube[face*4+k].Normal, first)
			}
		}
	}
}

// The projection negates Y, which mirrors the winding, so triangles are
// clockwise in object space when viewed from outside the cube.
func TestTriangleWinding(t *testing.T) {
	for tri := 0; tri < 12; tri++ {
		a := Cube[CubeIndices[tri*3]]
		b := Cube[CubeIndices[tri*3+1]]
		c := Cube[CubeIndices[tri*3+2]]
		pa := mgl32.Vec3{a.Position[0], a.Position[1], a.Position[2]}
		pb := mgl32.Vec3{b.Position[0], b.Position[1], b.Position[2]}
		pc := mgl32.Vec3{c.Position[0], c.Position[1], c.Position[2]}
		n := mgl32.Vec3{a.Normal[0], a.Normal[1], a.Normal[2]}

		facing := pb.Sub(pa).Cross(pc.Sub(pa)).Dot(n)
		if facing >= 0 {
			t.Errorf("triangle %d: winding agrees with the normal (%v)", tri, facing)
		}
	}
}

func TestFloatsLayout(t *testing.T) {
	fs := Floats(Cube[:])
	if len(fs) != 24*VertexFloats {
		t.Fatalf("got %d floats, want %d", len(fs), 24*VertexFloats)
	}
	// vertex 5: Back face, second corner
	base := 5 * VertexFloats
	if fs[base] != -1 || fs[base+1] != -1 || fs[base+2] != 1 || fs[base+3] != 1 {
		t.Errorf("position = %v", fs[base:base+4])
	}
	if fs[base+NormalOffset/4+2] != 1 {
		t.Errorf("normal = %v", fs[base+4:base+8])
	}
	if fs[base+TexCoordOffset/4] != 1 || fs[base+TexCoordOffset/4+1] != 0 {
		t.Errorf("texcoord = %v", fs[base+8:base+10])
	}
}

func TestExpand(t *testing.T) {
	vs := Expand()
	if len(vs) != 36 {
		t.Fatalf("got %d vertices, want 36", len(vs))
	}
	for i, idx := range CubeIndices {
		if vs[i] != Cube[idx] {
			t.Fatalf("vertex %d does not match index %d", i, idx)
		}
	}
}
