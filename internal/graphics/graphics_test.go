package graphics_test

import (
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"instancing-viewer/internal/graphics"
	"instancing-viewer/internal/graphics/graphicstest"

	"github.com/go-gl/mathgl/mgl32"
)

type stubDecoder struct {
	img graphics.Image
	err error
}

func (d stubDecoder) Decode(string) (graphics.Image, error) { return d.img, d.err }

func TestLoadTexture(t *testing.T) {
	gl := graphicstest.New()
	pix := make([]byte, 2*2*4)
	pix[0] = 0xff

	tex := graphics.LoadTexture(gl, stubDecoder{img: graphics.Image{Pix: pix, Width: 2, Height: 2}}, "cube.png")
	if tex == 0 {
		t.Fatal("LoadTexture returned 0")
	}
	got := gl.Texs[tex]
	if got == nil || got.Width != 2 || got.Height != 2 || got.Pixels[0] != 0xff {
		t.Fatalf("uploaded texture = %+v", got)
	}
	if got.Params[graphics.TextureMinFilter] != graphics.Nearest || got.Params[graphics.TextureMagFilter] != graphics.Nearest {
		t.Errorf("filters = %v, want nearest", got.Params)
	}
	if len(gl.Stale) != 0 {
		t.Errorf("stale use: %v", gl.Stale)
	}
}

func TestLoadTextureFailures(t *testing.T) {
	tests := []struct {
		name string
		dec  stubDecoder
	}{
		{"decode error", stubDecoder{err: errors.New("not a png")}},
		{"short pixels", stubDecoder{img: graphics.Image{Pix: make([]byte, 3), Width: 2, Height: 2}}},
		{"empty image", stubDecoder{img: graphics.Image{}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gl := graphicstest.New()
			if tex := graphics.LoadTexture(gl, tt.dec, "missing.png"); tex != 0 {
				t.Errorf("texture = %d, want 0", tex)
			}
			if gl.Live() != 0 {
				t.Errorf("%d objects allocated on failure", gl.Live())
			}
		})
	}
}

func TestPNGDecoder(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 3, 2))
	src.Set(0, 0, color.NRGBA{R: 10, G: 20, B: 30, A: 255})
	src.Set(2, 1, color.NRGBA{R: 200, G: 100, B: 50, A: 255})

	path := filepath.Join(t.TempDir(), "tex.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := png.Encode(f, src); err != nil {
		t.Fatal(err)
	}
	f.Close()

	img, err := graphics.PNGDecoder{}.Decode(path)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if img.Width != 3 || img.Height != 2 || len(img.Pix) != 3*2*4 {
		t.Fatalf("decoded %dx%d with %d bytes", img.Width, img.Height, len(img.Pix))
	}
	if got := img.Pix[0:4]; got[0] != 10 || got[1] != 20 || got[2] != 30 || got[3] != 255 {
		t.Errorf("pixel (0,0) = %v", got)
	}
	last := (1*3 + 2) * 4
	if got := img.Pix[last : last+4]; got[0] != 200 || got[1] != 100 || got[2] != 50 {
		t.Errorf("pixel (2,1) = %v", got)
	}
}

func TestPNGDecoderErrors(t *testing.T) {
	dir := t.TempDir()
	if _, err := (graphics.PNGDecoder{}).Decode(filepath.Join(dir, "none.png")); err == nil {
		t.Error("missing file decoded")
	}
	bad := filepath.Join(dir, "bad.png")
	if err := os.WriteFile(bad, []byte("not an image"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := (graphics.PNGDecoder{}).Decode(bad); err == nil {
		t.Error("garbage decoded")
	}
}

func TestCompileProgram(t *testing.T) {
	gl := graphicstest.New()
	p := graphics.CompileProgram(gl)
	if !p.OK || p.ID == 0 {
		t.Fatalf("program = %+v", p)
	}
	if p.Vertex != 0 || p.Normal != 1 || p.TexCoord != 2 || p.Offset != 3 {
		t.Errorf("locations = %d %d %d %d", p.Vertex, p.Normal, p.TexCoord, p.Offset)
	}
	// Shaders are released once linked.
	if gl.Live() != 1 {
		t.Errorf("%d live objects, want just the program", gl.Live())
	}

	p.Use()
	p.SetVector3(graphics.UniformLightPos, mgl32.Vec3{0, 150, 15})
	if got := gl.Uniforms[graphics.UniformLightPos]; got != (mgl32.Vec3{0, 150, 15}) {
		t.Errorf("light uniform = %v", got)
	}
}

func TestCompileProgramFailureIsNotFatal(t *testing.T) {
	gl := graphicstest.New()
	gl.FailCompile = true
	gl.InfoLog = "0:3: syntax error"

	p := graphics.CompileProgram(gl)
	if p.OK {
		t.Fatal("program reported OK after compile failure")
	}
	if p.Vertex != -1 || p.Offset != -1 {
		t.Errorf("locations = %d %d, want -1", p.Vertex, p.Offset)
	}
	// Uniform setters on a broken program must not panic.
	p.SetInt(graphics.UniformTexture, 0)
	p.SetMatrix4(graphics.UniformModel, mgl32.Ident4())
}

func TestProjectionFlipsY(t *testing.T) {
	cam := graphics.NewCamera(640, 480)
	if cam.AspectRatio != float32(640)/480 {
		t.Fatalf("aspect = %v", cam.AspectRatio)
	}
	p := cam.GetProjectionMatrix().Mul4x1(mgl32.Vec4{0, 10, -50, 1})
	if p.Y() >= 0 {
		t.Errorf("point above the axis maps to clip y %v, want negative", p.Y())
	}

	cam.FlipY = false
	p = cam.GetProjectionMatrix().Mul4x1(mgl32.Vec4{0, 10, -50, 1})
	if p.Y() <= 0 {
		t.Errorf("unflipped clip y = %v, want positive", p.Y())
	}

	cam.SetViewport(1920, 1440)
	if cam.AspectRatio != float32(1920)/1440 {
		t.Errorf("aspect after resize = %v", cam.AspectRatio)
	}
	cam.SetViewport(100, 0)
	if cam.AspectRatio != float32(1920)/1440 {
		t.Errorf("zero height changed aspect to %v", cam.AspectRatio)
	}
}

func TestProjectionPlanes(t *testing.T) {
	cam := graphics.NewCamera(640, 480)
	proj := cam.GetProjectionMatrix()
	near := proj.Mul4x1(mgl32.Vec4{0, 0, -5, 1})
	far := proj.Mul4x1(mgl32.Vec4{0, 0, -500, 1})
	if d := near.Z() / near.W(); d < -1.0001 || d > -0.9999 {
		t.Errorf("near plane depth = %v, want -1", d)
	}
	if d := far.Z() / far.W(); d < 0.9999 || d > 1.0001 {
		t.Errorf("far plane depth = %v, want 1", d)
	}
}

func TestDrainErrors(t *testing.T) {
	gl := graphicstest.New()
	gl.PendingErrors = []uint32{0x0500, 0x0502}
	got := graphics.DrainErrors(gl)
	if len(got) != 2 || got[0] != 0x0500 {
		t.Errorf("DrainErrors = %v", got)
	}
	if len(graphics.DrainErrors(gl)) != 0 {
		t.Error("errors not drained")
	}
}

func TestShaderNamesMatchSources(t *testing.T) {
	gl := graphicstest.New()
	graphics.CompileProgram(gl)

	srcs := strings.Join(gl.ShaderSources(), "\n")
	names := []string{
		graphics.AttribVertex, graphics.AttribNormal, graphics.AttribTexCoord, graphics.AttribOffset,
		graphics.UniformViewProj, graphics.UniformModel, graphics.UniformTexture,
		graphics.UniformLightPos, graphics.UniformAmbient,
	}
	for _, name := range names {
		if !strings.Contains(srcs, name) {
			t.Errorf("%s not declared by the shaders", name)
		}
	}
}
