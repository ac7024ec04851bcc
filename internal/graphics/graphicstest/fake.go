// Package graphicstest provides an in-memory graphics.GL for tests.
package graphicstest

import (
	"fmt"

	"instancing-viewer/internal/graphics"
	"instancing-viewer/internal/host"

	"github.com/go-gl/mathgl/mgl32"
)

type objectKind int

const (
	kindShader objectKind = iota + 1
	kindProgram
	kindVertexArray
	kindBuffer
	kindTexture
)

func (k objectKind) String() string {
	return [...]string{"", "shader", "program", "vertex array", "buffer", "texture"}[k]
}

// Draw records one draw call.
type Draw struct {
	Instanced bool
	Mode      uint32
	Count     int32
	Instances int32
	Program   uint32
	Texture   uint32
	Buffer    uint32
}

// Buffer is the current content of a buffer object.
type Buffer struct {
	Floats []float32
	Bytes  []uint8
	Usage  uint32
	// Uploads counts BufferData calls.
	Uploads int
}

// Texture is the current content of a texture object.
type Texture struct {
	Width, Height int32
	Pixels        []byte
	Params        map[uint32]int32
}

// GL is a recording fake. Object names are never reused, even across
// LoseContext, so a handle from a lost context is always detected.
type GL struct {
	// FailCompile and FailLink make the next programs fail with InfoLog.
	FailCompile bool
	FailLink    bool
	InfoLog     string
	// InitErr is returned by Init.
	InitErr error
	// PendingErrors are returned by GetError before NoError.
	PendingErrors []uint32

	Inits   int
	Draws   []Draw
	Buffers map[uint32]*Buffer
	Texs    map[uint32]*Texture
	// Stale lists every use of a name that is not live in the current context.
	Stale []string

	Enabled      map[uint32]bool
	EnabledAttrs map[uint32]bool
	Divisors     map[uint32]uint32
	ConstAttrs   map[uint32]mgl32.Vec4
	Uniforms     map[string]any
	Framebuffer  uint32
	ViewportSize [2]int32

	next     uint32
	live     map[uint32]objectKind
	sources  map[uint32]string
	locs     map[string]int32
	uniNames map[int32]string

	program     uint32
	vao         uint32
	arrayBuffer uint32
	elemBuffer  uint32
	texture     uint32
}

var _ graphics.GL = (*GL)(nil)

// New returns an empty fake with a live context.
func New() *GL {
	g := &GL{}
	g.reset()
	g.locs = map[string]int32{
		graphics.AttribVertex:   0,
		graphics.AttribNormal:   1,
		graphics.AttribTexCoord: 2,
		graphics.AttribOffset:   3,
	}
	return g
}

func (g *GL) reset() {
	g.live = map[uint32]objectKind{}
	g.sources = map[uint32]string{}
	g.Buffers = map[uint32]*Buffer{}
	g.Texs = map[uint32]*Texture{}
	g.Enabled = map[uint32]bool{}
	g.EnabledAttrs = map[uint32]bool{}
	g.Divisors = map[uint32]uint32{}
	g.ConstAttrs = map[uint32]mgl32.Vec4{}
	g.Uniforms = map[string]any{}
	g.uniNames = map[int32]string{}
	g.program, g.vao, g.arrayBuffer, g.elemBuffer, g.texture = 0, 0, 0, 0, 0
}

// LoseContext destroys every object, as a host recreating its context does.
func (g *GL) LoseContext() { g.reset() }

// Live counts live objects of every kind.
func (g *GL) Live() int { return len(g.live) }

// LiveBuffers counts live buffer objects.
func (g *GL) LiveBuffers() int {
	n := 0
	for _, k := range g.live {
		if k == kindBuffer {
			n++
		}
	}
	return n
}

// ShaderSources returns the source of every shader created in the current
// context, deleted or not.
func (g *GL) ShaderSources() []string {
	out := make([]string, 0, len(g.sources))
	for _, src := range g.sources {
		out = append(out, src)
	}
	return out
}

// LastDraw returns the most recent draw call.
func (g *GL) LastDraw() (Draw, bool) {
	if len(g.Draws) == 0 {
		return Draw{}, false
	}
	return g.Draws[len(g.Draws)-1], true
}

func (g *GL) gen(kind objectKind) uint32 {
	g.next++
	g.live[g.next] = kind
	return g.next
}

func (g *GL) check(name uint32, kind objectKind, op string) {
	if name == 0 {
		return
	}
	if k, ok := g.live[name]; !ok || k != kind {
		g.Stale = append(g.Stale, fmt.Sprintf("%s: %v %d", op, kind, name))
	}
}

func (g *GL) del(name uint32, kind objectKind, op string) {
	if name == 0 {
		return
	}
	g.check(name, kind, op)
	delete(g.live, name)
	delete(g.Buffers, name)
	delete(g.Texs, name)
}

func (g *GL) Init(host.ProcAddressFunc) error {
	g.Inits++
	return g.InitErr
}

func (g *GL) GetError() uint32 {
	if len(g.PendingErrors) == 0 {
		return graphics.NoError
	}
	e := g.PendingErrors[0]
	g.PendingErrors = g.PendingErrors[1:]
	return e
}

func (g *GL) CreateShader(uint32) uint32 { return g.gen(kindShader) }

func (g *GL) ShaderSource(shader uint32, source string) {
	g.check(shader, kindShader, "ShaderSource")
	g.sources[shader] = source
}

func (g *GL) CompileShader(shader uint32) { g.check(shader, kindShader, "CompileShader") }

func (g *GL) ShaderCompiled(uint32) bool { return !g.FailCompile }

func (g *GL) ShaderInfoLog(uint32) string {
	if g.FailCompile {
		return g.InfoLog
	}
	return ""
}

func (g *GL) DeleteShader(shader uint32) { g.del(shader, kindShader, "DeleteShader") }

func (g *GL) CreateProgram() uint32 { return g.gen(kindProgram) }

func (g *GL) AttachShader(program, shader uint32) {
	g.check(program, kindProgram, "AttachShader")
	g.check(shader, kindShader, "AttachShader")
}

func (g *GL) LinkProgram(program uint32) { g.check(program, kindProgram, "LinkProgram") }

func (g *GL) ProgramLinked(uint32) bool { return !g.FailLink && !g.FailCompile }

func (g *GL) ProgramInfoLog(uint32) string {
	if g.FailLink {
		return g.InfoLog
	}
	return ""
}

func (g *GL) DeleteProgram(program uint32) { g.del(program, kindProgram, "DeleteProgram") }

func (g *GL) UseProgram(program uint32) {
	g.check(program, kindProgram, "UseProgram")
	g.program = program
}

// AttribLocation reports -1 for every attribute when linking failed.
func (g *GL) AttribLocation(program uint32, name string) int32 {
	g.check(program, kindProgram, "AttribLocation")
	if !g.ProgramLinked(program) {
		return -1
	}
	if loc, ok := g.locs[name]; ok {
		return loc
	}
	return -1
}

func (g *GL) UniformLocation(program uint32, name string) int32 {
	g.check(program, kindProgram, "UniformLocation")
	if !g.ProgramLinked(program) {
		return -1
	}
	loc := int32(len(g.uniNames) + 16)
	for l, n := range g.uniNames {
		if n == name {
			return l
		}
	}
	g.uniNames[loc] = name
	return loc
}

func (g *GL) setUniform(location int32, v any) {
	if location < 0 {
		return
	}
	g.Uniforms[g.uniNames[location]] = v
}

func (g *GL) Uniform1i(location, value int32)                 { g.setUniform(location, value) }
func (g *GL) Uniform3f(location int32, value mgl32.Vec3)      { g.setUniform(location, value) }
func (g *GL) Uniform4f(location int32, value mgl32.Vec4)      { g.setUniform(location, value) }
func (g *GL) UniformMatrix4f(location int32, value mgl32.Mat4) { g.setUniform(location, value) }

func (g *GL) GenVertexArray() uint32 { return g.gen(kindVertexArray) }

func (g *GL) BindVertexArray(vao uint32) {
	g.check(vao, kindVertexArray, "BindVertexArray")
	g.vao = vao
}

func (g *GL) DeleteVertexArray(vao uint32) { g.del(vao, kindVertexArray, "DeleteVertexArray") }

func (g *GL) GenBuffer() uint32 { return g.gen(kindBuffer) }

func (g *GL) BindBuffer(target, buffer uint32) {
	g.check(buffer, kindBuffer, "BindBuffer")
	switch target {
	case graphics.ArrayBuffer:
		g.arrayBuffer = buffer
	case graphics.ElementArrayBuffer:
		g.elemBuffer = buffer
	}
}

func (g *GL) bound(target uint32) uint32 {
	if target == graphics.ElementArrayBuffer {
		return g.elemBuffer
	}
	return g.arrayBuffer
}

func (g *GL) buffer(target uint32) *Buffer {
	name := g.bound(target)
	if name == 0 {
		g.Stale = append(g.Stale, "BufferData: no buffer bound")
		return &Buffer{}
	}
	b, ok := g.Buffers[name]
	if !ok {
		b = &Buffer{}
		g.Buffers[name] = b
	}
	return b
}

func (g *GL) BufferDataFloat32(target uint32, data []float32, usage uint32) {
	b := g.buffer(target)
	b.Floats = append([]float32(nil), data...)
	b.Bytes = nil
	b.Usage = usage
	b.Uploads++
}

func (g *GL) BufferDataUint8(target uint32, data []uint8, usage uint32) {
	b := g.buffer(target)
	b.Bytes = append([]uint8(nil), data...)
	b.Floats = nil
	b.Usage = usage
	b.Uploads++
}

func (g *GL) DeleteBuffer(buffer uint32) { g.del(buffer, kindBuffer, "DeleteBuffer") }

func (g *GL) VertexAttribPointer(index uint32, size, stride int32, offset int) {
	if g.arrayBuffer == 0 {
		g.Stale = append(g.Stale, fmt.Sprintf("VertexAttribPointer %d: no buffer bound", index))
	}
}

func (g *GL) VertexAttribDivisor(index, divisor uint32) { g.Divisors[index] = divisor }

func (g *GL) VertexAttrib4f(index uint32, value mgl32.Vec4) { g.ConstAttrs[index] = value }

func (g *GL) EnableVertexAttribArray(index uint32) { g.EnabledAttrs[index] = true }

func (g *GL) DisableVertexAttribArray(index uint32) { delete(g.EnabledAttrs, index) }

func (g *GL) GenTexture() uint32 { return g.gen(kindTexture) }

func (g *GL) BindTexture(target, texture uint32) {
	g.check(texture, kindTexture, "BindTexture")
	g.texture = texture
}

func (g *GL) ActiveTexture(uint32) {}

func (g *GL) tex() *Texture {
	if g.texture == 0 {
		g.Stale = append(g.Stale, "texture call: no texture bound")
		return &Texture{Params: map[uint32]int32{}}
	}
	t, ok := g.Texs[g.texture]
	if !ok {
		t = &Texture{Params: map[uint32]int32{}}
		g.Texs[g.texture] = t
	}
	return t
}

func (g *GL) TexParameteri(_, name uint32, value int32) { g.tex().Params[name] = value }

func (g *GL) TexImage2DRGBA(_ uint32, width, height int32, pixels []byte) {
	t := g.tex()
	t.Width, t.Height = width, height
	t.Pixels = append([]byte(nil), pixels...)
}

func (g *GL) DeleteTexture(texture uint32) { g.del(texture, kindTexture, "DeleteTexture") }

func (g *GL) BindFramebuffer(_, framebuffer uint32) { g.Framebuffer = framebuffer }

func (g *GL) Viewport(_, _, width, height int32) { g.ViewportSize = [2]int32{width, height} }

func (g *GL) ClearColor(_, _, _, _ float32) {}

func (g *GL) Clear(uint32) {}

func (g *GL) Enable(capability uint32) { g.Enabled[capability] = true }

func (g *GL) Disable(capability uint32) { delete(g.Enabled, capability) }

func (g *GL) CullFace(uint32) {}

func (g *GL) FrontFace(uint32) {}

func (g *GL) record(d Draw) {
	g.check(g.program, kindProgram, "draw")
	g.check(g.vao, kindVertexArray, "draw")
	g.check(g.texture, kindTexture, "draw")
	d.Program = g.program
	d.Texture = g.texture
	d.Buffer = g.arrayBuffer
	g.Draws = append(g.Draws, d)
}

func (g *GL) DrawArrays(mode uint32, _, count int32) {
	g.record(Draw{Mode: mode, Count: count})
}

func (g *GL) DrawElementsInstanced(mode uint32, count int32, _ uint32, instances int32) {
	if g.elemBuffer == 0 {
		g.Stale = append(g.Stale, "DrawElementsInstanced: no index buffer bound")
	}
	g.record(Draw{Instanced: true, Mode: mode, Count: count, Instances: instances})
}
