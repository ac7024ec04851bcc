package graphics

import (
	"instancing-viewer/internal/host"

	"github.com/go-gl/mathgl/mgl32"
)

// OpenGL enums used by the renderer.
const (
	NoError = 0

	Triangles = 0x0004

	DepthBufferBit = 0x00000100
	ColorBufferBit = 0x00004000

	DepthTest = 0x0B71
	CullFace  = 0x0B44
	Back      = 0x0405
	CCW       = 0x0901

	UnsignedByte = 0x1401
	Float        = 0x1406

	ArrayBuffer        = 0x8892
	ElementArrayBuffer = 0x8893
	StreamDraw         = 0x88E0
	StaticDraw         = 0x88E4
	DynamicDraw        = 0x88E8

	Framebuffer = 0x8D40

	VertexShader   = 0x8B31
	FragmentShader = 0x8B30

	Texture2D        = 0x0DE1
	Texture0         = 0x84C0
	TextureMinFilter = 0x2801
	TextureMagFilter = 0x2800
	Nearest          = 0x2600
)

// GL is the slice of the OpenGL API the renderer drives. The production
// implementation lives in gldevice; tests use graphicstest.
type GL interface {
	// Init resolves the function table through the host.
	Init(proc host.ProcAddressFunc) error
	GetError() uint32

	CreateShader(kind uint32) uint32
	ShaderSource(shader uint32, source string)
	CompileShader(shader uint32)
	ShaderCompiled(shader uint32) bool
	ShaderInfoLog(shader uint32) string
	DeleteShader(shader uint32)

	CreateProgram() uint32
	AttachShader(program, shader uint32)
	LinkProgram(program uint32)
	ProgramLinked(program uint32) bool
	ProgramInfoLog(program uint32) string
	DeleteProgram(program uint32)
	UseProgram(program uint32)
	AttribLocation(program uint32, name string) int32
	UniformLocation(program uint32, name string) int32
	Uniform1i(location, value int32)
	Uniform3f(location int32, value mgl32.Vec3)
	Uniform4f(location int32, value mgl32.Vec4)
	UniformMatrix4f(location int32, value mgl32.Mat4)

	GenVertexArray() uint32
	BindVertexArray(vao uint32)
	DeleteVertexArray(vao uint32)

	GenBuffer() uint32
	BindBuffer(target, buffer uint32)
	BufferDataFloat32(target uint32, data []float32, usage uint32)
	BufferDataUint8(target uint32, data []uint8, usage uint32)
	DeleteBuffer(buffer uint32)

	VertexAttribPointer(index uint32, size, stride int32, offset int)
	VertexAttribDivisor(index, divisor uint32)
	VertexAttrib4f(index uint32, value mgl32.Vec4)
	EnableVertexAttribArray(index uint32)
	DisableVertexAttribArray(index uint32)

	GenTexture() uint32
	BindTexture(target, texture uint32)
	ActiveTexture(unit uint32)
	TexParameteri(target, name uint32, value int32)
	TexImage2DRGBA(target uint32, width, height int32, pixels []byte)
	DeleteTexture(texture uint32)

	BindFramebuffer(target, framebuffer uint32)
	Viewport(x, y, width, height int32)
	ClearColor(r, g, b, a float32)
	Clear(mask uint32)
	Enable(capability uint32)
	Disable(capability uint32)
	CullFace(mode uint32)
	FrontFace(mode uint32)

	DrawArrays(mode uint32, first, count int32)
	DrawElementsInstanced(mode uint32, count int32, indexType uint32, instances int32)
}

// DrainErrors pops every pending error flag. The GL keeps one flag per
// error kind, so the loop is bounded.
func DrainErrors(gl GL) []uint32 {
	var errs []uint32
	for i := 0; i < 16; i++ {
		e := gl.GetError()
		if e == NoError {
			break
		}
		errs = append(errs, e)
	}
	return errs
}
