// Package gldevice implements graphics.GL on top of go-gl's OpenGL 4.1 core
// bindings. It needs a current context on the calling thread.
package gldevice

import (
	"strings"

	"instancing-viewer/internal/graphics"
	"instancing-viewer/internal/host"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
)

// Device forwards to the process-wide go-gl function table.
type Device struct{}

var _ graphics.GL = Device{}

func New() Device { return Device{} }

// Init loads the function pointers. With a proc address accessor from the
// host it resolves through it, otherwise through the platform loader.
func (Device) Init(proc host.ProcAddressFunc) error {
	if proc == nil {
		return gl.Init()
	}
	return gl.InitWithProcAddrFunc(proc)
}

func (Device) GetError() uint32 { return gl.GetError() }

func (Device) CreateShader(kind uint32) uint32 { return gl.CreateShader(kind) }

func (Device) ShaderSource(shader uint32, source string) {
	csources, free := gl.Strs(source + "\x00")
	gl.ShaderSource(shader, 1, csources, nil)
	free()
}

func (Device) CompileShader(shader uint32) { gl.CompileShader(shader) }

func (Device) ShaderCompiled(shader uint32) bool {
	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	return status != gl.FALSE
}

func (Device) ShaderInfoLog(shader uint32) string {
	var logLength int32
	gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)
	if logLength == 0 {
		return ""
	}
	log := strings.Repeat("\x00", int(logLength+1))
	gl.GetShaderInfoLog(shader, logLength, nil, gl.Str(log))
	return strings.TrimRight(log, "\x00")
}

func (Device) DeleteShader(shader uint32) { gl.DeleteShader(shader) }

func (Device) CreateProgram() uint32 { return gl.CreateProgram() }

func (Device) AttachShader(program, shader uint32) { gl.AttachShader(program, shader) }

func (Device) LinkProgram(program uint32) { gl.LinkProgram(program) }

func (Device) ProgramLinked(program uint32) bool {
	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	return status != gl.FALSE
}

func (Device) ProgramInfoLog(program uint32) string {
	var logLength int32
	gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)
	if logLength == 0 {
		return ""
	}
	log := strings.Repeat("\x00", int(logLength+1))
	gl.GetProgramInfoLog(program, logLength, nil, gl.Str(log))
	return strings.TrimRight(log, "\x00")
}

func (Device) DeleteProgram(program uint32) { gl.DeleteProgram(program) }

func (Device) UseProgram(program uint32) { gl.UseProgram(program) }

func (Device) AttribLocation(program uint32, name string) int32 {
	return gl.GetAttribLocation(program, gl.Str(name+"\x00"))
}

func (Device) UniformLocation(program uint32, name string) int32 {
	return gl.GetUniformLocation(program, gl.Str(name+"\x00"))
}

func (Device) Uniform1i(location, value int32) { gl.Uniform1i(location, value) }

func (Device) Uniform3f(location int32, v mgl32.Vec3) {
	gl.Uniform3f(location, v[0], v[1], v[2])
}

func (Device) Uniform4f(location int32, v mgl32.Vec4) {
	gl.Uniform4f(location, v[0], v[1], v[2], v[3])
}

func (Device) UniformMatrix4f(location int32, m mgl32.Mat4) {
	gl.UniformMatrix4fv(location, 1, false, &m[0])
}

func (Device) GenVertexArray() uint32 {
	var vao uint32
	gl.GenVertexArrays(1, &vao)
	return vao
}

func (Device) BindVertexArray(vao uint32) { gl.BindVertexArray(vao) }

func (Device) DeleteVertexArray(vao uint32) { gl.DeleteVertexArrays(1, &vao) }

func (Device) GenBuffer() uint32 {
	var buf uint32
	gl.GenBuffers(1, &buf)
	return buf
}

func (Device) BindBuffer(target, buffer uint32) { gl.BindBuffer(target, buffer) }

func (Device) BufferDataFloat32(target uint32, data []float32, usage uint32) {
	if len(data) == 0 {
		gl.BufferData(target, 0, nil, usage)
		return
	}
	gl.BufferData(target, len(data)*4, gl.Ptr(data), usage)
}

func (Device) BufferDataUint8(target uint32, data []uint8, usage uint32) {
	if len(data) == 0 {
		gl.BufferData(target, 0, nil, usage)
		return
	}
	gl.BufferData(target, len(data), gl.Ptr(data), usage)
}

func (Device) DeleteBuffer(buffer uint32) { gl.DeleteBuffers(1, &buffer) }

func (Device) VertexAttribPointer(index uint32, size, stride int32, offset int) {
	gl.VertexAttribPointer(index, size, gl.FLOAT, false, stride, gl.PtrOffset(offset))
}

func (Device) VertexAttribDivisor(index, divisor uint32) { gl.VertexAttribDivisor(index, divisor) }

func (Device) VertexAttrib4f(index uint32, v mgl32.Vec4) {
	gl.VertexAttrib4f(index, v[0], v[1], v[2], v[3])
}

func (Device) EnableVertexAttribArray(index uint32) { gl.EnableVertexAttribArray(index) }

func (Device) DisableVertexAttribArray(index uint32) { gl.DisableVertexAttribArray(index) }

func (Device) GenTexture() uint32 {
	var tex uint32
	gl.GenTextures(1, &tex)
	return tex
}

func (Device) BindTexture(target, texture uint32) { gl.BindTexture(target, texture) }

func (Device) ActiveTexture(unit uint32) { gl.ActiveTexture(unit) }

func (Device) TexParameteri(target, name uint32, value int32) {
	gl.TexParameteri(target, name, value)
}

func (Device) TexImage2DRGBA(target uint32, width, height int32, pixels []byte) {
	gl.TexImage2D(target, 0, gl.RGBA, width, height, 0, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pixels))
}

func (Device) DeleteTexture(texture uint32) { gl.DeleteTextures(1, &texture) }

func (Device) BindFramebuffer(target, framebuffer uint32) { gl.BindFramebuffer(target, framebuffer) }

func (Device) Viewport(x, y, width, height int32) { gl.Viewport(x, y, width, height) }

func (Device) ClearColor(r, g, b, a float32) { gl.ClearColor(r, g, b, a) }

func (Device) Clear(mask uint32) { gl.Clear(mask) }

func (Device) Enable(capability uint32) { gl.Enable(capability) }

func (Device) Disable(capability uint32) { gl.Disable(capability) }

func (Device) CullFace(mode uint32) { gl.CullFace(mode) }

func (Device) FrontFace(mode uint32) { gl.FrontFace(mode) }

func (Device) DrawArrays(mode uint32, first, count int32) { gl.DrawArrays(mode, first, count) }

func (Device) DrawElementsInstanced(mode uint32, count int32, indexType uint32, instances int32) {
	gl.DrawElementsInstanced(mode, count, indexType, nil, instances)
}
