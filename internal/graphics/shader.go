package graphics

import (
	"log"

	"github.com/go-gl/mathgl/mgl32"
)

// Attribute and uniform names shared by the shader sources and the renderer.
const (
	AttribVertex   = "aVertex"
	AttribNormal   = "aNormal"
	AttribTexCoord = "aTexCoord"
	AttribOffset   = "aOffset"

	UniformViewProj = "uVP"
	UniformModel    = "uM"
	UniformTexture  = "uTexture"
	UniformLightPos = "light_pos"
	UniformAmbient  = "ambient_light"
)

var vertexShader = `#version 330 core
uniform mat4 uVP;
uniform mat4 uM;
in vec4 aVertex;
in vec4 aNormal;
in vec2 aTexCoord;
in vec4 aOffset;
out vec3 normal;
out vec4 model_pos;
out vec2 tex_coord;
void main() {
	model_pos = uM * (aVertex + aOffset);
	gl_Position = uVP * model_pos;
	vec4 trans_normal = uM * aNormal;
	normal = trans_normal.xyz;
	tex_coord = aTexCoord;
}
`

var fragmentShader = `#version 330 core
in vec3 normal;
in vec4 model_pos;
in vec2 tex_coord;
uniform vec3 light_pos;
uniform vec4 ambient_light;
uniform sampler2D uTexture;
out vec4 FragColor;
void main() {
	vec3 diff = light_pos - model_pos.xyz;
	float dist_mod = 100.0 * inversesqrt(dot(diff, diff));
	FragColor = texture(uTexture, tex_coord) * (ambient_light + dist_mod * smoothstep(0.0, 1.0, dot(normalize(diff), normal)));
}
`

// Program is the linked cube shader together with its resolved locations.
// A location of -1 means the name is not active in the program.
type Program struct {
	ID uint32

	// Vertex attribute locations
	Vertex   int32
	Normal   int32
	TexCoord int32
	Offset   int32

	// OK is false when compiling or linking failed.
	OK bool

	gl GL
}

// CompileProgram compiles and links the cube shaders. Failures are logged
// with the driver's info log and do not abort; the returned program may be
// unusable.
func CompileProgram(gl GL) *Program {
	program := gl.CreateProgram()
	vert := compileShader(gl, gl.CreateShader(VertexShader), vertexShader, "vertex")
	frag := compileShader(gl, gl.CreateShader(FragmentShader), fragmentShader, "fragment")

	gl.AttachShader(program, vert)
	gl.AttachShader(program, frag)
	gl.LinkProgram(program)

	ok := gl.ProgramLinked(program)
	if !ok {
		log.Printf("program failed to link: %s", gl.ProgramInfoLog(program))
	}
	// shaders can be deleted after linking
	gl.DeleteShader(vert)
	gl.DeleteShader(frag)

	return &Program{
		ID:       program,
		Vertex:   gl.AttribLocation(program, AttribVertex),
		Normal:   gl.AttribLocation(program, AttribNormal),
		TexCoord: gl.AttribLocation(program, AttribTexCoord),
		Offset:   gl.AttribLocation(program, AttribOffset),
		OK:       ok,
		gl:       gl,
	}
}

func compileShader(gl GL, shader uint32, source, kind string) uint32 {
	gl.ShaderSource(shader, source)
	gl.CompileShader(shader)
	if !gl.ShaderCompiled(shader) {
		log.Printf("%s shader failed to compile: %s", kind, gl.ShaderInfoLog(shader))
	}
	return shader
}

// Use activates the shader program
func (p *Program) Use() {
	p.gl.UseProgram(p.ID)
}

// SetInt sets an integer uniform
func (p *Program) SetInt(name string, value int32) {
	p.gl.Uniform1i(p.gl.UniformLocation(p.ID, name), value)
}

// SetVector3 sets a vector3 uniform
func (p *Program) SetVector3(name string, value mgl32.Vec3) {
	p.gl.Uniform3f(p.gl.UniformLocation(p.ID, name), value)
}

// SetVector4 sets a vector4 uniform
func (p *Program) SetVector4(name string, value mgl32.Vec4) {
	p.gl.Uniform4f(p.gl.UniformLocation(p.ID, name), value)
}

// SetMatrix4 sets a 4x4 matrix uniform
func (p *Program) SetMatrix4(name string, value mgl32.Mat4) {
	p.gl.UniformMatrix4f(p.gl.UniformLocation(p.ID, name), value)
}

// Delete releases the program object.
func (p *Program) Delete() {
	p.gl.DeleteProgram(p.ID)
}
