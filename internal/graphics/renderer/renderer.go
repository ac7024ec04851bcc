package renderer

import (
	"log"

	"instancing-viewer/internal/config"
	"instancing-viewer/internal/geometry"
	"instancing-viewer/internal/graphics"
	"instancing-viewer/internal/grid"
	"instancing-viewer/internal/host"
	"instancing-viewer/internal/player"
	"instancing-viewer/internal/profiling"
)

// resources are the GPU objects of one context lifetime.
type resources struct {
	strategy grid.Strategy

	program        *graphics.Program
	vao            uint32
	vertexBuffer   uint32
	indexBuffer    uint32 // Instanced only
	instanceBuffer uint32 // Instanced only
	texture        uint32
}

// Renderer owns the scene state of one loaded texture: the camera, the grid
// configuration and the GPU objects of the current context.
type Renderer struct {
	gl          graphics.GL
	decoder     graphics.Decoder
	texturePath string
	framebuffer func() uintptr
	procAddress host.ProcAddressFunc

	camera *graphics.Camera
	opts   config.Options
	player player.State

	state State
	res   resources

	// needsRebuild is set while the grid buffers do not reflect opts.
	needsRebuild bool
	// built is the edge length of the last successful upload, -1 if none
	// in this context.
	built         int
	loggedFailure bool
}

// NewRenderer creates a renderer with no GPU objects. Call OnContextReady
// once the host has a context.
func NewRenderer(p Params) *Renderer {
	res := p.Options.Resolution
	return &Renderer{
		gl:           p.GL,
		decoder:      p.Decoder,
		texturePath:  p.TexturePath,
		framebuffer:  p.Framebuffer,
		procAddress:  p.ProcAddress,
		camera:       graphics.NewCamera(res.Width, res.Height),
		opts:         p.Options,
		needsRebuild: true,
		built:        -1,
	}
}

// State reports whether GPU objects are usable.
func (r *Renderer) State() State { return r.state }

// NeedsRebuild reports whether the next frame rebuilds the grid buffers.
func (r *Renderer) NeedsRebuild() bool { return r.needsRebuild }

// Options returns the configuration in effect.
func (r *Renderer) Options() config.Options { return r.opts }

// Player returns the camera state.
func (r *Renderer) Player() player.State { return r.player }

// ResetPlayer returns the camera to the origin, looking down -Z.
func (r *Renderer) ResetPlayer() { r.player = player.State{} }

// Cubes is the number of cubes the next draw emits.
func (r *Renderer) Cubes() int {
	if r.built < 0 {
		return 0
	}
	return r.built * r.built * r.built
}

// OnContextReady builds every GPU object from scratch in the current
// context. Handles held from before are dropped, never reused.
func (r *Renderer) OnContextReady() {
	defer profiling.Track("renderer.OnContextReady")()
	log.Printf("context reset")

	r.res = resources{}
	r.state = Uninitialized
	r.built = -1
	r.needsRebuild = true
	r.loggedFailure = false

	if err := r.gl.Init(r.procAddress); err != nil {
		log.Printf("couldn't resolve gl functions: %v", err)
		return
	}

	r.res.strategy = r.opts.Strategy
	r.res.program = graphics.CompileProgram(r.gl)
	r.setupBuffers()
	r.res.texture = graphics.LoadTexture(r.gl, r.decoder, r.texturePath)

	r.state = Ready
}

// OnContextLost forgets every handle. The context that owned them is gone,
// so nothing is deleted.
func (r *Renderer) OnContextLost() {
	if r.state == Ready {
		log.Printf("context lost")
	}
	r.res = resources{}
	r.state = Uninitialized
	r.built = -1
	r.needsRebuild = true
}

// Release deletes the GPU objects of a still-live context.
func (r *Renderer) Release() {
	if r.state != Ready {
		return
	}
	gl := r.gl
	if r.res.program != nil {
		r.res.program.Delete()
	}
	for _, buf := range []uint32{r.res.vertexBuffer, r.res.indexBuffer, r.res.instanceBuffer} {
		if buf != 0 {
			gl.DeleteBuffer(buf)
		}
	}
	if r.res.vao != 0 {
		gl.DeleteVertexArray(r.res.vao)
	}
	if r.res.texture != 0 {
		gl.DeleteTexture(r.res.texture)
	}
	r.res = resources{}
	r.state = Uninitialized
	r.built = -1
	r.needsRebuild = true
}

// Configure applies a new configuration. A change of grid size or strategy
// rebuilds every GPU object synchronously when a context is live.
func (r *Renderer) Configure(opts config.Options) {
	prev := r.opts
	r.opts = opts
	r.camera.SetViewport(opts.Resolution.Width, opts.Resolution.Height)

	if !prev.GridChanged(opts) {
		return
	}
	r.needsRebuild = true
	r.loggedFailure = false
	if r.state == Ready {
		r.Release()
		r.OnContextReady()
	}
}

func (r *Renderer) setupBuffers() {
	gl := r.gl
	r.res.program.Use()

	r.res.vao = gl.GenVertexArray()
	gl.BindVertexArray(r.res.vao)

	r.res.vertexBuffer = gl.GenBuffer()
	gl.BindBuffer(graphics.ArrayBuffer, r.res.vertexBuffer)

	switch r.res.strategy {
	case grid.Instanced:
		gl.BufferDataFloat32(graphics.ArrayBuffer, geometry.Floats(geometry.Cube[:]), graphics.StaticDraw)

		r.res.instanceBuffer = gl.GenBuffer()
		gl.BindBuffer(graphics.ArrayBuffer, r.res.instanceBuffer)
		gl.BufferDataFloat32(graphics.ArrayBuffer, nil, graphics.StreamDraw)

		r.res.indexBuffer = gl.GenBuffer()
		gl.BindBuffer(graphics.ElementArrayBuffer, r.res.indexBuffer)
		gl.BufferDataUint8(graphics.ElementArrayBuffer, geometry.CubeIndices[:], graphics.StaticDraw)
	case grid.Expanded:
		gl.BufferDataFloat32(graphics.ArrayBuffer, nil, graphics.StaticDraw)
	}

	gl.BindVertexArray(0)
	gl.BindBuffer(graphics.ArrayBuffer, 0)
	gl.BindBuffer(graphics.ElementArrayBuffer, 0)
	gl.UseProgram(0)
}

// rebuild uploads the grid for the configured size, replacing the previous
// contents. On failure the flag stays set and nothing is drawn.
func (r *Renderer) rebuild() {
	defer profiling.Track("grid.Build")()

	n := r.opts.CubeSize
	mesh, err := grid.Build(r.res.strategy, n)
	if err == nil {
		err = mesh.Validate()
	}
	if err != nil {
		if !r.loggedFailure {
			log.Printf("grid rebuild failed: %v", err)
			r.loggedFailure = true
		}
		r.built = -1
		return
	}

	gl := r.gl
	switch r.res.strategy {
	case grid.Instanced:
		gl.BindBuffer(graphics.ArrayBuffer, r.res.instanceBuffer)
		gl.BufferDataFloat32(graphics.ArrayBuffer, mesh.Offsets, graphics.StreamDraw)
	case grid.Expanded:
		gl.BindBuffer(graphics.ArrayBuffer, r.res.vertexBuffer)
		gl.BufferDataFloat32(graphics.ArrayBuffer, mesh.Vertices, graphics.StaticDraw)
	}
	gl.BindBuffer(graphics.ArrayBuffer, 0)

	r.built = n
	r.needsRebuild = false
}
