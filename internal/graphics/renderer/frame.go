package renderer

import (
	"log"

	"instancing-viewer/internal/config"
	"instancing-viewer/internal/geometry"
	"instancing-viewer/internal/graphics"
	"instancing-viewer/internal/grid"
	"instancing-viewer/internal/player"
	"instancing-viewer/internal/profiling"

	"github.com/go-gl/mathgl/mgl32"
)

var (
	clearGrey    = mgl32.Vec4{0.1, 0.1, 0.1, 1}
	lightPos     = mgl32.Vec3{0, 150, 15}
	ambientLight = mgl32.Vec4{0.2, 0.2, 0.2, 1}
)

// RenderFrame advances the camera by one frame of input and draws the grid
// into the host framebuffer. It reports the size of the rendered image, or
// false when no context is ready and nothing was drawn.
func (r *Renderer) RenderFrame(in player.Input) (config.Resolution, bool) {
	if r.state != Ready {
		return config.Resolution{}, false
	}
	defer profiling.Track("renderer.RenderFrame")()

	state, look := player.Advance(r.player, in)
	r.player = state

	gl := r.gl
	res := r.opts.Resolution

	var fb uintptr
	if r.framebuffer != nil {
		fb = r.framebuffer()
	}
	gl.BindFramebuffer(graphics.Framebuffer, uint32(fb))
	gl.ClearColor(clearGrey[0], clearGrey[1], clearGrey[2], clearGrey[3])
	gl.Viewport(0, 0, int32(res.Width), int32(res.Height))
	gl.Clear(graphics.ColorBufferBit | graphics.DepthBufferBit)

	prog := r.res.program
	prog.Use()
	gl.BindVertexArray(r.res.vao)

	if r.needsRebuild {
		r.rebuild()
	}
	r.bindAttributes(prog)

	gl.Enable(graphics.DepthTest)
	gl.Enable(graphics.CullFace)
	gl.CullFace(graphics.Back)
	gl.FrontFace(graphics.CCW)

	gl.ActiveTexture(graphics.Texture0)
	gl.BindTexture(graphics.Texture2D, r.res.texture)
	prog.SetInt(graphics.UniformTexture, 0)
	prog.SetVector3(graphics.UniformLightPos, lightPos)
	prog.SetVector4(graphics.UniformAmbient, ambientLight)
	prog.SetMatrix4(graphics.UniformViewProj, r.camera.ViewProjection(state.ViewMatrix(look)))
	prog.SetMatrix4(graphics.UniformModel, mgl32.Ident4())

	r.draw()
	r.unbind(prog)

	if errs := graphics.DrainErrors(gl); len(errs) > 0 {
		log.Printf("gl errors during frame: %#x", errs)
	}
	return res, true
}

func (r *Renderer) bindAttributes(prog *graphics.Program) {
	gl := r.gl

	gl.BindBuffer(graphics.ArrayBuffer, r.res.vertexBuffer)
	pointer(gl, prog.Vertex, 4, geometry.PositionOffset)
	pointer(gl, prog.Normal, 4, geometry.NormalOffset)
	pointer(gl, prog.TexCoord, 2, geometry.TexCoordOffset)

	if prog.Offset < 0 {
		return
	}
	loc := uint32(prog.Offset)
	switch r.res.strategy {
	case grid.Instanced:
		gl.BindBuffer(graphics.ArrayBuffer, r.res.instanceBuffer)
		gl.EnableVertexAttribArray(loc)
		gl.VertexAttribPointer(loc, grid.OffsetSize, 0, 0)
		gl.VertexAttribDivisor(loc, 1)
	case grid.Expanded:
		// positions are already translated
		gl.DisableVertexAttribArray(loc)
		gl.VertexAttrib4f(loc, mgl32.Vec4{})
	}
}

func pointer(gl graphics.GL, loc, size int32, offset int) {
	if loc < 0 {
		return
	}
	gl.EnableVertexAttribArray(uint32(loc))
	gl.VertexAttribPointer(uint32(loc), size, geometry.VertexStride, offset)
}

func (r *Renderer) draw() {
	if r.built < 0 {
		return
	}
	gl := r.gl
	cubes := int32(r.built * r.built * r.built)
	switch r.res.strategy {
	case grid.Instanced:
		gl.BindBuffer(graphics.ElementArrayBuffer, r.res.indexBuffer)
		gl.DrawElementsInstanced(graphics.Triangles, int32(len(geometry.CubeIndices)), graphics.UnsignedByte, cubes)
	case grid.Expanded:
		gl.DrawArrays(graphics.Triangles, 0, int32(len(geometry.CubeIndices))*cubes)
	}
}

func (r *Renderer) unbind(prog *graphics.Program) {
	gl := r.gl
	// attribute state lives in the vertex array, so clear it while bound
	for _, loc := range []int32{prog.Vertex, prog.Normal, prog.TexCoord, prog.Offset} {
		if loc >= 0 {
			gl.DisableVertexAttribArray(uint32(loc))
		}
	}
	gl.BindVertexArray(0)
	gl.UseProgram(0)
	gl.BindBuffer(graphics.ArrayBuffer, 0)
	gl.BindBuffer(graphics.ElementArrayBuffer, 0)
	gl.BindTexture(graphics.Texture2D, 0)
}
