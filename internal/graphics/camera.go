package graphics

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Camera handles the projection matrix
type Camera struct {
	AspectRatio float32
	FOV         float32
	NearPlane   float32
	FarPlane    float32

	// FlipY negates clip-space Y so rows land top-down in the host framebuffer.
	FlipY bool
}

func NewCamera(width, height int) *Camera {
	return &Camera{
		AspectRatio: float32(width) / float32(height),
		FOV:         45.0,
		NearPlane:   5.0,
		FarPlane:    500.0,
		FlipY:       true,
	}
}

// SetViewport updates the aspect ratio.
func (c *Camera) SetViewport(width, height int) {
	if height <= 0 {
		return
	}
	c.AspectRatio = float32(width) / float32(height)
}

func (c *Camera) GetProjectionMatrix() mgl32.Mat4 {
	proj := mgl32.Perspective(mgl32.DegToRad(c.FOV), c.AspectRatio, c.NearPlane, c.FarPlane)
	if c.FlipY {
		proj = mgl32.Scale3D(1, -1, 1).Mul4(proj)
	}
	return proj
}

// ViewProjection combines the projection with a view matrix.
func (c *Camera) ViewProjection(view mgl32.Mat4) mgl32.Mat4 {
	return c.GetProjectionMatrix().Mul4(view)
}
