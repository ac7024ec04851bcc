package player

import (
	"github.com/go-gl/mathgl/mgl32"
)

const (
	maxMouseDelta = 20
	yawSpeed      = 0.20
	pitchSpeed    = 0.10
	maxPitch      = 80.0
	moveStep      = 0.25
)

// Input is one frame of polled controls.
type Input struct {
	MouseX, MouseY int

	Forward, Backward bool
	Left, Right       bool
}

// State is the first-person camera. Angles are in degrees; Yaw accumulates
// without bound, Pitch stays within [-80, 80].
type State struct {
	Yaw      float64
	Pitch    float64
	Position mgl32.Vec3
}

// Advance applies one frame of input and returns the new state together with
// the look direction used to build the view matrix.
func Advance(prev State, in Input) (State, mgl32.Vec3) {
	next := prev

	next.Yaw -= yawSpeed * float64(clampInt(in.MouseX, -maxMouseDelta, maxMouseDelta))
	next.Pitch -= pitchSpeed * float64(clampInt(in.MouseY, -maxMouseDelta, maxMouseDelta))

	// Constrain pitch
	if next.Pitch > maxPitch {
		next.Pitch = maxPitch
	}
	if next.Pitch < -maxPitch {
		next.Pitch = -maxPitch
	}

	look, side := next.Directions()
	step := look.Mul(moveStep)
	strafe := side.Mul(moveStep)

	if in.Forward {
		next.Position = next.Position.Add(step)
	}
	if in.Backward {
		next.Position = next.Position.Sub(step)
	}
	if in.Left {
		next.Position = next.Position.Sub(strafe)
	}
	if in.Right {
		next.Position = next.Position.Add(strafe)
	}

	return next, look
}

// Directions returns the look vector (yaw then pitch applied to -Z) and the
// horizontal side vector (yaw applied to +X).
func (s State) Directions() (look, side mgl32.Vec3) {
	rotYaw := mgl32.HomogRotate3DY(mgl32.DegToRad(float32(s.Yaw)))
	rotPitch := mgl32.HomogRotate3DX(mgl32.DegToRad(float32(s.Pitch)))

	look = rotYaw.Mul4(rotPitch).Mul4x1(mgl32.Vec4{0, 0, -1, 0}).Vec3()
	side = rotYaw.Mul4x1(mgl32.Vec4{1, 0, 0, 0}).Vec3()
	return look, side
}

// ViewMatrix looks from the player position along look with +Y up.
func (s State) ViewMatrix(look mgl32.Vec3) mgl32.Mat4 {
	return mgl32.LookAtV(s.Position, s.Position.Add(look), mgl32.Vec3{0, 1, 0})
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
