package input

import (
	"testing"

	"instancing-viewer/internal/host"

	"github.com/go-gl/glfw/v3.3/glfw"
)

func TestJoypadFromKeys(t *testing.T) {
	tests := []struct {
		key glfw.Key
		id  uint
	}{
		{glfw.KeyW, host.JoypadUp},
		{glfw.KeyUp, host.JoypadUp},
		{glfw.KeyS, host.JoypadDown},
		{glfw.KeyDown, host.JoypadDown},
		{glfw.KeyA, host.JoypadLeft},
		{glfw.KeyLeft, host.JoypadLeft},
		{glfw.KeyD, host.JoypadRight},
		{glfw.KeyRight, host.JoypadRight},
	}
	for _, tt := range tests {
		im := NewInputManager()
		im.HandleKeyEvent(tt.key, glfw.Press)
		if got := im.State(0, host.DeviceJoypad, 0, tt.id); got != 1 {
			t.Errorf("key %v: button %d = %d, want 1", tt.key, tt.id, got)
		}
		if got := im.State(1, host.DeviceJoypad, 0, tt.id); got != 0 {
			t.Errorf("key %v: port 1 reported %d", tt.key, got)
		}
		im.HandleKeyEvent(tt.key, glfw.Release)
		if got := im.State(0, host.DeviceJoypad, 0, tt.id); got != 0 {
			t.Errorf("key %v: button %d = %d after release", tt.key, tt.id, got)
		}
	}
}

func TestJustPressed(t *testing.T) {
	im := NewInputManager()
	im.HandleKeyEvent(glfw.KeyC, glfw.Press)
	if !im.JustPressed(ActionCycleCubeSize) {
		t.Fatal("press not reported")
	}
	im.PostUpdate()
	im.HandleKeyEvent(glfw.KeyC, glfw.Repeat)
	if im.JustPressed(ActionCycleCubeSize) {
		t.Error("key repeat reported as a new press")
	}
	if !im.IsActive(ActionCycleCubeSize) {
		t.Error("held key not active")
	}
	im.HandleKeyEvent(glfw.KeyX, glfw.Press)
	for a := Action(0); a < ActionCount; a++ {
		if a != ActionCycleCubeSize && im.IsActive(a) {
			t.Errorf("unbound key activated %d", a)
		}
	}
}

func TestMouseDeltas(t *testing.T) {
	im := NewInputManager()
	im.HandleCursorPos(100, 100)
	im.HandleCursorPos(110, 95)
	im.HandleCursorPos(112.4, 90)

	// Nothing is reported before Poll.
	if got := im.State(0, host.DeviceMouse, 0, host.MouseX); got != 0 {
		t.Errorf("x before poll = %d", got)
	}
	im.Poll()
	if x, y := im.State(0, host.DeviceMouse, 0, host.MouseX), im.State(0, host.DeviceMouse, 0, host.MouseY); x != 12 || y != -10 {
		t.Errorf("delta = (%d, %d), want (12, -10)", x, y)
	}
	// The latched value holds until the next Poll, then resets.
	if got := im.State(0, host.DeviceMouse, 0, host.MouseX); got != 12 {
		t.Errorf("second read = %d", got)
	}
	im.Poll()
	if got := im.State(0, host.DeviceMouse, 0, host.MouseX); got != 0 {
		t.Errorf("x after idle poll = %d", got)
	}
}

func TestSaturate(t *testing.T) {
	tests := map[float64]int16{
		0:      0,
		1.6:    2,
		-1.6:   -2,
		1e9:    32767,
		-1e9:   -32768,
		32767:  32767,
		-32768: -32768,
	}
	for in, want := range tests {
		if got := saturate(in); got != want {
			t.Errorf("saturate(%v) = %d, want %d", in, got, want)
		}
	}
}
