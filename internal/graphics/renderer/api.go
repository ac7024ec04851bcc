package renderer

import (
	"instancing-viewer/internal/config"
	"instancing-viewer/internal/graphics"
	"instancing-viewer/internal/host"
)

// State is the lifecycle state of a renderer's GPU objects.
type State int

const (
	// Uninitialized holds no usable GPU objects: before the first context
	// reset, after a context loss, or after Release.
	Uninitialized State = iota
	// Ready holds a full set of objects created in the current context.
	Ready
)

func (s State) String() string {
	if s == Ready {
		return "ready"
	}
	return "uninitialized"
}

// Params wires a renderer to its host.
type Params struct {
	GL      graphics.GL
	Decoder graphics.Decoder

	TexturePath string
	Options     config.Options

	// Framebuffer returns the host's current render target. Nil means the
	// default framebuffer.
	Framebuffer func() uintptr
	// ProcAddress resolves GL entry points; nil uses the platform loader.
	ProcAddress host.ProcAddressFunc
}
