// Package host describes the boundary between a core and the application
// that loads it: the callbacks the host installs, the environment channel
// used for configuration and hardware rendering, and the descriptors
// exchanged over it.
package host

import "unsafe"

// APIVersion is reported by cores built against this interface.
const APIVersion = 1

// Input devices.
const (
	DeviceNone   = 0
	DeviceJoypad = 1
	DeviceMouse  = 2
)

// Joypad button ids.
const (
	JoypadB      = 0
	JoypadY      = 1
	JoypadSelect = 2
	JoypadStart  = 3
	JoypadUp     = 4
	JoypadDown   = 5
	JoypadLeft   = 6
	JoypadRight  = 7
	JoypadA      = 8
	JoypadX      = 9
)

// Mouse ids. X and Y report the movement since the last poll.
const (
	MouseX     = 0
	MouseY     = 1
	MouseLeft  = 2
	MouseRight = 3
)

// Region is the video standard a core reports.
type Region int

const (
	RegionNTSC Region = iota
	RegionPAL
)

// PixelFormat is the format of software-rendered frames.
type PixelFormat int

const (
	PixelFormat0RGB1555 PixelFormat = iota
	PixelFormatXRGB8888
	PixelFormatRGB565
)

func (f PixelFormat) String() string {
	switch f {
	case PixelFormat0RGB1555:
		return "0RGB1555"
	case PixelFormatXRGB8888:
		return "XRGB8888"
	case PixelFormatRGB565:
		return "RGB565"
	}
	return "unknown"
}

// ContextType is the graphics API a core asks the host for.
type ContextType int

const (
	ContextNone ContextType = iota
	ContextOpenGL
	ContextOpenGLES2
	ContextOpenGLCore
	ContextOpenGLES3
)

func (c ContextType) String() string {
	switch c {
	case ContextOpenGL:
		return "opengl"
	case ContextOpenGLES2:
		return "opengles2"
	case ContextOpenGLCore:
		return "opengl-core"
	case ContextOpenGLES3:
		return "opengles3"
	}
	return "none"
}

// ProcAddressFunc resolves a graphics API entry point by name.
type ProcAddressFunc func(name string) unsafe.Pointer

// HWRender is the hardware rendering descriptor a core installs with
// Environment.SetHWRender.
type HWRender struct {
	ContextType  ContextType
	VersionMajor int
	VersionMinor int
	Depth        bool
	Stencil      bool

	// ContextReset is called by the host each time the graphics context is
	// created or recreated. All objects from a previous context are gone.
	ContextReset func()
	// ContextDestroy is called before the host tears the context down.
	ContextDestroy func()

	// Filled in by the host.
	CurrentFramebuffer func() uintptr
	ProcAddress        ProcAddressFunc
}

// Variable declares one configuration option. Value is a description
// followed by the legal values: "Cube size; 1|2|4".
type Variable struct {
	Key   string
	Value string
}

// Geometry describes the video output of a core.
type Geometry struct {
	BaseWidth   int
	BaseHeight  int
	MaxWidth    int
	MaxHeight   int
	AspectRatio float32
}

// Timing describes the frame and sample rates of a core.
type Timing struct {
	FPS        float64
	SampleRate float64
}

// AVInfo is reported once a game is loaded.
type AVInfo struct {
	Geometry Geometry
	Timing   Timing
}

// SystemInfo identifies a core.
type SystemInfo struct {
	LibraryName     string
	LibraryVersion  string
	ValidExtensions string
	NeedFullpath    bool
	BlockExtract    bool
}

// GameInfo describes the content being loaded.
type GameInfo struct {
	Path string
	Data []byte
	Meta string
}

// Environment is the host's query-and-set channel.
type Environment interface {
	// SetVariables declares the core's configuration schema.
	SetVariables(vars []Variable) bool
	// GetVariable returns the current value of key.
	GetVariable(key string) (string, bool)
	// VariableUpdate reports whether any variable changed since the last call.
	VariableUpdate() bool
	SetPixelFormat(format PixelFormat) bool
	// SetHWRender requests a hardware context. The host fills in the
	// framebuffer and proc address accessors on success.
	SetHWRender(hw *HWRender) bool
	SetGeometry(g Geometry) bool
}

// Frame is handed to the host once per Run.
type Frame struct {
	// Pixels holds a software-rendered frame; nil for HW and Dupe frames.
	Pixels []byte
	// HW reports that the host framebuffer already holds the output.
	HW bool
	// Dupe asks the host to show the previous frame again.
	Dupe bool

	Width, Height, Pitch int
}

type (
	VideoRefreshFunc     func(f Frame)
	AudioSampleFunc      func(left, right int16)
	AudioSampleBatchFunc func(samples []int16) int
	InputPollFunc        func()
	InputStateFunc       func(port, device, index, id uint) int16
)
