// Package core is the InstancingViewer GL core: it renders a cube grid
// textured with the loaded PNG into a hardware framebuffer owned by the host.
package core

import (
	"log"

	"instancing-viewer/internal/config"
	"instancing-viewer/internal/graphics"
	"instancing-viewer/internal/graphics/renderer"
	"instancing-viewer/internal/host"
	"instancing-viewer/internal/player"
)

const (
	LibraryName     = "InstancingViewer GL"
	LibraryVersion  = "v1"
	ValidExtensions = "png"

	FPS        = 60.0
	SampleRate = 30000.0
)

// Core holds every callback the host installed and the renderer of the
// loaded game, if any.
type Core struct {
	gl      graphics.GL
	decoder graphics.Decoder

	env        host.Environment
	video      host.VideoRefreshFunc
	audio      host.AudioSampleFunc
	audioBatch host.AudioSampleBatchFunc
	inputPoll  host.InputPollFunc
	inputState host.InputStateFunc

	opts     config.Options
	hw       *host.HWRender
	renderer *renderer.Renderer
}

// New creates a core drawing through gl and decoding textures with dec.
func New(gl graphics.GL, dec graphics.Decoder) *Core {
	return &Core{gl: gl, decoder: dec, opts: config.Default()}
}

func (c *Core) Init() {}

// Deinit drops every reference to the host.
func (c *Core) Deinit() {
	c.renderer = nil
	c.hw = nil
	c.env = nil
}

func (c *Core) APIVersion() uint { return host.APIVersion }

func (c *Core) SystemInfo() host.SystemInfo {
	return host.SystemInfo{
		LibraryName:     LibraryName,
		LibraryVersion:  LibraryVersion,
		ValidExtensions: ValidExtensions,
		NeedFullpath:    true,
	}
}

func (c *Core) SystemAVInfo() host.AVInfo {
	return host.AVInfo{
		Geometry: geometryFor(c.opts.Resolution),
		Timing:   host.Timing{FPS: FPS, SampleRate: SampleRate},
	}
}

func geometryFor(res config.Resolution) host.Geometry {
	largest := config.MaxResolution()
	return host.Geometry{
		BaseWidth:   res.Width,
		BaseHeight:  res.Height,
		MaxWidth:    largest.Width,
		MaxHeight:   largest.Height,
		AspectRatio: res.Aspect(),
	}
}

// SetEnvironment stores the environment channel and declares the option
// schema.
func (c *Core) SetEnvironment(env host.Environment) {
	c.env = env
	env.SetVariables(config.Variables())
}

func (c *Core) SetVideoRefresh(cb host.VideoRefreshFunc) { c.video = cb }

// The core is silent; the audio callbacks are stored and never called.
func (c *Core) SetAudioSample(cb host.AudioSampleFunc) { c.audio = cb }

func (c *Core) SetAudioSampleBatch(cb host.AudioSampleBatchFunc) { c.audioBatch = cb }

func (c *Core) SetInputPoll(cb host.InputPollFunc) { c.inputPoll = cb }

func (c *Core) SetInputState(cb host.InputStateFunc) { c.inputState = cb }

func (c *Core) SetControllerPortDevice(port, device uint) {}

// Reset returns the camera to the origin.
func (c *Core) Reset() {
	if c.renderer != nil {
		c.renderer.ResetPlayer()
	}
}

// Run produces one frame.
func (c *Core) Run() {
	if c.env != nil && c.env.VariableUpdate() {
		c.updateVariables()
	}
	if c.inputPoll != nil {
		c.inputPoll()
	}
	in := c.readInput()

	if c.renderer == nil {
		c.present(host.Frame{Dupe: true})
		return
	}
	res, ok := c.renderer.RenderFrame(in)
	if !ok {
		c.present(host.Frame{Dupe: true, Width: c.opts.Resolution.Width, Height: c.opts.Resolution.Height})
		return
	}
	c.present(host.Frame{HW: true, Width: res.Width, Height: res.Height})
}

func (c *Core) present(f host.Frame) {
	if c.video != nil {
		c.video(f)
	}
}

func (c *Core) readInput() player.Input {
	if c.inputState == nil {
		return player.Input{}
	}
	pressed := func(id uint) bool {
		return c.inputState(0, host.DeviceJoypad, 0, id) != 0
	}
	return player.Input{
		MouseX:   int(c.inputState(0, host.DeviceMouse, 0, host.MouseX)),
		MouseY:   int(c.inputState(0, host.DeviceMouse, 0, host.MouseY)),
		Forward:  pressed(host.JoypadUp),
		Backward: pressed(host.JoypadDown),
		Left:     pressed(host.JoypadLeft),
		Right:    pressed(host.JoypadRight),
	}
}

// updateVariables reloads the options. Rejected values are logged and the
// previous value kept.
func (c *Core) updateVariables() {
	if c.env == nil {
		return
	}
	opts, err := config.Load(c.env.GetVariable, c.opts)
	if err != nil {
		log.Printf("ignoring option values: %v", err)
	}
	prev := c.opts
	c.opts = opts

	if opts.Resolution != prev.Resolution {
		log.Printf("resolution %v", opts.Resolution)
		if c.renderer != nil {
			c.env.SetGeometry(geometryFor(opts.Resolution))
		}
	}
	if c.renderer != nil {
		c.renderer.Configure(opts)
	}
}

// LoadGame negotiates an XRGB8888 pixel format and an OpenGL core 3.3
// context with depth, then prepares a renderer for the texture at
// info.Path. GPU objects are created once the host resets the context.
func (c *Core) LoadGame(info *host.GameInfo) bool {
	if info == nil || c.env == nil {
		return false
	}
	c.updateVariables()

	if !c.env.SetPixelFormat(host.PixelFormatXRGB8888) {
		log.Printf("XRGB8888 is not supported")
		return false
	}

	hw := &host.HWRender{
		ContextType:    host.ContextOpenGLCore,
		VersionMajor:   3,
		VersionMinor:   3,
		Depth:          true,
		ContextReset:   c.contextReset,
		ContextDestroy: c.contextDestroy,
	}
	if !c.env.SetHWRender(hw) {
		log.Printf("%v %d.%d context is not supported", hw.ContextType, hw.VersionMajor, hw.VersionMinor)
		return false
	}
	c.hw = hw

	c.renderer = renderer.NewRenderer(renderer.Params{
		GL:          c.gl,
		Decoder:     c.decoder,
		TexturePath: info.Path,
		Options:     c.opts,
		Framebuffer: c.currentFramebuffer,
		ProcAddress: hw.ProcAddress,
	})
	log.Printf("loaded %s", info.Path)
	return true
}

func (c *Core) currentFramebuffer() uintptr {
	if c.hw == nil || c.hw.CurrentFramebuffer == nil {
		return 0
	}
	return c.hw.CurrentFramebuffer()
}

func (c *Core) contextReset() {
	if c.renderer != nil {
		c.renderer.OnContextReady()
	}
}

func (c *Core) contextDestroy() {
	if c.renderer != nil {
		c.renderer.OnContextLost()
	}
}

func (c *Core) LoadGameSpecial(gameType uint, info []host.GameInfo) bool { return false }

// UnloadGame deletes the GPU objects of the loaded game.
func (c *Core) UnloadGame() {
	if c.renderer == nil {
		return
	}
	c.renderer.Release()
	c.renderer = nil
	c.hw = nil
}

func (c *Core) Region() host.Region { return host.RegionNTSC }

// There is no state to save and no memory to expose.

func (c *Core) SerializeSize() int { return 0 }

func (c *Core) Serialize(data []byte) bool { return false }

func (c *Core) Unserialize(data []byte) bool { return false }

func (c *Core) MemoryData(id uint) []byte { return nil }

func (c *Core) MemorySize(id uint) int { return 0 }

func (c *Core) CheatReset() {}

func (c *Core) CheatSet(index uint, enabled bool, code string) {}

// Options returns the configuration in effect.
func (c *Core) Options() config.Options { return c.opts }
