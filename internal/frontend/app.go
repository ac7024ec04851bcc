// Package frontend is a desktop host for the core: it owns the window and
// GL context, answers the core's environment queries and drives Run at the
// core's frame rate.
package frontend

import (
	"errors"
	"log"
	"time"

	"instancing-viewer/internal/config"
	"instancing-viewer/internal/core"
	"instancing-viewer/internal/host"
	"instancing-viewer/internal/input"
	"instancing-viewer/internal/profiling"

	"github.com/go-gl/glfw/v3.3/glfw"
)

var ErrLoadFailed = errors.New("core refused the content")

// App hosts one core in one window.
type App struct {
	*Options

	window       *glfw.Window
	inputManager *input.InputManager
	core         *core.Core

	hw       *host.HWRender
	format   host.PixelFormat
	geometry host.Geometry

	fpsLimiter *FPSLimiter
	fps        float64
	frames     int
}

var _ host.Environment = (*App)(nil)

// NewApp wires a core to a window. fps overrides the core's frame rate
// when positive.
func NewApp(window *glfw.Window, im *input.InputManager, opts *Options, c *core.Core, fps float64) *App {
	return &App{
		Options:      opts,
		window:       window,
		inputManager: im,
		core:         c,
		fps:          fps,
	}
}

func (a *App) SetPixelFormat(format host.PixelFormat) bool {
	a.format = format
	return format == host.PixelFormatXRGB8888
}

// SetHWRender accepts desktop OpenGL up to the 4.1 context the window has.
func (a *App) SetHWRender(hw *host.HWRender) bool {
	switch hw.ContextType {
	case host.ContextOpenGL, host.ContextOpenGLCore:
	default:
		return false
	}
	if hw.VersionMajor > 4 || (hw.VersionMajor == 4 && hw.VersionMinor > 1) {
		return false
	}
	hw.CurrentFramebuffer = func() uintptr { return 0 }
	hw.ProcAddress = glfw.GetProcAddress
	a.hw = hw
	return true
}

// SetGeometry resizes the window to the new base size.
func (a *App) SetGeometry(g host.Geometry) bool {
	a.geometry = g
	a.window.SetSize(g.BaseWidth, g.BaseHeight)
	return true
}

// Run loads the texture at path and runs the core until the window closes.
func (a *App) Run(path string) error {
	c := a.core
	c.Init()
	defer c.Deinit()

	c.SetEnvironment(a)
	c.SetVideoRefresh(a.present)
	c.SetAudioSample(func(left, right int16) {})
	c.SetAudioSampleBatch(func(samples []int16) int { return len(samples) / 2 })
	c.SetInputPoll(a.inputManager.Poll)
	c.SetInputState(a.inputManager.State)
	a.inputManager.SetCallbacks(a.window)

	if !c.LoadGame(&host.GameInfo{Path: path}) {
		return ErrLoadFailed
	}
	defer c.UnloadGame()

	av := c.SystemAVInfo()
	a.SetGeometry(av.Geometry)
	fps := av.Timing.FPS
	if a.fps > 0 {
		fps = a.fps
	}
	a.fpsLimiter = NewFPSLimiter(fps)
	log.Printf("%s %s at %vx%v, %v fps", c.SystemInfo().LibraryName, c.SystemInfo().LibraryVersion,
		av.Geometry.BaseWidth, av.Geometry.BaseHeight, fps)

	a.hw.ContextReset()

	lastFPSCheck := time.Now()
	for !a.window.ShouldClose() {
		a.tick()
		if time.Since(lastFPSCheck) >= time.Second {
			log.Printf("FPS: %d", a.frames)
			a.frames = 0
			lastFPSCheck = time.Now()
		}
	}
	return nil
}

func (a *App) tick() {
	profiling.ResetFrame()
	start := time.Now()

	glfw.PollEvents()
	a.handleActions()
	a.core.Run()

	// Check if frame took longer than its slot
	if d := time.Since(start); a.fpsLimiter.Target() > 0 && d > a.fpsLimiter.Target() {
		log.Printf("Slow frame: %v. Top tasks: %s", d, profiling.TopN(5))
	}

	a.inputManager.PostUpdate()
	a.fpsLimiter.Wait()
}

func (a *App) present(f host.Frame) {
	if !f.HW {
		return
	}
	func() { defer profiling.Track("glfw.SwapBuffers")(); a.window.SwapBuffers() }()
	a.frames++
}

func (a *App) handleActions() {
	im := a.inputManager

	if im.JustPressed(input.ActionQuit) {
		a.window.SetShouldClose(true)
	}
	if im.JustPressed(input.ActionResetCamera) {
		a.core.Reset()
	}
	if im.JustPressed(input.ActionResetContext) {
		// The window keeps its context; objects of the "lost" one leak.
		log.Printf("simulating context loss")
		a.hw.ContextDestroy()
		a.hw.ContextReset()
	}

	cycles := []struct {
		action input.Action
		key    string
	}{
		{input.ActionCycleCubeSize, config.KeyCubeSize},
		{input.ActionCycleStrategy, config.KeyStrategy},
		{input.ActionCycleResolution, config.KeyResolution},
	}
	for _, cy := range cycles {
		if !im.JustPressed(cy.action) {
			continue
		}
		v, err := a.Cycle(cy.key)
		if err != nil {
			log.Printf("couldn't change %s: %v", cy.key, err)
			continue
		}
		log.Printf("%s = %s", cy.key, v)
	}
}
