package core

import (
	"testing"

	"instancing-viewer/internal/config"
	"instancing-viewer/internal/graphics"
	"instancing-viewer/internal/graphics/graphicstest"
	"instancing-viewer/internal/host"
)

type fakeEnv struct {
	declared  []host.Variable
	values    map[string]string
	updated   bool
	formats   []host.PixelFormat
	rejectFmt bool
	rejectHW  bool
	hw        *host.HWRender
	geometry  []host.Geometry
}

func newEnv() *fakeEnv {
	return &fakeEnv{values: map[string]string{}}
}

func (e *fakeEnv) SetVariables(vars []host.Variable) bool {
	e.declared = vars
	for _, v := range vars {
		if choices := config.Choices(v); len(choices) > 0 {
			e.values[v.Key] = choices[0]
		}
	}
	return true
}

func (e *fakeEnv) GetVariable(key string) (string, bool) {
	v, ok := e.values[key]
	return v, ok
}

func (e *fakeEnv) VariableUpdate() bool {
	u := e.updated
	e.updated = false
	return u
}

func (e *fakeEnv) SetPixelFormat(f host.PixelFormat) bool {
	e.formats = append(e.formats, f)
	return !e.rejectFmt
}

func (e *fakeEnv) SetHWRender(hw *host.HWRender) bool {
	if e.rejectHW {
		return false
	}
	hw.CurrentFramebuffer = func() uintptr { return 0 }
	e.hw = hw
	return true
}

func (e *fakeEnv) SetGeometry(g host.Geometry) bool {
	e.geometry = append(e.geometry, g)
	return true
}

func (e *fakeEnv) set(key, value string) {
	e.values[key] = value
	e.updated = true
}

type stubDecoder struct{}

func (stubDecoder) Decode(string) (graphics.Image, error) {
	return graphics.Image{Pix: make([]byte, 4), Width: 1, Height: 1}, nil
}

type harness struct {
	core   *Core
	env    *fakeEnv
	gl     *graphicstest.GL
	frames []host.Frame
	keys   map[uint]bool
	mouse  [2]int16
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	h := &harness{env: newEnv(), gl: graphicstest.New(), keys: map[uint]bool{}}
	h.core = New(h.gl, stubDecoder{})
	h.core.Init()
	h.core.SetEnvironment(h.env)
	h.core.SetVideoRefresh(func(f host.Frame) { h.frames = append(h.frames, f) })
	h.core.SetInputPoll(func() {})
	h.core.SetInputState(func(port, device, index, id uint) int16 {
		switch device {
		case host.DeviceJoypad:
			if h.keys[id] {
				return 1
			}
		case host.DeviceMouse:
			if id <= host.MouseY {
				return h.mouse[id]
			}
		}
		return 0
	})
	return h
}

// load loads a game and lets the host create the context.
func (h *harness) load(t *testing.T) {
	t.Helper()
	if !h.core.LoadGame(&host.GameInfo{Path: "cube.png"}) {
		t.Fatal("LoadGame failed")
	}
	h.env.hw.ContextReset()
}

func (h *harness) lastFrame(t *testing.T) host.Frame {
	t.Helper()
	if len(h.frames) == 0 {
		t.Fatal("no frame delivered")
	}
	return h.frames[len(h.frames)-1]
}

func TestSystemInfo(t *testing.T) {
	c := New(graphicstest.New(), stubDecoder{})
	info := c.SystemInfo()
	if info.LibraryName != "InstancingViewer GL" || info.LibraryVersion != "v1" || info.ValidExtensions != "png" {
		t.Errorf("system info = %+v", info)
	}
	if c.APIVersion() != host.APIVersion || c.Region() != host.RegionNTSC {
		t.Errorf("api %d region %d", c.APIVersion(), c.Region())
	}

	av := c.SystemAVInfo()
	if av.Timing.FPS != 60 || av.Timing.SampleRate != 30000 {
		t.Errorf("timing = %+v", av.Timing)
	}
	if av.Geometry.BaseWidth != 640 || av.Geometry.BaseHeight != 480 {
		t.Errorf("base = %dx%d", av.Geometry.BaseWidth, av.Geometry.BaseHeight)
	}
	if av.Geometry.MaxWidth != 1920 || av.Geometry.MaxHeight != 1440 {
		t.Errorf("max = %dx%d", av.Geometry.MaxWidth, av.Geometry.MaxHeight)
	}
}

func TestSetEnvironmentDeclaresSchema(t *testing.T) {
	h := newHarness(t)
	if len(h.env.declared) != 3 {
		t.Fatalf("declared %d variables", len(h.env.declared))
	}
	if got := h.env.declared[0]; got.Key != "cube_size" || got.Value != "Cube size; 1|2|4|8|16|32|64|128" {
		t.Errorf("first variable = %+v", got)
	}
}

func TestLoadGameFailures(t *testing.T) {
	tests := []struct {
		name  string
		setup func(*harness)
		info  *host.GameInfo
	}{
		{"no game info", func(*harness) {}, nil},
		{"pixel format rejected", func(h *harness) { h.env.rejectFmt = true }, &host.GameInfo{Path: "a.png"}},
		{"hw context rejected", func(h *harness) { h.env.rejectHW = true }, &host.GameInfo{Path: "a.png"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t)
			tt.setup(h)
			if h.core.LoadGame(tt.info) {
				t.Fatal("LoadGame succeeded")
			}
			h.core.Run()
			if f := h.lastFrame(t); !f.Dupe {
				t.Errorf("frame = %+v, want dupe", f)
			}
		})
	}
}

func TestLoadGameNegotiatesContext(t *testing.T) {
	h := newHarness(t)
	if !h.core.LoadGame(&host.GameInfo{Path: "cube.png"}) {
		t.Fatal("LoadGame failed")
	}
	if len(h.env.formats) != 1 || h.env.formats[0] != host.PixelFormatXRGB8888 {
		t.Errorf("formats = %v", h.env.formats)
	}
	hw := h.env.hw
	if hw.ContextType != host.ContextOpenGLCore || hw.VersionMajor != 3 || hw.VersionMinor != 3 || !hw.Depth {
		t.Errorf("hw = %+v", hw)
	}
	if hw.ContextReset == nil || hw.ContextDestroy == nil {
		t.Error("context callbacks not installed")
	}
}

func TestRunDeliversHardwareFrame(t *testing.T) {
	h := newHarness(t)
	if !h.core.LoadGame(&host.GameInfo{Path: "cube.png"}) {
		t.Fatal("LoadGame failed")
	}

	// No context yet.
	h.core.Run()
	if f := h.lastFrame(t); !f.Dupe || f.HW {
		t.Errorf("frame before context = %+v", f)
	}

	h.env.hw.ContextReset()
	h.core.Run()
	f := h.lastFrame(t)
	if !f.HW || f.Dupe || f.Width != 640 || f.Height != 480 || f.Pitch != 0 {
		t.Errorf("frame = %+v, want 640x480 hw frame", f)
	}
	if d, ok := h.gl.LastDraw(); !ok || d.Instances != 1 {
		t.Errorf("draw = %+v", d)
	}

	h.env.hw.ContextDestroy()
	h.gl.LoseContext()
	h.core.Run()
	if f := h.lastFrame(t); !f.Dupe {
		t.Errorf("frame after context loss = %+v", f)
	}

	h.env.hw.ContextReset()
	h.core.Run()
	if f := h.lastFrame(t); !f.HW {
		t.Errorf("frame after context reset = %+v", f)
	}
	if len(h.gl.Stale) != 0 {
		t.Errorf("stale use: %v", h.gl.Stale)
	}
}

func TestVariableChanges(t *testing.T) {
	h := newHarness(t)
	h.load(t)
	h.core.Run()

	h.env.set(config.KeyCubeSize, "4")
	h.core.Run()
	if d, _ := h.gl.LastDraw(); d.Instances != 64 {
		t.Errorf("instances = %d, want 64", d.Instances)
	}

	h.env.set(config.KeyStrategy, "expanded")
	h.core.Run()
	if d, _ := h.gl.LastDraw(); d.Instanced || d.Count != 36*64 {
		t.Errorf("draw = %+v, want expanded 4x4x4", d)
	}

	h.env.set(config.KeyResolution, "1280x960")
	h.core.Run()
	if f := h.lastFrame(t); f.Width != 1280 || f.Height != 960 {
		t.Errorf("frame = %dx%d", f.Width, f.Height)
	}
	if len(h.env.geometry) != 1 || h.env.geometry[0].BaseWidth != 1280 {
		t.Errorf("geometry updates = %+v", h.env.geometry)
	}

	h.env.set(config.KeyCubeSize, "3")
	h.core.Run()
	if got := h.core.Options().CubeSize; got != 4 {
		t.Errorf("cube size = %d after a rejected value, want 4", got)
	}
}

func TestInputMovesCamera(t *testing.T) {
	h := newHarness(t)
	h.load(t)

	h.mouse = [2]int16{100, 0}
	h.core.Run()
	if got := h.core.renderer.Player().Yaw; got != -4 {
		t.Errorf("yaw = %v, want -4", got)
	}

	h.mouse = [2]int16{}
	h.keys[host.JoypadUp] = true
	h.core.Run()
	if p := h.core.renderer.Player().Position; p.Len() == 0 {
		t.Error("camera did not move")
	}

	h.core.Reset()
	if p := h.core.renderer.Player(); p.Yaw != 0 || p.Position.Len() != 0 {
		t.Errorf("player after Reset = %+v", p)
	}
}

func TestUnloadGameReleases(t *testing.T) {
	h := newHarness(t)
	h.load(t)
	h.core.Run()

	h.core.UnloadGame()
	if h.gl.Live() != 0 {
		t.Errorf("%d objects alive after unload", h.gl.Live())
	}
	h.core.Run()
	if f := h.lastFrame(t); !f.Dupe {
		t.Errorf("frame after unload = %+v", f)
	}
	h.core.UnloadGame()
	h.core.Deinit()
}

func TestStubEntryPoints(t *testing.T) {
	c := New(graphicstest.New(), stubDecoder{})
	if c.LoadGameSpecial(1, nil) || c.Serialize(nil) || c.Unserialize(nil) {
		t.Error("unsupported entry point reported success")
	}
	if c.SerializeSize() != 0 || c.MemoryData(0) != nil || c.MemorySize(0) != 0 {
		t.Error("core exposes memory")
	}
	c.SetControllerPortDevice(0, host.DeviceJoypad)
	c.CheatReset()
	c.CheatSet(0, true, "")
	c.Reset()
	c.Run()
}
