package input

import (
	"math"
	"sync"

	"instancing-viewer/internal/host"

	"github.com/go-gl/glfw/v3.3/glfw"
)

// Action represents a logical viewer action, not a physical key
type Action int

// Action constants using iota
const (
	ActionMoveForward Action = iota
	ActionMoveBackward
	ActionMoveLeft
	ActionMoveRight
	ActionCycleCubeSize
	ActionCycleStrategy
	ActionCycleResolution
	ActionResetCamera
	ActionResetContext
	ActionQuit
	ActionCount // Sentinel value for array sizing
)

// joypad maps the movement actions to the buttons a core polls.
var joypad = map[uint]Action{
	host.JoypadUp:    ActionMoveForward,
	host.JoypadDown:  ActionMoveBackward,
	host.JoypadLeft:  ActionMoveLeft,
	host.JoypadRight: ActionMoveRight,
}

// InputManager manages keyboard and mouse input state and maps physical keys to logical actions
type InputManager struct {
	mu sync.RWMutex

	// Key to action mapping (one key can map to multiple actions)
	keyToActions map[glfw.Key][]Action

	// Current frame state (indexed by Action)
	currentState [ActionCount]bool

	// Just pressed flag (reset each frame)
	justPressed [ActionCount]bool

	// Cursor motion accumulated since the last Poll, and the value latched by it
	lastX, lastY   float64
	firstMouse     bool
	pendingX       float64
	pendingY       float64
	mouseX, mouseY int16
}

// NewInputManager creates a new InputManager with default key bindings
func NewInputManager() *InputManager {
	im := &InputManager{
		keyToActions: make(map[glfw.Key][]Action),
		firstMouse:   true,
	}

	// WASD and arrow keys
	im.BindKey(glfw.KeyW, ActionMoveForward)
	im.BindKey(glfw.KeyS, ActionMoveBackward)
	im.BindKey(glfw.KeyA, ActionMoveLeft)
	im.BindKey(glfw.KeyD, ActionMoveRight)
	im.BindKey(glfw.KeyUp, ActionMoveForward)
	im.BindKey(glfw.KeyDown, ActionMoveBackward)
	im.BindKey(glfw.KeyLeft, ActionMoveLeft)
	im.BindKey(glfw.KeyRight, ActionMoveRight)

	im.BindKey(glfw.KeyC, ActionCycleCubeSize)
	im.BindKey(glfw.KeyR, ActionCycleStrategy)
	im.BindKey(glfw.KeyV, ActionCycleResolution)
	im.BindKey(glfw.KeyBackspace, ActionResetCamera)
	im.BindKey(glfw.KeyF5, ActionResetContext)
	im.BindKey(glfw.KeyEscape, ActionQuit)

	return im
}

// BindKey binds a physical key to a logical action
// Multiple keys can be bound to the same action (e.g., WASD and arrow keys)
func (im *InputManager) BindKey(key glfw.Key, action Action) {
	im.mu.Lock()
	defer im.mu.Unlock()

	if action < 0 || action >= ActionCount {
		return
	}

	im.keyToActions[key] = append(im.keyToActions[key], action)
}

// UnbindKey removes all action bindings for a key
func (im *InputManager) UnbindKey(key glfw.Key) {
	im.mu.Lock()
	defer im.mu.Unlock()

	delete(im.keyToActions, key)
}

// HandleKeyEvent processes a key event and updates internal state
func (im *InputManager) HandleKeyEvent(key glfw.Key, action glfw.Action) {
	im.mu.Lock()
	defer im.mu.Unlock()

	actions, exists := im.keyToActions[key]
	if !exists {
		return
	}

	isPressed := action == glfw.Press || action == glfw.Repeat
	for _, act := range actions {
		if isPressed && !im.currentState[act] {
			im.justPressed[act] = true
		}
		im.currentState[act] = isPressed
	}
}

// HandleCursorPos accumulates cursor motion. The first event only records
// the position.
func (im *InputManager) HandleCursorPos(xpos, ypos float64) {
	im.mu.Lock()
	defer im.mu.Unlock()

	if im.firstMouse {
		im.lastX, im.lastY = xpos, ypos
		im.firstMouse = false
		return
	}
	im.pendingX += xpos - im.lastX
	im.pendingY += ypos - im.lastY
	im.lastX, im.lastY = xpos, ypos
}

// SetCallbacks installs the GLFW key and cursor callbacks for this input manager
func (im *InputManager) SetCallbacks(window *glfw.Window) {
	window.SetKeyCallback(func(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
		im.HandleKeyEvent(key, action)
	})
	window.SetCursorPosCallback(func(w *glfw.Window, xpos, ypos float64) {
		im.HandleCursorPos(xpos, ypos)
	})
}

// Poll latches the cursor motion since the previous Poll as the mouse
// state reported by State.
func (im *InputManager) Poll() {
	im.mu.Lock()
	defer im.mu.Unlock()

	im.mouseX = saturate(im.pendingX)
	im.mouseY = saturate(im.pendingY)
	im.pendingX, im.pendingY = 0, 0
}

func saturate(v float64) int16 {
	v = math.Round(v)
	if v > math.MaxInt16 {
		return math.MaxInt16
	}
	if v < math.MinInt16 {
		return math.MinInt16
	}
	return int16(v)
}

// State answers a core's input query for port 0: joypad directions from
// the movement actions, mouse X and Y from the motion latched by Poll.
func (im *InputManager) State(port, device, index, id uint) int16 {
	if port != 0 {
		return 0
	}
	switch device {
	case host.DeviceJoypad:
		if act, ok := joypad[id]; ok && im.IsActive(act) {
			return 1
		}
	case host.DeviceMouse:
		im.mu.RLock()
		defer im.mu.RUnlock()
		switch id {
		case host.MouseX:
			return im.mouseX
		case host.MouseY:
			return im.mouseY
		}
	}
	return 0
}

// PostUpdate must be called at the end of each frame to reset edge detection
func (im *InputManager) PostUpdate() {
	im.mu.Lock()
	defer im.mu.Unlock()

	clear(im.justPressed[:])
}

// IsActive returns true if the action is currently being held down
func (im *InputManager) IsActive(action Action) bool {
	if action < 0 || action >= ActionCount {
		return false
	}

	im.mu.RLock()
	defer im.mu.RUnlock()

	return im.currentState[action]
}

// JustPressed returns true only if the action was pressed in the current frame
func (im *InputManager) JustPressed(action Action) bool {
	if action < 0 || action >= ActionCount {
		return false
	}

	im.mu.RLock()
	defer im.mu.RUnlock()

	return im.justPressed[action]
}
