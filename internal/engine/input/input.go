// Package input turns window system events into backend independent events
// and tracks the keyboard and mouse state the viewer needs.
package input

// Event types
type EventType int

const (
	EventNone EventType = iota
	EventQuit
	EventWindowResize
	EventKeyDown
	EventKeyUp
	EventMouseMove
	EventMouseDown
	EventMouseUp
	EventScroll
)

// Key identifies the keys the viewer reacts to. Others map to KeyUnknown.
type Key int

const (
	KeyUnknown Key = iota
	KeyEscape
	KeyF5
	KeyF12
	KeyLeftShift
	KeyRightShift
	KeyA
	KeyG
	KeyR
)

// Button is a mouse button.
type Button int

const (
	ButtonLeft Button = iota + 1
	ButtonMiddle
	ButtonRight
)

// Event represents a processed input event.
type Event struct {
	Type   EventType
	Key    Key
	Width  int
	Height int
	MouseX int
	MouseY int
	Button Button
	// Scroll is the vertical wheel movement in steps, positive away from the user.
	Scroll float32
}

// Input collects the events of one frame and the state they imply.
type Input struct {
	events  []Event
	keys    map[Key]bool
	buttons map[Button]bool
	mouseX  int
	mouseY  int
	quit    bool
}

// New creates a new input handler.
func New() *Input {
	return &Input{
		events:  make([]Event, 0, 16),
		keys:    make(map[Key]bool),
		buttons: make(map[Button]bool),
	}
}

// Begin starts a new frame, dropping the previous frame's events. Held keys
// and buttons stay down.
func (i *Input) Begin() {
	i.events = i.events[:0]
}

// Push records e and updates the tracked state.
func (i *Input) Push(e Event) {
	switch e.Type {
	case EventQuit:
		i.quit = true
	case EventKeyDown:
		i.keys[e.Key] = true
	case EventKeyUp:
		delete(i.keys, e.Key)
	case EventMouseMove:
		i.mouseX, i.mouseY = e.MouseX, e.MouseY
	case EventMouseDown:
		i.buttons[e.Button] = true
		i.mouseX, i.mouseY = e.MouseX, e.MouseY
	case EventMouseUp:
		delete(i.buttons, e.Button)
		i.mouseX, i.mouseY = e.MouseX, e.MouseY
	}
	i.events = append(i.events, e)
}

// Events returns the events since the last Begin.
func (i *Input) Events() []Event {
	return i.events
}

// QuitRequested reports whether the window asked to close.
func (i *Input) QuitRequested() bool { return i.quit }

// IsKeyPressed checks if a specific key was pressed this frame.
func (i *Input) IsKeyPressed(key Key) bool {
	for _, e := range i.events {
		if e.Type == EventKeyDown && e.Key == key {
			return true
		}
	}
	return false
}

// IsKeyDown reports whether key is held.
func (i *Input) IsKeyDown(key Key) bool { return i.keys[key] }

// ShiftDown reports whether either shift key is held.
func (i *Input) ShiftDown() bool {
	return i.keys[KeyLeftShift] || i.keys[KeyRightShift]
}

// IsButtonDown reports whether b is held.
func (i *Input) IsButtonDown(b Button) bool { return i.buttons[b] }

// MousePosition returns the last known cursor position in window pixels.
func (i *Input) MousePosition() (x, y int) { return i.mouseX, i.mouseY }

// ScrollSteps sums this frame's wheel movement.
func (i *Input) ScrollSteps() float32 {
	var s float32
	for _, e := range i.events {
		if e.Type == EventScroll {
			s += e.Scroll
		}
	}
	return s
}

// Resized returns the last resize of this frame.
func (i *Input) Resized() (width, height int, ok bool) {
	for _, e := range i.events {
		if e.Type == EventWindowResize {
			width, height, ok = e.Width, e.Height, true
		}
	}
	return width, height, ok
}
