package input

import (
	"github.com/go-gl/glfw/v3.3/glfw"
)

var glfwKeys = map[glfw.Key]Key{
	glfw.KeyEscape:     KeyEscape,
	glfw.KeyF5:         KeyF5,
	glfw.KeyF12:        KeyF12,
	glfw.KeyLeftShift:  KeyLeftShift,
	glfw.KeyRightShift: KeyRightShift,
	glfw.KeyA:          KeyA,
	glfw.KeyG:          KeyG,
	glfw.KeyR:          KeyR,
}

var glfwButtons = map[glfw.MouseButton]Button{
	glfw.MouseButtonLeft:   ButtonLeft,
	glfw.MouseButtonMiddle: ButtonMiddle,
	glfw.MouseButtonRight:  ButtonRight,
}

// FromGLFWKey converts a key callback. Repeats are dropped.
func FromGLFWKey(key glfw.Key, action glfw.Action) (Event, bool) {
	switch action {
	case glfw.Press:
		return Event{Type: EventKeyDown, Key: glfwKeys[key]}, true
	case glfw.Release:
		return Event{Type: EventKeyUp, Key: glfwKeys[key]}, true
	}
	return Event{}, false
}

// FromGLFWButton converts a mouse button callback at the cursor position.
func FromGLFWButton(button glfw.MouseButton, action glfw.Action, x, y float64) Event {
	t := EventMouseUp
	if action == glfw.Press {
		t = EventMouseDown
	}
	return Event{Type: t, Button: glfwButtons[button], MouseX: int(x), MouseY: int(y)}
}
