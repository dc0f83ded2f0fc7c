package input

import (
	"github.com/veandco/go-sdl2/sdl"
)

var sdlKeys = map[sdl.Scancode]Key{
	sdl.SCANCODE_ESCAPE: KeyEscape,
	sdl.SCANCODE_F5:     KeyF5,
	sdl.SCANCODE_F12:    KeyF12,
	sdl.SCANCODE_LSHIFT: KeyLeftShift,
	sdl.SCANCODE_RSHIFT: KeyRightShift,
	sdl.SCANCODE_A:      KeyA,
	sdl.SCANCODE_G:      KeyG,
	sdl.SCANCODE_R:      KeyR,
}

var sdlButtons = map[uint8]Button{
	sdl.BUTTON_LEFT:   ButtonLeft,
	sdl.BUTTON_MIDDLE: ButtonMiddle,
	sdl.BUTTON_RIGHT:  ButtonRight,
}

// FromSDL converts an SDL event. ok is false for events the viewer ignores.
func FromSDL(event sdl.Event) (e Event, ok bool) {
	switch ev := event.(type) {
	case *sdl.QuitEvent:
		return Event{Type: EventQuit}, true

	case *sdl.WindowEvent:
		if ev.Event == sdl.WINDOWEVENT_RESIZED || ev.Event == sdl.WINDOWEVENT_SIZE_CHANGED {
			return Event{
				Type:   EventWindowResize,
				Width:  int(ev.Data1),
				Height: int(ev.Data2),
			}, true
		}

	case *sdl.KeyboardEvent:
		key := sdlKeys[ev.Keysym.Scancode]
		if ev.Type == sdl.KEYDOWN && ev.Repeat == 0 {
			return Event{Type: EventKeyDown, Key: key}, true
		} else if ev.Type == sdl.KEYUP {
			return Event{Type: EventKeyUp, Key: key}, true
		}

	case *sdl.MouseMotionEvent:
		return Event{
			Type:   EventMouseMove,
			MouseX: int(ev.X),
			MouseY: int(ev.Y),
		}, true

	case *sdl.MouseButtonEvent:
		t := EventMouseUp
		if ev.Type == sdl.MOUSEBUTTONDOWN {
			t = EventMouseDown
		}
		return Event{
			Type:   t,
			MouseX: int(ev.X),
			MouseY: int(ev.Y),
			Button: sdlButtons[ev.Button],
		}, true

	case *sdl.MouseWheelEvent:
		return Event{Type: EventScroll, Scroll: float32(ev.Y)}, true
	}
	return Event{}, false
}
