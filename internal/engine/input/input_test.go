package input

import (
	"testing"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/veandco/go-sdl2/sdl"
)

func TestStateTracking(t *testing.T) {
	in := New()
	in.Push(Event{Type: EventKeyDown, Key: KeyLeftShift})
	in.Push(Event{Type: EventMouseDown, Button: ButtonMiddle, MouseX: 10, MouseY: 20})
	in.Push(Event{Type: EventScroll, Scroll: 1})
	in.Push(Event{Type: EventScroll, Scroll: 2})

	if !in.ShiftDown() || !in.IsButtonDown(ButtonMiddle) {
		t.Fatal("held shift and middle button not tracked")
	}
	if x, y := in.MousePosition(); x != 10 || y != 20 {
		t.Errorf("mouse = %d,%d", x, y)
	}
	if s := in.ScrollSteps(); s != 3 {
		t.Errorf("scroll = %v, want 3", s)
	}
	if !in.IsKeyPressed(KeyLeftShift) {
		t.Error("key pressed this frame not reported")
	}

	in.Begin()
	if in.IsKeyPressed(KeyLeftShift) || in.ScrollSteps() != 0 {
		t.Error("events survived Begin")
	}
	if !in.ShiftDown() {
		t.Error("held key released by Begin")
	}

	in.Push(Event{Type: EventKeyUp, Key: KeyLeftShift})
	in.Push(Event{Type: EventMouseUp, Button: ButtonMiddle})
	if in.ShiftDown() || in.IsButtonDown(ButtonMiddle) {
		t.Error("released key or button still down")
	}
}

func TestResizedAndQuit(t *testing.T) {
	in := New()
	if _, _, ok := in.Resized(); ok {
		t.Error("resize without events")
	}
	in.Push(Event{Type: EventWindowResize, Width: 100, Height: 50})
	in.Push(Event{Type: EventWindowResize, Width: 800, Height: 600})
	if w, h, ok := in.Resized(); !ok || w != 800 || h != 600 {
		t.Errorf("resized = %d,%d,%v, want the last one", w, h, ok)
	}
	in.Push(Event{Type: EventQuit})
	if !in.QuitRequested() {
		t.Error("quit not recorded")
	}
}

func TestFromSDL(t *testing.T) {
	tests := []struct {
		name  string
		event sdl.Event
		want  Event
		ok    bool
	}{
		{"quit", &sdl.QuitEvent{Type: sdl.QUIT}, Event{Type: EventQuit}, true},
		{
			"f5",
			&sdl.KeyboardEvent{Type: sdl.KEYDOWN, Keysym: sdl.Keysym{Scancode: sdl.SCANCODE_F5}},
			Event{Type: EventKeyDown, Key: KeyF5},
			true,
		},
		{
			"repeat dropped",
			&sdl.KeyboardEvent{Type: sdl.KEYDOWN, Repeat: 1, Keysym: sdl.Keysym{Scancode: sdl.SCANCODE_F5}},
			Event{},
			false,
		},
		{
			"unknown key",
			&sdl.KeyboardEvent{Type: sdl.KEYUP, Keysym: sdl.Keysym{Scancode: sdl.SCANCODE_Z}},
			Event{Type: EventKeyUp, Key: KeyUnknown},
			true,
		},
		{
			"middle button",
			&sdl.MouseButtonEvent{Type: sdl.MOUSEBUTTONDOWN, Button: sdl.BUTTON_MIDDLE, X: 3, Y: 4},
			Event{Type: EventMouseDown, Button: ButtonMiddle, MouseX: 3, MouseY: 4},
			true,
		},
		{
			"wheel",
			&sdl.MouseWheelEvent{Type: sdl.MOUSEWHEEL, Y: -1},
			Event{Type: EventScroll, Scroll: -1},
			true,
		},
		{
			"resize",
			&sdl.WindowEvent{Type: sdl.WINDOWEVENT, Event: sdl.WINDOWEVENT_RESIZED, Data1: 640, Data2: 480},
			Event{Type: EventWindowResize, Width: 640, Height: 480},
			true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := FromSDL(tt.event)
			if ok != tt.ok || got != tt.want {
				t.Errorf("FromSDL = %+v, %v; want %+v, %v", got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestFromGLFW(t *testing.T) {
	if e, ok := FromGLFWKey(glfw.KeyF12, glfw.Press); !ok || e != (Event{Type: EventKeyDown, Key: KeyF12}) {
		t.Errorf("press = %+v, %v", e, ok)
	}
	if _, ok := FromGLFWKey(glfw.KeyF12, glfw.Repeat); ok {
		t.Error("repeat not dropped")
	}
	e := FromGLFWButton(glfw.MouseButtonMiddle, glfw.Release, 7.9, 2.1)
	if e != (Event{Type: EventMouseUp, Button: ButtonMiddle, MouseX: 7, MouseY: 2}) {
		t.Errorf("button = %+v", e)
	}
}
