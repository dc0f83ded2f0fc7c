// Package window creates a window with an OpenGL 4.1 core context through
// SDL2 or GLFW.
package window

import (
	"fmt"
	"runtime"

	"github.com/Faultbox/ron/internal/engine/input"
)

func init() {
	// OpenGL calls must be made from the main thread
	runtime.LockOSThread()
}

// Backends
const (
	BackendSDL  = "sdl"
	BackendGLFW = "glfw"
)

// Config holds window configuration.
type Config struct {
	Title      string
	Width      int
	Height     int
	Fullscreen bool
	VSync      bool
	// Samples is the MSAA sample count; 0 disables multisampling.
	Samples int
}

// Window is a native window whose GL context is current on the calling
// thread.
type Window interface {
	// PollEvents pushes pending window system events into in.
	PollEvents(in *input.Input)
	SwapBuffers()
	// Size returns the window size in screen coordinates.
	Size() (width, height int)
	// DrawableSize returns the framebuffer size in pixels.
	DrawableSize() (width, height int)
	SetTitle(title string)
	Close()
}

// New opens a window with the named backend.
func New(backend string, cfg Config) (Window, error) {
	switch backend {
	case BackendSDL:
		w, err := NewSDL(cfg)
		if err != nil {
			return nil, err
		}
		return w, nil
	case BackendGLFW, "":
		w, err := NewGLFW(cfg)
		if err != nil {
			return nil, err
		}
		return w, nil
	}
	return nil, fmt.Errorf("unknown window backend %q", backend)
}
