package window

import (
	"fmt"

	"github.com/go-gl/glfw/v3.3/glfw"
	"go.uber.org/zap"

	"github.com/Faultbox/ron/internal/engine/input"
	"github.com/Faultbox/ron/internal/logger"
)

// GLFWWindow wraps a GLFW window. Callbacks queue events until PollEvents
// hands them to the input state.
type GLFWWindow struct {
	config  Config
	window  *glfw.Window
	pending []input.Event
}

// NewGLFW creates a window and makes its context current.
func NewGLFW(cfg Config) (*GLFWWindow, error) {
	logger.Info("initializing GLFW")
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize GLFW: %w", err)
	}

	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.Resizable, glfw.True)
	glfw.WindowHint(glfw.SRGBCapable, glfw.True)
	glfw.WindowHint(glfw.Samples, cfg.Samples)

	var monitor *glfw.Monitor
	if cfg.Fullscreen {
		monitor = glfw.GetPrimaryMonitor()
	}

	win, err := glfw.CreateWindow(cfg.Width, cfg.Height, cfg.Title, monitor, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("failed to create GLFW window: %w", err)
	}
	win.MakeContextCurrent()

	if cfg.VSync {
		glfw.SwapInterval(1)
	} else {
		glfw.SwapInterval(0)
	}

	w := &GLFWWindow{config: cfg, window: win}
	w.installCallbacks()

	logger.Info("window created",
		zap.String("backend", BackendGLFW),
		zap.String("title", cfg.Title),
		zap.Int("width", cfg.Width),
		zap.Int("height", cfg.Height),
		zap.Bool("fullscreen", cfg.Fullscreen),
		zap.Bool("vsync", cfg.VSync),
	)
	return w, nil
}

func (w *GLFWWindow) installCallbacks() {
	w.window.SetKeyCallback(func(_ *glfw.Window, key glfw.Key, _ int, action glfw.Action, _ glfw.ModifierKey) {
		if e, ok := input.FromGLFWKey(key, action); ok {
			w.pending = append(w.pending, e)
		}
	})
	w.window.SetMouseButtonCallback(func(win *glfw.Window, button glfw.MouseButton, action glfw.Action, _ glfw.ModifierKey) {
		x, y := win.GetCursorPos()
		w.pending = append(w.pending, input.FromGLFWButton(button, action, x, y))
	})
	w.window.SetCursorPosCallback(func(_ *glfw.Window, x, y float64) {
		w.pending = append(w.pending, input.Event{Type: input.EventMouseMove, MouseX: int(x), MouseY: int(y)})
	})
	w.window.SetScrollCallback(func(_ *glfw.Window, _, yoff float64) {
		w.pending = append(w.pending, input.Event{Type: input.EventScroll, Scroll: float32(yoff)})
	})
	// Framebuffer size is in pixels, which differs from the window size on high-DPI displays.
	w.window.SetFramebufferSizeCallback(func(_ *glfw.Window, width, height int) {
		w.pending = append(w.pending, input.Event{Type: input.EventWindowResize, Width: width, Height: height})
	})
}

// PollEvents processes pending GLFW events.
func (w *GLFWWindow) PollEvents(in *input.Input) {
	glfw.PollEvents()
	for _, e := range w.pending {
		in.Push(e)
	}
	w.pending = w.pending[:0]
	if w.window.ShouldClose() {
		in.Push(input.Event{Type: input.EventQuit})
	}
}

// Close destroys the window and terminates GLFW.
func (w *GLFWWindow) Close() {
	logger.Info("closing window")
	w.window.Destroy()
	glfw.Terminate()
}

func (w *GLFWWindow) SwapBuffers()             { w.window.SwapBuffers() }
func (w *GLFWWindow) Size() (int, int)         { return w.window.GetSize() }
func (w *GLFWWindow) DrawableSize() (int, int) { return w.window.GetFramebufferSize() }
func (w *GLFWWindow) SetTitle(title string)    { w.window.SetTitle(title) }
