package windowsink

import (
	"errors"
	"fmt"
	"log/slog"
	"unsafe"

	"github.com/go-gl/glfw/v3.3/glfw"
	gopointer "github.com/mattn/go-pointer"

	"github.com/learngl/hellotriangle/lib/config"
	"github.com/learngl/hellotriangle/lib/log"
	"github.com/learngl/hellotriangle/lib/rendering"
	"github.com/learngl/hellotriangle/lib/rendering/gldevice"
	"github.com/learngl/hellotriangle/lib/renderloop"
)

var (
	ErrWindowCreation = errors.New("could not create window")
	ErrLoader         = errors.New("could not load OpenGL functions")
)

// WindowSink owns the GLFW window and its context. All methods must be called
// from the thread that created it.
type WindowSink struct {
	Window *glfw.Window

	dev       *gldevice.Device
	resizable unsafe.Pointer
	log       *slog.Logger
}

// New initialises GLFW, opens a window with a core profile context of the
// configured version and makes it current. On failure everything that was
// set up is torn down again.
func New(cfg *config.WindowCfg) (sink *WindowSink, err error) {
	w := &WindowSink{log: log.Module("window")}
	w.log.Debug("Initializing window", "title", cfg.Title, "width", cfg.Width, "height", cfg.Height)

	// glfw.Init only logs platform errors such as a missing display; the
	// next glfw call then panics because nothing was initialised.
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		if w.Window != nil {
			w.Window.Destroy()
		}
		glfw.Terminate()
		sink = nil
		err = fmt.Errorf("%w: %v", ErrWindowCreation, r)
	}()

	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrWindowCreation, err)
	}

	glfw.WindowHint(glfw.Resizable, glfw.True)
	glfw.WindowHint(glfw.ContextVersionMajor, cfg.GLMajor)
	glfw.WindowHint(glfw.ContextVersionMinor, cfg.GLMinor)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	window, err := glfw.CreateWindow(cfg.Width, cfg.Height, cfg.Title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("%w: %w", ErrWindowCreation, err)
	}
	w.Window = window

	window.MakeContextCurrent()
	if cfg.VSync {
		glfw.SwapInterval(1)
	} else {
		glfw.SwapInterval(0)
	}

	w.dev, err = gldevice.Init()
	if err != nil {
		window.Destroy()
		glfw.Terminate()
		return nil, fmt.Errorf("%w: %w", ErrLoader, err)
	}

	vendor, renderer, version := w.dev.Info()
	w.log.Info("OpenGL context ready", "vendor", vendor, "renderer", renderer, "version", version)

	return w, nil
}

func (w *WindowSink) Device() *gldevice.Device {
	return w.dev
}

// RegisterResizable makes r follow the framebuffer size. r is resized to the
// current size right away.
func (w *WindowSink) RegisterResizable(r rendering.Resizable) {
	if w.resizable != nil {
		gopointer.Unref(w.resizable)
	}
	w.resizable = gopointer.Save(r)
	w.Window.SetUserPointer(w.resizable)
	w.Window.SetFramebufferSizeCallback(framebufferSizeCallback)

	width, height := w.Window.GetFramebufferSize()
	r.Resize(width, height)
}

func framebufferSizeCallback(window *glfw.Window, width, height int) {
	ptr := window.GetUserPointer()
	if ptr == nil {
		return
	}
	r, ok := gopointer.Restore(ptr).(rendering.Resizable)
	if !ok {
		return
	}
	r.Resize(width, height)
}

func (w *WindowSink) EscapePressed() bool {
	return w.Window.GetKey(glfw.KeyEscape) == glfw.Press
}

func (w *WindowSink) SetShouldClose(b bool) {
	w.Window.SetShouldClose(b)
}

func (w *WindowSink) ShouldClose() bool {
	return w.Window.ShouldClose()
}

func (w *WindowSink) SwapBuffers() {
	w.Window.SwapBuffers()
}

func (w *WindowSink) PollEvents() {
	glfw.PollEvents()
}

// Destroy closes the window and shuts GLFW down.
func (w *WindowSink) Destroy() {
	if w.resizable != nil {
		w.Window.SetFramebufferSizeCallback(nil)
		w.Window.SetUserPointer(nil)
		gopointer.Unref(w.resizable)
		w.resizable = nil
	}
	w.Window.Destroy()
	glfw.Terminate()
	w.log.Debug("Window destroyed")
}

var _ renderloop.Surface = (*WindowSink)(nil)
