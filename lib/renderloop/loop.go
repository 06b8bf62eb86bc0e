// Package renderloop drives the per-frame work on the thread that owns the
// GL context.
package renderloop

import (
	"context"
	"log/slog"
	"sync/atomic"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/learngl/hellotriangle/lib/kbdctl"
	"github.com/learngl/hellotriangle/lib/log"
	"github.com/learngl/hellotriangle/lib/metrics"
	"github.com/learngl/hellotriangle/lib/rendering"
	"github.com/learngl/hellotriangle/lib/rendering/shaders"
	"github.com/learngl/hellotriangle/lib/stats"
	"github.com/learngl/hellotriangle/lib/utils"
)

type State int32

const (
	Running State = iota
	Closing
)

func (s State) String() string {
	switch s {
	case Running:
		return "running"
	case Closing:
		return "closing"
	}
	return "unknown"
}

// Surface is the window as far as the loop is concerned.
type Surface interface {
	kbdctl.Input
	ShouldClose() bool
	SwapBuffers()
	PollEvents()
}

// Rebuild produces a replacement pipeline. It must return an error instead of
// a pipeline that did not link.
type Rebuild func() (*shaders.Pipeline, error)

type Loop struct {
	surface  Surface
	dev      rendering.Device
	pipeline *shaders.Pipeline
	mesh     *rendering.Mesh
	clear    mgl32.Vec4

	// Stats, if set, is updated after every presented frame.
	Stats *stats.Stats
	log   *slog.Logger

	state          atomic.Int32
	closeRequested atomic.Bool

	reload  <-chan struct{}
	rebuild Rebuild

	deltaTimer utils.DeltaTimer
}

func New(surface Surface, dev rendering.Device, p *shaders.Pipeline, m *rendering.Mesh, clearColour mgl32.Vec4) *Loop {
	return &Loop{
		surface:  surface,
		dev:      dev,
		pipeline: p,
		mesh:     m,
		clear:    clearColour,
		log:      log.Module("renderloop"),
	}
}

// WatchReloads makes the loop call rebuild at the start of the frame after
// every receive on reload. A failed rebuild keeps the current pipeline.
func (l *Loop) WatchReloads(reload <-chan struct{}, rebuild Rebuild) {
	l.reload = reload
	l.rebuild = rebuild
}

// RequestClose may be called from any goroutine. The loop notices it before
// starting the next frame.
func (l *Loop) RequestClose() {
	l.closeRequested.Store(true)
}

func (l *Loop) State() State {
	return State(l.state.Load())
}

// Pipeline returns the pipeline that is currently drawn with.
func (l *Loop) Pipeline() *shaders.Pipeline {
	return l.pipeline
}

// Run renders frames until the window is asked to close, RequestClose is
// called or ctx is done. The frame during which Escape is pressed is still
// presented.
func (l *Loop) Run(ctx context.Context) {
	l.log.Info("Render loop started")
	for l.keepRunning(ctx) {
		l.Frame()
	}
	l.state.Store(int32(Closing))
	if l.Stats != nil {
		l.Stats.SetClosing()
	}
	l.log.Info("Render loop stopped")
}

func (l *Loop) keepRunning(ctx context.Context) bool {
	if l.surface.ShouldClose() {
		return false
	}
	if l.closeRequested.Load() {
		l.log.Info("Close requested")
		l.surface.SetShouldClose(true)
		return false
	}
	if err := ctx.Err(); err != nil {
		l.log.Info("Shutting down", "reason", context.Cause(ctx))
		l.surface.SetShouldClose(true)
		return false
	}
	return true
}

// Frame does one iteration: input, clear, draw, present, poll.
func (l *Loop) Frame() {
	dt := l.deltaTimer.Next()
	if dt > 0 {
		metrics.FrameSeconds.Observe(dt.Seconds())
	}

	if kbdctl.ProcessInput(l.surface) {
		l.log.Debug("Escape pressed")
	}
	l.maybeReload()

	l.dev.ClearColor(l.clear)
	l.dev.Clear()

	// an unlinked program would draw nothing, so the frame is only cleared
	if l.pipeline != nil && l.pipeline.Linked() {
		l.pipeline.Use()
		l.mesh.Bind()
		l.mesh.Draw()
		metrics.DrawCalls.Inc()
	}

	l.surface.SwapBuffers()
	metrics.FramesPresented.Inc()
	if l.Stats != nil {
		l.Stats.Update()
	}

	l.surface.PollEvents()
}

func (l *Loop) maybeReload() {
	select {
	case <-l.reload:
	default:
		return
	}
	if l.rebuild == nil {
		return
	}

	p, err := l.rebuild()
	if err != nil {
		l.log.Warn("Shader reload failed, keeping previous pipeline", "err", err)
		return
	}

	old := l.pipeline
	l.pipeline = p
	if old != nil {
		old.Delete()
	}
	if l.Stats != nil {
		l.Stats.SetPipelineLinked(p.Linked())
	}
	l.log.Info("Shaders reloaded", "program", p.Program)
}

// Close releases the vertex array, the buffer and the program.
func (l *Loop) Close() {
	l.mesh.Delete()
	if l.pipeline != nil {
		l.pipeline.Delete()
	}
}
