package renderloop_test

import (
	"context"
	"errors"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/learngl/hellotriangle/lib/metrics"
	"github.com/learngl/hellotriangle/lib/rendering"
	"github.com/learngl/hellotriangle/lib/rendering/gltest"
	"github.com/learngl/hellotriangle/lib/rendering/shaders"
	"github.com/learngl/hellotriangle/lib/renderloop"
	"github.com/learngl/hellotriangle/lib/stats"
)

var clearColour = mgl32.Vec4{0.2, 0.3, 0.3, 1.0}

// fakeSurface presses Escape during frame escapeOnFrame (1-based, 0 = never)
// and closes by itself after maxFrames.
type fakeSurface struct {
	escapeOnFrame int
	maxFrames     int
	onSwap        func(frame int)

	frame       int
	swaps       int
	polls       int
	shouldClose bool
}

func (s *fakeSurface) EscapePressed() bool {
	s.frame++
	return s.escapeOnFrame != 0 && s.frame == s.escapeOnFrame
}

func (s *fakeSurface) SetShouldClose(b bool) { s.shouldClose = b }

func (s *fakeSurface) ShouldClose() bool {
	return s.shouldClose || (s.maxFrames != 0 && s.swaps >= s.maxFrames)
}

func (s *fakeSurface) SwapBuffers() {
	s.swaps++
	if s.onSwap != nil {
		s.onSwap(s.swaps)
	}
}

func (s *fakeSurface) PollEvents() { s.polls++ }

const (
	goodVertex   = "#version 330 core\nvoid main() {}\n"
	goodFragment = "#version 330 core\nvoid main() {}\n"
)

func setup(t *testing.T, src shaders.Sources) (*gltest.Device, *renderloop.Loop, *fakeSurface) {
	t.Helper()
	dev := gltest.NewDevice()
	p, err := shaders.Build(dev, src, shaders.Options{})
	require.NoError(t, err)
	m := rendering.Upload(dev, rendering.TriangleVertices, rendering.TriangleLayout)
	dev.Reset()

	surface := &fakeSurface{}
	return dev, renderloop.New(surface, dev, p, m, clearColour), surface
}

func TestFrameOrder(t *testing.T) {
	dev, loop, surface := setup(t, shaders.Sources{Vertex: goodVertex, Fragment: goodFragment})

	loop.Frame()

	assert.Equal(t, []string{"ClearColor", "Clear", "UseProgram", "BindVertexArray", "DrawTriangles"}, dev.Names())
	assert.Equal(t, clearColour, dev.ClearedWith)
	assert.Equal(t, "DrawTriangles(0, 3)", dev.Calls[4].String())
	assert.Equal(t, 1, surface.swaps)
	assert.Equal(t, 1, surface.polls)
}

func TestEscapeClosesAfterPresentingFrame(t *testing.T) {
	dev, loop, surface := setup(t, shaders.Sources{Vertex: goodVertex, Fragment: goodFragment})
	surface.escapeOnFrame = 3
	st := stats.New()
	loop.Stats = st

	assert.Equal(t, renderloop.Running, loop.State())
	loop.Run(context.Background())

	assert.Equal(t, renderloop.Closing, loop.State())
	assert.Equal(t, 3, surface.swaps, "frame 3 is presented, frame 4 never starts")
	assert.Equal(t, 3, dev.Count("DrawTriangles"))
	assert.EqualValues(t, 3, st.Snapshot().Frames)
	assert.True(t, st.Snapshot().Closing)
}

func TestWindowCloseStopsBeforeFirstFrame(t *testing.T) {
	dev, loop, surface := setup(t, shaders.Sources{Vertex: goodVertex, Fragment: goodFragment})
	surface.shouldClose = true

	loop.Run(context.Background())

	assert.Zero(t, surface.swaps)
	assert.Empty(t, dev.Calls)
	assert.Equal(t, renderloop.Closing, loop.State())
}

func TestBrokenShaderStillPresents(t *testing.T) {
	dev, loop, surface := setup(t, shaders.Sources{Vertex: goodVertex, Fragment: "#version 330 core\nbroken"})
	surface.maxFrames = 5
	require.False(t, loop.Pipeline().Linked())

	loop.Run(context.Background())

	assert.Equal(t, 5, surface.swaps)
	assert.Equal(t, 5, dev.Count("Clear"))
	assert.Zero(t, dev.Count("DrawTriangles"))
}

func TestRequestCloseFromAnotherGoroutine(t *testing.T) {
	_, loop, surface := setup(t, shaders.Sources{Vertex: goodVertex, Fragment: goodFragment})
	done := make(chan struct{})
	surface.onSwap = func(frame int) {
		if frame == 2 {
			go func() {
				loop.RequestClose()
				close(done)
			}()
			<-done
		}
	}

	loop.Run(context.Background())

	assert.Equal(t, 2, surface.swaps)
	assert.True(t, surface.shouldClose)
}

func TestCancelledContextStopsLoop(t *testing.T) {
	_, loop, surface := setup(t, shaders.Sources{Vertex: goodVertex, Fragment: goodFragment})
	ctx, cancel := context.WithCancel(context.Background())
	surface.onSwap = func(frame int) {
		if frame == 4 {
			cancel()
		}
	}

	loop.Run(ctx)

	assert.Equal(t, 4, surface.swaps)
	assert.True(t, surface.shouldClose)
}

func TestReloadReplacesPipeline(t *testing.T) {
	dev, loop, surface := setup(t, shaders.Sources{Vertex: goodVertex, Fragment: "broken"})
	old := loop.Pipeline()
	reload := make(chan struct{}, 1)
	loop.WatchReloads(reload, func() (*shaders.Pipeline, error) {
		return shaders.Build(dev, shaders.Sources{Vertex: goodVertex, Fragment: goodFragment}, shaders.Options{Strict: true})
	})

	loop.Frame()
	assert.Zero(t, dev.Count("DrawTriangles"))

	reload <- struct{}{}
	loop.Frame()
	assert.NotSame(t, old, loop.Pipeline())
	assert.True(t, loop.Pipeline().Linked())
	assert.Equal(t, 1, dev.Count("DrawTriangles"))
	assert.Equal(t, 1, dev.Count("DeleteProgram"), "previous program is released")
	assert.Equal(t, 2, surface.swaps)
}

func TestFailedReloadKeepsPipeline(t *testing.T) {
	dev, loop, _ := setup(t, shaders.Sources{Vertex: goodVertex, Fragment: goodFragment})
	old := loop.Pipeline()
	reload := make(chan struct{}, 1)
	loop.WatchReloads(reload, func() (*shaders.Pipeline, error) {
		return nil, errors.New("ERROR::SHADER::FRAGMENT::COMPILATION_FAILED")
	})

	reload <- struct{}{}
	loop.Frame()

	assert.Same(t, old, loop.Pipeline())
	assert.Equal(t, 1, dev.Count("DrawTriangles"))
	assert.Zero(t, dev.Count("DeleteProgram"))
}

func TestCloseReleasesEverything(t *testing.T) {
	dev, loop, _ := setup(t, shaders.Sources{Vertex: goodVertex, Fragment: goodFragment})

	loop.Close()

	liveShaders, programs, arrays, buffers := dev.Live()
	assert.Zero(t, liveShaders)
	assert.Zero(t, programs)
	assert.Zero(t, arrays)
	assert.Zero(t, buffers)
}

func TestFramesAreCounted(t *testing.T) {
	_, loop, surface := setup(t, shaders.Sources{Vertex: goodVertex, Fragment: goodFragment})
	surface.maxFrames = 2
	before := testutil.ToFloat64(metrics.FramesPresented)
	draws := testutil.ToFloat64(metrics.DrawCalls)

	loop.Run(context.Background())

	assert.Equal(t, before+2, testutil.ToFloat64(metrics.FramesPresented))
	assert.Equal(t, draws+2, testutil.ToFloat64(metrics.DrawCalls))
}
