package rendering_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/learngl/hellotriangle/lib/rendering"
	"github.com/learngl/hellotriangle/lib/rendering/gltest"
)

func TestViewportFollowsResize(t *testing.T) {
	dev := gltest.NewDevice()
	vp := rendering.NewViewport(dev)

	var notified [][2]int
	vp.OnResize = func(w, h int) { notified = append(notified, [2]int{w, h}) }

	sizes := [][2]int{{800, 600}, {1, 1}, {0, 0}, {1920, 1080}, {0, 457}, {3000, 7}}
	for _, s := range sizes {
		vp.Resize(s[0], s[1])
		assert.Equal(t, [4]int32{0, 0, int32(s[0]), int32(s[1])}, dev.ViewportRect)

		w, h := vp.Size()
		assert.Equal(t, s[0], w)
		assert.Equal(t, s[1], h)
	}
	assert.Equal(t, sizes, notified)
	assert.Equal(t, len(sizes), dev.Count("Viewport"))
}

func TestViewportIsResizable(t *testing.T) {
	var _ rendering.Resizable = rendering.NewViewport(gltest.NewDevice())
}
