package kbdctl

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeInput struct {
	escape      bool
	shouldClose bool
}

func (f *fakeInput) EscapePressed() bool { return f.escape }
func (f *fakeInput) SetShouldClose(b bool) { f.shouldClose = b }

func TestEscapeRequestsClose(t *testing.T) {
	in := &fakeInput{escape: true}
	assert.True(t, ProcessInput(in))
	assert.True(t, in.shouldClose)
}

func TestNoKeyLeavesWindowOpen(t *testing.T) {
	in := &fakeInput{}
	assert.False(t, ProcessInput(in))
	assert.False(t, in.shouldClose)
}
