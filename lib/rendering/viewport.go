package rendering

// Resizable is implemented by render targets that need to follow the size of
// the window's framebuffer.
type Resizable interface {
	Resize(width, height int)
}

// Viewport maps rendering output onto the whole framebuffer. There is no
// aspect ratio correction.
type Viewport struct {
	dev Device

	// OnResize, if set, is called after the viewport has been updated.
	OnResize func(width, height int)

	width  int
	height int
}

func NewViewport(dev Device) *Viewport {
	return &Viewport{dev: dev}
}

func (v *Viewport) Resize(width, height int) {
	v.width = width
	v.height = height
	v.dev.Viewport(0, 0, int32(width), int32(height))
	if v.OnResize != nil {
		v.OnResize(width, height)
	}
}

func (v *Viewport) Size() (width, height int) {
	return v.width, v.height
}
