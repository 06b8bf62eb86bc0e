package rendering

import "github.com/go-gl/mathgl/mgl32"

type ShaderKind int

const (
	VertexShader ShaderKind = iota
	FragmentShader
)

func (k ShaderKind) String() string {
	switch k {
	case VertexShader:
		return "VERTEX"
	case FragmentShader:
		return "FRAGMENT"
	default:
		return "UNKNOWN"
	}
}

// Device is the set of graphics calls the program issues. All methods must be
// called from the thread that holds the current context.
type Device interface {
	CreateShader(kind ShaderKind) uint32
	// CompileShader submits source for shader and compiles it.
	CompileShader(shader uint32, source string)
	ShaderCompiled(shader uint32) bool
	ShaderInfoLog(shader uint32) string
	DeleteShader(shader uint32)

	CreateProgram() uint32
	AttachShader(program, shader uint32)
	LinkProgram(program uint32)
	ProgramLinked(program uint32) bool
	ProgramInfoLog(program uint32) string
	UseProgram(program uint32)
	DeleteProgram(program uint32)

	GenVertexArray() uint32
	BindVertexArray(vao uint32)
	DeleteVertexArray(vao uint32)

	GenBuffer() uint32
	BindArrayBuffer(vbo uint32)
	// StaticArrayBufferData uploads data to the bound array buffer with
	// static usage.
	StaticArrayBufferData(data []float32)
	// VertexAttrib declares attr against the bound array buffer and enables
	// it.
	VertexAttrib(attr Attribute, stride int32)
	DeleteBuffer(vbo uint32)

	Viewport(x, y, width, height int32)
	ClearColor(c mgl32.Vec4)
	Clear()
	DrawTriangles(first, count int32)
}
