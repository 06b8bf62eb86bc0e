package rendering

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

const f32 = 4

type Vertex struct {
	Position mgl32.Vec3
	Colour   mgl32.Vec3
}

// TriangleVertices are already in clip space; no transform is applied.
var TriangleVertices = []Vertex{
	{Position: mgl32.Vec3{-0.5, -0.5, 0.0}, Colour: mgl32.Vec3{1.0, 0.0, 0.0}},
	{Position: mgl32.Vec3{0.5, -0.5, 0.0}, Colour: mgl32.Vec3{0.0, 1.0, 0.0}},
	{Position: mgl32.Vec3{0.0, 0.5, 0.0}, Colour: mgl32.Vec3{0.0, 0.0, 1.0}},
}

type Attribute struct {
	Index uint32
	// Size is the number of float components.
	Size int32
	// Offset is in bytes from the start of a vertex.
	Offset int
}

type Layout struct {
	Stride     int32
	Attributes []Attribute
}

// TriangleLayout describes Interleave's output: position then colour.
var TriangleLayout = Layout{
	Stride: 6 * f32,
	Attributes: []Attribute{
		{Index: 0, Size: 3, Offset: 0},
		{Index: 1, Size: 3, Offset: 3 * f32},
	},
}

// Interleave flattens vertices into position/colour records.
func Interleave(vertices []Vertex) []float32 {
	data := make([]float32, 0, len(vertices)*6)
	for _, v := range vertices {
		data = append(data, v.Position[:]...)
		data = append(data, v.Colour[:]...)
	}
	return data
}

// Bytes is the in-memory form of data as handed to the driver.
func Bytes(data []float32) []byte {
	b := make([]byte, len(data)*f32)
	for i, v := range data {
		binary.NativeEndian.PutUint32(b[i*f32:], math.Float32bits(v))
	}
	return b
}

// Decode reads attr of the given vertex out of buf the same way the vertex
// fetch stage does.
func (l Layout) Decode(buf []byte, vertex int, attr Attribute) ([]float32, error) {
	start := vertex*int(l.Stride) + attr.Offset
	end := start + int(attr.Size)*f32
	if vertex < 0 || start < 0 || end > len(buf) {
		return nil, fmt.Errorf("vertex %d attribute %d ([%d,%d)) is outside the %d byte buffer", vertex, attr.Index, start, end, len(buf))
	}
	out := make([]float32, attr.Size)
	for i := range out {
		out[i] = math.Float32frombits(binary.NativeEndian.Uint32(buf[start+i*f32:]))
	}
	return out, nil
}

// Mesh is an uploaded, immutable vertex buffer together with the vertex
// array that describes it.
type Mesh struct {
	dev Device

	VAO   uint32
	VBO   uint32
	Count int32
}

// Upload stores vertices in a new buffer and records layout in a new vertex
// array. Both are unbound again before returning so later buffer calls can't
// modify them by accident.
func Upload(dev Device, vertices []Vertex, layout Layout) *Mesh {
	m := &Mesh{dev: dev, Count: int32(len(vertices))}

	m.VAO = dev.GenVertexArray()
	m.VBO = dev.GenBuffer()

	dev.BindVertexArray(m.VAO)
	dev.BindArrayBuffer(m.VBO)
	dev.StaticArrayBufferData(Interleave(vertices))

	for _, attr := range layout.Attributes {
		dev.VertexAttrib(attr, layout.Stride)
	}

	dev.BindArrayBuffer(0)
	dev.BindVertexArray(0)
	return m
}

func (m *Mesh) Bind() {
	m.dev.BindVertexArray(m.VAO)
}

func (m *Mesh) Draw() {
	m.dev.DrawTriangles(0, m.Count)
}

func (m *Mesh) Delete() {
	m.dev.DeleteVertexArray(m.VAO)
	m.dev.DeleteBuffer(m.VBO)
}
