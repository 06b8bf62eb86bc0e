// Package gltest provides a recording rendering.Device for tests that have no
// graphics context.
package gltest

import (
	"fmt"
	"strings"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/learngl/hellotriangle/lib/rendering"
)

type Call struct {
	Name string
	Args []any
}

func (c Call) String() string {
	if len(c.Args) == 0 {
		return c.Name
	}
	args := make([]string, len(c.Args))
	for i, a := range c.Args {
		args[i] = fmt.Sprint(a)
	}
	return c.Name + "(" + strings.Join(args, ", ") + ")"
}

type shader struct {
	kind     rendering.ShaderKind
	compiled bool
	log      string
}

type program struct {
	attached []uint32
	linked   bool
	log      string
}

type AttribPointer struct {
	Attr   rendering.Attribute
	Stride int32
	Buffer uint32
}

// Device pretends to be a driver. A shader fails to compile when its source
// has no main function; a program fails to link when LinkError is set or an
// attached shader did not compile.
type Device struct {
	Calls []Call

	LinkError string

	// BufferData holds the bytes uploaded to each buffer.
	BufferData map[uint32][]byte
	// Attribs holds the attributes recorded in each vertex array.
	Attribs map[uint32][]AttribPointer

	ViewportRect [4]int32
	ClearedWith  mgl32.Vec4

	nextID     uint32
	shaders    map[uint32]*shader
	programs   map[uint32]*program
	arrays     map[uint32]bool
	buffers    map[uint32]bool
	boundVAO   uint32
	boundVBO   uint32
	curProgram uint32
}

func NewDevice() *Device {
	return &Device{
		BufferData: make(map[uint32][]byte),
		Attribs:    make(map[uint32][]AttribPointer),
		shaders:    make(map[uint32]*shader),
		programs:   make(map[uint32]*program),
		arrays:     make(map[uint32]bool),
		buffers:    make(map[uint32]bool),
	}
}

func (d *Device) record(name string, args ...any) {
	d.Calls = append(d.Calls, Call{Name: name, Args: args})
}

func (d *Device) id() uint32 {
	d.nextID++
	return d.nextID
}

// Count returns how many times the named call was made.
func (d *Device) Count(name string) int {
	n := 0
	for _, c := range d.Calls {
		if c.Name == name {
			n++
		}
	}
	return n
}

// Names returns the sequence of call names.
func (d *Device) Names() []string {
	names := make([]string, len(d.Calls))
	for i, c := range d.Calls {
		names[i] = c.Name
	}
	return names
}

func (d *Device) Reset() {
	d.Calls = nil
}

// Live reports the number of shaders, programs, vertex arrays and buffers
// that have been created but not deleted.
func (d *Device) Live() (shaders, programs, arrays, buffers int) {
	return len(d.shaders), len(d.programs), len(d.arrays), len(d.buffers)
}

func (d *Device) BoundVertexArray() uint32 { return d.boundVAO }
func (d *Device) BoundArrayBuffer() uint32 { return d.boundVBO }
func (d *Device) CurrentProgram() uint32   { return d.curProgram }

func (d *Device) CreateShader(kind rendering.ShaderKind) uint32 {
	id := d.id()
	d.shaders[id] = &shader{kind: kind}
	d.record("CreateShader", kind)
	return id
}

func (d *Device) CompileShader(id uint32, source string) {
	d.record("CompileShader", id)
	s, ok := d.shaders[id]
	if !ok {
		return
	}
	if strings.Contains(source, "void main") {
		s.compiled = true
		s.log = ""
		return
	}
	s.compiled = false
	s.log = fmt.Sprintf("0:1(1): error: %s shader has no main function", strings.ToLower(s.kind.String()))
}

func (d *Device) ShaderCompiled(id uint32) bool {
	s, ok := d.shaders[id]
	return ok && s.compiled
}

func (d *Device) ShaderInfoLog(id uint32) string {
	if s, ok := d.shaders[id]; ok {
		return s.log
	}
	return ""
}

func (d *Device) DeleteShader(id uint32) {
	d.record("DeleteShader", id)
	delete(d.shaders, id)
}

func (d *Device) CreateProgram() uint32 {
	id := d.id()
	d.programs[id] = &program{}
	d.record("CreateProgram")
	return id
}

func (d *Device) AttachShader(prog, sh uint32) {
	d.record("AttachShader", prog, sh)
	if p, ok := d.programs[prog]; ok {
		p.attached = append(p.attached, sh)
	}
}

func (d *Device) LinkProgram(prog uint32) {
	d.record("LinkProgram", prog)
	p, ok := d.programs[prog]
	if !ok {
		return
	}
	p.linked = true
	p.log = ""
	if d.LinkError != "" {
		p.linked = false
		p.log = d.LinkError
		return
	}
	for _, sh := range p.attached {
		if s, ok := d.shaders[sh]; !ok || !s.compiled {
			p.linked = false
			p.log = fmt.Sprintf("error: shader %d is not compiled", sh)
			return
		}
	}
}

func (d *Device) ProgramLinked(prog uint32) bool {
	p, ok := d.programs[prog]
	return ok && p.linked
}

func (d *Device) ProgramInfoLog(prog uint32) string {
	if p, ok := d.programs[prog]; ok {
		return p.log
	}
	return ""
}

func (d *Device) UseProgram(prog uint32) {
	d.record("UseProgram", prog)
	d.curProgram = prog
}

func (d *Device) DeleteProgram(prog uint32) {
	d.record("DeleteProgram", prog)
	delete(d.programs, prog)
}

func (d *Device) GenVertexArray() uint32 {
	id := d.id()
	d.arrays[id] = true
	d.record("GenVertexArray")
	return id
}

func (d *Device) BindVertexArray(vao uint32) {
	d.record("BindVertexArray", vao)
	d.boundVAO = vao
}

func (d *Device) DeleteVertexArray(vao uint32) {
	d.record("DeleteVertexArray", vao)
	delete(d.arrays, vao)
}

func (d *Device) GenBuffer() uint32 {
	id := d.id()
	d.buffers[id] = true
	d.record("GenBuffer")
	return id
}

func (d *Device) BindArrayBuffer(vbo uint32) {
	d.record("BindArrayBuffer", vbo)
	d.boundVBO = vbo
}

func (d *Device) StaticArrayBufferData(data []float32) {
	d.record("StaticArrayBufferData", len(data))
	d.BufferData[d.boundVBO] = rendering.Bytes(data)
}

func (d *Device) VertexAttrib(attr rendering.Attribute, stride int32) {
	d.record("VertexAttrib", attr.Index, attr.Size, attr.Offset, stride)
	d.Attribs[d.boundVAO] = append(d.Attribs[d.boundVAO], AttribPointer{Attr: attr, Stride: stride, Buffer: d.boundVBO})
}

func (d *Device) DeleteBuffer(vbo uint32) {
	d.record("DeleteBuffer", vbo)
	delete(d.buffers, vbo)
}

func (d *Device) Viewport(x, y, width, height int32) {
	d.record("Viewport", x, y, width, height)
	d.ViewportRect = [4]int32{x, y, width, height}
}

func (d *Device) ClearColor(c mgl32.Vec4) {
	d.record("ClearColor", c)
	d.ClearedWith = c
}

func (d *Device) Clear() {
	d.record("Clear")
}

func (d *Device) DrawTriangles(first, count int32) {
	d.record("DrawTriangles", first, count)
}

var _ rendering.Device = (*Device)(nil)
