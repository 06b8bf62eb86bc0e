package shaders

import (
	"bytes"
	"embed"
	"fmt"
	"os"
	"text/template"

	"github.com/learngl/hellotriangle/lib/rendering"
)

//go:embed *.frag *.vert
var templateDir embed.FS

const (
	vertexTemplate   = "triangle.vert"
	fragmentTemplate = "triangle.frag"
)

// Shaderer renders shader source text. The embedded triangle shaders are used
// unless a stage has been overridden with a file, which is then read again on
// every call to Sources.
type Shaderer struct {
	templates *template.Template
	overrides map[rendering.ShaderKind]string
}

func NewShaderer() (*Shaderer, error) {
	s := &Shaderer{overrides: make(map[rendering.ShaderKind]string)}

	var err error

	s.templates, err = template.ParseFS(templateDir, "*.frag", "*.vert")

	return s, err
}

// ShaderData contains stuff that gets passed to the shader
type ShaderData struct {
	GLSLVersion int
}

type Sources struct {
	Vertex   string
	Fragment string
}

func (s Sources) For(kind rendering.ShaderKind) string {
	if kind == rendering.VertexShader {
		return s.Vertex
	}
	return s.Fragment
}

// Override makes kind come from the file at path. An empty path keeps the
// embedded shader.
func (s *Shaderer) Override(kind rendering.ShaderKind, path string) {
	if path == "" {
		delete(s.overrides, kind)
		return
	}
	s.overrides[kind] = path
}

func (s *Shaderer) Sources(data *ShaderData) (Sources, error) {
	var src Sources
	var err error

	src.Vertex, err = s.source(rendering.VertexShader, vertexTemplate, data)
	if err != nil {
		return src, fmt.Errorf("could not get vertex shader: %w", err)
	}
	src.Fragment, err = s.source(rendering.FragmentShader, fragmentTemplate, data)
	if err != nil {
		return src, fmt.Errorf("could not get fragment shader: %w", err)
	}
	return src, nil
}

func (s *Shaderer) source(kind rendering.ShaderKind, name string, data *ShaderData) (string, error) {
	path, ok := s.overrides[kind]
	if !ok {
		return s.GetShaderSource(name, data)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	t, err := template.New(path).Parse(string(content))
	if err != nil {
		return "", fmt.Errorf("error while parsing template %s: %w", path, err)
	}
	var b bytes.Buffer
	if err := t.Execute(&b, data); err != nil {
		return "", fmt.Errorf("error while rendering template %s: %w", path, err)
	}
	return b.String(), nil
}

func (s *Shaderer) GetShaderSource(name string, data *ShaderData) (string, error) {
	var b bytes.Buffer
	err := s.templates.ExecuteTemplate(&b, name, data)
	if err != nil {
		return "", fmt.Errorf("error while rendering template: %w", err)
	}

	return b.String(), nil
}

func (s *Shaderer) TemplateNames() []string {
	var names []string
	for _, t := range s.templates.Templates() {
		names = append(names, t.Name())
	}
	return names
}
