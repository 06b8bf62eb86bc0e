package shaders_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/learngl/hellotriangle/lib/rendering"
	"github.com/learngl/hellotriangle/lib/rendering/gltest"
	"github.com/learngl/hellotriangle/lib/rendering/shaders"
)

func TestEmbeddedSources(t *testing.T) {
	s, err := shaders.NewShaderer()
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"triangle.vert", "triangle.frag"}, s.TemplateNames())

	src, err := s.Sources(&shaders.ShaderData{GLSLVersion: 330})
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(src.Vertex, "#version 330 core\n"))
	assert.Contains(t, src.Vertex, "layout (location = 0) in vec3 aPos;")
	assert.Contains(t, src.Vertex, "layout (location = 1) in vec3 inColour;")
	assert.True(t, strings.HasPrefix(src.Fragment, "#version 330 core\n"))
	assert.Contains(t, src.Fragment, "FragColor = vec4(colour, 1.0);")

	assert.Equal(t, src.Vertex, src.For(rendering.VertexShader))
	assert.Equal(t, src.Fragment, src.For(rendering.FragmentShader))

	// the embedded pair builds a linked pipeline
	p, err := shaders.Build(gltest.NewDevice(), src, shaders.Options{Strict: true})
	require.NoError(t, err)
	assert.True(t, p.Linked())
}

func TestOverrideIsReadOnEveryCall(t *testing.T) {
	path := filepath.Join(t.TempDir(), "flat.frag")
	require.NoError(t, os.WriteFile(path, []byte("#version {{ .GLSLVersion }} core\nvoid main() {}\n"), 0o644))

	s, err := shaders.NewShaderer()
	require.NoError(t, err)
	s.Override(rendering.FragmentShader, path)

	src, err := s.Sources(&shaders.ShaderData{GLSLVersion: 410})
	require.NoError(t, err)
	assert.Equal(t, "#version 410 core\nvoid main() {}\n", src.Fragment)
	assert.Contains(t, src.Vertex, "#version 410 core")

	require.NoError(t, os.WriteFile(path, []byte("changed"), 0o644))
	src, err = s.Sources(&shaders.ShaderData{GLSLVersion: 410})
	require.NoError(t, err)
	assert.Equal(t, "changed", src.Fragment)

	s.Override(rendering.FragmentShader, "")
	src, err = s.Sources(&shaders.ShaderData{GLSLVersion: 330})
	require.NoError(t, err)
	assert.Contains(t, src.Fragment, "FragColor")
}

func TestOverrideMissingFile(t *testing.T) {
	s, err := shaders.NewShaderer()
	require.NoError(t, err)
	s.Override(rendering.VertexShader, filepath.Join(t.TempDir(), "missing.vert"))

	_, err = s.Sources(&shaders.ShaderData{GLSLVersion: 330})
	assert.ErrorIs(t, err, os.ErrNotExist)
}
