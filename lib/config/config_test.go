package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "hellotriangle.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, 800, cfg.Window.Width)
	assert.Equal(t, 600, cfg.Window.Height)
	assert.Equal(t, "LearnOpenGL", cfg.Window.Title)
	assert.Equal(t, 330, cfg.Window.GLSLVersion())
	assert.Equal(t, mgl32.Vec4{0.2, 0.3, 0.3, 1.0}, cfg.ClearColour)
	assert.Nil(t, cfg.Api)
}

func TestParseOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
window:
  width: 1024
  title: Triangle
clear_colour: [0, 0, 0, 1]
shaders:
  fragment: shaders/flat.frag
  watch: true
api:
  bind: "127.0.0.1:9090"
`)

	cfg, err := Parse(path)
	require.NoError(t, err)

	assert.Equal(t, 1024, cfg.Window.Width)
	assert.Equal(t, 600, cfg.Window.Height, "unset keys keep their default")
	assert.Equal(t, "Triangle", cfg.Window.Title)
	assert.Equal(t, mgl32.Vec4{0, 0, 0, 1}, cfg.ClearColour)
	assert.Equal(t, CfgPath(filepath.Join(filepath.Dir(path), "shaders/flat.frag")), cfg.Shaders.Fragment)
	assert.Equal(t, CfgPath(""), cfg.Shaders.Vertex)
	require.NotNil(t, cfg.Api)
	assert.Equal(t, "127.0.0.1:9090", cfg.Api.Bind)
}

func TestParseRejectsInvalid(t *testing.T) {
	cases := map[string]string{
		"zero width":      "window:\n  width: 0\n",
		"empty title":     "window:\n  title: \"\"\n",
		"old context":     "window:\n  gl_major: 2\n  gl_minor: 1\n",
		"colour range":    "clear_colour: [2, 0, 0, 1]\n",
		"watch w/o files": "shaders:\n  watch: true\n",
		"api w/o bind":    "api:\n  enable_profiler: true\n",
		"unknown key":     "windwo:\n  width: 10\n",
		"log level":       "log_level: chatty\n",
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Parse(writeConfig(t, body))
			assert.ErrorIs(t, err, ErrInvalid)
		})
	}
}

func TestParseMissingFile(t *testing.T) {
	_, err := Parse(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestString(t *testing.T) {
	s := Default().String()
	assert.Contains(t, s, `"LearnOpenGL" 800x600`)
	assert.Contains(t, s, "vertex:   (embedded)")
	assert.NotContains(t, s, "Api:")
}
