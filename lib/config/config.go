package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
	yaml "github.com/goccy/go-yaml"

	"github.com/learngl/hellotriangle/lib/log"
)

var ErrInvalid = errors.New("invalid config")

type Config struct {
	Window      WindowCfg
	ClearColour mgl32.Vec4 `yaml:"clear_colour"`
	Shaders     ShaderCfg
	Api         *ApiCfg
	LogLevel    string `yaml:"log_level"`
}

type WindowCfg struct {
	Width  int
	Height int
	Title  string
	VSync  bool `yaml:"vsync"`

	GLMajor int `yaml:"gl_major"`
	GLMinor int `yaml:"gl_minor"`
}

// ShaderCfg optionally replaces the embedded shaders with files on disk.
type ShaderCfg struct {
	Vertex   CfgPath
	Fragment CfgPath
	Watch    bool
	Strict   bool
}

type ApiCfg struct {
	Bind           string
	EnableProfiler bool `yaml:"enable_profiler"`
}

// Default returns the configuration the program runs with when no file is
// given.
func Default() *Config {
	return &Config{
		Window: WindowCfg{
			Width:   800,
			Height:  600,
			Title:   "LearnOpenGL",
			VSync:   true,
			GLMajor: 3,
			GLMinor: 3,
		},
		ClearColour: mgl32.Vec4{0.2, 0.3, 0.3, 1.0},
		LogLevel:    "info",
	}
}

// Parse reads filename on top of Default and validates the result.
func Parse(filename string) (*Config, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("could not open %s: %w", filename, err)
	}
	defer func(f *os.File) {
		_ = f.Close()
	}(f)

	absFilename, err := filepath.Abs(filename)
	if err != nil {
		return nil, fmt.Errorf("somehow, %s is malformed: %w", filename, err)
	}
	UnmarshalBase = filepath.Dir(absFilename)

	cfg := Default()
	err = yaml.NewDecoder(f, yaml.DisallowUnknownField()).Decode(cfg)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalid, err)
	}
	err = cfg.Validate()
	if err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if err := c.Window.Validate(); err != nil {
		return fmt.Errorf("%w: window: %w", ErrInvalid, err)
	}
	for i, v := range c.ClearColour {
		if v < 0 || v > 1 {
			return fmt.Errorf("%w: clear_colour component %d (%g) must be within [0, 1]", ErrInvalid, i, v)
		}
	}
	if err := c.Shaders.Validate(); err != nil {
		return fmt.Errorf("%w: shaders: %w", ErrInvalid, err)
	}
	if c.Api != nil {
		if err := c.Api.Validate(); err != nil {
			return fmt.Errorf("%w: api: %w", ErrInvalid, err)
		}
	}
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	return nil
}

func (w *WindowCfg) Validate() error {
	if w.Width <= 0 || w.Height <= 0 {
		return fmt.Errorf("size must be positive, got %dx%d", w.Width, w.Height)
	}
	if w.Title == "" {
		return fmt.Errorf("title must be specified")
	}
	if w.GLMajor < 3 || (w.GLMajor == 3 && w.GLMinor < 3) {
		return fmt.Errorf("an OpenGL 3.3 or newer core context is required, got %d.%d", w.GLMajor, w.GLMinor)
	}
	return nil
}

// GLSLVersion is the #version directive number matching the context, e.g.
// 330 for a 3.3 context.
func (w *WindowCfg) GLSLVersion() int {
	return w.GLMajor*100 + w.GLMinor*10
}

func (s *ShaderCfg) Validate() error {
	if s.Watch && s.Vertex == "" && s.Fragment == "" {
		return fmt.Errorf("watch needs at least one of vertex or fragment to be a file")
	}
	return nil
}

func (a *ApiCfg) Validate() error {
	if a.Bind == "" {
		return fmt.Errorf("bind address must be specified")
	}
	return nil
}

func (c *Config) String() string {
	var b strings.Builder
	b.WriteString("Window:\n")
	fmt.Fprintf(&b, "  %q %dx%d (OpenGL %d.%d core, vsync %t)\n",
		c.Window.Title, c.Window.Width, c.Window.Height,
		c.Window.GLMajor, c.Window.GLMinor, c.Window.VSync)

	fmt.Fprintf(&b, "\nClear colour:\n  %g %g %g %g\n",
		c.ClearColour[0], c.ClearColour[1], c.ClearColour[2], c.ClearColour[3])

	b.WriteString("\nShaders:\n")
	b.WriteString(fmt.Sprintf("  vertex:   %s\n", c.Shaders.Vertex.OrEmbedded()))
	b.WriteString(fmt.Sprintf("  fragment: %s\n", c.Shaders.Fragment.OrEmbedded()))
	if c.Shaders.Watch {
		b.WriteString("  (reloaded on change)\n")
	}
	if c.Shaders.Strict {
		b.WriteString("  (build failures are fatal)\n")
	}

	if c.Api != nil {
		fmt.Fprintf(&b, "\nApi:\n  %s\n", c.Api.Bind)
	}

	return b.String()
}
