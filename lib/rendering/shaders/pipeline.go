package shaders

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/learngl/hellotriangle/lib/log"
	"github.com/learngl/hellotriangle/lib/metrics"
	"github.com/learngl/hellotriangle/lib/rendering"
)

const programStage = "PROGRAM"

// PipelineBuildError carries the driver's diagnostic for one failed stage.
// Stage is VERTEX, FRAGMENT or PROGRAM.
type PipelineBuildError struct {
	Stage string
	Log   string
}

func (e *PipelineBuildError) Error() string {
	what := "COMPILATION_FAILED"
	if e.Stage == programStage {
		what = "LINKING_FAILED"
	}
	return fmt.Sprintf("ERROR::SHADER::%s::%s\n%s", e.Stage, what, e.Log)
}

type Options struct {
	// Strict turns any compile or link failure into an error instead of a
	// pipeline that draws nothing.
	Strict bool
	Logger *slog.Logger
}

// Pipeline is a linked vertex + fragment program.
type Pipeline struct {
	dev rendering.Device

	Program     uint32
	linked      bool
	Diagnostics []*PipelineBuildError
}

// Build compiles both stages of src and links them. Every failure is logged.
// Unless opts.Strict is set the pipeline is returned even when it is unusable,
// so that rendering carries on and simply shows nothing.
// The stage objects are always deleted before Build returns.
func Build(dev rendering.Device, src Sources, opts Options) (*Pipeline, error) {
	logger := opts.Logger
	if logger == nil {
		logger = log.Module("shaders")
	}
	p := &Pipeline{dev: dev}

	vertexShader := p.compile(rendering.VertexShader, src.Vertex, logger)
	fragmentShader := p.compile(rendering.FragmentShader, src.Fragment, logger)

	if opts.Strict && len(p.Diagnostics) > 0 {
		dev.DeleteShader(vertexShader)
		dev.DeleteShader(fragmentShader)
		metrics.PipelineBuilds.WithLabelValues("failed").Inc()
		return nil, p.Err()
	}

	p.Program = dev.CreateProgram()
	dev.AttachShader(p.Program, vertexShader)
	dev.AttachShader(p.Program, fragmentShader)
	dev.LinkProgram(p.Program)

	if dev.ProgramLinked(p.Program) {
		p.linked = true
	} else {
		p.fail(programStage, dev.ProgramInfoLog(p.Program), logger)
	}

	dev.DeleteShader(vertexShader)
	dev.DeleteShader(fragmentShader)

	if !p.linked {
		metrics.PipelineBuilds.WithLabelValues("failed").Inc()
		if opts.Strict {
			dev.DeleteProgram(p.Program)
			return nil, p.Err()
		}
		return p, nil
	}

	metrics.PipelineBuilds.WithLabelValues("linked").Inc()
	logger.Debug("Pipeline linked", "program", p.Program)
	return p, nil
}

func (p *Pipeline) compile(kind rendering.ShaderKind, source string, logger *slog.Logger) uint32 {
	shader := p.dev.CreateShader(kind)
	p.dev.CompileShader(shader, source)
	if !p.dev.ShaderCompiled(shader) {
		p.fail(kind.String(), p.dev.ShaderInfoLog(shader), logger)
	}
	return shader
}

func (p *Pipeline) fail(stage, diagnostic string, logger *slog.Logger) {
	e := &PipelineBuildError{Stage: stage, Log: diagnostic}
	p.Diagnostics = append(p.Diagnostics, e)
	metrics.ShaderBuildFailures.WithLabelValues(stage).Inc()
	logger.Error(e.Error())
}

// Err joins all diagnostics, or returns nil for a clean build.
func (p *Pipeline) Err() error {
	errs := make([]error, len(p.Diagnostics))
	for i, d := range p.Diagnostics {
		errs[i] = d
	}
	return errors.Join(errs...)
}

func (p *Pipeline) Linked() bool {
	return p.linked
}

func (p *Pipeline) Use() {
	p.dev.UseProgram(p.Program)
}

func (p *Pipeline) Delete() {
	p.dev.DeleteProgram(p.Program)
}
