package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/learngl/hellotriangle/lib/api"
	"github.com/learngl/hellotriangle/lib/config"
	"github.com/learngl/hellotriangle/lib/log"
	"github.com/learngl/hellotriangle/lib/metrics"
	"github.com/learngl/hellotriangle/lib/rendering"
	"github.com/learngl/hellotriangle/lib/rendering/shaders"
	"github.com/learngl/hellotriangle/lib/renderloop"
	"github.com/learngl/hellotriangle/lib/shaderwatch"
	"github.com/learngl/hellotriangle/lib/sink/windowsink"
	"github.com/learngl/hellotriangle/lib/stats"
	"github.com/learngl/hellotriangle/lib/utils"
)

func init() {
	// The OpenGL stuff must be in one thread
	runtime.LockOSThread()
}

//	@title			Hello Triangle API
//	@version		1.0
//	@description	Inspect and close the running triangle window
//	@BasePath		/
func main() {
	os.Exit(run())
}

// startupFailure maps a window sink error onto the console message and the
// process exit code.
func startupFailure(err error) (msg string, code int) {
	if errors.Is(err, windowsink.ErrLoader) {
		return "Failed to initialize OpenGL loader", -1
	}
	return "Failed to create GLFW window", -1
}

func run() int {
	configPath := flag.String("config", "", "YAML config file; built-in defaults are used without one")
	logLevel := flag.String("log-level", "", "Override log_level from the config")
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		var err error
		cfg, err = config.Parse(*configPath)
		if err != nil {
			fmt.Printf("Config invalid: %s\n", err)
			return 1
		}
	}
	if *logLevel != "" {
		cfg.LogLevel = *logLevel
	}
	level, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		fmt.Printf("Config invalid: %s\n", err)
		return 1
	}
	log.Setup(level)
	logger := log.Module("main")

	window, err := windowsink.New(&cfg.Window)
	if err != nil {
		msg, code := startupFailure(err)
		fmt.Println(msg)
		logger.Debug("Window setup failed", "err", err)
		return code
	}
	defer window.Destroy()
	dev := window.Device()

	st := stats.New()
	viewport := rendering.NewViewport(dev)
	viewport.OnResize = func(width, height int) {
		logger.Debug("Framebuffer resized", "width", width, "height", height)
		metrics.SetViewport(width, height)
		st.SetViewport(width, height)
	}
	window.RegisterResizable(viewport)

	shaderer, err := shaders.NewShaderer()
	if err != nil {
		logger.Error("Could not load shader templates", "err", err)
		return -1
	}
	shaderer.Override(rendering.VertexShader, string(cfg.Shaders.Vertex))
	shaderer.Override(rendering.FragmentShader, string(cfg.Shaders.Fragment))
	shaderData := &shaders.ShaderData{GLSLVersion: cfg.Window.GLSLVersion()}

	src, err := shaderer.Sources(shaderData)
	if err != nil {
		logger.Error("Could not read shaders", "err", err)
		return -1
	}
	pipeline, err := shaders.Build(dev, src, shaders.Options{Strict: cfg.Shaders.Strict})
	if err != nil {
		return -1
	}
	st.SetPipelineLinked(pipeline.Linked())

	mesh := rendering.Upload(dev, rendering.TriangleVertices, rendering.TriangleLayout)

	loop := renderloop.New(window, dev, pipeline, mesh, cfg.ClearColour)
	loop.Stats = st
	defer loop.Close()

	if cfg.Shaders.Watch {
		var files []string
		for _, p := range []config.CfgPath{cfg.Shaders.Vertex, cfg.Shaders.Fragment} {
			if p != "" {
				files = append(files, string(p))
			}
		}
		watcher, err := shaderwatch.Watch(files...)
		if err != nil {
			logger.Warn("Shaders will not be reloaded", "err", err)
		} else {
			defer func() {
				if err := watcher.Close(); err != nil {
					logger.Warn("Shader watcher stopped with an error", "err", err)
				}
			}()
			loop.WatchReloads(watcher.Changes(), func() (*shaders.Pipeline, error) {
				src, err := shaderer.Sources(shaderData)
				if err != nil {
					return nil, err
				}
				return shaders.Build(dev, src, shaders.Options{Strict: true})
			})
		}
	}

	ctx, stop := utils.NotifyShutdown(context.Background())
	defer stop()

	theApi := api.ServeInBackground(cfg, loop, st)
	if theApi != nil {
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			if err := theApi.Shutdown(ctx); err != nil {
				logger.Warn("Web server did not shut down cleanly", "err", err)
			}
		}()
	}

	loop.Run(ctx)
	return 0
}
