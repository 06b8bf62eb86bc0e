package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	FramesPresented = promauto.NewCounter(prometheus.CounterOpts{
		Name: "hellotriangle_frames_presented_total",
		Help: "Total number of frames swapped to the window",
	})
	DrawCalls = promauto.NewCounter(prometheus.CounterOpts{
		Name: "hellotriangle_draw_calls_total",
		Help: "Total number of draw calls issued",
	})
	ViewportUpdates = promauto.NewCounter(prometheus.CounterOpts{
		Name: "hellotriangle_viewport_updates_total",
		Help: "Total number of times the viewport was set, the initial size included",
	})
	ViewportSize = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "hellotriangle_viewport_pixels",
		Help: "Current viewport size",
	}, []string{"dimension"})
	ShaderBuildFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "hellotriangle_shader_build_failures_total",
		Help: "Total number of shader compile (VERTEX, FRAGMENT) and link (PROGRAM) failures",
	}, []string{"stage"})
	PipelineBuilds = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "hellotriangle_pipeline_builds_total",
		Help: "Total number of shader pipeline builds by result",
	}, []string{"result"})
	FrameSeconds = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "hellotriangle_frame_seconds",
		Help:    "Time between consecutive frames",
		Buckets: prometheus.ExponentialBuckets(0.001, 2, 10),
	})
)

func init() {
	for _, stage := range []string{"VERTEX", "FRAGMENT", "PROGRAM"} {
		ShaderBuildFailures.WithLabelValues(stage).Add(0)
	}
	for _, result := range []string{"linked", "failed"} {
		PipelineBuilds.WithLabelValues(result).Add(0)
	}
}

// SetViewport records the size the viewport was last set to. It is called for
// the initial framebuffer size as well as for every resize.
func SetViewport(width, height int) {
	ViewportUpdates.Inc()
	ViewportSize.WithLabelValues("width").Set(float64(width))
	ViewportSize.WithLabelValues("height").Set(float64(height))
}

// Handler should usually be mounted at /metrics
func Handler() http.Handler {
	return promhttp.Handler()
}
