package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"runtime/pprof"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/learngl/hellotriangle/lib/api/docs"
	"github.com/learngl/hellotriangle/lib/config"
	"github.com/learngl/hellotriangle/lib/log"
	"github.com/learngl/hellotriangle/lib/metrics"
	"github.com/learngl/hellotriangle/lib/stats"
)

// Closer is whatever owns the window. RequestClose must be safe to call from
// the HTTP goroutines.
type Closer interface {
	RequestClose()
}

type Api struct {
	srv    http.Server
	mux    *http.ServeMux
	cfg    *config.ApiCfg
	full   *config.Config
	closer Closer
	log    *slog.Logger

	Stats *stats.Stats
	// StatsInterval is how often websocket clients get a stats packet.
	StatsInterval time.Duration

	wsMutex   sync.Mutex
	wsClients map[*websocket.Conn]bool
}

func New(cfg *config.ApiCfg, full *config.Config, closer Closer, st *stats.Stats) *Api {
	a := &Api{}
	a.cfg = cfg
	a.full = full
	a.closer = closer
	a.log = log.Module("api")
	a.mux = http.NewServeMux()
	a.srv.Addr = cfg.Bind
	a.srv.Handler = a.mux
	a.wsClients = make(map[*websocket.Conn]bool)
	a.Stats = st
	a.StatsInterval = 2 * time.Second

	if a.cfg.EnableProfiler {
		a.mux.HandleFunc("/prof", a.profileCPU)
	}
	a.mux.HandleFunc("GET /api/stats", a.getStats)
	a.mux.HandleFunc("POST /api/close", a.handleClose)
	a.mux.HandleFunc("GET /api/config", a.handleConfig)
	a.mux.HandleFunc("GET /api/ws", a.handleWebsocket)
	a.mux.Handle("GET /metrics", metrics.Handler())
	a.mux.Handle("GET /swagger/", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))
	return a
}

func (a *Api) Handler() http.Handler {
	return a.mux
}

func (a *Api) Serve() error {
	return a.srv.ListenAndServe()
}

func (a *Api) Shutdown(ctx context.Context) error {
	a.wsMutex.Lock()
	for ws := range a.wsClients {
		ws.Close()
	}
	a.wsMutex.Unlock()
	return a.srv.Shutdown(ctx)
}

func (a *Api) profileCPU(w http.ResponseWriter, _ *http.Request) {
	err := pprof.StartCPUProfile(w)
	if err != nil {
		http.Error(w, fmt.Sprintf("Could not start CPU profile: %s", err), http.StatusInternalServerError)
		return
	}
	time.Sleep(10 * time.Second)
	pprof.StopCPUProfile()
}

// @Summary	Close the window after the current frame
// @Router		/api/close [post]
// @Tags		base
// @Produce	json
// @Success	200	{string}	string	"ok"
func (a *Api) handleClose(w http.ResponseWriter, _ *http.Request) {
	a.log.Info("Closing window as per api request")
	a.closer.RequestClose()
	_, err := fmt.Fprintf(w, "\"ok\"\n")
	if err != nil {
		a.log.Error("could not write response", "err", err)
	}
}

// @Summary	Get render statistics
// @Router		/api/stats [get]
// @Tags		base
// @Produce	json
// @Success	200	{object}	stats.Snapshot
func (a *Api) getStats(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	encoder := json.NewEncoder(w)
	err := encoder.Encode(a.Stats.Snapshot())
	if err != nil {
		http.Error(w, fmt.Sprintf("could not encode stats: %s", err), http.StatusInternalServerError)
	}
}

type WindowResp struct {
	Title     string `json:"title" example:"LearnOpenGL"`
	Width     int    `json:"width" example:"800"`
	Height    int    `json:"height" example:"600"`
	GLVersion string `json:"gl_version" example:"3.3"`
	VSync     bool   `json:"vsync"`
}

type ShadersResp struct {
	Vertex   string `json:"vertex" example:"(embedded)"`
	Fragment string `json:"fragment" example:"(embedded)"`
	Watch    bool   `json:"watch"`
	Strict   bool   `json:"strict"`
}

type ConfigResp struct {
	Window      WindowResp  `json:"window"`
	ClearColour [4]float32  `json:"clear_colour"`
	Shaders     ShadersResp `json:"shaders"`
}

// @Summary	Get the configuration the window was opened with
// @Router		/api/config [get]
// @Tags		base
// @Produce	json
// @Success	200	{object}	ConfigResp
func (a *Api) handleConfig(w http.ResponseWriter, _ *http.Request) {
	c := a.full
	result := &ConfigResp{
		Window: WindowResp{
			Title:     c.Window.Title,
			Width:     c.Window.Width,
			Height:    c.Window.Height,
			GLVersion: fmt.Sprintf("%d.%d", c.Window.GLMajor, c.Window.GLMinor),
			VSync:     c.Window.VSync,
		},
		ClearColour: c.ClearColour,
		Shaders: ShadersResp{
			Vertex:   c.Shaders.Vertex.OrEmbedded(),
			Fragment: c.Shaders.Fragment.OrEmbedded(),
			Watch:    c.Shaders.Watch,
			Strict:   c.Shaders.Strict,
		},
	}
	w.Header().Set("Content-Type", "application/json")
	encoder := json.NewEncoder(w)
	err := encoder.Encode(result)
	if err != nil {
		http.Error(w, fmt.Sprintf("couldn't encode config: %s", err), http.StatusInternalServerError)
	}
}

// ServeInBackground returns nil when the API is not configured.
func ServeInBackground(cfg *config.Config, closer Closer, st *stats.Stats) *Api {
	if cfg.Api == nil {
		return nil
	}
	theApi := New(cfg.Api, cfg, closer, st)

	theApi.log.Info("Starting web server", "bind", cfg.Api.Bind)
	go func() {
		err := theApi.Serve()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			theApi.log.Error("Web server stopped", "err", err)
		}
	}()
	return theApi
}
