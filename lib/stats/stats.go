package stats

import (
	"sync"
	"time"
)

type Snapshot struct {
	Frames         uint64  `json:"frames"`
	FPS            uint64  `json:"fps"`
	Uptime         float64 `json:"uptime"`
	ViewportWidth  int     `json:"viewport_width"`
	ViewportHeight int     `json:"viewport_height"`
	PipelineLinked bool    `json:"pipeline_linked"`
	Closing        bool    `json:"closing"`
	WsClients      int     `json:"ws_clients"`
}

// Stats is written by the render loop and read by the API.
type Stats struct {
	mu  sync.Mutex
	cur Snapshot

	frameCounter uint64
	frameTimer   time.Time
	start        time.Time
	now          func() time.Time
}

func New() *Stats {
	return newWithClock(time.Now)
}

func newWithClock(now func() time.Time) *Stats {
	s := &Stats{now: now}
	s.start = now()
	s.frameTimer = s.start
	return s
}

// Update is called once per presented frame.
func (s *Stats) Update() {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	s.cur.Frames++
	s.frameCounter++
	if now.Sub(s.frameTimer) >= 1*time.Second {
		s.cur.FPS = s.frameCounter
		s.frameCounter = 0
		s.frameTimer = now
	}

	s.cur.Uptime = float64(now.Sub(s.start).Nanoseconds()) / 1e9
}

func (s *Stats) SetViewport(width, height int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cur.ViewportWidth = width
	s.cur.ViewportHeight = height
}

func (s *Stats) SetPipelineLinked(linked bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cur.PipelineLinked = linked
}

func (s *Stats) SetClosing() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cur.Closing = true
}

func (s *Stats) AddWsClients(delta int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cur.WsClients += delta
}

// Snapshot returns a copy that is safe to serialise.
func (s *Stats) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cur
}
