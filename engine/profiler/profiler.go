package profiler

import (
	"log"
	"runtime"
	"time"
)

// Stats summarizes one reporting interval.
type Stats struct {
	TicksPerSecond  float64
	FramesPerSecond float64
	EventsPerSecond float64
	MaxTick         time.Duration
	HeapMB          float64
	GCCount         uint32
}

// Profiler tracks tick rate, rendered frames, input throughput and memory.
// Outputs stats to the log at a configurable interval.
type Profiler struct {
	now            func() time.Time
	updateInterval time.Duration
	readMem        bool
	memStats       runtime.MemStats

	lastTime time.Time
	ticks    int
	frames   int
	events   int
	maxTick  time.Duration
	last     Stats
}

// ProfilerOption is a functional option for configuring a Profiler.
type ProfilerOption func(*Profiler)

// WithInterval sets how often stats are computed and logged.
func WithInterval(interval time.Duration) ProfilerOption {
	return func(p *Profiler) {
		if interval > 0 {
			p.updateInterval = interval
		}
	}
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) ProfilerOption {
	return func(p *Profiler) {
		p.now = now
	}
}

// WithMemStats toggles reading runtime memory statistics, which briefly stops the world.
func WithMemStats(enabled bool) ProfilerOption {
	return func(p *Profiler) {
		p.readMem = enabled
	}
}

// NewProfiler creates a new Profiler. The update interval defaults to 1 second.
//
// Parameters:
//   - options: functional options to configure the profiler
//
// Returns:
//   - *Profiler: the newly created profiler instance
func NewProfiler(options ...ProfilerOption) *Profiler {
	p := &Profiler{
		now:            time.Now,
		updateInterval: time.Second,
		readMem:        true,
	}
	for _, opt := range options {
		opt(p)
	}
	p.lastTime = p.now()
	return p
}

// Tick records one engine tick and logs statistics when the update interval has elapsed.
//
// Parameters:
//   - events: input events dispatched during the tick
//   - rendered: whether a frame was presented
//   - took: wall time spent in the tick
//
// Returns:
//   - bool: true if stats were logged this tick
func (p *Profiler) Tick(events int, rendered bool, took time.Duration) bool {
	p.ticks++
	p.events += events
	if rendered {
		p.frames++
	}
	p.maxTick = max(p.maxTick, took)

	currentTime := p.now()
	elapsed := currentTime.Sub(p.lastTime)
	if elapsed < p.updateInterval {
		return false
	}

	secs := elapsed.Seconds()
	s := Stats{
		TicksPerSecond:  float64(p.ticks) / secs,
		FramesPerSecond: float64(p.frames) / secs,
		EventsPerSecond: float64(p.events) / secs,
		MaxTick:         p.maxTick,
	}
	if p.readMem {
		runtime.ReadMemStats(&p.memStats)
		s.HeapMB = float64(p.memStats.Alloc) / 1024 / 1024
		s.GCCount = p.memStats.NumGC
	}

	log.Printf("[Profiler] TPS: %.1f | FPS: %.1f | Events: %.1f/s | Max tick: %s | Heap: %.2f MB | GC: %d",
		s.TicksPerSecond, s.FramesPerSecond, s.EventsPerSecond, s.MaxTick, s.HeapMB, s.GCCount)

	p.last = s
	p.ticks, p.frames, p.events = 0, 0, 0
	p.maxTick = 0
	p.lastTime = currentTime
	return true
}

// Last returns the most recently logged stats.
func (p *Profiler) Last() Stats {
	return p.last
}
