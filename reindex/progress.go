package reindex

import (
	"fmt"
	"io"
	"sync"
	"time"
)

// ProgressTracker writes a single self-overwriting progress line while a
// reindex run walks its document list. A zero or negative total means the
// size of the run is not known yet; SetTotal fixes it up once the work
// list has been loaded.
type ProgressTracker struct {
	writer         io.Writer
	reportInterval int

	mu           sync.Mutex
	total        int
	current      int
	lastReported int
	startedAt    time.Time
	running      bool
}

// NewProgressTracker creates a tracker that reports to writer, typically
// os.Stderr, every reportInterval documents.
func NewProgressTracker(writer io.Writer, total, reportInterval int) *ProgressTracker {
	return &ProgressTracker{
		writer:         writer,
		total:          total,
		reportInterval: reportInterval,
	}
}

// SetTotal replaces the expected document count, for callers that build
// the tracker before the work list is known.
func (p *ProgressTracker) SetTotal(total int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.total = total
}

// Start resets the counters and the clock.
func (p *ProgressTracker) Start() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.running = true
	p.startedAt = time.Now()
	p.current = 0
	p.lastReported = 0
}

// Update moves the counter to an absolute position.
func (p *ProgressTracker) Update(current int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.moveTo(current)
}

// Increment advances the counter by delta documents.
func (p *ProgressTracker) Increment(delta int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.moveTo(p.current + delta)
}

// Finish snaps the counter to the total, emits a final report and
// terminates the progress line.
func (p *ProgressTracker) Finish() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.running {
		return
	}
	if p.total > 0 {
		p.current = p.total
	}
	p.report()
	fmt.Fprintln(p.writer)
	p.running = false
}

// Elapsed returns how long the run has been going.
func (p *ProgressTracker) Elapsed() time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.startedAt.IsZero() {
		return 0
	}
	return time.Since(p.startedAt)
}

// moveTo advances the counter and reports when an interval is due.
// Callers hold the lock.
func (p *ProgressTracker) moveTo(current int) {
	if !p.running {
		return
	}
	if p.total > 0 && current > p.total {
		current = p.total
	}
	p.current = current
	if p.current-p.lastReported >= p.reportInterval {
		p.report()
		p.lastReported = p.current
	}
}

// report rewrites the progress line in place. Callers hold the lock.
func (p *ProgressTracker) report() {
	rate := float64(p.current) / time.Since(p.startedAt).Seconds()
	if p.total > 0 {
		pct := float64(p.current) / float64(p.total) * 100.0
		fmt.Fprintf(p.writer, "\rProgress: %d/%d (%.1f%%) - %.1f documents/s",
			p.current, p.total, pct, rate)
		return
	}
	fmt.Fprintf(p.writer, "\rProgress: %d - %.1f documents/s", p.current, rate)
}
