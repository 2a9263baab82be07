package resolve

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/flarebyte/horus-scrolls/internal/stamp"
)

const progressInterval = 500 * time.Millisecond

// progressReporter plugs into the pipeline as a stamper so it can observe
// every stage invocation while the run is in flight. A background ticker
// prints periodic snapshots to stderr; records themselves are untouched
// unless timing was requested.
type progressReporter struct {
	enabled  bool
	interval time.Duration
	w        io.Writer
	inner    stamp.Stamper

	mu        sync.Mutex
	stageName string
	processed int

	done chan struct{}
	wg   sync.WaitGroup
}

func newProgressReporter(enabled bool, inner stamp.Stamper, w io.Writer) *progressReporter {
	if inner == nil {
		inner = stamp.TrueStamper{}
	}
	if !enabled {
		return &progressReporter{enabled: false, inner: inner}
	}
	return &progressReporter{
		enabled:  true,
		interval: progressInterval,
		w:        w,
		inner:    inner,
		done:     make(chan struct{}),
	}
}

// Stamp implements stamp.Stamper. Invocations may come from any worker
// goroutine, so the snapshot is mutex-guarded.
func (p *progressReporter) Stamp(stage string) *stamp.Handle {
	p.mu.Lock()
	p.stageName = stage
	p.processed++
	p.mu.Unlock()
	return p.inner.Stamp(stage)
}

func (p *progressReporter) start() {
	if p == nil || !p.enabled {
		return
	}
	p.emit()
	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		ticker := time.NewTicker(p.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				p.emit()
			case <-p.done:
				return
			}
		}
	}()
}

func (p *progressReporter) stop() {
	if p == nil || !p.enabled {
		return
	}
	close(p.done)
	p.wg.Wait()
	p.emit()
}

func (p *progressReporter) emit() {
	if p == nil || !p.enabled || p.w == nil {
		return
	}
	p.mu.Lock()
	stageName := p.stageName
	processed := p.processed
	p.mu.Unlock()
	_, _ = fmt.Fprintf(p.w, "progress stage=%s processed=%d\n", stageName, processed)
}
