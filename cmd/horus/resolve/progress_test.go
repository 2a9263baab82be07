package resolve

import (
	"bytes"
	"strings"
	"testing"

	"github.com/flarebyte/horus-scrolls/internal/stamp"
)

func TestProgressReporterSnapshots(t *testing.T) {
	var buf bytes.Buffer
	p := newProgressReporter(true, nil, &buf)
	for i := 0; i < 3; i++ {
		h := p.Stamp("Parser")
		_ = h.Finish()
	}
	h := p.Stamp("PatternResolver")
	_ = h.Finish()

	p.start()
	p.stop()

	out := buf.String()
	if !strings.Contains(out, "progress stage=PatternResolver processed=4\n") {
		t.Fatalf("unexpected progress output: %q", out)
	}
}

func TestProgressReporterDisabledDelegates(t *testing.T) {
	p := newProgressReporter(false, stamp.TimingStamper{}, nil)
	// No-ops, must not panic or spawn anything.
	p.start()
	p.stop()

	h := p.Stamp("Parser")
	if err := h.Finish(); err != nil {
		t.Fatalf("finish: %v", err)
	}
	if _, ok := h.Value(); !ok {
		t.Fatalf("expected a resolved measure from the inner stamper")
	}
}
