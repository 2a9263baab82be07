package resolve

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/flarebyte/horus-scrolls/internal/config"
	"github.com/flarebyte/horus-scrolls/internal/logger"
)

func TestCollectInputsMergesConfigManifestAndArgs(t *testing.T) {
	dir := t.TempDir()
	manifest := filepath.Join(dir, "m.yaml")
	if err := os.WriteFile(manifest, []byte("inputs:\n  - \"m1.txt\"\n  - \"m2/*.rs\"\n"), 0o644); err != nil {
		t.Fatalf("write manifest: %v", err)
	}

	cfg := config.Config{
		Inputs:      []string{"a.txt"},
		Manifest:    "m.yaml",
		HasManifest: true,
	}
	got, err := collectInputs(cfg, filepath.Join(dir, "conf.cue"), []string{"cli.txt"})
	if err != nil {
		t.Fatalf("collect: %v", err)
	}
	want := []string{"a.txt", "m1.txt", "m2/*.rs", "cli.txt"}
	if len(got) != len(want) {
		t.Fatalf("unexpected inputs: %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("inputs[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestCollectInputsRejectsEmpty(t *testing.T) {
	_, err := collectInputs(config.Config{}, "", nil)
	if err == nil {
		t.Fatalf("expected error")
	}
}

func TestCollectInputsMissingManifest(t *testing.T) {
	cfg := config.Config{Manifest: "nope.yaml", HasManifest: true}
	_, err := collectInputs(cfg, filepath.Join(t.TempDir(), "conf.cue"), nil)
	if err == nil {
		t.Fatalf("expected error")
	}
}

func TestBuildStageOptionsMapsConfig(t *testing.T) {
	cfg := config.Config{
		Resolver: config.Resolver{Capacity: 8, HasCapacity: true},
		Execute:  config.Execute{TimeoutMs: 250, HasTimeoutMs: true},
		Filter:   config.Filter{Inline: "return true", HasInline: true},
	}
	opts := buildStageOptions(cfg, logger.NewNoop())
	if opts.Limiter == nil || opts.Limiter.Cap() != 8 {
		t.Fatalf("expected a limiter with capacity 8")
	}
	if opts.Exec.Timeout != 250*time.Millisecond {
		t.Fatalf("unexpected exec timeout: %v", opts.Exec.Timeout)
	}
	if opts.Script.Source != "return true" {
		t.Fatalf("unexpected script source: %q", opts.Script.Source)
	}
}

func TestBuildStageOptionsLeavesDefaults(t *testing.T) {
	opts := buildStageOptions(config.Config{}, logger.NewNoop())
	if opts.Limiter != nil || opts.Walker != nil || opts.Probe != nil {
		t.Fatalf("expected nil collaborators before normalization")
	}
}
