package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "run.cue")
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatalf("write cfg: %v", err)
	}
	return p
}

func TestLoadFullConfig(t *testing.T) {
	p := writeConfig(t, `{
  configVersion: "1"
  preset: "read"
  inputs: ["src/**/*.go", "README.md"]
  workers: 4
  resolver: { capacity: 16, gitignore: true }
  parser: { errorOnEmpty: true }
  content: { recordEncoding: true }
  filter: { inline: "resolved_path ~= \"\"", timeoutMs: 500, instructionLimit: 50000, memoryLimitKb: 1024 }
  output: { lines: true }
  errors: { mode: "fail-fast" }
  logging: { level: "debug", format: "console" }
}`)
	c, err := Load(p)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.Preset != "read" || c.ConfigVersion != "1" {
		t.Fatalf("required fields wrong: %+v", c)
	}
	if len(c.Inputs) != 2 || c.Inputs[0] != "src/**/*.go" {
		t.Fatalf("inputs = %v", c.Inputs)
	}
	if !c.HasWorkers || c.Workers != 4 {
		t.Fatalf("workers = %+v", c)
	}
	if !c.Resolver.HasCapacity || c.Resolver.Capacity != 16 || !c.Resolver.Gitignore {
		t.Fatalf("resolver = %+v", c.Resolver)
	}
	if !c.Parser.ErrorOnEmpty || !c.Content.RecordEncoding {
		t.Fatalf("sections = %+v", c)
	}
	if !c.Filter.HasInline || c.Filter.InstructionLimit != 50000 {
		t.Fatalf("filter = %+v", c.Filter)
	}
	if !c.Output.Lines || c.Errors.Mode != "fail-fast" {
		t.Fatalf("output/errors = %+v %+v", c.Output, c.Errors)
	}
	if c.Logging.Level != "debug" || c.Logging.Format != "console" {
		t.Fatalf("logging = %+v", c.Logging)
	}
}

func TestLoadMinimalConfig(t *testing.T) {
	p := writeConfig(t, "{\n  configVersion: \"1\"\n  preset: \"resolve\"\n}\n")
	c, err := Load(p)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.HasWorkers || c.HasManifest || c.Filter.HasInline {
		t.Fatalf("absent fields must stay unset: %+v", c)
	}
}

func TestLoadRejectsMissingPreset(t *testing.T) {
	p := writeConfig(t, "{\n  configVersion: \"1\"\n}\n")
	_, err := Load(p)
	if err == nil || err.Error() != "missing required field: preset" {
		t.Fatalf("err = %v", err)
	}
}

func TestLoadRejectsUnknownVersion(t *testing.T) {
	p := writeConfig(t, "{\n  configVersion: \"2\"\n  preset: \"resolve\"\n}\n")
	_, err := Load(p)
	if err == nil {
		t.Fatalf("expected error")
	}
	want := "unsupported configVersion: \"2\" (supported: 1)"
	if err.Error() != want {
		t.Fatalf("unexpected error\nwant: %s\n got: %s", want, err.Error())
	}
}

func TestLoadRejectsUnknownPreset(t *testing.T) {
	p := writeConfig(t, "{\n  configVersion: \"1\"\n  preset: \"compile\"\n}\n")
	_, err := Load(p)
	if err == nil || !strings.Contains(err.Error(), "unsupported preset") {
		t.Fatalf("err = %v", err)
	}
}

func TestLoadRejectsBadErrorsMode(t *testing.T) {
	p := writeConfig(t, `{
  configVersion: "1"
  preset: "resolve"
  errors: { mode: "yolo" }
}`)
	_, err := Load(p)
	if err == nil || !strings.Contains(err.Error(), "invalid errors.mode") {
		t.Fatalf("err = %v", err)
	}
}

func TestLoadRejectsUnknownTopLevelField(t *testing.T) {
	p := writeConfig(t, "{\n  configVersion: \"1\"\n  preset: \"resolve\"\n  colour: \"red\"\n}\n")
	_, err := Load(p)
	if err == nil || err.Error() != "unknown top-level field: colour" {
		t.Fatalf("err = %v", err)
	}
}

func TestLoadRejectsWrongKind(t *testing.T) {
	base := "configVersion: \"1\"\npreset: \"resolve\"\n"
	cases := []struct {
		name string
		body string
		want string
	}{
		{"workers string", base + "workers: \"four\"\n", "invalid type for field: workers (expected int)"},
		{"inputs scalar", base + "inputs: \"a.txt\"\n", "invalid type for field: inputs (expected list of strings)"},
		{"preset bool", "configVersion: \"1\"\npreset: true\n", "invalid type for field: preset (expected string)"},
		{"section scalar", base + "resolver: 3\n", "invalid type for field: resolver (expected struct)"},
		{"nested string", base + "filter: { inline: 7 }\n", "invalid type for field: filter.inline (expected string)"},
		{"nested bool", base + "output: { lines: \"yes\" }\n", "invalid type for field: output.lines (expected bool)"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tc.body))
			if err == nil || err.Error() != tc.want {
				t.Fatalf("err = %v\nwant: %s", err, tc.want)
			}
		})
	}
}

func TestLoadRejectsZeroWorkers(t *testing.T) {
	p := writeConfig(t, "{\n  configVersion: \"1\"\n  preset: \"resolve\"\n  workers: 0\n}\n")
	_, err := Load(p)
	if err == nil || !strings.Contains(err.Error(), "invalid workers") {
		t.Fatalf("err = %v", err)
	}
}

func TestLoadRejectsNonCueExtension(t *testing.T) {
	p := filepath.Join(t.TempDir(), "run.yaml")
	if err := os.WriteFile(p, []byte("preset: resolve\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	_, err := Load(p)
	if err == nil || err.Error() != "unsupported config format: expected .cue" {
		t.Fatalf("err = %v", err)
	}
}
