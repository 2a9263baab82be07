// Package config loads the CUE run configuration and the optional YAML input
// manifest.
package config

import (
	"fmt"

	"cuelang.org/go/cue"
)

// Config is the parsed run configuration. Presence flags record which
// optional fields the file actually set, so callers can tell "absent" from
// "zero".
type Config struct {
	ConfigVersion string
	Preset        string
	Inputs        []string
	Manifest      string
	HasManifest   bool
	Workers       int
	HasWorkers    bool
	Resolver      Resolver
	Parser        Parser
	Content       Content
	Execute       Execute
	Filter        Filter
	Output        Output
	Errors        Errors
	Logging       Logging
}

// Resolver holds optional pattern-resolver settings.
type Resolver struct {
	Capacity     int
	Gitignore    bool
	HasCapacity  bool
	HasGitignore bool
}

// Parser holds optional parser settings.
type Parser struct {
	ErrorOnEmpty    bool
	HasErrorOnEmpty bool
}

// Content holds optional content-reading settings.
type Content struct {
	RecordEncoding    bool
	HasRecordEncoding bool
}

// Execute holds optional execution settings.
type Execute struct {
	ExpectExecution    bool
	TimeoutMs          int
	HasExpectExecution bool
	HasTimeoutMs       bool
}

// Filter holds the optional inline script filter and its sandbox limits.
type Filter struct {
	Inline              string
	TimeoutMs           int
	InstructionLimit    int
	MemoryLimitKb       int
	HasInline           bool
	HasTimeoutMs        bool
	HasInstructionLimit bool
	HasMemoryLimitKb    bool
}

// Output holds optional output settings.
type Output struct {
	Lines    bool
	HasLines bool
}

// Errors holds the optional error-mode setting.
type Errors struct {
	Mode    string
	HasMode bool
}

// Logging holds optional logging settings.
type Logging struct {
	Level     string
	Format    string
	HasLevel  bool
	HasFormat bool
}

var presets = []string{"resolve", "inspect", "read", "execute"}

// Load parses and validates the CUE config at path.
// Required fields:
//   - configVersion: string, a supported version
//   - preset: string, one of resolve/inspect/read/execute
//
// Unknown top-level fields and known fields of the wrong kind are rejected.
func Load(path string) (Config, error) {
	v, err := compileCUE(path)
	if err != nil {
		return Config{}, err
	}
	if err := checkTopLevelFields(v); err != nil {
		return Config{}, err
	}
	if err := requireStringField(v, "configVersion"); err != nil {
		return Config{}, err
	}
	if err := requireStringField(v, "preset"); err != nil {
		return Config{}, err
	}

	var c Config
	if err := v.LookupPath(cue.ParsePath("configVersion")).Decode(&c.ConfigVersion); err != nil {
		return Config{}, fmt.Errorf("invalid value for configVersion: %v", err)
	}
	if err := v.LookupPath(cue.ParsePath("preset")).Decode(&c.Preset); err != nil {
		return Config{}, fmt.Errorf("invalid value for preset: %v", err)
	}
	if !IsSupportedConfigVersion(c.ConfigVersion) {
		return Config{}, fmt.Errorf("unsupported configVersion: %q (supported: %s)", c.ConfigVersion, SupportedConfigVersionsCSV())
	}
	if !knownPreset(c.Preset) {
		return Config{}, fmt.Errorf("unsupported preset: %q (supported: resolve, inspect, read, execute)", c.Preset)
	}

	if _, err = optStrings(v, "inputs", &c.Inputs); err != nil {
		return Config{}, err
	}
	if c.HasManifest, err = optString(v, "manifest", &c.Manifest); err != nil {
		return Config{}, err
	}
	if c.HasWorkers, err = optInt(v, "workers", &c.Workers); err != nil {
		return Config{}, err
	}
	if c.HasWorkers && c.Workers < 1 {
		return Config{}, fmt.Errorf("invalid workers: %d (must be at least 1)", c.Workers)
	}

	if c.Resolver, err = parseResolverSection(v); err != nil {
		return Config{}, err
	}
	if c.Parser, err = parseParserSection(v); err != nil {
		return Config{}, err
	}
	if c.Content, err = parseContentSection(v); err != nil {
		return Config{}, err
	}
	if c.Execute, err = parseExecuteSection(v); err != nil {
		return Config{}, err
	}
	if c.Filter, err = parseFilterSection(v); err != nil {
		return Config{}, err
	}
	if c.Output, err = parseOutputSection(v); err != nil {
		return Config{}, err
	}
	if c.Errors, err = parseErrorsSection(v); err != nil {
		return Config{}, err
	}
	if c.Logging, err = parseLoggingSection(v); err != nil {
		return Config{}, err
	}

	if c.Errors.HasMode && c.Errors.Mode != "keep-going" && c.Errors.Mode != "fail-fast" {
		return Config{}, fmt.Errorf("invalid errors.mode: %q (supported: keep-going, fail-fast)", c.Errors.Mode)
	}
	return c, nil
}

func knownPreset(name string) bool {
	for _, p := range presets {
		if name == p {
			return true
		}
	}
	return false
}

func parseResolverSection(v cue.Value) (Resolver, error) {
	var s Resolver
	rv, err := sectionValue(v, "resolver")
	if err != nil || !rv.Exists() {
		return s, err
	}
	if s.HasCapacity, err = optInt(v, "resolver.capacity", &s.Capacity); err != nil {
		return s, err
	}
	if s.HasGitignore, err = optBool(v, "resolver.gitignore", &s.Gitignore); err != nil {
		return s, err
	}
	return s, nil
}

func parseParserSection(v cue.Value) (Parser, error) {
	var s Parser
	pv, err := sectionValue(v, "parser")
	if err != nil || !pv.Exists() {
		return s, err
	}
	s.HasErrorOnEmpty, err = optBool(v, "parser.errorOnEmpty", &s.ErrorOnEmpty)
	return s, err
}

func parseContentSection(v cue.Value) (Content, error) {
	var s Content
	cv, err := sectionValue(v, "content")
	if err != nil || !cv.Exists() {
		return s, err
	}
	s.HasRecordEncoding, err = optBool(v, "content.recordEncoding", &s.RecordEncoding)
	return s, err
}

func parseExecuteSection(v cue.Value) (Execute, error) {
	var s Execute
	ev, err := sectionValue(v, "execute")
	if err != nil || !ev.Exists() {
		return s, err
	}
	if s.HasExpectExecution, err = optBool(v, "execute.expectExecution", &s.ExpectExecution); err != nil {
		return s, err
	}
	s.HasTimeoutMs, err = optInt(v, "execute.timeoutMs", &s.TimeoutMs)
	return s, err
}

func parseFilterSection(v cue.Value) (Filter, error) {
	var s Filter
	fv, err := sectionValue(v, "filter")
	if err != nil || !fv.Exists() {
		return s, err
	}
	if s.HasInline, err = optString(v, "filter.inline", &s.Inline); err != nil {
		return s, err
	}
	if s.HasTimeoutMs, err = optInt(v, "filter.timeoutMs", &s.TimeoutMs); err != nil {
		return s, err
	}
	if s.HasInstructionLimit, err = optInt(v, "filter.instructionLimit", &s.InstructionLimit); err != nil {
		return s, err
	}
	s.HasMemoryLimitKb, err = optInt(v, "filter.memoryLimitKb", &s.MemoryLimitKb)
	return s, err
}

func parseOutputSection(v cue.Value) (Output, error) {
	var s Output
	ov, err := sectionValue(v, "output")
	if err != nil || !ov.Exists() {
		return s, err
	}
	s.HasLines, err = optBool(v, "output.lines", &s.Lines)
	return s, err
}

func parseErrorsSection(v cue.Value) (Errors, error) {
	var s Errors
	ev, err := sectionValue(v, "errors")
	if err != nil || !ev.Exists() {
		return s, err
	}
	s.HasMode, err = optString(v, "errors.mode", &s.Mode)
	return s, err
}

func parseLoggingSection(v cue.Value) (Logging, error) {
	var s Logging
	lv, err := sectionValue(v, "logging")
	if err != nil || !lv.Exists() {
		return s, err
	}
	if s.HasLevel, err = optString(v, "logging.level", &s.Level); err != nil {
		return s, err
	}
	s.HasFormat, err = optString(v, "logging.format", &s.Format)
	return s, err
}
