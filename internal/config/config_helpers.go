package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
)

// compileCUE loads and compiles a CUE file at the given path.
func compileCUE(path string) (cue.Value, error) {
	if filepath.Ext(path) != ".cue" {
		return cue.Value{}, errors.New("unsupported config format: expected .cue")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cue.Value{}, fmt.Errorf("failed to read config: %w", err)
	}
	ctx := cuecontext.New()
	v := ctx.CompileBytes(data)
	if err := v.Err(); err != nil {
		return cue.Value{}, fmt.Errorf("invalid config: %v", err)
	}
	return v, nil
}

// knownTopLevel is the set of accepted top-level config fields. Anything
// outside it is most likely a typo, so Load rejects it outright.
var knownTopLevel = map[string]bool{
	"configVersion": true,
	"preset":        true,
	"inputs":        true,
	"manifest":      true,
	"workers":       true,
	"resolver":      true,
	"parser":        true,
	"content":       true,
	"execute":       true,
	"filter":        true,
	"output":        true,
	"errors":        true,
	"logging":       true,
}

func checkTopLevelFields(v cue.Value) error {
	it, err := v.Fields()
	if err != nil {
		return fmt.Errorf("invalid config: %v", err)
	}
	for it.Next() {
		if name := it.Selector().Unquoted(); !knownTopLevel[name] {
			return fmt.Errorf("unknown top-level field: %s", name)
		}
	}
	return nil
}

func requireStringField(v cue.Value, name string) error {
	f := v.LookupPath(cue.ParsePath(name))
	if !f.Exists() {
		return fmt.Errorf("missing required field: %s", name)
	}
	if f.Kind() != cue.StringKind {
		return fmt.Errorf("invalid type for field: %s (expected string)", name)
	}
	return nil
}

// sectionValue looks up an optional struct-valued field. A present field of
// any other kind is an error.
func sectionValue(v cue.Value, name string) (cue.Value, error) {
	f := v.LookupPath(cue.ParsePath(name))
	if f.Exists() && f.Kind() != cue.StructKind {
		return f, fmt.Errorf("invalid type for field: %s (expected struct)", name)
	}
	return f, nil
}

// The opt* helpers read an optional field by its dotted path from the config
// root. An absent field reports false; a present field of the wrong kind is
// an error, never a silent skip.

func optString(v cue.Value, name string, dst *string) (bool, error) {
	f := v.LookupPath(cue.ParsePath(name))
	if !f.Exists() {
		return false, nil
	}
	if f.Kind() != cue.StringKind || f.Decode(dst) != nil {
		return false, fmt.Errorf("invalid type for field: %s (expected string)", name)
	}
	return true, nil
}

func optInt(v cue.Value, name string, dst *int) (bool, error) {
	f := v.LookupPath(cue.ParsePath(name))
	if !f.Exists() {
		return false, nil
	}
	if f.Kind() != cue.IntKind || f.Decode(dst) != nil {
		return false, fmt.Errorf("invalid type for field: %s (expected int)", name)
	}
	return true, nil
}

func optBool(v cue.Value, name string, dst *bool) (bool, error) {
	f := v.LookupPath(cue.ParsePath(name))
	if !f.Exists() {
		return false, nil
	}
	if f.Kind() != cue.BoolKind || f.Decode(dst) != nil {
		return false, fmt.Errorf("invalid type for field: %s (expected bool)", name)
	}
	return true, nil
}

func optStrings(v cue.Value, name string, dst *[]string) (bool, error) {
	f := v.LookupPath(cue.ParsePath(name))
	if !f.Exists() {
		return false, nil
	}
	if f.Kind() != cue.ListKind || f.Decode(dst) != nil {
		return false, fmt.Errorf("invalid type for field: %s (expected list of strings)", name)
	}
	return true, nil
}
