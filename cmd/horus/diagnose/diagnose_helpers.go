package diagnose

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/flarebyte/horus-scrolls/internal/globber"
	"github.com/flarebyte/horus-scrolls/internal/output"
	"github.com/flarebyte/horus-scrolls/internal/pipeline"
	"github.com/flarebyte/horus-scrolls/internal/record"
	"github.com/flarebyte/horus-scrolls/internal/resolve"
	"github.com/flarebyte/horus-scrolls/internal/stage"
	"github.com/flarebyte/horus-scrolls/internal/stream"
)

var (
	labelStyle = color.New(color.FgCyan, color.Bold)
	okStyle    = color.New(color.FgGreen)
	badStyle   = color.New(color.FgRed)
)

func label(w io.Writer, name, value string) {
	fmt.Fprintf(w, "%s %s\n", labelStyle.Sprintf("%-12s", name+":"), value)
}

func statusLine(w io.Writer, name, value string, ok bool) {
	style := okStyle
	if !ok {
		style = badStyle
	}
	fmt.Fprintf(w, "%s %s\n", labelStyle.Sprintf("%-12s", name+":"), style.Sprint(value))
}

// explainPattern walks one input through the same decisions the resolver
// makes and narrates each one.
func explainPattern(cmd *cobra.Command, pattern string) error {
	w := cmd.OutOrStdout()
	label(w, "pattern", pattern)

	probe := stage.StatProbe{}
	if !globber.HasMeta(pattern) {
		label(w, "kind", "literal path (no glob metacharacters)")
		if probe.Exists(cmd.Context(), pattern) {
			statusLine(w, "exists", "yes", true)
		} else {
			statusLine(w, "exists", "no", false)
			fmt.Fprintln(w, "a missing literal path is skipped silently: a run would emit zero records")
		}
		return nil
	}
	label(w, "kind", "glob pattern")

	eng := globber.Doublestar{}
	if err := eng.Validate(pattern); err != nil {
		statusLine(w, "syntax", fmt.Sprintf("invalid: %v", err), false)
		fmt.Fprintln(w, "a run would emit one error record (kind syntax) for this input")
		return nil
	}
	statusLine(w, "syntax", "valid", true)

	root, expr := resolve.SplitRoot(pattern)
	label(w, "scan root", root)
	label(w, "expression", expr)

	if !probe.Exists(cmd.Context(), root) {
		statusLine(w, "root", "missing", false)
		fmt.Fprintln(w, "a run would emit one error record (kind root-missing) for this input")
		return nil
	}
	statusLine(w, "root", "exists", true)

	if !flagMatches {
		return nil
	}
	stg, err := stage.New(stage.NameResolver, stage.Options{}.Normalized())
	if err != nil {
		return err
	}
	matched := 0
	for _, rec := range stream.Collect(stream.Apply(cmd.Context(), stg, stream.Of(pattern))) {
		if rec.Err != nil {
			statusLine(w, "error", rec.Err.Error(), false)
			continue
		}
		matched++
		fmt.Fprintf(w, "  %s\n", rec.ResolvedPath)
	}
	label(w, "matches", strconv.Itoa(matched))
	return nil
}

// runSingleStage feeds the given inputs through one named stage and prints
// the resulting envelope, errored records included.
func runSingleStage(cmd *cobra.Command, name string, inputs []string) error {
	if len(inputs) == 0 {
		return errors.New("missing required flag: --input")
	}
	stg, err := stage.New(name, stage.Options{}.Normalized())
	if err != nil {
		return err
	}
	out := stream.Collect(stream.Apply(cmd.Context(), stg, stream.Of(inputs...)))
	records, errored := partition(out)
	data, err := output.Render(output.NewEnvelope(records, errored), false)
	if err != nil {
		return err
	}
	_, err = cmd.OutOrStdout().Write(data)
	return err
}

func partition(recs []record.Record) (clean, errored []record.Record) {
	for _, rec := range recs {
		if rec.Err != nil {
			errored = append(errored, rec)
		} else {
			clean = append(clean, rec)
		}
	}
	return clean, errored
}

// reportEnvironment prints basic health checks and the stage chain of every
// preset.
func reportEnvironment(cmd *cobra.Command) error {
	w := cmd.OutOrStdout()

	cwd, err := os.Getwd()
	if err != nil {
		statusLine(w, "workdir", err.Error(), false)
	} else {
		statusLine(w, "workdir", cwd, true)
	}

	probe := stage.StatProbe{}
	probeOK := probe.Exists(cmd.Context(), ".")
	statusLine(w, "stat probe", checkWord(probeOK), probeOK)

	if f, err := os.CreateTemp("", "horus-diag-*"); err != nil {
		statusLine(w, "temp dir", err.Error(), false)
	} else {
		_ = f.Close()
		_ = os.Remove(f.Name())
		statusLine(w, "temp dir", "writable", true)
	}

	if _, err := os.Stat(".gitignore"); err == nil {
		label(w, "gitignore", "present (scans can honor it)")
	} else {
		label(w, "gitignore", "absent")
	}

	for _, preset := range []string{pipeline.PresetResolve, pipeline.PresetInspect, pipeline.PresetRead, pipeline.PresetExecute} {
		p, err := pipeline.Build(preset, stage.Options{}, pipeline.RunOptions{})
		if err != nil {
			return err
		}
		label(w, preset, strings.Join(p.Stages(), " -> "))
	}
	return nil
}

func checkWord(ok bool) string {
	if ok {
		return "ok"
	}
	return "failed"
}
