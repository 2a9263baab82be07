package resolve

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/flarebyte/horus-scrolls/internal/config"
	"github.com/flarebyte/horus-scrolls/internal/output"
	"github.com/flarebyte/horus-scrolls/internal/pipeline"
	"github.com/spf13/cobra"
)

var (
	flagConfig    string
	flagPreset    string
	flagWorkers   int
	flagErrorMode string
	flagOut       string
	flagPretty    bool
	flagLines     bool
	flagStats     bool
	flagTiming    bool
	flagProgress  bool
	flagVerbose   bool
)

// Cmd represents the `horus resolve` command.
var Cmd = &cobra.Command{
	Use:           "resolve [inputs...]",
	Short:         "Resolve paths and glob patterns into a record stream",
	Args:          cobra.ArbitraryArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Config{}
		if flagConfig != "" {
			loaded, err := config.Load(flagConfig)
			if err != nil {
				return err
			}
			cfg = loaded
		}

		inputs, err := collectInputs(cfg, flagConfig, args)
		if err != nil {
			return err
		}

		log, err := buildLogger(cfg, flagVerbose)
		if err != nil {
			return err
		}

		preset := cfg.Preset
		if cmd.Flags().Changed("preset") || preset == "" {
			preset = flagPreset
		}

		runOpts := buildRunOptions(cmd, cfg, log)
		reporter := newProgressReporter(flagProgress, runOpts.Stamper, cmd.ErrOrStderr())
		if reporter.enabled {
			runOpts.Stamper = reporter
		}

		p, err := pipeline.Build(preset, buildStageOptions(cfg, log), runOpts)
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()

		reporter.start()
		res := p.Run(ctx, inputs)
		reporter.stop()

		env := output.NewEnvelope(res.Records, res.Errors)
		if flagStats {
			env = env.WithStats(len(inputs))
		}

		lines := flagLines
		if !cmd.Flags().Changed("lines") && cfg.Output.HasLines {
			lines = cfg.Output.Lines
		}
		var data []byte
		if lines {
			data, err = output.RenderLines(env)
		} else {
			data, err = output.Render(env, flagPretty)
		}
		if err != nil {
			return err
		}
		if err := output.WriteTo(flagOut, data); err != nil {
			return err
		}

		return evaluateRunExit(res, runOpts.Mode)
	},
}

// collectInputs merges inputs from the config, its manifest, and CLI args,
// in that order. A relative manifest path is resolved against the config
// file's directory.
func collectInputs(cfg config.Config, cfgPath string, args []string) ([]string, error) {
	inputs := make([]string, 0, len(cfg.Inputs)+len(args))
	inputs = append(inputs, cfg.Inputs...)
	if cfg.HasManifest {
		p := cfg.Manifest
		if !filepath.IsAbs(p) && cfgPath != "" {
			p = filepath.Join(filepath.Dir(cfgPath), p)
		}
		fromManifest, err := config.LoadManifest(p)
		if err != nil {
			return nil, err
		}
		inputs = append(inputs, fromManifest...)
	}
	inputs = append(inputs, args...)
	if len(inputs) == 0 {
		return nil, fmt.Errorf("no inputs: pass patterns as arguments or set inputs in the config")
	}
	return inputs, nil
}

func init() {
	Cmd.Flags().StringVarP(&flagConfig, "config", "c", "", "Path to config file (.cue)")
	Cmd.Flags().StringVar(&flagPreset, "preset", "resolve", "Stage preset: resolve, inspect, read or execute")
	Cmd.Flags().IntVarP(&flagWorkers, "workers", "w", 1, "Concurrent workers per stage (1 = sequential, order-preserving)")
	Cmd.Flags().StringVar(&flagErrorMode, "error-mode", "", "Error handling: keep-going or fail-fast")
	Cmd.Flags().StringVarP(&flagOut, "out", "o", "-", "Output path ('-' for stdout)")
	Cmd.Flags().BoolVar(&flagPretty, "pretty", false, "Indent the JSON envelope")
	Cmd.Flags().BoolVar(&flagLines, "lines", false, "Emit one JSON object per line instead of an envelope")
	Cmd.Flags().BoolVar(&flagStats, "stats", false, "Include run statistics in the envelope")
	Cmd.Flags().BoolVar(&flagTiming, "timing", false, "Record per-stage elapsed time on each record")
	Cmd.Flags().BoolVar(&flagProgress, "progress", false, "Report progress on stderr while running")
	Cmd.Flags().BoolVarP(&flagVerbose, "verbose", "v", false, "Debug logging on stderr")
}
