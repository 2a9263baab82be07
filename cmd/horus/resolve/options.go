package resolve

import (
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/flarebyte/horus-scrolls/internal/config"
	"github.com/flarebyte/horus-scrolls/internal/logger"
	"github.com/flarebyte/horus-scrolls/internal/pipeline"
	"github.com/flarebyte/horus-scrolls/internal/stage"
	"github.com/flarebyte/horus-scrolls/internal/stamp"
	"github.com/flarebyte/horus-scrolls/internal/walk"
)

// buildLogger wires the config's logging section to a zap-backed logger.
// --verbose wins, and without either the run stays silent. Every real
// logger carries a fresh run identifier.
func buildLogger(cfg config.Config, verbose bool) (logger.Logger, error) {
	var (
		log logger.Logger
		err error
	)
	switch {
	case verbose:
		log, err = logger.New("console", "debug")
	case cfg.Logging.HasLevel || cfg.Logging.HasFormat:
		log, err = logger.New(cfg.Logging.Format, cfg.Logging.Level)
	default:
		return logger.NewNoop(), nil
	}
	if err != nil {
		return nil, err
	}
	return log.With(zap.String("runId", uuid.NewString())), nil
}

// buildStageOptions maps the config onto stage collaborators and knobs.
// Absent sections keep their zero values so Normalized fills the defaults.
func buildStageOptions(cfg config.Config, log logger.Logger) stage.Options {
	opts := stage.Options{Log: log}
	if cfg.Resolver.HasCapacity {
		opts.Limiter = stage.NewLimiter(cfg.Resolver.Capacity)
	}
	if cfg.Resolver.HasGitignore {
		opts.Walker = walk.Walker{Gitignore: cfg.Resolver.Gitignore}
	}
	if cfg.Parser.HasErrorOnEmpty {
		opts.Parser.ErrorOnEmpty = cfg.Parser.ErrorOnEmpty
	}
	if cfg.Content.HasRecordEncoding {
		opts.Content.RecordEncoding = cfg.Content.RecordEncoding
	}
	if cfg.Execute.HasExpectExecution {
		opts.Exec.ExpectExecution = cfg.Execute.ExpectExecution
	}
	if cfg.Execute.HasTimeoutMs {
		opts.Exec.Timeout = time.Duration(cfg.Execute.TimeoutMs) * time.Millisecond
	}
	if cfg.Filter.HasInline {
		opts.Script.Source = cfg.Filter.Inline
	}
	if cfg.Filter.HasTimeoutMs {
		opts.Script.Timeout = time.Duration(cfg.Filter.TimeoutMs) * time.Millisecond
	}
	if cfg.Filter.HasInstructionLimit {
		opts.Script.MaxInstructions = cfg.Filter.InstructionLimit
	}
	if cfg.Filter.HasMemoryLimitKb {
		opts.Script.MaxMemoryKB = cfg.Filter.MemoryLimitKb
	}
	return opts
}

// buildRunOptions resolves workers and error mode, flags over config, and
// picks the stamper when timing is requested.
func buildRunOptions(cmd *cobra.Command, cfg config.Config, log logger.Logger) pipeline.RunOptions {
	workers := 1
	if cfg.HasWorkers {
		workers = cfg.Workers
	}
	if cmd.Flags().Changed("workers") {
		workers = flagWorkers
	}

	mode := ""
	if cfg.Errors.HasMode {
		mode = cfg.Errors.Mode
	}
	if flagErrorMode != "" {
		mode = flagErrorMode
	}

	var st stamp.Stamper
	if flagTiming {
		st = stamp.TimingStamper{}
	}

	return pipeline.RunOptions{
		Workers: workers,
		Mode:    mode,
		Stamper: st,
		Log:     log,
	}
}
