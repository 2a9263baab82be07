package resolve

import (
	"fmt"

	"github.com/flarebyte/horus-scrolls/internal/pipeline"
)

const (
	exitCodeSuccess = 0
	exitCodeRunErr  = 1
	exitCodePartial = 2
)

type runExitError struct {
	code int
	msg  string
}

func (e runExitError) Error() string { return e.msg }
func (e runExitError) ExitCode() int { return e.code }

func firstErrorMessage(res pipeline.Result) string {
	for _, rec := range res.Errors {
		if rec.Err != nil {
			return fmt.Sprintf("%s (input %q)", rec.Err.Error(), rec.Input)
		}
	}
	return "pipeline failed"
}

// evaluateRunExit translates the run outcome into the process exit code.
// A clean run exits 0. Under fail-fast the first error record aborts the
// run, so it surfaces as the command failure. Under keep-going a run that
// produced nothing usable is a failure too; a partial result exits with a
// distinct code so scripts can tell it apart.
func evaluateRunExit(res pipeline.Result, mode string) error {
	if len(res.Errors) == 0 {
		return nil
	}
	if mode == pipeline.ErrorFailFast {
		return runExitError{code: exitCodeRunErr, msg: firstErrorMessage(res)}
	}
	if len(res.Records) == 0 {
		return runExitError{code: exitCodeRunErr, msg: "keep-going: no successful records"}
	}
	return runExitError{code: exitCodePartial, msg: fmt.Sprintf("completed with %d error record(s)", len(res.Errors))}
}
