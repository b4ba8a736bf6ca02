// Package awk adapts a resolved filter spec onto an awk invocation, the
// external evaluator that does the actual line matching.
package awk

import (
	"context"
	"fmt"
	"io"
	"os/exec"

	"github.com/dmaltby/logfilter/internal/filter"
)

// unboundedBefore compares greater than any UTF-8 datestamp in awk's string
// ordering. It exists only at this process boundary; the spec itself keeps
// unbounded sides as nil.
const unboundedBefore = "\xff"

// Runner executes awk over input files with the spec's variables bound.
type Runner struct {
	Path   string
	Stdout io.Writer
	Stderr io.Writer
}

// NewRunner locates awk on PATH.
func NewRunner(stdout, stderr io.Writer) (*Runner, error) {
	path, err := exec.LookPath("awk")
	if err != nil {
		return nil, fmt.Errorf("awk: command not found")
	}
	return &Runner{Path: path, Stdout: stdout, Stderr: stderr}, nil
}

// Argv builds the awk argument list for a spec:
//
//	awk -v after=A -v before=B -v level=REGEX -- program files...
//
// The level variable is the alternation of every name at or above the
// threshold, so the default program's `$3 ~ level` implements the ordinal
// comparison.
func Argv(spec *filter.Spec, files []string) []string {
	after := ""
	if spec.After != nil {
		after = *spec.After
	}
	before := unboundedBefore
	if spec.Before != nil {
		before = *spec.Before
	}

	argv := []string{
		"-v", "after=" + after,
		"-v", "before=" + before,
		"-v", "level=" + spec.Level.Alternation(),
		"--", spec.Program,
	}
	return append(argv, files...)
}

// Filter runs awk over files. Matching lines go to Stdout; a non-zero exit
// or start failure is returned to the caller.
func (r *Runner) Filter(ctx context.Context, spec *filter.Spec, files []string) error {
	cmd := exec.CommandContext(ctx, r.Path, Argv(spec, files)...)
	cmd.Stdout = r.Stdout
	cmd.Stderr = r.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("awk: %w", err)
	}
	return nil
}
