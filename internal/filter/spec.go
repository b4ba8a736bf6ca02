// Package filter turns resolved configuration into an executable per-file
// filter specification.
package filter

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/dmaltby/logfilter/internal/config"
	"github.com/dmaltby/logfilter/internal/dates"
	"github.com/dmaltby/logfilter/internal/domain"
)

// ErrMissingProgram is returned when neither program nor progfile resolves
// to filter program text.
var ErrMissingProgram = errors.New("no filter program: set program or progfile")

// Spec is the fully resolved filter for one input file, ready to hand to
// the line evaluator. A nil After or Before means that side of the date
// range is unbounded.
type Spec struct {
	After   *string
	Before  *string
	Level   domain.Level
	DateFmt string
	Program string
}

// Overrides carries CLI-supplied values. Each field is independent: a set
// field overrides only its own setting, everything else resolves from
// config. Nil means the flag was not given.
type Overrides struct {
	After    *string
	Before   *string
	Batch    *bool
	Level    *domain.Level
	Program  *string
	ProgFile *string
}

// Builder resolves settings into Specs. Dates is the external
// date-resolution collaborator; ReadFile loads progfile contents and
// defaults to os.ReadFile.
type Builder struct {
	Dates    dates.Resolver
	ReadFile func(string) ([]byte, error)
}

// Build produces the final spec for one file: CLI overrides win per key,
// date expressions resolve through the date collaborator using the resolved
// datefmt, and a defined progfile supplies the program text in preference
// to an inline program.
func (b *Builder) Build(ctx context.Context, settings *config.Settings, ov Overrides) (*Spec, error) {
	after := settings.After
	before := settings.Before
	level := settings.Level
	program := settings.Program
	progFile := settings.ProgFile

	if ov.After != nil {
		after = *ov.After
	}
	if ov.Before != nil {
		before = *ov.Before
	}
	if ov.Level != nil {
		level = *ov.Level
	}
	if ov.Program != nil {
		program = *ov.Program
	}
	if ov.ProgFile != nil {
		progFile = *ov.ProgFile
	}

	spec := &Spec{
		Level:   level,
		DateFmt: settings.DateFmt,
	}

	var err error
	if spec.After, err = b.resolveBound(ctx, after, settings.DateFmt); err != nil {
		return nil, err
	}
	if spec.Before, err = b.resolveBound(ctx, before, settings.DateFmt); err != nil {
		return nil, err
	}

	if spec.Program, err = b.resolveProgram(program, progFile); err != nil {
		return nil, err
	}
	return spec, nil
}

// resolveBound resolves one date expression, mapping empty text to an
// unbounded (nil) side rather than any sentinel stamp.
func (b *Builder) resolveBound(ctx context.Context, expr, format string) (*string, error) {
	if expr == "" {
		return nil, nil
	}
	stamp, err := b.Dates.Resolve(ctx, expr, format)
	if err != nil {
		return nil, err
	}
	return &stamp, nil
}

// resolveProgram picks the program text: progfile contents when set,
// otherwise the inline program.
func (b *Builder) resolveProgram(program, progFile string) (string, error) {
	if progFile != "" {
		readFile := b.ReadFile
		if readFile == nil {
			readFile = os.ReadFile
		}
		text, err := readFile(progFile)
		if err != nil {
			return "", fmt.Errorf("read progfile %s: %w", progFile, err)
		}
		return string(text), nil
	}
	if program != "" {
		return program, nil
	}
	return "", ErrMissingProgram
}
