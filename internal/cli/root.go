package cli

import (
	"context"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/dmaltby/logfilter/internal/dates"
	"github.com/dmaltby/logfilter/internal/filter"
)

// CLI is the root command structure for logfilter.
type CLI struct {
	Verbose bool `short:"v" help:"Show debug output (config files read, resolved specs, awk argv)"`

	Run     RunCmd     `cmd:"" default:"withargs" help:"Filter log files by date range and severity level"`
	Config  ConfigCmd  `cmd:"" help:"Show resolved configuration"`
	Version VersionCmd `cmd:"" help:"Show version information"`
}

// LineFilter is the external evaluator that performs the line matching for
// a resolved spec.
type LineFilter interface {
	Filter(ctx context.Context, spec *filter.Spec, files []string) error
}

// Globals holds shared state for all commands.
type Globals struct {
	Stdout io.Writer
	Stderr io.Writer
	Logger *zap.Logger

	// FlagsSet records which flags were explicitly provided, so commands
	// can distinguish CLI overrides from defaults.
	FlagsSet map[string]bool

	// Resolver is the date-resolution collaborator.
	Resolver dates.Resolver

	// Filter is the line evaluator; nil means build an awk runner lazily.
	Filter LineFilter
}

// FlagSet reports whether the named flag was given on the command line.
func (g *Globals) FlagSet(name string) bool {
	return g.FlagsSet[name]
}

// VersionCmd shows version information.
type VersionCmd struct{}

func (v *VersionCmd) Run(globals *Globals) error {
	fmt.Fprintf(globals.Stdout, "logfilter version %s (%s)\n", Version, Commit)
	return nil
}

// Version information (set at build time).
var (
	Version = "dev"
	Commit  = "none"
)
