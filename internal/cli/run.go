package cli

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/dmaltby/logfilter/internal/awk"
	"github.com/dmaltby/logfilter/internal/config"
	"github.com/dmaltby/logfilter/internal/domain"
	"github.com/dmaltby/logfilter/internal/filter"
	"github.com/dmaltby/logfilter/internal/output"
)

// RunCmd filters the given log files (or the configured logfiles) through
// the resolved per-file filter specs.
type RunCmd struct {
	After    string   `short:"a" placeholder:"DATE" help:"Keep lines dated after DATE (e.g. 'today-1week')"`
	Before   string   `short:"b" placeholder:"DATE" help:"Keep lines dated at or before DATE"`
	Level    string   `short:"l" placeholder:"LEVEL" help:"Minimum severity to keep; unambiguous prefixes accepted (e.g. 'err')"`
	Batch    bool     `negatable:"" help:"Suppress the per-file '==> file <==' headers"`
	Program  string   `placeholder:"TEXT" help:"Filter program text handed to the line evaluator"`
	ProgFile string   `name:"progfile" placeholder:"PATH" help:"File containing the filter program (wins over --program)"`
	Files    []string `arg:"" optional:"" name:"file" help:"Log files to filter (default: the configured logfiles)"`
}

// errFilesFailed aggregates per-file failures already reported on stderr.
var errFilesFailed = errors.New("one or more files could not be filtered")

// Run implements the driver: global load is fatal, per-file failures are
// reported and skipped, and the exit status goes non-zero once any file
// failed.
func (r *RunCmd) Run(globals *Globals) error {
	ctx := context.Background()

	env, err := loadEnvironment(globals.Logger)
	if err != nil {
		return err
	}

	ov, err := r.overrides(globals)
	if err != nil {
		return err
	}

	// Program-wide settings (batch, logfiles) may come from the DEFAULT
	// section too; it sits between the global config and the CLI in the
	// precedence chain. Only pattern sections are barred from them.
	baseSettings, err := config.FromLayer(config.Merge(env.SectionDefaults, env.Global, env.Defaults))
	if err != nil {
		return err
	}
	batch := baseSettings.Batch
	if ov.Batch != nil {
		batch = *ov.Batch
	}

	files := r.Files
	if len(files) == 0 {
		files = ExpandPaths(baseSettings.LogFiles)
	}
	if len(files) == 0 {
		globals.Logger.Debug("no input files after expansion")
		return nil
	}

	lineFilter := globals.Filter
	if lineFilter == nil {
		runner, err := awk.NewRunner(globals.Stdout, globals.Stderr)
		if err != nil {
			return err
		}
		lineFilter = runner
	}

	builder := &filter.Builder{Dates: globals.Resolver}
	emitter := output.NewEmitter(globals.Stdout, globals.Stderr)

	failed := false
	for _, file := range files {
		spec, err := env.ResolveSpec(ctx, file, builder, ov)
		if err != nil {
			emitter.Errorf("%s: %v", file, err)
			failed = true
			continue
		}
		globals.Logger.Debug("resolved spec",
			zap.String("file", file),
			zap.Stringer("level", spec.Level),
			zap.String("program", spec.Program),
		)
		if !batch {
			emitter.FileHeader(file)
		}
		if err := lineFilter.Filter(ctx, spec, []string{file}); err != nil {
			emitter.Errorf("%s: %v", file, err)
			failed = true
		}
	}
	if failed {
		return errFilesFailed
	}
	return nil
}

// overrides collects the explicitly given flags into per-key overrides.
func (r *RunCmd) overrides(globals *Globals) (filter.Overrides, error) {
	var ov filter.Overrides
	if globals.FlagSet("after") {
		ov.After = &r.After
	}
	if globals.FlagSet("before") {
		ov.Before = &r.Before
	}
	if globals.FlagSet("batch") {
		ov.Batch = &r.Batch
	}
	if globals.FlagSet("program") {
		ov.Program = &r.Program
	}
	if globals.FlagSet("progfile") {
		ov.ProgFile = &r.ProgFile
	}
	if globals.FlagSet("level") {
		lvl, err := domain.ParseLevel(r.Level)
		if err != nil {
			return ov, err
		}
		ov.Level = &lvl
	}
	return ov, nil
}

// Environment is the configuration state read once per invocation.
type Environment struct {
	Defaults        *config.Layer
	Global          *config.Layer
	GlobalPath      string
	SectionDefaults *config.Layer
	Sections        []config.Section
	SectionsPath    string
}

// loadEnvironment reads defaults, the global config, and the per-logfile
// sections. Any error here is fatal: these sources affect every file.
func loadEnvironment(logger *zap.Logger) (*Environment, error) {
	env := &Environment{Defaults: config.Defaults()}

	var err error
	env.Global, env.GlobalPath, err = config.LoadGlobal()
	if err != nil {
		return nil, err
	}
	if env.GlobalPath != "" {
		logger.Debug("read global config", zap.String("path", env.GlobalPath))
	}

	env.SectionDefaults, env.Sections, env.SectionsPath, err = config.LoadGlobalSections()
	if err != nil {
		return nil, err
	}
	if env.SectionsPath != "" {
		logger.Debug("read per-logfile config",
			zap.String("path", env.SectionsPath),
			zap.Int("sections", len(env.Sections)),
		)
	}
	return env, nil
}

// FileStack returns the precedence-ordered layers for one file, most
// authoritative first: matching sections, DEFAULT section, global config,
// built-in defaults.
func (env *Environment) FileStack(file string) []*config.Layer {
	stack := config.FileStack(file, env.SectionDefaults, env.Sections)
	return append(stack, env.Global, env.Defaults)
}

// ResolveSpec builds the final filter spec for one file. Errors here are
// scoped to the file.
func (env *Environment) ResolveSpec(ctx context.Context, file string, builder *filter.Builder, ov filter.Overrides) (*filter.Spec, error) {
	settings, err := config.FromLayer(config.Merge(env.FileStack(file)...))
	if err != nil {
		return nil, err
	}
	return builder.Build(ctx, settings, ov)
}
