package cli

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/dmaltby/logfilter/internal/dates"
	"github.com/dmaltby/logfilter/internal/domain"
	"github.com/dmaltby/logfilter/internal/filter"
)

// echoResolver returns expressions unchanged as stamps.
type echoResolver struct{}

func (echoResolver) Resolve(_ context.Context, expr, _ string) (string, error) {
	return expr, nil
}

// captureFilter records the spec and files of every Filter call.
type captureFilter struct {
	specs []*filter.Spec
	files [][]string
}

func (c *captureFilter) Filter(_ context.Context, spec *filter.Spec, files []string) error {
	c.specs = append(c.specs, spec)
	c.files = append(c.files, files)
	return nil
}

// testXDG points the XDG search path at temp dirs and writes the given
// config files into the home-level logfilter directory.
func testXDG(t *testing.T, globalConf, sectionsConf string) {
	t.Helper()
	home := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", home)
	t.Setenv("XDG_CONFIG_DIRS", t.TempDir())

	dir := filepath.Join(home, "logfilter")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	if globalConf != "" {
		require.NoError(t, os.WriteFile(filepath.Join(dir, "config"), []byte(globalConf), 0o644))
	}
	if sectionsConf != "" {
		require.NoError(t, os.WriteFile(filepath.Join(dir, "logfiles.conf"), []byte(sectionsConf), 0o644))
	}
}

func testGlobals(capture *captureFilter) *Globals {
	var sink strings.Builder
	return &Globals{
		Stdout:   &sink,
		Stderr:   &sink,
		Logger:   zap.NewNop(),
		FlagsSet: map[string]bool{},
		Resolver: echoResolver{},
		Filter:   capture,
	}
}

func TestRunEndToEndLevelResolution(t *testing.T) {
	// Defaults say WARNING, the global config says INFO, and a section
	// raises *.log files to ERROR.
	testXDG(t,
		"level = INFO\n",
		"[*.log]\nlevel = ERROR\n",
	)

	t.Run("section beats global for matching file", func(t *testing.T) {
		capture := &captureFilter{}
		cmd := &RunCmd{Files: []string{"app.log"}}
		require.NoError(t, cmd.Run(testGlobals(capture)))

		require.Len(t, capture.specs, 1)
		assert.Equal(t, domain.LevelError, capture.specs[0].Level)
	})

	t.Run("global applies when no section matches", func(t *testing.T) {
		capture := &captureFilter{}
		cmd := &RunCmd{Files: []string{"other.txt"}}
		require.NoError(t, cmd.Run(testGlobals(capture)))

		require.Len(t, capture.specs, 1)
		assert.Equal(t, domain.LevelInfo, capture.specs[0].Level)
	})

	t.Run("CLI level beats everything", func(t *testing.T) {
		capture := &captureFilter{}
		cmd := &RunCmd{Files: []string{"app.log"}, Level: "debug"}
		globals := testGlobals(capture)
		globals.FlagsSet["level"] = true
		require.NoError(t, cmd.Run(globals))

		require.Len(t, capture.specs, 1)
		assert.Equal(t, domain.LevelDebug, capture.specs[0].Level)
	})
}

func TestRunMissingConfigsFallBackToDefaults(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("XDG_CONFIG_DIRS", t.TempDir())

	capture := &captureFilter{}
	cmd := &RunCmd{Files: []string{"app.log"}}
	require.NoError(t, cmd.Run(testGlobals(capture)))

	require.Len(t, capture.specs, 1)
	spec := capture.specs[0]
	assert.Equal(t, domain.LevelWarning, spec.Level)
	require.NotNil(t, spec.After)
	assert.Equal(t, "today-3days", *spec.After)
	require.NotNil(t, spec.Before)
	assert.Equal(t, "today+1day", *spec.Before)
	assert.Equal(t, "$1 > after && $1 <= before && $3 ~ level", spec.Program)
}

func TestRunCLIOverridesAreIndependent(t *testing.T) {
	testXDG(t, "before = today+2days\n", "")

	capture := &captureFilter{}
	cmd := &RunCmd{Files: []string{"app.log"}, After: "yesterday"}
	globals := testGlobals(capture)
	globals.FlagsSet["after"] = true
	require.NoError(t, cmd.Run(globals))

	require.Len(t, capture.specs, 1)
	assert.Equal(t, "yesterday", *capture.specs[0].After)
	// --after must not disturb the configured before.
	assert.Equal(t, "today+2days", *capture.specs[0].Before)
}

func TestRunSectionBatchIsIgnored(t *testing.T) {
	// batch inside a pattern section is program-wide and must not apply.
	testXDG(t, "", "[*.log]\nbatch = true\nlevel = ERROR\n")

	var out strings.Builder
	capture := &captureFilter{}
	globals := testGlobals(capture)
	globals.Stdout = &out

	cmd := &RunCmd{Files: []string{"app.log"}}
	require.NoError(t, cmd.Run(globals))

	// Headers still print: the resolved batch stayed false.
	assert.Contains(t, out.String(), "==> app.log <==")
	require.Len(t, capture.specs, 1)
	assert.Equal(t, domain.LevelError, capture.specs[0].Level)
}

func TestRunDefaultSectionProgramWide(t *testing.T) {
	t.Run("batch in DEFAULT suppresses headers", func(t *testing.T) {
		// DEFAULT sits between the global config and the CLI, so its
		// batch=true beats the global batch=false.
		testXDG(t, "batch = false\n", "[DEFAULT]\nbatch = true\n")

		var out strings.Builder
		capture := &captureFilter{}
		globals := testGlobals(capture)
		globals.Stdout = &out

		cmd := &RunCmd{Files: []string{"app.log"}}
		require.NoError(t, cmd.Run(globals))

		require.Len(t, capture.specs, 1)
		assert.NotContains(t, out.String(), "==>", "DEFAULT batch=true must suppress headers")
	})

	t.Run("CLI --no-batch beats DEFAULT batch", func(t *testing.T) {
		testXDG(t, "", "[DEFAULT]\nbatch = true\n")

		var out strings.Builder
		capture := &captureFilter{}
		globals := testGlobals(capture)
		globals.Stdout = &out
		globals.FlagsSet["batch"] = true

		cmd := &RunCmd{Files: []string{"app.log"}, Batch: false}
		require.NoError(t, cmd.Run(globals))

		assert.Contains(t, out.String(), "==> app.log <==")
	})

	t.Run("logfiles in DEFAULT feeds input selection", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "a.log"), nil, 0o644))
		require.NoError(t, os.WriteFile(filepath.Join(dir, "b.log"), nil, 0o644))

		testXDG(t, "", "[DEFAULT]\nlogfiles = "+filepath.Join(dir, "*.log")+"\n")

		capture := &captureFilter{}
		cmd := &RunCmd{}
		require.NoError(t, cmd.Run(testGlobals(capture)))

		require.Len(t, capture.files, 2)
		assert.Equal(t, []string{filepath.Join(dir, "a.log")}, capture.files[0])
		assert.Equal(t, []string{filepath.Join(dir, "b.log")}, capture.files[1])
	})
}

func TestRunPerFileErrorsContinue(t *testing.T) {
	// The section gives bad.log an unparseable level; good.log still runs.
	testXDG(t, "", "[bad.log]\nlevel = nonsense\n")

	var errOut strings.Builder
	capture := &captureFilter{}
	globals := testGlobals(capture)
	globals.Stderr = &errOut

	cmd := &RunCmd{Files: []string{"bad.log", "good.log"}}
	err := cmd.Run(globals)
	assert.ErrorIs(t, err, errFilesFailed)

	require.Len(t, capture.specs, 1)
	assert.Equal(t, [][]string{{"good.log"}}, capture.files)
	assert.Contains(t, errOut.String(), "bad.log")
	assert.Contains(t, errOut.String(), "nonsense")
}

func TestRunFatalOnGlobalConfigError(t *testing.T) {
	testXDG(t, "level = INFO\nbroken line\n", "")

	capture := &captureFilter{}
	cmd := &RunCmd{Files: []string{"app.log"}}
	err := cmd.Run(testGlobals(capture))

	require.Error(t, err)
	assert.Empty(t, capture.specs, "no file may be processed after a fatal config error")
}

func TestRunNoFilesIsCleanExit(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("XDG_CONFIG_DIRS", t.TempDir())

	capture := &captureFilter{}
	cmd := &RunCmd{}
	require.NoError(t, cmd.Run(testGlobals(capture)))
	assert.Empty(t, capture.specs)
}

func TestRunConfiguredLogfiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.log"), nil, 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.log"), nil, 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "c.txt"), nil, 0o644))

	testXDG(t, "logfiles = "+filepath.Join(dir, "*.log")+"\n", "")

	capture := &captureFilter{}
	cmd := &RunCmd{}
	require.NoError(t, cmd.Run(testGlobals(capture)))

	require.Len(t, capture.files, 2)
	assert.Equal(t, []string{filepath.Join(dir, "a.log")}, capture.files[0])
	assert.Equal(t, []string{filepath.Join(dir, "b.log")}, capture.files[1])
}

func TestRunDateResolutionErrorIsPerFile(t *testing.T) {
	testXDG(t, "", "[*.log]\nafter = gibberish\n")

	capture := &captureFilter{}
	globals := testGlobals(capture)
	globals.Resolver = rejectResolver{bad: "gibberish"}
	var errOut strings.Builder
	globals.Stderr = &errOut

	cmd := &RunCmd{Files: []string{"app.log", "notes.txt"}}
	err := cmd.Run(globals)
	assert.ErrorIs(t, err, errFilesFailed)

	// notes.txt used the defaults and still ran.
	require.Len(t, capture.files, 1)
	assert.Equal(t, []string{"notes.txt"}, capture.files[0])
	assert.Contains(t, errOut.String(), "gibberish")
}

// rejectResolver fails one expression and echoes the rest.
type rejectResolver struct {
	bad string
}

func (r rejectResolver) Resolve(_ context.Context, expr, format string) (string, error) {
	if expr == r.bad {
		return "", &dates.ResolutionError{Expr: expr, Format: format, Reason: "invalid date"}
	}
	return expr, nil
}
