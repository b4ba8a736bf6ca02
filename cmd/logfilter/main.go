package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"
	"github.com/benbjohnson/clock"
	"go.uber.org/zap"

	"github.com/dmaltby/logfilter/internal/cli"
	"github.com/dmaltby/logfilter/internal/dates"
)

func main() {
	var c cli.CLI

	ctx := kong.Parse(&c,
		kong.Name("logfilter"),
		kong.Description("Filter log files by date range and severity level.\n\n"+
			"Settings come from built-in defaults, the XDG config files, per-file\n"+
			"[glob] sections in logfiles.conf, and finally command-line flags."),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
			Summary: true,
		}),
	)

	// Record which flags were explicitly provided so commands can
	// distinguish CLI overrides from configured values.
	flagsSet := map[string]bool{}
	for _, p := range ctx.Path {
		if p.Flag != nil {
			flagsSet[p.Flag.Name] = true
		}
	}

	logger := zap.NewNop()
	if c.Verbose || os.Getenv("LF_DEBUG") != "" {
		if dev, err := zap.NewDevelopment(); err == nil {
			logger = dev
		}
	}
	defer logger.Sync()

	globals := &cli.Globals{
		Stdout:   os.Stdout,
		Stderr:   os.Stderr,
		Logger:   logger,
		FlagsSet: flagsSet,
		Resolver: dates.NewSystemResolver(clock.New()),
	}

	if err := ctx.Run(globals); err != nil {
		fmt.Fprintf(os.Stderr, "logfilter: %v\n", err)
		os.Exit(1)
	}
}
