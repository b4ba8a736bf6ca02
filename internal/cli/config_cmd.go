package cli

import (
	"encoding/json"
	"fmt"

	"github.com/olekukonko/tablewriter"

	"github.com/dmaltby/logfilter/internal/config"
)

// ConfigCmd shows the resolved configuration.
type ConfigCmd struct {
	Show ConfigShowCmd `cmd:"" default:"withargs" help:"Show resolved settings and where each came from"`
	Path ConfigPathCmd `cmd:"" help:"Show which config files are in effect"`
}

// ConfigShowCmd renders the resolved settings, optionally as they would
// apply to a specific log file (exercising the per-file section matching).
type ConfigShowCmd struct {
	JSON bool   `help:"Emit JSON instead of a table"`
	File string `arg:"" optional:"" help:"Resolve settings as they would apply to this log file"`
}

func (c *ConfigShowCmd) Run(globals *Globals) error {
	env, err := loadEnvironment(globals.Logger)
	if err != nil {
		return err
	}

	var stack []*config.Layer
	if c.File != "" {
		stack = env.FileStack(c.File)
	} else {
		stack = []*config.Layer{env.Global, env.Defaults}
	}
	merged := config.Merge(stack...)

	keys := []string{
		config.KeyAfter, config.KeyBefore, config.KeyBatch, config.KeyDateFmt,
		config.KeyLevel, config.KeyLogFiles, config.KeyProgram, config.KeyProgFile,
	}

	if c.JSON {
		type entry struct {
			Value  string `json:"value"`
			Source string `json:"source"`
		}
		resolved := make(map[string]entry, len(keys))
		for _, key := range keys {
			value, ok := merged.Get(key)
			if !ok {
				continue
			}
			source, _ := config.SourceOf(key, stack...)
			resolved[key] = entry{Value: value, Source: source}
		}
		enc := json.NewEncoder(globals.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(map[string]any{
			"file":     c.File,
			"settings": resolved,
		})
	}

	table := tablewriter.NewTable(globals.Stdout)
	table.Header("Setting", "Value", "Source")
	for _, key := range keys {
		value, ok := merged.Get(key)
		if !ok {
			continue
		}
		source, _ := config.SourceOf(key, stack...)
		if err := table.Append([]string{key, value, source}); err != nil {
			return err
		}
	}
	return table.Render()
}

// ConfigPathCmd prints the config files found on the search path.
type ConfigPathCmd struct{}

func (c *ConfigPathCmd) Run(globals *Globals) error {
	printFound := func(label, path string, candidates []string) {
		if path != "" {
			fmt.Fprintf(globals.Stdout, "%s: %s\n", label, path)
			return
		}
		fmt.Fprintf(globals.Stdout, "%s: not found (searched:)\n", label)
		for _, candidate := range candidates {
			fmt.Fprintf(globals.Stdout, "  %s\n", candidate)
		}
	}

	globalPath, _ := config.FindFirst(config.SearchPath(config.GlobalConfigName))
	printFound("global config", globalPath, config.SearchPath(config.GlobalConfigName))

	sectionsPath, _ := config.FindFirst(config.SearchPath(config.SectionsConfigName))
	printFound("per-logfile config", sectionsPath, config.SearchPath(config.SectionsConfigName))
	return nil
}
