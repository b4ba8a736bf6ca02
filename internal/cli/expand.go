package cli

import (
	"os"
	"path/filepath"
	"strings"
)

// ExpandPaths expands the configured logfiles value: environment variables
// and a leading ~ are substituted, then each word is globbed. Words that
// match nothing contribute nothing, like a shell null glob.
func ExpandPaths(words []string) []string {
	var files []string
	for _, word := range words {
		word = os.ExpandEnv(word)
		word = expandHome(word)
		matches, err := filepath.Glob(word)
		if err != nil {
			continue
		}
		files = append(files, matches...)
	}
	return files
}

func expandHome(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, strings.TrimPrefix(path, "~"))
		}
	}
	return path
}
