package config

import (
	"os"
	"path/filepath"
	"strings"
)

const appDir = "logfilter"

// GlobalConfigName is the global config file name under the search path.
const GlobalConfigName = "config"

// SectionsConfigName is the per-logfile config file name under the search path.
const SectionsConfigName = "logfiles.conf"

// SearchPath returns the candidate paths for resource in XDG precedence
// order: $XDG_CONFIG_HOME (default ~/.config) first, then each directory of
// $XDG_CONFIG_DIRS (default /etc/xdg) in listed order.
func SearchPath(resource string) []string {
	home := os.Getenv("XDG_CONFIG_HOME")
	if home == "" {
		home = filepath.Join(userHome(), ".config")
	}

	dirs := []string{home}
	configDirs := os.Getenv("XDG_CONFIG_DIRS")
	if configDirs == "" {
		configDirs = "/etc/xdg"
	}
	for _, dir := range strings.Split(configDirs, string(os.PathListSeparator)) {
		if dir != "" {
			dirs = append(dirs, dir)
		}
	}

	paths := make([]string, 0, len(dirs))
	for _, dir := range dirs {
		paths = append(paths, filepath.Join(dir, appDir, resource))
	}
	return paths
}

// FindFirst returns the first existing path. Missing candidates are skipped
// silently: an absent config file is not an error.
func FindFirst(paths []string) (string, bool) {
	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			return path, true
		}
	}
	return "", false
}

func userHome() string {
	if home, err := os.UserHomeDir(); err == nil {
		return home
	}
	return "."
}
