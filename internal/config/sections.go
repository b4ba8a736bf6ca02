package config

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"
)

// DefaultSectionName is the unconditional section of the per-logfile config.
const DefaultSectionName = "DEFAULT"

// Section is one named block of the per-logfile config file. Its name is a
// shell glob matched against input filenames.
type Section struct {
	Pattern  string
	Settings *Layer
}

// Matches reports whether a shell glob (*, ?, [...]) matches name. A
// pattern without a path separator is also tried against the basename, so
// "*.log" matches "/var/log/app.log". Invalid patterns match nothing.
func Matches(pattern, name string) bool {
	if ok, err := filepath.Match(pattern, name); err == nil && ok {
		return true
	}
	if !strings.ContainsRune(pattern, filepath.Separator) {
		if ok, err := filepath.Match(pattern, filepath.Base(name)); err == nil && ok {
			return true
		}
	}
	return false
}

// LoadSections parses a per-logfile config file. Each line belongs to the
// most recently declared [name] header; [DEFAULT] (and any keys before the
// first header) accumulate into the returned default layer, every other
// header starts a section whose name is its glob pattern. Declaration order
// of sections is preserved.
func LoadSections(path string) (*Layer, []Section, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, &ParseError{Path: path, Line: 0, Err: err}
	}
	defer f.Close()

	defaults := NewLayer(path + " [" + DefaultSectionName + "]")
	var sections []Section
	current := defaults

	scanner := bufio.NewScanner(f)
	lineno := 0
	for scanner.Scan() {
		lineno++
		trimmed := strings.TrimSpace(scanner.Text())
		if name, ok := sectionHeader(trimmed); ok {
			if name == DefaultSectionName {
				current = defaults
				continue
			}
			sections = append(sections, Section{
				Pattern:  name,
				Settings: NewLayer(path + " [" + name + "]"),
			})
			current = sections[len(sections)-1].Settings
			continue
		}
		key, value, ok, err := ParseLine(trimmed)
		if err != nil {
			return nil, nil, &ParseError{Path: path, Line: lineno, Err: err}
		}
		if !ok {
			continue
		}
		current.Set(key, value)
	}
	if err := scanner.Err(); err != nil {
		return nil, nil, &ParseError{Path: path, Line: lineno, Err: err}
	}
	return defaults, sections, nil
}

// LoadGlobalSections reads the first existing per-logfile config file on the
// search path. Missing file yields an empty default layer and no sections.
func LoadGlobalSections() (*Layer, []Section, string, error) {
	path, found := FindFirst(SearchPath(SectionsConfigName))
	if !found {
		return NewLayer(DefaultSectionName), nil, "", nil
	}
	defaults, sections, err := LoadSections(path)
	if err != nil {
		return nil, nil, path, err
	}
	return defaults, sections, path, nil
}

// ResolveForFile builds the per-file layer: the DEFAULT section first, then
// every section whose pattern matches filename, in declaration order, later
// matches overriding earlier ones. Sections never touch the program-wide
// logfiles and batch settings; those keys are dropped silently. No matching
// section is not an error: the result is just the DEFAULT values.
func ResolveForFile(filename string, defaults *Layer, sections []Section) *Layer {
	return Merge(FileStack(filename, defaults, sections)...)
}

// FileStack returns the per-file layers most authoritative first: matching
// sections in reverse declaration order, then DEFAULT. Exposed so callers
// can attribute each resolved value to its source.
func FileStack(filename string, defaults *Layer, sections []Section) []*Layer {
	var stack []*Layer
	for i := len(sections) - 1; i >= 0; i-- {
		if Matches(sections[i].Pattern, filename) {
			stack = append(stack, stripProgramWide(sections[i].Settings))
		}
	}
	return append(stack, defaults)
}

// stripProgramWide copies a section layer without the program-wide keys.
func stripProgramWide(l *Layer) *Layer {
	out := NewLayer(l.Source)
	for _, key := range l.Keys() {
		if key == KeyLogFiles || key == KeyBatch {
			continue
		}
		v, _ := l.Get(key)
		out.Set(key, v)
	}
	return out
}

func sectionHeader(line string) (string, bool) {
	if len(line) < 2 || line[0] != '[' || line[len(line)-1] != ']' {
		return "", false
	}
	return strings.TrimSpace(line[1 : len(line)-1]), true
}
