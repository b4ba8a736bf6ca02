package config

import (
	"fmt"
	"os"
)

// Defaults returns the built-in defaults layer.
//
//	after    = today-3days
//	before   = today+1day
//	batch    = false
//	datefmt  = +%Y-%m-%d
//	level    = WARNING
//	logfiles =              (empty: nothing filtered without arguments)
//	program  = $1 > after && $1 <= before && $3 ~ level
func Defaults() *Layer {
	l := NewLayer("defaults")
	l.Set(KeyAfter, "today-3days")
	l.Set(KeyBefore, "today+1day")
	l.Set(KeyBatch, "false")
	l.Set(KeyDateFmt, "+%Y-%m-%d")
	l.Set(KeyLevel, "WARNING")
	l.Set(KeyLogFiles, "")
	l.Set(KeyProgram, "$1 > after && $1 <= before && $3 ~ level")
	return l
}

// LoadFile parses a sectionless config file into a layer.
func LoadFile(path string) (*Layer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &ParseError{Path: path, Line: 0, Err: fmt.Errorf("open: %w", err)}
	}
	defer f.Close()
	return ParseLayer(f, path)
}

// LoadGlobal reads the first existing global config file on the search
// path. The first found file wins entirely; files later in the path are not
// merged in. A missing file yields an empty layer, not an error.
func LoadGlobal() (*Layer, string, error) {
	path, found := FindFirst(SearchPath(GlobalConfigName))
	if !found {
		return NewLayer("global"), "", nil
	}
	layer, err := LoadFile(path)
	if err != nil {
		return nil, path, err
	}
	return layer, path, nil
}
