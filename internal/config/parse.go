package config

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/dmaltby/logfilter/internal/domain"
)

// Setting names recognized in config files and sections.
const (
	KeyAfter    = "after"
	KeyBefore   = "before"
	KeyBatch    = "batch"
	KeyDateFmt  = "datefmt"
	KeyLevel    = "level"
	KeyLogFiles = "logfiles"
	KeyProgram  = "program"
	KeyProgFile = "progfile"
)

// ParseLine splits one config line into a lower-cased key and a raw value.
// Blank lines and #-comments are skipped (ok is false). A non-blank line
// without "=" is malformed.
func ParseLine(text string) (key, value string, ok bool, err error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" || strings.HasPrefix(trimmed, "#") {
		return "", "", false, nil
	}
	k, v, found := strings.Cut(trimmed, "=")
	if !found {
		return "", "", false, &MalformedLineError{Text: trimmed}
	}
	return strings.ToLower(strings.TrimSpace(k)), strings.TrimSpace(v), true, nil
}

// ParseLayer reads sectionless "key = value" text into a layer. Errors carry
// the line number via ParseError; path labels the source.
func ParseLayer(r io.Reader, path string) (*Layer, error) {
	layer := NewLayer(path)
	scanner := bufio.NewScanner(r)
	lineno := 0
	for scanner.Scan() {
		lineno++
		key, value, ok, err := ParseLine(scanner.Text())
		if err != nil {
			return nil, &ParseError{Path: path, Line: lineno, Err: err}
		}
		if !ok {
			continue
		}
		layer.Set(key, value)
	}
	if err := scanner.Err(); err != nil {
		return nil, &ParseError{Path: path, Line: lineno, Err: err}
	}
	return layer, nil
}

// SplitWords splits a logfiles value into words, shell-style: whitespace
// separates words, single or double quotes group a path containing spaces,
// and a backslash escapes the next character outside single quotes.
func SplitWords(raw string) ([]string, error) {
	var words []string
	var cur strings.Builder
	inWord := false
	for i := 0; i < len(raw); i++ {
		c := raw[i]
		switch {
		case c == '\'' || c == '"':
			quote := c
			i++
			start := i
			for i < len(raw) && raw[i] != quote {
				if quote == '"' && raw[i] == '\\' && i+1 < len(raw) {
					cur.WriteString(raw[start:i])
					i++
					cur.WriteByte(raw[i])
					i++
					start = i
					continue
				}
				i++
			}
			if i >= len(raw) {
				return nil, fmt.Errorf("unterminated %c quote", quote)
			}
			cur.WriteString(raw[start:i])
			inWord = true
		case c == '\\' && i+1 < len(raw):
			i++
			cur.WriteByte(raw[i])
			inWord = true
		case c == ' ' || c == '\t':
			if inWord {
				words = append(words, cur.String())
				cur.Reset()
				inWord = false
			}
		default:
			cur.WriteByte(c)
			inWord = true
		}
	}
	if inWord {
		words = append(words, cur.String())
	}
	return words, nil
}

// ParseBool coerces the accepted boolean spellings, case-insensitively.
func ParseBool(raw string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "1", "yes", "true", "on":
		return true, nil
	case "0", "no", "false", "off":
		return false, nil
	}
	return false, fmt.Errorf("not a boolean (want true/false, yes/no, on/off, 1/0)")
}

// Settings is a fully coerced view of a merged layer. Date expressions stay
// raw text here: they are resolved per file against that file's datefmt, so
// an invalid date surfaces at resolution time, not load time.
type Settings struct {
	After    string
	Before   string
	Batch    bool
	DateFmt  string
	Level    domain.Level
	LogFiles []string
	Program  string
	ProgFile string
}

// FromLayer coerces a merged layer into typed settings. Unknown keys are
// ignored; a known key with an uncoercible value is an InvalidValueError.
func FromLayer(l *Layer) (*Settings, error) {
	s := &Settings{}
	for _, key := range l.Keys() {
		raw, _ := l.Get(key)
		switch key {
		case KeyAfter:
			s.After = raw
		case KeyBefore:
			s.Before = raw
		case KeyBatch:
			b, err := ParseBool(raw)
			if err != nil {
				return nil, &InvalidValueError{Key: key, Value: raw, Reason: err.Error()}
			}
			s.Batch = b
		case KeyDateFmt:
			s.DateFmt = raw
		case KeyLevel:
			lvl, err := domain.ParseLevel(raw)
			if err != nil {
				return nil, &InvalidValueError{Key: key, Value: raw, Reason: err.Error()}
			}
			s.Level = lvl
		case KeyLogFiles:
			files, err := SplitWords(raw)
			if err != nil {
				return nil, &InvalidValueError{Key: key, Value: raw, Reason: err.Error()}
			}
			s.LogFiles = files
		case KeyProgram:
			s.Program = raw
		case KeyProgFile:
			s.ProgFile = raw
		}
	}
	return s, nil
}
