package config

import "fmt"

// MalformedLineError reports a non-blank, non-comment line with no "=".
type MalformedLineError struct {
	Text string
}

func (e *MalformedLineError) Error() string {
	return fmt.Sprintf("malformed line (expected key = value): %q", e.Text)
}

// InvalidValueError reports a value that cannot be coerced to the type of a
// known setting.
type InvalidValueError struct {
	Key    string
	Value  string
	Reason string
}

func (e *InvalidValueError) Error() string {
	return fmt.Sprintf("invalid value %q for %s: %s", e.Value, e.Key, e.Reason)
}

// ParseError wraps a config error with the file and line it came from.
type ParseError struct {
	Path string
	Line int
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s:%d: %v", e.Path, e.Line, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }
