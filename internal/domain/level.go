package domain

import (
	"fmt"
	"strings"
)

// Level is a syslog-style severity. Lower ordinal means more severe.
type Level int

const (
	LevelEmerg Level = iota
	LevelAlert
	LevelCritical
	LevelError
	LevelWarning
	LevelNotice
	LevelInfo
	LevelDebug
)

var levelNames = [...]string{
	"EMERG",
	"ALERT",
	"CRITICAL",
	"ERROR",
	"WARNING",
	"NOTICE",
	"INFO",
	"DEBUG",
}

// Names returns the canonical level names, most severe first.
func Names() []string {
	names := make([]string, len(levelNames))
	copy(names, levelNames[:])
	return names
}

func (l Level) String() string {
	if l < 0 || int(l) >= len(levelNames) {
		return fmt.Sprintf("Level(%d)", int(l))
	}
	return levelNames[l]
}

// Meets reports whether a message at level l passes a minimum threshold.
// EMERG meets every threshold; DEBUG only meets a DEBUG threshold.
func (l Level) Meets(threshold Level) bool {
	return l <= threshold
}

// Alternation returns a regex alternation of every level name at or above
// the receiver, suitable for matching a message's level field against a
// threshold (e.g. WARNING -> "EMERG|ALERT|CRITICAL|ERROR|WARNING").
func (l Level) Alternation() string {
	if l < 0 || int(l) >= len(levelNames) {
		return ""
	}
	return strings.Join(levelNames[:l+1], "|")
}

// UnknownLevelError reports input that matches no level name.
type UnknownLevelError struct {
	Input string
}

func (e *UnknownLevelError) Error() string {
	return fmt.Sprintf("unknown level %q (choose from %s)", e.Input, strings.Join(levelNames[:], ", "))
}

// AmbiguousLevelError reports a prefix shared by two or more level names.
type AmbiguousLevelError struct {
	Input      string
	Candidates []string
}

func (e *AmbiguousLevelError) Error() string {
	return fmt.Sprintf("ambiguous level %q (matches %s)", e.Input, strings.Join(e.Candidates, ", "))
}

// ParseLevel resolves text to a Level. Matching is case-insensitive; a full
// name always wins, otherwise an unambiguous prefix of exactly one name is
// accepted ("err" -> ERROR).
func ParseLevel(text string) (Level, error) {
	upper := strings.ToUpper(strings.TrimSpace(text))
	if upper == "" {
		return 0, &UnknownLevelError{Input: text}
	}

	var candidates []string
	var match Level
	for i, name := range levelNames {
		if name == upper {
			return Level(i), nil
		}
		if strings.HasPrefix(name, upper) {
			candidates = append(candidates, name)
			match = Level(i)
		}
	}

	switch len(candidates) {
	case 1:
		return match, nil
	case 0:
		return 0, &UnknownLevelError{Input: text}
	default:
		return 0, &AmbiguousLevelError{Input: text, Candidates: candidates}
	}
}
