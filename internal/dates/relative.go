package dates

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/benbjohnson/clock"
)

// Relative is a pure-Go resolver for the common relative expressions the
// defaults use (today-3days, today+1day, yesterday, ...). It anchors "now"
// on an injected clock, which keeps date resolution deterministic in tests
// and keeps the tool working on hosts without GNU date.
type Relative struct {
	Clock clock.Clock
}

// NewRelative returns a Relative resolver anchored on the real clock.
func NewRelative() *Relative {
	return &Relative{Clock: clock.New()}
}

// NewSystemResolver prefers GNU date when available and falls back to the
// pure-Go relative resolver otherwise.
func NewSystemResolver(clk clock.Clock) Resolver {
	if gnu, err := NewGNUDate(); err == nil {
		return gnu
	}
	return &Relative{Clock: clk}
}

var relativeExpr = regexp.MustCompile(`^(now|today|yesterday|tomorrow)(?:\s*([+-])\s*(\d+)\s*(day|days|week|weeks|month|months|year|years))?$`)

// Resolve handles a relative base (now/today/yesterday/tomorrow) with an
// optional signed offset, or a literal date already in the target format.
func (r *Relative) Resolve(ctx context.Context, expr, format string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	layout, err := strftimeLayout(format)
	if err != nil {
		return "", &ResolutionError{Expr: expr, Format: format, Reason: err.Error()}
	}

	trimmed := strings.ToLower(strings.TrimSpace(expr))
	m := relativeExpr.FindStringSubmatch(trimmed)
	if m == nil {
		// Literal datestamp: accept it if it parses in the target layout.
		if t, perr := time.Parse(layout, strings.TrimSpace(expr)); perr == nil {
			return t.Format(layout), nil
		}
		return "", &ResolutionError{Expr: expr, Format: format, Reason: "unrecognized date expression"}
	}

	anchor := r.Clock.Now()
	switch m[1] {
	case "yesterday":
		anchor = anchor.AddDate(0, 0, -1)
	case "tomorrow":
		anchor = anchor.AddDate(0, 0, 1)
	}

	if m[2] != "" {
		n, _ := strconv.Atoi(m[3])
		if m[2] == "-" {
			n = -n
		}
		switch strings.TrimSuffix(m[4], "s") {
		case "day":
			anchor = anchor.AddDate(0, 0, n)
		case "week":
			anchor = anchor.AddDate(0, 0, 7*n)
		case "month":
			anchor = anchor.AddDate(0, n, 0)
		case "year":
			anchor = anchor.AddDate(n, 0, 0)
		}
	}

	return anchor.Format(layout), nil
}

var strftimeVerbs = map[byte]string{
	'Y': "2006",
	'y': "06",
	'm': "01",
	'd': "02",
	'H': "15",
	'M': "04",
	'S': "05",
	'F': "2006-01-02",
	'T': "15:04:05",
	's': "", // epoch seconds have no layout equivalent
}

// strftimeLayout converts the strftime subset used in datefmt values (with
// GNU date's leading "+") into a Go time layout.
func strftimeLayout(format string) (string, error) {
	format = strings.TrimPrefix(format, "+")
	var b strings.Builder
	for i := 0; i < len(format); i++ {
		if format[i] != '%' {
			b.WriteByte(format[i])
			continue
		}
		i++
		if i >= len(format) {
			return "", fmt.Errorf("trailing %% in format")
		}
		if format[i] == '%' {
			b.WriteByte('%')
			continue
		}
		layout, ok := strftimeVerbs[format[i]]
		if !ok || layout == "" {
			return "", fmt.Errorf("unsupported format verb %%%c", format[i])
		}
		b.WriteString(layout)
	}
	return b.String(), nil
}
