package dates

import (
	"bytes"
	"context"
	"os/exec"
	"strings"
)

// GNUDate resolves expressions by invoking GNU date:
//
//	date --date EXPR +FMT
//
// It understands everything GNU date does, which is the behavior users of
// the config files expect.
type GNUDate struct {
	Path string
}

// NewGNUDate locates the date executable on PATH.
func NewGNUDate() (*GNUDate, error) {
	path, err := exec.LookPath("date")
	if err != nil {
		return nil, err
	}
	return &GNUDate{Path: path}, nil
}

// Resolve shells out to date and returns its trimmed stdout.
func (g *GNUDate) Resolve(ctx context.Context, expr, format string) (string, error) {
	cmd := exec.CommandContext(ctx, g.Path, "--date", expr, format)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		reason := strings.TrimSpace(stderr.String())
		if reason == "" {
			reason = err.Error()
		}
		return "", &ResolutionError{Expr: expr, Format: format, Reason: reason}
	}
	return strings.TrimSpace(stdout.String()), nil
}
