// Package dates resolves human date expressions ("today-3days") into
// comparable datestamp strings in a caller-supplied strftime format.
package dates

import (
	"context"
	"fmt"
)

// Resolver turns a date expression and a strftime-style format (with the
// leading "+" GNU date uses) into a comparable datestamp string.
type Resolver interface {
	Resolve(ctx context.Context, expr, format string) (string, error)
}

// ResolutionError reports an expression the resolver could not handle.
type ResolutionError struct {
	Expr   string
	Format string
	Reason string
}

func (e *ResolutionError) Error() string {
	return fmt.Sprintf("cannot resolve date %q (format %s): %s", e.Expr, e.Format, e.Reason)
}
