// Package output provides context-aware output for pbxedit.
// Stdout is used for the edit report (text, JSON or YAML).
// Stderr (via ctxlog) is used for diagnostics.
package output

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/colorprofile"
)

type ctxKey struct{}

// Printer writes primary output to stdout, downsampling styled text to what
// the destination supports.
type Printer struct {
	w io.Writer
}

// New creates a Printer writing to w. color is one of "auto", "always" or
// "never"; auto detects the profile from w and the environment (NO_COLOR,
// TERM, piping).
func New(w io.Writer, color string) *Printer {
	cw := colorprofile.NewWriter(w, os.Environ())
	switch color {
	case "always":
		cw.Profile = colorprofile.TrueColor
	case "never":
		cw.Profile = colorprofile.NoTTY
	}
	return &Printer{w: cw}
}

// WithPrinter attaches a Printer to the context.
func WithPrinter(ctx context.Context, p *Printer) context.Context {
	return context.WithValue(ctx, ctxKey{}, p)
}

// FromContext retrieves the Printer from context.
// Returns a Printer writing to os.Stdout if none is attached.
func FromContext(ctx context.Context) *Printer {
	if p, ok := ctx.Value(ctxKey{}).(*Printer); ok {
		return p
	}
	return New(os.Stdout, "auto")
}

// Print writes output without a newline.
func (p *Printer) Print(a ...any) {
	fmt.Fprint(p.w, a...)
}

// Printf writes formatted output.
func (p *Printer) Printf(format string, a ...any) {
	fmt.Fprintf(p.w, format, a...)
}

// Println writes a line of output.
func (p *Printer) Println(a ...any) {
	fmt.Fprintln(p.w, a...)
}

// Writer returns the underlying writer.
func (p *Printer) Writer() io.Writer {
	return p.w
}
