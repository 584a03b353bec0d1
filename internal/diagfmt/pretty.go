// Package diagfmt renders diagnostic bags for the terminal and for tools.
package diagfmt

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"eidos/internal/diag"
	"eidos/internal/source"
)

type palette struct {
	err, warn, info, code, loc, note *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		err:  color.New(color.FgRed, color.Bold),
		warn: color.New(color.FgYellow, color.Bold),
		info: color.New(color.FgCyan),
		code: color.New(color.Faint),
		loc:  color.New(color.Bold),
		note: color.New(color.FgBlue),
	}
	for _, c := range []*color.Color{p.err, p.warn, p.info, p.code, p.loc, p.note} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

func (p palette) severity(s diag.Severity) *color.Color {
	switch s {
	case diag.SevError:
		return p.err
	case diag.SevWarning:
		return p.warn
	default:
		return p.info
	}
}

// Pretty форматирует диагностики в человекочитаемый вид, по одной на строку:
//
//	<path>:<line>:<col>: <SEV> <CODE>: <Message>
//	  note: <path>:<line>:<col>: <Message>
//
// Diagnostics without a location (internal errors) drop the prefix.
// Items are printed in bag order; call bag.Sort() first for stable output.
func Pretty(w io.Writer, bag *diag.Bag, opts PrettyOpts) error {
	if bag == nil || bag.Len() == 0 {
		return nil
	}
	p := newPalette(opts.Color)
	if opts.Header != "" {
		if _, err := fmt.Fprintln(w, p.loc.Sprint(opts.Header)); err != nil {
			return err
		}
	}
	for _, d := range bag.Items() {
		line := p.severity(d.Severity).Sprint(d.Severity.String()) + " " + p.code.Sprint(d.Code.ID()) + ": " + d.Message
		if prefix := location(d.Primary, opts.PathMode, opts.BaseDir); prefix != "" {
			line = p.loc.Sprint(prefix) + ": " + line
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
		if !opts.ShowNotes {
			continue
		}
		for _, n := range d.Notes {
			text := n.Msg
			if prefix := location(n.Loc, opts.PathMode, opts.BaseDir); prefix != "" {
				text = prefix + ": " + text
			}
			if _, err := fmt.Fprintf(w, "  %s %s\n", p.note.Sprint("note:"), text); err != nil {
				return err
			}
		}
	}
	return nil
}

func location(loc source.Location, mode PathMode, base string) string {
	if !loc.IsKnown() {
		return ""
	}
	return fmt.Sprintf("%s:%d:%d", formatPath(loc.File, mode, base), loc.Line, loc.Col)
}

// Counts tallies errors and warnings across bags.
type Counts struct {
	Errors   int
	Warnings int
}

func (c *Counts) Add(bag *diag.Bag) {
	if bag == nil {
		return
	}
	for _, d := range bag.Items() {
		switch d.Severity {
		case diag.SevError:
			c.Errors++
		case diag.SevWarning:
			c.Warnings++
		}
	}
}

// String gives "2 errors, 1 warning".
func (c Counts) String() string {
	return plural(c.Errors, "error") + ", " + plural(c.Warnings, "warning")
}

func plural(n int, word string) string {
	if n == 1 {
		return "1 " + word
	}
	return fmt.Sprintf("%d %ss", n, word)
}
