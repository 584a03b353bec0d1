package diagfmt

import (
	"encoding/json"
	"io"

	"eidos/internal/diag"
	"eidos/internal/source"
)

// LocationJSON представляет местоположение в файле для JSON
type LocationJSON struct {
	File   string `json:"file"`
	Line   uint32 `json:"line"`
	Column uint32 `json:"column"`
}

// NoteJSON представляет дополнительную заметку для JSON
type NoteJSON struct {
	Message  string        `json:"message"`
	Location *LocationJSON `json:"location,omitempty"`
}

// DiagnosticJSON is one diagnostic. Internal errors carry no location.
type DiagnosticJSON struct {
	Severity string `json:"severity"`
	Kind     string `json:"kind"`
	Code     string `json:"code"`
	Message  string `json:"message"`
	*LocationJSON
	Notes []NoteJSON `json:"notes,omitempty"`
}

// UnitJSON groups the diagnostics of one checked unit.
type UnitJSON struct {
	Unit        string           `json:"unit"`
	OK          bool             `json:"ok"`
	Diagnostics []DiagnosticJSON `json:"diagnostics"`
}

// DiagnosticsOutput представляет корневую структуру JSON вывода
type DiagnosticsOutput struct {
	Units    []UnitJSON `json:"units"`
	Errors   int        `json:"errors"`
	Warnings int        `json:"warnings"`
}

func makeLocation(loc source.Location, opts JSONOpts) *LocationJSON {
	if !loc.IsKnown() {
		return nil
	}
	return &LocationJSON{
		File:   formatPath(loc.File, opts.PathMode, opts.BaseDir),
		Line:   loc.Line,
		Column: loc.Col,
	}
}

// BuildDiagnostics converts a bag without serializing it.
func BuildDiagnostics(bag *diag.Bag, opts JSONOpts) []DiagnosticJSON {
	if bag == nil {
		return []DiagnosticJSON{}
	}
	items := bag.Items()
	maxItems := len(items)
	if opts.Max > 0 && opts.Max < maxItems {
		maxItems = opts.Max
	}
	out := make([]DiagnosticJSON, 0, maxItems)
	for i := range maxItems {
		d := items[i]
		dj := DiagnosticJSON{
			Severity: d.Severity.Label(),
			Kind:     d.Code.Kind().String(),
			Code:     d.Code.ID(),
			Message:  d.Message,
		}
		if d.Code.Kind() != diag.KindInternal {
			dj.LocationJSON = makeLocation(d.Primary, opts)
		}
		if opts.IncludeNotes && len(d.Notes) > 0 {
			dj.Notes = make([]NoteJSON, len(d.Notes))
			for j, note := range d.Notes {
				dj.Notes[j] = NoteJSON{Message: note.Msg, Location: makeLocation(note.Loc, opts)}
			}
		}
		out = append(out, dj)
	}
	return out
}

// Unit is one entry of a JSON report.
type Unit struct {
	Path string
	OK   bool
	Bag  *diag.Bag
}

// BuildDiagnosticsOutput формирует структуру JSON-вывода без сериализации.
func BuildDiagnosticsOutput(units []Unit, opts JSONOpts) DiagnosticsOutput {
	output := DiagnosticsOutput{Units: make([]UnitJSON, 0, len(units))}
	var counts Counts
	for _, u := range units {
		counts.Add(u.Bag)
		output.Units = append(output.Units, UnitJSON{
			Unit:        u.Path,
			OK:          u.OK,
			Diagnostics: BuildDiagnostics(u.Bag, opts),
		})
	}
	output.Errors = counts.Errors
	output.Warnings = counts.Warnings
	return output
}

// JSON форматирует диагностики в JSON формат.
func JSON(w io.Writer, units []Unit, opts JSONOpts) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(BuildDiagnosticsOutput(units, opts))
}
