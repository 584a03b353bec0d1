package diag

import (
	"eidos/internal/source"
)

type Note struct {
	Loc source.Location
	Msg string
}

type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	Primary  source.Location
	Notes    []Note
}

func New(sev Severity, code Code, primary source.Location, msg string) Diagnostic {
	return Diagnostic{
		Severity: sev,
		Code:     code,
		Primary:  primary,
		Message:  msg,
	}
}

// NewWarning builds an advisory diagnostic.
func NewWarning(code Code, primary source.Location, msg string) Diagnostic {
	return New(SevWarning, code, primary, msg)
}

func (d Diagnostic) WithNote(loc source.Location, msg string) Diagnostic {
	d.Notes = append(d.Notes, Note{Loc: loc, Msg: msg})
	return d
}
