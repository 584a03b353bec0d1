package source

import (
	"fmt"
)

// Location points at a node in the original source text.
// Line and Col are 1-based; zero means unknown.
type Location struct {
	File string `msgpack:"file"`
	Line uint32 `msgpack:"line"`
	Col  uint32 `msgpack:"col"`
	Len  uint32 `msgpack:"len,omitempty"`
}

// Unknown is the location used for synthesized nodes.
func Unknown() Location {
	return Location{File: "<unknown>"}
}

// At is a shortcut for a location without length.
func At(file string, line, col uint32) Location {
	return Location{File: file, Line: line, Col: col}
}

func (l Location) IsKnown() bool {
	return l.Line != 0
}

func (l Location) String() string {
	file := l.File
	if file == "" {
		file = "<unknown>"
	}
	return fmt.Sprintf("%s:%d:%d", file, l.Line, l.Col)
}

// Cover извлекает локацию, охватывающую обе; работает только в пределах одной строки.
func (l Location) Cover(other Location) Location {
	if l.File != other.File || l.Line != other.Line {
		return l
	}
	start := min(l.Col, other.Col)
	end := max(l.Col+l.Len, other.Col+other.Len)
	l.Col = start
	l.Len = end - start
	return l
}
