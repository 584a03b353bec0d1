package stdlib

import (
	"fmt"
	"strings"
	"unicode"

	"eidos/internal/ast"
)

// ParseType reads a type written in catalog notation:
//
//	int  [string]  (int, bool)  (int) -> bool  Box<T>  ?
func ParseType(s string) (*ast.TypeExpr, error) {
	p := typeParser{src: s}
	t, err := p.parse()
	if err != nil {
		return nil, fmt.Errorf("type %q: %w", s, err)
	}
	p.skipSpace()
	if p.pos != len(p.src) {
		return nil, fmt.Errorf("type %q: unexpected %q", s, p.src[p.pos:])
	}
	return t, nil
}

// MustType is ParseType for literals in module tables.
func MustType(s string) *ast.TypeExpr {
	t, err := ParseType(s)
	if err != nil {
		panic(err)
	}
	return t
}

type typeParser struct {
	src string
	pos int
}

func (p *typeParser) skipSpace() {
	for p.pos < len(p.src) && p.src[p.pos] == ' ' {
		p.pos++
	}
}

func (p *typeParser) eat(tok string) bool {
	p.skipSpace()
	if strings.HasPrefix(p.src[p.pos:], tok) {
		p.pos += len(tok)
		return true
	}
	return false
}

func (p *typeParser) parse() (*ast.TypeExpr, error) {
	switch {
	case p.eat("["):
		elem, err := p.parse()
		if err != nil {
			return nil, err
		}
		if !p.eat("]") {
			return nil, fmt.Errorf("missing ']'")
		}
		return ast.ArrayOf(elem), nil
	case p.eat("("):
		elems, err := p.list(")")
		if err != nil {
			return nil, err
		}
		if p.eat("->") {
			result, err := p.parse()
			if err != nil {
				return nil, err
			}
			return ast.FnOf(elems, result), nil
		}
		if len(elems) == 0 {
			return ast.Named("unit"), nil
		}
		return ast.TupleOf(elems...), nil
	case p.eat("?"):
		return ast.Named("?"), nil
	}
	name := p.ident()
	if name == "" {
		return nil, fmt.Errorf("expected type at offset %d", p.pos)
	}
	if p.eat("<") {
		args, err := p.list(">")
		if err != nil {
			return nil, err
		}
		return ast.Named(name, args...), nil
	}
	return ast.Named(name), nil
}

func (p *typeParser) list(closer string) ([]ast.TypeExpr, error) {
	var out []ast.TypeExpr
	if p.eat(closer) {
		return out, nil
	}
	for {
		t, err := p.parse()
		if err != nil {
			return nil, err
		}
		out = append(out, *t)
		if p.eat(closer) {
			return out, nil
		}
		if !p.eat(",") {
			return nil, fmt.Errorf("expected ',' or %q", closer)
		}
	}
}

func (p *typeParser) ident() string {
	p.skipSpace()
	start := p.pos
	for p.pos < len(p.src) {
		r := rune(p.src[p.pos])
		if r != '_' && !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			break
		}
		p.pos++
	}
	return p.src[start:p.pos]
}
