package ast

import (
	"errors"
	"fmt"
	"io"

	"github.com/vmihailenco/msgpack/v5"

	"eidos/internal/source"
	"eidos/internal/symbols"
	"eidos/internal/types"
)

// DumpVersion is bumped on incompatible changes of the program dump layout.
const DumpVersion uint16 = 1

// ErrBadDump reports a program dump that cannot be decoded into a Program.
var ErrBadDump = errors.New("malformed program dump")

// TypeLabeler renders type IDs; *types.Env implements it.
type TypeLabeler interface {
	Label(id types.TypeID) string
}

type nodeRecord struct {
	ID        NodeID             `msgpack:"id"`
	Kind      Kind               `msgpack:"kind"`
	Loc       source.Location    `msgpack:"loc"`
	TypeState TypeState          `msgpack:"ts,omitempty"`
	Type      types.TypeID       `msgpack:"ty,omitempty"`
	TypeLabel string             `msgpack:"tl,omitempty"`
	Symbol    symbols.SymbolID   `msgpack:"sym,omitempty"`
	Data      msgpack.RawMessage `msgpack:"data"`
}

type programDump struct {
	Version uint16       `msgpack:"v"`
	File    string       `msgpack:"file"`
	Roots   []NodeID     `msgpack:"roots"`
	Nodes   []nodeRecord `msgpack:"nodes"`
}

// Encode writes p as a msgpack program dump. labels may be nil; when set,
// every typed node also records the rendered type.
func Encode(w io.Writer, p *Program, labels TypeLabeler) error {
	dump := programDump{
		Version: DumpVersion,
		File:    p.File,
		Roots:   p.Roots(),
		Nodes:   make([]nodeRecord, 0, p.Len()),
	}
	for n := range p.Nodes() {
		data, err := msgpack.Marshal(n.Data)
		if err != nil {
			return fmt.Errorf("encode node %s: %w", n.ID, err)
		}
		rec := nodeRecord{
			ID:        n.ID,
			Kind:      n.Kind(),
			Loc:       n.Loc,
			TypeState: n.Type.State,
			Type:      n.Type.Type,
			Symbol:    n.Symbol,
			Data:      data,
		}
		if labels != nil && n.Type.Type.IsValid() {
			rec.TypeLabel = labels.Label(n.Type.Type)
		}
		dump.Nodes = append(dump.Nodes, rec)
	}
	enc := msgpack.NewEncoder(w)
	enc.UseCompactInts(true)
	return enc.Encode(&dump)
}

// Decode reads a program dump produced by Encode.
func Decode(r io.Reader) (*Program, error) {
	var dump programDump
	if err := msgpack.NewDecoder(r).Decode(&dump); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBadDump, err)
	}
	if dump.Version != DumpVersion {
		return nil, fmt.Errorf("%w: unsupported version %d", ErrBadDump, dump.Version)
	}
	prog := NewProgram(dump.File, uint(len(dump.Nodes)))
	for i := range dump.Nodes {
		rec := &dump.Nodes[i]
		data, err := newData(rec.Kind)
		if err != nil {
			return nil, fmt.Errorf("%w: node %s: %w", ErrBadDump, rec.ID, err)
		}
		if err := msgpack.Unmarshal(rec.Data, data); err != nil {
			return nil, fmt.Errorf("%w: node %s: %w", ErrBadDump, rec.ID, err)
		}
		id := prog.Insert(rec.Loc, data)
		if id != rec.ID {
			return nil, fmt.Errorf("%w: node %s stored out of order (expected %s)", ErrBadDump, rec.ID, id)
		}
		n := prog.Node(id)
		n.Type = TypeInfo{State: rec.TypeState, Type: rec.Type}
		n.Symbol = rec.Symbol
	}
	for _, root := range dump.Roots {
		prog.AddRoot(root)
	}
	return prog, nil
}

func newData(kind Kind) (Data, error) {
	switch kind {
	case KindLiteral:
		return &Literal{}, nil
	case KindIdent:
		return &Ident{}, nil
	case KindUnary:
		return &Unary{}, nil
	case KindBinary:
		return &Binary{}, nil
	case KindIf:
		return &If{}, nil
	case KindBlock:
		return &Block{}, nil
	case KindLet:
		return &Let{}, nil
	case KindParam:
		return &Param{}, nil
	case KindFunc:
		return &Func{}, nil
	case KindCall:
		return &Call{}, nil
	case KindAssign:
		return &Assign{}, nil
	case KindWhile:
		return &While{}, nil
	case KindReturn:
		return &Return{}, nil
	case KindTypeDef:
		return &TypeDef{}, nil
	case KindField:
		return &Field{}, nil
	case KindVariant:
		return &Variant{}, nil
	case KindEmbedded:
		return &Embedded{}, nil
	}
	return nil, fmt.Errorf("unknown node kind %d", kind)
}
