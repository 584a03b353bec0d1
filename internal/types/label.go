package types

import (
	"strings"
)

// Label returns a user-facing rendering of id, used in diagnostics.
func (env *Env) Label(id TypeID) string {
	var sb strings.Builder
	env.writeLabel(&sb, id, 0)
	return sb.String()
}

func (env *Env) writeLabel(sb *strings.Builder, id TypeID, depth int) {
	if depth > 6 {
		sb.WriteString("...")
		return
	}
	tt, ok := env.Lookup(id)
	if !ok {
		sb.WriteString("?")
		return
	}
	switch tt.Kind {
	case KindUnit:
		sb.WriteString("()")
	case KindBool, KindInt, KindFloat, KindChar, KindString:
		sb.WriteString(tt.Kind.String())
	case KindArray:
		sb.WriteByte('[')
		env.writeLabel(sb, tt.Elem, depth+1)
		sb.WriteByte(']')
	case KindTuple:
		env.writeList(sb, tt.Elems, depth)
	case KindFn:
		env.writeList(sb, tt.Elems, depth)
		sb.WriteString(" -> ")
		env.writeLabel(sb, tt.Result, depth+1)
	case KindStruct, KindEnum:
		sb.WriteString(tt.Name)
		if len(tt.TypeParams) > 0 {
			sb.WriteByte('<')
			sb.WriteString(strings.Join(tt.TypeParams, ", "))
			sb.WriteByte('>')
		}
	case KindNamed, KindParam:
		sb.WriteString(tt.Name)
	case KindExtension:
		sb.WriteString(tt.Extension)
		sb.WriteByte(':')
		sb.WriteString(tt.Name)
	case KindUnknown:
		sb.WriteString("?")
	case KindError:
		sb.WriteString("<error>")
	default:
		sb.WriteString("?")
	}
}

func (env *Env) writeList(sb *strings.Builder, ids []TypeID, depth int) {
	sb.WriteByte('(')
	for i, id := range ids {
		if i > 0 {
			sb.WriteString(", ")
		}
		env.writeLabel(sb, id, depth+1)
	}
	sb.WriteByte(')')
}
