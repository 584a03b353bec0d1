package stdlib

import (
	"fmt"
	"strings"
	"sync"
)

type entry struct {
	name   string
	params string // "a: int, b: string"
	result string // "" for unit
	purity Purity
	doc    string
}

type module struct {
	name  string
	types []TypeDecl
	funcs []entry
}

var modules = []module{
	{
		name: "math",
		funcs: []entry{
			{"PI", "", "float", Pure, "the ratio of a circle's circumference to its diameter"},
			{"E", "", "float", Pure, "base of the natural logarithm"},
			{"abs_i", "value: int", "int", Pure, "absolute value of an integer"},
			{"abs_f", "value: float", "float", Pure, "absolute value of a float"},
			{"sqrt", "value: float", "float", Pure, "square root"},
			{"cbrt", "value: float", "float", Pure, "cube root"},
			{"pow", "base: float, exponent: float", "float", Pure, "base raised to exponent"},
			{"exp", "value: float", "float", Pure, "e raised to value"},
			{"log", "value: float", "float", Pure, "natural logarithm"},
			{"log10", "value: float", "float", Pure, "base 10 logarithm"},
			{"log2", "value: float", "float", Pure, "base 2 logarithm"},
			{"sin", "radians: float", "float", Pure, "sine"},
			{"cos", "radians: float", "float", Pure, "cosine"},
			{"tan", "radians: float", "float", Pure, "tangent"},
			{"floor", "value: float", "int", Pure, "largest integer not above value"},
			{"ceil", "value: float", "int", Pure, "smallest integer not below value"},
			{"round", "value: float", "int", Pure, "nearest integer"},
			{"min_i", "a: int, b: int", "int", Pure, "smaller of two integers"},
			{"max_i", "a: int, b: int", "int", Pure, "larger of two integers"},
			{"to_float", "value: int", "float", Pure, "integer to float conversion"},
			{"random", "", "float", Effectful, "uniform random number in [0, 1)"},
		},
	},
	{
		name: "string",
		funcs: []entry{
			{"length", "str: string", "int", Pure, "number of characters"},
			{"is_empty", "str: string", "bool", Pure, "reports whether str has no characters"},
			{"concat", "a: string, b: string", "string", Pure, "concatenation"},
			{"substr", "str: string, start: int, length: int", "string", Pure, "substring"},
			{"at", "str: string, index: int", "char", Pure, "character at index"},
			{"contains", "str: string, substr: string", "bool", Pure, "substring test"},
			{"starts_with", "str: string, prefix: string", "bool", Pure, "prefix test"},
			{"ends_with", "str: string, suffix: string", "bool", Pure, "suffix test"},
			{"index_of", "str: string, substr: string", "int", Pure, "first index of substr or -1"},
			{"replace", "str: string, from: string, to: string", "string", Pure, "replace all occurrences"},
			{"to_upper", "str: string", "string", Pure, "upper case"},
			{"to_lower", "str: string", "string", Pure, "lower case"},
			{"trim", "str: string", "string", Pure, "strip surrounding whitespace"},
			{"split", "str: string, sep: string", "[string]", Pure, "split around sep"},
			{"join", "parts: [string], sep: string", "string", Pure, "join with sep"},
			{"from_int", "value: int", "string", Pure, "decimal rendering"},
			{"parse_int", "str: string", "int", Pure, "decimal parsing"},
		},
	},
	{
		name: "io",
		types: []TypeDecl{
			{Name: "File", Kind: TypeOpaque},
			{Name: "Bytes", Kind: TypeAlias, Target: MustType("[int]")},
		},
		funcs: []entry{
			{"print", "message: string", "", Effectful, "write to standard output"},
			{"println", "message: string", "", Effectful, "write a line to standard output"},
			{"read_line", "", "string", Effectful, "read a line from standard input"},
			{"input", "prompt: string", "string", Effectful, "prompt and read a line"},
			{"open", "path: string, mode: string", "File", Effectful, "open a file"},
			{"close", "file: File", "", Effectful, "close a file"},
			{"read_all", "file: File", "string", Effectful, "read the whole file"},
			{"read_bytes", "file: File", "Bytes", Effectful, "read the whole file as bytes"},
			{"read_lines", "file: File", "[string]", Effectful, "read the file line by line"},
			{"write", "file: File, content: string", "", Effectful, "write text"},
			{"write_line", "file: File, line: string", "", Effectful, "write a line"},
			{"exists", "path: string", "bool", Effectful, "reports whether path exists"},
		},
	},
	{
		name: "time",
		types: []TypeDecl{
			{Name: "DateTime", Kind: TypeOpaque},
			{Name: "Duration", Kind: TypeStruct, Fields: []Param{{Name: "seconds", Type: MustType("int")}, {Name: "nanos", Type: MustType("int")}}},
		},
		funcs: []entry{
			{"now", "", "DateTime", Effectful, "current local time"},
			{"timestamp", "", "int", Effectful, "seconds since the unix epoch"},
			{"timestamp_millis", "", "int", Effectful, "milliseconds since the unix epoch"},
			{"sleep", "seconds: float", "", Effectful, "suspend the program"},
			{"parse", "date_string: string, format: string", "DateTime", Pure, "parse a date"},
			{"format", "datetime: DateTime, format: string", "string", Pure, "render a date"},
			{"add_days", "datetime: DateTime, days: int", "DateTime", Pure, "shift by days"},
			{"add_seconds", "datetime: DateTime, seconds: int", "DateTime", Pure, "shift by seconds"},
			{"diff", "datetime1: DateTime, datetime2: DateTime", "Duration", Pure, "difference of two dates"},
			{"is_before", "datetime1: DateTime, datetime2: DateTime", "bool", Pure, "ordering test"},
			{"is_after", "datetime1: DateTime, datetime2: DateTime", "bool", Pure, "ordering test"},
		},
	},
	{
		name: "system",
		funcs: []entry{
			{"getenv", "name: string", "string", Pure, "environment variable or empty string"},
			{"setenv", "name: string, value: string", "", Effectful, "set an environment variable"},
			{"unsetenv", "name: string", "", Effectful, "remove an environment variable"},
			{"env_vars", "", "[string]", Pure, "NAME=value pairs"},
			{"args", "", "[string]", Pure, "command line arguments"},
			{"exit", "code: int", "", Effectful, "terminate the process"},
			{"exec", "command: string", "int", Effectful, "run a shell command and return its status"},
			{"os_name", "", "string", Pure, "operating system name"},
			{"cpu_count", "", "int", Pure, "number of logical CPUs"},
		},
	},
	{
		name: "collections",
		funcs: []entry{
			{"len", "items: [?]", "int", Pure, "number of elements"},
			{"is_empty", "items: [?]", "bool", Pure, "reports whether there are no elements"},
			{"push", "items: [?], value: ?", "[?]", Pure, "copy with value appended"},
			{"reverse", "items: [?]", "[?]", Pure, "copy in reverse order"},
			{"range", "start: int, end: int", "[int]", Pure, "integers in [start, end)"},
			{"sum", "items: [int]", "int", Pure, "sum of integers"},
			{"contains_i", "items: [int], value: int", "bool", Pure, "membership test"},
			{"sort_i", "items: [int]", "[int]", Pure, "sorted copy"},
		},
	},
}

// Register adds every built-in module to c.
func Register(c *Catalog) error {
	for _, m := range modules {
		for _, decl := range m.types {
			decl.Module = m.name
			if err := c.RegisterType(decl); err != nil {
				return err
			}
		}
		for _, e := range m.funcs {
			fn, err := e.function(m.name)
			if err != nil {
				return err
			}
			if err := c.Register(fn); err != nil {
				return err
			}
		}
	}
	return nil
}

var (
	builtinOnce sync.Once
	builtin     *Catalog
)

// Builtin returns the shared catalog of built-in modules. Callers must not
// register into it; Merge it into a fresh catalog instead.
func Builtin() *Catalog {
	builtinOnce.Do(func() {
		builtin = NewCatalog()
		if err := Register(builtin); err != nil {
			panic(err)
		}
	})
	return builtin
}

func (e entry) function(moduleName string) (Function, error) {
	fn := Function{Module: moduleName, Name: e.name, Purity: e.purity, Doc: e.doc}
	params, err := parseParams(e.params)
	if err != nil {
		return Function{}, fmt.Errorf("%s::%s: %w", moduleName, e.name, err)
	}
	fn.Params = params
	if e.result != "" {
		result, err := ParseType(e.result)
		if err != nil {
			return Function{}, fmt.Errorf("%s::%s: %w", moduleName, e.name, err)
		}
		fn.Result = result
	}
	return fn, nil
}

// parseParams reads "name: type, name: type". Commas inside brackets belong
// to the type.
func parseParams(s string) ([]Param, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	var out []Param
	for _, part := range splitTopLevel(s) {
		name, typ, ok := strings.Cut(part, ":")
		if !ok {
			return nil, fmt.Errorf("parameter %q has no type", strings.TrimSpace(part))
		}
		t, err := ParseType(strings.TrimSpace(typ))
		if err != nil {
			return nil, err
		}
		out = append(out, Param{Name: strings.TrimSpace(name), Type: t})
	}
	return out, nil
}

func splitTopLevel(s string) []string {
	var parts []string
	depth, start := 0, 0
	for i, r := range s {
		switch r {
		case '[', '(', '<':
			depth++
		case ']', ')':
			depth--
		case '>':
			if i == 0 || s[i-1] != '-' {
				depth--
			}
		case ',':
			if depth == 0 {
				parts = append(parts, s[start:i])
				start = i + 1
			}
		}
	}
	return append(parts, s[start:])
}
