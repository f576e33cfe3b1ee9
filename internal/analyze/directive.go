package analyze

import (
	"go/token"
	"strconv"
	"strings"
	"unicode"
)

// DirectivePrefix starts every directive comment the generator understands.
const DirectivePrefix = "intellenum:"

// Directive names.
const (
	MarkerEnum     = "enum"       // the generation marker
	MarkerEnumOf   = "enum[T]"    // marker with the underlying type as a type argument
	MarkerWrapper  = "wrapper[T]" // single-value wrapper, derives from enum[T]
	MemberName     = "member"     // named instance
	DefaultsName   = "defaults"   // program-wide defaults, on a package clause
	genericArgForm = "[T]"

	maxLineage = 8
)

// Arg is one directive argument. Bare words have an empty Key.
type Arg struct {
	Key   string
	Value string
}

// Annotation is a parsed directive.
type Annotation struct {
	// Name is the directive name with any type argument replaced by "[T]".
	Name string
	// Lineage is the derivation chain of marker annotations, starting with
	// Name itself. Non-marker directives have a single element.
	Lineage []string
	TypeArg string // "string" for "enum[string]"
	Args    []Arg
	Raw     string // unparsed argument text
	Pos     token.Position
}

// Depth returns how many derivation steps separate the annotation from
// marker, or -1 when marker is not in its lineage.
func (a *Annotation) Depth(marker string) int {
	for i, name := range a.Lineage {
		if name == marker {
			return i
		}
	}

	return -1
}

// Arg returns the value of the first argument with key.
func (a *Annotation) Arg(key string) (string, bool) {
	for _, arg := range a.Args {
		if arg.Key == key {
			return arg.Value, true
		}
	}

	return "", false
}

// builtinLineage is the derivation chain of the shipped marker forms.
var builtinLineage = map[string]string{
	MarkerEnumOf:  MarkerEnum,
	MarkerWrapper: MarkerEnumOf,
}

// IsBuiltinMarker reports whether name, as written in a directive, is one of
// the shipped marker forms such as "enum" or "wrapper[int]".
func IsBuiltinMarker(name string) bool {
	if i := strings.IndexByte(name, '['); i > 0 && strings.HasSuffix(name, "]") {
		name = name[:i] + genericArgForm
	}

	_, derived := builtinLineage[name]

	return name == MarkerEnum || derived
}

// ParseDirectiveLine splits a comment text like "//intellenum:enum x=1" into
// a Directive. It returns false for comments that are not directives.
func ParseDirectiveLine(text string, pos token.Position) (Directive, bool) {
	text = strings.TrimPrefix(text, "//")
	if !strings.HasPrefix(text, DirectivePrefix) {
		return Directive{}, false
	}

	text = strings.TrimPrefix(text, DirectivePrefix)
	name, args, _ := strings.Cut(text, " ")
	if name == "" {
		return Directive{}, false
	}

	return Directive{Name: name, Args: strings.TrimSpace(args), Pos: pos}, true
}

// parseAnnotation turns a directive into an annotation. base maps a marker
// name to the marker it derives from.
func parseAnnotation(d Directive, base func(string) (string, bool)) Annotation {
	name, typeArg := d.Name, ""
	if i := strings.IndexByte(name, '['); i > 0 && strings.HasSuffix(name, "]") {
		name, typeArg = name[:i]+genericArgForm, name[i+1:len(name)-1]
	}

	a := Annotation{
		Name:    name,
		Lineage: []string{name},
		TypeArg: typeArg,
		Raw:     d.Args,
		Pos:     d.Pos,
	}

	// cycles in user-registered markers stop at maxLineage
	for cur := name; len(a.Lineage) < maxLineage; {
		next, ok := base(cur)
		if !ok {
			break
		}

		a.Lineage = append(a.Lineage, next)
		cur = next
	}

	if name != MemberName {
		for _, tok := range splitArgs(d.Args) {
			a.Args = append(a.Args, parseArg(d.Args[tok.start:tok.end]))
		}
	}

	return a
}

func parseArg(tok string) Arg {
	key, value, ok := strings.Cut(tok, "=")
	if !ok || !isWord(key) {
		return Arg{Value: unquote(tok)}
	}

	return Arg{Key: key, Value: unquote(value)}
}

func isWord(s string) bool {
	if s == "" {
		return false
	}

	for _, r := range s {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_' && r != '-' {
			return false
		}
	}

	return true
}

func unquote(s string) string {
	if len(s) >= 2 && (s[0] == '"' || s[0] == '`') {
		if u, err := strconv.Unquote(s); err == nil {
			return u
		}
	}

	return s
}

// MemberArgs holds the parts of a member directive.
type MemberArgs struct {
	Name  string
	Value string // Go expression, as written
	Doc   string
}

// ParseMember splits member directive arguments: a name, a value expression
// and optional documentation. The value may be quoted or contain blanks
// inside brackets, e.g. `Epoch time.Date(1970, 1, 1, 0, 0, 0, 0, time.UTC)`.
func ParseMember(raw string) MemberArgs {
	toks := splitArgs(raw)

	var m MemberArgs
	if len(toks) > 0 {
		m.Name = raw[toks[0].start:toks[0].end]
	}

	if len(toks) > 1 {
		m.Value = raw[toks[1].start:toks[1].end]
	}

	if len(toks) > 2 {
		m.Doc = strings.TrimSpace(raw[toks[2].start:])
	}

	return m
}

type span struct {
	start, end int
}

// splitArgs splits s on blanks that are outside quotes and brackets.
func splitArgs(s string) []span {
	var (
		res   []span
		start = -1
		depth int
		quote rune
	)

	escaped := false
	for i, r := range s {
		if start < 0 {
			if unicode.IsSpace(r) {
				continue
			}

			start = i
		}

		switch {
		case quote != 0:
			switch {
			case escaped:
				escaped = false
			case r == '\\' && quote != '`':
				escaped = true
			case r == quote:
				quote = 0
			}

			continue
		case r == '"' || r == '`' || r == '\'':
			quote = r
		case r == '(' || r == '[' || r == '{':
			depth++
		case r == ')' || r == ']' || r == '}':
			if depth > 0 {
				depth--
			}
		case unicode.IsSpace(r) && depth == 0:
			res = append(res, span{start: start, end: i})
			start = -1
		}
	}

	if start >= 0 {
		res = append(res, span{start: start, end: len(s)})
	}

	return res
}
