package analyze

import (
	"fmt"
	"go/token"
	"strings"

	"intellenum-generator/internal/common"
)

// TypeID uniquely identifies a type by its package path and name.
// Predeclared and unnamed types have an empty PkgPath and carry their
// type expression as Name, e.g. "int" or "[]byte".
type TypeID struct {
	PkgPath string // e.g., "example.com/shop"
	Name    string // e.g., "CustomerType"
}

// String returns a human-readable representation of the TypeID.
func (t TypeID) String() string {
	if t.PkgPath == "" {
		return t.Name
	}

	return t.PkgPath + "." + t.Name
}

// IsZero reports whether t is the zero TypeID, which means "not set".
func (t TypeID) IsZero() bool {
	return t == TypeID{}
}

// Predeclared returns the TypeID of a predeclared type such as "int".
func Predeclared(name string) TypeID {
	return TypeID{Name: name}
}

// ErrorTypeID is the predeclared error interface.
var ErrorTypeID = Predeclared("error")

// TypeKind represents the kind of a type's underlying type.
type TypeKind int

const (
	TypeKindUnknown   TypeKind = iota
	TypeKindBasic              // int, string, bool, etc.
	TypeKindStruct             // struct type
	TypeKindPointer            // pointer to another type
	TypeKindSlice              // slice of another type
	TypeKindArray              // array of another type
	TypeKindMap                // map type
	TypeKindChan               // channel type
	TypeKindFunc               // function type
	TypeKindInterface          // interface type
)

// String returns a human-readable representation of the TypeKind.
func (k TypeKind) String() string {
	switch k {
	case TypeKindBasic:
		return "basic"
	case TypeKindStruct:
		return "struct"
	case TypeKindPointer:
		return "pointer"
	case TypeKindSlice:
		return "slice"
	case TypeKindArray:
		return "array"
	case TypeKindMap:
		return "map"
	case TypeKindChan:
		return "chan"
	case TypeKindFunc:
		return "func"
	case TypeKindInterface:
		return "interface"
	default:
		return common.UnknownStr
	}
}

// IsCollection reports whether values of this kind hold a variable number of
// elements. Fixed-size arrays are values, not collections.
func (k TypeKind) IsCollection() bool {
	switch k {
	case TypeKindSlice, TypeKindMap, TypeKindChan:
		return true
	default:
		return false
	}
}

// TypeInfo describes a type known to the oracle.
type TypeInfo struct {
	ID      TypeID
	PkgName string   // package name used to qualify the type from other packages
	Kind    TypeKind // kind of the underlying type
	// Underlying is what a defined non-struct type was declared over, e.g.
	// {"" "int"} for `type Color int` or {"" "[]string"} for `type Tags []string`.
	Underlying TypeID
	Elem       TypeID      // element type of pointers, slices, arrays, chans and map values
	Fields     []FieldInfo // struct fields, exported or not
	Comparable bool        // values support ==
	// Implements lists the interfaces (including error) the type or a pointer
	// to it satisfies, among the interfaces the oracle knows about.
	Implements []TypeID
	Pos        token.Position
}

// IsNamed returns true if this type has a package path.
func (t *TypeInfo) IsNamed() bool {
	return t.ID.PkgPath != ""
}

// Embeds reports whether the struct type has an embedded field of type name
// declared in the same package.
func (t *TypeInfo) Embeds(name string) bool {
	for _, f := range t.Fields {
		if f.Embedded && f.Type.Name == name && (f.Type.PkgPath == t.ID.PkgPath || f.Type.PkgPath == "") {
			return true
		}
	}

	return false
}

// QualifiedName returns how the type is written from package pkgPath.
func (t *TypeInfo) QualifiedName(pkgPath string) string {
	if t.ID.PkgPath == "" || t.ID.PkgPath == pkgPath {
		return t.ID.Name
	}

	return t.PkgName + "." + t.ID.Name
}

// FieldInfo describes a struct field.
type FieldInfo struct {
	Name     string
	Type     TypeID
	Embedded bool
}

// DeclID is a stable identity of a declaration: "pkgpath.Name@file:line".
type DeclID string

// String implements fmt.Stringer.
func (id DeclID) String() string {
	return string(id)
}

// NewDeclID builds the identity of a declaration named name at pos.
func NewDeclID(pkgPath, name string, pos token.Position) DeclID {
	return DeclID(fmt.Sprintf("%s.%s@%s:%d", pkgPath, name, pos.Filename, pos.Line))
}

// Directive is one raw "//intellenum:<name> <args>" comment line.
type Directive struct {
	Name string // text after "intellenum:" up to the first blank, e.g. "enum[string]"
	Args string // the rest of the line, trimmed
	Pos  token.Position
}

// Decl is a declaration visible to the pipeline. A package clause carrying
// directives is a Decl with IsType false, and so are detached directives.
type Decl struct {
	ID         DeclID
	Name       string
	PkgPath    string
	PkgName    string
	Dir        string // directory of the declaring file
	Pos        token.Position
	IsType     bool
	Nested     bool // declared inside a function body
	Generated  bool // declared in a file marked as generated
	// Detached marks directives found in a comment that documents neither
	// the package clause nor a type.
	Detached   bool
	Directives []Directive
	// Imports maps the local import names of the declaring file to import
	// paths. It resolves type references in directive arguments.
	Imports map[string]string
}

// FullName is the fully qualified name used for duplicate detection.
func (d *Decl) FullName() string {
	return d.PkgPath + "." + d.Name
}

// RefKind is how a parameter is passed.
type RefKind int

const (
	RefByValue RefKind = iota
	RefByRef           // pointer parameter that is read and may be written
	RefIn              // read-only reference
	RefOut             // receives a result
)

// String returns a human-readable representation of the RefKind.
func (r RefKind) String() string {
	switch r {
	case RefByValue:
		return "value"
	case RefByRef:
		return "ref"
	case RefIn:
		return "in"
	case RefOut:
		return "out"
	default:
		return common.UnknownStr
	}
}

// Param is one parameter of a Member.
type Param struct {
	Name    string
	Type    TypeID
	Display string // type as written from the member's package, e.g. "*time.Location"
	Import  string // import path the Display form needs, if any
	Ref     RefKind
}

// ResultKind classifies what a member returns besides an Out value.
type ResultKind int

const (
	ResultNone ResultKind = iota
	ResultBool
	ResultError
	ResultOther
)

// OutForm records how an Out parameter maps back to Go.
type OutForm int

const (
	OutNone    OutForm = iota
	OutPointer         // trailing pointer parameter: func(s string, out *T) bool
	OutResult          // first result: func(s string) (T, error)
)

// Member is a method or package function.
type Member struct {
	Name    string
	Owner   TypeID // receiver type for methods; the produced type for static members
	PkgPath string // package declaring the member
	Static  bool   // package function rather than method
	PtrRecv bool   // method declared on a pointer receiver
	Params  []Param
	Result  ResultKind
	OutForm OutForm
	// Returns is the first result type for members that are not normalized
	// into an Out parameter.
	Returns   TypeID
	Signature string // documentation form, e.g. "func strconv.Atoi(s string) (int, error)"
	Call      string // call expression prefix, e.g. "strconv.Atoi"
	Import    string // import path Call needs
	Pos       token.Position
}

// Out returns the Out parameter of the member.
func (m *Member) Out() (Param, bool) {
	if len(m.Params) == 0 {
		return Param{}, false
	}

	last := m.Params[len(m.Params)-1]

	return last, last.Ref == RefOut
}

// SiteKind is how a type was constructed.
type SiteKind int

const (
	SiteComposite SiteKind = iota // T{...}
	SiteNew                       // new(T)
)

// Site is a construction of a type outside generated code.
type Site struct {
	Kind SiteKind
	Pos  token.Position
}

// TypeFromExpr classifies a syntactic type expression that names no declared
// type, like "[]int" or "map[string]int".
func TypeFromExpr(expr string) (TypeKind, bool) {
	switch {
	case strings.HasPrefix(expr, "[]"):
		return TypeKindSlice, true
	case strings.HasPrefix(expr, "["):
		return TypeKindArray, true
	case strings.HasPrefix(expr, "map["):
		return TypeKindMap, true
	case strings.HasPrefix(expr, "chan ") || strings.HasPrefix(expr, "<-chan ") || strings.HasPrefix(expr, "chan<- "):
		return TypeKindChan, true
	case strings.HasPrefix(expr, "*"):
		return TypeKindPointer, true
	case strings.HasPrefix(expr, "func("):
		return TypeKindFunc, true
	case strings.HasPrefix(expr, "interface{") || expr == "any":
		return TypeKindInterface, true
	default:
		return TypeKindUnknown, false
	}
}
