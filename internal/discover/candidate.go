package discover

import (
	"go/ast"
	"go/parser"
	"go/token"
	"strconv"

	"intellenum-generator/internal/analyze"
	"intellenum-generator/internal/common"
	"intellenum-generator/internal/config"
	"intellenum-generator/primitive"
)

// MaxMarkerDepth is how many derivation steps a marker may be away from the
// generation marker and still count.
const MaxMarkerDepth = 2

// Kind is the structural kind of a candidate.
type Kind int

const (
	KindUnknown   Kind = iota // the declared type could not be resolved
	KindStruct                // struct embedding the generated state
	KindValue                 // defined type over a non-struct type
	KindInterface             // interface type; never generated
)

// String returns a human-readable representation of the Kind.
func (k Kind) String() string {
	switch k {
	case KindStruct:
		return "struct"
	case KindValue:
		return "value"
	case KindInterface:
		return "interface"
	default:
		return common.UnknownStr
	}
}

// Instance is one named instance declared with a member directive.
type Instance struct {
	Name    string
	Value   string // Go expression as written; empty when missing
	Literal primitive.Literal
	// ValueErr is set when Value is not a valid Go expression.
	ValueErr string
	Doc      string
	Pos      token.Position
}

// ArgIssue is an argument problem found while extracting a candidate.
type ArgIssue struct {
	config.ArgError
	Pos token.Position
}

// Candidate is one declaration eligible for generation. It is immutable once
// extracted.
type Candidate struct {
	Decl    *analyze.Decl
	Name    string
	PkgPath string
	PkgName string
	Kind    Kind
	// Local is the configuration written on the declaration itself, with
	// unset sentinels for everything it leaves out.
	Local     config.Configuration
	Marker    analyze.Annotation
	Markers   int // marker annotations found; only the first is used
	Instances []Instance
	ArgIssues []ArgIssue
}

// ID returns the declaration identity.
func (c *Candidate) ID() analyze.DeclID {
	return c.Decl.ID
}

// FullName is the fully qualified name of the candidate's type.
func (c *Candidate) FullName() string {
	return c.Decl.FullName()
}

// TypeID returns the identity of the declared type.
func (c *Candidate) TypeID() analyze.TypeID {
	return analyze.TypeID{PkgPath: c.PkgPath, Name: c.Name}
}

// IsStructuralCandidate is the cheap syntactic test: a type declaration
// carrying at least one directive.
func IsStructuralCandidate(decl *analyze.Decl) bool {
	return decl.IsType && len(decl.Directives) > 0
}

// Extract resolves decl into a Candidate. It returns false when decl carries
// no annotation deriving from the generation marker within MaxMarkerDepth.
func Extract(decl *analyze.Decl, oracle analyze.Oracle) (*Candidate, bool) {
	if !IsStructuralCandidate(decl) {
		return nil, false
	}

	anns := oracle.Annotations(decl)

	var markers []analyze.Annotation
	for _, a := range anns {
		if d := a.Depth(analyze.MarkerEnum); d >= 0 && d <= MaxMarkerDepth {
			markers = append(markers, a)
		}
	}

	marker, ok := common.First(markers)
	if !ok {
		return nil, false
	}

	c := &Candidate{
		Decl:    decl,
		Name:    decl.Name,
		PkgPath: decl.PkgPath,
		PkgName: decl.PkgName,
		Marker:  marker,
		Markers: len(markers),
		Kind:    kindOf(decl, oracle),
	}

	raw, argErrs := markerArgs(c.Marker)
	local, typeErrs := config.Resolve(raw, decl, oracle)
	c.Local = local

	for _, e := range append(argErrs, typeErrs...) {
		c.ArgIssues = append(c.ArgIssues, ArgIssue{ArgError: e, Pos: c.Marker.Pos})
	}

	for _, a := range anns {
		if a.Name != analyze.MemberName {
			continue
		}

		m := analyze.ParseMember(a.Raw)
		inst := Instance{Name: m.Name, Value: m.Value, Doc: m.Doc, Pos: a.Pos}
		if m.Value != "" {
			inst.Literal, inst.ValueErr = ClassifyLiteral(m.Value)
		}

		c.Instances = append(c.Instances, inst)
	}

	return c, true
}

func markerArgs(marker analyze.Annotation) (config.Raw, []config.ArgError) {
	raw, errs := config.ParseArgs(marker.Args)
	if marker.TypeArg != "" {
		raw.UnderlyingExpr = marker.TypeArg
	}

	return raw, errs
}

func kindOf(decl *analyze.Decl, oracle analyze.Oracle) Kind {
	info, ok := oracle.DeclaredType(decl)
	if !ok {
		return KindUnknown
	}

	switch info.Kind {
	case analyze.TypeKindStruct:
		return KindStruct
	case analyze.TypeKindInterface:
		return KindInterface
	default:
		return KindValue
	}
}

// ClassifyLiteral tells what kind of literal a value expression is. Anything
// other than a plain literal (optionally signed) is LiteralExpr. An
// expression that does not parse is reported through the error string.
func ClassifyLiteral(expr string) (primitive.Literal, string) {
	e, err := parser.ParseExpr(expr)
	if err != nil {
		return primitive.LiteralExpr, err.Error()
	}

	return classify(e), ""
}

func classify(e ast.Expr) primitive.Literal {
	switch x := e.(type) {
	case *ast.ParenExpr:
		return classify(x.X)
	case *ast.UnaryExpr:
		if x.Op == token.SUB || x.Op == token.ADD {
			if lit := classify(x.X); lit == primitive.LiteralInt || lit == primitive.LiteralFloat {
				return lit
			}
		}

		return primitive.LiteralExpr
	case *ast.BasicLit:
		switch x.Kind {
		case token.INT, token.CHAR:
			return primitive.LiteralInt
		case token.FLOAT:
			return primitive.LiteralFloat
		case token.STRING:
			if _, err := strconv.Unquote(x.Value); err == nil {
				return primitive.LiteralString
			}
		}

		return primitive.LiteralExpr
	case *ast.Ident:
		if x.Name == "true" || x.Name == "false" {
			return primitive.LiteralBool
		}

		return primitive.LiteralExpr
	default:
		return primitive.LiteralExpr
	}
}
