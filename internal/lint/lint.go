// Package lint holds a go/analysis analyzer reporting reflection that creates
// or modifies generated value types outside their lookup and validation
// functions.
package lint

import (
	"fmt"
	"go/ast"
	"go/token"
	"go/types"

	"golang.org/x/tools/go/analysis"
	"golang.org/x/tools/go/types/typeutil"

	"intellenum-generator/internal/analyze"
	"intellenum-generator/internal/diagnostic"
)

// Analyzer reports reflect.New, reflect.Zero and reflect.NewAt applied to a
// generated value type, and reflect.ValueOf applied to a pointer to one.
var Analyzer = &analysis.Analyzer{
	Name:      "intellenumreflect",
	Doc:       "report reflection used to construct or modify generated value types",
	Run:       run,
	FactTypes: []analysis.Fact{new(generated)},
}

// generated marks a type declared with a marker directive. It is exported so
// that packages using the type are checked too.
type generated struct{}

func (*generated) AFact() {}

func (*generated) String() string { return "intellenum" }

func run(pass *analysis.Pass) (any, error) {
	for _, file := range pass.Files {
		exportFacts(pass, file)
	}

	for _, file := range pass.Files {
		if ast.IsGenerated(file) {
			continue
		}

		ast.Inspect(file, func(n ast.Node) bool {
			if call, ok := n.(*ast.CallExpr); ok {
				check(pass, call)
			}

			return true
		})
	}

	return nil, nil
}

// exportFacts marks every type in file whose doc comment carries a marker.
func exportFacts(pass *analysis.Pass, file *ast.File) {
	ast.Inspect(file, func(n ast.Node) bool {
		gd, ok := n.(*ast.GenDecl)
		if !ok {
			return true
		}

		for _, spec := range gd.Specs {
			ts, ok := spec.(*ast.TypeSpec)
			if !ok {
				continue
			}

			doc := ts.Doc
			if doc == nil && len(gd.Specs) == 1 {
				doc = gd.Doc
			}

			if !hasMarker(doc) {
				continue
			}

			if obj, ok := pass.TypesInfo.Defs[ts.Name].(*types.TypeName); ok {
				pass.ExportObjectFact(obj, new(generated))
			}
		}

		return true
	})
}

func hasMarker(doc *ast.CommentGroup) bool {
	if doc == nil {
		return false
	}

	for _, c := range doc.List {
		if d, ok := analyze.ParseDirectiveLine(c.Text, token.Position{}); ok && analyze.IsBuiltinMarker(d.Name) {
			return true
		}
	}

	return false
}

func check(pass *analysis.Pass, call *ast.CallExpr) {
	fn := reflectFunc(pass, call)
	if fn == "" || len(call.Args) == 0 {
		return
	}

	var t types.Type

	switch fn {
	case "New", "Zero", "NewAt":
		t = reflectedType(pass, call.Args[0])
	case "ValueOf":
		if ptr, ok := types.Unalias(pass.TypesInfo.TypeOf(call.Args[0])).(*types.Pointer); ok {
			t = ptr.Elem()
		}
	}

	obj := markedType(pass, t)
	if obj == nil {
		return
	}

	pass.Report(analysis.Diagnostic{
		Pos:      call.Pos(),
		End:      call.End(),
		Category: diagnostic.DoNotUseReflection,
		Message:  fmt.Sprintf("reflect.%s on %s bypasses its named instances and validation", fn, obj.Name()),
	})
}

// reflectFunc returns the name of the package-level reflect function call
// invokes, or "" for anything else.
func reflectFunc(pass *analysis.Pass, call *ast.CallExpr) string {
	fn, ok := typeutil.Callee(pass.TypesInfo, call).(*types.Func)
	if !ok || fn.Pkg() == nil || fn.Pkg().Path() != "reflect" {
		return ""
	}

	if sig, ok := fn.Type().(*types.Signature); ok && sig.Recv() != nil {
		return ""
	}

	return fn.Name()
}

// reflectedType follows a reflect.Type expression back to the static type it
// describes: reflect.TypeOf(x), reflect.TypeFor[T]() and .Elem() of either.
// It returns nil when the type is not known statically.
func reflectedType(pass *analysis.Pass, expr ast.Expr) types.Type {
	call, ok := ast.Unparen(expr).(*ast.CallExpr)
	if !ok {
		return nil
	}

	switch reflectFunc(pass, call) {
	case "TypeOf":
		if len(call.Args) == 1 {
			return pass.TypesInfo.TypeOf(call.Args[0])
		}

		return nil
	case "TypeFor":
		return typeArg(pass, call.Fun)
	}

	sel, ok := ast.Unparen(call.Fun).(*ast.SelectorExpr)
	if !ok || sel.Sel.Name != "Elem" || len(call.Args) != 0 {
		return nil
	}

	switch t := types.Unalias(reflectedType(pass, sel.X)).(type) {
	case *types.Pointer:
		return t.Elem()
	case *types.Slice:
		return t.Elem()
	case *types.Array:
		return t.Elem()
	default:
		return nil
	}
}

// typeArg returns the single type argument of an instantiated function.
func typeArg(pass *analysis.Pass, fun ast.Expr) types.Type {
	fun = ast.Unparen(fun)
	if ix, ok := fun.(*ast.IndexExpr); ok {
		fun = ix.X
	}

	var id *ast.Ident

	switch f := fun.(type) {
	case *ast.Ident:
		id = f
	case *ast.SelectorExpr:
		id = f.Sel
	default:
		return nil
	}

	inst, ok := pass.TypesInfo.Instances[id]
	if !ok || inst.TypeArgs.Len() != 1 {
		return nil
	}

	return inst.TypeArgs.At(0)
}

// markedType returns the declaration of t when it carries the generated fact.
func markedType(pass *analysis.Pass, t types.Type) *types.TypeName {
	if t == nil {
		return nil
	}

	named, ok := types.Unalias(t).(*types.Named)
	if !ok {
		return nil
	}

	obj := named.Origin().Obj()
	if obj.Pkg() == nil || !pass.ImportObjectFact(obj, new(generated)) {
		return nil
	}

	return obj
}
