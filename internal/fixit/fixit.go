// Package fixit turns the "add a validation method" diagnostic into source
// edits. It needs nothing but the diagnostic's properties and the file that
// declares the type.
package fixit

import (
	"bytes"
	"go/ast"
	"go/format"
	"go/parser"
	"go/token"
	"slices"
	"text/template"

	"intellenum-generator/internal/common"
	"intellenum-generator/internal/diagnostic"
	"intellenum-generator/internal/errs"
	"intellenum-generator/internal/validate"
)

// MethodName is the name of the generated validation method.
const MethodName = "validate"

var (
	// ErrNotApplicable is returned for diagnostics this package cannot fix.
	ErrNotApplicable = errs.New("diagnostic has no fix")
	// ErrTypeNotFound is returned when the file does not declare the type.
	ErrTypeNotFound = errs.New("type declaration not found")
	// ErrAlreadyValidated is returned when the type has a validation method.
	ErrAlreadyValidated = errs.New("type already has a validation method")
)

type stubData struct {
	TypeName  string
	Primitive string
	Method    string
}

var stubTemplate = template.Must(template.New("stub").Parse(`// {{.Method}} reports whether value may be wrapped by a {{.TypeName}}.
func ({{.TypeName}}) {{.Method}}(value {{.Primitive}}) error {
	return nil
}
`))

// ValidationStub renders the validation method the diagnostic asks for.
func ValidationStub(d diagnostic.Diagnostic) (string, error) {
	typeName, primitive, err := target(d)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := stubTemplate.Execute(&buf, stubData{TypeName: typeName, Primitive: primitive, Method: MethodName}); err != nil {
		return "", errs.Wrap(err, "executing stub template")
	}

	return buf.String(), nil
}

func target(d diagnostic.Diagnostic) (string, string, error) {
	if d.Code != diagnostic.AddValidationMethod {
		return "", "", errs.Wrapf(ErrNotApplicable, "%s", d.Code)
	}

	typeName := d.Property(diagnostic.PropTypeName)
	primitive := d.Property(diagnostic.PropPrimitiveType)

	if !common.IsIdent(typeName) || primitive == "" {
		return "", "", errs.Wrapf(ErrNotApplicable, "%s lacks %s or %s", d.Code, diagnostic.PropTypeName, diagnostic.PropPrimitiveType)
	}

	return typeName, primitive, nil
}

// Apply inserts the stub after the declaration of the diagnosed type in src
// and formats the result.
func Apply(src []byte, d diagnostic.Diagnostic) ([]byte, error) {
	typeName, _, err := target(d)
	if err != nil {
		return nil, err
	}

	fset := token.NewFileSet()

	file, err := parser.ParseFile(fset, "", src, parser.ParseComments)
	if err != nil {
		return nil, errs.Wrap(err, "parsing source")
	}

	decl := findTypeDecl(file, typeName)
	if decl == nil {
		return nil, errs.Wrapf(ErrTypeNotFound, "%s", typeName)
	}

	if hasValidation(file, typeName) {
		return nil, errs.Wrapf(ErrAlreadyValidated, "%s", typeName)
	}

	stub, err := ValidationStub(d)
	if err != nil {
		return nil, err
	}

	end := fset.Position(decl.End()).Offset

	var out bytes.Buffer
	out.Write(src[:end])
	out.WriteString("\n\n")
	out.WriteString(stub)
	out.Write(src[end:])

	formatted, err := format.Source(out.Bytes())
	if err != nil {
		return nil, errs.Wrap(err, "formatting result")
	}

	return formatted, nil
}

func findTypeDecl(file *ast.File, name string) *ast.GenDecl {
	for _, d := range file.Decls {
		gd, ok := d.(*ast.GenDecl)
		if !ok || gd.Tok != token.TYPE {
			continue
		}

		for _, spec := range gd.Specs {
			if ts, ok := spec.(*ast.TypeSpec); ok && ts.Name.Name == name {
				return gd
			}
		}
	}

	return nil
}

func hasValidation(file *ast.File, typeName string) bool {
	for _, d := range file.Decls {
		fd, ok := d.(*ast.FuncDecl)
		if !ok || fd.Recv == nil || len(fd.Recv.List) != 1 {
			continue
		}

		if !slices.Contains(validate.ValidationMethodNames, fd.Name.Name) {
			continue
		}

		recv := fd.Recv.List[0].Type
		if star, ok := recv.(*ast.StarExpr); ok {
			recv = star.X
		}

		if id, ok := recv.(*ast.Ident); ok && id.Name == typeName {
			return true
		}
	}

	return false
}
