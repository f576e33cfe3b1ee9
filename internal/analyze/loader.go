package analyze

import (
	"context"
	"go/ast"
	"go/token"
	"go/types"
	"path"
	"path/filepath"
	"strconv"

	"go.uber.org/zap"
	"golang.org/x/tools/go/packages"

	"intellenum-generator/internal/errs"
	"intellenum-generator/internal/logger"
)

// LoadMode specifies what information to load from packages.
const LoadMode = packages.NeedName |
	packages.NeedFiles |
	packages.NeedSyntax |
	packages.NeedTypes |
	packages.NeedTypesInfo |
	packages.NeedImports |
	packages.NeedDeps

// Options configure Load.
type Options struct {
	// Dir is the directory patterns are resolved in. Empty means the
	// current directory.
	Dir string
	// Patterns are standard Go package patterns. Empty means ".".
	Patterns []string
	// Tests includes test files.
	Tests  bool
	Logger *zap.Logger
}

// Load loads the packages matching opts.Patterns and records everything the
// pipeline queries into a Program.
//
// Type errors are tolerated: before the first generation run, declarations
// refer to state types and instances that do not exist yet. Packages are
// type-checked from source so that such errors never reach the go command's
// compiler.
func Load(ctx context.Context, opts Options) (*Program, error) {
	log := logger.OrNop(opts.Logger)

	patterns := opts.Patterns
	if len(patterns) == 0 {
		patterns = []string{"."}
	}

	cfg := &packages.Config{
		Context: ctx,
		Mode:    LoadMode,
		Dir:     opts.Dir,
		Tests:   opts.Tests,
		Fset:    token.NewFileSet(),
	}

	pkgs, err := packages.Load(cfg, patterns...)
	if err != nil {
		return nil, errs.Wrap(err, "failed to load packages")
	}

	var fatal []error
	for _, pkg := range pkgs {
		for _, e := range pkg.Errors {
			if e.Kind == packages.TypeError {
				log.Debug("type error ignored", zap.String("package", pkg.PkgPath), zap.String("error", e.Msg))
				continue
			}

			fatal = append(fatal, e)
		}
	}

	if len(fatal) > 0 {
		return nil, errs.Newf("package errors: %v", fatal)
	}

	l := newLoader(cfg.Fset, log)
	for _, pkg := range pkgs {
		l.index(pkg)
	}

	for _, pkg := range pkgs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		l.processPackage(pkg)
	}

	log.Debug("packages loaded", zap.Int("packages", len(pkgs)), zap.Int("decls", len(l.prog.decls)))

	return l.prog, nil
}

type loader struct {
	prog       *Program
	fset       *token.FileSet
	log        *zap.Logger
	interfaces []*types.Named
	errorIface *types.Interface
	generated  map[string]bool // file name -> generated
	processed  map[string]bool // files already walked by another package variant
	claimed    map[token.Pos]bool
}

func newLoader(fset *token.FileSet, log *zap.Logger) *loader {
	return &loader{
		prog:       NewProgram(),
		fset:       fset,
		log:        log,
		errorIface: types.Universe.Lookup("error").Type().Underlying().(*types.Interface),
		generated:  make(map[string]bool),
		processed:  make(map[string]bool),
		claimed:    make(map[token.Pos]bool),
	}
}

// index remembers which files of pkg are generated and the named interfaces
// of pkg, so that TypeInfo.Implements can be filled in.
func (l *loader) index(pkg *packages.Package) {
	for _, file := range pkg.Syntax {
		l.generated[l.fset.Position(file.Pos()).Filename] = ast.IsGenerated(file)
	}

	if pkg.Types == nil {
		return
	}

	scope := pkg.Types.Scope()
	for _, name := range scope.Names() {
		tn, ok := scope.Lookup(name).(*types.TypeName)
		if !ok {
			continue
		}

		if named, ok := tn.Type().(*types.Named); ok && types.IsInterface(named) {
			l.interfaces = append(l.interfaces, named)
		}
	}
}

// processPackage extracts declarations, types, members and construction
// sites from a loaded package.
func (l *loader) processPackage(pkg *packages.Package) {
	if pkg.Types == nil || pkg.TypesInfo == nil {
		return
	}

	scope := pkg.Types.Scope()
	for _, name := range scope.Names() {
		if tn, ok := scope.Lookup(name).(*types.TypeName); ok {
			l.ensureType(tn.Type())
		}
	}

	for _, file := range pkg.Syntax {
		l.processFile(pkg, file)
	}
}

func (l *loader) processFile(pkg *packages.Package, file *ast.File) {
	filename := l.fset.Position(file.Pos()).Filename
	if l.processed[filename] {
		// The test variant of a package repeats its non-test files.
		return
	}

	l.processed[filename] = true
	generated := l.generated[filename]
	imports := fileImports(pkg, file)

	if dirs := l.directives(file.Doc); len(dirs) > 0 {
		pos := l.fset.Position(file.Package)
		l.prog.AddDecl(&Decl{
			Name:       pkg.Name,
			PkgPath:    pkg.PkgPath,
			PkgName:    pkg.Name,
			Dir:        filepath.Dir(filename),
			Pos:        pos,
			Generated:  generated,
			Directives: dirs,
			Imports:    imports,
		})
	}

	newDecl := func(ts *ast.TypeSpec, doc *ast.CommentGroup, nested bool) {
		if ts.Doc != nil {
			doc = ts.Doc
		}

		dirs := l.directives(doc)
		if len(dirs) == 0 {
			return
		}

		if nested {
			if obj, ok := pkg.TypesInfo.Defs[ts.Name].(*types.TypeName); ok {
				l.ensureType(obj.Type())
			}
		}

		l.refineType(pkg, ts)
		l.prog.AddDecl(&Decl{
			Name:       ts.Name.Name,
			PkgPath:    pkg.PkgPath,
			PkgName:    pkg.Name,
			Dir:        filepath.Dir(filename),
			Pos:        l.fset.Position(ts.Pos()),
			IsType:     true,
			Nested:     nested,
			Generated:  generated,
			Directives: dirs,
			Imports:    imports,
		})
	}

	for _, decl := range file.Decls {
		switch d := decl.(type) {
		case *ast.GenDecl:
			if d.Tok != token.TYPE {
				continue
			}

			for _, spec := range d.Specs {
				var doc *ast.CommentGroup
				if len(d.Specs) == 1 {
					doc = d.Doc
				}

				newDecl(spec.(*ast.TypeSpec), doc, false)
			}

		case *ast.FuncDecl:
			if !generated {
				l.funcMember(pkg, d)
			}

			if d.Body == nil {
				continue
			}

			ast.Inspect(d.Body, func(n ast.Node) bool {
				ds, ok := n.(*ast.DeclStmt)
				if !ok {
					return true
				}

				gd, ok := ds.Decl.(*ast.GenDecl)
				if !ok || gd.Tok != token.TYPE {
					return true
				}

				for _, spec := range gd.Specs {
					var doc *ast.CommentGroup
					if len(gd.Specs) == 1 {
						doc = gd.Doc
					}

					newDecl(spec.(*ast.TypeSpec), doc, true)
				}

				return true
			})
		}
	}

	if !generated {
		l.constructionSites(pkg, file)
	}

	l.detached(pkg, file, generated, imports)
}

// detached records defaults directives that no declaration claimed, so that
// they can be reported instead of being ignored.
func (l *loader) detached(pkg *packages.Package, file *ast.File, generated bool, imports map[string]string) {
	var dirs []Directive
	for _, cg := range file.Comments {
		for _, c := range cg.List {
			if l.claimed[c.Slash] {
				continue
			}

			if d, ok := ParseDirectiveLine(c.Text, l.fset.Position(c.Slash)); ok && d.Name == DefaultsName {
				dirs = append(dirs, d)
			}
		}
	}

	if len(dirs) == 0 {
		return
	}

	l.prog.AddDecl(&Decl{
		Name:       pkg.Name,
		PkgPath:    pkg.PkgPath,
		PkgName:    pkg.Name,
		Dir:        filepath.Dir(l.fset.Position(file.Pos()).Filename),
		Pos:        dirs[0].Pos,
		Generated:  generated,
		Detached:   true,
		Directives: dirs,
		Imports:    imports,
	})
}

func (l *loader) directives(doc *ast.CommentGroup) []Directive {
	if doc == nil {
		return nil
	}

	var res []Directive
	for _, c := range doc.List {
		if d, ok := ParseDirectiveLine(c.Text, l.fset.Position(c.Slash)); ok {
			l.claimed[c.Slash] = true
			res = append(res, d)
		}
	}

	return res
}

func fileImports(pkg *packages.Package, file *ast.File) map[string]string {
	res := make(map[string]string, len(file.Imports))
	for _, imp := range file.Imports {
		importPath, err := strconv.Unquote(imp.Path.Value)
		if err != nil {
			continue
		}

		name := path.Base(importPath)
		if imported, ok := pkg.Imports[importPath]; ok && imported.Name != "" {
			name = imported.Name
		}

		if imp.Name != nil {
			name = imp.Name.Name
		}

		res[name] = importPath
	}

	return res
}

// ensureType records the TypeInfo of a named type once.
func (l *loader) ensureType(t types.Type) *TypeInfo {
	named, ok := types.Unalias(t).(*types.Named)
	if !ok || named.Obj().Pkg() == nil {
		return nil
	}

	id := typeID(named)
	if info, ok := l.prog.types[id]; ok {
		return info
	}

	info := &TypeInfo{
		ID:         id,
		PkgName:    named.Obj().Pkg().Name(),
		Comparable: types.Comparable(named),
		Pos:        l.fset.Position(named.Obj().Pos()),
	}
	l.prog.AddType(info)

	switch u := named.Underlying().(type) {
	case *types.Struct:
		info.Kind = TypeKindStruct
		for i := range u.NumFields() {
			f := u.Field(i)
			info.Fields = append(info.Fields, FieldInfo{Name: f.Name(), Type: typeID(f.Type()), Embedded: f.Embedded()})
		}
	case *types.Basic:
		info.Kind = TypeKindBasic
		info.Underlying = canonical(Predeclared(u.Name()))
	case *types.Interface:
		info.Kind = TypeKindInterface
	case *types.Pointer:
		info.Kind = TypeKindPointer
		info.Elem = typeID(u.Elem())
	case *types.Slice:
		info.Kind = TypeKindSlice
		info.Elem = typeID(u.Elem())
	case *types.Array:
		info.Kind = TypeKindArray
		info.Elem = typeID(u.Elem())
	case *types.Map:
		info.Kind = TypeKindMap
		info.Elem = typeID(u.Elem())
	case *types.Chan:
		info.Kind = TypeKindChan
		info.Elem = typeID(u.Elem())
	case *types.Signature:
		info.Kind = TypeKindFunc
	}

	if info.Kind != TypeKindStruct && info.Kind != TypeKindInterface && info.Underlying.IsZero() {
		info.Underlying = typeID(named.Underlying())
	}

	ptr := types.NewPointer(named)
	if types.Implements(named, l.errorIface) || types.Implements(ptr, l.errorIface) {
		info.Implements = append(info.Implements, ErrorTypeID)
	}

	for _, iface := range l.interfaces {
		if iface == named {
			continue
		}

		it := iface.Underlying().(*types.Interface)
		if types.Implements(named, it) || types.Implements(ptr, it) {
			info.Implements = append(info.Implements, typeID(iface))
		}
	}

	for i := range named.NumMethods() {
		fn := named.Method(i)
		if l.generated[l.fset.Position(fn.Pos()).Filename] {
			continue
		}

		l.prog.AddMember(l.member(fn, id))
	}

	return info
}

// refineType completes what go/types cannot tell about a declared type
// before its generated companion exists: embedded fields whose type is still
// undeclared, and the named type a defined type was written over.
func (l *loader) refineType(pkg *packages.Package, ts *ast.TypeSpec) {
	obj, ok := pkg.TypesInfo.Defs[ts.Name].(*types.TypeName)
	if !ok {
		return
	}

	info, ok := l.prog.types[typeID(obj.Type())]
	if !ok {
		return
	}

	if st, ok := ts.Type.(*ast.StructType); ok {
		info.Fields = info.Fields[:0]
		for _, f := range st.Fields.List {
			typ := TypeID{PkgPath: pkg.PkgPath, Name: types.ExprString(f.Type)}
			if tv, ok := pkg.TypesInfo.Types[f.Type]; ok && tv.Type != nil && tv.Type != types.Typ[types.Invalid] {
				typ = typeID(tv.Type)
			}

			if len(f.Names) == 0 {
				info.Fields = append(info.Fields, FieldInfo{Name: types.ExprString(f.Type), Type: typ, Embedded: true})
				continue
			}

			for _, n := range f.Names {
				info.Fields = append(info.Fields, FieldInfo{Name: n.Name, Type: typ})
			}
		}
	}

	if rhs := pkg.TypesInfo.TypeOf(ts.Type); rhs != nil {
		if named, ok := types.Unalias(rhs).(*types.Named); ok {
			info.Underlying = typeID(named)
			l.ensureType(named)
		}
	}
}

// funcMember records a package function as a static member of the type it
// produces.
func (l *loader) funcMember(pkg *packages.Package, fd *ast.FuncDecl) {
	if fd.Recv != nil {
		return
	}

	fn, ok := pkg.TypesInfo.Defs[fd.Name].(*types.Func)
	if !ok {
		return
	}

	sig := fn.Type().(*types.Signature)
	if sig.Results().Len() == 0 {
		return
	}

	produced := sig.Results().At(0).Type()
	if resultKind(produced) != ResultOther && sig.Params().Len() > 0 {
		// func(s string, out *T) bool produces T through its last parameter.
		produced = sig.Params().At(sig.Params().Len() - 1).Type()
	}

	if ptr, ok := produced.(*types.Pointer); ok {
		produced = ptr.Elem()
	}

	named, ok := types.Unalias(produced).(*types.Named)
	if !ok || named.Obj().Pkg() != pkg.Types {
		return
	}

	l.prog.AddMember(l.member(fn, typeID(named)))
}

func (l *loader) member(fn *types.Func, owner TypeID) Member {
	self := fn.Pkg()
	qual := func(p *types.Package) string {
		if p == self {
			return ""
		}

		return p.Name()
	}

	sig := fn.Type().(*types.Signature)
	m := Member{
		Name:      fn.Name(),
		Owner:     owner,
		PkgPath:   self.Path(),
		Static:    sig.Recv() == nil,
		Signature: types.ObjectString(fn, qual),
		Call:      fn.Name(),
		Pos:       l.fset.Position(fn.Pos()),
	}

	if m.Static {
		m.Call = self.Name() + "." + fn.Name()
		m.Import = self.Path()
	} else {
		_, m.PtrRecv = sig.Recv().Type().(*types.Pointer)
	}

	params := sig.Params()
	for i := range params.Len() {
		v := params.At(i)
		p := Param{Name: v.Name(), Type: typeID(v.Type()), Display: types.TypeString(v.Type(), qual), Import: importPath(v.Type(), self)}
		if ptr, ok := v.Type().(*types.Pointer); ok {
			p.Ref = RefByRef
			p.Type = typeID(ptr.Elem())
		}

		m.Params = append(m.Params, p)
	}

	results := sig.Results()
	switch results.Len() {
	case 0:
		m.Result = ResultNone
	case 1:
		m.Result = resultKind(results.At(0).Type())
		if m.Result == ResultOther {
			m.Returns = typeID(results.At(0).Type())
		} else if n := len(m.Params); n > 0 && m.Params[n-1].Ref == RefByRef {
			m.Params[n-1].Ref = RefOut
			m.OutForm = OutPointer
		}
	default:
		first := results.At(0).Type()
		m.Result = resultKind(results.At(1).Type())
		if results.Len() > 2 || m.Result == ResultOther {
			m.Result = ResultOther
			m.Returns = typeID(first)

			break
		}

		m.OutForm = OutResult
		m.Params = append(m.Params, Param{
			Name:    "result",
			Type:    typeID(first),
			Display: types.TypeString(first, qual),
			Import:  importPath(first, self),
			Ref:     RefOut,
		})
	}

	return m
}

func resultKind(t types.Type) ResultKind {
	if types.Identical(t, types.Typ[types.Bool]) {
		return ResultBool
	}

	if types.Identical(t, types.Universe.Lookup("error").Type()) {
		return ResultError
	}

	return ResultOther
}

// constructionSites records T{...} and new(T) outside generated files.
func (l *loader) constructionSites(pkg *packages.Package, file *ast.File) {
	ast.Inspect(file, func(n ast.Node) bool {
		switch e := n.(type) {
		case *ast.CompositeLit:
			if named, ok := types.Unalias(pkg.TypesInfo.TypeOf(e)).(*types.Named); ok {
				l.prog.AddSite(typeID(named), Site{Kind: SiteComposite, Pos: l.fset.Position(e.Pos())})
			}
		case *ast.CallExpr:
			ident, ok := e.Fun.(*ast.Ident)
			if !ok || len(e.Args) != 1 {
				return true
			}

			if _, ok := pkg.TypesInfo.Uses[ident].(*types.Builtin); !ok || ident.Name != "new" {
				return true
			}

			if named, ok := types.Unalias(pkg.TypesInfo.TypeOf(e.Args[0])).(*types.Named); ok {
				l.prog.AddSite(typeID(named), Site{Kind: SiteNew, Pos: l.fset.Position(e.Pos())})
			}
		}

		return true
	})
}

// typeID names a go/types type. Unnamed types get their expression, written
// with package names, as Name.
func typeID(t types.Type) TypeID {
	t = types.Unalias(t)

	switch tt := t.(type) {
	case *types.Named:
		obj := tt.Obj()
		if obj.Pkg() == nil {
			return Predeclared(obj.Name())
		}

		return TypeID{PkgPath: obj.Pkg().Path(), Name: obj.Name()}
	case *types.Basic:
		return canonical(Predeclared(tt.Name()))
	default:
		return TypeID{Name: types.TypeString(t, func(p *types.Package) string { return p.Name() })}
	}
}

// importPath returns the package a type expression needs imported when
// written from package self.
func importPath(t types.Type, self *types.Package) string {
	for {
		switch tt := types.Unalias(t).(type) {
		case *types.Pointer:
			t = tt.Elem()
		case *types.Slice:
			t = tt.Elem()
		case *types.Array:
			t = tt.Elem()
		case *types.Named:
			if pkg := tt.Obj().Pkg(); pkg != nil && pkg != self {
				return pkg.Path()
			}

			return ""
		default:
			return ""
		}
	}
}
