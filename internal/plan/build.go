package plan

import (
	"slices"
	"strings"

	"intellenum-generator/internal/analyze"
	"intellenum-generator/internal/config"
	"intellenum-generator/internal/diagnostic"
	"intellenum-generator/internal/discover"
	"intellenum-generator/internal/errs"
	"intellenum-generator/internal/match"
	"intellenum-generator/internal/validate"
	"intellenum-generator/primitive"
)

// Fallback returns the underlying type used when neither the declaration
// nor the defaults name one: int for struct kinds, the Go underlying type
// otherwise.
func Fallback(kind discover.Kind, info *analyze.TypeInfo) func() analyze.TypeID {
	return func() analyze.TypeID {
		if kind == discover.KindStruct || info == nil || info.Underlying.IsZero() {
			return analyze.Predeclared("int")
		}

		return info.Underlying
	}
}

// BuildWorkItem merges, validates and, unless validation is fatal, scans for
// parse functions. It returns nil without error when the declared type cannot
// be resolved. Internal faults are returned as errors.
func BuildWorkItem(c *discover.Candidate, defaults *config.Configuration, oracle analyze.Oracle, pass *validate.Pass) (*WorkItem, error) {
	info, ok := oracle.DeclaredType(c.Decl)
	if !ok {
		return nil, nil
	}

	cfg := config.Merge(c.Local, defaults, Fallback(c.Kind, info))

	item := &WorkItem{
		Key:        c.ID(),
		Decl:       c.Decl,
		TypeName:   c.Name,
		PkgPath:    c.PkgPath,
		PkgName:    c.PkgName,
		Kind:       c.Kind,
		Config:     cfg,
		Underlying: cfg.Underlying,
		Category:   primitive.CategoryOf(cfg.Underlying.PkgPath, cfg.Underlying.Name),
		Instances:  c.Instances,
	}

	item.UnderlyingName, item.UnderlyingImport = spell(cfg.Underlying, c.PkgPath, oracle)

	item.Diagnostics = validate.Validate(c, cfg, info, oracle, pass)
	item.Fatal = slices.ContainsFunc(item.Diagnostics, diagnostic.Diagnostic.Fatal)

	hash, err := InputHash(c, defaults, oracle, pass)
	if err != nil {
		return nil, errs.Fault(err, c.ID(), "hashing inputs of %s", c.FullName())
	}

	item.Hash = hash

	if item.Fatal {
		return item, nil
	}

	if m, ok := validate.FindValidationMethod(oracle, c.TypeID(), cfg.Underlying); ok {
		item.HasValidate = true
		item.ValidateName = m.Name
	}

	_, item.HasString = validate.FindStringMethod(oracle, c.TypeID())

	if ve := cfg.ValidationError; !ve.IsZero() && ve != oracle.ErrorType() {
		m, ok := validate.FindErrorConstructor(oracle, ve)
		if !ok {
			return nil, errs.Fault(errs.AssertionFailedf("no constructor for %s", ve), c.ID(), "building %s", c.FullName())
		}

		item.ErrorCtor, item.ErrorImport = qualify(m.Call, m.Import, c.PkgPath)
	}

	specs, err := match.FindParseCandidates(cfg.Underlying, oracle)
	if err != nil {
		return nil, errs.Wrapf(err, "building %s", c.FullName())
	}

	item.ParseSpecs = specs

	return item, nil
}

// qualify returns how a call prefix is written from package pkgPath and the
// import it needs.
func qualify(call, importPath, pkgPath string) (string, string) {
	if importPath == "" {
		return call, ""
	}

	if importPath == pkgPath {
		return call[strings.LastIndexByte(call, '.')+1:], ""
	}

	return call, importPath
}

// spell returns how id is written from package pkgPath and the import it
// needs.
func spell(id analyze.TypeID, pkgPath string, oracle analyze.Oracle) (string, string) {
	info, ok := oracle.Type(id)
	if !ok || info.ID.PkgPath == "" {
		return id.Name, ""
	}

	if info.ID.PkgPath == pkgPath {
		return info.ID.Name, ""
	}

	return info.QualifiedName(pkgPath), info.ID.PkgPath
}
