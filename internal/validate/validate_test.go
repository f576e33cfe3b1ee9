package validate

import (
	"go/token"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"intellenum-generator/internal/analyze"
	"intellenum-generator/internal/config"
	"intellenum-generator/internal/diagnostic"
	"intellenum-generator/internal/discover"
)

const shop = "example.com/shop"

var (
	customerType = analyze.TypeID{PkgPath: shop, Name: "CustomerType"}
	color        = analyze.TypeID{PkgPath: shop, Name: "Color"}
	orderError   = analyze.TypeID{PkgPath: shop, Name: "OrderError"}
)

func pos(line int) token.Position {
	return token.Position{Filename: "shop.go", Line: line}
}

func newProgram() *analyze.Program {
	prog := analyze.NewProgram()
	prog.AddType(&analyze.TypeInfo{
		ID:         customerType,
		PkgName:    "shop",
		Kind:       analyze.TypeKindStruct,
		Fields:     []analyze.FieldInfo{{Name: "customerTypeState", Type: analyze.TypeID{PkgPath: shop, Name: "customerTypeState"}, Embedded: true}},
		Comparable: true,
	})
	prog.AddType(&analyze.TypeInfo{
		ID:         color,
		PkgName:    "shop",
		Kind:       analyze.TypeKindBasic,
		Underlying: analyze.Predeclared("string"),
		Comparable: true,
	})
	prog.AddType(&analyze.TypeInfo{
		ID:         orderError,
		PkgName:    "shop",
		Kind:       analyze.TypeKindStruct,
		Comparable: true,
		Implements: []analyze.TypeID{analyze.ErrorTypeID},
	})

	return prog
}

func typeDecl(prog *analyze.Program, name string, line int, dirs ...string) *analyze.Decl {
	var ds []analyze.Directive
	for i, d := range dirs {
		dir, ok := analyze.ParseDirectiveLine("//intellenum:"+d, pos(line-len(dirs)+i))
		if !ok {
			panic("bad directive " + d)
		}

		ds = append(ds, dir)
	}

	return prog.AddDecl(&analyze.Decl{
		Name:       name,
		PkgPath:    shop,
		PkgName:    "shop",
		IsType:     true,
		Pos:        pos(line),
		Directives: ds,
		Imports:    map[string]string{"uuid": "github.com/google/uuid"},
	})
}

func extract(t *testing.T, prog *analyze.Program, decl *analyze.Decl) (*discover.Candidate, config.Configuration, *analyze.TypeInfo) {
	t.Helper()

	c, ok := discover.Extract(decl, prog)
	require.True(t, ok)

	info, _ := prog.DeclaredType(decl)
	cfg := config.Merge(c.Local, nil, func() analyze.TypeID {
		if info == nil || info.Kind == analyze.TypeKindStruct {
			return analyze.Predeclared("int")
		}

		return info.Underlying
	})

	return c, cfg, info
}

func run(t *testing.T, prog *analyze.Program, decl *analyze.Decl) []diagnostic.Diagnostic {
	t.Helper()

	c, cfg, info := extract(t, prog, decl)

	return Validate(c, cfg, info, prog, NewPass([]*discover.Candidate{c}))
}

func codes(diags []diagnostic.Diagnostic) []string {
	res := make([]string, 0, len(diags))
	for _, d := range diags {
		res = append(res, d.Code)
	}

	return res
}

func TestValidate_CustomerType(t *testing.T) {
	t.Parallel()

	prog := newProgram()
	decl := typeDecl(prog, "CustomerType", 20, "enum", "member Standard 1", "member Gold 2")

	diags := run(t, prog, decl)
	require.Len(t, diags, 1)

	d := diags[0]
	assert.Equal(t, diagnostic.AddValidationMethod, d.Code)
	assert.Equal(t, diagnostic.SeverityInfo, d.Severity)
	assert.Equal(t, "int", d.Property(diagnostic.PropPrimitiveType))
	assert.Equal(t, "CustomerType", d.Property(diagnostic.PropTypeName))
	assert.False(t, d.Fatal())
}

func TestValidate_Rules(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		setup func(prog *analyze.Program) *analyze.Decl
		code  string
		sev   diagnostic.Severity
	}{
		{
			name: "nested",
			setup: func(prog *analyze.Program) *analyze.Decl {
				d := typeDecl(prog, "CustomerType", 20, "enum", "member A 1")
				d.Nested = true

				return d
			},
			code: diagnostic.TypeCannotBeNested,
			sev:  diagnostic.SeverityError,
		},
		{
			name: "unresolvable underlying",
			setup: func(prog *analyze.Program) *analyze.Decl {
				return typeDecl(prog, "CustomerType", 20, "enum underlying=money.Amount", "member A 1")
			},
			code: diagnostic.UnknownType,
			sev:  diagnostic.SeverityError,
		},
		{
			name: "underlying is self",
			setup: func(prog *analyze.Program) *analyze.Decl {
				return typeDecl(prog, "Color", 20, "enum underlying=Color", `member Red "red"`)
			},
			code: diagnostic.UnderlyingTypeMustNotBeSameAsValueObject,
			sev:  diagnostic.SeverityError,
		},
		{
			name: "collection underlying",
			setup: func(prog *analyze.Program) *analyze.Decl {
				return typeDecl(prog, "CustomerType", 20, "enum[[]int]", "member A 1")
			},
			code: diagnostic.UnderlyingTypeCannotBeCollection,
			sev:  diagnostic.SeverityError,
		},
		{
			name: "interface",
			setup: func(prog *analyze.Program) *analyze.Decl {
				prog.AddType(&analyze.TypeInfo{ID: analyze.TypeID{PkgPath: shop, Name: "Shape"}, Kind: analyze.TypeKindInterface})

				return typeDecl(prog, "Shape", 20, "enum", "member A 1")
			},
			code: diagnostic.TypeCannotBeAbstract,
			sev:  diagnostic.SeverityError,
		},
		{
			name: "composite literal",
			setup: func(prog *analyze.Program) *analyze.Decl {
				prog.AddSite(customerType, analyze.Site{Kind: analyze.SiteComposite, Pos: pos(90)})

				return typeDecl(prog, "CustomerType", 20, "enum", "member A 1")
			},
			code: diagnostic.DoNotUseDefault,
			sev:  diagnostic.SeverityError,
		},
		{
			name: "new",
			setup: func(prog *analyze.Program) *analyze.Decl {
				prog.AddSite(customerType, analyze.Site{Kind: analyze.SiteNew, Pos: pos(91)})

				return typeDecl(prog, "CustomerType", 20, "enum", "member A 1")
			},
			code: diagnostic.DoNotUseNew,
			sev:  diagnostic.SeverityError,
		},
		{
			name: "error type does not implement error",
			setup: func(prog *analyze.Program) *analyze.Decl {
				prog.AddType(&analyze.TypeInfo{ID: analyze.TypeID{PkgPath: shop, Name: "Oops"}, Kind: analyze.TypeKindStruct})

				return typeDecl(prog, "CustomerType", 20, "enum error=Oops", "member A 1")
			},
			code: diagnostic.CustomExceptionMustDeriveFromException,
			sev:  diagnostic.SeverityError,
		},
		{
			name: "error type without constructor",
			setup: func(prog *analyze.Program) *analyze.Decl {
				return typeDecl(prog, "CustomerType", 20, "enum error=OrderError", "member A 1")
			},
			code: diagnostic.CustomExceptionMustHaveValidConstructor,
			sev:  diagnostic.SeverityError,
		},
		{
			name: "unknown conversion",
			setup: func(prog *analyze.Program) *analyze.Decl {
				return typeDecl(prog, "CustomerType", 20, "enum conversions=Jsno", "member A 1")
			},
			code: diagnostic.InvalidConversions,
			sev:  diagnostic.SeverityError,
		},
		{
			name: "unknown strictness",
			setup: func(prog *analyze.Program) *analyze.Decl {
				return typeDecl(prog, "CustomerType", 20, "enum strictness=Strict", "member A 1")
			},
			code: diagnostic.InvalidArgument,
			sev:  diagnostic.SeverityError,
		},
		{
			name: "unknown key",
			setup: func(prog *analyze.Program) *analyze.Decl {
				return typeDecl(prog, "CustomerType", 20, "enum colour=red", "member A 1")
			},
			code: diagnostic.InvalidArgument,
			sev:  diagnostic.SeverityError,
		},
		{
			name: "customization without its conversion",
			setup: func(prog *analyze.Program) *analyze.Decl {
				return typeDecl(prog, "CustomerType", 20, "enum conversions=Text customizations=JSONNumberAsString", "member A 1")
			},
			code: diagnostic.InvalidCustomizations,
			sev:  diagnostic.SeverityWarning,
		},
		{
			name: "struct without state",
			setup: func(prog *analyze.Program) *analyze.Decl {
				prog.AddType(&analyze.TypeInfo{ID: analyze.TypeID{PkgPath: shop, Name: "Tier"}, Kind: analyze.TypeKindStruct})

				return typeDecl(prog, "Tier", 20, "enum", "member A 1")
			},
			code: diagnostic.TypeShouldBePartial,
			sev:  diagnostic.SeverityWarning,
		},
		{
			name: "String on pointer receiver",
			setup: func(prog *analyze.Program) *analyze.Decl {
				prog.AddMember(analyze.Member{Name: "String", Owner: color, PkgPath: shop, PtrRecv: true, Result: analyze.ResultOther, Pos: pos(40)})

				return typeDecl(prog, "Color", 20, "enum", `member Red "red"`)
			},
			code: diagnostic.StringMethodShouldUseValueReceiver,
			sev:  diagnostic.SeverityWarning,
		},
		{
			name: "duplicate instance name",
			setup: func(prog *analyze.Program) *analyze.Decl {
				return typeDecl(prog, "CustomerType", 20, "enum", "member A 1", "member A 2")
			},
			code: diagnostic.InstanceNameInvalid,
			sev:  diagnostic.SeverityError,
		},
		{
			name: "instance name not an identifier",
			setup: func(prog *analyze.Program) *analyze.Decl {
				return typeDecl(prog, "CustomerType", 20, "enum", "member 1st 1")
			},
			code: diagnostic.InstanceNameInvalid,
			sev:  diagnostic.SeverityError,
		},
		{
			name: "missing value",
			setup: func(prog *analyze.Program) *analyze.Decl {
				return typeDecl(prog, "CustomerType", 20, "enum", "member A")
			},
			code: diagnostic.InstanceValueMissing,
			sev:  diagnostic.SeverityError,
		},
		{
			name: "string literal for int",
			setup: func(prog *analyze.Program) *analyze.Decl {
				return typeDecl(prog, "CustomerType", 20, "enum", `member A "one"`)
			},
			code: diagnostic.InstanceValueCannotBeConverted,
			sev:  diagnostic.SeverityError,
		},
		{
			name: "no instances",
			setup: func(prog *analyze.Program) *analyze.Decl {
				return typeDecl(prog, "CustomerType", 20, "enum")
			},
			code: diagnostic.MustHaveInstances,
			sev:  diagnostic.SeverityError,
		},
		{
			name: "two markers",
			setup: func(prog *analyze.Program) *analyze.Decl {
				return typeDecl(prog, "CustomerType", 20, "enum", "enum[int64]", "member A 1")
			},
			code: diagnostic.DuplicateMarker,
			sev:  diagnostic.SeverityWarning,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			prog := newProgram()
			diags := run(t, prog, tt.setup(prog))

			i := slices.IndexFunc(diags, func(d diagnostic.Diagnostic) bool { return d.Code == tt.code })
			require.GreaterOrEqual(t, i, 0, "got %v", codes(diags))
			assert.Equal(t, tt.sev, diags[i].Severity)
			assert.NotEmpty(t, diags[i].Message)
		})
	}
}

func TestValidate_RuleOrder(t *testing.T) {
	t.Parallel()

	prog := newProgram()
	tier := analyze.TypeID{PkgPath: shop, Name: "Tier"}
	prog.AddType(&analyze.TypeInfo{ID: tier, Kind: analyze.TypeKindStruct, Comparable: true})
	prog.AddMember(analyze.Member{Name: "NewTier", Owner: tier, PkgPath: shop, Static: true, Result: analyze.ResultOther, Pos: pos(50)})
	prog.AddSite(tier, analyze.Site{Kind: analyze.SiteComposite, Pos: pos(51)})

	decl := typeDecl(prog, "Tier", 20, "enum", "enum")
	decl.Nested = true

	diags := run(t, prog, decl)
	assert.Equal(t, []string{
		diagnostic.TypeCannotBeNested,
		diagnostic.CannotHaveUserConstructors,
		diagnostic.DoNotUseDefault,
		diagnostic.TypeShouldBePartial,
		diagnostic.MustHaveInstances,
		diagnostic.DuplicateMarker,
		diagnostic.AddValidationMethod,
	}, codes(diags))

	order := make(map[string]int, len(Rules))
	for i, r := range Rules {
		order[r.ID] = i
	}

	assert.True(t, slices.IsSortedFunc(diags, func(a, b diagnostic.Diagnostic) int {
		return order[a.Code] - order[b.Code]
	}))
}

func TestValidate_UserConstructor(t *testing.T) {
	t.Parallel()

	prog := newProgram()
	prog.AddMember(analyze.Member{Name: "NewCustomerType", Owner: customerType, PkgPath: shop, Static: true, Result: analyze.ResultOther, Returns: customerType, Pos: pos(60)})

	decl := typeDecl(prog, "CustomerType", 20, "enum", "member Standard 1")
	diags := run(t, prog, decl)

	var ds diagnostic.Diagnostics
	for _, d := range diags {
		ds.Add(d)
	}

	first, ok := ds.FirstFatal()
	require.True(t, ok)
	assert.Equal(t, diagnostic.CannotHaveUserConstructors, first.Code)
	assert.Equal(t, pos(60), first.Pos)
	assert.Len(t, ds.Errors(), 1)
}

func TestValidate_DuplicateTypes(t *testing.T) {
	t.Parallel()

	prog := newProgram()
	a := typeDecl(prog, "CustomerType", 20, "enum", "member A 1")
	b := typeDecl(prog, "CustomerType", 80, "enum", "member B 2")

	ca, cfgA, infoA := extract(t, prog, a)
	cb, cfgB, infoB := extract(t, prog, b)
	pass := NewPass([]*discover.Candidate{ca, cb})

	for _, tc := range []struct {
		c    *discover.Candidate
		cfg  config.Configuration
		info *analyze.TypeInfo
	}{{ca, cfgA, infoA}, {cb, cfgB, infoB}} {
		var dups []diagnostic.Diagnostic
		for _, d := range Validate(tc.c, tc.cfg, tc.info, prog, pass) {
			if d.Code == diagnostic.DuplicateTypesFound {
				dups = append(dups, d)
			}
		}

		require.Len(t, dups, 1)
		assert.Equal(t, tc.c.Decl.Pos, dups[0].Pos)
	}
}

func TestValidate_SameDeclarationTwice(t *testing.T) {
	t.Parallel()

	prog := newProgram()
	decl := typeDecl(prog, "CustomerType", 20, "enum", "member A 1")

	c, cfg, info := extract(t, prog, decl)
	again, _, _ := extract(t, prog, decl)
	pass := NewPass([]*discover.Candidate{c, again})

	assert.Len(t, pass.Locations(c.FullName()), 1)
	for _, d := range Validate(c, cfg, info, prog, pass) {
		assert.NotEqual(t, diagnostic.DuplicateTypesFound, d.Code, d.Message)
	}
}

func TestValidate_CustomErrorType(t *testing.T) {
	t.Parallel()

	prog := newProgram()
	prog.AddMember(analyze.Member{
		Name:    "NewOrderError",
		Owner:   orderError,
		PkgPath: shop,
		Static:  true,
		Params:  []analyze.Param{{Name: "msg", Type: analyze.Predeclared("string")}},
		Result:  analyze.ResultOther,
	})

	decl := typeDecl(prog, "CustomerType", 20, "enum error=OrderError", "member A 1")
	diags := run(t, prog, decl)

	assert.NotContains(t, codes(diags), diagnostic.CustomExceptionMustDeriveFromException)
	assert.NotContains(t, codes(diags), diagnostic.CustomExceptionMustHaveValidConstructor)
}

func TestValidate_ValidationMethod(t *testing.T) {
	t.Parallel()

	prog := newProgram()
	prog.AddMember(analyze.Member{
		Name:    "validate",
		Owner:   customerType,
		PkgPath: shop,
		Params:  []analyze.Param{{Name: "value", Type: analyze.Predeclared("int")}},
		Result:  analyze.ResultError,
	})

	decl := typeDecl(prog, "CustomerType", 20, "enum")
	assert.Empty(t, run(t, prog, decl))
}

func TestFindValidationMethod(t *testing.T) {
	t.Parallel()

	intParam := []analyze.Param{{Name: "value", Type: analyze.Predeclared("int")}}

	tests := []struct {
		name   string
		member analyze.Member
		found  bool
	}{
		{"exported", analyze.Member{Name: "Validate", Params: intParam, Result: analyze.ResultError}, true},
		{"unexported", analyze.Member{Name: "validate", Params: intParam, Result: analyze.ResultError}, true},
		{"pointer receiver", analyze.Member{Name: "Validate", PtrRecv: true, Params: intParam, Result: analyze.ResultError}, true},
		{"static", analyze.Member{Name: "Validate", Static: true, Params: intParam, Result: analyze.ResultError}, false},
		{"bool result", analyze.Member{Name: "Validate", Params: intParam, Result: analyze.ResultBool}, false},
		{"wrong type", analyze.Member{Name: "Validate", Params: []analyze.Param{{Type: analyze.Predeclared("string")}}, Result: analyze.ResultError}, false},
		{"prefix only", analyze.Member{Name: "ValidateAll", Params: intParam, Result: analyze.ResultError}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			prog := newProgram()
			tt.member.Owner = customerType
			prog.AddMember(tt.member)

			m, ok := FindValidationMethod(prog, customerType, analyze.Predeclared("int"))
			assert.Equal(t, tt.found, ok)

			if ok {
				assert.Equal(t, tt.member.Name, m.Name)
			}
		})
	}
}

func TestStateTypeName(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "customerTypeState", StateTypeName("CustomerType"))
	assert.Equal(t, "tenantIDState", StateTypeName("TenantID"))
}

func TestPass_NilSafe(t *testing.T) {
	t.Parallel()

	var p *Pass
	assert.Nil(t, p.Locations(shop+".CustomerType"))
}
