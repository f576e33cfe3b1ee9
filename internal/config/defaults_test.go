package config

import (
	"go/token"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"intellenum-generator/internal/analyze"
	"intellenum-generator/internal/diagnostic"
)

func defaultsDecl(prog *analyze.Program, file, args string) *analyze.Decl {
	pos := token.Position{Filename: file, Line: 3}

	return prog.AddDecl(&analyze.Decl{
		Name:       "shop",
		PkgPath:    "example.com/shop",
		Pos:        pos,
		Directives: []analyze.Directive{{Name: analyze.DefaultsName, Args: args, Pos: pos}},
	})
}

func TestResolveDefaults_None(t *testing.T) {
	t.Parallel()

	prog := analyze.NewProgram()
	prog.AddDecl(&analyze.Decl{Name: "Color", IsType: true, Directives: []analyze.Directive{{Name: "enum"}}})

	cfg, diags := ResolveDefaults(prog.Decls(), prog)
	assert.Nil(t, cfg)
	assert.Empty(t, diags)
}

func TestResolveDefaults_Single(t *testing.T) {
	t.Parallel()

	prog := analyze.NewProgram()
	defaultsDecl(prog, "a.go", "conversions=SQL debug=Omit")

	cfg, diags := ResolveDefaults(prog.Decls(), prog)
	require.NotNil(t, cfg)
	assert.Empty(t, diags)

	assert.Equal(t, ConversionsSQL, cfg.Conversions)
	assert.Equal(t, DebugOmit, cfg.Debug)
	assert.Equal(t, CustomizationsUnset, cfg.Customizations)
	assert.Equal(t, StrictnessUnset, cfg.Strictness)
}

func TestResolveDefaults_Conflicts(t *testing.T) {
	t.Parallel()

	prog := analyze.NewProgram()
	defaultsDecl(prog, "a.go", "conversions=SQL debug=Omit")
	defaultsDecl(prog, "b.go", "conversions=JSON debug=Omit strictness=AllowAnything")
	defaultsDecl(prog, "c.go", "debug=Basic underlying=string")

	cfg, diags := ResolveDefaults(prog.Decls(), prog)
	require.NotNil(t, cfg)

	assert.Equal(t, ConversionsSQL, cfg.Conversions, "first declared wins")
	assert.Equal(t, DebugOmit, cfg.Debug)
	assert.Equal(t, AllowAnything, cfg.Strictness, "non-conflicting axes are merged")
	assert.Equal(t, analyze.Predeclared("string"), cfg.Underlying)

	require.Len(t, diags, 2)
	for _, d := range diags {
		assert.Equal(t, diagnostic.ConflictingDefaults, d.Code)
		assert.Equal(t, diagnostic.SeverityWarning, d.Severity)
	}

	assert.Equal(t, KeyConversions, diags[0].Property(diagnostic.PropAxis))
	assert.Equal(t, "b.go", diags[0].Pos.Filename)
	assert.Equal(t, KeyDebug, diags[1].Property(diagnostic.PropAxis))
	assert.Equal(t, "c.go", diags[1].Pos.Filename)
}

func TestResolveDefaults_ConflictReportedOncePerAxis(t *testing.T) {
	t.Parallel()

	prog := analyze.NewProgram()
	defaultsDecl(prog, "a.go", "debug=Omit")
	defaultsDecl(prog, "b.go", "debug=Basic")
	defaultsDecl(prog, "c.go", "debug=Full")

	cfg, diags := ResolveDefaults(prog.Decls(), prog)
	require.NotNil(t, cfg)
	assert.Equal(t, DebugOmit, cfg.Debug)

	require.Len(t, diags, 1)
	assert.Equal(t, KeyDebug, diags[0].Property(diagnostic.PropAxis))
	assert.Equal(t, "b.go", diags[0].Pos.Filename)
}

func TestResolveDefaults_Misplaced(t *testing.T) {
	t.Parallel()

	prog := analyze.NewProgram()
	defaultsDecl(prog, "a.go", "debug=Omit")

	detached := defaultsDecl(prog, "b.go", "conversions=SQL")
	detached.Detached = true

	onType := defaultsDecl(prog, "c.go", "strictness=AllowAnything")
	onType.IsType = true

	cfg, diags := ResolveDefaults(prog.Decls(), prog)
	require.NotNil(t, cfg)
	assert.Equal(t, ConversionsUnset, cfg.Conversions)
	assert.Equal(t, StrictnessUnset, cfg.Strictness)

	require.Len(t, diags, 2)
	for i, file := range []string{"b.go", "c.go"} {
		assert.Equal(t, diagnostic.InvalidArgument, diags[i].Code)
		assert.Equal(t, diagnostic.SeverityWarning, diags[i].Severity)
		assert.Equal(t, file, diags[i].Pos.Filename)
	}
}

func TestResolveDefaults_ArgErrors(t *testing.T) {
	t.Parallel()

	prog := analyze.NewProgram()
	defaultsDecl(prog, "a.go", "conversions=Jsno customizations=Nope underlying=Missing verbose=true")

	cfg, diags := ResolveDefaults(prog.Decls(), prog)
	require.NotNil(t, cfg)
	require.Len(t, diags, 4)

	var codes []string
	for _, d := range diags {
		codes = append(codes, d.Code)
	}

	assert.Equal(t, []string{
		diagnostic.InvalidConversions,
		diagnostic.InvalidCustomizations,
		diagnostic.InvalidArgument,
		diagnostic.UnknownType,
	}, codes)
	assert.Equal(t, []string{"JSON"}, diags[0].Suggestions)
}
