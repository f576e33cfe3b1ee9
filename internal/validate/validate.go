package validate

import (
	"go/token"
	"slices"

	"intellenum-generator/internal/analyze"
	"intellenum-generator/internal/config"
	"intellenum-generator/internal/diagnostic"
	"intellenum-generator/internal/discover"
)

// Input is everything a rule may look at.
type Input struct {
	Candidate *discover.Candidate
	Config    config.Configuration
	Type      *analyze.TypeInfo
	Oracle    analyze.Oracle
	Pass      *Pass
}

// Rule is one validation check with a stable identifier.
type Rule struct {
	ID    string
	Check func(in *Input) *diagnostic.Diagnostic
}

// Pass holds the facts shared by every candidate of one generation pass. It
// is immutable once built.
type Pass struct {
	byName map[string][]token.Position
}

// NewPass indexes candidates by fully qualified name.
func NewPass(candidates []*discover.Candidate) *Pass {
	p := &Pass{byName: make(map[string][]token.Position, len(candidates))}
	for _, c := range candidates {
		name := c.FullName()
		if !slices.Contains(p.byName[name], c.Decl.Pos) {
			p.byName[name] = append(p.byName[name], c.Decl.Pos)
		}
	}

	return p
}

// Locations returns where candidates named fullName are declared.
func (p *Pass) Locations(fullName string) []token.Position {
	if p == nil {
		return nil
	}

	return p.byName[fullName]
}

// Validate runs Rules in order. typ must be the candidate's declared type.
// A nil pass skips the cross-candidate checks.
func Validate(c *discover.Candidate, cfg config.Configuration, typ *analyze.TypeInfo, oracle analyze.Oracle, pass *Pass) []diagnostic.Diagnostic {
	in := &Input{Candidate: c, Config: cfg, Type: typ, Oracle: oracle, Pass: pass}

	var res []diagnostic.Diagnostic
	for _, rule := range Rules {
		if d := rule.Check(in); d != nil {
			res = append(res, *d)
		}
	}

	return res
}
