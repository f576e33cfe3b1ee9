package plan

import (
	"intellenum-generator/internal/analyze"
	"intellenum-generator/internal/config"
	"intellenum-generator/internal/convert"
	"intellenum-generator/internal/diagnostic"
	"intellenum-generator/internal/discover"
	"intellenum-generator/internal/match"
	"intellenum-generator/primitive"
)

// WorkItem is everything emission needs for one candidate. It is immutable
// once built.
type WorkItem struct {
	// Key is the identity of the declaring candidate.
	Key      analyze.DeclID
	Decl     *analyze.Decl
	TypeName string
	PkgPath  string
	PkgName  string
	Kind     discover.Kind
	// Config is the merged configuration.
	Config config.Configuration
	// Underlying is Config.Underlying, spelled out for emission.
	Underlying       analyze.TypeID
	UnderlyingName   string // as written from PkgPath, e.g. "uuid.UUID"
	UnderlyingImport string // import path UnderlyingName needs, if any
	Category         primitive.Category
	Instances        []discover.Instance
	// HasValidate is set when the type declares a validation method.
	HasValidate  bool
	ValidateName string
	// ErrorCtor is the call building a validation error from a message; empty
	// for the builtin error.
	ErrorCtor   string
	ErrorImport string
	// HasString is set when the user supplies String.
	HasString   bool
	ParseSpecs  []match.ParseSpec
	Diagnostics []diagnostic.Diagnostic
	// Fatal is set when any diagnostic is an error. Fatal items carry no
	// parse specs.
	Fatal bool
	// Hash summarizes every input of the item.
	Hash string
}

// Target is the view conversion generators render from.
func (w *WorkItem) Target() convert.Target {
	return convert.Target{
		TypeName:       w.TypeName,
		UnderlyingName: w.UnderlyingName,
		Category:       w.Category,
		Conversions:    w.Config.Conversions,
		Customizations: w.Config.Customizations,
	}
}

// FirstFatal returns the first error diagnostic in rule order.
func (w *WorkItem) FirstFatal() (diagnostic.Diagnostic, bool) {
	for _, d := range w.Diagnostics {
		if d.Fatal() {
			return d, true
		}
	}

	return diagnostic.Diagnostic{}, false
}

// Fault is an internal fault that aborted the build of one candidate.
type Fault struct {
	Key analyze.DeclID
	Err error
}

// Result is the outcome of one generation pass.
type Result struct {
	// Items are sorted by key.
	Items []*WorkItem
	// Diagnostics are the pass-level diagnostics, e.g. conflicting defaults.
	Diagnostics []diagnostic.Diagnostic
	Faults      []Fault
	// Defaults is the resolved program-wide configuration, nil when absent.
	Defaults *config.Configuration
	// Reused counts items taken over from the previous pass.
	Reused int
}

// AllDiagnostics returns the pass-level diagnostics followed by those of
// every item.
func (r *Result) AllDiagnostics() []diagnostic.Diagnostic {
	res := append([]diagnostic.Diagnostic(nil), r.Diagnostics...)
	for _, item := range r.Items {
		res = append(res, item.Diagnostics...)
	}

	return res
}
