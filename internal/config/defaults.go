package config

import (
	"go/token"

	"intellenum-generator/internal/analyze"
	"intellenum-generator/internal/diagnostic"
)

// ResolveDefaults folds every program-wide defaults directive found on decls
// into one configuration, in declaration order. It returns nil and no
// diagnostics when there are none. A later declaration that sets an axis to
// a different value loses; each conflicting axis is reported once, at the
// first losing declaration. Defaults directives outside a package doc
// comment are reported and ignored.
func ResolveDefaults(decls []*analyze.Decl, oracle analyze.Oracle) (*Configuration, []diagnostic.Diagnostic) {
	var (
		res      *Configuration
		diags    []diagnostic.Diagnostic
		reported = make(map[string]bool)
	)

	for _, decl := range decls {
		for _, ann := range oracle.Annotations(decl) {
			if ann.Name != analyze.DefaultsName {
				continue
			}

			if decl.IsType || decl.Detached {
				diags = append(diags, diagnostic.Warningf(diagnostic.InvalidArgument, ann.Pos,
					"defaults directive ignored: it belongs in the package doc comment"))

				continue
			}

			raw, argErrs := ParseArgs(ann.Args)
			cfg, typeErrs := Resolve(raw, decl, oracle)

			for _, e := range append(argErrs, typeErrs...) {
				diags = append(diags, ArgDiagnostic(e, ann.Pos))
			}

			if res == nil {
				res = &cfg
				continue
			}

			for _, d := range fold(res, cfg, ann.Pos) {
				if axis := d.Properties[diagnostic.PropAxis]; !reported[axis] {
					reported[axis] = true
					diags = append(diags, d)
				}
			}
		}
	}

	return res, diags
}

// fold copies the axes next sets and res does not, and reports the axes both
// set to different values.
func fold(res *Configuration, next Configuration, pos token.Position) []diagnostic.Diagnostic {
	var diags []diagnostic.Diagnostic

	conflict := func(axis string, kept, dropped any) {
		d := diagnostic.Warningf(diagnostic.ConflictingDefaults, pos,
			"conflicting program-wide default for %s: keeping %v, ignoring %v", axis, kept, dropped)
		d.Properties = map[string]string{diagnostic.PropAxis: axis}
		diags = append(diags, d)
	}

	if !next.Underlying.IsZero() {
		if res.Underlying.IsZero() {
			res.Underlying = next.Underlying
		} else if res.Underlying != next.Underlying {
			conflict(KeyUnderlying, res.Underlying, next.Underlying)
		}
	}

	if !next.ValidationError.IsZero() {
		if res.ValidationError.IsZero() {
			res.ValidationError = next.ValidationError
		} else if res.ValidationError != next.ValidationError {
			conflict(KeyError, res.ValidationError, next.ValidationError)
		}
	}

	if next.Conversions != ConversionsUnset {
		if res.Conversions == ConversionsUnset {
			res.Conversions = next.Conversions
		} else if res.Conversions != next.Conversions {
			conflict(KeyConversions, res.Conversions, next.Conversions)
		}
	}

	if next.Customizations != CustomizationsUnset {
		if res.Customizations == CustomizationsUnset {
			res.Customizations = next.Customizations
		} else if res.Customizations != next.Customizations {
			conflict(KeyCustomizations, res.Customizations, next.Customizations)
		}
	}

	if next.Strictness != StrictnessUnset {
		if res.Strictness == StrictnessUnset {
			res.Strictness = next.Strictness
		} else if res.Strictness != next.Strictness {
			conflict(KeyStrictness, res.Strictness, next.Strictness)
		}
	}

	if next.Debug != DebugUnset {
		if res.Debug == DebugUnset {
			res.Debug = next.Debug
		} else if res.Debug != next.Debug {
			conflict(KeyDebug, res.Debug, next.Debug)
		}
	}

	return diags
}

// ArgDiagnostic converts an argument problem into the diagnostic of the rule
// that owns its axis.
func ArgDiagnostic(e ArgError, pos token.Position) diagnostic.Diagnostic {
	var d diagnostic.Diagnostic

	switch e.Axis {
	case KeyConversions:
		d = diagnostic.Errorf(diagnostic.InvalidConversions, pos, "%s", e.Error())
	case KeyCustomizations:
		d = diagnostic.Warningf(diagnostic.InvalidCustomizations, pos, "%s", e.Error())
	case KeyUnderlying, KeyError:
		d = diagnostic.Errorf(diagnostic.UnknownType, pos, "cannot resolve %s type %q", e.Axis, e.Value)
	default:
		d = diagnostic.Errorf(diagnostic.InvalidArgument, pos, "%s", e.Error())
	}

	d.Properties = map[string]string{diagnostic.PropAxis: e.Axis, diagnostic.PropName: e.Value}
	d.Suggestions = e.Suggestions

	return d
}
