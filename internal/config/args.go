package config

import (
	"fmt"
	"strings"

	"intellenum-generator/internal/analyze"
	"intellenum-generator/internal/match"
)

// Directive argument keys.
const (
	KeyUnderlying     = "underlying"
	KeyError          = "error"
	KeyConversions    = "conversions"
	KeyCustomizations = "customizations"
	KeyStrictness     = "strictness"
	KeyDebug          = "debug"
)

var keys = []string{KeyUnderlying, KeyError, KeyConversions, KeyCustomizations, KeyStrictness, KeyDebug}

// Axis names an argument problem refers to. They double as the key names,
// plus AxisArgument for unknown keys.
const AxisArgument = "argument"

// ArgError is a problem with one directive argument.
type ArgError struct {
	Axis        string
	Value       string
	Suggestions []string
}

// Error implements error.
func (e ArgError) Error() string {
	msg := fmt.Sprintf("unknown %s %q", e.Axis, e.Value)
	if len(e.Suggestions) > 0 {
		msg += fmt.Sprintf(", did you mean %s?", strings.Join(e.Suggestions, " or "))
	}

	return msg
}

// Raw is a configuration as written: flag axes are parsed, type references
// are still expressions.
type Raw struct {
	Configuration

	UnderlyingExpr string
	ErrorExpr      string
}

// ParseArgs parses directive arguments. Axes that are not mentioned stay
// unset. Every argument is parsed even after an error.
func ParseArgs(args []analyze.Arg) (Raw, []ArgError) {
	raw := Raw{Configuration: Unset()}

	var errs []ArgError
	for _, arg := range args {
		switch arg.Key {
		case KeyUnderlying:
			raw.UnderlyingExpr = arg.Value
		case KeyError:
			raw.ErrorExpr = arg.Value
		case KeyConversions:
			c, unknown := ParseConversions(arg.Value)
			raw.Conversions = c
			for _, u := range unknown {
				errs = append(errs, ArgError{Axis: KeyConversions, Value: u, Suggestions: match.Closest(u, ConversionNames())})
			}
		case KeyCustomizations:
			c, unknown := ParseCustomizations(arg.Value)
			raw.Customizations = c
			for _, u := range unknown {
				errs = append(errs, ArgError{Axis: KeyCustomizations, Value: u, Suggestions: match.Closest(u, CustomizationNames())})
			}
		case KeyStrictness:
			s, ok := ParseStrictness(arg.Value)
			if !ok {
				errs = append(errs, ArgError{Axis: KeyStrictness, Value: arg.Value, Suggestions: match.Closest(arg.Value, StrictnessNames())})
			}

			raw.Strictness = s
		case KeyDebug:
			d, ok := ParseDebug(arg.Value)
			if !ok {
				errs = append(errs, ArgError{Axis: KeyDebug, Value: arg.Value, Suggestions: match.Closest(arg.Value, DebugNames())})
			}

			raw.Debug = d
		default:
			name := arg.Key
			if name == "" {
				name = arg.Value
			}

			errs = append(errs, ArgError{Axis: AxisArgument, Value: name, Suggestions: match.Closest(name, keys)})
		}
	}

	return raw, errs
}

// Resolve turns the type expressions of raw into type identities, using the
// imports of decl. Unresolvable references are reported and left unset.
func Resolve(raw Raw, decl *analyze.Decl, oracle analyze.Oracle) (Configuration, []ArgError) {
	cfg := raw.Configuration

	var errs []ArgError
	if raw.UnderlyingExpr != "" {
		if id, ok := oracle.ResolveType(decl, raw.UnderlyingExpr); ok {
			cfg.Underlying = id
		} else {
			errs = append(errs, ArgError{Axis: KeyUnderlying, Value: raw.UnderlyingExpr})
		}
	}

	if raw.ErrorExpr != "" {
		if id, ok := oracle.ResolveType(decl, raw.ErrorExpr); ok {
			cfg.ValidationError = id
		} else {
			errs = append(errs, ArgError{Axis: KeyError, Value: raw.ErrorExpr})
		}
	}

	return cfg, errs
}
