package config

import "intellenum-generator/internal/analyze"

// Merge resolves every axis independently: the local value when set, else
// the global value when global is non-nil and sets it, else the built-in
// default. The underlying type falls back to fallback() instead. Merge is
// pure; fallback is called at most once.
func Merge(local Configuration, global *Configuration, fallback func() analyze.TypeID) Configuration {
	if global == nil {
		g := Unset()
		global = &g
	}

	res := Configuration{
		Underlying:      pick(local.Underlying, global.Underlying, analyze.TypeID{}),
		ValidationError: pick(local.ValidationError, global.ValidationError, analyze.ErrorTypeID),
		Conversions:     pickFlags(local.Conversions, global.Conversions, ConversionsUnset, ConversionsDefault),
		Customizations:  pickFlags(local.Customizations, global.Customizations, CustomizationsUnset, CustomizationsNone),
		Strictness:      pick(local.Strictness, global.Strictness, StrictnessDefault),
		Debug:           pick(local.Debug, global.Debug, DebugDefault),
	}

	if res.Underlying.IsZero() && fallback != nil {
		res.Underlying = fallback()
	}

	return res
}

// pick returns the first of local, global that is not the zero value.
func pick[T comparable](local, global, builtin T) T {
	var unset T
	if local != unset {
		return local
	}

	if global != unset {
		return global
	}

	return builtin
}

// pickFlags is pick for bitsets, where zero is a legitimate explicit value
// and only the sentinel means unset.
func pickFlags[T comparable](local, global, unset, builtin T) T {
	if local != unset {
		return local
	}

	if global != unset {
		return global
	}

	return builtin
}
