package match

import (
	"intellenum-generator/internal/analyze"
)

// TypeCompatibility represents how a parse result relates to the type the
// generated code stores.
type TypeCompatibility int

const (
	// TypeIncompatible means the result cannot be stored.
	TypeIncompatible TypeCompatibility = iota
	// TypeAssignable means the result can be stored after an identity check
	// by the oracle, e.g. byte for uint8.
	TypeAssignable
	// TypeIdentical means the types are exactly the same.
	TypeIdentical
)

const (
	VerdictIdentical    = "identical"
	VerdictAssignable   = "assignable"
	VerdictIncompatible = "incompatible"
)

// String returns a human-readable name for the compatibility level.
func (c TypeCompatibility) String() string {
	switch c {
	case TypeIdentical:
		return VerdictIdentical
	case TypeAssignable:
		return VerdictAssignable
	case TypeIncompatible:
		return VerdictIncompatible
	default:
		return "unknown"
	}
}

// TypeCompatibilityResult contains detailed information about type compatibility.
type TypeCompatibilityResult struct {
	Compatibility TypeCompatibility
	Reason        string // Human-readable explanation
	SourceType    string
	TargetType    string
}

// Compatible reports whether a value of the source type can be stored.
func (r TypeCompatibilityResult) Compatible() bool {
	return r.Compatibility != TypeIncompatible
}

// ScoreTypeCompatibility determines whether a value of type source can be
// stored where target is expected.
func ScoreTypeCompatibility(source, target analyze.TypeID, oracle analyze.Oracle) TypeCompatibilityResult {
	res := TypeCompatibilityResult{SourceType: source.String(), TargetType: target.String()}

	switch {
	case source.IsZero() || target.IsZero():
		res.Reason = "type is missing"
	case source == target:
		res.Compatibility = TypeIdentical
		res.Reason = "types are identical"
	case oracle.IsAssignableFrom(target, source):
		res.Compatibility = TypeAssignable
		res.Reason = "source is assignable to target"
	default:
		res.Reason = "types are unrelated"
	}

	return res
}
