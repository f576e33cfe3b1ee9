package match

import (
	"strings"

	"intellenum-generator/internal/analyze"
	"intellenum-generator/internal/errs"
)

// Member name prefixes scanned for parse functions, in query order.
const (
	PrefixTryParse = "TryParse"
	PrefixParse    = "Parse"
)

var parsePrefixes = []string{PrefixTryParse, PrefixParse}

// ParseSpec describes one parse function the generated code forwards to.
type ParseSpec struct {
	// Leading are the parameters before the out parameter, in order, with
	// their ref kinds.
	Leading   []analyze.Param
	Out       analyze.Param
	Signature string // full member signature, for doc comments
	Call      string // call expression prefix, e.g. "strconv.Atoi"
	Import    string // import path Call needs
	Result    analyze.ResultKind
	OutForm   analyze.OutForm
	// Suffix is appended to the wrapper name: "InLocation" for
	// time.ParseInLocation, "" for time.Parse.
	Suffix string
	// Compat records how Out relates to the underlying type.
	Compat TypeCompatibility
}

// IsTryParseShape reports whether m is a parse function for underlying: a
// static member returning bool or error whose last parameter is an out
// parameter of (or assignable to) the underlying type.
func IsTryParseShape(m analyze.Member, underlying analyze.TypeID, oracle analyze.Oracle) bool {
	if !m.Static || (m.Result != analyze.ResultBool && m.Result != analyze.ResultError) {
		return false
	}

	out, ok := m.Out()
	if !ok {
		return false
	}

	return ScoreTypeCompatibility(out.Type, underlying, oracle).Compatible()
}

// FindParseCandidates scans the static members of underlying for parse
// functions. Every match is kept in member order, including sets that end up
// with the same wrapper name; the compiler reports those.
func FindParseCandidates(underlying analyze.TypeID, oracle analyze.Oracle) ([]ParseSpec, error) {
	var res []ParseSpec

	for _, prefix := range parsePrefixes {
		for _, m := range oracle.Members(underlying, prefix) {
			if err := checkMember(m); err != nil {
				return nil, errs.Fault(err, underlying, "scanning parse functions of %s", underlying)
			}

			if !IsTryParseShape(m, underlying, oracle) {
				continue
			}

			out, _ := m.Out()
			res = append(res, ParseSpec{
				Leading:   m.Params[:len(m.Params)-1],
				Out:       out,
				Signature: m.Signature,
				Call:      m.Call,
				Import:    m.Import,
				Result:    m.Result,
				OutForm:   m.OutForm,
				Suffix:    strings.TrimPrefix(m.Name, prefix),
				Compat:    ScoreTypeCompatibility(out.Type, underlying, oracle).Compatibility,
			})
		}
	}

	return res, nil
}

// checkMember rejects member records the oracle should never produce.
func checkMember(m analyze.Member) error {
	if m.Name == "" {
		return errs.AssertionFailedf("member without a name")
	}

	if !m.Static {
		return nil
	}

	if m.Result != analyze.ResultNone && m.Result != analyze.ResultOther && len(m.Params) == 0 {
		return errs.AssertionFailedf("parse function %s has no parameters", m.Name)
	}

	for i, p := range m.Params {
		if p.Type.IsZero() {
			return errs.AssertionFailedf("parameter %d of %s has no type", i, m.Name)
		}
	}

	if m.OutForm != analyze.OutNone {
		if _, ok := m.Out(); !ok {
			return errs.AssertionFailedf("%s declares an out form but no out parameter", m.Name)
		}
	}

	return nil
}
