package validate

import (
	"slices"

	"intellenum-generator/internal/analyze"
	"intellenum-generator/internal/common"
)

// ValidationMethodNames are the accepted names of the validation method, in
// lookup order.
var ValidationMethodNames = []string{"Validate", "validate"}

// FindValidationMethod looks for `func (T) Validate(U) error` or its
// unexported form on typ, where U is the underlying type.
func FindValidationMethod(oracle analyze.Oracle, typ, underlying analyze.TypeID) (analyze.Member, bool) {
	for _, name := range ValidationMethodNames {
		for _, m := range oracle.Members(typ, name) {
			if m.Name != name || m.Static || m.Result != analyze.ResultError || len(m.Params) != 1 {
				continue
			}

			if m.Params[0].Ref == analyze.RefByValue && oracle.IsAssignableFrom(m.Params[0].Type, underlying) {
				return m, true
			}
		}
	}

	return analyze.Member{}, false
}

// FindStringMethod looks for a user-supplied `String() string` on typ.
func FindStringMethod(oracle analyze.Oracle, typ analyze.TypeID) (analyze.Member, bool) {
	i := slices.IndexFunc(oracle.Members(typ, "String"), func(m analyze.Member) bool {
		return m.Name == "String" && !m.Static && len(m.Params) == 0
	})
	if i < 0 {
		return analyze.Member{}, false
	}

	return oracle.Members(typ, "String")[i], true
}

// FindErrorConstructor looks for a package function producing the error
// type errType from a single string message.
func FindErrorConstructor(oracle analyze.Oracle, errType analyze.TypeID) (analyze.Member, bool) {
	for _, m := range oracle.Members(errType, "") {
		if m.Static && m.Owner == errType && m.Result == analyze.ResultOther && len(m.Params) == 1 &&
			m.Params[0].Ref == analyze.RefByValue && m.Params[0].Type == analyze.Predeclared("string") {
			return m, true
		}
	}

	return analyze.Member{}, false
}

// StateTypeName is the name of the generated state type a struct kind must
// embed.
func StateTypeName(typeName string) string {
	return common.LowerFirst(typeName) + "State"
}
