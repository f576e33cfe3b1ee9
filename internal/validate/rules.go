package validate

import (
	"fmt"
	"slices"
	"strings"

	"intellenum-generator/internal/analyze"
	"intellenum-generator/internal/common"
	"intellenum-generator/internal/config"
	"intellenum-generator/internal/diagnostic"
	"intellenum-generator/internal/discover"
	"intellenum-generator/primitive"
)

// Rules is the fixed evaluation order. Reordering changes which diagnostic is
// the first fatal one for a candidate.
var Rules = []Rule{
	{ID: diagnostic.TypeCannotBeNested, Check: checkNested},
	{ID: diagnostic.UnknownType, Check: checkUnknownType},
	{ID: diagnostic.UnderlyingTypeMustNotBeSameAsValueObject, Check: checkSelfUnderlying},
	{ID: diagnostic.UnderlyingTypeCannotBeCollection, Check: checkCollection},
	{ID: diagnostic.TypeCannotBeAbstract, Check: checkAbstract},
	{ID: diagnostic.CannotHaveUserConstructors, Check: checkConstructors},
	{ID: diagnostic.DoNotUseDefault, Check: checkSite(analyze.SiteComposite, diagnostic.DoNotUseDefault, "%s{} bypasses validation; use one of the declared instances")},
	{ID: diagnostic.DoNotUseNew, Check: checkSite(analyze.SiteNew, diagnostic.DoNotUseNew, "new(%s) bypasses validation; use one of the declared instances")},
	{ID: diagnostic.CustomExceptionMustDeriveFromException, Check: checkErrorType},
	{ID: diagnostic.CustomExceptionMustHaveValidConstructor, Check: checkErrorConstructor},
	{ID: diagnostic.InvalidConversions, Check: checkArgs(config.KeyConversions)},
	{ID: diagnostic.InvalidArgument, Check: checkArgs(config.KeyStrictness, config.KeyDebug, config.AxisArgument)},
	{ID: diagnostic.InvalidCustomizations, Check: checkCustomizations},
	{ID: diagnostic.TypeShouldBePartial, Check: checkEmbedsState},
	{ID: diagnostic.StringMethodShouldUseValueReceiver, Check: checkStringReceiver},
	{ID: diagnostic.InstanceNameInvalid, Check: checkInstanceNames},
	{ID: diagnostic.InstanceValueMissing, Check: checkInstanceValues},
	{ID: diagnostic.InstanceValueCannotBeConverted, Check: checkInstanceLiterals},
	{ID: diagnostic.MustHaveInstances, Check: checkHasInstances},
	{ID: diagnostic.DuplicateTypesFound, Check: checkDuplicates},
	{ID: diagnostic.DuplicateMarker, Check: checkDuplicateMarker},
	{ID: diagnostic.AddValidationMethod, Check: checkValidationMethod},
}

func ptr(d diagnostic.Diagnostic) *diagnostic.Diagnostic {
	return &d
}

func checkNested(in *Input) *diagnostic.Diagnostic {
	if !in.Candidate.Decl.Nested {
		return nil
	}

	return ptr(diagnostic.Errorf(diagnostic.TypeCannotBeNested, in.Candidate.Decl.Pos,
		"type %s cannot be declared inside a function", in.Candidate.Name))
}

// firstArgIssue converts the first argument problem on one of axes.
func firstArgIssue(c *discover.Candidate, axes ...string) *diagnostic.Diagnostic {
	i := slices.IndexFunc(c.ArgIssues, func(a discover.ArgIssue) bool {
		return slices.Contains(axes, a.Axis)
	})
	if i < 0 {
		return nil
	}

	return ptr(config.ArgDiagnostic(c.ArgIssues[i].ArgError, c.ArgIssues[i].Pos))
}

func checkUnknownType(in *Input) *diagnostic.Diagnostic {
	return firstArgIssue(in.Candidate, config.KeyUnderlying, config.KeyError)
}

func checkSelfUnderlying(in *Input) *diagnostic.Diagnostic {
	if in.Config.Underlying != in.Candidate.TypeID() {
		return nil
	}

	return ptr(diagnostic.Errorf(diagnostic.UnderlyingTypeMustNotBeSameAsValueObject, in.Candidate.Marker.Pos,
		"type %s cannot be its own underlying type", in.Candidate.Name))
}

func checkCollection(in *Input) *diagnostic.Diagnostic {
	info, ok := in.Oracle.Type(in.Config.Underlying)
	if !ok || (!info.Kind.IsCollection() && info.Comparable) {
		return nil
	}

	return ptr(diagnostic.Errorf(diagnostic.UnderlyingTypeCannotBeCollection, in.Candidate.Marker.Pos,
		"underlying type %s of %s must be a comparable non-collection type", in.Config.Underlying, in.Candidate.Name))
}

func checkAbstract(in *Input) *diagnostic.Diagnostic {
	if in.Candidate.Kind != discover.KindInterface {
		return nil
	}

	return ptr(diagnostic.Errorf(diagnostic.TypeCannotBeAbstract, in.Candidate.Decl.Pos,
		"interface type %s cannot be an enum", in.Candidate.Name))
}

func checkConstructors(in *Input) *diagnostic.Diagnostic {
	c := in.Candidate
	for _, m := range in.Oracle.Members(c.TypeID(), "New") {
		if !m.Static || m.PkgPath != c.PkgPath {
			continue
		}

		return ptr(diagnostic.Errorf(diagnostic.CannotHaveUserConstructors, m.Pos,
			"%s cannot have user-defined constructors like %s; instances are generated", c.Name, m.Name))
	}

	return nil
}

func checkSite(kind analyze.SiteKind, code, format string) func(in *Input) *diagnostic.Diagnostic {
	return func(in *Input) *diagnostic.Diagnostic {
		sites := in.Oracle.ConstructionSites(in.Candidate.TypeID())

		i := slices.IndexFunc(sites, func(s analyze.Site) bool { return s.Kind == kind })
		if i < 0 {
			return nil
		}

		return ptr(diagnostic.Errorf(code, sites[i].Pos, format, in.Candidate.Name))
	}
}

// customErrorType returns the validation error type when it is not the
// builtin error.
func customErrorType(in *Input) (analyze.TypeID, bool) {
	ve := in.Config.ValidationError
	if ve.IsZero() || ve == in.Oracle.ErrorType() {
		return analyze.TypeID{}, false
	}

	return ve, true
}

func checkErrorType(in *Input) *diagnostic.Diagnostic {
	ve, ok := customErrorType(in)
	if !ok || in.Oracle.IsAssignableFrom(in.Oracle.ErrorType(), ve) {
		return nil
	}

	return ptr(diagnostic.Errorf(diagnostic.CustomExceptionMustDeriveFromException, in.Candidate.Marker.Pos,
		"validation error type %s must implement error", ve))
}

func checkErrorConstructor(in *Input) *diagnostic.Diagnostic {
	ve, ok := customErrorType(in)
	if !ok {
		return nil
	}

	if _, ok := FindErrorConstructor(in.Oracle, ve); ok {
		return nil
	}

	return ptr(diagnostic.Errorf(diagnostic.CustomExceptionMustHaveValidConstructor, in.Candidate.Marker.Pos,
		"validation error type %s needs a constructor taking a single string message", ve))
}

func checkArgs(axes ...string) func(in *Input) *diagnostic.Diagnostic {
	return func(in *Input) *diagnostic.Diagnostic {
		return firstArgIssue(in.Candidate, axes...)
	}
}

func checkCustomizations(in *Input) *diagnostic.Diagnostic {
	if d := firstArgIssue(in.Candidate, config.KeyCustomizations); d != nil {
		return d
	}

	need := in.Config.Customizations.Requires()
	if need == config.ConversionsNone || in.Config.Conversions.Has(need) {
		return nil
	}

	d := diagnostic.Warningf(diagnostic.InvalidCustomizations, in.Candidate.Marker.Pos,
		"customizations %s have no effect without conversions %s", in.Config.Customizations, need)
	d.Properties = map[string]string{diagnostic.PropAxis: config.KeyCustomizations, diagnostic.PropName: in.Config.Customizations.String()}

	return &d
}

func checkEmbedsState(in *Input) *diagnostic.Diagnostic {
	if in.Candidate.Kind != discover.KindStruct || in.Type == nil {
		return nil
	}

	state := StateTypeName(in.Candidate.Name)
	if in.Type.Embeds(state) {
		return nil
	}

	return ptr(diagnostic.Warningf(diagnostic.TypeShouldBePartial, in.Candidate.Decl.Pos,
		"struct %s should embed %s so the generated code can extend it", in.Candidate.Name, state))
}

func checkStringReceiver(in *Input) *diagnostic.Diagnostic {
	m, ok := FindStringMethod(in.Oracle, in.Candidate.TypeID())
	if !ok || !m.PtrRecv {
		return nil
	}

	return ptr(diagnostic.Warningf(diagnostic.StringMethodShouldUseValueReceiver, m.Pos,
		"String on %s should use a value receiver so every instance prints through it", in.Candidate.Name))
}

func checkInstanceNames(in *Input) *diagnostic.Diagnostic {
	seen := make(map[string]bool, len(in.Candidate.Instances))
	for _, inst := range in.Candidate.Instances {
		var problem string

		switch {
		case inst.Name == "":
			problem = "instance name cannot be empty"
		case !common.IsIdent(inst.Name):
			problem = fmt.Sprintf("instance name %q is not a valid identifier", inst.Name)
		case seen[inst.Name]:
			problem = fmt.Sprintf("instance name %q is declared more than once", inst.Name)
		}

		if problem != "" {
			return ptr(diagnostic.Errorf(diagnostic.InstanceNameInvalid, inst.Pos, "%s: %s", in.Candidate.Name, problem))
		}

		seen[inst.Name] = true
	}

	return nil
}

func checkInstanceValues(in *Input) *diagnostic.Diagnostic {
	for _, inst := range in.Candidate.Instances {
		if strings.TrimSpace(inst.Value) == "" {
			return ptr(diagnostic.Errorf(diagnostic.InstanceValueMissing, inst.Pos,
				"instance %s of %s has no value", inst.Name, in.Candidate.Name))
		}
	}

	return nil
}

func checkInstanceLiterals(in *Input) *diagnostic.Diagnostic {
	kind := primitive.KindOf(in.Config.Underlying.PkgPath, in.Config.Underlying.Name)
	for _, inst := range in.Candidate.Instances {
		if inst.Value == "" {
			continue
		}

		if inst.ValueErr != "" {
			return ptr(diagnostic.Errorf(diagnostic.InstanceValueCannotBeConverted, inst.Pos,
				"value %s of instance %s is not a Go expression: %s", inst.Value, inst.Name, inst.ValueErr))
		}

		if !kind.Accepts(inst.Literal) {
			return ptr(diagnostic.Errorf(diagnostic.InstanceValueCannotBeConverted, inst.Pos,
				"value %s of instance %s cannot be converted to %s", inst.Value, inst.Name, in.Config.Underlying))
		}
	}

	return nil
}

func checkHasInstances(in *Input) *diagnostic.Diagnostic {
	if len(in.Candidate.Instances) > 0 {
		return nil
	}

	if _, ok := FindValidationMethod(in.Oracle, in.Candidate.TypeID(), in.Config.Underlying); ok {
		return nil
	}

	return ptr(diagnostic.Errorf(diagnostic.MustHaveInstances, in.Candidate.Decl.Pos,
		"%s declares no instances and has no validation method", in.Candidate.Name))
}

func checkDuplicates(in *Input) *diagnostic.Diagnostic {
	locs := in.Pass.Locations(in.Candidate.FullName())
	if len(locs) < 2 {
		return nil
	}

	others := make([]string, 0, len(locs)-1)
	for _, l := range locs {
		if l != in.Candidate.Decl.Pos {
			others = append(others, l.String())
		}
	}

	if len(others) == 0 {
		return nil
	}

	return ptr(diagnostic.Errorf(diagnostic.DuplicateTypesFound, in.Candidate.Decl.Pos,
		"%s is also declared at %s", in.Candidate.FullName(), strings.Join(others, ", ")))
}

func checkDuplicateMarker(in *Input) *diagnostic.Diagnostic {
	if in.Candidate.Markers < 2 {
		return nil
	}

	return ptr(diagnostic.Warningf(diagnostic.DuplicateMarker, in.Candidate.Marker.Pos,
		"%s carries %d enum markers; only the first is used", in.Candidate.Name, in.Candidate.Markers))
}

func checkValidationMethod(in *Input) *diagnostic.Diagnostic {
	c := in.Candidate
	if _, ok := FindValidationMethod(in.Oracle, c.TypeID(), in.Config.Underlying); ok {
		return nil
	}

	primitiveType := in.Config.Underlying.Name
	if info, ok := in.Oracle.Type(in.Config.Underlying); ok {
		primitiveType = info.QualifiedName(c.PkgPath)
	}

	d := diagnostic.New(diagnostic.SeverityInfo, diagnostic.AddValidationMethod, c.Decl.Pos,
		fmt.Sprintf("%s can declare a validation method for %s values", c.Name, primitiveType),
		diagnostic.PropPrimitiveType, primitiveType,
		diagnostic.PropTypeName, c.Name,
	)

	return &d
}
