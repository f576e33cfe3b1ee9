package analyze

import (
	"fmt"
	"path"
	"strings"

	"intellenum-generator/primitive"
)

var predeclared = map[string]TypeKind{
	"bool": TypeKindBasic, "string": TypeKindBasic,
	"int": TypeKindBasic, "int8": TypeKindBasic, "int16": TypeKindBasic, "int32": TypeKindBasic, "int64": TypeKindBasic,
	"uint": TypeKindBasic, "uint8": TypeKindBasic, "uint16": TypeKindBasic, "uint32": TypeKindBasic, "uint64": TypeKindBasic,
	"uintptr": TypeKindBasic, "float32": TypeKindBasic, "float64": TypeKindBasic,
	"complex64": TypeKindBasic, "complex128": TypeKindBasic,
	"byte": TypeKindBasic, "rune": TypeKindBasic,
	"error": TypeKindInterface, "any": TypeKindInterface,
}

// canonical resolves predeclared aliases.
func canonical(id TypeID) TypeID {
	if id.PkgPath != "" {
		return id
	}

	switch id.Name {
	case "byte":
		return Predeclared("uint8")
	case "rune":
		return Predeclared("int32")
	case "interface{}":
		return Predeclared("any")
	default:
		return id
	}
}

// builtinType describes predeclared types, unnamed type expressions and the
// library types the generator knows by heart.
func builtinType(id TypeID) (*TypeInfo, bool) {
	id = canonical(id)

	if id.PkgPath == "" {
		if kind, ok := predeclared[id.Name]; ok {
			return &TypeInfo{ID: id, Kind: kind, Comparable: true}, true
		}

		if kind, ok := TypeFromExpr(id.Name); ok {
			isComparable := kind == TypeKindPointer || kind == TypeKindChan || kind == TypeKindInterface
			return &TypeInfo{ID: id, Kind: kind, Comparable: isComparable}, true
		}

		return nil, false
	}

	switch primitive.KindOf(id.PkgPath, id.Name) {
	case primitive.KindTime:
		return &TypeInfo{ID: id, PkgName: "time", Kind: TypeKindStruct, Comparable: true}, true
	case primitive.KindDuration:
		return &TypeInfo{ID: id, PkgName: "time", Kind: TypeKindBasic, Underlying: Predeclared("int64"), Comparable: true}, true
	case primitive.KindUUID:
		return &TypeInfo{ID: id, PkgName: "uuid", Kind: TypeKindArray, Comparable: true}, true
	default:
		return nil, false
	}
}

// builtinMembers returns the parse functions of a known primitive as static
// members of id.
func builtinMembers(id TypeID, prefix string) []Member {
	id = canonical(id)

	var res []Member
	for _, p := range primitive.Parsers(primitive.KindOf(id.PkgPath, id.Name)) {
		if !strings.HasPrefix(p.Name, prefix) {
			continue
		}

		res = append(res, parseFuncMember(id, p))
	}

	return res
}

func parseFuncMember(id TypeID, p primitive.ParseFunc) Member {
	m := Member{
		Name:    p.Name,
		Owner:   id,
		PkgPath: p.PkgPath,
		Static:  true,
		Result:  ResultError,
		OutForm: OutResult,
		Call:    path.Base(p.PkgPath) + "." + p.Func,
		Import:  p.PkgPath,
	}

	parts := make([]string, 0, len(p.Params))
	for _, pp := range p.Params {
		param := Param{Name: pp.Name, Type: TypeID{PkgPath: pp.PkgPath, Name: pp.Type}, Display: pp.Type}
		if pp.PkgPath != "" {
			param.Display = path.Base(pp.PkgPath) + "." + pp.Type
			param.Import = pp.PkgPath
		}

		if pp.Pointer {
			param.Display = "*" + param.Display
			param.Ref = RefByRef
		}

		m.Params = append(m.Params, param)
		parts = append(parts, param.Name+" "+param.Display)
	}

	out := Param{Name: "result", Type: id, Display: id.Name, Ref: RefOut}
	if id.PkgPath != "" {
		out.Display = path.Base(id.PkgPath) + "." + id.Name
		out.Import = id.PkgPath
	}

	m.Params = append(m.Params, out)
	m.Signature = fmt.Sprintf("func %s(%s) (%s, error)", m.Call, strings.Join(parts, ", "), out.Display)

	return m
}
