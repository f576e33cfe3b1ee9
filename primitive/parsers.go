package primitive

// ParseParam is one leading parameter of a ParseFunc.
type ParseParam struct {
	Name    string
	PkgPath string // "" for predeclared types
	Type    string
	Pointer bool
}

// ParseFunc describes a package function that parses text into a primitive.
// The parsed value is the function's first result; the second result is an
// error.
type ParseFunc struct {
	// Name is the name the matcher queries by. It differs from Func when the
	// function does not follow the Parse* naming (strconv.Atoi).
	Name    string
	PkgPath string
	Func    string
	Params  []ParseParam
	Out     KindEnum
}

var (
	paramS       = ParseParam{Name: "s", Type: "string"}
	paramBase    = ParseParam{Name: "base", Type: "int"}
	paramBitSize = ParseParam{Name: "bitSize", Type: "int"}
	paramLayout  = ParseParam{Name: "layout", Type: "string"}
	paramValue   = ParseParam{Name: "value", Type: "string"}
	paramLoc     = ParseParam{Name: "loc", PkgPath: "time", Type: "Location", Pointer: true}
	paramBytes   = ParseParam{Name: "b", Type: "[]byte"}
)

var parsers = map[KindEnum][]ParseFunc{
	KindInt: {
		{Name: "Parse", PkgPath: "strconv", Func: "Atoi", Params: []ParseParam{paramS}, Out: KindInt},
	},
	KindInt64: {
		{Name: "ParseInt", PkgPath: "strconv", Func: "ParseInt", Params: []ParseParam{paramS, paramBase, paramBitSize}, Out: KindInt64},
	},
	KindUint64: {
		{Name: "ParseUint", PkgPath: "strconv", Func: "ParseUint", Params: []ParseParam{paramS, paramBase, paramBitSize}, Out: KindUint64},
	},
	KindFloat64: {
		{Name: "ParseFloat", PkgPath: "strconv", Func: "ParseFloat", Params: []ParseParam{paramS, paramBitSize}, Out: KindFloat64},
	},
	KindBool: {
		{Name: "ParseBool", PkgPath: "strconv", Func: "ParseBool", Params: []ParseParam{paramS}, Out: KindBool},
	},
	KindTime: {
		{Name: "Parse", PkgPath: "time", Func: "Parse", Params: []ParseParam{paramLayout, paramValue}, Out: KindTime},
		{Name: "ParseInLocation", PkgPath: "time", Func: "ParseInLocation", Params: []ParseParam{paramLayout, paramValue, paramLoc}, Out: KindTime},
	},
	KindDuration: {
		{Name: "ParseDuration", PkgPath: "time", Func: "ParseDuration", Params: []ParseParam{paramS}, Out: KindDuration},
	},
	KindUUID: {
		{Name: "Parse", PkgPath: "github.com/google/uuid", Func: "Parse", Params: []ParseParam{paramS}, Out: KindUUID},
		{Name: "ParseBytes", PkgPath: "github.com/google/uuid", Func: "ParseBytes", Params: []ParseParam{paramBytes}, Out: KindUUID},
	},
}

// Parsers returns the parse functions known for kind, in a fixed order.
// Kinds without a parser that produces exactly that type get nil.
func Parsers(kind KindEnum) []ParseFunc {
	return parsers[kind]
}
