package primitive

// Category is the coarse tag used to pick hand-tuned templates for an
// underlying type.
type Category int

const (
	CategoryUserDefined Category = iota // anything the generator has no special knowledge of
	CategoryIntegral                    // int, int8..int64, uint, uint8..uint64
	CategoryFloating                    // float32, float64
	CategoryString                      // string
	CategoryGUID                        // github.com/google/uuid.UUID
	CategoryDateTime                    // time.Time, time.Duration
	CategoryBoolean                     // bool
)

// String returns the category tag. It doubles as the template directory name.
func (c Category) String() string {
	switch c {
	case CategoryIntegral:
		return "integral"
	case CategoryFloating:
		return "floating"
	case CategoryString:
		return "string"
	case CategoryGUID:
		return "guid"
	case CategoryDateTime:
		return "datetime"
	case CategoryBoolean:
		return "boolean"
	default:
		return "userdefined"
	}
}

// Category returns the coarse category of a kind.
func (k KindEnum) Category() Category {
	switch {
	case k.IsInteger():
		return CategoryIntegral
	case k.IsFloat():
		return CategoryFloating
	}

	switch k {
	case KindString:
		return CategoryString
	case KindBool:
		return CategoryBoolean
	case KindUUID:
		return CategoryGUID
	case KindTime, KindDuration:
		return CategoryDateTime
	default:
		return CategoryUserDefined
	}
}

// CategoryOf returns the category of the type identified by pkgPath and name.
func CategoryOf(pkgPath, name string) Category {
	return KindOf(pkgPath, name).Category()
}

// Literal classifies a Go literal or constant expression as written in an
// instance directive.
type Literal int

const (
	LiteralExpr   Literal = iota // identifier or any other expression; not checked
	LiteralInt                   // 42, -1, 0x2A
	LiteralFloat                 // 1.5, 1e3
	LiteralString                // "gold", `gold`
	LiteralBool                  // true, false
)

// Accepts reports whether a literal of kind lit can be assigned to a value of
// kind k without a compile-time error. Expressions are never rejected, and
// neither is anything assigned to a user-defined type.
func (k KindEnum) Accepts(lit Literal) bool {
	if lit == LiteralExpr || k == 0 {
		return true
	}

	switch lit {
	case LiteralInt:
		return k.IsNumber() || k == KindDuration
	case LiteralFloat:
		return k.IsFloat()
	case LiteralString:
		return k == KindString
	case LiteralBool:
		return k == KindBool
	default:
		return false
	}
}
