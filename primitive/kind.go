package primitive

import (
	"reflect"
	"time"

	"github.com/google/uuid"
)

//go:generate go tool stringer -type=KindEnum -output=kind_string.go

// KindEnum identifies the primitive types the generator knows by heart.
type KindEnum int

const (
	_ KindEnum = iota // skip zero value, use it as a default (user-defined) value for KindEnum

	KindInt
	KindInt8
	KindInt16
	KindInt32
	KindInt64
	KindUint
	KindUint8
	KindUint16
	KindUint32
	KindUint64
	KindFloat32
	KindFloat64
	KindBool
	KindString
	KindTime
	KindDuration
	KindUUID

	// KindTotal is a constant that represents the total number of kinds defined
	KindTotal = int(iota)
)

func (k KindEnum) IsNumber() bool {
	return k.IsInteger() || k.IsFloat()
}

func (k KindEnum) IsInteger() bool {
	switch k {
	default:
		return false
	case KindInt, KindInt8, KindInt16, KindInt32, KindInt64,
		KindUint, KindUint8, KindUint16, KindUint32, KindUint64:
		return true
	}
}

func (k KindEnum) IsFloat() bool {
	switch k {
	default:
		return false
	case KindFloat32, KindFloat64:
		return true
	}
}

func (k KindEnum) IsSigned() bool {
	switch k {
	default:
		return false
	case KindInt, KindInt8, KindInt16, KindInt32, KindInt64:
		return true
	}
}

func (k KindEnum) IsUnsigned() bool {
	switch k {
	default:
		return false
	case KindUint, KindUint8, KindUint16, KindUint32, KindUint64:
		return true
	}
}

// IsBasic reports whether the kind is a predeclared Go type.
func (k KindEnum) IsBasic() bool {
	return k.IsNumber() || k == KindBool || k == KindString
}

// typeKey is a package path plus type name; basic types have an empty path.
type typeKey struct {
	pkgPath string
	name    string
}

func keyOf(rtype reflect.Type) typeKey {
	return typeKey{pkgPath: rtype.PkgPath(), name: rtype.Name()}
}

var kinds = map[typeKey]KindEnum{
	keyOf(reflect.TypeOf(int(0))):           KindInt,
	keyOf(reflect.TypeOf(int8(0))):          KindInt8,
	keyOf(reflect.TypeOf(int16(0))):         KindInt16,
	keyOf(reflect.TypeOf(int32(0))):         KindInt32,
	keyOf(reflect.TypeOf(int64(0))):         KindInt64,
	keyOf(reflect.TypeOf(uint(0))):          KindUint,
	keyOf(reflect.TypeOf(uint8(0))):         KindUint8,
	keyOf(reflect.TypeOf(uint16(0))):        KindUint16,
	keyOf(reflect.TypeOf(uint32(0))):        KindUint32,
	keyOf(reflect.TypeOf(uint64(0))):        KindUint64,
	keyOf(reflect.TypeOf(float32(0))):       KindFloat32,
	keyOf(reflect.TypeOf(float64(0))):       KindFloat64,
	keyOf(reflect.TypeOf(false)):            KindBool,
	keyOf(reflect.TypeOf("")):               KindString,
	keyOf(reflect.TypeOf(time.Time{})):      KindTime,
	keyOf(reflect.TypeOf(time.Duration(0))): KindDuration,
	keyOf(reflect.TypeOf(uuid.UUID{})):      KindUUID,

	// predeclared aliases
	{name: "byte"}: KindUint8,
	{name: "rune"}: KindInt32,
}

// KindOf returns the kind of the type identified by its package path and
// name, or the zero KindEnum for types the generator has no special
// knowledge of.
func KindOf(pkgPath, name string) KindEnum {
	return kinds[typeKey{pkgPath: pkgPath, name: name}]
}

// FromReflectType returns the kind of rtype.
func FromReflectType(rtype reflect.Type) KindEnum {
	if rtype == nil {
		return 0
	}

	return kinds[keyOf(rtype)]
}

// QualifiedName returns "pkgpath.Name" for a kind, or "Name" for basic kinds.
func (k KindEnum) QualifiedName() (pkgPath, name string) {
	for key, kind := range kinds {
		if kind == k && key.name != "byte" && key.name != "rune" {
			return key.pkgPath, key.name
		}
	}

	return "", ""
}
