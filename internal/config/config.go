// Package config holds the per-type generation configuration and the rules
// that combine a type's own settings with program-wide defaults.
//
// Every axis has an "unset" sentinel so that "not specified" is never
// confused with "explicitly set to the default".
package config

import (
	"strings"

	"intellenum-generator/internal/analyze"
	"intellenum-generator/internal/common"
)

// Configuration is the five-axis generation configuration.
type Configuration struct {
	// Underlying is the primitive each instance wraps. Zero means unset.
	Underlying analyze.TypeID
	// ValidationError is the error type returned when validation fails.
	// Zero means unset.
	ValidationError analyze.TypeID
	Conversions     Conversions
	Customizations  Customizations
	Strictness      Strictness
	Debug           Debug
}

// Unset returns a configuration with every axis unset.
func Unset() Configuration {
	return Configuration{
		Conversions:    ConversionsUnset,
		Customizations: CustomizationsUnset,
	}
}

// Conversions is the set of serialization adapters to generate.
type Conversions uint32

const (
	ConversionsNone Conversions = 0
	ConversionsJSON Conversions = 1 << (iota - 1)
	ConversionsText
	ConversionsSQL
	ConversionsYAML
	ConversionsMsgPack

	// ConversionsUnset is the reserved "not specified" value.
	ConversionsUnset Conversions = 1 << 31

	ConversionsDefault = ConversionsJSON | ConversionsText
)

var conversionNames = []struct {
	flag Conversions
	name string
}{
	{ConversionsJSON, "JSON"},
	{ConversionsText, "Text"},
	{ConversionsSQL, "SQL"},
	{ConversionsYAML, "YAML"},
	{ConversionsMsgPack, "MsgPack"},
}

// ConversionNames lists the known conversion names in registration order.
func ConversionNames() []string {
	res := make([]string, 0, len(conversionNames))
	for _, c := range conversionNames {
		res = append(res, c.name)
	}

	return res
}

// Has reports whether every flag of f is set in c.
func (c Conversions) Has(f Conversions) bool {
	return c != ConversionsUnset && c&f == f
}

// String returns the flags joined with "|".
func (c Conversions) String() string {
	switch c {
	case ConversionsUnset:
		return "Unset"
	case ConversionsNone:
		return "None"
	}

	var parts []string
	for _, cn := range conversionNames {
		if c&cn.flag != 0 {
			parts = append(parts, cn.name)
		}
	}

	return strings.Join(parts, "|")
}

// ParseConversions parses "JSON|SQL". Matching ignores case; "None" and the
// empty string mean no conversions. Unknown names are returned separately.
func ParseConversions(s string) (Conversions, []string) {
	var (
		res     Conversions
		unknown []string
	)

	for _, part := range splitFlags(s) {
		if strings.EqualFold(part, "None") {
			continue
		}

		found := false
		for _, cn := range conversionNames {
			if strings.EqualFold(part, cn.name) {
				res |= cn.flag
				found = true

				break
			}
		}

		if !found {
			unknown = append(unknown, part)
		}
	}

	return res, unknown
}

// Customizations are behavioral toggles.
type Customizations uint32

const (
	CustomizationsNone Customizations = 0
	// JSONNumberAsString writes numeric values as JSON strings.
	JSONNumberAsString Customizations = 1 << 0

	// CustomizationsUnset is the reserved "not specified" value.
	CustomizationsUnset Customizations = 1 << 31
)

var customizationNames = []struct {
	flag Customizations
	name string
	// requires is the conversion the customization tunes.
	requires Conversions
}{
	{JSONNumberAsString, "JSONNumberAsString", ConversionsJSON},
}

// CustomizationNames lists the known customization names.
func CustomizationNames() []string {
	res := make([]string, 0, len(customizationNames))
	for _, c := range customizationNames {
		res = append(res, c.name)
	}

	return res
}

// Has reports whether every flag of f is set in c.
func (c Customizations) Has(f Customizations) bool {
	return c != CustomizationsUnset && c&f == f
}

// Requires returns the conversions the customizations in c tune.
func (c Customizations) Requires() Conversions {
	var res Conversions
	for _, cn := range customizationNames {
		if c.Has(cn.flag) {
			res |= cn.requires
		}
	}

	return res
}

// String returns the flags joined with "|".
func (c Customizations) String() string {
	switch c {
	case CustomizationsUnset:
		return "Unset"
	case CustomizationsNone:
		return "None"
	}

	var parts []string
	for _, cn := range customizationNames {
		if c&cn.flag != 0 {
			parts = append(parts, cn.name)
		}
	}

	return strings.Join(parts, "|")
}

// ParseCustomizations parses "JSONNumberAsString". Matching ignores case.
func ParseCustomizations(s string) (Customizations, []string) {
	var (
		res     Customizations
		unknown []string
	)

	for _, part := range splitFlags(s) {
		if strings.EqualFold(part, "None") {
			continue
		}

		found := false
		for _, cn := range customizationNames {
			if strings.EqualFold(part, cn.name) {
				res |= cn.flag
				found = true

				break
			}
		}

		if !found {
			unknown = append(unknown, part)
		}
	}

	return res, unknown
}

func splitFlags(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return r == '|' || r == ',' || r == ' '
	})
}

// Strictness controls what deserialization accepts.
type Strictness int

const (
	StrictnessUnset Strictness = iota
	// AllowValidAndKnownInstances accepts known instances and, when the type
	// has a validation method, any value that passes it.
	AllowValidAndKnownInstances
	// AllowKnownInstances accepts only values of declared instances.
	AllowKnownInstances
	// AllowAnything accepts any value without validation.
	AllowAnything

	StrictnessDefault = AllowValidAndKnownInstances
)

var strictnessNames = []string{"AllowValidAndKnownInstances", "AllowKnownInstances", "AllowAnything"}

// StrictnessNames lists the known strictness names.
func StrictnessNames() []string {
	return strictnessNames
}

// String returns the strictness name.
func (s Strictness) String() string {
	if s == StrictnessUnset {
		return "Unset"
	}

	if s < 0 || int(s) > len(strictnessNames) {
		return common.UnknownStr
	}

	return strictnessNames[s-1]
}

// ParseStrictness parses a strictness name, ignoring case.
func ParseStrictness(s string) (Strictness, bool) {
	for i, name := range strictnessNames {
		if strings.EqualFold(s, name) {
			return Strictness(i + 1), true
		}
	}

	return StrictnessUnset, false
}

// Debug selects how the debugger display method is generated.
type Debug int

const (
	DebugUnset Debug = iota
	DebugFull        // GoString method
	DebugBasic       // GoString method reporting the name only
	DebugOmit        // nothing

	DebugDefault = DebugFull
)

var debugNames = []string{"Full", "Basic", "Omit"}

// DebugNames lists the known debug mode names.
func DebugNames() []string {
	return debugNames
}

// String returns the debug mode name.
func (d Debug) String() string {
	if d == DebugUnset {
		return "Unset"
	}

	if d < 0 || int(d) > len(debugNames) {
		return common.UnknownStr
	}

	return debugNames[d-1]
}

// ParseDebug parses a debug mode name, ignoring case.
func ParseDebug(s string) (Debug, bool) {
	for i, name := range debugNames {
		if strings.EqualFold(s, name) {
			return Debug(i + 1), true
		}
	}

	return DebugUnset, false
}
