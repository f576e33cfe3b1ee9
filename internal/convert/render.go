package convert

import (
	"strings"
)

// Placeholder tokens understood by Render.
const (
	TokenType        = "VOTYPE"
	TokenUnderlying  = "VOUNDERLYINGTYPE"
	TokenDeserialize = "VODESERIALIZE"
)

// Region markers.
const (
	RegionNormal = "__NORMAL__"
	RegionString = "__STRING__"
)

// DeserializeFunc is the name of the deserialize helper generated for typeName.
func DeserializeFunc(typeName string) string {
	return "deserialize" + typeName
}

// SelectRegions keeps the lines of the region chosen by numberAsString and
// strips the markers. Unmarked lines are always kept.
func SelectRegions(tmpl string, numberAsString bool) string {
	if !strings.Contains(tmpl, RegionNormal) && !strings.Contains(tmpl, RegionString) {
		return tmpl
	}

	lines := strings.SplitAfter(tmpl, "\n")
	out := lines[:0]

	for _, line := range lines {
		switch {
		case strings.HasPrefix(line, RegionNormal):
			if !numberAsString {
				out = append(out, strings.TrimPrefix(line, RegionNormal))
			}
		case strings.HasPrefix(line, RegionString):
			if numberAsString {
				out = append(out, strings.TrimPrefix(line, RegionString))
			}
		default:
			out = append(out, line)
		}
	}

	return strings.Join(out, "")
}

// Substitute replaces the placeholder tokens for t.
func Substitute(tmpl string, t Target) string {
	return strings.NewReplacer(
		TokenDeserialize, DeserializeFunc(t.TypeName),
		TokenUnderlying, t.UnderlyingName,
		TokenType, t.TypeName,
	).Replace(tmpl)
}

// Render selects regions and substitutes tokens.
func Render(tmpl string, t Target) string {
	return Substitute(SelectRegions(tmpl, t.NumberAsString()), t)
}
