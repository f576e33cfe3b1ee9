package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConversions_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Unset", ConversionsUnset.String())
	assert.Equal(t, "None", ConversionsNone.String())
	assert.Equal(t, "JSON|Text", ConversionsDefault.String())
	assert.Equal(t, "SQL|MsgPack", (ConversionsSQL | ConversionsMsgPack).String())
}

func TestParseConversions(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in      string
		want    Conversions
		unknown []string
	}{
		{"JSON|SQL", ConversionsJSON | ConversionsSQL, nil},
		{"json, yaml", ConversionsJSON | ConversionsYAML, nil},
		{"None", ConversionsNone, nil},
		{"", ConversionsNone, nil},
		{"JSON|Protobuf|Jsno", ConversionsJSON, []string{"Protobuf", "Jsno"}},
	}

	for _, tt := range tests {
		got, unknown := ParseConversions(tt.in)
		assert.Equal(t, tt.want, got, tt.in)
		assert.Equal(t, tt.unknown, unknown, tt.in)
	}
}

func TestHas_Unset(t *testing.T) {
	t.Parallel()

	assert.False(t, ConversionsUnset.Has(ConversionsJSON))
	assert.False(t, CustomizationsUnset.Has(JSONNumberAsString))
	assert.True(t, ConversionsDefault.Has(ConversionsText))
	assert.Equal(t, ConversionsJSON, JSONNumberAsString.Requires())
}

func TestStrictnessAndDebugNames(t *testing.T) {
	t.Parallel()

	for i, name := range StrictnessNames() {
		s, ok := ParseStrictness(name)
		assert.True(t, ok)
		assert.Equal(t, Strictness(i+1), s)
		assert.Equal(t, name, s.String())
	}

	for i, name := range DebugNames() {
		d, ok := ParseDebug(name)
		assert.True(t, ok)
		assert.Equal(t, Debug(i+1), d)
		assert.Equal(t, name, d.String())
	}

	_, ok := ParseStrictness("Lenient")
	assert.False(t, ok)
	assert.Equal(t, "unknown", Strictness(42).String())
	assert.Equal(t, "Unset", DebugUnset.String())
}
