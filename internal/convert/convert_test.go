package convert

import (
	"fmt"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"intellenum-generator/internal/config"
	"intellenum-generator/primitive"
)

func target(conv config.Conversions) Target {
	return Target{
		TypeName:       "CustomerType",
		UnderlyingName: "int",
		Category:       primitive.CategoryIntegral,
		Conversions:    conv,
		Customizations: config.CustomizationsNone,
	}
}

const allConversions = config.ConversionsJSON | config.ConversionsText | config.ConversionsSQL |
	config.ConversionsYAML | config.ConversionsMsgPack

func TestRegistry_Order(t *testing.T) {
	t.Parallel()

	reg := NewRegistry(nil)

	var names []string
	for _, g := range reg.Enabled(target(allConversions)) {
		names = append(names, g.Name())
	}

	assert.Equal(t, []string{"json", "text", "sql", "yaml", "msgpack"}, names)
	assert.Empty(t, reg.Enabled(target(config.ConversionsNone)))
}

func TestRegistry_Bodies(t *testing.T) {
	t.Parallel()

	reg := NewRegistry(nil)

	tests := []struct {
		conv config.Conversions
		want []string
	}{
		{config.ConversionsJSON, []string{"func (v CustomerType) MarshalJSON()", "var raw int", "deserializeCustomerType(raw)"}},
		{config.ConversionsText, []string{"func (v CustomerType) MarshalText()", "CustomerTypeFromName(string(text))"}},
		{config.ConversionsSQL, []string{"func (v CustomerType) Value() (driver.Value, error)", "sql.NullInt64", "deserializeCustomerType(int(raw.Int64))"}},
		{config.ConversionsYAML, []string{"func (v *CustomerType) UnmarshalYAML(node *yaml.Node) error"}},
		{config.ConversionsMsgPack, []string{"func (v CustomerType) EncodeMsgpack(enc *msgpack.Encoder) error"}},
	}

	for _, tt := range tests {
		t.Run(tt.conv.String(), func(t *testing.T) {
			t.Parallel()

			bodies := reg.AllBodies(target(tt.conv))
			require.Len(t, bodies, 1)

			for _, w := range tt.want {
				assert.Contains(t, bodies[0], w)
			}

			assert.NotContains(t, bodies[0], TokenType)
			assert.NotContains(t, bodies[0], TokenUnderlying)
			assert.NotContains(t, bodies[0], "__")
		})
	}
}

func TestRegistry_Independence(t *testing.T) {
	t.Parallel()

	reg := NewRegistry(nil)
	all := reg.AllBodies(target(allConversions))
	require.Len(t, all, 5)

	for i, g := range reg.Generators() {
		alone := reg.AllBodies(target(g.Flag()))
		require.Len(t, alone, 1)
		assert.Equal(t, all[i], alone[0], g.Name())
	}
}

func TestRegistry_Imports(t *testing.T) {
	t.Parallel()

	reg := NewRegistry(nil)

	assert.Equal(t, []string{"encoding/json", "fmt"}, reg.AllImports(target(config.ConversionsJSON)))

	guid := target(config.ConversionsSQL | config.ConversionsJSON)
	guid.Category = primitive.CategoryGUID
	guid.UnderlyingName = "uuid.UUID"
	assert.Equal(t, []string{
		"database/sql",
		"database/sql/driver",
		"encoding/json",
		"errors",
		"fmt",
		"github.com/google/uuid",
	}, reg.AllImports(guid))
}

func TestRegistry_Decorations(t *testing.T) {
	t.Parallel()

	decs := NewRegistry(nil).AllDecorations(target(config.ConversionsJSON | config.ConversionsSQL))
	assert.Equal(t, []string{
		"_ json.Marshaler = (*CustomerType)(nil)\n_ json.Unmarshaler = (*CustomerType)(nil)",
		"_ driver.Valuer = (*CustomerType)(nil)\n_ sql.Scanner = (*CustomerType)(nil)",
	}, decs)
}

func TestRegistry_SpecializedBeatsGeneric(t *testing.T) {
	t.Parallel()

	store := primitive.NewFSStore(fstest.MapFS{
		"any/json.tmpl":      {Data: []byte("generic VOTYPE")},
		"integral/json.tmpl": {Data: []byte("integral VOTYPE VOUNDERLYINGTYPE")},
	})
	reg := NewRegistry(store)

	assert.Equal(t, []string{"integral CustomerType int"}, reg.AllBodies(target(config.ConversionsJSON)))

	str := target(config.ConversionsJSON)
	str.Category = primitive.CategoryString
	assert.Equal(t, []string{"generic CustomerType"}, reg.AllBodies(str))
}

type csvGenerator struct{}

func (csvGenerator) Flag() config.Conversions { return 1 << 10 }
func (csvGenerator) Name() string { return "csv" }
func (csvGenerator) Decoration(Target) string { return "" }
func (csvGenerator) Imports(Target) []string { return []string{"encoding/csv"} }
func (csvGenerator) Body(t Target) string { return fmt.Sprintf("// %s has CSV support.\n", t.TypeName) }

func TestBuiltin_GatedOnFlag(t *testing.T) {
	t.Parallel()

	for _, g := range Builtin(primitive.DefaultStore()) {
		t.Run(g.Name(), func(t *testing.T) {
			t.Parallel()

			off := target(allConversions &^ g.Flag())
			assert.Empty(t, g.Decoration(off))
			assert.Empty(t, g.Body(off))
			assert.Empty(t, g.Imports(off))

			on := target(g.Flag())
			assert.NotEmpty(t, g.Decoration(on))
			assert.NotEmpty(t, g.Body(on))
			assert.NotEmpty(t, g.Imports(on))
		})
	}
}

func TestRegistry_Append(t *testing.T) {
	t.Parallel()

	reg := NewRegistry(nil)
	reg.Append(csvGenerator{})

	tgt := target(config.ConversionsJSON | 1<<10)
	gens := reg.Enabled(tgt)
	require.Len(t, gens, 2)
	assert.Equal(t, "csv", gens[1].Name())
	assert.Contains(t, reg.AllImports(tgt), "encoding/csv")
	assert.Len(t, reg.AllDecorations(tgt), 1)
}

func TestSelectRegions(t *testing.T) {
	t.Parallel()

	tmpl := "a\n__NORMAL__n1\n__STRING__s1\n__STRING__\nb\n"

	assert.Equal(t, "a\nn1\nb\n", SelectRegions(tmpl, false))
	assert.Equal(t, "a\ns1\n\nb\n", SelectRegions(tmpl, true))
	assert.Equal(t, "plain\n", SelectRegions("plain\n", true))
}

func TestRender_NumberAsString(t *testing.T) {
	t.Parallel()

	body := NewRegistry(nil).AllBodies(Target{
		TypeName:       "Rate",
		UnderlyingName: "float64",
		Category:       primitive.CategoryFloating,
		Conversions:    config.ConversionsJSON,
		Customizations: config.JSONNumberAsString,
	})
	require.Len(t, body, 1)

	assert.Contains(t, body[0], "json.Marshal(fmt.Sprint(v.Underlying()))")
	assert.Contains(t, body[0], "fmt.Sscan(text, &raw)")
	assert.NotContains(t, body[0], "json.Marshal(v.Underlying())")
}

func TestTarget_NumberAsString(t *testing.T) {
	t.Parallel()

	tgt := target(config.ConversionsJSON)
	assert.False(t, tgt.NumberAsString())

	tgt.Customizations = config.JSONNumberAsString
	assert.True(t, tgt.NumberAsString())

	tgt.Category = primitive.CategoryString
	assert.False(t, tgt.NumberAsString())
}

func TestSubstitute(t *testing.T) {
	t.Parallel()

	got := Substitute("VODESERIALIZE(VOUNDERLYINGTYPE(x)) VOTYPE", Target{TypeName: "Color", UnderlyingName: "string"})
	assert.Equal(t, "deserializeColor(string(x)) Color", got)
	assert.False(t, strings.Contains(got, "VO"))
}
