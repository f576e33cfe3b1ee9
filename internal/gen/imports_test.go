package gen

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQualifier(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"*time.Location":      "time",
		"uuid.Nil":            "uuid",
		"[4]money.Cents":      "money",
		"errkit.NewError":     "errkit",
		"map[string]gid.UUID": "gid",
		"int":                 "",
		"":                    "",
	}

	for ref, want := range tests {
		assert.Equal(t, want, qualifier(ref), ref)
	}
}

func TestImportSet(t *testing.T) {
	t.Parallel()

	s := newImportSet(shop)
	s.addRef("github.com/google/uuid", "gid.UUID")
	s.add("github.com/google/uuid", "")
	s.add("fmt", "")
	s.add("example.com/other/fmt", "fmt")
	s.add(shop, "shop")
	s.add("embed", "_")
	s.add("gopkg.in/yaml.v3", "")
	s.add("", "x")

	assert.Equal(t, []importSpec{
		{Path: "fmt"},
		{Path: "github.com/google/uuid"},
		{Alias: "gid", Path: "github.com/google/uuid"},
		{Path: "gopkg.in/yaml.v3"},
	}, s.sorted())
}
