package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSnakeCase(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"CustomerType": "customer_type",
		"HTTPStatus":   "http_status",
		"ID":           "id",
		"Level2Code":   "level2_code",
		"already_ok":   "already_ok",
		"":             "",
	}

	for in, want := range tests {
		assert.Equal(t, want, SnakeCase(in), "input %q", in)
	}
}

func TestLowerFirst(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "customerType", LowerFirst("CustomerType"))
	assert.Equal(t, "x", LowerFirst("X"))
	assert.Empty(t, LowerFirst(""))
}

func TestIsIdent(t *testing.T) {
	t.Parallel()

	assert.True(t, IsIdent("Gold"))
	assert.True(t, IsIdent("_x1"))
	assert.False(t, IsIdent("1st"))
	assert.False(t, IsIdent("type"))
	assert.False(t, IsIdent(""))
}

func TestFirst(t *testing.T) {
	t.Parallel()

	v, ok := First([]string{"a", "b"})
	assert.True(t, ok)
	assert.Equal(t, "a", v)

	_, ok = First([]int(nil))
	assert.False(t, ok)
}
