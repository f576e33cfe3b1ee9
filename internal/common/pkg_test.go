package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPkgAlias(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"":                                  "",
		"time":                              "time",
		"database/sql/driver":               "driver",
		"github.com/google/uuid":            "uuid",
		"gopkg.in/yaml.v3":                  "yaml",
		"github.com/vmihailenco/msgpack/v5": "msgpack",
		"example.com/vendor":                "vendor",
	}

	for in, want := range tests {
		assert.Equal(t, want, PkgAlias(in), "input %q", in)
	}
}
