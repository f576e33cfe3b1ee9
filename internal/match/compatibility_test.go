package match

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"intellenum-generator/internal/analyze"
)

func TestScoreTypeCompatibility(t *testing.T) {
	t.Parallel()

	prog := analyze.NewProgram()
	orderError := analyze.TypeID{PkgPath: shop, Name: "OrderError"}
	prog.AddType(&analyze.TypeInfo{ID: orderError, Kind: analyze.TypeKindStruct, Implements: []analyze.TypeID{analyze.ErrorTypeID}})

	tests := []struct {
		name   string
		source analyze.TypeID
		target analyze.TypeID
		want   TypeCompatibility
	}{
		{"identical", analyze.Predeclared("int"), analyze.Predeclared("int"), TypeIdentical},
		{"alias", analyze.Predeclared("byte"), analyze.Predeclared("uint8"), TypeAssignable},
		{"interface", orderError, analyze.ErrorTypeID, TypeAssignable},
		{"unrelated", analyze.Predeclared("int"), analyze.Predeclared("int64"), TypeIncompatible},
		{"missing", analyze.TypeID{}, analyze.Predeclared("int"), TypeIncompatible},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := ScoreTypeCompatibility(tt.source, tt.target, prog)
			assert.Equal(t, tt.want, got.Compatibility)
			assert.Equal(t, tt.want != TypeIncompatible, got.Compatible())
			assert.NotEmpty(t, got.Reason)
		})
	}
}

func TestTypeCompatibility_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, VerdictIdentical, TypeIdentical.String())
	assert.Equal(t, VerdictAssignable, TypeAssignable.String())
	assert.Equal(t, VerdictIncompatible, TypeIncompatible.String())
	assert.Equal(t, "unknown", TypeCompatibility(42).String())
}
