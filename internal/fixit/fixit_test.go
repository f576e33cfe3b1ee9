package fixit

import (
	"fmt"
	"go/token"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"intellenum-generator/internal/diagnostic"
	"intellenum-generator/internal/errs"
)

func addValidation(typeName, primitive string) diagnostic.Diagnostic {
	return diagnostic.New(diagnostic.SeverityInfo, diagnostic.AddValidationMethod, token.Position{}, "add a validation method",
		diagnostic.PropTypeName, typeName, diagnostic.PropPrimitiveType, primitive)
}

const customerSrc = `package shop

// CustomerType is the tier of a customer.
//
//intellenum:enum
//intellenum:member Normal 0
//intellenum:member Gold 1
type CustomerType struct {
	customerTypeState
}

func describe(c CustomerType) string {
	return c.String()
}
`

func TestValidationStub(t *testing.T) {
	t.Parallel()

	stub, err := ValidationStub(addValidation("TenantID", "uuid.UUID"))
	require.NoError(t, err)

	assert.Equal(t, `// validate reports whether value may be wrapped by a TenantID.
func (TenantID) validate(value uuid.UUID) error {
	return nil
}
`, stub)
}

func TestValidationStub_NotApplicable(t *testing.T) {
	t.Parallel()

	tests := map[string]diagnostic.Diagnostic{
		"other rule":    diagnostic.Errorf(diagnostic.MustHaveInstances, token.Position{}, "no instances"),
		"no type name":  addValidation("", "int"),
		"bad type name": addValidation("func", "int"),
		"no primitive":  addValidation("CustomerType", ""),
		"no properties": diagnostic.New(diagnostic.SeverityInfo, diagnostic.AddValidationMethod, token.Position{}, "x"),
	}

	for name, d := range tests {
		_, err := ValidationStub(d)
		assert.True(t, errs.Is(err, ErrNotApplicable), name)
	}
}

func TestApply(t *testing.T) {
	t.Parallel()

	out, err := Apply([]byte(customerSrc), addValidation("CustomerType", "int"))
	require.NoError(t, err)

	assert.Equal(t, `package shop

// CustomerType is the tier of a customer.
//
//intellenum:enum
//intellenum:member Normal 0
//intellenum:member Gold 1
type CustomerType struct {
	customerTypeState
}

// validate reports whether value may be wrapped by a CustomerType.
func (CustomerType) validate(value int) error {
	return nil
}

func describe(c CustomerType) string {
	return c.String()
}
`, string(out))

	_, err = Apply(out, addValidation("CustomerType", "int"))
	assert.True(t, errs.Is(err, ErrAlreadyValidated))
}

func TestApply_Errors(t *testing.T) {
	t.Parallel()

	_, err := Apply([]byte(customerSrc), addValidation("Color", "string"))
	assert.True(t, errs.Is(err, ErrTypeNotFound))

	_, err = Apply([]byte("package"), addValidation("CustomerType", "int"))
	assert.Error(t, err)

	withPointer := customerSrc + "\nfunc (c *CustomerType) Validate(v int) error { return nil }\n"
	_, err = Apply([]byte(withPointer), addValidation("CustomerType", "int"))
	assert.True(t, errs.Is(err, ErrAlreadyValidated))
}

func ExampleValidationStub() {
	stub, _ := ValidationStub(addValidation("Color", "string"))
	fmt.Print(stub)
	// Output:
	// // validate reports whether value may be wrapped by a Color.
	// func (Color) validate(value string) error {
	// 	return nil
	// }
}
