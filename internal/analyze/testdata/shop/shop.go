// Package shop is a fixture for the loader tests. It does not compile on its
// own: the state types come from generated code.
//
//intellenum:defaults conversions=JSON|SQL
package shop

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// CustomerType is a customer tier.
//
//intellenum:enum
//intellenum:member Standard 1
//intellenum:member Gold 2 the best customers
type CustomerType struct {
	customerTypeState
}

//intellenum:enum[string] conversions=Text
//intellenum:member Red "red"
type Color string

func (c Color) String() string { return string(c) }

//intellenum:enum underlying=uuid.UUID
type TenantID struct {
	tenantIDState
}

func (TenantID) validate(value uuid.UUID) error {
	if value == uuid.Nil {
		return fmt.Errorf("empty tenant")
	}

	return nil
}

// Money is an amount in cents.
type Money int64

func ParseMoney(s string) (Money, error) {
	var m Money
	_, err := fmt.Sscan(s, &m)

	return m, err
}

func TryParseMoneyCents(s string, out *Money) bool {
	m, err := ParseMoney(s)
	if err != nil {
		return false
	}

	*out = m

	return true
}

type OrderError struct {
	msg string
}

func (e *OrderError) Error() string { return e.msg }

func NewOrderError(msg string) *OrderError { return &OrderError{msg: msg} }

func NewCustomerType() CustomerType { return CustomerType{} }

var Epoch = time.Unix(0, 0)

func build() {
	_ = new(Color)

	//intellenum:enum
	type local int
}
