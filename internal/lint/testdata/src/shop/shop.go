package shop

import "reflect"

// CustomerType is a customer tier.
//
//intellenum:enum
//intellenum:member Standard 1
//intellenum:member Gold 2
type CustomerType struct { // want CustomerType:"intellenum"
	customerTypeState
}

type customerTypeState struct {
	name  string
	value int
}

//intellenum:enum[string]
//intellenum:member Red "red"
type Color string // want Color:"intellenum"

type (
	// Plain has no marker.
	Plain int

	//intellenum:wrapper[int64]
	Cents int64 // want Cents:"intellenum"
)

func reflection() {
	var c Color

	_ = reflect.Zero(reflect.TypeOf(c))                          // want `reflect.Zero on Color bypasses its named instances and validation`
	_ = reflect.New(reflect.TypeFor[CustomerType]())             // want `reflect.New on CustomerType`
	_ = reflect.New(reflect.TypeOf((*CustomerType)(nil)).Elem()) // want `reflect.New on CustomerType`
	_ = reflect.ValueOf(&c)                                      // want `reflect.ValueOf on Color`
	_ = reflect.Zero(reflect.TypeOf([]Cents(nil)).Elem())        // want `reflect.Zero on Cents`
	_ = reflect.ValueOf(c)
	_ = reflect.New(reflect.TypeOf(Plain(0)))
	_ = reflect.ValueOf(new(Plain))
	_ = reflect.TypeOf(CustomerType{}).Name()
}
