package orders

import (
	"reflect"

	"shop"
)

func Blank() any {
	return reflect.New(reflect.TypeOf(shop.Color(""))).Interface() // want `reflect.New on Color`
}

func Tier(v reflect.Value) shop.CustomerType {
	return v.Interface().(shop.CustomerType)
}

func Overwrite(t *shop.CustomerType) {
	reflect.ValueOf(t).Elem().Set(reflect.Zero(reflect.TypeFor[shop.CustomerType]())) // want `reflect.ValueOf on CustomerType` `reflect.Zero on CustomerType`
}
