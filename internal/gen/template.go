package gen

import (
	"text/template"
)

// templateData holds everything the file template needs.
type templateData struct {
	PackageName string
	Imports     []importSpec
	TypeName    string
	Lower       string // prefix of the unexported helpers, e.g. "customerType"
	Struct      bool
	StateType   string
	Underlying  string
	Stub        bool
	Decorations []string
	Instances   []instanceData
	// Error helper body: a constructor call prefix, or errors.New.
	ErrorCtor string
	HasString bool
	// Validate is the name of the validation method, empty when absent.
	Validate       string
	AcceptValid    bool
	AcceptAnything bool
	Deserialize    string
	GoString       string // "full", "basic" or empty
	Wrappers       []wrapperData
	Bodies         []string
}

// instanceData is one named instance.
type instanceData struct {
	Var  string // package variable, e.g. "CustomerTypeGold"
	Name string
	Expr string // initializer
	Doc  string
}

// wrapperData is one forwarding parse wrapper.
type wrapperData struct {
	Name      string
	Signature string
	Params    string
	// OutType is set for parse functions writing through a pointer.
	OutType    string
	Call       string
	ResultBool bool
}

var fileTemplate = template.Must(template.New("enum").Parse(fileText + `{{define "body"}}` + bodyText + `{{end}}`))

const fileText = `// Code generated by intellenum-generator. DO NOT EDIT.

package {{.PackageName}}
{{- if .Imports}}

import (
{{- range .Imports}}
	{{if .Alias}}{{.Alias}} {{end}}"{{.Path}}"
{{- end}}
)
{{- end}}
{{- if .Struct}}

// {{.StateType}} is the state {{.TypeName}} embeds.
type {{.StateType}} struct {
	name  string
	value {{.Underlying}}
}
{{- end}}
{{- if not .Stub}}
{{- template "body" .}}
{{- end}}
`

const bodyText = `
{{- $t := .TypeName}}
{{- $u := .Underlying}}
{{- if .Decorations}}

var (
{{- range .Decorations}}
	{{.}}
{{- end}}
)
{{- end}}

// Named instances of {{$t}}.
var (
{{- range .Instances}}
{{- if .Doc}}
	// {{.Doc}}
{{- end}}
	{{.Var}} = {{.Expr}}
{{- end}}
)

var {{.Lower}}Instances = []{{$t}}{
{{- range .Instances}}
	{{.Var}},
{{- end}}
}

var {{.Lower}}Names = []string{
{{- range .Instances}}
	{{printf "%q" .Name}},
{{- end}}
}

// Underlying returns the value v wraps.
func (v {{$t}}) Underlying() {{$u}} {
{{- if .Struct}}
	return v.value
{{- else}}
	return {{$u}}(v)
{{- end}}
}

// Name returns the instance name of v, or "" when v is not a named instance.
func (v {{$t}}) Name() string {
{{- if .Struct}}
	return v.name
{{- else}}
	if i := slices.Index({{.Lower}}Instances, v); i >= 0 {
		return {{.Lower}}Names[i]
	}

	return ""
{{- end}}
}

// Equal reports whether v and other wrap the same value.
func (v {{$t}}) Equal(other {{$t}}) bool {
	return v.Underlying() == other.Underlying()
}

// Hash returns a hash of the wrapped value, consistent with Equal.
func (v {{$t}}) Hash(seed maphash.Seed) uint64 {
	return maphash.Comparable(seed, v.Underlying())
}
{{- if not .HasString}}

// String returns the instance name, or the wrapped value when v is unnamed.
func (v {{$t}}) String() string {
	if name := v.Name(); name != "" {
		return name
	}

	return fmt.Sprint(v.Underlying())
}
{{- end}}
{{- if eq .GoString "full"}}

// GoString implements fmt.GoStringer.
func (v {{$t}}) GoString() string {
	return fmt.Sprintf({{printf "%q" (print $t "{Name: %q, Value: %#v, Underlying: " $u "}")}}, v.Name(), v.Underlying())
}
{{- else if eq .GoString "basic"}}

// GoString implements fmt.GoStringer.
func (v {{$t}}) GoString() string {
	if name := v.Name(); name != "" {
		return "{{$t}}." + name
	}

	return fmt.Sprintf("{{$t}}(%#v)", v.Underlying())
}
{{- end}}

// {{$t}}List returns the named instances in declaration order.
func {{$t}}List() []{{$t}} {
	return slices.Clone({{.Lower}}Instances)
}

// {{$t}}TryFromName returns the instance called name.
func {{$t}}TryFromName(name string) ({{$t}}, bool) {
	if i := slices.Index({{.Lower}}Names, name); i >= 0 {
		return {{.Lower}}Instances[i], true
	}

	var zero {{$t}}
	return zero, false
}

// {{$t}}FromName returns the instance called name.
func {{$t}}FromName(name string) ({{$t}}, error) {
	if v, ok := {{$t}}TryFromName(name); ok {
		return v, nil
	}

	var zero {{$t}}
	return zero, {{.Lower}}Error(fmt.Sprintf("{{$t}}: no instance named %q", name))
}

// {{$t}}IsNamedDefined reports whether an instance is called name.
func {{$t}}IsNamedDefined(name string) bool {
	return slices.Contains({{.Lower}}Names, name)
}

// {{$t}}TryFromValue returns the first instance wrapping value.
func {{$t}}TryFromValue(value {{$u}}) ({{$t}}, bool) {
	for _, v := range {{.Lower}}Instances {
		if v.Underlying() == value {
			return v, true
		}
	}

	var zero {{$t}}
	return zero, false
}

// {{$t}}FromValue returns the first instance wrapping value.
func {{$t}}FromValue(value {{$u}}) ({{$t}}, error) {
	if v, ok := {{$t}}TryFromValue(value); ok {
		return v, nil
	}

	var zero {{$t}}
	return zero, {{.Lower}}Error(fmt.Sprintf("{{$t}}: no instance with value %v", value))
}

// {{$t}}IsDefined reports whether an instance wraps value.
func {{$t}}IsDefined(value {{$u}}) bool {
	_, ok := {{$t}}TryFromValue(value)
	return ok
}
{{- if .Validate}}

// {{$t}}From returns the instance wrapping value, or an unnamed {{$t}} when
// value passes {{.Validate}}.
func {{$t}}From(value {{$u}}) ({{$t}}, error) {
	if v, ok := {{$t}}TryFromValue(value); ok {
		return v, nil
	}

	var zero {{$t}}
	if err := zero.{{.Validate}}(value); err != nil {
		return zero, err
	}

	return {{.Lower}}Of(value), nil
}
{{- end}}

func {{.Lower}}Of(value {{$u}}) {{$t}} {
{{- if .Struct}}
	return {{$t}}{ {{- .StateType}}: {{.StateType}}{value: value}}
{{- else}}
	return {{$t}}(value)
{{- end}}
}

func {{.Lower}}Error(msg string) error {
{{- if .ErrorCtor}}
	return {{.ErrorCtor}}(msg)
{{- else}}
	return errors.New(msg)
{{- end}}
}

// {{.Deserialize}} maps a decoded value to a {{$t}}.
func {{.Deserialize}}(value {{$u}}) ({{$t}}, error) {
	if v, ok := {{$t}}TryFromValue(value); ok {
		return v, nil
	}
{{- if .AcceptAnything}}

	return {{.Lower}}Of(value), nil
{{- else if .AcceptValid}}

	var zero {{$t}}
	if err := zero.{{.Validate}}(value); err != nil {
		return zero, err
	}

	return {{.Lower}}Of(value), nil
{{- else}}

	var zero {{$t}}
	return zero, {{.Lower}}Error(fmt.Sprintf("{{$t}}: %v is not a known instance", value))
{{- end}}
}
{{- range .Wrappers}}

// {{.Name}} parses with {{.Signature}} and maps the
// result to a {{$t}}.
func {{.Name}}({{.Params}}) ({{$t}}, bool) {
{{- if .OutType}}
	var parsed {{.OutType}}
{{- if .ResultBool}}
	if !{{.Call}} {
{{- else}}
	if err := {{.Call}}; err != nil {
{{- end}}
{{- else if .ResultBool}}
	parsed, ok := {{.Call}}
	if !ok {
{{- else}}
	parsed, err := {{.Call}}
	if err != nil {
{{- end}}
		var zero {{$t}}
		return zero, false
	}

	v, err := {{$.Deserialize}}(parsed)
	return v, err == nil
}
{{- end}}
{{- range .Bodies}}

{{.}}
{{- end}}
`
