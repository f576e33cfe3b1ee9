package convert

import (
	"intellenum-generator/internal/config"
	"intellenum-generator/primitive"
)

// Target is what a generator needs to know about the type it renders for.
type Target struct {
	TypeName       string
	UnderlyingName string // as written in the generated file, e.g. "uuid.UUID"
	Category       primitive.Category
	Conversions    config.Conversions
	Customizations config.Customizations
}

// NumberAsString reports whether numbers are serialized as strings.
func (t Target) NumberAsString() bool {
	return t.Customizations.Has(config.JSONNumberAsString) &&
		(t.Category == primitive.CategoryIntegral || t.Category == primitive.CategoryFloating)
}

// Generator renders the support for one serialization technology.
type Generator interface {
	// Flag is the conversions flag enabling the generator.
	Flag() config.Conversions
	Name() string
	// Decoration returns compile-time interface assertions, one per line,
	// meant for a var block. It is empty unless t enables Flag.
	Decoration(t Target) string
	// Body returns the methods. It is empty unless t enables Flag.
	Body(t Target) string
	// Imports returns the import paths Body and Decoration may use.
	Imports(t Target) []string
}

// Templated is a Generator whose body comes from a template store.
type Templated struct {
	ConvFlag  config.Conversions
	Template  string // template name, e.g. "json"
	Decorator string // decoration with placeholder tokens
	// ImportsFor returns the imports of the rendered body.
	ImportsFor func(t Target) []string
	Store      primitive.TemplateStore
}

var _ Generator = (*Templated)(nil)

// Flag implements Generator.
func (g *Templated) Flag() config.Conversions {
	return g.ConvFlag
}

// Name implements Generator.
func (g *Templated) Name() string {
	return g.Template
}

// Decoration implements Generator.
func (g *Templated) Decoration(t Target) string {
	if !t.Conversions.Has(g.ConvFlag) {
		return ""
	}

	return Substitute(g.Decorator, t)
}

// Body implements Generator.
func (g *Templated) Body(t Target) string {
	if !t.Conversions.Has(g.ConvFlag) {
		return ""
	}

	return Render(primitive.Lookup(g.Store, t.Category, g.Template), t)
}

// Imports implements Generator.
func (g *Templated) Imports(t Target) []string {
	if g.ImportsFor == nil || !t.Conversions.Has(g.ConvFlag) {
		return nil
	}

	return g.ImportsFor(t)
}

func fixed(paths ...string) func(Target) []string {
	return func(Target) []string { return paths }
}

// Builtin returns the shipped generators in registration order.
func Builtin(store primitive.TemplateStore) []Generator {
	return []Generator{
		&Templated{
			ConvFlag:   config.ConversionsJSON,
			Template:   "json",
			Decorator:  "_ json.Marshaler = (*VOTYPE)(nil)\n_ json.Unmarshaler = (*VOTYPE)(nil)",
			ImportsFor: fixed("encoding/json", "fmt"),
			Store:      store,
		},
		&Templated{
			ConvFlag:   config.ConversionsText,
			Template:   "text",
			Decorator:  "_ encoding.TextMarshaler = (*VOTYPE)(nil)\n_ encoding.TextUnmarshaler = (*VOTYPE)(nil)",
			ImportsFor: fixed("encoding"),
			Store:      store,
		},
		&Templated{
			ConvFlag:  config.ConversionsSQL,
			Template:  "sql",
			Decorator: "_ driver.Valuer = (*VOTYPE)(nil)\n_ sql.Scanner = (*VOTYPE)(nil)",
			ImportsFor: func(t Target) []string {
				paths := []string{"database/sql", "database/sql/driver", "errors", "fmt"}
				if t.Category == primitive.CategoryGUID {
					paths = append(paths, "github.com/google/uuid")
				}

				return paths
			},
			Store: store,
		},
		&Templated{
			ConvFlag:   config.ConversionsYAML,
			Template:   "yaml",
			Decorator:  "_ yaml.Marshaler = (*VOTYPE)(nil)\n_ yaml.Unmarshaler = (*VOTYPE)(nil)",
			ImportsFor: fixed("fmt", "gopkg.in/yaml.v3"),
			Store:      store,
		},
		&Templated{
			ConvFlag:   config.ConversionsMsgPack,
			Template:   "msgpack",
			Decorator:  "_ msgpack.CustomEncoder = (*VOTYPE)(nil)\n_ msgpack.CustomDecoder = (*VOTYPE)(nil)",
			ImportsFor: fixed("fmt", "github.com/vmihailenco/msgpack/v5"),
			Store:      store,
		},
	}
}
