package primitive

import (
	"embed"
	"io/fs"
	"path"
)

//go:embed templates
var embedded embed.FS

// TemplateStore hands out conversion templates. Templates are opaque
// strings with placeholder tokens; the store does not interpret them.
type TemplateStore interface {
	// Specialized returns the template tuned for a category, if one exists.
	Specialized(category Category, name string) (string, bool)
	// Generic returns the template that works for any underlying type.
	Generic(name string) string
}

// genericDir holds the any-type templates.
const genericDir = "any"

// FSStore is a TemplateStore backed by a file system laid out as
// <category>/<name>.tmpl with generic templates under any/.
type FSStore struct {
	fsys fs.FS
}

// NewFSStore creates a store reading from fsys.
func NewFSStore(fsys fs.FS) *FSStore {
	return &FSStore{fsys: fsys}
}

// DefaultStore returns the store with the templates shipped with the generator.
func DefaultStore() *FSStore {
	sub, err := fs.Sub(embedded, "templates")
	if err != nil {
		panic(err)
	}

	return NewFSStore(sub)
}

// Specialized implements TemplateStore.
func (s *FSStore) Specialized(category Category, name string) (string, bool) {
	data, err := fs.ReadFile(s.fsys, path.Join(category.String(), name+".tmpl"))
	if err != nil {
		return "", false
	}

	return string(data), true
}

// Generic implements TemplateStore. A missing generic template yields "".
func (s *FSStore) Generic(name string) string {
	data, err := fs.ReadFile(s.fsys, path.Join(genericDir, name+".tmpl"))
	if err != nil {
		return ""
	}

	return string(data)
}

// Lookup performs the two-tier lookup: the template specialized for category
// if present, otherwise the generic one.
func Lookup(store TemplateStore, category Category, name string) string {
	if tmpl, ok := store.Specialized(category, name); ok {
		return tmpl
	}

	return store.Generic(name)
}
