package analyze

import (
	"slices"
	"strings"
)

// Program is an in-memory Oracle. Build it with the Add methods, then share
// it read-only.
type Program struct {
	decls   []*Decl
	types   map[TypeID]*TypeInfo
	members map[TypeID][]Member
	sites   map[TypeID][]Site
	markers map[string]string
}

var _ Oracle = (*Program)(nil)

// NewProgram creates an empty program.
func NewProgram() *Program {
	return &Program{
		types:   make(map[TypeID]*TypeInfo),
		members: make(map[TypeID][]Member),
		sites:   make(map[TypeID][]Site),
		markers: make(map[string]string),
	}
}

// AddDecl records a declaration. Its ID is derived when empty.
func (p *Program) AddDecl(d *Decl) *Decl {
	if d.ID == "" {
		d.ID = NewDeclID(d.PkgPath, d.Name, d.Pos)
	}

	p.decls = append(p.decls, d)

	return d
}

// AddType records a type, replacing an earlier record with the same ID.
func (p *Program) AddType(info *TypeInfo) {
	p.types[info.ID] = info
}

// AddMember records a member of m.Owner.
func (p *Program) AddMember(m Member) {
	p.members[m.Owner] = append(p.members[m.Owner], m)
}

// AddSite records a construction site of id.
func (p *Program) AddSite(id TypeID, s Site) {
	p.sites[id] = append(p.sites[id], s)
}

// AddMarker registers a user marker derived from base, e.g. a project
// specific "flags[T]" built on "wrapper[T]".
func (p *Program) AddMarker(name, base string) {
	p.markers[name] = base
}

// Decls implements Oracle.
func (p *Program) Decls() []*Decl {
	return slices.Clone(p.decls)
}

func (p *Program) base(name string) (string, bool) {
	if b, ok := p.markers[name]; ok {
		return b, true
	}

	b, ok := builtinLineage[name]

	return b, ok
}

// Annotations implements Oracle.
func (p *Program) Annotations(decl *Decl) []Annotation {
	res := make([]Annotation, 0, len(decl.Directives))
	for _, d := range decl.Directives {
		res = append(res, parseAnnotation(d, p.base))
	}

	return res
}

// HasAnnotation implements Oracle.
func (p *Program) HasAnnotation(decl *Decl, marker string) bool {
	for _, a := range p.Annotations(decl) {
		if a.Depth(marker) >= 0 {
			return true
		}
	}

	return false
}

// DeclaredType implements Oracle.
func (p *Program) DeclaredType(decl *Decl) (*TypeInfo, bool) {
	if !decl.IsType {
		return nil, false
	}

	info, ok := p.types[TypeID{PkgPath: decl.PkgPath, Name: decl.Name}]

	return info, ok
}

// Type implements Oracle.
func (p *Program) Type(id TypeID) (*TypeInfo, bool) {
	if info, ok := p.types[id]; ok {
		return info, true
	}

	return builtinType(id)
}

// ResolveType implements Oracle.
func (p *Program) ResolveType(decl *Decl, expr string) (TypeID, bool) {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return TypeID{}, false
	}

	if _, ok := TypeFromExpr(expr); ok {
		return TypeID{Name: expr}, true
	}

	alias, name, qualified := strings.Cut(expr, ".")
	if !qualified {
		if _, ok := predeclared[expr]; ok {
			return canonical(Predeclared(expr)), true
		}

		id := TypeID{PkgPath: decl.PkgPath, Name: expr}
		_, ok := p.types[id]

		return id, ok
	}

	pkgPath, ok := decl.Imports[alias]
	if !ok {
		return TypeID{}, false
	}

	id := TypeID{PkgPath: pkgPath, Name: name}
	_, ok = p.Type(id)

	return id, ok
}

// Members implements Oracle.
func (p *Program) Members(id TypeID, prefix string) []Member {
	res := builtinMembers(id, prefix)
	for _, m := range p.members[id] {
		if strings.HasPrefix(m.Name, prefix) {
			res = append(res, m)
		}
	}

	return res
}

// IsAssignableFrom implements Oracle.
func (p *Program) IsAssignableFrom(target, source TypeID) bool {
	target, source = canonical(target), canonical(source)
	if target == source {
		return true
	}

	if target == Predeclared("any") {
		return true
	}

	info, ok := p.Type(source)
	if !ok {
		return false
	}

	return slices.Contains(info.Implements, target)
}

// ConstructionSites implements Oracle.
func (p *Program) ConstructionSites(id TypeID) []Site {
	return slices.Clone(p.sites[id])
}

// ErrorType implements Oracle.
func (p *Program) ErrorType() TypeID {
	return ErrorTypeID
}
