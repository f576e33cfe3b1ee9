package analyze

// Oracle answers the pipeline's questions about the host program. All
// methods are read-only and safe for concurrent use once the oracle is built.
type Oracle interface {
	// Decls returns every declaration carrying directives, in source order.
	Decls() []*Decl
	// HasAnnotation reports whether any annotation of decl derives from marker.
	HasAnnotation(decl *Decl, marker string) bool
	// Annotations returns the parsed directives of decl in source order.
	Annotations(decl *Decl) []Annotation
	// DeclaredType returns the type introduced by a type declaration.
	DeclaredType(decl *Decl) (*TypeInfo, bool)
	// Type looks a type up by identity.
	Type(id TypeID) (*TypeInfo, bool)
	// ResolveType resolves a type expression written in a directive of decl.
	ResolveType(decl *Decl, expr string) (TypeID, bool)
	// Members returns the members of id whose name starts with prefix, in
	// declaration order. Static members of a type are the package functions
	// producing it.
	Members(id TypeID, prefix string) []Member
	// IsAssignableFrom reports whether a value of type source can be used
	// where target is expected.
	IsAssignableFrom(target, source TypeID) bool
	// ConstructionSites returns where id is constructed outside generated code.
	ConstructionSites(id TypeID) []Site
	// ErrorType is the base type every error type must satisfy.
	ErrorType() TypeID
}
