// Package analyze is the capability oracle: a read-only view of the host
// program that the generation pipeline queries.
//
// The oracle is plain data. Program is built either by hand (tests, cache
// replay) or by Load, which uses golang.org/x/tools/go/packages and go/types
// to record what the pipeline needs to know:
//   - Decl: a type declaration (or package clause) with its intellenum directives
//   - TypeInfo: the shape of a named or predeclared type
//   - Member: a method or package function, normalized into a parameter list
//     where a parsed value always comes back through a trailing Out parameter
//   - Site: a place where a type is constructed outside generated code
package analyze
