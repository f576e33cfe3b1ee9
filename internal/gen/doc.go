// Package gen renders one Go source file per work item.
//
// Generation uses text/template and golang.org/x/tools/imports, which
// formats the result and drops the imports a given file does not use.
//
// A generated file carries:
//   - the state type embedded by struct kinds
//   - compile-time interface assertions of the enabled conversions
//   - one package variable per named instance
//   - accessors, equality and hashing
//   - list and lookup functions, and the validated constructor
//   - the deserialize helper shared by every conversion
//   - wrappers forwarding to the parse functions of the underlying type
//   - the conversion bodies
//
// Work items with a fatal diagnostic produce nothing, or only the state type
// when stubs are enabled, so that the rest of the package keeps compiling.
package gen
