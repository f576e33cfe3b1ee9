// Package convert renders the serialization support of a generated type.
//
// Each Generator handles one technology selected by a conversions flag. The
// Registry keeps them in a fixed order so output is deterministic, and new
// technologies are added with Append. Bodies come from a template store with
// a category-specific template taking precedence over the generic one.
//
// Templates are plain Go source with placeholder tokens:
//   - VOTYPE: the generated type name
//   - VOUNDERLYINGTYPE: the underlying type as written in the generated file
//   - VODESERIALIZE: the validating deserialize helper of the type
//
// Lines starting with __NORMAL__ or __STRING__ are kept only when numbers are
// written as they are or as strings, respectively.
package convert
