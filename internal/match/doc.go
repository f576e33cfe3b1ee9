// Package match finds what a type can already do and what a name was meant
// to be.
//
// Key functions:
//   - FindParseCandidates: scans the static members of an underlying type for
//     parse functions the generated code can forward to
//   - IsTryParseShape: the member-shape predicate behind it
//   - ScoreTypeCompatibility: how an out parameter relates to the underlying type
//   - Levenshtein, Closest: edit distance and "did you mean" suggestions
package match
