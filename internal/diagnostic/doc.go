// Package diagnostic provides the structured findings produced while turning
// marked declarations into generated code.
//
// Key capabilities:
//   - Stable rule identifiers usable for filtering and suppression
//   - Ordered, append-only collections per candidate
//   - Property bags consumed by fix-it tooling (e.g. the underlying type name)
package diagnostic
