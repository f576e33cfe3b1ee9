// Package plan turns candidates into work items, the immutable input of
// code emission.
//
// Pipeline per generation pass:
//  1. Load declarations from the oracle, plus the defaults file if any
//  2. Resolve the program-wide defaults once
//  3. Extract candidates (memoized by declaration identity)
//  4. For each candidate, in parallel:
//     - Merge local configuration, defaults and built-ins
//     - Run the validation rules in their fixed order
//     - Scan the underlying type for parse functions unless a rule was fatal
//  5. Sort work items by key so output never depends on scheduling
package plan
