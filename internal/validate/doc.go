// Package validate runs the fixed, ordered rule set over a candidate and its
// resolved configuration. Each rule yields at most one diagnostic, so the
// diagnostics of a candidate always come out in rule order and "the first
// fatal diagnostic" is well defined.
package validate
