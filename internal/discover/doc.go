// Package discover finds the declarations the generator should augment and
// turns each into a Candidate: identity, kind, raw configuration and the
// named instances declared with member directives.
package discover
