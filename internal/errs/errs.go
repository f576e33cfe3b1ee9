// Package errs carries internal faults: unexpected inconsistencies that
// abort the build of a single candidate. User-facing problems are
// diagnostics, never errors.
//
// It re-exports the parts of github.com/cockroachdb/errors the generator
// uses, so that faults keep stack traces and structured details.
package errs

import (
	"fmt"

	crdb "github.com/cockroachdb/errors"
)

// Core error creation and wrapping
var (
	New           = crdb.New
	Newf          = crdb.Newf
	Wrap          = crdb.Wrap
	Wrapf         = crdb.Wrapf
	WithDetail    = crdb.WithDetail
	WithDetailf   = crdb.WithDetailf
	WithHint      = crdb.WithHint
	WithHintf     = crdb.WithHintf
	GetAllDetails = crdb.GetAllDetails
)

// Error inspection
var (
	Is   = crdb.Is
	As   = crdb.As
	Mark = crdb.Mark
)

// AssertionFailedf reports a broken internal invariant.
var AssertionFailedf = crdb.AssertionFailedf

// ErrFault marks every fault raised while building one candidate.
var ErrFault = New("internal fault")

// Fault wraps err as an internal fault of the named subject, usually a type
// or declaration identity.
func Fault(err error, subject fmt.Stringer, format string, args ...any) error {
	if err == nil {
		return nil
	}

	err = crdb.Wrapf(err, format, args...)
	err = crdb.WithDetailf(err, "subject: %s", subject)

	return crdb.Mark(err, ErrFault)
}

// FromPanic turns a recovered panic value into a fault.
func FromPanic(r any, subject fmt.Stringer) error {
	var err error
	if e, ok := r.(error); ok {
		err = crdb.WithStack(e)
	} else {
		err = crdb.Newf("panic: %v", r)
	}

	return Fault(err, subject, "recovered while processing %s", subject)
}
