package diagnostic

import (
	"errors"
	"fmt"
	"go/token"
	"maps"
	"slices"
	"strings"

	"intellenum-generator/internal/common"
)

// Diagnostics is an ordered, append-only list of diagnostics.
type Diagnostics struct {
	items []Diagnostic
}

// Diagnostic represents a single diagnostic message.
type Diagnostic struct {
	// Severity of the diagnostic.
	Severity Severity
	// Code is the stable rule identifier, e.g. "VOG008".
	Code string
	// Message is the human-readable description.
	Message string
	// Pos is where the diagnostic applies. It may be the zero position.
	Pos token.Position
	// Properties carries machine-readable facts for fix-it tooling.
	Properties map[string]string
	// Suggestions are potential fixes or alternatives.
	Suggestions []string
}

// Severity represents the severity level of a diagnostic.
type Severity int

const (
	SeverityInfo Severity = iota
	SeverityWarning
	SeverityError
)

// String returns a human-readable severity name.
func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	default:
		return common.UnknownStr
	}
}

// New creates a diagnostic. Properties are given as key, value pairs.
func New(sev Severity, code string, pos token.Position, message string, props ...string) Diagnostic {
	d := Diagnostic{
		Severity: sev,
		Code:     code,
		Message:  message,
		Pos:      pos,
	}

	if len(props) > 0 {
		d.Properties = make(map[string]string, len(props)/2)
		for i := 0; i+1 < len(props); i += 2 {
			d.Properties[props[i]] = props[i+1]
		}
	}

	return d
}

// Errorf creates an error diagnostic with a formatted message.
func Errorf(code string, pos token.Position, format string, args ...any) Diagnostic {
	return New(SeverityError, code, pos, fmt.Sprintf(format, args...))
}

// Warningf creates a warning diagnostic with a formatted message.
func Warningf(code string, pos token.Position, format string, args ...any) Diagnostic {
	return New(SeverityWarning, code, pos, fmt.Sprintf(format, args...))
}

// Fatal reports whether the diagnostic suppresses code synthesis.
func (d Diagnostic) Fatal() bool {
	return d.Severity == SeverityError
}

// Property returns the value stored under key, or "".
func (d Diagnostic) Property(key string) string {
	return d.Properties[key]
}

// Add appends a diagnostic.
func (d *Diagnostics) Add(diag Diagnostic) {
	d.items = append(d.items, diag)
}

// AddError adds an error diagnostic.
func (d *Diagnostics) AddError(code, message string, pos token.Position) {
	d.Add(New(SeverityError, code, pos, message))
}

// AddWarning adds a warning diagnostic.
func (d *Diagnostics) AddWarning(code, message string, pos token.Position) {
	d.Add(New(SeverityWarning, code, pos, message))
}

// AddInfo adds an info diagnostic.
func (d *Diagnostics) AddInfo(code, message string, pos token.Position) {
	d.Add(New(SeverityInfo, code, pos, message))
}

// All returns the diagnostics in emission order.
func (d *Diagnostics) All() []Diagnostic {
	return slices.Clone(d.items)
}

// Len returns the number of diagnostics.
func (d *Diagnostics) Len() int {
	return len(d.items)
}

// Errors returns the error diagnostics in emission order.
func (d *Diagnostics) Errors() []Diagnostic {
	return d.filter(SeverityError)
}

// Warnings returns the warning diagnostics in emission order.
func (d *Diagnostics) Warnings() []Diagnostic {
	return d.filter(SeverityWarning)
}

func (d *Diagnostics) filter(sev Severity) []Diagnostic {
	var res []Diagnostic
	for _, item := range d.items {
		if item.Severity == sev {
			res = append(res, item)
		}
	}

	return res
}

// HasErrors returns true if there are any error diagnostics.
func (d *Diagnostics) HasErrors() bool {
	return slices.ContainsFunc(d.items, Diagnostic.Fatal)
}

// FirstFatal returns the first error diagnostic in emission order.
func (d *Diagnostics) FirstFatal() (Diagnostic, bool) {
	i := slices.IndexFunc(d.items, Diagnostic.Fatal)
	if i < 0 {
		return Diagnostic{}, false
	}

	return d.items[i], true
}

// Merge appends the diagnostics of other, keeping their order.
func (d *Diagnostics) Merge(other Diagnostics) {
	d.items = append(d.items, other.items...)
}

// IsValid returns true if there are no errors.
func (d *Diagnostics) IsValid() bool {
	return !d.HasErrors()
}

// Error returns a combined error from all error diagnostics, or nil if valid.
func (d *Diagnostics) Error() error {
	if d.IsValid() {
		return nil
	}

	var parts []string
	for _, e := range d.Errors() {
		parts = append(parts, e.String())
	}

	return errors.New(strings.Join(parts, "; "))
}

// String returns a formatted diagnostic string.
func (d Diagnostic) String() string {
	msg := d.Message
	if d.Code != "" {
		msg = fmt.Sprintf("[%s] %s", d.Code, msg)
	}

	if d.Pos.IsValid() {
		return d.Pos.String() + ": " + d.Severity.String() + ": " + msg
	}

	return d.Severity.String() + ": " + msg
}

// Equal reports whether two diagnostics carry the same observable facts.
func (d Diagnostic) Equal(other Diagnostic) bool {
	return d.Severity == other.Severity &&
		d.Code == other.Code &&
		d.Message == other.Message &&
		d.Pos == other.Pos &&
		maps.Equal(d.Properties, other.Properties) &&
		slices.Equal(d.Suggestions, other.Suggestions)
}
