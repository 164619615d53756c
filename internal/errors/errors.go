// Package errors defines the error taxonomy for report retrieval: every
// failure carries a Kind so callers can tell configuration mistakes from
// transport failures, and bulk sweeps can skip reports whose parser is
// intentionally unimplemented.
package errors

import (
	"errors"
	"fmt"
)

// Kind classifies a report error.
type Kind int

const (
	// KindUnknownReport means the requested report name is not in the
	// registry.
	KindUnknownReport Kind = iota
	// KindUnsupportedExtension means the requested file extension is not in
	// the builder's supported set.
	KindUnsupportedExtension
	// KindMissingExtension means no extension was given and the builder has
	// no default.
	KindMissingExtension
	// KindDateRequired means the URL generator needs a date and none was
	// supplied.
	KindDateRequired
	// KindNoIncrement means a generator has no registered date increment.
	// This signals a programming omission, not a user error.
	KindNoIncrement
	// KindTransport covers non-2xx responses and request failures.
	KindTransport
	// KindUnimplemented marks a report whose shape is known but
	// intentionally unhandled. Sweep callers skip it.
	KindUnimplemented
	// KindParseShape means the payload did not match the expected layout.
	KindParseShape
)

// String returns the stable code used in logs and HTTP problem responses.
func (k Kind) String() string {
	switch k {
	case KindUnknownReport:
		return "unknown_report"
	case KindUnsupportedExtension:
		return "unsupported_extension"
	case KindMissingExtension:
		return "missing_extension"
	case KindDateRequired:
		return "date_required"
	case KindNoIncrement:
		return "no_increment"
	case KindTransport:
		return "transport"
	case KindUnimplemented:
		return "unimplemented"
	case KindParseShape:
		return "parse_shape"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// ReportError is the concrete error type for every failure in this module.
type ReportError struct {
	Kind    Kind
	Report  string // report name when known
	Message string
	Err     error // wrapped cause, if any
}

// Error implements the error interface.
func (e *ReportError) Error() string {
	msg := e.Message
	if e.Report != "" {
		msg = fmt.Sprintf("report %q: %s", e.Report, msg)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

// Unwrap exposes the wrapped cause to errors.Is/As.
func (e *ReportError) Unwrap() error {
	return e.Err
}

// New creates a ReportError with a formatted message.
func New(kind Kind, format string, args ...any) *ReportError {
	return &ReportError{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Wrap creates a ReportError around a cause.
func Wrap(kind Kind, err error, format string, args ...any) *ReportError {
	return &ReportError{Kind: kind, Message: fmt.Sprintf(format, args...), Err: err}
}

// ForReport returns a copy tagged with the report name.
func (e *ReportError) ForReport(name string) *ReportError {
	clone := *e
	clone.Report = name
	return &clone
}

// KindOf extracts the Kind from err, or ok=false when err is not a
// ReportError.
func KindOf(err error) (Kind, bool) {
	var re *ReportError
	if errors.As(err, &re) {
		return re.Kind, true
	}
	return 0, false
}

// Is reports whether err is a ReportError of the given kind.
func Is(err error, kind Kind) bool {
	k, ok := KindOf(err)
	return ok && k == kind
}

// IsUnimplemented reports whether err marks an intentionally unhandled
// parser. Bulk sweeps treat this as expected and skip the report.
func IsUnimplemented(err error) bool {
	return Is(err, KindUnimplemented)
}

// IsConfiguration reports whether err was raised before any network access:
// unknown report, extension problems, or a missing increment registration.
func IsConfiguration(err error) bool {
	k, ok := KindOf(err)
	if !ok {
		return false
	}
	switch k {
	case KindUnknownReport, KindUnsupportedExtension, KindMissingExtension, KindNoIncrement:
		return true
	}
	return false
}
