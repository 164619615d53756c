// Package parsers holds the per-report payload shapers. Each parser takes
// one downloaded report and returns a table (or multi-table container) with
// declared column types. Parsers are independent data-cleaning routines;
// they share only the small helpers in this package.
package parsers

import (
	"strings"

	apperrors "misoreports/internal/errors"
	"misoreports/pkg/tables"
)

// RawReport is one downloaded report payload.
type RawReport struct {
	// Body is the full response body.
	Body []byte
	// URL is the final URL the payload was fetched from.
	URL string
	// Status is the HTTP status code of the download.
	Status int
}

// Text returns the payload as text.
func (r *RawReport) Text() string {
	return string(r.Body)
}

// Func converts one raw payload into tabular output. A parser either
// returns a fully typed table or fails; no partial results.
type Func func(raw *RawReport) (*tables.Table, error)

// Unimplemented returns a parser that always fails with the distinguished
// unimplemented condition. The reason documents why the report's shape is
// intentionally unhandled.
func Unimplemented(reason string) Func {
	return func(*RawReport) (*tables.Table, error) {
		return nil, apperrors.New(apperrors.KindUnimplemented, "%s", reason)
	}
}

// splitLines splits text the way the report publishers delimit it, tolerant
// of CRLF and a trailing newline.
func splitLines(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.TrimSuffix(text, "\n")
	return strings.Split(text, "\n")
}

// trimLines drops head lines of preamble and tail lines of footer, failing
// when the payload is too short to contain them.
func trimLines(text string, head, tail int) (string, error) {
	lines := splitLines(text)
	if len(lines) < head+tail+1 {
		return "", apperrors.New(apperrors.KindParseShape,
			"payload has %d lines, expected more than %d of preamble and footer", len(lines), head+tail)
	}
	return strings.Join(lines[head:len(lines)-tail], "\n"), nil
}
