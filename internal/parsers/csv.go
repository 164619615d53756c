package parsers

import (
	"archive/zip"
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	apperrors "misoreports/internal/errors"
	"misoreports/pkg/tables"
)

// colType declares how one named column is converted. Columns absent from a
// schema stay strings.
type colType struct {
	typ    tables.ColumnType
	layout string // time layout when typ is tables.Time
}

// schema maps column header to declared type.
type schema map[string]colType

func f64() colType             { return colType{typ: tables.Float} }
func i64() colType             { return colType{typ: tables.Int} }
func ts(layout string) colType { return colType{typ: tables.Time, layout: layout} }

// cols assigns one colType to several headers at once.
func cols(sch schema, t colType, names ...string) schema {
	for _, n := range names {
		sch[n] = t
	}
	return sch
}

// hourEnding builds the HE 1..HE 24 style float column names shared by the
// LMP matrices.
func hourEnding(prefix string, n int) []string {
	names := make([]string, 0, n)
	for i := 1; i <= n; i++ {
		names = append(names, prefix+strconv.Itoa(i))
	}
	return names
}

// paddedHours builds zero-padded hour column names (HR01..HR24).
func paddedHours(prefix string, n int) []string {
	names := make([]string, 0, n)
	for i := 1; i <= n; i++ {
		names = append(names, fmt.Sprintf("%s%02d", prefix, i))
	}
	return names
}

// csvSpec describes the fixed layout of one delimited report.
type csvSpec struct {
	skipHead int
	skipTail int
	useCols  int // keep only the first N columns when > 0
	schema   schema
	// rename maps a published header to the column name the table exposes.
	rename map[string]string
	// clean preprocesses one raw cell before conversion (money signs,
	// stray spaces). Applied to data cells only.
	clean func(col, val string) string
	// keepRow drops repeated-header and subtotal rows some spreadsheets
	// interleave with data. Nil keeps everything.
	keepRow func(headers []string, record []string) bool
}

// parseCSV shapes a delimited payload into a typed table.
func parseCSV(text string, spec csvSpec) (*tables.Table, error) {
	data, err := trimLines(text, spec.skipHead, spec.skipTail)
	if err != nil {
		return nil, err
	}

	r := csv.NewReader(strings.NewReader(data))
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		return nil, apperrors.Wrap(apperrors.KindParseShape, err, "malformed delimited payload")
	}
	return shapeRecords(records, spec)
}

// shapeRecords turns a header row plus data records into a typed table. It
// is shared by the delimited-text and spreadsheet paths; spreadsheet
// callers apply their own row skipping before handing records in.
func shapeRecords(records [][]string, spec csvSpec) (*tables.Table, error) {
	if len(records) == 0 {
		return nil, apperrors.New(apperrors.KindParseShape, "expected a header row, found empty payload")
	}

	headers := append([]string(nil), records[0]...)
	if spec.useCols > 0 && len(headers) > spec.useCols {
		headers = headers[:spec.useCols]
	}
	for i, h := range headers {
		if renamed, ok := spec.rename[h]; ok {
			headers[i] = renamed
		}
	}

	t := &tables.Table{}
	for _, h := range headers {
		ct, ok := spec.schema[h]
		if !ok {
			ct = colType{typ: tables.String}
		}
		t.Columns = append(t.Columns, tables.Column{Name: h, Type: ct.typ})
	}

	for _, record := range records[1:] {
		if spec.keepRow != nil && !spec.keepRow(headers, record) {
			continue
		}
		row := make([]any, len(headers))
		for i, h := range headers {
			var val string
			if i < len(record) {
				val = record[i]
			}
			if spec.clean != nil {
				val = spec.clean(h, val)
			}
			cell, err := convertCell(val, spec.schema[h])
			if err != nil {
				return nil, apperrors.Wrap(apperrors.KindParseShape, err,
					"column %q: cannot convert %q", h, val)
			}
			row[i] = cell
		}
		t.Rows = append(t.Rows, row)
	}
	return t, nil
}

// convertCell converts one trimmed cell to its declared type; empty cells
// become nil.
func convertCell(val string, ct colType) (any, error) {
	val = strings.TrimSpace(val)
	if val == "" {
		return nil, nil
	}
	switch ct.typ {
	case tables.Int:
		n, err := strconv.ParseInt(strings.ReplaceAll(val, ",", ""), 10, 64)
		if err != nil {
			return nil, err
		}
		return n, nil
	case tables.Float:
		f, err := strconv.ParseFloat(strings.ReplaceAll(val, ",", ""), 64)
		if err != nil {
			return nil, err
		}
		return f, nil
	case tables.Time:
		when, err := time.Parse(ct.layout, val)
		if err != nil {
			return nil, err
		}
		return when, nil
	default:
		return val, nil
	}
}

// moneyClean strips the accounting notation some settlement reports use:
// ($1,234.56) is negative, $ and grouping commas are noise.
func moneyClean(val string) string {
	val = strings.TrimSpace(val)
	neg := strings.HasPrefix(val, "($") && strings.HasSuffix(val, ")")
	val = strings.NewReplacer("(", "", ")", "", "$", "").Replace(val)
	if neg {
		val = "-" + val
	}
	return val
}

// zipFirstFile extracts the first archive member, the layout used by every
// single-file report archive.
func zipFirstFile(body []byte) (string, error) {
	z, err := zip.NewReader(bytes.NewReader(body), int64(len(body)))
	if err != nil {
		return "", apperrors.Wrap(apperrors.KindParseShape, err, "payload is not a zip archive")
	}
	if len(z.File) == 0 {
		return "", apperrors.New(apperrors.KindParseShape, "expected at least one file in zip archive, found none")
	}
	return readZipMember(z.File[0])
}

// zipNamedCSV extracts the first .csv member from an archive that mixes
// documentation files with the data file.
func zipNamedCSV(body []byte) (string, error) {
	z, err := zip.NewReader(bytes.NewReader(body), int64(len(body)))
	if err != nil {
		return "", apperrors.Wrap(apperrors.KindParseShape, err, "payload is not a zip archive")
	}
	for _, f := range z.File {
		if strings.HasSuffix(f.Name, ".csv") {
			return readZipMember(f)
		}
	}
	return "", apperrors.New(apperrors.KindParseShape, "expected a .csv member in zip archive, found none")
}

func readZipMember(f *zip.File) (string, error) {
	rc, err := f.Open()
	if err != nil {
		return "", apperrors.Wrap(apperrors.KindParseShape, err, "cannot open zip member %q", f.Name)
	}
	defer rc.Close()
	data, err := io.ReadAll(rc)
	if err != nil {
		return "", apperrors.Wrap(apperrors.KindParseShape, err, "cannot read zip member %q", f.Name)
	}
	return string(data), nil
}
