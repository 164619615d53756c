package parsers

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	apperrors "misoreports/internal/errors"
	"misoreports/pkg/tables"
)

// jsonRows decodes the hourly-value JSON documents the broker endpoints
// publish: an object holding one named array of flat records. An empty key
// selects a top-level array.
func jsonRows(body []byte, key string) ([]map[string]any, error) {
	if key == "" {
		var rows []map[string]any
		if err := json.Unmarshal(body, &rows); err != nil {
			return nil, apperrors.Wrap(apperrors.KindParseShape, err, "expected a JSON array payload")
		}
		return rows, nil
	}

	var doc map[string]json.RawMessage
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, apperrors.Wrap(apperrors.KindParseShape, err, "expected a JSON object payload")
	}
	raw, ok := doc[key]
	if !ok {
		return nil, apperrors.New(apperrors.KindParseShape, "expected key %q in JSON payload, found none", key)
	}
	var rows []map[string]any
	if err := json.Unmarshal(raw, &rows); err != nil {
		return nil, apperrors.Wrap(apperrors.KindParseShape, err, "expected an array under JSON key %q", key)
	}
	return rows, nil
}

// jsonObjectRow decodes a payload that is one flat JSON object.
func jsonObjectRow(body []byte) (map[string]any, error) {
	var row map[string]any
	if err := json.Unmarshal(body, &row); err != nil {
		return nil, apperrors.Wrap(apperrors.KindParseShape, err, "expected a JSON object payload")
	}
	return row, nil
}

// jsonTable shapes decoded JSON records into a typed table with an explicit
// column order.
func jsonTable(rows []map[string]any, order []string, sch schema) (*tables.Table, error) {
	t := &tables.Table{}
	for _, name := range order {
		ct, ok := sch[name]
		if !ok {
			ct = colType{typ: tables.String}
		}
		t.Columns = append(t.Columns, tables.Column{Name: name, Type: ct.typ})
	}
	for _, rec := range rows {
		row := make([]any, len(order))
		for i, name := range order {
			cell, err := convertJSONCell(rec[name], sch[name])
			if err != nil {
				return nil, apperrors.Wrap(apperrors.KindParseShape, err,
					"column %q: cannot convert %v", name, rec[name])
			}
			row[i] = cell
		}
		t.Rows = append(t.Rows, row)
	}
	return t, nil
}

// convertJSONCell normalizes a decoded JSON value, which may arrive as a
// string or a number depending on the report vintage.
func convertJSONCell(v any, ct colType) (any, error) {
	if v == nil {
		return nil, nil
	}
	switch ct.typ {
	case tables.Int:
		switch n := v.(type) {
		case float64:
			return int64(n), nil
		case string:
			return strconv.ParseInt(strings.TrimSpace(n), 10, 64)
		}
	case tables.Float:
		switch n := v.(type) {
		case float64:
			return n, nil
		case string:
			return strconv.ParseFloat(strings.TrimSpace(n), 64)
		}
	case tables.Time:
		if s, ok := v.(string); ok {
			return time.Parse(ct.layout, strings.TrimSpace(s))
		}
	default:
		return fmt.Sprint(v), nil
	}
	return nil, fmt.Errorf("unexpected JSON value of type %T", v)
}
