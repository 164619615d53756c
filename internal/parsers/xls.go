package parsers

import (
	"bytes"
	"strings"

	"github.com/extrame/xls"

	apperrors "misoreports/internal/errors"
	"misoreports/pkg/tables"
)

// Legacy binary xls reports, still published for the load forecast files.

func legacySheetRows(body []byte) ([][]string, error) {
	wb, err := xls.OpenReader(bytes.NewReader(body), "utf-8")
	if err != nil {
		return nil, apperrors.Wrap(apperrors.KindParseShape, err, "cannot open xls workbook")
	}
	rows := wb.ReadAllCells(50000)
	if len(rows) == 0 {
		return nil, apperrors.New(apperrors.KindParseShape, "expected xls rows, found none")
	}
	return rows, nil
}

// DFAL carries the multi-day load forecast, repeating its header block at
// every page break.
func DFAL(raw *RawReport) (*tables.Table, error) {
	rows, err := legacySheetRows(raw.Body)
	if err != nil {
		return nil, err
	}
	rows, err = sliceRows(rows, 4, 0)
	if err != nil {
		return nil, err
	}
	return shapeRecords(rows, csvSpec{
		schema: cols(
			schema{
				"Market Day": ts(marketDay),
				"HourEnding": i64(),
			},
			f64(),
			"LRZ1 MTLF (MWh)", "LRZ1 ActualLoad (MWh)",
			"LRZ2_7 MTLF (MWh)", "LRZ2_7 ActualLoad (MWh)",
			"LRZ3_5 MTLF (MWh)", "LRZ3_5 ActualLoad (MWh)",
			"LRZ4 MTLF (MWh)", "LRZ4 ActualLoad (MWh)",
			"LRZ6 MTLF (MWh)", "LRZ6 ActualLoad (MWh)",
			"LRZ8_9_10 MTLF (MWh)", "LRZ8_9_10 ActualLoad (MWh)",
			"MISO MTLF (MWh)", "MISO ActualLoad (MWh)",
		),
		keepRow: func(headers, record []string) bool {
			if len(record) < 2 {
				return false
			}
			day := strings.TrimSpace(record[0])
			return day != "" && day != "Market Day" && strings.TrimSpace(record[1]) != ""
		},
	})
}

// RFAL is the regional variant, with one forecast and actual pair per
// region and a leading filler column.
func RFAL(raw *RawReport) (*tables.Table, error) {
	rows, err := legacySheetRows(raw.Body)
	if err != nil {
		return nil, err
	}
	rows, err = sliceRows(rows, 5, 0)
	if err != nil {
		return nil, err
	}
	for i, row := range rows {
		if len(row) > 0 {
			rows[i] = row[1:]
		}
	}
	return shapeRecords(rows, csvSpec{
		schema: cols(
			schema{
				"Market Day": ts(marketDay),
				"HourEnding": i64(),
			},
			f64(),
			"North MTLF (MWh)", "North ActualLoad (MWh)",
			"Central MTLF (MWh)", "Central ActualLoad (MWh)",
			"South MTLF (MWh)", "South ActualLoad (MWh)",
			"MISO MTLF (MWh)", "MISO ActualLoad (MWh)",
		),
		keepRow: func(headers, record []string) bool {
			if len(record) < 2 {
				return false
			}
			day := strings.TrimSpace(record[0])
			return day != "" && day != "Market Day" && strings.TrimSpace(record[1]) != ""
		},
	})
}
