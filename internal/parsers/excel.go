package parsers

import (
	"bytes"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	apperrors "misoreports/internal/errors"
	"misoreports/pkg/tables"
)

// xlsx workbook reports. All of them keep their data on the first sheet.

// sheetRows opens an xlsx payload and returns the rows of its first sheet.
func sheetRows(body []byte) ([][]string, error) {
	wb, err := excelize.OpenReader(bytes.NewReader(body))
	if err != nil {
		return nil, apperrors.Wrap(apperrors.KindParseShape, err, "cannot open xlsx workbook")
	}
	defer wb.Close()

	sheets := wb.GetSheetList()
	if len(sheets) == 0 {
		return nil, apperrors.New(apperrors.KindParseShape, "expected at least one sheet, found none")
	}
	rows, err := wb.GetRows(sheets[0])
	if err != nil {
		return nil, apperrors.Wrap(apperrors.KindParseShape, err, "cannot read sheet %q", sheets[0])
	}
	return rows, nil
}

// sliceRows applies head and tail skips to sheet rows.
func sliceRows(rows [][]string, head, tail int) ([][]string, error) {
	if len(rows) <= head+tail {
		return nil, apperrors.New(apperrors.KindParseShape,
			"expected more than %d rows, found %d", head+tail, len(rows))
	}
	return rows[head : len(rows)-tail], nil
}

func DABC(raw *RawReport) (*tables.Table, error) {
	rows, err := sheetRows(raw.Body)
	if err != nil {
		return nil, err
	}
	rows, err = sliceRows(rows, 3, 0)
	if err != nil {
		return nil, err
	}
	return shapeRecords(rows, csvSpec{
		schema: cols(
			schema{
				"Hour of Occurrence": ts(hourOfDay),
				"Shadow Price":       f64(),
				"Override":           i64(),
			},
			f64(), "BP1", "PC1", "BP2", "PC2", "BP3", "PC3", "BP4", "PC4",
		),
	})
}

func CPNodeResZone(raw *RawReport) (*tables.Table, error) {
	rows, err := sheetRows(raw.Body)
	if err != nil {
		return nil, err
	}
	rows, err = sliceRows(rows, 3, 1)
	if err != nil {
		return nil, err
	}
	return shapeRecords(rows, csvSpec{
		schema: schema{"Reserve Zone": i64()},
	})
}

func FiveMinExanteLMP(raw *RawReport) (*tables.Table, error) {
	rows, err := sheetRows(raw.Body)
	if err != nil {
		return nil, err
	}
	rows, err = sliceRows(rows, 3, 1)
	if err != nil {
		return nil, err
	}
	return shapeRecords(rows, csvSpec{
		schema: cols(
			schema{"Time (EST)": ts(estTimestamp)},
			f64(),
			"RT Ex-Ante LMP", "RT Ex-Ante MEC", "RT Ex-Ante MLC", "RT Ex-Ante MCC",
		),
	})
}

// RTExpostSTR5MinMCP labels its reserve zone columns with bare numbers and
// leads with an unnamed index column, both fixed up before shaping.
func RTExpostSTR5MinMCP(raw *RawReport) (*tables.Table, error) {
	rows, err := sheetRows(raw.Body)
	if err != nil {
		return nil, err
	}
	rows, err = sliceRows(rows, 4, 1)
	if err != nil {
		return nil, err
	}
	for i, row := range rows {
		if len(row) > 0 {
			rows[i] = row[1:]
		}
	}

	rename := map[string]string{}
	sch := schema{"Time(EST)": ts("01/02/2006  03:04:05 PM")}
	for zone := 1; zone <= 8; zone++ {
		name := "RESERVE ZONE " + strconv.Itoa(zone)
		rename[strconv.Itoa(zone)] = name
		sch[name] = f64()
	}
	return shapeRecords(rows, csvSpec{schema: sch, rename: rename})
}

func RTExpostSTRMCP(raw *RawReport) (*tables.Table, error) {
	rows, err := sheetRows(raw.Body)
	if err != nil {
		return nil, err
	}
	rows, err = sliceRows(rows, 5, 1)
	if err != nil {
		return nil, err
	}
	for i, row := range rows {
		if len(row) > 0 {
			rows[i] = row[1:]
		}
	}

	rename := map[string]string{}
	sch := schema{
		"MARKET DATE": ts(marketDay),
		"Hour Ending": i64(),
	}
	for zone := 1; zone <= 8; zone++ {
		name := "RESERVE ZONE " + strconv.Itoa(zone)
		rename[strconv.Itoa(zone)] = name
		sch[name] = f64()
	}
	return shapeRecords(rows, csvSpec{schema: sch, rename: rename})
}

// DeadNodeReport keeps two data columns in the middle of the sheet and
// repeats its header block every page.
func DeadNodeReport(raw *RawReport) (*tables.Table, error) {
	rows, err := sheetRows(raw.Body)
	if err != nil {
		return nil, err
	}
	rows, err = sliceRows(rows, 9, 0)
	if err != nil {
		return nil, err
	}
	pruned := [][]string{{"Mkt Hour", "PNODE Name"}}
	for _, row := range rows[1:] {
		if len(row) < 3 {
			continue
		}
		hour, node := strings.TrimSpace(row[1]), strings.TrimSpace(row[2])
		if hour == "" || node == "" || hour == "Mkt Hour" {
			continue
		}
		pruned = append(pruned, []string{hour, node})
	}
	return shapeRecords(pruned, csvSpec{
		schema: schema{"Mkt Hour": ts(marketHour)},
	})
}

// daprSection cuts one titled block out of the day-ahead pricing report
// sheet.
func daprSection(rows [][]string, start, n int, sch schema) (*tables.Table, error) {
	if len(rows) < start+1+n {
		return nil, apperrors.New(apperrors.KindParseShape,
			"expected %d rows at offset %d, found %d total", n+1, start, len(rows))
	}
	return shapeRecords(rows[start:start+1+n], csvSpec{schema: sch})
}

// DAPR stacks six summary tables on a single sheet at fixed offsets.
func DAPR(raw *RawReport) (*tables.Table, error) {
	rows, err := sheetRows(raw.Body)
	if err != nil {
		return nil, err
	}

	demandSchema := cols(schema{}, f64(), "Fixed", "Price Sens.", "Virtual", "Total")
	supplySchema := cols(schema{}, f64(), "Physical", "Virtual", "Total")
	hourlySchema := cols(
		schema{"Hour": i64()},
		f64(),
		"Demand Fixed", "Demand Price Sens.", "Demand Virtual", "Demand Total",
		"Supply Physical", "Supply Virtual", "Supply Total",
	)
	priceSchema := cols(schema{}, f64(), "LMP", "MLC", "MCC")

	sections := []struct {
		name  string
		start int
		n     int
		sch   schema
	}{
		{"Demand", 6, 2, demandSchema},
		{"Supply", 9, 3, supplySchema},
		{"Hourly", 14, 24, hourlySchema},
		{"Around the Clock", 39, 3, priceSchema},
		{"On-Peak", 43, 3, priceSchema},
		{"Off-Peak", 47, 3, priceSchema},
	}

	var names []string
	var tabs []*tables.Table
	for _, s := range sections {
		t, err := daprSection(rows, s.start, s.n, s.sch)
		if err != nil {
			return nil, err
		}
		names = append(names, s.name)
		tabs = append(tabs, t)
	}
	return tables.NewMulti(names, tabs)
}
