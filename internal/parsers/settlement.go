package parsers

import (
	"bytes"
	"strings"

	"github.com/xuri/excelize/v2"

	apperrors "misoreports/internal/errors"
	"misoreports/pkg/tables"
)

// Monthly market settlement workbooks. Unlike the single-sheet reports in
// this package, each of these spreads its tables over several named sheets.

// workbookSheets opens an xlsx payload and returns the rows of each named
// sheet, in the order requested.
func workbookSheets(body []byte, sheets ...string) ([][][]string, error) {
	wb, err := excelize.OpenReader(bytes.NewReader(body))
	if err != nil {
		return nil, apperrors.Wrap(apperrors.KindParseShape, err, "cannot open xlsx workbook")
	}
	defer wb.Close()

	out := make([][][]string, 0, len(sheets))
	for _, name := range sheets {
		rows, err := wb.GetRows(name)
		if err != nil {
			return nil, apperrors.Wrap(apperrors.KindParseShape, err, "cannot read sheet %q", name)
		}
		out = append(out, rows)
	}
	return out, nil
}

// dropColumn removes the column at idx from every row.
func dropColumn(rows [][]string, idx int) [][]string {
	out := make([][]string, len(rows))
	for r, row := range rows {
		if idx >= len(row) {
			out[r] = row
			continue
		}
		trimmed := make([]string, 0, len(row)-1)
		trimmed = append(trimmed, row[:idx]...)
		trimmed = append(trimmed, row[idx+1:]...)
		out[r] = trimmed
	}
	return out
}

// dropUnnamed removes every column whose header cell is blank. The
// workbooks pad their sheets with empty spacer columns.
func dropUnnamed(rows [][]string) [][]string {
	if len(rows) == 0 {
		return rows
	}
	keep := make([]int, 0, len(rows[0]))
	for i, h := range rows[0] {
		if strings.TrimSpace(h) != "" {
			keep = append(keep, i)
		}
	}
	return pickColumns(rows, keep...)
}

// pickColumns keeps the listed column indexes, in order. Short rows are
// padded with empty cells.
func pickColumns(rows [][]string, idx ...int) [][]string {
	out := make([][]string, len(rows))
	for r, row := range rows {
		picked := make([]string, 0, len(idx))
		for _, i := range idx {
			if i < len(row) {
				picked = append(picked, row[i])
			} else {
				picked = append(picked, "")
			}
		}
		out[r] = picked
	}
	return out
}

// keepNamed keeps only the columns whose header appears in names,
// preserving the sheet's column order.
func keepNamed(rows [][]string, names ...string) ([][]string, error) {
	if len(rows) == 0 {
		return nil, apperrors.New(apperrors.KindParseShape, "expected a header row, found empty sheet")
	}
	wanted := make(map[string]bool, len(names))
	for _, n := range names {
		wanted[n] = true
	}
	idx := make([]int, 0, len(names))
	for i, h := range rows[0] {
		if wanted[strings.TrimSpace(h)] {
			idx = append(idx, i)
		}
	}
	if len(idx) != len(names) {
		return nil, apperrors.New(apperrors.KindParseShape,
			"expected columns %s, found %d of them", strings.Join(names, ", "), len(idx))
	}
	return pickColumns(rows, idx...), nil
}

// MSVLRSRW cuts the Central and South VLR RSG make-whole-payment blocks out
// of the first sheet at their fixed offsets.
func MSVLRSRW(raw *RawReport) (*tables.Table, error) {
	rows, err := sheetRows(raw.Body)
	if err != nil {
		return nil, err
	}

	sch := cols(schema{}, f64(), "DA VLR RSG MWP", "RT VLR RSG MWP", "DA+RT Total")
	section := func(start, n int) (*tables.Table, error) {
		if len(rows) < start+1+n {
			return nil, apperrors.New(apperrors.KindParseShape,
				"expected %d rows at offset %d, found %d total", n+1, start, len(rows))
		}
		part, err := keepNamed(rows[start:start+1+n],
			"Constraint", "DA VLR RSG MWP", "RT VLR RSG MWP", "DA+RT Total")
		if err != nil {
			return nil, err
		}
		return shapeRecords(part, csvSpec{schema: sch})
	}

	central, err := section(7, 3)
	if err != nil {
		return nil, err
	}
	south, err := section(15, 7)
	if err != nil {
		return nil, err
	}
	return tables.NewMulti(
		[]string{"Central", "South"},
		[]*tables.Table{central, south},
	)
}

// rsgRateSchema covers the hourly channel-rate sheets shared by the RSG and
// RNU workbooks.
func rsgRateSchema(channelCol, dateCol, dateLayout string) schema {
	return cols(schema{
		channelCol: i64(),
		dateCol:    ts(dateLayout),
	}, f64(), hourEnding("HE", 24)...)
}

func MSRSGSRW(raw *RawReport) (*tables.Table, error) {
	sheets := []string{"MKT TOT", "ATC CMC rate", "MISO DDC rate", "VLR DIST", "RSG MONTHLY"}
	all, err := workbookSheets(raw.Body, sheets...)
	if err != nil {
		return nil, err
	}

	mktRows, err := sliceRows(all[0], 7, 2)
	if err != nil {
		return nil, err
	}
	mkt, err := shapeRecords(dropUnnamed(mktRows), csvSpec{
		schema: cols(schema{
			"START": ts(marketDay),
			"STOP":  ts(marketDay),
		}, f64(), "MISO_RT_RSG_DIST2", "RT_RSG_DIST1", "RT_RSG_MWP", "DA_RSG_MWP", "DA_RSG_DIST"),
	})
	if err != nil {
		return nil, err
	}
	tabs := []*tables.Table{mkt}

	rateSpec := csvSpec{schema: rsgRateSchema("CHNL NBR", "OPERATING DATE", "2006-01-02")}
	for i := 1; i <= 3; i++ {
		rows, err := sliceRows(all[i], 1, 0)
		if err != nil {
			return nil, err
		}
		t, err := shapeRecords(rows, rateSpec)
		if err != nil {
			return nil, err
		}
		tabs = append(tabs, t)
	}

	monthlyRows, err := sliceRows(all[4], 1, 0)
	if err != nil {
		return nil, err
	}
	monthly, err := shapeRecords(dropColumn(monthlyRows, 0), csvSpec{
		schema: cols(schema{
			"OPERATING MONTH": ts("2006-01-02"),
		}, f64(), "DA NVLR DIST", "DA VLR DIST", "RT VLR DIST",
			"MISO CMC DIST", "MISO DDC DIST", "MISO RT RSG DIST2"),
	})
	if err != nil {
		return nil, err
	}
	tabs = append(tabs, monthly)

	return tables.NewMulti(sheets, tabs)
}

func MSRNUSRW(raw *RawReport) (*tables.Table, error) {
	sheets := []string{"MKT TOT", "hourly miso_rt_bill_mtr", "RT CC JOA column"}
	all, err := workbookSheets(raw.Body, sheets...)
	if err != nil {
		return nil, err
	}

	mktRows, err := sliceRows(all[0], 8, 2)
	if err != nil {
		return nil, err
	}
	mkt, err := shapeRecords(mktRows, csvSpec{
		schema: cols(schema{
			"START": ts(marketDay),
			"STOP":  ts(marketDay),
		}, f64(),
			"JOA_MISO_UPLIFT", "MISO_RT_GFACO_DIST", "MISO_RT_GFAOB_DIST",
			"MISO_RT_RSG_DIST2", "RT_CC", "DA_RI", "RT_RI", "ASM_RI",
			"STRDFC_UPLIFT", "CRDFC_UPLIFT", "MISO_PV_MWP_UPLIFT",
			"MISO_DRR_COMP_UPL", "MISO_TOT_MIL_UPL", "RC_DIST", "TOTAL RNU"),
	})
	if err != nil {
		return nil, err
	}

	hourlyRows, err := sliceRows(all[1], 1, 0)
	if err != nil {
		return nil, err
	}
	hourly, err := shapeRecords(hourlyRows, csvSpec{
		schema: rsgRateSchema("CHANNEL", "STARTTIME", marketDay),
	})
	if err != nil {
		return nil, err
	}

	joa, err := shapeRecords(all[2], csvSpec{
		schema: cols(schema{
			"HRBEG": ts(marketHour),
		}, f64(), "RT CC", "RT JOA", "NET"),
	})
	if err != nil {
		return nil, err
	}

	return tables.NewMulti(sheets, []*tables.Table{mkt, hourly, joa})
}

func MSRISRW(raw *RawReport) (*tables.Table, error) {
	sheets := []string{"MKT TOT", "hourly column Worksheet"}
	all, err := workbookSheets(raw.Body, sheets...)
	if err != nil {
		return nil, err
	}

	mktRows, err := sliceRows(all[0], 7, 2)
	if err != nil {
		return nil, err
	}
	mkt, err := shapeRecords(dropUnnamed(mktRows), csvSpec{
		schema: cols(schema{
			"START": ts(marketDay),
			"STOP":  ts(marketDay),
		}, f64(), "DA RI", "RT RI", "TOTAL RI"),
	})
	if err != nil {
		return nil, err
	}

	// The hourly sheet pairs each measure with a cumulative running total
	// in the next-but-one column; the gap columns are spacers.
	hourlyRows, err := sliceRows(all[1], 1, 0)
	if err != nil {
		return nil, err
	}
	hourlyRows = pickColumns(hourlyRows, 0, 1, 2, 3, 5, 6, 8, 9)
	hourlyRows[0] = []string{
		"date", "hrend",
		"Total RI hourly", "Total RI cumulative",
		"DA_RI hourly", "DA_RI cumulative",
		"RT_RI hourly", "RT_RI cumulative",
	}
	hourly, err := shapeRecords(hourlyRows, csvSpec{
		schema: cols(schema{
			"date":  ts(marketHour),
			"hrend": i64(),
		}, f64(),
			"Total RI hourly", "Total RI cumulative",
			"DA_RI hourly", "DA_RI cumulative",
			"RT_RI hourly", "RT_RI cumulative"),
	})
	if err != nil {
		return nil, err
	}

	return tables.NewMulti(sheets, []*tables.Table{mkt, hourly})
}

func MSECFSRW(raw *RawReport) (*tables.Table, error) {
	sheets := []string{"MKT TOT", "JOA Hourly Totals", "RT CC JOA column", "ECF"}
	all, err := workbookSheets(raw.Body, sheets...)
	if err != nil {
		return nil, err
	}

	mktRows, err := sliceRows(all[0], 6, 3)
	if err != nil {
		return nil, err
	}
	if len(mktRows[0]) > 0 {
		mktRows[0][0] = "Type"
	}
	mkt, err := shapeRecords(dropUnnamed(mktRows), csvSpec{
		schema: cols(schema{
			"Start": ts(marketDay),
			"Stop":  ts(marketDay),
		}, f64(),
			"Da Xs Cg Fnd", "Rt Cc", "Rt Xs Cg Fnd", "Ftr Auc Res",
			"Ao Ftr Mn Alc", "Ftr Yr Alc *", "Tbs Access", "Net Ecf",
			"Ftr Shrtfll", "Net Ftr Sf", "Ftr Trg Cr Alc", "Ftr Hr Alc",
			"Hr Mf", "Hourly Ftr Allocation", "Monthly Ftr Allocation"),
	})
	if err != nil {
		return nil, err
	}

	joaHourlyRows := dropColumn(all[1], 0)
	if len(joaHourlyRows) == 0 {
		return nil, apperrors.New(apperrors.KindParseShape, "expected a header row, found empty sheet")
	}
	joaHourlyRows[0] = []string{"HRBEG", "CNTR_RTO", "DA_JOA", "RT_JOA"}
	joaHourly, err := shapeRecords(joaHourlyRows, csvSpec{
		schema: cols(schema{
			"HRBEG": ts(marketHour),
		}, f64(), "DA_JOA", "RT_JOA"),
	})
	if err != nil {
		return nil, err
	}

	joaRows, err := sliceRows(all[2], 1, 0)
	if err != nil {
		return nil, err
	}
	joaRows[0] = []string{"HRBEG", "RT CC", "RT JOA", "NET"}
	joa, err := shapeRecords(joaRows, csvSpec{
		schema: cols(schema{
			"HRBEG": ts(marketHour),
		}, f64(), "RT CC", "RT JOA", "NET"),
	})
	if err != nil {
		return nil, err
	}

	ecf, err := shapeRecords(all[3], csvSpec{
		schema: cols(schema{
			"OD": ts(marketDay),
		}, f64(), "DA_ECF", "RT_ECF", "DART_ECF", "DART_monthly"),
		rename: map[string]string{"OD\n": "OD"},
	})
	if err != nil {
		return nil, err
	}

	return tables.NewMulti(sheets, []*tables.Table{mkt, joaHourly, joa, ecf})
}
