package parsers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"misoreports/pkg/tables"
)

// makeSheetsWorkbook builds an xlsx payload with one named sheet per entry,
// in the given order.
func makeSheetsWorkbook(t *testing.T, order []string, sheets map[string][][]any) []byte {
	t.Helper()
	wb := excelize.NewFile()
	for i, name := range order {
		if i == 0 {
			require.NoError(t, wb.SetSheetName("Sheet1", name))
		} else {
			_, err := wb.NewSheet(name)
			require.NoError(t, err)
		}
		for r, row := range sheets[name] {
			cell, err := excelize.CoordinatesToCellName(1, r+1)
			require.NoError(t, err)
			require.NoError(t, wb.SetSheetRow(name, cell, &row))
		}
	}
	buf, err := wb.WriteToBuffer()
	require.NoError(t, err)
	require.NoError(t, wb.Close())
	return buf.Bytes()
}

func subTableByName(t *testing.T, table *tables.Table, name string) *tables.Table {
	t.Helper()
	for _, sub := range table.SubTables() {
		if sub.Name == name {
			return sub.Table
		}
	}
	t.Fatalf("no sub table named %q", name)
	return nil
}

func TestMSVLRSRW(t *testing.T) {
	rows := [][]any{
		{"VLR RSG Make Whole Payments"},
		{"October 2024"},
		{}, {}, {}, {},
		{"Central"},
		{"Constraint", "Notes", "DA VLR RSG MWP", "RT VLR RSG MWP", "DA+RT Total"},
		{"CONS_A", "x", "10.5", "1.5", "12.0"},
		{"CONS_B", "x", "20.0", "2.0", "22.0"},
		{"CONS_C", "x", "30.0", "3.0", "33.0"},
		{}, {}, {},
		{"South"},
		{"Constraint", "Notes", "DA VLR RSG MWP", "RT VLR RSG MWP", "DA+RT Total"},
		{"CONS_D", "x", "1.0", "0.1", "1.1"},
		{"CONS_E", "x", "2.0", "0.2", "2.2"},
		{"CONS_F", "x", "3.0", "0.3", "3.3"},
		{"CONS_G", "x", "4.0", "0.4", "4.4"},
		{"CONS_H", "x", "5.0", "0.5", "5.5"},
		{"CONS_I", "x", "6.0", "0.6", "6.6"},
		{"CONS_J", "x", "7.0", "0.7", "7.7"},
	}
	body := makeSheetsWorkbook(t, []string{"Sheet1"}, map[string][][]any{"Sheet1": rows})

	table, err := MSVLRSRW(&RawReport{Body: body})
	require.NoError(t, err)
	require.True(t, table.IsMulti())

	central := subTableByName(t, table, "Central")
	require.Equal(t, 3, central.NumRows())
	require.Len(t, central.Columns, 4, "the notes column is not carried")
	assert.Equal(t, "CONS_A", central.Rows[0][central.ColumnIndex("Constraint")])
	assert.Equal(t, 12.0, central.Rows[0][central.ColumnIndex("DA+RT Total")])

	south := subTableByName(t, table, "South")
	require.Equal(t, 7, south.NumRows())
	assert.Equal(t, 7.7, south.Rows[6][south.ColumnIndex("DA+RT Total")])
}

func TestMSRSGSRW(t *testing.T) {
	mktTot := [][]any{
		{"RSG"}, {}, {}, {}, {}, {}, {},
		{"previous 36 months", "START", "STOP", "MISO_RT_RSG_DIST2", "RT_RSG_DIST1", "RT_RSG_MWP", "DA_RSG_MWP", "DA_RSG_DIST", ""},
		{"Oct 2024", "10/01/2024", "10/31/2024", "1.5", "2.5", "3.5", "4.5", "5.5", ""},
		{},
		{"footer"},
	}
	rate := [][]any{
		{"rate"},
		{"OPERATING DATE", "CHNL NBR", "BILL_DETERMINANT", "HE1", "HE2"},
		{"2024-10-01", "7", "RT_RSG_DIST1", "0.5", "0.25"},
	}
	monthly := [][]any{
		{"monthly"},
		{"", "OPERATING MONTH", "DA NVLR DIST", "DA VLR DIST"},
		{"", "2024-10-01", "100.5", "200.5"},
	}
	order := []string{"MKT TOT", "ATC CMC rate", "MISO DDC rate", "VLR DIST", "RSG MONTHLY"}
	body := makeSheetsWorkbook(t, order, map[string][][]any{
		"MKT TOT":       mktTot,
		"ATC CMC rate":  rate,
		"MISO DDC rate": rate,
		"VLR DIST":      rate,
		"RSG MONTHLY":   monthly,
	})

	table, err := MSRSGSRW(&RawReport{Body: body})
	require.NoError(t, err)
	subs := table.SubTables()
	require.Len(t, subs, 5)
	assert.Equal(t, order[0], subs[0].Name)

	mkt := subs[0].Table
	require.Equal(t, 1, mkt.NumRows(), "footer rows are trimmed")
	require.Len(t, mkt.Columns, 8, "spacer column is dropped")
	start, ok := mkt.Rows[0][mkt.ColumnIndex("START")].(time.Time)
	require.True(t, ok)
	assert.Equal(t, time.Date(2024, time.October, 1, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, 1.5, mkt.Rows[0][mkt.ColumnIndex("MISO_RT_RSG_DIST2")])

	atc := subs[1].Table
	assert.Equal(t, int64(7), atc.Rows[0][atc.ColumnIndex("CHNL NBR")])
	assert.Equal(t, 0.25, atc.Rows[0][atc.ColumnIndex("HE2")])

	month := subs[4].Table
	assert.Equal(t, "OPERATING MONTH", month.Columns[0].Name, "leading index column is dropped")
	assert.Equal(t, 100.5, month.Rows[0][month.ColumnIndex("DA NVLR DIST")])
}

func TestMSRNUSRW(t *testing.T) {
	mktTot := [][]any{
		{"RNU"}, {}, {}, {}, {}, {}, {}, {},
		{"previous 36 months", "START", "STOP", "RT_CC", "TOTAL RNU"},
		{"Oct 2024", "10/01/2024", "10/31/2024", "9.5", "99.5"},
		{},
		{"footer"},
	}
	hourly := [][]any{
		{"meters"},
		{"STARTTIME", "CHANNEL", "BILL_DETERMINANT", "HE1", "HE2"},
		{"10/01/2024", "3", "MISO_RT_BILL_MTR", "1.5", "2.5"},
	}
	joa := [][]any{
		{"HRBEG", "RT CC", "RT JOA", "NET"},
		{"10/01/2024 01:00:00", "1.5", "2.5", "4.0"},
	}
	order := []string{"MKT TOT", "hourly miso_rt_bill_mtr", "RT CC JOA column"}
	body := makeSheetsWorkbook(t, order, map[string][][]any{
		order[0]: mktTot,
		order[1]: hourly,
		order[2]: joa,
	})

	table, err := MSRNUSRW(&RawReport{Body: body})
	require.NoError(t, err)
	subs := table.SubTables()
	require.Len(t, subs, 3)

	mkt := subs[0].Table
	require.Equal(t, 1, mkt.NumRows())
	assert.Equal(t, 99.5, mkt.Rows[0][mkt.ColumnIndex("TOTAL RNU")])

	hr := subs[1].Table
	assert.Equal(t, int64(3), hr.Rows[0][hr.ColumnIndex("CHANNEL")])

	cc := subs[2].Table
	begin, ok := cc.Rows[0][cc.ColumnIndex("HRBEG")].(time.Time)
	require.True(t, ok)
	assert.Equal(t, time.Date(2024, time.October, 1, 1, 0, 0, 0, time.UTC), begin)
	assert.Equal(t, 4.0, cc.Rows[0][cc.ColumnIndex("NET")])
}

func TestMSRISRW(t *testing.T) {
	mktTot := [][]any{
		{"RI"}, {}, {}, {}, {}, {}, {},
		{"Previous Months", "START", "STOP", "DA RI", "RT RI", "TOTAL RI", ""},
		{"Oct 2024", "10/01/2024", "10/31/2024", "1.5", "2.5", "4.0", ""},
		{},
		{"footer"},
	}
	hourly := [][]any{
		{"hourly"},
		{"d", "h", "tot", "tot cum", "", "da", "da cum", "", "rt", "rt cum"},
		{"10/01/2024 01:00:00", "1", "1.5", "1.5", "", "1.0", "1.0", "", "0.5", "0.5"},
	}
	order := []string{"MKT TOT", "hourly column Worksheet"}
	body := makeSheetsWorkbook(t, order, map[string][][]any{
		order[0]: mktTot,
		order[1]: hourly,
	})

	table, err := MSRISRW(&RawReport{Body: body})
	require.NoError(t, err)
	subs := table.SubTables()
	require.Len(t, subs, 2)

	mkt := subs[0].Table
	require.Len(t, mkt.Columns, 6, "trailing spacer column is dropped")
	assert.Equal(t, 4.0, mkt.Rows[0][mkt.ColumnIndex("TOTAL RI")])

	hr := subs[1].Table
	require.Len(t, hr.Columns, 8, "spacer columns between measures are dropped")
	assert.Equal(t, int64(1), hr.Rows[0][hr.ColumnIndex("hrend")])
	assert.Equal(t, 0.5, hr.Rows[0][hr.ColumnIndex("RT_RI cumulative")])
	when, ok := hr.Rows[0][hr.ColumnIndex("date")].(time.Time)
	require.True(t, ok)
	assert.Equal(t, time.Date(2024, time.October, 1, 1, 0, 0, 0, time.UTC), when)
}

func TestMSECFSRW(t *testing.T) {
	mktTot := [][]any{
		{"ECF"}, {}, {}, {}, {}, {},
		{"", "Start", "Stop", "Da Xs Cg Fnd", "Rt Cc", "Net Ecf", ""},
		{"Monthly", "10/01/2024", "10/31/2024", "1,234.5", "2.5", "3.5", ""},
		{},
		{},
		{"footer"},
	}
	joaHourly := [][]any{
		{"", "hrbeg", "rto", "da", "rt"},
		{"", "10/01/2024 01:00:00", "PJM", "1.5", "2.5"},
	}
	joa := [][]any{
		{"title"},
		{"hrbeg", "cc", "joa", "net"},
		{"10/01/2024 01:00:00", "1.5", "2.5", "4.0"},
	}
	ecf := [][]any{
		{"OD\n", "DA_ECF", "RT_ECF", "DART_ECF", "DART_monthly"},
		{"10/01/2024", "1.5", "2.5", "4.0", "8.0"},
	}
	order := []string{"MKT TOT", "JOA Hourly Totals", "RT CC JOA column", "ECF"}
	body := makeSheetsWorkbook(t, order, map[string][][]any{
		order[0]: mktTot,
		order[1]: joaHourly,
		order[2]: joa,
		order[3]: ecf,
	})

	table, err := MSECFSRW(&RawReport{Body: body})
	require.NoError(t, err)
	subs := table.SubTables()
	require.Len(t, subs, 4)

	mkt := subs[0].Table
	assert.Equal(t, "Type", mkt.Columns[0].Name)
	assert.Equal(t, "Monthly", mkt.Rows[0][0])
	assert.Equal(t, 1234.5, mkt.Rows[0][mkt.ColumnIndex("Da Xs Cg Fnd")], "grouping commas are stripped")

	hourly := subs[1].Table
	assert.Equal(t, "PJM", hourly.Rows[0][hourly.ColumnIndex("CNTR_RTO")])
	assert.Equal(t, 2.5, hourly.Rows[0][hourly.ColumnIndex("RT_JOA")])

	cc := subs[2].Table
	assert.Equal(t, 4.0, cc.Rows[0][cc.ColumnIndex("NET")])

	day := subs[3].Table
	od, ok := day.Rows[0][day.ColumnIndex("OD")].(time.Time)
	require.True(t, ok)
	assert.Equal(t, time.Date(2024, time.October, 1, 0, 0, 0, 0, time.UTC), od)
	assert.Equal(t, 8.0, day.Rows[0][day.ColumnIndex("DART_monthly")])
}

func TestWorkbookSheetsMissingSheet(t *testing.T) {
	body := makeWorkbook(t, [][]any{{"only one sheet"}})
	_, err := workbookSheets(body, "MKT TOT")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "MKT TOT")
}
