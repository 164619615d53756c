package parsers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDAExanteLMP(t *testing.T) {
	raw := &RawReport{Body: []byte(
		"DAY-AHEAD MARKET\n" +
			"EX-ANTE LMPs\n" +
			"26-Oct-2024\n" +
			"\n" +
			"Node,Type,Value,HE 1,HE 2\n" +
			"AEC,Hub,LMP,21.5,20.1\n",
	)}

	table, err := DAExanteLMP(raw)
	require.NoError(t, err)
	require.Equal(t, 1, table.NumRows())
	assert.Equal(t, 21.5, table.Rows[0][table.ColumnIndex("HE 1")])
	assert.Equal(t, "Hub", table.Rows[0][table.ColumnIndex("Type")])
}

func TestRTBCHistCleansShadowPrice(t *testing.T) {
	raw := &RawReport{Body: []byte(
		"Historical Binding Constraints\n" +
			"Real-Time\n" +
			"Flowgate NERC ID,Constraint_ID,Market Date,Hour of Occurrence,Preliminary Shadow Price,Override\n" +
			"1234,56,01/15/2024,14:00,\"($1,234.56)\",0\n" +
			"\n" +
			"Disclaimer line one.\n",
	)}

	table, err := RTBCHist(raw)
	require.NoError(t, err)
	require.Equal(t, 1, table.NumRows())

	assert.Equal(t, -1234.56, table.Rows[0][table.ColumnIndex("Preliminary Shadow Price")])

	when, ok := table.Rows[0][table.ColumnIndex("Market Date")].(time.Time)
	require.True(t, ok)
	assert.Equal(t, time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC), when)
	assert.Equal(t, int64(0), table.Rows[0][table.ColumnIndex("Override")])
}

func TestDAPBCStripsHeaderSpaces(t *testing.T) {
	raw := &RawReport{Body: []byte(
		"Day-Ahead Preliminary Binding Constraints\n" +
			"\n" +
			"\n" +
			"\n" +
			"MARKET_HOUR_EST, CONSTRAINT_NAME, PRELIMINARY_SHADOW_PRICE, BP1, PC1, BP2, PC2, BP3, PC3, BP4, PC4, OVERRIDE, REASON, CURVETYPE, , \n" +
			"10/26/2024 01:00:00,CONS_A,125.50,1,2,3,4,5,6,7,8,0,,SLOPE,,\n" +
			"\n" +
			"Disclaimer.\n",
	)}

	table, err := DAPBC(raw)
	require.NoError(t, err)
	require.Equal(t, 1, table.NumRows())
	require.Len(t, table.Columns, 14, "filler columns past the fourteenth are dropped")
	assert.Equal(t, 125.50, table.Rows[0][table.ColumnIndex("PRELIMINARY_SHADOW_PRICE")])
	assert.Equal(t, "CONS_A", table.Rows[0][table.ColumnIndex("CONSTRAINT_NAME")])
}

func TestM2MSettlementSRWRollsMidnight(t *testing.T) {
	raw := &RawReport{Body: []byte(
		"FLOWGATE,MONITORING_RTO,HOUR_ENDING,MISO_SHADOW_PRICE,MISO_MKT_FLOW\n" +
			"FG_1,MISO,2024-03-31 24:00:00,10.5,100\n" +
			"FG_1,MISO,2024-03-31 23:00:00,9.5,90\n",
	)}

	table, err := M2MSettlementSRW(raw)
	require.NoError(t, err)
	require.Equal(t, 2, table.NumRows(), "file ends on a data row and none may be dropped")

	idx := table.ColumnIndex("HOUR_ENDING")
	first, ok := table.Rows[0][idx].(time.Time)
	require.True(t, ok)
	assert.Equal(t, time.Date(2024, time.April, 1, 0, 0, 0, 0, time.UTC), first)

	second := table.Rows[1][idx].(time.Time)
	assert.Equal(t, time.Date(2024, time.March, 31, 23, 0, 0, 0, time.UTC), second)
	assert.Equal(t, int64(100), table.Rows[0][table.ColumnIndex("MISO_MKT_FLOW")])
}

func TestRollMidnight(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"2024-03-31 24:00:00", "2024-04-01 00:00:00"},
		{"2024-12-31 24:00:00", "2025-01-01 00:00:00"},
		{"2024-03-31 23:00:00", "2024-03-31 23:00:00"},
		{"garbage", "garbage"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, rollMidnight(tt.in), tt.in)
	}
}

func TestFiveMinLMPFromZip(t *testing.T) {
	csv := "5-Minute LMP\n" +
		"\n" +
		"\n" +
		"\n" +
		"MKTHOUR_EST,PNODENAME,LMP,CON_LMP,LOSS_LMP\n" +
		"10/21/2024 00:05,AEC,22.5,1.5,-0.5\n" +
		"\n" +
		"Disclaimer.\n"
	body := makeZip(t, map[string]string{"5min_lmp.csv": csv}, "5min_lmp.csv")

	table, err := FiveMinLMP(&RawReport{Body: body})
	require.NoError(t, err)
	require.Equal(t, 1, table.NumRows())
	assert.Equal(t, 22.5, table.Rows[0][table.ColumnIndex("LMP")])

	when := table.Rows[0][table.ColumnIndex("MKTHOUR_EST")].(time.Time)
	assert.Equal(t, time.Date(2024, time.October, 21, 0, 5, 0, 0, time.UTC), when)
}

func TestDALMPsFromZip(t *testing.T) {
	csv := "Day-Ahead Quarterly LMPs\n" +
		"MARKET_DAY,NODE,TYPE,VALUE,HE1,HE2\n" +
		"07/01/2024,AEC,Hub,LMP,25.0,24.0\n"
	body := makeZip(t, map[string]string{"da_lmps.csv": csv}, "da_lmps.csv")

	table, err := DALMPs(&RawReport{Body: body})
	require.NoError(t, err)
	require.Equal(t, 1, table.NumRows())
	assert.Equal(t, 25.0, table.Rows[0][table.ColumnIndex("HE1")])

	when := table.Rows[0][table.ColumnIndex("MARKET_DAY")].(time.Time)
	assert.Equal(t, time.Date(2024, time.July, 1, 0, 0, 0, 0, time.UTC), when)
}

func TestMarketSettlementDataSRWPicksCSVMember(t *testing.T) {
	csv := "DATE,OPERATING_ENTITY,HR01,HR02\n" +
		"10/01/2024,MISO,100.5,99.5\n" +
		"Disclaimer.\n"
	body := makeZip(t, map[string]string{
		"readme.pdf":            "not data",
		"market_settlement.csv": csv,
	}, "readme.pdf", "market_settlement.csv")

	table, err := MarketSettlementDataSRW(&RawReport{Body: body})
	require.NoError(t, err)
	require.Equal(t, 1, table.NumRows())
	assert.Equal(t, 100.5, table.Rows[0][table.ColumnIndex("HR01")])
}

func TestM2MFFEParsesDoubleSpacedTimestamp(t *testing.T) {
	raw := &RawReport{Body: []byte(
		"Flowgate,Monitoring RTO,Hour Ending,Monitoring RTO FFE\n" +
			"FG_1,MISO,10/29/2024  01:00:00 AM,350.5\n" +
			"Disclaimer.\n",
	)}

	table, err := M2MFFE(raw)
	require.NoError(t, err)
	require.Equal(t, 1, table.NumRows())

	when := table.Rows[0][table.ColumnIndex("Hour Ending")].(time.Time)
	assert.Equal(t, time.Date(2024, time.October, 29, 1, 0, 0, 0, time.UTC), when)
	assert.Equal(t, 350.5, table.Rows[0][table.ColumnIndex("Monitoring RTO FFE")])
}

func TestAllocationOnMISOFlowgatesStripsThousands(t *testing.T) {
	raw := &RawReport{Body: []byte(
		"NERC ID,Flowgate Description,Allocation (MW)\n" +
			"1234,Some Line,\"1,250.5\"\n" +
			"\n" +
			"Disclaimer.\n",
	)}

	table, err := AllocationOnMISOFlowgates(raw)
	require.NoError(t, err)
	assert.Equal(t, 1250.5, table.Rows[0][table.ColumnIndex("Allocation (MW)")])
}

func TestBidsCBFromZip(t *testing.T) {
	csv := "Date/Time Beginning (EST),Date/Time End (EST),Region,MW,LMP\n" +
		"10/21/2024 00:00:00,10/21/2024 01:00:00,Central,150.5,22.1\n"
	body := makeZip(t, map[string]string{"bids.csv": csv}, "bids.csv")

	table, err := BidsCB(&RawReport{Body: body})
	require.NoError(t, err)
	require.Equal(t, 1, table.NumRows())

	begin := table.Rows[0][table.ColumnIndex("Date/Time Beginning (EST)")].(time.Time)
	assert.Equal(t, time.Date(2024, time.October, 21, 0, 0, 0, 0, time.UTC), begin)
	assert.Equal(t, 150.5, table.Rows[0][table.ColumnIndex("MW")])
}
