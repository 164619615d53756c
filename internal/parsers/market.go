package parsers

import (
	"strings"
	"time"

	"misoreports/pkg/tables"
)

// Posted market report files. These carry multi-line disclaimers around the
// data block, so most specs trim a fixed head and tail.

const (
	marketDay     = "01/02/2006"
	marketHour    = "01/02/2006 15:04:05"
	marketMinute  = "01/02/2006 15:04"
	hourOfDay     = "15:04"
	settlementDay = "2006-01-02 15:04:05"
)

// nodalHourly shapes the ex-ante and ex-post nodal price files, one row per
// node with one column per hour ending.
func nodalHourly(raw *RawReport) (*tables.Table, error) {
	return parseCSV(raw.Text(), csvSpec{
		skipHead: 4,
		schema:   cols(schema{}, f64(), hourEnding("HE ", 24)...),
	})
}

func DAExanteLMP(raw *RawReport) (*tables.Table, error) { return nodalHourly(raw) }
func DAExpostLMP(raw *RawReport) (*tables.Table, error) { return nodalHourly(raw) }
func RTLMPFinal(raw *RawReport) (*tables.Table, error)  { return nodalHourly(raw) }
func RTLMPPrelim(raw *RawReport) (*tables.Table, error) { return nodalHourly(raw) }

func DABCHist(raw *RawReport) (*tables.Table, error) {
	return parseCSV(raw.Text(), csvSpec{
		skipHead: 2,
		skipTail: 3,
		schema: cols(
			schema{
				"Market Date":        ts(marketDay),
				"Hour of Occurrence": ts(hourOfDay),
				"Shadow Price":       f64(),
				"Override":           i64(),
			},
			f64(), "BP1", "PC1", "BP2", "PC2",
		),
	})
}

func RTBCHist(raw *RawReport) (*tables.Table, error) {
	return parseCSV(raw.Text(), csvSpec{
		skipHead: 2,
		skipTail: 2,
		schema: cols(
			schema{
				"Market Date":              ts(marketDay),
				"Hour of Occurrence":       ts(hourOfDay),
				"Preliminary Shadow Price": f64(),
				"Override":                 i64(),
			},
			f64(), "BP1", "PC1", "BP2", "PC2",
		),
		clean: func(col, val string) string {
			if col == "Preliminary Shadow Price" {
				return moneyClean(val)
			}
			return val
		},
	})
}

// DAPBC publishes its header with embedded spaces and trailing filler
// columns, both stripped before shaping.
func DAPBC(raw *RawReport) (*tables.Table, error) {
	data, err := trimLines(raw.Text(), 4, 2)
	if err != nil {
		return nil, err
	}
	lines := splitLines(data)
	lines[0] = strings.ReplaceAll(lines[0], " ", "")

	return parseCSV(strings.Join(lines, "\n"), csvSpec{
		useCols: 14,
		schema: cols(
			schema{
				"MARKET_HOUR_EST":          ts(marketHour),
				"PRELIMINARY_SHADOW_PRICE": f64(),
			},
			i64(),
			"BP1", "PC1", "BP2", "PC2", "BP3", "PC3", "BP4", "PC4", "OVERRIDE",
		),
	})
}

func CCFCO(raw *RawReport) (*tables.Table, error) {
	return parseCSV(raw.Text(), csvSpec{
		skipHead: 4,
		skipTail: 1,
		schema: cols(
			schema{"OPERATING DATE": ts(marketDay)},
			f64(), hourEnding("HOUR", 24)...,
		),
	})
}

func MSVLRHist(raw *RawReport) (*tables.Table, error) {
	return parseCSV(raw.Text(), csvSpec{
		skipHead: 3,
		skipTail: 3,
		schema: schema{
			"OPERATING DATE": ts(marketDay),
			"SETTLEMENT RUN": i64(),
			"DA_VLR_MWP":     f64(),
			"RT_VLR_MWP":     f64(),
			"DA+RT Total":    f64(),
		},
	})
}

func SRTCDCGroup2(raw *RawReport) (*tables.Table, error) {
	return parseCSV(raw.Text(), csvSpec{
		skipHead: 4,
		skipTail: 2,
		schema: cols(
			schema{"EffectiveTime": ts(marketMinute)},
			f64(), "TCDC", "PSC",
		),
	})
}

func AllocationOnMISOFlowgates(raw *RawReport) (*tables.Table, error) {
	return parseCSV(raw.Text(), csvSpec{
		skipTail: 2,
		schema:   schema{"Allocation (MW)": f64()},
		clean: func(col, val string) string {
			if col == "Allocation (MW)" {
				return strings.ReplaceAll(val, ",", "")
			}
			return val
		},
	})
}

func M2MFFE(raw *RawReport) (*tables.Table, error) {
	return parseCSV(raw.Text(), csvSpec{
		skipTail: 1,
		schema: cols(
			schema{"Hour Ending": ts("01/02/2006  03:04:05 PM")},
			f64(),
			"Monitoring RTO FFE", "Non Monitoring RTO Market Flow",
			"Non Monitoring RTO FFE",
		),
	})
}

// M2MSettlementSRW stamps the last hour of a day as 24:00:00; rows carrying
// it are rewritten to midnight of the next day before parsing. The payload
// ends on a data row, so no tail lines are trimmed.
func M2MSettlementSRW(raw *RawReport) (*tables.Table, error) {
	return parseCSV(raw.Text(), csvSpec{
		schema: cols(
			cols(
				schema{"HOUR_ENDING": ts(settlementDay)},
				f64(), "MISO_SHADOW_PRICE", "CP_SHADOW_PRICE", "MISO_CREDIT", "CP_CREDIT",
			),
			i64(), "MISO_MKT_FLOW", "MISO_FFE", "CP_MKT_FLOW", "CP_FFE",
		),
		clean: func(col, val string) string {
			if col == "HOUR_ENDING" {
				return rollMidnight(val)
			}
			return val
		},
	})
}

// rollMidnight rewrites a "YYYY-MM-DD 24:00:00" stamp to the next calendar
// day at 00:00:00.
func rollMidnight(val string) string {
	day, rest, ok := strings.Cut(strings.TrimSpace(val), " ")
	if !ok || rest != "24:00:00" {
		return val
	}
	t, err := time.Parse("2006-01-02", day)
	if err != nil {
		return val
	}
	return t.AddDate(0, 0, 1).Format("2006-01-02") + " 00:00:00"
}

// DALoadEPNodes and its real-time sibling ship one delimited file inside a
// zip archive.
func DALoadEPNodes(raw *RawReport) (*tables.Table, error) {
	text, err := zipFirstFile(raw.Body)
	if err != nil {
		return nil, err
	}
	return parseCSV(text, csvSpec{
		skipHead: 4,
		skipTail: 1,
		schema:   cols(schema{}, f64(), hourEnding("HE", 24)...),
	})
}

func RTLoadEPNodes(raw *RawReport) (*tables.Table, error) {
	return DALoadEPNodes(raw)
}

// lmpQuarterly shapes the zipped quarterly nodal price archives.
func lmpQuarterly(raw *RawReport) (*tables.Table, error) {
	text, err := zipFirstFile(raw.Body)
	if err != nil {
		return nil, err
	}
	return parseCSV(text, csvSpec{
		skipHead: 1,
		schema: cols(
			schema{"MARKET_DAY": ts(marketDay)},
			f64(), hourEnding("HE", 24)...,
		),
	})
}

func DALMPs(raw *RawReport) (*tables.Table, error) { return lmpQuarterly(raw) }
func RTLMPs(raw *RawReport) (*tables.Table, error) { return lmpQuarterly(raw) }

func FiveMinLMP(raw *RawReport) (*tables.Table, error) {
	text, err := zipFirstFile(raw.Body)
	if err != nil {
		return nil, err
	}
	return parseCSV(text, csvSpec{
		skipHead: 4,
		skipTail: 2,
		schema: schema{
			"MKTHOUR_EST": ts(marketMinute),
			"LMP":         f64(),
			"CON_LMP":     f64(),
			"LOSS_LMP":    f64(),
		},
	})
}

func BidsCB(raw *RawReport) (*tables.Table, error) {
	text, err := zipFirstFile(raw.Body)
	if err != nil {
		return nil, err
	}
	return parseCSV(text, csvSpec{
		schema: cols(
			schema{
				"Date/Time Beginning (EST)": ts(marketHour),
				"Date/Time End (EST)":       ts(marketHour),
			},
			f64(),
			"MW", "LMP", "PRICE1", "MW1", "PRICE2", "MW2", "PRICE3", "MW3",
			"PRICE4", "MW4", "PRICE5", "MW5", "PRICE6", "MW6", "PRICE7", "MW7",
			"PRICE8", "MW8", "PRICE9", "MW9",
		),
	})
}

// clearedOffers shapes the day-ahead and real-time cleared offer archives,
// published ninety days after the operating day.
func clearedOffers(raw *RawReport) (*tables.Table, error) {
	text, err := zipFirstFile(raw.Body)
	if err != nil {
		return nil, err
	}
	return parseCSV(text, csvSpec{
		schema: cols(
			cols(
				schema{
					"Date/Time Beginning (EST)": ts(marketHour),
					"Date/Time End (EST)":       ts(marketHour),
				},
				f64(),
				"Economic Max", "Economic Min", "Emergency Max", "Emergency Min",
				"Self Scheduled MW", "Target MW Reduction", "MW", "LMP",
				"Price1", "MW1", "Price2", "MW2", "Price3", "MW3", "Price4", "MW4",
				"Price5", "MW5", "Price6", "MW6", "Price7", "MW7", "Price8", "MW8",
				"Price9", "MW9", "Price10", "MW10",
			),
			i64(), "Unit Available Flag",
		),
	})
}

func DACO(raw *RawReport) (*tables.Table, error) { return clearedOffers(raw) }
func RTCO(raw *RawReport) (*tables.Table, error) { return clearedOffers(raw) }

func MarketSettlementDataSRW(raw *RawReport) (*tables.Table, error) {
	text, err := zipNamedCSV(raw.Body)
	if err != nil {
		return nil, err
	}
	return parseCSV(text, csvSpec{
		skipTail: 1,
		schema: cols(
			schema{"DATE": ts(marketDay)},
			f64(), paddedHours("HR", 24)...,
		),
	})
}
