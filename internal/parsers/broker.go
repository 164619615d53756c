package parsers

import (
	"strconv"
	"strings"

	apperrors "misoreports/internal/errors"
	"misoreports/pkg/tables"
)

// Real-time data broker feeds. Most arrive as a two-line preamble (title and
// timestamp) followed by one delimited table; the JSON variants carry the
// same records under a named array.

const (
	estTimestamp   = "2006-01-02 03:04:05 PM"
	isoTimestamp   = "2006-01-02T15:04:05"
	plainTimestamp = "2006-01-02 15:04:05"
)

// CurrentInterval parses the BI reporter five-minute LMP snapshot.
func CurrentInterval(raw *RawReport) (*tables.Table, error) {
	return parseCSV(raw.Text(), csvSpec{
		schema: cols(
			schema{"INTERVAL": ts(isoTimestamp)},
			f64(), "LMP", "MLC", "MCC",
		),
	})
}

func FuelMix(raw *RawReport) (*tables.Table, error) {
	return parseCSV(raw.Text(), csvSpec{
		skipHead: 2,
		schema: schema{
			"INTERVALEST": ts(estTimestamp),
			"ACT":         i64(),
			"TOTALMW":     i64(),
		},
	})
}

func ACE(raw *RawReport) (*tables.Table, error) {
	return parseCSV(raw.Text(), csvSpec{
		skipHead: 2,
		schema: schema{
			"instantEST": ts(estTimestamp),
			"value":      f64(),
		},
	})
}

// AncillaryServicesMCP splits into an ex-ante and an ex-post section, each
// introduced by its own title line.
func AncillaryServicesMCP(raw *RawReport) (*tables.Table, error) {
	sections := strings.Split(strings.ReplaceAll(raw.Text(), "\r\n", "\n"), "\n\n")
	if len(sections) < 3 {
		return nil, apperrors.New(apperrors.KindParseShape,
			"expected preamble plus two MCP sections, found %d blocks", len(sections))
	}

	mcpSchema := cols(
		schema{"number": i64()},
		f64(),
		"GenRegMCP", "GenSpinMCP", "GenSuppMCP", "StrMcp", "DemandRegMcp",
		"DemandSpinMcp", "DemandSuppMCP", "RcpUpMcp", "RcpDownMcp",
	)

	var names []string
	var tabs []*tables.Table
	for _, section := range sections[1:3] {
		lines := splitLines(section)
		if len(lines) < 2 {
			return nil, apperrors.New(apperrors.KindParseShape,
				"expected a titled MCP section, found %d lines", len(lines))
		}
		t, err := parseCSV(strings.Join(lines[1:], "\n"), csvSpec{
			schema: mcpSchema,
			rename: map[string]string{" GenRegMCP": "GenRegMCP"},
		})
		if err != nil {
			return nil, err
		}
		names = append(names, strings.TrimSpace(lines[0]))
		tabs = append(tabs, t)
	}
	return tables.NewMulti(names, tabs)
}

func CTS(raw *RawReport) (*tables.Table, error) {
	return parseCSV(raw.Text(), csvSpec{
		skipHead: 2,
		schema: schema{
			"CASEAPPROVALDATE": ts(estTimestamp),
			"SOLUTIONTIME":     ts(estTimestamp),
			"PJMFORECASTEDLMP": f64(),
		},
	})
}

func CombinedWindSolar(raw *RawReport) (*tables.Table, error) {
	return parseCSV(raw.Text(), csvSpec{
		skipHead: 2,
		schema: cols(
			schema{
				"ForecastDateTimeEST": ts(estTimestamp),
				"ActualDateTimeEST":   ts(estTimestamp),
			},
			i64(),
			"ForecastHourEndingEST", "ForecastWindValue", "ForecastSolarValue",
			"ActualHourEndingEST", "ActualWindValue", "ActualSolarValue",
		),
	})
}

func Wind(raw *RawReport) (*tables.Table, error) {
	return parseCSV(raw.Text(), csvSpec{
		skipHead: 2,
		schema: cols(
			schema{
				"ForecastDateTimeEST": ts(estTimestamp),
				"ActualDateTimeEST":   ts(estTimestamp),
				"ForecastValue":       f64(),
				"ActualValue":         f64(),
			},
			i64(),
			"ForecastHourEndingEST", "ActualHourEndingEST",
		),
	})
}

func Solar(raw *RawReport) (*tables.Table, error) {
	return Wind(raw)
}

// forecastTable covers the four hourly forecast and actual JSON feeds, which
// share one record layout.
func forecastTable(raw *RawReport, key string) (*tables.Table, error) {
	rows, err := jsonRows(raw.Body, key)
	if err != nil {
		return nil, err
	}
	return jsonTable(rows,
		[]string{"DateTimeEST", "HourEndingEST", "Value"},
		schema{
			"DateTimeEST":   ts(estTimestamp),
			"HourEndingEST": i64(),
			"Value":         f64(),
		})
}

func WindForecast(raw *RawReport) (*tables.Table, error)  { return forecastTable(raw, "Forecast") }
func SolarForecast(raw *RawReport) (*tables.Table, error) { return forecastTable(raw, "Forecast") }
func WindActual(raw *RawReport) (*tables.Table, error)    { return forecastTable(raw, "instance") }
func SolarActual(raw *RawReport) (*tables.Table, error)   { return forecastTable(raw, "instance") }

func ImportTotal5(raw *RawReport) (*tables.Table, error) {
	rows, err := jsonRows(raw.Body, "")
	if err != nil {
		return nil, err
	}
	return jsonTable(rows,
		[]string{"Time", "Value"},
		schema{
			"Time":  ts(estTimestamp),
			"Value": f64(),
		})
}

func ExanteLMP(raw *RawReport) (*tables.Table, error) {
	return parseCSV(raw.Text(), csvSpec{
		skipHead: 2,
		schema:   cols(schema{}, f64(), "LMP", "Loss", "Congestion"),
	})
}

// LMPConsolidatedTable repeats the LMP, MLC and MCC headers once per market;
// repeated headers get a positional suffix so the table keeps them apart.
func LMPConsolidatedTable(raw *RawReport) (*tables.Table, error) {
	data, err := trimLines(raw.Text(), 3, 0)
	if err != nil {
		return nil, err
	}
	lines := splitLines(data)
	fields := strings.Split(lines[0], ",")
	seen := map[string]int{}
	for i, f := range fields {
		if n := seen[f]; n > 0 {
			fields[i] = f + "." + strconv.Itoa(n)
		}
		seen[f]++
	}
	lines[0] = strings.Join(fields, ",")

	return parseCSV(strings.Join(lines, "\n"), csvSpec{
		schema: cols(schema{},
			f64(),
			"LMP", "MLC", "MCC", "REGMCP", "REGMILEAGEMCP", "SPINMCP",
			"SUPPMCP", "STRMCP", "RCUPMCP", "RCDOWNMCP",
			"LMP.1", "MLC.1", "MCC.1", "LMP.2", "MLC.2", "MCC.2",
			"LMP.3", "MLC.3", "MCC.3",
		),
	})
}

// nsiSchema types the net scheduled interchange feeds, which list one MW
// column per neighboring area.
func nsiSchema() schema {
	return cols(
		schema{"timestamp": ts(plainTimestamp)},
		i64(),
		"AEC", "AECI", "CSWS", "GLHB", "LGEE", "MHEB", "MISO", "OKGE",
		"ONT", "PJM", "SOCO", "SPA", "SWPP", "TVA", "WAUE",
	)
}

func NSI1(raw *RawReport) (*tables.Table, error) {
	return parseCSV(raw.Text(), csvSpec{skipHead: 2, schema: nsiSchema()})
}

func NSI5(raw *RawReport) (*tables.Table, error) {
	return parseCSV(raw.Text(), csvSpec{skipHead: 2, schema: nsiSchema()})
}

func NSI1MISO(raw *RawReport) (*tables.Table, error) {
	return parseCSV(raw.Text(), csvSpec{
		skipHead: 2,
		schema: schema{
			"timestamp": ts(plainTimestamp),
			"NSI":       i64(),
		},
	})
}

func NSI5MISO(raw *RawReport) (*tables.Table, error) {
	return NSI1MISO(raw)
}

func ReserveBindingConstraints(raw *RawReport) (*tables.Table, error) {
	return parseCSV(raw.Text(), csvSpec{
		skipHead: 2,
		schema: schema{
			"Period": ts(isoTimestamp),
			"Price":  f64(),
		},
	})
}

func RealTimeBindingConstraints(raw *RawReport) (*tables.Table, error) {
	return parseCSV(raw.Text(), csvSpec{
		skipHead: 2,
		schema: cols(
			schema{
				"Period": ts(isoTimestamp),
				"Price":  f64(),
			},
			i64(), "OVERRIDE", "BP1", "PC1", "BP2", "PC2",
		),
	})
}

func RealTimeBindingSRPBConstraints(raw *RawReport) (*tables.Table, error) {
	return parseCSV(raw.Text(), csvSpec{
		skipHead: 2,
		schema: cols(
			schema{
				"Period": ts(isoTimestamp),
				"Price":  f64(),
			},
			i64(), "OVERRIDE", "BP1", "PC1", "BP2", "PC2", "BP3", "PC3", "BP4", "PC4",
		),
	})
}

func RSG(raw *RawReport) (*tables.Table, error) {
	return parseCSV(raw.Text(), csvSpec{
		skipHead: 2,
		schema: schema{
			"MKT_INT_END_EST": ts("2006-01-02 15:04:05 PM"),
			"TOTAL_ECON_MAX":  f64(),
		},
	})
}

func NAI(raw *RawReport) (*tables.Table, error) {
	return parseCSV(raw.Text(), csvSpec{
		skipHead: 2,
		schema:   schema{"Value": f64()},
	})
}

func RegionalDirectionalTransfer(raw *RawReport) (*tables.Table, error) {
	return parseCSV(raw.Text(), csvSpec{
		skipHead: 2,
		schema: cols(
			schema{"INTERVALEST": ts("2006-01-02 15:04:05 PM")},
			i64(),
			"NORTH_SOUTH_LIMIT", "SOUTH_NORTH_LIMIT", "RAW_MW", "UDSFLOW_MW",
		),
		rename: map[string]string{" UDSFLOW_MW": "UDSFLOW_MW"},
	})
}

func GenerationOutages(raw *RawReport) (*tables.Table, error) {
	return parseCSV(raw.Text(), csvSpec{
		skipHead: 2,
		schema: cols(
			schema{"OutageDate": ts("2006-01-02 15:04:05 PM")},
			i64(),
			"Unplanned", "Planned", "Forced", "Derated",
		),
	})
}

// TotalLoad stacks three fixed-position sections: cleared demand, the
// medium-term hourly forecast and the five-minute actual load.
func TotalLoad(raw *RawReport) (*tables.Table, error) {
	lines := splitLines(raw.Text())
	if len(lines) < 56 {
		return nil, apperrors.New(apperrors.KindParseShape,
			"expected at least 56 lines of stacked load sections, found %d", len(lines))
	}

	cleared, err := parseCSV(strings.Join(lines[3:28], "\n"), csvSpec{
		schema: schema{
			"Load_Hour":  i64(),
			"Load_Value": f64(),
		},
	})
	if err != nil {
		return nil, err
	}
	forecast, err := parseCSV(strings.Join(lines[29:54], "\n"), csvSpec{
		schema: schema{
			"Hour_End":      i64(),
			"Load_Forecast": f64(),
		},
	})
	if err != nil {
		return nil, err
	}
	fiveMin, err := parseCSV(strings.Join(lines[55:], "\n"), csvSpec{
		schema: schema{
			"Load_Time":  ts("15:04"),
			"Load_Value": f64(),
		},
	})
	if err != nil {
		return nil, err
	}

	return tables.NewMulti(
		[]string{"ClearedMW", "MediumTermLoadForecast", "FiveMinTotalLoad"},
		[]*tables.Table{cleared, forecast, fiveMin},
	)
}

// APIVersion parses the version probe, a single JSON object.
func APIVersion(raw *RawReport) (*tables.Table, error) {
	rows, err := jsonRows(raw.Body, "")
	if err == nil {
		return jsonTable(rows, []string{"Semantic"}, schema{})
	}
	// Most vintages publish one bare object rather than an array.
	single, serr := jsonObjectRow(raw.Body)
	if serr != nil {
		return nil, serr
	}
	return jsonTable([]map[string]any{single}, []string{"Semantic"}, schema{})
}
