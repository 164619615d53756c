package report

import (
	"sort"
	"sync"
	"time"

	apperrors "misoreports/internal/errors"
	"misoreports/internal/parsers"
)

// FileType names the payload format a report is fetched and parsed as.
type FileType string

const (
	TypeCSV  FileType = "csv"
	TypeXLSX FileType = "xlsx"
	TypeXLS  FileType = "xls"
	TypeZip  FileType = "zip"
	TypeJSON FileType = "json"
	TypeXML  FileType = "xml"
	TypePDF  FileType = "pdf"
)

// Report is one registry entry: the builder that forms its URL, the payload
// format it is fetched as, the parser applied to the raw body, and a
// documented example URL reproducible from ExampleDate.
type Report struct {
	Builder     Builder
	Type        FileType
	Parse       parsers.Func
	ExampleURL  string
	ExampleDate *time.Time
}

func date(year int, month time.Month, day int) *time.Time {
	t := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	return &t
}

// brokerCSV builds a data-broker entry whose canonical format is delimited
// text.
func brokerCSV(target string) Builder {
	return Builder{
		Kind:      DataBroker,
		Target:    target,
		Supported: []string{"csv", "xml", "json"},
		Default:   "csv",
	}
}

// brokerJSON builds a data-broker entry whose canonical format is JSON.
func brokerJSON(target string) Builder {
	return Builder{
		Kind:      DataBroker,
		Target:    target,
		Supported: []string{"csv", "xml", "json"},
		Default:   "json",
	}
}

// market builds a published-report entry. The first extension is the
// default.
func market(target string, gen GeneratorKind, extensions ...string) Builder {
	return Builder{
		Kind:      MarketReports,
		Target:    target,
		Supported: extensions,
		Default:   extensions[0],
		Generator: gen,
	}
}

const (
	brokerURL   = "https://api.misoenergy.org/MISORTWDDataBroker/DataBrokerServices.asmx?messageType="
	reporterURL = "https://api.misoenergy.org/MISORTWDBIReporter/Reporter.asmx?messageType="
	docsURL     = "https://docs.misoenergy.org/marketreports/"
)

// registry holds every known report. Built once, never mutated; concurrent
// lookups after that are safe.
var registry = sync.OnceValue(buildRegistry)

func buildRegistry() map[string]Report {
	return map[string]Report{
		// Real-time data broker, delimited feeds.
		"getapiversion": {
			Builder: Builder{
				Kind:      DataBroker,
				Target:    "getapiversion",
				Supported: []string{"json"},
				Default:   "json",
			},
			Type:       TypeJSON,
			Parse:      parsers.APIVersion,
			ExampleURL: brokerURL + "getapiversion&returnType=json",
		},
		"getfuelmix": {
			Builder:    brokerCSV("getfuelmix"),
			Type:       TypeCSV,
			Parse:      parsers.FuelMix,
			ExampleURL: brokerURL + "getfuelmix&returnType=csv",
		},
		"getace": {
			Builder:    brokerCSV("getace"),
			Type:       TypeCSV,
			Parse:      parsers.ACE,
			ExampleURL: brokerURL + "getace&returnType=csv",
		},
		"getAncillaryServicesMCP": {
			Builder:    brokerCSV("getAncillaryServicesMCP"),
			Type:       TypeCSV,
			Parse:      parsers.AncillaryServicesMCP,
			ExampleURL: brokerURL + "getAncillaryServicesMCP&returnType=csv",
		},
		"getcts": {
			Builder:    brokerCSV("getcts"),
			Type:       TypeCSV,
			Parse:      parsers.CTS,
			ExampleURL: brokerURL + "getcts&returnType=csv",
		},
		"getcombinedwindsolar": {
			Builder:    brokerCSV("getcombinedwindsolar"),
			Type:       TypeCSV,
			Parse:      parsers.CombinedWindSolar,
			ExampleURL: brokerURL + "getcombinedwindsolar&returnType=csv",
		},
		"getWind": {
			Builder:    brokerCSV("getWind"),
			Type:       TypeCSV,
			Parse:      parsers.Wind,
			ExampleURL: brokerURL + "getWind&returnType=csv",
		},
		"getSolar": {
			Builder:    brokerCSV("getSolar"),
			Type:       TypeCSV,
			Parse:      parsers.Solar,
			ExampleURL: brokerURL + "getSolar&returnType=csv",
		},
		"getexantelmp": {
			Builder:    brokerCSV("getexantelmp"),
			Type:       TypeCSV,
			Parse:      parsers.ExanteLMP,
			ExampleURL: brokerURL + "getexantelmp&returnType=csv",
		},
		"getlmpconsolidatedtable": {
			Builder:    brokerCSV("getlmpconsolidatedtable"),
			Type:       TypeCSV,
			Parse:      parsers.LMPConsolidatedTable,
			ExampleURL: brokerURL + "getlmpconsolidatedtable&returnType=csv",
		},
		"getnsi1": {
			Builder:    brokerCSV("getnsi1"),
			Type:       TypeCSV,
			Parse:      parsers.NSI1,
			ExampleURL: brokerURL + "getnsi1&returnType=csv",
		},
		"getnsi5": {
			Builder:    brokerCSV("getnsi5"),
			Type:       TypeCSV,
			Parse:      parsers.NSI5,
			ExampleURL: brokerURL + "getnsi5&returnType=csv",
		},
		"getnsi1miso": {
			Builder:    brokerCSV("getnsi1miso"),
			Type:       TypeCSV,
			Parse:      parsers.NSI1MISO,
			ExampleURL: brokerURL + "getnsi1miso&returnType=csv",
		},
		"getnsi5miso": {
			Builder:    brokerCSV("getnsi5miso"),
			Type:       TypeCSV,
			Parse:      parsers.NSI5MISO,
			ExampleURL: brokerURL + "getnsi5miso&returnType=csv",
		},
		"getreservebindingconstraints": {
			Builder:    brokerCSV("getreservebindingconstraints"),
			Type:       TypeCSV,
			Parse:      parsers.ReserveBindingConstraints,
			ExampleURL: brokerURL + "getreservebindingconstraints&returnType=csv",
		},
		"getrealtimebindingconstraints": {
			Builder:    brokerCSV("getrealtimebindingconstraints"),
			Type:       TypeCSV,
			Parse:      parsers.RealTimeBindingConstraints,
			ExampleURL: brokerURL + "getrealtimebindingconstraints&returnType=csv",
		},
		"getrealtimebindingsrpbconstraints": {
			Builder:    brokerCSV("getrealtimebindingsrpbconstraints"),
			Type:       TypeCSV,
			Parse:      parsers.RealTimeBindingSRPBConstraints,
			ExampleURL: brokerURL + "getrealtimebindingsrpbconstraints&returnType=csv",
		},
		"gettotalload": {
			Builder:    brokerCSV("gettotalload"),
			Type:       TypeCSV,
			Parse:      parsers.TotalLoad,
			ExampleURL: brokerURL + "gettotalload&returnType=csv",
		},
		"getRSG": {
			Builder:    brokerCSV("getRSG"),
			Type:       TypeCSV,
			Parse:      parsers.RSG,
			ExampleURL: brokerURL + "getRSG&returnType=csv",
		},
		"getNAI": {
			Builder:    brokerCSV("getNAI"),
			Type:       TypeCSV,
			Parse:      parsers.NAI,
			ExampleURL: brokerURL + "getNAI&returnType=csv",
		},
		"getregionaldirectionaltransfer": {
			Builder:    brokerCSV("getregionaldirectionaltransfer"),
			Type:       TypeCSV,
			Parse:      parsers.RegionalDirectionalTransfer,
			ExampleURL: brokerURL + "getregionaldirectionaltransfer&returnType=csv",
		},
		"getgenerationoutagesplusminusfivedays": {
			Builder:    brokerCSV("getgenerationoutagesplusminusfivedays"),
			Type:       TypeCSV,
			Parse:      parsers.GenerationOutages,
			ExampleURL: brokerURL + "getgenerationoutagesplusminusfivedays&returnType=csv",
		},

		// Real-time data broker, JSON feeds.
		"getWindForecast": {
			Builder:    brokerJSON("getWindForecast"),
			Type:       TypeJSON,
			Parse:      parsers.WindForecast,
			ExampleURL: brokerURL + "getWindForecast&returnType=json",
		},
		"getSolarForecast": {
			Builder:    brokerJSON("getSolarForecast"),
			Type:       TypeJSON,
			Parse:      parsers.SolarForecast,
			ExampleURL: brokerURL + "getSolarForecast&returnType=json",
		},
		"getWindActual": {
			Builder:    brokerJSON("getWindActual"),
			Type:       TypeJSON,
			Parse:      parsers.WindActual,
			ExampleURL: brokerURL + "getWindActual&returnType=json",
		},
		"getSolarActual": {
			Builder:    brokerJSON("getSolarActual"),
			Type:       TypeJSON,
			Parse:      parsers.SolarActual,
			ExampleURL: brokerURL + "getSolarActual&returnType=json",
		},
		"getimporttotal5": {
			Builder: Builder{
				Kind:      DataBroker,
				Target:    "getimporttotal5",
				Supported: []string{"json"},
				Default:   "json",
			},
			Type:       TypeJSON,
			Parse:      parsers.ImportTotal5,
			ExampleURL: brokerURL + "getimporttotal5&returnType=json",
		},

		// Alternate broker endpoint.
		"currentinterval": {
			Builder: Builder{
				Kind:      BIReporter,
				Target:    "currentinterval",
				Supported: []string{"csv"},
				Default:   "csv",
			},
			Type:       TypeCSV,
			Parse:      parsers.CurrentInterval,
			ExampleURL: reporterURL + "currentinterval&returnType=csv",
		},

		// Daily nodal price files.
		"da_exante_lmp": {
			Builder:     market("da_exante_lmp", GenYYYYMMDDPrefix, "csv"),
			Type:        TypeCSV,
			Parse:       parsers.DAExanteLMP,
			ExampleURL:  docsURL + "20241026_da_exante_lmp.csv",
			ExampleDate: date(2024, time.October, 26),
		},
		"da_expost_lmp": {
			Builder:     market("da_expost_lmp", GenYYYYMMDDPrefix, "csv"),
			Type:        TypeCSV,
			Parse:       parsers.DAExpostLMP,
			ExampleURL:  docsURL + "20241026_da_expost_lmp.csv",
			ExampleDate: date(2024, time.October, 26),
		},
		"rt_lmp_final": {
			Builder:     market("rt_lmp_final", GenYYYYMMDDPrefix, "csv"),
			Type:        TypeCSV,
			Parse:       parsers.RTLMPFinal,
			ExampleURL:  docsURL + "20241026_rt_lmp_final.csv",
			ExampleDate: date(2024, time.October, 26),
		},
		"rt_lmp_prelim": {
			Builder:     market("rt_lmp_prelim", GenYYYYMMDDPrefix, "csv"),
			Type:        TypeCSV,
			Parse:       parsers.RTLMPPrelim,
			ExampleURL:  docsURL + "20241026_rt_lmp_prelim.csv",
			ExampleDate: date(2024, time.October, 26),
		},
		"5min_exante_lmp": {
			Builder:     market("5min_exante_lmp", GenYYYYMMDDPrefix, "xlsx"),
			Type:        TypeXLSX,
			Parse:       parsers.FiveMinExanteLMP,
			ExampleURL:  docsURL + "20241026_5min_exante_lmp.xlsx",
			ExampleDate: date(2024, time.October, 26),
		},

		// Daily binding constraint and pricing files.
		"da_bc": {
			Builder:     market("da_bc", GenYYYYMMDDPrefix, "xlsx"),
			Type:        TypeXLSX,
			Parse:       parsers.DABC,
			ExampleURL:  docsURL + "20241026_da_bc.xlsx",
			ExampleDate: date(2024, time.October, 26),
		},
		"da_pbc": {
			Builder:     market("da_pbc", GenYYYYMMDDPrefix, "csv"),
			Type:        TypeCSV,
			Parse:       parsers.DAPBC,
			ExampleURL:  docsURL + "20241026_da_pbc.csv",
			ExampleDate: date(2024, time.October, 26),
		},
		"da_pr": {
			Builder:     market("da_pr", GenYYYYMMDDPrefix, "xlsx"),
			Type:        TypeXLSX,
			Parse:       parsers.DAPR,
			ExampleURL:  docsURL + "20241026_da_pr.xlsx",
			ExampleDate: date(2024, time.October, 26),
		},
		"cpnode_reszone": {
			Builder:     market("cpnode_reszone", GenYYYYMMDDPrefix, "xlsx"),
			Type:        TypeXLSX,
			Parse:       parsers.CPNodeResZone,
			ExampleURL:  docsURL + "20241026_cpnode_reszone.xlsx",
			ExampleDate: date(2024, time.October, 26),
		},
		"df_al": {
			Builder:     market("df_al", GenYYYYMMDDPrefix, "xls"),
			Type:        TypeXLS,
			Parse:       parsers.DFAL,
			ExampleURL:  docsURL + "20241026_df_al.xls",
			ExampleDate: date(2024, time.October, 26),
		},
		"rf_al": {
			Builder:     market("rf_al", GenYYYYMMDDPrefix, "xls"),
			Type:        TypeXLS,
			Parse:       parsers.RFAL,
			ExampleURL:  docsURL + "20241026_rf_al.xls",
			ExampleDate: date(2024, time.October, 26),
		},

		// Ninety-day delayed offer archives.
		"da_co": {
			Builder:     market("da_co", GenYYYYMMDDPrefix, "zip"),
			Type:        TypeZip,
			Parse:       parsers.DACO,
			ExampleURL:  docsURL + "20240726_da_co.zip",
			ExampleDate: date(2024, time.July, 26),
		},
		"rt_co": {
			Builder:     market("rt_co", GenYYYYMMDDPrefix, "zip"),
			Type:        TypeZip,
			Parse:       parsers.RTCO,
			ExampleURL:  docsURL + "20240726_rt_co.zip",
			ExampleDate: date(2024, time.July, 26),
		},

		// Monthly workbook reports.
		"rt_expost_str_5min_mcp": {
			Builder:     market("rt_expost_str_5min_mcp", GenYYYYMMPrefix, "xlsx"),
			Type:        TypeXLSX,
			Parse:       parsers.RTExpostSTR5MinMCP,
			ExampleURL:  docsURL + "202410_rt_expost_str_5min_mcp.xlsx",
			ExampleDate: date(2024, time.October, 1),
		},
		"rt_expost_str_mcp": {
			Builder:     market("rt_expost_str_mcp", GenYYYYMMPrefix, "xlsx"),
			Type:        TypeXLSX,
			Parse:       parsers.RTExpostSTRMCP,
			ExampleURL:  docsURL + "202410_rt_expost_str_mcp.xlsx",
			ExampleDate: date(2024, time.October, 1),
		},
		"sr_ctsl": {
			Builder:     market("sr_ctsl", GenYYYYMMPrefix, "pdf"),
			Type:        TypePDF,
			Parse:       parsers.SRCTSL,
			ExampleURL:  docsURL + "202410_sr_ctsl.pdf",
			ExampleDate: date(2024, time.October, 1),
		},
		"ccf_co": {
			Builder:     market("ccf_co", GenYYYYMMSuffix, "csv"),
			Type:        TypeCSV,
			Parse:       parsers.CCFCO,
			ExampleURL:  docsURL + "ccf_co_202410.csv",
			ExampleDate: date(2024, time.October, 1),
		},

		// Monthly market settlement workbooks.
		"ms_vlr_srw": {
			Builder:     market("ms_vlr_srw", GenYYYYMMPrefix, "xlsx"),
			Type:        TypeXLSX,
			Parse:       parsers.MSVLRSRW,
			ExampleURL:  docsURL + "202410_ms_vlr_srw.xlsx",
			ExampleDate: date(2024, time.October, 1),
		},
		"ms_rsg_srw": {
			Builder:     market("ms_rsg_srw", GenYYYYMMPrefix, "xlsx"),
			Type:        TypeXLSX,
			Parse:       parsers.MSRSGSRW,
			ExampleURL:  docsURL + "202410_ms_rsg_srw.xlsx",
			ExampleDate: date(2024, time.October, 1),
		},
		"ms_rnu_srw": {
			Builder:     market("ms_rnu_srw", GenYYYYMMPrefix, "xlsx"),
			Type:        TypeXLSX,
			Parse:       parsers.MSRNUSRW,
			ExampleURL:  docsURL + "202410_ms_rnu_srw.xlsx",
			ExampleDate: date(2024, time.October, 1),
		},
		"ms_ri_srw": {
			Builder:     market("ms_ri_srw", GenYYYYMMPrefix, "xlsx"),
			Type:        TypeXLSX,
			Parse:       parsers.MSRISRW,
			ExampleURL:  docsURL + "202410_ms_ri_srw.xlsx",
			ExampleDate: date(2024, time.October, 1),
		},
		"ms_ecf_srw": {
			Builder:     market("ms_ecf_srw", GenYYYYMMPrefix, "xlsx"),
			Type:        TypeXLSX,
			Parse:       parsers.MSECFSRW,
			ExampleURL:  docsURL + "202410_ms_ecf_srw.xlsx",
			ExampleDate: date(2024, time.October, 1),
		},

		// Dated archive and workbook files.
		"DA_Load_EPNodes": {
			Builder:     market("DA_Load_EPNodes", GenYYYYMMDDSuffix, "zip"),
			Type:        TypeZip,
			Parse:       parsers.DALoadEPNodes,
			ExampleURL:  docsURL + "DA_Load_EPNodes_20241021.zip",
			ExampleDate: date(2024, time.October, 21),
		},
		"RT_Load_EPNodes": {
			Builder:     market("RT_Load_EPNodes", GenYYYYMMDDSuffix, "zip"),
			Type:        TypeZip,
			Parse:       parsers.RTLoadEPNodes,
			ExampleURL:  docsURL + "RT_Load_EPNodes_20241021.zip",
			ExampleDate: date(2024, time.October, 21),
		},
		"5MIN_LMP": {
			Builder:     market("5MIN_LMP", GenYYYYMMDDSuffix, "zip"),
			Type:        TypeZip,
			Parse:       parsers.FiveMinLMP,
			ExampleURL:  docsURL + "5MIN_LMP_20241021.zip",
			ExampleDate: date(2024, time.October, 21),
		},
		"bids_cb": {
			Builder:     market("bids_cb", GenYYYYMMDDSuffix, "zip"),
			Type:        TypeZip,
			Parse:       parsers.BidsCB,
			ExampleURL:  docsURL + "bids_cb_20241021.zip",
			ExampleDate: date(2024, time.October, 21),
		},
		"Dead_Node_Report": {
			Builder:     market("Dead_Node_Report", GenYYYYMMDDSuffix, "xlsx"),
			Type:        TypeXLSX,
			Parse:       parsers.DeadNodeReport,
			ExampleURL:  docsURL + "Dead_Node_Report_20241021.xlsx",
			ExampleDate: date(2024, time.October, 21),
		},

		// Quarterly nodal price archives.
		"DA_LMPs": {
			Builder:     market("DA_LMPs", GenMonthNameRangePrefix, "zip"),
			Type:        TypeZip,
			Parse:       parsers.DALMPs,
			ExampleURL:  docsURL + "2024-Jul-Sep_DA_LMPs.zip",
			ExampleDate: date(2024, time.July, 1),
		},
		"RT_LMPs": {
			Builder:     market("RT_LMPs", GenMonthNameRangePrefix, "zip"),
			Type:        TypeZip,
			Parse:       parsers.RTLMPs,
			ExampleURL:  docsURL + "2024-Jul-Sep_RT_LMPs.zip",
			ExampleDate: date(2024, time.July, 1),
		},

		// Yearly historical files.
		"da_bc_HIST": {
			Builder:     market("da_bc_HIST", GenYYYYPrefix, "csv"),
			Type:        TypeCSV,
			Parse:       parsers.DABCHist,
			ExampleURL:  docsURL + "2024_da_bc_HIST.csv",
			ExampleDate: date(2024, time.January, 1),
		},
		"rt_bc_HIST": {
			Builder:     market("rt_bc_HIST", GenYYYYPrefix, "csv"),
			Type:        TypeCSV,
			Parse:       parsers.RTBCHist,
			ExampleURL:  docsURL + "2024_rt_bc_HIST.csv",
			ExampleDate: date(2024, time.January, 1),
		},
		"sr_tcdc_group2": {
			Builder:     market("sr_tcdc_group2", GenYYYYPrefix, "csv"),
			Type:        TypeCSV,
			Parse:       parsers.SRTCDCGroup2,
			ExampleURL:  docsURL + "2024_sr_tcdc_group2.csv",
			ExampleDate: date(2024, time.January, 1),
		},
		"ms_vlr_HIST": {
			Builder:     market("ms_vlr_HIST", GenYYYYSuffix, "csv"),
			Type:        TypeCSV,
			Parse:       parsers.MSVLRHist,
			ExampleURL:  docsURL + "ms_vlr_HIST_2024.csv",
			ExampleDate: date(2024, time.January, 1),
		},
		"M2M_Settlement_srw": {
			Builder:     market("M2M_Settlement_srw", GenYYYYSuffix, "csv"),
			Type:        TypeCSV,
			Parse:       parsers.M2MSettlementSRW,
			ExampleURL:  docsURL + "M2M_Settlement_srw_2024.csv",
			ExampleDate: date(2024, time.January, 1),
		},
		"da_M2M_Settlement_srw": {
			Builder:     market("da_M2M_Settlement_srw", GenYYYYSuffix, "csv"),
			Type:        TypeCSV,
			Parse:       parsers.Unimplemented("every published da_M2M_Settlement_srw file is empty so far"),
			ExampleURL:  docsURL + "da_M2M_Settlement_srw_2024.csv",
			ExampleDate: date(2024, time.January, 1),
		},
		"MM_Annual_Report": {
			Builder:     market("MM_Annual_Report", GenYYYYSuffix, "zip"),
			Type:        TypeZip,
			Parse:       parsers.Unimplemented("archive holds multiple workbooks with no single table shape"),
			ExampleURL:  docsURL + "MM_Annual_Report_2024.zip",
			ExampleDate: date(2024, time.January, 1),
		},

		// Daily dashed-date files.
		"M2M_FFE": {
			Builder:     market("M2M_FFE", GenYYYYDashMMDashDDSuffix, "CSV"),
			Type:        TypeCSV,
			Parse:       parsers.M2MFFE,
			ExampleURL:  docsURL + "M2M_FFE_2024-10-29.CSV",
			ExampleDate: date(2024, time.October, 29),
		},
		"Allocation_on_MISO_Flowgates": {
			Builder:     market("Allocation_on_MISO_Flowgates", GenYYYYDashMMDashDDSuffix, "csv"),
			Type:        TypeCSV,
			Parse:       parsers.AllocationOnMISOFlowgates,
			ExampleURL:  docsURL + "Allocation_on_MISO_Flowgates_2024-10-29.csv",
			ExampleDate: date(2024, time.October, 29),
		},

		// Legacy daily workbook with a volatile layout.
		"sr_nd_is": {
			Builder:     market("sr_nd_is", GenMMDDYYYYSuffix, "xls"),
			Type:        TypeXLS,
			Parse:       parsers.Unimplemented("workbook layout varies between publications"),
			ExampleURL:  docsURL + "sr_nd_is_10212024.xls",
			ExampleDate: date(2024, time.October, 21),
		},

		// Day-of-year XML feeds.
		"MISOdaily": {
			Builder:     market("MISOdaily", GenDayOfYearYYYY, "xml"),
			Type:        TypeXML,
			Parse:       parsers.MISODaily,
			ExampleURL:  docsURL + "MISOdaily3042024.xml",
			ExampleDate: date(2024, time.October, 30),
		},
		"MISOsamedaydemand": {
			Builder:     market("MISOsamedaydemand", GenDayOfYearYYYY, "xml"),
			Type:        TypeXML,
			Parse:       parsers.MISOSameDayDemand,
			ExampleURL:  docsURL + "MISOsamedaydemand3042024.xml",
			ExampleDate: date(2024, time.October, 30),
		},

		// Evergreen archive.
		"MARKET_SETTLEMENT_DATA_SRW": {
			Builder:    market("MARKET_SETTLEMENT_DATA_SRW", GenNoDate, "zip"),
			Type:       TypeZip,
			Parse:      parsers.MarketSettlementDataSRW,
			ExampleURL: docsURL + "MARKET_SETTLEMENT_DATA_SRW.zip",
		},
	}
}

// Lookup returns the registry entry for name.
func Lookup(name string) (Report, error) {
	r, ok := registry()[name]
	if !ok {
		return Report{}, apperrors.New(apperrors.KindUnknownReport,
			"unknown report name %q", name).ForReport(name)
	}
	return r, nil
}

// Names returns every registered report name in sorted order.
func Names() []string {
	m := registry()
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
