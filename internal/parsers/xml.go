package parsers

import (
	"encoding/xml"
	"strconv"
	"time"

	apperrors "misoreports/internal/errors"
	"misoreports/pkg/tables"
)

// Daily demand and interchange XML feeds. Both wrap hourly posted values in
// the same Product envelope.

type hourlyProduct struct {
	XMLName        xml.Name        `xml:"Product"`
	AccountHeaders []accountHeader `xml:"AccountHeader"`
}

type accountHeader struct {
	PostingHeaders []postingHeader `xml:"PostingHeader"`
}

type postingHeader struct {
	DataCode    string        `xml:"Data_Code,attr"`
	DataDate    string        `xml:"Data_Date,attr"`
	DataType    string        `xml:"Data_Type,attr"`
	PostingType string        `xml:"PostingType,attr"`
	Values      []hourlyValue `xml:"HourlyIndicatedValue"`
}

type hourlyValue struct {
	Hour        string `xml:"Hour,attr"`
	PostedValue string `xml:"PostedValue,attr"`
	UTCOffset   string `xml:"UTCOffset,attr"`
}

// parseDayOfYearDate reads the DDDYYYY stamp the feeds use, day of year
// followed by the four-digit year.
func parseDayOfYearDate(val string) (time.Time, error) {
	if len(val) < 5 {
		return time.Time{}, apperrors.New(apperrors.KindParseShape,
			"expected a day-of-year date stamp, found %q", val)
	}
	day, err := strconv.Atoi(val[:len(val)-4])
	if err != nil {
		return time.Time{}, apperrors.Wrap(apperrors.KindParseShape, err,
			"invalid day of year in %q", val)
	}
	year, err := strconv.Atoi(val[len(val)-4:])
	if err != nil {
		return time.Time{}, apperrors.Wrap(apperrors.KindParseShape, err,
			"invalid year in %q", val)
	}
	return time.Date(year, time.January, day, 0, 0, 0, 0, time.UTC), nil
}

// hourlyValueTable flattens the posting envelope into one row per hourly
// value.
func hourlyValueTable(body []byte) (*tables.Table, error) {
	var doc hourlyProduct
	if err := xml.Unmarshal(body, &doc); err != nil {
		return nil, apperrors.Wrap(apperrors.KindParseShape, err, "cannot decode XML envelope")
	}

	t := &tables.Table{
		Columns: []tables.Column{
			{Name: "Data_Code", Type: tables.String},
			{Name: "Data_Date", Type: tables.Time},
			{Name: "Data_Type", Type: tables.String},
			{Name: "PostingType", Type: tables.String},
			{Name: "Hour", Type: tables.Int},
			{Name: "PostedValue", Type: tables.Int},
			{Name: "UTCOffset", Type: tables.Int},
		},
	}
	for _, acct := range doc.AccountHeaders {
		for _, posting := range acct.PostingHeaders {
			date, err := parseDayOfYearDate(posting.DataDate)
			if err != nil {
				return nil, err
			}
			for _, v := range posting.Values {
				hour, err := strconv.ParseInt(v.Hour, 10, 64)
				if err != nil {
					return nil, apperrors.Wrap(apperrors.KindParseShape, err,
						"invalid Hour attribute %q", v.Hour)
				}
				posted, err := strconv.ParseInt(v.PostedValue, 10, 64)
				if err != nil {
					return nil, apperrors.Wrap(apperrors.KindParseShape, err,
						"invalid PostedValue attribute %q", v.PostedValue)
				}
				offset, err := strconv.ParseInt(v.UTCOffset, 10, 64)
				if err != nil {
					return nil, apperrors.Wrap(apperrors.KindParseShape, err,
						"invalid UTCOffset attribute %q", v.UTCOffset)
				}
				t.Rows = append(t.Rows, []any{
					posting.DataCode, date, posting.DataType, posting.PostingType,
					hour, posted, offset,
				})
			}
		}
	}
	return t, nil
}

func MISODaily(raw *RawReport) (*tables.Table, error) {
	return hourlyValueTable(raw.Body)
}

func MISOSameDayDemand(raw *RawReport) (*tables.Table, error) {
	return hourlyValueTable(raw.Body)
}
