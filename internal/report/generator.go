// Package report implements the URL-construction core: date-encoding URL
// generators, the per-generator date increments, the three URL builder
// variants, and the immutable report registry.
package report

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	apperrors "misoreports/internal/errors"
)

// marketReportsBase is the document host for dated market reports.
const marketReportsBase = "https://docs.misoenergy.org/marketreports/"

// extensionPlaceholder is the sentinel token generators leave in place of
// the file extension. A random per-process token keeps it from colliding
// with anything a target name could contain.
var extensionPlaceholder = uuid.NewString()

// GeneratorKind tags one of the URL generator variants. Generators differ
// only in how the date is encoded and whether it prefixes or suffixes the
// report target.
type GeneratorKind int

const (
	// GenUnset is the zero value; builders without a generator keep it.
	GenUnset GeneratorKind = iota
	// GenYYYYMMDDPrefix encodes 20241026_target.
	GenYYYYMMDDPrefix
	// GenYYYYMMPrefix encodes 202410_target.
	GenYYYYMMPrefix
	// GenYYYYPrefix encodes 2024_target.
	GenYYYYPrefix
	// GenYYYYMMDDSuffix encodes target_20241021.
	GenYYYYMMDDSuffix
	// GenYYYYMMSuffix encodes target_202410.
	GenYYYYMMSuffix
	// GenYYYYSuffix encodes target_2024.
	GenYYYYSuffix
	// GenYYYYDashMMDashDDSuffix encodes target_2024-10-29.
	GenYYYYDashMMDashDDSuffix
	// GenMMDDYYYYSuffix encodes target_10212024.
	GenMMDDYYYYSuffix
	// GenDayOfYearYYYY encodes target3042024: zero-padded day of year and
	// year appended with no separator.
	GenDayOfYearYYYY
	// GenMonthNameRangePrefix encodes 2024-Jul-Sep_target: the reference
	// month and the month two steps later by name. The range wraps across
	// the year boundary by month name only (2024-Nov-Jan).
	GenMonthNameRangePrefix
	// GenNoDate is the evergreen single-URL variant.
	GenNoDate
)

// String returns the generator name used in error messages.
func (k GeneratorKind) String() string {
	switch k {
	case GenYYYYMMDDPrefix:
		return "yyyymmdd_prefix"
	case GenYYYYMMPrefix:
		return "yyyymm_prefix"
	case GenYYYYPrefix:
		return "yyyy_prefix"
	case GenYYYYMMDDSuffix:
		return "yyyymmdd_suffix"
	case GenYYYYMMSuffix:
		return "yyyymm_suffix"
	case GenYYYYSuffix:
		return "yyyy_suffix"
	case GenYYYYDashMMDashDDSuffix:
		return "yyyy_mm_dd_suffix"
	case GenMMDDYYYYSuffix:
		return "mmddyyyy_suffix"
	case GenDayOfYearYYYY:
		return "day_of_year_yyyy"
	case GenMonthNameRangePrefix:
		return "month_name_range_prefix"
	case GenNoDate:
		return "no_date"
	default:
		return fmt.Sprintf("generator(%d)", int(k))
	}
}

// URL produces the report URL for the given date and target, still holding
// the extension placeholder. Every variant except GenNoDate fails when date
// is nil.
func (k GeneratorKind) URL(date *time.Time, target string) (string, error) {
	if k == GenNoDate {
		return marketReportsBase + target + "." + extensionPlaceholder, nil
	}
	if date == nil {
		return "", apperrors.New(apperrors.KindDateRequired,
			"generator %s for target %q requires a date", k, target)
	}

	var token string
	switch k {
	case GenYYYYMMDDPrefix, GenYYYYMMDDSuffix:
		token = date.Format("20060102")
	case GenYYYYMMPrefix, GenYYYYMMSuffix:
		token = date.Format("200601")
	case GenYYYYPrefix, GenYYYYSuffix:
		token = date.Format("2006")
	case GenYYYYDashMMDashDDSuffix:
		token = date.Format("2006-01-02")
	case GenMMDDYYYYSuffix:
		token = date.Format("01022006")
	case GenDayOfYearYYYY:
		token = fmt.Sprintf("%03d%s", date.YearDay(), date.Format("2006"))
	case GenMonthNameRangePrefix:
		token = monthNameRange(*date)
	default:
		return "", apperrors.New(apperrors.KindNoIncrement,
			"generator %s has no URL format registered", k)
	}

	switch k {
	case GenYYYYMMDDPrefix, GenYYYYMMPrefix, GenYYYYPrefix, GenMonthNameRangePrefix:
		return marketReportsBase + token + "_" + target + "." + extensionPlaceholder, nil
	case GenDayOfYearYYYY:
		return marketReportsBase + target + token + "." + extensionPlaceholder, nil
	default:
		return marketReportsBase + target + "_" + token + "." + extensionPlaceholder, nil
	}
}

// monthNameRange labels the reference month through the month two steps
// ahead, e.g. 2024-Jul-Sep. The year label stays the reference year even
// when the later month wraps into the next year (2024-Nov-Jan).
func monthNameRange(date time.Time) string {
	later := time.Date(date.Year(), date.Month()+2, 1, 0, 0, 0, 0, date.Location())
	return date.Format("2006") + "-" + date.Format("Jan") + "-" + later.Format("Jan")
}
