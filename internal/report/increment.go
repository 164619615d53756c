package report

import (
	"time"

	apperrors "misoreports/internal/errors"
)

// Increment is the calendar step between consecutive publications of a
// report. Exactly one increment is registered per generator kind.
type Increment struct {
	Days   int
	Months int
	Years  int
}

// generatorIncrements maps each generator to its publication cycle. A kind
// missing here makes stepping fail loudly: it marks a generator that was
// added without deciding its cycle, not a user mistake.
var generatorIncrements = map[GeneratorKind]Increment{
	GenYYYYMMDDPrefix:         {Days: 1},
	GenYYYYMMDDSuffix:         {Days: 1},
	GenYYYYDashMMDashDDSuffix: {Days: 1},
	GenMMDDYYYYSuffix:         {Days: 1},
	GenDayOfYearYYYY:          {Days: 1},
	GenYYYYMMPrefix:           {Months: 1},
	GenYYYYMMSuffix:           {Months: 1},
	GenYYYYPrefix:             {Years: 1},
	GenYYYYSuffix:             {Years: 1},
	GenMonthNameRangePrefix:   {Months: 3},
	GenNoDate:                 {},
}

// Increment returns the registered publication cycle for the generator.
func (k GeneratorKind) Increment() (Increment, error) {
	inc, ok := generatorIncrements[k]
	if !ok {
		return Increment{}, apperrors.New(apperrors.KindNoIncrement,
			"generator %s has no registered date increment", k)
	}
	return inc, nil
}

// Step moves t by direction publication cycles using calendar-correct
// arithmetic: month and year steps roll day-of-month and leap years the way
// time.AddDate does.
func (inc Increment) Step(t time.Time, direction int) time.Time {
	return t.AddDate(direction*inc.Years, direction*inc.Months, direction*inc.Days)
}
