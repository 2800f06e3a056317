package service

import (
	"strconv"
	"time"

	"spendtrack/internal/errors"
	"spendtrack/internal/model"
)

// RangeQuery carries the raw filter parameters of a trends or breakdown
// request, before resolution.
type RangeQuery struct {
	StartDate string
	Month     string
	Year      string
}

// DateRange is a resolved [Start, End) date interval. A zero End means the
// range is open-ended.
type DateRange struct {
	Start time.Time
	End   time.Time
	// Explicit is true when the caller supplied a filter. The default
	// month-to-date range is not explicit, which triggers the empty-result
	// short-circuit instead of silently showing a stale period.
	Explicit bool
}

// ResolveDateRange turns request filter parameters into a concrete date
// range. Resolution order: start_date wins, then month+year, then the
// current month-to-date.
func ResolveDateRange(q RangeQuery, now time.Time) (DateRange, error) {
	if q.StartDate != "" {
		start, err := model.ParseDate(q.StartDate)
		if err != nil {
			return DateRange{}, errors.ErrInvalidStartDate
		}
		return DateRange{Start: start.Time, Explicit: true}, nil
	}

	if q.Month != "" && q.Year != "" {
		month, err := strconv.Atoi(q.Month)
		if err != nil {
			return DateRange{}, errors.ErrInvalidMonthYear
		}
		year, err := strconv.Atoi(q.Year)
		if err != nil {
			return DateRange{}, errors.ErrInvalidMonthYear
		}
		if month < 1 || month > 12 {
			return DateRange{}, errors.ErrInvalidMonthYear
		}

		start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
		var end time.Time
		if month == 12 {
			end = time.Date(year+1, time.January, 1, 0, 0, 0, 0, time.UTC)
		} else {
			end = time.Date(year, time.Month(month+1), 1, 0, 0, 0, 0, time.UTC)
		}
		return DateRange{Start: start, End: end, Explicit: true}, nil
	}

	// Month-to-date: first day of the current month, open-ended.
	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	return DateRange{Start: start}, nil
}

// MonthYear returns the month and year identifying the range for response
// metadata. Explicit month/year filters echo their own values via the range
// start, so this is always derived from Start.
func (r DateRange) MonthYear() (month, year int) {
	return int(r.Start.Month()), r.Start.Year()
}
