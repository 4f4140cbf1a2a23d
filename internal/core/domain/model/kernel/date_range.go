package kernel

import (
	"errors"
	"fmt"
	"time"

	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

// DateLayout is the calendar-day format accepted for range bounds.
const DateLayout = time.DateOnly

// ErrDateRangeIsNotConstructed is returned when a zero DateRange reaches the domain.
var ErrDateRangeIsNotConstructed = errs.NewValueIsRequiredError("date range must be created via NewDateRange")

// DateRange is an inclusive range of calendar days. Bounds and tested
// timestamps are reduced to their calendar day in their own location, so
// time of day never affects membership.
type DateRange struct {
	start time.Time
	end   time.Time
	guard guard.ConstructorGuard
}

// NewDateRange builds a range from two timestamps. Only the calendar day of
// each bound is kept. The end day must not precede the start day.
//
// Example:
//
//	start, _ := time.Parse(time.DateOnly, "2024-03-01")
//	end, _ := time.Parse(time.DateOnly, "2024-03-31")
//	march, err := kernel.NewDateRange(start, end)
func NewDateRange(start, end time.Time) (DateRange, error) {
	startDay, endDay := CalendarDay(start), CalendarDay(end)
	if endDay.Before(startDay) {
		return DateRange{}, errs.NewValueIsInvalidErrorWithCause(
			"date range",
			fmt.Errorf("end %s is before start %s", endDay.Format(DateLayout), startDay.Format(DateLayout)),
		)
	}
	return DateRange{start: startDay, end: endDay, guard: guard.NewConstructorGuard()}, nil
}

// ParseDateRange parses "YYYY-MM-DD" bounds.
func ParseDateRange(start, end string) (DateRange, error) {
	startDay, startErr := time.Parse(DateLayout, start)
	if startErr != nil {
		startErr = errs.NewValueIsInvalidErrorWithCause("start", startErr)
	}
	endDay, endErr := time.Parse(DateLayout, end)
	if endErr != nil {
		endErr = errs.NewValueIsInvalidErrorWithCause("end", endErr)
	}
	if err := errors.Join(startErr, endErr); err != nil {
		return DateRange{}, err
	}
	return NewDateRange(startDay, endDay)
}

// CalendarDay truncates t to midnight UTC of the calendar day t falls on in
// its own location.
func CalendarDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Start returns the first day of the range.
func (r DateRange) Start() time.Time {
	return r.start
}

// End returns the last day of the range.
func (r DateRange) End() time.Time {
	return r.end
}

// Contains reports whether t falls on a day inside the range, bounds included.
func (r DateRange) Contains(t time.Time) bool {
	day := CalendarDay(t)
	return !day.Before(r.start) && !day.After(r.end)
}

// Validate returns ErrDateRangeIsNotConstructed for the zero value.
func (r DateRange) Validate() error {
	return r.guard.Validate(ErrDateRangeIsNotConstructed)
}

// String renders the range as "start..end".
func (r DateRange) String() string {
	return r.start.Format(DateLayout) + ".." + r.end.Format(DateLayout)
}
