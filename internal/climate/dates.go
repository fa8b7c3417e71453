package climate

import (
	"fmt"
	"time"
)

// DateLayout is the ISO form dates are stored and requested in
const DateLayout = "2006-01-02"

// leapYear anchors month-day parsing so that 02-29 is accepted
const leapYear = "2000-"

// ParseDate parses a YYYY-MM-DD calendar date
func ParseDate(s string) (time.Time, error) {
	if len(s) != len(DateLayout) {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return t, nil
}

// FormatDate renders t in the stored ISO form
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// MonthDay is a calendar day independent of year
type MonthDay struct {
	Month time.Month
	Day   int
}

// ParseMonthDay parses an MM-DD key. The key is checked against a leap year, so
// 02-29 is valid and 02-30 is not.
func ParseMonthDay(s string) (MonthDay, error) {
	if len(s) != len("01-02") {
		return MonthDay{}, fmt.Errorf("%w: %q", ErrInvalidMonthDay, s)
	}
	t, err := time.Parse(DateLayout, leapYear+s)
	if err != nil {
		return MonthDay{}, fmt.Errorf("%w: %q", ErrInvalidMonthDay, s)
	}
	return MonthDay{Month: t.Month(), Day: t.Day()}, nil
}

// String renders the key as MM-DD, which is also the MM-DD tail of a stored date
func (m MonthDay) String() string {
	return fmt.Sprintf("%02d-%02d", int(m.Month), m.Day)
}

// Window is an inclusive span of calendar dates
type Window struct {
	Start time.Time
	End   time.Time
}

// TrailingYear returns the window covering the year of data that ends on end
func TrailingYear(end time.Time) Window {
	return Window{Start: end.AddDate(-1, 0, 0), End: end}
}

func (w Window) filter() Filter {
	return Filter{From: FormatDate(w.Start), To: FormatDate(w.End)}
}
