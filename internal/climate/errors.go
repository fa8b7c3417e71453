package climate

import "errors"

var (
	// ErrInvalidDate is returned when a calendar date is not in YYYY-MM-DD form
	ErrInvalidDate = errors.New("invalid date")

	// ErrInvalidMonthDay is returned when a month-day key is not in MM-DD form
	ErrInvalidMonthDay = errors.New("invalid month-day")
)
