package model

import (
	"fmt"
	"time"
)

// InsufficientDataError reports that a computation needs more observations
// than the series holds.
type InsufficientDataError struct {
	Op   string
	Need int
	Have int
}

func (e *InsufficientDataError) Error() string {
	return fmt.Sprintf("%s: insufficient data: need at least %d observations, have %d", e.Op, e.Need, e.Have)
}

// DivisionByZeroError reports a growth rate computed against a zero prior value.
// Date is the month whose rate could not be computed.
type DivisionByZeroError struct {
	Op   string
	Date time.Time
}

func (e *DivisionByZeroError) Error() string {
	return fmt.Sprintf("%s: division by zero: previous value before %s is 0", e.Op, e.Date.Format("2006-01"))
}

// MalformedDateError reports an input date that is not a valid calendar month.
type MalformedDateError struct {
	Input string
	Line  int // 1-based source line, 0 when unknown
	Err   error
}

func (e *MalformedDateError) Error() string {
	base := fmt.Sprintf("malformed date %q", e.Input)
	if e.Line > 0 {
		base += fmt.Sprintf(" (line %d)", e.Line)
	}
	if e.Err != nil {
		base += ": " + e.Err.Error()
	}
	return base
}

func (e *MalformedDateError) Unwrap() error {
	return e.Err
}
