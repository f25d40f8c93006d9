package agreement

import "fmt"

// =============================================================================
// WARNINGS - Soft findings returned alongside valid results
// =============================================================================
// The agreement distinguishes three outcome classes:
//   1. Hard validation errors - returned as error, no partial result
//   2. Soft warnings - the calculation is valid, but something deserves
//      attention (excessive daily hours, clamped local salary, ...)
//   3. Typed ineligibility - a valid result stating "no, because <reason>"
//
// Classes 1 and 3 are owned by the individual calculator packages. The
// Warning type here is class 2, shared so callers can collect warnings
// from several calculators into one report.

// Warning is a non-fatal finding attached to a valid result.
type Warning struct {
	Code    string
	Message string
}

func (w Warning) String() string {
	return fmt.Sprintf("%s: %s", w.Code, w.Message)
}

// Warnf builds a Warning with a formatted message.
func Warnf(code, format string, args ...any) Warning {
	return Warning{Code: code, Message: fmt.Sprintf(format, args...)}
}
