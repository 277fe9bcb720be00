package statement

import (
	"errors"
	"fmt"
)

// ErrNoMatch reports that a line does not have the shape a parser expects.
// Most statement lines are prose, table headers or page furniture, so this is
// the normal outcome for a line and never fatal.
var ErrNoMatch = errors.New("line does not match")

// ErrUnknownTicker reports a line whose instrument is not in the ticker
// directory. It is treated like any other miss.
var ErrUnknownTicker = fmt.Errorf("%w: unknown ticker", ErrNoMatch)

// ErrBadDate reports a month name that is not followed by a valid day and year.
var ErrBadDate = fmt.Errorf("%w: malformed date", ErrNoMatch)

var errNoCarryDate = fmt.Errorf("%w: continuation line before any dated line", ErrNoMatch)
