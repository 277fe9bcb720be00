package statement

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/cleared-dev/betterqif/internal/model"
)

var months = map[string]time.Month{
	"jan": time.January, "january": time.January,
	"feb": time.February, "february": time.February,
	"mar": time.March, "march": time.March,
	"apr": time.April, "april": time.April,
	"may": time.May,
	"jun": time.June, "june": time.June,
	"jul": time.July, "july": time.July,
	"aug": time.August, "august": time.August,
	"sep": time.September, "september": time.September,
	"oct": time.October, "october": time.October,
	"nov": time.November, "november": time.November,
	"dec": time.December, "december": time.December,
}

// monthOf returns the month named by tok, ignoring case.
func monthOf(tok string) (time.Month, bool) {
	m, ok := months[strings.ToLower(tok)]
	return m, ok
}

// FindDate returns the first "<month> <day> <year>" date in line.
//
// Only the first month-name token is considered: if the two tokens after it
// are not a valid day and year the whole line fails with ErrBadDate rather
// than scanning on. found is false, with a nil error, when no token names a
// month.
func FindDate(line model.Line) (date time.Time, found bool, err error) {
	for i, tok := range line {
		m, ok := monthOf(tok)
		if !ok {
			continue
		}
		d, err := dateAt(line, i, m)
		if err != nil {
			return time.Time{}, false, err
		}
		return d, true, nil
	}
	return time.Time{}, false, nil
}

// DateAtStart parses the first three tokens of line as a date.
func DateAtStart(line model.Line) (time.Time, error) {
	if len(line) == 0 {
		return time.Time{}, fmt.Errorf("%w: empty line", ErrBadDate)
	}
	m, ok := monthOf(line[0])
	if !ok {
		return time.Time{}, fmt.Errorf("%w: %q is not a month", ErrBadDate, line[0])
	}
	return dateAt(line, 0, m)
}

func dateAt(line model.Line, i int, m time.Month) (time.Time, error) {
	if i+2 >= len(line) {
		return time.Time{}, fmt.Errorf("%w: %q has no day and year", ErrBadDate, line[i])
	}
	day, err := strconv.Atoi(line[i+1])
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: day %q", ErrBadDate, line[i+1])
	}
	year, err := strconv.Atoi(line[i+2])
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: year %q", ErrBadDate, line[i+2])
	}
	d := time.Date(year, m, day, 0, 0, 0, 0, time.UTC)
	if d.Day() != day || d.Month() != m || d.Year() != year {
		return time.Time{}, fmt.Errorf("%w: %s %d %d is not a calendar date", ErrBadDate, m, day, year)
	}
	return d, nil
}
