package core

import (
	"fmt"
	"time"
)

// Period identifies one year-month journal bucket. Its string form,
// "YYYY.MM", is the journal key in storage.
type Period struct {
	Year  int
	Month time.Month
}

// CurrentPeriod returns the period the current date falls into.
func CurrentPeriod() Period {
	return Today().Period()
}

// ParsePeriod parses the strict "YYYY.MM" form: a four digit year, a dot and
// a two digit month. Anything else fails with ErrInvalidMonth.
func ParsePeriod(s string) (Period, error) {
	if len(s) != 7 || s[4] != '.' {
		return Period{}, ErrInvalidMonth
	}
	for i, c := range s {
		if i == 4 {
			continue
		}
		if c < '0' || c > '9' {
			return Period{}, ErrInvalidMonth
		}
	}
	year := atoi4(s[:4])
	month := int(s[5]-'0')*10 + int(s[6]-'0')
	if month < 1 || month > 12 {
		return Period{}, ErrInvalidMonth
	}
	return Period{Year: year, Month: time.Month(month)}, nil
}

func atoi4(s string) int {
	n := 0
	for _, c := range s {
		n = n*10 + int(c-'0')
	}
	return n
}

func (p Period) String() string {
	return fmt.Sprintf("%04d.%02d", p.Year, int(p.Month))
}

func (p Period) IsZero() bool {
	return p.Year == 0 && p.Month == 0
}
