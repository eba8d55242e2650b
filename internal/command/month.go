package command

import (
	"strings"

	"uchet/internal/core"
)

// MonthQuery is a parsed month command: either a listing of the current
// period's journal or statistics for an explicitly named period.
type MonthQuery struct {
	Period  core.Period
	Listing bool // bare keyword: list the current period instead of stats
}

// ParseMonth validates "<month>" or "<month> YYYY.MM".
func ParseMonth(line string) (MonthQuery, error) {
	fields := strings.Fields(line)
	switch len(fields) {
	case 1:
		return MonthQuery{Period: core.CurrentPeriod(), Listing: true}, nil
	case 2:
		period, err := core.ParsePeriod(fields[1])
		if err != nil {
			return MonthQuery{}, err
		}
		return MonthQuery{Period: period}, nil
	}
	return MonthQuery{}, core.ErrInvalidMonth
}
