package command

import (
	"strconv"
	"strings"

	"uchet/internal/core"
)

// ExchangeQuery is a parsed conversion command: a currency pair with an
// optional amount to convert.
type ExchangeQuery struct {
	From      string // lower-cased code
	To        string
	Amount    float64
	HasAmount bool
}

// ParseExchange validates "<cv> <from> <to>" or "<cv> <amount> <from> <to>".
// Both currencies must be supported and distinct.
func ParseExchange(line string, currencies []string) (ExchangeQuery, error) {
	fields := strings.Fields(line)
	switch len(fields) {
	case 3:
		from, to := strings.ToLower(fields[1]), strings.ToLower(fields[2])
		if validPair(from, to, currencies) {
			return ExchangeQuery{From: from, To: to}, nil
		}
	case 4:
		amount, err := strconv.ParseFloat(fields[1], 64)
		if err != nil {
			return ExchangeQuery{}, core.ErrInvalidExchangeQuery
		}
		from, to := strings.ToLower(fields[2]), strings.ToLower(fields[3])
		if validPair(from, to, currencies) {
			return ExchangeQuery{From: from, To: to, Amount: amount, HasAmount: true}, nil
		}
	}
	return ExchangeQuery{}, core.ErrInvalidExchangeQuery
}

func validPair(from, to string, currencies []string) bool {
	return from != to && oneOf(from, currencies) && oneOf(to, currencies)
}
