// Package command turns raw text lines into typed ledger operations.
//
// Classification looks only at the first whitespace-delimited token; the
// per-kind parsers then validate the full line and build domain values.
package command

import (
	"strconv"
	"strings"
)

const (
	KindExpense        Kind = "expense"
	KindIncome         Kind = "income"
	KindBalanceQuery   Kind = "balance_query"
	KindExchangeQuery  Kind = "exchange_query"
	KindMonthQuery     Kind = "month_query"
	KindDelete         Kind = "delete"
	KindCategoryShow   Kind = "category_show"
	KindCategoryAdd    Kind = "category_add"
	KindCategoryDelete Kind = "category_delete"
	KindUnrecognized   Kind = "unrecognized"
)

// Kind is the operation class a raw line was tagged with.
type Kind string

// Keyword sets mirror the commands the bot historically accepted, including
// the Russian forms.
var (
	balanceWords        = []string{"bl", "balance", "total", "баланс", "всего"}
	convertWords        = []string{"cv", "convert"}
	monthWords          = []string{"month", "месяц"}
	deleteWords         = []string{"del", "delete"}
	categoryShowWords   = []string{"categories", "cats", "категории"}
	categoryAddWords    = []string{"addcat", "add_category"}
	categoryDeleteWords = []string{"delcat", "delete_category"}
)

// Classify tags a raw line with its operation kind. It is a pure function of
// the line's first token; first match wins, keywords are case-insensitive.
func Classify(line string) Kind {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return KindUnrecognized
	}
	token := strings.ToLower(fields[0])

	if _, err := strconv.ParseFloat(token, 64); err == nil {
		return KindExpense
	}
	switch {
	case token == "+":
		return KindIncome
	case oneOf(token, balanceWords):
		return KindBalanceQuery
	case oneOf(token, convertWords):
		return KindExchangeQuery
	case oneOf(token, monthWords):
		return KindMonthQuery
	case oneOf(token, deleteWords):
		return KindDelete
	case oneOf(token, categoryShowWords):
		return KindCategoryShow
	case oneOf(token, categoryAddWords):
		return KindCategoryAdd
	case oneOf(token, categoryDeleteWords):
		return KindCategoryDelete
	}
	return KindUnrecognized
}

func oneOf(token string, words []string) bool {
	for _, w := range words {
		if token == w {
			return true
		}
	}
	return false
}
