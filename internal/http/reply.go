package http

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"uchet/internal/catalog"
	"uchet/internal/command"
	"uchet/internal/core"
	"uchet/internal/exchange"
	"uchet/internal/services"
)

// FormatResult renders one executed command result as the reply text shown
// to the user. All user-facing wording lives here.
func FormatResult(res *services.Result) string {
	switch res.Kind {
	case command.KindExpense:
		t := res.Transaction
		return fmt.Sprintf("Recorded #%d: %d (%s) %s. Balance: %d",
			t.Index, t.Amount, t.Category, t.Note, res.Balance)

	case command.KindIncome:
		t := res.Transaction
		reply := fmt.Sprintf("Income #%d: +%d", t.Index, t.Amount)
		if t.Note != "" {
			reply += " " + t.Note
		}
		return fmt.Sprintf("%s. Balance: %d", reply, res.Balance)

	case command.KindDelete:
		t := res.Deleted
		return fmt.Sprintf("Deleted #%d: %d (%s) %s. Balance: %d",
			t.Index, t.Amount, t.Category, t.Note, res.Balance)

	case command.KindBalanceQuery:
		if res.Exchange != nil {
			return fmt.Sprintf("Balance: %d (%s%s)",
				res.Balance, currencySymbol(res.ExchangeTo), res.Exchange.Converted.StringFixed(2))
		}
		return fmt.Sprintf("Balance: %d", res.Balance)

	case command.KindExchangeQuery:
		if res.Exchange.HasConverted {
			return fmt.Sprintf("%s/%s: %s%s (rate %s)",
				strings.ToUpper(res.ExchangeFrom), strings.ToUpper(res.ExchangeTo),
				currencySymbol(res.ExchangeTo), res.Exchange.Converted.StringFixed(2),
				res.Exchange.Rate)
		}
		return fmt.Sprintf("%s/%s rate: %s",
			strings.ToUpper(res.ExchangeFrom), strings.ToUpper(res.ExchangeTo), res.Exchange.Rate)

	case command.KindMonthQuery:
		if res.Summary != nil {
			return formatSummary(res.Summary)
		}
		return formatListing(res.Listing)

	case command.KindCategoryShow:
		var b strings.Builder
		b.WriteString("Categories:")
		for _, entry := range res.Categories {
			fmt.Fprintf(&b, "\n%s: %s", entry.Name, strings.Join(entry.Aliases, ", "))
		}
		return b.String()

	case command.KindCategoryAdd:
		if len(res.Aliases) == 0 {
			return fmt.Sprintf("Category %s saved", res.Category)
		}
		return fmt.Sprintf("Category %s saved (%s)", res.Category, strings.Join(res.Aliases, ", "))

	case command.KindCategoryDelete:
		return fmt.Sprintf("Category %s deleted", res.Category)
	}

	return "Unrecognized command"
}

func formatListing(entries []core.Transaction) string {
	var b strings.Builder
	for i, t := range entries {
		if i > 0 {
			b.WriteByte('\n')
		}
		sign := "-"
		if t.Kind == core.Income {
			sign = "+"
		}
		fmt.Fprintf(&b, "%d. %s %s%d (%s)", t.Index, t.Date, sign, t.Amount, t.Category)
		if t.Note != "" {
			fmt.Fprintf(&b, " %s", t.Note)
		}
	}
	return b.String()
}

func formatSummary(s *core.Summary) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s: spent %d over %d entries", s.Period, s.Total, s.Count)
	if len(s.Top) > 0 {
		b.WriteString("\nTop expenses:")
		for _, t := range s.Top {
			fmt.Fprintf(&b, "\n  %d (%s)", t.Amount, t.Category)
			if t.Note != "" {
				fmt.Fprintf(&b, " %s", t.Note)
			}
		}
	}
	if len(s.PerCategory) > 0 {
		b.WriteString("\nBy category:")
		for _, name := range sortedCategories(s.PerCategory) {
			fmt.Fprintf(&b, "\n  %s: %d", name, s.PerCategory[name])
		}
	}
	return b.String()
}

// sortedCategories orders per-category totals descending by amount, with the
// fallback category last among equals.
func sortedCategories(per map[string]int64) []string {
	names := make([]string, 0, len(per))
	for name := range per {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		a, b := names[i], names[j]
		if per[a] != per[b] {
			return per[a] > per[b]
		}
		if a == catalog.FallbackName || b == catalog.FallbackName {
			return b == catalog.FallbackName
		}
		return a < b
	})
	return names
}

func currencySymbol(code string) string {
	if sym, ok := exchange.Symbols[code]; ok {
		return sym
	}
	return ""
}

// FormatError maps a taxonomy error to the reply text for it. Unknown errors
// get a generic reply so internals never leak to the user.
func FormatError(err error) string {
	switch {
	case errors.Is(err, core.ErrInvalidExpense):
		return "Invalid expense. Use: <amount> <category> [description]"
	case errors.Is(err, core.ErrInvalidIncome):
		return "Invalid income. Use: + <amount> [source]"
	case errors.Is(err, core.ErrInvalidDelete):
		return "Invalid delete. Use: del <index> or del last"
	case errors.Is(err, core.ErrInvalidBalanceQuery):
		return "Invalid balance command. Use: bl, bl <amount> or bl <currency>"
	case errors.Is(err, core.ErrInvalidExchangeQuery):
		return "Invalid exchange command. Use: cv <from> <to> [amount]"
	case errors.Is(err, core.ErrInvalidMonth):
		return "Invalid month. Use: month or month YYYY.MM"
	case errors.Is(err, core.ErrInvalidCategory):
		return "Invalid category. Use: addcat <Name>: alias1, alias2"
	case errors.Is(err, core.ErrCategoryNotFound):
		return "Category not found"
	case errors.Is(err, core.ErrCatalogNotFound):
		return "No categories yet. Use: addcat <Name>: alias1, alias2"
	case errors.Is(err, core.ErrPeriodNotFound):
		return "No entries for that month"
	case errors.Is(err, core.ErrIndexOutOfRange):
		return "No entry with that index"
	case errors.Is(err, core.ErrBalanceNotInitialized):
		return "Balance is not set. Use: bl <amount>"
	case errors.Is(err, core.ErrExchangeUnavailable):
		return "Exchange rates are unavailable right now"
	}
	return "Something went wrong"
}

// IsUserError reports whether an error belongs to the command taxonomy, as
// opposed to an internal failure.
func IsUserError(err error) bool {
	taxonomy := []error{
		core.ErrInvalidExpense,
		core.ErrInvalidIncome,
		core.ErrInvalidDelete,
		core.ErrInvalidBalanceQuery,
		core.ErrInvalidExchangeQuery,
		core.ErrInvalidMonth,
		core.ErrInvalidCategory,
		core.ErrCategoryNotFound,
		core.ErrCatalogNotFound,
		core.ErrPeriodNotFound,
		core.ErrIndexOutOfRange,
		core.ErrBalanceNotInitialized,
	}
	for _, sentinel := range taxonomy {
		if errors.Is(err, sentinel) {
			return true
		}
	}
	return false
}
