package command

import (
	"context"
	"strconv"
	"strings"
	"unicode"

	"uchet/internal/core"
)

// CategoryResolver maps a free-text category token to a canonical catalog
// name, falling back to the catalog default when nothing matches.
type CategoryResolver interface {
	Resolve(ctx context.Context, token string) (string, error)
}

// ParseExpense validates "<amount> <category> [description...]" and builds an
// expense transaction stamped with the current date. The category token is
// resolved through the catalog; the note keeps the raw token, capitalized,
// followed by the description.
func ParseExpense(ctx context.Context, line string, resolver CategoryResolver) (core.Transaction, error) {
	fields := strings.Fields(line)
	if len(fields) < 2 {
		return core.Transaction{}, core.ErrInvalidExpense
	}

	amount, err := strconv.ParseInt(fields[0], 10, 64)
	if err != nil || amount == 0 {
		return core.Transaction{}, core.ErrInvalidExpense
	}

	token := fields[1]
	if containsDigit(token) {
		return core.Transaction{}, core.ErrInvalidExpense
	}

	category, err := resolver.Resolve(ctx, token)
	if err != nil {
		return core.Transaction{}, err
	}

	note := strings.TrimRight(capitalize(token)+" "+strings.Join(fields[2:], " "), " ")

	return core.Transaction{
		Date:     core.Today(),
		Amount:   amount,
		Category: category,
		Note:     note,
		Kind:     core.Expense,
	}, nil
}

// containsDigit rejects category tokens that are fully or partially numeric.
func containsDigit(s string) bool {
	return strings.ContainsFunc(s, unicode.IsDigit)
}

func capitalize(s string) string {
	r := []rune(s)
	if len(r) == 0 {
		return s
	}
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}
