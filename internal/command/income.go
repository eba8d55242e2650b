package command

import (
	"strconv"
	"strings"

	"uchet/internal/core"
)

// ParseIncome validates "+ <amount> [source...]" and builds an income
// transaction. The amount may be written as a real number and is truncated to
// whole units; the source is the remaining words, whitespace-collapsed.
func ParseIncome(line string) (core.Transaction, error) {
	fields := strings.Fields(line)
	if len(fields) < 2 {
		return core.Transaction{}, core.ErrInvalidIncome
	}

	amount, err := strconv.ParseFloat(fields[1], 64)
	if err != nil || amount == 0 {
		return core.Transaction{}, core.ErrInvalidIncome
	}

	return core.Transaction{
		Date:   core.Today(),
		Amount: int64(amount),
		Note:   strings.Join(fields[2:], " "),
		Kind:   core.Income,
	}, nil
}
